package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jszwec/csvutil"

	"github.com/jellyctl/jellyctl/cmd/jellyctl/core/cstable"
	"github.com/jellyctl/jellyctl/pkg/csconfig"
)

type Format string

const (
	Table Format = "table"
	CSV   Format = "csv"
	JSON  Format = "json"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case Table, CSV, JSON:
		return f, nil
	case "":
		return Table, nil
	default:
		return "", fmt.Errorf("output format %q unknown, expected one of table, csv, json", s)
	}
}

// Options carry the rendering flags of the root command.
type Options struct {
	Format Format
	Color  string
}

// Render writes rows in the requested format. table fills a light table
// with the human representation.
func Render[T any](out io.Writer, opts Options, rows []T, table func(*cstable.Table, []T)) error {
	switch opts.Format {
	case JSON:
		return WriteJSON(out, rows)
	case CSV:
		return WriteCSV(out, rows)
	default:
		t := cstable.NewLight(out, opts.Color)
		table(t, rows)
		t.Render()

		return nil
	}
}

func WriteJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")

	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to serialize: %w", err)
	}

	return nil
}

func WriteCSV[T any](out io.Writer, rows []T) error {
	if rows == nil {
		rows = []T{}
	}

	data, err := csvutil.Marshal(rows)
	if err != nil {
		return fmt.Errorf("failed to serialize to csv: %w", err)
	}

	_, err = out.Write(data)

	return err
}

// OptionsFrom reads the rendering flags stored in the configuration by the
// root command.
func OptionsFrom(c *csconfig.Config) Options {
	f := Format(c.Output)
	if f == "" {
		f = Table
	}

	return Options{Format: f, Color: c.Color}
}
