package clireports

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jszwec/csvutil"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jellyctl/jellyctl/cmd/jellyctl/core/require"
	"github.com/jellyctl/jellyctl/pkg/apiclient"
	"github.com/jellyctl/jellyctl/pkg/csconfig"
)

type configGetter = func() *csconfig.Config

type cliReports struct {
	cfg    configGetter
	client *apiclient.ApiClient
}

func New(cfg configGetter) *cliReports {
	return &cliReports{
		cfg: cfg,
	}
}

func (cli *cliReports) NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reports [action]",
		Short: "Build activity and library reports",
		Long: `Reports are printed in the selected output format, or exported as CSV
with --file.`,
		Args:              cobra.MinimumNArgs(1),
		Aliases:           []string{"report"},
		DisableAutoGenTag: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			var err error

			cli.client, err = require.Client(cli.cfg())

			return err
		},
	}

	cmd.AddCommand(cli.newActivityCmd())
	cmd.AddCommand(cli.newMoviesCmd())

	return cmd
}

// exportCSV writes rows to file, replacing it.
func exportCSV[T any](file string, rows []T) error {
	if rows == nil {
		rows = []T{}
	}

	data, err := csvutil.Marshal(rows)
	if err != nil {
		return fmt.Errorf("failed to serialize to csv: %w", err)
	}

	if err := os.WriteFile(file, data, 0o644); err != nil {
		return fmt.Errorf("unable to write %s: %w", file, err)
	}

	log.Infof("%d rows exported to %s", len(rows), file)

	return nil
}

// humanDate renders a server timestamp relative to now, or as received when
// it cannot be parsed.
func humanDate(s string) string {
	if s == "" {
		return ""
	}

	ts, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return s
	}

	return humanize.Time(ts)
}

// shortDate keeps the day of a server timestamp.
func shortDate(s string) string {
	ts, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return s
	}

	return ts.Format(time.DateOnly)
}
