package cstable

import (
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	isatty "github.com/mattn/go-isatty"
)

// cells wider than this are wrapped on word boundaries
const defaultMaxWidth = 60

// colorize resolves the --color flag. "auto" colors only a terminal.
func colorize(wantColor string) bool {
	switch wantColor {
	case "yes":
		return true
	case "no":
		return false
	default:
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}
}

// lightStyle has no outer border and no column separators, only a line
// under the headers.
func lightStyle(fancy bool) table.Style {
	box := table.StyleBoxDefault
	colors := table.ColorOptions{}

	if fancy {
		box = table.StyleBoxRounded
		colors.Header = text.Colors{text.Italic}
		colors.Border = text.Colors{text.FgHiBlack}
		colors.Separator = text.Colors{text.FgHiBlack}
	}

	box.Left, box.LeftSeparator, box.TopLeft, box.BottomLeft = "", "", "", ""
	box.Right, box.RightSeparator, box.TopRight, box.BottomRight = "", "", "", ""

	options := table.OptionsDefault
	options.SeparateRows = false
	options.SeparateFooter = false
	options.SeparateHeader = true
	options.SeparateColumns = false

	return table.Style{
		Box:     box,
		Color:   colors,
		Format:  table.FormatOptions{},
		HTML:    table.DefaultHTMLOptions,
		Options: options,
		Title:   table.TitleOptionsDefault,
	}
}

// Table is a go-pretty writer with per-column alignment and wrapping.
type Table struct {
	Writer   table.Writer
	output   io.Writer
	align    []text.Align
	maxWidth int
}

func NewLight(out io.Writer, wantColor string) *Table {
	if out == nil {
		panic("cstable: nil output")
	}

	w := table.NewWriter()
	w.SetStyle(lightStyle(colorize(wantColor)))

	return &Table{
		Writer:   w,
		output:   out,
		maxWidth: defaultMaxWidth,
	}
}

func (t *Table) SetHeaders(headers ...string) {
	row := make(table.Row, 0, len(headers))
	t.align = make([]text.Align, len(headers))

	for i, h := range headers {
		row = append(row, h)
		t.align[i] = text.AlignLeft
	}

	t.Writer.AppendHeader(row)
}

func (t *Table) AddRow(cells ...string) {
	row := make(table.Row, 0, len(cells))
	for _, c := range cells {
		row = append(row, c)
	}

	t.Writer.AppendRow(row)
}

// SetAlignment overrides the alignment of the first columns. It must be
// called after SetHeaders.
func (t *Table) SetAlignment(align ...text.Align) {
	copy(t.align, align)
}

// SetMaxWidth sets the width after which cells are wrapped. Zero disables
// wrapping, for columns holding paths or identifiers.
func (t *Table) SetMaxWidth(width int) {
	t.maxWidth = width
}

// SetTitle is shown above the headers.
func (t *Table) SetTitle(title string) {
	t.Writer.SetTitle(title)
}

func (t *Table) Render() {
	// go-pretty does not expose the column count, it is known from the headers
	configs := make([]table.ColumnConfig, 0, len(t.align))
	for i, a := range t.align {
		configs = append(configs, table.ColumnConfig{
			Number:           i + 1,
			Align:            a,
			AlignHeader:      text.AlignCenter,
			WidthMax:         t.maxWidth,
			WidthMaxEnforcer: text.WrapSoft,
		})
	}

	t.Writer.SetColumnConfigs(configs)
	fmt.Fprintln(t.output, t.Writer.Render())
}
