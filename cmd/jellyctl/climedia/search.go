package climedia

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jellyctl/jellyctl/cmd/jellyctl/core/args"
	"github.com/jellyctl/jellyctl/cmd/jellyctl/core/cstable"
	"github.com/jellyctl/jellyctl/cmd/jellyctl/core/output"
	"github.com/jellyctl/jellyctl/pkg/apiclient"
	"github.com/jellyctl/jellyctl/pkg/models"
)

const allTypes = "all"

// mediaRow is the flat view of an item used by the table and csv outputs.
type mediaRow struct {
	Name           string   `csv:"name"`
	ID             string   `csv:"id"`
	Type           string   `csv:"type"`
	Path           string   `csv:"path"`
	CriticRating   *float64 `csv:"critic_rating"`
	ProductionYear int      `csv:"production_year"`
}

func (r mediaRow) column(name string) string {
	switch strings.ToLower(name) {
	case "name":
		return r.Name
	case "id":
		return r.ID
	case "type":
		return r.Type
	case "path":
		return r.Path
	case "criticrating":
		if r.CriticRating == nil {
			return ""
		}

		return strconv.FormatFloat(*r.CriticRating, 'f', -1, 64)
	case "productionyear":
		if r.ProductionYear == 0 {
			return ""
		}

		return strconv.Itoa(r.ProductionYear)
	default:
		return ""
	}
}

var searchColumns = []string{"Name", "ID", "Type", "Path", "CriticRating", "ProductionYear"}

func validateColumns(columns []string) error {
	for _, c := range columns {
		found := false

		for _, known := range searchColumns {
			if strings.EqualFold(c, known) {
				found = true
				break
			}
		}

		if !found {
			return fmt.Errorf("unknown column %q, expected some of %s", c, strings.Join(searchColumns, ", "))
		}
	}

	return nil
}

func mediaTable(columns []string) func(*cstable.Table, []mediaRow) {
	return func(t *cstable.Table, rows []mediaRow) {
		t.SetHeaders(columns...)

		for _, r := range rows {
			cells := make([]string, len(columns))
			for i, c := range columns {
				cells[i] = r.column(c)
			}

			t.AddRow(cells...)
		}
	}
}

type searchOpts struct {
	term        string
	mediaType   string
	parentID    string
	includePath bool
	columns     []string
}

func (o searchOpts) query() apiclient.ItemsSearchOpts {
	q := apiclient.ItemsSearchOpts{
		SearchTerm: o.term,
		ParentID:   o.parentID,
		Recursive:  true,
		SortBy:     "SortName,ProductionYear",
	}

	if o.mediaType != "" && o.mediaType != allTypes {
		q.IncludeItemTypes = o.mediaType
	}

	if o.includePath {
		q.Fields = "Path"
	}

	return q
}

func (cli *cliMedia) search(ctx context.Context, out io.Writer, opts searchOpts) error {
	columns := opts.columns
	if err := validateColumns(columns); err != nil {
		return err
	}

	if opts.includePath && !containsFold(columns, "Path") {
		columns = append(columns, "Path")
	}

	result, err := cli.client.Items.Search(ctx, opts.query())
	if err != nil {
		return fmt.Errorf("unable to search: %w", err)
	}

	outOpts := output.OptionsFrom(cli.cfg())

	if outOpts.Format == output.JSON {
		return output.WriteJSON(out, result)
	}

	rows := make([]mediaRow, len(result.Items))
	for i, item := range result.Items {
		rows[i] = newMediaRow(&item)
	}

	return output.Render(out, outOpts, rows, mediaTable(columns))
}

func newMediaRow(item *models.Item) mediaRow {
	return mediaRow{
		Name:           item.Name,
		ID:             item.ID,
		Type:           item.Type,
		Path:           item.Path,
		CriticRating:   item.CriticRating,
		ProductionYear: item.ProductionYear,
	}
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}

	return false
}

func (cli *cliMedia) newSearchCmd() *cobra.Command {
	opts := searchOpts{}

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search the media items",
		Long: `Search the media items. --columns picks the table columns among
` + strings.Join(searchColumns, ", ") + `; csv and json outputs have them all.`,
		Example: `jellyctl media search --term matrix
jellyctl media search --term matrix --type Movie --include-path
jellyctl media search --term "" --parent-id f137a2dd21bbc1b99aa5c0f6bf02a805 --columns Name,ProductionYear`,
		Args:              args.NoArgs,
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cli.search(cmd.Context(), color.Output, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.term, "term", "t", "", "search term")
	flags.StringVarP(&opts.mediaType, "type", "m", allTypes, "item type, e.g. Movie, Series, Episode, MusicAlbum")
	flags.StringVarP(&opts.parentID, "parent-id", "p", "", "only search below this item, e.g. a library")
	flags.BoolVarP(&opts.includePath, "include-path", "f", false, "ask the server for the file paths")
	flags.StringSliceVarP(&opts.columns, "columns", "c", []string{"Name", "ID", "Type"}, "table columns")

	_ = cmd.MarkFlagRequired("term")
	_ = cmd.RegisterFlagCompletionFunc("columns", cobra.FixedCompletions(searchColumns, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}
