package clireports

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jellyctl/jellyctl/cmd/jellyctl/core/args"
	"github.com/jellyctl/jellyctl/cmd/jellyctl/core/cstable"
	"github.com/jellyctl/jellyctl/cmd/jellyctl/core/output"
	"github.com/jellyctl/jellyctl/pkg/apiclient"
	"github.com/jellyctl/jellyctl/pkg/emoji"
	"github.com/jellyctl/jellyctl/pkg/models"
)

const (
	movieFields  = "DateCreated,Genres,HasSubtitles,Path,OfficialRating,PremiereDate,CommunityRating,RunTimeTicks,ProductionYear,Width,Height"
	ticksPerSec  = 10_000_000
	movieTypeTag = "Movie"
)

type movieRow struct {
	Name            string `csv:"name"             json:"name"`
	DateAdded       string `csv:"date_added"       json:"date_added"`
	PremiereDate    string `csv:"premiere_date"    json:"premiere_date"`
	ReleaseYear     int    `csv:"release_year"     json:"release_year"`
	Genres          string `csv:"genres"           json:"genres"`
	ParentalRating  string `csv:"parental_rating"  json:"parental_rating"`
	CommunityRating string `csv:"community_rating" json:"community_rating"`
	RuntimeMinutes  int64  `csv:"runtime_minutes"  json:"runtime_minutes"`
	Resolution      string `csv:"resolution"       json:"resolution"`
	Subtitles       bool   `csv:"subtitles"        json:"subtitles"`
	Path            string `csv:"path"             json:"path"`
}

func newMovieRow(item models.Item) movieRow {
	rating := ""
	if item.CommunityRating != nil {
		rating = strconv.FormatFloat(*item.CommunityRating, 'f', -1, 64)
	}

	resolution := ""
	if item.Width > 0 || item.Height > 0 {
		resolution = fmt.Sprintf("%d * %d", item.Width, item.Height)
	}

	return movieRow{
		Name:            item.Name,
		DateAdded:       item.DateCreated,
		PremiereDate:    item.PremiereDate,
		ReleaseYear:     item.ProductionYear,
		Genres:          strings.Join(item.Genres, ";"),
		ParentalRating:  item.OfficialRating,
		CommunityRating: rating,
		RuntimeMinutes:  item.RunTimeTicks / ticksPerSec / 60,
		Resolution:      resolution,
		Subtitles:       item.HasSubtitles,
		Path:            item.Path,
	}
}

func moviesTable(t *cstable.Table, rows []movieRow) {
	t.SetHeaders("Name", "Added", "Premiere", "Year", "Genres", "Rating", "Score", "Minutes", "Resolution", "Subtitles", "Path")

	for _, r := range rows {
		year := ""
		if r.ReleaseYear > 0 {
			year = strconv.Itoa(r.ReleaseYear)
		}

		t.AddRow(r.Name, humanDate(r.DateAdded), shortDate(r.PremiereDate), year, r.Genres, r.ParentalRating,
			r.CommunityRating, strconv.FormatInt(r.RuntimeMinutes, 10), r.Resolution, emoji.Bool(r.Subtitles), r.Path)
	}
}

// movies lists the movies visible to the credential owner. API keys are not
// bound to a user, in which case the library-wide item search is used.
func (cli *cliReports) movies(ctx context.Context) ([]models.Item, error) {
	me, err := cli.client.Users.Me(ctx)

	var protoErr *apiclient.ProtocolError

	switch {
	case err == nil && me.ID != "":
		result, err := cli.client.Users.Items(ctx, me.ID, apiclient.UserItemsOpts{
			IncludeItemTypes: movieTypeTag,
			Recursive:        true,
			Fields:           movieFields,
		})
		if err != nil {
			return nil, fmt.Errorf("unable to export the library of %s: %w", me.Name, err)
		}

		return result.Items, nil
	case err == nil, errors.As(err, &protoErr):
		log.Debug("no user behind the credential, searching the whole library")
	default:
		return nil, fmt.Errorf("unable to gather information about the current user: %w", err)
	}

	result, err := cli.client.Items.Search(ctx, apiclient.ItemsSearchOpts{
		IncludeItemTypes: movieTypeTag,
		Recursive:        true,
		Fields:           movieFields,
		SortBy:           "SortName",
	})
	if err != nil {
		return nil, fmt.Errorf("unable to export the library: %w", err)
	}

	return result.Items, nil
}

func (cli *cliReports) moviesReport(ctx context.Context, out io.Writer, file string) error {
	items, err := cli.movies(ctx)
	if err != nil {
		return err
	}

	rows := make([]movieRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, newMovieRow(item))
	}

	if file != "" {
		return exportCSV(file, rows)
	}

	return output.Render(out, output.OptionsFrom(cli.cfg()), rows, moviesTable)
}

func (cli *cliReports) newMoviesCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "movies",
		Short: "Report the movies of the library",
		Example: `jellyctl reports movies
jellyctl reports movies --file movies.csv`,
		Args:              args.NoArgs,
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cli.moviesReport(cmd.Context(), color.Output, file)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "export as CSV to this file")

	return cmd
}
