package clireports

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jellyctl/jellyctl/cmd/jellyctl/core/args"
	"github.com/jellyctl/jellyctl/cmd/jellyctl/core/cstable"
	"github.com/jellyctl/jellyctl/cmd/jellyctl/core/output"
	"github.com/jellyctl/jellyctl/pkg/apiclient"
	"github.com/jellyctl/jellyctl/pkg/models"
)

const defaultActivityLimit = 100

func activityTable(t *cstable.Table, entries []models.ActivityLogEntry) {
	t.SetHeaders("Date", "User", "Type", "Severity", "Name", "Short Overview", "Overview")

	for _, e := range entries {
		t.AddRow(humanDate(e.Date), e.UserID, e.Type, e.Severity, e.Name, e.ShortOverview, e.Overview)
	}
}

func (cli *cliReports) activity(ctx context.Context, out io.Writer, limit int, file string) error {
	if limit <= 0 {
		return fmt.Errorf("--limit must be positive, got %d", limit)
	}

	result, err := cli.client.System.Activity(ctx, apiclient.ActivityOpts{Limit: limit})
	if err != nil {
		return fmt.Errorf("unable to gather activity log entries: %w", err)
	}

	if file != "" {
		return exportCSV(file, result.Items)
	}

	return output.Render(out, output.OptionsFrom(cli.cfg()), result.Items, activityTable)
}

func (cli *cliReports) newActivityCmd() *cobra.Command {
	var (
		limit int
		file  string
	)

	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Report the latest entries of the activity log",
		Example: `jellyctl reports activity
jellyctl reports activity --limit 500 --file activity.csv`,
		Args:              args.NoArgs,
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cli.activity(cmd.Context(), color.Output, limit, file)
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&limit, "limit", "l", defaultActivityLimit, "number of entries")
	flags.StringVarP(&file, "file", "f", "", "export as CSV to this file")

	return cmd
}
