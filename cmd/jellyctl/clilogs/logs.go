package clilogs

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/jellyctl/jellyctl/cmd/jellyctl/core/args"
	"github.com/jellyctl/jellyctl/cmd/jellyctl/core/cstable"
	"github.com/jellyctl/jellyctl/cmd/jellyctl/core/output"
	"github.com/jellyctl/jellyctl/cmd/jellyctl/core/require"
	"github.com/jellyctl/jellyctl/pkg/apiclient"
	"github.com/jellyctl/jellyctl/pkg/csconfig"
	"github.com/jellyctl/jellyctl/pkg/models"
)

type configGetter = func() *csconfig.Config

type cliLogs struct {
	cfg    configGetter
	client *apiclient.ApiClient
}

func New(cfg configGetter) *cliLogs {
	return &cliLogs{
		cfg: cfg,
	}
}

func (cli *cliLogs) NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "logs [action]",
		Short:             "Browse the server log files",
		Args:              cobra.MinimumNArgs(1),
		Aliases:           []string{"log"},
		DisableAutoGenTag: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			var err error

			cli.client, err = require.Client(cli.cfg())

			return err
		},
	}

	cmd.AddCommand(cli.newListCmd())
	cmd.AddCommand(cli.newShowCmd())

	return cmd
}

// ago renders a server timestamp relative to now, or as received when it
// cannot be parsed.
func ago(s string) string {
	ts, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return s
	}

	return humanize.Time(ts)
}

func logsTable(t *cstable.Table, logs []models.LogFile) {
	t.SetHeaders("Name", "Size", "Modified")
	t.SetAlignment(text.AlignLeft, text.AlignRight, text.AlignLeft)
	t.SetMaxWidth(0)

	for _, l := range logs {
		t.AddRow(l.Name, humanize.IBytes(uint64(max(l.Size, 0))), ago(l.DateModified))
	}
}

func (cli *cliLogs) list(ctx context.Context, out io.Writer) error {
	logs, err := cli.client.System.Logs(ctx)
	if err != nil {
		return fmt.Errorf("unable to list log files: %w", err)
	}

	// newest first, RFC 3339 strings sort chronologically
	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].DateModified > logs[j].DateModified
	})

	return output.Render(out, output.OptionsFrom(cli.cfg()), logs, logsTable)
}

func (cli *cliLogs) newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "list",
		Short:             "List the server log files, newest first",
		Example:           `jellyctl logs list`,
		Args:              args.NoArgs,
		Aliases:           []string{"ls"},
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cli.list(cmd.Context(), color.Output)
		},
	}

	return cmd
}

func (cli *cliLogs) show(ctx context.Context, out io.Writer, name string) error {
	content, err := cli.client.System.Log(ctx, name)
	if err != nil {
		return fmt.Errorf("unable to read log file %s: %w", name, err)
	}

	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}

	_, err = io.WriteString(out, content)

	return err
}

func (cli *cliLogs) validLogName(cmd *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	client, err := require.Client(cli.cfg())
	if err != nil {
		cobra.CompError("unable to list log files " + err.Error())
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	logs, err := client.System.Logs(cmd.Context())
	if err != nil {
		cobra.CompError("unable to list log files " + err.Error())
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	ret := []string{}

	for _, l := range logs {
		if strings.HasPrefix(l.Name, toComplete) {
			ret = append(ret, l.Name)
		}
	}

	return ret, cobra.ShellCompDirectiveNoFileComp
}

func (cli *cliLogs) newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "show NAME",
		Short:             "Print a server log file",
		Example:           `jellyctl logs show log_20250101.log | less`,
		Args:              args.ExactArgs(1),
		Aliases:           []string{"cat"},
		DisableAutoGenTag: true,
		ValidArgsFunction: cli.validLogName,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.show(cmd.Context(), color.Output, args[0])
		},
	}

	return cmd
}
