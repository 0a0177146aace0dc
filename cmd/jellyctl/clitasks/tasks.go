package clitasks

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jellyctl/jellyctl/cmd/jellyctl/core/args"
	"github.com/jellyctl/jellyctl/cmd/jellyctl/core/cstable"
	"github.com/jellyctl/jellyctl/cmd/jellyctl/core/output"
	"github.com/jellyctl/jellyctl/cmd/jellyctl/core/require"
	"github.com/jellyctl/jellyctl/pkg/apiclient"
	"github.com/jellyctl/jellyctl/pkg/csconfig"
	"github.com/jellyctl/jellyctl/pkg/emoji"
	"github.com/jellyctl/jellyctl/pkg/models"
)

type configGetter = func() *csconfig.Config

type cliTasks struct {
	cfg    configGetter
	client *apiclient.ApiClient
}

func New(cfg configGetter) *cliTasks {
	return &cliTasks{
		cfg: cfg,
	}
}

func (cli *cliTasks) NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "tasks [action]",
		Short:             "List and run the scheduled tasks",
		Args:              cobra.MinimumNArgs(1),
		Aliases:           []string{"task"},
		DisableAutoGenTag: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			var err error

			cli.client, err = require.Client(cli.cfg())

			return err
		},
	}

	cmd.AddCommand(cli.newListCmd())
	cmd.AddCommand(cli.newRunCmd())

	return cmd
}

func stateIcon(state string) string {
	switch state {
	case "Running":
		return emoji.Sync
	case "Cancelling":
		return emoji.RedCircle
	default:
		return emoji.GreenCircle
	}
}

func tasksTable(t *cstable.Table, tasks []models.TaskInfo) {
	t.SetHeaders("Name", "Category", "State", "Progress", "ID")

	for _, task := range tasks {
		progress := ""
		if task.CurrentProgressPercentage != nil {
			progress = fmt.Sprintf("%.0f%%", *task.CurrentProgressPercentage)
		}

		t.AddRow(task.Name, task.Category, stateIcon(task.State)+" "+task.State, progress, task.ID)
	}
}

func (cli *cliTasks) list(ctx context.Context, out io.Writer) error {
	tasks, err := cli.client.Tasks.List(ctx)
	if err != nil {
		return fmt.Errorf("unable to list scheduled tasks: %w", err)
	}

	return output.Render(out, output.OptionsFrom(cli.cfg()), tasks, tasksTable)
}

func (cli *cliTasks) newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "list",
		Short:             "List the scheduled tasks and their state",
		Example:           `jellyctl tasks list`,
		Args:              args.NoArgs,
		Aliases:           []string{"ls"},
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cli.list(cmd.Context(), color.Output)
		},
	}

	return cmd
}

func (cli *cliTasks) run(ctx context.Context, name string) error {
	task, err := cli.client.Tasks.FindByName(ctx, name)
	if err != nil {
		return err
	}

	if err := cli.client.Tasks.Start(ctx, task.ID); err != nil {
		return fmt.Errorf("unable to start task %s: %w", task.Name, err)
	}

	log.Infof("task %q started", task.Name)

	return nil
}

// validTaskName returns the task names for command completion
func (cli *cliTasks) validTaskName(cmd *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	client, err := require.Client(cli.cfg())
	if err != nil {
		cobra.CompError("unable to list tasks " + err.Error())
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	tasks, err := client.Tasks.List(cmd.Context())
	if err != nil {
		cobra.CompError("unable to list tasks " + err.Error())
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	ret := []string{}

	for _, task := range tasks {
		if strings.HasPrefix(strings.ToLower(task.Name), strings.ToLower(toComplete)) {
			ret = append(ret, task.Name)
		}
	}

	return ret, cobra.ShellCompDirectiveNoFileComp
}

func (cli *cliTasks) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run NAME",
		Short: "Start a scheduled task by name",
		Long:  `Start a scheduled task now. The name is matched case insensitively.`,
		Example: `jellyctl tasks run "Scan Media Library"
jellyctl tasks run "clean up collections and playlists"`,
		Args:              args.ExactArgs(1),
		Aliases:           []string{"start"},
		DisableAutoGenTag: true,
		ValidArgsFunction: cli.validTaskName,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.run(cmd.Context(), args[0])
		},
	}

	return cmd
}
