package cliplugins

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
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

type cliPlugins struct {
	cfg    configGetter
	client *apiclient.ApiClient
}

func New(cfg configGetter) *cliPlugins {
	return &cliPlugins{
		cfg: cfg,
	}
}

func (cli *cliPlugins) NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plugins [action]",
		Short: "Manage plugins, catalog packages and plugin repositories",
		Long: `Installed plugins are listed with "plugins list". The "packages" and "repositories"
subcommands work on the catalog served by the configured plugin repositories.`,
		Args:              cobra.MinimumNArgs(1),
		Aliases:           []string{"plugin"},
		DisableAutoGenTag: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			var err error

			cli.client, err = require.Client(cli.cfg())

			return err
		},
	}

	cmd.AddCommand(cli.newListCmd())
	cmd.AddCommand(cli.newPackagesCmd())
	cmd.AddCommand(cli.newRepositoriesCmd())

	return cmd
}

func pluginsTable(t *cstable.Table, plugins []models.PluginInfo) {
	t.SetHeaders("Name", "Version", "Status", "Removable", "ID")

	for _, p := range plugins {
		status := p.Status

		switch p.Status {
		case "Active":
			status = emoji.GreenCircle + " " + status
		case "Malfunctioned", "NotSupported":
			status = emoji.RedCircle + " " + status
		case "Disabled", "Superceded", "Superseded":
			status = emoji.Prohibited + " " + status
		}

		t.AddRow(p.Name, p.Version, status, emoji.Bool(p.CanUninstall), p.ID)
	}
}

func (cli *cliPlugins) list(ctx context.Context, out io.Writer) error {
	plugins, err := cli.client.Plugins.List(ctx)
	if err != nil {
		return fmt.Errorf("unable to list plugins: %w", err)
	}

	return output.Render(out, output.OptionsFrom(cli.cfg()), plugins, pluginsTable)
}

func (cli *cliPlugins) newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "list",
		Short:             "List the installed plugins",
		Example:           `jellyctl plugins list`,
		Args:              args.NoArgs,
		Aliases:           []string{"ls"},
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cli.list(cmd.Context(), color.Output)
		},
	}

	return cmd
}
