package climedia

import (
	"github.com/spf13/cobra"

	"github.com/jellyctl/jellyctl/cmd/jellyctl/core/require"
	"github.com/jellyctl/jellyctl/pkg/apiclient"
	"github.com/jellyctl/jellyctl/pkg/csconfig"
)

type configGetter = func() *csconfig.Config

type cliMedia struct {
	cfg    configGetter
	client *apiclient.ApiClient
}

func New(cfg configGetter) *cliMedia {
	return &cliMedia{
		cfg: cfg,
	}
}

func (cli *cliMedia) NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "media [action]",
		Short:             "Search and edit media items",
		Args:              cobra.MinimumNArgs(1),
		Aliases:           []string{"items"},
		DisableAutoGenTag: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			var err error

			cli.client, err = require.Client(cli.cfg())

			return err
		},
	}

	cmd.AddCommand(cli.newSearchCmd())
	cmd.AddCommand(cli.newUpdateMetadataCmd())
	cmd.AddCommand(cli.newUpdateImageCmd())

	return cmd
}
