package clilibraries

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
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
	"github.com/jellyctl/jellyctl/pkg/models"
)

type configGetter = func() *csconfig.Config

type cliLibraries struct {
	cfg    configGetter
	client *apiclient.ApiClient
}

func New(cfg configGetter) *cliLibraries {
	return &cliLibraries{
		cfg: cfg,
	}
}

func (cli *cliLibraries) NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "libraries [action]",
		Short:             "Manage the media libraries",
		Args:              cobra.MinimumNArgs(1),
		Aliases:           []string{"library", "lib"},
		DisableAutoGenTag: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			var err error

			cli.client, err = require.Client(cli.cfg())

			return err
		},
	}

	cmd.AddCommand(cli.newListCmd())
	cmd.AddCommand(cli.newRegisterCmd())
	cmd.AddCommand(cli.newScanCmd())

	return cmd
}

func librariesTable(t *cstable.Table, libraries []models.VirtualFolder) {
	t.SetHeaders("Name", "ID", "Type", "Status", "Locations")

	for _, l := range libraries {
		t.AddRow(l.Name, l.ItemID, l.CollectionType, l.RefreshStatus, strings.Join(l.Locations, "\n"))
	}
}

func (cli *cliLibraries) list(ctx context.Context, out io.Writer) error {
	libraries, err := cli.client.Libraries.List(ctx)
	if err != nil {
		return fmt.Errorf("unable to list libraries: %w", err)
	}

	return output.Render(out, output.OptionsFrom(cli.cfg()), libraries, librariesTable)
}

func (cli *cliLibraries) newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "list",
		Short:             "List the libraries",
		Example:           `jellyctl libraries list`,
		Args:              args.NoArgs,
		Aliases:           []string{"ls"},
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cli.list(cmd.Context(), color.Output)
		},
	}

	return cmd
}

func (cli *cliLibraries) register(ctx context.Context, name, collectionType, file string) error {
	if !slices.Contains(models.CollectionTypes, collectionType) {
		return fmt.Errorf("unknown library type %q, expected one of %s", collectionType, strings.Join(models.CollectionTypes, ", "))
	}

	options, err := os.ReadFile(file)
	if err != nil {
		return err
	}

	opts := apiclient.AddVirtualFolderOpts{
		Name:           name,
		CollectionType: collectionType,
		RefreshLibrary: true,
	}

	if err := cli.client.Libraries.Register(ctx, opts, options); err != nil {
		return fmt.Errorf("unable to register library %s: %w", name, err)
	}

	log.Infof("library %s registered", name)

	return nil
}

func (cli *cliLibraries) newRegisterCmd() *cobra.Command {
	var name, collectionType, file string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new library",
		Long: `Register a new library and scan it. The file holds the JSON library
options, with the paths of the library under LibraryOptions.PathInfos.`,
		Example:           `jellyctl libraries register --name Movies --type movies --file movies.json`,
		Args:              args.NoArgs,
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cli.register(cmd.Context(), name, collectionType, file)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&name, "name", "n", "", "name of the library")
	flags.StringVarP(&collectionType, "type", "t", "", "library type: "+strings.Join(models.CollectionTypes, ", "))
	flags.StringVarP(&file, "file", "f", "", "JSON file with the library options")

	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("file")

	_ = cmd.RegisterFlagCompletionFunc("type", cobra.FixedCompletions(models.CollectionTypes, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}
