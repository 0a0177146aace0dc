package cliplugins

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jellyctl/jellyctl/cmd/jellyctl/core/args"
	"github.com/jellyctl/jellyctl/cmd/jellyctl/core/cstable"
	"github.com/jellyctl/jellyctl/cmd/jellyctl/core/output"
	"github.com/jellyctl/jellyctl/pkg/emoji"
	"github.com/jellyctl/jellyctl/pkg/models"
)

func repositoriesTable(t *cstable.Table, repos []models.RepositoryInfo) {
	t.SetHeaders("Name", "URL", "Enabled")
	t.SetMaxWidth(0)

	for _, r := range repos {
		t.AddRow(r.Name, r.URL, emoji.Bool(r.Enabled))
	}
}

func (cli *cliPlugins) listRepositories(ctx context.Context, out io.Writer) error {
	repos, err := cli.client.Repositories.List(ctx)
	if err != nil {
		return fmt.Errorf("unable to list repositories: %w", err)
	}

	return output.Render(out, output.OptionsFrom(cli.cfg()), repos, repositoriesTable)
}

func (cli *cliPlugins) addRepository(ctx context.Context, name, rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid repository URL: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("repository URL %q must use http or https", rawURL)
	}

	repos, err := cli.client.Repositories.List(ctx)
	if err != nil {
		return fmt.Errorf("unable to list repositories: %w", err)
	}

	for _, r := range repos {
		if r.URL == rawURL {
			log.Infof("repository %s is already configured as %q", rawURL, r.Name)
			return nil
		}

		if strings.EqualFold(r.Name, name) {
			return fmt.Errorf("a repository named %q already exists", r.Name)
		}
	}

	repos = append(repos, models.RepositoryInfo{Name: name, URL: rawURL, Enabled: true})

	if err := cli.client.Repositories.Set(ctx, repos); err != nil {
		return fmt.Errorf("unable to save repositories: %w", err)
	}

	log.Infof("repository %q added", name)

	return nil
}

func (cli *cliPlugins) newRepositoriesListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "list",
		Short:             "List the plugin repositories",
		Example:           `jellyctl plugins repositories list`,
		Args:              args.NoArgs,
		Aliases:           []string{"ls"},
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cli.listRepositories(cmd.Context(), color.Output)
		},
	}

	return cmd
}

func (cli *cliPlugins) newRepositoriesAddCmd() *cobra.Command {
	var name, rawURL string

	cmd := &cobra.Command{
		Use:               "add",
		Short:             "Add a plugin repository",
		Example:           `jellyctl plugins repositories add --name intro-skipper --url https://example.org/manifest.json`,
		Args:              args.NoArgs,
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cli.addRepository(cmd.Context(), name, rawURL)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&name, "name", "n", "", "repository name")
	flags.StringVarP(&rawURL, "url", "u", "", "manifest URL")

	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("url")

	return cmd
}

func (cli *cliPlugins) newRepositoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "repositories [action]",
		Short:             "Manage the plugin repositories",
		Args:              cobra.MinimumNArgs(1),
		Aliases:           []string{"repos", "repository"},
		DisableAutoGenTag: true,
	}

	cmd.AddCommand(cli.newRepositoriesListCmd())
	cmd.AddCommand(cli.newRepositoriesAddCmd())

	return cmd
}
