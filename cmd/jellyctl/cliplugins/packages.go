package cliplugins

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/agext/levenshtein"
	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jellyctl/jellyctl/cmd/jellyctl/core/args"
	"github.com/jellyctl/jellyctl/cmd/jellyctl/core/cstable"
	"github.com/jellyctl/jellyctl/cmd/jellyctl/core/output"
	"github.com/jellyctl/jellyctl/pkg/apiclient"
	"github.com/jellyctl/jellyctl/pkg/cwversion/constraint"
	"github.com/jellyctl/jellyctl/pkg/models"
)

type packageRow struct {
	Name     string `csv:"name"     json:"name"`
	Category string `csv:"category" json:"category"`
	Owner    string `csv:"owner"    json:"owner"`
	Latest   string `csv:"latest"   json:"latest"`
	Versions int    `csv:"versions" json:"versions"`
	GUID     string `csv:"guid"     json:"guid"`
}

func versionStrings(p models.PackageInfo) []string {
	ret := make([]string, 0, len(p.Versions))
	for _, v := range p.Versions {
		ret = append(ret, v.Version)
	}

	return ret
}

func packageRows(packages []models.PackageInfo) []packageRow {
	rows := make([]packageRow, 0, len(packages))

	for _, p := range packages {
		rows = append(rows, packageRow{
			Name:     p.Name,
			Category: p.Category,
			Owner:    p.Owner,
			Latest:   constraint.Latest(versionStrings(p)),
			Versions: len(p.Versions),
			GUID:     p.GUID,
		})
	}

	return rows
}

func packagesTable(t *cstable.Table, rows []packageRow) {
	t.SetHeaders("Name", "Category", "Owner", "Latest", "GUID")

	for _, r := range rows {
		t.AddRow(r.Name, r.Category, r.Owner, r.Latest, r.GUID)
	}
}

func (cli *cliPlugins) listPackages(ctx context.Context, out io.Writer) error {
	packages, err := cli.client.Packages.List(ctx)
	if err != nil {
		return fmt.Errorf("unable to list packages: %w", err)
	}

	opts := output.OptionsFrom(cli.cfg())
	if opts.Format == output.JSON {
		return output.WriteJSON(out, packages)
	}

	return output.Render(out, opts, packageRows(packages), packagesTable)
}

func findPackage(packages []models.PackageInfo, name string) (*models.PackageInfo, error) {
	const maxDistance = 4

	score := maxDistance
	nearest := ""

	for i := range packages {
		if strings.EqualFold(packages[i].Name, name) {
			return &packages[i], nil
		}

		d := levenshtein.Distance(strings.ToLower(name), strings.ToLower(packages[i].Name), nil)
		if d < score {
			score = d
			nearest = packages[i].Name
		}
	}

	msg := fmt.Sprintf("package %q not found in the configured repositories", name)
	if nearest != "" {
		msg += fmt.Sprintf(", did you mean %q?", nearest)
	}

	return nil, errors.New(msg)
}

func (cli *cliPlugins) install(ctx context.Context, name, version, repository string) error {
	packages, err := cli.client.Packages.List(ctx)
	if err != nil {
		return fmt.Errorf("unable to list packages: %w", err)
	}

	pkg, err := findPackage(packages, name)
	if err != nil {
		return err
	}

	if version == "" {
		version = constraint.Latest(versionStrings(*pkg))
		if version == "" {
			return fmt.Errorf("package %s has no installable version", pkg.Name)
		}
	}

	found := false

	for _, v := range pkg.Versions {
		if v.Version != version {
			continue
		}

		found = true

		if repository == "" {
			repository = v.RepositoryURL
		}
	}

	if !found {
		return fmt.Errorf("package %s has no version %s", pkg.Name, version)
	}

	opts := apiclient.InstallOpts{
		AssemblyGUID:  pkg.GUID,
		Version:       version,
		RepositoryURL: repository,
	}

	if err := cli.client.Packages.Install(ctx, pkg.Name, opts); err != nil {
		return fmt.Errorf("unable to install %s %s: %w", pkg.Name, version, err)
	}

	log.Infof("installing %s %s, restart the server to load it", pkg.Name, version)

	return nil
}

func (cli *cliPlugins) newPackagesListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "list",
		Short:             "List the packages available in the plugin repositories",
		Example:           `jellyctl plugins packages list`,
		Args:              args.NoArgs,
		Aliases:           []string{"ls"},
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cli.listPackages(cmd.Context(), color.Output)
		},
	}

	return cmd
}

func (cli *cliPlugins) newPackagesInstallCmd() *cobra.Command {
	var version, repository string

	cmd := &cobra.Command{
		Use:   "install NAME",
		Short: "Install a package from the catalog",
		Long:  `Install a package. Without --version the highest published version is installed.`,
		Example: `jellyctl plugins packages install Trakt
jellyctl plugins packages install Trakt --version 25.0.0.0`,
		Args:              args.ExactArgs(1),
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.install(cmd.Context(), args[0], version, repository)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&version, "version", "", "version to install")
	flags.StringVar(&repository, "repository", "", "repository URL to install from")

	return cmd
}

func (cli *cliPlugins) newPackagesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "packages [action]",
		Short:             "Browse and install catalog packages",
		Args:              cobra.MinimumNArgs(1),
		Aliases:           []string{"package"},
		DisableAutoGenTag: true,
	}

	cmd.AddCommand(cli.newPackagesListCmd())
	cmd.AddCommand(cli.newPackagesInstallCmd())

	return cmd
}
