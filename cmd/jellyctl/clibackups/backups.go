package clibackups

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jellyctl/jellyctl/cmd/jellyctl/core/args"
	"github.com/jellyctl/jellyctl/cmd/jellyctl/core/cstable"
	"github.com/jellyctl/jellyctl/cmd/jellyctl/core/output"
	"github.com/jellyctl/jellyctl/cmd/jellyctl/core/prompt"
	"github.com/jellyctl/jellyctl/cmd/jellyctl/core/require"
	"github.com/jellyctl/jellyctl/pkg/apiclient"
	"github.com/jellyctl/jellyctl/pkg/csconfig"
	"github.com/jellyctl/jellyctl/pkg/cwversion/constraint"
	"github.com/jellyctl/jellyctl/pkg/emoji"
	"github.com/jellyctl/jellyctl/pkg/models"
)

type configGetter = func() *csconfig.Config

type cliBackups struct {
	cfg    configGetter
	client *apiclient.ApiClient
}

func New(cfg configGetter) *cliBackups {
	return &cliBackups{
		cfg: cfg,
	}
}

func (cli *cliBackups) NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "backups [action]",
		Short:             "List, create and restore server backups",
		Long:              `Server backups need a server version ` + constraint.Backup + `.`,
		Args:              cobra.MinimumNArgs(1),
		Aliases:           []string{"backup"},
		DisableAutoGenTag: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error

			cli.client, err = require.Client(cli.cfg())
			if err != nil {
				return err
			}

			return require.ServerVersion(cmd.Context(), cli.client, constraint.Backup, "backups")
		},
	}

	cmd.AddCommand(cli.newListCmd())
	cmd.AddCommand(cli.newCreateCmd())
	cmd.AddCommand(cli.newRestoreCmd())

	return cmd
}

type backupRow struct {
	DateCreated   string `csv:"date_created"`
	Path          string `csv:"path"`
	ServerVersion string `csv:"server_version"`
	EngineVersion string `csv:"engine_version"`
	Metadata      bool   `csv:"metadata"`
	Trickplay     bool   `csv:"trickplay"`
	Subtitles     bool   `csv:"subtitles"`
	Database      bool   `csv:"database"`
}

func backupRows(backups []models.BackupManifest) []backupRow {
	rows := make([]backupRow, 0, len(backups))

	for _, b := range backups {
		rows = append(rows, backupRow{
			DateCreated:   b.DateCreated,
			Path:          b.Path,
			ServerVersion: b.ServerVersion,
			EngineVersion: b.BackupEngineVersion,
			Metadata:      b.Options.Metadata,
			Trickplay:     b.Options.Trickplay,
			Subtitles:     b.Options.Subtitles,
			Database:      b.Options.Database,
		})
	}

	return rows
}

func backupsTable(t *cstable.Table, rows []backupRow) {
	t.SetHeaders("Created", "Path", "Server", "Metadata", "Trickplay", "Subtitles", "Database")
	t.SetMaxWidth(0)

	for _, r := range rows {
		t.AddRow(r.DateCreated, r.Path, r.ServerVersion,
			emoji.Bool(r.Metadata), emoji.Bool(r.Trickplay), emoji.Bool(r.Subtitles), emoji.Bool(r.Database))
	}
}

func (cli *cliBackups) list(ctx context.Context, out io.Writer) error {
	backups, err := cli.client.Backups.List(ctx)
	if err != nil {
		return fmt.Errorf("unable to list backups: %w", err)
	}

	opts := output.OptionsFrom(cli.cfg())
	if opts.Format == output.JSON {
		return output.WriteJSON(out, backups)
	}

	return output.Render(out, opts, backupRows(backups), backupsTable)
}

func (cli *cliBackups) newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "list",
		Short:             "List the backups stored on the server",
		Example:           `jellyctl backups list`,
		Args:              args.NoArgs,
		Aliases:           []string{"ls"},
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cli.list(cmd.Context(), color.Output)
		},
	}

	return cmd
}

func (cli *cliBackups) create(ctx context.Context, opts models.BackupOptions) error {
	manifest, err := cli.client.Backups.Create(ctx, opts)
	if err != nil {
		return fmt.Errorf("unable to create backup: %w", err)
	}

	log.Infof("backup created: %s", manifest.Path)

	return nil
}

func (cli *cliBackups) newCreateCmd() *cobra.Command {
	opts := models.BackupOptions{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a backup",
		Long:  `Create a backup. The configuration is always included, the flags add optional parts.`,
		Example: `jellyctl backups create
jellyctl backups create --metadata --database`,
		Args:              args.NoArgs,
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cli.create(cmd.Context(), opts)
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&opts.Metadata, "metadata", false, "include the metadata")
	flags.BoolVar(&opts.Trickplay, "trickplay", false, "include the trickplay images")
	flags.BoolVar(&opts.Subtitles, "subtitles", false, "include the extracted subtitles")
	flags.BoolVar(&opts.Database, "database", false, "include the database")

	return cmd
}

func (cli *cliBackups) restore(ctx context.Context, archive string, force bool) error {
	if err := prompt.Confirm(fmt.Sprintf("Restore %s? The server restarts and the current data is replaced.", archive), force); err != nil {
		return err
	}

	if err := cli.client.Backups.Restore(ctx, archive); err != nil {
		return fmt.Errorf("unable to restore %s: %w", archive, err)
	}

	log.Infof("restoring %s, the server is restarting", archive)

	return nil
}

func (cli *cliBackups) newRestoreCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:               "restore FILE",
		Short:             "Restore a backup archive stored on the server",
		Example:           `jellyctl backups restore /config/data/backups/jellyfin-backup-20250101.zip --yes`,
		Args:              args.ExactArgs(1),
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.restore(cmd.Context(), args[0], force)
		},
	}

	cmd.Flags().BoolVarP(&force, "yes", "y", false, "do not ask for confirmation")

	return cmd
}
