package cliserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jellyctl/jellyctl/cmd/jellyctl/core/args"
	"github.com/jellyctl/jellyctl/cmd/jellyctl/core/prompt"
	"github.com/jellyctl/jellyctl/cmd/jellyctl/core/require"
	"github.com/jellyctl/jellyctl/pkg/apiclient"
	"github.com/jellyctl/jellyctl/pkg/csconfig"
)

type configGetter = func() *csconfig.Config

type cliServer struct {
	cfg    configGetter
	client *apiclient.ApiClient
}

func New(cfg configGetter) *cliServer {
	return &cliServer{
		cfg: cfg,
	}
}

func (cli *cliServer) NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "server [action]",
		Short:             "Inspect, restart or stop the server",
		Args:              cobra.MinimumNArgs(1),
		Aliases:           []string{"system"},
		DisableAutoGenTag: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			var err error

			cli.client, err = require.Client(cli.cfg())

			return err
		},
	}

	cmd.AddCommand(cli.newInfoCmd())
	cmd.AddCommand(cli.newRestartCmd())
	cmd.AddCommand(cli.newShutdownCmd())
	cmd.AddCommand(cli.newReportCmd())

	return cmd
}

func (cli *cliServer) info(ctx context.Context, out io.Writer) error {
	raw, err := cli.client.System.RawInfo(ctx)
	if err != nil {
		return fmt.Errorf("unable to get server information: %w", err)
	}

	buf := &bytes.Buffer{}
	if err := json.Indent(buf, []byte(raw), "", "  "); err != nil {
		return fmt.Errorf("server information is not valid JSON: %w", err)
	}

	buf.WriteByte('\n')

	_, err = buf.WriteTo(out)

	return err
}

func (cli *cliServer) newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "info",
		Short:             "Show the server information document",
		Example:           `jellyctl server info`,
		Args:              args.NoArgs,
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cli.info(cmd.Context(), color.Output)
		},
	}

	return cmd
}

func (cli *cliServer) restart(ctx context.Context, force bool) error {
	if err := prompt.Confirm("Restart the server? Running playbacks are interrupted.", force); err != nil {
		return err
	}

	if err := cli.client.System.Restart(ctx); err != nil {
		return fmt.Errorf("unable to restart the server: %w", err)
	}

	log.Info("server is restarting")

	return nil
}

func (cli *cliServer) shutdown(ctx context.Context, force bool) error {
	if err := prompt.Confirm("Shut down the server? It will not come back on its own.", force); err != nil {
		return err
	}

	if err := cli.client.System.Shutdown(ctx); err != nil {
		return fmt.Errorf("unable to shut down the server: %w", err)
	}

	log.Info("server is shutting down")

	return nil
}

func (cli *cliServer) newRestartCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:               "restart",
		Short:             "Restart the server",
		Example:           `jellyctl server restart --yes`,
		Args:              args.NoArgs,
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cli.restart(cmd.Context(), force)
		},
	}

	cmd.Flags().BoolVarP(&force, "yes", "y", false, "do not ask for confirmation")

	return cmd
}

func (cli *cliServer) newShutdownCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:               "shutdown",
		Short:             "Stop the server",
		Example:           `jellyctl server shutdown --yes`,
		Args:              args.NoArgs,
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cli.shutdown(cmd.Context(), force)
		},
	}

	cmd.Flags().BoolVarP(&force, "yes", "y", false, "do not ask for confirmation")

	return cmd
}
