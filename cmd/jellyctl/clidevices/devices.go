package clidevices

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jellyctl/jellyctl/cmd/jellyctl/core/args"
	"github.com/jellyctl/jellyctl/cmd/jellyctl/core/batch"
	"github.com/jellyctl/jellyctl/cmd/jellyctl/core/cstable"
	"github.com/jellyctl/jellyctl/cmd/jellyctl/core/output"
	"github.com/jellyctl/jellyctl/cmd/jellyctl/core/require"
	"github.com/jellyctl/jellyctl/pkg/apiclient"
	"github.com/jellyctl/jellyctl/pkg/csconfig"
	"github.com/jellyctl/jellyctl/pkg/models"
)

// devices seen within this delay are active
const activeWithin = 3600

type configGetter = func() *csconfig.Config

type cliDevices struct {
	cfg    configGetter
	client *apiclient.ApiClient
}

func New(cfg configGetter) *cliDevices {
	return &cliDevices{
		cfg: cfg,
	}
}

func (cli *cliDevices) NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "devices [action]",
		Short:             "Manage the devices known to the server",
		Args:              cobra.MinimumNArgs(1),
		Aliases:           []string{"device"},
		DisableAutoGenTag: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			var err error

			cli.client, err = require.Client(cli.cfg())

			return err
		},
	}

	cmd.AddCommand(cli.newListCmd())
	cmd.AddCommand(cli.newDeleteCmd())

	return cmd
}

func devicesTable(t *cstable.Table, devices []models.Device) {
	t.SetHeaders("ID", "Name", "Last user", "App", "Last activity")
	t.SetMaxWidth(0)

	for _, d := range devices {
		t.AddRow(d.ID, d.Name, d.LastUserName, d.AppName+" "+d.AppVersion, d.DateLastActivity)
	}
}

func (cli *cliDevices) list(ctx context.Context, out io.Writer, active bool) error {
	opts := apiclient.DevicesListOpts{}
	if active {
		opts.ActiveWithinSeconds = activeWithin
	}

	devices, err := cli.client.Devices.List(ctx, opts)
	if err != nil {
		return fmt.Errorf("unable to list devices: %w", err)
	}

	return output.Render(out, output.OptionsFrom(cli.cfg()), devices, devicesTable)
}

func (cli *cliDevices) newListCmd() *cobra.Command {
	var active bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List devices",
		Example: `jellyctl devices list
jellyctl devices list --active -o csv`,
		Args:              args.NoArgs,
		Aliases:           []string{"ls"},
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cli.list(cmd.Context(), color.Output, active)
		},
	}

	cmd.Flags().BoolVar(&active, "active", false, "only show devices active in the last hour")

	return cmd
}

func (cli *cliDevices) delete(ctx context.Context, ids []string) error {
	b := batch.New("devices")

	for _, id := range ids {
		err := b.Do(id, func() error {
			if err := cli.client.Devices.Delete(ctx, id); err != nil {
				return err
			}

			log.Infof("device %s deleted", id)

			return nil
		})
		if err != nil {
			return err
		}
	}

	return b.Err()
}

// validDeviceID returns the device identifiers for command completion
func (cli *cliDevices) validDeviceID(cmd *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	client, err := require.Client(cli.cfg())
	if err != nil {
		cobra.CompError("unable to list devices " + err.Error())
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	devices, err := client.Devices.List(cmd.Context(), apiclient.DevicesListOpts{})
	if err != nil {
		cobra.CompError("unable to list devices " + err.Error())
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	ret := make([]string, 0, len(devices))
	for _, d := range devices {
		ret = append(ret, d.ID+"\t"+d.Name)
	}

	return ret, cobra.ShellCompDirectiveNoFileComp
}

func (cli *cliDevices) newDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "delete ID...",
		Short:             "Delete devices",
		Long:              `Delete devices. Their sessions are closed and their access tokens revoked.`,
		Example:           `jellyctl devices delete 3f1c4e0a9b`,
		Args:              args.MinimumNArgs(1),
		Aliases:           []string{"remove"},
		DisableAutoGenTag: true,
		ValidArgsFunction: cli.validDeviceID,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.delete(cmd.Context(), args)
		},
	}

	return cmd
}
