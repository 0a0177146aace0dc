package cliusers

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jellyctl/jellyctl/cmd/jellyctl/core/args"
	"github.com/jellyctl/jellyctl/cmd/jellyctl/core/batch"
	"github.com/jellyctl/jellyctl/pkg/apiclient"
)

func (cli *cliUsers) removeDevices(ctx context.Context, name string) error {
	user, err := cli.client.Users.FindByName(ctx, name)
	if err != nil {
		return err
	}

	devices, err := cli.client.Devices.List(ctx, apiclient.DevicesListOpts{})
	if err != nil {
		return fmt.Errorf("unable to list devices: %w", err)
	}

	b := batch.New("devices")

	for _, d := range devices {
		if d.LastUserID != user.ID && !strings.EqualFold(d.LastUserName, user.Name) {
			continue
		}

		err := b.Do(d.ID, func() error {
			if err := cli.client.Devices.Delete(ctx, d.ID); err != nil {
				return err
			}

			log.Infof("removed device %s (%s)", d.ID, d.Name)

			return nil
		})
		if err != nil {
			return err
		}
	}

	if b.Total() == 0 {
		log.Infof("no device found for %s", user.Name)
	}

	return b.Err()
}

func (cli *cliUsers) newRemoveDevicesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "remove-devices NAME",
		Short:             "Remove every device last used by a user",
		Example:           `jellyctl users remove-devices alice`,
		Args:              args.ExactArgs(1),
		DisableAutoGenTag: true,
		ValidArgsFunction: cli.validUserName,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.removeDevices(cmd.Context(), args[0])
		},
	}

	return cmd
}
