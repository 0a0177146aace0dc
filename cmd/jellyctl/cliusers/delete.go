package cliusers

import (
	"context"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jellyctl/jellyctl/cmd/jellyctl/core/args"
	"github.com/jellyctl/jellyctl/cmd/jellyctl/core/batch"
)

func (cli *cliUsers) delete(ctx context.Context, names []string) error {
	b := batch.New("users")

	for _, name := range names {
		err := b.Do(name, func() error {
			id, err := cli.userID(ctx, name)
			if err != nil {
				return err
			}

			if err := cli.client.Users.Delete(ctx, id); err != nil {
				return err
			}

			log.Infof("user %s deleted", name)

			return nil
		})
		if err != nil {
			return err
		}
	}

	return b.Err()
}

func (cli *cliUsers) newDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "delete NAME...",
		Short:             "Delete users",
		Example:           `jellyctl users delete alice bob`,
		Args:              args.MinimumNArgs(1),
		Aliases:           []string{"remove"},
		DisableAutoGenTag: true,
		ValidArgsFunction: cli.validUserName,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.delete(cmd.Context(), args)
		},
	}

	return cmd
}
