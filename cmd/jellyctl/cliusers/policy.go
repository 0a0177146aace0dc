package cliusers

import (
	"context"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jellyctl/jellyctl/cmd/jellyctl/core/args"
	"github.com/jellyctl/jellyctl/cmd/jellyctl/core/batch"
)

const (
	policyDisabled      = "IsDisabled"
	policyAdministrator = "IsAdministrator"
)

// setFlag changes one policy flag for every named user.
func (cli *cliUsers) setFlag(ctx context.Context, names []string, flag string, value bool, done string) error {
	b := batch.New("users")

	for _, name := range names {
		err := b.Do(name, func() error {
			id, err := cli.userID(ctx, name)
			if err != nil {
				return err
			}

			if err := cli.client.Users.SetPolicyFlag(ctx, id, flag, value); err != nil {
				return err
			}

			log.Infof("user %s %s", name, done)

			return nil
		})
		if err != nil {
			return err
		}
	}

	return b.Err()
}

func (cli *cliUsers) newFlagCmd(use, short string, flag string, value bool, done string) *cobra.Command {
	cmd := &cobra.Command{
		Use:               use + " NAME...",
		Short:             short,
		Example:           "jellyctl users " + use + " alice",
		Args:              args.MinimumNArgs(1),
		DisableAutoGenTag: true,
		ValidArgsFunction: cli.validUserName,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.setFlag(cmd.Context(), args, flag, value, done)
		},
	}

	return cmd
}

func (cli *cliUsers) newEnableCmd() *cobra.Command {
	return cli.newFlagCmd("enable", "Allow users to log in", policyDisabled, false, "enabled")
}

func (cli *cliUsers) newDisableCmd() *cobra.Command {
	return cli.newFlagCmd("disable", "Prevent users from logging in", policyDisabled, true, "disabled")
}

func (cli *cliUsers) newGrantAdminCmd() *cobra.Command {
	return cli.newFlagCmd("grant-admin", "Give administrator rights to users", policyAdministrator, true, "is now an administrator")
}

func (cli *cliUsers) newRevokeAdminCmd() *cobra.Command {
	return cli.newFlagCmd("revoke-admin", "Take administrator rights away from users", policyAdministrator, false, "is no longer an administrator")
}
