package cliusers

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jellyctl/jellyctl/cmd/jellyctl/core/require"
	"github.com/jellyctl/jellyctl/pkg/apiclient"
	"github.com/jellyctl/jellyctl/pkg/csconfig"
)

type configGetter = func() *csconfig.Config

type cliUsers struct {
	cfg    configGetter
	client *apiclient.ApiClient
}

func New(cfg configGetter) *cliUsers {
	return &cliUsers{
		cfg: cfg,
	}
}

func (cli *cliUsers) NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "users [action]",
		Short:             "Manage the accounts of the server",
		Args:              cobra.MinimumNArgs(1),
		Aliases:           []string{"user"},
		DisableAutoGenTag: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			var err error

			cli.client, err = require.Client(cli.cfg())

			return err
		},
	}

	cmd.AddCommand(cli.newListCmd())
	cmd.AddCommand(cli.newAddCmd())
	cmd.AddCommand(cli.newImportCmd())
	cmd.AddCommand(cli.newDeleteCmd())
	cmd.AddCommand(cli.newEnableCmd())
	cmd.AddCommand(cli.newDisableCmd())
	cmd.AddCommand(cli.newGrantAdminCmd())
	cmd.AddCommand(cli.newRevokeAdminCmd())
	cmd.AddCommand(cli.newResetPasswordCmd())
	cmd.AddCommand(cli.newUpdateCmd())
	cmd.AddCommand(cli.newRemoveDevicesCmd())

	return cmd
}

// validUserName returns the user names for command completion
func (cli *cliUsers) validUserName(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	// PersistentPreRunE is not called for completions
	client, err := require.Client(cli.cfg())
	if err != nil {
		cobra.CompError("unable to list users " + err.Error())
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	users, err := client.Users.List(cmd.Context())
	if err != nil {
		cobra.CompError("unable to list users " + err.Error())
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	ret := []string{}

	for _, u := range users {
		if strings.HasPrefix(strings.ToLower(u.Name), strings.ToLower(toComplete)) && !containsFold(args, u.Name) {
			ret = append(ret, u.Name)
		}
	}

	return ret, cobra.ShellCompDirectiveNoFileComp
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}

	return false
}

// userID resolves a user name to its identifier.
func (cli *cliUsers) userID(ctx context.Context, name string) (string, error) {
	user, err := cli.client.Users.FindByName(ctx, name)
	if err != nil {
		return "", err
	}

	return user.ID, nil
}
