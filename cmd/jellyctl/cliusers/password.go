package cliusers

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jellyctl/jellyctl/cmd/jellyctl/core/args"
	"github.com/jellyctl/jellyctl/pkg/idgen"
)

func (cli *cliUsers) resetPassword(ctx context.Context, out io.Writer, name, password string) error {
	id, err := cli.userID(ctx, name)
	if err != nil {
		return err
	}

	generated := false

	if password == "" {
		password, err = idgen.GeneratePassword(idgen.PasswordLength)
		if err != nil {
			return err
		}

		generated = true
	}

	if err := cli.client.Users.ResetPassword(ctx, id, password); err != nil {
		return fmt.Errorf("unable to reset the password of %s: %w", name, err)
	}

	log.Infof("password of %s updated", name)

	if generated {
		fmt.Fprintf(out, "password: %s\n", password)
	}

	return nil
}

func (cli *cliUsers) newResetPasswordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset-password NAME [PASSWORD]",
		Short: "Set the password of a user",
		Long:  `Set the password of a user. A random password is generated and shown when none is given.`,
		Example: `jellyctl users reset-password alice n3w-s3cret
jellyctl users reset-password alice`,
		Args:              args.RangeArgs(1, 2),
		DisableAutoGenTag: true,
		ValidArgsFunction: cli.validUserName,
		RunE: func(cmd *cobra.Command, args []string) error {
			password := ""
			if len(args) > 1 {
				password = args[1]
			}

			return cli.resetPassword(cmd.Context(), color.Output, args[0], password)
		},
	}

	return cmd
}
