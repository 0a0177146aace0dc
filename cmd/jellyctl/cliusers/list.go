package cliusers

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jellyctl/jellyctl/cmd/jellyctl/core/args"
	"github.com/jellyctl/jellyctl/cmd/jellyctl/core/cstable"
	"github.com/jellyctl/jellyctl/cmd/jellyctl/core/output"
	"github.com/jellyctl/jellyctl/pkg/emoji"
	"github.com/jellyctl/jellyctl/pkg/models"
)

// userInfo contains only the data we want for the table and csv views
type userInfo struct {
	Name          string `csv:"name"`
	ID            string `csv:"id"`
	Administrator bool   `csv:"administrator"`
	Disabled      bool   `csv:"disabled"`
	HasPassword   bool   `csv:"has_password"`
	LastLogin     string `csv:"last_login"`
	LastActivity  string `csv:"last_activity"`
}

func newUserInfo(u *models.User) userInfo {
	return userInfo{
		Name:          u.Name,
		ID:            u.ID,
		Administrator: u.Policy.IsAdministrator,
		Disabled:      u.Policy.IsDisabled,
		HasPassword:   u.HasPassword,
		LastLogin:     u.LastLoginDate,
		LastActivity:  u.LastActivityDate,
	}
}

func usersTable(t *cstable.Table, users []userInfo) {
	t.SetHeaders("Name", "ID", "Enabled", "Admin", "Last login")

	for _, u := range users {
		enabled := emoji.CheckMark
		if u.Disabled {
			enabled = emoji.Prohibited
		}

		admin := ""
		if u.Administrator {
			admin = emoji.CheckMark
		}

		t.AddRow(u.Name, u.ID, enabled, admin, u.LastLogin)
	}
}

func exportFileName(username string) string {
	if username == "" {
		return "exported-user-info.json"
	}

	return fmt.Sprintf("exported-user-info-%s.json", username)
}

func (cli *cliUsers) list(ctx context.Context, out io.Writer, username string, export bool, file string) error {
	var (
		users []models.User
		err   error
	)

	if username == "" {
		users, err = cli.client.Users.List(ctx)
		if err != nil {
			return fmt.Errorf("unable to list users: %w", err)
		}
	} else {
		user, err := cli.client.Users.FindByName(ctx, username)
		if err != nil {
			return err
		}

		// the list does not carry the configuration
		full, err := cli.client.Users.Get(ctx, user.ID)
		if err != nil {
			return fmt.Errorf("unable to get user %s: %w", username, err)
		}

		users = []models.User{*full}
	}

	if export {
		if file == "" {
			file = exportFileName(username)
		}

		f, err := os.OpenFile(file, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
		if err != nil {
			return fmt.Errorf("unable to create %s: %w", file, err)
		}
		defer f.Close()

		var v any = users
		if username != "" {
			v = users[0]
		}

		if err := output.WriteJSON(f, v); err != nil {
			return err
		}

		log.Infof("user information exported to %s", file)

		return nil
	}

	opts := output.OptionsFrom(cli.cfg())

	// json carries the complete records
	if opts.Format == output.JSON {
		return output.WriteJSON(out, users)
	}

	rows := make([]userInfo, len(users))
	for i := range users {
		rows[i] = newUserInfo(&users[i])
	}

	return output.Render(out, opts, rows, usersTable)
}

func (cli *cliUsers) newListCmd() *cobra.Command {
	var (
		username string
		export   bool
		file     string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the users",
		Example: `jellyctl users list
jellyctl users list --username alice -o json
jellyctl users list --export --file users.json`,
		Args:              args.NoArgs,
		Aliases:           []string{"ls"},
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cli.list(cmd.Context(), color.Output, username, export, file)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&username, "username", "u", "", "only show this user")
	flags.BoolVarP(&export, "export", "e", false, "write the complete user records to a JSON file")
	flags.StringVarP(&file, "file", "f", "", "file to export to (default exported-user-info[-USERNAME].json)")

	return cmd
}
