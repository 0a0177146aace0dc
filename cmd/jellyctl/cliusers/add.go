package cliusers

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/jszwec/csvutil"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jellyctl/jellyctl/cmd/jellyctl/core/args"
	"github.com/jellyctl/jellyctl/cmd/jellyctl/core/batch"
	"github.com/jellyctl/jellyctl/pkg/idgen"
)

// userCredentials is one line of an import file.
type userCredentials struct {
	Username string `csv:"username"`
	Password string `csv:"password"`
}

func (cli *cliUsers) add(ctx context.Context, out io.Writer, name, password string) error {
	generated := false

	if password == "" {
		var err error

		password, err = idgen.GeneratePassword(idgen.PasswordLength)
		if err != nil {
			return err
		}

		generated = true
	}

	user, err := cli.client.Users.Create(ctx, name, password)
	if err != nil {
		return fmt.Errorf("unable to create user %s: %w", name, err)
	}

	log.Infof("user %s created with id %s", user.Name, user.ID)

	if generated {
		fmt.Fprintf(out, "password: %s\n", password)
	}

	return nil
}

func (cli *cliUsers) newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add NAME [PASSWORD]",
		Short: "Create a user",
		Long:  `Create a user. A random password is generated and shown when none is given.`,
		Example: `jellyctl users add alice s3cret
jellyctl users add bob`,
		Args:              args.RangeArgs(1, 2),
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			password := ""
			if len(args) > 1 {
				password = args[1]
			}

			return cli.add(cmd.Context(), color.Output, args[0], password)
		},
	}

	return cmd
}

// readCredentials decodes "username,password" lines. A header line is
// accepted but not required.
func readCredentials(r io.Reader) ([]userCredentials, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = 2

	dec, err := csvutil.NewDecoder(reader, "username", "password")
	if err != nil {
		return nil, err
	}

	ret := []userCredentials{}

	for {
		var c userCredentials

		if err := dec.Decode(&c); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}

			return nil, fmt.Errorf("line %d: %w", len(ret)+1, err)
		}

		if len(ret) == 0 && strings.EqualFold(c.Username, "username") && strings.EqualFold(c.Password, "password") {
			continue
		}

		ret = append(ret, c)
	}

	return ret, nil
}

func (cli *cliUsers) importUsers(ctx context.Context, file string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	creds, err := readCredentials(f)
	if err != nil {
		return fmt.Errorf("unable to read %s: %w", file, err)
	}

	b := batch.New("users")

	for _, c := range creds {
		err := b.Do(c.Username, func() error {
			if c.Username == "" || c.Password == "" {
				return errors.New("username and password are required")
			}

			user, err := cli.client.Users.Create(ctx, c.Username, c.Password)
			if err != nil {
				return err
			}

			log.Infof("user %s created with id %s", user.Name, user.ID)

			return nil
		})
		if err != nil {
			return err
		}
	}

	return b.Err()
}

func (cli *cliUsers) newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Create users from a CSV file",
		Long: `Create one user per "username,password" line of FILE. A failing line is
reported and the import goes on.`,
		Example:           `jellyctl users import users.csv`,
		Args:              args.ExactArgs(1),
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.importUsers(cmd.Context(), args[0])
		},
	}

	return cmd
}
