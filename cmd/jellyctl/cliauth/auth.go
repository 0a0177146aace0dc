package cliauth

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	isatty "github.com/mattn/go-isatty"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jellyctl/jellyctl/pkg/credentials"
	"github.com/jellyctl/jellyctl/pkg/csconfig"
)

type (
	configGetter = func() *csconfig.Config
	configSetter = func(*csconfig.Config)
)

type cliAuth struct {
	cfg     configGetter
	setCfg  configSetter
	manager *credentials.Manager
	// stdin is where --stdin reads the password from
	stdin io.Reader
	// interactive tells whether prompts can be shown
	interactive func() bool
}

func New(cfg configGetter, setCfg configSetter, manager *credentials.Manager) *cliAuth {
	return &cliAuth{
		cfg:     cfg,
		setCfg:  setCfg,
		manager: manager,
		stdin:   os.Stdin,
		interactive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	}
}

// NewCommands returns the top-level commands managing the credential.
func (cli *cliAuth) NewCommands() []*cobra.Command {
	return []*cobra.Command{
		cli.newInitializeCmd(),
		cli.newReconfigureCmd(),
		cli.newLogoutCmd(),
		cli.newStatusCmd(),
	}
}

// prepareServerURL accepts a bare host:port and defaults to http.
func prepareServerURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("no server URL provided")
	}

	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("failed to parse server URL %q: %w", raw, err)
	}

	if u.Host == "" {
		return "", fmt.Errorf("server URL %q has no host", raw)
	}

	return strings.TrimSuffix(u.String(), "/"), nil
}

func (cli *cliAuth) readPasswordFromStdin() (string, error) {
	reader := bufio.NewReader(cli.stdin)

	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading password from stdin: %w", err)
	}

	return strings.TrimRight(line, "\r\n"), nil
}

// completeLogin fills the missing parts of login, prompting when possible.
func (cli *cliAuth) completeLogin(login *credentials.Login, fromStdin bool) error {
	var err error

	if fromStdin {
		if login.Password, err = cli.readPasswordFromStdin(); err != nil {
			return err
		}
	}

	canPrompt := cli.interactive()

	if login.ServerURL == "" {
		if !canPrompt {
			return errors.New("please provide the server URL with --url")
		}

		if err := survey.AskOne(&survey.Input{
			Message: "Server URL:",
			Help:    "for example http://192.168.1.10:8096",
		}, &login.ServerURL, survey.WithValidator(survey.Required)); err != nil {
			return err
		}
	}

	if login.ServerURL, err = prepareServerURL(login.ServerURL); err != nil {
		return err
	}

	if login.Username == "" {
		if !canPrompt {
			return errors.New("please provide an administrator username with --username")
		}

		if err := survey.AskOne(&survey.Input{Message: "Administrator username:"}, &login.Username, survey.WithValidator(survey.Required)); err != nil {
			return err
		}
	}

	if login.Password == "" && !fromStdin {
		if !canPrompt {
			return errors.New("please provide a password with --password or --stdin")
		}

		if err := survey.AskOne(&survey.Password{Message: "Password:"}, &login.Password); err != nil {
			return err
		}
	}

	return nil
}

func (cli *cliAuth) initialize(ctx context.Context, login credentials.Login, fromStdin bool) error {
	if err := cli.completeLogin(&login, fromStdin); err != nil {
		return err
	}

	newCfg, err := cli.manager.Initialize(ctx, cli.cfg(), login)
	if err != nil {
		return err
	}

	cli.setCfg(newCfg)

	log.Infof("jellyctl is configured for %s, credentials saved in %s", newCfg.ServerURL, newCfg.FilePath)

	return nil
}

// ErrSetupDone is returned after a first-run setup replaced the command
// the user asked for.
var ErrSetupDone = errors.New("initial setup complete, run your command again")

// FirstRun runs the interactive setup when the record was never configured
// and a terminal is attached. It returns ErrSetupDone on success and
// credentials.ErrNotConfigured when no prompt can be shown.
func (cli *cliAuth) FirstRun(ctx context.Context) error {
	if !cli.interactive() {
		return credentials.ErrNotConfigured
	}

	fmt.Fprintln(os.Stderr, "jellyctl is not configured yet, let's connect it to your server.")

	if err := cli.initialize(ctx, credentials.Login{}, false); err != nil {
		return err
	}

	return ErrSetupDone
}

func (cli *cliAuth) newInitializeCmd() *cobra.Command {
	var (
		login     credentials.Login
		fromStdin bool
	)

	cmd := &cobra.Command{
		Use:   "initialize",
		Short: "Log in to a server and store an API key",
		Long: `Log in with an administrator account, then create or reuse the API key
of jellyctl. Only the API key is stored, never the password.`,
		Example: `jellyctl initialize --url http://jellyfin:8096 --username admin --password secret
echo "secret" | jellyctl initialize --url http://jellyfin:8096 --username admin --stdin
jellyctl initialize   # prompts for everything`,
		Args:              cobra.NoArgs,
		Aliases:           []string{"init", "login"},
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cli.initialize(cmd.Context(), login, fromStdin)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&login.ServerURL, "url", "", "server URL, http:// is assumed without a scheme")
	flags.StringVarP(&login.Username, "username", "u", "", "administrator username")
	flags.StringVarP(&login.Password, "password", "p", "", "password")
	flags.BoolVar(&fromStdin, "stdin", false, "read the password from the first line of stdin")
	cmd.MarkFlagsMutuallyExclusive("password", "stdin")

	return cmd
}

func (cli *cliAuth) reconfigure(ctx context.Context, login credentials.Login, fromStdin bool) error {
	current := cli.cfg()

	if login.ServerURL == "" {
		login.ServerURL = current.ServerURL
	}

	if err := cli.completeLogin(&login, fromStdin); err != nil {
		return err
	}

	newCfg, err := cli.manager.Reconfigure(ctx, current, login)
	if err != nil {
		return err
	}

	cli.setCfg(newCfg)

	log.Infof("jellyctl is reconfigured for %s", newCfg.ServerURL)

	return nil
}

func (cli *cliAuth) newReconfigureCmd() *cobra.Command {
	var (
		login     credentials.Login
		fromStdin bool
	)

	cmd := &cobra.Command{
		Use:               "reconfigure",
		Short:             "Log in again and replace the stored API key",
		Example:           `jellyctl reconfigure`,
		Args:              cobra.NoArgs,
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cli.reconfigure(cmd.Context(), login, fromStdin)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&login.ServerURL, "url", "", "server URL, defaults to the configured one")
	flags.StringVarP(&login.Username, "username", "u", "", "administrator username")
	flags.StringVarP(&login.Password, "password", "p", "", "password")
	flags.BoolVar(&fromStdin, "stdin", false, "read the password from the first line of stdin")
	cmd.MarkFlagsMutuallyExclusive("password", "stdin")

	return cmd
}

func (cli *cliAuth) newLogoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "logout",
		Short:             "Forget the stored API key",
		Long:              `Reset the configuration. The key is not revoked on the server.`,
		Example:           `jellyctl logout`,
		Args:              cobra.NoArgs,
		DisableAutoGenTag: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			newCfg, err := cli.manager.Logout(cli.cfg())
			if err != nil {
				return err
			}

			cli.setCfg(newCfg)

			log.Infof("credentials removed from %s", newCfg.FilePath)

			return nil
		},
	}

	return cmd
}
