package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/fatih/color"
	cc "github.com/ivanpirog/coloredcobra"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jellyctl/jellyctl/cmd/jellyctl/cliauth"
	"github.com/jellyctl/jellyctl/cmd/jellyctl/clibackups"
	"github.com/jellyctl/jellyctl/cmd/jellyctl/clidevices"
	"github.com/jellyctl/jellyctl/cmd/jellyctl/clilibraries"
	"github.com/jellyctl/jellyctl/cmd/jellyctl/clilogs"
	"github.com/jellyctl/jellyctl/cmd/jellyctl/climedia"
	"github.com/jellyctl/jellyctl/cmd/jellyctl/cliplugins"
	"github.com/jellyctl/jellyctl/cmd/jellyctl/clireports"
	"github.com/jellyctl/jellyctl/cmd/jellyctl/cliserver"
	"github.com/jellyctl/jellyctl/cmd/jellyctl/clitasks"
	"github.com/jellyctl/jellyctl/cmd/jellyctl/cliusers"
	"github.com/jellyctl/jellyctl/cmd/jellyctl/core/output"
	"github.com/jellyctl/jellyctl/pkg/apiclient"
	"github.com/jellyctl/jellyctl/pkg/apiclient/useragent"
	"github.com/jellyctl/jellyctl/pkg/credentials"
	"github.com/jellyctl/jellyctl/pkg/csconfig"
	"github.com/jellyctl/jellyctl/pkg/cwversion"
	"github.com/jellyctl/jellyctl/pkg/idgen"
)

// commands that work without a credential
var noNeedCredential = []string{
	"initialize",
	"reconfigure",
	"logout",
	"status",
	"version",
	"completion",
	"help",
	"doc",
	cobra.ShellCompRequestCmd,
	cobra.ShellCompNoDescRequestCmd,
}

type cliRoot struct {
	logTrace    bool
	logDebug    bool
	logInfo     bool
	logWarn     bool
	logErr      bool
	outputFmt   string
	outputColor string
	configPath  string

	cfg     *csconfig.Config
	manager *credentials.Manager
	auth    firstRunner
}

type firstRunner interface {
	FirstRun(ctx context.Context) error
}

func newCliRoot() *cliRoot {
	return &cliRoot{}
}

func (cli *cliRoot) getConfig() *csconfig.Config {
	return cli.cfg
}

func (cli *cliRoot) setConfig(c *csconfig.Config) {
	cli.cfg = c
}

func (cli *cliRoot) wantedLogLevel() log.Level {
	switch {
	case cli.logTrace:
		return log.TraceLevel
	case cli.logDebug:
		return log.DebugLevel
	case cli.logInfo:
		return log.InfoLevel
	case cli.logWarn:
		return log.WarnLevel
	case cli.logErr:
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// loadConfig reads the configuration record and applies the rendering flags.
func (cli *cliRoot) loadConfig() error {
	log.SetLevel(cli.wantedLogLevel())

	format, err := output.ParseFormat(cli.outputFmt)
	if err != nil {
		return err
	}

	switch cli.outputColor {
	case "yes", "no", "auto":
	default:
		return fmt.Errorf("output color %q unknown, expected one of yes, no, auto", cli.outputColor)
	}

	path, err := csconfig.ResolveConfigPath(cli.configPath)
	if err != nil {
		return err
	}

	cfg, err := csconfig.LoadConfig(path)
	if err != nil {
		return err
	}

	log.Debugf("using %s as configuration file", cfg.FilePath)

	cfg.Output = string(format)
	cfg.Color = cli.outputColor

	if format == output.JSON {
		log.SetFormatter(&log.JSONFormatter{})
		log.SetLevel(log.ErrorLevel)
	}

	cli.cfg = cfg

	return nil
}

// ensureCredential upgrades a legacy record or runs the first-time setup.
func (cli *cliRoot) ensureCredential(ctx context.Context) error {
	cfg, err := cli.manager.Ensure(ctx, cli.cfg)

	switch {
	case errors.Is(err, credentials.ErrNotConfigured):
		return cli.auth.FirstRun(ctx)
	case err != nil:
		return err
	}

	cli.cfg = cfg

	return nil
}

func (cli *cliRoot) persistentPreRun(cmd *cobra.Command, _ []string) error {
	if err := cli.loadConfig(); err != nil {
		return err
	}

	// the top-level command below root decides
	top := cmd
	for top.HasParent() && top.Parent().HasParent() {
		top = top.Parent()
	}

	if !cmd.HasParent() || slices.Contains(noNeedCredential, top.Name()) {
		return nil
	}

	return cli.ensureCredential(cmd.Context())
}

// clientIdentity is sent with the login and the key exchange.
func clientIdentity() *apiclient.Identity {
	return &apiclient.Identity{
		Client:   apiclient.AppName,
		Device:   idgen.DeviceName(),
		DeviceID: idgen.DeviceID(),
		Version:  cwversion.String(),
	}
}

func (cli *cliRoot) NewCommand() *cobra.Command {
	cli.manager = credentials.NewManager(credentials.FileStore{},
		credentials.WithIdentity(clientIdentity()),
		credentials.WithUserAgent(useragent.Default()),
	)

	// set the formatter asap and worry about level later
	logFormatter := &log.TextFormatter{TimestampFormat: "2006-01-02 15:04:05", FullTimestamp: true}
	log.SetFormatter(logFormatter)

	cobra.EnableTraverseRunHooks = true

	cmd := &cobra.Command{
		Use:   "jellyctl",
		Short: "jellyctl manages a Jellyfin media server",
		Long: `jellyctl drives the administration API of a Jellyfin server: users, devices,
libraries, media, scheduled tasks, plugins, backups and logs.

Run 'jellyctl initialize' once to store an API key.`,
		DisableAutoGenTag: true,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: cli.persistentPreRun,
	}

	cc.Init(&cc.Config{
		RootCmd:       cmd,
		Headings:      cc.Yellow,
		Commands:      cc.Green + cc.Bold,
		CmdShortDescr: cc.Cyan,
		Example:       cc.Italic,
		ExecName:      cc.Bold,
		Aliases:       cc.Bold + cc.Italic,
		FlagsDataType: cc.White,
		Flags:         cc.Green,
		FlagsDescr:    cc.Cyan,
	})
	cmd.SetOut(color.Output)

	pflags := cmd.PersistentFlags()

	pflags.StringVarP(&cli.configPath, "config", "c", "", "path to the jellyctl configuration file")
	pflags.StringVarP(&cli.outputFmt, "output", "o", "", "Output format: table, csv, json")
	pflags.StringVarP(&cli.outputColor, "color", "", "auto", "Output color: yes, no, auto")
	pflags.BoolVar(&cli.logDebug, "debug", false, "Set logging to debug")
	pflags.BoolVar(&cli.logInfo, "info", false, "Set logging to info")
	pflags.BoolVar(&cli.logWarn, "warning", false, "Set logging to warning")
	pflags.BoolVar(&cli.logErr, "error", false, "Set logging to error")
	pflags.BoolVar(&cli.logTrace, "trace", false, "Set logging to trace")

	// don't sort flags so we can enforce order
	cmd.Flags().SortFlags = false
	pflags.SortFlags = false

	auth := cliauth.New(cli.getConfig, cli.setConfig, cli.manager)
	cli.auth = auth

	for _, sub := range auth.NewCommands() {
		cmd.AddCommand(sub)
	}

	cmd.AddCommand(NewCLIDoc().NewCommand(cmd))
	cmd.AddCommand(NewCLIVersion().NewCommand())
	cmd.AddCommand(NewCompletionCmd())
	cmd.AddCommand(cliusers.New(cli.getConfig).NewCommand())
	cmd.AddCommand(clidevices.New(cli.getConfig).NewCommand())
	cmd.AddCommand(clilibraries.New(cli.getConfig).NewCommand())
	cmd.AddCommand(climedia.New(cli.getConfig).NewCommand())
	cmd.AddCommand(clitasks.New(cli.getConfig).NewCommand())
	cmd.AddCommand(cliplugins.New(cli.getConfig).NewCommand())
	cmd.AddCommand(clibackups.New(cli.getConfig).NewCommand())
	cmd.AddCommand(cliserver.New(cli.getConfig).NewCommand())
	cmd.AddCommand(clilogs.New(cli.getConfig).NewCommand())
	cmd.AddCommand(clireports.New(cli.getConfig).NewCommand())

	return cmd
}

// exitCode logs the error returned by a command and tells how the process
// must exit.
func exitCode(err error) int {
	var violation *apiclient.ContractViolation

	switch {
	case err == nil:
		return 0
	case errors.Is(err, cliauth.ErrSetupDone):
		log.Info(err)
		return 0
	case errors.As(err, &violation):
		log.WithField("contract_violation", true).Error(err)
		return 1
	default:
		log.Error(err)
		return 1
	}
}

func main() {
	cmd := newCliRoot().NewCommand()

	os.Exit(exitCode(cmd.Execute()))
}
