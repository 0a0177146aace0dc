package cliauth

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jellyctl/jellyctl/cmd/jellyctl/core/cstable"
	"github.com/jellyctl/jellyctl/cmd/jellyctl/core/output"
	"github.com/jellyctl/jellyctl/cmd/jellyctl/core/require"
	"github.com/jellyctl/jellyctl/pkg/credentials"
	"github.com/jellyctl/jellyctl/pkg/cwversion/constraint"
	"github.com/jellyctl/jellyctl/pkg/emoji"
)

type statusInfo struct {
	ConfigFile    string `csv:"config_file"    json:"config_file"`
	Status        string `csv:"status"         json:"status"`
	State         string `csv:"state"          json:"state"`
	ServerURL     string `csv:"server_url"     json:"server_url"`
	TokenKind     string `csv:"token"          json:"token"`
	OS            string `csv:"os"             json:"os"`
	ServerName    string `csv:"server_name"    json:"server_name,omitempty"`
	ServerVersion string `csv:"server_version" json:"server_version,omitempty"`
	Reachable     *bool  `csv:"reachable"      json:"reachable,omitempty"`
}

func (cli *cliAuth) status(ctx context.Context, out io.Writer, check bool) error {
	cfg := cli.cfg()

	info := statusInfo{
		ConfigFile: cfg.FilePath,
		Status:     cfg.Status,
		State:      credentials.StateOf(cfg).String(),
		ServerURL:  cfg.ServerURL,
		TokenKind:  cfg.TokenKind,
		OS:         cfg.OS,
	}

	if check && cfg.IsConfigured() {
		reachable := true

		client, err := require.Client(cfg)
		if err != nil {
			return err
		}

		sysinfo, err := client.System.Info(ctx)
		if err != nil {
			log.Errorf("server check failed: %s", err)

			reachable = false
		} else {
			info.ServerName = sysinfo.ServerName
			info.ServerVersion = sysinfo.Version

			if ok, err := constraint.Satisfies(sysinfo.Version, constraint.Server); err == nil && !ok {
				log.Warnf("server version %s is not supported (want %s)", sysinfo.Version, constraint.Server)
			}
		}

		info.Reachable = &reachable
	}

	return output.Render(out, output.OptionsFrom(cfg), []statusInfo{info}, statusTable)
}

func statusTable(t *cstable.Table, rows []statusInfo) {
	t.SetHeaders("Setting", "Value")

	for _, info := range rows {
		t.AddRow("Configuration file", info.ConfigFile)
		t.AddRow("Status", info.Status)
		t.AddRow("State", info.State)
		t.AddRow("Server URL", info.ServerURL)
		t.AddRow("Token", info.TokenKind)
		t.AddRow("OS", info.OS)

		if info.Reachable == nil {
			continue
		}

		reachable := emoji.CheckMark
		if !*info.Reachable {
			reachable = emoji.CrossMark
		}

		t.AddRow("Reachable", reachable)

		if info.ServerName != "" {
			t.AddRow("Server", fmt.Sprintf("%s (%s)", info.ServerName, info.ServerVersion))
		}
	}
}

func (cli *cliAuth) newStatusCmd() *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the stored configuration",
		Example: `jellyctl status
jellyctl status --check`,
		Args:              cobra.NoArgs,
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cli.status(cmd.Context(), color.Output, check)
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "contact the server with the stored key")

	return cmd
}
