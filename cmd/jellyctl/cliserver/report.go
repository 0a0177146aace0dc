package cliserver

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"github.com/blackfireio/osinfo"
	"github.com/crowdsecurity/go-cs-lib/version"
	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jellyctl/jellyctl/cmd/jellyctl/core/args"
	"github.com/jellyctl/jellyctl/cmd/jellyctl/core/cstable"
	"github.com/jellyctl/jellyctl/cmd/jellyctl/core/output"
	"github.com/jellyctl/jellyctl/pkg/cwversion/constraint"
	"github.com/jellyctl/jellyctl/pkg/emoji"
)

type serverReport struct {
	ClientVersion   string `json:"client_version" csv:"client_version"`
	ClientOS        string `json:"client_os" csv:"client_os"`
	ClientArch      string `json:"client_arch" csv:"client_arch"`
	ServerURL       string `json:"server_url" csv:"server_url"`
	ServerName      string `json:"server_name" csv:"server_name"`
	ServerID        string `json:"server_id" csv:"server_id"`
	ServerVersion   string `json:"server_version" csv:"server_version"`
	OperatingSystem string `json:"operating_system" csv:"operating_system"`
	Architecture    string `json:"architecture" csv:"architecture"`
	Supported       bool   `json:"supported" csv:"supported"`
	PendingRestart  bool   `json:"pending_restart" csv:"pending_restart"`
	UpdateAvailable bool   `json:"update_available" csv:"update_available"`
}

func clientOS() string {
	info, err := osinfo.GetOSInfo()
	if err != nil {
		log.Debugf("unable to collect OS info: %s", err)
		return runtime.GOOS
	}

	if info.Version == "" {
		return info.Name
	}

	return info.Name + " " + info.Version
}

func (cli *cliServer) collectReport(ctx context.Context) (*serverReport, error) {
	sysinfo, err := cli.client.System.Info(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to get server information: %w", err)
	}

	supported, err := constraint.Satisfies(sysinfo.Version, constraint.Server)
	if err != nil {
		log.Warnf("cannot compare the server version: %s", err)
	}

	osName := sysinfo.OperatingSystemDisplayName
	if osName == "" {
		osName = sysinfo.OperatingSystem
	}

	return &serverReport{
		ClientVersion:   version.String(),
		ClientOS:        clientOS(),
		ClientArch:      runtime.GOARCH,
		ServerURL:       cli.cfg().ServerURL,
		ServerName:      sysinfo.ServerName,
		ServerID:        sysinfo.ID,
		ServerVersion:   sysinfo.Version,
		OperatingSystem: osName,
		Architecture:    sysinfo.SystemArchitecture,
		Supported:       supported,
		PendingRestart:  sysinfo.HasPendingRestart,
		UpdateAvailable: sysinfo.HasUpdateAvailable,
	}, nil
}

func (cli *cliServer) report(ctx context.Context, out io.Writer) error {
	r, err := cli.collectReport(ctx)
	if err != nil {
		return err
	}

	opts := output.OptionsFrom(cli.cfg())

	switch opts.Format {
	case output.JSON:
		return output.WriteJSON(out, r)
	case output.CSV:
		return output.WriteCSV(out, []serverReport{*r})
	}

	t := cstable.NewLight(out, opts.Color)
	t.SetTitle("Server report")
	t.SetMaxWidth(0)
	t.AddRow("jellyctl", r.ClientVersion)
	t.AddRow("Client OS", r.ClientOS+" ("+r.ClientArch+")")
	t.AddRow("Server URL", r.ServerURL)
	t.AddRow("Server name", r.ServerName)
	t.AddRow("Server ID", r.ServerID)
	t.AddRow("Server version", r.ServerVersion)
	t.AddRow("Supported ("+constraint.Server+")", emoji.Bool(r.Supported))
	t.AddRow("Operating system", r.OperatingSystem)
	t.AddRow("Architecture", r.Architecture)
	t.AddRow("Pending restart", emoji.Bool(r.PendingRestart))
	t.AddRow("Update available", emoji.Bool(r.UpdateAvailable))
	t.Render()

	return nil
}

func (cli *cliServer) newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize the client and server versions for a bug report",
		Example: `jellyctl server report
jellyctl server report -o json`,
		Args:              args.NoArgs,
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cli.report(cmd.Context(), color.Output)
		},
	}

	return cmd
}
