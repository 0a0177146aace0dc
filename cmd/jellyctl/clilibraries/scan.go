package clilibraries

import (
	"context"
	"fmt"
	"slices"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jellyctl/jellyctl/cmd/jellyctl/core/args"
	"github.com/jellyctl/jellyctl/pkg/apiclient"
)

const (
	scanNewUpdated      = "new-updated"
	scanMissingMetadata = "missing-metadata"
	scanReplaceMetadata = "replace-metadata"
	scanAll             = "all"
)

var scanTypes = []string{scanNewUpdated, scanMissingMetadata, scanReplaceMetadata, scanAll}

// refreshOpts maps a scan type to the refresh of a single library.
func refreshOpts(scanType string) (apiclient.RefreshOpts, error) {
	opts := apiclient.RefreshOpts{Recursive: true}

	switch scanType {
	case scanNewUpdated:
		opts.MetadataRefreshMode = "Default"
		opts.ImageRefreshMode = "Default"
	case scanMissingMetadata:
		opts.MetadataRefreshMode = "FullRefresh"
		opts.ImageRefreshMode = "FullRefresh"
	case scanReplaceMetadata:
		opts.MetadataRefreshMode = "FullRefresh"
		opts.ImageRefreshMode = "FullRefresh"
		opts.ReplaceAllMetadata = true
	default:
		return opts, fmt.Errorf("scan type %q does not apply to a single library, expected one of %s",
			scanType, strings.Join(scanTypes[:3], ", "))
	}

	return opts, nil
}

func (cli *cliLibraries) scan(ctx context.Context, libraryID, scanType string) error {
	if !slices.Contains(scanTypes, scanType) {
		return fmt.Errorf("unknown scan type %q, expected one of %s", scanType, strings.Join(scanTypes, ", "))
	}

	if libraryID == "" || libraryID == scanAll {
		if err := cli.client.Libraries.RefreshAll(ctx); err != nil {
			return fmt.Errorf("unable to start the scan: %w", err)
		}

		log.Info("scan of all libraries started")

		return nil
	}

	opts, err := refreshOpts(scanType)
	if err != nil {
		return err
	}

	if err := cli.client.Items.Refresh(ctx, libraryID, opts); err != nil {
		return fmt.Errorf("unable to start the scan of %s: %w", libraryID, err)
	}

	log.Infof("%s scan of library %s started", scanType, libraryID)

	return nil
}

func (cli *cliLibraries) newScanCmd() *cobra.Command {
	var scanType string

	cmd := &cobra.Command{
		Use:   "scan [ID]",
		Short: "Start a library scan",
		Long: `Without ID, scan every library for new and updated files. With ID, refresh
that library according to --scan-type.`,
		Example: `jellyctl libraries scan
jellyctl libraries scan f137a2dd21bbc1b99aa5c0f6bf02a805 --scan-type missing-metadata`,
		Args:              args.MaximumNArgs(1),
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			libraryID := ""
			if len(args) > 0 {
				libraryID = args[0]
			}

			// a single library defaults to the lightest refresh
			if libraryID != "" && !cmd.Flags().Changed("scan-type") {
				scanType = scanNewUpdated
			}

			return cli.scan(cmd.Context(), libraryID, scanType)
		},
	}

	cmd.Flags().StringVar(&scanType, "scan-type", scanAll, "kind of scan: "+strings.Join(scanTypes, ", "))
	_ = cmd.RegisterFlagCompletionFunc("scan-type", cobra.FixedCompletions(scanTypes, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}
