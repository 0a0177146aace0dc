package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

type cliDoc struct{}

func NewCLIDoc() *cliDoc {
	return &cliDoc{}
}

func (cli cliDoc) NewCommand(rootCmd *cobra.Command) *cobra.Command {
	var target string

	cmd := &cobra.Command{
		Use:               "doc",
		Short:             "Generate the markdown documentation. The target directory must exist.",
		Args:              cobra.NoArgs,
		Hidden:            true,
		DisableAutoGenTag: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := doc.GenMarkdownTreeCustom(rootCmd, target, cli.filePrepender, cli.linkHandler); err != nil {
				return fmt.Errorf("failed to generate cobra doc: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&target, "target", "./doc/", "directory to write the documentation to")

	return cmd
}

func (cliDoc) filePrepender(filename string) string {
	const header = `---
id: %s
title: %s
---
`

	name := filepath.Base(filename)
	base := strings.TrimSuffix(name, filepath.Ext(name))

	return fmt.Sprintf(header, base, strings.ReplaceAll(base, "_", " "))
}

func (cliDoc) linkHandler(name string) string {
	return "/jellyctl/" + name
}
