// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"
	"strings"

	"arxiv-collector/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the resolved configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the resolved configuration values",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, TitleStyle.Render("arxiv-collector configuration"))
		fmt.Fprintf(out, "dest:           %s\n", cfg.Dest)
		fmt.Fprintf(out, "latexmk:        %s\n", cfg.Latexmk)
		fmt.Fprintf(out, "biber:          %s\n", cfg.Biber)
		fmt.Fprintf(out, "packages:       %s\n", strings.Join(cfg.Packages, ", "))
		fmt.Fprintf(out, "strip_comments: %t\n", cfg.StripComments)
		fmt.Fprintf(out, "include_bib:    %t\n", cfg.IncludeBib)
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, err := config.ConfigFilePath()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
}
