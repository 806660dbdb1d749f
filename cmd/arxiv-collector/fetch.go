// SPDX-License-Identifier: MPL-2.0

package main

import (
	"arxiv-collector/internal/latexmk"

	"github.com/spf13/cobra"
)

var fetchVersion string

// fetchCmd downloads a known-good latexmk script, for users whose
// installed version has broken dependency tracking.
var fetchCmd = &cobra.Command{
	Use:   "fetch-latexmk [PATH]",
	Short: "Download a working latexmk script",
	Long: `Download the latexmk script from CTAN (or a specific version from the
author's archive) and save it with the execute bits set. Useful when the
installed latexmk has broken dependency tracking; pass the saved path
back via ` + CmdStyle.Render("--latexmk") + `.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dest := "latexmk"
		if len(args) > 0 {
			dest = args[0]
		}
		return latexmk.Fetch(cmd.Context(), logger, fetchVersion, dest)
	},
}

func init() {
	fetchCmd.Flags().StringVar(&fetchVersion, "version", latexmk.VersionCTAN,
		`latexmk version to fetch ("ctan" for the current release)`)
}
