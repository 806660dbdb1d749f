// SPDX-License-Identifier: MPL-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// Verbosity flags; mutually exclusive, mapped onto logger levels.
	verbose bool
	quiet   bool
	silent  bool
	debug   bool

	// logger is the process-wide logger. All progress, warning, and debug
	// output goes through it; the minimum level is set once from the
	// verbosity flags.
	logger = log.NewWithOptions(os.Stderr, log.Options{})

	// rootCmd represents the base command: collect the document's
	// dependencies into an archive.
	rootCmd = &cobra.Command{
		Use:   "arxiv-collector [BASE_NAME]",
		Short: "Package a LaTeX document for arXiv submission",
		Long: TitleStyle.Render("arxiv-collector") + SubtitleStyle.Render(" - Package a LaTeX document for arXiv submission") + `

arxiv-collector runs latexmk on your document, reads the dependency
listing it emits, and archives exactly the files the build actually
used: tex sources (with comments stripped), converted figures, the
compiled bibliography, and any system package files you opt into.

` + SubtitleStyle.Render("Examples:") + `
  arxiv-collector                 Guess the main file and build arxiv.tar.gz
  arxiv-collector paper           Collect paper.tex explicitly
  arxiv-collector -p tikz main    Also sweep in used tikz package files
  arxiv-collector fetch-latexmk   Download a known-good latexmk script`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCollect,
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "include some extra output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "default amount of output")
	rootCmd.PersistentFlags().BoolVar(&silent, "silent", false, "only print error messages")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "print lots and lots of output")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet", "silent", "debug")

	rootCmd.PersistentPreRun = func(*cobra.Command, []string) {
		configureLogger()
	}

	addCollectFlags(rootCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(configCmd)
}

// configureLogger maps the verbosity flags onto a single minimum level.
func configureLogger() {
	switch {
	case debug:
		logger.SetLevel(log.DebugLevel)
		logger.SetReportCaller(true)
	case verbose:
		logger.SetLevel(log.DebugLevel)
	case silent:
		logger.SetLevel(log.ErrorLevel)
	case quiet:
		logger.SetLevel(log.WarnLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the root command through fang. A failed subprocess carries
// its exit code out through ExitError.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}
