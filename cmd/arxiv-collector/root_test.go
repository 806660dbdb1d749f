// SPDX-License-Identifier: MPL-2.0

package main

import (
	"errors"
	"slices"
	"testing"

	"arxiv-collector/internal/config"

	"github.com/spf13/cobra"
)

func TestExitError(t *testing.T) {
	inner := errors.New("build broke")
	err := &ExitError{Code: 3, Err: inner}
	if err.Error() != "build broke" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("ExitError should unwrap to its cause")
	}

	bare := &ExitError{Code: 2}
	if bare.Error() != "exit status 2" {
		t.Errorf("Error() = %q", bare.Error())
	}
}

// newCollectCommand builds a throwaway command with the collect flag set,
// so flag-resolution tests don't disturb the real rootCmd.
func newCollectCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "test", Run: func(*cobra.Command, []string) {}}
	addCollectFlags(cmd)
	return cmd
}

func TestResolveSettingsDefaults(t *testing.T) {
	config.SetConfigDirOverride(t.TempDir())
	defer config.SetConfigDirOverride("")
	resetCollectFlags(t)

	cmd := newCollectCommand()
	s := resolveSettings(cmd)

	if s.dest != "arxiv.tar.gz" {
		t.Errorf("dest = %q", s.dest)
	}
	if !slices.Equal(s.packages, []string{"biblatex"}) {
		t.Errorf("packages = %v", s.packages)
	}
	if !s.stripComments {
		t.Error("stripComments should default to true")
	}
	if s.includeBib {
		t.Error("includeBib should default to false")
	}
}

func TestResolveSettingsFlagOverrides(t *testing.T) {
	config.SetConfigDirOverride(t.TempDir())
	defer config.SetConfigDirOverride("")
	resetCollectFlags(t)

	cmd := newCollectCommand()
	for flag, value := range map[string]string{
		"dest":              "out.tar.gz",
		"include-package":   "tikz",
		"skip-biblatex":     "true",
		"no-strip-comments": "true",
		"include-bib":       "true",
	} {
		if err := cmd.Flags().Set(flag, value); err != nil {
			t.Fatalf("set flag %s: %v", flag, err)
		}
	}

	s := resolveSettings(cmd)
	if s.dest != "out.tar.gz" {
		t.Errorf("dest = %q", s.dest)
	}
	if !slices.Equal(s.packages, []string{"tikz"}) {
		t.Errorf("packages = %v, want biblatex removed and tikz appended", s.packages)
	}
	if s.stripComments {
		t.Error("no-strip-comments should disable stripping")
	}
	if !s.includeBib {
		t.Error("include-bib should enable bib inclusion")
	}
}

// resetCollectFlags restores the package-level flag variables that
// addCollectFlags binds, since they are shared across tests.
func resetCollectFlags(t *testing.T) {
	t.Helper()
	flagDest = "arxiv.tar.gz"
	flagIncludeBib = false
	flagExtractBib = ""
	flagPackages = nil
	flagSkipBib = false
	flagLatexmk = "latexmk"
	flagLatexmkDeps = ""
	flagStrip = true
	flagNoStrip = false
	t.Cleanup(func() {
		flagDest = "arxiv.tar.gz"
		flagIncludeBib = false
		flagExtractBib = ""
		flagPackages = nil
		flagSkipBib = false
		flagLatexmk = "latexmk"
		flagLatexmkDeps = ""
		flagStrip = true
		flagNoStrip = false
	})
}
