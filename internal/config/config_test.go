// SPDX-License-Identifier: MPL-2.0

package config

import (
	"path/filepath"
	"runtime"
	"testing"

	"arxiv-collector/internal/testutil"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Dest != "arxiv.tar.gz" {
		t.Errorf("expected default dest to be arxiv.tar.gz, got %s", cfg.Dest)
	}
	if cfg.Latexmk != "latexmk" {
		t.Errorf("expected default latexmk to be latexmk, got %s", cfg.Latexmk)
	}
	if cfg.Biber != "biber" {
		t.Errorf("expected default biber to be biber, got %s", cfg.Biber)
	}
	if len(cfg.Packages) != 1 || cfg.Packages[0] != "biblatex" {
		t.Errorf("expected default packages to be [biblatex], got %v", cfg.Packages)
	}
	if !cfg.StripComments {
		t.Error("expected StripComments to be true by default")
	}
	if cfg.IncludeBib {
		t.Error("expected IncludeBib to be false by default")
	}
}

func TestConfigDirXDG(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG convention only applies on linux")
	}
	defer testutil.MustSetenv(t, "XDG_CONFIG_HOME", "/tmp/test-xdg-config")()

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir failed: %v", err)
	}
	if dir != filepath.Join("/tmp/test-xdg-config", AppName) {
		t.Errorf("ConfigDir = %q", dir)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	SetConfigDirOverride(t.TempDir())
	defer SetConfigDirOverride("")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Dest != DefaultConfig().Dest {
		t.Errorf("dest = %q, want the default", cfg.Dest)
	}
}

func TestLoadReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	defer SetConfigDirOverride("")

	testutil.MustWriteFile(t, filepath.Join(dir, "config.yaml"),
		"dest: submission.tar.gz\npackages:\n  - biblatex\n  - tikz\nstrip_comments: false\n")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Dest != "submission.tar.gz" {
		t.Errorf("dest = %q", cfg.Dest)
	}
	if len(cfg.Packages) != 2 || cfg.Packages[1] != "tikz" {
		t.Errorf("packages = %v", cfg.Packages)
	}
	if cfg.StripComments {
		t.Error("strip_comments should be false from the config file")
	}
	if cfg.Latexmk != "latexmk" {
		t.Errorf("unset keys should keep defaults, latexmk = %q", cfg.Latexmk)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	SetConfigDirOverride(t.TempDir())
	defer SetConfigDirOverride("")
	defer testutil.MustSetenv(t, "ARXIV_COLLECTOR_LATEXMK", "/opt/texbin/latexmk")()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Latexmk != "/opt/texbin/latexmk" {
		t.Errorf("latexmk = %q, want the environment override", cfg.Latexmk)
	}
}
