// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper. A YAML
// config file in the platform config directory provides defaults for the
// CLI flags; environment variables with the ARXIV_COLLECTOR_ prefix
// override the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name, used for the config directory.
	AppName = "arxiv-collector"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "yaml"

	// envPrefix namespaces environment overrides, e.g.
	// ARXIV_COLLECTOR_LATEXMK=/opt/texbin/latexmk.
	envPrefix = "ARXIV_COLLECTOR"
)

//nolint:gochecknoglobals // Test seam for the config directory.
var configDirOverride string

// Config holds the tool's configurable defaults. Every field can be
// overridden by the corresponding CLI flag.
type Config struct {
	// Dest is the output archive path.
	Dest string `mapstructure:"dest"`
	// Latexmk is the build orchestrator binary to invoke.
	Latexmk string `mapstructure:"latexmk"`
	// Biber is the bibliography backend binary to invoke.
	Biber string `mapstructure:"biber"`
	// Packages are the system package names swept into the archive when
	// referenced from absolute paths.
	Packages []string `mapstructure:"packages"`
	// StripComments controls comment stripping in .tex sources.
	StripComments bool `mapstructure:"strip_comments"`
	// IncludeBib archives used .bib databases verbatim.
	IncludeBib bool `mapstructure:"include_bib"`
}

// DefaultConfig returns the built-in defaults, matching the CLI flag
// defaults.
func DefaultConfig() *Config {
	return &Config{
		Dest:          "arxiv.tar.gz",
		Latexmk:       "latexmk",
		Biber:         "biber",
		Packages:      []string{"biblatex"},
		StripComments: true,
		IncludeBib:    false,
	}
}

// SetConfigDirOverride forces the config directory, for tests.
func SetConfigDirOverride(dir string) { configDirOverride = dir }

// ConfigDir returns the configuration directory using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application
// Support, and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string
	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}
	return filepath.Join(configDir, AppName), nil
}

// ConfigFilePath returns the full path of the config file, whether or not
// it exists.
func ConfigFilePath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName+"."+ConfigFileExt), nil
}

// Load reads the config file and environment overrides. A missing config
// file is not an error; the defaults are returned.
func Load() (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("dest", defaults.Dest)
	v.SetDefault("latexmk", defaults.Latexmk)
	v.SetDefault("biber", defaults.Biber)
	v.SetDefault("packages", defaults.Packages)
	v.SetDefault("strip_comments", defaults.StripComments)
	v.SetDefault("include_bib", defaults.IncludeBib)

	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	v.SetConfigName(ConfigFileName)
	v.SetConfigType(ConfigFileExt)
	v.AddConfigPath(dir)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
