// SPDX-License-Identifier: MPL-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"

	"arxiv-collector/internal/biber"
	"arxiv-collector/internal/collect"
	"arxiv-collector/internal/config"
	"arxiv-collector/internal/deps"
	"arxiv-collector/internal/issue"
	"arxiv-collector/internal/latexmk"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var (
	flagDest        string
	flagIncludeBib  bool
	flagExtractBib  string
	flagPackages    []string
	flagSkipBib     bool
	flagLatexmk     string
	flagLatexmkDeps string
	flagStrip       bool
	flagNoStrip     bool
)

func addCollectFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagDest, "dest", "arxiv.tar.gz", "output archive path")
	cmd.Flags().BoolVar(&flagIncludeBib, "include-bib", false, "include used .bib files, even though arXiv will ignore them")
	cmd.Flags().StringVar(&flagExtractBib, "extract-bib", "", "add a .bib file under this name containing only the used entries")
	cmd.Flags().StringArrayVarP(&flagPackages, "include-package", "p", nil, "include a system package's files if used; repeatable")
	cmd.Flags().BoolVar(&flagSkipBib, "skip-biblatex", false, "don't include biblatex files even if biblatex is used")
	cmd.Flags().StringVar(&flagLatexmk, "latexmk", latexmk.DefaultBinary, "path to the latexmk command")
	cmd.Flags().StringVar(&flagLatexmkDeps, "latexmk-deps", "", "skip the build and reuse this pre-existing dependency listing")
	cmd.Flags().BoolVar(&flagStrip, "strip-comments", true, "strip comments from all .tex files")
	cmd.Flags().BoolVar(&flagNoStrip, "no-strip-comments", false, "don't strip comments from any .tex files")
	cmd.MarkFlagsMutuallyExclusive("strip-comments", "no-strip-comments")
}

// collectSettings is the fully resolved input for one run: config file
// defaults overlaid with whatever flags were set explicitly.
type collectSettings struct {
	dest          string
	latexmkBin    string
	biberBin      string
	packages      []string
	stripComments bool
	includeBib    bool
}

func resolveSettings(cmd *cobra.Command) *collectSettings {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+err.Error())
		cfg = config.DefaultConfig()
	}

	s := &collectSettings{
		dest:          cfg.Dest,
		latexmkBin:    cfg.Latexmk,
		biberBin:      cfg.Biber,
		packages:      cfg.Packages,
		stripComments: cfg.StripComments,
		includeBib:    cfg.IncludeBib,
	}
	if cmd.Flags().Changed("dest") {
		s.dest = flagDest
	}
	if cmd.Flags().Changed("latexmk") {
		s.latexmkBin = flagLatexmk
	}
	if cmd.Flags().Changed("strip-comments") {
		s.stripComments = flagStrip
	}
	if flagNoStrip {
		s.stripComments = false
	}
	if flagIncludeBib {
		s.includeBib = true
	}
	s.packages = append(s.packages, flagPackages...)
	if flagSkipBib {
		s.packages = slices.DeleteFunc(s.packages, func(p string) bool {
			return p == "biblatex"
		})
	}
	return s
}

func runCollect(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s := resolveSettings(cmd)

	depsPath := flagLatexmkDeps
	transientDeps := false
	var expectedSource string

	if depsPath == "" {
		version, err := latexmk.Version(ctx, s.latexmkBin)
		if err != nil {
			return issue.WrapWithOperation(err, "determine latexmk version").
				WithSuggestion("pass --latexmk with the path to a latexmk binary")
		}
		logger.Debug("latexmk version", "version", version)
		if err := latexmk.CheckVersion(version); err != nil {
			return err
		}

		baseName, err := resolveBaseName(args)
		if err != nil {
			return err
		}
		expectedSource = baseName + ".tex"

		logger.Info("building", "base", baseName)
		depsPath, err = latexmk.GenerateDeps(ctx, logger, s.latexmkBin, baseName)
		if err != nil {
			var buildErr *latexmk.BuildError
			if errors.As(err, &buildErr) {
				fmt.Fprintln(os.Stderr, buildErr.Error())
				return &ExitError{Code: buildErr.ExitCode, Err: buildErr}
			}
			return err
		}
		transientDeps = true
	}

	logger.Info("gathering outputs", "deps", depsPath)

	f, err := os.Open(depsPath)
	if err != nil {
		return issue.WrapWithContext(err, "open dependency listing", depsPath)
	}
	listing, err := deps.Parse(f, deps.Options{
		SourceName:    expectedSource,
		Packages:      s.packages,
		StripComments: s.stripComments,
	})
	f.Close()
	if err != nil {
		return issue.WrapWithContext(err, "parse dependency listing", depsPath).
			WithSuggestion("the listing may come from an unsupported latexmk version; try fetch-latexmk")
	}
	logger.Debug("parsed listing",
		"source", listing.SourceName, "job", listing.JobName, "entries", len(listing.Entries))

	opts := collect.Options{
		IncludeBib:     s.includeBib,
		ExtractBibName: flagExtractBib,
		Logger:         logger,
	}
	if flagExtractBib != "" {
		baseName := listing.BaseName
		biberBin := s.biberBin
		opts.ExtractBib = func(ctx context.Context) ([]byte, error) {
			logger.Info("running biber", "bcf", baseName+".bcf")
			return biber.Extract(ctx, biberBin, baseName)
		}
	}

	result, err := collect.Run(ctx, listing, s.dest, opts)
	if err != nil {
		return issue.WrapWithContext(err, "assemble archive", s.dest)
	}

	// The listing was generated into a scratch path for this run only;
	// a caller-provided --latexmk-deps file is left alone.
	if transientDeps {
		if err := os.Remove(depsPath); err != nil {
			logger.Warn("couldn't remove dependency listing", "path", depsPath, "err", err)
		}
	}

	logger.Info("output written",
		"path", result.Path,
		"files", result.Members,
		"compressed", humanize.IBytes(uint64(result.CompressedSize)))
	return nil
}
