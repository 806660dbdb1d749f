// SPDX-License-Identifier: MPL-2.0

package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

var (
	// ErrAmbiguousBaseName is returned when several .tex files are present
	// and none (or more than one) of the preferred names disambiguates.
	ErrAmbiguousBaseName = errors.New("ambiguous base name")
	// ErrNoBaseNameFound is returned when the working directory holds no
	// .tex files at all.
	ErrNoBaseNameFound = errors.New("no base name found")
)

// preferredBaseNames break ties when several .tex files exist.
var preferredBaseNames = []string{"main", "paper"}

// resolveBaseName returns the document base name from the positional
// argument, or detects it among the .tex files in the working directory.
func resolveBaseName(args []string) (string, error) {
	var name string
	if len(args) > 0 && args[0] != "" {
		name = args[0]
	} else {
		detected, err := detectBaseName()
		if err != nil {
			return "", err
		}
		name = detected
	}
	name = strings.TrimSuffix(name, ".tex")
	if err := validateBaseName(name); err != nil {
		return "", err
	}
	return name, nil
}

// detectBaseName guesses the main document: the sole .tex file, or among
// several the one named main or paper.
func detectBaseName() (string, error) {
	matches, err := filepath.Glob("*.tex")
	if err != nil {
		return "", fmt.Errorf("scan for .tex files: %w", err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("%w: no .tex files in the current directory; pass BASE_NAME", ErrNoBaseNameFound)
	}

	cands := make([]string, 0, len(matches))
	for _, m := range matches {
		cands = append(cands, strings.TrimSuffix(m, ".tex"))
	}
	if len(cands) > 1 {
		cands = slices.DeleteFunc(cands, func(c string) bool {
			return !slices.Contains(preferredBaseNames, c)
		})
	}
	if len(cands) == 1 {
		return cands[0], nil
	}
	return "", fmt.Errorf("%w: can't guess among several .tex files; pass BASE_NAME", ErrAmbiguousBaseName)
}

// validateBaseName rejects names the build invocation can't handle.
func validateBaseName(name string) error {
	if strings.Contains(name, ".") {
		return fmt.Errorf("base name %q shouldn't contain '.'", name)
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("base name %q contains a path separator; cd into the document directory first", name)
	}
	return nil
}
