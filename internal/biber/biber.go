// SPDX-License-Identifier: MPL-2.0

// Package biber invokes the external biber bibliography backend to extract
// the bibliography entries a document actually cites.
package biber

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// DefaultBinary is the biber command used when no path is configured.
const DefaultBinary = "biber"

// Extract runs biber against <baseName>.bcf and returns its stdout: the
// used bibliography entries in BibTeX format. Noise output is suppressed
// with biber's quiet flags; the call blocks until biber exits.
func Extract(ctx context.Context, bin, baseName string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, bin,
		"--output-format=bibtex", "-O", "-", "-q", "-q", baseName+".bcf")
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("%s exited with code %d: %s", bin, exitErr.ExitCode(), exitErr.Stderr)
		}
		return nil, fmt.Errorf("run %s: %w", bin, err)
	}
	return out, nil
}
