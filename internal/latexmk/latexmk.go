// SPDX-License-Identifier: MPL-2.0

package latexmk

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"

	"arxiv-collector/internal/fsutil"

	"github.com/charmbracelet/log"
)

// DefaultBinary is the latexmk command used when no path is configured.
const DefaultBinary = "latexmk"

// defaultDepsPath is the preferred location for the generated dependency
// listing; a random suffix is appended when it is already taken.
const defaultDepsPath = ".deps"

// versionPattern matches the first line of `latexmk --version` output.
var versionPattern = regexp.MustCompile(`(?m)Latexmk, John Collins, \d+ \w+\.? \d+\. Version (.*?)\s*$`)

// brokenVersions lists latexmk releases whose -deps output omits files,
// producing archives that silently miss dependencies.
var brokenVersions = map[string]bool{
	"4.63b": true,
	"4.64":  true,
}

var (
	// ErrIncompatibleVersion is the sentinel error wrapped by
	// IncompatibleVersionError.
	ErrIncompatibleVersion = errors.New("incompatible latexmk version")
	// ErrBuildFailed is the sentinel error wrapped by BuildError.
	ErrBuildFailed = errors.New("latexmk build failed")
)

type (
	// IncompatibleVersionError is returned for latexmk releases with
	// broken dependency tracking.
	IncompatibleVersionError struct {
		Version string
	}

	// BuildError carries a failed build's exit status and combined output
	// so the CLI can surface both and exit with the child's code.
	BuildError struct {
		ExitCode int
		Args     []string
		Output   string
	}
)

// Error implements the error interface.
func (e *IncompatibleVersionError) Error() string {
	return fmt.Sprintf(
		"latexmk %s has broken dependency tracking; run `arxiv-collector fetch-latexmk ./latexmk` and pass `--latexmk ./latexmk`",
		e.Version)
}

// Unwrap returns ErrIncompatibleVersion for errors.Is compatibility.
func (e *IncompatibleVersionError) Unwrap() error { return ErrIncompatibleVersion }

// Error implements the error interface.
func (e *BuildError) Error() string {
	return fmt.Sprintf("build failed with code %d\ncalled %s\n\noutput was:\n%s",
		e.ExitCode, strings.Join(e.Args, " "), e.Output)
}

// Unwrap returns ErrBuildFailed for errors.Is compatibility.
func (e *BuildError) Unwrap() error { return ErrBuildFailed }

// Version runs `<bin> --version` and returns the reported version string.
// Output that doesn't look like latexmk's banner is an error.
func Version(ctx context.Context, bin string) (string, error) {
	out, err := exec.CommandContext(ctx, bin, "--version").Output()
	if err != nil {
		return "", fmt.Errorf("run %s --version: %w", bin, err)
	}
	m := versionPattern.FindSubmatch(out)
	if m == nil {
		return "", fmt.Errorf("bad output of %s --version:\n%s", bin, out)
	}
	return string(m[1]), nil
}

// CheckVersion rejects latexmk releases known to emit broken dependency
// listings.
func CheckVersion(version string) error {
	if brokenVersions[version] {
		return &IncompatibleVersionError{Version: version}
	}
	return nil
}

// GenerateDeps builds the document with latexmk and returns the path of
// the dependency listing it wrote. The listing path is chosen to not
// clobber any pre-existing file; the caller owns its cleanup. The build is
// a blocking call with no timeout; a non-zero exit returns a *BuildError.
func GenerateDeps(ctx context.Context, logger *log.Logger, bin, baseName string) (string, error) {
	depsPath, err := fsutil.UnusedPath(defaultDepsPath)
	if err != nil {
		return "", err
	}

	args := []string{bin, "-silent", "-pdf", "-deps", "-deps-out=" + depsPath, baseName}
	logger.Debug("running", "args", strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// latexmk may have created the listing before failing.
			_ = os.Remove(depsPath)
			return "", &BuildError{
				ExitCode: exitErr.ExitCode(),
				Args:     args,
				Output:   string(out),
			}
		}
		return "", fmt.Errorf("run %s: %w", bin, err)
	}

	logger.Debug(string(out))
	logger.Debug("dependencies written", "path", depsPath)
	return depsPath, nil
}
