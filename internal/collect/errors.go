// SPDX-License-Identifier: MPL-2.0

package collect

import (
	"errors"
	"fmt"
)

// ErrMissingFile is the sentinel error wrapped by MissingFileError.
var ErrMissingFile = errors.New("missing file")

// MissingFileError is returned when a dependency referenced by the listing
// does not exist on disk. Assembly aborts immediately; there is no
// skip-and-continue mode.
type MissingFileError struct {
	// Path is the dependency as referenced, before symlink resolution.
	Path string
}

// Error implements the error interface.
func (e *MissingFileError) Error() string {
	return fmt.Sprintf("%s doesn't exist", e.Path)
}

// Unwrap returns ErrMissingFile for errors.Is compatibility.
func (e *MissingFileError) Unwrap() error { return ErrMissingFile }
