// SPDX-License-Identifier: MPL-2.0

package fsutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrSymlinkCycle is the sentinel error wrapped by SymlinkCycleError.
var ErrSymlinkCycle = errors.New("symlink cycle")

// SymlinkCycleError is returned when following a chain of symlinks revisits
// a path already seen during resolution.
type SymlinkCycleError struct {
	// Path is the path the resolution started from.
	Path string
}

// Error implements the error interface.
func (e *SymlinkCycleError) Error() string {
	return fmt.Sprintf("symlink cycle detected for %s", e.Path)
}

// Unwrap returns ErrSymlinkCycle for errors.Is compatibility.
func (e *SymlinkCycleError) Unwrap() error { return ErrSymlinkCycle }

// ResolveTarget follows path through any chain of symlinks and returns the
// final target. A target that revisits an already-seen path fails with a
// *SymlinkCycleError, distinct from the not-exist error the caller gets
// when statting a resolved path that points nowhere. Relative link targets
// are interpreted relative to the directory containing the link.
func ResolveTarget(path string) (string, error) {
	seen := map[string]struct{}{path: {}}
	cur := path
	for {
		fi, err := os.Lstat(cur)
		if err != nil {
			if os.IsNotExist(err) {
				// Resolution itself does not require the target to exist;
				// the caller's own existence check names the final path.
				return cur, nil
			}
			return cur, err
		}
		if fi.Mode()&os.ModeSymlink == 0 {
			return cur, nil
		}
		next, err := os.Readlink(cur)
		if err != nil {
			return cur, fmt.Errorf("read link %s: %w", cur, err)
		}
		if !filepath.IsAbs(next) {
			next = filepath.Join(filepath.Dir(cur), next)
		}
		if _, ok := seen[next]; ok {
			return cur, &SymlinkCycleError{Path: path}
		}
		seen[next] = struct{}{}
		cur = next
	}
}
