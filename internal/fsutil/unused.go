// SPDX-License-Identifier: MPL-2.0

package fsutil

import (
	"fmt"
	"math/rand"
	"os"
)

// maxUnusedPathTries bounds the collision-avoidance loop. Exhausting it
// means something is systematically creating the candidate paths out from
// under us; bail out rather than loop forever.
const maxUnusedPathTries = 64

const suffixAlphabet = "abcdefghijklmnopqrstuvwxyz"

// UnusedPath returns base if no file exists there, otherwise base with one
// or more random lowercase-letter suffixes appended until an unused path is
// found. The caller owns whatever file it then creates at the returned
// path.
func UnusedPath(base string) (string, error) {
	path := base
	for try := 0; try < maxUnusedPathTries; try++ {
		if _, err := os.Lstat(path); os.IsNotExist(err) {
			return path, nil
		} else if err != nil {
			return "", fmt.Errorf("probe %s: %w", path, err)
		}
		path += "-" + string(suffixAlphabet[rand.Intn(len(suffixAlphabet))])
	}
	return "", fmt.Errorf("no unused path found near %s after %d tries", base, maxUnusedPathTries)
}
