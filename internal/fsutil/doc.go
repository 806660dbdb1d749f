// SPDX-License-Identifier: MPL-2.0

// Package fsutil provides small filesystem helpers shared by the archive
// assembler and the latexmk driver: symlink target resolution with cycle
// detection, and collision-free scratch path selection.
package fsutil
