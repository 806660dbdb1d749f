// SPDX-License-Identifier: MPL-2.0

// Package collect assembles a parsed dependency listing into a
// gzip-compressed tar archive suitable for arXiv submission.
//
// The assembler exclusively owns archive construction: members are written
// in listing order, followed by the compiled bibliography (.bbl) and the
// optional freshly extracted bibliography entries. Every local path is
// resolved through symlinks before inclusion. A referenced file missing
// from disk aborts the run; the only non-fatal condition is a used .bib
// database without a compiled .bbl, which produces a warning.
package collect
