// SPDX-License-Identifier: MPL-2.0

// Package deps parses the dependency listing emitted by latexmk's
// -deps-out mode and classifies every referenced file.
//
// The listing is a line-oriented text format: a header line naming the
// source file, a target declaration naming the build output, one path per
// line (optionally ending in a line-continuation backslash), and a
// terminator line. Several latexmk versions disagree on the exact header
// and target wording, so each structural line is checked against a small
// closed set of accepted grammars tried in sequence.
//
// The parser performs no file I/O and never touches the output archive;
// it only reads lines and classifies paths. Archive construction is owned
// by package collect.
package deps
