// SPDX-License-Identifier: MPL-2.0

package collect

import (
	"bufio"
	"io"
	"regexp"
)

// commentPattern matches an unescaped % and everything after it on a line.
// The replacement keeps the bare marker so TeX's end-of-line semantics
// (comment markers suppress the implicit space) survive stripping.
var commentPattern = regexp.MustCompile(`(^|[^\\])%.*`)

// maxTexLine is the scanner buffer cap for a single source line. Generated
// tex sources (tikz exports, inlined data) can carry very long lines.
const maxTexLine = 4 << 20

// StripCommentLine removes an unescaped comment from a single source line.
// An escaped marker (\%) is preserved verbatim.
func StripCommentLine(line string) string {
	return commentPattern.ReplaceAllString(line, "${1}%")
}

// stripComments copies tex source from r to w line by line with comments
// removed.
func stripComments(r io.Reader, w io.Writer) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxTexLine)
	for sc.Scan() {
		if _, err := io.WriteString(w, StripCommentLine(sc.Text())); err != nil {
			return err
		}
		if _, err := w.Write([]byte{'\n'}); err != nil {
			return err
		}
	}
	return sc.Err()
}
