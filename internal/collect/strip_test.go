// SPDX-License-Identifier: MPL-2.0

package collect

import (
	"strings"
	"testing"
)

func TestStripCommentLine(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain comment", "hello % a comment", "hello %"},
		{"full-line comment", "% all comment", "%"},
		{"no comment", `\section{Results}`, `\section{Results}`},
		{"escaped marker preserved", `50\% of the data`, `50\% of the data`},
		{"escaped then real marker", `50\% off % note to self`, `50\% off %`},
		{"marker after command", `\caption{Results}% trailing`, `\caption{Results}%`},
		{"empty line", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripCommentLine(tt.in); got != tt.want {
				t.Errorf("StripCommentLine(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestStripCommentsStream(t *testing.T) {
	in := "\\documentclass{article} % comment\n\\emph{100\\%}\n% gone\nbody\n"
	want := "\\documentclass{article} %\n\\emph{100\\%}\n%\nbody\n"

	var out strings.Builder
	if err := stripComments(strings.NewReader(in), &out); err != nil {
		t.Fatalf("stripComments failed: %v", err)
	}
	if out.String() != want {
		t.Errorf("stripComments:\n got %q\nwant %q", out.String(), want)
	}
}
