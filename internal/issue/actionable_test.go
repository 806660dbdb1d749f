// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"
)

func TestWrapNilReturnsNil(t *testing.T) {
	if WrapWithOperation(nil, "anything") != nil {
		t.Error("WrapWithOperation(nil) should be nil")
	}
	if WrapWithContext(nil, "anything", "res") != nil {
		t.Error("WrapWithContext(nil) should be nil")
	}
}

func TestErrorMessage(t *testing.T) {
	cause := errors.New("permission denied")
	err := WrapWithContext(cause, "parse dependency listing", ".deps")

	want := "failed to parse dependency listing: .deps: permission denied"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, cause) {
		t.Error("wrapped cause should survive errors.Is")
	}
}

func TestFormatSuggestionsAndChain(t *testing.T) {
	inner := errors.New("no such file")
	cause := WrapWithOperation(inner, "open listing")
	err := WrapWithOperation(cause, "collect archive").
		WithSuggestion("rerun without --latexmk-deps")

	concise := err.Format(false)
	if !strings.Contains(concise, "• rerun without --latexmk-deps") {
		t.Errorf("suggestions missing from output: %q", concise)
	}
	if strings.Contains(concise, "Error chain") {
		t.Error("non-verbose format should omit the chain")
	}

	verbose := err.Format(true)
	if !strings.Contains(verbose, "Error chain:") || !strings.Contains(verbose, "no such file") {
		t.Errorf("verbose format should include the full chain: %q", verbose)
	}
}
