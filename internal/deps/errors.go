// SPDX-License-Identifier: MPL-2.0

package deps

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedHeader is returned when the first line of a listing does
	// not match any accepted header grammar.
	ErrMalformedHeader = errors.New("malformed dependency header")
	// ErrMalformedTarget is returned when the second line of a listing does
	// not match any accepted target-declaration grammar.
	ErrMalformedTarget = errors.New("malformed target declaration")
	// ErrUnexpectedEndOfInput is returned when the listing ends before the
	// terminator line is seen.
	ErrUnexpectedEndOfInput = errors.New("unexpected end of dependency listing")
	// ErrUnexpectedTrailer is returned when a line after the terminator is
	// not the optional "[end of file]" sentinel.
	ErrUnexpectedTrailer = errors.New("unexpected content after terminator")
)

// ParseError describes a structural violation in a dependency listing. It
// carries the offending line, its 1-based position, and the form the parser
// expected there. It wraps one of the Err* sentinels for errors.Is checks.
type ParseError struct {
	LineNo   int
	Line     string
	Expected string
	Err      error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: line %d %q: expected %s", e.Err, e.LineNo, e.Line, e.Expected)
}

// Unwrap returns the sentinel error classifying this parse failure.
func (e *ParseError) Unwrap() error { return e.Err }
