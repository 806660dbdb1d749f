// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly
// messages: errors that say what operation failed, on which resource, and
// what the user can do about it.
package issue

import (
	"errors"
	"fmt"
	"strings"
)

// ActionableError is an error with context for user-facing error messages.
//
//	err := issue.WrapWithContext(parseErr, "parse dependency listing", ".deps").
//		WithSuggestion("rerun without --latexmk-deps to regenerate the listing")
type ActionableError struct {
	// Operation describes what was being attempted (e.g. "parse dependency
	// listing", "run latexmk").
	Operation string

	// Resource identifies the file, path, or entity involved (optional).
	Resource string

	// Suggestions provides hints on how to fix the issue (optional).
	Suggestions []string

	// Cause is the underlying error that triggered this error (optional).
	Cause error
}

// WrapWithOperation wraps an error with operation context. Returns nil for
// a nil error.
func WrapWithOperation(err error, operation string) *ActionableError {
	if err == nil {
		return nil
	}
	return &ActionableError{Operation: operation, Cause: err}
}

// WrapWithContext wraps an error with operation and resource context.
// Returns nil for a nil error.
func WrapWithContext(err error, operation, resource string) *ActionableError {
	if err == nil {
		return nil
	}
	return &ActionableError{Operation: operation, Resource: resource, Cause: err}
}

// WithSuggestion appends a hint on how to fix the issue and returns the
// error for chaining.
func (e *ActionableError) WithSuggestion(s string) *ActionableError {
	e.Suggestions = append(e.Suggestions, s)
	return e
}

// Error implements the error interface. It returns the concise form used
// for default (non-verbose) output.
func (e *ActionableError) Error() string {
	var msg strings.Builder
	msg.WriteString("failed to ")
	msg.WriteString(e.Operation)
	if e.Resource != "" {
		msg.WriteString(": ")
		msg.WriteString(e.Resource)
	}
	if e.Cause != nil {
		msg.WriteString(": ")
		msg.WriteString(e.Cause.Error())
	}
	return msg.String()
}

// Unwrap returns the underlying cause for errors.Is/As.
func (e *ActionableError) Unwrap() error { return e.Cause }

// Format returns the error with its suggestions. When verbose is true the
// full error chain is appended.
func (e *ActionableError) Format(verbose bool) string {
	var msg strings.Builder
	msg.WriteString(e.Error())

	for _, s := range e.Suggestions {
		msg.WriteString("\n  • ")
		msg.WriteString(s)
	}

	if verbose && e.Cause != nil {
		msg.WriteString("\n\nError chain:")
		err := e.Cause
		depth := 1
		for err != nil {
			fmt.Fprintf(&msg, "\n  %d. %s", depth, err.Error())
			err = errors.Unwrap(err)
			depth++
		}
	}
	return msg.String()
}
