package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotImplemented is returned by entry points the specification explicitly
// scopes out (XPath evaluation).
var ErrNotImplemented = errors.New("not implemented")

// Location is a source position: a byte offset plus the 1-based line and
// column it corresponds to.
type Location struct {
	ByteOffset int
	Line       int
	Column     int
}

// ParseError is a single recoverable or fatal error produced while
// tokenizing, building the tree, or compiling a selector.
type ParseError struct {
	Code     Code
	Message  string
	Location Location
}

// NewParseError builds a ParseError with the default message for code.
func NewParseError(code Code, loc Location) *ParseError {
	return &ParseError{Code: code, Message: Message(code), Location: loc}
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Location.Line > 0 {
		return fmt.Sprintf("%s at %d:%d: %s", e.Code, e.Location.Line, e.Location.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ParseErrors is a non-empty collection of parse errors returned together
// from a *_with_error entry point.
type ParseErrors []*ParseError

// Error implements the error interface.
func (e ParseErrors) Error() string {
	switch len(e) {
	case 0:
		return "no parse errors"
	case 1:
		return e[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d parse errors:\n", len(e))
	for i, err := range e {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString("  - ")
		sb.WriteString(err.Error())
	}
	return sb.String()
}

// Unwrap supports errors.Is/errors.As over the collected errors.
func (e ParseErrors) Unwrap() []error {
	out := make([]error, len(e))
	for i, err := range e {
		out[i] = err
	}
	return out
}

// SelectorError reports a failure to compile a CSS selector, carrying the
// offending selector text alongside the usual ParseError fields.
type SelectorError struct {
	ParseError
	Selector string
}

// Error implements the error interface.
func (e *SelectorError) Error() string {
	return fmt.Sprintf("invalid selector %q at position %d: %s", e.Selector, e.Location.ByteOffset, e.Message)
}

// Policy is how a Strict/Lenient/Ignore error_handling option is enforced.
// Tokenizer, TreeBuilder, and the CSS compiler each hold one and call
// Record for every recoverable error they encounter.
type Policy struct {
	mode   Handling
	errors []*ParseError
}

// Handling is the error_handling option from the specification.
type Handling int

const (
	// Lenient accumulates errors and keeps parsing (default).
	Lenient Handling = iota
	// Strict aborts on the first error.
	Strict
	// Ignore accumulates during parsing but clears the list before return.
	Ignore
)

// NewPolicy creates a Policy for the given handling mode.
func NewPolicy(mode Handling) *Policy {
	return &Policy{mode: mode}
}

// Mode reports the configured handling mode.
func (p *Policy) Mode() Handling {
	return p.mode
}

// Record appends err to the accumulated list. In Strict mode it also
// returns err so the caller can abort immediately; in Lenient/Ignore it
// returns nil so the caller continues.
func (p *Policy) Record(err *ParseError) error {
	p.errors = append(p.errors, err)
	if p.mode == Strict {
		return err
	}
	return nil
}

// Errors returns the accumulated errors, honoring Ignore (which always
// reports none).
func (p *Policy) Errors() []*ParseError {
	if p.mode == Ignore {
		return nil
	}
	return p.errors
}

// RawErrors returns every recorded error regardless of mode, for callers
// (like the root package's ParseWithError, which checks it for a Strict
// abort) that need to inspect errors whatever the mode.
func (p *Policy) RawErrors() []*ParseError {
	return p.errors
}
