// Package toolerr defines the error taxonomy shared by every transformation
// package in devkit.
//
// Callers should branch on Kind rather than matching error strings. Error()
// strings are human-readable and may change between versions.
package toolerr

import (
	"errors"
	"fmt"
)

// Kind is a stable category for programmatic error handling.
type Kind string

const (
	// KindFormat marks malformed encoded input: Base64, percent-encoding,
	// Unicode literals, hex, JWT structure.
	KindFormat Kind = "FormatError"
	// KindSyntax marks malformed JSON or YAML.
	KindSyntax Kind = "SyntaxError"
	// KindDecryption marks a wrong key or mode, bad padding or a plaintext
	// that is not UTF-8.
	KindDecryption Kind = "DecryptionError"
	// KindInvalidArgument marks an unsupported option value.
	KindInvalidArgument Kind = "InvalidArgument"
	// KindIO marks unreadable input streams or files.
	KindIO Kind = "IOError"
)

// Error is the structured error returned by all library operations.
//
// Position is set only for SyntaxError values where the parser reported an
// offset; it is a character (rune) offset into the input, or -1.
type Error struct {
	Kind     Kind
	Op       string
	Message  string
	Position int
	Cause    error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Op == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is reports whether target is an *Error of the same kind, so
// errors.Is(err, toolerr.ErrFormat) works without extracting the value.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil {
		return false
	}
	return t.Op == "" && t.Message == "" && t.Kind == e.Kind
}

// Sentinel values for errors.Is comparisons.
var (
	ErrFormat          = &Error{Kind: KindFormat}
	ErrSyntax          = &Error{Kind: KindSyntax}
	ErrDecryption      = &Error{Kind: KindDecryption}
	ErrInvalidArgument = &Error{Kind: KindInvalidArgument}
	ErrIO              = &Error{Kind: KindIO}
)

// New returns an error of the given kind.
func New(kind Kind, op, msg string) error {
	return &Error{Kind: kind, Op: op, Message: msg, Position: -1}
}

// Newf is New with a format string.
func Newf(kind Kind, op, format string, args ...any) error {
	return &Error{Kind: kind, Op: op, Message: fmt.Sprintf(format, args...), Position: -1}
}

// Wrap returns an error of the given kind that unwraps to cause.
func Wrap(kind Kind, op, msg string, cause error) error {
	if cause == nil {
		return New(kind, op, msg)
	}
	return &Error{Kind: kind, Op: op, Message: msg + ": " + cause.Error(), Position: -1, Cause: cause}
}

// Syntax returns a SyntaxError carrying the parser position.
func Syntax(op, msg string, position int, cause error) error {
	return &Error{Kind: KindSyntax, Op: op, Message: msg, Position: position, Cause: cause}
}

// IsKind reports whether err is (or wraps) an *Error with the given Kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// KindOf returns the Kind of a structured error, or "" if err is not one.
func KindOf(err error) Kind {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.Kind
}
