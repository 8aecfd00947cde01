// Package docerr defines the error taxonomy exposed at the core boundary.
// Every error leaving the assembler or the template filler is one of these
// kinds; callers branch with errors.As / Is.
package docerr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// NotFound: a referenced entity (client, seller, source product,
	// template) does not exist.
	NotFound Kind = iota + 1
	// InvalidArgument: a caller-side contract violation, e.g. empty
	// language code or malformed packing_details.
	InvalidArgument
	// Template: unsupported template syntax, or an unknown placeholder
	// in strict mode.
	Template
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not_found"
	case InvalidArgument:
		return "invalid_argument"
	case Template:
		return "template"
	default:
		return "unknown"
	}
}

// Error carries a kind plus a short tag identifying the missing entity or
// malformed field ("client", "packing_details.items", ...).
type Error struct {
	Kind Kind
	Tag  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Tag, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Tag)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an Error with an optional wrapped cause.
func New(kind Kind, tag string) error {
	return &Error{Kind: kind, Tag: tag}
}

// Wrap builds an Error around an underlying cause.
func Wrap(kind Kind, tag string, err error) error {
	return &Error{Kind: kind, Tag: tag, Err: err}
}

// NotFoundf is shorthand for a NotFound error with a formatted tag.
func NotFoundf(format string, args ...any) error {
	return &Error{Kind: NotFound, Tag: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err is (or wraps) an Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var de *Error
	return errors.As(err, &de) && de.Kind == kind
}

// KindOf returns the kind of err, or 0 when err carries none.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return 0
}
