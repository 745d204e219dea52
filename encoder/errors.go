package encoder

import (
	"errors"
	"strings"
)

// Error reports where in a value tree an encode failed.
//
// Path holds the field names and array indexes leading from the top-level
// value to the failing one, outermost first. Cause is the underlying error,
// usually wrapping one of the errs sentinels, so errors.Is works through an
// *Error unchanged.
type Error struct {
	Cause error
	Path  []string
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("borsh encode")

	if len(e.Path) > 0 {
		b.WriteString(" field \"")
		b.WriteString(e.PathString())
		b.WriteByte('"')
	}

	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}

	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// PathString renders Path as a dotted field path, for example "order.items[2].qty".
func (e *Error) PathString() string {
	var b strings.Builder
	for i, seg := range e.Path {
		if i > 0 && !strings.HasPrefix(seg, "[") {
			b.WriteByte('.')
		}
		b.WriteString(seg)
	}

	return b.String()
}

// ErrorPath returns the field path carried by err, or "" when err carries none.
func ErrorPath(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.PathString()
	}

	return ""
}

// atSegment prefixes seg to the path of err while the recursion unwinds.
func atSegment(err error, seg string) error {
	if e, ok := err.(*Error); ok { //nolint: errorlint
		e.Path = append([]string{seg}, e.Path...)
		return e
	}

	return &Error{Cause: err, Path: []string{seg}}
}
