package format

import "errors"

var (
	// ErrUnavailable wraps failures to open or read the input source.
	ErrUnavailable = errors.New("input unavailable")
	// ErrMalformed wraps syntax and structure errors in a description.
	ErrMalformed = errors.New("malformed automaton description")
	// ErrUnsupported is returned when an automaton cannot be expressed in
	// the requested format.
	ErrUnsupported = errors.New("unsupported by format")
)
