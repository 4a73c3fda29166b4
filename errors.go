package hjson

import (
	"errors"
	"fmt"
)

// Sentinel errors for matching with errors.Is. The structured error types
// below wrap these, so callers can test the error kind without inspecting
// the concrete type.
var (
	// ErrTypeMismatch reports an operation that is only valid for another
	// value variant, e.g. a map lookup on a vector.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrOutOfRange reports an index or key that addresses a position which
	// does not exist.
	ErrOutOfRange = errors.New("out of range")
)

// SyntaxError is returned by the decoder when the input cannot be parsed.
// It carries the byte offset as well as the line and column (both 1-based)
// of the failure. Decoding aborts on the first syntax error; no partial
// tree is returned.
type SyntaxError struct {
	Message string
	Offset  int
	Line    int
	Column  int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("hjson: syntax error at line %d, column %d: %s", e.Line, e.Column, e.Message)
}

// TypeError reports an operation invoked on an incompatible value variant.
type TypeError struct {
	Op  string
	Got Type
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("hjson: %s: operation not supported for %s value", e.Op, e.Got)
}

func (e *TypeError) Unwrap() error { return ErrTypeMismatch }

// RangeError reports an index or key addressing a position that does not
// exist, for the non-creating accessors.
type RangeError struct {
	Op    string
	Index int
	Key   string
	Len   int
}

func (e *RangeError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("hjson: %s: key %q not found", e.Op, e.Key)
	}
	return fmt.Sprintf("hjson: %s: index %d out of range [0,%d)", e.Op, e.Index, e.Len)
}

func (e *RangeError) Unwrap() error { return ErrOutOfRange }
