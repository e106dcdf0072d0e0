package edm

import (
	"errors"
	"fmt"
)

// ErrUnsupportedKind is wrapped by PrimitiveTypeError when a primitive kind
// has no literal parser.
var ErrUnsupportedKind = errors.New("edm: unsupported primitive kind")

// PrimitiveTypeError reports a literal rejected by a type's parser or facets.
type PrimitiveTypeError struct {
	Type    string
	Literal string
	Reason  string
	Err     error
}

func (e *PrimitiveTypeError) Error() string {
	msg := fmt.Sprintf("edm: literal %q is not a valid %s", e.Literal, e.Type)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *PrimitiveTypeError) Unwrap() error { return e.Err }

// UnknownKindError reports a primitive type name that maps to no known kind.
type UnknownKindError struct {
	Name string
}

func (e *UnknownKindError) Error() string { return "edm: unknown primitive type " + e.Name }

func literalError(typ, lit, reason string) error {
	return &PrimitiveTypeError{Type: typ, Literal: lit, Reason: reason}
}

func wrapLiteral(typ, lit string, err error) error {
	return &PrimitiveTypeError{Type: typ, Literal: lit, Err: err}
}
