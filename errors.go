package odatajson

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/odatajson/i18n"
)

// MessageKey discriminates decode failures.
type MessageKey string

// Message keys, grouped by the stage that reports them.
const (
	// Transport/syntax
	KeyJSONSyntax            MessageKey = "json_syntax"
	KeyDuplicateJSONProperty MessageKey = "duplicate_json_property"
	KeyDuplicateProperty     MessageKey = "duplicate_property"
	KeyIOError               MessageKey = "io_error"
	KeyMaxDepth              MessageKey = "max_depth"
	KeyTruncated             MessageKey = "truncated"

	// Shape
	KeyValueArrayNotPresent              MessageKey = "value_array_not_present"
	KeyValueTagMustBeArray               MessageKey = "value_tag_must_be_array"
	KeyInvalidEntity                     MessageKey = "invalid_entity"
	KeyInvalidValueForProperty           MessageKey = "invalid_value_for_property"
	KeyInvalidValueForNavigationProperty MessageKey = "invalid_value_for_navigation_property"

	// Nullability
	KeyInvalidNullProperty MessageKey = "invalid_null_property"

	// Type resolution
	KeyUnknownPrimitiveType   MessageKey = "unknown_primitive_type"
	KeyInvalidTypeForProperty MessageKey = "invalid_type_for_property"

	// Annotation policy and completeness
	KeyNotImplemented MessageKey = "not_implemented"
	KeyUnknownContent MessageKey = "unknown_content"
)

// Error is the single error type returned by a Deserializer.
type Error struct {
	Key     MessageKey
	Path    string // JSON Pointer (for example: /value/2/PropertyInt16); "/" is the document.
	Message string // localized via i18n at construction time
	// Params carries structured parameters ("property", "field", "type",
	// "kind", "offset") for i18n and observability.
	Params map[string]any
	Cause  error // Optional: underlying error (literal conversion, tokenizer, reader).
}

// Error renders "key at path: message", followed by the cause when present.
func (e *Error) Error() string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "%s at %s", e.Key, e.Path)
	if e.Message != "" && e.Message != string(e.Key) {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Cause }

// Property returns the "property" parameter, if any.
func (e *Error) Property() string { return e.param("property") }

// Field returns the "field" parameter, if any.
func (e *Error) Field() string { return e.param("field") }

func (e *Error) param(name string) string {
	if v, ok := e.Params[name].(string); ok {
		return v
	}
	return ""
}

// AsError extracts *Error from an error using errors.As internally.
func AsError(err error) (*Error, bool) {
	if err == nil {
		return nil, false
	}
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsKey reports whether err is an *Error with the given key.
func IsKey(err error, key MessageKey) bool {
	e, ok := AsError(err)
	return ok && e.Key == key
}

func newError(key MessageKey, path string, params map[string]any, cause error) *Error {
	if path == "" {
		path = "/"
	}
	var data map[string]string
	if len(params) > 0 {
		data = make(map[string]string, len(params))
		for k, v := range params {
			data[k] = fmt.Sprint(v)
		}
	}
	return &Error{Key: key, Path: path, Message: i18n.T(string(key), data), Params: params, Cause: cause}
}

func propertyError(key MessageKey, p pathRef, property string, cause error) *Error {
	return newError(key, p.Pointer(), map[string]any{"property": property}, cause)
}

func fieldError(key MessageKey, p pathRef, field string) *Error {
	return newError(key, p.Field(field).Pointer(), map[string]any{"field": field}, nil)
}
