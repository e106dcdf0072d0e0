package odatajson

import (
	"fmt"
	"io"

	eng "github.com/reoring/odatajson/internal/engine"
	gojsonsrc "github.com/reoring/odatajson/source/gojson"
	jsonsrc "github.com/reoring/odatajson/source/json"
	jsontextsrc "github.com/reoring/odatajson/source/jsontext"
)

// TokenKind enumerates JSON token kinds.
type TokenKind int

const (
	TokenBeginObject TokenKind = iota
	TokenEndObject
	TokenBeginArray
	TokenEndArray
	TokenKey
	TokenString
	TokenNumber
	TokenBool
	TokenNull
)

// Token describes a token in the input stream. Offset records the byte position
// when known (-1 otherwise).
type Token struct {
	Kind   TokenKind
	String string // Stored for key/string tokens.
	Number string // Stored as the literal text.
	Bool   bool
	Offset int64
}

// Source is a stream of JSON tokens. NextToken returns io.EOF after the last
// token. Malformed input should be reported as *SyntaxError so that it maps to
// json_syntax rather than io_error.
type Source interface {
	NextToken() (Token, error)
	Location() int64 // byte offset; -1 if unknown
}

// SyntaxError reports malformed JSON input.
type SyntaxError = eng.SyntaxError

// JSONDriver converts JSON input into a Source via a pluggable SPI.
type JSONDriver interface {
	NewReader(r io.Reader) Source
	NewBytes(b []byte) Source
	Name() string
}

// Built-in drivers.
var (
	GoJSONDriver   JSONDriver = engineDriver{name: "gojson", reader: gojsonsrc.NewReader, bytes: gojsonsrc.NewBytes}
	StdJSONDriver  JSONDriver = engineDriver{name: "json", reader: jsonsrc.NewReader, bytes: jsonsrc.NewBytes}
	JSONTextDriver JSONDriver = engineDriver{name: "jsontext", reader: jsontextsrc.NewReader, bytes: jsontextsrc.NewBytes}
)

// DriverByName resolves "gojson", "json" or "jsontext".
func DriverByName(name string) (JSONDriver, error) {
	for _, d := range []JSONDriver{GoJSONDriver, StdJSONDriver, JSONTextDriver} {
		if d.Name() == name {
			return d, nil
		}
	}
	return nil, fmt.Errorf("odatajson: unknown json driver %q", name)
}

type engineDriver struct {
	name   string
	reader func(io.Reader) eng.TokenSource
	bytes  func([]byte) eng.TokenSource
}

func (d engineDriver) NewReader(r io.Reader) Source { return &engineSourceAdapter{inner: d.reader(r)} }
func (d engineDriver) NewBytes(b []byte) Source     { return &engineSourceAdapter{inner: d.bytes(b)} }
func (d engineDriver) Name() string                 { return d.name }

// ---- engine.TokenSource <-> Source adapters ----

type engineSourceAdapter struct {
	inner eng.TokenSource
}

func (s *engineSourceAdapter) NextToken() (Token, error) {
	t, err := s.inner.NextToken()
	if err != nil {
		return Token{}, err
	}
	return Token{Kind: fromEngineKind(t.Kind), String: t.String, Number: t.Number, Bool: t.Bool, Offset: t.Offset}, nil
}

func (s *engineSourceAdapter) Location() int64 { return s.inner.Location() }

type tokenSourceAdapter struct{ inner Source }

func (a *tokenSourceAdapter) NextToken() (eng.Token, error) {
	t, err := a.inner.NextToken()
	if err != nil {
		return eng.Token{}, err
	}
	return eng.Token{Kind: toEngineKind(t.Kind), String: t.String, Number: t.Number, Bool: t.Bool, Offset: t.Offset}, nil
}

func (a *tokenSourceAdapter) Location() int64 { return a.inner.Location() }

// engineTokenSource exposes the engine view of a Source, unwrapping the
// built-in drivers.
func engineTokenSource(s Source) eng.TokenSource {
	if ea, ok := s.(*engineSourceAdapter); ok {
		return ea.inner
	}
	return &tokenSourceAdapter{inner: s}
}

func toEngineKind(k TokenKind) eng.Kind {
	switch k {
	case TokenBeginObject:
		return eng.KindBeginObject
	case TokenEndObject:
		return eng.KindEndObject
	case TokenBeginArray:
		return eng.KindBeginArray
	case TokenEndArray:
		return eng.KindEndArray
	case TokenKey:
		return eng.KindKey
	case TokenString:
		return eng.KindString
	case TokenNumber:
		return eng.KindNumber
	case TokenBool:
		return eng.KindBool
	default:
		return eng.KindNull
	}
}

func fromEngineKind(k eng.Kind) TokenKind {
	switch k {
	case eng.KindBeginObject:
		return TokenBeginObject
	case eng.KindEndObject:
		return TokenEndObject
	case eng.KindBeginArray:
		return TokenBeginArray
	case eng.KindEndArray:
		return TokenEndArray
	case eng.KindKey:
		return TokenKey
	case eng.KindString:
		return TokenString
	case eng.KindNumber:
		return TokenNumber
	case eng.KindBool:
		return TokenBool
	default:
		return TokenNull
	}
}
