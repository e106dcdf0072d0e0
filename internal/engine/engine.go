package engine

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Kind represents token kinds from a generic source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

func (k Kind) String() string {
	switch k {
	case KindBeginObject:
		return "'{'"
	case KindEndObject:
		return "'}'"
	case KindBeginArray:
		return "'['"
	case KindEndArray:
		return "']'"
	case KindKey:
		return "key"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindNull:
		return "null"
	default:
		return "unknown"
	}
}

// Token represents a streaming token with approximate input offset.
type Token struct {
	Kind   Kind
	String string
	Number string // literal text as it appeared in the input
	Bool   bool
	Offset int64
}

// TokenSource is a minimal interface required by the engine.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64
}

// SyntaxError reports malformed JSON input. Token sources wrap their
// tokenizer's syntax errors in it so callers can tell them apart from
// failures of the underlying reader.
type SyntaxError struct {
	Offset int64
	Err    error
}

func (e *SyntaxError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("json syntax error at offset %d: %v", e.Offset, e.Err)
	}
	return "json syntax error: " + e.Err.Error()
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// Syntax wraps err as a *SyntaxError unless it already is one.
func Syntax(err error, offset int64) error {
	var se *SyntaxError
	if errors.As(err, &se) {
		return err
	}
	return &SyntaxError{Offset: offset, Err: err}
}

// BuildTree consumes exactly one JSON value from src and returns it as an
// ordered tree. Anything after the value other than EOF is a syntax error.
// When lastWins is set a repeated object key replaces the earlier value in
// place; otherwise repeated keys are expected to have been rejected by the
// enforcement layer already and the first occurrence is kept.
func BuildTree(src TokenSource, lastWins bool) (*Node, error) {
	b := treeBuilder{src: src, lastWins: lastWins}
	tok, err := src.NextToken()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &SyntaxError{Offset: 0, Err: errors.New("empty input")}
		}
		return nil, err
	}
	root, err := b.value(tok)
	if err != nil {
		return nil, err
	}
	extra, err := src.NextToken()
	switch {
	case errors.Is(err, io.EOF):
		return root, nil
	case err != nil:
		return nil, err
	default:
		return nil, &SyntaxError{Offset: extra.Offset, Err: fmt.Errorf("unexpected %s after top-level value", extra.Kind)}
	}
}

type treeBuilder struct {
	src      TokenSource
	lastWins bool
}

func (b *treeBuilder) next() (Token, error) {
	tok, err := b.src.NextToken()
	if errors.Is(err, io.EOF) {
		return Token{}, &SyntaxError{Offset: b.src.Location(), Err: io.ErrUnexpectedEOF}
	}
	return tok, err
}

func (b *treeBuilder) value(tok Token) (*Node, error) {
	switch tok.Kind {
	case KindBeginObject:
		return b.object(tok.Offset)
	case KindBeginArray:
		return b.array(tok.Offset)
	case KindString:
		return &Node{Kind: NodeString, Literal: validUTF8(tok.String), Offset: tok.Offset}, nil
	case KindNumber:
		return &Node{Kind: NodeNumber, Literal: tok.Number, Offset: tok.Offset}, nil
	case KindBool:
		return &Node{Kind: NodeBool, Bool: tok.Bool, Offset: tok.Offset}, nil
	case KindNull:
		return &Node{Kind: NodeNull, Offset: tok.Offset}, nil
	default:
		return nil, &SyntaxError{Offset: tok.Offset, Err: fmt.Errorf("unexpected %s", tok.Kind)}
	}
}

func (b *treeBuilder) object(offset int64) (*Node, error) {
	n := &Node{Kind: NodeObject, Offset: offset}
	for {
		tok, err := b.next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == KindEndObject {
			return n, nil
		}
		if tok.Kind != KindKey {
			return nil, &SyntaxError{Offset: tok.Offset, Err: fmt.Errorf("expected object key, got %s", tok.Kind)}
		}
		vt, err := b.next()
		if err != nil {
			return nil, err
		}
		v, err := b.value(vt)
		if err != nil {
			return nil, err
		}
		n.set(validUTF8(tok.String), v, b.lastWins)
	}
}

func (b *treeBuilder) array(offset int64) (*Node, error) {
	n := &Node{Kind: NodeArray, Offset: offset}
	for {
		tok, err := b.next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == KindEndArray {
			return n, nil
		}
		v, err := b.value(tok)
		if err != nil {
			return nil, err
		}
		n.Elems = append(n.Elems, v)
	}
}

// validUTF8 replaces each run of invalid UTF-8 with U+FFFD so every driver
// yields the same text for malformed strings.
func validUTF8(s string) string { return strings.ToValidUTF8(s, "\uFFFD") }
