// Package jsontext provides a token source backed by the jsontext tokenizer
// of github.com/go-json-experiment/json.
package jsontext

import (
	"bytes"
	"errors"
	"io"

	"github.com/go-json-experiment/json/jsontext"

	eng "github.com/reoring/odatajson/internal/engine"
)

type source struct {
	dec   *jsontext.Decoder
	stack []frame
	last  int64
}

type frame struct {
	object       bool
	expectingKey bool
}

// NewReader wraps an io.Reader into an engine.TokenSource. Duplicate member
// names are passed through; the enforcement layer decides on them. Invalid
// UTF-8 in strings becomes U+FFFD, as with the other drivers.
func NewReader(r io.Reader) eng.TokenSource {
	dec := jsontext.NewDecoder(r, jsontext.AllowDuplicateNames(true), jsontext.AllowInvalidUTF8(true))
	return &source{dec: dec, last: -1}
}

// NewBytes wraps a byte slice into an engine.TokenSource.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

func (s *source) NextToken() (eng.Token, error) {
	off := s.dec.InputOffset()
	tok, err := s.dec.ReadToken()
	if err != nil {
		return eng.Token{}, s.classify(err, off)
	}
	s.last = off

	switch tok.Kind() {
	case '{':
		s.stack = append(s.stack, frame{object: true, expectingKey: true})
		return eng.Token{Kind: eng.KindBeginObject, Offset: off}, nil
	case '}':
		s.pop()
		return eng.Token{Kind: eng.KindEndObject, Offset: off}, nil
	case '[':
		s.stack = append(s.stack, frame{})
		return eng.Token{Kind: eng.KindBeginArray, Offset: off}, nil
	case ']':
		s.pop()
		return eng.Token{Kind: eng.KindEndArray, Offset: off}, nil
	case '"':
		if n := len(s.stack); n > 0 && s.stack[n-1].expectingKey {
			s.stack[n-1].expectingKey = false
			return eng.Token{Kind: eng.KindKey, String: tok.String(), Offset: off}, nil
		}
		s.valueDone()
		return eng.Token{Kind: eng.KindString, String: tok.String(), Offset: off}, nil
	case '0':
		s.valueDone()
		return eng.Token{Kind: eng.KindNumber, Number: tok.String(), Offset: off}, nil
	case 't', 'f':
		s.valueDone()
		return eng.Token{Kind: eng.KindBool, Bool: tok.Bool(), Offset: off}, nil
	default:
		s.valueDone()
		return eng.Token{Kind: eng.KindNull, Offset: off}, nil
	}
}

func (s *source) pop() {
	if n := len(s.stack); n > 0 {
		s.stack = s.stack[:n-1]
	}
	s.valueDone()
}

func (s *source) valueDone() {
	if n := len(s.stack); n > 0 && s.stack[n-1].object {
		s.stack[n-1].expectingKey = true
	}
}

func (s *source) classify(err error, off int64) error {
	if errors.Is(err, io.EOF) {
		return io.EOF
	}
	var se *jsontext.SyntacticError
	if errors.As(err, &se) {
		return eng.Syntax(err, se.ByteOffset)
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return eng.Syntax(err, off)
	}
	return err
}

func (s *source) Location() int64 { return s.last }
