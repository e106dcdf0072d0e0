// Package json provides a token source backed by encoding/json.
package json

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	eng "github.com/reoring/odatajson/internal/engine"
)

// Open containers: an object waiting for a key, an object waiting for the
// value of the key just read, or an array.
const (
	awaitKey byte = iota
	awaitValue
	inArray
)

type source struct {
	dec   *json.Decoder
	open  []byte
	start int64
}

// NewReader tokenizes r with encoding/json. Numbers keep their literal text.
func NewReader(r io.Reader) eng.TokenSource {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return &source{dec: dec, start: -1}
}

// NewBytes tokenizes an in-memory document.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

func (s *source) NextToken() (eng.Token, error) {
	raw, err := s.dec.Token()
	if err != nil {
		return eng.Token{}, s.wrap(err)
	}
	s.start = s.dec.InputOffset()
	tok := eng.Token{Offset: s.start}
	switch v := raw.(type) {
	case json.Delim:
		switch v {
		case '{':
			tok.Kind = eng.KindBeginObject
			s.open = append(s.open, awaitKey)
			return tok, nil
		case '[':
			tok.Kind = eng.KindBeginArray
			s.open = append(s.open, inArray)
			return tok, nil
		case '}':
			tok.Kind = eng.KindEndObject
		default:
			tok.Kind = eng.KindEndArray
		}
		s.open = s.open[:len(s.open)-1]
	case string:
		if top := len(s.open) - 1; top >= 0 && s.open[top] == awaitKey {
			s.open[top] = awaitValue
			tok.Kind, tok.String = eng.KindKey, v
			return tok, nil
		}
		tok.Kind, tok.String = eng.KindString, v
	case json.Number:
		tok.Kind, tok.Number = eng.KindNumber, v.String()
	case bool:
		tok.Kind, tok.Bool = eng.KindBool, v
	case nil:
		tok.Kind = eng.KindNull
	}
	if top := len(s.open) - 1; top >= 0 && s.open[top] == awaitValue {
		s.open[top] = awaitKey
	}
	return tok, nil
}

// wrap reports decoder failures as syntax errors; reader failures pass
// through unchanged.
func (s *source) wrap(err error) error {
	var se *json.SyntaxError
	switch {
	case errors.Is(err, io.EOF):
		return io.EOF
	case errors.As(err, &se):
		return eng.Syntax(err, se.Offset)
	case errors.Is(err, io.ErrUnexpectedEOF):
		return eng.Syntax(err, s.start)
	}
	return err
}

func (s *source) Location() int64 { return s.start }
