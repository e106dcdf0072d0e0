// Package gojson provides a token source backed by goccy/go-json.
package gojson

import (
	"bytes"
	"errors"
	"io"

	j "github.com/goccy/go-json"

	eng "github.com/reoring/odatajson/internal/engine"
)

const (
	stateKey byte = iota
	stateValue
	stateArray
)

var delimKinds = map[j.Delim]eng.Kind{
	'{': eng.KindBeginObject,
	'}': eng.KindEndObject,
	'[': eng.KindBeginArray,
	']': eng.KindEndArray,
}

type source struct {
	dec *j.Decoder
	// one entry per open container: stateKey, stateValue or stateArray
	stack []byte
	err   error
}

// NewReader buffers r and hands it to NewBytes. Read failures are reported by
// the first NextToken call.
func NewReader(r io.Reader) eng.TokenSource {
	data, err := io.ReadAll(r)
	if err != nil {
		return &source{err: err}
	}
	return NewBytes(data)
}

// NewBytes wraps a byte slice into an engine.TokenSource for JSON using go-json.
// go-json's Decoder.Token skips ',' and ':' without checking their placement,
// so the document is validated as a whole before it is tokenized.
func NewBytes(b []byte) eng.TokenSource {
	if err := validate(b); err != nil {
		return &source{err: err}
	}
	dec := j.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	return &source{dec: dec}
}

// validate decodes the first value with numbers kept as literals, so only
// malformed input fails here; out-of-range numbers are left to the literal
// parsers. Anything but whitespace after the value is a syntax error.
func validate(b []byte) error {
	// empty input is reported by the tree builder
	if len(bytes.TrimSpace(b)) == 0 {
		return nil
	}
	dec := j.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		var se *j.SyntaxError
		if errors.As(err, &se) {
			return eng.Syntax(err, se.Offset)
		}
		return eng.Syntax(err, -1)
	}
	off := dec.InputOffset()
	if off < int64(len(b)) && len(bytes.TrimSpace(b[off:])) != 0 {
		return eng.Syntax(errors.New("unexpected data after top-level value"), off)
	}
	return nil
}

func (s *source) NextToken() (eng.Token, error) {
	if s.err != nil {
		return eng.Token{}, s.err
	}
	tok, err := s.dec.Token()
	if err != nil {
		return eng.Token{}, classify(err)
	}
	out := eng.Token{Offset: -1}
	switch v := tok.(type) {
	case j.Delim:
		out.Kind = delimKinds[v]
		switch v {
		case '{':
			s.stack = append(s.stack, stateKey)
		case '[':
			s.stack = append(s.stack, stateArray)
		default:
			if n := len(s.stack); n > 0 {
				s.stack = s.stack[:n-1]
			}
			s.valueDone()
		}
		return out, nil
	case string:
		if n := len(s.stack); n > 0 && s.stack[n-1] == stateKey {
			s.stack[n-1] = stateValue
			out.Kind, out.String = eng.KindKey, v
			return out, nil
		}
		out.Kind, out.String = eng.KindString, v
	case bool:
		out.Kind, out.Bool = eng.KindBool, v
	case j.Number:
		out.Kind, out.Number = eng.KindNumber, string(v)
	default:
		out.Kind = eng.KindNull
	}
	s.valueDone()
	return out, nil
}

// valueDone flips an enclosing object back to expecting a key.
func (s *source) valueDone() {
	if n := len(s.stack); n > 0 && s.stack[n-1] == stateValue {
		s.stack[n-1] = stateKey
	}
}

func classify(err error) error {
	if errors.Is(err, io.EOF) {
		return io.EOF
	}
	var se *j.SyntaxError
	if errors.As(err, &se) {
		return eng.Syntax(err, se.Offset)
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return eng.Syntax(err, -1)
	}
	return err
}

func (s *source) Location() int64 { return -1 }
