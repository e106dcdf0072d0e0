package gojson_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	eng "github.com/reoring/odatajson/internal/engine"
	gojson "github.com/reoring/odatajson/source/gojson"
)

func kinds(t *testing.T, src eng.TokenSource) ([]eng.Kind, error) {
	t.Helper()
	var out []eng.Kind
	for {
		tok, err := src.NextToken()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, tok.Kind)
	}
}

func TestTokens(t *testing.T) {
	got, err := kinds(t, gojson.NewBytes([]byte(`{"a":[1,"x",{"b":null}],"c":true}`)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []eng.Kind{
		eng.KindBeginObject, eng.KindKey, eng.KindBeginArray, eng.KindNumber, eng.KindString,
		eng.KindBeginObject, eng.KindKey, eng.KindNull, eng.KindEndObject, eng.KindEndArray,
		eng.KindKey, eng.KindBool, eng.KindEndObject,
	}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestMalformed(t *testing.T) {
	for _, in := range []string{`{"a" 1}`, `[1 2]`, `{"a":1,}`, `{"a":}`, `{"a":1} ,`} {
		_, err := kinds(t, gojson.NewReader(strings.NewReader(in)))
		var se *eng.SyntaxError
		if !errors.As(err, &se) {
			t.Fatalf("%s: expected syntax error, got %v", in, err)
		}
	}
}

func TestOutOfRangeNumberIsToken(t *testing.T) {
	src := gojson.NewBytes([]byte(`{"a":1e400}`))
	var num string
	for {
		tok, err := src.NextToken()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tok.Kind == eng.KindNumber {
			num = tok.Number
		}
	}
	if num != "1e400" {
		t.Fatalf("expected literal 1e400, got %q", num)
	}
}
