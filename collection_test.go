package odatajson_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/reoring/odatajson"
)

func decodeCollection(t *testing.T, typ, in string, opts ...odatajson.Option) (*odatajson.EntitySet, error) {
	t.Helper()
	return odatajson.New(opts...).EntityCollection(context.Background(), strings.NewReader(in), entityType(t, typ))
}

func TestEntityCollection_PreservesOrder(t *testing.T) {
	in := `{"@odata.context": "$metadata#ESTwoPrim", "value": [
		{"PropertyInt16": 3, "PropertyString": "c"},
		{"PropertyInt16": 1, "PropertyString": "a"},
		{"PropertyInt16": 3, "PropertyString": "c"}]}`
	set, err := decodeCollection(t, "ETTwoPrim", in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if set.Len() != 3 {
		t.Fatalf("expected 3 entities without deduplication, got %d", set.Len())
	}
	for i, want := range []int16{3, 1, 3} {
		if v := set.Entities[i].Property("PropertyInt16").Value; v != want {
			t.Fatalf("entity %d: expected %d, got %v", i, want, v)
		}
	}
}

func TestEntityCollection_Empty(t *testing.T) {
	set, err := decodeCollection(t, "ETTwoPrim", `{"value": []}`)
	if err != nil || set.Len() != 0 {
		t.Fatalf("expected empty set, got %v, %v", set, err)
	}
}

func TestEntityCollection_ShapeErrors(t *testing.T) {
	cases := []struct {
		in   string
		key  odatajson.MessageKey
		path string
	}{
		{`{}`, odatajson.KeyValueArrayNotPresent, "/"},
		{`[]`, odatajson.KeyValueArrayNotPresent, "/"},
		{`{"value": {}}`, odatajson.KeyValueTagMustBeArray, "/value"},
		{`{"value": null}`, odatajson.KeyValueTagMustBeArray, "/value"},
		{`{"value": [[]]}`, odatajson.KeyInvalidEntity, "/value/0"},
		{`{"value": [{"PropertyInt16": 1}, 2]}`, odatajson.KeyInvalidEntity, "/value/1"},
		{`{"value": [], "unknown": 1}`, odatajson.KeyUnknownContent, "/unknown"},
		{`{"value": [], "@custom.annotation": 1}`, odatajson.KeyNotImplemented, "/@custom.annotation"},
		{`{"value": [{"PropertyInt16": 1, "x": 1}]}`, odatajson.KeyUnknownContent, "/value/0/x"},
	}
	for _, c := range cases {
		_, err := decodeCollection(t, "ETTwoPrim", c.in)
		e := expectKey(t, err, c.key)
		if e.Path != c.path {
			t.Fatalf("%s: expected path %s, got %s", c.in, c.path, e.Path)
		}
	}
}

func TestDuplicateKeys(t *testing.T) {
	_, err := decodeEntity(t, "ETTwoPrim", `{"PropertyInt16": 1, "PropertyInt16": 2}`)
	e := expectKey(t, err, odatajson.KeyDuplicateProperty)
	if e.Field() != "PropertyInt16" || e.Path != "/PropertyInt16" {
		t.Fatalf("unexpected error detail: %+v", e)
	}

	_, err = decodeCollection(t, "ETTwoPrim", `{"value": [{"PropertyInt16": 1, "PropertyInt16": 2}]}`)
	e = expectKey(t, err, odatajson.KeyDuplicateJSONProperty)
	if e.Path != "/value/0/PropertyInt16" {
		t.Fatalf("unexpected path %s", e.Path)
	}

	ent, err := decodeEntity(t, "ETTwoPrim", `{"PropertyInt16": 1, "PropertyInt16": 2}`,
		odatajson.WithDuplicateKeys(odatajson.DuplicateKeysLastWins))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v := ent.Property("PropertyInt16").Value; v != int16(2) {
		t.Fatalf("expected last occurrence to win, got %v", v)
	}
}

func TestDocumentErrors(t *testing.T) {
	cases := map[string]string{
		"syntax":   `{"PropertyInt16": 1,}`,
		"trailing": `{"PropertyInt16": 1} {}`,
		"empty":    ``,
		"eof":      `{"PropertyInt16": 1`,
	}
	for name, in := range cases {
		_, err := decodeEntity(t, "ETTwoPrim", in)
		e := expectKey(t, err, odatajson.KeyJSONSyntax)
		var se *odatajson.SyntaxError
		if !errors.As(e, &se) {
			t.Fatalf("%s: expected a wrapped *SyntaxError, got %v", name, e.Cause)
		}
	}
}

func TestLimits(t *testing.T) {
	in := `{"PropertyInt16": 1, "NavPropertyETAllPrimOne": {"PropertyInt16": 2,
		"NavPropertyETTwoPrimOne": {"PropertyInt16": 3}}}`
	if _, err := decodeEntity(t, "ETTwoPrim", in, odatajson.WithMaxDepth(3)); err != nil {
		t.Fatalf("depth 3 should pass: %v", err)
	}
	_, err := decodeEntity(t, "ETTwoPrim", in, odatajson.WithMaxDepth(2))
	if e := expectKey(t, err, odatajson.KeyMaxDepth); e.Path != "/NavPropertyETAllPrimOne/NavPropertyETTwoPrimOne" {
		t.Fatalf("unexpected path %s", e.Path)
	}

	_, err = decodeEntity(t, "ETTwoPrim", in, odatajson.WithMaxBytes(10))
	expectKey(t, err, odatajson.KeyTruncated)
	_, err = decodeCollection(t, "ETTwoPrim", `{"value": []}`, odatajson.WithMaxBytes(10))
	expectKey(t, err, odatajson.KeyTruncated)
	if _, err := decodeCollection(t, "ETTwoPrim", `{"value":[]}`, odatajson.WithMaxBytes(12)); err != nil {
		t.Fatalf("input at the limit should pass: %v", err)
	}
}

type failingReader struct{ err error }

func (r failingReader) Read([]byte) (int, error) { return 0, r.err }

func TestIOError(t *testing.T) {
	boom := errors.New("boom")
	for _, opts := range [][]odatajson.Option{nil, {odatajson.WithMaxBytes(100)}} {
		d := odatajson.New(opts...)
		_, err := d.Entity(context.Background(), failingReader{err: boom}, entityType(t, "ETTwoPrim"))
		e := expectKey(t, err, odatajson.KeyIOError)
		if !errors.Is(e, boom) {
			t.Fatalf("expected the reader error as cause, got %v", e.Cause)
		}
	}
}

func TestDrivers_AgreeOnResult(t *testing.T) {
	in := []byte(`{"PropertyInt16": 1, "PropertyString": "é", "PropertyDouble": -1.5e3,
		"NavPropertyETTwoPrimMany": [{"PropertyInt16": 2, "PropertyString": null}]}`)
	var first *odatajson.Entity
	for _, d := range []odatajson.JSONDriver{odatajson.GoJSONDriver, odatajson.StdJSONDriver, odatajson.JSONTextDriver} {
		e, err := odatajson.New(odatajson.WithDriver(d)).Entity(context.Background(), bytes.NewReader(in), entityType(t, "ETAllPrim"))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", d.Name(), err)
		}
		if v := e.Property("PropertyString").Value; v != "é" {
			t.Fatalf("%s: unexpected string %q", d.Name(), v)
		}
		if v := e.Property("PropertyDouble").Value; v != -1500.0 {
			t.Fatalf("%s: unexpected double %v", d.Name(), v)
		}
		if first == nil {
			first = e
		} else if e.NavigationLink("NavPropertyETTwoPrimMany").InlineEntitySet.Len() != first.NavigationLink("NavPropertyETTwoPrimMany").InlineEntitySet.Len() {
			t.Fatalf("%s: inline set differs", d.Name())
		}

		_, err = odatajson.New(odatajson.WithDriver(d)).EntityBytes(context.Background(), []byte(`{"PropertyInt16": 1, "PropertyInt16": 1}`), entityType(t, "ETAllPrim"))
		expectKey(t, err, odatajson.KeyDuplicateProperty)
		_, err = odatajson.New(odatajson.WithDriver(d)).EntityBytes(context.Background(), []byte(`{"PropertyInt16" 1}`), entityType(t, "ETAllPrim"))
		expectKey(t, err, odatajson.KeyJSONSyntax)

		// out-of-range numbers are valid JSON; the literal conversion rejects them
		_, err = odatajson.New(odatajson.WithDriver(d)).EntityBytes(context.Background(), []byte(`{"PropertyInt16": 1, "PropertyDouble": 1e400}`), entityType(t, "ETAllPrim"))
		if e := expectKey(t, err, odatajson.KeyInvalidValueForProperty); e.Property() != "PropertyDouble" {
			t.Fatalf("%s: unexpected error %v", d.Name(), e)
		}

		e, err = odatajson.New(odatajson.WithDriver(d)).EntityBytes(context.Background(), []byte("{\"PropertyInt16\": 1, \"PropertyString\": \"a\xffb\"}"), entityType(t, "ETAllPrim"))
		if err != nil {
			t.Fatalf("%s: invalid UTF-8 should be replaced, got %v", d.Name(), err)
		}
		if v := e.Property("PropertyString").Value; v != "a\uFFFDb" {
			t.Fatalf("%s: unexpected string %q", d.Name(), v)
		}
	}
}

func TestDriverByName(t *testing.T) {
	for _, name := range []string{"gojson", "json", "jsontext"} {
		d, err := odatajson.DriverByName(name)
		if err != nil || d.Name() != name {
			t.Fatalf("%s: got %v, %v", name, d, err)
		}
	}
	if _, err := odatajson.DriverByName("nope"); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}

// sliceSource replays a fixed token list through the public Source SPI.
type sliceSource struct {
	toks []odatajson.Token
	i    int
}

func (s *sliceSource) NextToken() (odatajson.Token, error) {
	if s.i >= len(s.toks) {
		return odatajson.Token{}, io.EOF
	}
	t := s.toks[s.i]
	s.i++
	return t, nil
}

func (s *sliceSource) Location() int64 { return -1 }

type sliceDriver struct{ toks []odatajson.Token }

func (d sliceDriver) NewReader(io.Reader) odatajson.Source { return &sliceSource{toks: d.toks} }
func (d sliceDriver) NewBytes([]byte) odatajson.Source    { return &sliceSource{toks: d.toks} }
func (sliceDriver) Name() string                          { return "slice" }

func TestCustomDriver(t *testing.T) {
	toks := []odatajson.Token{
		{Kind: odatajson.TokenBeginObject},
		{Kind: odatajson.TokenKey, String: "PropertyInt16"},
		{Kind: odatajson.TokenNumber, Number: "7"},
		{Kind: odatajson.TokenKey, String: "PropertyString"},
		{Kind: odatajson.TokenString, String: "s"},
		{Kind: odatajson.TokenEndObject},
	}
	e, err := decodeEntity(t, "ETTwoPrim", "ignored", odatajson.WithDriver(sliceDriver{toks: toks}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v := e.Property("PropertyInt16").Value; v != int16(7) {
		t.Fatalf("expected 7, got %v", v)
	}
}
