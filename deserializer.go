package odatajson

import (
	"context"
	"errors"
	"io"

	"github.com/reoring/odatajson/edm"
	eng "github.com/reoring/odatajson/internal/engine"
)

// Deserializer decodes OData JSON payloads against an EDM entity type. It is
// immutable after New and safe for concurrent use.
type Deserializer struct {
	opts Options
}

// New builds a Deserializer. Later options override earlier ones.
func New(opts ...Option) *Deserializer {
	d := &Deserializer{}
	for _, o := range opts {
		if o != nil {
			o(&d.opts)
		}
	}
	if d.opts.Driver == nil {
		d.opts.Driver = GoJSONDriver
	}
	return d
}

// Options returns a copy of the effective options.
func (d *Deserializer) Options() Options { return d.opts }

// Entity decodes a single entity document.
func (d *Deserializer) Entity(ctx context.Context, r io.Reader, t *edm.EntityType) (*Entity, error) {
	root, err := d.readTree(r, KeyDuplicateProperty)
	if err != nil {
		return nil, err
	}
	return newDecoder(ctx).entityDocument(t, root)
}

// EntityBytes is Entity over an in-memory payload.
func (d *Deserializer) EntityBytes(ctx context.Context, b []byte, t *edm.EntityType) (*Entity, error) {
	root, err := d.readTreeBytes(b, KeyDuplicateProperty)
	if err != nil {
		return nil, err
	}
	return newDecoder(ctx).entityDocument(t, root)
}

// EntityCollection decodes an entity collection document ({"value": [...]}).
func (d *Deserializer) EntityCollection(ctx context.Context, r io.Reader, t *edm.EntityType) (*EntitySet, error) {
	root, err := d.readTree(r, KeyDuplicateJSONProperty)
	if err != nil {
		return nil, err
	}
	return newDecoder(ctx).entitySetDocument(t, root)
}

// EntityCollectionBytes is EntityCollection over an in-memory payload.
func (d *Deserializer) EntityCollectionBytes(ctx context.Context, b []byte, t *edm.EntityType) (*EntitySet, error) {
	root, err := d.readTreeBytes(b, KeyDuplicateJSONProperty)
	if err != nil {
		return nil, err
	}
	return newDecoder(ctx).entitySetDocument(t, root)
}

// readTree enforces the size cap up front when MaxBytes is set, otherwise it
// streams tokens from r through the driver.
func (d *Deserializer) readTree(r io.Reader, dupKey MessageKey) (*eng.Node, error) {
	if d.opts.MaxBytes > 0 {
		data, err := io.ReadAll(io.LimitReader(r, d.opts.MaxBytes+1))
		if err != nil {
			return nil, newError(KeyIOError, "/", nil, err)
		}
		return d.readTreeBytes(data, dupKey)
	}
	return d.buildTree(d.opts.Driver.NewReader(r), dupKey)
}

func (d *Deserializer) readTreeBytes(b []byte, dupKey MessageKey) (*eng.Node, error) {
	if d.opts.MaxBytes > 0 && int64(len(b)) > d.opts.MaxBytes {
		return nil, newError(KeyTruncated, "/", map[string]any{"max": d.opts.MaxBytes}, nil)
	}
	return d.buildTree(d.opts.Driver.NewBytes(b), dupKey)
}

func (d *Deserializer) buildTree(src Source, dupKey MessageKey) (*eng.Node, error) {
	lastWins := d.opts.DuplicateKeys == DuplicateKeysLastWins
	ts := eng.WrapWithEnforcement(engineTokenSource(src), eng.EnforceOptions{
		RejectDuplicates: !lastWins,
		MaxDepth:         d.opts.MaxDepth,
	})
	root, err := eng.BuildTree(ts, lastWins)
	if err != nil {
		return nil, classifyReadError(err, dupKey)
	}
	return root, nil
}

// classifyReadError maps document-parser failures to message keys: syntax,
// duplicate keys and depth are told apart from failures of the reader.
func classifyReadError(err error, dupKey MessageKey) error {
	var se *eng.SyntaxError
	if errors.As(err, &se) {
		return newError(KeyJSONSyntax, "/", map[string]any{"offset": se.Offset}, err)
	}
	var ie *eng.IssueError
	if errors.As(err, &ie) {
		switch ie.Code {
		case eng.CodeDuplicateKey:
			return newError(dupKey, ie.Path, map[string]any{"field": ie.Key}, nil)
		case eng.CodeMaxDepth:
			return newError(KeyMaxDepth, ie.Path, nil, nil)
		}
	}
	return newError(KeyIOError, "/", nil, err)
}
