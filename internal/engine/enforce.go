package engine

import (
	"strconv"
	"strings"
)

// Enforcement wrapper for TokenSource applying duplicate key handling and
// max depth checks in a streaming fashion.

// Issue codes produced by the enforcement layer.
const (
	CodeDuplicateKey = "duplicate_key"
	CodeMaxDepth     = "max_depth"
)

// EnforceOptions controls runtime enforcement behavior.
type EnforceOptions struct {
	RejectDuplicates bool
	MaxDepth         int
}

// IssueError is returned by an enforcing source when the input violates
// one of the enforced limits.
type IssueError struct {
	Code    string
	Path    string // JSON Pointer of the offending key or container
	Key     string // duplicated key, if any
	Message string
}

func (e *IssueError) Error() string { return e.Message + " at " + e.Path }

// WrapWithEnforcement returns a TokenSource that enforces the duplicate key
// policy and maximum nesting depth. It returns inner unchanged when nothing
// needs enforcing.
func WrapWithEnforcement(inner TokenSource, opt EnforceOptions) TokenSource {
	if !opt.RejectDuplicates && opt.MaxDepth <= 0 {
		return inner
	}
	return &enforcingTokenSource{inner: inner, opt: opt}
}

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind       containerKind
	keys       map[string]struct{}
	path       string
	nextIndex  int
	pendingKey string
	hasPending bool
}

type enforcingTokenSource struct {
	inner TokenSource
	opt   EnforceOptions
	stack []frame
}

func (e *enforcingTokenSource) NextToken() (Token, error) {
	tok, err := e.inner.NextToken()
	if err != nil {
		return Token{}, err
	}

	switch tok.Kind {
	case KindBeginObject, KindBeginArray:
		path := e.valuePath()
		f := frame{kind: kindArray, path: path}
		if tok.Kind == KindBeginObject {
			f.kind = kindObject
			if e.opt.RejectDuplicates {
				f.keys = make(map[string]struct{})
			}
		}
		e.stack = append(e.stack, f)
		if e.opt.MaxDepth > 0 && len(e.stack) > e.opt.MaxDepth {
			return Token{}, &IssueError{Code: CodeMaxDepth, Path: pointerOrRoot(path), Message: "max depth exceeded"}
		}
	case KindEndObject, KindEndArray:
		if n := len(e.stack); n > 0 {
			e.stack = e.stack[:n-1]
		}
	case KindKey:
		if n := len(e.stack); n > 0 {
			top := &e.stack[n-1]
			if top.keys != nil {
				if _, dup := top.keys[tok.String]; dup {
					return Token{}, &IssueError{
						Code:    CodeDuplicateKey,
						Path:    joinJSONPointer(top.path, tok.String),
						Key:     tok.String,
						Message: "key '" + tok.String + "' duplicated",
					}
				}
				top.keys[tok.String] = struct{}{}
			}
			top.pendingKey = tok.String
			top.hasPending = true
		}
	default:
		e.valuePath()
	}
	return tok, nil
}

// valuePath computes the pointer of the value token about to be consumed and
// advances the parent frame past it.
func (e *enforcingTokenSource) valuePath() string {
	if len(e.stack) == 0 {
		return ""
	}
	top := &e.stack[len(e.stack)-1]
	if top.kind == kindArray {
		p := joinJSONPointer(top.path, strconv.Itoa(top.nextIndex))
		top.nextIndex++
		return p
	}
	if !top.hasPending {
		return top.path
	}
	top.hasPending = false
	return joinJSONPointer(top.path, top.pendingKey)
}

func (e *enforcingTokenSource) Location() int64 { return e.inner.Location() }

func pointerOrRoot(p string) string {
	if p == "" {
		return "/"
	}
	return p
}

var jsonPointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func joinJSONPointer(base, token string) string {
	return base + "/" + jsonPointerEscaper.Replace(token)
}
