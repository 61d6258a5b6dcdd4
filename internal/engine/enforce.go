package engine

import (
	"strconv"
	"strings"
)

// Enforcement wrapper for TokenSource applying duplicate key rejection and
// max depth checks while the tree is being built.

// EnforceOptions controls runtime enforcement behavior.
type EnforceOptions struct {
	MaxDepth            int
	RejectDuplicateKeys bool
}

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind         containerKind
	keys         map[string]struct{}
	expectingKey bool
	path         string
	nextIndex    int
	pendingKey   string
}

// Error codes carried by LimitError.
const (
	CodeMaxDepth     = "max_depth"
	CodeDuplicateKey = "duplicate_key"
)

// LimitError reports an input that violates an enforcement option.
type LimitError struct {
	Code    string
	Path    string // JSON Pointer of the offending token.
	Message string
}

func (e *LimitError) Error() string { return e.Message + " at " + e.Path }

// WrapWithEnforcement returns a TokenSource that enforces duplicate key policy
// and maximum nesting depth. Disabled options return inner unchanged.
func WrapWithEnforcement(inner TokenSource, opt EnforceOptions) TokenSource {
	if opt.MaxDepth <= 0 && !opt.RejectDuplicateKeys {
		return inner
	}
	return &enforcingTokenSource{inner: inner, opt: opt}
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

	path := e.currentPathForToken(tok)

	switch tok.Kind {
	case KindBeginObject, KindBeginArray:
		f := frame{kind: kindArray, path: path}
		if tok.Kind == KindBeginObject {
			f = frame{kind: kindObject, keys: make(map[string]struct{}), expectingKey: true, path: path}
		}
		e.stack = append(e.stack, f)
		if e.opt.MaxDepth > 0 && len(e.stack) > e.opt.MaxDepth {
			return Token{}, &LimitError{Code: CodeMaxDepth, Path: normalizePath(path), Message: "max depth exceeded"}
		}
	case KindEndObject, KindEndArray:
		if n := len(e.stack); n > 0 {
			e.stack = e.stack[:n-1]
		}
		e.valueDone()
	case KindKey:
		if n := len(e.stack); n > 0 {
			top := &e.stack[n-1]
			if top.kind == kindObject && top.expectingKey {
				if e.opt.RejectDuplicateKeys {
					if _, ok := top.keys[tok.String]; ok {
						return Token{}, &LimitError{Code: CodeDuplicateKey, Path: normalizePath(path), Message: "key '" + tok.String + "' duplicated"}
					}
					top.keys[tok.String] = struct{}{}
				}
				top.expectingKey = false
				top.pendingKey = tok.String
			}
		}
	case KindString, KindNumber, KindBool, KindNull:
		e.valueDone()
	}
	return tok, nil
}

// valueDone flips the enclosing object back to expecting a key.
func (e *enforcingTokenSource) valueDone() {
	if n := len(e.stack); n > 0 {
		top := &e.stack[n-1]
		if top.kind == kindObject && !top.expectingKey {
			top.expectingKey = true
			top.pendingKey = ""
		}
	}
}

func (e *enforcingTokenSource) currentPathForToken(tok Token) string {
	if len(e.stack) == 0 {
		if tok.Kind == KindKey {
			return joinJSONPointer("", tok.String)
		}
		return ""
	}
	top := &e.stack[len(e.stack)-1]
	switch tok.Kind {
	case KindKey:
		return joinJSONPointer(top.path, tok.String)
	case KindBeginObject, KindBeginArray, KindString, KindNumber, KindBool, KindNull:
		if top.kind == kindArray {
			p := joinJSONPointer(top.path, strconv.Itoa(top.nextIndex))
			top.nextIndex++
			return p
		}
		if !top.expectingKey {
			return joinJSONPointer(top.path, top.pendingKey)
		}
	}
	return top.path
}

func normalizePath(p string) string {
	if p == "" {
		return "/"
	}
	return p
}

var jsonPointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func joinJSONPointer(base, token string) string {
	return base + "/" + jsonPointerEscaper.Replace(token)
}

func (e *enforcingTokenSource) Location() int64 { return e.inner.Location() }
