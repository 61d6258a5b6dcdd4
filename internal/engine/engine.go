package engine

import (
	"encoding/json"
	"errors"
	"io"
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

// Token represents a streaming token with approximate input offset.
type Token struct {
	Kind   Kind
	String string
	Number string
	Bool   bool
	Offset int64
}

// TokenSource is a minimal interface required by the engine.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64
}

// ErrTrailingData is returned when input continues after the top-level value.
var ErrTrailingData = errors.New("engine: trailing data after top-level value")

// Build reads exactly one JSON value from src and returns it as a generic
// tree of nil, bool, json.Number, string, []any and map[string]any.
func Build(src TokenSource) (any, error) {
	tok, err := src.NextToken()
	if err != nil {
		if err == io.EOF {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	v, err := buildValue(src, tok)
	if err != nil {
		return nil, err
	}
	if _, err := src.NextToken(); err != io.EOF {
		if err != nil {
			return nil, err
		}
		return nil, ErrTrailingData
	}
	return v, nil
}

func buildValue(src TokenSource, tok Token) (any, error) {
	switch tok.Kind {
	case KindBeginObject:
		return buildObject(src)
	case KindBeginArray:
		return buildArray(src)
	case KindString:
		return tok.String, nil
	case KindNumber:
		return json.Number(tok.Number), nil
	case KindBool:
		return tok.Bool, nil
	case KindNull:
		return nil, nil
	default:
		return nil, io.ErrUnexpectedEOF
	}
}

func buildObject(src TokenSource) (any, error) {
	m := make(map[string]any)
	for {
		tok, err := src.NextToken()
		if err != nil {
			return nil, eofAsUnexpected(err)
		}
		if tok.Kind == KindEndObject {
			return m, nil
		}
		if tok.Kind != KindKey {
			return nil, io.ErrUnexpectedEOF
		}
		vt, err := src.NextToken()
		if err != nil {
			return nil, eofAsUnexpected(err)
		}
		v, err := buildValue(src, vt)
		if err != nil {
			return nil, err
		}
		m[tok.String] = v
	}
}

func buildArray(src TokenSource) (any, error) {
	arr := []any{}
	for {
		tok, err := src.NextToken()
		if err != nil {
			return nil, eofAsUnexpected(err)
		}
		if tok.Kind == KindEndArray {
			return arr, nil
		}
		v, err := buildValue(src, tok)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
}

func eofAsUnexpected(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
