// Package gojson provides the default source.Driver, backed by
// github.com/goccy/go-json.
package gojson

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"

	j "github.com/goccy/go-json"

	eng "github.com/bartekchlebek/Rosetta/internal/engine"
	"github.com/bartekchlebek/Rosetta/source"
)

// Driver returns a source.Driver backed by goccy/go-json.
func Driver() source.Driver { return driverGoJSON{} }

type driverGoJSON struct{}

func (driverGoJSON) Name() string { return "go-json" }

func (driverGoJSON) Parse(data []byte, lim source.Limits) (any, error) {
	if err := source.CheckSize(data, lim); err != nil {
		return nil, err
	}
	return source.Build(NewBytes(data), lim)
}

func (driverGoJSON) Marshal(tree any) ([]byte, error) { return j.Marshal(toGoJSON(tree)) }

// toGoJSON rewrites encoding/json numbers into go-json numbers so they are
// emitted as literals rather than strings.
func toGoJSON(v any) any {
	switch t := v.(type) {
	case json.Number:
		return j.Number(string(t))
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = toGoJSON(vv)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, vv := range t {
			out[i] = toGoJSON(vv)
		}
		return out
	default:
		return v
	}
}

// ---- engine.TokenSource implementation using go-json Decoder ----

type tokenSource struct {
	dec    *j.Decoder
	frames eng.Framer
}

// NewReader wraps an io.Reader into an engine.TokenSource for JSON using go-json.
func NewReader(r io.Reader) eng.TokenSource {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	return &tokenSource{dec: dec}
}

// NewBytes wraps a byte slice into an engine.TokenSource for JSON using go-json.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

func (s *tokenSource) NextToken() (eng.Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		return eng.Token{}, err
	}
	switch v := tok.(type) {
	case j.Delim:
		switch v {
		case '{':
			s.frames.Open(true)
			return eng.Token{Kind: eng.KindBeginObject, Offset: -1}, nil
		case '}':
			s.frames.Close()
			return eng.Token{Kind: eng.KindEndObject, Offset: -1}, nil
		case '[':
			s.frames.Open(false)
			return eng.Token{Kind: eng.KindBeginArray, Offset: -1}, nil
		case ']':
			s.frames.Close()
			return eng.Token{Kind: eng.KindEndArray, Offset: -1}, nil
		}
	case string:
		if s.frames.Key() {
			return eng.Token{Kind: eng.KindKey, String: v, Offset: -1}, nil
		}
		s.frames.Value()
		return eng.Token{Kind: eng.KindString, String: v, Offset: -1}, nil
	case bool:
		s.frames.Value()
		return eng.Token{Kind: eng.KindBool, Bool: v, Offset: -1}, nil
	case j.Number:
		s.frames.Value()
		return eng.Token{Kind: eng.KindNumber, Number: string(v), Offset: -1}, nil
	case float64:
		s.frames.Value()
		return eng.Token{Kind: eng.KindNumber, Number: strconv.FormatFloat(v, 'g', -1, 64), Offset: -1}, nil
	}
	s.frames.Value()
	return eng.Token{Kind: eng.KindNull, Offset: -1}, nil
}

func (s *tokenSource) Location() int64 { return -1 }
