// Package yaml provides a source.Driver that reads and writes YAML documents
// through gopkg.in/yaml.v3. Documents are normalised into the same tree shape
// the JSON drivers produce, so mapping code is shared between formats.
package yaml

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/bartekchlebek/Rosetta/source"
)

// ErrNonStringKey is returned for mappings keyed by anything but strings.
var ErrNonStringKey = errors.New("yaml: non-string mapping key")

// ErrMultipleDocuments is returned when the input holds more than one document.
var ErrMultipleDocuments = errors.New("yaml: multiple documents")

// ErrMaxDepth is returned when nesting exceeds Limits.MaxDepth.
var ErrMaxDepth = errors.New("yaml: max depth exceeded")

// Driver returns the YAML driver.
func Driver() source.Driver { return driver{} }

type driver struct{}

func (driver) Name() string { return "yaml.v3" }

func (driver) Parse(data []byte, lim source.Limits) (any, error) {
	if err := source.CheckSize(data, lim); err != nil {
		return nil, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var node any
	if err := dec.Decode(&node); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, err
		}
		return nil, ErrMultipleDocuments
	}
	return normalize(node, 0, lim.MaxDepth)
}

func (driver) Marshal(tree any) ([]byte, error) {
	v, err := denormalize(tree)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(v)
}

// normalize converts YAML-decoded values into the JSON tree shape.
func normalize(v any, depth, maxDepth int) (any, error) {
	switch t := v.(type) {
	case map[string]any:
		if err := checkDepth(depth+1, maxDepth); err != nil {
			return nil, err
		}
		out := make(map[string]any, len(t))
		for k, vv := range t {
			nv, err := normalize(vv, depth+1, maxDepth)
			if err != nil {
				return nil, err
			}
			out[k] = nv
		}
		return out, nil
	case map[any]any:
		if err := checkDepth(depth+1, maxDepth); err != nil {
			return nil, err
		}
		out := make(map[string]any, len(t))
		for k, vv := range t {
			ks, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %v", ErrNonStringKey, k)
			}
			nv, err := normalize(vv, depth+1, maxDepth)
			if err != nil {
				return nil, err
			}
			out[ks] = nv
		}
		return out, nil
	case []any:
		if err := checkDepth(depth+1, maxDepth); err != nil {
			return nil, err
		}
		out := make([]any, len(t))
		for i := range t {
			nv, err := normalize(t[i], depth+1, maxDepth)
			if err != nil {
				return nil, err
			}
			out[i] = nv
		}
		return out, nil
	case int:
		return json.Number(strconv.Itoa(t)), nil
	case int64:
		return json.Number(strconv.FormatInt(t, 10)), nil
	case uint64:
		return json.Number(strconv.FormatUint(t, 10)), nil
	case float64:
		return json.Number(strconv.FormatFloat(t, 'g', -1, 64)), nil
	case time.Time:
		return t.Format(time.RFC3339Nano), nil
	default:
		return v, nil
	}
}

func checkDepth(depth, maxDepth int) error {
	if maxDepth > 0 && depth > maxDepth {
		return ErrMaxDepth
	}
	return nil
}

// denormalize turns json.Number leaves back into Go numbers so YAML emits
// plain scalars instead of quoted strings.
func denormalize(v any) (any, error) {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i, nil
		}
		if u, err := strconv.ParseUint(string(t), 10, 64); err == nil {
			return u, nil
		}
		f, err := t.Float64()
		if err != nil {
			return nil, err
		}
		return f, nil
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			nv, err := denormalize(vv)
			if err != nil {
				return nil, err
			}
			out[k] = nv
		}
		return out, nil
	case []any:
		out := make([]any, len(t))
		for i := range t {
			nv, err := denormalize(t[i])
			if err != nil {
				return nil, err
			}
			out[i] = nv
		}
		return out, nil
	default:
		return v, nil
	}
}
