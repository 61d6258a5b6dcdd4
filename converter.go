package rosetta

import (
	"encoding/json"
	"strconv"
)

// Outcome is the three-way result of a decode.
type Outcome int

const (
	Decoded    Outcome = iota // A value was produced.
	Unexpected                // The JSON value could not be converted.
	Null                      // The JSON value was null.
)

// DecodeResult is the result of Converter.Decode.
type DecodeResult[T any] struct {
	Value   T
	Outcome Outcome
	// Category is WrongType or ConversionFailed when Outcome is Unexpected.
	Category Category
	// Got is the shape of the offending value for WrongType.
	Got Shape
	Err error
}

// OK reports whether a value was produced.
func (r DecodeResult[T]) OK() bool { return r.Outcome == Decoded }

// Converter is a named pair of conversions between a JSON shape and T.
// Converters are immutable and safe for concurrent use.
type Converter[T any] struct {
	name  string
	shape Shape
	view  func(any) (any, bool)
	dec   func(f *frame, j any) (T, error)
	enc   func(f *frame, v T) (any, error)
}

// frame carries the session context a converter runs in: where to record
// nested diagnostics, the root-relative path of the value and the depth.
type frame struct {
	log    *Log
	path   KeyPath
	depth  int
	dryRun bool
	opts   *options
}

func standaloneFrame() *frame { return &frame{log: &Log{}, opts: defaultOptions()} }

// descend returns the frame of a child value, enforcing the depth limit.
func (f *frame) descend(key string) (*frame, error) {
	if f.opts.maxDepth > 0 && f.depth+1 > f.opts.maxDepth {
		return nil, ErrMaxDepth
	}
	return &frame{log: f.log, path: f.path.Append(key), depth: f.depth + 1, dryRun: f.dryRun, opts: f.opts}, nil
}

func newConverter[T, J any](name string, shape Shape, view func(any) (J, bool), dec func(*frame, J) (T, error), enc func(*frame, T) (J, error)) Converter[T] {
	return Converter[T]{
		name:  name,
		shape: shape,
		view: func(v any) (any, bool) {
			j, ok := view(v)
			return j, ok
		},
		dec: func(f *frame, j any) (T, error) { return dec(f, j.(J)) },
		enc: func(f *frame, v T) (any, error) { return enc(f, v) },
	}
}

// Name returns the converter name used in diagnostics.
func (c Converter[T]) Name() string { return c.name }

// Shape returns the JSON shape the converter expects.
func (c Converter[T]) Shape() Shape { return c.shape }

// Decode converts a JSON tree value into T.
func (c Converter[T]) Decode(raw any) DecodeResult[T] { return c.decode(standaloneFrame(), raw) }

// Encode converts v into a JSON tree value.
func (c Converter[T]) Encode(v T) (any, error) { return c.encode(standaloneFrame(), v) }

func (c Converter[T]) decode(f *frame, raw any) DecodeResult[T] {
	if raw == nil {
		return DecodeResult[T]{Outcome: Null}
	}
	if c.dec == nil {
		return DecodeResult[T]{Outcome: Unexpected, Category: ConversionFailed, Err: ErrNoConverter}
	}
	j, ok := c.view(raw)
	if !ok {
		return DecodeResult[T]{Outcome: Unexpected, Category: WrongType, Got: ShapeOf(raw)}
	}
	v, err := c.dec(f, j)
	if err != nil {
		return DecodeResult[T]{Outcome: Unexpected, Category: ConversionFailed, Err: err}
	}
	return DecodeResult[T]{Value: v, Outcome: Decoded}
}

func (c Converter[T]) encode(f *frame, v T) (any, error) {
	if c.enc == nil {
		return nil, ErrNoConverter
	}
	return c.enc(f, v)
}

// NewString builds a converter for values carried as JSON strings.
func NewString[T any](name string, dec func(string) (T, error), enc func(T) (string, error)) Converter[T] {
	return newConverter(name, ShapeString, viewString,
		func(_ *frame, s string) (T, error) { return dec(s) },
		func(_ *frame, v T) (string, error) { return enc(v) })
}

// NewNumber builds a converter for values carried as JSON numbers.
func NewNumber[T any](name string, dec func(json.Number) (T, error), enc func(T) (json.Number, error)) Converter[T] {
	return newConverter(name, ShapeNumber, asNumber,
		func(_ *frame, n json.Number) (T, error) { return dec(n) },
		func(_ *frame, v T) (json.Number, error) { return enc(v) })
}

// NewBool builds a converter for values carried as JSON booleans.
func NewBool[T any](name string, dec func(bool) (T, error), enc func(T) (bool, error)) Converter[T] {
	return newConverter(name, ShapeBool, viewBool,
		func(_ *frame, b bool) (T, error) { return dec(b) },
		func(_ *frame, v T) (bool, error) { return enc(v) })
}

// NewObject builds a converter for values carried as JSON objects. The
// closures see the raw object; prefer Object or ObjectFunc for mapped types.
func NewObject[T any](name string, dec func(map[string]any) (T, error), enc func(T) (map[string]any, error)) Converter[T] {
	return newConverter(name, ShapeObject, viewObject,
		func(_ *frame, m map[string]any) (T, error) { return dec(m) },
		func(_ *frame, v T) (map[string]any, error) { return enc(v) })
}

// NewArray builds a converter for values carried as JSON arrays. Prefer
// ArrayOf for homogeneous element types.
func NewArray[T any](name string, dec func([]any) (T, error), enc func(T) ([]any, error)) Converter[T] {
	return newConverter(name, ShapeArray, viewArray,
		func(_ *frame, a []any) (T, error) { return dec(a) },
		func(_ *frame, v T) ([]any, error) { return enc(v) })
}

// NewAny builds a converter accepting any non-null JSON value.
func NewAny[T any](name string, dec func(any) (T, error), enc func(T) (any, error)) Converter[T] {
	return newConverter(name, ShapeAny, viewAny,
		func(_ *frame, v any) (T, error) { return dec(v) },
		func(_ *frame, v T) (any, error) { return enc(v) })
}

// Via derives a Converter[B] from a Converter[A] and a pair of conversions.
// The JSON shape stays that of c; errors from to/from are conversion failures.
func Via[A, B any](name string, c Converter[A], to func(A) (B, error), from func(B) (A, error)) Converter[B] {
	return Converter[B]{
		name:  name,
		shape: c.shape,
		view:  c.view,
		dec: func(f *frame, j any) (B, error) {
			var zero B
			if c.dec == nil {
				return zero, ErrNoConverter
			}
			a, err := c.dec(f, j)
			if err != nil {
				return zero, err
			}
			return to(a)
		},
		enc: func(f *frame, v B) (any, error) {
			a, err := from(v)
			if err != nil {
				return nil, err
			}
			return c.encode(f, a)
		},
	}
}

// ---- shape views ----

func viewString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func viewBool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

func viewObject(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

func viewArray(v any) ([]any, bool) {
	a, ok := v.([]any)
	return a, ok
}

func viewAny(v any) (any, bool) { return v, v != nil }

// asNumber views parsed numbers and Go numeric kinds as json.Number.
func asNumber(v any) (json.Number, bool) {
	switch n := v.(type) {
	case json.Number:
		return n, true
	case float64:
		return json.Number(strconv.FormatFloat(n, 'g', -1, 64)), true
	case float32:
		return json.Number(strconv.FormatFloat(float64(n), 'g', -1, 32)), true
	case int:
		return json.Number(strconv.FormatInt(int64(n), 10)), true
	case int8:
		return json.Number(strconv.FormatInt(int64(n), 10)), true
	case int16:
		return json.Number(strconv.FormatInt(int64(n), 10)), true
	case int32:
		return json.Number(strconv.FormatInt(int64(n), 10)), true
	case int64:
		return json.Number(strconv.FormatInt(n, 10)), true
	case uint:
		return json.Number(strconv.FormatUint(uint64(n), 10)), true
	case uint8:
		return json.Number(strconv.FormatUint(uint64(n), 10)), true
	case uint16:
		return json.Number(strconv.FormatUint(uint64(n), 10)), true
	case uint32:
		return json.Number(strconv.FormatUint(uint64(n), 10)), true
	case uint64:
		return json.Number(strconv.FormatUint(n, 10)), true
	default:
		return "", false
	}
}
