package rosetta

import (
	"maps"
	"slices"
	"strconv"
)

// ArrayOf lifts c to JSON arrays. A null or malformed element fails the
// whole array; the element is recorded with its index appended to the path.
func ArrayOf[T any](c Converter[T]) Converter[[]T] {
	return newConverter("[]"+c.name, ShapeArray, viewArray,
		func(f *frame, a []any) ([]T, error) {
			out := make([]T, 0, len(a))
			for i, raw := range a {
				v, ok, err := decodeElement(f, c, strconv.Itoa(i), raw, false)
				if err != nil {
					return nil, err
				}
				if ok {
					out = append(out, v)
				}
			}
			return out, nil
		},
		func(f *frame, vs []T) ([]any, error) {
			out := make([]any, 0, len(vs))
			for i, v := range vs {
				j, err := encodeElement(f, c, strconv.Itoa(i), v)
				if err != nil {
					return nil, err
				}
				out = append(out, j)
			}
			return out, nil
		})
}

// ArrayOfOptional is ArrayOf with nullable elements: JSON null decodes to a
// nil slot and nil slots encode as null. Malformed elements still fail.
func ArrayOfOptional[T any](c Converter[T]) Converter[[]*T] {
	return newConverter("[]*"+c.name, ShapeArray, viewArray,
		func(f *frame, a []any) ([]*T, error) {
			out := make([]*T, 0, len(a))
			for i, raw := range a {
				v, ok, err := decodeElement(f, c, strconv.Itoa(i), raw, true)
				if err != nil {
					return nil, err
				}
				if ok {
					out = append(out, &v)
				} else {
					out = append(out, nil)
				}
			}
			return out, nil
		},
		func(f *frame, vs []*T) ([]any, error) {
			out := make([]any, 0, len(vs))
			for i, v := range vs {
				if v == nil {
					out = append(out, nil)
					continue
				}
				j, err := encodeElement(f, c, strconv.Itoa(i), *v)
				if err != nil {
					return nil, err
				}
				out = append(out, j)
			}
			return out, nil
		})
}

// MapOf lifts c to JSON objects used as dictionaries. Keys are visited in
// sorted order so diagnostics are deterministic.
func MapOf[T any](c Converter[T]) Converter[map[string]T] {
	return newConverter("map[string]"+c.name, ShapeObject, viewObject,
		func(f *frame, m map[string]any) (map[string]T, error) {
			out := make(map[string]T, len(m))
			for _, k := range slices.Sorted(maps.Keys(m)) {
				v, _, err := decodeElement(f, c, k, m[k], false)
				if err != nil {
					return nil, err
				}
				out[k] = v
			}
			return out, nil
		},
		func(f *frame, vs map[string]T) (map[string]any, error) {
			out := make(map[string]any, len(vs))
			for _, k := range slices.Sorted(maps.Keys(vs)) {
				j, err := encodeElement(f, c, k, vs[k])
				if err != nil {
					return nil, err
				}
				out[k] = j
			}
			return out, nil
		})
}

// MapOfOptional is MapOf with nullable values. Only JSON null becomes a nil
// value; a malformed value fails the whole map.
func MapOfOptional[T any](c Converter[T]) Converter[map[string]*T] {
	return newConverter("map[string]*"+c.name, ShapeObject, viewObject,
		func(f *frame, m map[string]any) (map[string]*T, error) {
			out := make(map[string]*T, len(m))
			for _, k := range slices.Sorted(maps.Keys(m)) {
				v, ok, err := decodeElement(f, c, k, m[k], true)
				if err != nil {
					return nil, err
				}
				if ok {
					out[k] = &v
				} else {
					out[k] = nil
				}
			}
			return out, nil
		},
		func(f *frame, vs map[string]*T) (map[string]any, error) {
			out := make(map[string]any, len(vs))
			for _, k := range slices.Sorted(maps.Keys(vs)) {
				if vs[k] == nil {
					out[k] = nil
					continue
				}
				j, err := encodeElement(f, c, k, *vs[k])
				if err != nil {
					return nil, err
				}
				out[k] = j
			}
			return out, nil
		})
}

// decodeElement decodes one collection element. ok is false for a tolerated
// null. A non-nil error aborts the collection after the element was logged.
func decodeElement[T any](f *frame, c Converter[T], key string, raw any, nullable bool) (v T, ok bool, err error) {
	ef, err := f.descend(key)
	if err != nil {
		return v, false, err
	}
	r := c.decode(ef, raw)
	switch r.Outcome {
	case Null:
		if nullable {
			return v, false, nil
		}
		ef.log.field(Error, ValueMissing, ef.path, nil)
		return v, false, ErrElementFailed
	case Unexpected:
		ef.log.unexpected(Error, r.Category, ef.path, c.shape, r.Got, r.Err)
		return v, false, ErrElementFailed
	}
	return r.Value, true, nil
}

func encodeElement[T any](f *frame, c Converter[T], key string, v T) (any, error) {
	ef, err := f.descend(key)
	if err != nil {
		return nil, err
	}
	j, err := c.encode(ef, v)
	if err != nil {
		ef.log.field(Error, ConversionFailed, ef.path, err)
		return nil, ErrElementFailed
	}
	return j, nil
}
