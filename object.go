package rosetta

import "reflect"

// Mapper is implemented by types that declare their own field bindings.
// MapJSON runs once per pass in both directions; it must bind the same
// fields regardless of direction unless it branches on the session.
type Mapper interface {
	MapJSON(s *Session)
}

// MapFunc declares the field bindings of T against s.
type MapFunc[T any] func(v *T, s *Session)

// Cloner lets a type control the scratch copy made during decode. Types
// holding pointers, slices or maps that mapping code mutates in place should
// implement it on the pointer receiver.
type Cloner[T any] interface {
	Clone() T
}

// Object returns the converter of a Mapper type. Decoding runs the mapping
// on a fresh T against the JSON object.
func Object[T any, PT interface {
	*T
	Mapper
}]() Converter[T] {
	return ObjectFunc(mapperFunc[T, PT]())
}

// ObjectFunc returns a converter that maps T with m. Nested diagnostics keep
// root-relative key paths, and any nested Error fails the conversion with
// ErrNestedFailed.
func ObjectFunc[T any](m MapFunc[T]) Converter[T] {
	return newConverter(reflect.TypeFor[T]().String(), ShapeObject, viewObject,
		func(f *frame, obj map[string]any) (T, error) {
			var v T
			s, err := nestedSession(f, DirectionDecode, obj)
			if err != nil {
				return v, err
			}
			before := f.log.errorCount()
			m(&v, s)
			if f.log.errorCount() > before {
				return v, ErrNestedFailed
			}
			return v, nil
		},
		func(f *frame, v T) (map[string]any, error) {
			s, err := nestedSession(f, DirectionEncode, map[string]any{})
			if err != nil {
				return nil, err
			}
			before := f.log.errorCount()
			m(&v, s)
			if f.log.errorCount() > before {
				return nil, ErrNestedFailed
			}
			return s.doc, nil
		})
}

func mapperFunc[T any, PT interface {
	*T
	Mapper
}]() MapFunc[T] {
	return func(v *T, s *Session) { PT(v).MapJSON(s) }
}

// scratch returns the working copy of *v used by one decode pass.
func scratch[T any](v *T) T {
	if c, ok := any(v).(Cloner[T]); ok {
		return c.Clone()
	}
	return *v
}
