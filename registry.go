package rosetta

import (
	"net/url"
	"reflect"
	"sync"
	"time"
)

var registry = struct {
	mu sync.RWMutex
	m  map[reflect.Type]any
}{m: map[reflect.Type]any{}}

func init() {
	Register(String)
	Register(Bool)
	Register(Int)
	Register(Int8)
	Register(Int16)
	Register(Int32)
	Register(Int64)
	Register(Uint)
	Register(Uint8)
	Register(Uint16)
	Register(Uint32)
	Register(Uint64)
	Register(Float32)
	Register(Float64)
	Register(Number)
	Register(Raw)
	Register(urlConverter)
	Register(timeConverter)
}

// Register makes c the default converter for T, replacing any previous one.
// Bindings that pass a nil converter and Infer resolve through the registry.
func Register[T any](c Converter[T]) {
	registry.mu.Lock()
	registry.m[reflect.TypeFor[T]()] = c
	registry.mu.Unlock()
}

// Registered returns the default converter for T, if one was registered.
func Registered[T any]() (Converter[T], bool) {
	registry.mu.RLock()
	v, ok := registry.m[reflect.TypeFor[T]()]
	registry.mu.RUnlock()
	if !ok {
		return Converter[T]{}, false
	}
	return v.(Converter[T]), true
}

// Infer returns the default converter for T. When none is registered the
// returned converter fails every conversion with ErrNoConverter.
func Infer[T any]() Converter[T] {
	if c, ok := Registered[T](); ok {
		return c
	}
	return Converter[T]{name: reflect.TypeFor[T]().String(), shape: ShapeAny, view: viewAny}
}

// urlConverter and timeConverter give *url.URL and time.Time a default; the
// codec package exposes the configurable variants.
var (
	urlConverter = Via("URL", String,
		func(s string) (*url.URL, error) { return url.Parse(s) },
		func(u *url.URL) (string, error) {
			if u == nil {
				return "", ErrNilValue
			}
			return u.String(), nil
		})

	timeConverter = Via("Time", String,
		func(s string) (time.Time, error) { return time.Parse(time.RFC3339Nano, s) },
		func(t time.Time) (string, error) { return t.Format(time.RFC3339Nano), nil })
)
