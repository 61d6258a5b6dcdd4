// Package codec provides converters for common Go types that JSON carries as
// strings or numbers.
package codec

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"time"

	rosetta "github.com/bartekchlebek/Rosetta"
)

var (
	// ErrScheme is returned when a URL scheme is not allowed.
	ErrScheme = errors.New("codec: url scheme not allowed")
	// ErrRelativeURL is returned when an absolute URL is required.
	ErrRelativeURL = errors.New("codec: url is not absolute")
)

// URL returns a Converter between strings and *url.URL. With schemes given
// the URL must be absolute and use one of them.
func URL(schemes ...string) rosetta.Converter[*url.URL] {
	check := func(u *url.URL) error {
		if len(schemes) == 0 {
			return nil
		}
		if !u.IsAbs() {
			return ErrRelativeURL
		}
		if !slices.Contains(schemes, u.Scheme) {
			return fmt.Errorf("%w: %q", ErrScheme, u.Scheme)
		}
		return nil
	}
	return rosetta.Via("URL", rosetta.String,
		func(s string) (*url.URL, error) {
			u, err := url.Parse(s)
			if err != nil {
				return nil, err
			}
			return u, check(u)
		},
		func(u *url.URL) (string, error) {
			if u == nil {
				return "", rosetta.ErrNilValue
			}
			if err := check(u); err != nil {
				return "", err
			}
			return u.String(), nil
		})
}

// Duration returns a Converter between Go duration strings ("1h30m") and
// time.Duration.
func Duration() rosetta.Converter[time.Duration] {
	return rosetta.Via("Duration", rosetta.String, time.ParseDuration,
		func(d time.Duration) (string, error) { return d.String(), nil })
}

// Base64 returns a Converter between standard base64 strings and bytes.
func Base64() rosetta.Converter[[]byte] {
	return rosetta.Via("Base64", rosetta.String, base64.StdEncoding.DecodeString,
		func(b []byte) (string, error) { return base64.StdEncoding.EncodeToString(b), nil })
}

// Checked wraps c so that check runs after decoding and before encoding.
// The value itself passes through unchanged.
func Checked[T any](c rosetta.Converter[T], check func(T) error) rosetta.Converter[T] {
	return rosetta.Via(c.Name(), c,
		func(v T) (T, error) { return v, check(v) },
		func(v T) (T, error) { return v, check(v) })
}

// Enum returns a Converter between strings and T restricted to the keys of
// values.
func Enum[T comparable](name string, values map[string]T) rosetta.Converter[T] {
	reverse := make(map[T]string, len(values))
	for k, v := range values {
		reverse[v] = k
	}
	return rosetta.NewString(name,
		func(s string) (T, error) {
			v, ok := values[s]
			if !ok {
				var zero T
				return zero, fmt.Errorf("codec: unknown %s %q", name, s)
			}
			return v, nil
		},
		func(v T) (string, error) {
			s, ok := reverse[v]
			if !ok {
				return "", fmt.Errorf("codec: no %s name for %v", name, v)
			}
			return s, nil
		})
}
