// Package source defines the boundary between the mapping engine and the
// codecs that turn bytes into a generic JSON tree and back.
//
// A tree is built only from nil, bool, json.Number, string, []any and
// map[string]any. Drivers live in subpackages: gojson (default), json and yaml.
package source

import (
	"errors"
	"fmt"

	eng "github.com/bartekchlebek/Rosetta/internal/engine"
)

// Limits bounds the input a driver accepts. Zero values disable a limit.
type Limits struct {
	MaxDepth            int
	MaxBytes            int64
	RejectDuplicateKeys bool
}

// Driver parses bytes into a generic tree and marshals trees back to bytes.
type Driver interface {
	Parse(data []byte, lim Limits) (any, error)
	Marshal(tree any) ([]byte, error)
	Name() string
}

// ErrTooLarge is returned when the input exceeds Limits.MaxBytes.
var ErrTooLarge = errors.New("source: max bytes exceeded")

// ErrTrailingData is returned when bytes follow the top-level value.
var ErrTrailingData = eng.ErrTrailingData

// LimitError reports a depth or duplicate key violation found while parsing.
type LimitError = eng.LimitError

// Codes carried by LimitError.
const (
	CodeMaxDepth     = eng.CodeMaxDepth
	CodeDuplicateKey = eng.CodeDuplicateKey
)

// CheckSize enforces Limits.MaxBytes up front.
func CheckSize(data []byte, lim Limits) error {
	if lim.MaxBytes > 0 && int64(len(data)) > lim.MaxBytes {
		return fmt.Errorf("%w: %d > %d", ErrTooLarge, len(data), lim.MaxBytes)
	}
	return nil
}

// Build drains a token source into a tree, applying depth and duplicate key
// enforcement. Token-based drivers share it.
func Build(ts eng.TokenSource, lim Limits) (any, error) {
	return eng.Build(eng.WrapWithEnforcement(ts, eng.EnforceOptions{
		MaxDepth:            lim.MaxDepth,
		RejectDuplicateKeys: lim.RejectDuplicateKeys,
	}))
}
