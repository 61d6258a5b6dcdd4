package rosetta

import (
	"errors"
	"fmt"
	"strings"
)

// Record codes (exported consts for IDE completion and type safety by convention)
const (
	CodeWrongType        = "wrong_type"
	CodeValueMissing     = "value_missing"
	CodeValidationFailed = "validation_failed"
	CodeConversionFailed = "conversion_failed"
	CodeTextEncoding     = "text_encoding"
	CodeParseError       = "parse_error"
)

var (
	// ErrDecodeFailed is matched (errors.Is) by every failed decode.
	ErrDecodeFailed = errors.New("rosetta: decode failed")
	// ErrEncodeFailed is matched (errors.Is) by every failed encode.
	ErrEncodeFailed = errors.New("rosetta: encode failed")
	// ErrEmptyKeyPath is returned when a value is assigned at an empty key path.
	ErrEmptyKeyPath = errors.New("rosetta: key path must not be empty")
	// ErrMaxDepth is the cause recorded when nested conversion exceeds the depth limit.
	ErrMaxDepth = errors.New("rosetta: max depth exceeded")
	// ErrNoConverter is the cause recorded when Infer finds no registered converter.
	ErrNoConverter = errors.New("rosetta: no converter registered")
	// ErrNilValue is the cause recorded when a converter is asked to encode a nil pointer.
	ErrNilValue = errors.New("rosetta: nil value")
	// ErrElementFailed is the cause recorded when a collection element failed.
	ErrElementFailed = errors.New("rosetta: collection element failed")
	// ErrInvalidUTF8 is the cause of a text encoding record.
	ErrInvalidUTF8 = errors.New("rosetta: text is not valid UTF-8")
	// ErrRootShape is the cause recorded when the document root has the wrong shape.
	ErrRootShape = errors.New("rosetta: unexpected document root")
	// ErrNestedFailed is the cause recorded when a nested mapping logged an error.
	ErrNestedFailed = errors.New("rosetta: nested mapping failed")
)

// MappingError is returned by every failed top-level operation. It carries the
// diagnostics log of the failed session.
type MappingError struct {
	Direction Direction
	Log       *Log
	// Cause is set when the failure did not come from the log, e.g. the driver
	// could not serialize the encoded tree.
	Cause error
}

// Error summarizes the first few error records.
func (e *MappingError) Error() string {
	const maxShown = 3
	b := &strings.Builder{}
	fmt.Fprintf(b, "rosetta: %s failed", e.Direction)
	if e.Cause != nil {
		fmt.Fprintf(b, ": %v", e.Cause)
	}
	var errs []Record
	if e.Log != nil {
		errs = e.Log.Errors()
	}
	for i, r := range errs {
		if i == maxShown {
			fmt.Fprintf(b, "; ... (total %d)", len(errs))
			break
		}
		if i == 0 {
			b.WriteString(": ")
		} else {
			b.WriteString("; ")
		}
		if r.Kind == RecordField {
			fmt.Fprintf(b, "%s at %s", r.Code(), r.Path.Pointer())
		} else {
			b.WriteString(r.Code())
		}
	}
	return b.String()
}

func (e *MappingError) Unwrap() []error {
	sentinel := ErrDecodeFailed
	if e.Direction == DirectionEncode {
		sentinel = ErrEncodeFailed
	}
	if e.Cause != nil {
		return []error{sentinel, e.Cause}
	}
	return []error{sentinel}
}

// AsMappingError extracts a *MappingError from err using errors.As internally.
func AsMappingError(err error) (*MappingError, bool) {
	if err == nil {
		return nil, false
	}
	var me *MappingError
	if errors.As(err, &me) {
		return me, true
	}
	return nil, false
}
