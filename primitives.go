package rosetta

import (
	"encoding/json"
	"errors"
	"math"
	"math/big"
	"strconv"
	"strings"
)

var (
	// ErrOutOfRange is the cause recorded when a number does not fit the target type.
	ErrOutOfRange = errors.New("rosetta: number out of range")
	// ErrNotInteger is the cause recorded when an integer target receives a fraction.
	ErrNotInteger = errors.New("rosetta: number is not an integer")
	// ErrNotFinite is returned when encoding NaN or an infinity.
	ErrNotFinite = errors.New("rosetta: number is not finite")
)

// Built-in converters. Integer converters are range checked against the
// destination width; float converters are not, but reject unparsable input.
var (
	String = NewString("String",
		func(s string) (string, error) { return s, nil },
		func(s string) (string, error) { return s, nil })

	Bool = NewBool("Bool",
		func(b bool) (bool, error) { return b, nil },
		func(b bool) (bool, error) { return b, nil })

	Int   = signed[int]("Int", strconv.IntSize)
	Int8  = signed[int8]("Int8", 8)
	Int16 = signed[int16]("Int16", 16)
	Int32 = signed[int32]("Int32", 32)
	Int64 = signed[int64]("Int64", 64)

	Uint   = unsigned[uint]("Uint", strconv.IntSize)
	Uint8  = unsigned[uint8]("Uint8", 8)
	Uint16 = unsigned[uint16]("Uint16", 16)
	Uint32 = unsigned[uint32]("Uint32", 32)
	Uint64 = unsigned[uint64]("Uint64", 64)

	Float32 = float[float32]("Float32", 32)
	Float64 = float[float64]("Float64", 64)

	// Number passes the JSON number literal through untouched.
	Number = NewNumber("Number",
		func(n json.Number) (json.Number, error) { return n, nil },
		func(n json.Number) (json.Number, error) {
			if _, err := strconv.ParseFloat(string(n), 64); err != nil {
				return "", err
			}
			return n, nil
		})

	// Raw passes any non-null JSON tree value through untouched.
	Raw = NewAny("Raw",
		func(v any) (any, error) { return v, nil },
		func(v any) (any, error) { return v, nil })
)

func signed[T ~int | ~int8 | ~int16 | ~int32 | ~int64](name string, bits int) Converter[T] {
	return NewNumber(name,
		func(n json.Number) (T, error) {
			i, err := parseSigned(n, bits)
			return T(i), err
		},
		func(v T) (json.Number, error) { return json.Number(strconv.FormatInt(int64(v), 10)), nil })
}

func unsigned[T ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64](name string, bits int) Converter[T] {
	return NewNumber(name,
		func(n json.Number) (T, error) {
			u, err := parseUnsigned(n, bits)
			return T(u), err
		},
		func(v T) (json.Number, error) { return json.Number(strconv.FormatUint(uint64(v), 10)), nil })
}

func float[T ~float32 | ~float64](name string, bits int) Converter[T] {
	return NewNumber(name,
		func(n json.Number) (T, error) {
			// Out of range values round to an infinity or zero.
			f, err := strconv.ParseFloat(string(n), bits)
			if err != nil && !errors.Is(err, strconv.ErrRange) {
				return 0, err
			}
			return T(f), nil
		},
		func(v T) (json.Number, error) {
			f := float64(v)
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return "", ErrNotFinite
			}
			return json.Number(strconv.FormatFloat(f, 'g', -1, bits)), nil
		})
}

// parseSigned reads n as an int64 and checks it against a bits-wide signed
// range. Integral values in exponent or fraction form ("1e2", "100.0") are
// accepted.
func parseSigned(n json.Number, bits int) (int64, error) {
	i, err := strconv.ParseInt(string(n), 10, 64)
	if err != nil {
		b, ierr := integral(n)
		if ierr != nil {
			return 0, ierr
		}
		if !b.IsInt64() {
			return 0, ErrOutOfRange
		}
		i = b.Int64()
	}
	lo, hi := int64(-1)<<(bits-1), int64(1)<<(bits-1)-1
	if bits >= 64 {
		lo, hi = math.MinInt64, math.MaxInt64
	}
	if i < lo || i > hi {
		return 0, ErrOutOfRange
	}
	return i, nil
}

// parseUnsigned is the unsigned counterpart of parseSigned.
func parseUnsigned(n json.Number, bits int) (uint64, error) {
	u, err := strconv.ParseUint(string(n), 10, 64)
	if err != nil {
		b, ierr := integral(n)
		if ierr != nil {
			return 0, ierr
		}
		if !b.IsUint64() {
			return 0, ErrOutOfRange
		}
		u = b.Uint64()
	}
	if bits < 64 && u > uint64(1)<<bits-1 {
		return 0, ErrOutOfRange
	}
	return u, nil
}

// integral reads a number literal in fraction or exponent form exactly.
// ParseFloat screens the magnitude first so big.Rat never sees an exponent
// far beyond the literal's digit count.
func integral(n json.Number) (*big.Int, error) {
	f, err := strconv.ParseFloat(string(n), 64)
	if err != nil {
		if !errors.Is(err, strconv.ErrRange) {
			return nil, err
		}
		if math.IsInf(f, 0) {
			return nil, ErrOutOfRange
		}
		// nonzero but below float64 resolution
		return nil, ErrNotInteger
	}
	if math.Abs(f) > 0x1p64 {
		return nil, ErrOutOfRange
	}
	if f == 0 {
		mantissa, _, _ := strings.Cut(strings.ToLower(string(n)), "e")
		if strings.ContainsAny(mantissa, "123456789") {
			return nil, ErrNotInteger
		}
		return new(big.Int), nil
	}
	r, ok := new(big.Rat).SetString(string(n))
	if !ok || !r.IsInt() {
		return nil, ErrNotInteger
	}
	return r.Num(), nil
}
