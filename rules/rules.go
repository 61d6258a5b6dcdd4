// Package rules provides validator predicates for field bindings:
//
//	rosetta.Required(s.Key("age"), &u.Age, rosetta.Int, rules.Between(0, 150))
package rules

import (
	"cmp"
	"reflect"
	"regexp"
	"slices"
	"unicode/utf8"
)

// Op defines simple comparison operators for Compare.
type Op int

const (
	Eq Op = iota
	Ne
	Lt
	Le
	Gt
	Ge
)

// Rule is a validator predicate.
type Rule[T any] = func(T) bool

// Compare checks v against want with op.
func Compare[T cmp.Ordered](op Op, want T) Rule[T] {
	return func(v T) bool {
		c := cmp.Compare(v, want)
		switch op {
		case Eq:
			return c == 0
		case Ne:
			return c != 0
		case Lt:
			return c < 0
		case Le:
			return c <= 0
		case Gt:
			return c > 0
		case Ge:
			return c >= 0
		default:
			return false
		}
	}
}

// Equal accepts values deeply equal to want.
func Equal[T any](want T) Rule[T] {
	return func(v T) bool { return reflect.DeepEqual(v, want) }
}

// Min accepts values >= lo.
func Min[T cmp.Ordered](lo T) Rule[T] { return Compare(Ge, lo) }

// Max accepts values <= hi.
func Max[T cmp.Ordered](hi T) Rule[T] { return Compare(Le, hi) }

// Between accepts values in [lo, hi].
func Between[T cmp.Ordered](lo, hi T) Rule[T] {
	return func(v T) bool { return v >= lo && v <= hi }
}

// OneOf accepts the listed values.
func OneOf[T comparable](allowed ...T) Rule[T] {
	return func(v T) bool { return slices.Contains(allowed, v) }
}

// NonEmpty rejects the empty string.
func NonEmpty(s string) bool { return s != "" }

// MinLen accepts strings of at least n runes.
func MinLen(n int) Rule[string] {
	return func(s string) bool { return utf8.RuneCountInString(s) >= n }
}

// MaxLen accepts strings of at most n runes.
func MaxLen(n int) Rule[string] {
	return func(s string) bool { return utf8.RuneCountInString(s) <= n }
}

// LenBetween accepts strings of lo..hi runes.
func LenBetween(lo, hi int) Rule[string] {
	return func(s string) bool {
		n := utf8.RuneCountInString(s)
		return n >= lo && n <= hi
	}
}

// Pattern accepts strings matching expr. It panics if expr does not compile.
func Pattern(expr string) Rule[string] {
	re := regexp.MustCompile(expr)
	return re.MatchString
}

// AtLeastOne accepts collections with one element or more.
func AtLeastOne[E any](v []E) bool { return len(v) > 0 }

// Each applies r to every element.
func Each[E any](r Rule[E]) Rule[[]E] {
	return func(vs []E) bool {
		for _, v := range vs {
			if !r(v) {
				return false
			}
		}
		return true
	}
}

// UniqueBy rejects collections in which two elements share a key.
func UniqueBy[E any, K comparable](key func(E) K) Rule[[]E] {
	return func(vs []E) bool {
		seen := make(map[K]struct{}, len(vs))
		for _, v := range vs {
			k := key(v)
			if _, dup := seen[k]; dup {
				return false
			}
			seen[k] = struct{}{}
		}
		return true
	}
}

// ---------- Rule combinators ----------

// And accepts values accepted by every rule. Nil rules are skipped.
func And[T any](rules ...Rule[T]) Rule[T] {
	return func(v T) bool {
		for _, r := range rules {
			if r != nil && !r(v) {
				return false
			}
		}
		return true
	}
}

// Or accepts values accepted by any rule.
func Or[T any](rules ...Rule[T]) Rule[T] {
	return func(v T) bool {
		for _, r := range rules {
			if r != nil && r(v) {
				return true
			}
		}
		return false
	}
}

// Not negates r.
func Not[T any](r Rule[T]) Rule[T] {
	return func(v T) bool { return !r(v) }
}
