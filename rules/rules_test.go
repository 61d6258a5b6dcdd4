package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompare(t *testing.T) {
	assert.True(t, Compare(Eq, 3)(3))
	assert.True(t, Compare(Ne, 3)(4))
	assert.True(t, Compare(Lt, 3)(2))
	assert.False(t, Compare(Le, 3)(4))
	assert.True(t, Compare(Gt, "a")("b"))
	assert.True(t, Compare(Ge, 1.5)(1.5))
	assert.False(t, Compare(Op(99), 1)(1))
}

func TestRanges(t *testing.T) {
	assert.True(t, Min(0)(0))
	assert.False(t, Min(0)(-1))
	assert.True(t, Max(10)(10))
	assert.False(t, Max(10)(11))
	assert.True(t, Between(1, 3)(2))
	assert.False(t, Between(1, 3)(4))
}

func TestStrings(t *testing.T) {
	assert.True(t, NonEmpty("x"))
	assert.False(t, NonEmpty(""))
	assert.True(t, MinLen(2)("日本"))
	assert.False(t, MaxLen(1)("日本"))
	assert.True(t, LenBetween(1, 3)("abc"))
	assert.False(t, LenBetween(1, 3)(""))
	assert.True(t, Pattern(`^[a-z]+$`)("abc"))
	assert.False(t, Pattern(`^[a-z]+$`)("ABC"))
	assert.True(t, OneOf("a", "b")("b"))
	assert.False(t, OneOf("a", "b")("c"))
	assert.True(t, Equal("x")("x"))
}

func TestCollections(t *testing.T) {
	assert.True(t, AtLeastOne([]int{1}))
	assert.False(t, AtLeastOne([]int(nil)))
	assert.True(t, Each(Min(0))([]int{0, 1, 2}))
	assert.False(t, Each(Min(0))([]int{0, -1}))

	type item struct{ ID string }
	unique := UniqueBy(func(i item) string { return i.ID })
	assert.True(t, unique([]item{{"a"}, {"b"}}))
	assert.False(t, unique([]item{{"a"}, {"a"}}))
}

func TestCombinators(t *testing.T) {
	even := func(n int) bool { return n%2 == 0 }
	assert.True(t, And(even, Min(0), nil)(4))
	assert.False(t, And(even, Min(0))(-2))
	assert.True(t, Or(even, Min(10))(11))
	assert.False(t, Or[int](nil, even)(3))
	assert.True(t, Not(even)(3))
}
