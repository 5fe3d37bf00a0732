package value

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestCloneIndependence covers spec.md §8: clone(v) == v structurally, and
// mutating the clone must not affect the original.
func TestCloneIndependence(t *testing.T) {
	arr := NewArray()
	_ = arr.Set(NewInteger(0), NewInteger(10))

	clone := arr.Clone().(*Array)
	require.True(t, Equal(arr, clone))

	_ = clone.Set(NewInteger(0), NewInteger(999))
	orig, _, _ := arr.Get(NewInteger(0))
	require.Equal(t, int64(10), orig.(*Integer).V, "mutating the clone must not affect the original")
}

func TestCloneIndependenceMatrix(t *testing.T) {
	m := NewMatrix([]int{1, 1})
	_ = m.Set([]int{0, 0}, NewInteger(5))

	clone := m.Clone().(*Matrix)
	_ = clone.Set([]int{0, 0}, NewInteger(99))

	orig, _ := m.Get([]int{0, 0})
	require.Equal(t, int64(5), orig.(*Integer).V)
}

func TestScalarEqualityReflexive(t *testing.T) {
	// spec.md §8: for all scalar x, x == x.
	require.True(t, Equal(NewInteger(7), NewInteger(7)))
	require.True(t, Equal(NewReal(1.5), NewReal(1.5)))
	require.True(t, Equal(NewString("hi"), NewString("hi")))
}

func TestIntegerRealCrossKindEquality(t *testing.T) {
	require.True(t, Equal(NewInteger(2), NewReal(2)))
}

func TestUnknownIsFalsy(t *testing.T) {
	require.False(t, NewUnknown().Truthy())
}
