package value

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kconner/goguash/internal/status"
)

func TestAddIntegerIntegerStaysInteger(t *testing.T) {
	v, err := Add(NewInteger(2), NewInteger(3))
	require.Nil(t, err)
	require.Equal(t, int64(5), v.(*Integer).V)
}

func TestAddIntegerRealPromotesToReal(t *testing.T) {
	// spec.md §8: Integer(a) + Real(b) == Real(a)+Real(b).
	v, err := Add(NewInteger(2), NewReal(3.5))
	require.Nil(t, err)
	require.Equal(t, 5.5, v.(*Real).V)

	v2, err2 := Add(NewReal(2), NewReal(3.5))
	require.Nil(t, err2)
	require.Equal(t, v.(*Real).V, v2.(*Real).V)
}

func TestDivisionByZeroReportsErrorStatus(t *testing.T) {
	_, err := Div(NewInteger(1), NewInteger(0))
	require.NotNil(t, err)
}

func TestCompareOrdersIntegersAndReals(t *testing.T) {
	c, err := Compare(NewInteger(1), NewInteger(2))
	require.Nil(t, err)
	require.Equal(t, -1, c)

	c, err = Compare(NewReal(2.5), NewReal(2.5))
	require.Nil(t, err)
	require.Equal(t, 0, c)

	c, err = Compare(NewReal(3), NewInteger(2))
	require.Nil(t, err)
	require.Equal(t, 1, c)
}

func TestCompareRejectsComplex(t *testing.T) {
	_, err := Compare(NewComplex(1, 1), NewComplex(1, 1))
	require.NotNil(t, err)
}

func TestPowMatrixInverse(t *testing.T) {
	m := NewMatrix([]int{2, 2})
	_ = m.Set([]int{0, 0}, NewReal(1))
	_ = m.Set([]int{0, 1}, NewReal(2))
	_ = m.Set([]int{1, 0}, NewReal(3))
	_ = m.Set([]int{1, 1}, NewReal(4))

	inv, err := Pow(m, NewInteger(-1))
	require.Nil(t, err)

	prod, merr := MatMul(inv.(*Matrix), m)
	require.NoError(t, merr)

	c00, _ := prod.Get([]int{0, 0})
	c11, _ := prod.Get([]int{1, 1})
	require.InDelta(t, 1.0, c00.(*Real).V, 1e-9)
	require.InDelta(t, 1.0, c11.(*Real).V, 1e-9)
}

func TestShortCircuitHelpersAndOrNot(t *testing.T) {
	v, err := And(NewInteger(1), NewInteger(1))
	require.Nil(t, err)
	require.True(t, v.Truthy())

	v, err = And(NewInteger(1), NewInteger(0))
	require.Nil(t, err)
	require.False(t, v.Truthy())

	v, err = Or(NewInteger(0), NewInteger(1))
	require.Nil(t, err)
	require.True(t, v.Truthy())

	require.True(t, Not(NewInteger(0)).Truthy())
}

func TestMatrixElementwiseAddSubNeg(t *testing.T) {
	a := NewMatrix([]int{1, 2})
	_ = a.Set([]int{0, 0}, NewInteger(1))
	_ = a.Set([]int{0, 1}, NewInteger(2))

	b := NewMatrix([]int{1, 2})
	_ = b.Set([]int{0, 0}, NewInteger(10))
	_ = b.Set([]int{0, 1}, NewInteger(20))

	sum, err := Add(a, b)
	require.Nil(t, err)
	c0, _ := sum.(*Matrix).Get([]int{0, 0})
	c1, _ := sum.(*Matrix).Get([]int{0, 1})
	require.Equal(t, int64(11), c0.(*Integer).V)
	require.Equal(t, int64(22), c1.(*Integer).V)

	diff, err := Sub(b, a)
	require.Nil(t, err)
	d0, _ := diff.(*Matrix).Get([]int{0, 0})
	require.Equal(t, int64(9), d0.(*Integer).V)

	neg, err := Neg(a)
	require.Nil(t, err)
	n0, _ := neg.(*Matrix).Get([]int{0, 0})
	require.Equal(t, int64(-1), n0.(*Integer).V)
}

func TestMatrixAddShapeMismatchIsIllegalOperand(t *testing.T) {
	a := NewMatrix([]int{1, 2})
	b := NewMatrix([]int{2, 1})
	_, err := Add(a, b)
	require.NotNil(t, err)
	require.Equal(t, status.ErrorIllegalOperand, err.Status)
}
