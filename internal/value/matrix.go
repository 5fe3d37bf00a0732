package value

import (
	"fmt"
	"strings"
)

// Matrix is an N-dimensional dense tensor: dimension sizes plus a
// row-major contiguous cell slice (spec.md §3), e.g. for 2D `m[i,j]`:
// offset = i*dimv[1] + j.
type Matrix struct {
	Base
	Dims  []int
	Cells []Value
}

// NewMatrix allocates a matrix of the given dimensions with every cell set
// to Unknown.
func NewMatrix(dims []int) *Matrix {
	n := 1
	for _, d := range dims {
		n *= d
	}
	cells := make([]Value, n)
	for i := range cells {
		cells[i] = NewUnknown()
	}
	d := make([]int, len(dims))
	copy(d, dims)
	return &Matrix{Dims: d, Cells: cells}
}

func (m *Matrix) Kind() Kind   { return KindMatrix }
func (m *Matrix) Length() int  { return len(m.Cells) }
func (m *Matrix) Truthy() bool { return len(m.Cells) > 0 }
func (m *Matrix) String() string {
	dims := make([]string, len(m.Dims))
	for i, d := range m.Dims {
		dims[i] = fmt.Sprintf("%d", d)
	}
	return "Matrix[" + strings.Join(dims, "x") + "]"
}

func (m *Matrix) Clone() Value {
	cells := make([]Value, len(m.Cells))
	for i, c := range m.Cells {
		cells[i] = c.Clone()
	}
	dims := make([]int, len(m.Dims))
	copy(dims, m.Dims)
	return &Matrix{Dims: dims, Cells: cells}
}

// Offset maps an index tuple to a row-major cell offset, validating rank and
// per-dimension bounds (spec.md §4.1: OutOfRange on violation).
func (m *Matrix) Offset(idx []int) (int, error) {
	if len(idx) != len(m.Dims) {
		return 0, fmt.Errorf("matrix index rank %d does not match dimension count %d", len(idx), len(m.Dims))
	}
	offset := 0
	for k, i := range idx {
		if i < 0 || i >= m.Dims[k] {
			return 0, fmt.Errorf("matrix index %d out of range [0,%d) in dimension %d", i, m.Dims[k], k)
		}
		offset = offset*m.Dims[k] + i
	}
	return offset, nil
}

func (m *Matrix) Get(idx []int) (Value, error) {
	off, err := m.Offset(idx)
	if err != nil {
		return nil, err
	}
	return m.Cells[off], nil
}

func (m *Matrix) Set(idx []int, v Value) error {
	off, err := m.Offset(idx)
	if err != nil {
		return err
	}
	m.Cells[off] = v
	return nil
}

// SameShape reports whether m and other share dimension count and sizes.
func (m *Matrix) SameShape(other *Matrix) bool {
	if len(m.Dims) != len(other.Dims) {
		return false
	}
	for i := range m.Dims {
		if m.Dims[i] != other.Dims[i] {
			return false
		}
	}
	return true
}
