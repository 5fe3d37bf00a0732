package value

import (
	"strconv"
)

// Integer is a signed, at-least-64-bit integer value.
type Integer struct {
	Base
	V int64
}

func NewInteger(v int64) *Integer { return &Integer{V: v} }

func (i *Integer) Kind() Kind   { return KindInteger }
func (i *Integer) Length() int  { return 0 }
func (i *Integer) Truthy() bool { return i.V != 0 }
func (i *Integer) String() string {
	return strconv.FormatInt(i.V, 10)
}

// Clone returns a fresh, unstored copy. Scalars are cheap to copy (spec.md
// §4.1: "cheap copy for scalars").
func (i *Integer) Clone() Value {
	return &Integer{V: i.V}
}

// Real is an IEEE-754 double.
type Real struct {
	Base
	V float64
}

func NewReal(v float64) *Real { return &Real{V: v} }

func (r *Real) Kind() Kind   { return KindReal }
func (r *Real) Length() int  { return 0 }
func (r *Real) Truthy() bool { return r.V != 0 }
func (r *Real) String() string {
	return strconv.FormatFloat(r.V, 'g', -1, 64)
}

func (r *Real) Clone() Value {
	return &Real{V: r.V}
}

// Complex is a real+imaginary pair of doubles.
type Complex struct {
	Base
	Re, Im float64
}

func NewComplex(re, im float64) *Complex { return &Complex{Re: re, Im: im} }

func (c *Complex) Kind() Kind  { return KindComplex }
func (c *Complex) Length() int { return 0 }
func (c *Complex) Truthy() bool {
	return c.Re != 0 || c.Im != 0
}
func (c *Complex) String() string {
	sign := "+"
	im := c.Im
	if im < 0 {
		sign = "-"
		im = -im
	}
	return strconv.FormatFloat(c.Re, 'g', -1, 64) + sign + strconv.FormatFloat(im, 'g', -1, 64) + "i"
}

func (c *Complex) Clone() Value {
	return &Complex{Re: c.Re, Im: c.Im}
}

// Unknown is the bottom value: "unassigned" (spec.md §3).
type Unknown struct {
	Base
}

var theUnknown = &Unknown{}

// NewUnknown returns the shared Unknown instance. Unknown carries no
// payload, so sharing one immutable instance is safe; Clone still returns a
// distinct pointer to keep Stored bookkeeping independent per binding.
func NewUnknown() *Unknown { return theUnknown }

func (u *Unknown) Kind() Kind     { return KindUnknown }
func (u *Unknown) Length() int    { return 0 }
func (u *Unknown) Truthy() bool   { return false }
func (u *Unknown) String() string { return "" }
func (u *Unknown) Clone() Value   { return &Unknown{} }
