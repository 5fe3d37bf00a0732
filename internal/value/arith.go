package value

import (
	"math"

	"github.com/kconner/goguash/internal/status"
)

// widened holds both operands after promotion to a common numeric
// representation; only the fields matching Kind are meaningful.
type widened struct {
	kind     Kind
	ai, bi   int64
	ar, br   float64
	are, aim float64
	bre, bim float64
}

// widen promotes two operands to a common representation for arithmetic:
// Integer op Integer stays Integer; anything involving Real or Complex
// widens both sides, per spec.md §4.1 ("promote Integer→Real→Complex").
func widen(a, b Value) (widened, bool) {
	ak, aok := classify(a)
	bk, bok := classify(b)
	if !aok || !bok {
		return widened{}, false
	}
	top := ak
	if bk > top {
		top = bk
	}
	switch top {
	case KindInteger:
		return widened{kind: KindInteger, ai: a.(*Integer).V, bi: b.(*Integer).V}, true
	case KindReal:
		af, _ := toFloat(a)
		bf, _ := toFloat(b)
		return widened{kind: KindReal, ar: af, br: bf}, true
	case KindComplex:
		r1, i1, _ := asComplex(a)
		r2, i2, _ := asComplex(b)
		return widened{kind: KindComplex, are: r1, aim: i1, bre: r2, bim: i2}, true
	}
	return widened{}, false
}

// classify ranks a numeric Value's kind for widening purposes; non-numeric
// Values are rejected by the caller via ok=false.
func classify(v Value) (Kind, bool) {
	switch v.(type) {
	case *Integer:
		return KindInteger, true
	case *Real:
		return KindReal, true
	case *Complex:
		return KindComplex, true
	default:
		return 0, false
	}
}

func toFloat(v Value) (float64, bool) {
	switch t := v.(type) {
	case *Integer:
		return float64(t.V), true
	case *Real:
		return t.V, true
	default:
		return 0, false
	}
}

func illegalOperand(op string, a, b Value) *status.Error {
	msg := "illegal operand for " + op + ": " + a.Kind().String()
	if b != nil {
		msg += " and " + b.Kind().String()
	}
	return status.New(status.ErrorIllegalOperand, status.Pos{}, msg)
}

// Add implements `+`. Matrix+Matrix performs element-wise addition
// (`Gua_AddMatrix` in the original interpreter's core, alongside `*`/`^`
// which spec.md §4.1 names directly).
func Add(a, b Value) (Value, *status.Error) {
	if am, ok := a.(*Matrix); ok {
		if bm, ok := b.(*Matrix); ok {
			out, err := MatAdd(am, bm)
			if err != nil {
				return nil, status.New(status.ErrorIllegalOperand, status.Pos{}, err.Error())
			}
			return out, nil
		}
	}
	w, ok := widen(a, b)
	if !ok {
		return nil, illegalOperand("+", a, b)
	}
	switch w.kind {
	case KindInteger:
		return NewInteger(w.ai + w.bi), nil
	case KindReal:
		return NewReal(w.ar + w.br), nil
	case KindComplex:
		return NewComplex(w.are+w.bre, w.aim+w.bim), nil
	}
	return nil, illegalOperand("+", a, b)
}

// Sub implements `-`. Matrix-Matrix performs element-wise subtraction
// (`Gua_SubMatrix`).
func Sub(a, b Value) (Value, *status.Error) {
	if am, ok := a.(*Matrix); ok {
		if bm, ok := b.(*Matrix); ok {
			out, err := MatSub(am, bm)
			if err != nil {
				return nil, status.New(status.ErrorIllegalOperand, status.Pos{}, err.Error())
			}
			return out, nil
		}
	}
	w, ok := widen(a, b)
	if !ok {
		return nil, illegalOperand("-", a, b)
	}
	switch w.kind {
	case KindInteger:
		return NewInteger(w.ai - w.bi), nil
	case KindReal:
		return NewReal(w.ar - w.br), nil
	case KindComplex:
		return NewComplex(w.are-w.bre, w.aim-w.bim), nil
	}
	return nil, illegalOperand("-", a, b)
}

func Mul(a, b Value) (Value, *status.Error) {
	if am, ok := a.(*Matrix); ok {
		if bm, ok := b.(*Matrix); ok {
			out, err := MatMul(am, bm)
			if err != nil {
				return nil, status.New(status.ErrorIllegalOperand, status.Pos{}, err.Error())
			}
			return out, nil
		}
	}
	w, ok := widen(a, b)
	if !ok {
		return nil, illegalOperand("*", a, b)
	}
	switch w.kind {
	case KindInteger:
		return NewInteger(w.ai * w.bi), nil
	case KindReal:
		return NewReal(w.ar * w.br), nil
	case KindComplex:
		return NewComplex(w.are*w.bre-w.aim*w.bim, w.are*w.bim+w.aim*w.bre), nil
	}
	return nil, illegalOperand("*", a, b)
}

func Div(a, b Value) (Value, *status.Error) {
	w, ok := widen(a, b)
	if !ok {
		return nil, illegalOperand("/", a, b)
	}
	switch w.kind {
	case KindInteger:
		if w.bi == 0 {
			return nil, status.New(status.ErrorDivisionByZero, status.Pos{}, "division by zero")
		}
		return NewInteger(w.ai / w.bi), nil
	case KindReal:
		if w.br == 0 {
			return nil, status.New(status.ErrorDivisionByZero, status.Pos{}, "division by zero")
		}
		return NewReal(w.ar / w.br), nil
	case KindComplex:
		denom := w.bre*w.bre + w.bim*w.bim
		if denom == 0 {
			return nil, status.New(status.ErrorDivisionByZero, status.Pos{}, "division by zero")
		}
		return NewComplex(
			(w.are*w.bre+w.aim*w.bim)/denom,
			(w.aim*w.bre-w.are*w.bim)/denom,
		), nil
	}
	return nil, illegalOperand("/", a, b)
}

// Compare implements the relational operators `< <= > >=`, defined for
// Integer/Real operands (widened together); Complex and all other kinds are
// not ordered and report IllegalOperand (spec.md §4.1 defines `<` etc. only
// implicitly via the grammar's relational level, alongside `==`/`!=` which
// the separate Equal function already handles for every kind).
func Compare(a, b Value) (int, *status.Error) {
	w, ok := widen(a, b)
	if !ok || w.kind == KindComplex {
		return 0, illegalOperand("relational comparison", a, b)
	}
	switch w.kind {
	case KindInteger:
		switch {
		case w.ai < w.bi:
			return -1, nil
		case w.ai > w.bi:
			return 1, nil
		default:
			return 0, nil
		}
	case KindReal:
		switch {
		case w.ar < w.br:
			return -1, nil
		case w.ar > w.br:
			return 1, nil
		default:
			return 0, nil
		}
	}
	return 0, illegalOperand("relational comparison", a, b)
}

// Mod implements `%`, defined only for Integer operands (spec.md §4.1).
func Mod(a, b Value) (Value, *status.Error) {
	ai, aok := a.(*Integer)
	bi, bok := b.(*Integer)
	if !aok || !bok {
		return nil, illegalOperand("%", a, b)
	}
	if bi.V == 0 {
		return nil, status.New(status.ErrorDivisionByZero, status.Pos{}, "division by zero")
	}
	return NewInteger(ai.V % bi.V), nil
}

// Pow implements `**`. Non-negative Integer exponent on a Matrix performs
// repeated multiplication; exponent -1 inverts via Gauss-Jordan (spec.md
// §4.1).
func Pow(a, b Value) (Value, *status.Error) {
	if am, ok := a.(*Matrix); ok {
		bi, ok := b.(*Integer)
		if !ok {
			return nil, illegalOperand("**", a, b)
		}
		if bi.V == -1 {
			out, err := MatInverse(am)
			if err != nil {
				return nil, status.New(status.ErrorIllegalOperand, status.Pos{}, err.Error())
			}
			return out, nil
		}
		if bi.V < 0 {
			return nil, status.New(status.ErrorIllegalOperand, status.Pos{}, "matrix power must be >= 0 or exactly -1")
		}
		out, err := MatPow(am, bi.V)
		if err != nil {
			return nil, status.New(status.ErrorIllegalOperand, status.Pos{}, err.Error())
		}
		return out, nil
	}

	w, ok := widen(a, b)
	if !ok {
		return nil, illegalOperand("**", a, b)
	}
	switch w.kind {
	case KindInteger:
		if w.bi < 0 {
			return NewReal(math.Pow(float64(w.ai), float64(w.bi))), nil
		}
		result := int64(1)
		for i := int64(0); i < w.bi; i++ {
			result *= w.ai
		}
		return NewInteger(result), nil
	case KindReal:
		return NewReal(math.Pow(w.ar, w.br)), nil
	case KindComplex:
		// Complex exponentiation via polar form; only real integer
		// exponents are meaningfully needed by the grammar's `**` level,
		// so this covers the common case used by scripts.
		r := math.Hypot(w.are, w.aim)
		theta := math.Atan2(w.aim, w.are)
		nr := math.Pow(r, w.bre)
		ntheta := theta * w.bre
		return NewComplex(nr*math.Cos(ntheta), nr*math.Sin(ntheta)), nil
	}
	return nil, illegalOperand("**", a, b)
}

// Neg implements unary `-`. Matrix negation is element-wise (`Gua_NegMatrix`).
func Neg(a Value) (Value, *status.Error) {
	switch v := a.(type) {
	case *Integer:
		return NewInteger(-v.V), nil
	case *Real:
		return NewReal(-v.V), nil
	case *Complex:
		return NewComplex(-v.Re, -v.Im), nil
	case *Matrix:
		return MatNeg(v), nil
	}
	return nil, illegalOperand("unary -", a, nil)
}

func Pos(a Value) (Value, *status.Error) {
	switch a.(type) {
	case *Integer, *Real, *Complex:
		return a.Clone(), nil
	}
	return nil, illegalOperand("unary +", a, nil)
}

// --- bitwise: Integer only (spec.md §4.1) ---

func bitwiseInts(op string, a, b Value) (int64, int64, *status.Error) {
	ai, aok := a.(*Integer)
	bi, bok := b.(*Integer)
	if !aok || !bok {
		return 0, 0, illegalOperand(op, a, b)
	}
	return ai.V, bi.V, nil
}

func BitAnd(a, b Value) (Value, *status.Error) {
	x, y, err := bitwiseInts("&", a, b)
	if err != nil {
		return nil, err
	}
	return NewInteger(x & y), nil
}

func BitOr(a, b Value) (Value, *status.Error) {
	x, y, err := bitwiseInts("|", a, b)
	if err != nil {
		return nil, err
	}
	return NewInteger(x | y), nil
}

func BitXor(a, b Value) (Value, *status.Error) {
	x, y, err := bitwiseInts("^", a, b)
	if err != nil {
		return nil, err
	}
	return NewInteger(x ^ y), nil
}

func BitNot(a Value) (Value, *status.Error) {
	ai, ok := a.(*Integer)
	if !ok {
		return nil, illegalOperand("~", a, nil)
	}
	return NewInteger(^ai.V), nil
}

func Shl(a, b Value) (Value, *status.Error) {
	x, y, err := bitwiseInts("<<", a, b)
	if err != nil {
		return nil, err
	}
	return NewInteger(x << uint64(y)), nil
}

func Shr(a, b Value) (Value, *status.Error) {
	x, y, err := bitwiseInts(">>", a, b)
	if err != nil {
		return nil, err
	}
	return NewInteger(x >> uint64(y)), nil
}

// --- logical: truthy coercion, Integer 0/1 result (spec.md §4.1) ---

func boolVal(b bool) *Integer {
	if b {
		return NewInteger(1)
	}
	return NewInteger(0)
}

// And implements `&&`. Matrix&&Matrix reduces element-wise, same shape
// required (`Gua_AndMatrix` in the original interpreter's core).
func And(a, b Value) (Value, *status.Error) {
	if am, ok := a.(*Matrix); ok {
		if bm, ok := b.(*Matrix); ok {
			out, err := MatAnd(am, bm)
			if err != nil {
				return nil, status.New(status.ErrorIllegalOperand, status.Pos{}, err.Error())
			}
			return out, nil
		}
	}
	return boolVal(a.Truthy() && b.Truthy()), nil
}

// Or implements `||`. Matrix||Matrix reduces element-wise (`Gua_OrMatrix`).
func Or(a, b Value) (Value, *status.Error) {
	if am, ok := a.(*Matrix); ok {
		if bm, ok := b.(*Matrix); ok {
			out, err := MatOr(am, bm)
			if err != nil {
				return nil, status.New(status.ErrorIllegalOperand, status.Pos{}, err.Error())
			}
			return out, nil
		}
	}
	return boolVal(a.Truthy() || b.Truthy()), nil
}

func Not(a Value) Value { return boolVal(!a.Truthy()) }

// AndOr implements `&~|`: true iff exactly one operand is truthy (spec.md
// §4.1's ternary-like reduction). Matrix&~|Matrix reduces element-wise
// (`Gua_AndOrMatrix`).
func AndOr(a, b Value) (Value, *status.Error) {
	if am, ok := a.(*Matrix); ok {
		if bm, ok := b.(*Matrix); ok {
			out, err := MatAndOr(am, bm)
			if err != nil {
				return nil, status.New(status.ErrorIllegalOperand, status.Pos{}, err.Error())
			}
			return out, nil
		}
	}
	return boolVal(a.Truthy() != b.Truthy()), nil
}
