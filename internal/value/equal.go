package value

import "math"

// asComplex widens an Integer, Real or Complex v to a (re, im) float64 pair
// for cross-kind comparison (ok is false for any other kind), per spec.md §3's "Integer↔Real↔Complex by
// widening" promotion rule.
func asComplex(v Value) (re, im float64, ok bool) {
	switch t := v.(type) {
	case *Integer:
		return float64(t.V), 0, true
	case *Real:
		return t.V, 0, true
	case *Complex:
		return t.Re, t.Im, true
	default:
		return 0, 0, false
	}
}

// Equal implements spec.md §4.1's `equal` contract: numeric promotion
// across Integer/Real/Complex, byte-wise String comparison, order-
// independent Array comparison (same size, every key/value pair matches),
// and element-wise Matrix comparison (same dims, same cells).
func Equal(a, b Value) bool {
	if ar, aIm, aok := asComplex(a); aok {
		if br, bIm, bok := asComplex(b); bok {
			return ar == br && aIm == bIm
		}
		return false
	}

	switch av := a.(type) {
	case *String:
		bv, ok := b.(*String)
		return ok && string(av.B) == string(bv.B)
	case *Array:
		bv, ok := b.(*Array)
		if !ok || av.Length() != bv.Length() {
			return false
		}
		for _, e := range av.Entries() {
			bval, found, err := bv.Get(e.Key)
			if err != nil || !found || !Equal(e.Value, bval) {
				return false
			}
		}
		return true
	case *Matrix:
		bv, ok := b.(*Matrix)
		if !ok || !av.SameShape(bv) {
			return false
		}
		for i := range av.Cells {
			if !Equal(av.Cells[i], bv.Cells[i]) {
				return false
			}
		}
		return true
	case *Unknown:
		_, ok := b.(*Unknown)
		return ok
	case *File:
		bv, ok := b.(*File)
		return ok && av.Ops == bv.Ops
	case *Handle:
		bv, ok := b.(*Handle)
		return ok && av.TypeName == bv.TypeName && av.Payload == bv.Payload
	case *Namespace:
		bv, ok := b.(*Namespace)
		return ok && av.Ref == bv.Ref
	default:
		return false
	}
}

// ApproximatelyEqual is Equal for non-numeric kinds, but |a-b| < eps for
// numerics (spec.md §4.1), element-wise for Matrix.
func ApproximatelyEqual(a, b Value, eps float64) bool {
	if ar, aIm, aok := asComplex(a); aok {
		if br, bIm, bok := asComplex(b); bok {
			return math.Abs(ar-br) < eps && math.Abs(aIm-bIm) < eps
		}
		return false
	}
	if am, ok := a.(*Matrix); ok {
		bm, ok := b.(*Matrix)
		if !ok || !am.SameShape(bm) {
			return false
		}
		for i := range am.Cells {
			if !ApproximatelyEqual(am.Cells[i], bm.Cells[i], eps) {
				return false
			}
		}
		return true
	}
	return Equal(a, b)
}
