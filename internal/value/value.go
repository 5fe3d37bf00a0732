// Package value implements goguash's runtime Value union (spec.md §3).
//
// Value is a Go interface rather than the flat tagged struct the original C
// interpreter uses (see _examples/original_source/include/interp.h); each
// variant is its own concrete type, grounded on the teacher's
// interface-based runtime ("internal/interp/runtime/value_interfaces.go" and
// "primitives.go" in CWBudde-go-dws, which split Value into
// NumericValue/ComparableValue/CopyableValue contracts instead of a switch
// over a type tag).
//
// Every concrete type embeds Base, which carries the Stored flag (true when
// a variable binding or registration table owns the payload, and Release
// must therefore do nothing). Length (container size / byte length) is a
// method each type computes from its own payload, not a field of Base.
package value

// Kind identifies which Value variant a Value holds, for diagnostics and
// for dynamic dispatch where a type switch would be less readable than a
// kind comparison (e.g. formatting error messages naming the operand type).
type Kind int

const (
	KindUnknown Kind = iota
	KindInteger
	KindReal
	KindComplex
	KindString
	KindArray
	KindMatrix
	KindFile
	KindHandle
	KindNamespace
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "Integer"
	case KindReal:
		return "Real"
	case KindComplex:
		return "Complex"
	case KindString:
		return "String"
	case KindArray:
		return "Array"
	case KindMatrix:
		return "Matrix"
	case KindFile:
		return "File"
	case KindHandle:
		return "Handle"
	case KindNamespace:
		return "Namespace"
	default:
		return "Unknown"
	}
}

// Value is the runtime datum every expression produces and every variable
// binding stores. Concrete types are always used as pointers so that
// Stored/Release mutate the one instance callers are holding.
type Value interface {
	Kind() Kind
	// Length returns the container size (Array entry count, Matrix cell
	// count) or byte length (String); scalars return 0.
	Length() int
	// IsStored reports whether a variable binding or registration table
	// owns this Value's payload; Release is a no-op when true.
	IsStored() bool
	// SetStored marks (or unmarks) ownership; called when a Value is bound
	// into a Namespace (true) or cloned back out of one (false).
	SetStored(bool)
	// Truthy implements spec.md §4.1's logical-operator coercion: zero,
	// empty string, and Unknown are false; everything else is true.
	Truthy() bool
	// String renders the value the way the language's implicit
	// string-conversion contexts would (error messages, concatenation
	// helpers used by the embedding API — never by the `+` operator,
	// which spec.md §4.1 reserves for numerics only).
	String() string
	// Clone deep-copies the Value (spec.md §4.1's copy-on-read semantics:
	// reading a variable never hands out the binding's own payload).
	// Always returns a not-Stored Value regardless of the receiver's own
	// Stored flag.
	Clone() Value
}

// Base is embedded by every concrete Value to supply the shared
// bookkeeping fields. It deliberately holds no payload: each variant owns
// its own data so Clone/Release can be variant-specific.
type Base struct {
	stored bool
}

func (b *Base) IsStored() bool   { return b.stored }
func (b *Base) SetStored(s bool) { b.stored = s }
