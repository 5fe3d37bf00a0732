package value

import "fmt"

// Namespace is a Value that refers to a nested namespace/activation frame
// (spec.md §3). Ref is an opaque `any` holding a `*namespace.Namespace` —
// stored as `any` rather than a concrete type to avoid an import cycle
// (package namespace stores Value bindings, so it cannot be imported here);
// this mirrors the teacher's own FunctionPointerValue.Closure field, which
// stores an Environment the same way for the same reason
// (internal/interp/runtime/primitives.go in CWBudde-go-dws).
type Namespace struct {
	Base
	Ref any
}

func NewNamespace(ref any) *Namespace { return &Namespace{Ref: ref} }

func (n *Namespace) Kind() Kind     { return KindNamespace }
func (n *Namespace) Length() int    { return 0 }
func (n *Namespace) Truthy() bool   { return n.Ref != nil }
func (n *Namespace) String() string { return fmt.Sprintf("Namespace(%p)", n.Ref) }

// Clone shares Ref (a Namespace Value is a reference, not owned data) but
// returns a distinct, unstored wrapper.
func (n *Namespace) Clone() Value {
	return &Namespace{Ref: n.Ref}
}
