package value

import "fmt"

// Handle is a typed opaque pointer: a host-defined type tag plus an
// arbitrary payload (spec.md §3). goguash never interprets the payload —
// it exists purely so host functions can round-trip their own data through
// scripts (e.g. a database connection, a compiled regex) without the core
// needing to know its shape.
type Handle struct {
	Base
	TypeName string
	Payload  any
}

func NewHandle(typeName string, payload any) *Handle {
	return &Handle{TypeName: typeName, Payload: payload}
}

func (h *Handle) Kind() Kind   { return KindHandle }
func (h *Handle) Length() int  { return 0 }
func (h *Handle) Truthy() bool { return h.Payload != nil }
func (h *Handle) String() string {
	return fmt.Sprintf("Handle<%s>", h.TypeName)
}

// Clone shares Payload (opaque to goguash, so there is nothing to deep
// copy) but returns a distinct, unstored wrapper.
func (h *Handle) Clone() Value {
	return &Handle{TypeName: h.TypeName, Payload: h.Payload}
}
