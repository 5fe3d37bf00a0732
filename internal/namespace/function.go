package namespace

import "github.com/kconner/goguash/internal/value"

// HostFunc is a Go-implemented builtin, registered via RegisterHostFunction
// (spec.md §4.6). It receives already-evaluated argument Values and returns
// either a result or a *status.Error-compatible failure — typed as `error`
// here to keep this package independent of internal/status, matching the
// same any/interface-seam technique used by value.Namespace.Ref.
type HostFunc func(ns *Namespace, args []value.Value) (value.Value, error)

// Param is one formal argument of a Script function: a name and an optional
// default-value expression source (evaluated lazily by the caller if the
// actual argument is omitted — spec.md §4.4: "Missing actuals use the
// formal's default value").
type Param struct {
	Name       string
	HasDefault bool
	DefaultSrc string
}

// ScriptFunction is a user-defined function: its formal parameter list and
// the captured source span of its body (spec.md §4.4: "register a Script
// function whose body is the captured source span").
type ScriptFunction struct {
	Name   string
	Params []Param
	Body   string
}

// FunctionEntry is exactly one of Host or Script — the function table's
// payload type.
type FunctionEntry struct {
	Name   string
	Host   HostFunc
	Script *ScriptFunction
}

// IsHost reports whether this entry wraps a host-registered function.
func (f FunctionEntry) IsHost() bool { return f.Host != nil }

type funcNode struct {
	name  string
	entry FunctionEntry
	next  *funcNode
}

// DefineFunction registers entry in the current frame's function table.
// "Functions are typically defined at root but nested definitions shadow"
// (spec.md §4.2) — DefineFunction on any frame only ever affects that frame.
func (n *Namespace) DefineFunction(name string, entry FunctionEntry) {
	idx := hashName(name, n.buckets)
	for node := n.funcs[idx]; node != nil; node = node.next {
		if node.name == name {
			node.entry = entry
			return
		}
	}
	n.funcs[idx] = &funcNode{name: name, entry: entry, next: n.funcs[idx]}
}

// LookupFunction walks the chain from current to root, returning the first
// match (spec.md §4.2: "Function lookup walks the chain from current to
// root; functions are typically defined at root but nested definitions
// shadow" — the innermost definition found first wins).
func (n *Namespace) LookupFunction(name string) (FunctionEntry, bool) {
	for cur := n; cur != nil; cur = cur.previous {
		idx := hashName(name, cur.buckets)
		for node := cur.funcs[idx]; node != nil; node = node.next {
			if node.name == name {
				return node.entry, true
			}
		}
	}
	return FunctionEntry{}, false
}

// IsFunction reports whether name currently resolves to a function anywhere
// in the chain. The lexer consults this (through the FunctionLookup
// interface below) to decide whether an identifier token should be emitted
// as Function or Variable (spec.md §4.3: "consult the current namespace...
// emit Function token" / "else emit Variable token").
func (n *Namespace) IsFunction(name string) bool {
	_, ok := n.LookupFunction(name)
	return ok
}
