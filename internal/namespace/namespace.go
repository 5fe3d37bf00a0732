// Package namespace implements the variable/function symbol tables and the
// chained-activation-frame scope rules (spec.md §4.2): two hashed, bucketed
// tables per frame (variables and functions) plus a `previous` link forming
// a chain of frames, walked by LOCAL/STACK/GLOBAL scope rules.
//
// Grounded on the teacher's Environment/ident.Map pair
// (CWBudde-go-dws/internal/interp/runtime/environment.go and
// pkg/ident/map.go): an outer-chain lookup structure with a local store and
// a Has/Get/Set/Define split. goguash generalizes that into guash's three
// explicit scope rules and its own bucketed-hash-with-chaining storage
// (spec.md's "hashed mapping... bucket selected by hashing the name...
// linked-list per bucket, default 32 buckets") instead of DWScript's
// case-insensitive ident.Map, since guash names are case-sensitive.
package namespace

import "github.com/kconner/goguash/internal/value"

// Scope selects which frame(s) a variable operation touches (spec.md §4.2).
type Scope int

const (
	// ScopeLocal operates only on the current (innermost) frame.
	ScopeLocal Scope = iota
	// ScopeStack walks the chain from current to oldest, using the first hit
	// on Get; Set inserts in the current frame if no existing binding is
	// found anywhere in the chain.
	ScopeStack
	// ScopeGlobal operates only on the outermost (root) frame.
	ScopeGlobal
)

const defaultBuckets = 32

type varNode struct {
	name  string
	value value.Value
	next  *varNode
}

// Namespace is one activation frame: a bucketed hash table of variable
// bindings, a bucketed hash table of function records, and a link to the
// frame that was current when this one was pushed (spec.md: "design uses
// DYNAMIC (caller's frame)" — see PushFrame).
type Namespace struct {
	buckets  int
	vars     []*varNode
	funcs    []*funcNode
	previous *Namespace

	// LastTestError records the most recent error downgraded by a `test`
	// block (SPEC_FULL.md §4's resolution of the `test` open question). No
	// script-level syntax reads this; it exists for a future host accessor.
	LastTestError string
}

// New creates a root namespace (no previous frame) with the given bucket
// count; 0 or negative selects the spec's default of 32.
func New(bucketCount int) *Namespace {
	if bucketCount <= 0 {
		bucketCount = defaultBuckets
	}
	return &Namespace{
		buckets: bucketCount,
		vars:    make([]*varNode, bucketCount),
		funcs:   make([]*funcNode, bucketCount),
	}
}

// PushFrame creates a new namespace frame linked to this one as "previous".
// spec.md §4.4 chooses the DYNAMIC design: a called script function's new
// frame links back to the caller's frame (not the function's lexical
// definition site), so SCOPE_STACK lookups see the caller's bindings too.
func (n *Namespace) PushFrame() *Namespace {
	child := New(n.buckets)
	child.previous = n
	return child
}

// Previous returns the frame this one was pushed from, or nil at the root.
func (n *Namespace) Previous() *Namespace { return n.previous }

// Root walks to the outermost frame in the chain.
func (n *Namespace) Root() *Namespace {
	cur := n
	for cur.previous != nil {
		cur = cur.previous
	}
	return cur
}

func hashName(name string, buckets int) int {
	// FNV-1a fold, same shape as the teacher's ident normalization step but
	// over the raw case-sensitive bytes (guash names are case-sensitive).
	var h uint32 = 2166136261
	for i := 0; i < len(name); i++ {
		h ^= uint32(name[i])
		h *= 16777619
	}
	return int(h % uint32(buckets))
}

// getLocal looks up name only in this frame's own bucket table.
func (n *Namespace) getLocal(name string) (value.Value, bool) {
	idx := hashName(name, n.buckets)
	for node := n.vars[idx]; node != nil; node = node.next {
		if node.name == name {
			return node.value, true
		}
	}
	return nil, false
}

// setLocal inserts or overwrites name in this frame's own bucket table.
func (n *Namespace) setLocal(name string, v value.Value) {
	idx := hashName(name, n.buckets)
	for node := n.vars[idx]; node != nil; node = node.next {
		if node.name == name {
			node.value = v
			return
		}
	}
	n.vars[idx] = &varNode{name: name, value: v, next: n.vars[idx]}
}

// hasLocal reports whether name is bound in this frame only.
func (n *Namespace) hasLocal(name string) bool {
	_, ok := n.getLocal(name)
	return ok
}

// Get resolves name under the given scope rule (spec.md §4.2).
func (n *Namespace) Get(name string, scope Scope) (value.Value, bool) {
	switch scope {
	case ScopeLocal:
		return n.getLocal(name)
	case ScopeGlobal:
		return n.Root().getLocal(name)
	default: // ScopeStack
		for cur := n; cur != nil; cur = cur.previous {
			if v, ok := cur.getLocal(name); ok {
				return v, true
			}
		}
		return nil, false
	}
}

// Set binds name to v under the given scope rule (spec.md §4.2). STACK scope
// overwrites the first existing binding found while walking the chain, or
// inserts in the current frame if the name isn't bound anywhere yet.
func (n *Namespace) Set(name string, v value.Value, scope Scope) {
	switch scope {
	case ScopeLocal:
		n.setLocal(name, v)
	case ScopeGlobal:
		n.Root().setLocal(name, v)
	default: // ScopeStack
		for cur := n; cur != nil; cur = cur.previous {
			if cur.hasLocal(name) {
				cur.setLocal(name, v)
				return
			}
		}
		n.setLocal(name, v)
	}
}

// ReleaseFrame releases every variable binding owned by this frame (spec.md
// §4.4 step 5: "Pop the frame, releasing all its variable bindings").
func (n *Namespace) ReleaseFrame() {
	for _, head := range n.vars {
		for node := head; node != nil; node = node.next {
			value.Release(node.value)
		}
	}
}
