package value

// Releaser is implemented by Handle payloads that own a non-GC'd resource
// (a file descriptor, a C pointer, a connection) and need an explicit
// teardown step when their Handle is released while unstored. Payloads
// that don't need this (the common case — plain Go data) simply don't
// implement it, and Release is a no-op for them.
type Releaser interface {
	Release()
}

// Release implements spec.md §4.1's release contract: a no-op for Stored
// values (owned by a binding or registration table); otherwise recursively
// releases container payloads, exactly as a manually-memory-managed
// interpreter would free them — except that Go's own GC reclaims the
// memory, so what Release actually does here is (a) respect the
// File-never-auto-closes policy (§5/SPEC_FULL.md open-question
// resolution) by doing nothing to File.Ops, and (b) give Handle payloads
// that wrap a real external resource a chance to tear it down via
// Releaser.
func Release(v Value) {
	if v == nil || v.IsStored() {
		return
	}
	switch t := v.(type) {
	case *Array:
		for _, e := range t.entries {
			Release(e.key)
			Release(e.value)
		}
	case *Matrix:
		for _, c := range t.Cells {
			Release(c)
		}
	case *Handle:
		if r, ok := t.Payload.(Releaser); ok {
			r.Release()
		}
	case *File:
		// Deliberately not closed here — see File's doc comment and
		// SPEC_FULL.md §4's resolution of the "auto-close on release"
		// open question. Only an explicit close() call closes Ops.
	}
}
