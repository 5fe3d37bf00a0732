package value

import "fmt"

// FileOps is the virtual method table a host-provided stream back-end
// implements (spec.md §3, §9: "keep as a trait with methods
// close/eof/read/write/seek/tell/flush/gets/puts/rewind/fileno/error/
// clearerr"). goguash's core never implements a concrete back-end itself —
// that is the host's job, registered through the embedding API — the core
// only defines the contract and the ownership policy around it.
type FileOps interface {
	Close() error
	Eof() bool
	Error() string
	ClearErr()
	Fileno() int
	Flush() error
	Gets() (string, error)
	Puts(s string) (int, error)
	Read(n int) ([]byte, error)
	Rewind()
	Seek(offset int64, whence int) error
	Tell() (int64, error)
	Write(b []byte) (int, error)
}

// File wraps a host FileOps implementation. Ownership policy (spec.md §3,
// §5, and SPEC_FULL.md §4's Open-Question resolution): releasing a File
// Value NEVER closes its underlying stream, whether or not the Value is
// Stored. Only an explicit host-exposed close() call does — Release simply
// drops goguash's reference to Ops.
type File struct {
	Base
	Ops    FileOps
	closed bool
}

func NewFile(ops FileOps) *File { return &File{Ops: ops} }

func (f *File) Kind() Kind   { return KindFile }
func (f *File) Length() int  { return 0 }
func (f *File) Truthy() bool { return f.Ops != nil && !f.closed }
func (f *File) String() string {
	return fmt.Sprintf("File(fd=%d)", f.safeFileno())
}

func (f *File) safeFileno() int {
	if f.Ops == nil {
		return -1
	}
	return f.Ops.Fileno()
}

// Clone shares the same Ops (a File Value is a handle onto a host stream,
// not a value with independent state to deep-copy) but is itself a
// distinct, unstored Value so its own Stored flag is independent of the
// source's.
func (f *File) Clone() Value {
	return &File{Ops: f.Ops, closed: f.closed}
}

// Close marks the File closed and calls the underlying Ops.Close exactly
// once; calling Close again is a no-op. This is the ONLY path that closes
// the descriptor — see File's doc comment above.
func (f *File) Close() error {
	if f.closed || f.Ops == nil {
		return nil
	}
	f.closed = true
	return f.Ops.Close()
}

func (f *File) Closed() bool { return f.closed }
