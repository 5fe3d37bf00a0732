package value

// String holds a raw byte buffer — not NUL-terminated, may contain embedded
// NULs (spec.md §3). Conversion to/from Go's native UTF-8 `string` is done
// by the caller; the buffer itself makes no encoding assumption, matching
// the lexer's byte-oriented, non-Unicode-aware scanning (spec.md §1
// Non-goals).
type String struct {
	Base
	B []byte
}

func NewString(s string) *String { return &String{B: []byte(s)} }
func NewStringBytes(b []byte) *String {
	cp := make([]byte, len(b))
	copy(cp, b)
	return &String{B: cp}
}

func (s *String) Kind() Kind    { return KindString }
func (s *String) Length() int   { return len(s.B) }
func (s *String) Truthy() bool  { return len(s.B) > 0 }
func (s *String) String() string { return string(s.B) }

func (s *String) Clone() Value {
	cp := make([]byte, len(s.B))
	copy(cp, s.B)
	return &String{B: cp}
}
