package namespace

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kconner/goguash/internal/value"
)

func TestNewRootHasNoPrevious(t *testing.T) {
	root := New(0)
	require.Nil(t, root.Previous())
	require.Equal(t, root, root.Root())
}

func TestLocalGetSet(t *testing.T) {
	ns := New(4)
	ns.Set("x", value.NewInteger(42), ScopeLocal)

	v, ok := ns.Get("x", ScopeLocal)
	require.True(t, ok)
	require.Equal(t, int64(42), v.(*value.Integer).V)
}

func TestGetUndefined(t *testing.T) {
	ns := New(0)
	_, ok := ns.Get("nope", ScopeStack)
	require.False(t, ok)
}

func TestScopeLocalDoesNotSeeOuterFrame(t *testing.T) {
	root := New(0)
	root.Set("a", value.NewInteger(1), ScopeLocal)
	frame := root.PushFrame()

	_, ok := frame.Get("a", ScopeLocal)
	require.False(t, ok, "LOCAL scope must not see the previous frame")
}

func TestScopeStackWalksChain(t *testing.T) {
	root := New(0)
	root.Set("a", value.NewInteger(1), ScopeLocal)
	frame := root.PushFrame()

	v, ok := frame.Get("a", ScopeStack)
	require.True(t, ok, "STACK scope must walk the chain to find the outer binding")
	require.Equal(t, int64(1), v.(*value.Integer).V)
}

func TestScopeStackSetOverwritesExistingOuterBinding(t *testing.T) {
	root := New(0)
	root.Set("a", value.NewInteger(1), ScopeLocal)
	frame := root.PushFrame()

	frame.Set("a", value.NewInteger(2), ScopeStack)

	// The STACK set found "a" already bound in root and overwrote it there,
	// rather than shadowing it with a new local binding.
	_, localOK := frame.Get("a", ScopeLocal)
	require.False(t, localOK)

	v, ok := root.Get("a", ScopeLocal)
	require.True(t, ok)
	require.Equal(t, int64(2), v.(*value.Integer).V)
}

func TestScopeStackSetInsertsLocalWhenUnbound(t *testing.T) {
	root := New(0)
	frame := root.PushFrame()

	frame.Set("b", value.NewInteger(7), ScopeStack)

	_, rootHas := root.Get("b", ScopeLocal)
	require.False(t, rootHas)

	v, ok := frame.Get("b", ScopeLocal)
	require.True(t, ok)
	require.Equal(t, int64(7), v.(*value.Integer).V)
}

func TestScopeGlobalTargetsRoot(t *testing.T) {
	root := New(0)
	frame := root.PushFrame()
	leaf := frame.PushFrame()

	leaf.Set("g", value.NewInteger(9), ScopeGlobal)

	v, ok := root.Get("g", ScopeLocal)
	require.True(t, ok)
	require.Equal(t, int64(9), v.(*value.Integer).V)

	_, frameHas := frame.Get("g", ScopeLocal)
	require.False(t, frameHas)
}

func TestFunctionLookupWalksChainAndInnerShadows(t *testing.T) {
	root := New(0)
	outer := FunctionEntry{Name: "f", Script: &ScriptFunction{Name: "f", Body: "return 1;"}}
	root.DefineFunction("f", outer)

	frame := root.PushFrame()
	require.True(t, frame.IsFunction("f"))

	inner := FunctionEntry{Name: "f", Script: &ScriptFunction{Name: "f", Body: "return 2;"}}
	frame.DefineFunction("f", inner)

	found, ok := frame.LookupFunction("f")
	require.True(t, ok)
	require.Equal(t, "return 2;", found.Script.Body)

	// the root's own definition is unaffected by the inner shadow
	rootFound, ok := root.LookupFunction("f")
	require.True(t, ok)
	require.Equal(t, "return 1;", rootFound.Script.Body)
}

func TestReleaseFrameReleasesUnstoredBindings(t *testing.T) {
	ns := New(0)
	arr := value.NewArray()
	_ = arr.Set(value.NewInteger(0), value.NewInteger(10))
	ns.Set("a", arr, ScopeLocal)

	// ReleaseFrame must not panic and must walk every bucket; correctness of
	// what Release does to containers is covered by value's own tests.
	require.NotPanics(t, func() { ns.ReleaseFrame() })
}
