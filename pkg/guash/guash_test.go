package guash_test

import (
	"fmt"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/require"

	"github.com/kconner/goguash/internal/namespace"
	"github.com/kconner/goguash/internal/status"
	"github.com/kconner/goguash/internal/value"
	"github.com/kconner/goguash/pkg/guash"
)

// eval is a convenience wrapper for scenarios that don't need any Engine
// configuration beyond the defaults.
func eval(t *testing.T, src string) value.Value {
	t.Helper()
	e := guash.New()
	v, err := e.Evaluate(src)
	require.NoError(t, err)
	return v
}

// TestEndToEndScenarios covers five of spec.md §8's six numbered end-to-end
// scenarios verbatim (the string-foreach one is
// TestStringForeachIsIllegalOperand), snapshotting each result's String() rendering
// (go-snaps, grounded on the teacher's internal/interp/fixture_test.go).
func TestEndToEndScenarios(t *testing.T) {
	scenarios := []struct {
		name string
		src  string
	}{
		{"arithmetic_precedence", `1+2*3`},
		{"factorial_recursion", `function fact(n) { if (n<=1) { return 1 } else { return n*fact(n-1) } } fact(6)`},
		{"array_string_keys", `a = {}; a["x"] = 1; a["y"] = 2; a["x"] + a["y"]`},
		{"matrix_multiply", `m = [[1,2],[3,4]]; m * m`},
		{"while_loop_counter", `i = 0; while (i < 3) { i = i + 1 }; i`},
	}

	for _, sc := range scenarios {
		t.Run(sc.name, func(t *testing.T) {
			v := eval(t, sc.src)
			snaps.MatchSnapshot(t, fmt.Sprintf("%s_result", sc.name), v.String())
		})
	}
}

// TestStringForeachIsIllegalOperand covers scenario 2: strings are not
// iterable with foreach (spec.md §8 scenario 2's documented choice,
// restated in SPEC_FULL.md §4).
func TestStringForeachIsIllegalOperand(t *testing.T) {
	e := guash.New()
	_, err := e.Evaluate(`s = "hello"; len = 0; foreach (s; k; v) { len = len + 1 }; len`)
	require.Error(t, err)
	se, ok := err.(*status.Error)
	require.True(t, ok)
	require.Equal(t, status.ErrorIllegalOperand, se.Status)
}

func TestReassignmentAccumulates(t *testing.T) {
	v := eval(t, `a=1; a=a+1; a`)
	require.Equal(t, int64(2), v.(*value.Integer).V)
}

func TestShortCircuitOrSkipsRightOperand(t *testing.T) {
	v := eval(t, `x=0; (1 || (x=1)); x`)
	require.Equal(t, int64(0), v.(*value.Integer).V)
}

func TestShortCircuitAndSkipsRightOperand(t *testing.T) {
	v := eval(t, `x=0; (0 && (x=1)); x`)
	require.Equal(t, int64(0), v.(*value.Integer).V)
}

func TestArrayInsertionOrderPreservedWithOverwrite(t *testing.T) {
	e := guash.New()
	_, err := e.Evaluate(`a={}; a[0]=10; a[1]=20; a[0]=30`)
	require.NoError(t, err)

	arr, ok := e.GetVariable("a")
	require.True(t, ok)
	entries := arr.(*value.Array).Entries()
	require.Len(t, entries, 2)
	require.Equal(t, int64(0), entries[0].Key.(*value.Integer).V)
	require.Equal(t, int64(30), entries[0].Value.(*value.Integer).V)
	require.Equal(t, int64(1), entries[1].Key.(*value.Integer).V)
	require.Equal(t, int64(20), entries[1].Value.(*value.Integer).V)
}

func TestMatrixIndexAndApproximateInverse(t *testing.T) {
	e := guash.New()
	_, err := e.Evaluate(`m = [[1,2],[3,4]]`)
	require.NoError(t, err)

	m, ok := e.GetVariable("m")
	require.True(t, ok)
	cell, gerr := m.(*value.Matrix).Get([]int{1, 0})
	require.NoError(t, gerr)
	require.Equal(t, int64(3), cell.(*value.Integer).V)

	v, err := e.Evaluate(`m ** -1 * m`)
	require.NoError(t, err)
	product := v.(*value.Matrix)
	identity, err2 := e.Evaluate(`[[1,0],[0,1]]`)
	require.NoError(t, err2)
	for i, cell := range product.Cells {
		want := identity.(*value.Matrix).Cells[i].(*value.Integer).V
		got, isReal := cell.(*value.Real)
		if isReal {
			require.InDelta(t, float64(want), got.V, 1e-9)
		} else {
			require.Equal(t, want, cell.(*value.Integer).V)
		}
	}
}

func TestMatrixElementwiseAddAndNeg(t *testing.T) {
	e := guash.New()
	v, err := e.Expression(`a=[[1,2],[3,4]]; b=[[10,20],[30,40]]; a+b`)
	require.NoError(t, err)
	sum := v.(*value.Matrix)
	c, gerr := sum.Get([]int{1, 1})
	require.NoError(t, gerr)
	require.Equal(t, int64(44), c.(*value.Integer).V)

	_, err = e.Evaluate(`neg = -a`)
	require.NoError(t, err)
	negV, ok := e.GetVariable("neg")
	require.True(t, ok)
	c, gerr = negV.(*value.Matrix).Get([]int{0, 0})
	require.NoError(t, gerr)
	require.Equal(t, int64(-1), c.(*value.Integer).V)
}

func TestFunctionCallWithDefaultArgument(t *testing.T) {
	e := guash.New()
	_, err := e.Evaluate(`function f(x, y=2) { return x+y }`)
	require.NoError(t, err)

	v, err := e.Evaluate(`f(3)`)
	require.NoError(t, err)
	require.Equal(t, int64(5), v.(*value.Integer).V)

	v, err = e.Evaluate(`f(3,10)`)
	require.NoError(t, err)
	require.Equal(t, int64(13), v.(*value.Integer).V)
}

func TestTryCatchRecoversFromDivisionByZero(t *testing.T) {
	v := eval(t, `try { x = 1/0 } catch { x = 42 } x`)
	require.Equal(t, int64(42), v.(*value.Integer).V)
}

func TestFunctionLocalScopeDoesNotLeakToCaller(t *testing.T) {
	e := guash.New()
	_, err := e.Evaluate(`function g() { a = 5 }`)
	require.NoError(t, err)
	_, err = e.Evaluate(`g()`)
	require.NoError(t, err)

	_, ok := e.GetVariable("a")
	require.False(t, ok, "assignment inside g() must default to function-local scope")
}

func TestForeachVisitsEveryArrayEntryExactlyOnce(t *testing.T) {
	e := guash.New()
	_, err := e.Evaluate(`a = {}; a[0]=1; a[1]=2; a[2]=3`)
	require.NoError(t, err)

	v, err := e.Evaluate(`count = 0; foreach (a; k; v) { count = count + 1 }; count`)
	require.NoError(t, err)
	require.Equal(t, int64(3), v.(*value.Integer).V)
}

func TestEngineArgvBinding(t *testing.T) {
	e := guash.New(guash.WithArgv([]string{"first", "second"}))
	v, err := e.Expression(`argv[0]`)
	require.NoError(t, err)
	require.Equal(t, "first", v.(*value.String).String())
}

func TestEngineEnvBinding(t *testing.T) {
	e := guash.New(guash.WithEnv(map[string]string{"MY_VAR": "hello"}))
	v, err := e.Expression(`MY_VAR`)
	require.NoError(t, err)
	require.Equal(t, "hello", v.(*value.String).String())
}

func TestEngineVersionBinding(t *testing.T) {
	e := guash.New(guash.WithVersion("9.9.9"))
	v, err := e.Expression(`VERSION`)
	require.NoError(t, err)
	require.Equal(t, "9.9.9", v.(*value.String).String())
}

func TestEngineRegisterHostFunction(t *testing.T) {
	e := guash.New()
	e.RegisterHostFunction("double", func(_ *namespace.Namespace, args []value.Value) (value.Value, error) {
		n, ok := args[0].(*value.Integer)
		if !ok {
			return nil, fmt.Errorf("double expects an Integer")
		}
		return value.NewInteger(n.V * 2), nil
	})

	v, err := e.Expression(`double(21)`)
	require.NoError(t, err)
	require.Equal(t, int64(42), v.(*value.Integer).V)
}
