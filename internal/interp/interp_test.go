package interp

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kconner/goguash/internal/namespace"
	"github.com/kconner/goguash/internal/status"
	"github.com/kconner/goguash/internal/value"
)

// run evaluates src against a fresh root namespace and fails the test on
// any error (for cases expected to succeed).
func run(t *testing.T, src string) value.Value {
	t.Helper()
	v, _, err := Run(src, namespace.New(0))
	require.Nil(t, err, "unexpected error evaluating %q: %v", src, err)
	return v
}

func TestArithmeticPrecedence(t *testing.T) {
	tests := []struct {
		src  string
		want int64
	}{
		{"1+2*3", 7},
		{"(1+2)*3", 9},
		{"2**3**2", 512}, // right-associative: 2**(3**2)
		{"10 % 3", 1},
		{"1 << 4", 16},
	}
	for _, tt := range tests {
		v := run(t, tt.src)
		require.Equal(t, tt.want, v.(*value.Integer).V, tt.src)
	}
}

func TestReassignmentAccumulates(t *testing.T) {
	v := run(t, "a=1; a=a+1; a")
	require.Equal(t, int64(2), v.(*value.Integer).V)
}

func TestFactorialRecursion(t *testing.T) {
	v := run(t, `function fact(n) { if (n<=1) { return 1 } else { return n*fact(n-1) } } fact(6)`)
	require.Equal(t, int64(720), v.(*value.Integer).V)
}

func TestIllegalAssignmentTarget(t *testing.T) {
	_, _, err := Run("1 = 2", namespace.New(0))
	require.NotNil(t, err)
	require.Equal(t, status.ErrorIllegalAssignment, err.Status)
}

func TestExitPropagatesOutOfNestedBlocks(t *testing.T) {
	_, st, err := Run(`if (1) { exit }`, namespace.New(0))
	require.NotNil(t, err)
	require.Equal(t, status.EXIT, st)
	require.Equal(t, status.EXIT, err.Status)
}

func TestBreakEscapingFunctionBodyIsAnError(t *testing.T) {
	_, _, err := Run(`function f() { break } f()`, namespace.New(0))
	require.NotNil(t, err)
	require.Equal(t, status.ErrorFunction, err.Status)
}

func TestWhileLoopBreak(t *testing.T) {
	v := run(t, `i=0; while (1) { i=i+1; if (i==3) { break } }; i`)
	require.Equal(t, int64(3), v.(*value.Integer).V)
}

func TestForLoopCountsToThree(t *testing.T) {
	v := run(t, `for (i=0; i<3; i=i+1) { }; i`)
	require.Equal(t, int64(3), v.(*value.Integer).V)
}

func TestDoWhileRunsBodyAtLeastOnce(t *testing.T) {
	v := run(t, `i=0; do { i=i+1 } while (0); i`)
	require.Equal(t, int64(1), v.(*value.Integer).V)
}

func TestContinueSkipsRestOfBody(t *testing.T) {
	v := run(t, `sum=0; for (i=0; i<5; i=i+1) { if (i==2) { continue }; sum=sum+i }; sum`)
	require.Equal(t, int64(8), v.(*value.Integer).V) // 0+1+3+4
}

func TestIndirectionReadsTargetOnce(t *testing.T) {
	v := run(t, `a=5; name="a"; @name`)
	require.Equal(t, int64(5), v.(*value.Integer).V)
}

func TestMacroReEvaluatesSourceText(t *testing.T) {
	v := run(t, `expr="1+2"; $expr`)
	require.Equal(t, int64(3), v.(*value.Integer).V)
}

func TestIndirectionAssignsThroughTarget(t *testing.T) {
	v := run(t, `a=1; name="a"; @name=9; a`)
	require.Equal(t, int64(9), v.(*value.Integer).V)
}

func TestMatrixFlatLiteralIsOneByN(t *testing.T) {
	v := run(t, `m=[1,2,3]; m[0,2]`)
	require.Equal(t, int64(3), v.(*value.Integer).V)
}

func TestMatrixElementwiseAddSubNeg(t *testing.T) {
	v := run(t, `a=[1,2,3]; b=[10,20,30]; c=a+b; c[0,1]`)
	require.Equal(t, int64(22), v.(*value.Integer).V)

	v = run(t, `a=[1,2,3]; b=[10,20,30]; c=b-a; c[0,2]`)
	require.Equal(t, int64(27), v.(*value.Integer).V)

	v = run(t, `a=[1,2,3]; c=-a; c[0,0]`)
	require.Equal(t, int64(-1), v.(*value.Integer).V)
}

func TestMatrixElementwiseLogical(t *testing.T) {
	v := run(t, `a=[1,0,1]; b=[1,1,0]; c=a&&b; c[0,1]`)
	require.Equal(t, int64(0), v.(*value.Integer).V)

	v = run(t, `a=[1,0]; b=[0,0]; c=a||b; c[0,0]`)
	require.Equal(t, int64(1), v.(*value.Integer).V)
}

func TestMatrixAddShapeMismatchIsIllegalOperand(t *testing.T) {
	_, _, err := Run(`a=[[1,2],[3,4]]; b=[1,2,3]; a+b`, namespace.New(0))
	require.NotNil(t, err)
	require.Equal(t, status.ErrorIllegalOperand, err.Status)
}

func TestTestBlockDowngradesErrorAndRecordsMessage(t *testing.T) {
	ns := namespace.New(0)
	_, _, err := Run(`test { x = 1/0 }`, ns)
	require.Nil(t, err)
	require.NotEmpty(t, ns.LastTestError)
}

func TestUndefinedVariableReadsAsUnknown(t *testing.T) {
	v := run(t, `never_set`)
	require.Equal(t, value.KindUnknown, v.Kind())
}
