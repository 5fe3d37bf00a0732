package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeywordTokens(t *testing.T) {
	tests := []struct {
		src  string
		kind Kind
	}{
		{"if", KwIf},
		{"elseif", KwElseif},
		{"else", KwElse},
		{"while", KwWhile},
		{"do", KwDo},
		{"for", KwFor},
		{"foreach", KwForeach},
		{"function", KwFunction},
		{"try", KwTry},
		{"catch", KwCatch},
		{"test", KwTest},
	}
	for _, tt := range tests {
		l := New(tt.src)
		tok := l.NextToken()
		require.Equal(t, tt.kind, tok.Kind, tt.src)
	}
}

func TestPlainIdentifierIsVariableWithoutLookup(t *testing.T) {
	l := New("foo")
	tok := l.NextToken()
	require.Equal(t, Variable, tok.Kind)
	require.Equal(t, "foo", tok.Literal)
}

type stubFunctions map[string]bool

func (s stubFunctions) IsFunction(name string) bool { return s[name] }

func TestIdentifierIsFunctionWhenNamespaceSaysSo(t *testing.T) {
	fns := stubFunctions{"square": true}
	l := New("square x", WithFunctionLookup(fns))

	tok := l.NextToken()
	require.Equal(t, Function, tok.Kind)

	tok = l.NextToken()
	require.Equal(t, Variable, tok.Kind)
}

func TestImaginaryUnitYieldsToUserDefinedFunctionNamedI(t *testing.T) {
	fns := stubFunctions{"i": true}
	l := New("i()", WithFunctionLookup(fns))
	tok := l.NextToken()
	require.Equal(t, Function, tok.Kind, "a user function named i shadows the imaginary unit")
}

func TestPeekDoesNotConsume(t *testing.T) {
	l := New("1 + 2")
	first := l.Peek(0)
	require.Equal(t, Integer, first.Kind)

	second := l.Peek(1)
	require.Equal(t, Plus, second.Kind)

	// Peek must not have consumed anything.
	tok := l.NextToken()
	require.Equal(t, Integer, tok.Kind)
	tok = l.NextToken()
	require.Equal(t, Plus, tok.Kind)
}
