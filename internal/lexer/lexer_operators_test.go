package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOperatorTokens(t *testing.T) {
	tests := []struct {
		src  string
		kind Kind
	}{
		{"**", Pow},
		{"<<", Shl},
		{">>", Shr},
		{"<=", LessEq},
		{">=", GreaterEq},
		{"==", Eq},
		{"!=", NotEq},
		{"&&", AndAnd},
		{"||", OrOr},
		{"&~|", AndOrXor},
		{"+", Plus},
		{"-", Minus},
		{"*", Star},
		{"/", Slash},
		{"%", Percent},
		{"<", Less},
		{">", Greater},
		{"=", Assign},
		{"&", Amp},
		{"^", Caret},
		{"|", Pipe},
		{"!", Not},
		{"~", BitNot},
		{"$", Dollar},
		{"@", At},
	}
	for _, tt := range tests {
		l := New(tt.src)
		tok := l.NextToken()
		require.Equal(t, tt.kind, tok.Kind, tt.src)
		require.Equal(t, tt.src, tok.Literal, tt.src)
	}
}

func TestAmpersandDoesNotGreedilyConsumeTilde(t *testing.T) {
	// `&` immediately followed by `~` but not `|` is two separate operators.
	l := New("&~ x")
	tok := l.NextToken()
	require.Equal(t, Amp, tok.Kind)
	tok = l.NextToken()
	require.Equal(t, BitNot, tok.Kind)
}

func TestDelimitersCarrySpanLength(t *testing.T) {
	l := New("(1 + 2) rest")
	tok := l.NextToken()
	require.Equal(t, LParen, tok.Kind)
	require.Equal(t, len("(1 + 2)"), tok.SpanLen)
}

func TestNestedDelimiterSpan(t *testing.T) {
	l := New("{ if (x) { y } }")
	tok := l.NextToken()
	require.Equal(t, LBrace, tok.Kind)
	require.Equal(t, len("{ if (x) { y } }"), tok.SpanLen)
}

func TestBracketSpanSkipsStringContents(t *testing.T) {
	l := New(`("a)b" + 1)`)
	tok := l.NextToken()
	require.Equal(t, LParen, tok.Kind)
	require.Equal(t, len(`("a)b" + 1)`), tok.SpanLen)
}

func TestStatementSeparators(t *testing.T) {
	l := New("1;2\n3")
	kinds := []Kind{Integer, Semicolon, Integer, Semicolon, Integer, EOF}
	for _, want := range kinds {
		tok := l.NextToken()
		require.Equal(t, want, tok.Kind)
	}
}
