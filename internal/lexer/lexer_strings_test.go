package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kconner/goguash/internal/status"
)

func TestStringLiteral(t *testing.T) {
	l := New(`"hello, world"`)
	tok := l.NextToken()
	require.Equal(t, String, tok.Kind)
	require.Equal(t, "hello, world", tok.Literal)
}

func TestStringEscapes(t *testing.T) {
	l := New(`"a\nb\tc\rd\\e\"f\0g"`)
	tok := l.NextToken()
	require.Equal(t, String, tok.Kind)
	require.Equal(t, "a\nb\tc\rd\\e\"f\x00g", tok.Literal)
}

func TestUnterminatedString(t *testing.T) {
	l := New(`"no closing quote`)
	l.NextToken()
	require.NotNil(t, l.Err())
	require.Equal(t, status.ErrorUnterminatedString, l.Err().Status)
}

func TestLineCommentSkipped(t *testing.T) {
	l := New("1 # a comment\n2")
	tok := l.NextToken()
	require.Equal(t, Integer, tok.Kind)
	require.Equal(t, int64(1), tok.IntVal)

	tok = l.NextToken()
	require.Equal(t, Semicolon, tok.Kind, "newline is a statement separator")

	tok = l.NextToken()
	require.Equal(t, Integer, tok.Kind)
	require.Equal(t, int64(2), tok.IntVal)
}
