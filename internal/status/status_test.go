package status

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsErrorExcludesControlStatuses(t *testing.T) {
	require.False(t, OK.IsError())
	require.False(t, CONTINUE.IsError())
	require.False(t, BREAK.IsError())
	require.False(t, RETURN.IsError())
	require.False(t, EXIT.IsError())
	require.True(t, Error.IsError())
	require.True(t, ErrorDivisionByZero.IsError())
}

func TestErrorImplementsGoErrorInterface(t *testing.T) {
	var err error = New(ErrorDivisionByZero, Pos{Line: 1, Column: 1}, "divide by zero")
	require.Equal(t, "divide by zero", err.Error())
}

func TestBufferAppendIncludesSourceLineAndCaret(t *testing.T) {
	src := "a = 1/0"
	buf := NewBuffer(src, "<eval>")
	err := New(ErrorDivisionByZero, Pos{Line: 1, Column: 6, Offset: 5}, "divide by zero")

	text := buf.Append(err)
	require.Contains(t, text, "divide by zero")
	require.Contains(t, text, src)
	require.Contains(t, text, "<eval>")
}

func TestBufferResetClearsAccumulatedText(t *testing.T) {
	buf := NewBuffer("x", "")
	buf.Append(New(Error, Pos{}, "boom"))
	require.NotEmpty(t, buf.String())

	buf.Reset()
	require.Empty(t, buf.String())
}
