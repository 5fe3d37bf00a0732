package status

import (
	"fmt"
	"strings"
)

// Buffer accumulates free-form error text, per spec.md §6 ("free-form text
// appended to a caller-supplied buffer"). The evaluator does not write to
// one; a host builds a Buffer over the source it ran (the CLI does so when
// reporting an error) and appends the *Error it got back.
type Buffer struct {
	sb      strings.Builder
	source  string
	file    string
	colored bool
}

// NewBuffer creates an error buffer for a single evaluation of source,
// optionally attributed to file (used only in formatted output).
func NewBuffer(source, file string) *Buffer {
	return &Buffer{source: source, file: file}
}

// SetColor enables or disables ANSI coloring of the caret/message in
// Format, mirroring the teacher's CompilerError.Format(color bool) split.
func (b *Buffer) SetColor(c bool) { b.colored = c }

// Append adds a formatted error (with source-line-and-caret context when
// Pos is known) to the buffer and returns the same text.
func (b *Buffer) Append(err *Error) string {
	text := b.format(err)
	if b.sb.Len() > 0 {
		b.sb.WriteByte('\n')
	}
	b.sb.WriteString(text)
	return text
}

// String returns everything appended to the buffer so far.
func (b *Buffer) String() string {
	return b.sb.String()
}

// Reset clears accumulated text without forgetting the source/file it was
// built for.
func (b *Buffer) Reset() {
	b.sb.Reset()
}

// format renders one error the way the teacher's CompilerError does: a
// location header, the offending source line with a `NNNN | ` gutter, a
// caret pointing at the column, then the message.
func (b *Buffer) format(err *Error) string {
	var sb strings.Builder

	if b.file != "" {
		fmt.Fprintf(&sb, "%s in %s:%d:%d\n", err.Status, b.file, err.Pos.Line, err.Pos.Column)
	} else {
		fmt.Fprintf(&sb, "%s at line %d:%d\n", err.Status, err.Pos.Line, err.Pos.Column)
	}

	if line := b.sourceLine(err.Pos.Line); line != "" {
		gutter := fmt.Sprintf("%4d | ", err.Pos.Line)
		sb.WriteString(gutter)
		sb.WriteString(line)
		sb.WriteByte('\n')

		pad := len(gutter) + err.Pos.Column - 1
		if pad < 0 {
			pad = 0
		}
		sb.WriteString(strings.Repeat(" ", pad))
		if b.colored {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteByte('^')
		if b.colored {
			sb.WriteString("\033[0m")
		}
		sb.WriteByte('\n')
	}

	if b.colored {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(err.Msg)
	if b.colored {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

func (b *Buffer) sourceLine(line int) string {
	if b.source == "" || line < 1 {
		return ""
	}
	lines := strings.Split(b.source, "\n")
	if line > len(lines) {
		return ""
	}
	return lines[line-1]
}
