// Package interp implements guash's single-pass recursive-descent
// parser-evaluator (spec.md §4.4): there is no separate AST. Each parse
// function consumes tokens from a Lexer and immediately produces a Value,
// threading a Namespace for variable/function state and a Status for
// control-flow propagation (BREAK/CONTINUE/RETURN/EXIT/Error), exactly as
// spec.md §7 describes.
//
// Loops and function bodies are re-entered by re-lexing a captured source
// span (spec.md §4.3's balanced-bracket Token.SpanLen) rather than by
// walking a cached tree, since no tree is ever built.
package interp

import (
	"github.com/kconner/goguash/internal/lexer"
	"github.com/kconner/goguash/internal/namespace"
	"github.com/kconner/goguash/internal/status"
	"github.com/kconner/goguash/internal/value"
)

// Interp holds one parse/evaluate cursor over a source string, bound to one
// Namespace frame. A new Interp is created for every re-entered span (loop
// body, loop condition, function body, function default expression) so
// each span gets its own independent token cursor; all of them share the
// same underlying Namespace frame unless a function call pushes a new one.
type Interp struct {
	ns  *namespace.Namespace
	lex *lexer.Lexer
	cur lexer.Token

	// suppress is set while evaluating an operand whose result is discarded
	// by short-circuit evaluation (spec.md §4.1: "&&"/"||" must not evaluate
	// their right operand's side effects when the left operand already
	// decides the result"). It is threaded through every parse function
	// rather than implemented by skipping text, per spec.md §4.4.
	suppress bool
}

// New creates an Interp over src, bound to ns. The Lexer consults ns for
// Variable/Function token classification (spec.md §4.3).
func New(src string, ns *namespace.Namespace) *Interp {
	it := &Interp{ns: ns, lex: lexer.New(src, lexer.WithFunctionLookup(ns))}
	it.advance()
	return it
}

func (it *Interp) advance() { it.cur = it.lex.NextToken() }

// Run parses and evaluates src against ns from the very top, statement by
// statement, until EOF (the `program` production in spec.md §4.4's
// grammar). It is the entry point pkg/guash's Engine uses for both whole
// programs and single expressions.
func Run(src string, ns *namespace.Namespace) (value.Value, status.Status, *status.Error) {
	return New(src, ns).run()
}

// evalExprSource re-lexes src as a single expression in ns (used for a
// parenthesised group, a macro's text, and a captured loop condition,
// for-header part, foreach container, or default value on each use).
func evalExprSource(src string, ns *namespace.Namespace) (value.Value, *status.Error) {
	it := New(src, ns)
	v, err := it.parseAssign()
	if err != nil {
		return nil, err
	}
	return v, nil
}

// evalBlockSource re-lexes src as a statement sequence in ns (used to
// re-execute a captured loop/if/function body on each use).
func evalBlockSource(src string, ns *namespace.Namespace) (value.Value, status.Status, *status.Error) {
	return New(src, ns).run()
}

func (it *Interp) run() (value.Value, status.Status, *status.Error) {
	result := value.Value(value.NewUnknown())
	st := status.OK
	it.skipSeparators()
	for it.cur.Kind != lexer.EOF {
		v, s, err := it.statement()
		if err != nil {
			return nil, err.Status, err
		}
		if result != nil && !result.IsStored() {
			value.Release(result)
		}
		result, st = v, s
		if st != status.OK {
			return result, st, nil
		}
		it.skipSeparators()
	}
	return result, st, nil
}

func (it *Interp) skipSeparators() {
	for it.cur.Kind == lexer.Semicolon {
		it.advance()
	}
}

func (it *Interp) atStatementEnd() bool {
	return it.cur.Kind == lexer.Semicolon || it.cur.Kind == lexer.EOF || it.cur.Kind == lexer.RBrace
}

func parseErr(it *Interp, st status.Status, msg string) *status.Error {
	return status.New(st, it.cur.Pos, msg)
}

// captureParen consumes a parenthesized group starting at the current
// LParen token and returns its interior source text (without the parens),
// leaving the cursor positioned just past the closing ')'. Uses the
// LParen token's SpanLen (spec.md §4.3's balanced-bracket scan) rather than
// parsing the contents now, since conditions must be re-evaluated fresh on
// every loop iteration.
func (it *Interp) captureParen() (string, *status.Error) {
	if it.cur.Kind != lexer.LParen {
		return "", parseErr(it, status.ErrorUnexpectedToken, "expected '('")
	}
	tok := it.cur
	inner := it.lex.SourceSlice(tok.Pos.Offset+1, tok.SpanLen-2)
	it.lex.SeekTo(tok.Pos.Offset + tok.SpanLen)
	it.advance()
	return inner, nil
}

// captureBlock is captureParen's analogue for a `{ ... }` block.
func (it *Interp) captureBlock() (string, *status.Error) {
	if it.cur.Kind != lexer.LBrace {
		return "", parseErr(it, status.ErrorUnexpectedToken, "expected '{'")
	}
	tok := it.cur
	inner := it.lex.SourceSlice(tok.Pos.Offset+1, tok.SpanLen-2)
	it.lex.SeekTo(tok.Pos.Offset + tok.SpanLen)
	it.advance()
	return inner, nil
}

// splitTopLevel splits src on sep bytes that sit at bracket depth 0 and
// outside string literals — used to break a `for`/`foreach` header's
// `(a; b; c)` interior into its three parts without a full parse (they are
// parsed independently, and in for's case, re-evaluated independently on
// each iteration).
func splitTopLevel(src string, sep byte) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(src); i++ {
		c := src[i]
		switch {
		case c == '"':
			i++
			for i < len(src) && src[i] != '"' {
				if src[i] == '\\' {
					i++
				}
				i++
			}
		case c == '(' || c == '[' || c == '{':
			depth++
		case c == ')' || c == ']' || c == '}':
			depth--
		case c == sep && depth == 0:
			parts = append(parts, src[start:i])
			start = i + 1
		}
	}
	parts = append(parts, src[start:])
	return parts
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
