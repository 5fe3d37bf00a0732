package interp

import (
	"strings"

	"github.com/kconner/goguash/internal/lexer"
	"github.com/kconner/goguash/internal/namespace"
	"github.com/kconner/goguash/internal/status"
	"github.com/kconner/goguash/internal/value"
)

// statement implements spec.md §4.4's `statement` production, dispatching
// on the current token's keyword (or falling through to a bare
// expression-statement).
func (it *Interp) statement() (value.Value, status.Status, *status.Error) {
	switch it.cur.Kind {
	case lexer.KwIf:
		return it.ifStmt()
	case lexer.KwWhile:
		return it.whileStmt()
	case lexer.KwDo:
		return it.doWhileStmt()
	case lexer.KwFor:
		return it.forStmt()
	case lexer.KwForeach:
		return it.foreachStmt()
	case lexer.KwTry:
		return it.tryStmt()
	case lexer.KwTest:
		return it.testStmt()
	case lexer.KwFunction:
		return it.funcDefStmt()
	case lexer.KwReturn:
		it.advance()
		if it.atStatementEnd() {
			return value.NewUnknown(), status.RETURN, nil
		}
		v, err := it.parseAssign()
		if err != nil {
			return nil, err.Status, err
		}
		return v, status.RETURN, nil
	case lexer.KwBreak:
		it.advance()
		return value.NewUnknown(), status.BREAK, nil
	case lexer.KwContinue:
		it.advance()
		return value.NewUnknown(), status.CONTINUE, nil
	case lexer.KwExit:
		pos := it.cur.Pos
		it.advance()
		return nil, status.EXIT, status.New(status.EXIT, pos, "exit")
	default:
		v, err := it.parseAssign()
		if err != nil {
			return nil, err.Status, err
		}
		return v, status.OK, nil
	}
}

// ifStmt implements `if (cond) {block} {elseif (cond) {block}} [else {block}]`.
// Every condition/block pair is captured (and its tokens consumed) whether
// or not it's selected, so the single-pass cursor stays in sync; only the
// first truthy branch is actually evaluated.
func (it *Interp) ifStmt() (value.Value, status.Status, *status.Error) {
	it.advance() // 'if'
	result := value.Value(value.NewUnknown())
	st := status.OK
	matched := false

	for {
		condSrc, perr := it.captureParen()
		if perr != nil {
			return nil, perr.Status, perr
		}
		blockSrc, perr := it.captureBlock()
		if perr != nil {
			return nil, perr.Status, perr
		}
		if !matched {
			cond, err := evalExprSource(condSrc, it.ns)
			if err != nil {
				return nil, err.Status, err
			}
			if cond.Truthy() {
				matched = true
				v, s, berr := evalBlockSource(blockSrc, it.ns)
				if berr != nil {
					return nil, berr.Status, berr
				}
				result, st = v, s
			}
		}
		if it.cur.Kind == lexer.KwElseif {
			it.advance()
			continue
		}
		break
	}

	if it.cur.Kind == lexer.KwElse {
		it.advance()
		elseSrc, perr := it.captureBlock()
		if perr != nil {
			return nil, perr.Status, perr
		}
		if !matched {
			v, s, berr := evalBlockSource(elseSrc, it.ns)
			if berr != nil {
				return nil, berr.Status, berr
			}
			result, st = v, s
		}
	}

	return result, st, nil
}

func (it *Interp) whileStmt() (value.Value, status.Status, *status.Error) {
	it.advance() // 'while'
	condSrc, perr := it.captureParen()
	if perr != nil {
		return nil, perr.Status, perr
	}
	bodySrc, perr := it.captureBlock()
	if perr != nil {
		return nil, perr.Status, perr
	}

	result := value.Value(value.NewUnknown())
	for {
		cond, err := evalExprSource(condSrc, it.ns)
		if err != nil {
			return nil, err.Status, err
		}
		if !cond.Truthy() {
			break
		}
		v, st, err := evalBlockSource(bodySrc, it.ns)
		if err != nil {
			return nil, err.Status, err
		}
		result = v
		switch st {
		case status.BREAK:
			return result, status.OK, nil
		case status.OK, status.CONTINUE:
			continue
		default: // RETURN
			return result, st, nil
		}
	}
	return result, status.OK, nil
}

func (it *Interp) doWhileStmt() (value.Value, status.Status, *status.Error) {
	it.advance() // 'do'
	bodySrc, perr := it.captureBlock()
	if perr != nil {
		return nil, perr.Status, perr
	}
	if it.cur.Kind != lexer.KwWhile {
		return nil, status.Error, parseErr(it, status.ErrorUnexpectedToken, "expected 'while' after do block")
	}
	it.advance()
	condSrc, perr := it.captureParen()
	if perr != nil {
		return nil, perr.Status, perr
	}

	result := value.Value(value.NewUnknown())
	for {
		v, st, err := evalBlockSource(bodySrc, it.ns)
		if err != nil {
			return nil, err.Status, err
		}
		result = v
		if st == status.BREAK {
			return result, status.OK, nil
		}
		if st != status.OK && st != status.CONTINUE {
			return result, st, nil
		}
		cond, err := evalExprSource(condSrc, it.ns)
		if err != nil {
			return nil, err.Status, err
		}
		if !cond.Truthy() {
			break
		}
	}
	return result, status.OK, nil
}

func (it *Interp) forStmt() (value.Value, status.Status, *status.Error) {
	it.advance() // 'for'
	headerSrc, perr := it.captureParen()
	if perr != nil {
		return nil, perr.Status, perr
	}
	bodySrc, perr := it.captureBlock()
	if perr != nil {
		return nil, perr.Status, perr
	}

	parts := splitTopLevel(headerSrc, ';')
	if len(parts) != 3 {
		return nil, status.Error, parseErr(it, status.ErrorUnexpectedToken, "for requires (init; cond; step)")
	}
	initSrc, condSrc, stepSrc := parts[0], parts[1], parts[2]

	if strings.TrimSpace(initSrc) != "" {
		if _, err := evalExprSource(initSrc, it.ns); err != nil {
			return nil, err.Status, err
		}
	}

	result := value.Value(value.NewUnknown())
	for {
		cond, err := evalExprSource(condSrc, it.ns)
		if err != nil {
			return nil, err.Status, err
		}
		if !cond.Truthy() {
			break
		}
		v, st, err := evalBlockSource(bodySrc, it.ns)
		if err != nil {
			return nil, err.Status, err
		}
		result = v
		if st == status.BREAK {
			return result, status.OK, nil
		}
		if st != status.OK && st != status.CONTINUE {
			return result, st, nil
		}
		if strings.TrimSpace(stepSrc) != "" {
			if _, err := evalExprSource(stepSrc, it.ns); err != nil {
				return nil, err.Status, err
			}
		}
	}
	return result, status.OK, nil
}

// foreachStmt implements `foreach (container; key; value) {block}` (spec.md
// §4.5): iterates Array entries in insertion order or Matrix cells linearly.
// Strings are not iterable (SPEC_FULL.md's resolution of the open
// question), and fail with ErrorIllegalOperand.
func (it *Interp) foreachStmt() (value.Value, status.Status, *status.Error) {
	it.advance() // 'foreach'
	headerSrc, perr := it.captureParen()
	if perr != nil {
		return nil, perr.Status, perr
	}
	bodySrc, perr := it.captureBlock()
	if perr != nil {
		return nil, perr.Status, perr
	}

	parts := splitTopLevel(headerSrc, ';')
	if len(parts) != 3 {
		return nil, status.Error, parseErr(it, status.ErrorUnexpectedToken, "foreach requires (container; key; value)")
	}
	containerVal, err := evalExprSource(parts[0], it.ns)
	if err != nil {
		return nil, err.Status, err
	}
	keyName := strings.TrimSpace(parts[1])
	valName := strings.TrimSpace(parts[2])

	result := value.Value(value.NewUnknown())
	runBody := func() (status.Status, *status.Error) {
		v, st, berr := evalBlockSource(bodySrc, it.ns)
		if berr != nil {
			return berr.Status, berr
		}
		result = v
		return st, nil
	}

	switch c := containerVal.(type) {
	case *value.String:
		return nil, status.Error, parseErr(it, status.ErrorIllegalOperand, "strings are not iterable with foreach")
	case *value.Array:
		for _, e := range c.Entries() {
			e.Key.SetStored(true)
			e.Value.SetStored(true)
			it.ns.Set(keyName, e.Key.Clone(), namespace.ScopeStack)
			it.ns.Set(valName, e.Value.Clone(), namespace.ScopeStack)
			st, berr := runBody()
			if berr != nil {
				return nil, berr.Status, berr
			}
			if st == status.BREAK {
				return result, status.OK, nil
			}
			if st != status.OK && st != status.CONTINUE {
				return result, st, nil
			}
		}
	case *value.Matrix:
		for i, cell := range c.Cells {
			it.ns.Set(keyName, value.NewInteger(int64(i)), namespace.ScopeStack)
			cell.SetStored(true)
			it.ns.Set(valName, cell.Clone(), namespace.ScopeStack)
			st, berr := runBody()
			if berr != nil {
				return nil, berr.Status, berr
			}
			if st == status.BREAK {
				return result, status.OK, nil
			}
			if st != status.OK && st != status.CONTINUE {
				return result, st, nil
			}
		}
	default:
		return nil, status.Error, parseErr(it, status.ErrorIllegalOperand, "value is not iterable with foreach")
	}
	return result, status.OK, nil
}

// tryStmt implements `try {block} catch {block}` (spec.md §4.5): an Error
// status from the try body resets to OK before the catch body runs;
// EXIT and any other non-OK status propagate through unchanged.
func (it *Interp) tryStmt() (value.Value, status.Status, *status.Error) {
	it.advance() // 'try'
	bodySrc, perr := it.captureBlock()
	if perr != nil {
		return nil, perr.Status, perr
	}
	if it.cur.Kind != lexer.KwCatch {
		return nil, status.Error, parseErr(it, status.ErrorUnexpectedToken, "expected 'catch' after try block")
	}
	it.advance()
	catchSrc, perr := it.captureBlock()
	if perr != nil {
		return nil, perr.Status, perr
	}

	v, st, err := evalBlockSource(bodySrc, it.ns)
	if err != nil {
		if err.Status.IsError() {
			return evalBlockSource(catchSrc, it.ns)
		}
		return nil, err.Status, err // EXIT propagates uncaught
	}
	return v, st, nil
}

// testStmt implements `test {block}` (SPEC_FULL.md's resolution of the
// `test` open question): like try/catch with no catch body — an Error
// downgrades to OK and its message is recorded for host inspection, rather
// than being discarded.
func (it *Interp) testStmt() (value.Value, status.Status, *status.Error) {
	it.advance() // 'test'
	bodySrc, perr := it.captureBlock()
	if perr != nil {
		return nil, perr.Status, perr
	}

	v, st, err := evalBlockSource(bodySrc, it.ns)
	if err != nil {
		if err.Status.IsError() {
			it.ns.LastTestError = err.Error()
			return value.NewUnknown(), status.OK, nil
		}
		return nil, err.Status, err // EXIT propagates uncaught
	}
	return v, st, nil
}

// funcDefStmt implements `funcdef := 'function' NAME '(' [formal {',' formal}] ')' block`
// (spec.md §4.4). Default-value expressions are captured as source text
// (not evaluated now) and evaluated against the callee's frame on every
// call that omits that argument, so a default may reference an earlier
// parameter.
func (it *Interp) funcDefStmt() (value.Value, status.Status, *status.Error) {
	it.advance() // 'function'
	if it.cur.Kind != lexer.Variable && it.cur.Kind != lexer.Function {
		return nil, status.Error, parseErr(it, status.ErrorUnexpectedToken, "expected function name")
	}
	name := it.cur.Literal
	it.advance()

	if it.cur.Kind != lexer.LParen {
		return nil, status.Error, parseErr(it, status.ErrorUnexpectedToken, "expected '(' after function name")
	}
	it.advance()

	var params []namespace.Param
	if it.cur.Kind != lexer.RParen {
		for {
			if it.cur.Kind != lexer.Variable && it.cur.Kind != lexer.Function {
				return nil, status.Error, parseErr(it, status.ErrorUnexpectedToken, "expected parameter name")
			}
			p := namespace.Param{Name: it.cur.Literal}
			it.advance()
			if it.cur.Kind == lexer.Assign {
				it.advance()
				p.HasDefault = true
				p.DefaultSrc = it.captureDefaultExpr()
			}
			params = append(params, p)
			if it.cur.Kind == lexer.Comma {
				it.advance()
				continue
			}
			break
		}
	}
	if it.cur.Kind != lexer.RParen {
		return nil, status.Error, parseErr(it, status.ErrorUnexpectedToken, "expected ')' in parameter list")
	}
	it.advance()

	body, perr := it.captureBlock()
	if perr != nil {
		return nil, perr.Status, perr
	}

	it.ns.DefineFunction(name, namespace.FunctionEntry{
		Name:   name,
		Script: &namespace.ScriptFunction{Name: name, Params: params, Body: body},
	})
	// The token after the body was scanned before the definition existed;
	// reclassify it so a call written right after the closing brace is a call.
	if it.cur.Kind == lexer.Variable && it.cur.Literal == name {
		it.cur.Kind = lexer.Function
	}
	return value.NewUnknown(), status.OK, nil
}

// captureDefaultExpr scans (without evaluating) from the current token up
// to the next top-level ',' or ')' and returns that source range, leaving
// the cursor positioned on the stopping token. Used for a parameter's
// default-value expression, which must stay unevaluated until a call
// actually needs it.
func (it *Interp) captureDefaultExpr() string {
	start := it.cur.Pos.Offset
	depth := 0
	for {
		if depth == 0 && (it.cur.Kind == lexer.Comma || it.cur.Kind == lexer.RParen) {
			break
		}
		if it.cur.Kind == lexer.EOF {
			break
		}
		switch it.cur.Kind {
		case lexer.LParen, lexer.LBrack, lexer.LBrace:
			depth++
		case lexer.RParen, lexer.RBrack, lexer.RBrace:
			depth--
		}
		it.advance()
	}
	end := it.cur.Pos.Offset
	return strings.TrimSpace(it.lex.SourceSlice(start, end-start))
}
