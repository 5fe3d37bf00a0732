package interp

import (
	"github.com/kconner/goguash/internal/lexer"
	"github.com/kconner/goguash/internal/namespace"
	"github.com/kconner/goguash/internal/status"
	"github.com/kconner/goguash/internal/value"
)

// parseAssign is the grammar's `assign` production: `logor [ '=' assign ]`.
// In practice assignment targets (simple variable, array/matrix element,
// indirection, macro) are recognized earlier, inside parsePrimary, since
// only those primary forms are valid lvalues; reaching a bare '=' here means
// the left side was some other expression, which is ErrorIllegalAssignment.
func (it *Interp) parseAssign() (value.Value, *status.Error) {
	left, err := it.parseLogOr()
	if err != nil {
		return nil, err
	}
	if it.cur.Kind == lexer.Assign {
		return nil, parseErr(it, status.ErrorIllegalAssignment, "left side of '=' is not assignable")
	}
	return left, nil
}

func (it *Interp) parseLogOr() (value.Value, *status.Error) {
	left, err := it.parseLogAnd()
	if err != nil {
		return nil, err
	}
	for it.cur.Kind == lexer.OrOr {
		it.advance()
		// true || X: X's side effects don't happen. A Matrix left operand is
		// combined element-wise with the right one, so it never short-circuits.
		_, isMat := left.(*value.Matrix)
		skip := !isMat && left.Truthy()
		prev := it.suppress
		it.suppress = prev || skip
		right, err := it.parseLogAnd()
		it.suppress = prev
		if err != nil {
			return nil, err
		}
		if prev {
			left = value.NewUnknown()
			continue
		}
		res, serr := value.Or(left, right)
		if serr != nil {
			return nil, serr
		}
		value.Release(left)
		value.Release(right)
		left = res
	}
	return left, nil
}

func (it *Interp) parseLogAnd() (value.Value, *status.Error) {
	left, err := it.parseBitOr()
	if err != nil {
		return nil, err
	}
	for it.cur.Kind == lexer.AndAnd {
		it.advance()
		// false && X: X's side effects don't happen. A Matrix left operand is
		// combined element-wise with the right one, so it never short-circuits.
		_, isMat := left.(*value.Matrix)
		skip := !isMat && !left.Truthy()
		prev := it.suppress
		it.suppress = prev || skip
		right, err := it.parseBitOr()
		it.suppress = prev
		if err != nil {
			return nil, err
		}
		if prev {
			left = value.NewUnknown()
			continue
		}
		res, serr := value.And(left, right)
		if serr != nil {
			return nil, serr
		}
		value.Release(left)
		value.Release(right)
		left = res
	}
	return left, nil
}

// binOp is one same-precedence-level operator: the token Kind it matches
// and the value-level operation to apply.
type binOp struct {
	kind  lexer.Kind
	apply func(a, b value.Value) (value.Value, *status.Error)
}

// parseBinaryLevel implements one left-associative precedence level shared
// by bitor/bitxor/bitand/andor/equal/relat/shift/addit/mult: parse `next`,
// then repeatedly match an operator in ops and parse `next` again. When
// suppress is set (inside a short-circuited && / || operand) the operator
// is not actually applied, only parsed past, since the whole subexpression
// is being discarded (spec.md §4.1).
func (it *Interp) parseBinaryLevel(next func() (value.Value, *status.Error), ops []binOp) (value.Value, *status.Error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for {
		var op *binOp
		for i := range ops {
			if ops[i].kind == it.cur.Kind {
				op = &ops[i]
				break
			}
		}
		if op == nil {
			return left, nil
		}
		it.advance()
		right, err := next()
		if err != nil {
			return nil, err
		}
		if it.suppress {
			left = value.NewUnknown()
			continue
		}
		res, serr := op.apply(left, right)
		if serr != nil {
			return nil, serr
		}
		value.Release(left)
		value.Release(right)
		left = res
	}
}

func (it *Interp) parseBitOr() (value.Value, *status.Error) {
	return it.parseBinaryLevel(it.parseBitXor, []binOp{{lexer.Pipe, value.BitOr}})
}

func (it *Interp) parseBitXor() (value.Value, *status.Error) {
	return it.parseBinaryLevel(it.parseBitAnd, []binOp{{lexer.Caret, value.BitXor}})
}

func (it *Interp) parseBitAnd() (value.Value, *status.Error) {
	return it.parseBinaryLevel(it.parseAndOr, []binOp{{lexer.Amp, value.BitAnd}})
}

func (it *Interp) parseAndOr() (value.Value, *status.Error) {
	return it.parseBinaryLevel(it.parseEqual, []binOp{{lexer.AndOrXor, value.AndOr}})
}

func (it *Interp) parseEqual() (value.Value, *status.Error) {
	eq := func(a, b value.Value) (value.Value, *status.Error) { return value.NewInteger(boolToInt(value.Equal(a, b))), nil }
	ne := func(a, b value.Value) (value.Value, *status.Error) { return value.NewInteger(boolToInt(!value.Equal(a, b))), nil }
	return it.parseBinaryLevel(it.parseRelat, []binOp{{lexer.Eq, eq}, {lexer.NotEq, ne}})
}

func (it *Interp) parseRelat() (value.Value, *status.Error) {
	cmp := func(want func(int) bool) func(a, b value.Value) (value.Value, *status.Error) {
		return func(a, b value.Value) (value.Value, *status.Error) {
			c, err := value.Compare(a, b)
			if err != nil {
				return nil, err
			}
			return value.NewInteger(boolToInt(want(c))), nil
		}
	}
	return it.parseBinaryLevel(it.parseShift, []binOp{
		{lexer.Less, cmp(func(c int) bool { return c < 0 })},
		{lexer.LessEq, cmp(func(c int) bool { return c <= 0 })},
		{lexer.Greater, cmp(func(c int) bool { return c > 0 })},
		{lexer.GreaterEq, cmp(func(c int) bool { return c >= 0 })},
	})
}

func (it *Interp) parseShift() (value.Value, *status.Error) {
	return it.parseBinaryLevel(it.parseAddit, []binOp{{lexer.Shl, value.Shl}, {lexer.Shr, value.Shr}})
}

func (it *Interp) parseAddit() (value.Value, *status.Error) {
	return it.parseBinaryLevel(it.parseMult, []binOp{{lexer.Plus, value.Add}, {lexer.Minus, value.Sub}})
}

func (it *Interp) parseMult() (value.Value, *status.Error) {
	return it.parseBinaryLevel(it.parsePower, []binOp{
		{lexer.Star, value.Mul}, {lexer.Slash, value.Div}, {lexer.Percent, value.Mod},
	})
}

// parsePower is right-associative: `power := unary [ '**' power ]`.
func (it *Interp) parsePower() (value.Value, *status.Error) {
	left, err := it.parseUnary()
	if err != nil {
		return nil, err
	}
	if it.cur.Kind != lexer.Pow {
		return left, nil
	}
	it.advance()
	right, err := it.parsePower()
	if err != nil {
		return nil, err
	}
	if it.suppress {
		return value.NewUnknown(), nil
	}
	res, serr := value.Pow(left, right)
	if serr != nil {
		return nil, serr
	}
	value.Release(left)
	value.Release(right)
	return res, nil
}

// parseUnary handles the prefix operators `+ - ! ~` (spec.md §4.4's
// `unary := ('+'|'-'|'!'|'~') unary | primary`).
func (it *Interp) parseUnary() (value.Value, *status.Error) {
	switch it.cur.Kind {
	case lexer.Plus:
		it.advance()
		v, err := it.parseUnary()
		if err != nil {
			return nil, err
		}
		if it.suppress {
			return value.NewUnknown(), nil
		}
		res, serr := value.Pos(v)
		if serr != nil {
			return nil, serr
		}
		value.Release(v)
		return res, nil
	case lexer.Minus:
		it.advance()
		v, err := it.parseUnary()
		if err != nil {
			return nil, err
		}
		if it.suppress {
			return value.NewUnknown(), nil
		}
		res, serr := value.Neg(v)
		if serr != nil {
			return nil, serr
		}
		value.Release(v)
		return res, nil
	case lexer.Not:
		it.advance()
		v, err := it.parseUnary()
		if err != nil {
			return nil, err
		}
		if it.suppress {
			return value.NewUnknown(), nil
		}
		res := value.Not(v)
		value.Release(v)
		return res, nil
	case lexer.BitNot:
		it.advance()
		v, err := it.parseUnary()
		if err != nil {
			return nil, err
		}
		if it.suppress {
			return value.NewUnknown(), nil
		}
		res, serr := value.BitNot(v)
		if serr != nil {
			return nil, serr
		}
		value.Release(v)
		return res, nil
	}
	return it.parsePrimary()
}

// parsePrimary implements spec.md §4.4's `primary` production.
func (it *Interp) parsePrimary() (value.Value, *status.Error) {
	switch it.cur.Kind {
	case lexer.Integer:
		v := value.NewInteger(it.cur.IntVal)
		imag := it.cur.Imaginary
		it.advance()
		if imag {
			return value.NewComplex(0, float64(v.V)), nil
		}
		return v, nil
	case lexer.Real:
		v := value.NewReal(it.cur.RealVal)
		imag := it.cur.Imaginary
		it.advance()
		if imag {
			return value.NewComplex(0, v.V), nil
		}
		return v, nil
	case lexer.String:
		v := value.NewString(it.cur.Literal)
		it.advance()
		return v, nil
	case lexer.KwNull:
		it.advance()
		return value.NewUnknown(), nil
	case lexer.ImaginaryUnit:
		// A bare `i` that is an assignment target, or is already bound as a
		// variable, is that variable rather than the imaginary unit.
		if next := it.lex.Peek(0).Kind; next == lexer.Assign || next == lexer.LBrack {
			return it.parseVarRefOrAssign()
		}
		if _, bound := it.ns.Get("i", namespace.ScopeStack); bound {
			return it.parseVarRefOrAssign()
		}
		it.advance()
		return value.NewComplex(0, 1), nil
	case lexer.LParen:
		inner, err := it.captureParen()
		if err != nil {
			return nil, err
		}
		if it.suppress {
			sub := New(inner, it.ns)
			sub.suppress = true
			if _, err := sub.parseAssign(); err != nil {
				return nil, err
			}
			return value.NewUnknown(), nil
		}
		return evalExprSource(inner, it.ns)
	case lexer.LBrack:
		return it.parseMatrixLiteral()
	case lexer.LBrace:
		return it.parseArrayLiteral()
	case lexer.Dollar:
		it.advance()
		return it.parseMacroOrIndirection(true)
	case lexer.At:
		it.advance()
		return it.parseMacroOrIndirection(false)
	case lexer.Function:
		return it.parseFuncCall()
	case lexer.Variable:
		return it.parseVarRefOrAssign()
	}
	return nil, parseErr(it, status.ErrorUnexpectedToken, "unexpected token "+it.cur.Kind.String())
}

// parseVarRefOrAssign implements the `varref`/assignment-target forms for a
// bare NAME (spec.md §4.4's assignment-target list): `name = expr`,
// `name[idx,...] = expr`, or a plain read of either form.
func (it *Interp) parseVarRefOrAssign() (value.Value, *status.Error) {
	name := it.cur.Literal
	it.advance()

	if it.cur.Kind == lexer.LBrack {
		idx, err := it.parseIndexList()
		if err != nil {
			return nil, err
		}
		if it.cur.Kind == lexer.Assign {
			it.advance()
			rhs, err := it.parseAssign()
			if err != nil {
				return nil, err
			}
			if it.suppress {
				return value.NewUnknown(), nil
			}
			return it.assignElement(name, idx, rhs)
		}
		if it.suppress {
			return value.NewUnknown(), nil
		}
		return it.readElement(name, idx)
	}

	if it.cur.Kind == lexer.Assign {
		it.advance()
		rhs, err := it.parseAssign()
		if err != nil {
			return nil, err
		}
		if it.suppress {
			return value.NewUnknown(), nil
		}
		rhs.SetStored(true)
		it.ns.Set(name, rhs, namespace.ScopeStack)
		return rhs, nil
	}

	if it.suppress {
		return value.NewUnknown(), nil
	}
	v, ok := it.ns.Get(name, namespace.ScopeStack)
	if !ok {
		return value.NewUnknown(), nil
	}
	return v.Clone(), nil
}

// parseIndexList consumes `[ expr {',' expr} ]`, returning the evaluated
// index expressions (spec.md §4.4's `index_list`).
func (it *Interp) parseIndexList() ([]value.Value, *status.Error) {
	it.advance() // consume '['
	var idx []value.Value
	if it.cur.Kind != lexer.RBrack {
		for {
			v, err := it.parseLogOr()
			if err != nil {
				return nil, err
			}
			idx = append(idx, v)
			if it.cur.Kind == lexer.Comma {
				it.advance()
				continue
			}
			break
		}
	}
	if it.cur.Kind != lexer.RBrack {
		return nil, parseErr(it, status.ErrorUnexpectedToken, "expected ']'")
	}
	it.advance()
	return idx, nil
}

// readElement reads `name[idx...]`: single-index Array access, or
// multi-index (or existing-Matrix) access, per spec.md §4.1.
func (it *Interp) readElement(name string, idx []value.Value) (value.Value, *status.Error) {
	cur, ok := it.ns.Get(name, namespace.ScopeStack)
	if ok {
		if m, isMat := cur.(*value.Matrix); isMat {
			return it.readMatrixElement(m, idx)
		}
	}
	if len(idx) != 1 {
		return nil, parseErr(it, status.ErrorIllegalOperand, "array element access takes exactly one key")
	}
	if !ok {
		return nil, parseErr(it, status.ErrorIllegalOperand, "undefined array: "+name)
	}
	arr, isArr := cur.(*value.Array)
	if !isArr {
		return nil, parseErr(it, status.ErrorIllegalOperand, name+" is not an array")
	}
	v, found, gerr := arr.Get(idx[0])
	if gerr != nil {
		return nil, parseErr(it, status.ErrorIllegalOperand, gerr.Error())
	}
	if !found {
		return nil, parseErr(it, status.ErrorOutOfRange, "no such array key in "+name)
	}
	return v.Clone(), nil
}

func (it *Interp) readMatrixElement(m *value.Matrix, idx []value.Value) (value.Value, *status.Error) {
	ints := make([]int, len(idx))
	for i, v := range idx {
		n, ok := v.(*value.Integer)
		if !ok {
			return nil, parseErr(it, status.ErrorIllegalOperand, "matrix index must be Integer")
		}
		ints[i] = int(n.V)
	}
	v, gerr := m.Get(ints)
	if gerr != nil {
		return nil, parseErr(it, status.ErrorOutOfRange, gerr.Error())
	}
	return v.Clone(), nil
}

// assignElement implements `name[idx...] = expr` (spec.md §4.4): if name
// already holds a Matrix, idx must address an existing cell; otherwise name
// is coerced to an Array (creating an empty one if currently Unknown), and
// a single-key write inserts or overwrites.
func (it *Interp) assignElement(name string, idx []value.Value, rhs value.Value) (value.Value, *status.Error) {
	cur, ok := it.ns.Get(name, namespace.ScopeStack)
	if ok {
		if m, isMat := cur.(*value.Matrix); isMat {
			ints := make([]int, len(idx))
			for i, v := range idx {
				n, isInt := v.(*value.Integer)
				if !isInt {
					return nil, parseErr(it, status.ErrorIllegalOperand, "matrix index must be Integer")
				}
				ints[i] = int(n.V)
			}
			rhs.SetStored(true)
			if serr := m.Set(ints, rhs); serr != nil {
				return nil, parseErr(it, status.ErrorOutOfRange, serr.Error())
			}
			return rhs, nil
		}
	}
	if len(idx) != 1 {
		return nil, parseErr(it, status.ErrorIllegalOperand, "array element assignment takes exactly one key")
	}
	arr, isArr := cur.(*value.Array)
	if !ok || !isArr {
		arr = value.NewArray()
		arr.SetStored(true)
		it.ns.Set(name, arr, namespace.ScopeStack)
	}
	rhs.SetStored(true)
	if serr := arr.Set(idx[0], rhs); serr != nil {
		return nil, parseErr(it, status.ErrorIllegalOperand, serr.Error())
	}
	return rhs, nil
}

// parseMacroOrIndirection handles `$name` (macro, isMacro=true) and `@name`
// (indirection, isMacro=false), both as reads and as assignment targets
// (spec.md §4.4): assignment behaves identically for both forms (store into
// the variable *named by* name's String value); reading differs — `@name`
// dereferences name's String value once more as a variable name, while
// `$name` re-lexes and evaluates name's String value as guash source.
func (it *Interp) parseMacroOrIndirection(isMacro bool) (value.Value, *status.Error) {
	if it.cur.Kind != lexer.Variable && it.cur.Kind != lexer.Function {
		return nil, parseErr(it, status.ErrorUnexpectedToken, "expected name after '$' or '@'")
	}
	name := it.cur.Literal
	it.advance()

	if it.cur.Kind == lexer.Assign {
		it.advance()
		rhs, err := it.parseAssign()
		if err != nil {
			return nil, err
		}
		if it.suppress {
			return value.NewUnknown(), nil
		}
		target, terr := it.resolveIndirectName(name)
		if terr != nil {
			return nil, terr
		}
		rhs.SetStored(true)
		it.ns.Set(target, rhs, namespace.ScopeStack)
		return rhs, nil
	}

	if it.suppress {
		return value.NewUnknown(), nil
	}
	target, terr := it.resolveIndirectName(name)
	if terr != nil {
		return nil, terr
	}
	if isMacro {
		return evalExprSource(target, it.ns)
	}
	v, ok := it.ns.Get(target, namespace.ScopeStack)
	if !ok {
		return value.NewUnknown(), nil
	}
	return v.Clone(), nil
}

func (it *Interp) resolveIndirectName(name string) (string, *status.Error) {
	v, ok := it.ns.Get(name, namespace.ScopeStack)
	if !ok {
		return "", parseErr(it, status.ErrorIllegalOperand, "undefined variable: "+name)
	}
	s, isStr := v.(*value.String)
	if !isStr {
		return "", parseErr(it, status.ErrorIllegalOperand, name+" must hold a String for '$'/'@'")
	}
	return s.String(), nil
}

// parseArrayLiteral implements `'{' array_literal '}'`: a comma-separated
// list of expressions, auto-keyed 0,1,2,....
func (it *Interp) parseArrayLiteral() (value.Value, *status.Error) {
	it.advance() // consume '{'
	arr := value.NewArray()
	if it.cur.Kind != lexer.RBrace {
		i := int64(0)
		for {
			v, err := it.parseLogOr()
			if err != nil {
				return nil, err
			}
			v.SetStored(true)
			_ = arr.Set(value.NewInteger(i), v)
			i++
			if it.cur.Kind == lexer.Comma {
				it.advance()
				continue
			}
			break
		}
	}
	if it.cur.Kind != lexer.RBrace {
		return nil, parseErr(it, status.ErrorUnexpectedToken, "expected '}'")
	}
	it.advance()
	return arr, nil
}

// parseMatrixLiteral implements `'[' matrix_literal ']'`. If the first
// element is itself a bracketed row, the literal is read as one or more
// `[v,v,...]` rows; otherwise the whole bracket is a single flat row
// (a 1×N matrix).
func (it *Interp) parseMatrixLiteral() (value.Value, *status.Error) {
	it.advance() // consume '['
	var rows [][]value.Value

	if it.cur.Kind == lexer.LBrack {
		for {
			row, err := it.parseMatrixRow()
			if err != nil {
				return nil, err
			}
			rows = append(rows, row)
			if it.cur.Kind == lexer.Comma {
				it.advance()
				continue
			}
			break
		}
	} else if it.cur.Kind != lexer.RBrack {
		row, err := it.parseFlatRow()
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	if it.cur.Kind != lexer.RBrack {
		return nil, parseErr(it, status.ErrorUnexpectedToken, "expected ']'")
	}
	it.advance()

	return buildMatrix(it, rows)
}

func (it *Interp) parseMatrixRow() ([]value.Value, *status.Error) {
	it.advance() // consume '['
	row, err := it.parseFlatRow()
	if err != nil {
		return nil, err
	}
	if it.cur.Kind != lexer.RBrack {
		return nil, parseErr(it, status.ErrorUnexpectedToken, "expected ']'")
	}
	it.advance()
	return row, nil
}

func (it *Interp) parseFlatRow() ([]value.Value, *status.Error) {
	var row []value.Value
	for {
		v, err := it.parseLogOr()
		if err != nil {
			return nil, err
		}
		row = append(row, v)
		if it.cur.Kind == lexer.Comma {
			it.advance()
			continue
		}
		break
	}
	return row, nil
}

func buildMatrix(it *Interp, rows [][]value.Value) (value.Value, *status.Error) {
	if len(rows) == 0 {
		return value.NewMatrix([]int{0, 0}), nil
	}
	cols := len(rows[0])
	for _, r := range rows {
		if len(r) != cols {
			return nil, parseErr(it, status.ErrorIllegalOperand, "matrix rows must have equal length")
		}
	}
	m := value.NewMatrix([]int{len(rows), cols})
	for i, r := range rows {
		for j, v := range r {
			v.SetStored(true)
			_ = m.Set([]int{i, j}, v)
		}
	}
	return m, nil
}
