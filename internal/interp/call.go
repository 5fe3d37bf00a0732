package interp

import (
	"github.com/kconner/goguash/internal/lexer"
	"github.com/kconner/goguash/internal/namespace"
	"github.com/kconner/goguash/internal/status"
	"github.com/kconner/goguash/internal/value"
)

// parseFuncCall implements `funcall := NAME '(' [ expression {',' expression} ] ')'`.
// The lexer has already classified the current token as Function because
// the namespace says this name is currently defined (spec.md §4.3).
func (it *Interp) parseFuncCall() (value.Value, *status.Error) {
	name := it.cur.Literal
	it.advance()
	if it.cur.Kind != lexer.LParen {
		return nil, parseErr(it, status.ErrorUnexpectedToken, "expected '(' after function name "+name)
	}
	it.advance() // consume '('

	var args []value.Value
	if it.cur.Kind != lexer.RParen {
		for {
			v, err := it.parseAssign()
			if err != nil {
				return nil, err
			}
			args = append(args, v)
			if it.cur.Kind == lexer.Comma {
				it.advance()
				continue
			}
			break
		}
	}
	if it.cur.Kind != lexer.RParen {
		return nil, parseErr(it, status.ErrorUnexpectedToken, "expected ')' to close call to "+name)
	}
	it.advance()

	if it.suppress {
		for _, a := range args {
			value.Release(a)
		}
		return value.NewUnknown(), nil
	}
	return it.callFunction(name, args)
}

func (it *Interp) callFunction(name string, args []value.Value) (value.Value, *status.Error) {
	entry, ok := it.ns.LookupFunction(name)
	if !ok {
		return nil, parseErr(it, status.ErrorFunction, "undefined function: "+name)
	}
	if entry.IsHost() {
		v, goerr := entry.Host(it.ns, args)
		for _, a := range args {
			value.Release(a)
		}
		if goerr != nil {
			if se, ok := goerr.(*status.Error); ok {
				return nil, se
			}
			return nil, parseErr(it, status.ErrorFunction, goerr.Error())
		}
		return v, nil
	}
	return it.callScript(entry.Script, args)
}

// callScript implements spec.md §4.4's script-function-call sequence: push
// a frame dynamically linked to the caller's frame, bind formals to cloned
// actuals (or their default expression, evaluated lazily against the new
// frame), evaluate the body, and pop the frame, releasing its bindings.
func (it *Interp) callScript(fn *namespace.ScriptFunction, args []value.Value) (value.Value, *status.Error) {
	frame := it.ns.PushFrame()

	for i, p := range fn.Params {
		var v value.Value
		if i < len(args) {
			v = args[i]
		} else if p.HasDefault {
			dv, err := evalExprSource(p.DefaultSrc, frame)
			if err != nil {
				frame.ReleaseFrame()
				return nil, err
			}
			v = dv
		} else {
			frame.ReleaseFrame()
			return nil, parseErr(it, status.ErrorFunction, "missing argument "+p.Name+" calling "+fn.Name)
		}
		v.SetStored(true)
		frame.Set(p.Name, v, namespace.ScopeLocal)
	}
	for i := len(fn.Params); i < len(args); i++ {
		value.Release(args[i]) // extra actuals beyond the formal list are discarded
	}

	result, st, err := evalBlockSource(fn.Body, frame)
	frame.ReleaseFrame()
	if err != nil {
		// Covers both genuine Errors and EXIT (spec.md §7: both propagate
		// all the way out of evaluate, including through a call boundary).
		return nil, err
	}

	switch st {
	case status.RETURN:
		return result, nil
	case status.OK:
		return value.NewUnknown(), nil
	default:
		// BREAK/CONTINUE escaping a function body with no enclosing loop to
		// catch them: treated as a function error rather than silently
		// swallowed.
		return nil, parseErr(it, status.ErrorFunction, fn.Name+": "+st.String()+" escaped function body")
	}
}
