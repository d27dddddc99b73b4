package exec

import (
	"github.com/xvandervort/graphoid-sub001/ast"
	"github.com/xvandervort/graphoid-sub001/env"
	"github.com/xvandervort/graphoid-sub001/errs"
	"github.com/xvandervort/graphoid-sub001/position"
	"github.com/xvandervort/graphoid-sub001/value"
)

// makeFunction builds the value.Function for a named top-level definition,
// either an ordinary parameter-list function or a pattern-matching one
// (spec.md §4.3). defFrame is the frame active at definition time, captured
// by the closure per spec.md §4.6.
func (in *Interpreter) makeFunction(fd *ast.FnDef, defFrame *env.Frame) *value.Function {
	if fd.Clauses != nil {
		fn := in.makePatternFn(fd.Clauses, defFrame)
		fn.Name = fd.Name
		return fn
	}
	return &value.Function{
		Name:    fd.Name,
		Closure: defFrame,
		Arity:   len(fd.Params),
		Call: func(args []value.Value) (value.Value, error) {
			return in.callOrdinary(fd.Name, fd.Params, fd.Body, defFrame, args)
		},
	}
}

// makeLambda builds an anonymous function value for a `fn(params) { body }`
// expression.
func (in *Interpreter) makeLambda(l *ast.Lambda, defFrame *env.Frame) *value.Function {
	return &value.Function{
		Closure: defFrame,
		Arity:   len(l.Params),
		Call: func(args []value.Value) (value.Value, error) {
			return in.callOrdinary("", l.Params, l.Body, defFrame, args)
		},
	}
}

// callOrdinary binds args (copied, per spec.md §3.5's copy-on-assign rule)
// into a fresh child of defFrame under params' names, runs body, and
// unwraps a `return` signal into its carried value — falling through to the
// block's own implicit-return value if body never explicitly returns
// (spec.md §4.7).
func (in *Interpreter) callOrdinary(name string, params []string, body []ast.Stmt, defFrame *env.Frame, args []value.Value) (value.Value, error) {
	call := defFrame.Child()
	for i, p := range params {
		call.Declare(p, args[i].Copy())
	}
	v, err := in.execBlock(body, call)
	if err != nil {
		if sig, ok := asSignal(err); ok && sig.kind == sigReturn {
			return sig.value, nil
		}
		return nil, err
	}
	return v, nil
}

// makePatternFn builds a pattern-matching function value: arity is -1 since
// clauses may bind a differing number of parameters via list/tuple
// destructuring, and argument matching is against the whole args slice
// wrapped as a single tuple-shaped value (spec.md §4.3 "Pattern-matching
// function").
func (in *Interpreter) makePatternFn(clauses []ast.PatternFnClause, defFrame *env.Frame) *value.Function {
	return &value.Function{
		Closure: defFrame,
		Arity:   -1,
		Call: func(args []value.Value) (value.Value, error) {
			return in.callPatternFn(clauses, defFrame, args)
		},
	}
}

func (in *Interpreter) callPatternFn(clauses []ast.PatternFnClause, defFrame *env.Frame, args []value.Value) (value.Value, error) {
	scrutinee := value.NewList(args)
	for _, c := range clauses {
		bindings, ok, err := in.matchPattern(c.Pattern, scrutinee, defFrame)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		call := defFrame.Child()
		for name, v := range bindings {
			call.Declare(name, v)
		}
		v, err := in.evalExpr(c.Body, call)
		if err != nil {
			if sig, ok := asSignal(err); ok && sig.kind == sigReturn {
				return sig.value, nil
			}
			return nil, err
		}
		return v, nil
	}
	return nil, errs.New(position.KindMatchError, "no clause matched the given arguments")
}
