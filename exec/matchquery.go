package exec

import (
	"github.com/xvandervort/graphoid-sub001/ast"
	"github.com/xvandervort/graphoid-sub001/env"
	"github.com/xvandervort/graphoid-sub001/graph"
	"github.com/xvandervort/graphoid-sub001/position"
	"github.com/xvandervort/graphoid-sub001/value"
)

// matchResultsMethod implements the `.where(predicates…)` / `.return(fields…)`
// chain spec.md §4.10 hangs off a `graph.match(...)` result (Scenario C).
func (in *Interpreter) matchResultsMethod(x *ast.MethodCall, mr *graph.MatchResults, fr *env.Frame) (value.Value, error) {
	switch x.Name {
	case "where":
		return in.matchWhere(mr, x.Args, fr)
	case "return":
		return in.matchReturn(mr, x.Args, fr)
	default:
		return nil, runtimeErr(position.KindNameError, x.Pos(), "no method %q on match results", x.Name)
	}
}

// matchWhere filters mr down to rows where every predicate expression,
// evaluated with each bound pattern variable resolved to its matched node's
// value, is truthy.
func (in *Interpreter) matchWhere(mr *graph.MatchResults, preds []ast.Expr, fr *env.Frame) (*graph.MatchResults, error) {
	filtered, err := mr.Where(func(bindings map[string]value.Value) (bool, error) {
		child := fr.Child()
		for name, v := range bindings {
			child.Declare(name, v)
		}
		for _, p := range preds {
			v, err := in.evalExpr(p, child)
			if err != nil {
				return false, err
			}
			if !v.Truthy() {
				return false, nil
			}
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return filtered, nil
}

// matchReturn projects each of mr's rows to a tuple of fields, returning a
// list of tuples (spec.md §4.10 ".return(fields…)"). A plain variable name
// (`u`) projects straight through graph.MatchResults.Return; anything else
// (`u.name`) is evaluated per row against an environment with every bound
// variable in scope, so field access into the matched node's value works.
func (in *Interpreter) matchReturn(mr *graph.MatchResults, fields []ast.Expr, fr *env.Frame) (*value.List, error) {
	names := make([]string, len(fields))
	plain := true
	for i, f := range fields {
		id, ok := f.(*ast.Identifier)
		if !ok {
			plain = false
			break
		}
		names[i] = id.Name
	}

	if plain {
		rows := mr.Return(names)
		out := make([]value.Value, len(rows))
		for i, row := range rows {
			tuple := make([]value.Value, len(names))
			for j, name := range names {
				if v, ok := row[name]; ok {
					tuple[j] = v
				} else {
					tuple[j] = value.NoneValue
				}
			}
			out[i] = value.NewList(tuple)
		}
		return value.NewList(out), nil
	}

	rows := mr.Rows()
	out := make([]value.Value, len(rows))
	for i, row := range rows {
		child := fr.Child()
		for name, v := range row {
			child.Declare(name, v)
		}
		tuple := make([]value.Value, len(fields))
		for j, f := range fields {
			v, err := in.evalExpr(f, child)
			if err != nil {
				return nil, err
			}
			tuple[j] = v
		}
		out[i] = value.NewList(tuple)
	}
	return value.NewList(out), nil
}
