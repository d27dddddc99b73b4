package exec

import (
	"github.com/xvandervort/graphoid-sub001/ast"
	"github.com/xvandervort/graphoid-sub001/env"
	"github.com/xvandervort/graphoid-sub001/errs"
	"github.com/xvandervort/graphoid-sub001/position"
	"github.com/xvandervort/graphoid-sub001/value"
)

// matchPattern reports whether v satisfies pat, returning the bindings the
// pattern introduces on success (spec.md §4.3 "Pattern matching"). fr
// supplies the evaluation context a PatLiteral's embedded expression needs
// (it may reference an outer variable, not just a bare literal). A pattern
// that simply doesn't match returns ok == false with a nil error; only a
// genuinely invalid pattern use (a graph-query pattern inside `match`)
// raises an error.
func (in *Interpreter) matchPattern(pat ast.Pattern, v value.Value, fr *env.Frame) (map[string]value.Value, bool, error) {
	switch p := pat.(type) {
	case *ast.PatWildcard:
		return map[string]value.Value{}, true, nil

	case *ast.PatVariable:
		return map[string]value.Value{p.Name: v}, true, nil

	case *ast.PatLiteral:
		want, err := in.evalExpr(p.Value, fr)
		if err != nil {
			return nil, false, err
		}
		return map[string]value.Value{}, want.Equal(v), nil

	case *ast.PatList:
		return in.matchListPattern(p.Elements, p.Rest, v, fr)

	case *ast.PatTuple:
		return in.matchListPattern(p.Elements, nil, v, fr)

	case *ast.PatTagged:
		elems, ok := listElements(v)
		if !ok || len(elems) < 1 {
			return nil, false, nil
		}
		tag, ok := elems[0].(value.Symbol)
		if !ok || tag.Name != p.Tag {
			return nil, false, nil
		}
		return in.matchListPattern(p.Inner, nil, value.NewList(elems[1:]), fr)

	default:
		return nil, false, errs.New(position.KindMatchError, "pattern kind %T is not valid in a match statement", pat)
	}
}

func (in *Interpreter) matchListPattern(elements []ast.Pattern, rest *string, v value.Value, fr *env.Frame) (map[string]value.Value, bool, error) {
	elems, ok := listElements(v)
	if !ok {
		return nil, false, nil
	}
	if rest == nil {
		if len(elems) != len(elements) {
			return nil, false, nil
		}
	} else if len(elems) < len(elements) {
		return nil, false, nil
	}

	bindings := map[string]value.Value{}
	for i, sub := range elements {
		sub2, ok, err := in.matchPattern(sub, elems[i], fr)
		if err != nil || !ok {
			return nil, ok, err
		}
		for k, v := range sub2 {
			bindings[k] = v
		}
	}
	if rest != nil {
		bindings[*rest] = value.NewList(append([]value.Value{}, elems[len(elements):]...))
	}
	return bindings, true, nil
}

// listElements extracts the element slice backing v, if v is shaped like a
// list (a simple List or a "list"-tagged graph).
func listElements(v value.Value) ([]value.Value, bool) {
	switch t := v.(type) {
	case *value.List:
		return t.Elements, true
	default:
		if g, ok := asListGraph(t); ok {
			return g.ToList().Elements, true
		}
		return nil, false
	}
}

// runMatchClauses tries each clause's pattern against scrutinee in order,
// running the first one that matches in a child frame with its bindings
// installed (spec.md §4.3 "first matching clause wins").
func (in *Interpreter) runMatchClauses(clauses []ast.MatchClause, scrutinee value.Value, fr *env.Frame, pos position.Position) (value.Value, error) {
	for _, c := range clauses {
		bindings, ok, err := in.matchPattern(c.Pattern, scrutinee, fr)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		child := fr.Child()
		for name, v := range bindings {
			child.Declare(name, v)
		}
		return in.evalExpr(c.Body, child)
	}
	return nil, runtimeErr(position.KindMatchError, pos, "no clause matched the given value")
}
