package exec

import (
	"github.com/xvandervort/graphoid-sub001/ast"
	"github.com/xvandervort/graphoid-sub001/env"
	"github.com/xvandervort/graphoid-sub001/position"
	"github.com/xvandervort/graphoid-sub001/value"
)

// paramNames gives the positional slot a keyword argument resolves to for
// the handful of calls spec.md writes with `name: value` syntax. Anything
// not listed here simply can't take keyword arguments.
var paramNames = map[string][]string{
	"node":          {"var", "type"},
	"edge":          {"type", "direction"},
	"path":          {"type", "min", "max", "direction"},
	"shortest_path": {"start", "end", "edge_type", "weighted"},
	"has_path":      {"start", "end", "edge_type"},
	"find_path":     {"start", "end", "edge_type"},
}

// evalArgList evaluates a call's argument expressions, resolving any
// KeywordArg entries into their positional slot for callee (spec.md §4.4's
// keyword-argument calls). callee being "" (callee not statically known, as
// with an expression-valued call target) means any keyword argument is
// rejected, since there is no name to resolve it against.
func (in *Interpreter) evalArgList(callee string, argExprs []ast.Expr, fr *env.Frame, pos position.Position) ([]value.Value, error) {
	var positional []value.Value
	var named map[string]value.Value
	for _, a := range argExprs {
		if kw, ok := a.(*ast.KeywordArg); ok {
			v, err := in.evalExpr(kw.Value, fr)
			if err != nil {
				return nil, err
			}
			if named == nil {
				named = map[string]value.Value{}
			}
			named[kw.Name] = v
			continue
		}
		v, err := in.evalExpr(a, fr)
		if err != nil {
			return nil, err
		}
		positional = append(positional, v)
	}
	if named == nil {
		return positional, nil
	}

	order, ok := paramNames[callee]
	if !ok {
		return nil, runtimeErr(position.KindArityError, pos, "%s does not accept keyword arguments", callee)
	}
	out := make([]value.Value, len(positional))
	copy(out, positional)
	for name, v := range named {
		idx := -1
		for i, n := range order {
			if n == name {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, runtimeErr(position.KindArityError, pos, "%s has no keyword argument %q", callee, name)
		}
		for len(out) <= idx {
			out = append(out, value.NoneValue)
		}
		out[idx] = v
	}
	return out, nil
}
