package exec

import (
	"github.com/xvandervort/graphoid-sub001/ast"
	"github.com/xvandervort/graphoid-sub001/env"
	"github.com/xvandervort/graphoid-sub001/graph"
	"github.com/xvandervort/graphoid-sub001/position"
	"github.com/xvandervort/graphoid-sub001/value"
)

// evalGraphLiteral builds a *graph.Graph from `graph {...}` / `graph from
// Parent {...}` / `tree{...}` (spec.md §4.8 "Graph literals"). Parent, when
// present, is deep-cloned via graph.From so the new graph inherits its data
// and method layers without aliasing it. Entries are applied in source
// order: rule/behavior/ruleset invocations configure the graph, `fn` entries
// attach method-layer clauses, and `key: value` entries become data nodes.
func (in *Interpreter) evalGraphLiteral(gl *ast.GraphLiteral, fr *env.Frame) (*graph.Graph, error) {
	var g *graph.Graph
	if gl.Parent != nil {
		pv, err := in.evalExpr(gl.Parent, fr)
		if err != nil {
			return nil, err
		}
		parent, ok := pv.(*graph.Graph)
		if !ok {
			return nil, runtimeErr(position.KindTypeError, gl.Pos(), "graph from requires a graph parent")
		}
		g = graph.From(parent, gl.TypeTag)
	} else {
		g = graph.New(gl.TypeTag)
	}

	for _, entry := range gl.Entries {
		switch entry.Kind {
		case ast.GraphEntryInvoke:
			if err := in.applyGraphInvoke(g, entry.Invoke, fr); err != nil {
				return nil, err
			}
		case ast.GraphEntryMethod:
			if err := in.defineGraphMethod(g, entry.Method, fr); err != nil {
				return nil, err
			}
		case ast.GraphEntryData:
			v, err := in.evalExpr(entry.DataValue, fr)
			if err != nil {
				return nil, err
			}
			if _, err := g.AddNode(entry.DataKey, v, ""); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}

// applyGraphInvoke handles one rule/behavior/ruleset configuration call
// inside a graph literal's braces (spec.md §4.4 "Rules", "Behaviors").
func (in *Interpreter) applyGraphInvoke(g *graph.Graph, call *ast.Call, fr *env.Frame) error {
	ident, ok := call.Callee.(*ast.Identifier)
	if !ok {
		return runtimeErr(position.KindParseError, call.Pos(), "graph literal entries must invoke a named rule/behavior/ruleset function")
	}
	args, err := in.evalArgList(ident.Name, call.Args, fr, call.Pos())
	if err != nil {
		return err
	}

	if ident.Name == "include" {
		if len(args) == 0 {
			return runtimeErr(position.KindArityError, call.Pos(), "include requires a graph argument")
		}
		mixin, ok := args[0].(*graph.Graph)
		if !ok {
			return runtimeErr(position.KindTypeError, call.Pos(), "include requires a graph argument")
		}
		g.Include(mixin)
		return nil
	}

	if isPromotionTrigger(ident.Name) {
		return in.applyGraphConfig(g, ident.Name, args, call.Pos())
	}
	return runtimeErr(position.KindNameError, call.Pos(), "unknown graph literal entry %q", ident.Name)
}

func symbolOrString(v value.Value) string {
	if sym, ok := v.(value.Symbol); ok {
		return sym.Name
	}
	return v.String()
}

// buildRule resolves a named built-in rule or wraps a user predicate
// function as a graph.UserRule (spec.md §4.4 "add_rule").
func (in *Interpreter) buildRule(args []value.Value, pos position.Position) (graph.Rule, error) {
	if fn, ok := args[0].(*value.Function); ok {
		name := fn.Name
		if name == "" {
			name = "user_rule"
		}
		return graph.UserRule(name, func(candidate *graph.Graph) (bool, error) {
			r, err := fn.Call([]value.Value{candidate})
			if err != nil {
				return false, err
			}
			return r.Truthy(), nil
		}), nil
	}

	name := symbolOrString(args[0])
	switch name {
	case "no_cycles":
		return graph.NoCycles(), nil
	case "single_root":
		return graph.SingleRoot(), nil
	case "no_orphans":
		return graph.NoOrphans(), nil
	case "unique_values":
		return graph.UniqueValues(), nil
	case "acyclic_if_directed":
		return graph.AcyclicIfDirected(), nil
	case "connected":
		return graph.Connected(), nil
	case "weighted_edges":
		return graph.WeightedEdges(), nil
	case "unweighted_edges":
		return graph.UnweightedEdges(), nil
	case "tree_shape":
		return graph.TreeShape(), nil
	case "binary_tree_shape":
		return graph.BinaryTreeShape(), nil
	case "bst_ordering":
		return graph.BSTOrdering(), nil
	case "max_children":
		n, err := argNum(args, 1)
		if err != nil {
			return nil, runtimeErr(position.KindTypeError, pos, "%s", err.Error())
		}
		return graph.MaxChildren(int(n.Val)), nil
	case "min_children":
		n, err := argNum(args, 1)
		if err != nil {
			return nil, runtimeErr(position.KindTypeError, pos, "%s", err.Error())
		}
		return graph.MinChildren(int(n.Val)), nil
	default:
		return nil, runtimeErr(position.KindNameError, pos, "unknown rule %q", name)
	}
}

// buildBehavior resolves a named built-in behavior or wraps a user function
// as a graph.MapVia behavior (spec.md §4.4 "add_behavior").
func (in *Interpreter) buildBehavior(args []value.Value, pos position.Position) (graph.Behavior, error) {
	if fn, ok := args[0].(*value.Function); ok {
		return graph.MapVia(func(v value.Value) (value.Value, error) {
			return fn.Call([]value.Value{v})
		}), nil
	}

	name := symbolOrString(args[0])
	switch name {
	case "none_to_zero":
		return graph.NoneToZero(), nil
	case "none_to_empty":
		return graph.NoneToEmpty(), nil
	case "uppercase":
		return graph.Uppercase(), nil
	case "lowercase":
		return graph.Lowercase(), nil
	case "round_to_int":
		return graph.RoundToInt(), nil
	case "positive":
		return graph.Positive(), nil
	case "validate_range":
		lo, err := argNum(args, 1)
		if err != nil {
			return nil, runtimeErr(position.KindTypeError, pos, "%s", err.Error())
		}
		hi, err := argNum(args, 2)
		if err != nil {
			return nil, runtimeErr(position.KindTypeError, pos, "%s", err.Error())
		}
		return graph.ValidateRange(lo.Val, hi.Val), nil
	default:
		return nil, runtimeErr(position.KindNameError, pos, "unknown behavior %q", name)
	}
}

// defineGraphMethod builds a *graph.Method from an `fn name(...) {...}`
// entry inside a graph literal's braces and attaches it to g.
func (in *Interpreter) defineGraphMethod(g *graph.Graph, md *ast.MethodDef, defFrame *env.Frame) error {
	g.DefineMethod(in.buildMethod(md, defFrame))
	return nil
}

// execMethodDef handles the top-level `fn Owner.name(...) {...}` form
// (spec.md §4.7 "reopening a graph to add methods"): Owner must already be
// bound to a class-like graph in scope.
func (in *Interpreter) execMethodDef(md *ast.MethodDef, fr *env.Frame) error {
	v, err := fr.MustGet(md.Owner)
	if err != nil {
		return err
	}
	g, ok := v.(*graph.Graph)
	if !ok {
		return runtimeErr(position.KindTypeError, md.Pos(), "%s is not a graph, cannot define a method on it", md.Owner)
	}
	g.DefineMethod(in.buildMethod(md, fr))
	return nil
}

// buildMethod closes over defFrame to build the Guard/Body callbacks
// graph.Method needs, binding `self` to the receiving instance for every
// invocation (spec.md §4.7 "self is bound per call, not per definition").
func (in *Interpreter) buildMethod(md *ast.MethodDef, defFrame *env.Frame) *graph.Method {
	m := &graph.Method{Name: md.Name, IsGetter: md.IsGetter, IsSetter: md.IsSetter}
	if md.Guard != nil {
		m.Guard = func(self *graph.Graph, args []value.Value) (bool, error) {
			child := defFrame.Child()
			child.Declare("self", self)
			for i, p := range md.Params {
				if i < len(args) {
					child.Declare(p, args[i])
				}
			}
			v, err := in.evalExpr(md.Guard, child)
			if err != nil {
				return false, err
			}
			return v.Truthy(), nil
		}
	}
	m.Body = func(self *graph.Graph, args []value.Value) (value.Value, error) {
		child := defFrame.Child()
		child.Declare("self", self)
		for i, p := range md.Params {
			if i < len(args) {
				child.Declare(p, args[i].Copy())
			}
		}
		v, err := in.execBlock(md.Body, child)
		if err != nil {
			if sig, ok := asSignal(err); ok && sig.kind == sigReturn {
				return sig.value, nil
			}
			return nil, err
		}
		return v, nil
	}
	return m
}
