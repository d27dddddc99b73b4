package exec

import (
	"sort"

	"github.com/xvandervort/graphoid-sub001/ast"
	"github.com/xvandervort/graphoid-sub001/env"
	"github.com/xvandervort/graphoid-sub001/errs"
	"github.com/xvandervort/graphoid-sub001/graph"
	"github.com/xvandervort/graphoid-sub001/position"
	"github.com/xvandervort/graphoid-sub001/value"
)

// evalMethodCall dispatches `receiver.name(args)` / `receiver.name!(args)` in
// the three-tier order of spec.md §4.5 "Method dispatch": a container's own
// intrinsic methods first, then the user-defined method layer on a
// class-like graph, and finally module-level function sugar (UFCS: `x.f(a)`
// falls back to `f(x, a)` when f is an ordinary function in scope).
func (in *Interpreter) evalMethodCall(x *ast.MethodCall, fr *env.Frame) (value.Value, error) {
	recv, err := in.evalExpr(x.Receiver, fr)
	if err != nil {
		return nil, err
	}

	// `.where`/`.return` on a graph.match(...) chain take expressions that
	// reference pattern variables bound per result row (spec.md §4.10), so
	// their arguments must stay unevaluated here rather than go through the
	// ordinary eager argument evaluation below.
	if mr, ok := recv.(*graph.MatchResults); ok {
		return in.matchResultsMethod(x, mr, fr)
	}

	args, err := in.evalArgList(x.Name, x.Args, fr, x.Pos())
	if err != nil {
		return nil, err
	}

	if fz, ok := recv.(value.Frozen); ok {
		if x.Bang {
			return nil, value.ErrFrozenMutation(x.Name)
		}
		recv = fz.Inner
	}

	if v, handled, err := in.intrinsicMethod(x, recv, args, fr); handled {
		return v, err
	}

	if g, ok := recv.(*graph.Graph); ok {
		if m, merr := g.ResolveMethod(x.Name, g, args); merr == nil {
			return m.Body(g, args)
		}
	}

	if fn, ok := fr.Get(x.Name); ok {
		return in.invokeFunction(fn, x.Name, prependReceiver(x.Args, x.Receiver), fr, x.Pos())
	}

	return nil, runtimeErr(position.KindNameError, x.Pos(), "no method %q on value of type %s", x.Name, recv.Type())
}

// prependReceiver rebuilds an argument-expr list with the receiver expr
// spliced in front, so invokeFunction can re-evaluate everything uniformly
// for the UFCS fallback path (the receiver is evaluated twice in that rare
// path, which is harmless since graph/collection receivers have no
// observable side effects on read).
func prependReceiver(argExprs []ast.Expr, receiver ast.Expr) []ast.Expr {
	out := make([]ast.Expr, 0, len(argExprs)+1)
	out = append(out, receiver)
	out = append(out, argExprs...)
	return out
}

// intrinsicMethod tries receiver's own collection/graph surface. handled is
// false when name isn't one of the known intrinsics, letting the caller fall
// through to the next dispatch tier.
func (in *Interpreter) intrinsicMethod(x *ast.MethodCall, recv value.Value, args []value.Value, fr *env.Frame) (value.Value, bool, error) {
	pos := x.Pos()
	if isPromotionTrigger(x.Name) {
		switch t := recv.(type) {
		case *value.List:
			return in.promoteAndConfigure(x, graph.PromoteList(t), args, fr, pos)
		case *value.Map:
			return in.promoteAndConfigure(x, graph.PromoteMap(t), args, fr, pos)
		}
	}
	switch t := recv.(type) {
	case *value.List:
		return in.listMethod(x.Name, x.Bang, t, args, pos)
	case *value.Map:
		return in.mapMethod(x.Name, x.Bang, t, args, pos)
	case *graph.Graph:
		switch t.TypeTag {
		case "list":
			if v, handled, err := in.graphListMethod(x.Name, x.Bang, t, args, pos); handled {
				return v, true, err
			}
		case "map":
			if v, handled, err := in.graphMapMethod(x.Name, x.Bang, t, args, pos); handled {
				return v, true, err
			}
		}
		return in.graphMethod(x.Name, t, args, pos)
	}
	return nil, false, nil
}

func argNum(args []value.Value, i int) (value.Number, error) {
	if i >= len(args) {
		return value.Number{}, errs.New(position.KindArityError, "missing argument %d", i)
	}
	n, ok := args[i].(value.Number)
	if !ok {
		return value.Number{}, errs.New(position.KindTypeError, "argument %d must be numeric", i)
	}
	return n, nil
}

func argStr(args []value.Value, i int) (string, error) {
	if i >= len(args) {
		return "", errs.New(position.KindArityError, "missing argument %d", i)
	}
	return args[i].String(), nil
}

func argFn(args []value.Value, i int) (*value.Function, error) {
	if i >= len(args) {
		return nil, errs.New(position.KindArityError, "missing argument %d", i)
	}
	fn, ok := args[i].(*value.Function)
	if !ok {
		return nil, errs.New(position.KindTypeError, "argument %d must be a function", i)
	}
	return fn, nil
}

// optStr reads a string argument at i, treating a missing slot or an
// explicit None (the padding evalArgList inserts for a skipped keyword
// argument) as "" rather than the literal rendering of None.
func optStr(args []value.Value, i int) string {
	if i >= len(args) {
		return ""
	}
	s, ok := args[i].(value.Str)
	if !ok {
		return ""
	}
	return s.Val
}

// optBool is optStr's counterpart for a trailing boolean flag such as
// `weighted`.
func optBool(args []value.Value, i int) bool {
	if i >= len(args) {
		return false
	}
	return args[i].Truthy()
}

// defaultLess orders elements for `sort`/`sort!` when the caller supplies
// no comparator: numeric by value, string lexicographically, and falling
// back to rendered-string order for mixed/other kinds so sort never panics
// on a heterogeneous list (spec.md §8 "Boundary behaviors").
func defaultLess(a, b value.Value) bool {
	if an, ok := a.(value.Number); ok {
		if bn, ok := b.(value.Number); ok {
			return an.Val < bn.Val
		}
	}
	if as, ok := a.(value.Str); ok {
		if bs, ok := b.(value.Str); ok {
			return as.Val < bs.Val
		}
	}
	return a.String() < b.String()
}

func (in *Interpreter) listMethod(name string, bang bool, l *value.List, args []value.Value, pos position.Position) (value.Value, bool, error) {
	switch name {
	case "append":
		if bang {
			return l.AppendBang(args[0].Copy()), true, nil
		}
		return l.Append(args[0].Copy()), true, nil

	case "sort":
		less := defaultLess
		if len(args) > 0 {
			fn, err := argFn(args, 0)
			if err != nil {
				return nil, true, runtimeErr(position.KindTypeError, pos, "%s", err.Error())
			}
			less = func(a, b value.Value) bool {
				r, _ := fn.Call([]value.Value{a, b})
				return r != nil && r.Truthy()
			}
		}
		if bang {
			return l.SortBang(less), true, nil
		}
		return l.Sort(less), true, nil

	case "reverse":
		if bang {
			return l.ReverseBang(), true, nil
		}
		return l.Reverse(), true, nil

	case "filter":
		fn, err := argFn(args, 0)
		if err != nil {
			return nil, true, runtimeErr(position.KindTypeError, pos, "%s", err.Error())
		}
		keep := func(v value.Value) bool {
			r, _ := fn.Call([]value.Value{v})
			return r != nil && r.Truthy()
		}
		if bang {
			return l.FilterBang(keep), true, nil
		}
		return l.Filter(keep), true, nil

	case "map":
		fn, err := argFn(args, 0)
		if err != nil {
			return nil, true, runtimeErr(position.KindTypeError, pos, "%s", err.Error())
		}
		apply := func(v value.Value) (value.Value, error) { return fn.Call([]value.Value{v}) }
		var out *value.List
		if bang {
			out, err = l.MapValuesBang(apply)
		} else {
			out, err = l.MapValues(apply)
		}
		if err != nil {
			return nil, true, err
		}
		return out, true, nil

	case "merge":
		other, ok := args[0].(*value.List)
		if !ok {
			return nil, true, runtimeErr(position.KindTypeError, pos, "merge requires a list argument")
		}
		if bang {
			return l.MergeBang(other), true, nil
		}
		return l.Merge(other), true, nil

	case "remove":
		policy := value.RemoveFirst
		if len(args) > 1 {
			if sym, ok := args[1].(value.Symbol); ok && sym.Name == "all" {
				policy = value.RemoveAll
			}
		}
		if bang {
			return l.RemoveBang(args[0], policy), true, nil
		}
		return l.Remove(args[0], policy), true, nil

	case "get":
		n, err := argNum(args, 0)
		if err != nil {
			return nil, true, runtimeErr(position.KindTypeError, pos, "%s", err.Error())
		}
		v, gerr := l.Get(int(n.Val))
		if gerr != nil {
			v2, err2 := in.handleRecoverable(gerr.(*errs.GraphoidError).WithPos(pos))
			return v2, true, err2
		}
		return v, true, nil

	case "len", "size":
		return value.NewInt(float64(l.Len())), true, nil

	default:
		return nil, false, nil
	}
}

func (in *Interpreter) mapMethod(name string, bang bool, m *value.Map, args []value.Value, pos position.Position) (value.Value, bool, error) {
	switch name {
	case "transform":
		fn, err := argFn(args, 0)
		if err != nil {
			return nil, true, runtimeErr(position.KindTypeError, pos, "%s", err.Error())
		}
		apply := func(v value.Value) (value.Value, error) { return fn.Call([]value.Value{v}) }
		var out *value.Map
		if bang {
			out, err = m.TransformValuesBang(apply)
		} else {
			out, err = m.TransformValues(apply)
		}
		if err != nil {
			return nil, true, err
		}
		return out, true, nil

	case "merge":
		other, ok := args[0].(*value.Map)
		if !ok {
			return nil, true, runtimeErr(position.KindTypeError, pos, "merge requires a map argument")
		}
		if bang {
			return m.MergeBang(other), true, nil
		}
		return m.Merge(other), true, nil

	case "get":
		key, err := argStr(args, 0)
		if err != nil {
			return nil, true, runtimeErr(position.KindTypeError, pos, "%s", err.Error())
		}
		v, gerr := m.Get(key)
		if gerr != nil {
			v2, err2 := in.handleRecoverable(gerr.(*errs.GraphoidError).WithPos(pos))
			return v2, true, err2
		}
		return v, true, nil

	case "set":
		key, err := argStr(args, 0)
		if err != nil {
			return nil, true, runtimeErr(position.KindTypeError, pos, "%s", err.Error())
		}
		m.Set(key, args[1].Copy())
		return value.NoneValue, true, nil

	case "delete":
		key, err := argStr(args, 0)
		if err != nil {
			return nil, true, runtimeErr(position.KindTypeError, pos, "%s", err.Error())
		}
		m.Delete(key)
		return value.NoneValue, true, nil

	case "has":
		key, err := argStr(args, 0)
		if err != nil {
			return nil, true, runtimeErr(position.KindTypeError, pos, "%s", err.Error())
		}
		return value.NewBool(m.Has(key)), true, nil

	case "keys":
		keys := m.Keys()
		out := make([]value.Value, len(keys))
		for i, k := range keys {
			out[i] = value.NewStr(k)
		}
		return value.NewList(out), true, nil

	case "len", "size":
		return value.NewInt(float64(m.Len())), true, nil

	default:
		return nil, false, nil
	}
}

// graphListMethod implements the List-shaped surface for a promoted
// "list"-tagged graph directly against its node chain, via SetNodeValue for
// reorder/transform ops and AddNode/AddEdge/RemoveNode(Reconnect) for
// length-changing ops, instead of a ToList/PromoteList round trip (keeps
// every mutation going through the same snapshot/commit/Ruleset.Validate
// path as the rest of the graph API).
func (in *Interpreter) graphListMethod(name string, bang bool, g *graph.Graph, args []value.Value, pos position.Position) (value.Value, bool, error) {
	switch name {
	case "append":
		ids := graph.ListNodeOrder(g)
		id, err := g.AddNode("", args[0].Copy(), "")
		if err != nil {
			return nil, true, err
		}
		if len(ids) > 0 {
			if err := g.AddEdge(ids[len(ids)-1], id, "next", nil, graph.Directed, nil); err != nil {
				return nil, true, err
			}
		}
		if bang {
			return g, true, nil
		}
		return g.Copy(), true, nil

	case "get":
		n, err := argNum(args, 0)
		if err != nil {
			return nil, true, runtimeErr(position.KindTypeError, pos, "%s", err.Error())
		}
		ids := graph.ListNodeOrder(g)
		idx := int(n.Val)
		if idx < 0 || idx >= len(ids) {
			v, e := in.handleRecoverable(errs.New(position.KindIndexError, "index %d out of range", idx).WithPos(pos))
			return v, true, e
		}
		node, _ := g.GetNode(ids[idx])
		return node.Value, true, nil

	case "sort", "reverse", "filter", "map":
		return in.graphListReorder(name, bang, g, args, pos)

	case "len", "size":
		return value.NewInt(float64(g.NodeCount())), true, nil

	default:
		return nil, false, nil
	}
}

// graphListReorder handles the value-rewrite-in-place operations that don't
// change the "next" chain's topology (sort, reverse, map), plus filter,
// which does change the node set and is implemented via RemoveNode.
func (in *Interpreter) graphListReorder(name string, bang bool, g *graph.Graph, args []value.Value, pos position.Position) (value.Value, bool, error) {
	target := g
	if !bang {
		target = g.Copy().(*graph.Graph)
	}
	ids := graph.ListNodeOrder(target)
	elems := make([]value.Value, len(ids))
	for i, id := range ids {
		n, _ := target.GetNode(id)
		elems[i] = n.Value
	}

	switch name {
	case "sort":
		less := defaultLess
		if len(args) > 0 {
			fn, err := argFn(args, 0)
			if err != nil {
				return nil, true, runtimeErr(position.KindTypeError, pos, "%s", err.Error())
			}
			less = func(a, b value.Value) bool {
				r, _ := fn.Call([]value.Value{a, b})
				return r != nil && r.Truthy()
			}
		}
		sort.SliceStable(elems, func(i, j int) bool { return less(elems[i], elems[j]) })
	case "reverse":
		for i, j := 0, len(elems)-1; i < j; i, j = i+1, j-1 {
			elems[i], elems[j] = elems[j], elems[i]
		}
	case "map":
		fn, err := argFn(args, 0)
		if err != nil {
			return nil, true, runtimeErr(position.KindTypeError, pos, "%s", err.Error())
		}
		for i, e := range elems {
			v, err := fn.Call([]value.Value{e})
			if err != nil {
				return nil, true, err
			}
			elems[i] = v
		}
	case "filter":
		fn, err := argFn(args, 0)
		if err != nil {
			return nil, true, runtimeErr(position.KindTypeError, pos, "%s", err.Error())
		}
		var kept []string
		var keptVals []value.Value
		for i, e := range elems {
			r, err := fn.Call([]value.Value{e})
			if err != nil {
				return nil, true, err
			}
			if r != nil && r.Truthy() {
				kept = append(kept, ids[i])
				keptVals = append(keptVals, e)
			}
		}
		drop := map[string]bool{}
		for _, id := range ids {
			drop[id] = true
		}
		for _, id := range kept {
			delete(drop, id)
		}
		for id := range drop {
			if err := target.RemoveNode(id, graph.Reconnect); err != nil {
				return nil, true, err
			}
		}
		return target, true, nil
	}

	for i, id := range ids {
		if err := target.SetNodeValue(id, elems[i]); err != nil {
			return nil, true, err
		}
	}
	return target, true, nil
}

func (in *Interpreter) graphMapMethod(name string, bang bool, g *graph.Graph, args []value.Value, pos position.Position) (value.Value, bool, error) {
	switch name {
	case "get":
		key, err := argStr(args, 0)
		if err != nil {
			return nil, true, runtimeErr(position.KindTypeError, pos, "%s", err.Error())
		}
		n, ok := g.GetNode(key)
		if !ok {
			v, e := in.handleRecoverable(errs.New(position.KindKeyError, "no such key %q", key).WithPos(pos))
			return v, true, e
		}
		return n.Value, true, nil

	case "set":
		key, err := argStr(args, 0)
		if err != nil {
			return nil, true, runtimeErr(position.KindTypeError, pos, "%s", err.Error())
		}
		if g.HasNode(key) {
			return value.NoneValue, true, g.SetNodeValue(key, args[1].Copy())
		}
		_, aerr := g.AddNode(key, args[1].Copy(), "key")
		return value.NoneValue, true, aerr

	case "has":
		key, err := argStr(args, 0)
		if err != nil {
			return nil, true, runtimeErr(position.KindTypeError, pos, "%s", err.Error())
		}
		return value.NewBool(g.HasNode(key)), true, nil

	case "delete":
		key, err := argStr(args, 0)
		if err != nil {
			return nil, true, runtimeErr(position.KindTypeError, pos, "%s", err.Error())
		}
		return value.NoneValue, true, g.RemoveNode(key, graph.AllowOrphans)

	case "keys":
		ids := g.Nodes()
		out := make([]value.Value, len(ids))
		for i, id := range ids {
			out[i] = value.NewStr(id)
		}
		return value.NewList(out), true, nil

	case "len", "size":
		return value.NewInt(float64(g.NodeCount())), true, nil

	default:
		return nil, false, nil
	}
}

// graphMethod implements the general graph-structure surface (spec.md §4.4
// "Direct mutation/query", "Pathfinding", "Subgraph operations") shared by
// every TypeTag.
func (in *Interpreter) graphMethod(name string, g *graph.Graph, args []value.Value, pos position.Position) (value.Value, bool, error) {
	if isPromotionTrigger(name) {
		if err := in.applyGraphConfig(g, name, args, pos); err != nil {
			return nil, true, err
		}
		return g, true, nil
	}
	switch name {
	case "add_node":
		id := ""
		if len(args) > 0 {
			id = args[0].String()
		}
		var val value.Value = value.NoneValue
		if len(args) > 1 {
			val = args[1]
		}
		typ := ""
		if len(args) > 2 {
			typ = args[2].String()
		}
		newID, err := g.AddNode(id, val, typ)
		if err != nil {
			return nil, true, err
		}
		return value.NewStr(newID), true, nil

	case "remove_node":
		return value.NoneValue, true, g.RemoveNode(args[0].String(), graph.RejectIfOrphans)

	case "add_edge":
		from, to := args[0].String(), args[1].String()
		typ := ""
		if len(args) > 2 {
			typ = args[2].String()
		}
		var w *float64
		if len(args) > 3 {
			if n, ok := args[3].(value.Number); ok {
				wv := n.Val
				w = &wv
			}
		}
		return value.NoneValue, true, g.AddEdge(from, to, typ, w, graph.Directed, nil)

	case "remove_edge":
		typ := ""
		if len(args) > 2 {
			typ = args[2].String()
		}
		return value.NoneValue, true, g.RemoveEdge(args[0].String(), args[1].String(), typ)

	case "set_weight":
		typ := ""
		if len(args) > 3 {
			typ = args[3].String()
		}
		n, err := argNum(args, 2)
		if err != nil {
			return nil, true, runtimeErr(position.KindTypeError, pos, "%s", err.Error())
		}
		return value.NoneValue, true, g.SetEdgeWeight(args[0].String(), args[1].String(), typ, n.Val)

	case "unset_weight":
		typ := ""
		if len(args) > 2 {
			typ = args[2].String()
		}
		return value.NoneValue, true, g.RemoveEdgeWeight(args[0].String(), args[1].String(), typ)

	case "has_node":
		return value.NewBool(g.HasNode(args[0].String())), true, nil

	case "has_edge":
		typ := ""
		if len(args) > 2 {
			typ = args[2].String()
		}
		return value.NewBool(g.HasEdge(args[0].String(), args[1].String(), typ)), true, nil

	case "neighbors", "predecessors", "successors":
		id := args[0].String()
		edgeType := ""
		if len(args) > 1 {
			edgeType = args[1].String()
		}
		var ids []string
		switch name {
		case "neighbors":
			ids = g.Neighbors(id, "", edgeType)
		case "predecessors":
			ids = g.Predecessors(id, edgeType)
		default:
			ids = g.Successors(id, edgeType)
		}
		return stringList(ids), true, nil

	case "degree", "in_degree", "out_degree":
		id := args[0].String()
		edgeType := ""
		if len(args) > 1 {
			edgeType = args[1].String()
		}
		var n int
		switch name {
		case "degree":
			n = g.Degree(id, edgeType)
		case "in_degree":
			n = g.InDegree(id, edgeType)
		default:
			n = g.OutDegree(id, edgeType)
		}
		return value.NewInt(float64(n)), true, nil

	case "nodes":
		return stringList(g.Nodes()), true, nil

	case "node_count":
		return value.NewInt(float64(g.NodeCount())), true, nil

	case "edge_count":
		return value.NewInt(float64(g.EdgeCount())), true, nil

	case "shortest_path":
		edgeType := optStr(args, 2)
		weighted := optBool(args, 3)
		res, err := g.ShortestPath(args[0].String(), args[1].String(), edgeType, weighted)
		if err != nil {
			v, e := in.handleRecoverable(toGraphoidErr(err, pos))
			return v, true, e
		}
		return stringList(res.Nodes), true, nil

	case "distance":
		edgeType := optStr(args, 2)
		weighted := optBool(args, 3)
		d, err := g.Distance(args[0].String(), args[1].String(), edgeType, weighted)
		if err != nil {
			v, e := in.handleRecoverable(toGraphoidErr(err, pos))
			return v, true, e
		}
		return value.NewNumber(d), true, nil

	case "has_path":
		edgeType := optStr(args, 2)
		return value.NewBool(g.HasPath(args[0].String(), args[1].String(), edgeType)), true, nil

	case "find_path":
		edgeType := optStr(args, 2)
		res, err := g.FindPath(args[0].String(), args[1].String(), edgeType)
		if err != nil {
			v, e := in.handleRecoverable(toGraphoidErr(err, pos))
			return v, true, e
		}
		return stringList(res.Nodes), true, nil

	case "match":
		patterns := make([]value.Pattern, len(args))
		for i, a := range args {
			p, ok := a.(value.Pattern)
			if !ok {
				return nil, true, runtimeErr(position.KindTypeError, pos, "graph.match requires node/edge/path pattern arguments")
			}
			patterns[i] = p
		}
		return g.Match(patterns), true, nil

	case "connected_components":
		comps := g.ConnectedComponents()
		out := make([]value.Value, len(comps))
		for i, c := range comps {
			out[i] = stringList(c)
		}
		return value.NewList(out), true, nil

	case "extract":
		ids := make([]string, len(args))
		for i, a := range args {
			ids[i] = a.String()
		}
		sub, err := g.Extract(ids)
		if err != nil {
			return nil, true, err
		}
		return sub, true, nil

	case "insert_subgraph":
		other, ok := args[0].(*graph.Graph)
		if !ok {
			return nil, true, runtimeErr(position.KindTypeError, pos, "insert_subgraph requires a graph argument")
		}
		mapping, err := g.InsertSubgraph(other)
		if err != nil {
			return nil, true, err
		}
		m := value.NewMap()
		for k, v := range mapping {
			m.Set(k, value.NewStr(v))
		}
		return m, true, nil

	case "find_orphans":
		return stringList(g.FindOrphans()), true, nil

	case "delete_orphans":
		return value.NoneValue, true, g.DeleteOrphansOp()

	case "reconnect_orphans":
		typ := ""
		if len(args) > 1 {
			typ = args[1].String()
		}
		return value.NoneValue, true, g.ReconnectOrphans(args[0].String(), typ)

	case "is_a":
		return value.NewBool(g.IsA(args[0].String())), true, nil

	case "responds_to":
		return value.NewBool(g.RespondsTo(args[0].String())), true, nil

	case "include":
		mixin, ok := args[0].(*graph.Graph)
		if !ok {
			return nil, true, runtimeErr(position.KindTypeError, pos, "include requires a graph argument")
		}
		g.Include(mixin)
		return value.NoneValue, true, nil

	default:
		return nil, false, nil
	}
}

func stringList(ids []string) *value.List {
	out := make([]value.Value, len(ids))
	for i, id := range ids {
		out[i] = value.NewStr(id)
	}
	return value.NewList(out)
}

func toGraphoidErr(err error, pos position.Position) *errs.GraphoidError {
	if ge, ok := err.(*errs.GraphoidError); ok {
		return ge
	}
	return errs.New(position.KindInvalidArgument, "%s", err.Error()).WithPos(pos)
}
