package exec

import (
	"github.com/xvandervort/graphoid-sub001/ast"
	"github.com/xvandervort/graphoid-sub001/env"
	"github.com/xvandervort/graphoid-sub001/errs"
	"github.com/xvandervort/graphoid-sub001/graph"
	"github.com/xvandervort/graphoid-sub001/position"
	"github.com/xvandervort/graphoid-sub001/value"
)

// execBlock runs a statement sequence in its own config-stack checkpoint
// (spec.md §5 "Scoped acquisition... pop-on-unwind") and returns the value
// of the final statement, the implicit-return shape a function body or
// module's top level yields (spec.md §4.7).
func (in *Interpreter) execBlock(stmts []ast.Stmt, fr *env.Frame) (value.Value, error) {
	depth := in.Config.Depth()
	defer in.Config.TruncateTo(depth)

	last := value.NoneValue
	for _, s := range stmts {
		v, err := in.execStmt(s, fr)
		if err != nil {
			return nil, err
		}
		last = v
	}
	return last, nil
}

// execStmt executes one statement, returning the value of the final
// expression for statement kinds that have one (bare expressions, and
// block-bearing constructs that delegate to execBlock), or none otherwise.
// A *signal error is how return/break/continue unwind to the construct
// that's allowed to catch them.
func (in *Interpreter) execStmt(s ast.Stmt, fr *env.Frame) (value.Value, error) {
	switch st := s.(type) {
	case *ast.ExprStmt:
		return in.evalExpr(st.X, fr)

	case *ast.AssignStmt:
		return value.NoneValue, in.execAssign(st, fr)

	case *ast.ReturnStmt:
		if st.Value == nil {
			return nil, &signal{kind: sigReturn, value: value.NoneValue}
		}
		v, err := in.evalExpr(st.Value, fr)
		if err != nil {
			return nil, err
		}
		return nil, &signal{kind: sigReturn, value: v}

	case *ast.BreakStmt:
		return nil, &signal{kind: sigBreak}

	case *ast.ContinueStmt:
		return nil, &signal{kind: sigContinue}

	case *ast.IfStmt:
		cond, err := in.evalExpr(st.Cond, fr)
		if err != nil {
			return nil, err
		}
		if cond.Truthy() {
			return in.execBlock(st.Then, fr.Child())
		}
		return in.execBlock(st.Else, fr.Child())

	case *ast.WhileStmt:
		return value.NoneValue, in.execWhile(st, fr)

	case *ast.ForStmt:
		return value.NoneValue, in.execFor(st, fr)

	case *ast.TryStmt:
		return value.NoneValue, in.execTry(st, fr)

	case *ast.ThrowStmt:
		return nil, in.execThrow(st, fr)

	case *ast.FnDef:
		fn := in.makeFunction(st, fr)
		fr.Declare(st.Name, fn)
		return value.NoneValue, nil

	case *ast.GraphDef:
		g, err := in.evalGraphLiteral(st.Literal, fr)
		if err != nil {
			return nil, err
		}
		fr.Set(st.Name, g)
		return value.NoneValue, nil

	case *ast.MethodDef:
		return value.NoneValue, in.execMethodDef(st, fr)

	case *ast.ConfigureStmt:
		return value.NoneValue, in.execConfigure(st, fr)

	case *ast.PrecisionStmt:
		return value.NoneValue, in.execPrecision(st, fr)

	case *ast.ImportStmt:
		return value.NoneValue, in.execImport(st, fr)

	default:
		return nil, runtimeErr(position.KindParseError, s.Pos(), "unhandled statement type %T", s)
	}
}

func (in *Interpreter) execWhile(st *ast.WhileStmt, fr *env.Frame) error {
	for {
		cond, err := in.evalExpr(st.Cond, fr)
		if err != nil {
			return err
		}
		if !cond.Truthy() {
			return nil
		}
		_, err = in.execBlock(st.Body, fr.Child())
		if err != nil {
			sig, ok := asSignal(err)
			if !ok {
				return err
			}
			switch sig.kind {
			case sigBreak:
				return nil
			case sigContinue:
				continue
			default: // sigReturn
				return err
			}
		}
	}
}

func (in *Interpreter) execFor(st *ast.ForStmt, fr *env.Frame) error {
	iterable, err := in.evalExpr(st.Iterable, fr)
	if err != nil {
		return err
	}
	items, err := iterationItems(iterable)
	if err != nil {
		return runtimeErr(position.KindTypeError, st.Pos(), "%s", err.Error())
	}
	for _, item := range items {
		child := fr.Child()
		child.Declare(st.Var, item)
		_, err := in.execBlock(st.Body, child)
		if err != nil {
			sig, ok := asSignal(err)
			if !ok {
				return err
			}
			switch sig.kind {
			case sigBreak:
				return nil
			case sigContinue:
				continue
			default:
				return err
			}
		}
	}
	return nil
}

// iterationItems produces the element sequence a `for` loop walks (spec.md
// §4.7 "for over a graph-backed list walks the next-chain in order; over a
// map yields keys in insertion order; over a list yields elements").
func iterationItems(v value.Value) ([]value.Value, error) {
	switch t := v.(type) {
	case *value.List:
		return append([]value.Value{}, t.Elements...), nil
	case *value.Map:
		out := make([]value.Value, 0, t.Len())
		for _, k := range t.Keys() {
			out = append(out, value.NewStr(k))
		}
		return out, nil
	case *graph.Graph:
		switch t.TypeTag {
		case "list":
			return append([]value.Value{}, t.ToList().Elements...), nil
		case "map":
			out := make([]value.Value, 0, t.NodeCount())
			for _, id := range t.Nodes() {
				out = append(out, value.NewStr(id))
			}
			return out, nil
		default:
			out := make([]value.Value, 0, t.NodeCount())
			for _, id := range t.Nodes() {
				out = append(out, value.NewStr(id))
			}
			return out, nil
		}
	default:
		return nil, errs.New(position.KindTypeError, "value of type %s is not iterable", v.Type())
	}
}

func (in *Interpreter) execTry(st *ast.TryStmt, fr *env.Frame) error {
	bodyErr := func() error {
		_, err := in.execBlock(st.Body, fr.Child())
		return err
	}()

	if bodyErr != nil {
		if _, ok := asSignal(bodyErr); ok {
			// return/break/continue are not catchable; finally still runs.
			return in.runFinally(st, fr, bodyErr)
		}
		ge, ok := bodyErr.(*errs.GraphoidError)
		if !ok {
			return in.runFinally(st, fr, bodyErr)
		}
		for _, c := range st.Catches {
			child := fr.Child()
			if c.Var != "" {
				child.Declare(c.Var, value.NewErrorValue(ge))
			}
			_, catchErr := in.execBlock(c.Body, child)
			return in.runFinally(st, fr, catchErr)
		}
		return in.runFinally(st, fr, bodyErr)
	}
	return in.runFinally(st, fr, nil)
}

// runFinally executes the finally block (if any) and combines its outcome
// with outcome per spec.md §5 "finally runs on every exit path": a finally
// block's own error/signal takes precedence over whatever was propagating,
// matching ordinary try/finally semantics.
func (in *Interpreter) runFinally(st *ast.TryStmt, fr *env.Frame, outcome error) error {
	if st.Finally == nil {
		return outcome
	}
	_, ferr := in.execBlock(st.Finally, fr.Child())
	if ferr != nil {
		return ferr
	}
	return outcome
}

func (in *Interpreter) execThrow(st *ast.ThrowStmt, fr *env.Frame) error {
	v, err := in.evalExpr(st.Value, fr)
	if err != nil {
		return err
	}
	if ev, ok := v.(value.ErrorValue); ok {
		return ev.Err
	}
	return errs.New(position.KindUserError, "%s", v.String()).WithPos(st.Pos())
}

func (in *Interpreter) execAssign(st *ast.AssignStmt, fr *env.Frame) error {
	v, err := in.evalExpr(st.Value, fr)
	if err != nil {
		return err
	}
	// Assignment always produces an independent clone of a compound value
	// (spec.md §3.5, Testable Property 5); scalars' Copy is a no-op.
	v = v.Copy()
	v = in.applyPrecision(v)

	switch st.Target.Kind {
	case ast.TargetIdentifier:
		fr.Set(st.Target.Name, v)
		return nil

	case ast.TargetIndex:
		obj, err := in.evalExpr(st.Target.Object, fr)
		if err != nil {
			return err
		}
		key, err := in.evalExpr(st.Target.Key, fr)
		if err != nil {
			return err
		}
		return in.assignIndex(st.Pos(), obj, key, v)

	case ast.TargetProperty:
		obj, err := in.evalExpr(st.Target.Object, fr)
		if err != nil {
			return err
		}
		return in.assignProperty(st.Pos(), obj, st.Target.Property, v)

	default:
		return runtimeErr(position.KindParseError, st.Pos(), "invalid assignment target")
	}
}

// applyPrecision truncates a numeric value toward zero and integer-flags it
// when the top-of-stack precision scope requests it (spec.md §3.4,
// Testable Property 9). Non-numeric values pass through unchanged (spec.md
// §8 "precision { :integer } applied to a string assignment leaves the
// string unchanged").
func (in *Interpreter) applyPrecision(v value.Value) value.Value {
	if !in.Config.IntegerMode() {
		return v
	}
	n, ok := v.(value.Number)
	if !ok {
		return v
	}
	return n.Truncated()
}

func (in *Interpreter) assignIndex(pos position.Position, obj, key, v value.Value) error {
	if _, ok := obj.(value.Frozen); ok {
		return value.ErrFrozenMutation("index assignment")
	}
	switch t := obj.(type) {
	case *value.List:
		idx, err := indexOf(key)
		if err != nil {
			return runtimeErr(position.KindTypeError, pos, "%s", err.Error())
		}
		if idx < 0 || idx >= len(t.Elements) {
			_, err := in.handleRecoverable(errs.New(position.KindIndexError, "index %d out of range", idx).WithPos(pos))
			return err
		}
		t.Elements[idx] = v
		return nil
	case *value.Map:
		t.Set(key.String(), v)
		return nil
	case *graph.Graph:
		if t.TypeTag == "list" {
			ids := graph.ListNodeOrder(t)
			idx, err := indexOf(key)
			if err != nil {
				return runtimeErr(position.KindTypeError, pos, "%s", err.Error())
			}
			if idx < 0 || idx >= len(ids) {
				_, err := in.handleRecoverable(errs.New(position.KindIndexError, "index %d out of range", idx).WithPos(pos))
				return err
			}
			return t.SetNodeValue(ids[idx], v)
		}
		return runtimeErr(position.KindTypeError, pos, "cannot index-assign a %q graph", t.TypeTag)
	default:
		return runtimeErr(position.KindTypeError, pos, "value of type %s does not support indexed assignment", obj.Type())
	}
}

func indexOf(key value.Value) (int, error) {
	n, ok := key.(value.Number)
	if !ok {
		return 0, errs.New(position.KindTypeError, "index must be numeric")
	}
	return int(n.Val), nil
}

// assignProperty implements `self.prop = expr` / `obj.prop = expr`: a
// setter method is invoked if the receiver graph defines one, otherwise
// the value is assigned to a data-layer node named prop (spec.md §4.7
// "Method dispatch").
func (in *Interpreter) assignProperty(pos position.Position, obj value.Value, name string, v value.Value) error {
	if _, ok := obj.(value.Frozen); ok {
		return value.ErrFrozenMutation("property assignment")
	}
	g, ok := obj.(*graph.Graph)
	if !ok {
		return runtimeErr(position.KindTypeError, pos, "cannot set property %q on a %s", name, obj.Type())
	}
	if m, err := g.ResolveOwnOrPrivate(name+"=", g, []value.Value{v}); err == nil {
		_, err := m.Body(g, []value.Value{v})
		return err
	}
	if g.HasNode(name) {
		return g.SetNodeValue(name, v)
	}
	_, err := g.AddNode(name, v, "")
	return err
}
