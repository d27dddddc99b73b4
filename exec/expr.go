package exec

import (
	"math"

	"github.com/xvandervort/graphoid-sub001/ast"
	"github.com/xvandervort/graphoid-sub001/env"
	"github.com/xvandervort/graphoid-sub001/errs"
	"github.com/xvandervort/graphoid-sub001/graph"
	"github.com/xvandervort/graphoid-sub001/position"
	"github.com/xvandervort/graphoid-sub001/value"
)

// evalExpr evaluates e against fr, the single dispatch point every other
// eval/exec function in this package routes through for sub-expressions.
func (in *Interpreter) evalExpr(e ast.Expr, fr *env.Frame) (value.Value, error) {
	switch x := e.(type) {
	case *ast.NumberLit:
		if x.IntegerFlagged {
			return value.NewInt(x.Value), nil
		}
		return value.NewNumber(x.Value), nil

	case *ast.StringLit:
		return value.NewStr(x.Value), nil

	case *ast.BoolLit:
		return value.NewBool(x.Value), nil

	case *ast.NoneLit:
		return value.NoneValue, nil

	case *ast.SymbolLit:
		return value.NewSymbol(x.Name), nil

	case *ast.Identifier:
		v, err := fr.MustGet(x.Name)
		if err != nil {
			return nil, err.(*errs.GraphoidError).WithPos(x.Pos())
		}
		return v, nil

	case *ast.Self:
		v, err := fr.MustGet("self")
		if err != nil {
			return nil, err.(*errs.GraphoidError).WithPos(x.Pos())
		}
		return v, nil

	case *ast.Unary:
		return in.evalUnary(x, fr)

	case *ast.Binary:
		return in.evalBinary(x, fr)

	case *ast.Index:
		return in.evalIndex(x, fr)

	case *ast.Property:
		return in.evalProperty(x, fr)

	case *ast.Call:
		return in.evalCall(x, fr)

	case *ast.MethodCall:
		return in.evalMethodCall(x, fr)

	case *ast.ListLiteral:
		return in.evalListLiteral(x, fr)

	case *ast.MapLiteral:
		return in.evalMapLiteral(x, fr)

	case *ast.GraphLiteral:
		g, err := in.evalGraphLiteral(x, fr)
		if err != nil {
			return nil, err
		}
		return g, nil

	case *ast.Lambda:
		return in.makeLambda(x, fr), nil

	case *ast.PatternFn:
		return in.makePatternFn(x.Clauses, fr), nil

	case *ast.Match:
		scrutinee, err := in.evalExpr(x.Scrutinee, fr)
		if err != nil {
			return nil, err
		}
		return in.runMatchClauses(x.Clauses, scrutinee, fr, x.Pos())

	case *ast.Super:
		return in.evalSuper(x, fr)

	case *ast.InlineIf:
		return in.evalInlineIf(x, fr)

	default:
		return nil, runtimeErr(position.KindParseError, e.Pos(), "unhandled expression type %T", e)
	}
}

func (in *Interpreter) evalUnary(x *ast.Unary, fr *env.Frame) (value.Value, error) {
	v, err := in.evalExpr(x.X, fr)
	if err != nil {
		return nil, err
	}
	switch x.Op {
	case ast.UnaryNeg:
		n, ok := v.(value.Number)
		if !ok {
			return nil, runtimeErr(position.KindTypeError, x.Pos(), "cannot negate a %s", v.Type())
		}
		if n.Integer {
			return value.NewInt(-n.Val), nil
		}
		return value.NewNumber(-n.Val), nil
	case ast.UnaryNot:
		return value.NewBool(!v.Truthy()), nil
	default:
		return nil, runtimeErr(position.KindParseError, x.Pos(), "unknown unary operator")
	}
}

func (in *Interpreter) evalBinary(x *ast.Binary, fr *env.Frame) (value.Value, error) {
	// and/or short-circuit: the right operand is only evaluated if needed
	// (spec.md §4.1 "Boolean operators").
	if x.Op == ast.BinAnd {
		l, err := in.evalExpr(x.Left, fr)
		if err != nil {
			return nil, err
		}
		if !l.Truthy() {
			return l, nil
		}
		return in.evalExpr(x.Right, fr)
	}
	if x.Op == ast.BinOr {
		l, err := in.evalExpr(x.Left, fr)
		if err != nil {
			return nil, err
		}
		if l.Truthy() {
			return l, nil
		}
		return in.evalExpr(x.Right, fr)
	}

	l, err := in.evalExpr(x.Left, fr)
	if err != nil {
		return nil, err
	}
	r, err := in.evalExpr(x.Right, fr)
	if err != nil {
		return nil, err
	}

	switch x.Op {
	case ast.BinEq:
		return value.NewBool(l.Equal(r)), nil
	case ast.BinNotEq:
		return value.NewBool(!l.Equal(r)), nil
	}

	if isElementWise(x.Op) {
		return in.evalElementWise(x.Op, l, r, x.Pos())
	}

	if isComparison(x.Op) {
		ln, lok := l.(value.Number)
		rn, rok := r.(value.Number)
		if lok && rok {
			return value.NewBool(compareNums(x.Op, ln.Val, rn.Val)), nil
		}
		ls, lsok := l.(value.Str)
		rs, rsok := r.(value.Str)
		if lsok && rsok {
			return value.NewBool(compareStrs(x.Op, ls.Val, rs.Val)), nil
		}
		return nil, runtimeErr(position.KindTypeError, x.Pos(), "cannot compare %s with %s", l.Type(), r.Type())
	}

	ln, lok := l.(value.Number)
	rn, rok := r.(value.Number)
	if lok && rok {
		return in.arith(x.Op, ln, rn, x.Pos())
	}
	if x.Op == ast.BinAdd {
		ls, lsok := l.(value.Str)
		rs, rsok := r.(value.Str)
		if lsok && rsok {
			return value.NewStr(ls.Val + rs.Val), nil
		}
	}
	return nil, runtimeErr(position.KindTypeError, x.Pos(), "unsupported operand types %s and %s", l.Type(), r.Type())
}

func isComparison(op ast.BinaryOp) bool {
	switch op {
	case ast.BinLt, ast.BinLtEq, ast.BinGt, ast.BinGtEq:
		return true
	}
	return false
}

func compareNums(op ast.BinaryOp, a, b float64) bool {
	switch op {
	case ast.BinLt:
		return a < b
	case ast.BinLtEq:
		return a <= b
	case ast.BinGt:
		return a > b
	default:
		return a >= b
	}
}

func compareStrs(op ast.BinaryOp, a, b string) bool {
	switch op {
	case ast.BinLt:
		return a < b
	case ast.BinLtEq:
		return a <= b
	case ast.BinGt:
		return a > b
	default:
		return a >= b
	}
}

// arith implements the scalar arithmetic operators (spec.md §3.4, §4.1).
// Floor division truncates toward negative infinity, unlike Go's native
// integer division which truncates toward zero.
func (in *Interpreter) arith(op ast.BinaryOp, a, b value.Number, pos position.Position) (value.Value, error) {
	integer := a.Integer && b.Integer
	wrap := func(v float64) value.Value {
		if integer && op != ast.BinDiv {
			return value.NewInt(v)
		}
		return value.NewNumber(v)
	}
	switch op {
	case ast.BinAdd:
		return wrap(a.Val + b.Val), nil
	case ast.BinSub:
		return wrap(a.Val - b.Val), nil
	case ast.BinMul:
		return wrap(a.Val * b.Val), nil
	case ast.BinDiv:
		if b.Val == 0 {
			if _, err := in.handleRecoverable(errs.New(position.KindDivisionByZero, "division by zero").WithPos(pos)); err != nil {
				return nil, err
			}
			return value.NoneValue, nil
		}
		return value.NewNumber(a.Val / b.Val), nil
	case ast.BinFloorDiv:
		if b.Val == 0 {
			if _, err := in.handleRecoverable(errs.New(position.KindDivisionByZero, "division by zero").WithPos(pos)); err != nil {
				return nil, err
			}
			return value.NoneValue, nil
		}
		return wrap(math.Floor(a.Val / b.Val)), nil
	case ast.BinMod:
		if b.Val == 0 {
			if _, err := in.handleRecoverable(errs.New(position.KindDivisionByZero, "division by zero").WithPos(pos)); err != nil {
				return nil, err
			}
			return value.NoneValue, nil
		}
		m := math.Mod(a.Val, b.Val)
		if m != 0 && (m < 0) != (b.Val < 0) {
			m += b.Val
		}
		return wrap(m), nil
	case ast.BinPow:
		return wrap(math.Pow(a.Val, b.Val)), nil
	default:
		return nil, runtimeErr(position.KindParseError, pos, "unknown arithmetic operator")
	}
}

func isElementWise(op ast.BinaryOp) bool {
	switch op {
	case ast.BinEAdd, ast.BinESub, ast.BinEMul, ast.BinEDiv, ast.BinEFloorDiv, ast.BinEMod, ast.BinEPow:
		return true
	}
	return false
}

var elementWiseScalar = map[ast.BinaryOp]ast.BinaryOp{
	ast.BinEAdd:      ast.BinAdd,
	ast.BinESub:      ast.BinSub,
	ast.BinEMul:      ast.BinMul,
	ast.BinEDiv:      ast.BinDiv,
	ast.BinEFloorDiv: ast.BinFloorDiv,
	ast.BinEMod:      ast.BinMod,
	ast.BinEPow:      ast.BinPow,
}

// evalElementWise implements the `.+`/`.-`/etc. element-wise operators over
// two equal-length lists (spec.md §4.1 "Element-wise operators").
func (in *Interpreter) evalElementWise(op ast.BinaryOp, l, r value.Value, pos position.Position) (value.Value, error) {
	la, lok := listElements(l)
	ra, rok := listElements(r)
	if !lok || !rok {
		return nil, runtimeErr(position.KindTypeError, pos, "element-wise operators require two lists")
	}
	if len(la) != len(ra) {
		return nil, runtimeErr(position.KindInvalidArgument, pos, "element-wise operands have mismatched length (%d vs %d)", len(la), len(ra))
	}
	scalarOp := elementWiseScalar[op]
	out := make([]value.Value, len(la))
	for i := range la {
		ln, lok := la[i].(value.Number)
		rn, rok := ra[i].(value.Number)
		if !lok || !rok {
			return nil, runtimeErr(position.KindTypeError, pos, "element-wise operators require numeric elements")
		}
		v, err := in.arith(scalarOp, ln, rn, pos)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return value.NewList(out), nil
}

func (in *Interpreter) evalIndex(x *ast.Index, fr *env.Frame) (value.Value, error) {
	obj, err := in.evalExpr(x.Object, fr)
	if err != nil {
		return nil, err
	}
	key, err := in.evalExpr(x.Key, fr)
	if err != nil {
		return nil, err
	}
	return in.indexValue(obj, key, x.Pos())
}

func (in *Interpreter) indexValue(obj, key value.Value, pos position.Position) (value.Value, error) {
	switch t := obj.(type) {
	case *value.List:
		idx, err := indexOf(key)
		if err != nil {
			return nil, runtimeErr(position.KindTypeError, pos, "%s", err.Error())
		}
		v, gerr := t.Get(idx)
		if gerr != nil {
			return in.handleRecoverable(gerr.(*errs.GraphoidError).WithPos(pos))
		}
		return v, nil
	case *value.Map:
		v, gerr := t.Get(key.String())
		if gerr != nil {
			return in.handleRecoverable(gerr.(*errs.GraphoidError).WithPos(pos))
		}
		return v, nil
	case *graph.Graph:
		switch t.TypeTag {
		case "list":
			ids := graph.ListNodeOrder(t)
			idx, err := indexOf(key)
			if err != nil {
				return nil, runtimeErr(position.KindTypeError, pos, "%s", err.Error())
			}
			if idx < 0 || idx >= len(ids) {
				return in.handleRecoverable(errs.New(position.KindIndexError, "index %d out of range", idx).WithPos(pos))
			}
			n, _ := t.GetNode(ids[idx])
			return n.Value, nil
		default:
			n, ok := t.GetNode(key.String())
			if !ok {
				return in.handleRecoverable(errs.New(position.KindKeyError, "no such key %q", key.String()).WithPos(pos))
			}
			return n.Value, nil
		}
	case value.Frozen:
		return in.indexValue(t.Inner, key, pos)
	default:
		return nil, runtimeErr(position.KindTypeError, pos, "value of type %s is not indexable", obj.Type())
	}
}

func (in *Interpreter) evalProperty(x *ast.Property, fr *env.Frame) (value.Value, error) {
	obj, err := in.evalExpr(x.Object, fr)
	if err != nil {
		return nil, err
	}
	return in.propertyOf(obj, x.Name, x.Pos())
}

// propertyOf implements `obj.name` read access: a getter method first, then
// a data-layer node named name, matching assignProperty's write-side order
// (spec.md §4.7 "Method dispatch").
func (in *Interpreter) propertyOf(obj value.Value, name string, pos position.Position) (value.Value, error) {
	if fz, ok := obj.(value.Frozen); ok {
		return in.propertyOf(fz.Inner, name, pos)
	}
	g, ok := obj.(*graph.Graph)
	if !ok {
		return nil, runtimeErr(position.KindTypeError, pos, "value of type %s has no property %q", obj.Type(), name)
	}
	if m, err := g.ResolveOwnOrPrivate(name, g, nil); err == nil {
		return m.Body(g, nil)
	}
	if n, ok := g.GetNode(name); ok {
		return n.Value, nil
	}
	return nil, runtimeErr(position.KindNameError, pos, "no property or method %q", name)
}

func (in *Interpreter) evalCall(x *ast.Call, fr *env.Frame) (value.Value, error) {
	ident, ok := x.Callee.(*ast.Identifier)
	if !ok {
		callee, err := in.evalExpr(x.Callee, fr)
		if err != nil {
			return nil, err
		}
		return in.invokeFunction(callee, "", x.Args, fr, x.Pos())
	}

	// Built-ins and module-level functions share one namespace (spec.md
	// §4.10): an ordinary frame lookup finds either.
	callee, err := fr.MustGet(ident.Name)
	if err != nil {
		return nil, err.(*errs.GraphoidError).WithPos(x.Pos())
	}
	return in.invokeFunction(callee, ident.Name, x.Args, fr, x.Pos())
}

func (in *Interpreter) invokeFunction(callee value.Value, name string, argExprs []ast.Expr, fr *env.Frame, pos position.Position) (value.Value, error) {
	fn, ok := callee.(*value.Function)
	if !ok {
		return nil, runtimeErr(position.KindTypeError, pos, "value of type %s is not callable", callee.Type())
	}
	args, err := in.evalArgList(name, argExprs, fr, pos)
	if err != nil {
		return nil, err
	}
	if fn.Arity >= 0 && fn.Arity != len(args) {
		return nil, runtimeErr(position.KindArityError, pos, "%s expects %d argument(s), got %d", fn.String(), fn.Arity, len(args))
	}
	return fn.Call(args)
}

func (in *Interpreter) evalListLiteral(x *ast.ListLiteral, fr *env.Frame) (value.Value, error) {
	elems := make([]value.Value, len(x.Elements))
	for i, e := range x.Elements {
		v, err := in.evalExpr(e, fr)
		if err != nil {
			return nil, err
		}
		elems[i] = v
	}
	return value.NewList(elems), nil
}

func (in *Interpreter) evalMapLiteral(x *ast.MapLiteral, fr *env.Frame) (value.Value, error) {
	m := value.NewMap()
	for _, entry := range x.Entries {
		v, err := in.evalExpr(entry.Value, fr)
		if err != nil {
			return nil, err
		}
		m.Set(entry.Key, v)
	}
	return m, nil
}

func (in *Interpreter) evalSuper(x *ast.Super, fr *env.Frame) (value.Value, error) {
	self, err := fr.MustGet("self")
	if err != nil {
		return nil, runtimeErr(position.KindNameError, x.Pos(), "super used outside a method body")
	}
	g, ok := self.(*graph.Graph)
	if !ok {
		return nil, runtimeErr(position.KindTypeError, x.Pos(), "super used outside a method body")
	}
	args := make([]value.Value, len(x.Args))
	for i, a := range x.Args {
		v, err := in.evalExpr(a, fr)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	m, merr := g.ResolveSuper(x.Name, g, args)
	if merr != nil {
		return nil, merr
	}
	return m.Body(g, args)
}

func (in *Interpreter) evalInlineIf(x *ast.InlineIf, fr *env.Frame) (value.Value, error) {
	cond, err := in.evalExpr(x.Cond, fr)
	if err != nil {
		return nil, err
	}
	truth := cond.Truthy()
	if x.Unless {
		truth = !truth
	}
	if truth {
		return in.evalExpr(x.Then, fr)
	}
	if x.Else != nil {
		return in.evalExpr(x.Else, fr)
	}
	return value.NoneValue, nil
}

// asListGraph reports whether v is a "list"-tagged graph-backed container.
func asListGraph(v value.Value) (*graph.Graph, bool) {
	g, ok := v.(*graph.Graph)
	if !ok || g.TypeTag != "list" {
		return nil, false
	}
	return g, true
}

// asMapGraph reports whether v is a "map"-tagged graph-backed container.
func asMapGraph(v value.Value) (*graph.Graph, bool) {
	g, ok := v.(*graph.Graph)
	if !ok || g.TypeTag != "map" {
		return nil, false
	}
	return g, true
}
