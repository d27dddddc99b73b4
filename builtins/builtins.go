// Package builtins installs Graphoid's small built-in function table into a
// fresh root frame (spec.md §4.10 "Built-ins and public surface"): the
// primitives the language needs but cannot implement in itself. The shape —
// a flat registration function populating a *env.Frame with *value.Function
// values, each a thin Go closure — mirrors how mgmt's lang/funcs/simple
// registers its built-in simple functions (name -> Go closure, with no
// further indirection through the generic function-graph machinery the rest
// of mgmt's func engine uses, since Graphoid's built-ins need no streaming
// reactivity).
package builtins

import (
	"fmt"
	"strconv"

	"github.com/sanity-io/litter"

	"github.com/xvandervort/graphoid-sub001/env"
	"github.com/xvandervort/graphoid-sub001/errs"
	"github.com/xvandervort/graphoid-sub001/position"
	"github.com/xvandervort/graphoid-sub001/value"
)

// Install registers every built-in into fr (spec.md §4.10: "installed in the
// root frame before any module executes"). getErrors/clearErrors close over
// the interpreter's Config via the two accessor callbacks so this package
// never has to import package exec (which already depends on this one's
// sibling concerns conceptually — keeping the dependency one-directional).
func Install(fr *env.Frame, collected func() []*errs.GraphoidError, clear func()) {
	fr.Declare("print", fn("print", -1, func(args []value.Value) (value.Value, error) {
		for i, a := range args {
			if i > 0 {
				fmt.Print(" ")
			}
			fmt.Print(renderPrint(a))
		}
		fmt.Println()
		return value.NoneValue, nil
	}))

	fr.Declare("type_of", fn("type_of", 1, func(args []value.Value) (value.Value, error) {
		return value.NewStr(string(args[0].Type())), nil
	}))

	fr.Declare("get_errors", fn("get_errors", 0, func(args []value.Value) (value.Value, error) {
		errsList := collected()
		out := make([]value.Value, len(errsList))
		for i, e := range errsList {
			out[i] = value.NewErrorValue(e)
		}
		return value.NewList(out), nil
	}))

	fr.Declare("clear_errors", fn("clear_errors", 0, func(args []value.Value) (value.Value, error) {
		clear()
		return value.NoneValue, nil
	}))

	fr.Declare("len", fn("len", 1, func(args []value.Value) (value.Value, error) {
		return lengthOf(args[0])
	}))

	fr.Declare("str", fn("str", 1, func(args []value.Value) (value.Value, error) {
		return value.NewStr(args[0].String()), nil
	}))

	fr.Declare("num", fn("num", 1, func(args []value.Value) (value.Value, error) {
		return toNumber(args[0])
	}))

	fr.Declare("bool", fn("bool", 1, func(args []value.Value) (value.Value, error) {
		return value.NewBool(args[0].Truthy()), nil
	}))

	fr.Declare("freeze", fn("freeze", 1, func(args []value.Value) (value.Value, error) {
		return value.NewFrozen(args[0], false), nil
	}))

	fr.Declare("freeze_deep", fn("freeze_deep", 1, func(args []value.Value) (value.Value, error) {
		return value.NewFrozen(args[0], true), nil
	}))

	fr.Declare("node", fn("node", -1, func(args []value.Value) (value.Value, error) {
		p := value.Pattern{Kind: value.PatternNode}
		if len(args) > 0 {
			p.Var = args[0].String()
		}
		if len(args) > 1 {
			p.NodeType = args[1].String()
		}
		return p, nil
	}))

	fr.Declare("edge", fn("edge", -1, func(args []value.Value) (value.Value, error) {
		p := value.Pattern{Kind: value.PatternEdge}
		if len(args) > 0 {
			p.EdgeType = args[0].String()
		}
		if len(args) > 1 {
			p.Direction = args[1].String()
		}
		return p, nil
	}))

	fr.Declare("path", fn("path", -1, func(args []value.Value) (value.Value, error) {
		p := value.Pattern{Kind: value.PatternPath, Min: 1, Max: -1}
		if len(args) > 0 {
			p.EdgeType = args[0].String()
		}
		if len(args) > 1 {
			n, ok := args[1].(value.Number)
			if !ok {
				return nil, errs.New(position.KindTypeError, "path's min argument must be numeric")
			}
			p.Min = int(n.Val)
		}
		if len(args) > 2 {
			n, ok := args[2].(value.Number)
			if !ok {
				return nil, errs.New(position.KindTypeError, "path's max argument must be numeric")
			}
			p.Max = int(n.Val)
		}
		if len(args) > 3 {
			p.Direction = args[3].String()
		}
		return p, nil
	}))
}

func fn(name string, arity int, call func([]value.Value) (value.Value, error)) *value.Function {
	return &value.Function{Name: name, Arity: arity, Call: call}
}

// renderPrint formats a value for `print`: lists and maps via litter.Sdump
// so nested lists/maps print with readable indentation instead of Go's
// default struct dump; every other value, graphs included, via its ordinary
// String() (spec.md §4.10 "print").
func renderPrint(v value.Value) string {
	switch v.(type) {
	case *value.List, *value.Map:
		return litter.Sdump(v)
	default:
		return v.String()
	}
}

func lengthOf(v value.Value) (value.Value, error) {
	switch t := v.(type) {
	case *value.List:
		return value.NewInt(float64(t.Len())), nil
	case *value.Map:
		return value.NewInt(float64(t.Len())), nil
	case value.Str:
		return value.NewInt(float64(len([]rune(t.Val)))), nil
	default:
		return nil, errs.New(position.KindTypeError, "value of type %s has no length", v.Type())
	}
}

func toNumber(v value.Value) (value.Value, error) {
	switch t := v.(type) {
	case value.Number:
		return t, nil
	case value.Str:
		f, err := strconv.ParseFloat(t.Val, 64)
		if err != nil {
			return nil, errs.New(position.KindInvalidArgument, "cannot convert %q to a number", t.Val)
		}
		return value.NewNumber(f), nil
	case value.Bool:
		if t.Val {
			return value.NewInt(1), nil
		}
		return value.NewInt(0), nil
	default:
		return nil, errs.New(position.KindTypeError, "cannot convert a %s to a number", v.Type())
	}
}
