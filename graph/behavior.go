package graph

import (
	"math"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/xvandervort/graphoid-sub001/errs"
	"github.com/xvandervort/graphoid-sub001/position"
	"github.com/xvandervort/graphoid-sub001/value"
)

var (
	upperCaser = cases.Upper(language.Und)
	lowerCaser = cases.Lower(language.Und)
)

// Behavior is an ingress transform applied to a value as it enters a graph
// (AddNode, SetAttribute), in attachment order, before the ruleset is
// consulted (spec.md §3.3 "Behaviors", §4.4). Unlike Rule, a Behavior may
// replace the value; it must never reject it outright except through a
// returned error for truly invalid input (e.g. validate_range on a
// non-numeric value).
type Behavior interface {
	Name() string
	Apply(v value.Value) (value.Value, error)
}

func applyBehaviors(behaviors []Behavior, v value.Value) (value.Value, error) {
	cur := v
	for _, b := range behaviors {
		next, err := b.Apply(cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

type noneToZeroBehavior struct{}

func (noneToZeroBehavior) Name() string { return "none_to_zero" }
func (noneToZeroBehavior) Apply(v value.Value) (value.Value, error) {
	if _, ok := v.(value.None); ok {
		return value.NewInt(0), nil
	}
	return v, nil
}

// NoneToZero replaces none with 0.
func NoneToZero() Behavior { return noneToZeroBehavior{} }

type noneToEmptyBehavior struct{}

func (noneToEmptyBehavior) Name() string { return "none_to_empty" }
func (noneToEmptyBehavior) Apply(v value.Value) (value.Value, error) {
	if _, ok := v.(value.None); ok {
		return value.NewStr(""), nil
	}
	return v, nil
}

// NoneToEmpty replaces none with "".
func NoneToEmpty() Behavior { return noneToEmptyBehavior{} }

type validateRangeBehavior struct{ lo, hi float64 }

func (validateRangeBehavior) Name() string { return "validate_range" }
func (b validateRangeBehavior) Apply(v value.Value) (value.Value, error) {
	n, ok := v.(value.Number)
	if !ok {
		return nil, errs.New(position.KindTypeError, "validate_range requires a numeric value")
	}
	if n.Val < b.lo {
		return value.Number{Val: b.lo, Integer: n.Integer && b.lo == math.Trunc(b.lo)}, nil
	}
	if n.Val > b.hi {
		return value.Number{Val: b.hi, Integer: n.Integer && b.hi == math.Trunc(b.hi)}, nil
	}
	return v, nil
}

// ValidateRange clamps numeric values into [lo, hi]; a non-numeric value is
// a TypeError.
func ValidateRange(lo, hi float64) Behavior { return validateRangeBehavior{lo: lo, hi: hi} }

type caseBehavior struct{ upper bool }

func (b caseBehavior) Name() string {
	if b.upper {
		return "uppercase"
	}
	return "lowercase"
}
func (b caseBehavior) Apply(v value.Value) (value.Value, error) {
	s, ok := v.(value.Str)
	if !ok {
		return v, nil
	}
	if b.upper {
		return value.NewStr(upperCaser.String(s.Val)), nil
	}
	return value.NewStr(lowerCaser.String(s.Val)), nil
}

// Uppercase upper-cases string values, passing non-strings through.
func Uppercase() Behavior { return caseBehavior{upper: true} }

// Lowercase lower-cases string values, passing non-strings through.
func Lowercase() Behavior { return caseBehavior{upper: false} }

type roundToIntBehavior struct{}

func (roundToIntBehavior) Name() string { return "round_to_int" }
func (roundToIntBehavior) Apply(v value.Value) (value.Value, error) {
	n, ok := v.(value.Number)
	if !ok {
		return v, nil
	}
	return n.Truncated(), nil
}

// RoundToInt truncates numeric values to their integer-flagged form.
func RoundToInt() Behavior { return roundToIntBehavior{} }

type positiveBehavior struct{}

func (positiveBehavior) Name() string { return "positive" }
func (positiveBehavior) Apply(v value.Value) (value.Value, error) {
	n, ok := v.(value.Number)
	if !ok {
		return nil, errs.New(position.KindTypeError, "positive requires a numeric value")
	}
	return value.Number{Val: math.Abs(n.Val), Integer: n.Integer}, nil
}

// Positive clamps negative numeric values to their absolute value; zero and
// positive values pass through unchanged. A behavior transforms values on
// ingress rather than rejecting them outright — that's what distinguishes it
// from a rule of the same name (spec.md §4.4 "Rules" vs "Behaviors").
func Positive() Behavior { return positiveBehavior{} }

// MapViaFunc is the signature a user-defined Graphoid function value
// supplies to MapVia once the executor bridges value.Function.Call into it.
type MapViaFunc func(v value.Value) (value.Value, error)

type mapViaBehavior struct{ fn MapViaFunc }

func (mapViaBehavior) Name() string { return "map_via" }
func (b mapViaBehavior) Apply(v value.Value) (value.Value, error) {
	return b.fn(v)
}

// MapVia applies an arbitrary user function as an ingress transform
// (spec.md §4.4 "map_via(fn)").
func MapVia(fn MapViaFunc) Behavior { return mapViaBehavior{fn: fn} }
