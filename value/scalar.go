package value

import (
	"math"
	"strconv"
)

// Number is a Graphoid numeric value: an IEEE-754 double with an integer
// flag (spec.md §3.4). The flag is set either by a literal written without a
// decimal point (plain decimal or 0x/0b/0o-prefixed), or by truncation inside a
// `precision { :integer }` scope (spec.md Testable Property 9); it is purely
// informational and never changes how arithmetic is carried out, which
// always proceeds in f64 per spec.md §3.4.
type Number struct {
	Val     float64
	Integer bool
}

// NewNumber builds a non-integer-flagged Number, the default for any literal
// written with a decimal point or produced by arithmetic.
func NewNumber(v float64) Number { return Number{Val: v} }

// NewInt builds an integer-flagged Number.
func NewInt(v float64) Number { return Number{Val: v, Integer: true} }

func (n Number) Type() TypeName { return TypeNum }

func (n Number) String() string {
	if n.Integer && n.Val == math.Trunc(n.Val) && !math.IsInf(n.Val, 0) {
		return strconv.FormatInt(int64(n.Val), 10)
	}
	return strconv.FormatFloat(n.Val, 'g', -1, 64)
}

func (n Number) Equal(other Value) bool {
	o, ok := other.(Number)
	return ok && n.Val == o.Val
}

func (n Number) Copy() Value { return n }

func (n Number) Truthy() bool { return n.Val != 0 }

// Truncated returns a copy of n truncated toward zero and integer-flagged,
// the operation `precision { :integer }` applies to every assignment inside
// its scope (spec.md §3.4).
func (n Number) Truncated() Number {
	return Number{Val: math.Trunc(n.Val), Integer: true}
}

// Str is a Graphoid string value.
type Str struct {
	Val string
}

func NewStr(s string) Str { return Str{Val: s} }

func (s Str) Type() TypeName { return TypeString }
func (s Str) String() string { return s.Val }
func (s Str) Equal(other Value) bool {
	o, ok := other.(Str)
	return ok && s.Val == o.Val
}
func (s Str) Copy() Value     { return s }
func (s Str) Truthy() bool    { return s.Val != "" }

// Bool is a Graphoid boolean value.
type Bool struct {
	Val bool
}

func NewBool(b bool) Bool { return Bool{Val: b} }

func (b Bool) Type() TypeName { return TypeBool }
func (b Bool) String() string {
	if b.Val {
		return "true"
	}
	return "false"
}
func (b Bool) Equal(other Value) bool {
	o, ok := other.(Bool)
	return ok && b.Val == o.Val
}
func (b Bool) Copy() Value  { return b }
func (b Bool) Truthy() bool { return b.Val }

// None is the singleton `none` value. It equals only itself (spec.md §4.7).
type None struct{}

func (None) Type() TypeName       { return TypeNone }
func (None) String() string       { return "none" }
func (None) Equal(other Value) bool {
	_, ok := other.(None)
	return ok
}
func (None) Copy() Value  { return None{} }
func (None) Truthy() bool { return false }

// NoneValue is the canonical None instance, handed out anywhere a sentinel
// `none` is needed so equality checks can use it directly when convenient.
var NoneValue Value = None{}

// Symbol is a Graphoid `:name` literal value.
type Symbol struct {
	Name string
}

func NewSymbol(name string) Symbol { return Symbol{Name: name} }

func (s Symbol) Type() TypeName { return TypeSymbol }
func (s Symbol) String() string { return ":" + s.Name }
func (s Symbol) Equal(other Value) bool {
	o, ok := other.(Symbol)
	return ok && s.Name == o.Name
}
func (s Symbol) Copy() Value  { return s }
func (s Symbol) Truthy() bool { return true }
