package ast

func (*NumberLit) exprNode()   {}
func (*StringLit) exprNode()   {}
func (*BoolLit) exprNode()     {}
func (*NoneLit) exprNode()     {}
func (*SymbolLit) exprNode()   {}
func (*Identifier) exprNode()  {}
func (*Unary) exprNode()       {}
func (*Binary) exprNode()      {}
func (*Index) exprNode()       {}
func (*Property) exprNode()    {}
func (*Call) exprNode()        {}
func (*KeywordArg) exprNode()  {}
func (*MethodCall) exprNode()  {}
func (*ListLiteral) exprNode() {}
func (*MapLiteral) exprNode()  {}
func (*GraphLiteral) exprNode() {}
func (*Lambda) exprNode()      {}
func (*PatternFn) exprNode()   {}
func (*Match) exprNode()       {}
func (*Super) exprNode()       {}
func (*Self) exprNode()        {}
func (*InlineIf) exprNode()    {}

// NumberLit is a numeric literal. IntegerFlagged marks literals written
// without a decimal point or radix-normalized from 0x/0b/0o; it seeds the
// integer-flag a value carries through `precision { :integer }` (spec.md §3.4).
type NumberLit struct {
	Base
	Value          float64
	IntegerFlagged bool
}

// StringLit is a double-quoted string literal with escapes already resolved
// by the lexer.
type StringLit struct {
	Base
	Value string
}

// BoolLit is `true` or `false`.
type BoolLit struct {
	Base
	Value bool
}

// NoneLit is the literal `none`.
type NoneLit struct{ Base }

// SymbolLit is a `:name` literal.
type SymbolLit struct {
	Base
	Name string
}

// Identifier is a bare variable reference.
type Identifier struct {
	Base
	Name string
}

// UnaryOp enumerates the unary operators.
type UnaryOp int

const (
	UnaryNeg UnaryOp = iota // -x
	UnaryNot                // not x
)

// Unary is a unary-operator expression.
type Unary struct {
	Base
	Op UnaryOp
	X  Expr
}

// BinaryOp enumerates the binary operators, including the element-wise
// forms (spec.md §4.1 "Operators").
type BinaryOp int

const (
	BinAdd BinaryOp = iota
	BinSub
	BinMul
	BinDiv
	BinFloorDiv
	BinMod
	BinPow
	BinEAdd // .+
	BinESub // .-
	BinEMul // .*
	BinEDiv // ./
	BinEFloorDiv // .//
	BinEMod      // .%
	BinEPow      // .^
	BinEq
	BinNotEq
	BinLt
	BinLtEq
	BinGt
	BinGtEq
	BinAnd // short-circuit
	BinOr  // short-circuit
)

// Binary is a binary-operator expression.
type Binary struct {
	Base
	Op    BinaryOp
	Left  Expr
	Right Expr
}

// Index is `obj[key]`.
type Index struct {
	Base
	Object Expr
	Key    Expr
}

// Property is `obj.name` (not a call).
type Property struct {
	Base
	Object Expr
	Name   string
}

// Call is `callee(args...)`.
type Call struct {
	Base
	Callee Expr
	Args   []Expr
}

// KeywordArg is a `name: value` entry inside a call's argument list
// (spec.md §4.4's `node("u", type: "User")`-style calls). It implements Expr
// so it can sit inline in an ordinary Args slice; evaluators that care about
// named arguments type-switch for it, everything else can ignore the
// distinction for calls that never use it.
type KeywordArg struct {
	Base
	Name  string
	Value Expr
}

// MethodCall is `receiver.name(args...)` or `receiver.name!(args...)`. Bang
// is split out explicitly so the executor can enforce mutation discipline
// without re-parsing the method name (spec.md §3.5).
type MethodCall struct {
	Base
	Receiver Expr
	Name     string
	Bang     bool
	Args     []Expr
}

// ListLiteral is `[e1, e2, ...]`.
type ListLiteral struct {
	Base
	Elements []Expr
}

// MapEntry is one `key: value` pair of a MapLiteral.
type MapEntry struct {
	Key   string
	Value Expr
}

// MapLiteral is `{k1: v1, k2: v2}`.
type MapLiteral struct {
	Base
	Entries []MapEntry
}

// GraphEntry is one entry inside a graph literal's braces: a rule/behavior/
// method invocation or a data-node declaration (spec.md §4.8).
type GraphEntry struct {
	// Kind distinguishes the three entry shapes; exactly one of the
	// corresponding fields below is populated.
	Kind GraphEntryKind

	// Invoke is populated for Kind == GraphEntryInvoke (e.g. add_rule(...)).
	Invoke *Call

	// Method is populated for Kind == GraphEntryMethod.
	Method *MethodDef

	// DataKey/DataValue are populated for Kind == GraphEntryData.
	DataKey   string
	DataValue Expr
}

// GraphEntryKind enumerates GraphEntry's variants.
type GraphEntryKind int

const (
	GraphEntryInvoke GraphEntryKind = iota
	GraphEntryMethod
	GraphEntryData
)

// GraphLiteral is `graph { ... }`, `graph from Parent { ... }`, or the
// `tree{}` sugar (desugared by the parser into a GraphLiteral with
// TypeTag == "tree" and an implicit `with_ruleset(:tree)` GraphEntryInvoke).
type GraphLiteral struct {
	Base
	TypeTag string // "", "tree", "graph", "directed", "dag", ...
	Parent  Expr   // non-nil for `graph from Parent {...}`
	Entries []GraphEntry
}

// Lambda is an anonymous function literal.
type Lambda struct {
	Base
	Params []string
	Body   []Stmt
}

// PatternFnClause is one `|pat| => body` clause of a pattern-matching
// function literal.
type PatternFnClause struct {
	Pattern Pattern
	Body    Expr
}

// PatternFn is a sequence of pattern clauses following `fn name` with no
// parameter list (spec.md §4.3 "Pattern-matching function"). As an
// expression it's the value bound to a Lambda-less `fn` statement's RHS;
// FnDef wraps this when it appears as a named top-level definition.
type PatternFn struct {
	Base
	Clauses []PatternFnClause
}

// MatchClause is one `|pat| => expr` (or `_ => expr`) arm of a match
// expression.
type MatchClause struct {
	Pattern Pattern
	Body    Expr
}

// Match is `match scrutinee { clauses }` (spec.md §4.3).
type Match struct {
	Base
	Scrutinee Expr
	Clauses   []MatchClause
}

// Super is `super.name(args...)` inside a method body.
type Super struct {
	Base
	Name string
	Args []Expr
}

// Self is the bare `self` expression.
type Self struct{ Base }

// InlineIf is `expr if cond` / `expr unless cond` / `if cond then e1 else e2`
// used as an expression (spec.md §4.3 "Inline if").
type InlineIf struct {
	Base
	Cond    Expr
	Then    Expr
	Else    Expr // nil for the trailing-if/unless forms when condition is false
	Unless  bool // true for `expr unless cond`
}
