// Package value implements Graphoid's runtime value model: the cheap
// scalar/simple-container tier of spec.md §3.2. Graph-backed containers live
// in package graph, which imports this package (never the reverse) so that a
// graph.Graph can itself satisfy Value and be stored anywhere a Value is
// expected, without value needing to know about graphs.
//
// The Value interface follows the shape of mgmt's lang/types.Value (a small
// set of accessor methods plus Type/String/Copy/Cmp), generalized from
// mgmt's statically-typed values to Graphoid's dynamically-typed ones: Cmp
// becomes a plain Equal, and there's no Less, since spec.md never requires a
// total ordering over mixed-kind values.
package value

import "fmt"

// TypeName is one of the fixed strings type_of() can return (spec.md §3.2).
type TypeName string

const (
	TypeNum      TypeName = "num"
	TypeString   TypeName = "string"
	TypeBool     TypeName = "bool"
	TypeNone     TypeName = "none"
	TypeList     TypeName = "list"
	TypeHash     TypeName = "hash"
	TypeGraph    TypeName = "graph"
	TypeFunction TypeName = "function"
	TypePattern  TypeName = "pattern"
	TypeError    TypeName = "error"
	TypeSymbol   TypeName = "symbol" // an implementation extension: type_of(:sym) == "symbol"

	// TypeMatchResults is the chainable result of graph.match(...), another
	// implementation extension beyond spec.md §3.2's fixed type_of() table.
	TypeMatchResults TypeName = "match_results"
)

// Value is implemented by every Graphoid runtime value.
type Value interface {
	fmt.Stringer

	// Type returns the fixed type-name string for type_of() (spec.md §3.2,
	// Testable Property 4).
	Type() TypeName

	// Equal implements Graphoid's structural `==` (spec.md §4.7). It must
	// be reflexive, symmetric, and transitive for same-kind operands
	// (Testable Property 8).
	Equal(Value) bool

	// Copy returns an independent value suitable for the copy-on-assign
	// discipline of spec.md §3.5. Scalars may return themselves (they're
	// immutable); containers must deep-copy their element slots (but not
	// recursively promote — a Copy of a graph-backed container is still
	// graph-backed).
	Copy() Value

	// Truthy implements spec.md §4.7's truthiness rule.
	Truthy() bool
}

// Freezable describes values that can produce their own Frozen wrapper
// (spec.md §3.2). No type in this package implements it; freezing goes
// through NewFrozen, which wraps any Value.
type Freezable interface {
	Value
	// Frozen wraps the receiver (or, for a deep freeze, its entire
	// reachable structure) read-only.
	Frozen(deep bool) Value
}
