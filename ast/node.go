// Package ast defines the position-annotated abstract syntax tree that the
// parser builds and the executor walks, per spec.md §3.1/§4.2. The node
// catalog mirrors mgmt's lang/ast package in spirit (a flat set of exported
// structs implementing a small common interface) but the node shapes
// themselves follow Graphoid's dynamically-typed, tree-walked grammar rather
// than mgmt's statically-unified `mcl` grammar.
package ast

import (
	"github.com/davecgh/go-spew/spew"

	"github.com/xvandervort/graphoid-sub001/position"
)

// Node is implemented by every AST node, expression, statement, and pattern
// alike. Every node carries the position of its first significant token
// (spec.md §4.2), which is what Testable Property 1 checks against the
// source text.
type Node interface {
	Pos() position.Position
}

// Expr is implemented by every expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt is implemented by every statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Pattern is implemented by every pattern node (used both in `match` clauses
// and, for the Node/Edge variants, in graph.match queries only).
type Pattern interface {
	Node
	patternNode()
}

// Base embeds into every concrete node to provide Pos() without repeating a
// Position field accessor on each type.
type Base struct {
	Position position.Position
}

// Pos implements Node.
func (b Base) Pos() position.Position { return b.Position }

// At builds a Base carrying pos, the form every node constructor outside
// this package uses: ast.NumberLit{Base: ast.At(pos), ...}.
func At(pos position.Position) Base { return Base{Position: pos} }

// Dump renders any node as a human-readable structural dump, using
// go-spew the way mgmt's debug tooling dumps ASTs and values during
// development. Used by error stack rendering when a caller wants to log the
// node that failed, and directly by tests that assert on tree shape.
func Dump(n Node) string {
	return spew.Sdump(n)
}
