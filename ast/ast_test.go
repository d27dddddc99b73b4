package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xvandervort/graphoid-sub001/position"
)

func TestPosPropagates(t *testing.T) {
	pos := position.Position{File: "x.gr", Line: 3, Column: 5}
	n := &Identifier{Base: Base{Position: pos}, Name: "xs"}
	var node Node = n
	assert.Equal(t, pos, node.Pos())
}

func TestExprAndStmtInterfaces(t *testing.T) {
	var _ Expr = &NumberLit{}
	var _ Expr = &Binary{}
	var _ Expr = &MethodCall{}
	var _ Expr = &GraphLiteral{}
	var _ Expr = &Match{}
	var _ Stmt = &AssignStmt{}
	var _ Stmt = &TryStmt{}
	var _ Stmt = &MethodDef{}
	var _ Pattern = &PatTagged{}
	var _ Pattern = &PatNode{}
}

func TestDumpDoesNotPanic(t *testing.T) {
	n := &Binary{
		Op:   BinAdd,
		Left: &NumberLit{Value: 1},
		Right: &Identifier{Name: "x"},
	}
	assert.NotEmpty(t, Dump(n))
}
