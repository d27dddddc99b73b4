package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScalarEquality(t *testing.T) {
	assert.True(t, NewNumber(1).Equal(NewNumber(1)))
	assert.False(t, NewNumber(1).Equal(NewNumber(2)))
	assert.True(t, None{}.Equal(None{}))
	assert.False(t, None{}.Equal(NewBool(false)))
}

func TestTruthiness(t *testing.T) {
	assert.False(t, NewBool(false).Truthy())
	assert.False(t, None{}.Truthy())
	assert.False(t, NewNumber(0).Truthy())
	assert.False(t, NewStr("").Truthy())
	assert.False(t, NewList(nil).Truthy())
	assert.False(t, NewMap().Truthy())
	assert.True(t, NewNumber(1).Truthy())
	assert.True(t, NewStr("x").Truthy())
}

func TestListAssignmentIndependence(t *testing.T) {
	a := NewList([]Value{NewNumber(1), NewNumber(2), NewNumber(3)})
	b := a.Copy().(*List)
	a.AppendBang(NewNumber(4))
	assert.Equal(t, 4, a.Len())
	assert.Equal(t, 3, b.Len())
}

func TestListBangNonBangPairing(t *testing.T) {
	a := NewList([]Value{NewNumber(3), NewNumber(1), NewNumber(2)})
	sorted := a.Sort(func(x, y Value) bool { return x.(Number).Val < y.(Number).Val })
	assert.Equal(t, "[3, 1, 2]", a.String())
	assert.Equal(t, "[1, 2, 3]", sorted.String())

	a.SortBang(func(x, y Value) bool { return x.(Number).Val < y.(Number).Val })
	assert.Equal(t, "[1, 2, 3]", a.String())
}

func TestListRemoveNoMatchIsNoop(t *testing.T) {
	a := NewList([]Value{NewNumber(1), NewNumber(2)})
	out := a.Remove(NewNumber(99), RemoveAll)
	assert.True(t, out.Equal(a))
}

func TestMapInsertionOrder(t *testing.T) {
	m := NewMap()
	m.Set("b", NewNumber(2))
	m.Set("a", NewNumber(1))
	assert.Equal(t, []string{"b", "a"}, m.Keys())
}

func TestMapGetMissingKey(t *testing.T) {
	m := NewMap()
	_, err := m.Get("missing")
	require.Error(t, err)
}

func TestMapCopyIndependence(t *testing.T) {
	m := NewMap()
	m.Set("x", NewNumber(1))
	cp := m.Copy().(*Map)
	m.Set("x", NewNumber(2))
	v, _ := cp.Get("x")
	assert.True(t, v.Equal(NewNumber(1)))
}

func TestFrozenDeepFreezesNestedContainers(t *testing.T) {
	inner := NewList([]Value{NewNumber(1)})
	outer := NewList([]Value{inner})
	f := NewFrozen(outer, true)
	frozenOuter := f.Inner.(*List)
	_, ok := frozenOuter.Elements[0].(Frozen)
	assert.True(t, ok)
}

func TestPatternBindReturnsCopy(t *testing.T) {
	p := Pattern{Kind: PatternNode, NodeType: "User"}
	bound := p.Bind("u")
	assert.Equal(t, "", p.Var)
	assert.Equal(t, "u", bound.Var)
}

func TestNumberTruncation(t *testing.T) {
	n := NewNumber(5.7)
	tr := n.Truncated()
	assert.Equal(t, float64(5), tr.Val)
	assert.True(t, tr.Integer)
}
