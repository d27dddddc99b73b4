package builtins

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xvandervort/graphoid-sub001/env"
	"github.com/xvandervort/graphoid-sub001/errs"
	"github.com/xvandervort/graphoid-sub001/position"
	"github.com/xvandervort/graphoid-sub001/value"
)

func newFrame() *env.Frame {
	fr := env.NewRoot()
	Install(fr, func() []*errs.GraphoidError { return nil }, func() {})
	return fr
}

func call(t *testing.T, fr *env.Frame, name string, args ...value.Value) value.Value {
	t.Helper()
	fnVal, ok := fr.Get(name)
	require.True(t, ok, "built-in %q not installed", name)
	f, ok := fnVal.(*value.Function)
	require.True(t, ok)
	v, err := f.Call(args)
	require.NoError(t, err)
	return v
}

func TestTypeOfReturnsFixedTypeStrings(t *testing.T) {
	fr := newFrame()
	v := call(t, fr, "type_of", value.NewInt(1))
	assert.Equal(t, "num", v.String())
}

func TestLenOnListMapAndString(t *testing.T) {
	fr := newFrame()
	l := value.NewList([]value.Value{value.NewInt(1), value.NewInt(2)})
	assert.Equal(t, "2", call(t, fr, "len", l).String())

	m := value.NewMap()
	m.Set("a", value.NewInt(1))
	assert.Equal(t, "1", call(t, fr, "len", m).String())

	assert.Equal(t, "5", call(t, fr, "len", value.NewStr("hello")).String())
}

func TestNumConvertsStringsAndBools(t *testing.T) {
	fr := newFrame()
	assert.Equal(t, float64(42), call(t, fr, "num", value.NewStr("42")).(value.Number).Val)
	assert.Equal(t, float64(1), call(t, fr, "num", value.NewBool(true)).(value.Number).Val)
	assert.Equal(t, float64(0), call(t, fr, "num", value.NewBool(false)).(value.Number).Val)
}

func TestStrRendersScalars(t *testing.T) {
	fr := newFrame()
	assert.Equal(t, "5", call(t, fr, "str", value.NewInt(5)).String())
}

func TestBoolUsesTruthinessRules(t *testing.T) {
	fr := newFrame()
	assert.False(t, call(t, fr, "bool", value.NewInt(0)).Truthy())
	assert.False(t, call(t, fr, "bool", value.NewStr("")).Truthy())
	assert.True(t, call(t, fr, "bool", value.NewStr("x")).Truthy())
}

func TestNodeEdgePathBuildPatternValues(t *testing.T) {
	fr := newFrame()
	n := call(t, fr, "node", value.NewStr("u"), value.NewStr("User"))
	p, ok := n.(value.Pattern)
	require.True(t, ok)
	assert.Equal(t, value.PatternNode, p.Kind)
	assert.Equal(t, "u", p.Var)
	assert.Equal(t, "User", p.NodeType)

	e := call(t, fr, "edge", value.NewStr("FOLLOWS"))
	ep := e.(value.Pattern)
	assert.Equal(t, value.PatternEdge, ep.Kind)
	assert.Equal(t, "FOLLOWS", ep.EdgeType)

	pth := call(t, fr, "path", value.NewStr("e"), value.NewInt(1), value.NewInt(3))
	pp := pth.(value.Pattern)
	assert.Equal(t, 1, pp.Min)
	assert.Equal(t, 3, pp.Max)
}

func TestGetErrorsAndClearErrorsWireThroughCallbacks(t *testing.T) {
	var cleared bool
	fr := env.NewRoot()
	ge := errs.New(position.KindUserError, "boom")
	Install(fr, func() []*errs.GraphoidError { return []*errs.GraphoidError{ge} }, func() { cleared = true })

	errList := call(t, fr, "get_errors")
	l := errList.(*value.List)
	require.Equal(t, 1, l.Len())

	call(t, fr, "clear_errors")
	assert.True(t, cleared)
}
