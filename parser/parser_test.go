package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xvandervort/graphoid-sub001/ast"
)

func parseOne(t *testing.T, src string) ast.Stmt {
	t.Helper()
	stmts, err := Parse("t.gr", src)
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	return stmts[0]
}

func exprOf(t *testing.T, src string) ast.Expr {
	t.Helper()
	s := parseOne(t, src)
	es, ok := s.(*ast.ExprStmt)
	require.True(t, ok, "expected ExprStmt, got %T", s)
	return es.X
}

func TestPrecedenceAdditiveBeforeComparison(t *testing.T) {
	e := exprOf(t, "1 + 2 < 4")
	bin, ok := e.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, ast.BinLt, bin.Op)
	lhs, ok := bin.Left.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, ast.BinAdd, lhs.Op)
}

func TestPrecedenceMultiplicativeBeforeAdditive(t *testing.T) {
	e := exprOf(t, "1 + 2 * 3")
	bin := e.(*ast.Binary)
	assert.Equal(t, ast.BinAdd, bin.Op)
	rhs, ok := bin.Right.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, ast.BinMul, rhs.Op)
}

func TestExponentIsRightAssociative(t *testing.T) {
	e := exprOf(t, "2 ^ 3 ^ 2")
	bin := e.(*ast.Binary)
	assert.Equal(t, ast.BinPow, bin.Op)
	_, leftIsNumber := bin.Left.(*ast.NumberLit)
	assert.True(t, leftIsNumber)
	rhs, ok := bin.Right.(*ast.Binary)
	require.True(t, ok, "2^3^2 should group as 2^(3^2)")
	assert.Equal(t, ast.BinPow, rhs.Op)
}

func TestChainedComparisonIsRejected(t *testing.T) {
	_, err := Parse("t.gr", "a < b < c")
	require.Error(t, err)
}

func TestElementWiseOperators(t *testing.T) {
	e := exprOf(t, "xs .+ ys")
	bin := e.(*ast.Binary)
	assert.Equal(t, ast.BinEAdd, bin.Op)
}

func TestFloorDivision(t *testing.T) {
	e := exprOf(t, "7 // 2")
	bin := e.(*ast.Binary)
	assert.Equal(t, ast.BinFloorDiv, bin.Op)
}

func TestPostfixChainCallIndexProperty(t *testing.T) {
	e := exprOf(t, "obj.foo(1)[0].bar")
	prop, ok := e.(*ast.Property)
	require.True(t, ok)
	assert.Equal(t, "bar", prop.Name)
	idx, ok := prop.Object.(*ast.Index)
	require.True(t, ok)
	call, ok := idx.Object.(*ast.Call)
	require.True(t, ok)
	mc, ok := call.Callee.(*ast.MethodCall)
	require.True(t, ok)
	assert.Equal(t, "foo", mc.Name)
}

func TestBangMethodCall(t *testing.T) {
	e := exprOf(t, "xs.sort!()")
	mc, ok := e.(*ast.MethodCall)
	require.True(t, ok)
	assert.Equal(t, "sort", mc.Name)
	assert.True(t, mc.Bang)
}

func TestAssignStmt(t *testing.T) {
	s := parseOne(t, "x = 5")
	as, ok := s.(*ast.AssignStmt)
	require.True(t, ok)
	assert.Equal(t, ast.TargetIdentifier, as.Target.Kind)
	assert.Equal(t, "x", as.Target.Name)
}

func TestAssignIndexAndProperty(t *testing.T) {
	s := parseOne(t, "xs[0] = 1")
	as := s.(*ast.AssignStmt)
	assert.Equal(t, ast.TargetIndex, as.Target.Kind)

	s2 := parseOne(t, "obj.name = \"x\"")
	as2 := s2.(*ast.AssignStmt)
	assert.Equal(t, ast.TargetProperty, as2.Target.Kind)
	assert.Equal(t, "name", as2.Target.Property)
}

func TestGraphDefFromParent(t *testing.T) {
	s := parseOne(t, "Dog = graph from Animal {\n speak: \"woof\"\n}")
	gd, ok := s.(*ast.GraphDef)
	require.True(t, ok)
	assert.Equal(t, "Dog", gd.Name)
	require.NotNil(t, gd.Literal.Parent)
	require.Len(t, gd.Literal.Entries, 1)
	assert.Equal(t, ast.GraphEntryData, gd.Literal.Entries[0].Kind)
}

func TestIfElifElse(t *testing.T) {
	s := parseOne(t, `
if a {
  b
} elif c {
  d
} else {
  e
}`)
	ifs, ok := s.(*ast.IfStmt)
	require.True(t, ok)
	require.Len(t, ifs.Else, 1)
	nested, ok := ifs.Else[0].(*ast.IfStmt)
	require.True(t, ok)
	require.Len(t, nested.Else, 1)
}

func TestWhileLoop(t *testing.T) {
	s := parseOne(t, "while x < 10 {\n x = x + 1\n}")
	ws, ok := s.(*ast.WhileStmt)
	require.True(t, ok)
	require.Len(t, ws.Body, 1)
}

func TestForLoop(t *testing.T) {
	s := parseOne(t, "for v in xs {\n print(v)\n}")
	fs, ok := s.(*ast.ForStmt)
	require.True(t, ok)
	assert.Equal(t, "v", fs.Var)
}

func TestTryCatchFinally(t *testing.T) {
	s := parseOne(t, `
try {
  risky()
} catch e {
  handle(e)
} catch {
  fallback()
} finally {
  cleanup()
}`)
	ts, ok := s.(*ast.TryStmt)
	require.True(t, ok)
	require.Len(t, ts.Catches, 2)
	assert.Equal(t, "e", ts.Catches[0].Var)
	assert.Equal(t, "", ts.Catches[1].Var)
	require.Len(t, ts.Finally, 1)
}

func TestThrowAndReturn(t *testing.T) {
	s := parseOne(t, "throw \"boom\"")
	_, ok := s.(*ast.ThrowStmt)
	require.True(t, ok)

	s2 := parseOne(t, "return 1 + 1")
	rs := s2.(*ast.ReturnStmt)
	require.NotNil(t, rs.Value)

	s3 := parseOne(t, "return")
	rs3 := s3.(*ast.ReturnStmt)
	assert.Nil(t, rs3.Value)
}

func TestConfigureBodyless(t *testing.T) {
	s := parseOne(t, "configure { error_mode: :strict }")
	cs, ok := s.(*ast.ConfigureStmt)
	require.True(t, ok)
	assert.Nil(t, cs.Body)
	require.Len(t, cs.Options, 1)
	assert.Equal(t, "error_mode", cs.Options[0].Key)
}

func TestPrecisionWithBody(t *testing.T) {
	s := parseOne(t, "precision { decimal_places: 2 } {\n x = 1.005\n}")
	ps, ok := s.(*ast.PrecisionStmt)
	require.True(t, ok)
	require.Len(t, ps.Body, 1)
}

func TestImport(t *testing.T) {
	s := parseOne(t, `import "collections"`)
	is, ok := s.(*ast.ImportStmt)
	require.True(t, ok)
	assert.Equal(t, "collections", is.Path)
}

func TestPlainFnDef(t *testing.T) {
	s := parseOne(t, "fn add(a, b) {\n return a + b\n}")
	fd, ok := s.(*ast.FnDef)
	require.True(t, ok)
	assert.Equal(t, "add", fd.Name)
	assert.Equal(t, []string{"a", "b"}, fd.Params)
}

func TestPatternMatchingFnDef(t *testing.T) {
	s := parseOne(t, `
fn fact
  |0| => 1
  |n| => n
`)
	fd, ok := s.(*ast.FnDef)
	require.True(t, ok)
	require.Len(t, fd.Clauses, 2)
}

func TestMethodDefWithGuardAndSetterAndGetter(t *testing.T) {
	s := parseOne(t, "fn Dog.speak(vol) when vol > 0 {\n return \"woof\"\n}")
	md, ok := s.(*ast.MethodDef)
	require.True(t, ok)
	assert.Equal(t, "Dog", md.Owner)
	assert.Equal(t, "speak", md.Name)
	require.NotNil(t, md.Guard)

	s2 := parseOne(t, "fn Dog.name= (val) {\n self.set_attribute(\"name\", val)\n}")
	md2 := s2.(*ast.MethodDef)
	assert.True(t, md2.IsSetter)

	s3 := parseOne(t, "fn Dog.name {\n return self.get_attribute(\"name\")\n}")
	md3 := s3.(*ast.MethodDef)
	assert.True(t, md3.IsGetter)
}

func TestGraphLiteralEntries(t *testing.T) {
	e := exprOf(t, `graph {
  add_rule(:no_cycles)
  weight: 5
  fn describe() {
    return "a graph"
  }
}`)
	gl, ok := e.(*ast.GraphLiteral)
	require.True(t, ok)
	require.Len(t, gl.Entries, 3)
	assert.Equal(t, ast.GraphEntryInvoke, gl.Entries[0].Kind)
	assert.Equal(t, ast.GraphEntryData, gl.Entries[1].Kind)
	assert.Equal(t, ast.GraphEntryMethod, gl.Entries[2].Kind)
}

func TestTreeLiteralDesugarsToWithRuleset(t *testing.T) {
	e := exprOf(t, "tree {\n root: 1\n}")
	gl, ok := e.(*ast.GraphLiteral)
	require.True(t, ok)
	assert.Equal(t, "tree", gl.TypeTag)
	require.True(t, len(gl.Entries) >= 2)
	assert.Equal(t, ast.GraphEntryInvoke, gl.Entries[0].Kind)
	assert.Equal(t, "with_ruleset", gl.Entries[0].Invoke.Callee.(*ast.Identifier).Name)
}

func TestMatchExpression(t *testing.T) {
	e := exprOf(t, `match shape {
  |[:circle, r]| => r,
  |[:square, s]| => s,
  _ => 0,
}`)
	m, ok := e.(*ast.Match)
	require.True(t, ok)
	require.Len(t, m.Clauses, 3)
	tagged, ok := m.Clauses[0].Pattern.(*ast.PatTagged)
	require.True(t, ok)
	assert.Equal(t, "circle", tagged.Tag)
	_, isWildcard := m.Clauses[2].Pattern.(*ast.PatWildcard)
	assert.True(t, isWildcard)
}

func TestListPatternWithRest(t *testing.T) {
	s := parseOne(t, `
fn head
  |[x, ...rest]| => x
`)
	fd := s.(*ast.FnDef)
	pl, ok := fd.Clauses[0].Pattern.(*ast.PatList)
	require.True(t, ok)
	require.NotNil(t, pl.Rest)
	assert.Equal(t, "rest", *pl.Rest)
}

func TestInlineIfAndUnless(t *testing.T) {
	e := exprOf(t, "1 if cond")
	iff, ok := e.(*ast.InlineIf)
	require.True(t, ok)
	assert.False(t, iff.Unless)

	e2 := exprOf(t, "1 unless cond")
	iff2 := e2.(*ast.InlineIf)
	assert.True(t, iff2.Unless)
}

func TestSuperCall(t *testing.T) {
	s := parseOne(t, "fn Dog.speak() {\n return super.speak()\n}")
	md := s.(*ast.MethodDef)
	rs := md.Body[0].(*ast.ReturnStmt)
	sup, ok := rs.Value.(*ast.Super)
	require.True(t, ok)
	assert.Equal(t, "speak", sup.Name)
}

func TestLambdaLiteral(t *testing.T) {
	e := exprOf(t, "fn(x, y) {\n return x + y\n}")
	lam, ok := e.(*ast.Lambda)
	require.True(t, ok)
	assert.Equal(t, []string{"x", "y"}, lam.Params)
}
