package exec

import (
	"testing"

	"github.com/kylelemons/godebug/pretty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xvandervort/graphoid-sub001/builtins"
	"github.com/xvandervort/graphoid-sub001/env"
	"github.com/xvandervort/graphoid-sub001/parser"
	"github.com/xvandervort/graphoid-sub001/value"
)

// run parses and executes src against a fresh interpreter and root frame,
// the harness every test in this file shares.
func run(t *testing.T, src string) (value.Value, *Interpreter, *env.Frame) {
	t.Helper()
	stmts, err := parser.Parse("test.gr", src)
	require.NoError(t, err)
	in := New()
	fr := env.NewRoot()
	builtins.Install(fr, in.Config.Errors, in.Config.ClearErrors)
	v, err := in.RunProgram(stmts, fr)
	require.NoError(t, err)
	return v, in, fr
}

func TestArithmeticIntegerFlagPropagation(t *testing.T) {
	v, _, _ := run(t, `3 + 4`)
	n := v.(value.Number)
	assert.True(t, n.Integer)
	assert.Equal(t, float64(7), n.Val)
}

func TestDivisionNeverIntegerFlagged(t *testing.T) {
	v, _, _ := run(t, `4 / 2`)
	n := v.(value.Number)
	assert.False(t, n.Integer)
}

func TestFloorDivisionTruncatesTowardNegativeInfinity(t *testing.T) {
	v, _, _ := run(t, `-7 // 2`)
	assert.Equal(t, float64(-4), v.(value.Number).Val)
}

func TestElementWiseAddition(t *testing.T) {
	v, _, _ := run(t, `[1, 2, 3] .+ [10, 20, 30]`)
	l := v.(*value.List)
	require.Equal(t, 3, l.Len())
	assert.Equal(t, "11", l.Elements[0].String())
}

func TestShortCircuitOr(t *testing.T) {
	v, _, _ := run(t, `true or (1 / 0)`)
	assert.True(t, v.Truthy())
}

func TestAssignmentCopiesContainers(t *testing.T) {
	_, _, fr := run(t, `
a = [1, 2]
b = a
b.append!(3)
`)
	a, _ := fr.Get("a")
	b, _ := fr.Get("b")
	assert.Equal(t, 2, a.(*value.List).Len())
	assert.Equal(t, 3, b.(*value.List).Len())
}

func TestFunctionParameterCopyIsolation(t *testing.T) {
	_, _, fr := run(t, `
fn mutate(lst) {
	lst.append!(99)
}
outer = [1]
mutate(outer)
`)
	outer, _ := fr.Get("outer")
	assert.Equal(t, 1, outer.(*value.List).Len())
}

func TestWhileLoopBreakContinue(t *testing.T) {
	_, _, fr := run(t, `
i = 0
total = 0
while i < 10 {
	i = i + 1
	if i == 3 {
		continue
	}
	if i == 7 {
		break
	}
	total = total + i
}
`)
	total, _ := fr.Get("total")
	assert.Equal(t, float64(18), total.(value.Number).Val) // 1+2+4+5+6
}

func TestForOverList(t *testing.T) {
	_, _, fr := run(t, `
sum = 0
for x in [1, 2, 3, 4] {
	sum = sum + x
}
`)
	sum, _ := fr.Get("sum")
	assert.Equal(t, float64(10), sum.(value.Number).Val)
}

func TestTryCatchFinally(t *testing.T) {
	_, _, fr := run(t, `
log = []
try {
	throw "boom"
} catch e {
	log.append!(e)
} finally {
	log.append!("done")
}
`)
	log, _ := fr.Get("log")
	assert.Equal(t, 2, log.(*value.List).Len())
}

func TestMatchExpression(t *testing.T) {
	v, _, _ := run(t, `
match [1, 2, 3] {
	[a, b, ...rest] => rest
}
`)
	rest := v.(*value.List)
	assert.Equal(t, 1, rest.Len())
	assert.Equal(t, "3", rest.Elements[0].String())
}

func TestPatternMatchingFunction(t *testing.T) {
	_, _, fr := run(t, `
fn classify |[0]| => "zero" |[n]| => "nonzero"
result = classify(0)
other = classify(5)
`)
	result, _ := fr.Get("result")
	other, _ := fr.Get("other")
	assert.Equal(t, "zero", result.String())
	assert.Equal(t, "nonzero", other.String())
}

func TestGraphLiteralAndMethodDispatch(t *testing.T) {
	v, _, _ := run(t, `
Counter = graph {
	count: 0

	fn increment() {
		self.count = self.count + 1
		return self.count
	}
}
c = Counter
c.increment()
c.increment()
`)
	assert.Equal(t, float64(2), v.(value.Number).Val)
}

func TestListIntrinsicMethods(t *testing.T) {
	v, _, _ := run(t, `[3, 1, 2].sort()`)
	l := v.(*value.List)
	assert.Equal(t, "1", l.Elements[0].String())
	assert.Equal(t, "2", l.Elements[1].String())
	assert.Equal(t, "3", l.Elements[2].String())
}

func TestMapIntrinsicMethods(t *testing.T) {
	_, _, fr := run(t, `
m = {a: 1, b: 2}
m.set!("c", 3)
`)
	m, _ := fr.Get("m")
	assert.True(t, m.(*value.Map).Has("c"))
}

func TestConfigureErrorModeLenient(t *testing.T) {
	v, _, _ := run(t, `
configure { error_mode: :lenient } {
	[1, 2][10]
}
`)
	assert.Equal(t, value.TypeNone, v.Type())
}

func TestPrecisionIntegerTruncation(t *testing.T) {
	_, _, fr := run(t, `
x = 0
precision { :integer } {
	x = 3.7
}
`)
	x, _ := fr.Get("x")
	n := x.(value.Number)
	assert.True(t, n.Integer)
	assert.Equal(t, float64(3), n.Val)
}

// TestNestedListStructureMatchesExpected mirrors mgmt's
// lang.TestInterpret-style assertions, comparing a nested result against
// an expected shape with pretty.Compare instead of a plain reflect.DeepEqual
// failure message, so a mismatch prints exactly which element differs.
func TestNestedListStructureMatchesExpected(t *testing.T) {
	v, _, _ := run(t, `[[1, 2], [3, 4]]`)
	l := v.(*value.List)

	got := make([][]float64, len(l.Elements))
	for i, row := range l.Elements {
		inner := row.(*value.List)
		got[i] = make([]float64, inner.Len())
		for j, e := range inner.Elements {
			got[i][j] = e.(value.Number).Val
		}
	}
	want := [][]float64{{1, 2}, {3, 4}}
	if diff := pretty.Compare(got, want); diff != "" {
		t.Errorf("nested list structure differs (-got +want):\n%s", diff)
	}
}
