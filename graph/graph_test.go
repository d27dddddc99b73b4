package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xvandervort/graphoid-sub001/value"
)

func TestAddNodeAndEdge(t *testing.T) {
	g := New("general")
	a, err := g.AddNode("", value.NewStr("a"), "")
	require.NoError(t, err)
	b, err := g.AddNode("", value.NewStr("b"), "")
	require.NoError(t, err)
	require.NoError(t, g.AddEdge(a, b, "next", nil, Directed, nil))
	assert.True(t, g.HasEdge(a, b, "next"))
	assert.Equal(t, []string{b}, g.Successors(a, ""))
}

func TestRuleRejectionLeavesGraphUnchanged(t *testing.T) {
	g := New("dag")
	g.Ruleset.Add(NoCycles())
	a, _ := g.AddNode("", value.NewNumber(1), "")
	b, _ := g.AddNode("", value.NewNumber(2), "")
	require.NoError(t, g.AddEdge(a, b, "edge", nil, Directed, nil))

	before := g.Copy().(*Graph)
	err := g.AddEdge(b, a, "edge", nil, Directed, nil)
	require.Error(t, err)
	assert.True(t, g.Equal(before), "rejected mutation must leave the graph unchanged")
}

func TestSingleRootRule(t *testing.T) {
	g := New("tree")
	a, _ := g.AddNode("", value.NewStr("root"), "")
	b, _ := g.AddNode("", value.NewStr("child"), "")
	require.NoError(t, g.AddEdge(a, b, "child", nil, Directed, nil))

	// Attaching the rule doesn't retroactively validate existing state;
	// it only governs mutations from this point on.
	g.Ruleset.Add(SingleRoot())

	_, err := g.AddNode("", value.NewStr("second-root"), "")
	require.Error(t, err, "a second unconnected root should violate single_root")
}

func TestMaxChildrenRule(t *testing.T) {
	g := New("tree")
	g.Ruleset.Add(MaxChildren(1))
	a, _ := g.AddNode("", value.NewStr("a"), "")
	b, _ := g.AddNode("", value.NewStr("b"), "")
	c, _ := g.AddNode("", value.NewStr("c"), "")
	require.NoError(t, g.AddEdge(a, b, "child", nil, Directed, nil))
	err := g.AddEdge(a, c, "child", nil, Directed, nil)
	require.Error(t, err)
}

func TestWeightedEdgesRuleRequiresWeight(t *testing.T) {
	g := New("dag")
	g.Ruleset.Add(WeightedEdges())
	a, _ := g.AddNode("", value.NewStr("a"), "")
	b, _ := g.AddNode("", value.NewStr("b"), "")
	err := g.AddEdge(a, b, "edge", nil, Directed, nil)
	require.Error(t, err)
	w := 2.5
	require.NoError(t, g.AddEdge(a, b, "edge", &w, Directed, nil))
}

func TestShortestPathUnweightedBFS(t *testing.T) {
	g := New("general")
	a, _ := g.AddNode("", value.NewStr("a"), "")
	b, _ := g.AddNode("", value.NewStr("b"), "")
	c, _ := g.AddNode("", value.NewStr("c"), "")
	require.NoError(t, g.AddEdge(a, b, "e", nil, Directed, nil))
	require.NoError(t, g.AddEdge(b, c, "e", nil, Directed, nil))

	res, err := g.ShortestPath(a, c, "", false)
	require.NoError(t, err)
	assert.Equal(t, []string{a, b, c}, res.Nodes)
	assert.Equal(t, float64(2), res.Distance)
}

func TestShortestPathWeightedDijkstra(t *testing.T) {
	g := New("dag")
	a, _ := g.AddNode("", value.NewStr("a"), "")
	b, _ := g.AddNode("", value.NewStr("b"), "")
	c, _ := g.AddNode("", value.NewStr("c"), "")
	w1, w2, w3 := 5.0, 1.0, 1.0
	require.NoError(t, g.AddEdge(a, c, "e", &w1, Directed, nil))
	require.NoError(t, g.AddEdge(a, b, "e", &w2, Directed, nil))
	require.NoError(t, g.AddEdge(b, c, "e", &w3, Directed, nil))

	res, err := g.ShortestPath(a, c, "", true)
	require.NoError(t, err)
	assert.Equal(t, []string{a, b, c}, res.Nodes)
	assert.Equal(t, 2.0, res.Distance)
}

func TestShortestPathNoPath(t *testing.T) {
	g := New("general")
	a, _ := g.AddNode("", value.NewStr("a"), "")
	b, _ := g.AddNode("", value.NewStr("b"), "")
	_, err := g.ShortestPath(a, b, "", false)
	require.Error(t, err)
}

func TestHasPathAndFindPath(t *testing.T) {
	g := New("general")
	a, _ := g.AddNode("", value.NewStr("a"), "")
	b, _ := g.AddNode("", value.NewStr("b"), "")
	c, _ := g.AddNode("", value.NewStr("c"), "")
	require.NoError(t, g.AddEdge(a, b, "e", nil, Directed, nil))

	assert.True(t, g.HasPath(a, b, ""))
	assert.False(t, g.HasPath(a, c, ""))

	res, err := g.FindPath(a, b, "")
	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, res.Nodes)
}

func TestPromoteListRoundTrip(t *testing.T) {
	l := value.NewList([]value.Value{value.NewNumber(1), value.NewNumber(2), value.NewNumber(3)})
	g := PromoteList(l)
	back := g.ToList()
	assert.True(t, l.Equal(back))
}

func TestPromoteMapRoundTrip(t *testing.T) {
	m := value.NewMap()
	m.Set("x", value.NewNumber(1))
	m.Set("y", value.NewNumber(2))
	g := PromoteMap(m)
	back := g.ToMap()
	assert.True(t, m.Equal(back))
}

func TestExtractSubgraph(t *testing.T) {
	g := New("general")
	a, _ := g.AddNode("", value.NewStr("a"), "")
	b, _ := g.AddNode("", value.NewStr("b"), "")
	c, _ := g.AddNode("", value.NewStr("c"), "")
	require.NoError(t, g.AddEdge(a, b, "e", nil, Directed, nil))
	require.NoError(t, g.AddEdge(b, c, "e", nil, Directed, nil))

	sub, err := g.Extract([]string{a, b})
	require.NoError(t, err)
	assert.Equal(t, 2, sub.NodeCount())
	assert.Equal(t, 1, sub.EdgeCount())
}

func TestFindAndReconnectOrphans(t *testing.T) {
	g := New("general")
	root, _ := g.AddNode("", value.NewStr("root"), "")
	orphan, _ := g.AddNode("", value.NewStr("orphan"), "")
	assert.Equal(t, []string{root, orphan}, g.FindOrphans())

	require.NoError(t, g.ReconnectOrphans(root, "child"))
	assert.Empty(t, g.FindOrphans())
}

func TestClassLikeInheritanceAndSuper(t *testing.T) {
	parent := New("Animal")
	parent.DefineMethod(&Method{
		Name: "speak",
		Body: func(self *Graph, args []value.Value) (value.Value, error) {
			return value.NewStr("..."), nil
		},
	})

	child := From(parent, "Dog")
	child.DefineMethod(&Method{
		Name: "speak",
		Body: func(self *Graph, args []value.Value) (value.Value, error) {
			parentResult, err := child.ResolveSuper("speak", self, args)
			require.NoError(t, err)
			base, err := parentResult.Body(self, args)
			require.NoError(t, err)
			return value.NewStr(base.String() + " Woof!"), nil
		},
	})

	m, err := child.ResolveMethod("speak", child, nil)
	require.NoError(t, err)
	result, err := m.Body(child, nil)
	require.NoError(t, err)
	assert.Equal(t, "... Woof!", result.String())
	assert.True(t, child.IsA("Animal"))
}

func TestPrivateMethodRejected(t *testing.T) {
	g := New("general")
	g.DefineMethod(&Method{Name: "_helper", Body: func(self *Graph, args []value.Value) (value.Value, error) {
		return value.NoneValue, nil
	}})
	_, err := g.ResolveMethod("_helper", g, nil)
	require.Error(t, err)
}

func TestIncludeDoesNotAffectSuper(t *testing.T) {
	parent := New("Base")
	parent.DefineMethod(&Method{Name: "greet", Body: func(self *Graph, args []value.Value) (value.Value, error) {
		return value.NewStr("base"), nil
	}})
	child := From(parent, "Child")

	mixin := New("Mixin")
	mixin.DefineMethod(&Method{Name: "extra", Body: func(self *Graph, args []value.Value) (value.Value, error) {
		return value.NewStr("mixin"), nil
	}})
	child.Include(mixin)

	assert.True(t, child.RespondsTo("extra"))
	assert.Nil(t, child.Parent.Methods["extra"])
	_, err := child.ResolveSuper("extra", child, nil)
	require.Error(t, err, "include must not make extra reachable via super")
}

func TestBehaviorsTransformOnIngress(t *testing.T) {
	g := New("general")
	g.Behaviors = append(g.Behaviors, Uppercase())
	id, err := g.AddNode("", value.NewStr("hi"), "")
	require.NoError(t, err)
	n, _ := g.GetNode(id)
	assert.Equal(t, "HI", n.Value.String())
}

func TestGraphMatchBasic(t *testing.T) {
	g := New("general")
	_, _ = g.AddNode("u1", value.NewStr("alice"), "User")
	_, _ = g.AddNode("u2", value.NewStr("bob"), "User")

	results := g.Match([]value.Pattern{{Kind: value.PatternNode, Var: "u", NodeType: "User"}})
	rows := results.Return([]string{"u"})
	assert.Len(t, rows, 2)
}

func TestConnectedComponents(t *testing.T) {
	g := New("general")
	a, _ := g.AddNode("", value.NewStr("a"), "")
	b, _ := g.AddNode("", value.NewStr("b"), "")
	_, _ = g.AddNode("", value.NewStr("c"), "")
	require.NoError(t, g.AddEdge(a, b, "e", nil, Undirected, nil))

	comps := g.ConnectedComponents()
	assert.Len(t, comps, 2)
}
