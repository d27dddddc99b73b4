package graph

import (
	"github.com/xvandervort/graphoid-sub001/value"
)

// PromoteList builds a graph-backed representation of a plain list the
// first time a rule, behavior, or method gets attached to it (spec.md
// §3.3 "Collection promotion", Testable Property 7: promotion is one-way,
// transparent, and lossless). Nodes are a linear chain n0 -> n1 -> ... with
// an implicit "next" edge type, preserving list order as insertion order.
func PromoteList(l *value.List) *Graph {
	g := New("list")
	prev := ""
	for i, elem := range l.Elements {
		id, _ := g.AddNode("", elem, "")
		if i > 0 {
			_ = g.AddEdge(prev, id, "next", nil, Directed, nil)
		}
		prev = id
	}
	return g
}

// PromoteMap builds a graph-backed representation of a plain map: one node
// per key, using the key as the node's id (Type "key") and the value as its
// Value, with no edges (a promoted map is a flat node set until the caller
// adds structure), matching spec.md §3.3's "promoted containers keep
// answering the same surface operations" guarantee — ToList/ToMap below
// round-trip it back.
func PromoteMap(m *value.Map) *Graph {
	g := New("map")
	for _, k := range m.Keys() {
		v, _ := m.Get(k)
		_, _ = g.AddNode(k, v, "key")
	}
	return g
}

// ListNodeOrder returns the node ids of a "list"-tagged graph in list order,
// walking the "next" chain from the unique zero-indegree node. Exported so
// callers that need to address an element by position (e.g. indexed
// assignment) can resolve an index to a node id without reconstructing the
// whole value.List.
func ListNodeOrder(g *Graph) []string {
	if len(g.nodes) == 0 {
		return nil
	}
	var start string
	for _, id := range g.order {
		if g.InDegree(id, "next") == 0 {
			start = id
			break
		}
	}
	var ids []string
	seen := map[string]bool{}
	for cur := start; cur != "" && !seen[cur]; {
		seen[cur] = true
		ids = append(ids, cur)
		next := g.Successors(cur, "next")
		if len(next) == 0 {
			break
		}
		cur = next[0]
	}
	return ids
}

// ToList reconstructs a plain value.List from a "list"-tagged graph, the
// inverse of PromoteList.
func (g *Graph) ToList() *value.List {
	ids := ListNodeOrder(g)
	elems := make([]value.Value, len(ids))
	for i, id := range ids {
		elems[i] = g.nodes[id].Value
	}
	return value.NewList(elems)
}

// ToMap reconstructs a plain value.Map from a "map"-tagged graph, the
// inverse of PromoteMap, keyed by each node's id.
func (g *Graph) ToMap() *value.Map {
	m := value.NewMap()
	for _, id := range g.order {
		m.Set(id, g.nodes[id].Value)
	}
	return m
}
