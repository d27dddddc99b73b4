package graph

import (
	"sort"
	"strconv"

	"github.com/xvandervort/graphoid-sub001/errs"
	"github.com/xvandervort/graphoid-sub001/position"
)

// Extract builds a new Graph containing only the given node ids and the
// edges that run between them, matching spec.md §4.4's
// `graph.extract(node_ids)`. The extracted graph shares the receiver's
// ruleset preset and behaviors (it's the same kind of container, just
// smaller) but is independently mutable.
func (g *Graph) Extract(ids []string) (*Graph, error) {
	set := map[string]bool{}
	for _, id := range ids {
		if !g.HasNode(id) {
			return nil, errs.New(position.KindInvalidArgument, "no such node %q", id)
		}
		set[id] = true
	}
	out := New(g.TypeTag)
	out.Ruleset = g.Ruleset.clone()
	out.Behaviors = append([]Behavior{}, g.Behaviors...)
	for _, id := range g.order {
		if set[id] {
			n := g.nodes[id]
			out.nodes[id] = n.clone()
			out.order = append(out.order, id)
		}
	}
	for _, e := range g.edges {
		if set[e.From] && set[e.To] {
			out.edges = append(out.edges, e.clone())
		}
	}
	return out, nil
}

// InsertSubgraph merges other into the receiver: nodes whose ids collide
// are renamed by an "_2", "_3", ... suffix to preserve both, matching
// spec.md §4.4 `graph.insert_subgraph(other)`. Returns the id mapping from
// other's original ids to the ids they received in the receiver, so the
// caller can reconnect edges across the boundary if desired.
func (g *Graph) InsertSubgraph(other *Graph) (map[string]string, error) {
	mapping := map[string]string{}
	proposed := g.snapshot()
	for _, id := range other.order {
		n := other.nodes[id]
		newID := id
		suffix := 2
		for {
			if _, exists := proposed.nodes[newID]; !exists {
				break
			}
			newID = id + "_" + strconv.Itoa(suffix)
			suffix++
		}
		cloned := n.clone()
		cloned.ID = newID
		proposed.nodes[newID] = cloned
		proposed.order = append(proposed.order, newID)
		mapping[id] = newID
	}
	for _, e := range other.edges {
		cloned := e.clone()
		cloned.From = mapping[e.From]
		cloned.To = mapping[e.To]
		proposed.edges = append(proposed.edges, cloned)
	}

	if err := g.Ruleset.Validate(proposed); err != nil {
		return nil, err
	}
	g.commit(proposed)
	return mapping, nil
}

// FindOrphans returns node ids with no incident edges, sorted for
// determinism (spec.md §4.4 `graph.find_orphans()`).
func (g *Graph) FindOrphans() []string {
	var out []string
	for _, id := range g.order {
		if g.Degree(id, "") == 0 {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// DeleteOrphansOp removes every orphan node, matching
// `graph.delete_orphans()`.
func (g *Graph) DeleteOrphansOp() error {
	for _, id := range g.FindOrphans() {
		if err := g.RemoveNode(id, AllowOrphans); err != nil {
			return err
		}
	}
	return nil
}

// ReconnectOrphans attaches every orphan node to root via an edge of the
// given type, matching `graph.reconnect_orphans(root, edge_type)`.
func (g *Graph) ReconnectOrphans(root, edgeType string) error {
	if !g.HasNode(root) {
		return errs.New(position.KindInvalidArgument, "no such node %q", root)
	}
	for _, id := range g.FindOrphans() {
		if id == root {
			continue
		}
		if err := g.AddEdge(root, id, edgeType, nil, Directed, nil); err != nil {
			return err
		}
	}
	return nil
}
