package graph

import (
	"fmt"

	"github.com/xvandervort/graphoid-sub001/value"
)

// MatchResult is one binding produced by a graph.match(...) query: a map
// from pattern variable name to the node id (or, for edge/path patterns,
// a synthetic descriptor) it bound to (spec.md §4.10 "graph.match").
type MatchResult struct {
	Bindings map[string]string
}

// MatchResults is the chainable result set returned by Graph.Match, letting
// callers apply .where(predicate) and .return(vars...) the way spec.md
// §4.10 chains them.
type MatchResults struct {
	graph   *Graph
	results []MatchResult
}

// Match evaluates a sequence of value.Pattern values against the graph,
// binding each pattern's Var (if set) to the node/edge it matches, and
// returns every combination that satisfies all patterns simultaneously
// (spec.md §4.10). Patterns with no Var contribute only as a structural
// constraint, not a binding.
func (g *Graph) Match(patterns []value.Pattern) *MatchResults {
	results := []MatchResult{{Bindings: map[string]string{}}}
	for _, p := range patterns {
		results = g.extendMatches(results, p)
	}
	return &MatchResults{graph: g, results: results}
}

func (g *Graph) extendMatches(partial []MatchResult, p value.Pattern) []MatchResult {
	var out []MatchResult
	switch p.Kind {
	case value.PatternNode:
		for _, base := range partial {
			for _, id := range g.order {
				n := g.nodes[id]
				if p.NodeType != "" && n.Type != p.NodeType {
					continue
				}
				next := cloneBindings(base.Bindings)
				if p.Var != "" {
					next[p.Var] = id
				}
				out = append(out, MatchResult{Bindings: next})
			}
		}
	case value.PatternEdge:
		for _, base := range partial {
			for _, e := range g.edges {
				if p.EdgeType != "" && e.Type != p.EdgeType {
					continue
				}
				next := cloneBindings(base.Bindings)
				if p.Var != "" {
					next[p.Var] = e.From + "->" + e.To
				}
				out = append(out, MatchResult{Bindings: next})
			}
		}
	case value.PatternPath:
		for _, base := range partial {
			for _, id := range g.order {
				reached := g.reachableWithin(id, p.EdgeType, p.Min, p.Max)
				for _, target := range reached {
					next := cloneBindings(base.Bindings)
					if p.Var != "" {
						next[p.Var] = id + "=>" + target
					}
					out = append(out, MatchResult{Bindings: next})
				}
			}
		}
	}
	return out
}

func cloneBindings(b map[string]string) map[string]string {
	cp := make(map[string]string, len(b))
	for k, v := range b {
		cp[k] = v
	}
	return cp
}

// reachableWithin returns node ids reachable from start by between min and
// max hops (inclusive) over edges of edgeType ("" = any).
func (g *Graph) reachableWithin(start, edgeType string, min, max int) []string {
	if max <= 0 {
		max = len(g.nodes)
	}
	type frontierEntry struct {
		id   string
		hops int
	}
	seen := map[string]int{start: 0}
	var reached []string
	queue := []frontierEntry{{id: start, hops: 0}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.hops >= max {
			continue
		}
		for _, n := range g.Neighbors(cur.id, "outgoing", edgeType) {
			if prevHops, ok := seen[n]; ok && prevHops <= cur.hops+1 {
				continue
			}
			seen[n] = cur.hops + 1
			queue = append(queue, frontierEntry{id: n, hops: cur.hops + 1})
			if cur.hops+1 >= min {
				reached = append(reached, n)
			}
		}
	}
	return reached
}

// Where filters the result set by an arbitrary predicate over each
// binding map, the `.where(predicate)` stage of spec.md §4.10's chain.
// The predicate is supplied by the executor, which has enough context to
// evaluate a Graphoid expression against the bound node values.
func (mr *MatchResults) Where(pred func(bindings map[string]value.Value) (bool, error)) (*MatchResults, error) {
	var out []MatchResult
	for _, r := range mr.results {
		resolved := make(map[string]value.Value, len(r.Bindings))
		for k, id := range r.Bindings {
			if n, ok := mr.graph.nodes[id]; ok {
				resolved[k] = n.Value
			}
		}
		ok, err := pred(resolved)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, r)
		}
	}
	return &MatchResults{graph: mr.graph, results: out}, nil
}

// Return projects each result down to the requested binding names, the
// `.return(vars...)` terminal stage of spec.md §4.10's chain.
func (mr *MatchResults) Return(vars []string) []map[string]value.Value {
	var out []map[string]value.Value
	for _, r := range mr.results {
		row := make(map[string]value.Value, len(vars))
		for _, v := range vars {
			if id, ok := r.Bindings[v]; ok {
				if n, ok := mr.graph.nodes[id]; ok {
					row[v] = n.Value
				}
			}
		}
		out = append(out, row)
	}
	return out
}

// Results exposes the raw id bindings without projection, for callers that
// want node ids directly rather than resolved values.
func (mr *MatchResults) Results() []MatchResult {
	return mr.results
}

// Rows resolves every result's bindings to its matched node's value, keyed
// by pattern variable name. This is the per-binding environment the
// executor builds `.where`/`.return` expressions against when they reach
// into a bound node's value (e.g. `u.name`), rather than the receiver-only
// projection Return(vars) gives.
func (mr *MatchResults) Rows() []map[string]value.Value {
	out := make([]map[string]value.Value, len(mr.results))
	for i, r := range mr.results {
		row := make(map[string]value.Value, len(r.Bindings))
		for k, id := range r.Bindings {
			if n, ok := mr.graph.nodes[id]; ok {
				row[k] = n.Value
			}
		}
		out[i] = row
	}
	return out
}

// MatchResults implements value.Value so a graph.match(...) chain can flow
// through the executor like any other runtime value, including being bound
// to a variable between `.where` and `.return` calls.
func (mr *MatchResults) Type() value.TypeName { return value.TypeMatchResults }
func (mr *MatchResults) String() string {
	return fmt.Sprintf("<match_results %d>", len(mr.results))
}
func (mr *MatchResults) Equal(other value.Value) bool {
	o, ok := other.(*MatchResults)
	return ok && mr == o
}
func (mr *MatchResults) Copy() value.Value { return mr }
func (mr *MatchResults) Truthy() bool      { return len(mr.results) > 0 }
