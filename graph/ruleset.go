package graph

import (
	"fmt"

	"github.com/xvandervort/graphoid-sub001/errs"
	"github.com/xvandervort/graphoid-sub001/position"
	"github.com/xvandervort/graphoid-sub001/value"
)

// Rule is a structural predicate over a candidate graph state (spec.md §4.4
// "Rules as predicates, not mutators"). Check receives the proposed
// next-state graph and returns a non-nil error describing the violation if
// the state doesn't satisfy the rule; it must never mutate g.
type Rule interface {
	Name() string
	Check(g *Graph) error
}

// Ruleset is the ordered collection of active rules attached to a graph
// (spec.md §3.3 "Ruleset"). Rules are checked in attachment order; a
// mutation can fail more than one rule at once (e.g. a node that both
// introduces a cycle and duplicates a value), so Validate runs every rule
// and aggregates every violation rather than stopping at the first.
type Ruleset struct {
	rules []Rule
}

// NewRuleset returns an empty, unrestricted ruleset.
func NewRuleset() *Ruleset {
	return &Ruleset{}
}

// Add attaches a rule, returning the ruleset for chaining.
func (r *Ruleset) Add(rule Rule) *Ruleset {
	r.rules = append(r.rules, rule)
	return r
}

// Has reports whether a rule with the given name is already attached,
// letting callers avoid attaching e.g. both weighted_edges and
// unweighted_edges.
func (r *Ruleset) Has(name string) bool {
	for _, rule := range r.rules {
		if rule.Name() == name {
			return true
		}
	}
	return false
}

// Validate checks every rule against the candidate state g and aggregates
// every violation (spec.md §4.4, SPEC_FULL.md's multi-violation reporting):
// a mutation can break more than one rule at once, and the caller should
// see all of them, not just whichever was attached first. The returned
// error's RuleName names the first rule that failed; Cause unwraps to the
// full *multierror.Error of every violation's GraphoidError for a handler
// that wants the complete list.
func (r *Ruleset) Validate(g *Graph) error {
	var aggregate error
	var first *errs.GraphoidError
	for _, rule := range r.rules {
		if err := rule.Check(g); err != nil {
			violation := errs.New(position.KindRuleViolation, "%s", err.Error()).WithRule(rule.Name())
			if first == nil {
				first = violation
			}
			aggregate = errs.Append(aggregate, violation)
		}
	}
	if first == nil {
		return nil
	}
	return first.WithCause(aggregate)
}

func (r *Ruleset) clone() *Ruleset {
	cp := &Ruleset{rules: make([]Rule, len(r.rules))}
	copy(cp.rules, r.rules)
	return cp
}

// --- Built-in rules --------------------------------------------------

type noCyclesRule struct{}

func (noCyclesRule) Name() string { return "no_cycles" }
func (noCyclesRule) Check(g *Graph) error {
	// Kahn's algorithm, the same approach pgraph.Graph.TopologicalSort
	// uses: repeatedly remove zero-indegree nodes; a cycle is anything
	// left over once no more can be removed.
	indeg := map[string]int{}
	for _, id := range g.order {
		indeg[id] = 0
	}
	for _, e := range g.edges {
		indeg[e.To]++
	}
	var queue []string
	for _, id := range g.order {
		if indeg[id] == 0 {
			queue = append(queue, id)
		}
	}
	visited := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		visited++
		for _, e := range g.edges {
			if e.From == id {
				indeg[e.To]--
				if indeg[e.To] == 0 {
					queue = append(queue, e.To)
				}
			}
		}
	}
	if visited != len(g.nodes) {
		return fmt.Errorf("graph contains a cycle")
	}
	return nil
}

type singleRootRule struct{}

func (singleRootRule) Name() string { return "single_root" }
func (singleRootRule) Check(g *Graph) error {
	roots := 0
	for _, id := range g.order {
		if g.InDegree(id, "") == 0 {
			roots++
		}
	}
	if len(g.nodes) > 0 && roots != 1 {
		return fmt.Errorf("expected exactly one root node, found %d", roots)
	}
	return nil
}

type noOrphansRule struct{}

func (noOrphansRule) Name() string { return "no_orphans" }
func (noOrphansRule) Check(g *Graph) error {
	for _, id := range g.order {
		if g.Degree(id, "") == 0 && len(g.nodes) > 1 {
			return fmt.Errorf("node %q has no edges", id)
		}
	}
	return nil
}

type maxChildrenRule struct{ n int }

func (r maxChildrenRule) Name() string { return fmt.Sprintf("max_children(%d)", r.n) }
func (r maxChildrenRule) Check(g *Graph) error {
	for _, id := range g.order {
		if g.OutDegree(id, "") > r.n {
			return fmt.Errorf("node %q has more than %d children", id, r.n)
		}
	}
	return nil
}

// MaxChildren builds a rule capping out-degree at n.
func MaxChildren(n int) Rule { return maxChildrenRule{n: n} }

type minChildrenRule struct{ n int }

func (r minChildrenRule) Name() string { return fmt.Sprintf("min_children(%d)", r.n) }
func (r minChildrenRule) Check(g *Graph) error {
	// Leaves (zero children) are exempt; any node that has started
	// branching must reach at least n children.
	for _, id := range g.order {
		deg := g.OutDegree(id, "")
		if deg > 0 && deg < r.n {
			return fmt.Errorf("node %q has fewer than %d children", id, r.n)
		}
	}
	return nil
}

// MinChildren builds a rule requiring at least n children for any
// non-leaf node's branching.
func MinChildren(n int) Rule { return minChildrenRule{n: n} }

type uniqueValuesRule struct{}

func (uniqueValuesRule) Name() string { return "unique_values" }
func (uniqueValuesRule) Check(g *Graph) error {
	seen := make([]string, 0, len(g.nodes))
	for _, id := range g.order {
		n := g.nodes[id]
		s := n.Value.String()
		for _, other := range seen {
			if other == s {
				return fmt.Errorf("duplicate node value %s", s)
			}
		}
		seen = append(seen, s)
	}
	return nil
}

type weightedEdgesRule struct{ required bool }

func (r weightedEdgesRule) Name() string {
	if r.required {
		return "weighted_edges"
	}
	return "unweighted_edges"
}
func (r weightedEdgesRule) Check(g *Graph) error {
	for _, e := range g.edges {
		if r.required && e.Weight == nil {
			return fmt.Errorf("edge %s->%s missing required weight", e.From, e.To)
		}
		if !r.required && e.Weight != nil {
			return fmt.Errorf("edge %s->%s must not carry a weight", e.From, e.To)
		}
	}
	return nil
}

// WeightedEdges requires every edge to carry a weight.
func WeightedEdges() Rule { return weightedEdgesRule{required: true} }

// UnweightedEdges rejects any weighted edge.
func UnweightedEdges() Rule { return weightedEdgesRule{required: false} }

type treeShapeRule struct{ binary bool }

func (r treeShapeRule) Name() string {
	if r.binary {
		return "binary_tree_shape"
	}
	return "tree_shape"
}
func (r treeShapeRule) Check(g *Graph) error {
	if err := (noCyclesRule{}).Check(g); err != nil {
		return err
	}
	if err := (singleRootRule{}).Check(g); err != nil {
		return err
	}
	for _, id := range g.order {
		if g.InDegree(id, "") > 1 {
			return fmt.Errorf("node %q has more than one parent", id)
		}
		if r.binary && g.OutDegree(id, "") > 2 {
			return fmt.Errorf("node %q has more than two children", id)
		}
	}
	return nil
}

// TreeShape requires acyclic, single-root, single-parent structure.
func TreeShape() Rule { return treeShapeRule{} }

// BinaryTreeShape additionally caps every node at two children.
func BinaryTreeShape() Rule { return treeShapeRule{binary: true} }

type bstOrderingRule struct{}

func (bstOrderingRule) Name() string { return "bst_ordering" }
func (bstOrderingRule) Check(g *Graph) error {
	numeric := func(id string) (float64, bool) {
		n, ok := g.nodes[id]
		if !ok {
			return 0, false
		}
		if num, ok := n.Value.(value.Number); ok {
			return num.Val, true
		}
		return 0, false
	}
	var roots []string
	for _, id := range g.order {
		if g.InDegree(id, "") == 0 {
			roots = append(roots, id)
		}
	}
	var walk func(id string, lo, hi *float64) error
	walk = func(id string, lo, hi *float64) error {
		val, ok := numeric(id)
		if !ok {
			return fmt.Errorf("bst_ordering requires numeric node values")
		}
		if lo != nil && val <= *lo {
			return fmt.Errorf("node %q violates BST ordering", id)
		}
		if hi != nil && val >= *hi {
			return fmt.Errorf("node %q violates BST ordering", id)
		}
		children := g.Successors(id, "")
		for i, c := range children {
			if i == 0 {
				newHi := val
				if err := walk(c, lo, &newHi); err != nil {
					return err
				}
			} else {
				newLo := val
				if err := walk(c, &newLo, hi); err != nil {
					return err
				}
			}
		}
		return nil
	}
	for _, root := range roots {
		if err := walk(root, nil, nil); err != nil {
			return err
		}
	}
	return nil
}

// BSTOrdering requires left-child-less-than, right-child-greater-than
// ordering at every node, assuming a tree shape is also enforced.
func BSTOrdering() Rule { return bstOrderingRule{} }

type acyclicIfDirectedRule struct{}

func (acyclicIfDirectedRule) Name() string { return "acyclic_if_directed" }
func (acyclicIfDirectedRule) Check(g *Graph) error {
	for _, e := range g.edges {
		if e.Direction == Directed {
			return (noCyclesRule{}).Check(g)
		}
	}
	return nil
}

type connectedRule struct{}

func (connectedRule) Name() string { return "connected" }
func (connectedRule) Check(g *Graph) error {
	if len(g.nodes) == 0 {
		return nil
	}
	start := g.order[0]
	seen := map[string]bool{start: true}
	queue := []string{start}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, n := range g.Neighbors(id, "", "") {
			if !seen[n] {
				seen[n] = true
				queue = append(queue, n)
			}
		}
	}
	if len(seen) != len(g.nodes) {
		return fmt.Errorf("graph is not connected")
	}
	return nil
}

// Preset names, matching spec.md §4.4's named ruleset presets.
const (
	PresetList        = "list"
	PresetTree        = "tree"
	PresetDAG         = "dag"
	PresetDirected    = "directed"
	PresetUndirected  = "undirected"
	PresetBinaryTree  = "binary_tree"
	PresetBST         = "bst"
)

// Preset builds the named ruleset, matching spec.md §4.4's table of
// built-in presets layered on top of a fresh Ruleset.
func Preset(name string) (*Ruleset, error) {
	rs := NewRuleset()
	switch name {
	case PresetList:
		rs.Add(maxChildrenRule{n: 1}).Add(singleRootRule{})
	case PresetTree:
		rs.Add(treeShapeRule{})
	case PresetBinaryTree:
		rs.Add(treeShapeRule{binary: true})
	case PresetBST:
		rs.Add(treeShapeRule{binary: true}).Add(bstOrderingRule{})
	case PresetDAG:
		rs.Add(noCyclesRule{})
	case PresetDirected:
		// directionality is enforced per-edge at AddEdge time; no extra rule needed
	case PresetUndirected:
		// same as above
	default:
		return nil, errs.New(position.KindInvalidArgument, "unknown ruleset preset %q", name)
	}
	return rs, nil
}

// Named built-in rule constructors, resolved by name for `add_rule(:name)`
// (spec.md §3.3).
func NoCycles() Rule      { return noCyclesRule{} }
func SingleRoot() Rule    { return singleRootRule{} }
func NoOrphans() Rule     { return noOrphansRule{} }
func UniqueValues() Rule  { return uniqueValuesRule{} }
func AcyclicIfDirected() Rule { return acyclicIfDirectedRule{} }
func Connected() Rule     { return connectedRule{} }

// UserPredicate is the signature a Graphoid function value supplies once
// the executor bridges value.Function.Call into it, bound to a single
// read-only argument: the candidate graph state itself.
type UserPredicate func(candidate *Graph) (bool, error)

type userRule struct {
	name string
	fn   UserPredicate
}

func (r userRule) Name() string { return r.name }
func (r userRule) Check(g *Graph) error {
	ok, err := r.fn(g)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("user rule %q rejected the candidate state", r.name)
	}
	return nil
}

// UserRule wraps a Graphoid predicate function as a Rule (spec.md §4.4
// "User rules are predicates fn(g) -> bool"). The candidate graph passed to
// fn is the proposed next-state snapshot every mutation validates against,
// never the receiver itself, so a predicate has no way to mutate the graph
// it's judging.
func UserRule(name string, fn UserPredicate) Rule {
	return userRule{name: name, fn: fn}
}
