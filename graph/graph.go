// Package graph is the single representation shared by every compound
// Graphoid collection once it carries a rule, a behavior, or a method:
// lists, maps, trees, and general graphs are all the same underlying
// node/edge structure wearing a different type tag (spec.md §3.3, §4.4).
//
// The adjacency-map shape, the Copy/String rendering, and the DFS/
// TopologicalSort-style traversal helpers are grounded in mgmt's
// pgraph.Graph (an adjacency map of *Vertex -> *Vertex -> *Edge with a
// mutex-guarded small bit of state and a VertexSlice sort helper for
// deterministic enumeration); unlike pgraph, a Graphoid Graph's vertices
// carry an arbitrary value.Value payload rather than an embedded resource,
// and edges carry an optional weight, a type label, and a direction instead
// of just a name.
package graph

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/xvandervort/graphoid-sub001/errs"
	"github.com/xvandervort/graphoid-sub001/position"
	"github.com/xvandervort/graphoid-sub001/value"
)

// Direction distinguishes directed from undirected edges (spec.md §3.3).
type Direction int

const (
	Directed Direction = iota
	Undirected
)

// Layer selects which part of the graph a query inspects: the user-visible
// data layer, the class-like method layer, or both (spec.md §4.4 "Query
// (direct)").
type Layer int

const (
	LayerData Layer = iota
	LayerMethods
	LayerAll
)

// Node is a single graph vertex: a stable string id, a value payload, an
// optional named type, and a small attribute map (spec.md §3.3).
type Node struct {
	ID    string
	Value value.Value
	Type  string
	Attrs map[string]value.Value
}

func (n *Node) clone() *Node {
	attrs := make(map[string]value.Value, len(n.Attrs))
	for k, v := range n.Attrs {
		attrs[k] = v.Copy()
	}
	var val value.Value
	if n.Value != nil {
		val = n.Value.Copy()
	}
	return &Node{ID: n.ID, Value: val, Type: n.Type, Attrs: attrs}
}

// Edge connects two nodes by id, carries a type label, an optional weight,
// a direction, and a small attribute map (spec.md §3.3). Weight is a
// first-class optional field, never folded into Attrs.
type Edge struct {
	From, To  string
	Type      string
	Weight    *float64
	Direction Direction
	Attrs     map[string]value.Value
}

func (e *Edge) clone() *Edge {
	attrs := make(map[string]value.Value, len(e.Attrs))
	for k, v := range e.Attrs {
		attrs[k] = v.Copy()
	}
	var w *float64
	if e.Weight != nil {
		wv := *e.Weight
		w = &wv
	}
	return &Edge{From: e.From, To: e.To, Type: e.Type, Weight: w, Direction: e.Direction, Attrs: attrs}
}

// Graph is the shared graph representation backing every graph-backed
// container (spec.md §3.3). It satisfies value.Value so it can be stored
// wherever a plain value.List/value.Map could be, which is how list/map
// promotion (§4.5 "Collection promotion") is able to be transparent: a
// Graph with TypeTag == "list" answers the same list-shaped operations a
// value.List does, plus the graph query surface.
type Graph struct {
	mu sync.Mutex // guards nextSeq only; single-threaded execution per spec.md §5, kept for defensive symmetry with pgraph's mutex-guarded state

	instance uuid.UUID // fresh per Copy, exposed via InstanceID; IsA and Equal do not consult it

	// TypeTag is the surface-operations tag of spec.md §3.3: ":list",
	// ":map", ":tree", ":general", ":directed", etc. type_of() always
	// returns "graph" regardless of TypeTag once a container is promoted.
	TypeTag string

	nodes map[string]*Node
	order []string // insertion order, for deterministic enumeration (spec.md §5)
	edges []*Edge

	Ruleset   *Ruleset
	Behaviors []Behavior

	// Methods holds the method layer for class-like graphs (spec.md §4.7
	// "Class-like graphs"), keyed by method name to an ordered list of
	// guarded bodies (first matching guard wins, in definition order).
	Methods map[string][]*Method
	// Parent is the `from` parent captured at clone time, consulted only
	// by `super` (see DESIGN.md's decision on the super/include Open
	// Question).
	Parent *Graph

	nextSeq int
}

// New builds an empty Graph with the given type tag and the default,
// rule-free/behavior-free ruleset.
func New(typeTag string) *Graph {
	return &Graph{
		instance: uuid.New(),
		TypeTag:  typeTag,
		nodes:    make(map[string]*Node),
		Ruleset:  NewRuleset(),
		Methods:  make(map[string][]*Method),
	}
}

func (g *Graph) Type() value.TypeName { return value.TypeGraph }

func (g *Graph) String() string {
	return fmt.Sprintf("<graph:%s nodes=%d edges=%d>", g.TypeTag, len(g.nodes), len(g.edges))
}

// Equal implements structural equality over the data layer only: node set
// and edge set. Rules, behaviors, the method layer and Parent link are excluded
// — see DESIGN.md's resolution of the "Equality over graphs with methods"
// Open Question.
func (g *Graph) Equal(other value.Value) bool {
	o, ok := other.(*Graph)
	if !ok || len(g.nodes) != len(o.nodes) || len(g.edges) != len(o.edges) {
		return false
	}
	for id, n := range g.nodes {
		on, ok := o.nodes[id]
		if !ok || n.Type != on.Type || !n.Value.Equal(on.Value) {
			return false
		}
	}
	gEdges := sortedEdgeStrings(g.edges)
	oEdges := sortedEdgeStrings(o.edges)
	if len(gEdges) != len(oEdges) {
		return false
	}
	for i := range gEdges {
		if gEdges[i] != oEdges[i] {
			return false
		}
	}
	return true
}

func sortedEdgeStrings(edges []*Edge) []string {
	out := make([]string, len(edges))
	for i, e := range edges {
		w := "none"
		if e.Weight != nil {
			w = fmt.Sprintf("%g", *e.Weight)
		}
		out[i] = fmt.Sprintf("%s->%s:%s:%s", e.From, e.To, e.Type, w)
	}
	sort.Strings(out)
	return out
}

// Copy deep-clones the entire graph: nodes, edges, ruleset, behaviors, and
// (shallow) method layer, implementing the copy-on-assignment rule of
// spec.md §3.5 for graph-backed containers ("assignment produces an
// independent clone").
func (g *Graph) Copy() value.Value {
	cp := &Graph{
		instance: uuid.New(),
		TypeTag:  g.TypeTag,
		nodes:    make(map[string]*Node, len(g.nodes)),
		order:    append([]string{}, g.order...),
		edges:    make([]*Edge, len(g.edges)),
		Ruleset:  g.Ruleset.clone(),
		Behaviors: append([]Behavior{}, g.Behaviors...),
		Methods:  cloneMethods(g.Methods),
		Parent:   g.Parent, // parent reference only, per inheritance-by-cloning design
		nextSeq:  g.nextSeq,
	}
	for id, n := range g.nodes {
		cp.nodes[id] = n.clone()
	}
	for i, e := range g.edges {
		cp.edges[i] = e.clone()
	}
	return cp
}

func (g *Graph) Truthy() bool { return len(g.nodes) > 0 }

// InstanceID returns the graph's clone-stable identity. Two clones produced
// by separate Copy() calls never share one; `graph from Parent` also
// allocates a fresh id for the child.
func (g *Graph) InstanceID() uuid.UUID { return g.instance }

func (g *Graph) allocID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	for {
		id := fmt.Sprintf("node_%d", g.nextSeq)
		g.nextSeq++
		if _, exists := g.nodes[id]; !exists {
			return id
		}
	}
}

// --- Mutation -------------------------------------------------------------
//
// Every mutation below validates against a proposed next-state view before
// committing (design note in spec.md §9 "Rules as predicates, not
// mutators"): it builds the candidate nodes/edges, runs behaviors, checks
// the ruleset, and only assigns back into the receiver's fields if the
// candidate passes. A rejected mutation therefore leaves g completely
// unchanged (spec.md Testable Property 3), with no separate rollback path
// to keep in sync.

// AddNode adds a node with the given id (or an auto-generated "node_<n>" if
// id is ""), applying ingress behaviors to val first, then validating the
// ruleset. Returns the id actually used.
func (g *Graph) AddNode(id string, val value.Value, typ string) (string, error) {
	if id == "" {
		id = g.allocID()
	}
	if _, exists := g.nodes[id]; exists {
		return "", errs.New(position.KindInvalidArgument, "node %q already exists", id)
	}

	transformed, err := applyBehaviors(g.Behaviors, val)
	if err != nil {
		return "", err
	}

	proposed := g.snapshot()
	proposed.nodes[id] = &Node{ID: id, Value: transformed, Type: typ, Attrs: map[string]value.Value{}}
	proposed.order = append(proposed.order, id)

	if err := g.Ruleset.Validate(proposed); err != nil {
		return "", err
	}
	g.commit(proposed)
	return id, nil
}

// OrphanPolicy controls what RemoveNode does with edges left dangling.
type OrphanPolicy int

const (
	RejectIfOrphans OrphanPolicy = iota
	AllowOrphans
	DeleteOrphans
	Reconnect
)

// RemoveNode removes the node with the given id according to policy
// (spec.md §4.4 "Mutation").
func (g *Graph) RemoveNode(id string, policy OrphanPolicy) error {
	if _, ok := g.nodes[id]; !ok {
		return errs.New(position.KindInvalidArgument, "no such node %q", id)
	}

	proposed := g.snapshot()
	delete(proposed.nodes, id)
	proposed.order = removeString(proposed.order, id)

	var kept []*Edge
	var incoming, outgoing []*Edge
	for _, e := range g.edges {
		if e.From == id {
			outgoing = append(outgoing, e)
			continue
		}
		if e.To == id {
			incoming = append(incoming, e)
			continue
		}
		kept = append(kept, e.clone())
	}

	switch policy {
	case RejectIfOrphans:
		if len(incoming) > 0 || len(outgoing) > 0 {
			return errs.New(position.KindInvalidArgument, "removing node %q would orphan %d edge(s)", id, len(incoming)+len(outgoing))
		}
	case AllowOrphans:
		// kept already excludes edges touching id; nothing further to do.
	case DeleteOrphans:
		// same as AllowOrphans: edges touching id are dropped outright.
	case Reconnect:
		for _, in := range incoming {
			for _, out := range outgoing {
				if in.Type != out.Type {
					continue
				}
				kept = append(kept, &Edge{From: in.From, To: out.To, Type: in.Type, Weight: in.Weight, Direction: in.Direction, Attrs: map[string]value.Value{}})
			}
		}
	}
	proposed.edges = kept

	if err := g.Ruleset.Validate(proposed); err != nil {
		return err
	}
	g.commit(proposed)
	return nil
}

func removeString(s []string, target string) []string {
	out := s[:0:0]
	for _, v := range s {
		if v != target {
			out = append(out, v)
		}
	}
	return out
}

// AddEdge adds an edge from -> to of the given type, with an optional
// weight (nil means unweighted) and optional attributes.
func (g *Graph) AddEdge(from, to, typ string, weight *float64, dir Direction, attrs map[string]value.Value) error {
	if _, ok := g.nodes[from]; !ok {
		return errs.New(position.KindInvalidArgument, "no such node %q", from)
	}
	if _, ok := g.nodes[to]; !ok {
		return errs.New(position.KindInvalidArgument, "no such node %q", to)
	}
	if attrs == nil {
		attrs = map[string]value.Value{}
	}

	proposed := g.snapshot()
	proposed.edges = append(proposed.edges, &Edge{From: from, To: to, Type: typ, Weight: weight, Direction: dir, Attrs: attrs})

	if err := g.Ruleset.Validate(proposed); err != nil {
		return err
	}
	g.commit(proposed)
	return nil
}

// RemoveEdge removes the first from->to edge of the given type.
func (g *Graph) RemoveEdge(from, to, typ string) error {
	proposed := g.snapshot()
	idx := findEdge(proposed.edges, from, to, typ)
	if idx < 0 {
		return errs.New(position.KindInvalidArgument, "no such edge %s->%s:%s", from, to, typ)
	}
	proposed.edges = append(proposed.edges[:idx], proposed.edges[idx+1:]...)

	if err := g.Ruleset.Validate(proposed); err != nil {
		return err
	}
	g.commit(proposed)
	return nil
}

func findEdge(edges []*Edge, from, to, typ string) int {
	for i, e := range edges {
		if e.From == from && e.To == to && e.Type == typ {
			return i
		}
	}
	return -1
}

// SetEdgeWeight sets the weight of the first matching edge.
func (g *Graph) SetEdgeWeight(from, to, typ string, w float64) error {
	proposed := g.snapshot()
	idx := findEdge(proposed.edges, from, to, typ)
	if idx < 0 {
		return errs.New(position.KindInvalidArgument, "no such edge %s->%s:%s", from, to, typ)
	}
	proposed.edges[idx].Weight = &w

	if err := g.Ruleset.Validate(proposed); err != nil {
		return err
	}
	g.commit(proposed)
	return nil
}

// RemoveEdgeWeight clears the weight of the first matching edge.
func (g *Graph) RemoveEdgeWeight(from, to, typ string) error {
	proposed := g.snapshot()
	idx := findEdge(proposed.edges, from, to, typ)
	if idx < 0 {
		return errs.New(position.KindInvalidArgument, "no such edge %s->%s:%s", from, to, typ)
	}
	proposed.edges[idx].Weight = nil

	if err := g.Ruleset.Validate(proposed); err != nil {
		return err
	}
	g.commit(proposed)
	return nil
}

// SetAttribute sets a key/value attribute on a node (isEdge false) or an edge.
// For edges, from/to/edgeType identify the edge; for nodes, from is the
// node id and to/edgeType are ignored.
func (g *Graph) SetAttribute(isEdge bool, from, to, edgeType, key string, val value.Value) error {
	transformed, err := applyBehaviors(g.Behaviors, val)
	if err != nil {
		return err
	}

	proposed := g.snapshot()
	if isEdge {
		idx := findEdge(proposed.edges, from, to, edgeType)
		if idx < 0 {
			return errs.New(position.KindInvalidArgument, "no such edge %s->%s:%s", from, to, edgeType)
		}
		proposed.edges[idx].Attrs[key] = transformed
	} else {
		n, ok := proposed.nodes[from]
		if !ok {
			return errs.New(position.KindInvalidArgument, "no such node %q", from)
		}
		n.Attrs[key] = transformed
	}

	if err := g.Ruleset.Validate(proposed); err != nil {
		return err
	}
	g.commit(proposed)
	return nil
}

// SetNodeValue replaces a node's payload value, applying ingress behaviors
// first, the operation `self.prop = expr` performs against a data-layer
// node named prop (spec.md §4.7 "Method dispatch" data-layer fallback).
func (g *Graph) SetNodeValue(id string, val value.Value) error {
	transformed, err := applyBehaviors(g.Behaviors, val)
	if err != nil {
		return err
	}

	proposed := g.snapshot()
	n, ok := proposed.nodes[id]
	if !ok {
		return errs.New(position.KindInvalidArgument, "no such node %q", id)
	}
	n.Value = transformed

	if err := g.Ruleset.Validate(proposed); err != nil {
		return err
	}
	g.commit(proposed)
	return nil
}

// DeleteAttribute removes a key/value attribute from a node or edge.
func (g *Graph) DeleteAttribute(isEdge bool, from, to, edgeType, key string) error {
	proposed := g.snapshot()
	if isEdge {
		idx := findEdge(proposed.edges, from, to, edgeType)
		if idx < 0 {
			return errs.New(position.KindInvalidArgument, "no such edge %s->%s:%s", from, to, edgeType)
		}
		delete(proposed.edges[idx].Attrs, key)
	} else {
		n, ok := proposed.nodes[from]
		if !ok {
			return errs.New(position.KindInvalidArgument, "no such node %q", from)
		}
		delete(n.Attrs, key)
	}

	if err := g.Ruleset.Validate(proposed); err != nil {
		return err
	}
	g.commit(proposed)
	return nil
}

// snapshot builds a candidate next-state Graph sharing the receiver's
// ruleset/behaviors/methods (those aren't part of what a mutation changes)
// but with independently-cloned nodes/edges so the candidate can be mutated
// freely without touching the receiver until Ruleset.Validate passes.
func (g *Graph) snapshot() *Graph {
	cp := &Graph{
		TypeTag: g.TypeTag,
		nodes:   make(map[string]*Node, len(g.nodes)),
		order:   append([]string{}, g.order...),
		edges:   make([]*Edge, len(g.edges)),
		Ruleset: g.Ruleset,
		Behaviors: g.Behaviors,
		Methods: g.Methods,
		Parent:  g.Parent,
		nextSeq: g.nextSeq,
	}
	for id, n := range g.nodes {
		cp.nodes[id] = n.clone()
	}
	for i, e := range g.edges {
		cp.edges[i] = e.clone()
	}
	return cp
}

// commit replaces the receiver's mutable fields with the validated
// candidate's, completing the mutation atomically.
func (g *Graph) commit(proposed *Graph) {
	g.nodes = proposed.nodes
	g.order = proposed.order
	g.edges = proposed.edges
	g.nextSeq = proposed.nextSeq
}

// --- Direct query -----------------------------------------------------

// HasNode reports whether id exists.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// GetNode returns the node with the given id, if present.
func (g *Graph) GetNode(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// HasEdge reports whether any from->to edge of the given type exists.
func (g *Graph) HasEdge(from, to, typ string) bool {
	return findEdge(g.edges, from, to, typ) >= 0
}

// Neighbors returns the ids reachable by a single edge from id, honoring
// direction ("" = outgoing+incoming) and an optional edge-type filter.
func (g *Graph) Neighbors(id, direction, edgeType string) []string {
	seen := map[string]bool{}
	var out []string
	add := func(n string) {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	for _, e := range g.edges {
		if edgeType != "" && e.Type != edgeType {
			continue
		}
		if (direction == "" || direction == "outgoing") && e.From == id {
			add(e.To)
		}
		if (direction == "" || direction == "incoming") && e.To == id {
			add(e.From)
		}
		if e.Direction == Undirected {
			if e.From == id {
				add(e.To)
			}
			if e.To == id {
				add(e.From)
			}
		}
	}
	sort.Strings(out)
	return out
}

// Predecessors returns ids with an edge pointing at id.
func (g *Graph) Predecessors(id, edgeType string) []string {
	return g.Neighbors(id, "incoming", edgeType)
}

// Successors returns ids id points at.
func (g *Graph) Successors(id, edgeType string) []string {
	return g.Neighbors(id, "outgoing", edgeType)
}

// OutDegree, InDegree, Degree count incident edges of the optional type.
func (g *Graph) OutDegree(id, edgeType string) int {
	n := 0
	for _, e := range g.edges {
		if e.From == id && (edgeType == "" || e.Type == edgeType) {
			n++
		}
	}
	return n
}

func (g *Graph) InDegree(id, edgeType string) int {
	n := 0
	for _, e := range g.edges {
		if e.To == id && (edgeType == "" || e.Type == edgeType) {
			n++
		}
	}
	return n
}

func (g *Graph) Degree(id, edgeType string) int {
	return g.OutDegree(id, edgeType) + g.InDegree(id, edgeType)
}

// Nodes returns node ids in insertion order (spec.md §5 "stable across
// runs for the same mutation sequence").
func (g *Graph) Nodes() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Edges returns a copy of the edge list in insertion order.
func (g *Graph) Edges() []*Edge {
	out := make([]*Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// NodeCount and EdgeCount report sizes.
func (g *Graph) NodeCount() int { return len(g.nodes) }
func (g *Graph) EdgeCount() int { return len(g.edges) }
