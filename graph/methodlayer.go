package graph

import (
	"strings"

	"github.com/xvandervort/graphoid-sub001/errs"
	"github.com/xvandervort/graphoid-sub001/position"
	"github.com/xvandervort/graphoid-sub001/value"
)

// Method is one guarded clause of a method defined on a class-like graph
// (spec.md §4.7 "Class-like graphs"). Body is an opaque callback supplied
// by the executor package, which is the only place with enough context
// (the calling environment, self/super resolution) to actually run Graphoid
// statements; Guard, if non-nil, must be satisfied for this clause to be
// selected, mirroring pattern-fn clause selection.
type Method struct {
	Name      string
	IsGetter  bool
	IsSetter  bool
	Guard     func(self *Graph, args []value.Value) (bool, error)
	Body      func(self *Graph, args []value.Value) (value.Value, error)
}

// private reports whether a method name follows the `_`-prefixed private
// convention (spec.md §4.7 "Private methods").
func private(name string) bool {
	return strings.HasPrefix(name, "_")
}

func cloneMethods(methods map[string][]*Method) map[string][]*Method {
	out := make(map[string][]*Method, len(methods))
	for name, clauses := range methods {
		cp := make([]*Method, len(clauses))
		copy(cp, clauses)
		out[name] = cp
	}
	return out
}

// DefineMethod attaches a clause for name. A guarded clause is appended to
// any existing clauses for name, building up the guard-based multi-dispatch
// of spec.md §4.7 ("first matching guard wins, in definition order"). An
// unguarded clause instead replaces whatever clauses name already has,
// since an unguarded definition is unconditional and anything after it
// would be unreachable anyway — this is also what makes `graph from
// Parent` overrides work: the child inherits the parent's clause list by
// cloning, and a plain `def` on the child for the same name replaces it
// rather than shadowing it behind the inherited clause.
func (g *Graph) DefineMethod(m *Method) {
	if m.Guard == nil {
		g.Methods[m.Name] = []*Method{m}
		return
	}
	g.Methods[m.Name] = append(g.Methods[m.Name], m)
}

// From builds a new class-like graph inheriting from parent by deep-cloning
// its data layer and method layer (spec.md §4.7 "graph from Parent {...}":
// deep-clone inheritance, not prototype-based — mutating the child never
// affects the parent, and vice versa). Parent is retained only so `super`
// can consult the parent's method layer; it is not consulted for anything
// else (see DESIGN.md's resolution of the super/include Open Question).
func From(parent *Graph, typeTag string) *Graph {
	child := parent.Copy().(*Graph)
	child.TypeTag = typeTag
	child.Parent = parent
	return child
}

// Include splices mixin's methods into the receiver without touching
// Parent, so `super` resolution is unaffected by what's been included
// (spec.md §4.7 "include(mixin)"). A method already defined directly on the
// receiver takes precedence; Include only adds clauses for names the
// receiver doesn't already define.
func (g *Graph) Include(mixin *Graph) {
	for name, clauses := range mixin.Methods {
		if _, exists := g.Methods[name]; exists {
			continue
		}
		cp := make([]*Method, len(clauses))
		copy(cp, clauses)
		g.Methods[name] = cp
	}
}

// ResolveMethod finds the first clause of name whose guard passes (or which
// has no guard), trying the receiver's own method layer before falling back
// to nothing — `self` never implicitly searches Parent; only `super` does
// (spec.md §4.7).
func (g *Graph) ResolveMethod(name string, self *Graph, args []value.Value) (*Method, error) {
	if private(name) {
		return nil, errs.New(position.KindPrivateAccess, "method %q is private", name)
	}
	return g.resolveAny(name, self, args)
}

// ResolveOwnOrPrivate is like ResolveMethod but permits private methods.
// The executor uses it for property reads and setter lookup (`obj.name`,
// `obj.name = v`); method-call syntax resolves through ResolveMethod, so a
// `_`-prefixed method cannot be invoked with call syntax, not even from the
// graph's own method bodies.
func (g *Graph) ResolveOwnOrPrivate(name string, self *Graph, args []value.Value) (*Method, error) {
	return g.resolveAny(name, self, args)
}

func (g *Graph) resolveAny(name string, self *Graph, args []value.Value) (*Method, error) {
	clauses, ok := g.Methods[name]
	if !ok {
		return nil, errs.New(position.KindNameError, "no method %q", name)
	}
	for _, m := range clauses {
		if m.Guard == nil {
			return m, nil
		}
		ok, err := m.Guard(self, args)
		if err != nil {
			return nil, err
		}
		if ok {
			return m, nil
		}
	}
	return nil, errs.New(position.KindNameError, "no clause of %q matched the given arguments", name)
}

// ResolveSuper resolves name against the receiver's direct Parent only,
// never the parent's own parent chain beyond what Parent.ResolveMethod does
// internally for its own super calls — each `super` call is scoped to
// exactly one hop (spec.md §4.7, DESIGN.md's Open Question resolution).
func (g *Graph) ResolveSuper(name string, self *Graph, args []value.Value) (*Method, error) {
	if g.Parent == nil {
		return nil, errs.New(position.KindNameError, "no parent graph to call super on")
	}
	return g.Parent.resolveAny(name, self, args)
}

// IsA reports whether g descends from a graph with the given type tag,
// walking the Parent chain (spec.md §4.7 `is_a(Type)`).
func (g *Graph) IsA(typeTag string) bool {
	for cur := g; cur != nil; cur = cur.Parent {
		if cur.TypeTag == typeTag {
			return true
		}
	}
	return false
}

// RespondsTo reports whether name resolves to at least one method clause.
func (g *Graph) RespondsTo(name string) bool {
	_, ok := g.Methods[name]
	return ok
}
