// Package env implements Graphoid's lexical scoping: a stack of variable
// frames that a closure captures by holding a reference to the frame that
// was active when it was defined (spec.md §4.6 "Closures capture the
// current frame-stack snapshot by shared reference"). The shape mirrors
// mgmt's lang/interpret.Interpreter scope-lookup maps, generalized from
// mgmt's single static scope-graph resolution to an ordinary dynamically
// nested frame chain, since Graphoid resolves names at call time rather
// than at compile time.
package env

import (
	"github.com/xvandervort/graphoid-sub001/errs"
	"github.com/xvandervort/graphoid-sub001/position"
	"github.com/xvandervort/graphoid-sub001/value"
)

// Frame is a single lexical scope level: a flat variable table plus a link
// to its defining parent. A Function's Closure field (value.Scope) is
// satisfied by holding a *Frame directly, so capturing a closure is just
// keeping a pointer to the frame active at definition time — later
// mutations of that frame (e.g. a loop variable reassigned after a lambda
// closes over it) are visible through the closure, matching ordinary
// lexical-closure semantics.
type Frame struct {
	vars   map[string]value.Value
	parent *Frame
}

// NewRoot builds the outermost frame, with no parent — name lookups that
// fall off the end of the chain starting here raise NameError.
func NewRoot() *Frame {
	return &Frame{vars: make(map[string]value.Value)}
}

// Child creates a new nested frame whose lookups fall back to f, the
// operation every block, function call, and `for`/`while` body iteration
// performs on entry (spec.md §4.6 "enter_scope").
func (f *Frame) Child() *Frame {
	return &Frame{vars: make(map[string]value.Value), parent: f}
}

// Get looks up name starting at f and walking outward through parents,
// satisfying value.Scope.
func (f *Frame) Get(name string) (value.Value, bool) {
	for cur := f; cur != nil; cur = cur.parent {
		if v, ok := cur.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Set assigns name in the frame that already declares it (walking
// outward), or declares it fresh in f if no enclosing frame has it yet —
// Graphoid has no separate declaration statement, so the first assignment
// to a name introduces it in the current frame (spec.md §4.1 "Assignment").
func (f *Frame) Set(name string, v value.Value) {
	for cur := f; cur != nil; cur = cur.parent {
		if _, ok := cur.vars[name]; ok {
			cur.vars[name] = v
			return
		}
	}
	f.vars[name] = v
}

// Declare forces name to be bound in f itself, shadowing any outer binding
// of the same name, regardless of whether an outer frame already declares
// it. Function parameters and pattern-match bindings use this instead of
// Set so a call never silently mutates a variable in the caller's scope.
func (f *Frame) Declare(name string, v value.Value) {
	f.vars[name] = v
}

// MustGet looks up name, raising a GraphoidError of KindNameError if it's
// unbound anywhere in the chain — the form most expression evaluation call
// sites want, rather than the boolean-returning Get.
func (f *Frame) MustGet(name string) (value.Value, error) {
	v, ok := f.Get(name)
	if !ok {
		return nil, errs.New(position.KindNameError, "undefined name %q", name)
	}
	return v, nil
}

// Names returns the variables declared directly in f (not its parents), the
// accessor the module manager uses to capture a finished module's top level
// as its exported namespace (spec.md §4.9 step 4).
func (f *Frame) Names() []string {
	out := make([]string, 0, len(f.vars))
	for name := range f.vars {
		out = append(out, name)
	}
	return out
}

var _ value.Scope = (*Frame)(nil)
