package value

// Scope is the narrow interface a closure needs from an environment frame
// stack: read and write access by name. Package env's Environment
// implements this; Value is defined before env so env can depend on value
// without a cycle back the other way.
type Scope interface {
	Get(name string) (Value, bool)
	Set(name string, v Value)
}

// Clause is one `pattern → body` arm of a pattern-matching Function. The
// Pattern/Body types are ast nodes, but value can't import ast (ast doesn't
// depend on value, yet a dependency the other way would make the executor's
// import graph circular through ast -> value -> ast), so Clause is expressed
// generically: Match is supplied by the executor and returns the bindings to
// install plus whether the clause matched, and Run evaluates the body given
// those bindings already installed in a fresh call frame.
type Clause struct {
	// Match reports whether args satisfies this clause's pattern; if so
	// it returns the bindings the pattern introduces.
	Match func(args []Value) (bindings map[string]Value, ok bool)
}

// Function is a Graphoid function value: named or anonymous, with a
// captured closure environment (spec.md §3.2, §4.6 "Closures capture the
// current frame-stack snapshot by shared reference"). Call is supplied by
// the executor at construction time so the value package stays free of any
// dependency on the executor or the AST.
type Function struct {
	Name    string // "" for anonymous lambdas
	Closure Scope
	Arity   int  // -1 for pattern-matching functions (arity varies by clause)
	Call    func(args []Value) (Value, error)
}

func (f *Function) Type() TypeName { return TypeFunction }

func (f *Function) String() string {
	if f.Name == "" {
		return "<lambda>"
	}
	return "<function " + f.Name + ">"
}

// Equal holds only for identity: two distinct function values, even with
// identical bodies, are never == to one another, matching ordinary
// reference-type semantics for callables.
func (f *Function) Equal(other Value) bool {
	o, ok := other.(*Function)
	return ok && f == o
}

// Copy returns the receiver unchanged: functions are not copy-on-assign
// containers, they're immutable closures (spec.md §3.5 only speaks of
// "compound data structures"; a function captures its defining environment
// by reference for its whole lifetime).
func (f *Function) Copy() Value { return f }

func (f *Function) Truthy() bool { return true }
