package value

import (
	"sort"

	"github.com/xvandervort/graphoid-sub001/errs"
	"github.com/xvandervort/graphoid-sub001/position"
)

// List is a simple, ordered, rule-free sequence (spec.md §3.2 "Simple
// list"). The first call to add_rule/add_behavior/add_method/with_ruleset on
// a List promotes it to a graph-backed container (handled by package graph,
// which holds the promotion constructor since it alone knows the graph
// shape); List itself never becomes graph-backed in place.
type List struct {
	Elements []Value
}

// NewList builds a List from the given elements, taking ownership of the
// slice (callers that need to keep using their own slice should copy first).
func NewList(elems []Value) *List {
	return &List{Elements: elems}
}

func (l *List) Type() TypeName { return TypeList }

func (l *List) String() string {
	s := "["
	for i, e := range l.Elements {
		if i > 0 {
			s += ", "
		}
		s += e.String()
	}
	return s + "]"
}

func (l *List) Equal(other Value) bool {
	o, ok := other.(*List)
	if !ok || len(l.Elements) != len(o.Elements) {
		return false
	}
	for i := range l.Elements {
		if !l.Elements[i].Equal(o.Elements[i]) {
			return false
		}
	}
	return true
}

// Copy deep-copies the element slots, implementing spec.md §3.5 assignment
// independence (Testable Property 5).
func (l *List) Copy() Value {
	elems := make([]Value, len(l.Elements))
	for i, e := range l.Elements {
		elems[i] = e.Copy()
	}
	return &List{Elements: elems}
}

func (l *List) Truthy() bool { return len(l.Elements) > 0 }

// Len returns the element count, backing the built-in `len`.
func (l *List) Len() int { return len(l.Elements) }

// Get returns the element at idx, or an IndexError if out of range
// (spec.md §7, recoverable under :lenient).
func (l *List) Get(idx int) (Value, error) {
	if idx < 0 || idx >= len(l.Elements) {
		return nil, errs.New(position.KindIndexError, "index %d out of range (len %d)", idx, len(l.Elements))
	}
	return l.Elements[idx], nil
}

// Append returns a new List with v appended, leaving the receiver unchanged
// (the non-bang half of the append/append! pair, spec.md §3.5).
func (l *List) Append(v Value) *List {
	elems := make([]Value, len(l.Elements), len(l.Elements)+1)
	copy(elems, l.Elements)
	elems = append(elems, v)
	return &List{Elements: elems}
}

// AppendBang appends v in place and returns the receiver, the bang half of
// the pair.
func (l *List) AppendBang(v Value) *List {
	l.Elements = append(l.Elements, v)
	return l
}

// Sort returns a new List ordered by less, leaving the receiver unchanged.
func (l *List) Sort(less func(a, b Value) bool) *List {
	cp := l.Copy().(*List)
	sort.SliceStable(cp.Elements, func(i, j int) bool { return less(cp.Elements[i], cp.Elements[j]) })
	return cp
}

// SortBang sorts the receiver in place and returns it.
func (l *List) SortBang(less func(a, b Value) bool) *List {
	sort.SliceStable(l.Elements, func(i, j int) bool { return less(l.Elements[i], l.Elements[j]) })
	return l
}

// Reverse returns a new reversed List.
func (l *List) Reverse() *List {
	n := len(l.Elements)
	elems := make([]Value, n)
	for i, e := range l.Elements {
		elems[n-1-i] = e
	}
	return &List{Elements: elems}
}

// ReverseBang reverses the receiver in place and returns it.
func (l *List) ReverseBang() *List {
	for i, j := 0, len(l.Elements)-1; i < j; i, j = i+1, j-1 {
		l.Elements[i], l.Elements[j] = l.Elements[j], l.Elements[i]
	}
	return l
}

// Filter returns a new List of elements for which keep returns true.
func (l *List) Filter(keep func(Value) bool) *List {
	out := []Value{}
	for _, e := range l.Elements {
		if keep(e) {
			out = append(out, e.Copy())
		}
	}
	return &List{Elements: out}
}

// FilterBang filters the receiver in place and returns it.
func (l *List) FilterBang(keep func(Value) bool) *List {
	out := l.Elements[:0]
	for _, e := range l.Elements {
		if keep(e) {
			out = append(out, e)
		}
	}
	l.Elements = out
	return l
}

// MapValues returns a new List with fn applied to each element.
func (l *List) MapValues(fn func(Value) (Value, error)) (*List, error) {
	out := make([]Value, len(l.Elements))
	for i, e := range l.Elements {
		v, err := fn(e)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return &List{Elements: out}, nil
}

// MapValuesBang applies fn to each element in place.
func (l *List) MapValuesBang(fn func(Value) (Value, error)) (*List, error) {
	for i, e := range l.Elements {
		v, err := fn(e)
		if err != nil {
			return nil, err
		}
		l.Elements[i] = v
	}
	return l, nil
}

// Merge returns a new List with other's elements appended.
func (l *List) Merge(other *List) *List {
	elems := make([]Value, 0, len(l.Elements)+len(other.Elements))
	elems = append(elems, l.Elements...)
	elems = append(elems, other.Elements...)
	return &List{Elements: elems}
}

// MergeBang appends other's elements in place and returns the receiver.
func (l *List) MergeBang(other *List) *List {
	l.Elements = append(l.Elements, other.Elements...)
	return l
}

// RemovePolicy controls how many matching elements Remove strips out.
type RemovePolicy int

const (
	RemoveFirst RemovePolicy = iota
	RemoveAll
)

// Remove returns a new List with matching elements stripped according to
// policy. Removing a value absent from the list is a no-op that raises
// nothing (spec.md §8 "Boundary behaviors").
func (l *List) Remove(v Value, policy RemovePolicy) *List {
	out := []Value{}
	removed := false
	for _, e := range l.Elements {
		if (policy == RemoveAll || !removed) && e.Equal(v) {
			removed = true
			continue
		}
		out = append(out, e)
	}
	return &List{Elements: out}
}

// RemoveBang removes matching elements in place and returns the receiver.
func (l *List) RemoveBang(v Value, policy RemovePolicy) *List {
	out := l.Elements[:0]
	removed := false
	for _, e := range l.Elements {
		if (policy == RemoveAll || !removed) && e.Equal(v) {
			removed = true
			continue
		}
		out = append(out, e)
	}
	l.Elements = out
	return l
}
