package value

import (
	"github.com/xvandervort/graphoid-sub001/errs"
	"github.com/xvandervort/graphoid-sub001/position"
)

// Map is a simple, insertion-order-preserving, rule-free string-keyed map
// (spec.md §3.2 "Simple map"). Like List, it promotes to a graph-backed
// container (handled by package graph) on first add_rule/add_behavior/
// add_method/with_ruleset call rather than ever mutating in place into one.
type Map struct {
	keys   []string
	values map[string]Value
}

// NewMap builds an empty Map.
func NewMap() *Map {
	return &Map{values: make(map[string]Value)}
}

// NewMapFromEntries builds a Map preserving the given entry order, the shape
// a MapLiteral evaluates to.
func NewMapFromEntries(keys []string, values []Value) *Map {
	m := NewMap()
	for i, k := range keys {
		m.Set(k, values[i])
	}
	return m
}

func (m *Map) Type() TypeName { return TypeHash }

func (m *Map) String() string {
	s := "{"
	for i, k := range m.keys {
		if i > 0 {
			s += ", "
		}
		s += "\"" + k + "\": " + m.values[k].String()
	}
	return s + "}"
}

func (m *Map) Equal(other Value) bool {
	o, ok := other.(*Map)
	if !ok || len(m.keys) != len(o.keys) {
		return false
	}
	// Structural equality considers key *order* too (spec.md §4.7: "maps
	// compare element-wise with stable key order for maps (insertion
	// order)").
	for i, k := range m.keys {
		if o.keys[i] != k {
			return false
		}
		if !m.values[k].Equal(o.values[k]) {
			return false
		}
	}
	return true
}

// Copy deep-copies key order and value slots.
func (m *Map) Copy() Value {
	cp := NewMap()
	for _, k := range m.keys {
		cp.Set(k, m.values[k].Copy())
	}
	return cp
}

func (m *Map) Truthy() bool { return len(m.keys) > 0 }

// Len returns the number of keys.
func (m *Map) Len() int { return len(m.keys) }

// Keys returns the keys in insertion order (spec.md §5 ordering guarantee).
func (m *Map) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Get returns the value for key, or a KeyError if absent (recoverable under
// :lenient, spec.md §7).
func (m *Map) Get(key string) (Value, error) {
	v, ok := m.values[key]
	if !ok {
		return nil, errs.New(position.KindKeyError, "no such key %q", key)
	}
	return v, nil
}

// Has reports whether key is present.
func (m *Map) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

// Set inserts or overwrites key, appending it to the key order only the
// first time it's seen.
func (m *Map) Set(key string, v Value) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

// Delete removes key, if present, from both the value map and the order.
func (m *Map) Delete(key string) {
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// TransformValues returns a new Map with fn applied to every value.
func (m *Map) TransformValues(fn func(Value) (Value, error)) (*Map, error) {
	cp := NewMap()
	for _, k := range m.keys {
		v, err := fn(m.values[k])
		if err != nil {
			return nil, err
		}
		cp.Set(k, v)
	}
	return cp, nil
}

// TransformValuesBang applies fn to every value in place.
func (m *Map) TransformValuesBang(fn func(Value) (Value, error)) (*Map, error) {
	for _, k := range m.keys {
		v, err := fn(m.values[k])
		if err != nil {
			return nil, err
		}
		m.values[k] = v
	}
	return m, nil
}

// Merge returns a new Map with other's entries layered on top (last writer
// wins for shared keys, new keys appended in other's order).
func (m *Map) Merge(other *Map) *Map {
	cp := m.Copy().(*Map)
	for _, k := range other.keys {
		cp.Set(k, other.values[k])
	}
	return cp
}

// MergeBang merges other's entries into the receiver in place.
func (m *Map) MergeBang(other *Map) *Map {
	for _, k := range other.keys {
		m.Set(k, other.values[k])
	}
	return m
}
