package value

import (
	"github.com/xvandervort/graphoid-sub001/errs"
	"github.com/xvandervort/graphoid-sub001/position"
)

// Frozen wraps any container value read-only (spec.md §3.2 "Frozen
// wrapper"). A shallow freeze only rejects mutation of the wrapped value
// itself; a deep freeze additionally wraps every value reachable through it
// (lists/maps of lists/maps), so elements obtained via Get/indexing are
// themselves Frozen.
type Frozen struct {
	Inner Value
	Deep  bool
}

// NewFrozen wraps v, freezing recursively if deep is true.
func NewFrozen(v Value, deep bool) Frozen {
	if !deep {
		return Frozen{Inner: v, Deep: false}
	}
	if fz, ok := deepFreeze(v).(Frozen); ok {
		return fz
	}
	return Frozen{Inner: v, Deep: true}
}

func deepFreeze(v Value) Value {
	switch t := v.(type) {
	case *List:
		elems := make([]Value, len(t.Elements))
		for i, e := range t.Elements {
			elems[i] = deepFreeze(e)
		}
		return Frozen{Inner: &List{Elements: elems}, Deep: true}
	case *Map:
		cp := NewMap()
		for _, k := range t.Keys() {
			val, _ := t.Get(k)
			cp.Set(k, deepFreeze(val))
		}
		return Frozen{Inner: cp, Deep: true}
	default:
		return v
	}
}

func (f Frozen) Type() TypeName { return f.Inner.Type() }
func (f Frozen) String() string { return f.Inner.String() }

func (f Frozen) Equal(other Value) bool {
	if o, ok := other.(Frozen); ok {
		return f.Inner.Equal(o.Inner)
	}
	return f.Inner.Equal(other)
}

func (f Frozen) Copy() Value { return f } // freezing is transparent to the copy-on-assign rule
func (f Frozen) Truthy() bool { return f.Inner.Truthy() }

// ErrFrozenMutation is the sentinel error any attempt to mutate through a
// Frozen wrapper must raise (spec.md §7, KindFreezeViolation, never silently
// recovered).
func ErrFrozenMutation(op string) error {
	return errs.New(position.KindFreezeViolation, "cannot %s: value is frozen", op)
}
