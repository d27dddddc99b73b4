package value

import (
	"github.com/xvandervort/graphoid-sub001/errs"
)

// ErrorValue is the runtime representation of an error object once it's
// caught (`catch e`) and made available as an ordinary Graphoid value
// (spec.md §3.2 "Error object", §6.6). It wraps *errs.GraphoidError rather
// than duplicating its fields.
type ErrorValue struct {
	Err *errs.GraphoidError
}

// NewErrorValue wraps a GraphoidError as a Value.
func NewErrorValue(e *errs.GraphoidError) ErrorValue {
	return ErrorValue{Err: e}
}

func (e ErrorValue) Type() TypeName { return TypeError }
func (e ErrorValue) String() string { return e.Err.Error() }

func (e ErrorValue) Equal(other Value) bool {
	o, ok := other.(ErrorValue)
	if !ok {
		return false
	}
	return e.Err.Kind == o.Err.Kind && e.Err.Message == o.Err.Message
}

func (e ErrorValue) Copy() Value { return e }
func (e ErrorValue) Truthy() bool { return true }

// Kind exposes the error's kind as a plain string, matching `e.kind` string
// equality matching in `catch` clauses (spec.md §7 "Propagation").
func (e ErrorValue) Kind() string {
	return string(e.Err.Kind)
}

// Message exposes the error's human-readable message.
func (e ErrorValue) Message() string {
	return e.Err.Message
}
