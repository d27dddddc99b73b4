// Package errs contains the error helpers and the runtime error-object shape
// shared across the Graphoid core. It mirrors mgmt's util/errwrap: a thin
// wrapper over github.com/pkg/errors for chaining, and
// github.com/hashicorp/go-multierror for the places the spec requires
// aggregation (the :collect error mode's error list, and a graph mutation
// that violates more than one rule at once).
package errs

import (
	"fmt"

	multierror "github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/xvandervort/graphoid-sub001/position"
)

// Wrapf adds a new error onto an existing chain. If err is nil, the returned
// error is nil too, the same short-circuit as errwrap.Wrapf.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// Append safely appends err onto an existing aggregate, treating a nil
// either side as absorbing rather than panicking. Mirrors errwrap.Append.
func Append(into, err error) error {
	if into == nil {
		return err
	}
	if err == nil {
		return into
	}
	return multierror.Append(into, err)
}

// Frame captures one entry of the call-stack recorded at raise time (§6.6).
type Frame struct {
	Function string
	Position position.Position
}

// GraphoidError is the error-object shape of spec.md §6.6: a kind drawn from
// the fixed taxonomy in package position, a human-readable message, an
// optional source position, an optional cause, and a captured call stack.
type GraphoidError struct {
	Kind     position.Kind
	Message  string
	Pos      *position.Position
	Cause    error
	Stack    []Frame

	// RuleName is only set for KindRuleViolation (spec.md §4.4).
	RuleName string
}

// New builds a GraphoidError with no position and no cause; callers typically
// chain WithPos/WithCause immediately after.
func New(kind position.Kind, format string, args ...interface{}) *GraphoidError {
	return &GraphoidError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WithPos attaches a source position and returns the receiver for chaining.
func (e *GraphoidError) WithPos(pos position.Position) *GraphoidError {
	e.Pos = &pos
	return e
}

// WithCause attaches an underlying cause and returns the receiver.
func (e *GraphoidError) WithCause(cause error) *GraphoidError {
	e.Cause = cause
	return e
}

// WithRule attaches the rule name that rejected a mutation (KindRuleViolation
// only) and returns the receiver.
func (e *GraphoidError) WithRule(name string) *GraphoidError {
	e.RuleName = name
	return e
}

// Push appends a stack frame. Frames are pushed as the error unwinds, the
// way a panic accumulates frames as it propagates (spec.md §5,
// "Cancellation"), so Stack ends up innermost call first.
func (e *GraphoidError) Push(function string, pos position.Position) *GraphoidError {
	e.Stack = append(e.Stack, Frame{Function: function, Position: pos})
	return e
}

// Error renders the error in the exact form spec.md §7 mandates:
// "<Kind> at <file>:<line>:<col>: <message>".
func (e *GraphoidError) Error() string {
	if e.Pos == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s at %s: %s", e.Kind, e.Pos.String(), e.Message)
}

// Unwrap exposes Cause to errors.Is/errors.As.
func (e *GraphoidError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a GraphoidError with the same Kind, so
// `catch e when e.kind == "IndexError"`-style matching can be expressed in
// Go test code as errors.Is(err, &errs.GraphoidError{Kind: position.KindIndexError}).
func (e *GraphoidError) Is(target error) bool {
	other, ok := target.(*GraphoidError)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}
