package exec

import (
	"github.com/xvandervort/graphoid-sub001/errs"
	"github.com/xvandervort/graphoid-sub001/value"
)

// ErrorMode selects how the executor handles a recoverable failing
// operation (spec.md §4.7 "Error modes").
type ErrorMode string

const (
	ErrorStrict  ErrorMode = "strict"
	ErrorLenient ErrorMode = "lenient"
	ErrorCollect ErrorMode = "collect"
)

// configFrame is one LIFO level of the configuration stack (spec.md §4.7
// "Configuration stack"). Each frame carries every option visible at that
// nesting level, built by copying the enclosing frame and layering the
// new scope's overrides on top, so Get never has to walk a chain.
type configFrame struct {
	values map[string]value.Value
}

// Config models the configuration stack pushed by `configure {...} {...}`
// and `precision {...} {...}` (spec.md §4.7/§4.8), mirroring mgmt's
// scope-stack discipline in ast.Scope/ScopeSet generalized from a lexical
// variable scope to an option-override scope. Unknown keys are preserved
// verbatim on the frame (spec.md §8 boundary behavior) so a collaborator
// (logger, testing DSL) can read them back via Get.
type Config struct {
	frames []*configFrame

	collected []*errs.GraphoidError
}

// NewConfig builds a Config with a single root frame holding the defaults:
// strict error mode, float (non-integer) precision.
func NewConfig() *Config {
	return &Config{frames: []*configFrame{{values: map[string]value.Value{
		"error_mode": value.NewSymbol(string(ErrorStrict)),
	}}}}
}

// Depth reports the current stack height, the checkpoint execBlock takes on
// entry so it can unwind back to it on every exit path (spec.md §5 "Scoped
// acquisition... pop-on-unwind").
func (c *Config) Depth() int { return len(c.frames) }

// TruncateTo pops frames down to depth n (never below the root frame),
// guaranteeing pop-on-unwind regardless of how a block exits — normal
// completion, return, break, continue, or a propagating error.
func (c *Config) TruncateTo(n int) {
	if n < 1 {
		n = 1
	}
	if n < len(c.frames) {
		c.frames = c.frames[:n]
	}
}

// Push layers overrides on top of the current frame and returns the new
// depth, the operation `configure`/`precision` perform on scope entry.
func (c *Config) Push(overrides map[string]value.Value) int {
	top := c.frames[len(c.frames)-1]
	next := &configFrame{values: make(map[string]value.Value, len(top.values)+len(overrides))}
	for k, v := range top.values {
		next.values[k] = v
	}
	for k, v := range overrides {
		next.values[k] = v
	}
	c.frames = append(c.frames, next)
	return len(c.frames)
}

// Pop removes exactly the top frame.
func (c *Config) Pop() {
	c.TruncateTo(len(c.frames) - 1)
}

// Get reads an option from the top-of-stack frame (spec.md §4.7 "the
// effective value of an option is the top-of-stack setting").
func (c *Config) Get(key string) (value.Value, bool) {
	v, ok := c.frames[len(c.frames)-1].values[key]
	return v, ok
}

// ErrorMode returns the effective error mode, defaulting to strict.
func (c *Config) ErrorMode() ErrorMode {
	v, ok := c.Get("error_mode")
	if !ok {
		return ErrorStrict
	}
	if sym, ok := v.(value.Symbol); ok {
		switch ErrorMode(sym.Name) {
		case ErrorLenient:
			return ErrorLenient
		case ErrorCollect:
			return ErrorCollect
		}
	}
	return ErrorStrict
}

// IntegerMode reports whether the top-of-stack precision scope truncates
// every assignment to an integer (spec.md §3.4 "precision { :integer }").
func (c *Config) IntegerMode() bool {
	v, ok := c.Get("integer")
	return ok && v.Truthy()
}

// RecordError appends e to the :collect-mode error list.
func (c *Config) RecordError(e *errs.GraphoidError) {
	c.collected = append(c.collected, e)
}

// Errors returns the :collect-mode error list, backing the `get_errors()`
// built-in.
func (c *Config) Errors() []*errs.GraphoidError {
	out := make([]*errs.GraphoidError, len(c.collected))
	copy(out, c.collected)
	return out
}

// ClearErrors empties the :collect-mode error list, backing
// `clear_errors()`.
func (c *Config) ClearErrors() {
	c.collected = nil
}
