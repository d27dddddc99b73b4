// Package exec implements Graphoid's tree-walking executor (spec.md §4.7):
// it walks the ast built by package parser against an env.Frame stack,
// invoking package graph's operations and package value's container
// methods, enforcing the bang/non-bang mutation discipline and the
// configurable error modes as it goes.
//
// The shape — a struct holding the cross-cutting state (a Logf hook
// defaulting to a no-op, the way mgmt's lang/interpret.Interpreter and its
// other core structs are built) plus a set of eval/exec methods dispatching
// on AST node type with a switch — is grounded in mgmt's
// lang/interpret.Interpreter.Interpret, generalized from mgmt's single
// static Output()-then-walk pass over a type-unified AST to Graphoid's
// dynamically-typed, directly-executed one.
package exec

import (
	"github.com/xvandervort/graphoid-sub001/ast"
	"github.com/xvandervort/graphoid-sub001/env"
	"github.com/xvandervort/graphoid-sub001/errs"
	"github.com/xvandervort/graphoid-sub001/position"
	"github.com/xvandervort/graphoid-sub001/value"
)

// Importer resolves `import "path"` statements (spec.md §4.9). The module
// manager implements this and is injected into the Interpreter rather than
// imported directly, so package exec never depends on package module (the
// dependency runs the other way: module imports exec to actually run a
// loaded file's statements).
type Importer interface {
	Import(path, fromFile string) (value.Value, error)
}

// Interpreter holds the cross-cutting state a single Graphoid program run
// shares: the configuration stack, the optional import resolver, and a
// logging hook every core struct in this codebase accepts but never
// requires (spec.md §1, the structured logger is an out-of-scope
// collaborator).
type Interpreter struct {
	Logf     func(format string, v ...interface{})
	Config   *Config
	Importer Importer

	// CurrentFile is the path of the module currently executing, so
	// execImport can resolve a relative `import "./sibling.gr"` against it.
	// The module manager updates this around each RunProgram call when it
	// loads a new file (spec.md §4.9).
	CurrentFile string
}

// New builds an Interpreter with a fresh configuration stack and a no-op
// logger.
func New() *Interpreter {
	return &Interpreter{
		Logf:   func(string, ...interface{}) {},
		Config: NewConfig(),
	}
}

// logf calls the Logf hook if set, defending against a zero-value
// Interpreter (tests sometimes construct one directly).
func (in *Interpreter) logf(format string, v ...interface{}) {
	if in.Logf != nil {
		in.Logf(format, v...)
	}
}

// RunProgram executes every top-level statement of a module against fr,
// the entry point both the CLI collaborator and the module manager use
// (spec.md §4.9 step 3: "execute its top-level statements against a fresh
// top-frame environment"). It returns the value of the final statement if
// it was a bare expression, or none.
func (in *Interpreter) RunProgram(stmts []ast.Stmt, fr *env.Frame) (value.Value, error) {
	v, err := in.execBlock(stmts, fr)
	if err != nil {
		if sig, ok := asSignal(err); ok {
			if sig.kind == sigReturn {
				return sig.value, nil
			}
			return nil, errs.New(position.KindParseError, "%s at top level", sig.Error())
		}
		return nil, err
	}
	return v, nil
}

// handleRecoverable applies the configured error mode to err, the shared
// chokepoint every recoverable operation (spec.md §7 "Local vs surfaced")
// funnels through: strict always re-raises, lenient swallows to none,
// collect records and swallows. err must be non-nil and ideally a
// *errs.GraphoidError for its Kind to be consulted; a plain error is always
// treated as non-recoverable.
func (in *Interpreter) handleRecoverable(err error) (value.Value, error) {
	ge, ok := err.(*errs.GraphoidError)
	if !ok || !ge.Kind.Recoverable() {
		return nil, err
	}
	switch in.Config.ErrorMode() {
	case ErrorLenient:
		return value.NoneValue, nil
	case ErrorCollect:
		in.Config.RecordError(ge)
		return value.NoneValue, nil
	default:
		return nil, err
	}
}

// runtimeErr wraps a plain Go error into a positioned GraphoidError of the
// given kind, the form most eval call sites raise through.
func runtimeErr(kind position.Kind, pos position.Position, format string, args ...interface{}) error {
	return errs.New(kind, format, args...).WithPos(pos)
}
