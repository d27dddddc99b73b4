package exec

import (
	"path"
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/xvandervort/graphoid-sub001/ast"
	"github.com/xvandervort/graphoid-sub001/env"
	"github.com/xvandervort/graphoid-sub001/position"
	"github.com/xvandervort/graphoid-sub001/value"
)

// evalOptions evaluates a configure/precision statement's option entries
// into a plain map, the shape Config.Push expects.
func (in *Interpreter) evalOptions(entries []ast.MapEntry, fr *env.Frame) (map[string]value.Value, error) {
	out := make(map[string]value.Value, len(entries))
	for _, e := range entries {
		v, err := in.evalExpr(e.Value, fr)
		if err != nil {
			return nil, err
		}
		out[e.Key] = v
	}
	return out, nil
}

// execConfigure implements `configure { opts } { body }` and the bodyless
// `configure { opts }` form that applies for the remainder of the enclosing
// scope (spec.md §4.7 "Configuration stack"). The bodied form pushes,
// runs, and pops explicitly; the bodyless form pushes and relies on the
// enclosing execBlock's own depth-checkpoint/TruncateTo to pop it once that
// block unwinds.
func (in *Interpreter) execConfigure(st *ast.ConfigureStmt, fr *env.Frame) error {
	overrides, err := in.evalOptions(st.Options, fr)
	if err != nil {
		return err
	}
	in.Config.Push(overrides)
	if st.Body == nil {
		return nil
	}
	defer in.Config.Pop()
	_, err = in.execBlock(st.Body, fr.Child())
	return err
}

// execPrecision implements `precision { opts } { body }` (spec.md §3.4);
// unlike configure, precision always carries a body.
func (in *Interpreter) execPrecision(st *ast.PrecisionStmt, fr *env.Frame) error {
	overrides, err := in.evalOptions(st.Options, fr)
	if err != nil {
		return err
	}
	in.Config.Push(overrides)
	defer in.Config.Pop()
	_, err = in.execBlock(st.Body, fr.Child())
	return err
}

// execImport implements `import "path"` (spec.md §4.9): the module manager
// resolves and (if needed) runs the target file exactly once, returning the
// value its top level produces (conventionally a graph exposing the
// module's public surface). The binding name is the path's final segment
// with any extension stripped, mirroring a simple `namespace.gr` ->
// `namespace` convention.
func (in *Interpreter) execImport(st *ast.ImportStmt, fr *env.Frame) error {
	if in.Importer == nil {
		return runtimeErr(position.KindImportError, st.Pos(), "no module resolver configured for import %q", st.Path)
	}
	v, err := in.Importer.Import(st.Path, in.CurrentFile)
	if err != nil {
		return err
	}
	fr.Set(importBinding(st.Path), v)
	return nil
}

// importBinding derives a legal identifier from importPath's final segment
// (spec.md §4.9 step 6), snake-casing hyphenated filenames so
// `import "my-utils"` binds as `my_utils`.
func importBinding(importPath string) string {
	base := path.Base(importPath)
	stem := strings.TrimSuffix(base, path.Ext(base))
	return strcase.ToSnake(stem)
}
