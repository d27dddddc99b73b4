// Package module implements Graphoid's import resolution and load-once
// cache (spec.md §4.9 "Module manager", §6.2 "Module resolution"). The
// shape — an afero.Fs-backed resolver with a "loading" set for cycle
// detection and a "loaded" cache keyed by resolved path — mirrors mgmt's
// lang.DirectoryReader / lang.Interpret import-graph handling, generalized
// from mgmt's single static compile-time import closure to Graphoid's
// load-on-first-use runtime resolution.
package module

import (
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/xvandervort/graphoid-sub001/builtins"
	"github.com/xvandervort/graphoid-sub001/env"
	"github.com/xvandervort/graphoid-sub001/errs"
	"github.com/xvandervort/graphoid-sub001/exec"
	"github.com/xvandervort/graphoid-sub001/parser"
	"github.com/xvandervort/graphoid-sub001/position"
	"github.com/xvandervort/graphoid-sub001/value"
)

// Manager resolves `import "path"` statements against an afero filesystem,
// loading each distinct physical path at most once (spec.md §4.9 step 4-5:
// "capture the final environment... add to loaded cache"). Production code
// builds one with afero.NewOsFs(); tests use afero.NewMemMapFs() to avoid
// touching the real filesystem, exactly the split mgmt's engine.Fs
// abstraction exists for.
type Manager struct {
	Fs         afero.Fs
	StdlibPath string // $GRAPHOID_STDLIB_PATH; empty means current-directory-only resolution
	NewInterp  func() *exec.Interpreter

	loading map[string]bool
	loaded  map[string]value.Value
}

// NewManager builds a Manager over fs, with newInterp supplying a fresh
// Interpreter (sharing this Manager as its Importer) for each module file —
// every module gets its own configuration stack, per spec.md §4.9's "fresh
// top-frame environment".
func NewManager(fs afero.Fs, stdlibPath string, newInterp func() *exec.Interpreter) *Manager {
	return &Manager{
		Fs:         fs,
		StdlibPath: stdlibPath,
		NewInterp:  newInterp,
		loading:    map[string]bool{},
		loaded:     map[string]value.Value{},
	}
}

var _ exec.Importer = (*Manager)(nil)

// Import implements exec.Importer (spec.md §4.9's loading algorithm).
func (m *Manager) Import(importPath, fromFile string) (value.Value, error) {
	resolved, err := m.resolve(importPath, fromFile)
	if err != nil {
		return nil, err
	}

	if v, ok := m.loaded[resolved]; ok {
		return v, nil
	}
	if m.loading[resolved] {
		return nil, errs.New(position.KindCircularImport, "circular import of %q", resolved)
	}

	m.loading[resolved] = true
	defer delete(m.loading, resolved)

	src, err := afero.ReadFile(m.Fs, resolved)
	if err != nil {
		return nil, errs.New(position.KindModuleNotFound, "could not read module %q: %s", resolved, err.Error())
	}

	stmts, err := parser.Parse(resolved, string(src))
	if err != nil {
		return nil, err
	}

	in := m.NewInterp()
	in.Importer = m
	in.CurrentFile = resolved

	fr := env.NewRoot()
	builtins.Install(fr, in.Config.Errors, in.Config.ClearErrors)

	if _, err := in.RunProgram(stmts, fr); err != nil {
		return nil, err
	}

	ns := moduleNamespace(fr)
	m.loaded[resolved] = ns
	return ns, nil
}

// moduleNamespace packages a finished module's top frame as a map value,
// the "exported namespace" of spec.md §4.9 step 4, keyed by every name the
// module's top level bound.
func moduleNamespace(fr *env.Frame) value.Value {
	m := value.NewMap()
	for _, name := range fr.Names() {
		v, _ := fr.Get(name)
		m.Set(name, v)
	}
	return m
}

// resolve implements spec.md §6.2's four-step search order, returning the
// first candidate path that exists.
func (m *Manager) resolve(importPath, fromFile string) (string, error) {
	dir := "."
	if fromFile != "" {
		dir = filepath.Dir(fromFile)
	}

	var searched []string
	candidates := []string{
		filepath.Join(dir, importPath+".gr"),
		filepath.Join(dir, importPath, "mod.gr"),
	}
	if m.StdlibPath != "" {
		candidates = append(candidates,
			filepath.Join(m.StdlibPath, importPath+".gr"),
			filepath.Join(m.StdlibPath, importPath, "mod.gr"),
		)
	}

	for _, c := range candidates {
		searched = append(searched, c)
		if ok, _ := afero.Exists(m.Fs, c); ok {
			return c, nil
		}
	}
	return "", errs.New(position.KindModuleNotFound, "module %q not found (searched %v)", importPath, searched)
}
