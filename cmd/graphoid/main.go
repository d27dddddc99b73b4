// Command graphoid is the CLI collaborator of spec.md §6.3: it accepts a
// single `<file.gr>` to run, with zero or more positional arguments passed
// through to the program, terminates its own option parsing at `--`, and
// exits non-zero on an uncaught error or a module-load failure. This is
// deliberately thin — everything it does is delegate to package module and
// package exec, per the spec's "the core's only contract is to report
// errors with kind, message, and position".
package main

import (
	"fmt"
	"os"

	"github.com/spf13/afero"

	"github.com/xvandervort/graphoid-sub001/builtins"
	"github.com/xvandervort/graphoid-sub001/env"
	"github.com/xvandervort/graphoid-sub001/errs"
	"github.com/xvandervort/graphoid-sub001/exec"
	"github.com/xvandervort/graphoid-sub001/module"
	"github.com/xvandervort/graphoid-sub001/parser"
	"github.com/xvandervort/graphoid-sub001/value"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run implements the CLI surface of spec.md §6.3 and returns the process
// exit code rather than calling os.Exit directly, so it stays testable.
func run(rawArgs []string) int {
	file, programArgs := parseArgs(rawArgs)
	if file == "" {
		fmt.Fprintln(os.Stderr, "usage: graphoid [--] <file.gr> [args...]")
		return 2
	}

	src, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "graphoid: cannot read %s: %s\n", file, err)
		return 1
	}

	stmts, err := parser.Parse(file, string(src))
	if err != nil {
		reportError(err)
		return 1
	}

	fs := afero.NewOsFs()
	var mgr *module.Manager
	newInterp := func() *exec.Interpreter {
		in := exec.New()
		in.Importer = mgr
		return in
	}
	mgr = module.NewManager(fs, os.Getenv("GRAPHOID_STDLIB_PATH"), newInterp)

	in := newInterp()
	in.CurrentFile = file

	fr := env.NewRoot()
	builtins.Install(fr, in.Config.Errors, in.Config.ClearErrors)
	fr.Declare("os_args", argsValue(programArgs))

	if _, err := in.RunProgram(stmts, fr); err != nil {
		reportError(err)
		return 1
	}
	return 0
}

// parseArgs splits rawArgs into the script path and the arguments to pass
// through to it, honoring a `--` terminator (spec.md §6.3).
func parseArgs(rawArgs []string) (file string, programArgs []string) {
	for i, a := range rawArgs {
		if a == "--" {
			if i+1 < len(rawArgs) {
				return rawArgs[i+1], rawArgs[i+2:]
			}
			return "", nil
		}
		if file == "" {
			file = a
			programArgs = rawArgs[i+1:]
			return file, programArgs
		}
	}
	return "", nil
}

// argsValue builds the `os_args` binding the built-in os.args accessor of
// spec.md §6.3 exposes to the running program.
func argsValue(args []string) *value.List {
	out := make([]value.Value, len(args))
	for i, a := range args {
		out[i] = value.NewStr(a)
	}
	return value.NewList(out)
}

func reportError(err error) {
	if ge, ok := err.(*errs.GraphoidError); ok {
		fmt.Fprintln(os.Stderr, ge.Error())
		return
	}
	fmt.Fprintln(os.Stderr, "graphoid:", err)
}
