// Package shell implements the interactive scripting host: a single
// Starlark session bootstrapped in a fixed order and driven by a
// readline-based read-eval-print loop.
package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
	"go.starlark.net/syntax"
)

// Engine is the analysis-engine reference bound into the session during
// bootstrap. The engine's internals are external to the shell; the session
// only holds the singleton and tears it down on exit.
type Engine interface {
	ThreadCount() int
	Close() error
}

// Session is the interpreter session. Exactly one exists per process; it is
// created by Main and lives until process shutdown.
type Session struct {
	thread   *starlark.Thread
	globals  starlark.StringDict
	fileOpts *syntax.FileOptions

	// protected names can never be shadowed by later registrations.
	protected map[string]bool

	engine      Engine
	out         io.Writer
	diag        io.Writer
	terminating bool
}

// NewSession initializes the base interpreter runtime (bootstrap step 1).
func NewSession(out, diag io.Writer) *Session {
	if out == nil {
		out = os.Stdout
	}
	if diag == nil {
		diag = os.Stderr
	}
	s := &Session{
		globals: make(starlark.StringDict),
		fileOpts: &syntax.FileOptions{
			Set:             true,
			While:           true,
			TopLevelControl: true,
			GlobalReassign:  true,
			Recursion:       true,
		},
		protected: make(map[string]bool),
		out:       out,
		diag:      diag,
	}
	s.thread = &starlark.Thread{
		Name: "tash",
		Print: func(_ *starlark.Thread, msg string) {
			_, _ = fmt.Fprintln(out, msg)
		},
	}
	return s
}

// Out returns the session's output stream.
func (s *Session) Out() io.Writer { return s.out }

// Diag returns the session's diagnostic stream.
func (s *Session) Diag() io.Writer { return s.diag }

// Terminate flips the session into the terminating state. The transition is
// monotonic; there is no way back to running.
func (s *Session) Terminate() { s.terminating = true }

// Terminating reports whether termination has been requested.
func (s *Session) Terminating() bool { return s.terminating }

// BindEngine binds the shared analysis-engine singleton into the session.
// The reference is assigned once during bootstrap and never reassigned.
func (s *Session) BindEngine(eng Engine) {
	if s.engine == nil {
		s.engine = eng
	}
}

// Engine returns the bound analysis engine, or nil before bootstrap step 4.
func (s *Session) Engine() Engine { return s.engine }

// Register binds a name in the session's global namespace. Registering over
// a protected name (the host exit command) is an error.
func (s *Session) Register(name string, v starlark.Value) error {
	if s.protected[name] {
		return fmt.Errorf("command %q is reserved by the host", name)
	}
	s.globals[name] = v
	return nil
}

// registerExit installs the host-level termination command. It runs before
// any other registration and the name can never be shadowed afterwards.
func (s *Session) registerExit() {
	s.globals["exit"] = starlark.NewBuiltin("exit", func(_ *starlark.Thread, _ *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if err := starlark.UnpackArgs("exit", args, kwargs); err != nil {
			return nil, err
		}
		s.Terminate()
		return starlark.None, nil
	})
	s.protected["exit"] = true
}

// registerExport installs the command that publishes the domain namespace's
// members into the global namespace (bootstrap step 7 evaluates it).
func (s *Session) registerExport() {
	s.globals["export_commands"] = starlark.NewBuiltin("export_commands", func(_ *starlark.Thread, _ *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if err := starlark.UnpackArgs("export_commands", args, kwargs); err != nil {
			return nil, err
		}
		mod, ok := s.globals["sta"].(*starlarkstruct.Module)
		if !ok {
			return starlark.None, nil
		}
		for name, v := range mod.Members {
			if strings.HasPrefix(name, "_") || s.protected[name] {
				continue
			}
			s.globals[name] = v
		}
		return starlark.None, nil
	})
}

// Eval evaluates one chunk of input against the session. A sole expression
// yields its value's display form; statements execute against the session
// globals. A bare identifier naming a command invokes it with no arguments,
// so `exit` and `report_checks` behave as commands at the prompt.
func (s *Session) Eval(name, src string) (string, error) {
	f, err := s.fileOpts.Parse(name, src, 0)
	if err != nil {
		return "", err
	}

	if expr := soleExpr(f); expr != nil {
		v, err := starlark.EvalExprOptions(s.fileOpts, s.thread, expr, s.globals)
		if err != nil {
			return "", err
		}
		if _, bare := expr.(*syntax.Ident); bare {
			if fn, ok := v.(starlark.Callable); ok {
				v, err = starlark.Call(s.thread, fn, nil, nil)
				if err != nil {
					return "", err
				}
			}
		}
		if v == starlark.None {
			return "", nil
		}
		return v.String(), nil
	}

	if err := starlark.ExecREPLChunk(f, s.thread, s.globals); err != nil {
		return "", err
	}
	return "", nil
}

// EvalFile evaluates src as a single unit and merges the resulting module
// globals into the session's global namespace. Underscore-prefixed names
// stay private to the script; protected names are never overwritten.
func (s *Session) EvalFile(name string, src []byte) error {
	globals, err := starlark.ExecFileOptions(s.fileOpts, s.thread, name, src, s.globals)
	if err != nil {
		return err
	}
	for gname, v := range globals {
		if strings.HasPrefix(gname, "_") || s.protected[gname] {
			continue
		}
		s.globals[gname] = v
	}
	return nil
}

// SourceEcho sources a file in echo/verbose mode: each top-level statement's
// source lines are printed as it runs, followed by its result. Evaluation
// errors are reported to the diagnostic stream and sourcing continues.
func (s *Session) SourceEcho(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	f, err := s.fileOpts.Parse(path, data, 0)
	if err != nil {
		return err
	}

	lines := strings.Split(string(data), "\n")
	for _, stmt := range f.Stmts {
		start, end := stmt.Span()
		chunk := strings.Join(lines[start.Line-1:end.Line], "\n")
		_, _ = fmt.Fprintln(s.out, chunk)

		res, err := s.Eval(path, chunk)
		if err != nil {
			_, _ = fmt.Fprintf(s.diag, "Error: %s\n", errText(err))
			continue
		}
		if res != "" {
			_, _ = fmt.Fprintln(s.out, res)
		}
	}
	return nil
}

// Close tears down the session and the bound engine.
func (s *Session) Close() error {
	if s.engine != nil {
		return s.engine.Close()
	}
	return nil
}

// soleExpr returns the expression when the parsed chunk is a single
// expression statement, else nil.
func soleExpr(f *syntax.File) syntax.Expr {
	if len(f.Stmts) == 1 {
		if stmt, ok := f.Stmts[0].(*syntax.ExprStmt); ok {
			return stmt.X
		}
	}
	return nil
}

// errText prefers the interpreter's backtrace over the bare error string.
func errText(err error) string {
	var evalErr *starlark.EvalError
	if errors.As(err, &evalErr) {
		return evalErr.Backtrace()
	}
	return err.Error()
}
