package shell

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"

	"github.com/veridian-eda/tash/internal/args"
	"github.com/veridian-eda/tash/internal/script"
)

// Registrar is the externally supplied domain-command registrar. The
// embedding application passes one callable at process start; bootstrap
// invokes it exactly once, before the embedded bundle runs.
type Registrar func(*Session) error

// InitFileName is the user init file sourced from the home directory unless
// -no_init is given.
const InitFileName = ".tashrc"

// initFragments is the embedded bundle. A variable so the fatal path can be
// exercised in tests.
var initFragments = script.Inits

// Options configures Bootstrap and Main. Zero values fall back to the
// standard streams and fixed paths.
type Options struct {
	Args      []string  // process arguments; index 0 is the program name
	Registrar Registrar // domain-command registrar, invoked exactly once
	Engine    Engine    // analysis-engine singleton bound in step 4

	Out  io.Writer // interpreter output (default os.Stdout)
	Diag io.Writer // diagnostic stream (default os.Stderr)

	Prompt      string // default "tash> "
	HistoryFile string // default ".tash_history"
	InitFile    string // default $HOME/.tashrc

	// Config-level defaults; the corresponding flags force them on.
	NoSplash bool
	NoInit   bool
}

// Bootstrap runs the fixed ordered initialization sequence against a fresh
// session. Only a bundle failure (step 5) is fatal; every other step reports
// to the diagnostic stream and the sequence continues.
func Bootstrap(sess *Session, opts Options) error {
	// 2. Host termination command, before any other registration.
	sess.registerExit()
	sess.registerExport()

	// 3. Domain-command registrar, exactly once.
	if opts.Registrar != nil {
		if err := opts.Registrar(sess); err != nil {
			_, _ = fmt.Fprintf(sess.diag, "Error: command registration: %s\n", err)
		}
	}
	// The bundle layers on the sta namespace; keep it resolvable even when
	// the registrar registered nothing.
	if _, ok := sess.globals["sta"]; !ok {
		sess.globals["sta"] = &starlarkstruct.Module{Name: "sta", Members: starlark.StringDict{}}
	}

	// 4. Bind the analysis-engine singleton.
	sess.BindEngine(opts.Engine)

	// 5. Decode and evaluate the embedded bundle. Fatal on failure.
	if err := script.EvalInits(sess, initFragments); err != nil {
		return err
	}

	// 6. Startup banner.
	if !opts.NoSplash && !args.HasFlag(opts.Args, "-no_splash") {
		evalStep(sess, "show_splash()")
	}

	// 7. Publish the domain namespace's commands into the global namespace.
	evalStep(sess, "export_commands()")

	// 8. User init file, echo/verbose.
	if !opts.NoInit && !args.HasFlag(opts.Args, "-no_init") {
		if path := initFilePath(opts); path != "" {
			sourceStep(sess, path)
		}
	}

	// 9. -x cmd is evaluated before -f file is sourced, independent of
	// their order on the command line.
	if cmd, ok := args.KeyValue(opts.Args, "-x"); ok {
		evalStep(sess, cmd)
	}

	// 10. -f file, sourced in the same echo/verbose mode as step 8.
	if file, ok := args.KeyValue(opts.Args, "-f"); ok {
		sourceStep(sess, file)
	}

	return nil
}

// evalStep evaluates a bootstrap command; failures are recoverable.
func evalStep(sess *Session, cmd string) {
	res, err := sess.Eval("<bootstrap>", cmd)
	if err != nil {
		_, _ = fmt.Fprintf(sess.diag, "Error: %s\n", errText(err))
		return
	}
	if res != "" {
		_, _ = fmt.Fprintln(sess.out, res)
	}
}

// sourceStep sources a file in echo/verbose mode; failures are recoverable.
func sourceStep(sess *Session, path string) {
	if err := sess.SourceEcho(path); err != nil {
		_, _ = fmt.Fprintf(sess.diag, "Error: %s\n", errText(err))
	}
}

// initFilePath resolves the fixed init file path under the user's home
// directory. A missing init file is not an error; a fresh account simply
// has none.
func initFilePath(opts Options) string {
	path := opts.InitFile
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		path = filepath.Join(home, InitFileName)
	}
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}
