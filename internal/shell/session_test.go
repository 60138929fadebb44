package shell

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
)

func newTestSession(t *testing.T) (*Session, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	diag := &bytes.Buffer{}
	return NewSession(out, diag), out, diag
}

func TestSessionEval(t *testing.T) {
	sess, out, _ := newTestSession(t)

	t.Run("expression yields its value", func(t *testing.T) {
		res, err := sess.Eval("<test>", `1 + 2`)
		require.NoError(t, err)
		assert.Equal(t, "3", res)
	})

	t.Run("statements bind session globals", func(t *testing.T) {
		_, err := sess.Eval("<test>", `x = 40`)
		require.NoError(t, err)

		res, err := sess.Eval("<test>", `x + 2`)
		require.NoError(t, err)
		assert.Equal(t, "42", res)
	})

	t.Run("definitions persist across evals", func(t *testing.T) {
		_, err := sess.Eval("<test>", "def double(n):\n    return 2 * n")
		require.NoError(t, err)

		res, err := sess.Eval("<test>", `double(21)`)
		require.NoError(t, err)
		assert.Equal(t, "42", res)
	})

	t.Run("print goes to the output stream", func(t *testing.T) {
		out.Reset()
		_, err := sess.Eval("<test>", `print("hello")`)
		require.NoError(t, err)
		assert.Equal(t, "hello\n", out.String())
	})

	t.Run("none yields no result text", func(t *testing.T) {
		res, err := sess.Eval("<test>", `None`)
		require.NoError(t, err)
		assert.Empty(t, res)
	})

	t.Run("evaluation errors carry interpreter text", func(t *testing.T) {
		_, err := sess.Eval("<test>", `undefined_name`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "undefined_name")
	})
}

func TestSessionBareCommandInvocation(t *testing.T) {
	sess, out, _ := newTestSession(t)
	sess.registerExit()
	require.NoError(t, sess.Register("greet", starlark.NewBuiltin("greet", func(_ *starlark.Thread, _ *starlark.Builtin, _ starlark.Tuple, _ []starlark.Tuple) (starlark.Value, error) {
		return starlark.String("hi"), nil
	})))

	// A bare identifier naming a command invokes it.
	res, err := sess.Eval("<stdin>", `greet`)
	require.NoError(t, err)
	assert.Equal(t, `"hi"`, res)

	// A bare exit terminates the session.
	assert.False(t, sess.Terminating())
	_, err = sess.Eval("<stdin>", `exit`)
	require.NoError(t, err)
	assert.True(t, sess.Terminating())
	_ = out
}

func TestSessionTerminateIsMonotonic(t *testing.T) {
	sess, _, _ := newTestSession(t)
	sess.registerExit()

	_, err := sess.Eval("<stdin>", `exit()`)
	require.NoError(t, err)
	assert.True(t, sess.Terminating())

	// Further evaluation never clears the flag.
	_, err = sess.Eval("<stdin>", `x = 1`)
	require.NoError(t, err)
	assert.True(t, sess.Terminating())
}

func TestExitCannotBeShadowed(t *testing.T) {
	sess, _, _ := newTestSession(t)
	sess.registerExit()

	err := sess.Register("exit", starlark.String("impostor"))
	require.Error(t, err)

	// Module-level bindings from scripts are skipped too.
	require.NoError(t, sess.EvalFile("<test>", []byte("exit = 5\n")))
	_, err = sess.Eval("<stdin>", `exit`)
	require.NoError(t, err)
	assert.True(t, sess.Terminating())
}

func TestEvalFileMergesGlobals(t *testing.T) {
	sess, _, _ := newTestSession(t)

	src := []byte("_hidden = 1\ndef visible():\n    return _hidden + 41\n")
	require.NoError(t, sess.EvalFile("<bundle>", src))

	res, err := sess.Eval("<stdin>", `visible()`)
	require.NoError(t, err)
	assert.Equal(t, "42", res)

	_, err = sess.Eval("<stdin>", `_hidden`)
	require.Error(t, err, "underscore names stay private to the script")
}

func TestSessionBindEngineOnce(t *testing.T) {
	sess, _, _ := newTestSession(t)
	first := &fakeEngine{threads: 4}
	second := &fakeEngine{threads: 8}

	sess.BindEngine(first)
	sess.BindEngine(second)
	assert.Same(t, first, sess.Engine().(*fakeEngine))

	require.NoError(t, sess.Close())
	assert.True(t, first.closed)
	assert.False(t, second.closed)
}

func TestSourceEcho(t *testing.T) {
	sess, out, diag := newTestSession(t)

	path := filepath.Join(t.TempDir(), "init.tash")
	content := "a = 6\na * 7\nmissing()\nprint(\"done\")\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	require.NoError(t, sess.SourceEcho(path))

	o := out.String()
	// Each line is echoed as it runs; expression results are printed.
	assert.Contains(t, o, "a = 6")
	assert.Contains(t, o, "a * 7")
	assert.Contains(t, o, "42")
	// Evaluation continues past the failing statement.
	assert.Contains(t, o, "done")
	assert.Contains(t, diag.String(), "missing")
}

func TestSourceEchoMissingFile(t *testing.T) {
	sess, _, _ := newTestSession(t)
	err := sess.SourceEcho(filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
}

func TestExportCommands(t *testing.T) {
	sess, _, _ := newTestSession(t)
	sess.registerExit()
	sess.registerExport()

	mod := &starlarkstruct.Module{
		Name: "sta",
		Members: starlark.StringDict{
			"answer": starlark.MakeInt(42),
			"_priv":  starlark.MakeInt(1),
			"exit":   starlark.String("impostor"),
		},
	}
	require.NoError(t, sess.Register("sta", mod))

	_, err := sess.Eval("<bootstrap>", `export_commands()`)
	require.NoError(t, err)

	res, err := sess.Eval("<stdin>", `answer`)
	require.NoError(t, err)
	assert.Equal(t, "42", res)

	_, err = sess.Eval("<stdin>", `_priv`)
	require.Error(t, err)

	// The host exit command survives the export.
	_, err = sess.Eval("<stdin>", `exit`)
	require.NoError(t, err)
	assert.True(t, sess.Terminating())
}

type fakeEngine struct {
	threads int
	closed  bool
}

func (f *fakeEngine) ThreadCount() int { return f.threads }
func (f *fakeEngine) Close() error {
	f.closed = true
	return nil
}
