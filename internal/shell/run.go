package shell

import (
	"fmt"
	"os"

	"github.com/chzyer/readline"
)

// DefaultPrompt is shown before each interactive line.
const DefaultPrompt = "tash> "

// Main bootstraps a fresh session and runs the interactive loop until
// termination. It returns a *script.FatalError when the embedded bundle
// fails; the caller converts that into process termination.
func Main(opts Options) error {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Diag == nil {
		opts.Diag = os.Stderr
	}
	if opts.Prompt == "" {
		opts.Prompt = DefaultPrompt
	}

	sess := NewSession(opts.Out, opts.Diag)
	defer func() { _ = sess.Close() }()

	if err := Bootstrap(sess, opts); err != nil {
		return err
	}
	if sess.Terminating() {
		// A -x command or sourced file already ended the session.
		return nil
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:                 opts.Prompt,
		AutoComplete:           newCompleter(),
		InterruptPrompt:        "^C",
		EOFPrompt:              "exit",
		DisableAutoSaveHistory: true,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize line editor: %w", err)
	}
	defer func() { _ = rl.Close() }()

	hist := NewHistoryStore(opts.HistoryFile)
	if err := hist.Load(rl); err != nil {
		_, _ = fmt.Fprintf(opts.Diag, "Warning: history: %v\n", err)
	}

	RunLoop(sess, rl, hist)

	if err := hist.Save(); err != nil {
		_, _ = fmt.Fprintf(opts.Diag, "Warning: history: %v\n", err)
	}
	return nil
}
