package shell

import (
	"errors"
	"fmt"
	"strings"

	"github.com/chzyer/readline"
)

// lineSource blocks for one line of input. *readline.Instance satisfies it.
type lineSource interface {
	Readline() (string, error)
}

// RunLoop drives the read-eval-print loop until end-of-input or until an
// evaluation sets the terminating flag. Interactive errors are never fatal:
// the interpreter's result text goes to the diagnostic stream and the loop
// continues.
func RunLoop(sess *Session, src lineSource, hist *HistoryStore) {
	for {
		if sess.Terminating() {
			return
		}

		line, err := src.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if err != nil {
			// io.EOF or a closed editor: end of input.
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		hist.Add(line)

		res, err := sess.Eval("<stdin>", line)
		if err != nil {
			_, _ = fmt.Fprintln(sess.diag, errText(err))
		} else if res != "" {
			_, _ = fmt.Fprintln(sess.out, res)
		}

		if sess.Terminating() {
			return
		}
	}
}
