// Command tash is an interactive timing-analysis shell.
//
// It hosts a Starlark interpreter session, registers the timing command
// set, evaluates the embedded startup bundle, and drives a line-editing
// read-eval-print loop with completion and history persistence.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/veridian-eda/tash/internal/args"
	"github.com/veridian-eda/tash/internal/config"
	"github.com/veridian-eda/tash/internal/script"
	"github.com/veridian-eda/tash/internal/shell"
	"github.com/veridian-eda/tash/internal/timing"
)

const version = "0.9.1"

func main() {
	os.Exit(run(os.Args))
}

func run(argv []string) int {
	if args.HasFlag(argv, "-help") {
		printUsage(os.Stdout, argv[0])
		return 0
	}
	if args.HasFlag(argv, "-version") {
		fmt.Printf("tash %s\n", version)
		return 0
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		cfg = &config.Host{Prompt: shell.DefaultPrompt, Threads: 1}
	}

	eng := timing.New(timing.Config{})
	threads, fromFlag := args.ResolveThreads(argv, os.Stderr)
	if !fromFlag && cfg.Threads > 0 {
		threads = cfg.Threads
	}
	eng.SetThreadCount(threads)

	err = shell.Main(shell.Options{
		Args:        argv,
		Registrar:   timing.Registrar(eng),
		Engine:      eng,
		Prompt:      cfg.Prompt,
		HistoryFile: cfg.HistoryFile,
		InitFile:    cfg.InitFile,
		NoSplash:    cfg.NoSplash,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		var fatal *script.FatalError
		if errors.As(err, &fatal) {
			return 2
		}
		return 1
	}
	return 0
}

func printUsage(w io.Writer, prog string) {
	fmt.Fprintf(w, "Usage: %s [-help] [-version] [-no_init] [-no_splash] [-x cmd] [-f cmd_file] [-threads count|max]\n", prog)
	fmt.Fprintln(w, "  -help              show help and exit")
	fmt.Fprintln(w, "  -version           show version and exit")
	fmt.Fprintln(w, "  -no_init           do not read the ~/.tashrc init file")
	fmt.Fprintln(w, "  -no_splash         do not show the startup banner")
	fmt.Fprintln(w, "  -x cmd             evaluate cmd (always before -f)")
	fmt.Fprintln(w, "  -f cmd_file        source cmd_file with echo")
	fmt.Fprintln(w, "  -threads count|max use count threads")
	fmt.Fprintln(w, "Unrecognized flags are ignored.")
}
