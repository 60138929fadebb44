// Package args scans process arguments for the shell's flag conventions.
//
// The scanner is deliberately permissive: unrecognized flags are never
// inspected and never produce errors, and the first match of a key wins.
package args

import (
	"fmt"
	"io"
	"runtime"
	"strconv"
)

// HasFlag reports whether some argument after the program name exactly
// equals name.
func HasFlag(argv []string, name string) bool {
	for i := 1; i < len(argv); i++ {
		if argv[i] == name {
			return true
		}
	}
	return false
}

// KeyValue returns the argument immediately following the first exact match
// of name. The second return is false when name is absent or is the final
// argument.
func KeyValue(argv []string, name string) (string, bool) {
	for i := 1; i < len(argv); i++ {
		if argv[i] == name && i+1 < len(argv) {
			return argv[i+1], true
		}
	}
	return "", false
}

// DefaultThreads is the thread count used when -threads is absent or
// malformed.
const DefaultThreads = 1

// ResolveThreads resolves the -threads flag value. "max" resolves to the
// detected processor count and a digit string to its integer value. Any
// other value emits a warning to diag and leaves the count at the default;
// malformed values are never errors.
func ResolveThreads(argv []string, diag io.Writer) (int, bool) {
	val, ok := KeyValue(argv, "-threads")
	if !ok {
		return DefaultThreads, false
	}
	if val == "max" {
		return runtime.NumCPU(), true
	}
	if isDigits(val) {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n, true
		}
	}
	_, _ = fmt.Fprintln(diag, "Warning: -threads must be max or a positive integer.")
	return DefaultThreads, false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
