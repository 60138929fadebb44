// Package script decodes and evaluates the build-time-encoded startup
// command bundle.
//
// The bundle is part of the binary's own integrity: a decode or evaluation
// failure is a build or deployment defect, reported as a FatalError that the
// top-level shell entry converts into process termination. The decoder
// itself never exits the process.
package script

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"go.starlark.net/starlark"
)

// Evaluator evaluates one source buffer as a single unit against the
// interpreter session. Implemented by shell.Session.
type Evaluator interface {
	EvalFile(name string, src []byte) error
}

// FatalError reports a corrupted or incompatible embedded bundle. It is the
// only unrecoverable error class in the shell.
type FatalError struct {
	Stage  string // "decode" or "eval"
	Detail string // decode failure or interpreter backtrace
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("init script (%s): %s\nThe embedded command bundle is corrupted or incompatible with this build.\nRegenerate internal/script/inits.go with scripts/genbundle and rebuild.",
		e.Stage, e.Detail)
}

// Decode concatenates the decoded bytes of every fragment, in order, into
// one buffer. Each 3-character slice is a decimal byte code 0-255. An empty
// fragment terminates the stream.
func Decode(fragments []string) ([]byte, error) {
	var buf bytes.Buffer
	for i, frag := range fragments {
		if frag == "" {
			break
		}
		if len(frag)%3 != 0 {
			return nil, fmt.Errorf("fragment %d: length %d is not a multiple of 3", i, len(frag))
		}
		for j := 0; j < len(frag); j += 3 {
			code := frag[j : j+3]
			n, err := strconv.Atoi(code)
			if err != nil || n < 0 || n > 255 {
				return nil, fmt.Errorf("fragment %d: invalid byte code %q", i, code)
			}
			buf.WriteByte(byte(n))
		}
	}
	return buf.Bytes(), nil
}

// bytesPerFragment is the fragment size genbundle emits. 48 bytes keeps the
// encoded string literals at 144 characters.
const bytesPerFragment = 48

// Encode is the inverse of Decode: each byte becomes a 3-digit decimal code,
// grouped into fragments and terminated by an empty sentinel fragment.
func Encode(src []byte) []string {
	var fragments []string
	var frag bytes.Buffer
	for i, b := range src {
		fmt.Fprintf(&frag, "%03d", b)
		if (i+1)%bytesPerFragment == 0 {
			fragments = append(fragments, frag.String())
			frag.Reset()
		}
	}
	if frag.Len() > 0 {
		fragments = append(fragments, frag.String())
	}
	return append(fragments, "")
}

// EvalInits decodes the embedded bundle and evaluates it exactly once as a
// single unit. Any failure is returned as a *FatalError.
func EvalInits(ev Evaluator, fragments []string) error {
	src, err := Decode(fragments)
	if err != nil {
		return &FatalError{Stage: "decode", Detail: err.Error()}
	}
	if err := ev.EvalFile("<init>", src); err != nil {
		detail := err.Error()
		var evalErr *starlark.EvalError
		if errors.As(err, &evalErr) {
			detail = evalErr.Backtrace()
		}
		return &FatalError{Stage: "eval", Detail: detail}
	}
	return nil
}
