// Command genbundle triplet-encodes the shell's startup command bundle.
//
// It reads internal/script/bundle.star and regenerates
// internal/script/inits.go. Run it after editing the bundle:
//
//	go run ./scripts/genbundle
package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/veridian-eda/tash/internal/script"
)

const (
	bundlePath = "internal/script/bundle.star"
	outputPath = "internal/script/inits.go"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "genbundle: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	src, err := os.ReadFile(bundlePath)
	if err != nil {
		return err
	}

	fragments := script.Encode(src)

	// Sanity check before writing anything.
	decoded, err := script.Decode(fragments)
	if err != nil {
		return fmt.Errorf("self-check decode failed: %w", err)
	}
	if !bytes.Equal(decoded, src) {
		return fmt.Errorf("self-check round trip mismatch: %d bytes in, %d out", len(src), len(decoded))
	}

	var out bytes.Buffer
	out.WriteString("// Code generated by scripts/genbundle from bundle.star. DO NOT EDIT.\n\n")
	out.WriteString("package script\n\n")
	out.WriteString("// Inits is the triplet-encoded startup command bundle. Each fragment is a\n")
	out.WriteString("// run of 3-digit decimal byte codes; the empty fragment terminates the\n")
	out.WriteString("// stream.\n")
	out.WriteString("var Inits = []string{\n")
	for _, frag := range fragments {
		fmt.Fprintf(&out, "\t%q,\n", frag)
	}
	out.WriteString("}\n")

	if err := os.WriteFile(outputPath, out.Bytes(), 0644); err != nil {
		return err
	}

	fmt.Printf("genbundle: %d bytes -> %d fragments -> %s\n", len(src), len(fragments)-1, outputPath)
	return nil
}
