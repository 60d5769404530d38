// Package codegen is the code generator (component I): it walks a compiled
// lexerrt.Lexer's DFA and a lalr.Table and prints self-contained Go source
// for a lexer and parser that need nothing from this module at runtime. Per
// spec.md §1 this stage is deliberately thin — no design content here beyond
// walking the tables already built by components C through H and printing
// them, the way the teacher's own lalr1Table.String() walks a Table to print
// a human-readable dump rather than computing anything new.
package codegen

import (
	"bytes"
	"fmt"
	"go/format"
)

// Options controls the emitted source's framing. Lang is accepted for
// forward compatibility, but only Go output is implemented: GenerateLexer
// and GenerateParser do not read Lang and emit Go whatever its value.
type Options struct {
	Package string
	Lang    string
}

func (o Options) packageName() string {
	if o.Package == "" {
		return "generated"
	}
	return o.Package
}

// gofmt runs src through go/format, the same final pass nex.go (the other
// lexer generator this package is grounded on) applies to its own emitted
// source before writing it out. A formatting failure means the emitter
// itself produced invalid Go, so the raw source is returned alongside the
// error to aid debugging rather than being discarded.
func gofmt(src []byte) ([]byte, error) {
	out, err := format.Source(src)
	if err != nil {
		return src, fmt.Errorf("format generated source: %w", err)
	}
	return out, nil
}

func header(buf *bytes.Buffer, pkg, what string) {
	fmt.Fprintf(buf, "// Code generated by lexigen from a spec file. DO NOT EDIT.\n")
	fmt.Fprintf(buf, "// This file implements the generated %s.\n\n", what)
	fmt.Fprintf(buf, "package %s\n\n", pkg)
}
