// Package icerrors defines the error kinds produced by the generator core.
//
// Every kind carries position information where it is meaningful, following
// the two-message split (a technical Error() string plus a human-facing
// rendering with a caret under the offending source) that ictiobus's own
// syntax-error type used.
package icerrors

import (
	"fmt"
	"strings"
)

// Kind identifies which of the error kinds described in the error-handling
// design a Diagnostic is.
type Kind int

const (
	RegexSyntax Kind = iota
	SpecSyntax
	UnknownSymbol
	DuplicateRule
	DuplicateRhs
	NonSequentialArgs
	UnusedRegex
	MissingAction
	Conflict
	IO
)

func (k Kind) String() string {
	switch k {
	case RegexSyntax:
		return "RegexSyntax"
	case SpecSyntax:
		return "SpecSyntax"
	case UnknownSymbol:
		return "UnknownSymbol"
	case DuplicateRule:
		return "DuplicateRule"
	case DuplicateRhs:
		return "DuplicateRhs"
	case NonSequentialArgs:
		return "NonSequentialArgs"
	case UnusedRegex:
		return "UnusedRegex"
	case MissingAction:
		return "MissingAction"
	case Conflict:
		return "Conflict"
	case IO:
		return "IO"
	default:
		return "Unknown"
	}
}

// Diagnostic is a single positioned error produced somewhere in the
// generation pipeline.
type Diagnostic struct {
	Kind Kind
	Msg  string

	Line int // 1-indexed; 0 if not applicable
	Col  int // 1-indexed; 0 if not applicable

	// SourceLine is the full text of the offending line, used to render a
	// caret-pointer under Col when non-empty.
	SourceLine string

	wrapped error
}

func (d *Diagnostic) Error() string {
	if d.Line > 0 {
		return fmt.Sprintf("%d:%d: %s: %s", d.Line, d.Col, d.Kind, d.Msg)
	}
	return fmt.Sprintf("%s: %s", d.Kind, d.Msg)
}

func (d *Diagnostic) Unwrap() error {
	return d.wrapped
}

// FullMessage renders the diagnostic with a caret pointing at Col under
// SourceLine, when both are available.
func (d *Diagnostic) FullMessage() string {
	var sb strings.Builder
	sb.WriteString(d.Error())

	if d.SourceLine != "" && d.Col > 0 {
		sb.WriteRune('\n')
		sb.WriteString(d.SourceLine)
		sb.WriteRune('\n')
		pad := d.Col - 1
		if pad < 0 {
			pad = 0
		}
		sb.WriteString(strings.Repeat(" ", pad))
		sb.WriteRune('^')
	}

	return sb.String()
}

// New builds a Diagnostic with no position information.
func New(kind Kind, format string, a ...interface{}) *Diagnostic {
	return &Diagnostic{Kind: kind, Msg: fmt.Sprintf(format, a...)}
}

// At builds a Diagnostic positioned at line/col, optionally quoting the
// full source line it occurred on.
func At(kind Kind, line, col int, sourceLine string, format string, a ...interface{}) *Diagnostic {
	return &Diagnostic{
		Kind:       kind,
		Msg:        fmt.Sprintf(format, a...),
		Line:       line,
		Col:        col,
		SourceLine: sourceLine,
	}
}

// Wrap builds a Diagnostic that wraps an underlying error.
func Wrap(kind Kind, err error, format string, a ...interface{}) *Diagnostic {
	return &Diagnostic{Kind: kind, Msg: fmt.Sprintf(format, a...), wrapped: err}
}

// Diagnostics is a batch of Diagnostic, the unit of report for semantic
// validation and LALR table construction: both collect every failure found
// rather than stopping at the first.
type Diagnostics []*Diagnostic

func (ds Diagnostics) Error() string {
	lines := make([]string, len(ds))
	for i, d := range ds {
		lines[i] = d.Error()
	}
	return strings.Join(lines, "\n")
}

// HasErrors reports whether the batch is non-empty.
func (ds Diagnostics) HasErrors() bool {
	return len(ds) > 0
}

// Add appends a diagnostic to the batch and returns the new slice, mirroring
// the append-and-reassign idiom used everywhere else diagnostics are
// collected in this module.
func (ds Diagnostics) Add(d *Diagnostic) Diagnostics {
	return append(ds, d)
}
