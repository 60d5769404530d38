// Package specfile is the spec-file loader (component H): it turns a spec
// file's bytes, markdown-embedded or plain, into a validated grammar.Grammar
// and the compiled lexerrt.Lexer that scans it, ready for internal/lalr's
// table builder.
package specfile

import (
	"strings"

	"github.com/dekarrin/lexigen/internal/grammar"
	"github.com/dekarrin/lexigen/internal/icerrors"
	"github.com/dekarrin/lexigen/internal/lexerrt"
)

// Loaded is everything a spec file produces: the cross-validated grammar and
// the lexer rule set declared in its lexer block, in declaration order and
// not yet compiled into a runtime Lexer (the caller passes LexRules to
// lexerrt.Compile).
type Loaded struct {
	Grammar  *grammar.Grammar
	LexRules []lexerrt.Rule
}

// Load reads a spec file's raw bytes. If src looks like markdown, only the
// fenced blocks tagged "lexigen" are extracted first; otherwise src is
// assumed to already be plain spec source.
func Load(src []byte) (*Loaded, icerrors.Diagnostics) {
	if LooksLikeMarkdown(src) {
		src = ExtractFromMarkdown(src)
	}

	lx, err := lexerrt.Compile(bootstrapRules())
	if err != nil {
		if d, ok := err.(*icerrors.Diagnostic); ok {
			return nil, icerrors.Diagnostics{d}
		}
		return nil, icerrors.Diagnostics{icerrors.Wrap(icerrors.SpecSyntax, err, "could not compile bootstrap lexer")}
	}

	stream, err := lx.Lex(src)
	if err != nil {
		if d, ok := err.(*icerrors.Diagnostic); ok {
			return nil, icerrors.Diagnostics{d}
		}
		return nil, icerrors.Diagnostics{icerrors.Wrap(icerrors.SpecSyntax, err, "could not tokenize spec file")}
	}

	spec, err := Parse(stream)
	if err != nil {
		if d, ok := err.(*icerrors.Diagnostic); ok {
			return nil, icerrors.Diagnostics{d}
		}
		return nil, icerrors.Diagnostics{icerrors.Wrap(icerrors.SpecSyntax, err, "could not parse spec file")}
	}

	g, diags := BuildGrammar(spec)
	if diags.HasErrors() {
		return nil, diags
	}

	rules := make([]lexerrt.Rule, len(spec.LexRules))
	for i, lr := range spec.LexRules {
		token := lr.Token
		if strings.EqualFold(lr.Action, discardAction) {
			token = ""
		}
		rules[i] = lexerrt.Rule{Pattern: lr.Pattern, Token: token, Action: lr.Action}
	}

	return &Loaded{Grammar: g, LexRules: rules}, nil
}
