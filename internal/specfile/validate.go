package specfile

import (
	"strings"

	"github.com/dekarrin/lexigen/internal/grammar"
	"github.com/dekarrin/lexigen/internal/icerrors"
)

// discardAction is the reserved lexer-rule action name meaning "match and
// consume, but never emit a token" — the mechanism behind dropped
// whitespace and comments. A discard rule's token name is exempt from the
// "regex declared but no token of that name declared" check, since nothing
// downstream ever needs to recognize it as a grammar symbol.
const discardAction = "discard"

// BuildGrammar assembles a grammar.Grammar from a parsed Spec and runs the
// cross-validation rules a spec file must satisfy before it can be handed to
// the LALR table builder. A non-empty Diagnostics batch means g is not safe
// to build a table from, but every check still runs so a spec author sees
// every problem in one pass rather than one at a time.
func BuildGrammar(spec *Spec) (*grammar.Grammar, icerrors.Diagnostics) {
	var diags icerrors.Diagnostics

	g := grammar.NewGrammar()

	// The token block is the sole authority on which names are terminals.
	terminalDeclared := map[string]bool{}
	for _, t := range spec.Tokens {
		g.AddTerm(t.Name)
		terminalDeclared[t.Name] = true
	}

	hasRegex := map[string]bool{}
	lexActionFor := map[string]string{}
	for _, lr := range spec.LexRules {
		if lr.Token == "" {
			continue
		}
		hasRegex[lr.Token] = true
		lexActionFor[lr.Token] = lr.Action

		if strings.EqualFold(lr.Action, discardAction) {
			continue
		}
		if !terminalDeclared[lr.Token] {
			diags = diags.Add(icerrors.New(icerrors.UnusedRegex,
				"regex %q is declared but no token of that name is declared in the token block", lr.Token))
		}
	}

	// Priority rises from the first declared precedence block to the last,
	// and from the first ident_list in a block to the last within it.
	priority := uint(1)
	for _, block := range spec.Prec {
		for _, group := range block.Groups {
			for _, term := range group {
				g.SetPrecedence(term, priority, block.Assoc)
			}
			priority++
		}
	}

	if len(spec.Rules) > 0 {
		g.SetStart(spec.Rules[0].LHS)
	}

	for _, rule := range spec.Rules {
		for _, rhs := range rule.RHS {
			prod := grammar.Production{
				Symbols:      rhs.Symbols,
				Action:       rhs.Action,
				Tag:          rhs.Tag,
				ArgToElement: rhs.ArgToElement,
			}
			g.AddRule(rule.LHS, prod)
		}
	}

	usedTerms := map[string]bool{}
	seenRHS := map[string]bool{}

	for _, rule := range spec.Rules {
		for _, rhs := range rule.RHS {
			key := rule.LHS + " -> " + strings.Join(rhs.Symbols, " ")
			if seenRHS[key] {
				diags = diags.Add(icerrors.New(icerrors.DuplicateRhs,
					"rule %q declares the production %q more than once", rule.LHS, strings.Join(rhs.Symbols, " ")))
			}
			seenRHS[key] = true

			for _, sym := range rhs.Symbols {
				if sym == "" {
					continue // epsilon
				}
				if g.IsTerminal(sym) {
					usedTerms[sym] = true
					continue
				}
				if _, ok := g.Rule(sym); ok {
					continue
				}
				diags = diags.Add(icerrors.New(icerrors.UnknownSymbol,
					"rule %q references %q, which is neither a declared token nor a parser rule", rule.LHS, sym))
			}

			if rhs.Tag != "" && !g.IsTerminal(rhs.Tag) {
				diags = diags.Add(icerrors.New(icerrors.UnknownSymbol,
					"rule %q tags a production with %q, which is not a declared token", rule.LHS, rhs.Tag))
			}

			if len(rhs.ArgToElement) > 0 {
				for i := 0; i < len(rhs.ArgToElement); i++ {
					pos, ok := rhs.ArgToElement[i]
					if !ok {
						diags = diags.Add(icerrors.New(icerrors.NonSequentialArgs,
							"action %q on rule %q: argument indices are not contiguous starting at 0", rhs.Action, rule.LHS))
						break
					}
					if pos < 0 || pos >= len(rhs.Symbols) {
						continue
					}
					sym := rhs.Symbols[pos]
					if !g.IsTerminal(sym) {
						continue // nonterminal argument: no lexer rule to capture with
					}
					if act := lexActionFor[sym]; act == "" {
						diags = diags.Add(icerrors.New(icerrors.MissingAction,
							"rule %q: argument %d is terminal %q, whose lexer rule has no capture action", rule.LHS, i, sym))
					}
				}
			}
		}
	}

	for term := range usedTerms {
		if !hasRegex[term] {
			diags = diags.Add(icerrors.New(icerrors.UnknownSymbol,
				"token %q is used in a parser rule but has no matching lexer rule", term))
		}
	}

	return g, diags
}
