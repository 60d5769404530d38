// Package lexerrt is the DFA-driven token-stream runtime shared by the
// spec-file loader's own bootstrap lexer and the lexer artifacts a
// generation run emits. A rule set is compiled once — each rule's pattern
// parsed (rgx), translated to an NFA fragment sharing one pool, subset-
// constructed and minimized — into a single Lexer that then performs
// maximal-munch scanning over an input byte slice. Scanning is eager, the
// teacher's ImmediatelyLex idiom (the whole input scanned to a token slice
// up front), but driven by the DFA built in internal/automaton rather than
// the stubbed regexp-based engine that package never finished.
package lexerrt

import (
	"github.com/dekarrin/lexigen/internal/automaton"
	"github.com/dekarrin/lexigen/internal/rgx"
)

// Rule is one lexer rule: a regex pattern tagged with the terminal name it
// produces and the semantic action (if any) applied to captured lexemes. A
// rule with an empty Token is matched like any other but never emitted as a
// token (e.g. whitespace, comments).
type Rule struct {
	Pattern string
	Token   string
	Action  string
}

// tag is the per-accept-state value threaded through the NFA/DFA pool;
// ruleIndex breaks ties between rules matching the same input by earliest
// declaration, per spec.md §4.4.
type tag struct {
	ruleIndex int
	token     string
	action    string
}

func (t *tag) discard() bool { return t == nil || t.token == "" }

// Lexer is a compiled, ready-to-run token-stream generator: the product of
// running every Rule's pattern through components B (rgx), C (subset
// construction), and D (minimization).
type Lexer struct {
	dfa   automaton.DFA[*tag]
	rules []Rule
}

// Compile builds a Lexer from an ordered rule set. Rules earlier in the
// slice win ties on equal-length matches, per spec.md §4.4's "regex
// priority = insertion order in the spec" rule.
func Compile(rules []Rule) (*Lexer, error) {
	nfa := automaton.NFA[*tag]{}
	start := "0"
	nfa.AddState(start, false)
	nfa.Start = start

	for i, r := range rules {
		node, err := rgx.Parse(r.Pattern)
		if err != nil {
			return nil, err
		}

		end := rgx.BuildFragment(&nfa, start, node)

		accept := nfa.NewState()
		nfa.AddState(accept, true)
		nfa.AddTransition(end, automaton.EpsilonLabel, accept)
		nfa.SetValue(accept, &tag{ruleIndex: i, token: r.Token, action: r.Action})
	}

	dfa := automaton.SubsetConstruct(nfa, func(members []string) (*tag, bool) {
		var best *tag
		for _, m := range members {
			if !nfa.IsAccepting(m) {
				continue
			}
			t := nfa.GetValue(m)
			if best == nil || t.ruleIndex < best.ruleIndex {
				best = t
			}
		}
		return best, best != nil
	})

	sameTag := func(a, b *tag) bool {
		if a == nil || b == nil {
			return a == b
		}
		return a.token == b.token && a.action == b.action
	}
	minimized, _ := automaton.Minimize(dfa, sameTag)

	return &Lexer{dfa: minimized, rules: rules}, nil
}
