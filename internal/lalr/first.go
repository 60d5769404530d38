// Package lalr builds LALR(1) parsing tables from a grammar.Grammar: LR(0)
// kernel/goto construction, lookahead propagation to a fixed point, and
// action/goto table assembly with precedence-based conflict resolution. It
// also supplies the table-driven shift/reduce/accept loop that walks a
// token stream against the finished table.
package lalr

import "github.com/dekarrin/lexigen/internal/grammar"

// epsilonMarker is the FIRST1 set entry meaning "can derive the empty
// string".
const epsilonMarker = ""

// computeFirstSets computes FIRST1 for every nonterminal of g: the set of
// terminals that can begin some derivation from that nonterminal, plus the
// marker epsilonMarker if the nonterminal can derive the empty string. Each
// terminal's own entry is the set holding just that terminal.
func computeFirstSets(g *grammar.Grammar) map[string]map[string]bool {
	first := map[string]map[string]bool{}

	for _, t := range g.Terminals() {
		first[t] = map[string]bool{t: true}
	}
	for _, nt := range g.NonTerminals() {
		first[nt] = map[string]bool{}
	}

	changed := true
	for changed {
		changed = false
		for _, nt := range g.NonTerminals() {
			r, _ := g.Rule(nt)
			for _, p := range r.Productions {
				if len(p.Symbols) == 1 && p.Symbols[0] == "" {
					if !first[nt][epsilonMarker] {
						first[nt][epsilonMarker] = true
						changed = true
					}
					continue
				}

				allEps := true
				for _, sym := range p.Symbols {
					symFirst := first[sym]
					for t := range symFirst {
						if t == epsilonMarker {
							continue
						}
						if !first[nt][t] {
							first[nt][t] = true
							changed = true
						}
					}
					if !symFirst[epsilonMarker] {
						allEps = false
						break
					}
				}
				if allEps {
					if !first[nt][epsilonMarker] {
						first[nt][epsilonMarker] = true
						changed = true
					}
				}
			}
		}
	}

	return first
}

// firstOfSequence computes FIRST of a symbol sequence followed by a known
// trailing lookahead: the terminals that can begin symbols, plus fallback
// (the trailing lookahead) if every symbol in the sequence can derive ε.
func firstOfSequence(first map[string]map[string]bool, symbols []string, fallback string) []string {
	result := map[string]bool{}
	allEps := true

	for _, sym := range symbols {
		symFirst := first[sym]
		if symFirst == nil {
			// terminal never registered (shouldn't happen for a validated
			// grammar); treat it as deriving only itself.
			result[sym] = true
			allEps = false
			break
		}
		for t := range symFirst {
			if t != epsilonMarker {
				result[t] = true
			}
		}
		if !symFirst[epsilonMarker] {
			allEps = false
			break
		}
	}

	if allEps {
		result[fallback] = true
	}

	out := make([]string, 0, len(result))
	for t := range result {
		out = append(out, t)
	}
	return out
}
