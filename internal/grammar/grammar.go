// Package grammar holds the context-free grammar data model consumed by the
// LALR(1) table builder: productions keyed by left-hand nonterminal, a
// precedence table over terminals, and the LR(0)/LR(1) item types used by
// the constructor.
package grammar

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dekarrin/lexigen/internal/symtab"
	"github.com/dekarrin/lexigen/internal/util"
)

// Assoc is a declared associativity for a precedence level.
type Assoc int

const (
	AssocNone Assoc = iota
	AssocLeft
	AssocRight
)

func (a Assoc) String() string {
	switch a {
	case AssocLeft:
		return "left"
	case AssocRight:
		return "right"
	default:
		return "none"
	}
}

// PrecEntry is one terminal's entry in the precedence table: priority rises
// from outer (declared first) to inner (declared last) directive block.
type PrecEntry struct {
	Priority uint
	Assoc    Assoc
}

// Production is a single right-hand side of a rule: the ordered sequence of
// symbols to match, the semantic action invoked on reduce, an optional tag
// terminal whose precedence governs conflict resolution for this RHS, and a
// mapping from action-parameter index to the RHS position supplying it.
type Production struct {
	Symbols      []string
	Action       string
	Tag          string
	ArgToElement map[int]int
}

// Copy returns a deep copy of p.
func (p Production) Copy() Production {
	cp := Production{
		Symbols: make([]string, len(p.Symbols)),
		Action:  p.Action,
		Tag:     p.Tag,
	}
	copy(cp.Symbols, p.Symbols)
	if p.ArgToElement != nil {
		cp.ArgToElement = make(map[int]int, len(p.ArgToElement))
		for k, v := range p.ArgToElement {
			cp.ArgToElement[k] = v
		}
	}
	return cp
}

// Equal compares two productions by symbols, action, and tag (not by
// ArgToElement, which does not affect parsing behavior).
func (p Production) Equal(o any) bool {
	other, ok := o.(Production)
	if !ok {
		return false
	}
	if p.Action != other.Action || p.Tag != other.Tag {
		return false
	}
	if len(p.Symbols) != len(other.Symbols) {
		return false
	}
	for i := range p.Symbols {
		if p.Symbols[i] != other.Symbols[i] {
			return false
		}
	}
	return true
}

func (p Production) String() string {
	if len(p.Symbols) == 0 {
		return "ε"
	}
	return strings.Join(p.Symbols, " ")
}

// Rule is every production sharing one left-hand nonterminal.
type Rule struct {
	NonTerminal string
	Productions []Production
}

func (r Rule) String() string {
	parts := make([]string, len(r.Productions))
	for i, p := range r.Productions {
		parts[i] = p.String()
	}
	return fmt.Sprintf("%s -> %s", r.NonTerminal, strings.Join(parts, " | "))
}

// Grammar is a context-free grammar: an ordered set of rules keyed by the
// dense id symtab assigns their LHS nonterminal, a declared terminal set
// (also id-keyed), a start symbol, and a precedence table keyed by terminal
// id — the data model's "dense ids allow table storage as vectors"
// invariant, with name-based methods translating through symbols for every
// caller outside this package.
type Grammar struct {
	symbols *symtab.Table

	rules         map[int]Rule
	ruleOrder     []int
	terminals     map[int]bool
	terminalOrder []int
	start         string
	precedence    map[int]PrecEntry

	uniqueTermCounter int
}

// NewGrammar returns an empty grammar ready for AddTerm/AddRule calls.
func NewGrammar() *Grammar {
	return &Grammar{
		symbols:    symtab.New(),
		rules:      map[int]Rule{},
		terminals:  map[int]bool{},
		precedence: map[int]PrecEntry{},
	}
}

// Symbols returns the symbol table backing g's terminal and nonterminal ids.
func (g *Grammar) Symbols() *symtab.Table {
	return g.symbols
}

// AddTerm declares name as a terminal, interning it in the symbol table if
// this is its first appearance. No-op if already declared.
func (g *Grammar) AddTerm(name string) {
	id := g.symbols.InternTerminal(name).ID
	if g.terminals[id] {
		return
	}
	g.terminals[id] = true
	g.terminalOrder = append(g.terminalOrder, id)
}

// Terminals returns every declared terminal name, in declaration order.
func (g *Grammar) Terminals() []string {
	out := make([]string, len(g.terminalOrder))
	for i, id := range g.terminalOrder {
		out[i], _ = g.symbols.NameOf(id)
	}
	return out
}

// IsTerminal reports whether name was declared with AddTerm.
func (g *Grammar) IsTerminal(name string) bool {
	id, err := g.symbols.Lookup(name)
	if err != nil {
		return false
	}
	return g.terminals[id.ID]
}

// SetPrecedence records a priority/associativity entry for a terminal,
// overwriting any previous entry for the same terminal. term is interned as
// a terminal if this is its first appearance.
func (g *Grammar) SetPrecedence(term string, prio uint, assoc Assoc) {
	id := g.symbols.InternTerminal(term).ID
	g.precedence[id] = PrecEntry{Priority: prio, Assoc: assoc}
}

// Precedence returns the precedence entry for term and whether one exists.
func (g *Grammar) Precedence(term string) (PrecEntry, bool) {
	id, err := g.symbols.Lookup(term)
	if err != nil {
		return PrecEntry{}, false
	}
	p, ok := g.precedence[id.ID]
	return p, ok
}

// EffectivePrecedence returns the precedence that governs conflict
// resolution for p: its explicit Tag if set, else the highest-priority
// terminal appearing anywhere in its RHS. The second return is false if
// neither source yields a precedence entry.
func (g *Grammar) EffectivePrecedence(p Production) (PrecEntry, bool) {
	if p.Tag != "" {
		return g.Precedence(p.Tag)
	}

	var best PrecEntry
	found := false
	for _, sym := range p.Symbols {
		if !g.IsTerminal(sym) {
			continue
		}
		if entry, ok := g.Precedence(sym); ok {
			if !found || entry.Priority > best.Priority {
				best = entry
				found = true
			}
		}
	}
	return best, found
}

// AddRule adds a production to the rule for nt, creating the rule and
// interning nt as a nonterminal if this is its first appearance as an LHS.
func (g *Grammar) AddRule(nt string, p Production) {
	id := g.symbols.InternNonterminal(nt).ID
	r, ok := g.rules[id]
	if !ok {
		r = Rule{NonTerminal: nt}
		g.ruleOrder = append(g.ruleOrder, id)
	}
	r.Productions = append(r.Productions, p.Copy())
	g.rules[id] = r
}

// Rule returns the rule for nt and whether it exists.
func (g *Grammar) Rule(nt string) (Rule, bool) {
	id, err := g.symbols.Lookup(nt)
	if err != nil {
		return Rule{}, false
	}
	r, ok := g.rules[id.ID]
	return r, ok
}

// NonTerminals returns every LHS that has at least one rule, in declaration
// order.
func (g *Grammar) NonTerminals() []string {
	out := make([]string, len(g.ruleOrder))
	for i, id := range g.ruleOrder {
		out[i] = g.rules[id].NonTerminal
	}
	return out
}

// SetStart sets the grammar's start symbol.
func (g *Grammar) SetStart(nt string) {
	g.start = nt
}

// StartSymbol returns the grammar's start symbol.
func (g *Grammar) StartSymbol() string {
	return g.start
}

// Augmented returns the name of the augmented start symbol S', used as the
// LHS of the single augmenting production S' -> S in the LR(0) kernel
// construction.
func (g *Grammar) Augmented() string {
	return g.start + "'"
}

// GenerateUniqueTerminal returns a terminal name guaranteed not to already be
// declared in g, suitable for synthesizing an end-of-stream or dummy
// terminal during item-set construction.
func (g *Grammar) GenerateUniqueTerminal(base string) string {
	name := base
	for g.IsTerminal(name) {
		g.uniqueTermCounter++
		name = fmt.Sprintf("%s-%d", base, g.uniqueTermCounter)
	}
	return name
}

// Validate checks that every symbol appearing in every RHS is either a
// declared terminal or the LHS of some rule, and that ArgToElement indices
// in every production are contiguous starting at 0.
func (g *Grammar) Validate() error {
	for _, id := range g.ruleOrder {
		r := g.rules[id]
		for _, p := range r.Productions {
			for _, sym := range p.Symbols {
				if sym == "" {
					continue // epsilon
				}
				if !g.IsTerminal(sym) {
					if _, ok := g.Rule(sym); !ok {
						return fmt.Errorf("symbol %q used in production for %q is neither a declared terminal nor a nonterminal with rules", sym, r.NonTerminal)
					}
				}
			}

			if len(p.ArgToElement) > 0 {
				seen := make([]bool, len(p.ArgToElement))
				for argIdx := range p.ArgToElement {
					if argIdx < 0 || argIdx >= len(seen) {
						return fmt.Errorf("production %q: action parameter index %d is not contiguous with {0..%d}", p, argIdx, len(p.ArgToElement)-1)
					}
					seen[argIdx] = true
				}
				for i, ok := range seen {
					if !ok {
						return fmt.Errorf("production %q: action parameter index %d missing from contiguous range", p, i)
					}
				}
			}
		}
	}
	return nil
}

// LR0Items returns every LR0Item derivable from g's rules: one per dot
// position (0 through len(RHS)) in every production, and a single empty
// item for an ε-production.
func (g *Grammar) LR0Items() []LR0Item {
	var items []LR0Item
	for _, id := range g.ruleOrder {
		r := g.rules[id]
		for _, p := range r.Productions {
			n := len(p.Symbols)
			if n == 1 && p.Symbols[0] == "" {
				items = append(items, LR0Item{NonTerminal: r.NonTerminal})
				continue
			}
			for dot := 0; dot <= n; dot++ {
				items = append(items, LR0Item{
					NonTerminal: r.NonTerminal,
					Left:        append([]string{}, p.Symbols[:dot]...),
					Right:       append([]string{}, p.Symbols[dot:]...),
				})
			}
		}
	}
	return items
}

// Closure1 computes the LR(1) closure of a seed set of (item, lookahead)
// pairs: dragon book algorithm 4.42's CLOSURE, generalized over lookaheads.
// first1 must return the FIRST1 set of a symbol string (the sequence
// following the nonterminal in an item, plus the item's own lookahead when
// that sequence can derive ε).
func (g *Grammar) Closure1(seed []LR1Item, first func(symbols []string, lookahead string) []string) util.VSet[string, LR1Item] {
	closure := util.NewSVSet[LR1Item]()
	var worklist []LR1Item

	for _, it := range seed {
		key := it.String()
		if !closure.Has(key) {
			closure.Set(key, it)
			worklist = append(worklist, it)
		}
	}

	for len(worklist) > 0 {
		it := worklist[0]
		worklist = worklist[1:]

		if len(it.Right) == 0 {
			continue
		}
		b := it.Right[0]
		bid, err := g.symbols.Lookup(b)
		if err != nil {
			continue // never interned, nothing to close over
		}
		r, ok := g.rules[bid.ID]
		if !ok {
			continue // terminal, nothing to close over
		}

		beta := it.Right[1:]
		lookaheads := first(beta, it.Lookahead)

		for _, p := range r.Productions {
			var right []string
			if len(p.Symbols) == 1 && p.Symbols[0] == "" {
				right = nil
			} else {
				right = append([]string{}, p.Symbols...)
			}
			for _, la := range lookaheads {
				newItem := LR1Item{
					LR0Item:   LR0Item{NonTerminal: b, Right: right},
					Lookahead: la,
				}
				key := newItem.String()
				if !closure.Has(key) {
					closure.Set(key, newItem)
					worklist = append(worklist, newItem)
				}
			}
		}
	}

	return closure
}

// Goto1 advances every item in from whose next symbol is x by one position,
// i.e. the unclosed kernel of the successor state.
func Goto1(from util.VSet[string, LR1Item], x string) []LR1Item {
	var out []LR1Item
	for _, key := range from.Elements() {
		it := from.Get(key)
		if len(it.Right) == 0 || it.Right[0] != x {
			continue
		}
		adv := it.Copy()
		adv.Left = append(append([]string{}, adv.Left...), x)
		adv.Right = append([]string{}, adv.Right[1:]...)
		out = append(out, adv)
	}
	return out
}

// String renders the grammar in BNF-ish form, rules sorted by nonterminal
// name.
func (g *Grammar) String() string {
	var sb strings.Builder
	byName := make(map[string]Rule, len(g.ruleOrder))
	nts := make([]string, len(g.ruleOrder))
	for i, id := range g.ruleOrder {
		r := g.rules[id]
		nts[i] = r.NonTerminal
		byName[r.NonTerminal] = r
	}
	sort.Strings(nts)
	for _, nt := range nts {
		sb.WriteString(byName[nt].String())
		sb.WriteString("\n")
	}
	return sb.String()
}
