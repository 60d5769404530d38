package lalr

import (
	"github.com/dekarrin/lexigen/internal/grammar"
	"github.com/dekarrin/lexigen/internal/util"
)

// eos is the reserved end-of-stream terminal used as the augmented start
// item's initial lookahead (spec.md's "$").
const eos = "$"

// State is one state of the LR(0)/LALR(1) automaton: a stable integer id,
// its kernel items (dot=0 items are kernel only for the augmented start
// item), and the lookahead sets attached to each kernel item once §4.7's
// propagation has run.
type State struct {
	ID         int
	Kernel     util.SVSet[grammar.LR0Item]
	Lookaheads map[string]util.StringSet // keyed by LR0Item.String()
}

// Automaton is the full LR(0) kernel/goto construction: states in discovery
// order, plus the goto function between them.
type Automaton struct {
	Augmented    *grammar.Grammar
	States       []*State
	stateByKey   map[string]*State
	gotoFn       map[string]map[string]int // kernel key -> symbol -> state id
	startSym     string
	augStartItem grammar.LR0Item
}

// closure0 computes the ε-closure of a set of LR(0) items: dragon book
// algorithm 4.31/spec.md §4.6's closure_0. For every item A -> α.Bβ with B a
// nonterminal, every production B -> .γ is added, once.
func closure0(g *grammar.Grammar, kernel util.SVSet[grammar.LR0Item]) util.SVSet[grammar.LR0Item] {
	closure := util.NewSVSet[grammar.LR0Item](kernel)
	var worklist []grammar.LR0Item
	for _, k := range kernel.Elements() {
		worklist = append(worklist, kernel.Get(k))
	}

	for len(worklist) > 0 {
		it := worklist[0]
		worklist = worklist[1:]

		if len(it.Right) == 0 {
			continue
		}
		b := it.Right[0]
		r, ok := g.Rule(b)
		if !ok {
			continue
		}
		for _, p := range r.Productions {
			var right []string
			if !(len(p.Symbols) == 1 && p.Symbols[0] == "") {
				right = append([]string{}, p.Symbols...)
			}
			newItem := grammar.LR0Item{NonTerminal: b, Right: right}
			key := newItem.String()
			if !closure.Has(key) {
				closure.Set(key, newItem)
				worklist = append(worklist, newItem)
			}
		}
	}

	return closure
}

// goto0 advances every item in closure whose next symbol is x, yielding the
// kernel of the successor state (spec.md §4.6's goto_0).
func goto0(closure util.SVSet[grammar.LR0Item], x string) util.SVSet[grammar.LR0Item] {
	out := util.NewSVSet[grammar.LR0Item]()
	for _, key := range closure.Elements() {
		it := closure.Get(key)
		if len(it.Right) == 0 || it.Right[0] != x {
			continue
		}
		adv := it.Advanced()
		out.Set(adv.String(), adv)
	}
	return out
}

// BuildAutomaton constructs the LR(0) kernel/goto automaton for g, starting
// from the augmented production S' -> S. g is not modified.
func BuildAutomaton(g *grammar.Grammar) *Automaton {
	augStart := g.Augmented()
	augStartItem := grammar.LR0Item{NonTerminal: augStart, Right: []string{g.StartSymbol()}}

	startKernel := util.NewSVSet[grammar.LR0Item]()
	startKernel.Set(augStartItem.String(), augStartItem)

	a := &Automaton{
		Augmented:    g,
		stateByKey:   map[string]*State{},
		gotoFn:       map[string]map[string]int{},
		startSym:     g.StartSymbol(),
		augStartItem: augStartItem,
	}

	startState := &State{ID: 0, Kernel: startKernel, Lookaheads: map[string]util.StringSet{}}
	a.States = append(a.States, startState)
	a.stateByKey[startKernel.StringOrdered()] = startState

	worklist := []*State{startState}

	allSymbols := append(append([]string{}, g.Terminals()...), g.NonTerminals()...)

	for len(worklist) > 0 {
		cur := worklist[0]
		worklist = worklist[1:]

		closure := closure0(g, cur.Kernel)

		for _, x := range allSymbols {
			nextKernel := goto0(closure, x)
			if nextKernel.Len() == 0 {
				continue
			}
			key := nextKernel.StringOrdered()

			next, exists := a.stateByKey[key]
			if !exists {
				next = &State{ID: len(a.States), Kernel: nextKernel, Lookaheads: map[string]util.StringSet{}}
				a.States = append(a.States, next)
				a.stateByKey[key] = next
				worklist = append(worklist, next)
			}

			if a.gotoFn[cur.Kernel.StringOrdered()] == nil {
				a.gotoFn[cur.Kernel.StringOrdered()] = map[string]int{}
			}
			a.gotoFn[cur.Kernel.StringOrdered()][x] = next.ID
		}
	}

	return a
}

// Closure returns the full closure_0 item set (kernel plus derived items)
// for a state, used by table assembly to enumerate every applicable item.
func (a *Automaton) Closure(s *State) util.SVSet[grammar.LR0Item] {
	return closure0(a.Augmented, s.Kernel)
}

// Goto returns the state id reached from s on symbol x, and whether a
// transition exists.
func (a *Automaton) Goto(s *State, x string) (int, bool) {
	m := a.gotoFn[s.Kernel.StringOrdered()]
	if m == nil {
		return 0, false
	}
	id, ok := m[x]
	return id, ok
}

// StartItem returns the augmented start item S' -> .S.
func (a *Automaton) StartItem() grammar.LR0Item {
	return a.augStartItem
}
