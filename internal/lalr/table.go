package lalr

import (
	"fmt"
	"sort"

	"github.com/dekarrin/lexigen/internal/grammar"
	"github.com/dekarrin/lexigen/internal/icerrors"
	"github.com/dekarrin/rosed"
)

// Table is the finished action/goto table for a grammar: per (state,
// terminal) one of Shift/Reduce/Accept, and a separate per (state,
// nonterminal) goto table.
type Table struct {
	Grammar   *grammar.Grammar
	Auto      *Automaton
	action    map[int]map[string]Action
	gotoTable map[int]map[string]int
	Conflicts []Conflict
}

// Initial returns the id of the start state.
func (t *Table) Initial() int { return 0 }

// Action returns the action for (state, terminal), defaulting to an Error
// action if no entry exists.
func (t *Table) Action(state int, terminal string) Action {
	row := t.action[state]
	if row == nil {
		return Action{Type: Error}
	}
	act, ok := row[terminal]
	if !ok {
		return Action{Type: Error}
	}
	return act
}

// Goto returns the successor state for (state, nonterminal), or an error if
// no transition is defined.
func (t *Table) Goto(state int, nonterminal string) (int, error) {
	row := t.gotoTable[state]
	if row == nil {
		return 0, fmt.Errorf("GOTO[%d, %q] is an error entry", state, nonterminal)
	}
	s, ok := row[nonterminal]
	if !ok {
		return 0, fmt.Errorf("GOTO[%d, %q] is an error entry", state, nonterminal)
	}
	return s, nil
}

func findProduction(g *grammar.Grammar, nt string, symbols []string) (grammar.Production, bool) {
	r, ok := g.Rule(nt)
	if !ok {
		return grammar.Production{}, false
	}
	for _, p := range r.Productions {
		if len(symbols) == 0 && len(p.Symbols) == 1 && p.Symbols[0] == "" {
			return p, true
		}
		if len(p.Symbols) != len(symbols) {
			continue
		}
		match := true
		for i := range symbols {
			if p.Symbols[i] != symbols[i] {
				match = false
				break
			}
		}
		if match {
			return p, true
		}
	}
	return grammar.Production{}, false
}

// BuildTable constructs the LALR(1) action/goto table for g: the augmented
// grammar's LR(0) kernels, lookahead propagation to a fixed point, then
// per-state item closures drive the table per spec.md §4.8. A non-empty
// Conflicts on the returned table (alongside a non-nil error) means the
// grammar is not LALR(1) as given.
func BuildTable(g *grammar.Grammar) (*Table, error) {
	auto := BuildAutomaton(g)
	ComputeLookaheads(auto)

	first := computeFirstSets(g)
	firstFn := func(symbols []string, lookahead string) []string {
		return firstOfSequence(first, symbols, lookahead)
	}

	t := &Table{
		Grammar:   g,
		Auto:      auto,
		action:    map[int]map[string]Action{},
		gotoTable: map[int]map[string]int{},
	}

	augStart := auto.StartItem()

	for _, state := range auto.States {
		var seeds []grammar.LR1Item
		for _, key := range state.Kernel.Elements() {
			item := state.Kernel.Get(key)
			for _, la := range state.LookaheadsFor(item).Elements() {
				seeds = append(seeds, grammar.LR1Item{LR0Item: item, Lookahead: la})
			}
		}
		closure := g.Closure1(seeds, firstFn)

		for _, key := range closure.Elements() {
			item := closure.Get(key)

			if item.AtEnd() {
				if item.NonTerminal == augStart.NonTerminal && len(item.Left) == 1 && item.Left[0] == g.StartSymbol() {
					t.insertAction(state.ID, eos, Action{Type: Accept})
					continue
				}

				prod, ok := findProduction(g, item.NonTerminal, item.Left)
				if !ok {
					// epsilon production or a production whose symbols were
					// renamed; fall back to a bare production shell so the
					// table is still buildable.
					prod = grammar.Production{Symbols: item.Left}
				}
				t.insertAction(state.ID, item.Lookahead, Action{
					Type:        Reduce,
					NonTerminal: item.NonTerminal,
					Production:  prod,
				})
				continue
			}

			x := item.Right[0]
			successor, ok := auto.Goto(state, x)
			if !ok {
				continue
			}

			if g.IsTerminal(x) {
				t.insertAction(state.ID, x, Action{Type: Shift, State: successor})
			} else {
				if t.gotoTable[state.ID] == nil {
					t.gotoTable[state.ID] = map[string]int{}
				}
				t.gotoTable[state.ID][x] = successor
			}
		}
	}

	if len(t.Conflicts) > 0 {
		var diags icerrors.Diagnostics
		for _, c := range t.Conflicts {
			diags = diags.Add(icerrors.New(icerrors.Conflict, "%s", c.Error()))
		}
		return t, diags
	}

	return t, nil
}

// insertAction records an action, resolving shift/reduce conflicts by
// precedence/associativity per spec.md §4.8 and recording everything else
// (reduce/reduce, equal-priority shift/reduce with none associativity) as a
// Conflict.
func (t *Table) insertAction(state int, terminal string, newAct Action) {
	if t.action[state] == nil {
		t.action[state] = map[string]Action{}
	}
	existing, ok := t.action[state][terminal]
	if !ok {
		t.action[state][terminal] = newAct
		return
	}
	if existing.Equal(newAct) {
		return
	}

	resolved, conflict := t.resolve(state, terminal, existing, newAct)
	if conflict != nil {
		t.Conflicts = append(t.Conflicts, *conflict)
	}
	t.action[state][terminal] = resolved
}

func (t *Table) resolve(state int, terminal string, a, b Action) (Action, *Conflict) {
	shiftReduce := func(shift, reduce Action) (Action, *Conflict) {
		prec, ok := t.Grammar.EffectivePrecedence(reduce.Production)
		termPrec, termOk := t.Grammar.Precedence(terminal)

		if !ok || !termOk {
			return shift, &Conflict{State: state, Terminal: terminal, First: a, Second: b}
		}
		switch {
		case termPrec.Priority > prec.Priority:
			return shift, nil
		case prec.Priority > termPrec.Priority:
			return reduce, nil
		default:
			switch termPrec.Assoc {
			case grammar.AssocLeft:
				return reduce, nil
			case grammar.AssocRight:
				return shift, nil
			default:
				return shift, &Conflict{State: state, Terminal: terminal, First: a, Second: b}
			}
		}
	}

	switch {
	case a.Type == Shift && b.Type == Reduce:
		return shiftReduce(a, b)
	case a.Type == Reduce && b.Type == Shift:
		return shiftReduce(b, a)
	default:
		return a, &Conflict{State: state, Terminal: terminal, First: a, Second: b}
	}
}

// String renders the table for diagnostics, terminals then nonterminals,
// one row per state.
func (t *Table) String() string {
	terms := append(append([]string{}, t.Grammar.Terminals()...), eos)
	nts := t.Grammar.NonTerminals()

	headers := []string{"S", "|"}
	for _, term := range terms {
		headers = append(headers, "A:"+term)
	}
	headers = append(headers, "|")
	for _, nt := range nts {
		headers = append(headers, "G:"+nt)
	}

	data := [][]string{headers}

	ids := make([]int, len(t.Auto.States))
	for i, s := range t.Auto.States {
		ids[i] = s.ID
	}
	sort.Ints(ids)

	for _, id := range ids {
		row := []string{fmt.Sprintf("%d", id), "|"}
		for _, term := range terms {
			act := t.Action(id, term)
			cell := ""
			switch act.Type {
			case Accept:
				cell = "acc"
			case Reduce:
				cell = fmt.Sprintf("r%s->%s", act.NonTerminal, act.Production.String())
			case Shift:
				cell = fmt.Sprintf("s%d", act.State)
			}
			row = append(row, cell)
		}
		row = append(row, "|")
		for _, nt := range nts {
			cell := ""
			if s, err := t.Goto(id, nt); err == nil {
				cell = fmt.Sprintf("%d", s)
			}
			row = append(row, cell)
		}
		data = append(data, row)
	}

	return rosed.
		Edit("").
		InsertTableOpts(0, data, 10, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}
