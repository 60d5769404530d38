package lalr

import (
	"github.com/dekarrin/lexigen/internal/grammar"
	"github.com/dekarrin/lexigen/internal/util"
)

// itemRef names a single kernel item within a specific state, the unit that
// lookaheads are attached to and propagated between.
type itemRef struct {
	stateID int
	item    string // LR0Item.String()
}

// ComputeLookaheads runs §4.7's spontaneous/propagated analysis to a fixed
// point, filling in a.States[*].Lookaheads. It must be called once, after
// BuildAutomaton and before table assembly.
func ComputeLookaheads(a *Automaton) {
	g := a.Augmented
	first := computeFirstSets(g)
	dummy := g.GenerateUniqueTerminal("#")

	spontaneous := map[itemRef]util.StringSet{}
	propagated := map[itemRef][]itemRef{}

	// the augmented start item gets {eos} spontaneously, in state 0.
	startRef := itemRef{stateID: 0, item: a.StartItem().String()}
	spontaneous[startRef] = util.NewStringSet(map[string]bool{eos: true})

	firstFn := func(symbols []string, lookahead string) []string {
		return firstOfSequence(first, symbols, lookahead)
	}

	for _, state := range a.States {
		for _, kernelKey := range state.Kernel.Elements() {
			kernelItem := state.Kernel.Get(kernelKey)

			seed := []grammar.LR1Item{{LR0Item: kernelItem, Lookahead: dummy}}
			closure := g.Closure1(seed, firstFn)

			for _, jKey := range closure.Elements() {
				j := closure.Get(jKey)
				if len(j.Right) == 0 {
					continue
				}
				x := j.Right[0]

				targetID, ok := a.Goto(state, x)
				if !ok {
					continue
				}
				target := a.States[targetID]

				shifted := j.LR0Item.Advanced()
				if !target.Kernel.Has(shifted.String()) {
					continue
				}

				to := itemRef{stateID: targetID, item: shifted.String()}

				if j.Lookahead != dummy {
					set, ok := spontaneous[to]
					if !ok {
						set = util.NewStringSet()
					}
					set.Add(j.Lookahead)
					spontaneous[to] = set
				} else {
					from := itemRef{stateID: state.ID, item: kernelItem.String()}
					propagated[from] = append(propagated[from], to)
				}
			}
		}
	}

	// initialize lookahead table from spontaneous generation.
	for ref, set := range spontaneous {
		state := a.States[ref.stateID]
		existing, ok := state.Lookaheads[ref.item]
		if !ok {
			existing = util.NewStringSet()
		}
		existing.AddAll(set)
		state.Lookaheads[ref.item] = existing
	}

	// propagate to a fixed point.
	changed := true
	for changed {
		changed = false
		for _, state := range a.States {
			for _, kernelKey := range state.Kernel.Elements() {
				from := itemRef{stateID: state.ID, item: kernelKey}
				current := state.Lookaheads[kernelKey]
				if current.Empty() {
					continue
				}

				for _, to := range propagated[from] {
					target := a.States[to.stateID]
					existing, ok := target.Lookaheads[to.item]
					if !ok {
						existing = util.NewStringSet()
					}
					for _, la := range current.Elements() {
						if !existing.Has(la) {
							existing.Add(la)
							changed = true
						}
					}
					target.Lookaheads[to.item] = existing
				}
			}
		}
	}
}

// LookaheadsFor returns the lookahead set attached to a kernel item in a
// state, or an empty set if none were ever attached (a bug in the
// propagation, since every kernel item must gain at least one lookahead for
// a grammar with no unreachable productions).
func (s *State) LookaheadsFor(item grammar.LR0Item) util.StringSet {
	set, ok := s.Lookaheads[item.String()]
	if !ok {
		return util.NewStringSet()
	}
	return set
}
