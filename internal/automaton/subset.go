package automaton

import (
	"sort"
	"strings"
)

// memberKey returns a canonical string for a set of NFA state names, used
// as the DFA state name for the subset it represents so that the same
// subset is always recognized as the same DFA state.
func memberKey(members map[string]bool) string {
	names := make([]string, 0, len(members))
	for n := range members {
		names = append(names, n)
	}
	sort.Strings(names)
	return strings.Join(names, ",")
}

// SubsetConstruct converts an NFA into an equivalent DFA via ε-closure and
// move, the standard subset-construction algorithm (dragon book algorithm
// 3.20). combine is called once per discovered DFA state with the sorted
// names of the NFA states it merges, and must return the value to attach to
// the DFA state and whether it should be marked accepting; this is where a
// caller picks a single accept tag by priority when several NFA accept
// states collapse into one DFA state.
func SubsetConstruct[E any](nfa NFA[E], combine func(members []string) (value E, accepting bool)) DFA[E] {
	alphabet := nfa.InputSymbols()

	start := nfa.EpsilonClosure(nfa.Start)
	startName := memberKey(start)

	dfa := DFA[E]{}
	subsets := map[string]map[string]bool{startName: start}
	worklist := []string{startName}
	discovered := map[string]bool{startName: true}

	for len(worklist) > 0 {
		name := worklist[0]
		worklist = worklist[1:]
		members := subsets[name]

		memberNames := make([]string, 0, len(members))
		for m := range members {
			memberNames = append(memberNames, m)
		}
		sort.Strings(memberNames)

		value, accepting := combine(memberNames)
		dfa.AddState(name, accepting)
		dfa.SetValue(name, value)
		if dfa.Start == "" {
			dfa.Start = startName
		}

		for _, label := range alphabet {
			if label == EpsilonLabel {
				continue
			}
			moved := nfa.Move(members, label)
			if len(moved) == 0 {
				continue
			}
			closed := nfa.EpsilonClosureOfSet(moved)
			closedName := memberKey(closed)

			if !discovered[closedName] {
				discovered[closedName] = true
				subsets[closedName] = closed
				worklist = append(worklist, closedName)
			}

			if _, ok := dfa.states[name]; ok {
				st := dfa.states[name]
				st.transitions[label] = FATransition{Label: label, Next: closedName}
				dfa.states[name] = st
			}
		}
	}

	// states discovered via transitions but not yet materialized (their
	// turn on the worklist comes after the edge referencing them was added)
	// are handled naturally since they remain in subsets/worklist until
	// processed; nothing further to do once the worklist drains.

	return dfa
}
