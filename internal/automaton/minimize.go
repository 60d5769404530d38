package automaton

// Minimize folds equivalent DFA states via partition refinement: states
// are initially considered equal unless one accepts and the other doesn't,
// or sameTag reports their accept tags differ; they are then iteratively
// marked inequal whenever a same-label transition leads to an
// already-inequal pair, until a pass finds no new inequal pair. Surviving
// states keep the lowest-index representative of their equivalence class;
// folded state names are returned in discarded so a caller (typically the
// emitter) can skip them.
//
// Minimize requires its input already be deterministic, which
// SubsetConstruct always produces; it does not itself merge nondeterministic
// transitions.
func Minimize[E any](dfa DFA[E], sameTag func(a, b E) bool) (result DFA[E], discarded []string) {
	states := dfa.States()
	alphabet := map[string]bool{}
	for _, s := range states {
		for lbl := range dfa.states[s].transitions {
			alphabet[lbl] = true
		}
	}
	labels := make([]string, 0, len(alphabet))
	for lbl := range alphabet {
		labels = append(labels, lbl)
	}

	inequal := map[[2]string]bool{}
	pairKey := func(a, b string) [2]string {
		if a > b {
			a, b = b, a
		}
		return [2]string{a, b}
	}

	for i, a := range states {
		for _, b := range states[i+1:] {
			sa, sb := dfa.states[a], dfa.states[b]
			if sa.accepting != sb.accepting {
				inequal[pairKey(a, b)] = true
			} else if sa.accepting && sb.accepting && !sameTag(sa.value, sb.value) {
				inequal[pairKey(a, b)] = true
			}
		}
	}

	for {
		changed := false
		for i, a := range states {
			for _, b := range states[i+1:] {
				key := pairKey(a, b)
				if inequal[key] {
					continue
				}
				for _, lbl := range labels {
					na, nb := dfa.Next(a, lbl), dfa.Next(b, lbl)
					if na == "" && nb == "" {
						continue
					}
					if na == "" || nb == "" {
						inequal[key] = true
						changed = true
						break
					}
					if na == nb {
						continue
					}
					if inequal[pairKey(na, nb)] {
						inequal[key] = true
						changed = true
						break
					}
				}
			}
		}
		if !changed {
			break
		}
	}

	// union-find over "not inequal" pairs to build equivalence classes,
	// keeping the lowest-index (by the name-sorted order of States()) as
	// representative.
	rep := map[string]string{}
	for _, s := range states {
		rep[s] = s
	}
	indexOf := map[string]int{}
	for i, s := range states {
		indexOf[s] = i
	}

	find := func(s string) string {
		for rep[s] != s {
			s = rep[s]
		}
		return s
	}

	for i, a := range states {
		for _, b := range states[i+1:] {
			if inequal[pairKey(a, b)] {
				continue
			}
			ra, rb := find(a), find(b)
			if ra == rb {
				continue
			}
			if indexOf[ra] <= indexOf[rb] {
				rep[rb] = ra
			} else {
				rep[ra] = rb
			}
		}
	}

	result = DFA[E]{}
	for _, s := range states {
		r := find(s)
		if r == s {
			result.AddState(s, dfa.states[s].accepting)
			result.SetValue(s, dfa.states[s].value)
		}
	}
	result.Start = find(dfa.Start)

	for _, s := range states {
		r := find(s)
		for lbl, t := range dfa.states[s].transitions {
			result.AddTransition(r, lbl, find(t.Next))
		}
	}

	for _, s := range states {
		if find(s) != s {
			discarded = append(discarded, s)
		}
	}

	return result, discarded
}
