package rgx

import "github.com/dekarrin/lexigen/internal/automaton"

// newState allocates a fresh, non-accepting state in nfa.
func newState[E any](nfa *automaton.NFA[E]) string {
	s := nfa.NewState()
	nfa.AddState(s, false)
	return s
}

// BuildFragment translates node into NFA states and transitions rooted at
// the already-existing state start, per spec.md §4.3's translation table. It
// returns the fragment's single accept-reachable end state; the caller
// decides whether/how to mark that state accepting (e.g. attaching a token
// tag), since a single NFA pool is shared across every pattern a lexer
// recognizes.
func BuildFragment[E any](nfa *automaton.NFA[E], start string, node *Node) string {
	switch node.Kind {
	case Char:
		t := newState(nfa)
		nfa.AddTransition(start, automaton.ByteLabel(node.Byte), t)
		return t

	case AnyByte:
		t := newState(nfa)
		for b := 1; b <= 255; b++ {
			nfa.AddTransition(start, automaton.ByteLabel(byte(b)), t)
		}
		return t

	case CharClass:
		t := newState(nfa)
		for _, b := range classBytes(node) {
			nfa.AddTransition(start, automaton.ByteLabel(b), t)
		}
		return t

	case Concat:
		mL := BuildFragment(nfa, start, node.Left)
		return BuildFragment(nfa, mL, node.Right)

	case Alt:
		mL := BuildFragment(nfa, start, node.Left)
		mR := BuildFragment(nfa, start, node.Right)
		t := newState(nfa)
		nfa.AddTransition(mL, automaton.EpsilonLabel, t)
		nfa.AddTransition(mR, automaton.EpsilonLabel, t)
		return t

	case Star:
		mX := BuildFragment(nfa, start, node.Inner)
		nfa.AddTransition(mX, automaton.EpsilonLabel, start)
		nfa.AddTransition(start, automaton.EpsilonLabel, mX)
		return mX

	case Plus:
		// one mandatory pass (start..q), then a second pass (q..r) looped
		// back on itself so any further repetitions are optional.
		q := BuildFragment(nfa, start, node.Inner)
		r := BuildFragment(nfa, q, node.Inner)
		nfa.AddTransition(q, automaton.EpsilonLabel, r)
		nfa.AddTransition(r, automaton.EpsilonLabel, q)
		return r

	case Optional:
		t := newState(nfa)
		mX := BuildFragment(nfa, start, node.Inner)
		nfa.AddTransition(mX, automaton.EpsilonLabel, t)
		nfa.AddTransition(start, automaton.EpsilonLabel, t)
		return t

	case Repeat:
		return buildRepeat(nfa, start, node)

	case EndOfStream:
		t := newState(nfa)
		nfa.AddTransition(start, automaton.EOSLabel(), t)
		return t

	case AfterNewline:
		t := newState(nfa)
		nfa.AddTransition(start, automaton.ByteLabel('\n'), t)
		return BuildFragment(nfa, t, node.Inner)

	case Group:
		return BuildFragment(nfa, start, node.Inner)

	case StringLiteral:
		cur := start
		for _, b := range node.Literal {
			cur = BuildFragment(nfa, cur, &Node{Kind: Char, Byte: b})
		}
		return cur

	default:
		panic("rgx: unhandled node kind in BuildFragment")
	}
}

func buildRepeat[E any](nfa *automaton.NFA[E], start string, node *Node) string {
	if node.RepeatMin == 0 && node.RepeatUnbounded {
		return BuildFragment(nfa, start, &Node{Kind: Star, Inner: node.Inner})
	}

	cur := start
	for i := 0; i < node.RepeatMin; i++ {
		cur = BuildFragment(nfa, cur, node.Inner)
	}

	if node.RepeatUnbounded {
		// {n,}: n mandatory copies already built above (n >= 1 here); loop
		// one more copy back on itself for the unbounded suffix.
		r := BuildFragment(nfa, cur, node.Inner)
		nfa.AddTransition(r, automaton.EpsilonLabel, cur)
		nfa.AddTransition(cur, automaton.EpsilonLabel, r)
		return r
	}

	extra := node.RepeatMax - node.RepeatMin
	if extra == 0 {
		return cur
	}

	common := newState(nfa)
	nfa.AddTransition(cur, automaton.EpsilonLabel, common)
	for i := 0; i < extra; i++ {
		cur = BuildFragment(nfa, cur, node.Inner)
		nfa.AddTransition(cur, automaton.EpsilonLabel, common)
	}
	return common
}

// classBytes expands a CharClass node into the sorted set of bytes it
// matches. The null byte is never included, even via an explicit range or
// through negation, since it is reserved and never appears in lexer input.
func classBytes(node *Node) []byte {
	var included [256]bool
	for _, item := range node.ClassItems {
		for b := int(item.Lo); b <= int(item.Hi); b++ {
			included[b] = true
		}
	}
	if node.Negated {
		for b := range included {
			included[b] = !included[b]
		}
	}
	included[0] = false

	var out []byte
	for b := 1; b < 256; b++ {
		if included[b] {
			out = append(out, byte(b))
		}
	}
	return out
}
