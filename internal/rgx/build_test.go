package rgx

import (
	"testing"

	"github.com/dekarrin/lexigen/internal/automaton"
	"github.com/stretchr/testify/assert"
)

// compile parses pattern and builds a DFA that accepts exactly the strings
// it matches, tagging acceptance with "MATCH".
func compile(t *testing.T, pattern string) automaton.DFA[string] {
	t.Helper()

	node, err := Parse(pattern)
	if err != nil {
		t.Fatalf("Parse(%q): %v", pattern, err)
	}

	nfa := automaton.NFA[string]{}
	start := "start"
	nfa.AddState(start, false)
	nfa.Start = start

	end := BuildFragment(&nfa, start, node)

	accept := nfa.NewState()
	nfa.AddState(accept, true)
	nfa.AddTransition(end, automaton.EpsilonLabel, accept)
	nfa.SetValue(accept, "MATCH")

	return automaton.SubsetConstruct(nfa, func(members []string) (string, bool) {
		for _, m := range members {
			if nfa.IsAccepting(m) {
				return nfa.GetValue(m), true
			}
		}
		return "", false
	})
}

// run feeds every byte of s through dfa starting at its Start state and
// reports whether the final state accepts.
func run(dfa automaton.DFA[string], s string) bool {
	cur := dfa.Start
	for i := 0; i < len(s); i++ {
		cur = dfa.Next(cur, automaton.ByteLabel(s[i]))
		if cur == "" {
			return false
		}
	}
	return dfa.IsAccepting(cur)
}

func TestBuildFragmentConcat(t *testing.T) {
	assert := assert.New(t)
	dfa := compile(t, `ab`)
	assert.True(run(dfa, "ab"))
	assert.False(run(dfa, "a"))
	assert.False(run(dfa, "abc"))
}

func TestBuildFragmentAlt(t *testing.T) {
	assert := assert.New(t)
	dfa := compile(t, `cat|dog`)
	assert.True(run(dfa, "cat"))
	assert.True(run(dfa, "dog"))
	assert.False(run(dfa, "cow"))
}

func TestBuildFragmentStar(t *testing.T) {
	assert := assert.New(t)
	dfa := compile(t, `ab*c`)
	assert.True(run(dfa, "ac"))
	assert.True(run(dfa, "abc"))
	assert.True(run(dfa, "abbbbc"))
	assert.False(run(dfa, "ab"))
}

func TestBuildFragmentPlus(t *testing.T) {
	assert := assert.New(t)
	dfa := compile(t, `ab+c`)
	assert.False(run(dfa, "ac"))
	assert.True(run(dfa, "abc"))
	assert.True(run(dfa, "abbbc"))
}

func TestBuildFragmentOptional(t *testing.T) {
	assert := assert.New(t)
	dfa := compile(t, `ab?c`)
	assert.True(run(dfa, "ac"))
	assert.True(run(dfa, "abc"))
	assert.False(run(dfa, "abbc"))
}

func TestBuildFragmentBoundedRepeat(t *testing.T) {
	assert := assert.New(t)
	dfa := compile(t, `a{2,3}`)
	assert.False(run(dfa, "a"))
	assert.True(run(dfa, "aa"))
	assert.True(run(dfa, "aaa"))
	assert.False(run(dfa, "aaaa"))
}

func TestBuildFragmentExactRepeat(t *testing.T) {
	assert := assert.New(t)
	dfa := compile(t, `a{3}`)
	assert.False(run(dfa, "aa"))
	assert.True(run(dfa, "aaa"))
	assert.False(run(dfa, "aaaa"))
}

func TestBuildFragmentUnboundedRepeat(t *testing.T) {
	assert := assert.New(t)
	dfa := compile(t, `a{2,}`)
	assert.False(run(dfa, "a"))
	assert.True(run(dfa, "aa"))
	assert.True(run(dfa, "aaaaaa"))
}

func TestBuildFragmentCharClass(t *testing.T) {
	assert := assert.New(t)
	dfa := compile(t, `[a-c]+`)
	assert.True(run(dfa, "abc"))
	assert.True(run(dfa, "a"))
	assert.False(run(dfa, "d"))
	assert.False(run(dfa, ""))
}

func TestBuildFragmentNegatedClassExcludesNullByte(t *testing.T) {
	assert := assert.New(t)
	dfa := compile(t, `[^a]`)
	assert.True(run(dfa, "b"))
	assert.False(run(dfa, "a"))
	assert.False(run(dfa, "\x00"))
}

func TestBuildFragmentAnyByteExcludesNullByte(t *testing.T) {
	assert := assert.New(t)
	dfa := compile(t, `.`)
	assert.True(run(dfa, "x"))
	assert.False(run(dfa, "\x00"))
}

func TestBuildFragmentAfterNewlineRequiresPrecedingNewline(t *testing.T) {
	assert := assert.New(t)
	dfa := compile(t, `^abc`)
	assert.True(run(dfa, "\nabc"))
	assert.False(run(dfa, "abc"))
}
