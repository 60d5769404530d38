package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// buildRedundant builds a DFA with two equivalent accepting states (s1 and
// s2, both tagged TOK, each with a single 'x' edge to the same dead state)
// that minimization should fold into one.
func buildRedundant() DFA[string] {
	dfa := DFA[string]{}
	dfa.AddState("s0", false)
	dfa.AddState("s1", true)
	dfa.AddState("s2", true)
	dfa.AddState("dead", false)
	dfa.Start = "s0"
	dfa.SetValue("s1", "TOK")
	dfa.SetValue("s2", "TOK")

	dfa.AddTransition("s0", ByteLabel('a'), "s1")
	dfa.AddTransition("s0", ByteLabel('b'), "s2")
	dfa.AddTransition("s1", ByteLabel('x'), "dead")
	dfa.AddTransition("s2", ByteLabel('x'), "dead")

	return dfa
}

func sameString(a, b string) bool { return a == b }

func TestMinimizeFoldsEquivalentStates(t *testing.T) {
	assert := assert.New(t)

	dfa := buildRedundant()
	min, discarded := Minimize(dfa, sameString)

	assert.Len(discarded, 1, "s1 and s2 should fold into a single state")
	assert.Len(min.States(), 3)

	viaA := min.Next(min.Start, ByteLabel('a'))
	viaB := min.Next(min.Start, ByteLabel('b'))
	assert.Equal(viaA, viaB)
	assert.True(min.IsAccepting(viaA))
	assert.Equal("TOK", min.GetValue(viaA))
}

func TestMinimizeKeepsDistinctTags(t *testing.T) {
	assert := assert.New(t)

	dfa := buildRedundant()
	dfa.SetValue("s2", "OTHER_TOK")

	min, discarded := Minimize(dfa, sameString)

	assert.Empty(discarded, "differing accept tags must not be folded")
	assert.Len(min.States(), 4)
}

func TestMinimizeNoOpOnAlreadyMinimal(t *testing.T) {
	assert := assert.New(t)

	dfa := DFA[string]{}
	dfa.AddState("0", false)
	dfa.AddState("1", true)
	dfa.Start = "0"
	dfa.SetValue("1", "X")
	dfa.AddTransition("0", ByteLabel('a'), "1")

	min, discarded := Minimize(dfa, sameString)

	assert.Empty(discarded)
	assert.Len(min.States(), 2)
}
