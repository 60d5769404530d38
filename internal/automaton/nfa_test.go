package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEpsilonClosure(t *testing.T) {
	assert := assert.New(t)

	nfa := NFA[int]{}
	nfa.AddState("0", false)
	nfa.AddState("1", false)
	nfa.AddState("2", true)
	nfa.Start = "0"
	nfa.AddTransition("0", EpsilonLabel, "1")
	nfa.AddTransition("1", EpsilonLabel, "2")
	nfa.AddTransition("0", ByteLabel('a'), "2")

	closure := nfa.EpsilonClosure("0")

	assert.True(closure["0"])
	assert.True(closure["1"])
	assert.True(closure["2"])
	assert.Len(closure, 3)
}

func TestMove(t *testing.T) {
	assert := assert.New(t)

	nfa := NFA[int]{}
	nfa.AddState("0", false)
	nfa.AddState("1", true)
	nfa.Start = "0"
	nfa.AddTransition("0", ByteLabel('a'), "1")

	moved := nfa.Move(map[string]bool{"0": true}, ByteLabel('a'))

	assert.True(moved["1"])
	assert.Len(moved, 1)

	noMove := nfa.Move(map[string]bool{"0": true}, ByteLabel('b'))
	assert.Empty(noMove)
}

func TestInputSymbols(t *testing.T) {
	assert := assert.New(t)

	nfa := NFA[int]{}
	nfa.AddState("0", false)
	nfa.AddState("1", false)
	nfa.AddState("2", true)
	nfa.Start = "0"
	nfa.AddTransition("0", ByteLabel('a'), "1")
	nfa.AddTransition("1", EpsilonLabel, "2")
	nfa.AddTransition("1", ByteLabel('b'), "2")

	syms := nfa.InputSymbols()

	assert.ElementsMatch([]string{ByteLabel('a'), ByteLabel('b')}, syms)
}

func TestNewStateUnique(t *testing.T) {
	assert := assert.New(t)

	nfa := NFA[int]{}
	names := map[string]bool{}
	for i := 0; i < 5; i++ {
		n := nfa.NewState()
		nfa.AddState(n, false)
		assert.False(names[n], "state name %q reused", n)
		names[n] = true
	}
}
