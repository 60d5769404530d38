package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDFANextAndTransitions(t *testing.T) {
	assert := assert.New(t)

	dfa := DFA[string]{}
	dfa.AddState("0", false)
	dfa.AddState("1", true)
	dfa.Start = "0"
	dfa.SetValue("1", "ident")
	dfa.AddTransition("0", ByteLabel('a'), "1")
	dfa.AddTransition("0", ByteLabel('b'), "0")

	assert.Equal("1", dfa.Next("0", ByteLabel('a')))
	assert.Equal("0", dfa.Next("0", ByteLabel('b')))
	assert.Equal("", dfa.Next("0", ByteLabel('z')))
	assert.True(dfa.IsAccepting("1"))
	assert.False(dfa.IsAccepting("0"))
	assert.Equal("ident", dfa.GetValue("1"))

	trans := dfa.Transitions("0")
	assert.Len(trans, 2)
}

func TestDFAAddTransitionOverwrites(t *testing.T) {
	assert := assert.New(t)

	dfa := DFA[int]{}
	dfa.AddState("0", false)
	dfa.AddState("1", false)
	dfa.AddState("2", false)
	dfa.Start = "0"
	dfa.AddTransition("0", ByteLabel('a'), "1")
	dfa.AddTransition("0", ByteLabel('a'), "2")

	assert.Equal("2", dfa.Next("0", ByteLabel('a')))
}

func TestDFANumberStates(t *testing.T) {
	assert := assert.New(t)

	dfa := DFA[int]{}
	dfa.AddState("start", true)
	dfa.AddState("other", false)
	dfa.Start = "start"
	dfa.AddTransition("start", ByteLabel('x'), "other")
	dfa.AddTransition("other", ByteLabel('y'), "start")

	mapping := dfa.NumberStates()

	assert.Equal("0", mapping["start"])
	assert.Equal("0", dfa.Start)
	assert.True(dfa.IsAccepting("0"))
	assert.Equal(mapping["other"], dfa.Next("0", ByteLabel('x')))
}
