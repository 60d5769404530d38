package lalr

import (
	"testing"

	"github.com/dekarrin/lexigen/internal/grammar"
	"github.com/stretchr/testify/assert"
)

// exprGrammar builds the textbook left-recursive expression grammar:
//
//	E -> E + T | T
//	T -> T * F | F
//	F -> ( E ) | id
func exprGrammar() *grammar.Grammar {
	g := grammar.NewGrammar()
	g.AddTerm("+")
	g.AddTerm("*")
	g.AddTerm("(")
	g.AddTerm(")")
	g.AddTerm("id")

	g.AddRule("E", grammar.Production{Symbols: []string{"E", "+", "T"}, Action: "add"})
	g.AddRule("E", grammar.Production{Symbols: []string{"T"}, Action: "pass"})
	g.AddRule("T", grammar.Production{Symbols: []string{"T", "*", "F"}, Action: "mul"})
	g.AddRule("T", grammar.Production{Symbols: []string{"F"}, Action: "pass"})
	g.AddRule("F", grammar.Production{Symbols: []string{"(", "E", ")"}, Action: "group"})
	g.AddRule("F", grammar.Production{Symbols: []string{"id"}, Action: "leaf"})
	g.SetStart("E")

	return g
}

func TestBuildAutomatonHasExpectedStateCount(t *testing.T) {
	assert := assert.New(t)
	g := exprGrammar()
	auto := BuildAutomaton(g)

	// the textbook canonical LR(0) automaton for this grammar has 12 states.
	assert.Len(auto.States, 12)
	assert.Equal(0, auto.States[0].ID)
}

func TestComputeLookaheadsGivesStartItemEOS(t *testing.T) {
	assert := assert.New(t)
	g := exprGrammar()
	auto := BuildAutomaton(g)
	ComputeLookaheads(auto)

	start := auto.States[0]
	las := start.LookaheadsFor(auto.StartItem())
	assert.True(las.Has(eos))
}

func TestBuildTableNoConflictsOnUnambiguousGrammar(t *testing.T) {
	assert := assert.New(t)
	g := exprGrammar()

	table, err := BuildTable(g)
	assert.NoError(err)
	assert.Empty(table.Conflicts)

	// state 0 on "id" must shift.
	act := table.Action(0, "id")
	assert.Equal(Shift, act.Type)
}

// ambiguousGrammar is the classic dangling-else-style shift/reduce grammar,
// resolved here via explicit precedence: S -> if S | if S else S | id
func ambiguousGrammar() *grammar.Grammar {
	g := grammar.NewGrammar()
	g.AddTerm("if")
	g.AddTerm("else")
	g.AddTerm("id")

	g.AddRule("S", grammar.Production{Symbols: []string{"if", "S"}, Action: "if1", Tag: "if"})
	g.AddRule("S", grammar.Production{Symbols: []string{"if", "S", "else", "S"}, Action: "if2", Tag: "else"})
	g.AddRule("S", grammar.Production{Symbols: []string{"id"}, Action: "leaf"})
	g.SetStart("S")

	g.SetPrecedence("if", 1, grammar.AssocRight)
	g.SetPrecedence("else", 2, grammar.AssocRight)

	return g
}

func TestBuildTableResolvesShiftReduceByPrecedence(t *testing.T) {
	assert := assert.New(t)
	g := ambiguousGrammar()

	table, err := BuildTable(g)
	assert.NoError(err)
	assert.Empty(table.Conflicts, "precedence should resolve the if/else ambiguity without leaving a conflict")
}

// reduceReduceGrammar has no way to disambiguate a reduce/reduce collision:
// both A and B can derive "id" alone, with no distinguishing context.
func reduceReduceGrammar() *grammar.Grammar {
	g := grammar.NewGrammar()
	g.AddTerm("id")

	g.AddRule("S", grammar.Production{Symbols: []string{"A"}, Action: "fromA"})
	g.AddRule("S", grammar.Production{Symbols: []string{"B"}, Action: "fromB"})
	g.AddRule("A", grammar.Production{Symbols: []string{"id"}, Action: "leafA"})
	g.AddRule("B", grammar.Production{Symbols: []string{"id"}, Action: "leafB"})
	g.SetStart("S")

	return g
}

func TestBuildTableReportsReduceReduceConflict(t *testing.T) {
	assert := assert.New(t)
	g := reduceReduceGrammar()

	table, err := BuildTable(g)
	assert.Error(err)
	assert.NotEmpty(table.Conflicts)
}
