package grammar

import (
	"testing"

	"github.com/dekarrin/lexigen/internal/util"
	"github.com/stretchr/testify/assert"
)

func exprGrammar() *Grammar {
	g := NewGrammar()
	g.AddTerm("+")
	g.AddTerm("*")
	g.AddTerm("(")
	g.AddTerm(")")
	g.AddTerm("id")

	g.AddRule("E", Production{Symbols: []string{"E", "+", "T"}, Action: "add"})
	g.AddRule("E", Production{Symbols: []string{"T"}, Action: "pass"})
	g.AddRule("T", Production{Symbols: []string{"T", "*", "F"}, Action: "mul"})
	g.AddRule("T", Production{Symbols: []string{"F"}, Action: "pass"})
	g.AddRule("F", Production{Symbols: []string{"(", "E", ")"}, Action: "group"})
	g.AddRule("F", Production{Symbols: []string{"id"}, Action: "leaf"})
	g.SetStart("E")

	return g
}

func TestGrammarValidate(t *testing.T) {
	assert := assert.New(t)
	g := exprGrammar()
	assert.NoError(g.Validate())
}

func TestGrammarValidateRejectsUnknownSymbol(t *testing.T) {
	assert := assert.New(t)
	g := exprGrammar()
	g.AddRule("F", Production{Symbols: []string{"bogus"}, Action: "leaf"})
	assert.Error(g.Validate())
}

func TestGrammarValidateRejectsNonContiguousArgs(t *testing.T) {
	assert := assert.New(t)
	g := exprGrammar()
	g.AddRule("F", Production{
		Symbols:      []string{"id"},
		Action:       "leaf",
		ArgToElement: map[int]int{0: 0, 2: 0},
	})
	assert.Error(g.Validate())
}

func TestAugmentedStartSymbol(t *testing.T) {
	assert := assert.New(t)
	g := exprGrammar()
	assert.Equal("E'", g.Augmented())
}

func TestEffectivePrecedenceFallsBackToHighestRHSTerminal(t *testing.T) {
	assert := assert.New(t)
	g := exprGrammar()
	g.SetPrecedence("+", 1, AssocLeft)
	g.SetPrecedence("*", 2, AssocLeft)

	mulRule, _ := g.Rule("T")
	entry, ok := g.EffectivePrecedence(mulRule.Productions[0])
	assert.True(ok)
	assert.Equal(uint(2), entry.Priority)
}

func TestEffectivePrecedencePrefersExplicitTag(t *testing.T) {
	assert := assert.New(t)
	g := exprGrammar()
	g.SetPrecedence("+", 1, AssocLeft)
	g.SetPrecedence("*", 2, AssocLeft)

	tagged := Production{Symbols: []string{"T", "*", "F"}, Action: "mul", Tag: "+"}
	entry, ok := g.EffectivePrecedence(tagged)
	assert.True(ok)
	assert.Equal(uint(1), entry.Priority)
}

func TestGenerateUniqueTerminalAvoidsCollision(t *testing.T) {
	assert := assert.New(t)
	g := exprGrammar()
	name := g.GenerateUniqueTerminal("id")
	assert.NotEqual("id", name)
}

func TestLR0Items(t *testing.T) {
	assert := assert.New(t)
	g := exprGrammar()
	items := g.LR0Items()
	assert.NotEmpty(items)

	// T -> T * F should yield dot positions 0..3
	count := 0
	for _, it := range items {
		if it.NonTerminal == "T" && len(it.Left)+len(it.Right) == 3 {
			count++
		}
	}
	assert.Equal(4, count)
}

func TestGoto1AdvancesMatchingItems(t *testing.T) {
	assert := assert.New(t)

	item := LR1Item{
		LR0Item:   LR0Item{NonTerminal: "E", Right: []string{"T"}},
		Lookahead: "$",
	}
	from := util.NewSVSet[LR1Item]()
	from.Set(item.String(), item)

	advanced := Goto1(from, "T")
	assert.Len(advanced, 1)
	assert.True(advanced[0].AtEnd())
	assert.Equal([]string{"T"}, advanced[0].Left)

	none := Goto1(from, "F")
	assert.Empty(none)
}
