package grammar

import (
	"fmt"
	"strings"

	"github.com/dekarrin/lexigen/internal/util"
)

// LR0Item is an LR(0) item: a production with a dot marking how much of the
// right-hand side has been matched so far.
type LR0Item struct {
	NonTerminal string
	Left        []string
	Right       []string
}

// Equal implements a kernel-equality comparison: LHS, matched prefix, and
// remaining suffix must all agree.
func (lr0 LR0Item) Equal(o any) bool {
	other, ok := o.(LR0Item)
	if !ok {
		otherPtr, ok := o.(*LR0Item)
		if !ok {
			return false
		}
		if otherPtr == nil {
			return false
		}
		other = *otherPtr
	}

	if lr0.NonTerminal != other.NonTerminal {
		return false
	} else if len(lr0.Left) != len(other.Left) {
		return false
	} else if len(lr0.Right) != len(other.Right) {
		return false
	}

	for i := range lr0.Left {
		if lr0.Left[i] != other.Left[i] {
			return false
		}
	}
	for i := range lr0.Right {
		if lr0.Right[i] != other.Right[i] {
			return false
		}
	}

	return true
}

// Next returns the symbol immediately after the dot, and whether one exists.
func (lr0 LR0Item) Next() (string, bool) {
	if len(lr0.Right) == 0 {
		return "", false
	}
	return lr0.Right[0], true
}

// Advanced returns the item with the dot moved one position to the right.
// Panics if the dot is already at the end.
func (lr0 LR0Item) Advanced() LR0Item {
	if len(lr0.Right) == 0 {
		panic("cannot advance item with dot already at end")
	}
	adv := LR0Item{
		NonTerminal: lr0.NonTerminal,
		Left:        make([]string, len(lr0.Left)+1),
		Right:       make([]string, len(lr0.Right)-1),
	}
	copy(adv.Left, lr0.Left)
	adv.Left[len(lr0.Left)] = lr0.Right[0]
	copy(adv.Right, lr0.Right[1:])
	return adv
}

// AtEnd reports whether the dot has reached the end of the production.
func (lr0 LR0Item) AtEnd() bool {
	return len(lr0.Right) == 0
}

// LR1Item is an LR(0) item paired with a single lookahead terminal. A full
// LALR state item normally carries a whole lookahead *set*; LR1Item
// represents one (item, lookahead) pair as used during closure_1 and
// propagation analysis.
type LR1Item struct {
	LR0Item
	Lookahead string
}

// CoreSet extracts the LR0Item core from a set of LR1Items, discarding
// lookaheads, for kernel-equality comparisons between states.
func CoreSet(s util.VSet[string, LR1Item]) util.SVSet[LR0Item] {
	cores := util.NewSVSet[LR0Item]()
	for _, elem := range s.Elements() {
		lr1 := s.Get(elem)
		cores.Set(lr1.LR0Item.String(), lr1.LR0Item)
	}
	return cores
}

// EqualCoreSets reports whether two LR1Item sets have the same LR0Item
// cores, ignoring lookaheads.
func EqualCoreSets(s1, s2 util.VSet[string, LR1Item]) bool {
	return CoreSet(s1).Equal(CoreSet(s2))
}

func (lr1 LR1Item) Equal(o any) bool {
	other, ok := o.(LR1Item)
	if !ok {
		otherPtr, ok := o.(*LR1Item)
		if !ok {
			return false
		}
		if otherPtr == nil {
			return false
		}
		other = *otherPtr
	}

	if !lr1.LR0Item.Equal(other.LR0Item) {
		return false
	} else if lr1.Lookahead != other.Lookahead {
		return false
	}

	return true
}

func (lr1 LR1Item) Copy() LR1Item {
	lrCopy := LR1Item{}
	lrCopy.NonTerminal = lr1.NonTerminal
	lrCopy.Left = make([]string, len(lr1.Left))
	copy(lrCopy.Left, lr1.Left)
	lrCopy.Right = make([]string, len(lr1.Right))
	copy(lrCopy.Right, lr1.Right)
	lrCopy.Lookahead = lr1.Lookahead
	return lrCopy
}

func MustParseLR0Item(s string) LR0Item {
	i, err := ParseLR0Item(s)
	if err != nil {
		panic(err.Error())
	}
	return i
}

func MustParseLR1Item(s string) LR1Item {
	i, err := ParseLR1Item(s)
	if err != nil {
		panic(err.Error())
	}
	return i
}

// ParseLR0Item parses the round-trip string form "NONTERM -> ALPHA.BETA",
// where "ε" denotes an empty side.
func ParseLR0Item(s string) (LR0Item, error) {
	sides := strings.Split(s, "->")
	if len(sides) != 2 {
		return LR0Item{}, fmt.Errorf("not an item of form 'NONTERM -> ALPHA.BETA': %q", s)
	}
	nonTerminal := strings.TrimSpace(sides[0])

	if nonTerminal == "" {
		return LR0Item{}, fmt.Errorf("empty nonterminal name not allowed for item")
	}

	parsedItem := LR0Item{
		NonTerminal: nonTerminal,
	}

	productionsString := strings.TrimSpace(sides[1])
	prodStrings := strings.Split(productionsString, ".")
	if len(prodStrings) != 2 {
		return LR0Item{}, fmt.Errorf("item must have exactly one dot")
	}

	alphaStr := strings.TrimSpace(prodStrings[0])
	betaStr := strings.TrimSpace(prodStrings[1])

	alphaSymbols := strings.Split(alphaStr, " ")
	betaSymbols := strings.Split(betaStr, " ")

	var parsedAlpha, parsedBeta []string

	for _, aSym := range alphaSymbols {
		aSym = strings.TrimSpace(aSym)
		if aSym == "" {
			continue
		}
		if strings.ToLower(aSym) == "ε" {
			aSym = ""
		}
		parsedAlpha = append(parsedAlpha, aSym)
	}

	for _, bSym := range betaSymbols {
		bSym = strings.TrimSpace(bSym)
		if bSym == "" {
			continue
		}
		if strings.ToLower(bSym) == "ε" {
			bSym = ""
		}
		parsedBeta = append(parsedBeta, bSym)
	}

	parsedItem.Left = parsedAlpha
	parsedItem.Right = parsedBeta

	return parsedItem, nil
}

// ParseLR1Item parses the round-trip string form "NONTERM -> ALPHA.BETA, a".
func ParseLR1Item(s string) (LR1Item, error) {
	sides := strings.Split(s, ",")
	if len(sides) != 2 {
		return LR1Item{}, fmt.Errorf("not an item of form 'NONTERM -> ALPHA.BETA, a': %q", s)
	}

	item := LR1Item{}
	var err error
	item.LR0Item, err = ParseLR0Item(sides[0])
	if err != nil {
		return item, err
	}

	item.Lookahead = strings.TrimSpace(sides[1])

	return item, nil
}

func (item LR0Item) String() string {
	nonTermPhrase := ""
	if item.NonTerminal != "" {
		nonTermPhrase = fmt.Sprintf("%s -> ", item.NonTerminal)
	}

	left := strings.Join(item.Left, " ")
	right := strings.Join(item.Right, " ")

	if len(left) > 0 {
		left = left + " "
	}
	if len(right) > 0 {
		right = " " + right
	}

	return fmt.Sprintf("%s%s.%s", nonTermPhrase, left, right)
}

func (item LR1Item) String() string {
	return fmt.Sprintf("%s, %s", item.LR0Item.String(), item.Lookahead)
}
