package lalr

import (
	"fmt"

	"github.com/dekarrin/lexigen/internal/grammar"
)

// ActionType is the kind of action an LALR table cell holds.
type ActionType int

const (
	Shift ActionType = iota
	Reduce
	Accept
	Error
)

func (t ActionType) String() string {
	switch t {
	case Shift:
		return "shift"
	case Reduce:
		return "reduce"
	case Accept:
		return "accept"
	default:
		return "error"
	}
}

// Action is a single parse-table cell.
type Action struct {
	Type ActionType

	// Production and NonTerminal are set when Type is Reduce: the rule
	// A -> β to reduce by.
	Production  grammar.Production
	NonTerminal string

	// State is set when Type is Shift: the state to transition to.
	State int
}

func (act Action) String() string {
	switch act.Type {
	case Accept:
		return "accept"
	case Reduce:
		return fmt.Sprintf("reduce %s -> %s", act.NonTerminal, act.Production.String())
	case Shift:
		return fmt.Sprintf("shift %d", act.State)
	default:
		return "error"
	}
}

func (act Action) Equal(other Action) bool {
	if act.Type != other.Type {
		return false
	}
	switch act.Type {
	case Shift:
		return act.State == other.State
	case Reduce:
		return act.NonTerminal == other.NonTerminal && act.Production.Equal(other.Production)
	default:
		return true
	}
}

// Conflict records an unresolved table-cell collision.
type Conflict struct {
	State    int
	Terminal string
	First    Action
	Second   Action
}

func (c Conflict) Error() string {
	switch {
	case c.First.Type == Reduce && c.Second.Type == Reduce:
		return fmt.Sprintf("reduce/reduce conflict in state %d on terminal %q: reduce %s -> %s or reduce %s -> %s",
			c.State, c.Terminal,
			c.First.NonTerminal, c.First.Production.String(),
			c.Second.NonTerminal, c.Second.Production.String())
	case (c.First.Type == Shift && c.Second.Type == Reduce) || (c.First.Type == Reduce && c.Second.Type == Shift):
		reduceAct := c.First
		if c.First.Type == Shift {
			reduceAct = c.Second
		}
		return fmt.Sprintf("shift/reduce conflict in state %d on terminal %q: shift, or reduce %s -> %s",
			c.State, c.Terminal, reduceAct.NonTerminal, reduceAct.Production.String())
	case c.First.Type == Accept || c.Second.Type == Accept:
		return fmt.Sprintf("accept conflict in state %d on terminal %q: %s vs %s", c.State, c.Terminal, c.First, c.Second)
	default:
		return fmt.Sprintf("action conflict in state %d on terminal %q: %s vs %s", c.State, c.Terminal, c.First, c.Second)
	}
}
