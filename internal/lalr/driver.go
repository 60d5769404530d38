package lalr

import (
	"fmt"
	"strings"

	"github.com/dekarrin/lexigen/internal/icerrors"
	"github.com/dekarrin/lexigen/internal/types"
	"github.com/dekarrin/lexigen/internal/util"
)

// Parser drives a Table against a token stream, building a concrete parse
// tree. This is an implementation of dragon book algorithm 4.44,
// "LR-parsing algorithm".
type Parser struct {
	table *Table
	trace func(s string)
}

// NewParser returns a parser driven by table.
func NewParser(table *Table) *Parser {
	return &Parser{table: table}
}

// RegisterTraceListener installs a callback invoked with a line of trace
// output for every token read and for every action looked up (state,
// lookahead, action type); nil disables tracing.
func (p *Parser) RegisterTraceListener(listener func(s string)) {
	p.trace = listener
}

func (p *Parser) notifyTrace(format string, args ...interface{}) {
	if p.trace != nil {
		p.trace(fmt.Sprintf(format, args...))
	}
}

// Parse consumes stream to completion, returning the concrete parse tree or
// a syntax-error diagnostic.
func (p *Parser) Parse(stream types.TokenStream) (types.ParseTree, error) {
	stateStack := util.Stack[int]{Of: []int{p.table.Initial()}}
	tokenBuffer := util.Stack[types.Token]{}
	subTreeRoots := util.Stack[*types.ParseTree]{}

	a := stream.Next()
	p.notifyTrace("next token: %s", a.String())

	for {
		s := stateStack.Peek()
		act := p.table.Action(s, a.Class().ID())
		p.notifyTrace("state %d, lookahead %q: %s", s, a.Class().ID(), act.Type.String())

		switch act.Type {
		case Shift:
			tokenBuffer.Push(a)
			stateStack.Push(act.State)
			a = stream.Next()
			p.notifyTrace("next token: %s", a.String())

		case Reduce:
			beta := act.Production.Symbols
			if len(beta) == 1 && beta[0] == "" {
				beta = nil
			}

			node := &types.ParseTree{Value: act.NonTerminal, Action: act.Production.Action}
			node.Children = make([]*types.ParseTree, len(beta))
			for i := len(beta) - 1; i >= 0; i-- {
				sym := beta[i]
				if strings.ToLower(sym) == sym {
					tok := tokenBuffer.Pop()
					node.Children[i] = &types.ParseTree{Terminal: true, Value: tok.Class().ID(), Source: tok}
				} else {
					node.Children[i] = subTreeRoots.Pop()
				}
				stateStack.Pop()
			}
			subTreeRoots.Push(node)

			t := stateStack.Peek()
			toPush, err := p.table.Goto(t, act.NonTerminal)
			if err != nil {
				return types.ParseTree{}, icerrors.At(icerrors.SpecSyntax, a.Line(), a.LinePos(), a.FullLine(),
					"no valid transition for %q after reducing", act.NonTerminal)
			}
			stateStack.Push(toPush)

		case Accept:
			pt := subTreeRoots.Pop()
			return *pt, nil

		case Error:
			return types.ParseTree{}, icerrors.At(icerrors.SpecSyntax, a.Line(), a.LinePos(), a.FullLine(),
				"unexpected %s; %s", a.Class().Human(), p.expectedString(s))
		}
	}
}

func (p *Parser) expectedString(state int) string {
	expected := p.expectedTokens(state)

	var sb strings.Builder
	sb.WriteString("expected ")

	for i, t := range expected {
		if i == 0 {
			sb.WriteString(util.ArticleFor(t, false))
			sb.WriteRune(' ')
		}
		if i > 0 && i+1 == len(expected) && len(expected) > 1 {
			sb.WriteString(" or ")
		} else if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(t)
	}
	return sb.String()
}

func (p *Parser) expectedTokens(state int) []string {
	var out []string
	for _, term := range p.table.Grammar.Terminals() {
		if p.table.Action(state, term).Type != Error {
			out = append(out, term)
		}
	}
	return out
}
