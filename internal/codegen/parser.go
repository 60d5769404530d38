package codegen

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/dekarrin/lexigen/internal/lalr"
)

// GenerateParser prints a self-contained LALR(1) shift-reduce driver: the
// action/goto tables baked as Go map literals, plus the same push-down
// automaton loop lalr.Parser.Parse runs (dragon book algorithm 4.44),
// reproduced without an import of this module.
//
// Unlike lalr.Parser.Parse, which tells terminal from nonterminal RHS
// symbols by a lower-case heuristic, the emitted reduce table records each
// RHS position's terminal-ness directly from the grammar that built t —
// the heuristic the in-process driver uses has no grammar to consult once
// the table has been flattened to data.
func GenerateParser(opts Options, t *lalr.Table) ([]byte, error) {
	var buf bytes.Buffer
	header(&buf, opts.packageName(), "parser")

	fmt.Fprintf(&buf, "import \"fmt\"\n\n")

	fmt.Fprintf(&buf, "type actionKind int\n\n")
	fmt.Fprintf(&buf, "const (\n\tactShift actionKind = iota\n\tactReduce\n\tactAccept\n)\n\n")

	fmt.Fprintf(&buf, "type tableAction struct {\n")
	fmt.Fprintf(&buf, "\tkind         actionKind\n")
	fmt.Fprintf(&buf, "\tshiftState   int\n")
	fmt.Fprintf(&buf, "\tnonTerminal  string\n")
	fmt.Fprintf(&buf, "\tsymbols      []string\n")
	fmt.Fprintf(&buf, "\tterminal     []bool\n")
	fmt.Fprintf(&buf, "\taction       string\n")
	fmt.Fprintf(&buf, "}\n\n")

	stateIDs := make([]int, len(t.Auto.States))
	for i, s := range t.Auto.States {
		stateIDs[i] = s.ID
	}
	sort.Ints(stateIDs)

	terms := append(append([]string{}, t.Grammar.Terminals()...), "$")
	nts := t.Grammar.NonTerminals()

	fmt.Fprintf(&buf, "var actionTable = map[int]map[string]tableAction{\n")
	for _, id := range stateIDs {
		fmt.Fprintf(&buf, "\t%d: {\n", id)
		for _, term := range terms {
			act := t.Action(id, term)
			switch act.Type {
			case lalr.Shift:
				fmt.Fprintf(&buf, "\t\t%q: {kind: actShift, shiftState: %d},\n", term, act.State)
			case lalr.Accept:
				fmt.Fprintf(&buf, "\t\t%q: {kind: actAccept},\n", term)
			case lalr.Reduce:
				symbols := act.Production.Symbols
				if len(symbols) == 1 && symbols[0] == "" {
					symbols = nil
				}
				fmt.Fprintf(&buf, "\t\t%q: {kind: actReduce, nonTerminal: %q, action: %q, symbols: %s, terminal: %s},\n",
					term, act.NonTerminal, act.Production.Action,
					goStringSlice(symbols), goBoolSlice(symbolsTerminal(t, symbols)))
			}
		}
		fmt.Fprintf(&buf, "\t},\n")
	}
	fmt.Fprintf(&buf, "}\n\n")

	fmt.Fprintf(&buf, "var gotoTable = map[int]map[string]int{\n")
	for _, id := range stateIDs {
		row := map[string]int{}
		for _, nt := range nts {
			if s, err := t.Goto(id, nt); err == nil {
				row[nt] = s
			}
		}
		if len(row) == 0 {
			continue
		}
		fmt.Fprintf(&buf, "\t%d: {", id)
		for _, nt := range nts {
			if s, ok := row[nt]; ok {
				fmt.Fprintf(&buf, "%q: %d, ", nt, s)
			}
		}
		fmt.Fprintf(&buf, "},\n")
	}
	fmt.Fprintf(&buf, "}\n\n")

	fmt.Fprintf(&buf, "const startState = %d\n\n", t.Initial())

	buf.WriteString(parserDriverSource)

	return gofmt(buf.Bytes())
}

func symbolsTerminal(t *lalr.Table, symbols []string) []bool {
	out := make([]bool, len(symbols))
	for i, sym := range symbols {
		out[i] = t.Grammar.IsTerminal(sym)
	}
	return out
}

func goStringSlice(ss []string) string {
	if len(ss) == 0 {
		return "nil"
	}
	quoted := make([]string, len(ss))
	for i, s := range ss {
		quoted[i] = fmt.Sprintf("%q", s)
	}
	return "[]string{" + strings.Join(quoted, ", ") + "}"
}

func goBoolSlice(bs []bool) string {
	if len(bs) == 0 {
		return "nil"
	}
	strs := make([]string, len(bs))
	for i, b := range bs {
		strs[i] = fmt.Sprintf("%v", b)
	}
	return "[]bool{" + strings.Join(strs, ", ") + "}"
}

// parserDriverSource is appended verbatim to every generated parser file.
const parserDriverSource = `
// Node is one node of the generated concrete parse tree.
type Node struct {
	Symbol   string
	Terminal bool
	Lexeme   string
	Action   string
	Children []*Node
}

// ParserToken is what Parse consumes; Lex's Token output satisfies this
// directly, so the generated lexer and parser compose with no glue code.
type ParserToken interface {
	Class() string
	Lexeme() string
}

// Parse drives the tables above against tokens, building a concrete parse
// tree or returning a syntax error naming the offending token's position.
func Parse(tokens []ParserToken) (*Node, error) {
	stateStack := []int{startState}
	var tokenStack []ParserToken
	var nodeStack []*Node

	pos := 0
	next := func() ParserToken {
		if pos < len(tokens) {
			t := tokens[pos]
			pos++
			return t
		}
		return eofToken{}
	}
	a := next()

	for {
		s := stateStack[len(stateStack)-1]
		row, ok := actionTable[s]
		if !ok {
			return nil, fmt.Errorf("no actions defined for state %d", s)
		}
		act, ok := row[a.Class()]
		if !ok {
			return nil, fmt.Errorf("unexpected token class %q in state %d", a.Class(), s)
		}

		switch act.kind {
		case actShift:
			tokenStack = append(tokenStack, a)
			stateStack = append(stateStack, act.shiftState)
			a = next()

		case actReduce:
			n := len(act.symbols)
			children := make([]*Node, n)
			for i := n - 1; i >= 0; i-- {
				if act.terminal[i] {
					tok := tokenStack[len(tokenStack)-1]
					tokenStack = tokenStack[:len(tokenStack)-1]
					children[i] = &Node{Symbol: tok.Class(), Terminal: true, Lexeme: tok.Lexeme()}
				} else {
					children[i] = nodeStack[len(nodeStack)-1]
					nodeStack = nodeStack[:len(nodeStack)-1]
				}
				stateStack = stateStack[:len(stateStack)-1]
			}
			node := &Node{Symbol: act.nonTerminal, Action: act.action, Children: children}
			nodeStack = append(nodeStack, node)

			t := stateStack[len(stateStack)-1]
			dest, ok := gotoTable[t][act.nonTerminal]
			if !ok {
				return nil, fmt.Errorf("no goto for %q from state %d", act.nonTerminal, t)
			}
			stateStack = append(stateStack, dest)

		case actAccept:
			return nodeStack[len(nodeStack)-1], nil
		}
	}
}

type eofToken struct{}

func (eofToken) Class() string  { return "$" }
func (eofToken) Lexeme() string { return "" }
`
