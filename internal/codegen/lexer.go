package codegen

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/dekarrin/lexigen/internal/lexerrt"
)

// GenerateLexer prints a self-contained scanner: the compiled DFA as a
// table of states keyed by dense integer id, and a maximal-munch driver
// loop that walks it. The driver is the same algorithm lexerrt.Lexer.Lex
// runs in-process (component D's minimized DFA, longest-match-wins,
// earliest-rule-wins on ties), reproduced here without any import of this
// module so the emitted file stands alone.
func GenerateLexer(opts Options, lx *lexerrt.Lexer) ([]byte, error) {
	states, start := lx.Export()

	var buf bytes.Buffer
	header(&buf, opts.packageName(), "lexer")

	fmt.Fprintf(&buf, "import (\n\t\"fmt\"\n\t\"strings\"\n)\n\n")

	fmt.Fprintf(&buf, "type lexState struct {\n")
	fmt.Fprintf(&buf, "\taccepting bool\n")
	fmt.Fprintf(&buf, "\ttoken     string\n")
	fmt.Fprintf(&buf, "\ttrans     map[byte]int\n")
	fmt.Fprintf(&buf, "\teos       int\n")
	fmt.Fprintf(&buf, "}\n\n")

	fmt.Fprintf(&buf, "var lexStates = map[int]lexState{\n")
	for _, st := range states {
		id := mustAtoi(st.ID)
		eos := -1
		byTrans := map[byte]string{}
		for _, tr := range st.Transitions {
			if tr.EOS {
				eos = mustAtoi(tr.Next)
				continue
			}
			byTrans[tr.Byte] = tr.Next
		}
		fmt.Fprintf(&buf, "\t%d: {accepting: %v, token: %q, eos: %d, trans: map[byte]int{", id, st.Accepting, st.Token, eos)
		bytesSorted := make([]int, 0, len(byTrans))
		for b := range byTrans {
			bytesSorted = append(bytesSorted, int(b))
		}
		sort.Ints(bytesSorted)
		for _, b := range bytesSorted {
			fmt.Fprintf(&buf, "%d: %s, ", b, byTrans[byte(b)])
		}
		fmt.Fprintf(&buf, "}},\n")
	}
	fmt.Fprintf(&buf, "}\n\n")
	fmt.Fprintf(&buf, "const lexStart = %d\n\n", mustAtoi(start))

	buf.WriteString(lexerDriverSource)

	return gofmt(buf.Bytes())
}

// mustAtoi converts a lexerrt.ExportedState id (always a small decimal
// string after Export's renumbering) to int.
func mustAtoi(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}

// lexerDriverSource is appended verbatim to every generated lexer file; it
// is the runtime loop, kept identical across generation runs so only the
// table above changes between spec files.
const lexerDriverSource = `
// Token is one scanned lexeme: its declared terminal name, the matched
// text, and its source position for diagnostics. It satisfies the
// generated parser's ParserToken interface directly.
type Token struct {
	ClassName  string
	LexemeText string
	Line       int
	Col        int
	FullLine   string
}

func (t Token) Class() string  { return t.ClassName }
func (t Token) Lexeme() string { return t.LexemeText }

// Lex runs maximal-munch scanning of src against the compiled DFA above.
// Rules with an empty token name are matched and consumed but never
// appended to the result (whitespace, comments).
func Lex(src []byte) ([]Token, error) {
	srcLines := strings.Split(string(src), "\n")
	lineAt := func(n int) string {
		if n-1 < 0 || n-1 >= len(srcLines) {
			return ""
		}
		return srcLines[n-1]
	}

	var toks []Token
	pos := 0
	line, col := 1, 1

	for pos < len(src) {
		state := lexStart
		lastAccept := -1
		lastState := -1

		i := pos
		for {
			st := lexStates[state]
			if i >= len(src) {
				if st.eos >= 0 {
					state = st.eos
					if lexStates[state].accepting {
						lastAccept, lastState = i, state
					}
				}
				break
			}
			next, ok := st.trans[src[i]]
			if !ok {
				break
			}
			state = next
			i++
			if lexStates[state].accepting {
				lastAccept, lastState = i, state
			}
		}

		if lastAccept == -1 {
			return nil, fmt.Errorf("no lexer rule matches input at line %d, col %d", line, col)
		}

		lexeme := src[pos:lastAccept]
		matched := lexStates[lastState]
		if matched.token != "" {
			toks = append(toks, Token{
				ClassName:  matched.token,
				LexemeText: string(lexeme),
				Line:       line,
				Col:        col,
				FullLine:   lineAt(line),
			})
		}

		for _, b := range lexeme {
			if b == '\n' {
				line++
				col = 1
			} else {
				col++
			}
		}
		pos = lastAccept
	}

	return toks, nil
}
`
