package lexerrt

import (
	"strings"

	"github.com/dekarrin/lexigen/internal/automaton"
	"github.com/dekarrin/lexigen/internal/icerrors"
	"github.com/dekarrin/lexigen/internal/types"
)

// eosTerminal is the terminal name the LALR tables use for the end-of-stream
// lookahead (internal/lalr's "eos" constant); kept in sync by convention
// since a Lexer has no direct dependency on the parser package.
const eosTerminal = "$"

type simpleToken struct {
	class   types.TokenClass
	lexeme  string
	line    int
	linePos int
	full    string
}

func (t simpleToken) Class() types.TokenClass { return t.class }
func (t simpleToken) Lexeme() string          { return t.lexeme }
func (t simpleToken) LinePos() int            { return t.linePos }
func (t simpleToken) Line() int               { return t.line }
func (t simpleToken) FullLine() string        { return t.full }
func (t simpleToken) String() string {
	return t.class.ID() + "(" + t.lexeme + ")"
}

type tokenStream struct {
	tokens []types.Token
	cur    int
}

func (s *tokenStream) Next() types.Token {
	t := s.Peek()
	if s.cur < len(s.tokens) {
		s.cur++
	}
	return t
}

func (s *tokenStream) Peek() types.Token {
	if s.cur >= len(s.tokens) {
		return simpleToken{class: types.MakeDefaultClass(eosTerminal)}
	}
	return s.tokens[s.cur]
}

func (s *tokenStream) HasNext() bool {
	return s.cur < len(s.tokens)
}

// lines splits src into its constituent lines (without trailing newlines),
// used to populate FullLine on every emitted token for diagnostics.
func lines(src []byte) []string {
	return strings.Split(string(src), "\n")
}

// Lex runs maximal-munch scanning of src against the compiled DFA, the
// teacher's eager "ImmediatelyLex" idiom (pre-scan to a token slice) driven
// by our own DFA instead of the stubbed lazy core that package never
// finished. Rules whose Token is empty are matched and consumed but never
// appended to the result (whitespace, comments).
func (lx *Lexer) Lex(src []byte) (types.TokenStream, error) {
	srcLines := lines(src)

	var toks []types.Token
	pos := 0
	line, col := 1, 1

	lineAt := func(n int) string {
		if n-1 < 0 || n-1 >= len(srcLines) {
			return ""
		}
		return srcLines[n-1]
	}

	for pos < len(src) {
		state := lx.dfa.Start
		lastAccept := -1
		var lastState string

		i := pos
		for {
			if i >= len(src) {
				if next := lx.dfa.Next(state, automaton.EOSLabel()); next != "" {
					state = next
					if lx.dfa.IsAccepting(state) {
						lastAccept, lastState = i, state
					}
				}
				break
			}
			next := lx.dfa.Next(state, automaton.ByteLabel(src[i]))
			if next == "" {
				break
			}
			state = next
			i++
			if lx.dfa.IsAccepting(state) {
				lastAccept, lastState = i, state
			}
		}

		if lastAccept == -1 {
			return nil, icerrors.At(icerrors.SpecSyntax, line, col, lineAt(line),
				"no lexer rule matches input starting at %q", excerpt(src[pos:]))
		}

		lexeme := src[pos:lastAccept]
		t := lx.dfa.GetValue(lastState)
		if !t.discard() {
			toks = append(toks, simpleToken{
				class:   types.MakeDefaultClass(t.token),
				lexeme:  string(lexeme),
				line:    line,
				linePos: col,
				full:    lineAt(line),
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

	return &tokenStream{tokens: toks}, nil
}

func excerpt(b []byte) string {
	const maxLen = 16
	if len(b) > maxLen {
		b = b[:maxLen]
	}
	return string(b)
}
