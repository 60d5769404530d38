package specfile

import (
	"testing"

	"github.com/dekarrin/lexigen/internal/types"
	"github.com/stretchr/testify/assert"
)

type fakeToken struct {
	class string
	lex   string
}

func (f fakeToken) Class() types.TokenClass { return types.MakeDefaultClass(f.class) }
func (f fakeToken) Lexeme() string          { return f.lex }
func (f fakeToken) LinePos() int            { return 1 }
func (f fakeToken) Line() int               { return 1 }
func (f fakeToken) FullLine() string        { return f.lex }
func (f fakeToken) String() string          { return f.class + "(" + f.lex + ")" }

type fakeStream struct {
	toks []fakeToken
	pos  int
}

func (s *fakeStream) Next() types.Token {
	t := s.Peek()
	if s.pos < len(s.toks) {
		s.pos++
	}
	return t
}

func (s *fakeStream) Peek() types.Token {
	if s.pos >= len(s.toks) {
		return fakeToken{class: "$"}
	}
	return s.toks[s.pos]
}

func (s *fakeStream) HasNext() bool {
	return s.pos < len(s.toks)
}

func ident(lex string) fakeToken { return fakeToken{class: tokIdent, lex: lex} }
func str(lex string) fakeToken   { return fakeToken{class: tokString, lex: lex} }
func num(lex string) fakeToken   { return fakeToken{class: tokNumber, lex: lex} }
func punct(cls string) fakeToken { return fakeToken{class: cls, lex: cls} }

func TestParseMinimalThreeBlockSpec(t *testing.T) {
	assert := assert.New(t)

	toks := []fakeToken{
		punct(tokLBracket), ident("lexer"), punct(tokRBracket), ident("x"), punct(tokLBrace),
		ident("int"), punct(tokEq), str(`"[0-9]+"`), punct(tokSemi),
		punct(tokRBrace),

		punct(tokLBracket), ident("token"), punct(tokRBracket), ident("x"), punct(tokLBrace),
		ident("int"), punct(tokSemi),
		punct(tokRBrace),

		punct(tokLBracket), ident("parser"), punct(tokRBracket), ident("x"), punct(tokLBrace),
		ident("start"), punct(tokColon), punct(tokLBracket), punct(tokRBracket), ident("int"), punct(tokSemi),
		punct(tokRBrace),
	}

	spec, err := Parse(&fakeStream{toks: toks})
	assert.NoError(err)
	if err != nil {
		return
	}

	assert.Equal("x", spec.LexerNamespace)
	assert.Equal("x", spec.TokenNamespace)
	assert.Equal("x", spec.ParserNamespace)
	assert.Len(spec.LexRules, 1)
	assert.Equal("int", spec.LexRules[0].Token)
	assert.Equal("[0-9]+", spec.LexRules[0].Pattern)
	assert.Len(spec.Tokens, 1)
	assert.Len(spec.Rules, 1)
	assert.Equal("start", spec.Rules[0].LHS)
	assert.Equal([]string{"int"}, spec.Rules[0].RHS[0].Symbols)
}

func TestParseRejectsMissingLexerKeyword(t *testing.T) {
	assert := assert.New(t)

	toks := []fakeToken{
		punct(tokLBracket), ident("notlexer"), punct(tokRBracket), ident("x"), punct(tokLBrace),
		punct(tokRBrace),
	}

	_, err := Parse(&fakeStream{toks: toks})
	assert.Error(err)
}

func TestParsePrecBlockAssignsGroupsInOrder(t *testing.T) {
	assert := assert.New(t)

	toks := []fakeToken{
		punct(tokLBracket), ident("lexer"), punct(tokRBracket), ident("x"), punct(tokLBrace),
		ident("plus"), punct(tokEq), str(`"\+"`), punct(tokSemi),
		ident("star"), punct(tokEq), str(`"\*"`), punct(tokSemi),
		punct(tokRBrace),

		punct(tokLBracket), ident("token"), punct(tokRBracket), ident("x"), punct(tokLBrace),
		punct(tokLAngle), ident("left"), punct(tokRAngle), punct(tokLBrace),
		ident("plus"), punct(tokSemi),
		punct(tokRBrace),
		punct(tokLAngle), ident("left"), punct(tokRAngle), punct(tokLBrace),
		ident("star"), punct(tokSemi),
		punct(tokRBrace),
		punct(tokRBrace),

		punct(tokLBracket), ident("parser"), punct(tokRBracket), ident("x"), punct(tokLBrace),
		ident("start"), punct(tokColon), punct(tokLBracket), punct(tokRBracket), ident("plus"), punct(tokSemi),
		punct(tokRBrace),
	}

	spec, err := Parse(&fakeStream{toks: toks})
	assert.NoError(err)
	if err != nil {
		return
	}

	assert.Len(spec.Prec, 2)
	assert.Equal([][]string{{"plus"}}, spec.Prec[0].Groups)
	assert.Equal([][]string{{"star"}}, spec.Prec[1].Groups)
}

func TestParseRHSWithTagAndArgIndex(t *testing.T) {
	assert := assert.New(t)

	toks := []fakeToken{
		punct(tokLBracket), ident("lexer"), punct(tokRBracket), ident("x"), punct(tokLBrace),
		punct(tokRBrace),

		punct(tokLBracket), ident("token"), punct(tokRBracket), ident("x"), punct(tokLBrace),
		punct(tokRBrace),

		punct(tokLBracket), ident("parser"), punct(tokRBracket), ident("x"), punct(tokLBrace),
		ident("e"), punct(tokColon),
		punct(tokLBracket), ident("add"), punct(tokRBracket),
		punct(tokLAngle), ident("plus"), punct(tokRAngle),
		ident("e"), ident("plus"), ident("e"), punct(tokLParen), num("0"), punct(tokRParen),
		punct(tokSemi),
		punct(tokRBrace),
	}

	spec, err := Parse(&fakeStream{toks: toks})
	assert.NoError(err)
	if err != nil {
		return
	}

	rhs := spec.Rules[0].RHS[0]
	assert.Equal("add", rhs.Action)
	assert.Equal("plus", rhs.Tag)
	assert.Equal([]string{"e", "plus", "e"}, rhs.Symbols)
	assert.Equal(map[int]int{0: 2}, rhs.ArgToElement)
}
