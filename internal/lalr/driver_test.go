package lalr

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
		return fakeToken{class: "$", lex: ""}
	}
	return s.toks[s.pos]
}

func (s *fakeStream) HasNext() bool {
	return s.pos < len(s.toks)
}

func TestParserAcceptsSimpleSum(t *testing.T) {
	assert := assert.New(t)
	g := exprGrammar()
	table, err := BuildTable(g)
	assert.NoError(err)

	stream := &fakeStream{toks: []fakeToken{
		{class: "id", lex: "a"},
		{class: "+", lex: "+"},
		{class: "id", lex: "b"},
	}}

	p := NewParser(table)
	tree, err := p.Parse(stream)
	assert.NoError(err)
	assert.Equal("E", tree.Value)
	assert.False(tree.Terminal)
}

func TestParserRejectsMalformedInput(t *testing.T) {
	assert := assert.New(t)
	g := exprGrammar()
	table, err := BuildTable(g)
	assert.NoError(err)

	stream := &fakeStream{toks: []fakeToken{
		{class: "+", lex: "+"},
	}}

	p := NewParser(table)
	_, err = p.Parse(stream)
	assert.Error(err)
}
