package lexerrt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompileAndLexIntAndIdent(t *testing.T) {
	assert := assert.New(t)

	lx, err := Compile([]Rule{
		{Pattern: `[ \t\n]+`, Token: ""},
		{Pattern: `[0-9]+`, Token: "int"},
		{Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`, Token: "id"},
	})
	assert.NoError(err)

	stream, err := lx.Lex([]byte("42 abc"))
	assert.NoError(err)

	tok := stream.Next()
	assert.Equal("int", tok.Class().ID())
	assert.Equal("42", tok.Lexeme())

	tok = stream.Next()
	assert.Equal("id", tok.Class().ID())
	assert.Equal("abc", tok.Lexeme())

	assert.False(stream.HasNext())
	tok = stream.Next()
	assert.Equal("$", tok.Class().ID())
}

func TestCompilePrefersEarlierDeclaredRuleOnTie(t *testing.T) {
	assert := assert.New(t)

	lx, err := Compile([]Rule{
		{Pattern: `if`, Token: "if"},
		{Pattern: `[a-z]+`, Token: "id"},
		{Pattern: `[ ]+`, Token: ""},
	})
	assert.NoError(err)

	stream, err := lx.Lex([]byte("if ifx"))
	assert.NoError(err)

	tok := stream.Next()
	assert.Equal("if", tok.Class().ID())

	tok = stream.Next()
	assert.Equal("id", tok.Class().ID())
	assert.Equal("ifx", tok.Lexeme())
}

func TestLexReturnsErrorOnUnmatchedInput(t *testing.T) {
	assert := assert.New(t)

	lx, err := Compile([]Rule{
		{Pattern: `[a-z]+`, Token: "id"},
	})
	assert.NoError(err)

	_, err = lx.Lex([]byte("abc!"))
	assert.Error(err)
}

func TestLexTracksLineAndColumn(t *testing.T) {
	assert := assert.New(t)

	lx, err := Compile([]Rule{
		{Pattern: `[ \t\n]+`, Token: ""},
		{Pattern: `[a-z]+`, Token: "id"},
	})
	assert.NoError(err)

	stream, err := lx.Lex([]byte("ab\ncd"))
	assert.NoError(err)

	tok := stream.Next()
	assert.Equal(1, tok.Line())

	tok = stream.Next()
	assert.Equal(2, tok.Line())
	assert.Equal(1, tok.LinePos())
}
