package rgx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSimpleConcat(t *testing.T) {
	assert := assert.New(t)
	n, err := Parse(`ab`)
	assert.NoError(err)
	assert.Equal(Concat, n.Kind)
	assert.Equal(Char, n.Left.Kind)
	assert.Equal(byte('a'), n.Left.Byte)
	assert.Equal(Char, n.Right.Kind)
	assert.Equal(byte('b'), n.Right.Byte)
}

func TestParseAlternation(t *testing.T) {
	assert := assert.New(t)
	n, err := Parse(`a|b`)
	assert.NoError(err)
	assert.Equal(Alt, n.Kind)
}

func TestParseRepetitionOperators(t *testing.T) {
	assert := assert.New(t)

	n, err := Parse(`a*`)
	assert.NoError(err)
	assert.Equal(Star, n.Kind)

	n, err = Parse(`a+`)
	assert.NoError(err)
	assert.Equal(Plus, n.Kind)

	n, err = Parse(`a?`)
	assert.NoError(err)
	assert.Equal(Optional, n.Kind)
}

func TestParseBoundedRepeat(t *testing.T) {
	assert := assert.New(t)

	n, err := Parse(`a{3}`)
	assert.NoError(err)
	assert.Equal(Repeat, n.Kind)
	assert.Equal(3, n.RepeatMin)
	assert.Equal(3, n.RepeatMax)
	assert.False(n.RepeatUnbounded)

	n, err = Parse(`a{2,}`)
	assert.NoError(err)
	assert.Equal(2, n.RepeatMin)
	assert.True(n.RepeatUnbounded)

	n, err = Parse(`a{2,5}`)
	assert.NoError(err)
	assert.Equal(2, n.RepeatMin)
	assert.Equal(5, n.RepeatMax)
}

func TestParseBoundedRepeatRejectsInvertedBounds(t *testing.T) {
	assert := assert.New(t)
	_, err := Parse(`a{5,2}`)
	assert.Error(err)
}

func TestParseGroupAndClass(t *testing.T) {
	assert := assert.New(t)

	n, err := Parse(`(a|b)`)
	assert.NoError(err)
	assert.Equal(Group, n.Kind)

	n, err = Parse(`[a-z0-9]`)
	assert.NoError(err)
	assert.Equal(CharClass, n.Kind)
	assert.False(n.Negated)
	assert.Len(n.ClassItems, 2)

	n, err = Parse(`[^abc]`)
	assert.NoError(err)
	assert.True(n.Negated)
}

func TestParseClassAllowsLiteralCloseBracketFirst(t *testing.T) {
	assert := assert.New(t)
	n, err := Parse(`[]a]`)
	assert.NoError(err)
	assert.Equal(CharClass, n.Kind)
	assert.Contains(n.ClassItems, ClassItem{Lo: ']', Hi: ']'})
}

func TestParseEscapes(t *testing.T) {
	assert := assert.New(t)
	n, err := Parse(`\n`)
	assert.NoError(err)
	assert.Equal(Char, n.Kind)
	assert.Equal(byte('\n'), n.Byte)

	n, err = Parse(`\.`)
	assert.NoError(err)
	assert.Equal(byte('.'), n.Byte)
}

func TestParseEndOfStreamAndAnyByte(t *testing.T) {
	assert := assert.New(t)

	n, err := Parse(`$`)
	assert.NoError(err)
	assert.Equal(EndOfStream, n.Kind)

	n, err = Parse(`.`)
	assert.NoError(err)
	assert.Equal(AnyByte, n.Kind)
}

func TestParseAfterNewlineOnlyMeaningfulAtHead(t *testing.T) {
	assert := assert.New(t)
	n, err := Parse(`^abc`)
	assert.NoError(err)
	assert.Equal(AfterNewline, n.Kind)
	assert.Equal(Concat, n.Inner.Kind)
}

func TestParseStringLiteral(t *testing.T) {
	assert := assert.New(t)
	n, err := Parse(`"foo\nbar"`)
	assert.NoError(err)
	assert.Equal(StringLiteral, n.Kind)
	assert.Equal([]byte("foo\nbar"), n.Literal)
}

func TestParseRejectsUnmatchedParen(t *testing.T) {
	assert := assert.New(t)
	_, err := Parse(`(a|b`)
	assert.Error(err)
}

func TestParseRejectsUnmatchedBracket(t *testing.T) {
	assert := assert.New(t)
	_, err := Parse(`[abc`)
	assert.Error(err)
}

func TestParseRejectsEOSInsideClass(t *testing.T) {
	assert := assert.New(t)
	_, err := Parse(`[a$b]`)
	assert.Error(err)
}

func TestParseRejectsTrailingGarbage(t *testing.T) {
	assert := assert.New(t)
	_, err := Parse(`a)`)
	assert.Error(err)
}

func TestParseRejectsDanglingEscape(t *testing.T) {
	assert := assert.New(t)
	_, err := Parse(`a\`)
	assert.Error(err)
}
