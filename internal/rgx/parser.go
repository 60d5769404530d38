package rgx

import (
	"github.com/dekarrin/lexigen/internal/icerrors"
)

// escapeTable maps the single character following a backslash to the control
// byte it denotes; any other \x is literal x, per spec.md §4.2.
var escapeTable = map[byte]byte{
	'0': 0x00,
	'a': 0x07,
	'b': 0x08,
	't': 0x09,
	'n': 0x0A,
	'v': 0x0B,
	'f': 0x0C,
	'r': 0x0D,
}

type parser struct {
	src []byte
	pos int
}

func syntaxErr(pos int, format string, args ...interface{}) error {
	return icerrors.At(icerrors.RegexSyntax, 0, pos+1, "", format, args...)
}

// Parse parses a byte-level regex pattern into its AST, per spec.md §4.2.
func Parse(pattern string) (*Node, error) {
	p := &parser{src: []byte(pattern)}

	afterNewline := false
	if len(p.src) > 0 && p.src[0] == '^' {
		afterNewline = true
		p.pos = 1
	}

	node, err := p.parseAlt()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.src) {
		return nil, syntaxErr(p.pos, "unexpected %q", p.src[p.pos])
	}

	if afterNewline {
		node = &Node{Kind: AfterNewline, Inner: node}
	}
	return node, nil
}

func (p *parser) atEnd() bool { return p.pos >= len(p.src) }

func (p *parser) peek() byte {
	if p.atEnd() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) next() byte {
	b := p.src[p.pos]
	p.pos++
	return b
}

func (p *parser) parseAlt() (*Node, error) {
	left, err := p.parseConcat()
	if err != nil {
		return nil, err
	}
	for !p.atEnd() && p.peek() == '|' {
		p.next()
		right, err := p.parseConcat()
		if err != nil {
			return nil, err
		}
		left = &Node{Kind: Alt, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseConcat() (*Node, error) {
	var node *Node
	for !p.atEnd() && p.peek() != '|' && p.peek() != ')' {
		atom, err := p.parseRepeatExpr()
		if err != nil {
			return nil, err
		}
		if node == nil {
			node = atom
		} else {
			node = &Node{Kind: Concat, Left: node, Right: atom}
		}
	}
	return node, nil
}

func (p *parser) parseRepeatExpr() (*Node, error) {
	atom, err := p.parseAtom()
	if err != nil {
		return nil, err
	}

	for !p.atEnd() {
		switch p.peek() {
		case '*':
			p.next()
			atom = &Node{Kind: Star, Inner: atom}
		case '+':
			p.next()
			atom = &Node{Kind: Plus, Inner: atom}
		case '?':
			p.next()
			atom = &Node{Kind: Optional, Inner: atom}
		case '{':
			atom, err = p.parseBoundedRepeat(atom)
			if err != nil {
				return nil, err
			}
		default:
			return atom, nil
		}
	}
	return atom, nil
}

func (p *parser) parseBoundedRepeat(inner *Node) (*Node, error) {
	start := p.pos
	p.next() // consume '{'

	n, ok := p.readDigits()
	if !ok {
		return nil, syntaxErr(start, "malformed repeat bound: expected digits after '{'")
	}

	if p.atEnd() {
		return nil, syntaxErr(start, "unterminated repeat bound")
	}

	if p.peek() == '}' {
		p.next()
		return &Node{Kind: Repeat, Inner: inner, RepeatMin: n, RepeatMax: n}, nil
	}

	if p.peek() != ',' {
		return nil, syntaxErr(p.pos, "malformed repeat bound: expected ',' or '}'")
	}
	p.next()

	if p.peek() == '}' {
		p.next()
		return &Node{Kind: Repeat, Inner: inner, RepeatMin: n, RepeatUnbounded: true}, nil
	}

	m, ok := p.readDigits()
	if !ok {
		return nil, syntaxErr(p.pos, "malformed repeat bound: expected digits or '}' after ','")
	}
	if p.atEnd() || p.peek() != '}' {
		return nil, syntaxErr(p.pos, "unterminated repeat bound")
	}
	p.next()

	if m < n {
		return nil, syntaxErr(start, "repeat bound {%d,%d} has max less than min", n, m)
	}

	return &Node{Kind: Repeat, Inner: inner, RepeatMin: n, RepeatMax: m}, nil
}

func (p *parser) readDigits() (int, bool) {
	start := p.pos
	for !p.atEnd() && p.peek() >= '0' && p.peek() <= '9' {
		p.next()
	}
	if p.pos == start {
		return 0, false
	}
	n := 0
	for _, d := range p.src[start:p.pos] {
		n = n*10 + int(d-'0')
	}
	return n, true
}

func (p *parser) parseAtom() (*Node, error) {
	if p.atEnd() {
		return nil, syntaxErr(p.pos, "unexpected end of pattern")
	}

	c := p.next()
	switch c {
	case '(':
		inner, err := p.parseAlt()
		if err != nil {
			return nil, err
		}
		if p.atEnd() || p.peek() != ')' {
			return nil, syntaxErr(p.pos, "unmatched '('")
		}
		p.next()
		return &Node{Kind: Group, Inner: inner}, nil
	case ')':
		return nil, syntaxErr(p.pos-1, "unmatched ')'")
	case '.':
		return &Node{Kind: AnyByte}, nil
	case '$':
		return &Node{Kind: EndOfStream}, nil
	case '[':
		return p.parseClass()
	case '"':
		return p.parseStringLiteral()
	case '\\':
		b, err := p.parseEscape()
		if err != nil {
			return nil, err
		}
		return &Node{Kind: Char, Byte: b}, nil
	default:
		return &Node{Kind: Char, Byte: c}, nil
	}
}

func (p *parser) parseEscape() (byte, error) {
	if p.atEnd() {
		return 0, syntaxErr(p.pos, "dangling '\\' at end of pattern")
	}
	c := p.next()
	if mapped, ok := escapeTable[c]; ok {
		return mapped, nil
	}
	return c, nil
}

func (p *parser) parseClass() (*Node, error) {
	start := p.pos - 1
	node := &Node{Kind: CharClass}

	if !p.atEnd() && p.peek() == '^' {
		p.next()
		node.Negated = true
	}

	first := true
	for {
		if p.atEnd() {
			return nil, syntaxErr(start, "unmatched '['")
		}
		if p.peek() == ']' && !first {
			p.next()
			break
		}
		first = false

		lo, err := p.readClassByte()
		if err != nil {
			return nil, err
		}

		if !p.atEnd() && p.peek() == '-' {
			savedPos := p.pos
			p.next()
			if !p.atEnd() && p.peek() != ']' {
				hi, err := p.readClassByte()
				if err != nil {
					return nil, err
				}
				a, b := normalizeRange(lo, hi)
				node.ClassItems = append(node.ClassItems, ClassItem{Lo: a, Hi: b})
				continue
			}
			p.pos = savedPos
		}

		node.ClassItems = append(node.ClassItems, ClassItem{Lo: lo, Hi: lo})
	}

	return node, nil
}

// readClassByte reads one literal byte inside a character class, applying
// the same escape table as outside a class, but rejecting the reserved
// end-of-stream marker ('$' unescaped) since it denotes a pseudo-symbol,
// not a literal byte.
func (p *parser) readClassByte() (byte, error) {
	if p.atEnd() {
		return 0, syntaxErr(p.pos, "unmatched '['")
	}
	c := p.next()
	if c == '$' {
		return 0, syntaxErr(p.pos-1, "end-of-stream marker not allowed inside a character class")
	}
	if c == '\\' {
		return p.parseEscape()
	}
	return c, nil
}

func (p *parser) parseStringLiteral() (*Node, error) {
	start := p.pos - 1
	var lit []byte
	for {
		if p.atEnd() {
			return nil, syntaxErr(start, "unterminated string literal")
		}
		c := p.next()
		if c == '"' {
			return &Node{Kind: StringLiteral, Literal: lit}, nil
		}
		if c == '\\' {
			b, err := p.parseEscape()
			if err != nil {
				return nil, err
			}
			lit = append(lit, b)
			continue
		}
		lit = append(lit, c)
	}
}
