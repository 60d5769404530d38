// Package rgx parses the byte-level regex dialect spec.md §4.2 describes
// and compiles it to an NFA via Thompson construction (§4.3), picking up
// where the teacher's own abandoned RegexToNFA stub left off.
package rgx

import "fmt"

// NodeKind tags which variant of the regex AST a Node is.
type NodeKind int

const (
	Char NodeKind = iota
	AnyByte
	CharClass
	Concat
	Alt
	Star
	Plus
	Optional
	Repeat
	EndOfStream
	AfterNewline
	Group
	StringLiteral
)

// ClassItem is either a single byte (Lo == Hi) or an inclusive byte range
// within a character class.
type ClassItem struct {
	Lo, Hi byte
}

// Node is one node of the regex AST. Not every field is meaningful for
// every Kind; each field's comment names the Kinds that use it.
type Node struct {
	Kind NodeKind

	Byte byte // Char

	ClassItems []ClassItem // CharClass
	Negated    bool        // CharClass

	Left, Right *Node // Concat, Alt
	Inner       *Node // Star, Plus, Optional, Repeat, AfterNewline, Group

	RepeatMin       int  // Repeat
	RepeatMax       int  // Repeat, meaningful only if RepeatUnbounded is false
	RepeatUnbounded bool // Repeat

	Literal []byte // StringLiteral
}

func (n *Node) String() string {
	if n == nil {
		return "ε"
	}
	switch n.Kind {
	case Char:
		return fmt.Sprintf("%q", n.Byte)
	case AnyByte:
		return "."
	case CharClass:
		neg := ""
		if n.Negated {
			neg = "^"
		}
		return fmt.Sprintf("[%s%v]", neg, n.ClassItems)
	case Concat:
		return n.Left.String() + n.Right.String()
	case Alt:
		return "(" + n.Left.String() + "|" + n.Right.String() + ")"
	case Star:
		return "(" + n.Inner.String() + ")*"
	case Plus:
		return "(" + n.Inner.String() + ")+"
	case Optional:
		return "(" + n.Inner.String() + ")?"
	case Repeat:
		if n.RepeatUnbounded {
			return fmt.Sprintf("(%s){%d,}", n.Inner.String(), n.RepeatMin)
		}
		return fmt.Sprintf("(%s){%d,%d}", n.Inner.String(), n.RepeatMin, n.RepeatMax)
	case EndOfStream:
		return "$"
	case AfterNewline:
		return "^" + n.Inner.String()
	case Group:
		return "(" + n.Inner.String() + ")"
	case StringLiteral:
		return fmt.Sprintf("%q", string(n.Literal))
	default:
		return "?"
	}
}

// normalizeRange swaps lo/hi when lo > hi, per spec.md §3's "ranges with
// lo>hi are swapped" invariant.
func normalizeRange(lo, hi byte) (byte, byte) {
	if lo > hi {
		return hi, lo
	}
	return lo, hi
}
