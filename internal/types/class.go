package types

import "strings"

// TokenClass identifies a terminal: the lexer assigns one to every token it
// emits, and the grammar names its terminals by the same IDs.
type TokenClass interface {
	// ID uniquely identifies the class within a grammar's terminal set.
	ID() string

	// Human is a human-readable name for use in diagnostics.
	Human() string

	Equal(o any) bool
}

type simpleTokenClass string

func (class simpleTokenClass) ID() string {
	return strings.ToLower(string(class))
}

func (class simpleTokenClass) Human() string {
	return string(class)
}

func (class simpleTokenClass) Equal(o any) bool {
	other, ok := o.(TokenClass)
	if !ok {
		otherPtr, ok := o.(*TokenClass)
		if !ok {
			return false
		}
		if otherPtr == nil {
			return false
		}
		other = *otherPtr
	}
	return other.ID() == class.ID()
}

const (
	TokenUndefined = simpleTokenClass("undefined_token")
	TokenEndOfStream = simpleTokenClass("$eos")
)

// MakeDefaultClass wraps s as a TokenClass whose ID is the lower-cased form
// of s and whose Human name is s unmodified.
func MakeDefaultClass(s string) TokenClass {
	return simpleTokenClass(s)
}
