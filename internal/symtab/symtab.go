// Package symtab interns terminal and nonterminal names to stable integer
// ids, per the data model's Symbol type: terminals get positive ids,
// nonterminals get negative ids, and a handful of sentinel ids are reserved
// for values that never come from user source.
package symtab

import (
	"fmt"
	"math"
)

// Reserved sentinel ids, per the data model.
const (
	Epsilon = 0
	EOS     = math.MaxInt32
	Dummy   = math.MaxInt32 - 1
)

// Symbol is an interned name paired with its assigned id.
type Symbol struct {
	Name string
	ID   int
}

// IsTerminal reports whether the symbol's id marks it as a terminal.
func (s Symbol) IsTerminal() bool {
	return s.ID >= 1 && s.ID != EOS && s.ID != Dummy
}

// IsNonterminal reports whether the symbol's id marks it as a nonterminal.
func (s Symbol) IsNonterminal() bool {
	return s.ID <= -1
}

// UnknownSymbolError is returned by Lookup when asked for a name that was
// never interned.
type UnknownSymbolError struct {
	Name string
}

func (e *UnknownSymbolError) Error() string {
	return fmt.Sprintf("unknown symbol: %q", e.Name)
}

// Table interns terminal and nonterminal names to ids. Create one with New;
// the zero value has no maps and panics on the first intern.
type Table struct {
	byName map[string]Symbol
	byID   map[int]string

	nextTerm    int
	nextNonterm int
}

// New returns a Table with the reserved sentinels already registered.
func New() *Table {
	t := &Table{
		byName:      map[string]Symbol{},
		byID:        map[int]string{},
		nextTerm:    1,
		nextNonterm: -1,
	}
	t.RegisterSentinel("$epsilon", Epsilon)
	t.RegisterSentinel("$", EOS)
	t.RegisterSentinel("$dummy", Dummy)
	return t
}

// RegisterSentinel binds name to a fixed id outside the normal monotonic
// counters, for the reserved ids epsilon/eos/dummy.
func (t *Table) RegisterSentinel(name string, id int) {
	t.byName[name] = Symbol{Name: name, ID: id}
	t.byID[id] = name
}

// InternTerminal interns name as a terminal if it is not already known,
// assigning it the next unused positive id, and returns the resulting
// Symbol. Interning the same name twice returns the same Symbol both times.
func (t *Table) InternTerminal(name string) Symbol {
	if sym, ok := t.byName[name]; ok {
		return sym
	}
	sym := Symbol{Name: name, ID: t.nextTerm}
	t.nextTerm++
	t.byName[name] = sym
	t.byID[sym.ID] = name
	return sym
}

// InternNonterminal interns name as a nonterminal if it is not already
// known, assigning it the next unused negative id, and returns the
// resulting Symbol.
func (t *Table) InternNonterminal(name string) Symbol {
	if sym, ok := t.byName[name]; ok {
		return sym
	}
	sym := Symbol{Name: name, ID: t.nextNonterm}
	t.nextNonterm--
	t.byName[name] = sym
	t.byID[sym.ID] = name
	return sym
}

// Lookup returns the Symbol interned under name, or an *UnknownSymbolError
// if name has never been interned.
func (t *Table) Lookup(name string) (Symbol, error) {
	sym, ok := t.byName[name]
	if !ok {
		return Symbol{}, &UnknownSymbolError{Name: name}
	}
	return sym, nil
}

// NameOf returns the name bound to id, and whether one was found.
func (t *Table) NameOf(id int) (string, bool) {
	name, ok := t.byID[id]
	return name, ok
}

// Len returns the number of interned names, sentinels included.
func (t *Table) Len() int {
	return len(t.byName)
}
