package symtab

import "testing"

func TestInternBijective(t *testing.T) {
	tab := New()

	a := tab.InternTerminal("INT")
	b := tab.InternTerminal("ID")
	c := tab.InternNonterminal("E")
	d := tab.InternNonterminal("T")

	if a.ID == b.ID || c.ID == d.ID {
		t.Fatalf("distinct names got same id: %+v %+v %+v %+v", a, b, c, d)
	}
	if !a.IsTerminal() || !b.IsTerminal() {
		t.Fatalf("expected terminal ids >= 1, got %d, %d", a.ID, b.ID)
	}
	if !c.IsNonterminal() || !d.IsNonterminal() {
		t.Fatalf("expected nonterminal ids <= -1, got %d, %d", c.ID, d.ID)
	}

	// re-interning the same name returns the same symbol
	again := tab.InternTerminal("INT")
	if again.ID != a.ID {
		t.Fatalf("re-interning INT changed id: %d != %d", again.ID, a.ID)
	}

	name, ok := tab.NameOf(a.ID)
	if !ok || name != "INT" {
		t.Fatalf("NameOf(%d) = %q, %v; want INT, true", a.ID, name, ok)
	}
}

func TestLookupUnknown(t *testing.T) {
	tab := New()
	tab.InternTerminal("INT")

	if _, err := tab.Lookup("INT"); err != nil {
		t.Fatalf("unexpected error looking up known symbol: %v", err)
	}

	if _, err := tab.Lookup("NOPE"); err == nil {
		t.Fatal("expected UnknownSymbolError, got nil")
	} else if _, ok := err.(*UnknownSymbolError); !ok {
		t.Fatalf("expected *UnknownSymbolError, got %T", err)
	}
}

func TestSentinels(t *testing.T) {
	tab := New()

	eps, err := tab.Lookup("$epsilon")
	if err != nil || eps.ID != Epsilon {
		t.Fatalf("epsilon sentinel not registered correctly: %+v, %v", eps, err)
	}

	eos, err := tab.Lookup("$")
	if err != nil || eos.ID != EOS {
		t.Fatalf("eos sentinel not registered correctly: %+v, %v", eos, err)
	}
}
