package lexerrt

import "github.com/dekarrin/lexigen/internal/automaton"

// ExportedTransition is one labeled edge in an exported DFA table. Byte is
// the edge's single raw input byte, except for the reserved end-of-stream
// edge, which is marked by EOS instead.
type ExportedTransition struct {
	EOS  bool
	Byte byte
	Next string
}

// ExportedState is one state of an exported, densely-numbered lexer DFA,
// shaped for a code generator to print as a Go table literal rather than
// for the runtime engine to drive directly.
type ExportedState struct {
	ID          string
	Accepting   bool
	Token       string
	Action      string
	Transitions []ExportedTransition
}

// Export renders the compiled DFA as a dense table: states numbered from
// "0" (the start state), transitions sorted by label, and the winning
// rule's token/action name attached to each accepting state. Export renumbers
// the Lexer's internal DFA as a side effect, so it should only be called
// once a Lexer is done being used for direct in-process Lex calls.
func (lx *Lexer) Export() (states []ExportedState, start string) {
	lx.dfa.NumberStates()

	for _, id := range lx.dfa.States() {
		st := ExportedState{ID: id, Accepting: lx.dfa.IsAccepting(id)}
		if st.Accepting {
			if t := lx.dfa.GetValue(id); t != nil {
				st.Token = t.token
				st.Action = t.action
			}
		}
		for _, tr := range lx.dfa.Transitions(id) {
			if automaton.IsEOSLabel(tr.Label) {
				st.Transitions = append(st.Transitions, ExportedTransition{EOS: true, Next: tr.Next})
				continue
			}
			st.Transitions = append(st.Transitions, ExportedTransition{Byte: tr.Label[0], Next: tr.Next})
		}
		states = append(states, st)
	}

	return states, lx.dfa.Start
}
