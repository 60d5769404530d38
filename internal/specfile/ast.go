package specfile

import "github.com/dekarrin/lexigen/internal/grammar"

// lexRuleDecl is one parsed regex_rule: ("[" IDENT "]")? IDENT "=" STRING ";"?
// Action's reserved value "discard" marks a rule that matches and consumes
// input but is never emitted as a token (whitespace, comments); any other
// value (or "" for none) is an ordinary semantic action name.
type lexRuleDecl struct {
	Action  string
	Token   string
	Pattern string
}

// tokDecl is one parsed tok_stmt: a bare terminal declaration with no
// regex of its own (e.g. a synthetic token a hand-written action produces).
type tokDecl struct {
	Name string
}

// precDecl is one parsed prec_block: "<" IDENT ">" "{" (ident_list ";")* "}"
// Each group shares one priority level; groups within the same block are
// listed in ascending-priority order, per spec.md §3's precedence table.
type precDecl struct {
	Assoc  grammar.Assoc
	Groups [][]string
}

// rhsDecl is one parsed rhs: "[" IDENT? "]" ("<" IDENT ">")? (IDENT ("(" NUMBER ")")?)*
type rhsDecl struct {
	Action       string
	Tag          string
	Symbols      []string
	ArgToElement map[int]int
}

// ruleDecl is one parsed grammar rule: IDENT ":" rhs ("|" rhs)* ";"
type ruleDecl struct {
	LHS string
	RHS []rhsDecl
}

// Spec is the fully parsed, not-yet-validated contents of a spec file: the
// three declared namespaces plus the raw declarations gathered from each
// block, before cross-validation populates a grammar.Grammar.
type Spec struct {
	LexerNamespace  string
	TokenNamespace  string
	ParserNamespace string

	LexRules []lexRuleDecl
	Tokens   []tokDecl
	Prec     []precDecl
	Rules    []ruleDecl
}
