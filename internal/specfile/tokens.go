package specfile

import "github.com/dekarrin/lexigen/internal/lexerrt"

// Terminal names produced by the bootstrap lexer, the micro-language
// spec.md §6 sketches for the generator's own input file.
const (
	tokString   = "string"
	tokNumber   = "number"
	tokIdent    = "ident"
	tokLBracket = "lbracket"
	tokRBracket = "rbracket"
	tokLBrace   = "lbrace"
	tokRBrace   = "rbrace"
	tokEq       = "eq"
	tokSemi     = "semi"
	tokPipe     = "pipe"
	tokColon    = "colon"
	tokLAngle   = "langle"
	tokRAngle   = "rangle"
	tokComma    = "comma"
	tokLParen   = "lparen"
	tokRParen   = "rparen"
)

// bootstrapRules is the lexer rule set for spec.md §6's own grammar. It is
// compiled fresh per Load call via internal/lexerrt rather than cached,
// mirroring the teacher's CreateBootstrapLexer being called once per
// ProcessFishiMd invocation — construction is cheap relative to the rest of
// a generation run.
//
// The quoted-string rule deliberately does not support an escaped embedded
// quote (no `\"`): spec.md's own STRING terminal doesn't call for one, and
// it keeps this rule's pattern a plain character class instead of the
// escape-aware alternation a generated lexer would use internally.
func bootstrapRules() []lexerrt.Rule {
	return []lexerrt.Rule{
		{Pattern: `#[^\n]*`, Token: ""},
		{Pattern: `[ \t\r\n]+`, Token: ""},
		{Pattern: `["][^"]*["]`, Token: tokString},
		{Pattern: `[0-9]+`, Token: tokNumber},
		{Pattern: `[A-Za-z_][A-Za-z0-9_-]*`, Token: tokIdent},
		{Pattern: `\[`, Token: tokLBracket},
		{Pattern: `\]`, Token: tokRBracket},
		{Pattern: `\{`, Token: tokLBrace},
		{Pattern: `\}`, Token: tokRBrace},
		{Pattern: `=`, Token: tokEq},
		{Pattern: `;`, Token: tokSemi},
		{Pattern: `\|`, Token: tokPipe},
		{Pattern: `:`, Token: tokColon},
		{Pattern: `<`, Token: tokLAngle},
		{Pattern: `>`, Token: tokRAngle},
		{Pattern: `,`, Token: tokComma},
		{Pattern: `\(`, Token: tokLParen},
		{Pattern: `\)`, Token: tokRParen},
	}
}
