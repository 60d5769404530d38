package specfile

import (
	"strconv"
	"strings"

	"github.com/dekarrin/lexigen/internal/grammar"
	"github.com/dekarrin/lexigen/internal/icerrors"
	"github.com/dekarrin/lexigen/internal/types"
)

// reader is the hand-written, not table-driven, reader for spec.md §6's
// grammar — the same kind of bootstrap reader the teacher's own
// CreateBootstrapGrammarFromLexerStream is: the generator's self-hosting
// step comes later, running the finished LALR core on this same grammar.
// Unlike that reader, a syntax error here returns an icerrors.Diagnostic
// instead of printing and panicking, per spec.md §7's "the core never
// aborts the process" policy.
type reader struct {
	stream types.TokenStream
	cur    types.Token
}

func newReader(stream types.TokenStream) *reader {
	r := &reader{stream: stream}
	r.advance()
	return r
}

func (r *reader) advance() {
	r.cur = r.stream.Next()
}

func (r *reader) is(class string) bool {
	return r.cur.Class().ID() == class
}

func (r *reader) errf(format string, args ...interface{}) error {
	return icerrors.At(icerrors.SpecSyntax, r.cur.Line(), r.cur.LinePos(), r.cur.FullLine(), format, args...)
}

func (r *reader) expect(class, human string) (types.Token, error) {
	if !r.is(class) {
		return nil, r.errf("expected %s, found %q", human, r.cur.Lexeme())
	}
	tok := r.cur
	r.advance()
	return tok, nil
}

// Parse consumes the entire token stream, returning the unvalidated
// declarations gathered from the three required blocks, in the order
// spec.md §6 requires: lexer_block token_block parser_block.
func Parse(stream types.TokenStream) (*Spec, error) {
	r := newReader(stream)
	spec := &Spec{}

	if err := r.parseLexerBlock(spec); err != nil {
		return nil, err
	}
	if err := r.parseTokenBlock(spec); err != nil {
		return nil, err
	}
	if err := r.parseParserBlock(spec); err != nil {
		return nil, err
	}

	if !r.is("$") {
		return nil, r.errf("unexpected trailing input %q after parser block", r.cur.Lexeme())
	}

	return spec, nil
}

// parseBlockHeader reads "[" IDENT "]" IDENT "{" and verifies the bracketed
// keyword matches want (case-insensitively), returning the declared
// namespace identifier.
func (r *reader) parseBlockHeader(want string) (string, error) {
	if _, err := r.expect(tokLBracket, "'['"); err != nil {
		return "", err
	}
	kw, err := r.expect(tokIdent, "block keyword")
	if err != nil {
		return "", err
	}
	if !strings.EqualFold(kw.Lexeme(), want) {
		return "", r.errf("expected %q block, found %q", want, kw.Lexeme())
	}
	if _, err := r.expect(tokRBracket, "']'"); err != nil {
		return "", err
	}
	ns, err := r.expect(tokIdent, "namespace identifier")
	if err != nil {
		return "", err
	}
	if _, err := r.expect(tokLBrace, "'{'"); err != nil {
		return "", err
	}
	return ns.Lexeme(), nil
}

func unquote(lexeme string) string {
	if len(lexeme) >= 2 {
		return lexeme[1 : len(lexeme)-1]
	}
	return lexeme
}

func (r *reader) parseLexerBlock(spec *Spec) error {
	ns, err := r.parseBlockHeader("lexer")
	if err != nil {
		return err
	}
	spec.LexerNamespace = ns

	for !r.is(tokRBrace) {
		rule, err := r.parseRegexRule()
		if err != nil {
			return err
		}
		spec.LexRules = append(spec.LexRules, rule)
	}
	r.advance() // consume '}'
	return nil
}

// parseRegexRule reads ("[" IDENT "]")? IDENT "=" STRING ";"?
func (r *reader) parseRegexRule() (lexRuleDecl, error) {
	var decl lexRuleDecl

	if r.is(tokLBracket) {
		r.advance()
		if r.is(tokIdent) {
			decl.Action = r.cur.Lexeme()
			r.advance()
		}
		if _, err := r.expect(tokRBracket, "']'"); err != nil {
			return decl, err
		}
	}

	name, err := r.expect(tokIdent, "token name")
	if err != nil {
		return decl, err
	}
	decl.Token = name.Lexeme()

	if _, err := r.expect(tokEq, "'='"); err != nil {
		return decl, err
	}

	pat, err := r.expect(tokString, "quoted regex pattern")
	if err != nil {
		return decl, err
	}
	decl.Pattern = unquote(pat.Lexeme())

	if r.is(tokSemi) {
		r.advance()
	}
	return decl, nil
}

func (r *reader) parseTokenBlock(spec *Spec) error {
	ns, err := r.parseBlockHeader("token")
	if err != nil {
		return err
	}
	spec.TokenNamespace = ns

	for !r.is(tokRBrace) {
		if r.is(tokLAngle) {
			prec, err := r.parsePrecBlock()
			if err != nil {
				return err
			}
			spec.Prec = append(spec.Prec, prec)
			continue
		}
		name, err := r.expect(tokIdent, "token name")
		if err != nil {
			return err
		}
		if r.is(tokSemi) {
			r.advance()
		}
		spec.Tokens = append(spec.Tokens, tokDecl{Name: name.Lexeme()})
	}
	r.advance() // consume '}'
	return nil
}

func (r *reader) parsePrecBlock() (precDecl, error) {
	var decl precDecl

	if _, err := r.expect(tokLAngle, "'<'"); err != nil {
		return decl, err
	}
	assocTok, err := r.expect(tokIdent, "associativity keyword")
	if err != nil {
		return decl, err
	}
	switch strings.ToLower(assocTok.Lexeme()) {
	case "left":
		decl.Assoc = grammar.AssocLeft
	case "right":
		decl.Assoc = grammar.AssocRight
	case "none":
		decl.Assoc = grammar.AssocNone
	default:
		return decl, r.errf("unknown associativity %q; expected left, right, or none", assocTok.Lexeme())
	}
	if _, err := r.expect(tokRAngle, "'>'"); err != nil {
		return decl, err
	}
	if _, err := r.expect(tokLBrace, "'{'"); err != nil {
		return decl, err
	}

	for !r.is(tokRBrace) {
		group, err := r.parseIdentList()
		if err != nil {
			return decl, err
		}
		decl.Groups = append(decl.Groups, group)
		if _, err := r.expect(tokSemi, "';'"); err != nil {
			return decl, err
		}
	}
	r.advance() // consume '}'
	return decl, nil
}

func (r *reader) parseIdentList() ([]string, error) {
	first, err := r.expect(tokIdent, "terminal name")
	if err != nil {
		return nil, err
	}
	list := []string{first.Lexeme()}
	for r.is(tokComma) {
		r.advance()
		next, err := r.expect(tokIdent, "terminal name")
		if err != nil {
			return nil, err
		}
		list = append(list, next.Lexeme())
	}
	return list, nil
}

func (r *reader) parseParserBlock(spec *Spec) error {
	ns, err := r.parseBlockHeader("parser")
	if err != nil {
		return err
	}
	spec.ParserNamespace = ns

	for !r.is(tokRBrace) {
		rule, err := r.parseRule()
		if err != nil {
			return err
		}
		spec.Rules = append(spec.Rules, rule)
	}
	r.advance() // consume '}'
	return nil
}

// parseRule reads IDENT ":" rhs ("|" rhs)* ";"
func (r *reader) parseRule() (ruleDecl, error) {
	var decl ruleDecl

	lhs, err := r.expect(tokIdent, "nonterminal name")
	if err != nil {
		return decl, err
	}
	decl.LHS = lhs.Lexeme()

	if _, err := r.expect(tokColon, "':'"); err != nil {
		return decl, err
	}

	rhs, err := r.parseRHS()
	if err != nil {
		return decl, err
	}
	decl.RHS = append(decl.RHS, rhs)

	for r.is(tokPipe) {
		r.advance()
		rhs, err := r.parseRHS()
		if err != nil {
			return decl, err
		}
		decl.RHS = append(decl.RHS, rhs)
	}

	if _, err := r.expect(tokSemi, "';'"); err != nil {
		return decl, err
	}
	return decl, nil
}

// parseRHS reads "[" IDENT? "]" ("<" IDENT ">")? (IDENT ("(" NUMBER ")")?)*
func (r *reader) parseRHS() (rhsDecl, error) {
	var decl rhsDecl

	if _, err := r.expect(tokLBracket, "'[' opening an RHS's action tag"); err != nil {
		return decl, err
	}
	if r.is(tokIdent) {
		decl.Action = r.cur.Lexeme()
		r.advance()
	}
	if _, err := r.expect(tokRBracket, "']'"); err != nil {
		return decl, err
	}

	if r.is(tokLAngle) {
		r.advance()
		tag, err := r.expect(tokIdent, "precedence tag terminal")
		if err != nil {
			return decl, err
		}
		decl.Tag = tag.Lexeme()
		if _, err := r.expect(tokRAngle, "'>'"); err != nil {
			return decl, err
		}
	}

	for r.is(tokIdent) {
		sym := r.cur.Lexeme()
		r.advance()
		decl.Symbols = append(decl.Symbols, sym)

		if r.is(tokLParen) {
			r.advance()
			numTok, err := r.expect(tokNumber, "argument index")
			if err != nil {
				return decl, err
			}
			n, convErr := strconv.Atoi(numTok.Lexeme())
			if convErr != nil {
				return decl, r.errf("malformed argument index %q", numTok.Lexeme())
			}
			if _, err := r.expect(tokRParen, "')'"); err != nil {
				return decl, err
			}
			if decl.ArgToElement == nil {
				decl.ArgToElement = map[int]int{}
			}
			decl.ArgToElement[n] = len(decl.Symbols) - 1
		}
	}

	if len(decl.Symbols) == 0 {
		decl.Symbols = []string{""} // epsilon production
	}

	return decl, nil
}
