package specfile

import (
	"io"
	"strings"

	"github.com/gomarkdown/markdown"
	mkast "github.com/gomarkdown/markdown/ast"
	mkparser "github.com/gomarkdown/markdown/parser"
)

// fenceLang is the code-fence info string a spec author uses to mark a block
// as generator source, analogous to the teacher's own "fishi" fence tag.
const fenceLang = "lexigen"

type fenceScanner bool

func (fs fenceScanner) RenderNode(w io.Writer, node mkast.Node, entering bool) mkast.WalkStatus {
	if !entering {
		return mkast.GoToNext
	}
	block, ok := node.(*mkast.CodeBlock)
	if !ok || block == nil {
		return mkast.GoToNext
	}
	if strings.ToLower(strings.TrimSpace(string(block.Info))) == fenceLang {
		w.Write(block.Literal)
	}
	return mkast.GoToNext
}

func (fs fenceScanner) RenderHeader(w io.Writer, ast mkast.Node) {}
func (fs fenceScanner) RenderFooter(w io.Writer, ast mkast.Node) {}

// ExtractFromMarkdown concatenates the contents of every fenced code block
// tagged "lexigen" in mdText, in document order. A spec file may be authored
// as plain text or embedded this way inside prose documentation.
func ExtractFromMarkdown(mdText []byte) []byte {
	doc := markdown.Parse(mdText, mkparser.New())
	var scanner fenceScanner
	return markdown.Render(doc, scanner)
}

// LooksLikeMarkdown is a cheap heuristic: a spec file written as plain
// source starts with "[lexer]"; anything else is assumed to be markdown
// with embedded fenced blocks.
func LooksLikeMarkdown(src []byte) bool {
	return !strings.HasPrefix(strings.TrimSpace(string(src)), "[lexer]")
}
