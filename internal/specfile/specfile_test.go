package specfile

import (
	"testing"

	"github.com/dekarrin/lexigen/internal/icerrors"
	"github.com/stretchr/testify/assert"
)

const sampleSpec = `
[lexer] expr {
	[capture] int = "[0-9]+";
	plus = "\+";
	[discard] ws = "[ \t\n]+";
}

[token] expr {
	int;
	plus;

	<left> {
		plus;
	}
}

[parser] expr {
	sum: [add] sum plus int(0)
	   | [id] int
	   ;
}
`

func TestLoadParsesSampleSpec(t *testing.T) {
	assert := assert.New(t)

	loaded, diags := Load([]byte(sampleSpec))
	assert.False(diags.HasErrors(), "unexpected diagnostics: %v", diags)
	assert.NotNil(loaded)
	if loaded == nil {
		return
	}

	assert.Equal("sum", loaded.Grammar.StartSymbol())
	assert.True(loaded.Grammar.IsTerminal("int"))
	assert.True(loaded.Grammar.IsTerminal("plus"))
	assert.Len(loaded.LexRules, 3)

	entry, ok := loaded.Grammar.Precedence("plus")
	assert.True(ok)
	assert.Equal(uint(1), entry.Priority)
}

func TestLoadFromMarkdownExtractsFencedBlock(t *testing.T) {
	assert := assert.New(t)

	md := "# Grammar\n\nSome prose.\n\n```lexigen\n" + sampleSpec + "\n```\n\nMore prose.\n"

	loaded, diags := Load([]byte(md))
	assert.False(diags.HasErrors(), "unexpected diagnostics: %v", diags)
	assert.NotNil(loaded)
}

func TestLoadReportsUnknownSymbolInRHS(t *testing.T) {
	assert := assert.New(t)

	src := `
[lexer] x {
	int = "[0-9]+";
}

[token] x {
	int;
}

[parser] x {
	start: [] int missing;
}
`
	loaded, diags := Load([]byte(src))
	assert.Nil(loaded)
	assert.True(diags.HasErrors())
}

func TestLoadReportsMissingActionForArgument(t *testing.T) {
	assert := assert.New(t)

	src := `
[lexer] x {
	int = "[0-9]+";
}

[token] x {
	int;
}

[parser] x {
	start: [] int(0);
}
`
	loaded, diags := Load([]byte(src))
	assert.Nil(loaded)
	assert.True(diags.HasErrors())
}

func TestLoadReportsUnusedRegex(t *testing.T) {
	assert := assert.New(t)

	src := `
[lexer] x {
	int = "[0-9]+";
	unused = "z";
}

[token] x {
	int;
}

[parser] x {
	start: [] int;
}
`
	_, diags := Load([]byte(src))
	assert.True(diags.HasErrors())

	var foundUnused bool
	for _, d := range diags {
		if d.Kind == icerrors.UnusedRegex {
			foundUnused = true
		}
	}
	assert.True(foundUnused)
}

func TestParseRejectsWrongBlockOrder(t *testing.T) {
	assert := assert.New(t)

	src := `
[token] x {
	int;
}

[lexer] x {
	int = "[0-9]+";
}

[parser] x {
	start: [] int;
}
`
	// fenced so that Load's markdown heuristic (plain source must start with
	// "[lexer]") hands the blocks to the parser instead of dropping them.
	_, diags := Load([]byte("```lexigen\n" + src + "```\n"))
	assert.True(diags.HasErrors())
}
