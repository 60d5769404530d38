package main

import (
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/dekarrin/lexigen/internal/lalr"
	"github.com/dekarrin/lexigen/internal/lexerrt"
	"github.com/dekarrin/lexigen/internal/specfile"
)

// runCheck implements "gen check <spec-file>": an interactive prompt that
// lexes and parses each line typed against the spec's own grammar, for
// exercising a grammar before generating anything from it.
func runCheck(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "ERROR: usage: gen check <spec-file>")
		returnCode = ExitUsageError
		return
	}
	specPath := args[0]

	src, err := os.ReadFile(specPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: reading %q: %s\n", specPath, err)
		returnCode = ExitIOError
		return
	}

	loaded, diags := specfile.Load(src)
	if diags.HasErrors() {
		for _, d := range diags {
			fmt.Fprintln(os.Stderr, d.FullMessage())
		}
		returnCode = ExitSpecError
		return
	}

	lx, err := lexerrt.Compile(loaded.LexRules)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: compiling lexer rules: %s\n", err)
		returnCode = ExitSpecError
		return
	}

	table, buildErr := lalr.BuildTable(loaded.Grammar)
	if buildErr != nil {
		fmt.Fprintln(os.Stderr, "ERROR: "+buildErr.Error())
		returnCode = ExitGrammarError
		return
	}

	rl, err := readline.NewEx(&readline.Config{Prompt: "gen check> "})
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: starting prompt: %s\n", err)
		returnCode = ExitIOError
		return
	}
	defer rl.Close()

	parser := lalr.NewParser(table)
	if *flagTrace {
		parser.RegisterTraceListener(func(s string) {
			fmt.Fprintln(os.Stderr, "TRACE: "+s)
		})
	}

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == io.EOF || err == readline.ErrInterrupt {
				return
			}
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
			return
		}
		if line == "" {
			continue
		}

		stream, lexErr := lx.Lex([]byte(line))
		if lexErr != nil {
			fmt.Fprintln(os.Stderr, lexErr.Error())
			continue
		}

		tree, parseErr := parser.Parse(stream)
		if parseErr != nil {
			fmt.Fprintln(os.Stderr, parseErr.Error())
			continue
		}
		fmt.Println(tree.String())
	}
}
