/*
Gen turns a lexigen spec file into a self-contained Go lexer and parser.

Usage:

	gen [flags] <spec-file> [out-dir]

The flags are:

	-o, --out DIR
		Directory the generated lexer.go/parser.go are written to. Defaults to
		the current directory, or the directory set in a .lexigen.toml
		settings file if one is found alongside the spec file.

	-p, --package NAME
		Package name given to the generated source. Defaults to "generated".

	-l, --lang NAME
		Target language for the generated source. Only "go" is implemented.

	-t, --trace
		Under "gen check", print parser trace lines (next token and
		state/lookahead/action) to stderr for every line parsed. On a
		generation run it only forces a live table build instead of using
		the .lgtab cache.

	--dump-tables
		Print the LALR(1) action/goto table to stdout and exit without
		writing any files.

	--no-cache
		Skip the .lgtab artifact cache; always recompute the grammar and
		tables even if the spec file is unchanged since the last run.

Once a spec file has been generated from, "gen check <spec-file>" starts an
interactive prompt: each line typed is lexed and parsed against the spec's
own grammar, and the resulting parse tree or syntax error is printed. This is
for exercising a grammar before wiring the generated parser into a real
program.
*/
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dekarrin/lexigen/internal/codegen"
	"github.com/dekarrin/lexigen/internal/icerrors"
	"github.com/dekarrin/lexigen/internal/lalr"
	"github.com/dekarrin/lexigen/internal/lexerrt"
	"github.com/dekarrin/lexigen/internal/specfile"
	"github.com/spf13/pflag"
)

const (
	// ExitSuccess indicates a successful generation run.
	ExitSuccess = iota

	// ExitSpecError indicates the spec file failed to load or validate.
	ExitSpecError

	// ExitGrammarError indicates the grammar is not LALR(1) as given.
	ExitGrammarError

	// ExitIOError indicates the generated source could not be written.
	ExitIOError

	// ExitUsageError indicates a bad flag or missing argument.
	ExitUsageError
)

var (
	returnCode int = ExitSuccess

	flagOut        *string = pflag.StringP("out", "o", "", "Directory the generated source is written to (default: current directory, or .lexigen.toml's out)")
	flagPackage    *string = pflag.StringP("package", "p", "", "Package name for the generated source (default: generated, or .lexigen.toml's package)")
	flagLang       *string = pflag.StringP("lang", "l", "", "Target language for the generated source (default: go, or .lexigen.toml's lang)")
	flagTrace      *bool   = pflag.BoolP("trace", "t", false, "Print parser trace lines to stderr while cross-checking the grammar")
	flagDumpTables *bool   = pflag.Bool("dump-tables", false, "Print the LALR(1) action/goto table and exit without writing files")
	flagNoCache    *bool   = pflag.Bool("no-cache", false, "Ignore the .lgtab artifact cache for this run")
)

func main() {
	defer func() { os.Exit(returnCode) }()

	pflag.Parse()
	args := pflag.Args()

	if len(args) >= 1 && args[0] == "check" {
		runCheck(args[1:])
		return
	}

	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "ERROR: missing spec file argument")
		returnCode = ExitUsageError
		return
	}
	specPath := args[0]

	settings := loadSettings(specPath)
	settings.applyFlags(*flagOut, *flagPackage, *flagLang)
	if len(args) >= 2 {
		settings.Out = args[1]
	}

	src, readErr := os.ReadFile(specPath)
	if readErr != nil {
		fmt.Fprintf(os.Stderr, "ERROR: reading %q: %s\n", specPath, readErr)
		returnCode = ExitIOError
		return
	}

	cachePath := cachePathFor(specPath)
	needsLiveTable := *flagDumpTables || *flagTrace

	var lexerSrc, parserSrc []byte

	if !*flagNoCache && !needsLiveTable {
		if entry, ok := readCacheEntry(cachePath, src); ok {
			lexerSrc, parserSrc = entry.LexerSrc, entry.ParserSrc
		}
	}

	if lexerSrc == nil {
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
			if diags, ok := buildErr.(icerrors.Diagnostics); ok {
				for _, d := range diags {
					fmt.Fprintln(os.Stderr, d.FullMessage())
				}
			} else {
				fmt.Fprintln(os.Stderr, "ERROR: "+buildErr.Error())
			}
			returnCode = ExitGrammarError
			return
		}

		if *flagTrace {
			reportConflicts(table)
		}
		if *flagDumpTables {
			fmt.Println(codegen.DumpTables(table))
			return
		}

		opts := codegen.Options{Package: settings.Package, Lang: settings.Lang}

		var err2 error
		lexerSrc, err2 = codegen.GenerateLexer(opts, lx)
		if err2 != nil {
			fmt.Fprintf(os.Stderr, "ERROR: generating lexer: %s\n", err2)
			returnCode = ExitIOError
			return
		}
		parserSrc, err2 = codegen.GenerateParser(opts, table)
		if err2 != nil {
			fmt.Fprintf(os.Stderr, "ERROR: generating parser: %s\n", err2)
			returnCode = ExitIOError
			return
		}

		if !*flagNoCache {
			writeCacheEntry(cachePath, src, lexerSrc, parserSrc)
		}
	}

	if err := os.MkdirAll(settings.Out, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: creating %q: %s\n", settings.Out, err)
		returnCode = ExitIOError
		return
	}
	if err := atomicWriteFile(filepath.Join(settings.Out, "lexer.go"), lexerSrc); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: writing lexer.go: %s\n", err)
		returnCode = ExitIOError
		return
	}
	if err := atomicWriteFile(filepath.Join(settings.Out, "parser.go"), parserSrc); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: writing parser.go: %s\n", err)
		returnCode = ExitIOError
		return
	}

	fmt.Printf("wrote %s and %s\n",
		filepath.Join(settings.Out, "lexer.go"),
		filepath.Join(settings.Out, "parser.go"))
}

func reportConflicts(table *lalr.Table) {
	for _, c := range table.Conflicts {
		fmt.Fprintln(os.Stderr, "TRACE: "+c.Error())
	}
}

