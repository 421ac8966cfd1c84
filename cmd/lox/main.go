// Command lox is the entry point for the interpreter: with no arguments it
// starts the interactive REPL, and with one file argument it runs that
// script once. Exit codes follow spec.md §6: 0 on success, 65 on a
// lex/parse/resolve error, 70 on a runtime error.
package main

import (
	"os"

	"github.com/fatih/color"

	"github.com/lox-lang/lox/interp"
	"github.com/lox-lang/lox/lexer"
	"github.com/lox-lang/lox/parser"
	"github.com/lox-lang/lox/replctl"
	"github.com/lox-lang/lox/resolve"
)

const (
	exitOK      = 0
	exitCompile = 65
	exitRuntime = 70
)

var (
	version = "v1.0.0"
	prompt  = "lox >>> "
	line    = "----------------------------------------------------------------"
	banner  = `
  _
 | | _____  __
 | |/ _ \ \/ /
 | | (_) >  <
 |_|\___/_/\_\
`
)

var redColor = color.New(color.FgRed)

func main() {
	if len(os.Args) > 1 {
		os.Exit(runFile(os.Args[1]))
	}

	repl := replctl.NewRepl(banner, version, line, prompt)
	repl.Start(os.Stdout)
}

// runFile reads, lexes, parses, resolves, and interprets a single script,
// returning the process exit code the pipeline's outcome maps to.
func runFile(path string) int {
	source, err := os.ReadFile(path)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[FILE ERROR] Could not read file '%s': %v\n", path, err)
		return exitCompile
	}

	toks, lexErrs := lexer.New(string(source)).ScanTokens()
	if len(lexErrs) > 0 {
		for _, e := range lexErrs {
			redColor.Fprintf(os.Stderr, "%s\n", e.Error())
		}
		return exitCompile
	}

	stmts, parseErrs := parser.New(toks).ParseProgram()
	if len(parseErrs) > 0 {
		for _, e := range parseErrs {
			redColor.Fprintf(os.Stderr, "%s\n", e.Error())
		}
		return exitCompile
	}

	locals, resolveErrs := resolve.New().Resolve(stmts)
	if len(resolveErrs) > 0 {
		for _, e := range resolveErrs {
			redColor.Fprintf(os.Stderr, "%s\n", e.Error())
		}
		return exitCompile
	}

	it := interp.New(os.Stdout)
	it.SetLocals(locals)
	if err := it.Interpret(stmts); err != nil {
		redColor.Fprintf(os.Stderr, "%s\n", err.Error())
		return exitRuntime
	}

	return exitOK
}
