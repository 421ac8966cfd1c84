// Package replctl implements the interactive Read-Eval-Print Loop, built on
// the same readline/color stack and color-by-diagnostic-kind convention the
// teacher's repl package uses, running the full
// lexer -> parser -> resolver -> interpreter pipeline over each line.
package replctl

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/lox-lang/lox/ast"
	"github.com/lox-lang/lox/interp"
	"github.com/lox-lang/lox/lexer"
	"github.com/lox-lang/lox/parser"
	"github.com/lox-lang/lox/resolve"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl bundles the cosmetic configuration of an interactive session.
type Repl struct {
	Banner  string
	Version string
	Line    string
	Prompt  string
}

// NewRepl creates a Repl with the given banner, version, separator line, and
// prompt string.
func NewRepl(banner, version, line, prompt string) *Repl {
	return &Repl{Banner: banner, Version: version, Line: line, Prompt: prompt}
}

// PrintBannerInfo writes the startup banner and usage hints to writer.
func (r *Repl) PrintBannerInfo(writer io.Writer) {
	blueColor.Fprintf(writer, "%s\n", r.Line)
	greenColor.Fprintf(writer, "%s\n", r.Banner)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	yellowColor.Fprintln(writer, "Version: "+r.Version)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	cyanColor.Fprintf(writer, "%s\n", "Welcome to lox!")
	cyanColor.Fprintf(writer, "%s\n", "Type your code and press enter")
	cyanColor.Fprintf(writer, "%s\n", "Type '.exit' to quit")
	cyanColor.Fprintf(writer, "%s\n", "Use up/down arrows to navigate command history")
	blueColor.Fprintf(writer, "%s\n", r.Line)
}

// Start runs the REPL loop against writer for both program output and
// diagnostics, maintaining interpreter state (globals, defined functions
// and classes) across lines for the whole session.
func (r *Repl) Start(writer io.Writer) {
	r.PrintBannerInfo(writer)

	rl, err := readline.New(r.Prompt)
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	it := interp.New(writer)

	for {
		line, err := rl.Readline()
		if err != nil {
			writer.Write([]byte("Good Bye!\n"))
			break
		}

		line = strings.Trim(line, " \n\t\r")
		if line == "" {
			continue
		}
		if line == ".exit" {
			writer.Write([]byte("Good Bye!\n"))
			break
		}
		rl.SaveHistory(line)

		r.evalLine(writer, it, line)
	}
}

// evalLine runs one line of input through the full pipeline. Diagnostics at
// any stage are printed in red and the line is abandoned; a bare expression
// statement has its value echoed in yellow, nil included.
func (r *Repl) evalLine(writer io.Writer, it *interp.Interpreter, line string) {
	toks, lexErrs := lexer.New(line).ScanTokens()
	if len(lexErrs) > 0 {
		for _, e := range lexErrs {
			redColor.Fprintf(writer, "%s\n", e.Error())
		}
		return
	}

	stmts, parseErrs := parser.New(toks).ParseProgram()
	if len(parseErrs) > 0 {
		for _, e := range parseErrs {
			redColor.Fprintf(writer, "%s\n", e.Error())
		}
		return
	}

	locals, resolveErrs := resolve.New().Resolve(stmts)
	if len(resolveErrs) > 0 {
		for _, e := range resolveErrs {
			redColor.Fprintf(writer, "%s\n", e.Error())
		}
		return
	}
	for k, v := range locals {
		it.Locals[k] = v
	}

	if len(stmts) == 1 {
		if exprStmt, ok := stmts[0].(*ast.ExpressionStmt); ok {
			value, err := it.EvalExpression(exprStmt.Expression)
			if err != nil {
				redColor.Fprintf(writer, "%s\n", err.Error())
				return
			}
			yellowColor.Fprintf(writer, "%s\n", value.String())
			return
		}
	}

	if err := it.Interpret(stmts); err != nil {
		redColor.Fprintf(writer, "%s\n", err.Error())
	}
}
