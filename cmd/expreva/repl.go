package main

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/exprevalang/expreva/environment"
	"github.com/exprevalang/expreva/eval"
	"github.com/exprevalang/expreva/parser"
	"github.com/exprevalang/expreva/prettyprint"
)

// Color definitions for REPL output: blueColor decorates separators,
// yellowColor prints results, redColor prints errors, greenColor
// prints the banner, cyanColor prints instructions.
var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	greenColor  = color.New(color.FgGreen)
)

// Repl is an interactive Read-Eval-Print Loop session. All expressions
// it evaluates share one environment, a child of root, so bindings made
// by one line persist for the next.
type Repl struct {
	Banner  string
	Version string
	Author  string
	Line    string
	License string
	Prompt  string

	env *environment.Env
}

// NewRepl creates a new REPL instance, its own child scope of root so
// top-level `def`s persist across lines without mutating root itself.
func NewRepl(banner, version, author, line, license, prompt string, root *environment.Env) *Repl {
	return &Repl{
		Banner:  banner,
		Version: version,
		Author:  author,
		Line:    line,
		License: license,
		Prompt:  prompt,
		env:     environment.New(root),
	}
}

// PrintBannerInfo prints the welcome banner, version/license line, and
// usage instructions.
func (r *Repl) PrintBannerInfo(writer io.Writer) {
	blueColor.Fprintf(writer, "%s\n", r.Line)
	greenColor.Fprintf(writer, "%s\n", r.Banner)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	yellowColor.Fprintln(writer, "Version: "+r.Version+" | Author: "+r.Author+" | License: "+r.License)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	cyanColor.Fprintf(writer, "%s\n", "Welcome to expreva!")
	cyanColor.Fprintf(writer, "%s\n", "Type an expression and press enter")
	cyanColor.Fprintf(writer, "%s\n", "Type '.exit' to quit")
	cyanColor.Fprintf(writer, "%s\n", "Use up/down arrows to navigate command history")
	blueColor.Fprintf(writer, "%s\n", r.Line)
}

// Start runs the REPL loop to completion: prints the banner, reads
// lines via readline until EOF or '.exit', and evaluates each one
// against the session's persistent environment.
func (r *Repl) Start(reader io.Reader, writer io.Writer) {
	r.PrintBannerInfo(writer)

	rl, err := readline.New(r.Prompt)
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			writer.Write([]byte("Good bye!\n"))
			break
		}

		line = strings.Trim(line, " \n\t\r")
		if line == "" {
			continue
		}
		if line == ".exit" {
			writer.Write([]byte("Good bye!\n"))
			break
		}

		rl.SaveHistory(line)
		r.executeWithRecovery(writer, line)
	}
}

// executeWithRecovery parses and evaluates one line, displaying the
// result in yellow or an error in red, and recovering from any panic so
// one bad line never ends the session.
func (r *Repl) executeWithRecovery(writer io.Writer, line string) {
	defer func() {
		if recovered := recover(); recovered != nil {
			redColor.Fprintf(writer, "[RUNTIME ERROR] %v\n", recovered)
		}
	}()

	ast, err := parser.Parse(line)
	if err != nil {
		redColor.Fprintf(writer, "[PARSE ERROR] %v\n", err)
		return
	}

	result, err := eval.Evaluate(ast, r.env)
	if err != nil {
		redColor.Fprintf(writer, "[RUNTIME ERROR] %v\n", err)
		return
	}

	yellowColor.Fprintf(writer, "%s\n", prettyprint.Value(result))
}
