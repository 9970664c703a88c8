// Command expreva is the CLI/REPL collaborator around the expreva
// language: a lexer/parser/evaluator module with no I/O of its own.
// It supports three modes of operation, flag layout mirrored from
// conneroisu/gix's main.go:
//
//	expreva                 start the interactive REPL
//	expreva -e EXPR         evaluate a single expression and print its result
//	expreva file.exa        evaluate a source file
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/exprevalang/expreva/environment"
	"github.com/exprevalang/expreva/eval"
	"github.com/exprevalang/expreva/parser"
	"github.com/exprevalang/expreva/prettyprint"
	"github.com/exprevalang/expreva/stdlib"
)

// VERSION is the current version of the expreva interpreter.
var VERSION = "v0.1.0"

// AUTHOR is shown in the REPL banner.
var AUTHOR = "the expreva project"

// LICENSE is the interpreter's software license.
var LICENSE = "MIT"

// PROMPT is the command prompt displayed in REPL mode.
var PROMPT = "expreva> "

// BANNER is the ASCII art logo shown when the REPL starts.
var BANNER = `
  ____ _  _ ____ ____ ____ _  _ ____
  |___  \/  |__/ |__/ |___  \/  |__|
  |___ _/\_ |  \ |  \ |___ _/\_ |  |
`

// LINE is a separator used for visual formatting in the REPL banner.
var LINE = "--------------------------------------------------------"

var (
	redColor  = color.New(color.FgRed)
	cyanColor = color.New(color.FgCyan)
)

func main() {
	var (
		expression  = flag.String("e", "", "evaluate EXPR and print its result")
		interactive = flag.Bool("i", false, "start the interactive REPL")
		help        = flag.Bool("h", false, "show this help")
	)
	flag.Parse()

	if *help {
		showHelp()
		return
	}

	switch {
	case *expression != "":
		evalExpression(*expression)
	case *interactive:
		startRepl()
	case flag.NArg() > 0:
		evalFile(flag.Arg(0))
	default:
		startRepl()
	}
}

func showHelp() {
	cyanColor.Println("expreva - an embeddable expression language")
	cyanColor.Println()
	cyanColor.Println("Usage:")
	fmt.Println("  expreva [options] [file]")
	fmt.Println()
	cyanColor.Println("Options:")
	fmt.Println("  -i          Interactive REPL mode")
	fmt.Println("  -e EXPR     Evaluate an expression")
	fmt.Println("  -h          Show this help")
	fmt.Println()
	cyanColor.Println("Examples:")
	fmt.Println(`  expreva -e "1 + 2"`)
	fmt.Println("  expreva -i")
	fmt.Println("  expreva program.exa")
}

// newRootEnv builds the process-wide root environment used by every
// mode: a fresh environment.Env with the standard bindings library
// registered into it.
func newRootEnv() *environment.Env {
	root := environment.NewRoot()
	stdlib.Register(root)
	return root
}

// evalExpression parses and evaluates a single expression string
// against a fresh root environment, printing the result or an error.
func evalExpression(src string) {
	root := newRootEnv()
	env := environment.New(root)

	ast, err := parser.Parse(src)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[PARSE ERROR] %v\n", err)
		os.Exit(1)
	}

	result, err := eval.Evaluate(ast, env)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[RUNTIME ERROR] %v\n", err)
		os.Exit(1)
	}

	fmt.Println(prettyprint.Value(result))
}

// evalFile reads and evaluates a source file, using the same pipeline
// as evalExpression.
func evalFile(filename string) {
	content, err := os.ReadFile(filename)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[FILE ERROR] could not read %q: %v\n", filename, err)
		os.Exit(1)
	}
	evalExpression(string(content))
}

// startRepl builds a root environment and launches the interactive
// Read-Eval-Print Loop.
func startRepl() {
	root := newRootEnv()
	r := NewRepl(BANNER, VERSION, AUTHOR, LINE, LICENSE, PROMPT, root)
	r.Start(os.Stdin, os.Stdout)
}
