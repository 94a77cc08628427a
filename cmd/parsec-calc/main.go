package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/schuko/tracing"
	"github.com/teris-io/cli"

	"github.com/latchfield/parsec"
	"github.com/latchfield/parsec/examples/calc"
	"github.com/latchfield/parsec/examples/common"
)

var description = strings.ReplaceAll(`
parsec-calc evaluates arithmetic expressions (+, -, *, /, unary minus,
parentheses) using the calc example grammar built on top of the parsec
combinator engine. Given an expression argument it evaluates once and
exits; with -i it starts an interactive read-eval-print loop instead.
`, "\n", " ")

var app = cli.New(description).
	WithArg(cli.NewArg("expression", "The expression to evaluate").AsOptional()).
	WithOption(cli.NewOption("i", "Start an interactive REPL instead of evaluating a single expression").
		WithType(cli.TypeBool)).
	WithOption(cli.NewOption("trace", "Trace level [Debug|Info|Error]").WithType(cli.TypeString)).
	WithAction(handler)

func handler(args []string, options map[string]string) int {
	if level, ok := options["trace"]; ok {
		parsec.SetTraceLevel(tracing.TraceLevelFromString(level))
	}

	if _, interactive := options["i"]; interactive {
		repl()
		return 0
	}

	if len(args) < 1 {
		fmt.Println("ERROR: an expression is required unless -i is given")
		return -1
	}

	if !evaluate(strings.Join(args, " ")) {
		return -1
	}
	return 0
}

func evaluate(input string) bool {
	c := parsec.NewCursor([]byte(input))
	res := parsec.Parse(c, calc.NewParser())
	if !res.Ok() {
		common.PrintError(res.Err, calc.TagString)
		return false
	}
	if !c.AtEOF() {
		fmt.Printf("ERROR: trailing input at line %d col %d\n", c.Line(), c.Col())
		return false
	}
	fmt.Println(calc.Eval(res.AST))
	return true
}

func repl() {
	rl, err := readline.New("calc> ")
	if err != nil {
		fmt.Printf("ERROR: unable to start REPL: %s\n", err)
		return
	}
	defer rl.Close()

	fmt.Println("parsec-calc interactive mode. Ctrl-D to quit.")
	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF on Ctrl-D, readline.ErrInterrupt on Ctrl-C
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		evaluate(line)
	}
}

func main() { os.Exit(app.Run(os.Args, os.Stdout)) }
