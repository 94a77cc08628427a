package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/teris-io/cli"

	"github.com/latchfield/parsec"
	"github.com/latchfield/parsec/examples/common"
	"github.com/latchfield/parsec/examples/pascal"
)

var description = strings.ReplaceAll(`
parsec-pascal parses a single Pascal expression (the subset covering
or/xor/and, relational, range, additive, multiplicative, unary and
member-access precedence) and prints its AST. Set union (A + B on two
set literals) is rewritten during a post-processing pass, matching
original_source's post_process_set_operations.
`, "\n", " ")

var app = cli.New(description).
	WithArg(cli.NewArg("expression", "The expression to parse")).
	WithOption(cli.NewOption("trace", "Trace level [Debug|Info|Error]").WithType(cli.TypeString)).
	WithAction(handler)

func handler(args []string, options map[string]string) int {
	if level, ok := options["trace"]; ok {
		parsec.SetTraceLevel(tracing.TraceLevelFromString(level))
	}
	if len(args) < 1 {
		fmt.Println("ERROR: an expression is required")
		return -1
	}

	input := strings.Join(args, " ")
	c := parsec.NewCursor([]byte(input))
	res := parsec.Parse(c, pascal.NewParser())
	if !res.Ok() {
		common.PrintError(res.Err, pascal.TagName)
		return -1
	}
	if !c.AtEOF() {
		fmt.Printf("ERROR: trailing input at line %d col %d\n", c.Line(), c.Col())
		return -1
	}

	pascal.PostProcessSetOperations(res.AST)
	common.PrintAST(res.AST, pascal.TagName)
	return 0
}

func main() { os.Exit(app.Run(os.Args, os.Stdout)) }
