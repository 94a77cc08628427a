package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/teris-io/cli"

	"github.com/latchfield/parsec"
	"github.com/latchfield/parsec/examples/common"
	"github.com/latchfield/parsec/examples/json"
)

var description = strings.ReplaceAll(`
parsec-json parses a JSON document (a single file, or stdin when no file
is given) with the json example grammar and prints the resulting AST.
`, "\n", " ")

var app = cli.New(description).
	WithArg(cli.NewArg("file", "The JSON file to parse (reads stdin if omitted)").AsOptional()).
	WithOption(cli.NewOption("trace", "Trace level [Debug|Info|Error]").WithType(cli.TypeString)).
	WithAction(handler)

func handler(args []string, options map[string]string) int {
	if level, ok := options["trace"]; ok {
		parsec.SetTraceLevel(tracing.TraceLevelFromString(level))
	}

	var content []byte
	var err error
	if len(args) > 0 {
		content, err = os.ReadFile(args[0])
	} else {
		content, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		fmt.Printf("ERROR: unable to read input: %s\n", err)
		return -1
	}

	c := parsec.NewCursor(content)
	res := parsec.Parse(c, json.NewParser())
	if !res.Ok() {
		common.PrintError(res.Err, json.TagName)
		return -1
	}
	if !c.AtEOF() {
		fmt.Printf("ERROR: trailing input at line %d col %d\n", c.Line(), c.Col())
		return -1
	}

	common.PrintAST(res.AST, json.TagName)
	return 0
}

func main() { os.Exit(app.Run(os.Args, os.Stdout)) }
