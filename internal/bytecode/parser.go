package bytecode

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/fatih/color"
)

var exprParser = participle.MustBuild[Expr](
	participle.Lexer(ArithLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

// ParseExpr parses one arithmetic expression from line.
func ParseExpr(line string) (*Expr, error) {
	expr, err := exprParser.ParseString("", line)
	if err != nil {
		reportParseError(line, err)
		return nil, err
	}
	return expr, nil
}

// reportParseError prints a caret-style parse error, matching the style the
// core language's CLI uses for its own diagnostics.
func reportParseError(src string, err error) {
	pe, ok := err.(participle.Error)
	if !ok {
		color.Red("unexpected error: %s", err)
		return
	}

	pos := pe.Position()
	lines := strings.Split(src, "\n")
	if pos.Line <= 0 || pos.Line > len(lines) {
		color.Red("syntax error at unknown location: %s", err)
		return
	}

	line := lines[pos.Line-1]
	caret := strings.Repeat(" ", pos.Column-1) + "^"

	color.Red("syntax error at line %d, column %d:", pos.Line, pos.Column)
	fmt.Println(line)
	color.HiRed(caret)
	fmt.Printf("-> %s\n", pe.Message())
}
