// Package bytecode implements the arithmetic-only back-end used by the
// bytecode REPL: a participle grammar for `+ - * /` expressions over
// unsigned integers, a compiler that lowers the parse tree to a flat
// stack-machine program, and a VM that executes it.
package bytecode

import "github.com/alecthomas/participle/v2/lexer"

// ArithLexer tokenizes the small arithmetic-only language the bytecode
// REPL accepts: unsigned integers, `+ - * /`, and parentheses.
var ArithLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"Integer", `[0-9]+`, nil},
		{"Operator", `[-+*/]`, nil},
		{"Punctuation", `[()]`, nil},
		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})

// Expr is `Term (('+' | '-') Term)*`.
type Expr struct {
	Left *Term      `@@`
	Ops  []*OpTerm  `@@*`
}

type OpTerm struct {
	Op   string `@("+" | "-")`
	Term *Term  `@@`
}

// Term is `Factor (('*' | '/') Factor)*`, binding tighter than Expr so
// multiplication/division apply before addition/subtraction.
type Term struct {
	Left *Factor     `@@`
	Ops  []*OpFactor `@@*`
}

type OpFactor struct {
	Op     string  `@("*" | "/")`
	Factor *Factor `@@`
}

// Factor is either a literal integer or a parenthesized sub-expression.
type Factor struct {
	Number  *uint64 `  @Integer`
	SubExpr *Expr   `| "(" @@ ")"`
}
