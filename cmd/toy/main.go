// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"toy/internal/ast"
	"toy/internal/errors"
	"toy/internal/eval"
	"toy/internal/parser"
	"toy/internal/typecheck"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: toy <file.toy>")
		os.Exit(1)
	}

	path := os.Args[1]
	source, err := os.ReadFile(path)
	if err != nil {
		color.Red("Failed to read file: %s", err)
		os.Exit(1)
	}

	reporter := errors.NewErrorReporter(path, string(source))

	program, parseErrs, scanErrs := parser.ParseSource(string(source))
	if len(scanErrs) > 0 || len(parseErrs) > 0 {
		for _, e := range scanErrs {
			printCompilerError(reporter, errors.CompilerError{
				Level:    errors.LevelError,
				Code:     errors.ErrorSyntax,
				Message:  e.Message,
				Position: positionOf(e.Line, e.Column),
			})
		}
		for _, e := range parseErrs {
			printCompilerError(reporter, errors.CompilerError{
				Level:    errors.LevelError,
				Code:     errors.ErrorSyntax,
				Message:  e.Message,
				Position: positionOf(e.Line, e.Column),
			})
		}
		os.Exit(1)
	}

	tcErrs := typecheck.New(program).CheckProgram()
	if len(tcErrs) > 0 {
		for _, e := range tcErrs {
			printCompilerError(reporter, e.ToCompilerError())
		}
		os.Exit(1)
	}

	result, err := eval.NewEvaluator(program).Run()
	if err != nil {
		color.Red("runtime error: %s", err)
		os.Exit(1)
	}

	fmt.Printf("Result: %s\n", result.String())
}

func printCompilerError(reporter *errors.ErrorReporter, ce errors.CompilerError) {
	fmt.Println(reporter.FormatError(ce))
}

func positionOf(line, column int) ast.Position {
	return ast.Position{Line: line, Column: column}
}
