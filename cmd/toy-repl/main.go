// SPDX-License-Identifier: Apache-2.0
package main

import (
	"bufio"
	"fmt"
	"os"

	"toy/internal/bytecode"
)

const prompt = ">> "

func main() {
	scanner := bufio.NewScanner(os.Stdin)
	vm := bytecode.NewVM()

	fmt.Println("toy bytecode REPL — arithmetic expressions only")

	for {
		fmt.Print(prompt)
		if !scanner.Scan() {
			return
		}

		line := scanner.Text()
		if line == "" {
			continue
		}

		expr, err := bytecode.ParseExpr(line)
		if err != nil {
			continue
		}

		program := bytecode.NewCompiler().Compile(expr)
		fmt.Printf("bytecode: %v\n", program)
		if err := vm.Run(program); err != nil {
			fmt.Printf("error: %s\n", err)
			continue
		}

		top, ok := vm.Top()
		if !ok {
			continue
		}
		fmt.Println(top)
	}
}
