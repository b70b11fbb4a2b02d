package bytecode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evalLine(t *testing.T, line string) uint64 {
	t.Helper()
	expr, err := ParseExpr(line)
	require.NoError(t, err)

	program := NewCompiler().Compile(expr)
	vm := NewVM()
	require.NoError(t, vm.Run(program))

	top, ok := vm.Top()
	require.True(t, ok)
	return top
}

func TestAddition(t *testing.T) {
	assert.Equal(t, uint64(7), evalLine(t, "3 + 4"))
}

func TestSubtraction(t *testing.T) {
	assert.Equal(t, uint64(1), evalLine(t, "5 - 4"))
}

func TestMultiplicationPrecedence(t *testing.T) {
	assert.Equal(t, uint64(14), evalLine(t, "2 + 3 * 4"))
}

func TestDivisionAndParens(t *testing.T) {
	assert.Equal(t, uint64(5), evalLine(t, "(2 + 8) / 2"))
}

func TestDivisionByZero(t *testing.T) {
	expr, err := ParseExpr("1 / 0")
	require.NoError(t, err)
	program := NewCompiler().Compile(expr)
	vm := NewVM()
	assert.Error(t, vm.Run(program))
}

func TestStackPersistsAcrossRuns(t *testing.T) {
	vm := NewVM()

	expr1, _ := ParseExpr("2 + 2")
	require.NoError(t, vm.Run(NewCompiler().Compile(expr1)))
	top, _ := vm.Top()
	assert.Equal(t, uint64(4), top)

	expr2, _ := ParseExpr("10")
	require.NoError(t, vm.Run(NewCompiler().Compile(expr2)))
	top, _ = vm.Top()
	assert.Equal(t, uint64(10), top)
}
