package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toy/internal/parser"
	"toy/internal/typecheck"
)

func run(t *testing.T, src string) *Object {
	t.Helper()
	program, parseErrs, scanErrs := parser.ParseSource(src)
	require.Empty(t, scanErrs)
	require.Empty(t, parseErrs)

	tcErrs := typecheck.New(program).CheckProgram()
	require.Empty(t, tcErrs)

	result, err := NewEvaluator(program).Run()
	require.NoError(t, err)
	return result
}

func TestEvaluateArithmetic(t *testing.T) {
	result := run(t, `fn main() -> i64 { 2 + 3 * 4 }`)
	assert.Equal(t, int64(14), result.Int)
}

func TestEvaluateI64Basic(t *testing.T) {
	result := run(t, `fn main() -> i64 { val a = 10i64 val b = 3i64 a - b }`)
	assert.Equal(t, int64(7), result.Int)
}

func TestSimpleIfThenElseTrue(t *testing.T) {
	result := run(t, `fn main() -> i64 { if 1 < 2 { 1 } else { 2 } }`)
	assert.Equal(t, int64(1), result.Int)
}

func TestSimpleIfThenElseFalse(t *testing.T) {
	result := run(t, `fn main() -> i64 { if 2 < 1 { 1 } else { 2 } }`)
	assert.Equal(t, int64(2), result.Int)
}

func TestSimpleForLoopSum(t *testing.T) {
	result := run(t, `
		fn main() -> i64 {
			var total = 0
			for i in 0 to 5 {
				total = total + i
			}
			total
		}`)
	assert.Equal(t, int64(0+1+2+3+4), result.Int)
}

func TestSimpleForLoopBreak(t *testing.T) {
	result := run(t, `
		fn main() -> i64 {
			var total = 0
			for i in 0 to 100 {
				if i == 3 { break }
				total = total + 1
			}
			total
		}`)
	assert.Equal(t, int64(3), result.Int)
}

func TestSimpleForLoopContinue(t *testing.T) {
	result := run(t, `
		fn main() -> i64 {
			var total = 0
			for i in 0 to 5 {
				if i == 2 { continue }
				total = total + 1
			}
			total
		}`)
	assert.Equal(t, int64(4), result.Int)
}

func TestVariableScopeShadowing(t *testing.T) {
	result := run(t, `
		fn main() -> i64 {
			val x = 1
			val y = { val x = 2 x }
			x + y
		}`)
	assert.Equal(t, int64(3), result.Int)
}

func TestFunctionCall(t *testing.T) {
	result := run(t, `
		fn add(a: i64, b: i64) -> i64 { a + b }
		fn main() -> i64 { add(2, 3) }`)
	assert.Equal(t, int64(5), result.Int)
}

func TestRecursiveFibonacci(t *testing.T) {
	result := run(t, `
		fn fib(n: i64) -> i64 {
			if n <= 1 { n } else { fib(n - 1) + fib(n - 2) }
		}
		fn main() -> i64 { fib(10) }`)
	assert.Equal(t, int64(55), result.Int)
}

func TestLogicalOperators(t *testing.T) {
	result := run(t, `fn main() -> bool { true && (1 < 2) || false }`)
	assert.Equal(t, true, result.Bool)
}

func TestUnsignedArithmetic(t *testing.T) {
	result := run(t, `fn main() -> u64 { val a = 7u64 val b = 2u64 a / b }`)
	assert.Equal(t, uint64(3), result.UInt)
}

func TestFunctionEndingInAssignmentReturnsLHSValue(t *testing.T) {
	result := run(t, `
		fn main() -> u64 {
			var x = 100u64
			{ var x = 10u64 x = x + 1000u64 }
			x = x + 1u64
		}`)
	assert.Equal(t, uint64(101), result.UInt)
}

func TestWhileLoopSum(t *testing.T) {
	result := run(t, `
		fn main() -> i64 {
			var total = 0
			var i = 0
			while i < 5 {
				total = total + i
				i = i + 1
			}
			total
		}`)
	assert.Equal(t, int64(0+1+2+3+4), result.Int)
}

func TestWhileLoopBreak(t *testing.T) {
	result := run(t, `
		fn main() -> i64 {
			var total = 0
			var i = 0
			while i < 100 {
				if i == 3 { break }
				total = total + 1
				i = i + 1
			}
			total
		}`)
	assert.Equal(t, int64(3), result.Int)
}

func TestWhileLoopContinue(t *testing.T) {
	result := run(t, `
		fn main() -> i64 {
			var total = 0
			var i = 0
			while i < 5 {
				i = i + 1
				if i == 2 { continue }
				total = total + 1
			}
			total
		}`)
	assert.Equal(t, int64(4), result.Int)
}

func TestElifChainPicksMatchingBranch(t *testing.T) {
	result := run(t, `
		fn classify(n: i64) -> i64 {
			if n < 0 { 0 } elif n == 0 { 1 } elif n < 10 { 2 } else { 3 }
		}
		fn main() -> i64 { classify(5) }`)
	assert.Equal(t, int64(2), result.Int)
}

func TestRedefiningValAtRuntimeErrors(t *testing.T) {
	program, parseErrs, scanErrs := parser.ParseSource(`fn main() -> i64 { val a = 1 val a = 2 a }`)
	require.Empty(t, scanErrs)
	require.Empty(t, parseErrs)

	_, err := NewEvaluator(program).Run()
	require.Error(t, err)
}
