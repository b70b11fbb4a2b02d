package typecheck

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"toy/internal/ast"
	"toy/internal/parser"
)

func checkSource(t *testing.T, src string) (*ast.Program, []error) {
	t.Helper()
	program, parseErrs, scanErrs := parser.ParseSource(src)
	assert.Empty(t, scanErrs)
	assert.Empty(t, parseErrs)

	c := New(program)
	tcErrs := c.CheckProgram()
	errs := make([]error, len(tcErrs))
	for i, e := range tcErrs {
		errs[i] = e
	}
	return program, errs
}

func TestNumberLiteralsEliminatedAfterCheck(t *testing.T) {
	program, errs := checkSource(t, `fn main() -> i64 { val x = 1 val y: i64 = 2 x + y }`)
	assert.Empty(t, errs)

	for i := 1; i < program.Exprs.Len(); i++ {
		assert.NotEqual(t, ast.ExprNumber, program.Exprs.Get(ast.ExprRef(i)).Kind,
			"no ExprNumber should survive finalization")
	}
}

func TestNumberInferredFromReturnType(t *testing.T) {
	program, errs := checkSource(t, `fn one() -> u64 { 1 }`)
	assert.Empty(t, errs)

	fn := program.FindFunction("one")
	body := program.Exprs.Get(fn.Body)
	last := body.Stmts[len(body.Stmts)-1]
	st := program.Stmts.Get(last)
	e := program.Exprs.Get(st.Expr)
	assert.Equal(t, ast.ExprUInt64, e.Kind)
}

func TestNumberInferredFromVariableLaterUse(t *testing.T) {
	_, errs := checkSource(t, `fn f() -> u64 { val x = 5 val y: u64 = 1 x + y }`)
	assert.Empty(t, errs)
}

func TestMismatchedReturnTypeReported(t *testing.T) {
	_, errs := checkSource(t, `fn f() -> bool { 1i64 }`)
	assert.NotEmpty(t, errs)
}

func TestIfConditionMustBeBool(t *testing.T) {
	_, errs := checkSource(t, `fn f() -> i64 { if 1i64 { 1 } else { 2 } }`)
	assert.NotEmpty(t, errs)
}

func TestUndefinedVariableReported(t *testing.T) {
	_, errs := checkSource(t, `fn f() -> i64 { missing }`)
	assert.NotEmpty(t, errs)
}

func TestAssignToValReported(t *testing.T) {
	_, errs := checkSource(t, `fn f() -> i64 { val x = 1 x = 2 x }`)
	assert.NotEmpty(t, errs)
}

func TestRedefiningValInSameScopeReported(t *testing.T) {
	_, errs := checkSource(t, `fn main() -> i64 { val a = 1 val a = 2 a }`)
	assert.NotEmpty(t, errs)
}

func TestShadowingValInChildScopeIsLegal(t *testing.T) {
	_, errs := checkSource(t, `fn main() -> i64 { val a = 1 val b = { val a = 2 a } a + b }`)
	assert.Empty(t, errs)
}

func TestNumberDefaultsToUInt64(t *testing.T) {
	program, errs := checkSource(t, `fn f() -> i64 { val a = 5 0 }`)
	assert.Empty(t, errs)

	fn := program.FindFunction("f")
	body := program.Exprs.Get(fn.Body)
	st := program.Stmts.Get(body.Stmts[0])
	e := program.Exprs.Get(st.Value)
	assert.Equal(t, ast.ExprUInt64, e.Kind)
}

func TestStringLenDefaultsToUInt64(t *testing.T) {
	_, errs := checkSource(t, `fn main() -> u64 { "abc".len() }`)
	assert.Empty(t, errs)
}

func TestFunctionReturnTypeInferredFromBody(t *testing.T) {
	_, errs := checkSource(t, `
		fn double(n: i64) { n * 2 }
		fn main() -> i64 { double(4) }`)
	assert.Empty(t, errs)
}

func TestAssignmentResultTypeIsLHSType(t *testing.T) {
	_, errs := checkSource(t, `fn main() -> u64 { var x = 100u64 x = x + 1u64 }`)
	assert.Empty(t, errs)
}

func TestWhileLoopConditionMustBeBool(t *testing.T) {
	_, errs := checkSource(t, `fn f() -> i64 { while 1i64 { break } 1 }`)
	assert.NotEmpty(t, errs)
}

func TestBreakOutsideLoopReported(t *testing.T) {
	_, errs := checkSource(t, `fn f() -> i64 { break }`)
	assert.NotEmpty(t, errs)
}

func TestElifBranchesUnifyTypes(t *testing.T) {
	_, errs := checkSource(t, `
		fn classify(n: i64) -> i64 {
			if n < 0 { 0 } elif n == 0 { 1 } elif n < 10 { 2 } else { 3 }
		}`)
	assert.Empty(t, errs)
}

func TestExprRefsStableAcrossRewrite(t *testing.T) {
	program, parseErrs, scanErrs := parser.ParseSource(`fn main() -> i64 { val x = 1 x }`)
	assert.Empty(t, scanErrs)
	assert.Empty(t, parseErrs)

	lenBefore := program.Exprs.Len()
	c := New(program)
	errs := c.CheckProgram()
	assert.Empty(t, errs)
	assert.Equal(t, lenBefore, program.Exprs.Len(), "rewrites must happen in place, never append")
}
