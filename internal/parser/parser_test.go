package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"toy/internal/ast"
)

func TestParseSimpleFunction(t *testing.T) {
	program, errs, scanErrs := ParseSource(`
		fn main() -> u64 {
			val a = 1u64
			val b = 2u64
			val c = a + b
			c
		}
	`)
	assert.Empty(t, errs)
	assert.Empty(t, scanErrs)
	assert.Len(t, program.Functions, 1)
	assert.Equal(t, "main", program.Interner.MustResolve(program.Functions[0].Name))
}

func TestParseAddPrecedenceOverMul(t *testing.T) {
	program, errs, _ := ParseSource(`fn main() -> i64 { 1i64 + 2i64 * 3i64 }`)
	assert.Empty(t, errs)
	body := program.Exprs.Get(program.Functions[0].Body)
	tail := program.Stmts.Get(body.Stmts[len(body.Stmts)-1])
	top := program.Exprs.Get(tail.Expr)
	assert.Equal(t, ast.ExprBinary, top.Kind)
	assert.Equal(t, "+", top.Op)
	right := program.Exprs.Get(top.Right)
	assert.Equal(t, ast.ExprBinary, right.Kind)
	assert.Equal(t, "*", right.Op)
}

func TestParseRelationalBelowEquality(t *testing.T) {
	program, errs, _ := ParseSource(`fn main() -> bool { 1i64 < 2i64 == true }`)
	assert.Empty(t, errs)
	body := program.Exprs.Get(program.Functions[0].Body)
	tail := program.Stmts.Get(body.Stmts[len(body.Stmts)-1])
	top := program.Exprs.Get(tail.Expr)
	assert.Equal(t, "==", top.Op)
}

func TestParseLogicalPrecedence(t *testing.T) {
	program, errs, _ := ParseSource(`fn main() -> bool { true || false && false }`)
	assert.Empty(t, errs)
	body := program.Exprs.Get(program.Functions[0].Body)
	tail := program.Stmts.Get(body.Stmts[len(body.Stmts)-1])
	top := program.Exprs.Get(tail.Expr)
	assert.Equal(t, "||", top.Op)
	right := program.Exprs.Get(top.Right)
	assert.Equal(t, "&&", right.Op)
}

func TestParseIdentExpr(t *testing.T) {
	program, errs, _ := ParseSource(`fn main() -> i64 { x }`)
	assert.Empty(t, errs)
	body := program.Exprs.Get(program.Functions[0].Body)
	tail := program.Stmts.Get(body.Stmts[0])
	id := program.Exprs.Get(tail.Expr)
	assert.Equal(t, ast.ExprIdent, id.Kind)
}

func TestParseEmptyAndNonEmptyCallArgs(t *testing.T) {
	program, errs, _ := ParseSource(`
		fn main() -> i64 {
			foo()
			bar(1i64, 2i64)
		}
	`)
	assert.Empty(t, errs)
	body := program.Exprs.Get(program.Functions[0].Body)
	call0 := program.Exprs.Get(program.Stmts.Get(body.Stmts[0]).Expr)
	assert.Equal(t, ast.ExprCall, call0.Kind)
	assert.Empty(t, call0.Args)

	call1 := program.Exprs.Get(program.Stmts.Get(body.Stmts[1]).Expr)
	assert.Equal(t, ast.ExprCall, call1.Kind)
	assert.Len(t, call1.Args, 2)
}

func TestParseNullLiteral(t *testing.T) {
	program, errs, _ := ParseSource(`fn main() -> i64 { null }`)
	assert.Empty(t, errs)
	body := program.Exprs.Get(program.Functions[0].Body)
	e := program.Exprs.Get(program.Stmts.Get(body.Stmts[0]).Expr)
	assert.Equal(t, ast.ExprNull, e.Kind)
}

func TestParseAssignment(t *testing.T) {
	program, errs, _ := ParseSource(`fn main() -> i64 { var x = 1i64 x = 2i64 }`)
	assert.Empty(t, errs)
	body := program.Exprs.Get(program.Functions[0].Body)
	assignStmt := program.Stmts.Get(body.Stmts[1])
	assignExpr := program.Exprs.Get(assignStmt.Expr)
	assert.Equal(t, ast.ExprAssign, assignExpr.Kind)
	assert.Equal(t, "x", program.Interner.MustResolve(assignExpr.Name))
}

func TestParseValDefWithAndWithoutType(t *testing.T) {
	program, errs, _ := ParseSource(`
		fn main() -> i64 {
			val a: i64 = 1i64
			val b = 2i64
			a + b
		}
	`)
	assert.Empty(t, errs)
	body := program.Exprs.Get(program.Functions[0].Body)
	withType := program.Stmts.Get(body.Stmts[0])
	assert.True(t, withType.HasDeclared)
	assert.Equal(t, ast.Int64Type(), withType.Declared)

	withoutType := program.Stmts.Get(body.Stmts[1])
	assert.False(t, withoutType.HasDeclared)
}

func TestParseForRangeLoop(t *testing.T) {
	program, errs, _ := ParseSource(`
		fn main() -> u64 {
			var a = 0u64
			for i in 0u64 to 4u64 {
				a = a + 1u64
			}
			a
		}
	`)
	assert.Empty(t, errs)
	body := program.Exprs.Get(program.Functions[0].Body)
	forStmt := program.Stmts.Get(body.Stmts[1])
	forExpr := program.Exprs.Get(forStmt.Expr)
	assert.Equal(t, ast.ExprFor, forExpr.Kind)
	assert.Equal(t, "i", program.Interner.MustResolve(forExpr.LoopVar))
}

func TestParseStructAndImpl(t *testing.T) {
	program, errs, _ := ParseSource(`
		struct Point { x: i64, y: i64 }
		impl Point {
			fn sum(self: Point) -> i64 {
				self.x + self.y
			}
		}
	`)
	assert.Empty(t, errs)
	assert.Len(t, program.Structs, 1)
	assert.Len(t, program.Impls, 1)
	assert.Len(t, program.Impls[0].Methods, 1)
}

func TestParseReportsSyntaxError(t *testing.T) {
	_, errs, _ := ParseSource(`fn main() -> i64 { 1i64 + }`)
	assert.NotEmpty(t, errs)
}
