package ast

import (
	"fmt"
	"strings"
)

// PrintExpr renders expr (and its subtree) as a compact s-expression, for
// debugging.
func PrintExpr(p *Program, ref ExprRef) string {
	var b strings.Builder
	printExpr(&b, p, ref)
	return b.String()
}

func printExpr(b *strings.Builder, p *Program, ref ExprRef) {
	if ref == 0 {
		b.WriteString("<nil>")
		return
	}
	e := p.Exprs.Get(ref)
	switch e.Kind {
	case ExprNumber:
		fmt.Fprintf(b, "%d", e.IntValue)
	case ExprInt64:
		fmt.Fprintf(b, "%di64", e.IntValue)
	case ExprUInt64:
		fmt.Fprintf(b, "%du64", e.IntValue)
	case ExprBool:
		fmt.Fprintf(b, "%t", e.BoolValue)
	case ExprString:
		fmt.Fprintf(b, "%q", e.StringValue)
	case ExprNull:
		b.WriteString("null")
	case ExprIdent:
		b.WriteString(p.Interner.MustResolve(e.Name))
	case ExprBinary:
		b.WriteString("(")
		b.WriteString(e.Op)
		b.WriteString(" ")
		printExpr(b, p, e.Left)
		b.WriteString(" ")
		printExpr(b, p, e.Right)
		b.WriteString(")")
	case ExprUnary:
		b.WriteString("(")
		b.WriteString(e.Op)
		b.WriteString(" ")
		printExpr(b, p, e.Left)
		b.WriteString(")")
	case ExprAssign:
		b.WriteString("(= ")
		b.WriteString(p.Interner.MustResolve(e.Name))
		b.WriteString(" ")
		printExpr(b, p, e.AssignValue)
		b.WriteString(")")
	case ExprCall:
		b.WriteString("(call ")
		b.WriteString(p.Interner.MustResolve(e.Name))
		for _, a := range e.Args {
			b.WriteString(" ")
			printExpr(b, p, a)
		}
		b.WriteString(")")
	case ExprMethodCall:
		b.WriteString("(methodcall ")
		printExpr(b, p, e.Receiver)
		b.WriteString(".")
		b.WriteString(p.Interner.MustResolve(e.Name))
		for _, a := range e.Args {
			b.WriteString(" ")
			printExpr(b, p, a)
		}
		b.WriteString(")")
	case ExprFieldAccess:
		printExpr(b, p, e.Left)
		b.WriteString(".")
		b.WriteString(p.Interner.MustResolve(e.Name))
	case ExprArrayLit:
		b.WriteString("[")
		for i, el := range e.Elems {
			if i > 0 {
				b.WriteString(" ")
			}
			printExpr(b, p, el)
		}
		b.WriteString("]")
	case ExprIndex:
		printExpr(b, p, e.Left)
		b.WriteString("[")
		printExpr(b, p, e.Right)
		b.WriteString("]")
	case ExprStructLit:
		b.WriteString(p.Interner.MustResolve(e.Name))
		b.WriteString("{")
		for i, fn := range e.FieldNames {
			if i > 0 {
				b.WriteString(" ")
			}
			b.WriteString(p.Interner.MustResolve(fn))
			b.WriteString(": ")
			printExpr(b, p, e.FieldExprs[i])
		}
		b.WriteString("}")
	case ExprBlock:
		b.WriteString("{")
		for _, s := range e.Stmts {
			b.WriteString(" ")
			printStmt(b, p, s)
		}
		b.WriteString(" }")
	case ExprIf:
		b.WriteString("(if ")
		printExpr(b, p, e.Cond)
		b.WriteString(" ")
		printExpr(b, p, e.Then)
		for i, ec := range e.ElifConds {
			b.WriteString(" elif ")
			printExpr(b, p, ec)
			b.WriteString(" ")
			printExpr(b, p, e.ElifThens[i])
		}
		if e.HasElse {
			b.WriteString(" else ")
			printExpr(b, p, e.Else)
		}
		b.WriteString(")")
	case ExprFor:
		b.WriteString("(for ")
		b.WriteString(p.Interner.MustResolve(e.LoopVar))
		b.WriteString(" ")
		printExpr(b, p, e.RangeLo)
		b.WriteString(" ")
		printExpr(b, p, e.RangeHi)
		b.WriteString(" ")
		printExpr(b, p, e.LoopBody)
		b.WriteString(")")
	default:
		b.WriteString("<?>")
	}
}

func printStmt(b *strings.Builder, p *Program, ref StmtRef) {
	s := p.Stmts.Get(ref)
	switch s.Kind {
	case StmtExpr:
		printExpr(b, p, s.Expr)
	case StmtVal:
		b.WriteString("(val ")
		b.WriteString(p.Interner.MustResolve(s.Name))
		b.WriteString(" ")
		printExpr(b, p, s.Value)
		b.WriteString(")")
	case StmtVar:
		b.WriteString("(var ")
		b.WriteString(p.Interner.MustResolve(s.Name))
		b.WriteString(" ")
		printExpr(b, p, s.Value)
		b.WriteString(")")
	case StmtReturn:
		b.WriteString("(return")
		if s.HasExpr {
			b.WriteString(" ")
			printExpr(b, p, s.Expr)
		}
		b.WriteString(")")
	case StmtBreak:
		b.WriteString("(break)")
	case StmtContinue:
		b.WriteString("(continue)")
	case StmtWhile:
		b.WriteString("(while ")
		printExpr(b, p, s.Cond)
		b.WriteString(" ")
		printExpr(b, p, s.Body)
		b.WriteString(")")
	}
}
