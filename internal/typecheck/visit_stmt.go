package typecheck

import (
	"toy/internal/ast"
	"toy/internal/errors"
)

// visitStmt type-checks one statement. For StmtExpr it returns the type of
// the wrapped expression (used by visitBlock to determine a block's overall
// type when the statement sits in tail position); every other kind returns
// Unit.
func (c *Checker) visitStmt(ref ast.StmtRef) ast.TypeDecl {
	st := c.program.Stmts.Get(ref)

	switch st.Kind {
	case ast.StmtExpr:
		if !st.HasExpr {
			return ast.UnitType()
		}
		return c.visitExpr(st.Expr)

	case ast.StmtVal:
		c.visitDecl(ref, st, false)
		return ast.UnitType()

	case ast.StmtVar:
		c.visitDecl(ref, st, true)
		return ast.UnitType()

	case ast.StmtReturn:
		c.visitReturn(ref, st)
		return ast.UnitType()

	case ast.StmtBreak, ast.StmtContinue:
		if c.loopDepth == 0 {
			kind := "break"
			if st.Kind == ast.StmtContinue {
				kind = "continue"
			}
			c.reportError(errors.GenericError(kind + " outside of a loop").WithLocation(c.stmtPos(ref)))
		}
		return ast.UnitType()

	case ast.StmtWhile:
		c.visitWhile(ref, st)
		return ast.UnitType()

	default:
		return ast.UnitType()
	}
}

func (c *Checker) visitWhile(ref ast.StmtRef, st ast.Stmt) {
	c.pushHint(ast.BoolType())
	condType := c.visitExpr(st.Cond)
	c.popHint()
	if condType.Kind != ast.TypeBool && condType.Kind != ast.TypeUnknown {
		c.reportError(errors.TypeMismatch(ast.BoolType(), condType).
			WithContext("while condition").WithLocation(c.stmtPos(ref)))
	}
	c.loopDepth++
	c.visitExpr(st.Body)
	c.loopDepth--
}

func (c *Checker) visitDecl(ref ast.StmtRef, st ast.Stmt, mutable bool) {
	if !mutable {
		if existing, ok := c.curScope.vars[st.Name]; ok && !existing.mutable {
			c.reportError(errors.GenericError("cannot redefine 'val' binding '" + c.name(st.Name) + "'").WithLocation(c.stmtPos(ref)))
		}
	}

	b := &binding{typ: ast.UnknownType(), mutable: mutable}

	if st.HasDeclared {
		b.typ = st.Declared
		c.pushHint(st.Declared)
		valueType := c.visitExpr(st.Value)
		c.popHint()
		if valueType.Kind == ast.TypeUnknown && isNumericType(st.Declared) {
			c.resolveOperand(st.Value, st.Declared)
		} else if valueType.Kind != ast.TypeUnknown && !c.typesCompatible(st.Declared, valueType) {
			c.reportError(errors.TypeMismatch(st.Declared, valueType).
				WithContext("declaration of " + c.name(st.Name)).WithLocation(c.stmtPos(ref)))
		}
	} else {
		c.pendingBindTarget = b
		valueType := c.visitExpr(st.Value)
		c.pendingBindTarget = nil
		if valueType.Kind != ast.TypeUnknown {
			b.typ = valueType
		}
	}

	// Store b itself (not a copy) so later numeric propagation
	// (forceVariableNumeric) can mutate the type in place.
	c.curScope.vars[st.Name] = b
}

func (c *Checker) visitReturn(ref ast.StmtRef, st ast.Stmt) {
	if !st.HasExpr {
		if c.returnType.Kind != ast.TypeUnit && c.returnType.Kind != ast.TypeUnknown {
			c.reportError(errors.TypeMismatch(c.returnType, ast.UnitType()).
				WithContext("return statement").WithLocation(c.stmtPos(ref)))
		}
		return
	}
	c.pushHint(c.returnType)
	valueType := c.visitExpr(st.Expr)
	c.popHint()
	if valueType.Kind == ast.TypeUnknown && isNumericType(c.returnType) {
		c.resolveOperand(st.Expr, c.returnType)
	} else if valueType.Kind != ast.TypeUnknown && !c.typesCompatible(c.returnType, valueType) {
		c.reportError(errors.TypeMismatch(c.returnType, valueType).
			WithContext("return statement").WithLocation(c.stmtPos(ref)))
	}
}

func (c *Checker) stmtPos(ref ast.StmtRef) ast.Position {
	pos, _ := c.program.Locations.Stmt(ref)
	return pos
}
