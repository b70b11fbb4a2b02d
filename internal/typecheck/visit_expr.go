package typecheck

import (
	"toy/internal/ast"
	"toy/internal/errors"
)

// visitExpr type-checks ref and returns its resolved type. Number literals
// that cannot yet be pinned to Int64/UInt64 come back as TypeUnknown and
// are queued for later resolution (see numbers.go).
func (c *Checker) visitExpr(ref ast.ExprRef) ast.TypeDecl {
	if t, ok := c.typeCache[ref]; ok {
		return t
	}
	e := c.program.Exprs.Get(ref)

	var result ast.TypeDecl
	switch e.Kind {
	case ast.ExprNumber:
		hint, ok := c.currentHint()
		if !ok || !isNumericType(hint) {
			hint = ast.UnknownType()
		}
		bindTo := c.pendingBindTarget
		c.pendingBindTarget = nil
		result = c.resolveNumber(ref, hint, bindTo)

	case ast.ExprInt64:
		result = ast.Int64Type()
	case ast.ExprUInt64:
		result = ast.UInt64Type()
	case ast.ExprBool:
		result = ast.BoolType()
	case ast.ExprString:
		result = ast.StringType()
	case ast.ExprNull:
		result = ast.TypeDecl{Kind: ast.TypeNull}

	case ast.ExprIdent:
		result = c.visitIdent(ref, e)

	case ast.ExprBinary:
		result = c.visitBinary(ref, e)

	case ast.ExprUnary:
		result = c.visitUnary(ref, e)

	case ast.ExprAssign:
		result = c.visitAssign(ref, e)

	case ast.ExprCall:
		result = c.visitCall(ref, e)

	case ast.ExprMethodCall:
		result = c.visitMethodCall(ref, e)

	case ast.ExprFieldAccess:
		result = c.visitFieldAccess(ref, e)

	case ast.ExprArrayLit:
		result = c.visitArrayLit(ref, e)

	case ast.ExprIndex:
		result = c.visitIndex(ref, e)

	case ast.ExprStructLit:
		result = c.visitStructLit(ref, e)

	case ast.ExprBlock:
		result = c.visitBlock(e)

	case ast.ExprIf:
		result = c.visitIf(ref, e)

	case ast.ExprFor:
		result = c.visitFor(e)

	default:
		result = ast.UnknownType()
	}

	if result.Kind != ast.TypeUnknown {
		c.typeCache[ref] = result
	}
	return result
}

func (c *Checker) visitIdent(ref ast.ExprRef, e ast.Expr) ast.TypeDecl {
	b, ok := c.curScope.lookup(e.Name)
	if !ok {
		c.reportError(errors.NotFound("variable", c.name(e.Name)).WithLocation(c.posOf(ref)))
		return ast.UnknownType()
	}
	return b.typ
}

// operandBinding returns the scope binding that backs ref when ref is a bare
// identifier, so a numeric use elsewhere can force its still-unresolved type.
func (c *Checker) operandBinding(ref ast.ExprRef) *binding {
	e := c.program.Exprs.Get(ref)
	if e.Kind != ast.ExprIdent {
		return nil
	}
	b, _ := c.curScope.lookup(e.Name)
	return b
}

func (c *Checker) resolveOperand(ref ast.ExprRef, target ast.TypeDecl) {
	if b := c.operandBinding(ref); b != nil {
		c.forceVariableNumeric(b, target)
		return
	}
	c.forceNumeric(ref, target)
}

func isComparisonOp(op string) bool {
	switch op {
	case "<", "<=", ">", ">=", "==", "!=":
		return true
	}
	return false
}

func isLogicalOp(op string) bool {
	return op == "&&" || op == "||"
}

func (c *Checker) visitBinary(ref ast.ExprRef, e ast.Expr) ast.TypeDecl {
	leftType := c.visitExpr(e.Left)

	var rightType ast.TypeDecl
	if isNumericType(leftType) {
		c.pushHint(leftType)
		rightType = c.visitExpr(e.Right)
		c.popHint()
	} else {
		rightType = c.visitExpr(e.Right)
	}

	if leftType.Kind == ast.TypeUnknown && isNumericType(rightType) {
		c.resolveOperand(e.Left, rightType)
		leftType = rightType
	} else if rightType.Kind == ast.TypeUnknown && isNumericType(leftType) {
		c.resolveOperand(e.Right, leftType)
		rightType = leftType
	}

	switch {
	case isLogicalOp(e.Op):
		if leftType.Kind != ast.TypeBool || rightType.Kind != ast.TypeBool {
			c.reportError(errors.TypeMismatchOperation(e.Op, leftType, rightType).WithLocation(c.posOf(ref)))
		}
		return ast.BoolType()

	case isComparisonOp(e.Op):
		if !c.typesCompatible(leftType, rightType) {
			c.reportError(errors.TypeMismatchOperation(e.Op, leftType, rightType).WithLocation(c.posOf(ref)))
		}
		return ast.BoolType()

	default: // arithmetic: + - * /
		if leftType.Kind == ast.TypeUnknown || rightType.Kind == ast.TypeUnknown {
			return ast.UnknownType()
		}
		if leftType.Kind == ast.TypeString && rightType.Kind == ast.TypeString && e.Op == "+" {
			return ast.StringType()
		}
		if !isNumericType(leftType) || !c.typesCompatible(leftType, rightType) {
			c.reportError(errors.TypeMismatchOperation(e.Op, leftType, rightType).WithLocation(c.posOf(ref)))
			return leftType
		}
		return leftType
	}
}

func (c *Checker) visitUnary(ref ast.ExprRef, e ast.Expr) ast.TypeDecl {
	operandType := c.visitExpr(e.Left)
	switch e.Op {
	case "!":
		if operandType.Kind != ast.TypeBool && operandType.Kind != ast.TypeUnknown {
			c.reportError(errors.UnsupportedOperation("!", operandType).WithLocation(c.posOf(ref)))
		}
		return ast.BoolType()
	case "-":
		if operandType.Kind == ast.TypeUnknown {
			c.resolveOperand(e.Left, ast.Int64Type())
			return ast.Int64Type()
		}
		if !isNumericType(operandType) {
			c.reportError(errors.UnsupportedOperation("-", operandType).WithLocation(c.posOf(ref)))
		}
		return operandType
	default:
		return operandType
	}
}

func (c *Checker) visitAssign(ref ast.ExprRef, e ast.Expr) ast.TypeDecl {
	b, ok := c.curScope.lookup(e.Name)
	if !ok {
		c.reportError(errors.NotFound("variable", c.name(e.Name)).WithLocation(c.posOf(ref)))
		c.visitExpr(e.AssignValue)
		return ast.UnknownType()
	}
	if !b.mutable {
		c.reportError(errors.GenericError("cannot assign to immutable binding '" + c.name(e.Name) + "'").WithLocation(c.posOf(ref)))
	}

	if b.typ.Kind != ast.TypeUnknown {
		c.pushHint(b.typ)
	}
	valueType := c.visitExpr(e.AssignValue)
	if b.typ.Kind != ast.TypeUnknown {
		c.popHint()
	}

	if b.typ.Kind == ast.TypeUnknown && isNumericType(valueType) {
		c.forceVariableNumeric(b, valueType)
	} else if valueType.Kind == ast.TypeUnknown && isNumericType(b.typ) {
		c.resolveOperand(e.AssignValue, b.typ)
	} else if b.typ.Kind != ast.TypeUnknown && valueType.Kind != ast.TypeUnknown && !c.typesCompatible(b.typ, valueType) {
		c.reportError(errors.TypeMismatch(b.typ, valueType).WithLocation(c.posOf(ref)))
	}
	return b.typ
}

func (c *Checker) visitCall(ref ast.ExprRef, e ast.Expr) ast.TypeDecl {
	sig, ok := c.funcs[e.Name]
	if !ok {
		c.reportError(errors.NotFound("function", c.name(e.Name)).WithLocation(c.posOf(ref)))
		for _, a := range e.Args {
			c.visitExpr(a)
		}
		return ast.UnknownType()
	}

	// A callee with no declared return type has its signature's ret field
	// finalized only once CheckFunction actually runs its body. If that
	// hasn't happened yet (forward reference, or a function never reached
	// from CheckProgram's own top-level loop), check it now so the call
	// site sees the inferred type instead of the Unit placeholder.
	if c.funcStatus[e.Name] == notStarted {
		if decl, ok := c.funcDecls[e.Name]; ok && !decl.HasReturnType {
			c.checkCalleeInSavedState(decl)
			sig = c.funcs[e.Name]
		}
	}
	ret := sig.ret
	// A call back into a function whose body is still being checked (direct
	// or mutual recursion) goes through CheckFunction's in-progress guard,
	// which yields Unknown while that function's return type is inferred.
	if c.funcStatus[e.Name] == inProgress {
		if decl, ok := c.funcDecls[e.Name]; ok && !decl.HasReturnType {
			ret = c.CheckFunction(decl)
		}
	}

	for i, a := range e.Args {
		if i < len(sig.params) {
			c.pushHint(sig.params[i])
			argType := c.visitExpr(a)
			c.popHint()
			if argType.Kind == ast.TypeUnknown && isNumericType(sig.params[i]) {
				c.resolveOperand(a, sig.params[i])
			} else if argType.Kind != ast.TypeUnknown && !c.typesCompatible(sig.params[i], argType) {
				c.reportError(errors.TypeMismatch(sig.params[i], argType).
					WithContext("call to " + c.name(e.Name)).WithLocation(c.posOf(ref)))
			}
		} else {
			c.visitExpr(a)
		}
	}
	if len(e.Args) != len(sig.params) {
		c.reportError(errors.GenericError("wrong number of arguments to '" + c.name(e.Name) + "'").WithLocation(c.posOf(ref)))
	}
	return ret
}

func (c *Checker) visitMethodCall(ref ast.ExprRef, e ast.Expr) ast.TypeDecl {
	recvType := c.visitExpr(e.Receiver)
	methodName := c.name(e.Name)

	if recvType.Kind == ast.TypeArray || recvType.Kind == ast.TypeString {
		switch methodName {
		case "len":
			return ast.UInt64Type()
		}
	}

	if recvType.Kind != ast.TypeStruct {
		c.reportError(errors.MethodError(methodName, recvType, "receiver is not a struct").WithLocation(c.posOf(ref)))
		for _, a := range e.Args {
			c.visitExpr(a)
		}
		return ast.UnknownType()
	}

	set, ok := c.methods[recvType.Name]
	if !ok {
		c.reportError(errors.MethodError(methodName, recvType, "type has no methods").WithLocation(c.posOf(ref)))
		return ast.UnknownType()
	}
	sig, ok := set[e.Name]
	if !ok {
		c.reportError(errors.MethodError(methodName, recvType, "method not found").WithLocation(c.posOf(ref)))
		return ast.UnknownType()
	}
	for i, a := range e.Args {
		if i < len(sig.params) {
			c.pushHint(sig.params[i])
			c.visitExpr(a)
			c.popHint()
		} else {
			c.visitExpr(a)
		}
	}
	return sig.ret
}

func (c *Checker) visitFieldAccess(ref ast.ExprRef, e ast.Expr) ast.TypeDecl {
	recvType := c.visitExpr(e.Left)
	if recvType.Kind != ast.TypeStruct {
		c.reportError(errors.UnsupportedOperation("field access", recvType).WithLocation(c.posOf(ref)))
		return ast.UnknownType()
	}
	sig, ok := c.structs[recvType.Name]
	if !ok {
		c.reportError(errors.NotFound("struct", recvType.Name).WithLocation(c.posOf(ref)))
		return ast.UnknownType()
	}
	fieldType, ok := sig.fields[e.Name]
	if !ok {
		c.reportError(errors.NotFound("field", c.name(e.Name)).WithLocation(c.posOf(ref)))
		return ast.UnknownType()
	}
	return fieldType
}

func (c *Checker) visitArrayLit(ref ast.ExprRef, e ast.Expr) ast.TypeDecl {
	var elemHint ast.TypeDecl
	hasElemHint := false
	if hint, ok := c.currentHint(); ok && hint.Kind == ast.TypeArray && hint.Elem != nil {
		elemHint, hasElemHint = *hint.Elem, true
	}

	var elemType ast.TypeDecl
	for i, el := range e.Elems {
		if hasElemHint {
			c.pushHint(elemHint)
		}
		t := c.visitExpr(el)
		if hasElemHint {
			c.popHint()
		}
		if i == 0 {
			elemType = t
		} else if t.Kind != ast.TypeUnknown && !c.typesCompatible(elemType, t) {
			c.reportError(errors.ArrayError("mixed element types in array literal").WithLocation(c.posOf(ref)))
		}
	}
	if hasElemHint {
		elemType = elemHint
	}
	if elemType.Kind == ast.TypeUnknown {
		elemType = ast.Int64Type()
	}
	return ast.TypeDecl{Kind: ast.TypeArray, Elem: &elemType, Len: len(e.Elems)}
}

func (c *Checker) visitIndex(ref ast.ExprRef, e ast.Expr) ast.TypeDecl {
	arrType := c.visitExpr(e.Left)
	c.pushHint(ast.UInt64Type())
	idxType := c.visitExpr(e.Right)
	c.popHint()
	if idxType.Kind == ast.TypeUnknown {
		c.resolveOperand(e.Right, ast.UInt64Type())
	} else if !isNumericType(idxType) {
		c.reportError(errors.ArrayError("index must be numeric").WithLocation(c.posOf(ref)))
	}
	if arrType.Kind != ast.TypeArray {
		c.reportError(errors.ArrayError("cannot index non-array type " + arrType.String()).WithLocation(c.posOf(ref)))
		return ast.UnknownType()
	}
	if arrType.Elem == nil {
		return ast.UnknownType()
	}
	return *arrType.Elem
}

func (c *Checker) visitStructLit(ref ast.ExprRef, e ast.Expr) ast.TypeDecl {
	typeName := c.name(e.Name)
	sig, ok := c.structs[typeName]
	if !ok {
		c.reportError(errors.NotFound("struct", typeName).WithLocation(c.posOf(ref)))
		for _, f := range e.FieldExprs {
			c.visitExpr(f)
		}
		return ast.UnknownType()
	}
	for i, fieldSym := range e.FieldNames {
		fieldType, known := sig.fields[fieldSym]
		if !known {
			c.reportError(errors.NotFound("field", c.name(fieldSym)).WithLocation(c.posOf(ref)))
			c.visitExpr(e.FieldExprs[i])
			continue
		}
		c.pushHint(fieldType)
		valType := c.visitExpr(e.FieldExprs[i])
		c.popHint()
		if valType.Kind == ast.TypeUnknown && isNumericType(fieldType) {
			c.resolveOperand(e.FieldExprs[i], fieldType)
		} else if valType.Kind != ast.TypeUnknown && !c.typesCompatible(fieldType, valType) {
			c.reportError(errors.TypeMismatch(fieldType, valType).
				WithContext("field " + c.name(fieldSym) + " of " + typeName).WithLocation(c.posOf(ref)))
		}
	}
	return ast.TypeDecl{Kind: ast.TypeStruct, Name: typeName}
}

func (c *Checker) visitBlock(e ast.Expr) ast.TypeDecl {
	c.pushScope()
	defer c.popScope()

	blockType := ast.UnitType()
	for i, sref := range e.Stmts {
		st := c.program.Stmts.Get(sref)
		t := c.visitStmt(sref)
		if i == len(e.Stmts)-1 && st.Kind == ast.StmtExpr && st.HasExpr {
			blockType = t
		}
	}
	return blockType
}

func (c *Checker) visitIf(ref ast.ExprRef, e ast.Expr) ast.TypeDecl {
	c.pushHint(ast.BoolType())
	condType := c.visitExpr(e.Cond)
	c.popHint()
	if condType.Kind != ast.TypeBool && condType.Kind != ast.TypeUnknown {
		c.reportError(errors.TypeMismatch(ast.BoolType(), condType).
			WithContext("if condition").WithLocation(c.posOf(ref)))
	}

	thenType := c.visitExpr(e.Then)

	branchType := thenType
	for i, elifCond := range e.ElifConds {
		c.pushHint(ast.BoolType())
		elifCondType := c.visitExpr(elifCond)
		c.popHint()
		if elifCondType.Kind != ast.TypeBool && elifCondType.Kind != ast.TypeUnknown {
			c.reportError(errors.TypeMismatch(ast.BoolType(), elifCondType).
				WithContext("elif condition").WithLocation(c.posOf(ref)))
		}
		elifThenType := c.visitExpr(e.ElifThens[i])
		if branchType.Kind != ast.TypeUnknown && elifThenType.Kind != ast.TypeUnknown && !c.typesCompatible(branchType, elifThenType) {
			c.reportError(errors.TypeMismatch(branchType, elifThenType).
				WithContext("if/elif branches").WithLocation(c.posOf(ref)))
		}
		if branchType.Kind == ast.TypeUnknown {
			branchType = elifThenType
		}
	}

	if !e.HasElse {
		return ast.UnitType()
	}
	elseType := c.visitExpr(e.Else)
	if branchType.Kind != ast.TypeUnknown && elseType.Kind != ast.TypeUnknown && !c.typesCompatible(branchType, elseType) {
		c.reportError(errors.TypeMismatch(branchType, elseType).
			WithContext("if/else branches").WithLocation(c.posOf(ref)))
	}
	if branchType.Kind == ast.TypeUnknown {
		return elseType
	}
	return branchType
}

func (c *Checker) visitFor(e ast.Expr) ast.TypeDecl {
	c.pushHint(ast.Int64Type())
	loType := c.visitExpr(e.RangeLo)
	hiType := c.visitExpr(e.RangeHi)
	c.popHint()
	if loType.Kind == ast.TypeUnknown {
		c.resolveOperand(e.RangeLo, ast.Int64Type())
		loType = ast.Int64Type()
	}
	if hiType.Kind == ast.TypeUnknown {
		c.resolveOperand(e.RangeHi, loType)
	}

	c.pushScope()
	c.curScope.define(e.LoopVar, loType, false)
	c.loopDepth++
	c.visitExpr(e.LoopBody)
	c.loopDepth--
	c.popScope()

	return ast.UnitType()
}
