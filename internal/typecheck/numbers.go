package typecheck

import "toy/internal/ast"

// pendingNumber is a Number literal (or a `val`/`var` initialized from one)
// whose concrete type could not be determined the moment it was visited.
// It stays Unknown until either a later use forces it to Int64/UInt64, or
// finalizeNumbers defaults it to UInt64.
type pendingNumber struct {
	ref     ast.ExprRef
	binding *binding // non-nil if this Number backs a variable's initial value
}

// resolveNumber is called whenever the checker visits an ExprNumber node.
// If hint gives a concrete numeric type, the pool entry is rewritten in
// place immediately (Number -> Int64/UInt64) and that type is returned.
// Otherwise the literal is left as-is and queued in c.pending for later
// resolution, and TypeUnknown is returned.
func (c *Checker) resolveNumber(ref ast.ExprRef, hint ast.TypeDecl, bindTo *binding) ast.TypeDecl {
	if isNumericType(hint) {
		c.rewriteNumber(ref, hint)
		if bindTo != nil {
			bindTo.typ = hint
		}
		return hint
	}
	c.pending = append(c.pending, pendingNumber{ref: ref, binding: bindTo})
	return ast.UnknownType()
}

func (c *Checker) rewriteNumber(ref ast.ExprRef, target ast.TypeDecl) {
	e := c.program.Exprs.Get(ref)
	if e.Kind != ast.ExprNumber {
		return
	}
	if target.Kind == ast.TypeUInt64 {
		e.Kind = ast.ExprUInt64
	} else {
		e.Kind = ast.ExprInt64
	}
	c.program.Exprs.Set(ref, e)
	c.typeCache[ref] = target
}

// forceNumeric is called when a pending expression's type is discovered to
// be required as target (e.g. it sits opposite a concretely-typed operand
// in a binary expression). It resolves the pending Number in place, if ref
// is in fact still pending; otherwise it is a no-op.
func (c *Checker) forceNumeric(ref ast.ExprRef, target ast.TypeDecl) {
	e := c.program.Exprs.Get(ref)
	if e.Kind == ast.ExprNumber {
		c.rewriteNumber(ref, target)
	}
}

// forceVariableNumeric resolves every still-pending Number literal that
// initialized sym's binding to target, and updates the binding itself so
// subsequent reads of sym observe the resolved type.
func (c *Checker) forceVariableNumeric(b *binding, target ast.TypeDecl) {
	if b.typ.Kind != ast.TypeUnknown {
		return
	}
	b.typ = target
	for _, p := range c.pending {
		if p.binding == b {
			c.rewriteNumber(p.ref, target)
		}
	}
}

// finalizeNumbers runs at the end of a function body: every Number literal
// (and every variable whose initial value was an unresolved Number) that
// never met a concrete numeric context defaults to UInt64, matching the
// original interpreter's fallback rule.
func (c *Checker) finalizeNumbers() {
	for _, p := range c.pending {
		e := c.program.Exprs.Get(p.ref)
		if e.Kind == ast.ExprNumber {
			c.rewriteNumber(p.ref, ast.UInt64Type())
		}
		if p.binding != nil && p.binding.typ.Kind == ast.TypeUnknown {
			p.binding.typ = ast.UInt64Type()
		}
	}
	c.pending = nil
}
