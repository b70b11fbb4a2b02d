// Package typecheck implements toy's static type checker: a single-pass
// visitor over the AST pools with bidirectional inference for untyped
// integer literals ("Number"), which are rewritten in place to Int64 or
// UInt64 once their context resolves them.
package typecheck

import (
	"toy/internal/ast"
	"toy/internal/errors"
	"toy/internal/interner"
)

type funcCheckStatus int

const (
	notStarted funcCheckStatus = iota
	inProgress
	done
)

// Checker holds all state needed to type-check one Program. Its fields are
// grouped the way a visitor-style checker typically separates concerns:
// structural references (Program/pools), the active scope chain, the
// deferred-inference bookkeeping for Number literals, per-function
// recursion guards, and a per-function type cache.
type Checker struct {
	program *ast.Program

	// Context: name resolution against top-level declarations.
	funcs     map[interner.Symbol]*funcSig
	funcDecls map[interner.Symbol]*ast.Function
	structs   map[string]*structSig
	methods   map[string]map[interner.Symbol]*methodSig

	// TypeInference: the active scope chain and the bidirectional hint
	// stack consulted when resolving a Number literal's type.
	curScope  *scope
	hintStack []ast.TypeDecl

	// Numbers: deferred Number-literal rewrite bookkeeping (see numbers.go).
	pending      []pendingNumber
	varResolved  map[interner.Symbol]ast.TypeDecl

	// FunctionChecking: recursion guard + memoized return types, keyed
	// by function name, so mutually recursive functions don't loop
	// forever re-deriving each other's return type.
	funcStatus map[interner.Symbol]funcCheckStatus

	// Optimization: per-function expression type cache, cleared at the
	// start of each CheckFunction call.
	typeCache map[ast.ExprRef]ast.TypeDecl

	// loopDepth tracks whether break/continue are currently legal.
	loopDepth int

	// returnType is the enclosing function's declared return type, checked
	// directly against every `return` statement (toy has no nested fn
	// literals, so one field per CheckFunction call suffices).
	returnType ast.TypeDecl

	// pendingBindTarget bridges a `val`/`var` statement with no type
	// annotation to the Number literal it is about to visit, so that
	// literal's eventual resolution also updates the variable's binding.
	// Consumed (cleared) the moment visitExpr reads it.
	pendingBindTarget *binding

	Errors []*errors.TypeCheckError
}

// New returns a Checker over program, with its top-level declarations
// (functions, structs, impls) already registered for name resolution.
func New(program *ast.Program) *Checker {
	c := &Checker{
		program:     program,
		funcs:       make(map[interner.Symbol]*funcSig),
		funcDecls:   make(map[interner.Symbol]*ast.Function),
		structs:     make(map[string]*structSig),
		methods:     make(map[string]map[interner.Symbol]*methodSig),
		varResolved: make(map[interner.Symbol]ast.TypeDecl),
		funcStatus:  make(map[interner.Symbol]funcCheckStatus),
		typeCache:   make(map[ast.ExprRef]ast.TypeDecl),
	}
	c.registerDeclarations()
	return c
}

func (c *Checker) registerDeclarations() {
	for _, fn := range c.program.Functions {
		c.funcs[fn.Name] = signatureOf(fn)
		c.funcDecls[fn.Name] = fn
	}
	for _, sd := range c.program.Structs {
		sig := &structSig{fields: make(map[interner.Symbol]ast.TypeDecl)}
		for _, f := range sd.Fields {
			sig.fieldOrder = append(sig.fieldOrder, f.Name)
			sig.fields[f.Name] = f.Type
		}
		c.structs[sd.Name] = sig
	}
	for _, impl := range c.program.Impls {
		set := c.methods[impl.TargetType]
		if set == nil {
			set = make(map[interner.Symbol]*methodSig)
			c.methods[impl.TargetType] = set
		}
		for i := range impl.Methods {
			m := &impl.Methods[i]
			// m.Params[0] is the implicit `self` receiver; call sites
			// supply only the remaining arguments.
			callParams := paramTypes(m.Params)
			if len(callParams) > 0 {
				callParams = callParams[1:]
			}
			set[m.Name] = &methodSig{
				receiverType: impl.TargetType,
				params:       callParams,
				ret:          m.ReturnType,
			}
		}
	}
}

func signatureOf(fn *ast.Function) *funcSig {
	return &funcSig{params: paramTypes(fn.Params), ret: fn.ReturnType}
}

func paramTypes(params []ast.Param) []ast.TypeDecl {
	types := make([]ast.TypeDecl, len(params))
	for i, p := range params {
		types[i] = p.Type
	}
	return types
}

// CheckProgram type-checks every top-level function and impl method,
// returning the accumulated errors (empty on success).
func (c *Checker) CheckProgram() []*errors.TypeCheckError {
	for _, fn := range c.program.Functions {
		c.CheckFunction(fn)
	}
	for _, impl := range c.program.Impls {
		for i := range impl.Methods {
			c.CheckFunction(&impl.Methods[i].Function)
		}
	}
	return c.Errors
}

// CheckFunction type-checks a single function body. If fn declares an
// explicit `-> type`, the body is checked against it; otherwise the
// function's return type is inferred from the body's type, per the
// FunctionChecking.is_checked_fn (None/in-progress/Some-done) model: a
// function not yet started is checked lazily, an in-progress recursive call
// gets the declared return type (or Unknown while the return type is still
// being inferred) rather than looping forever, and a done function returns
// its resolved type.
func (c *Checker) CheckFunction(fn *ast.Function) ast.TypeDecl {
	if status := c.funcStatus[fn.Name]; status == done {
		if sig, ok := c.funcs[fn.Name]; ok {
			return sig.ret
		}
	} else if status == inProgress {
		// Recursive call being checked higher up the stack: trust the
		// declared return type, or Unknown if it's still being inferred,
		// rather than looping forever.
		if sig, ok := c.funcs[fn.Name]; ok {
			if fn.HasReturnType {
				return sig.ret
			}
			return ast.UnknownType()
		}
		return ast.UnitType()
	}
	c.funcStatus[fn.Name] = inProgress

	c.typeCache = make(map[ast.ExprRef]ast.TypeDecl)
	c.pending = nil
	c.curScope = newScope(nil)
	if fn.HasReturnType {
		c.returnType = fn.ReturnType
	} else {
		c.returnType = ast.UnknownType()
	}
	for _, p := range fn.Params {
		c.curScope.define(p.Name, p.Type, false)
	}

	if fn.HasReturnType {
		c.pushHint(fn.ReturnType)
	}
	bodyType := c.visitExpr(fn.Body)
	if fn.HasReturnType {
		c.popHint()
	}

	c.finalizeNumbers()

	result := fn.ReturnType
	if fn.HasReturnType {
		if !c.typesCompatible(fn.ReturnType, bodyType) {
			c.reportError(errors.TypeMismatch(fn.ReturnType, bodyType).WithContext("function " + c.name(fn.Name)).WithLocation(fn.Pos))
		}
	} else {
		result = bodyType
		if result.Kind == ast.TypeUnknown {
			result = ast.UnitType()
		}
	}

	if sig, ok := c.funcs[fn.Name]; ok {
		sig.ret = result
	}

	c.funcStatus[fn.Name] = done
	return result
}

// checkCalleeInSavedState runs CheckFunction for decl while preserving the
// calling function's own in-flight checking state, since CheckFunction
// resets the Checker's per-function fields (scope, hints, pending numbers)
// in place.
func (c *Checker) checkCalleeInSavedState(decl *ast.Function) {
	savedCache := c.typeCache
	savedPending := c.pending
	savedScope := c.curScope
	savedReturnType := c.returnType
	savedHints := c.hintStack
	savedLoopDepth := c.loopDepth
	savedBindTarget := c.pendingBindTarget

	c.CheckFunction(decl)

	c.typeCache = savedCache
	c.pending = savedPending
	c.curScope = savedScope
	c.returnType = savedReturnType
	c.hintStack = savedHints
	c.loopDepth = savedLoopDepth
	c.pendingBindTarget = savedBindTarget
}

func (c *Checker) name(sym interner.Symbol) string {
	return c.program.Interner.MustResolve(sym)
}

func (c *Checker) pushScope() { c.curScope = newScope(c.curScope) }
func (c *Checker) popScope()  { c.curScope = c.curScope.parent }

func (c *Checker) pushHint(t ast.TypeDecl) { c.hintStack = append(c.hintStack, t) }
func (c *Checker) popHint()                { c.hintStack = c.hintStack[:len(c.hintStack)-1] }

func (c *Checker) currentHint() (ast.TypeDecl, bool) {
	if len(c.hintStack) == 0 {
		return ast.TypeDecl{}, false
	}
	return c.hintStack[len(c.hintStack)-1], true
}

func (c *Checker) reportError(err *errors.TypeCheckError) {
	c.Errors = append(c.Errors, err)
}

func (c *Checker) posOf(ref ast.ExprRef) ast.Position {
	pos, _ := c.program.Locations.Expr(ref)
	return pos
}

// typesCompatible treats Unknown as compatible with anything (it is only
// ever a placeholder awaiting resolution) and otherwise requires equality.
func (c *Checker) typesCompatible(a, b ast.TypeDecl) bool {
	if a.Kind == ast.TypeUnknown || b.Kind == ast.TypeUnknown {
		return true
	}
	return a.Equal(b)
}

func isNumericType(t ast.TypeDecl) bool {
	return t.Kind == ast.TypeInt64 || t.Kind == ast.TypeUInt64
}
