package typecheck

import (
	"toy/internal/ast"
	"toy/internal/interner"
)

// binding is one name's compile-time type entry.
type binding struct {
	typ     ast.TypeDecl
	mutable bool
}

// scope is one level of a parent-linked symbol table, the compile-time
// counterpart of the evaluator's runtime Environment frames.
type scope struct {
	vars   map[interner.Symbol]*binding
	parent *scope
}

func newScope(parent *scope) *scope {
	return &scope{vars: make(map[interner.Symbol]*binding), parent: parent}
}

func (s *scope) define(name interner.Symbol, typ ast.TypeDecl, mutable bool) {
	s.vars[name] = &binding{typ: typ, mutable: mutable}
}

func (s *scope) lookup(name interner.Symbol) (*binding, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if b, ok := cur.vars[name]; ok {
			return b, true
		}
	}
	return nil, false
}

// funcSig is a top-level function's signature, used to check calls.
type funcSig struct {
	params []ast.TypeDecl
	ret    ast.TypeDecl
}

// structSig is a struct declaration's field layout, used to check struct
// literals and field access.
type structSig struct {
	fieldOrder []interner.Symbol
	fields     map[interner.Symbol]ast.TypeDecl
}

// methodSig is one impl-block method's signature.
type methodSig struct {
	receiverType string
	params       []ast.TypeDecl
	ret          ast.TypeDecl
}
