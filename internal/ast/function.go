package ast

import "toy/internal/interner"

// Param is one function parameter declaration.
type Param struct {
	Name interner.Symbol
	Type TypeDecl
}

// Function is a top-level `fn` declaration. ReturnType is only meaningful
// when HasReturnType is true (an explicit `-> type` was parsed); otherwise
// the function's return type is inferred from its body during checking.
type Function struct {
	Name          interner.Symbol
	Params        []Param
	ReturnType    TypeDecl
	HasReturnType bool
	Body          ExprRef // ExprBlock
	Pos           Position
}

// MethodFunction is a function declared inside an `impl <Type> { ... }`
// block; it carries the receiver's struct name alongside an otherwise
// ordinary Function.
type MethodFunction struct {
	Function
	ReceiverType string
}

// StructField is one field of a `struct` declaration.
type StructField struct {
	Name interner.Symbol
	Type TypeDecl
}

// StructDecl is a top-level `struct` declaration.
type StructDecl struct {
	Name   string
	Fields []StructField
	Pos    Position
}

// ImplBlock groups the methods declared for one struct type.
type ImplBlock struct {
	TargetType string
	Methods    []MethodFunction
}

// Program is the fully parsed compilation unit: the expression and
// statement pools backing every Function body, plus the top-level
// declarations.
type Program struct {
	Exprs     *ExprPool
	Stmts     *StmtPool
	Locations *LocationPool
	Interner  *interner.Interner

	Functions []*Function
	Structs   []*StructDecl
	Impls     []*ImplBlock
}

// FindFunction returns the top-level function named name, if any.
func (p *Program) FindFunction(name string) *Function {
	for _, f := range p.Functions {
		if s, ok := p.Interner.Resolve(f.Name); ok && s == name {
			return f
		}
	}
	return nil
}
