package eval

import "toy/internal/interner"

// Environment is one parent-linked frame of runtime bindings, the runtime
// counterpart of the checker's compile-time scope chain.
type Environment struct {
	vars   map[interner.Symbol]*Object
	mut    map[interner.Symbol]bool
	parent *Environment
}

// NewEnvironment returns a fresh frame chained to parent (nil for the
// outermost frame of a function call).
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		vars:   make(map[interner.Symbol]*Object),
		mut:    make(map[interner.Symbol]bool),
		parent: parent,
	}
}

func (e *Environment) Define(name interner.Symbol, val *Object, mutable bool) {
	e.vars[name] = val
	e.mut[name] = mutable
}

func (e *Environment) Get(name interner.Symbol) (*Object, bool) {
	for cur := e; cur != nil; cur = cur.parent {
		if v, ok := cur.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Set mutates name's binding in the frame that defines it, returning false
// if the name is unbound anywhere in the chain.
func (e *Environment) Set(name interner.Symbol, val *Object) bool {
	for cur := e; cur != nil; cur = cur.parent {
		if _, ok := cur.vars[name]; ok {
			cur.vars[name] = val
			return true
		}
	}
	return false
}
