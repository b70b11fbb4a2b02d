// Package eval implements toy's tree-walking evaluator: it runs directly
// over the type-checked AST pools, with Number literals already resolved to
// Int64/UInt64 by the checker.
package eval

import "fmt"

// ObjectKind tags the active variant of an Object.
type ObjectKind int

const (
	ObjUnit ObjectKind = iota
	ObjNull
	ObjBool
	ObjInt64
	ObjUInt64
	ObjString
	ObjArray
	ObjStruct
)

// Object is a runtime value, a flat tagged union mirroring the AST pool's
// Expr/Stmt design: one struct, fields reused across variants by Kind.
type Object struct {
	Kind ObjectKind

	Bool bool
	Int  int64
	UInt uint64
	Str  string

	Elems []*Object

	StructName string
	Fields     map[string]*Object
}

var (
	Unit = &Object{Kind: ObjUnit}
	Null = &Object{Kind: ObjNull}
	True = &Object{Kind: ObjBool, Bool: true}
	False = &Object{Kind: ObjBool, Bool: false}
)

func Bool(b bool) *Object {
	if b {
		return True
	}
	return False
}

func Int64(v int64) *Object   { return &Object{Kind: ObjInt64, Int: v} }
func UInt64(v uint64) *Object { return &Object{Kind: ObjUInt64, UInt: v} }
func String(v string) *Object { return &Object{Kind: ObjString, Str: v} }
func Array(elems []*Object) *Object {
	return &Object{Kind: ObjArray, Elems: elems}
}
func Struct(name string, fields map[string]*Object) *Object {
	return &Object{Kind: ObjStruct, StructName: name, Fields: fields}
}

func (o *Object) String() string {
	switch o.Kind {
	case ObjUnit:
		return "()"
	case ObjNull:
		return "null"
	case ObjBool:
		return fmt.Sprintf("%t", o.Bool)
	case ObjInt64:
		return fmt.Sprintf("%d", o.Int)
	case ObjUInt64:
		return fmt.Sprintf("%d", o.UInt)
	case ObjString:
		return o.Str
	case ObjArray:
		s := "["
		for i, e := range o.Elems {
			if i > 0 {
				s += ", "
			}
			s += e.String()
		}
		return s + "]"
	case ObjStruct:
		s := o.StructName + "{"
		first := true
		for k, v := range o.Fields {
			if !first {
				s += ", "
			}
			first = false
			s += k + ": " + v.String()
		}
		return s + "}"
	default:
		return "<unknown>"
	}
}
