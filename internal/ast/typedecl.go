package ast

// TypeKind enumerates the small closed set of types toy supports.
type TypeKind int

const (
	// TypeUnknown marks a declared-but-not-yet-resolved type, used for
	// `val x = <expr>` with no annotation before the checker's hint pass
	// has run. It must not survive finalization.
	TypeUnknown TypeKind = iota
	TypeInt64
	TypeUInt64
	TypeBool
	TypeString
	TypeUnit
	TypeNull
	TypeArray
	TypeStruct
)

// TypeDecl is a resolved or declared type. Array element type and Struct
// name are only meaningful when Kind is TypeArray / TypeStruct.
type TypeDecl struct {
	Kind    TypeKind
	Elem    *TypeDecl
	Len     int
	Name    string
}

func (t TypeDecl) String() string {
	switch t.Kind {
	case TypeInt64:
		return "i64"
	case TypeUInt64:
		return "u64"
	case TypeBool:
		return "bool"
	case TypeString:
		return "string"
	case TypeUnit:
		return "()"
	case TypeNull:
		return "null"
	case TypeArray:
		if t.Elem != nil {
			return "[" + t.Elem.String() + "]"
		}
		return "[]"
	case TypeStruct:
		return t.Name
	default:
		return "<unknown>"
	}
}

// Equal reports whether two TypeDecls denote the same type.
func (t TypeDecl) Equal(o TypeDecl) bool {
	if t.Kind != o.Kind {
		return false
	}
	switch t.Kind {
	case TypeArray:
		if t.Len != o.Len {
			return false
		}
		if t.Elem == nil || o.Elem == nil {
			return t.Elem == o.Elem
		}
		return t.Elem.Equal(*o.Elem)
	case TypeStruct:
		return t.Name == o.Name
	default:
		return true
	}
}

func Int64Type() TypeDecl  { return TypeDecl{Kind: TypeInt64} }
func UInt64Type() TypeDecl { return TypeDecl{Kind: TypeUInt64} }
func BoolType() TypeDecl   { return TypeDecl{Kind: TypeBool} }
func StringType() TypeDecl { return TypeDecl{Kind: TypeString} }
func UnitType() TypeDecl   { return TypeDecl{Kind: TypeUnit} }
func UnknownType() TypeDecl { return TypeDecl{Kind: TypeUnknown} }
