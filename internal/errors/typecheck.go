package errors

import (
	"fmt"

	"toy/internal/ast"
)

// TypeCheckErrorKind tags the shape of a TypeCheckError's payload. The
// variant set matches the original interpreter's type-checker error enum
// exactly, so every message the checker can produce has a dedicated,
// structured representation rather than an ad-hoc string.
type TypeCheckErrorKind int

const (
	KindTypeMismatch TypeCheckErrorKind = iota
	KindTypeMismatchOperation
	KindNotFound
	KindUnsupportedOperation
	KindConversionError
	KindArrayError
	KindMethodError
	KindInvalidLiteral
	KindGenericError
)

// TypeCheckError is a single type-checking failure, carrying enough detail
// to both format a human message and map to a stable error code.
type TypeCheckError struct {
	Kind TypeCheckErrorKind

	Expected, Actual   ast.TypeDecl
	Operation          string
	Left, Right        ast.TypeDecl
	ItemType, Name      string
	TypeName           ast.TypeDecl
	From, To           string
	Message            string
	Method, Reason      string
	Value, ExpectedType string

	Context  string
	HasCtx   bool
	Location ast.Position
	HasLoc   bool
}

func TypeMismatch(expected, actual ast.TypeDecl) *TypeCheckError {
	return &TypeCheckError{Kind: KindTypeMismatch, Expected: expected, Actual: actual}
}

func TypeMismatchOperation(operation string, left, right ast.TypeDecl) *TypeCheckError {
	return &TypeCheckError{Kind: KindTypeMismatchOperation, Operation: operation, Left: left, Right: right}
}

func NotFound(itemType, name string) *TypeCheckError {
	return &TypeCheckError{Kind: KindNotFound, ItemType: itemType, Name: name}
}

func UnsupportedOperation(operation string, typeName ast.TypeDecl) *TypeCheckError {
	return &TypeCheckError{Kind: KindUnsupportedOperation, Operation: operation, TypeName: typeName}
}

func ConversionError(from, to string) *TypeCheckError {
	return &TypeCheckError{Kind: KindConversionError, From: from, To: to}
}

func ArrayError(message string) *TypeCheckError {
	return &TypeCheckError{Kind: KindArrayError, Message: message}
}

func MethodError(method string, typeName ast.TypeDecl, reason string) *TypeCheckError {
	return &TypeCheckError{Kind: KindMethodError, Method: method, TypeName: typeName, Reason: reason}
}

func InvalidLiteral(value, expectedType string) *TypeCheckError {
	return &TypeCheckError{Kind: KindInvalidLiteral, Value: value, ExpectedType: expectedType}
}

func GenericError(message string) *TypeCheckError {
	return &TypeCheckError{Kind: KindGenericError, Message: message}
}

func (e *TypeCheckError) WithContext(context string) *TypeCheckError {
	e.Context, e.HasCtx = context, true
	return e
}

func (e *TypeCheckError) WithLocation(pos ast.Position) *TypeCheckError {
	e.Location, e.HasLoc = pos, true
	return e
}

func (e *TypeCheckError) Error() string {
	base := e.baseMessage()
	if e.HasLoc {
		base = fmt.Sprintf("%d:%d:%d: %s", e.Location.Line, e.Location.Column, e.Location.Offset, base)
	}
	if e.HasCtx {
		base = fmt.Sprintf("%s (in %s)", base, e.Context)
	}
	return base
}

func (e *TypeCheckError) baseMessage() string {
	switch e.Kind {
	case KindTypeMismatch:
		return fmt.Sprintf("type mismatch: expected %s, but got %s", e.Expected, e.Actual)
	case KindTypeMismatchOperation:
		return fmt.Sprintf("type mismatch in %s operation: incompatible types %s and %s", e.Operation, e.Left, e.Right)
	case KindNotFound:
		return fmt.Sprintf("%s '%s' not found", e.ItemType, e.Name)
	case KindUnsupportedOperation:
		return fmt.Sprintf("unsupported operation '%s' for type %s", e.Operation, e.TypeName)
	case KindConversionError:
		return fmt.Sprintf("cannot convert '%s' to %s", e.From, e.To)
	case KindArrayError:
		return fmt.Sprintf("array error: %s", e.Message)
	case KindMethodError:
		return fmt.Sprintf("method '%s' error for type %s: %s", e.Method, e.TypeName, e.Reason)
	case KindInvalidLiteral:
		return fmt.Sprintf("invalid %s literal: '%s'", e.ExpectedType, e.Value)
	case KindGenericError:
		return e.Message
	default:
		return "unknown type check error"
	}
}

// Code maps a TypeCheckErrorKind to its stable E0xxx code.
func (e *TypeCheckError) Code() string {
	switch e.Kind {
	case KindTypeMismatch:
		return ErrorTypeMismatch
	case KindTypeMismatchOperation:
		return ErrorTypeMismatchOperation
	case KindNotFound:
		return ErrorNotFound
	case KindUnsupportedOperation:
		return ErrorUnsupportedOperation
	case KindConversionError:
		return ErrorConversionError
	case KindArrayError:
		return ErrorArrayError
	case KindMethodError:
		return ErrorMethodError
	case KindInvalidLiteral:
		return ErrorInvalidLiteral
	default:
		return ErrorGeneric
	}
}

// ToCompilerError converts a low-level TypeCheckError into the user-facing
// CompilerError the CLI/LSP render.
func (e *TypeCheckError) ToCompilerError() CompilerError {
	pos := e.Location
	return CompilerError{
		Level:    LevelError,
		Code:     e.Code(),
		Message:  e.baseMessage(),
		Position: pos,
	}
}
