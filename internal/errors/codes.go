// Package errors defines toy's structured compiler error model: error
// codes, the CompilerError/TypeCheckError types, and Rust-style diagnostic
// rendering via ErrorReporter.
package errors

// Error code ranges, mirroring the category split of a typical small
// compiler's diagnostics:
//
//	E0001-E0099: name resolution errors
//	E0100-E0199: type checking errors
//	E0200-E0299: parser errors
//	E0300-E0399: runtime errors
//	E0800-E0899: warnings
const (
	// E0001: identifier used but not defined in the current scope.
	ErrorUndefinedVariable = "E0001"
	// E0002: call to a function that was never declared.
	ErrorUndefinedFunction = "E0002"
	// E0003: a value's type does not match what the context expects.
	ErrorTypeMismatch = "E0003"
	// E0004: operands of a binary/unary op have incompatible types.
	ErrorTypeMismatchOperation = "E0004"
	// E0005: a named item (variable, field, method) could not be found.
	ErrorNotFound = "E0005"
	// E0006: an operator or method is not supported for the given type.
	ErrorUnsupportedOperation = "E0006"
	// E0007: a value could not be converted to the requested type.
	ErrorConversionError = "E0007"
	// E0008: an array operation (index, literal) was invalid.
	ErrorArrayError = "E0008"
	// E0009: a method call failed type checking.
	ErrorMethodError = "E0009"
	// E0010: a literal's text does not match its expected type.
	ErrorInvalidLiteral = "E0010"
	// E0011: function body falls through without satisfying its
	// declared, non-unit return type.
	ErrorMissingReturn = "E0011"
	// E0012: assignment to a `val` binding.
	ErrorAssignToVal = "E0012"
	// E0099: catch-all for conditions with no dedicated code.
	ErrorGeneric = "E0099"

	// E0200: lexical/syntax error surfaced by the scanner or parser.
	ErrorSyntax = "E0200"

	// E0300: a runtime fault (division by zero, break/continue outside
	// a loop, array index out of bounds).
	ErrorRuntime = "E0300"
)

// GetErrorDescription returns a human-readable description of code.
func GetErrorDescription(code string) string {
	switch code {
	case ErrorUndefinedVariable:
		return "variable is used but not defined in the current scope"
	case ErrorUndefinedFunction:
		return "function is called but never declared"
	case ErrorTypeMismatch:
		return "expression type does not match the expected type"
	case ErrorTypeMismatchOperation:
		return "operands have incompatible types"
	case ErrorNotFound:
		return "referenced item could not be found"
	case ErrorUnsupportedOperation:
		return "operation is not supported for this type"
	case ErrorConversionError:
		return "value cannot be converted to the requested type"
	case ErrorArrayError:
		return "invalid array operation"
	case ErrorMethodError:
		return "method call failed type checking"
	case ErrorInvalidLiteral:
		return "literal does not match its expected type"
	case ErrorMissingReturn:
		return "function falls through without returning a value"
	case ErrorAssignToVal:
		return "cannot assign to an immutable val binding"
	case ErrorSyntax:
		return "syntax error"
	case ErrorRuntime:
		return "runtime error"
	default:
		return "unknown error code"
	}
}

// IsWarning reports whether code falls in the warning range.
func IsWarning(code string) bool {
	return code >= "E0800" && code < "E0900"
}

// GetErrorCategory returns the category name for code.
func GetErrorCategory(code string) string {
	switch {
	case code >= "E0001" && code < "E0100":
		return "Name Resolution"
	case code >= "E0100" && code < "E0200":
		return "Type Checking"
	case code >= "E0200" && code < "E0300":
		return "Syntax"
	case code >= "E0300" && code < "E0400":
		return "Runtime"
	case code >= "E0800" && code < "E0900":
		return "Warning"
	default:
		return "Unknown"
	}
}
