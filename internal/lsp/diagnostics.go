// Package lsp implements a diagnostics-only language server for toy:
// didOpen/didChange/didClose trigger a parse + type-check pass and publish
// the resulting errors as LSP diagnostics. No completion or semantic
// tokens are offered.
package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"toy/internal/errors"
	"toy/internal/parser"
	"toy/internal/scanner"
)

func convertScanErrors(scanErrs []scanner.ScanError) []protocol.Diagnostic {
	diagnostics := make([]protocol.Diagnostic, 0, len(scanErrs))
	for _, e := range scanErrs {
		endChar := uint32(e.Column - 1 + e.Length)
		if e.Length == 0 {
			endChar = uint32(e.Column + 3)
		}
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{Line: uint32(e.Line - 1), Character: uint32(e.Column - 1)},
				End:   protocol.Position{Line: uint32(e.Line - 1), Character: endChar},
			},
			Severity: ptrSeverity(protocol.DiagnosticSeverityError),
			Source:   ptrString("toy-scanner"),
			Message:  e.Message,
		})
	}
	return diagnostics
}

func convertParseErrors(parseErrs []parser.ParseError) []protocol.Diagnostic {
	diagnostics := make([]protocol.Diagnostic, 0, len(parseErrs))
	for _, e := range parseErrs {
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{Line: uint32(e.Line - 1), Character: uint32(e.Column - 1)},
				End:   protocol.Position{Line: uint32(e.Line - 1), Character: uint32(e.Column + 5)},
			},
			Severity: ptrSeverity(protocol.DiagnosticSeverityError),
			Source:   ptrString("toy-parser"),
			Message:  e.Message,
		})
	}
	return diagnostics
}

func convertTypeCheckErrors(tcErrs []*errors.TypeCheckError) []protocol.Diagnostic {
	diagnostics := make([]protocol.Diagnostic, 0, len(tcErrs))
	for _, e := range tcErrs {
		ce := e.ToCompilerError()
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{Line: uint32(ce.Position.Line - 1), Character: uint32(ce.Position.Column - 1)},
				End:   protocol.Position{Line: uint32(ce.Position.Line - 1), Character: uint32(ce.Position.Column + 5)},
			},
			Severity: ptrSeverity(protocol.DiagnosticSeverityError),
			Source:   ptrString("toy-typecheck"),
			Message:  ce.Code + ": " + ce.Message,
		})
	}
	return diagnostics
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity { return &s }
func ptrString(s string) *string                                           { return &s }
