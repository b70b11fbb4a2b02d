package lsp

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"toy/internal/ast"
	"toy/internal/parser"
	"toy/internal/typecheck"
)

// Handler implements the LSP server handlers for toy.
type Handler struct {
	mu      sync.RWMutex
	content map[string]string
	asts    map[string]*ast.Program
}

func NewHandler() *Handler {
	return &Handler{
		content: make(map[string]string),
		asts:    make(map[string]*ast.Program),
	}
}

func (h *Handler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Println("toy LSP Initialize called")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
		},
	}, nil
}

func (h *Handler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Println("toy LSP Initialized")
	return nil
}

func (h *Handler) Shutdown(ctx *glsp.Context) error {
	log.Println("toy LSP Shutdown")
	return nil
}

func (h *Handler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	log.Printf("opened file: %s\n", params.TextDocument.URI)
	return h.publishDiagnostics(ctx, params.TextDocument.URI)
}

func (h *Handler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	log.Printf("changed file: %s\n", params.TextDocument.URI)
	return h.publishDiagnostics(ctx, params.TextDocument.URI)
}

func (h *Handler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	log.Printf("closed file: %s\n", params.TextDocument.URI)

	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return fmt.Errorf("failed to convert URI %s: %w", params.TextDocument.URI, err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.content, path)
	delete(h.asts, path)
	return nil
}

// publishDiagnostics re-parses and type-checks the document at uri, storing
// the resulting AST (on success) and always notifying the client of the
// current diagnostic set (possibly empty, to clear stale errors).
func (h *Handler) publishDiagnostics(ctx *glsp.Context, uri protocol.DocumentUri) error {
	path, err := uriToPath(uri)
	if err != nil {
		return fmt.Errorf("failed to convert URI %s: %w", uri, err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", path, err)
	}

	program, parseErrs, scanErrs := parser.ParseSource(string(content))

	var diagnostics []protocol.Diagnostic
	diagnostics = append(diagnostics, convertScanErrors(scanErrs)...)
	diagnostics = append(diagnostics, convertParseErrors(parseErrs)...)

	if len(scanErrs) == 0 && len(parseErrs) == 0 {
		tcErrs := typecheck.New(program).CheckProgram()
		diagnostics = append(diagnostics, convertTypeCheckErrors(tcErrs)...)

		h.mu.Lock()
		h.content[path] = string(content)
		h.asts[path] = program
		h.mu.Unlock()
	}

	sendDiagnosticNotification(ctx, uri, diagnostics)
	return nil
}

func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}

	path := u.Path
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}
	return filepath.FromSlash(path), nil
}

func sendDiagnosticNotification(ctx *glsp.Context, uri protocol.URI, diagnostics []protocol.Diagnostic) {
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func ptrBool(b bool) *bool { return &b }

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind { return &k }
