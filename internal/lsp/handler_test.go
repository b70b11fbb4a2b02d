package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"toy/internal/parser"
	"toy/internal/typecheck"
)

func TestURIToPath(t *testing.T) {
	path, err := uriToPath("file:///tmp/example.toy")
	assert.NoError(t, err)
	assert.Equal(t, "/tmp/example.toy", path)
}

func TestConvertScanErrorsEmpty(t *testing.T) {
	assert.Empty(t, convertScanErrors(nil))
}

func TestConvertParseErrorsMapsPosition(t *testing.T) {
	_, parseErrs, _ := parser.ParseSource(`fn main() -> i64 { +++ }`)
	diagnostics := convertParseErrors(parseErrs)
	assert.NotEmpty(t, diagnostics)
	assert.Equal(t, uint32(parseErrs[0].Line-1), diagnostics[0].Range.Start.Line)
}

func TestConvertTypeCheckErrorsMapsCode(t *testing.T) {
	program, parseErrs, scanErrs := parser.ParseSource(`fn main() -> bool { 1i64 }`)
	assert.Empty(t, parseErrs)
	assert.Empty(t, scanErrs)

	tcErrs := typecheck.New(program).CheckProgram()
	assert.NotEmpty(t, tcErrs)

	diagnostics := convertTypeCheckErrors(tcErrs)
	assert.NotEmpty(t, diagnostics)
	assert.Contains(t, diagnostics[0].Message, "E0003")
}
