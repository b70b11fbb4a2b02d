package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"toy/internal/token"
)

func TestScanSimpleOperators(t *testing.T) {
	toks, errs := New("+ - * / == != < <= > >= && || = -> : , . ( ) { } [ ]").ScanTokens()
	assert.Empty(t, errs)

	expected := []token.Type{
		token.PLUS, token.MINUS, token.ASTERISK, token.SLASH,
		token.EQ, token.NOT_EQ, token.LT, token.LE, token.GT, token.GE,
		token.AND, token.OR, token.ASSIGN, token.ARROW, token.COLON,
		token.COMMA, token.DOT, token.LPAREN, token.RPAREN,
		token.LBRACE, token.RBRACE, token.LBRACKET, token.RBRACKET,
		token.EOF,
	}
	got := make([]token.Type, 0, len(toks))
	for _, tok := range toks {
		got = append(got, tok.Type)
	}
	assert.Equal(t, expected, got)
}

func TestScanNumberSuffixes(t *testing.T) {
	toks, errs := New("42 42i64 42u64").ScanTokens()
	assert.Empty(t, errs)
	assert.Equal(t, token.INT, toks[0].Type)
	assert.Equal(t, "42", toks[0].Literal)
	assert.Equal(t, token.INT64, toks[1].Type)
	assert.Equal(t, "42i64", toks[1].Literal)
	assert.Equal(t, token.UINT64, toks[2].Type)
	assert.Equal(t, "42u64", toks[2].Literal)
}

func TestScanKeywordsAndIdentifiers(t *testing.T) {
	toks, errs := New("fn val var if else for in to return break continue struct impl true false null foo").ScanTokens()
	assert.Empty(t, errs)
	expected := []token.Type{
		token.FUNCTION, token.VAL, token.VAR, token.IF, token.ELSE, token.FOR,
		token.IN, token.TO, token.RETURN, token.BREAK, token.CONTINUE,
		token.STRUCT, token.IMPL, token.TRUE, token.FALSE, token.NULL,
		token.IDENT, token.EOF,
	}
	got := make([]token.Type, 0, len(toks))
	for _, tok := range toks {
		got = append(got, tok.Type)
	}
	assert.Equal(t, expected, got)
}

func TestScanStringLiteral(t *testing.T) {
	toks, errs := New(`"hello world"`).ScanTokens()
	assert.Empty(t, errs)
	assert.Equal(t, token.STRING, toks[0].Type)
	assert.Equal(t, "hello world", toks[0].Literal)
}

func TestScanUnterminatedString(t *testing.T) {
	_, errs := New(`"hello`).ScanTokens()
	assert.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "unterminated string")
}

func TestScanLineComment(t *testing.T) {
	toks, errs := New("1 // a comment\n2").ScanTokens()
	assert.Empty(t, errs)
	assert.Equal(t, token.INT, toks[0].Type)
	assert.Equal(t, token.INT, toks[1].Type)
	assert.Equal(t, token.EOF, toks[2].Type)
}

func TestScanTracksLineAndColumn(t *testing.T) {
	toks, errs := New("1\n  22").ScanTokens()
	assert.Empty(t, errs)
	assert.Equal(t, 1, toks[0].Line)
	assert.Equal(t, 2, toks[1].Line)
	assert.Equal(t, 3, toks[1].Column)
}

func TestScanUnexpectedCharacter(t *testing.T) {
	_, errs := New("@").ScanTokens()
	assert.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "unexpected character")
}
