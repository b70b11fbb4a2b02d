// Package parser builds an ast.Program from a token stream using a
// hand-written recursive-descent parser with Pratt-style precedence
// climbing for expressions.
package parser

import (
	"fmt"

	"toy/internal/ast"
	"toy/internal/interner"
	"toy/internal/scanner"
	"toy/internal/token"
)

var binaryOpText = map[token.Type]string{
	token.OR: "||", token.AND: "&&",
	token.EQ: "==", token.NOT_EQ: "!=",
	token.LT: "<", token.LE: "<=", token.GT: ">", token.GE: ">=",
	token.PLUS: "+", token.MINUS: "-", token.ASTERISK: "*", token.SLASH: "/",
}

// Parser holds parsing state over one token stream.
type Parser struct {
	tokens  []token.Token
	pos     int
	errors  []ParseError
	program *ast.Program
}

// New returns a Parser over toks, building nodes into program's pools.
func New(toks []token.Token, program *ast.Program) *Parser {
	return &Parser{tokens: toks, program: program}
}

// ParseSource lexes and parses a full compilation unit.
func ParseSource(source string) (*ast.Program, []ParseError, []scanner.ScanError) {
	toks, scanErrs := scanner.New(source).ScanTokens()

	program := &ast.Program{
		Exprs:     ast.NewExprPool(),
		Stmts:     ast.NewStmtPool(),
		Locations: ast.NewLocationPool(),
		Interner:  interner.New(),
	}

	p := New(toks, program)
	p.parseProgram()
	return program, p.errors, scanErrs
}

func (p *Parser) parseProgram() {
	for !p.isAtEnd() {
		switch p.peek().Type {
		case token.FUNCTION:
			if fn := p.parseFunction(); fn != nil {
				p.program.Functions = append(p.program.Functions, fn)
			}
		case token.STRUCT:
			if sd := p.parseStruct(); sd != nil {
				p.program.Structs = append(p.program.Structs, sd)
			}
		case token.IMPL:
			if ib := p.parseImpl(); ib != nil {
				p.program.Impls = append(p.program.Impls, ib)
			}
		default:
			tok := p.peek()
			p.errorAt(tok, fmt.Sprintf("expected 'fn', 'struct', or 'impl', got %q", tok.Literal))
			p.advance()
		}
	}
}

func (p *Parser) parseFunction() *ast.Function {
	start := p.peek()
	p.advance() // 'fn'
	name := p.consume(token.IDENT, "expected function name")
	p.consume(token.LPAREN, "expected '(' after function name")

	var params []ast.Param
	if !p.check(token.RPAREN) {
		for {
			pname := p.consume(token.IDENT, "expected parameter name")
			p.consume(token.COLON, "expected ':' after parameter name")
			ptype := p.parseTypeDecl()
			params = append(params, ast.Param{Name: p.intern(pname.Literal), Type: ptype})
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RPAREN, "expected ')' after parameters")

	retType := ast.UnitType()
	hasRetType := false
	if p.match(token.ARROW) {
		retType = p.parseTypeDecl()
		hasRetType = true
	}

	body := p.parseBlockExpr()

	return &ast.Function{
		Name:          p.intern(name.Literal),
		Params:        params,
		ReturnType:    retType,
		HasReturnType: hasRetType,
		Body:          body,
		Pos:           posOf(start),
	}
}

func (p *Parser) parseStruct() *ast.StructDecl {
	start := p.peek()
	p.advance() // 'struct'
	name := p.consume(token.IDENT, "expected struct name")
	p.consume(token.LBRACE, "expected '{' after struct name")

	var fields []ast.StructField
	for !p.check(token.RBRACE) && !p.isAtEnd() {
		fname := p.consume(token.IDENT, "expected field name")
		p.consume(token.COLON, "expected ':' after field name")
		ftype := p.parseTypeDecl()
		fields = append(fields, ast.StructField{Name: p.intern(fname.Literal), Type: ftype})
		if !p.match(token.COMMA) {
			break
		}
	}
	p.consume(token.RBRACE, "expected '}' after struct fields")

	return &ast.StructDecl{Name: name.Literal, Fields: fields, Pos: posOf(start)}
}

func (p *Parser) parseImpl() *ast.ImplBlock {
	p.advance() // 'impl'
	target := p.consume(token.IDENT, "expected type name after 'impl'")
	p.consume(token.LBRACE, "expected '{' after impl target type")

	var methods []ast.MethodFunction
	for !p.check(token.RBRACE) && !p.isAtEnd() {
		if !p.check(token.FUNCTION) {
			tok := p.peek()
			p.errorAt(tok, "expected method declaration inside impl block")
			p.advance()
			continue
		}
		fn := p.parseFunction()
		if fn != nil {
			methods = append(methods, ast.MethodFunction{Function: *fn, ReceiverType: target.Literal})
		}
	}
	p.consume(token.RBRACE, "expected '}' after impl block")

	return &ast.ImplBlock{TargetType: target.Literal, Methods: methods}
}

func (p *Parser) parseTypeDecl() ast.TypeDecl {
	if p.match(token.LBRACKET) {
		elem := p.parseTypeDecl()
		p.consume(token.RBRACKET, "expected ']' after array element type")
		return ast.TypeDecl{Kind: ast.TypeArray, Elem: &elem}
	}
	tok := p.consume(token.IDENT, "expected type name")
	switch tok.Literal {
	case "i64":
		return ast.Int64Type()
	case "u64":
		return ast.UInt64Type()
	case "bool":
		return ast.BoolType()
	case "string":
		return ast.StringType()
	default:
		return ast.TypeDecl{Kind: ast.TypeStruct, Name: tok.Literal}
	}
}

// --- Statements ---

func (p *Parser) parseBlockExpr() ast.ExprRef {
	start := p.peek()
	p.consume(token.LBRACE, "expected '{'")

	var stmts []ast.StmtRef
	for !p.check(token.RBRACE) && !p.isAtEnd() {
		stmts = append(stmts, p.parseStmt())
	}
	p.consume(token.RBRACE, "expected '}' to close block")

	ref := p.program.Exprs.Add(ast.Expr{Kind: ast.ExprBlock, Stmts: stmts})
	p.program.Locations.SetExpr(ref, posOf(start))
	return ref
}

func (p *Parser) parseStmt() ast.StmtRef {
	switch p.peek().Type {
	case token.VAL:
		return p.parseValOrVar(ast.StmtVal)
	case token.VAR:
		return p.parseValOrVar(ast.StmtVar)
	case token.RETURN:
		return p.parseReturn()
	case token.WHILE:
		return p.parseWhile()
	case token.BREAK:
		tok := p.advance()
		ref := p.program.Stmts.Add(ast.Stmt{Kind: ast.StmtBreak})
		p.program.Locations.SetStmt(ref, posOf(tok))
		return ref
	case token.CONTINUE:
		tok := p.advance()
		ref := p.program.Stmts.Add(ast.Stmt{Kind: ast.StmtContinue})
		p.program.Locations.SetStmt(ref, posOf(tok))
		return ref
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parseValOrVar(kind ast.StmtKind) ast.StmtRef {
	start := p.advance() // 'val' or 'var'
	name := p.consume(token.IDENT, "expected identifier after val/var")

	var decl ast.TypeDecl
	hasDecl := false
	if p.match(token.COLON) {
		decl = p.parseTypeDecl()
		hasDecl = true
	}

	p.consume(token.ASSIGN, "expected '=' in val/var declaration")
	value := p.parseExpr()

	ref := p.program.Stmts.Add(ast.Stmt{
		Kind: kind, Name: p.intern(name.Literal),
		Declared: decl, HasDeclared: hasDecl, Value: value,
	})
	p.program.Locations.SetStmt(ref, posOf(start))
	return ref
}

func (p *Parser) parseReturn() ast.StmtRef {
	start := p.advance() // 'return'
	hasExpr := false
	var value ast.ExprRef
	if !p.check(token.RBRACE) {
		value = p.parseExpr()
		hasExpr = true
	}
	ref := p.program.Stmts.Add(ast.Stmt{Kind: ast.StmtReturn, Expr: value, HasExpr: hasExpr})
	p.program.Locations.SetStmt(ref, posOf(start))
	return ref
}

func (p *Parser) parseExprStmt() ast.StmtRef {
	start := p.peek()
	expr := p.parseExpr()
	ref := p.program.Stmts.Add(ast.Stmt{Kind: ast.StmtExpr, Expr: expr, HasExpr: true})
	p.program.Locations.SetStmt(ref, posOf(start))
	return ref
}

// --- Expressions ---

func (p *Parser) parseExpr() ast.ExprRef {
	return p.parseAssign()
}

// parseAssign implements `identifier "=" expr | logical_expr`: an assignment
// target must be a bare identifier, so this needs one token of lookahead past
// IDENT to decide. The right-hand side is a full expression, so `a = b = c`
// parses as `a = (b = c)`.
func (p *Parser) parseAssign() ast.ExprRef {
	if p.check(token.IDENT) && p.peekN(1).Type == token.ASSIGN {
		nameTok := p.advance()
		p.advance() // '='
		value := p.parseExpr()
		ref := p.program.Exprs.Add(ast.Expr{Kind: ast.ExprAssign, Name: p.intern(nameTok.Literal), AssignValue: value})
		p.program.Locations.SetExpr(ref, posOf(nameTok))
		return ref
	}
	return p.parseLogicalOr()
}

func (p *Parser) parseLogicalOr() ast.ExprRef  { return p.parseBinaryLevel1(token.OR, p.parseLogicalAnd) }
func (p *Parser) parseLogicalAnd() ast.ExprRef { return p.parseBinaryLevel1(token.AND, p.parseEquality) }
func (p *Parser) parseEquality() ast.ExprRef {
	return p.parseBinaryLevel2(token.EQ, token.NOT_EQ, p.parseRelational)
}
func (p *Parser) parseRelational() ast.ExprRef {
	return p.parseBinaryLevel4(token.LT, token.LE, token.GT, token.GE, p.parseAdd)
}
func (p *Parser) parseAdd() ast.ExprRef { return p.parseBinaryLevel2(token.PLUS, token.MINUS, p.parseMul) }
func (p *Parser) parseMul() ast.ExprRef {
	return p.parseBinaryLevel2(token.ASTERISK, token.SLASH, p.parseUnary)
}

func (p *Parser) parseBinaryLevel1(op token.Type, next func() ast.ExprRef) ast.ExprRef {
	left := next()
	for p.check(op) {
		opTok := p.advance()
		right := next()
		left = p.makeBinary(left, binaryOpText[opTok.Type], right)
	}
	return left
}

func (p *Parser) parseBinaryLevel2(op1, op2 token.Type, next func() ast.ExprRef) ast.ExprRef {
	left := next()
	for p.check(op1) || p.check(op2) {
		opTok := p.advance()
		right := next()
		left = p.makeBinary(left, binaryOpText[opTok.Type], right)
	}
	return left
}

func (p *Parser) parseBinaryLevel4(op1, op2, op3, op4 token.Type, next func() ast.ExprRef) ast.ExprRef {
	left := next()
	for p.check(op1) || p.check(op2) || p.check(op3) || p.check(op4) {
		opTok := p.advance()
		right := next()
		left = p.makeBinary(left, binaryOpText[opTok.Type], right)
	}
	return left
}

func (p *Parser) makeBinary(left ast.ExprRef, op string, right ast.ExprRef) ast.ExprRef {
	ref := p.program.Exprs.Add(ast.Expr{Kind: ast.ExprBinary, Op: op, Left: left, Right: right})
	if pos, ok := p.program.Locations.Expr(left); ok {
		p.program.Locations.SetExpr(ref, pos)
	}
	return ref
}

func (p *Parser) parseUnary() ast.ExprRef {
	if p.check(token.MINUS) || p.check(token.BANG) {
		opTok := p.advance()
		operand := p.parseUnary()
		ref := p.program.Exprs.Add(ast.Expr{Kind: ast.ExprUnary, Op: opTok.Literal, Left: operand})
		p.program.Locations.SetExpr(ref, posOf(opTok))
		return ref
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() ast.ExprRef {
	expr := p.parsePrimary()
	for {
		switch {
		case p.match(token.DOT):
			field := p.consume(token.IDENT, "expected field name after '.'")
			if p.match(token.LPAREN) {
				args := p.parseArgList()
				p.consume(token.RPAREN, "expected ')' after method arguments")
				ref := p.program.Exprs.Add(ast.Expr{Kind: ast.ExprMethodCall, Receiver: expr, Name: p.intern(field.Literal), Args: args})
				p.program.Locations.SetExpr(ref, posOf(field))
				expr = ref
				continue
			}
			ref := p.program.Exprs.Add(ast.Expr{Kind: ast.ExprFieldAccess, Left: expr, Name: p.intern(field.Literal)})
			p.program.Locations.SetExpr(ref, posOf(field))
			expr = ref
		case p.check(token.LBRACKET):
			p.advance()
			index := p.parseExpr()
			p.consume(token.RBRACKET, "expected ']' after index")
			ref := p.program.Exprs.Add(ast.Expr{Kind: ast.ExprIndex, Left: expr, Right: index})
			expr = ref
		default:
			return expr
		}
	}
}

func (p *Parser) parsePrimary() ast.ExprRef {
	tok := p.peek()
	switch tok.Type {
	case token.INT:
		p.advance()
		ref := p.program.Exprs.Add(ast.Expr{Kind: ast.ExprNumber, IntValue: parseIntLiteral(tok.Literal)})
		p.program.Locations.SetExpr(ref, posOf(tok))
		return ref
	case token.INT64:
		p.advance()
		lit := tok.Literal[:len(tok.Literal)-3]
		ref := p.program.Exprs.Add(ast.Expr{Kind: ast.ExprInt64, IntValue: parseIntLiteral(lit)})
		p.program.Locations.SetExpr(ref, posOf(tok))
		return ref
	case token.UINT64:
		p.advance()
		lit := tok.Literal[:len(tok.Literal)-3]
		ref := p.program.Exprs.Add(ast.Expr{Kind: ast.ExprUInt64, IntValue: parseIntLiteral(lit)})
		p.program.Locations.SetExpr(ref, posOf(tok))
		return ref
	case token.TRUE, token.FALSE:
		p.advance()
		ref := p.program.Exprs.Add(ast.Expr{Kind: ast.ExprBool, BoolValue: tok.Type == token.TRUE})
		p.program.Locations.SetExpr(ref, posOf(tok))
		return ref
	case token.NULL:
		p.advance()
		ref := p.program.Exprs.Add(ast.Expr{Kind: ast.ExprNull})
		p.program.Locations.SetExpr(ref, posOf(tok))
		return ref
	case token.STRING:
		p.advance()
		ref := p.program.Exprs.Add(ast.Expr{Kind: ast.ExprString, StringValue: tok.Literal})
		p.program.Locations.SetExpr(ref, posOf(tok))
		return ref
	case token.LBRACKET:
		return p.parseArrayLit()
	case token.LBRACE:
		return p.parseBlockExpr()
	case token.IF:
		return p.parseIfExpr()
	case token.FOR:
		return p.parseForExpr()
	case token.IDENT:
		return p.parseIdentOrCallOrStruct()
	case token.LPAREN:
		p.advance()
		inner := p.parseExpr()
		p.consume(token.RPAREN, "expected ')'")
		return inner
	default:
		p.errorAt(tok, fmt.Sprintf("unexpected token in expression: %q", tok.Literal))
		p.advance()
		ref := p.program.Exprs.Add(ast.Expr{Kind: ast.ExprNull})
		return ref
	}
}

func (p *Parser) parseArrayLit() ast.ExprRef {
	start := p.advance() // '['
	var elems []ast.ExprRef
	if !p.check(token.RBRACKET) {
		for {
			elems = append(elems, p.parseExpr())
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RBRACKET, "expected ']' after array literal")
	ref := p.program.Exprs.Add(ast.Expr{Kind: ast.ExprArrayLit, Elems: elems})
	p.program.Locations.SetExpr(ref, posOf(start))
	return ref
}

func (p *Parser) parseIfExpr() ast.ExprRef {
	start := p.advance() // 'if'
	cond := p.parseExpr()
	thenBlock := p.parseBlockExpr()

	var elifConds, elifThens []ast.ExprRef
	for p.check(token.ELIF) {
		p.advance() // 'elif'
		elifConds = append(elifConds, p.parseExpr())
		elifThens = append(elifThens, p.parseBlockExpr())
	}

	hasElse := false
	var elseBlock ast.ExprRef
	if p.match(token.ELSE) {
		hasElse = true
		elseBlock = p.parseBlockExpr()
	}

	ref := p.program.Exprs.Add(ast.Expr{
		Kind: ast.ExprIf, Cond: cond, Then: thenBlock,
		ElifConds: elifConds, ElifThens: elifThens,
		Else: elseBlock, HasElse: hasElse,
	})
	p.program.Locations.SetExpr(ref, posOf(start))
	return ref
}

func (p *Parser) parseWhile() ast.StmtRef {
	start := p.advance() // 'while'
	cond := p.parseExpr()
	body := p.parseBlockExpr()
	ref := p.program.Stmts.Add(ast.Stmt{Kind: ast.StmtWhile, Cond: cond, Body: body})
	p.program.Locations.SetStmt(ref, posOf(start))
	return ref
}

func (p *Parser) parseForExpr() ast.ExprRef {
	start := p.advance() // 'for'
	loopVar := p.consume(token.IDENT, "expected loop variable after 'for'")
	p.consume(token.IN, "expected 'in' after loop variable")
	lo := p.parseExpr()
	p.consume(token.TO, "expected 'to' in for-range")
	hi := p.parseExpr()
	body := p.parseBlockExpr()

	ref := p.program.Exprs.Add(ast.Expr{
		Kind: ast.ExprFor, LoopVar: p.intern(loopVar.Literal), RangeLo: lo, RangeHi: hi, LoopBody: body,
	})
	p.program.Locations.SetExpr(ref, posOf(start))
	return ref
}

func (p *Parser) parseIdentOrCallOrStruct() ast.ExprRef {
	nameTok := p.advance()
	name := p.intern(nameTok.Literal)

	if p.check(token.LPAREN) {
		p.advance()
		args := p.parseArgList()
		p.consume(token.RPAREN, "expected ')' after call arguments")
		ref := p.program.Exprs.Add(ast.Expr{Kind: ast.ExprCall, Name: name, Args: args})
		p.program.Locations.SetExpr(ref, posOf(nameTok))
		return ref
	}

	if p.check(token.LBRACE) && p.isStructLiteralAhead() {
		p.advance()
		var fieldNames []interner.Symbol
		var fieldExprs []ast.ExprRef
		for !p.check(token.RBRACE) && !p.isAtEnd() {
			fname := p.consume(token.IDENT, "expected field name in struct literal")
			p.consume(token.COLON, "expected ':' after field name")
			fval := p.parseExpr()
			fieldNames = append(fieldNames, p.intern(fname.Literal))
			fieldExprs = append(fieldExprs, fval)
			if !p.match(token.COMMA) {
				break
			}
		}
		p.consume(token.RBRACE, "expected '}' after struct literal")
		ref := p.program.Exprs.Add(ast.Expr{Kind: ast.ExprStructLit, Name: name, FieldNames: fieldNames, FieldExprs: fieldExprs})
		p.program.Locations.SetExpr(ref, posOf(nameTok))
		return ref
	}

	ref := p.program.Exprs.Add(ast.Expr{Kind: ast.ExprIdent, Name: name})
	p.program.Locations.SetExpr(ref, posOf(nameTok))
	return ref
}

// isStructLiteralAhead looks two tokens past '{' (an identifier followed by
// ':') to distinguish `Foo { field: ... }` from a bare identifier expression.
func (p *Parser) isStructLiteralAhead() bool {
	next := p.peekN(1)
	if next.Type != token.IDENT {
		return false
	}
	return p.peekN(2).Type == token.COLON
}

func (p *Parser) parseArgList() []ast.ExprRef {
	var args []ast.ExprRef
	if p.check(token.RPAREN) {
		return args
	}
	for {
		args = append(args, p.parseExpr())
		if !p.match(token.COMMA) {
			break
		}
	}
	return args
}

// --- token stream helpers ---

func (p *Parser) peek() token.Token { return p.peekN(0) }

func (p *Parser) peekN(n int) token.Token {
	idx := p.pos + n
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[idx]
}

func (p *Parser) advance() token.Token {
	tok := p.peek()
	if !p.isAtEnd() {
		p.pos++
	}
	return tok
}

func (p *Parser) check(t token.Type) bool { return p.peek().Type == t }

func (p *Parser) match(types ...token.Type) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(t token.Type, message string) token.Token {
	if p.check(t) {
		return p.advance()
	}
	tok := p.peek()
	p.errorAt(tok, message+fmt.Sprintf(" (got %q)", tok.Literal))
	return tok
}

func (p *Parser) isAtEnd() bool { return p.peek().Type == token.EOF }

func (p *Parser) errorAt(tok token.Token, message string) {
	p.errors = append(p.errors, ParseError{Message: message, Line: tok.Line, Column: tok.Column, Offset: tok.Offset})
}

func (p *Parser) intern(s string) interner.Symbol {
	return p.program.Interner.GetOrIntern(s)
}

func posOf(tok token.Token) ast.Position {
	return ast.Position{Line: tok.Line, Column: tok.Column, Offset: tok.Offset}
}

func parseIntLiteral(s string) int64 {
	var v int64
	for _, c := range s {
		v = v*10 + int64(c-'0')
	}
	return v
}
