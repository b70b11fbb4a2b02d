package ast

// ExprPool is an append-only arena of Expr nodes. References into it
// (ExprRef) remain valid across in-place rewrites performed by the type
// checker, since Add only appends and never moves a node to another index.
type ExprPool struct {
	nodes []Expr
}

// NewExprPool returns an empty pool. Index 0 is reserved as "no reference".
func NewExprPool() *ExprPool {
	return &ExprPool{nodes: make([]Expr, 1)}
}

// Add appends e and returns its stable ExprRef.
func (p *ExprPool) Add(e Expr) ExprRef {
	p.nodes = append(p.nodes, e)
	return ExprRef(len(p.nodes) - 1)
}

// Get returns the Expr at ref by value.
func (p *ExprPool) Get(ref ExprRef) Expr {
	return p.nodes[ref]
}

// Set overwrites the Expr at ref in place; used for Number -> Int64/UInt64
// rewrites so every other ExprRef pointing at this node observes the new
// kind without needing to be updated.
func (p *ExprPool) Set(ref ExprRef, e Expr) {
	p.nodes[ref] = e
}

// Len returns the number of live slots, including the reserved zero slot.
func (p *ExprPool) Len() int { return len(p.nodes) }

// StmtPool is the statement-side counterpart of ExprPool.
type StmtPool struct {
	nodes []Stmt
}

// NewStmtPool returns an empty pool. Index 0 is reserved as "no reference".
func NewStmtPool() *StmtPool {
	return &StmtPool{nodes: make([]Stmt, 1)}
}

func (p *StmtPool) Add(s Stmt) StmtRef {
	p.nodes = append(p.nodes, s)
	return StmtRef(len(p.nodes) - 1)
}

func (p *StmtPool) Get(ref StmtRef) Stmt {
	return p.nodes[ref]
}

func (p *StmtPool) Set(ref StmtRef, s Stmt) {
	p.nodes[ref] = s
}

func (p *StmtPool) Len() int { return len(p.nodes) }

// LocationPool records the source Position of each Expr/Stmt node, kept
// separate from the pools themselves so rewriting a node's Kind never has to
// touch its location.
type LocationPool struct {
	exprPos map[ExprRef]Position
	stmtPos map[StmtRef]Position
}

func NewLocationPool() *LocationPool {
	return &LocationPool{
		exprPos: make(map[ExprRef]Position),
		stmtPos: make(map[StmtRef]Position),
	}
}

func (l *LocationPool) SetExpr(ref ExprRef, pos Position) { l.exprPos[ref] = pos }
func (l *LocationPool) SetStmt(ref StmtRef, pos Position) { l.stmtPos[ref] = pos }

func (l *LocationPool) Expr(ref ExprRef) (Position, bool) {
	pos, ok := l.exprPos[ref]
	return pos, ok
}

func (l *LocationPool) Stmt(ref StmtRef) (Position, bool) {
	pos, ok := l.stmtPos[ref]
	return pos, ok
}
