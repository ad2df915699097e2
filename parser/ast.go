// Package parser implements Quetite's lexeme-to-AST pass: a recursive-
// descent, precedence-climbing parser producing the expression and
// statement node variants below, later annotated by the resolver and
// walked by the evaluator. Per §9's "Variant dispatch" design note,
// resolver and evaluator both dispatch on node kind with a single type
// switch rather than a double-dispatch visitor — the expected shape for a
// tree walker of this size.
package parser

import "github.com/qewer33/quetite/lexer"

// Node is the minimal contract every AST node satisfies: a source cursor
// for diagnostics.
type Node interface {
	Cursor() lexer.Cursor
}

// Expr is any expression node. Every expression is also evaluable as a
// statement (an expression-statement), matching the grammar of §4.2.
type Expr interface {
	Node
	exprNode()
}

// Stmt is any statement node.
type Stmt interface {
	Node
	stmtNode()
}

type base struct {
	Pos lexer.Cursor
}

func (b base) Cursor() lexer.Cursor { return b.Pos }

// AssignOp names the operator of an assignment, index-set, or property-set
// node, per §3's expression variants.
type AssignOp int

const (
	OpAssign AssignOp = iota
	OpAddAssign
	OpSubAssign
)

// ---- Expressions ----

type NullLiteral struct{ base }

type NumberLiteral struct {
	base
	Value float64
}

type StringLiteral struct {
	base
	Value string
}

type BooleanLiteral struct {
	base
	Value bool
}

type ListExpr struct {
	base
	Elements []Expr
}

type DictExpr struct {
	base
	Keys   []Expr
	Values []Expr
}

// RangeExpr is the `a..b`, `a..=b`, optionally `step s`, range
// constructor of §4.2/§4.4.
type RangeExpr struct {
	base
	Start     Expr
	End       Expr
	Inclusive bool
	Step      Expr // nil means default step 1
}

// IdentifierExpr is a variable read. ResolvedDistance is the resolver's
// one in-place AST mutation (§4.3): nil means "look up in globals", a
// non-negative pointer means "skip that many enclosing scopes".
type IdentifierExpr struct {
	base
	Name             string
	ResolvedDistance *int
}

// SelfExpr is the implicit receiver reference; it resolves exactly like
// an IdentifierExpr named "self" (§4.3).
type SelfExpr struct {
	base
	ResolvedDistance *int
}

// AssignExpr assigns to a plain variable name (property-set and
// index-set are their own node kinds, below).
type AssignExpr struct {
	base
	Name             string
	Op               AssignOp
	Value            Expr
	ResolvedDistance *int
}

type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpNullCoalesce
)

type BinaryExpr struct {
	base
	Left  Expr
	Op    BinaryOp
	Right Expr
}

type UnaryOp int

const (
	OpNegate UnaryOp = iota
	OpNot
)

type UnaryExpr struct {
	base
	Op    UnaryOp
	Right Expr
}

type LogicalOp int

const (
	OpAnd LogicalOp = iota
	OpOr
)

type LogicalExpr struct {
	base
	Left  Expr
	Op    LogicalOp
	Right Expr
}

type GroupingExpr struct {
	base
	Inner Expr
}

type TernaryExpr struct {
	base
	Cond Expr
	Then Expr
	Else Expr
}

type CallExpr struct {
	base
	Callee Expr
	Args   []Expr
}

type IndexExpr struct {
	base
	Object Expr
	Index  Expr
}

type IndexSetExpr struct {
	base
	Object Expr
	Index  Expr
	Op     AssignOp
	Value  Expr
}

type PropertyExpr struct {
	base
	Object Expr
	Name   string
}

type PropertySetExpr struct {
	base
	Object Expr
	Name   string
	Op     AssignOp
	Value  Expr
}

func (NullLiteral) exprNode()     {}
func (NumberLiteral) exprNode()   {}
func (StringLiteral) exprNode()   {}
func (BooleanLiteral) exprNode()  {}
func (ListExpr) exprNode()        {}
func (DictExpr) exprNode()        {}
func (RangeExpr) exprNode()       {}
func (IdentifierExpr) exprNode()  {}
func (SelfExpr) exprNode()        {}
func (AssignExpr) exprNode()      {}
func (BinaryExpr) exprNode()      {}
func (UnaryExpr) exprNode()       {}
func (LogicalExpr) exprNode()     {}
func (GroupingExpr) exprNode()    {}
func (TernaryExpr) exprNode()     {}
func (CallExpr) exprNode()        {}
func (IndexExpr) exprNode()       {}
func (IndexSetExpr) exprNode()    {}
func (PropertyExpr) exprNode()    {}
func (PropertySetExpr) exprNode() {}

// ---- Statements ----

type ExprStmt struct {
	base
	Expr Expr
}

// VarStmt is a `var` declaration; Init is nil when no initializer is
// given (the binding starts out Null).
type VarStmt struct {
	base
	Name string
	Init Expr
}

type BlockStmt struct {
	base
	Statements []Stmt
}

type IfStmt struct {
	base
	Cond Expr
	Then Stmt
	Else Stmt // nil if no else branch
}

// WhileStmt models the `while-tail` production: an optional
// pre-declaration run once, the loop condition, an optional step
// expression run after each iteration, and the body.
type WhileStmt struct {
	base
	PreDecl Stmt // nil if absent
	Cond    Expr
	Step    Expr // nil if absent
	Body    Stmt
}

// ForInStmt is `for elem[, index] in iterable do ... end`.
type ForInStmt struct {
	base
	ElemName  string
	IndexName string // "" means no index binder
	Iterable  Expr
	Body      Stmt
}

// TryStmt is `try ... catch [kind [value]] ... ensure ... end`. KindName
// and ValueName are "" when their binder was omitted; Catch/Ensure are
// nil when that clause was omitted.
type TryStmt struct {
	base
	Body      Stmt
	KindName  string
	ValueName string
	Catch     Stmt
	Ensure    Stmt
}

type ThrowStmt struct {
	base
	Value Expr
}

type ReturnStmt struct {
	base
	Value Expr // nil for bare `return`
}

type BreakStmt struct{ base }

type ContinueStmt struct{ base }

// FuncDeclStmt is both a top-level `fn` declaration and an `obj` method
// declaration; Bound is true for object methods (an implicit `self`
// parameter resolves inside the body) and false for ordinary functions.
type FuncDeclStmt struct {
	base
	Name   string
	Params []string
	Body   *BlockStmt
	Bound  bool
	// ArgWarning records a >255-argument warning attached by the parser
	// (§4.2 "Limits"); empty when there is none.
	ArgWarning string
}

type ObjDeclStmt struct {
	base
	Name    string
	Methods []*FuncDeclStmt
}

type UseStmt struct {
	base
	Path Expr
}

func (ExprStmt) stmtNode()     {}
func (VarStmt) stmtNode()      {}
func (BlockStmt) stmtNode()    {}
func (IfStmt) stmtNode()       {}
func (WhileStmt) stmtNode()    {}
func (ForInStmt) stmtNode()    {}
func (TryStmt) stmtNode()      {}
func (ThrowStmt) stmtNode()    {}
func (ReturnStmt) stmtNode()   {}
func (BreakStmt) stmtNode()    {}
func (ContinueStmt) stmtNode() {}
func (FuncDeclStmt) stmtNode() {}
func (ObjDeclStmt) stmtNode()  {}
func (UseStmt) stmtNode()      {}

// Program is the root of a parsed source unit.
type Program struct {
	Statements []Stmt
}
