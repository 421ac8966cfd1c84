// Package ast defines the tree produced by the parser: a tagged union of
// expression and statement node types plus the Visitor interfaces used to
// walk them. Nodes are plain structs; the resolver and interpreter each
// implement ExprVisitor/StmtVisitor to give the tree its two meanings
// (resolution depths, then evaluated values).
package ast

import "github.com/lox-lang/lox/lexer"

// Expr is any expression node. Node identity (the pointer itself) is what
// the resolver keys its resolution table on — two syntactically identical
// but distinct `a` expressions resolve independently.
type Expr interface {
	Accept(v ExprVisitor) (interface{}, error)
}

// Stmt is any statement node.
type Stmt interface {
	Accept(v StmtVisitor) error
}

// ExprVisitor is implemented once by the resolver and once by the
// interpreter; each Visit method handles one expression variant.
type ExprVisitor interface {
	VisitLiteralExpr(e *LiteralExpr) (interface{}, error)
	VisitVariableExpr(e *VariableExpr) (interface{}, error)
	VisitAssignExpr(e *AssignExpr) (interface{}, error)
	VisitGroupingExpr(e *GroupingExpr) (interface{}, error)
	VisitUnaryExpr(e *UnaryExpr) (interface{}, error)
	VisitBinaryExpr(e *BinaryExpr) (interface{}, error)
	VisitLogicalExpr(e *LogicalExpr) (interface{}, error)
	VisitCallExpr(e *CallExpr) (interface{}, error)
	VisitGetExpr(e *GetExpr) (interface{}, error)
	VisitSetExpr(e *SetExpr) (interface{}, error)
	VisitThisExpr(e *ThisExpr) (interface{}, error)
	VisitSuperExpr(e *SuperExpr) (interface{}, error)
}

// StmtVisitor is implemented once by the resolver and once by the
// interpreter; each Visit method handles one statement variant.
type StmtVisitor interface {
	VisitExpressionStmt(s *ExpressionStmt) error
	VisitPrintStmt(s *PrintStmt) error
	VisitVarStmt(s *VarStmt) error
	VisitBlockStmt(s *BlockStmt) error
	VisitIfStmt(s *IfStmt) error
	VisitWhileStmt(s *WhileStmt) error
	VisitFunctionStmt(s *FunctionStmt) error
	VisitReturnStmt(s *ReturnStmt) error
	VisitClassStmt(s *ClassStmt) error
}

// ---- Expressions ----

// LiteralExpr is a literal number, string, boolean, or nil.
type LiteralExpr struct {
	Value interface{} // float64 | string | bool | nil
}

func (e *LiteralExpr) Accept(v ExprVisitor) (interface{}, error) { return v.VisitLiteralExpr(e) }

// VariableExpr reads a named variable.
type VariableExpr struct {
	Name lexer.Token
}

func (e *VariableExpr) Accept(v ExprVisitor) (interface{}, error) { return v.VisitVariableExpr(e) }

// AssignExpr assigns Value to Name, yielding the assigned value.
type AssignExpr struct {
	Name  lexer.Token
	Value Expr
}

func (e *AssignExpr) Accept(v ExprVisitor) (interface{}, error) { return v.VisitAssignExpr(e) }

// GroupingExpr is a parenthesized expression, kept distinct so printing and
// precedence stay easy to reason about even though evaluation is a no-op.
type GroupingExpr struct {
	Expression Expr
}

func (e *GroupingExpr) Accept(v ExprVisitor) (interface{}, error) { return v.VisitGroupingExpr(e) }

// UnaryExpr is a prefix operator applied to one operand (`-x`, `!x`).
type UnaryExpr struct {
	Operator lexer.Token
	Right    Expr
}

func (e *UnaryExpr) Accept(v ExprVisitor) (interface{}, error) { return v.VisitUnaryExpr(e) }

// BinaryExpr is a strict (non-short-circuiting) binary operator.
type BinaryExpr struct {
	Left     Expr
	Operator lexer.Token
	Right    Expr
}

func (e *BinaryExpr) Accept(v ExprVisitor) (interface{}, error) { return v.VisitBinaryExpr(e) }

// LogicalExpr is `and`/`or`, kept distinct from BinaryExpr because it
// short-circuits and returns the winning operand's actual value.
type LogicalExpr struct {
	Left     Expr
	Operator lexer.Token
	Right    Expr
}

func (e *LogicalExpr) Accept(v ExprVisitor) (interface{}, error) { return v.VisitLogicalExpr(e) }

// CallExpr is a function/method/class invocation. Paren is the closing `)`
// token, carried so runtime errors (wrong arity, not callable) have a line.
type CallExpr struct {
	Callee Expr
	Paren  lexer.Token
	Args   []Expr
}

func (e *CallExpr) Accept(v ExprVisitor) (interface{}, error) { return v.VisitCallExpr(e) }

// GetExpr reads a property (field or method) off an instance.
type GetExpr struct {
	Object Expr
	Name   lexer.Token
}

func (e *GetExpr) Accept(v ExprVisitor) (interface{}, error) { return v.VisitGetExpr(e) }

// SetExpr assigns a field on an instance.
type SetExpr struct {
	Object Expr
	Name   lexer.Token
	Value  Expr
}

func (e *SetExpr) Accept(v ExprVisitor) (interface{}, error) { return v.VisitSetExpr(e) }

// ThisExpr refers to the receiver inside a method body.
type ThisExpr struct {
	Keyword lexer.Token
}

func (e *ThisExpr) Accept(v ExprVisitor) (interface{}, error) { return v.VisitThisExpr(e) }

// SuperExpr is `super.method`; Keyword is the `super` token used for both
// the resolution lookup and any runtime error line.
type SuperExpr struct {
	Keyword lexer.Token
	Method  lexer.Token
}

func (e *SuperExpr) Accept(v ExprVisitor) (interface{}, error) { return v.VisitSuperExpr(e) }

// ---- Statements ----

// ExpressionStmt evaluates an expression and discards its value (unless the
// REPL front-end chooses to echo it).
type ExpressionStmt struct {
	Expression Expr
}

func (s *ExpressionStmt) Accept(v StmtVisitor) error { return v.VisitExpressionStmt(s) }

// PrintStmt evaluates an expression and writes its rendered form + newline.
type PrintStmt struct {
	Expression Expr
}

func (s *PrintStmt) Accept(v StmtVisitor) error { return v.VisitPrintStmt(s) }

// VarStmt declares Name, optionally initialized; uninitialized defaults to
// nil at evaluation time (the resolver still treats it as "declared but not
// yet defined" until the initializer, if any, finishes resolving).
type VarStmt struct {
	Name        lexer.Token
	Initializer Expr // nil if omitted
}

func (s *VarStmt) Accept(v StmtVisitor) error { return v.VisitVarStmt(s) }

// BlockStmt introduces a new lexical scope around its statements.
type BlockStmt struct {
	Statements []Stmt
}

func (s *BlockStmt) Accept(v StmtVisitor) error { return v.VisitBlockStmt(s) }

// IfStmt is `if (cond) then [else else_]`.
type IfStmt struct {
	Condition Expr
	Then      Stmt
	Else      Stmt // nil if omitted
}

func (s *IfStmt) Accept(v StmtVisitor) error { return v.VisitIfStmt(s) }

// WhileStmt is `while (cond) body`. The parser also uses this node to
// desugar `for` loops (see parser.forStatement).
type WhileStmt struct {
	Condition Expr
	Body      Stmt
}

func (s *WhileStmt) Accept(v StmtVisitor) error { return v.VisitWhileStmt(s) }

// FunctionStmt is a named function or method declaration.
type FunctionStmt struct {
	Name   lexer.Token
	Params []lexer.Token
	Body   []Stmt
}

func (s *FunctionStmt) Accept(v StmtVisitor) error { return v.VisitFunctionStmt(s) }

// ReturnStmt unwinds the enclosing function call with Value (nil Value
// means bare `return;`).
type ReturnStmt struct {
	Keyword lexer.Token
	Value   Expr // nil if omitted
}

func (s *ReturnStmt) Accept(v StmtVisitor) error { return v.VisitReturnStmt(s) }

// ClassStmt declares a class, its optional superclass variable reference,
// and its methods.
type ClassStmt struct {
	Name       lexer.Token
	Superclass *VariableExpr // nil if no `< Super` clause
	Methods    []*FunctionStmt
}

func (s *ClassStmt) Accept(v StmtVisitor) error { return v.VisitClassStmt(s) }
