// Package resolve performs the static analysis pass between parsing and
// evaluation: it walks the tree once, maintaining a stack of lexical
// scopes, and records how many enclosing scopes separate each variable
// reference from its declaration. The interpreter uses that table to reach
// straight for the right Environment instead of searching at run time, and
// the pass also catches every compile-time error spec.md §4.3 names (bad
// `this`/`super` usage, bad `return`, self-inheriting classes, reading a
// local in its own initializer).
package resolve

import (
	"fmt"

	"github.com/lox-lang/lox/ast"
	"github.com/lox-lang/lox/lexer"
)

// ResolveError pairs a diagnostic with the offending token.
type ResolveError struct {
	Token   lexer.Token
	Message string
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("[line %d] Error at '%s': %s", e.Token.Line, e.Token.Lexeme, e.Message)
}

type functionType int

const (
	ftNone functionType = iota
	ftFunction
	ftInitializer
	ftMethod
)

type classType int

const (
	ctNone classType = iota
	ctClass
	ctSubclass
)

// Resolver walks a parsed tree and produces the locals table the
// interpreter needs for depth-addressed variable lookups.
type Resolver struct {
	scopes          []map[string]bool
	locals          map[ast.Expr]int
	currentFunction functionType
	currentClass    classType
	errors          []*ResolveError
}

// New creates a Resolver ready to walk a program's top-level statements.
func New() *Resolver {
	return &Resolver{
		locals:          make(map[ast.Expr]int),
		currentFunction: ftNone,
		currentClass:    ctNone,
	}
}

// Resolve walks every statement and returns the completed locals table plus
// any static errors found. The interpreter should not run if errs is
// non-empty (spec.md §4.3).
func (r *Resolver) Resolve(stmts []ast.Stmt) (map[ast.Expr]int, []*ResolveError) {
	r.resolveStmts(stmts)
	return r.locals, r.errors
}

func (r *Resolver) errorf(tok lexer.Token, message string) {
	r.errors = append(r.errors, &ResolveError{Token: tok, Message: message})
}

// ---- scope stack ----

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

// declare marks name as present in the innermost scope but not yet usable;
// a reference to it before define resolves is the "own initializer" error.
// Redeclaring a name already present in this same scope is allowed and
// simply overwrites it (spec.md §8), matching environment.Define.
func (r *Resolver) declare(name lexer.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = false
}

func (r *Resolver) define(name lexer.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

// resolveLocal records, for expr, how many scopes out name is bound in.
// Names never found in any local scope are left out of the table
// entirely — the interpreter then treats them as globals.
func (r *Resolver) resolveLocal(expr ast.Expr, name lexer.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.locals[expr] = len(r.scopes) - 1 - i
			return
		}
	}
}

// ---- statements ----

func (r *Resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(s ast.Stmt) {
	_ = s.Accept(r)
}

func (r *Resolver) resolveExpr(e ast.Expr) {
	_, _ = e.Accept(r)
}

func (r *Resolver) VisitBlockStmt(s *ast.BlockStmt) error {
	r.beginScope()
	r.resolveStmts(s.Statements)
	r.endScope()
	return nil
}

func (r *Resolver) VisitVarStmt(s *ast.VarStmt) error {
	r.declare(s.Name)
	if s.Initializer != nil {
		r.resolveExpr(s.Initializer)
	}
	r.define(s.Name)
	return nil
}

func (r *Resolver) VisitFunctionStmt(s *ast.FunctionStmt) error {
	r.declare(s.Name)
	r.define(s.Name)
	r.resolveFunction(s, ftFunction)
	return nil
}

func (r *Resolver) resolveFunction(s *ast.FunctionStmt, ft functionType) {
	enclosingFunction := r.currentFunction
	r.currentFunction = ft
	r.beginScope()
	for _, param := range s.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(s.Body)
	r.endScope()
	r.currentFunction = enclosingFunction
}

func (r *Resolver) VisitExpressionStmt(s *ast.ExpressionStmt) error {
	r.resolveExpr(s.Expression)
	return nil
}

func (r *Resolver) VisitIfStmt(s *ast.IfStmt) error {
	r.resolveExpr(s.Condition)
	r.resolveStmt(s.Then)
	if s.Else != nil {
		r.resolveStmt(s.Else)
	}
	return nil
}

func (r *Resolver) VisitPrintStmt(s *ast.PrintStmt) error {
	r.resolveExpr(s.Expression)
	return nil
}

func (r *Resolver) VisitReturnStmt(s *ast.ReturnStmt) error {
	if r.currentFunction == ftNone {
		r.errorf(s.Keyword, "Can't return from top-level code.")
	}
	if s.Value != nil {
		if r.currentFunction == ftInitializer {
			r.errorf(s.Keyword, "Can't return a value from an initializer.")
		}
		r.resolveExpr(s.Value)
	}
	return nil
}

func (r *Resolver) VisitWhileStmt(s *ast.WhileStmt) error {
	r.resolveExpr(s.Condition)
	r.resolveStmt(s.Body)
	return nil
}

func (r *Resolver) VisitClassStmt(s *ast.ClassStmt) error {
	enclosingClass := r.currentClass
	r.currentClass = ctClass
	r.declare(s.Name)
	r.define(s.Name)

	if s.Superclass != nil {
		if s.Superclass.Name.Lexeme == s.Name.Lexeme {
			r.errorf(s.Superclass.Name, "A class can't inherit from itself.")
		}
		r.currentClass = ctSubclass
		r.resolveExpr(s.Superclass)

		r.beginScope()
		r.scopes[len(r.scopes)-1]["super"] = true
	}

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = true

	for _, method := range s.Methods {
		ft := ftMethod
		if method.Name.Lexeme == "init" {
			ft = ftInitializer
		}
		r.resolveFunction(method, ft)
	}

	r.endScope()

	if s.Superclass != nil {
		r.endScope()
	}

	r.currentClass = enclosingClass
	return nil
}

// ---- expressions ----

func (r *Resolver) VisitVariableExpr(e *ast.VariableExpr) (interface{}, error) {
	if len(r.scopes) > 0 {
		if defined, ok := r.scopes[len(r.scopes)-1][e.Name.Lexeme]; ok && !defined {
			r.errorf(e.Name, "Can't read local variable in its own initializer.")
		}
	}
	r.resolveLocal(e, e.Name)
	return nil, nil
}

func (r *Resolver) VisitAssignExpr(e *ast.AssignExpr) (interface{}, error) {
	r.resolveExpr(e.Value)
	r.resolveLocal(e, e.Name)
	return nil, nil
}

func (r *Resolver) VisitBinaryExpr(e *ast.BinaryExpr) (interface{}, error) {
	r.resolveExpr(e.Left)
	r.resolveExpr(e.Right)
	return nil, nil
}

func (r *Resolver) VisitCallExpr(e *ast.CallExpr) (interface{}, error) {
	r.resolveExpr(e.Callee)
	for _, arg := range e.Args {
		r.resolveExpr(arg)
	}
	return nil, nil
}

func (r *Resolver) VisitGetExpr(e *ast.GetExpr) (interface{}, error) {
	r.resolveExpr(e.Object)
	return nil, nil
}

func (r *Resolver) VisitGroupingExpr(e *ast.GroupingExpr) (interface{}, error) {
	r.resolveExpr(e.Expression)
	return nil, nil
}

func (r *Resolver) VisitLiteralExpr(e *ast.LiteralExpr) (interface{}, error) {
	return nil, nil
}

func (r *Resolver) VisitLogicalExpr(e *ast.LogicalExpr) (interface{}, error) {
	r.resolveExpr(e.Left)
	r.resolveExpr(e.Right)
	return nil, nil
}

func (r *Resolver) VisitSetExpr(e *ast.SetExpr) (interface{}, error) {
	r.resolveExpr(e.Value)
	r.resolveExpr(e.Object)
	return nil, nil
}

func (r *Resolver) VisitSuperExpr(e *ast.SuperExpr) (interface{}, error) {
	switch r.currentClass {
	case ctNone:
		r.errorf(e.Keyword, "Can't use 'super' outside of a class.")
	case ctClass:
		r.errorf(e.Keyword, "Can't use 'super' in a class with no superclass.")
	}
	r.resolveLocal(e, e.Keyword)
	return nil, nil
}

func (r *Resolver) VisitThisExpr(e *ast.ThisExpr) (interface{}, error) {
	if r.currentClass == ctNone {
		r.errorf(e.Keyword, "Can't use 'this' outside of a class.")
	}
	r.resolveLocal(e, e.Keyword)
	return nil, nil
}

func (r *Resolver) VisitUnaryExpr(e *ast.UnaryExpr) (interface{}, error) {
	r.resolveExpr(e.Right)
	return nil, nil
}
