// Package interp is the tree-walking evaluator: it executes the statement
// list the parser produced, using the resolver's locals table to reach
// straight for the right Environment on every variable access. Function
// call dispatch lives here (not in package callable) as a type-switch over
// the concrete callable kinds, which is what lets callable stay free of any
// dependency on this package.
package interp

import (
	"fmt"
	"io"
	"time"

	"github.com/lox-lang/lox/ast"
	"github.com/lox-lang/lox/callable"
	"github.com/lox-lang/lox/environment"
	"github.com/lox-lang/lox/lexer"
	"github.com/lox-lang/lox/objects"
)

// RuntimeError is a Lox runtime fault: it aborts evaluation of the current
// statement/expression chain without being recoverable within the script.
type RuntimeError struct {
	Token   lexer.Token
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d]", e.Message, e.Token.Line)
}

func newRuntimeError(tok lexer.Token, format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{Token: tok, Message: fmt.Sprintf(format, args...)}
}

// returnSignal is how a `return` statement unwinds to its enclosing call
// without panic/recover: it is threaded back up through the ordinary error
// return path and unwrapped at the function-call boundary.
type returnSignal struct {
	value objects.Value
}

func (r *returnSignal) Error() string { return "return" }

// Interpreter executes a resolved program. Globals is the outermost scope;
// Env is the scope currently in effect while walking the tree.
type Interpreter struct {
	Globals *environment.Environment
	Env     *environment.Environment
	Locals  map[ast.Expr]int
	Out     io.Writer
}

// New creates an Interpreter with the standard native globals installed
// (SPEC_FULL.md §5) and output directed at out.
func New(out io.Writer) *Interpreter {
	globals := environment.New(nil)
	it := &Interpreter{Globals: globals, Env: globals, Locals: make(map[ast.Expr]int), Out: out}
	it.defineNatives()
	return it
}

func (it *Interpreter) defineNatives() {
	it.Globals.Define("clock", &callable.NativeFunction{
		Name: "clock",
		Arr:  0,
		Fn: func(args []objects.Value) (objects.Value, error) {
			return objects.Number(float64(time.Now().UnixNano()) / 1e9), nil
		},
	})
	it.Globals.Define("str", &callable.NativeFunction{
		Name: "str",
		Arr:  1,
		Fn: func(args []objects.Value) (objects.Value, error) {
			return objects.String(stringify(args[0])), nil
		},
	})
	it.Globals.Define("type", &callable.NativeFunction{
		Name: "type",
		Arr:  1,
		Fn: func(args []objects.Value) (objects.Value, error) {
			return objects.String(string(args[0].Type())), nil
		},
	})
}

// SetLocals replaces the resolution table with the resolver's computed one
// (which must be non-nil). New starts the interpreter with an empty table.
func (it *Interpreter) SetLocals(locals map[ast.Expr]int) {
	it.Locals = locals
}

// EvalExpression evaluates a single expression in the interpreter's current
// global scope. Used by the REPL to echo the value of a bare expression
// statement without going through execute/print.
func (it *Interpreter) EvalExpression(e ast.Expr) (objects.Value, error) {
	return it.evaluate(e)
}

// Interpret runs a whole program's statements in order, stopping at the
// first runtime error.
func (it *Interpreter) Interpret(stmts []ast.Stmt) error {
	for _, s := range stmts {
		if err := it.execute(s); err != nil {
			return err
		}
	}
	return nil
}

func (it *Interpreter) execute(s ast.Stmt) error {
	return s.Accept(it)
}

func (it *Interpreter) evaluate(e ast.Expr) (objects.Value, error) {
	v, err := e.Accept(it)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return objects.Nil{}, nil
	}
	return v.(objects.Value), nil
}

func stringify(v objects.Value) string {
	if v == nil {
		return "nil"
	}
	return v.String()
}

// ---- statements ----

func (it *Interpreter) VisitExpressionStmt(s *ast.ExpressionStmt) error {
	_, err := it.evaluate(s.Expression)
	return err
}

func (it *Interpreter) VisitPrintStmt(s *ast.PrintStmt) error {
	v, err := it.evaluate(s.Expression)
	if err != nil {
		return err
	}
	fmt.Fprintln(it.Out, stringify(v))
	return nil
}

func (it *Interpreter) VisitVarStmt(s *ast.VarStmt) error {
	var value objects.Value = objects.Nil{}
	if s.Initializer != nil {
		v, err := it.evaluate(s.Initializer)
		if err != nil {
			return err
		}
		value = v
	}
	it.Env.Define(s.Name.Lexeme, value)
	return nil
}

func (it *Interpreter) VisitBlockStmt(s *ast.BlockStmt) error {
	return it.executeBlock(s.Statements, environment.New(it.Env))
}

// executeBlock swaps in env for the duration of stmts, restoring the
// previous environment on every exit path (normal, error, or return).
func (it *Interpreter) executeBlock(stmts []ast.Stmt, env *environment.Environment) error {
	previous := it.Env
	it.Env = env
	defer func() { it.Env = previous }()

	for _, s := range stmts {
		if err := it.execute(s); err != nil {
			return err
		}
	}
	return nil
}

func (it *Interpreter) VisitIfStmt(s *ast.IfStmt) error {
	cond, err := it.evaluate(s.Condition)
	if err != nil {
		return err
	}
	if objects.IsTruthy(cond) {
		return it.execute(s.Then)
	}
	if s.Else != nil {
		return it.execute(s.Else)
	}
	return nil
}

func (it *Interpreter) VisitWhileStmt(s *ast.WhileStmt) error {
	for {
		cond, err := it.evaluate(s.Condition)
		if err != nil {
			return err
		}
		if !objects.IsTruthy(cond) {
			return nil
		}
		if err := it.execute(s.Body); err != nil {
			return err
		}
	}
}

func (it *Interpreter) VisitFunctionStmt(s *ast.FunctionStmt) error {
	fn := &callable.UserFunction{Declaration: s, Closure: it.Env}
	it.Env.Define(s.Name.Lexeme, fn)
	return nil
}

func (it *Interpreter) VisitReturnStmt(s *ast.ReturnStmt) error {
	var value objects.Value = objects.Nil{}
	if s.Value != nil {
		v, err := it.evaluate(s.Value)
		if err != nil {
			return err
		}
		value = v
	}
	return &returnSignal{value: value}
}

func (it *Interpreter) VisitClassStmt(s *ast.ClassStmt) error {
	var superclass *callable.Class
	if s.Superclass != nil {
		sv, err := it.evaluate(s.Superclass)
		if err != nil {
			return err
		}
		sc, ok := sv.(*callable.Class)
		if !ok {
			return newRuntimeError(s.Superclass.Name, "Superclass must be a class.")
		}
		superclass = sc
	}

	it.Env.Define(s.Name.Lexeme, objects.Nil{})

	classEnv := it.Env
	if s.Superclass != nil {
		classEnv = environment.New(it.Env)
		classEnv.Define("super", superclass)
	}

	methods := make(map[string]*callable.UserFunction)
	for _, m := range s.Methods {
		methods[m.Name.Lexeme] = &callable.UserFunction{
			Declaration:   m,
			Closure:       classEnv,
			IsInitializer: m.Name.Lexeme == "init",
		}
	}

	class := &callable.Class{Name: s.Name.Lexeme, Superclass: superclass, Methods: methods}
	return it.Env.Assign(s.Name.Lexeme, class)
}

// ---- expressions ----

func (it *Interpreter) VisitLiteralExpr(e *ast.LiteralExpr) (interface{}, error) {
	return literalValue(e.Value), nil
}

func literalValue(v interface{}) objects.Value {
	switch x := v.(type) {
	case nil:
		return objects.Nil{}
	case bool:
		return objects.Bool(x)
	case float64:
		return objects.Number(x)
	case string:
		return objects.String(x)
	default:
		return objects.Nil{}
	}
}

func (it *Interpreter) VisitGroupingExpr(e *ast.GroupingExpr) (interface{}, error) {
	return it.evaluate(e.Expression)
}

func (it *Interpreter) VisitVariableExpr(e *ast.VariableExpr) (interface{}, error) {
	return it.lookUpVariable(e.Name, e)
}

func (it *Interpreter) lookUpVariable(name lexer.Token, expr ast.Expr) (objects.Value, error) {
	if distance, ok := it.Locals[expr]; ok {
		return it.Env.GetAt(distance, name.Lexeme), nil
	}
	v, err := it.Globals.Get(name.Lexeme)
	if err != nil {
		return nil, newRuntimeError(name, "%s", err.Error())
	}
	return v, nil
}

func (it *Interpreter) VisitAssignExpr(e *ast.AssignExpr) (interface{}, error) {
	value, err := it.evaluate(e.Value)
	if err != nil {
		return nil, err
	}
	if distance, ok := it.Locals[e]; ok {
		it.Env.AssignAt(distance, e.Name.Lexeme, value)
		return value, nil
	}
	if err := it.Globals.Assign(e.Name.Lexeme, value); err != nil {
		return nil, newRuntimeError(e.Name, "%s", err.Error())
	}
	return value, nil
}

func (it *Interpreter) VisitUnaryExpr(e *ast.UnaryExpr) (interface{}, error) {
	right, err := it.evaluate(e.Right)
	if err != nil {
		return nil, err
	}
	switch e.Operator.Type {
	case lexer.MINUS:
		n, ok := right.(objects.Number)
		if !ok {
			return nil, newRuntimeError(e.Operator, "Operand must be a number.")
		}
		return -n, nil
	case lexer.BANG:
		return objects.Bool(!objects.IsTruthy(right)), nil
	}
	return nil, newRuntimeError(e.Operator, "Unknown unary operator.")
}

func (it *Interpreter) VisitLogicalExpr(e *ast.LogicalExpr) (interface{}, error) {
	left, err := it.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	if e.Operator.Type == lexer.OR {
		if objects.IsTruthy(left) {
			return left, nil
		}
	} else {
		if !objects.IsTruthy(left) {
			return left, nil
		}
	}
	return it.evaluate(e.Right)
}

func (it *Interpreter) VisitBinaryExpr(e *ast.BinaryExpr) (interface{}, error) {
	left, err := it.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := it.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator.Type {
	case lexer.PLUS:
		if ln, ok := left.(objects.Number); ok {
			if rn, ok := right.(objects.Number); ok {
				return ln + rn, nil
			}
		}
		if ls, ok := left.(objects.String); ok {
			if rs, ok := right.(objects.String); ok {
				return ls + rs, nil
			}
		}
		return nil, newRuntimeError(e.Operator, "Operands must be two numbers or two strings.")
	case lexer.MINUS:
		ln, rn, err := it.numberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return ln - rn, nil
	case lexer.STAR:
		ln, rn, err := it.numberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return ln * rn, nil
	case lexer.SLASH:
		ln, rn, err := it.numberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return ln / rn, nil
	case lexer.GREATER:
		ln, rn, err := it.numberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return objects.Bool(ln > rn), nil
	case lexer.GREATER_EQUAL:
		ln, rn, err := it.numberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return objects.Bool(ln >= rn), nil
	case lexer.LESS:
		ln, rn, err := it.numberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return objects.Bool(ln < rn), nil
	case lexer.LESS_EQUAL:
		ln, rn, err := it.numberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return objects.Bool(ln <= rn), nil
	case lexer.BANG_EQUAL:
		return objects.Bool(!objects.Equals(left, right)), nil
	case lexer.EQUAL_EQUAL:
		return objects.Bool(objects.Equals(left, right)), nil
	}
	return nil, newRuntimeError(e.Operator, "Unknown binary operator.")
}

func (it *Interpreter) numberOperands(op lexer.Token, left, right objects.Value) (objects.Number, objects.Number, error) {
	ln, ok := left.(objects.Number)
	if !ok {
		return 0, 0, newRuntimeError(op, "Operands must be numbers.")
	}
	rn, ok := right.(objects.Number)
	if !ok {
		return 0, 0, newRuntimeError(op, "Operands must be numbers.")
	}
	return ln, rn, nil
}

func (it *Interpreter) VisitCallExpr(e *ast.CallExpr) (interface{}, error) {
	callee, err := it.evaluate(e.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]objects.Value, 0, len(e.Args))
	for _, a := range e.Args {
		v, err := it.evaluate(a)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	return it.call(e.Paren, callee, args)
}

// call dispatches a Lox call expression by type-switching on the concrete
// callable kind. Keeping this switch here (rather than a Call method on an
// interface in package callable) is what keeps callable free of any
// dependency on interp.
func (it *Interpreter) call(paren lexer.Token, callee objects.Value, args []objects.Value) (objects.Value, error) {
	switch fn := callee.(type) {
	case *callable.NativeFunction:
		if len(args) != fn.Arr {
			return nil, newRuntimeError(paren, "Expected %d arguments but got %d.", fn.Arr, len(args))
		}
		return fn.Fn(args)
	case *callable.UserFunction:
		if len(args) != fn.Arity() {
			return nil, newRuntimeError(paren, "Expected %d arguments but got %d.", fn.Arity(), len(args))
		}
		return it.callUserFunction(fn, args)
	case *callable.Class:
		if len(args) != fn.Arity() {
			return nil, newRuntimeError(paren, "Expected %d arguments but got %d.", fn.Arity(), len(args))
		}
		instance := callable.NewInstance(fn)
		if init, ok := fn.FindMethod("init"); ok {
			if _, err := it.callUserFunction(init.Bind(instance), args); err != nil {
				return nil, err
			}
		}
		return instance, nil
	default:
		return nil, newRuntimeError(paren, "Can only call functions and classes.")
	}
}

// callUserFunction runs fn's body in a fresh scope over its closure,
// binding parameters to args, and unwraps a returnSignal into its value.
// Initializers always yield `this`, even off a bare `return;`.
func (it *Interpreter) callUserFunction(fn *callable.UserFunction, args []objects.Value) (objects.Value, error) {
	callEnv := environment.New(fn.Closure)
	for i, param := range fn.Declaration.Params {
		callEnv.Define(param.Lexeme, args[i])
	}

	err := it.executeBlock(fn.Declaration.Body, callEnv)
	if ret, ok := err.(*returnSignal); ok {
		if fn.IsInitializer {
			return fn.Closure.GetAt(0, "this"), nil
		}
		return ret.value, nil
	}
	if err != nil {
		return nil, err
	}
	if fn.IsInitializer {
		return fn.Closure.GetAt(0, "this"), nil
	}
	return objects.Nil{}, nil
}

func (it *Interpreter) VisitGetExpr(e *ast.GetExpr) (interface{}, error) {
	obj, err := it.evaluate(e.Object)
	if err != nil {
		return nil, err
	}
	instance, ok := obj.(*callable.Instance)
	if !ok {
		return nil, newRuntimeError(e.Name, "Only instances have fields.")
	}
	v, ok := instance.Get(e.Name.Lexeme)
	if !ok {
		return nil, newRuntimeError(e.Name, "Undefined property '%s'.", e.Name.Lexeme)
	}
	return v, nil
}

func (it *Interpreter) VisitSetExpr(e *ast.SetExpr) (interface{}, error) {
	obj, err := it.evaluate(e.Object)
	if err != nil {
		return nil, err
	}
	instance, ok := obj.(*callable.Instance)
	if !ok {
		return nil, newRuntimeError(e.Name, "Only instances have fields.")
	}
	value, err := it.evaluate(e.Value)
	if err != nil {
		return nil, err
	}
	instance.Set(e.Name.Lexeme, value)
	return value, nil
}

func (it *Interpreter) VisitThisExpr(e *ast.ThisExpr) (interface{}, error) {
	return it.lookUpVariable(e.Keyword, e)
}

func (it *Interpreter) VisitSuperExpr(e *ast.SuperExpr) (interface{}, error) {
	distance := it.Locals[e]
	superclass := it.Env.GetAt(distance, "super").(*callable.Class)
	instance := it.Env.GetAt(distance-1, "this").(*callable.Instance)

	method, ok := superclass.FindMethod(e.Method.Lexeme)
	if !ok {
		return nil, newRuntimeError(e.Method, "Undefined property '%s'.", e.Method.Lexeme)
	}
	return method.Bind(instance), nil
}
