// Package callable holds the compound, callable Value kinds: user-defined
// functions (with their closures), native functions, classes, and their
// instances. It mirrors the separation the teacher keeps between its
// objects package (plain data) and its function package (closures over
// scope + AST) — Call semantics live in package interp, not here, so this
// package never needs to import the interpreter and no import cycle forms.
package callable

import (
	"fmt"

	"github.com/lox-lang/lox/ast"
	"github.com/lox-lang/lox/environment"
	"github.com/lox-lang/lox/objects"
)

// UserFunction is a function value: its declaration plus the environment it
// closed over when defined. IsInitializer is true only for a method
// literally named "init" declared inside a class body (spec.md §3).
type UserFunction struct {
	Declaration   *ast.FunctionStmt
	Closure       *environment.Environment
	IsInitializer bool
}

func (f *UserFunction) Type() objects.ValueType { return objects.FunctionType }
func (f *UserFunction) String() string          { return fmt.Sprintf("<fn %s>", f.Declaration.Name.Lexeme) }
func (f *UserFunction) Arity() int              { return len(f.Declaration.Params) }

// Bind returns a copy of f whose closure has been extended with `this`
// bound to instance — exactly how spec.md §4.5 says bound methods should be
// represented: no separate "bound method" variant needed.
func (f *UserFunction) Bind(instance *Instance) *UserFunction {
	env := environment.New(f.Closure)
	env.Define("this", instance)
	return &UserFunction{Declaration: f.Declaration, Closure: env, IsInitializer: f.IsInitializer}
}

// NativeFunction wraps a host routine exposed to scripts (spec.md §6's
// clock(), plus the small supplemental set in SPEC_FULL.md §5).
type NativeFunction struct {
	Name string
	Arr  int
	Fn   func(args []objects.Value) (objects.Value, error)
}

func (n *NativeFunction) Type() objects.ValueType { return objects.FunctionType }
func (n *NativeFunction) String() string          { return "<native fn>" }
func (n *NativeFunction) Arity() int              { return n.Arr }
