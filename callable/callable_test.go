package callable

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lox-lang/lox/ast"
	"github.com/lox-lang/lox/environment"
	"github.com/lox-lang/lox/lexer"
	"github.com/lox-lang/lox/objects"
)

func methodNamed(name string) *ast.FunctionStmt {
	return &ast.FunctionStmt{Name: lexer.Token{Type: lexer.IDENTIFIER, Lexeme: name}}
}

func TestClassFindMethodWalksSuperclassChain(t *testing.T) {
	env := environment.New(nil)
	base := &Class{
		Name:    "A",
		Methods: map[string]*UserFunction{"greet": {Declaration: methodNamed("greet"), Closure: env}},
	}
	derived := &Class{Name: "B", Superclass: base, Methods: map[string]*UserFunction{}}

	m, ok := derived.FindMethod("greet")
	require.True(t, ok)
	require.Equal(t, "greet", m.Declaration.Name.Lexeme)
}

func TestClassFindMethodOwnShadowsSuperclass(t *testing.T) {
	env := environment.New(nil)
	base := &Class{Name: "A", Methods: map[string]*UserFunction{
		"greet": {Declaration: methodNamed("greet"), Closure: env},
	}}
	own := &UserFunction{Declaration: methodNamed("greet"), Closure: env, IsInitializer: false}
	derived := &Class{Name: "B", Superclass: base, Methods: map[string]*UserFunction{"greet": own}}

	m, ok := derived.FindMethod("greet")
	require.True(t, ok)
	require.Same(t, own, m)
}

func TestClassArityFromInit(t *testing.T) {
	env := environment.New(nil)
	initFn := &ast.FunctionStmt{
		Name:   lexer.Token{Lexeme: "init"},
		Params: []lexer.Token{{Lexeme: "x"}, {Lexeme: "y"}},
	}
	class := &Class{Name: "Point", Methods: map[string]*UserFunction{
		"init": {Declaration: initFn, Closure: env},
	}}
	require.Equal(t, 2, class.Arity())
}

func TestClassArityWithoutInitIsZero(t *testing.T) {
	class := &Class{Name: "Empty", Methods: map[string]*UserFunction{}}
	require.Equal(t, 0, class.Arity())
}

func TestInstanceGetPrefersFieldOverMethod(t *testing.T) {
	env := environment.New(nil)
	class := &Class{Name: "A", Methods: map[string]*UserFunction{
		"x": {Declaration: methodNamed("x"), Closure: env},
	}}
	instance := NewInstance(class)
	instance.Set("x", objects.Number(42))

	v, ok := instance.Get("x")
	require.True(t, ok)
	require.Equal(t, objects.Number(42), v)
}

func TestInstanceGetBindsMethod(t *testing.T) {
	env := environment.New(nil)
	class := &Class{Name: "A", Methods: map[string]*UserFunction{
		"greet": {Declaration: methodNamed("greet"), Closure: env},
	}}
	instance := NewInstance(class)

	v, ok := instance.Get("greet")
	require.True(t, ok)
	bound := v.(*UserFunction)
	this, err := bound.Closure.Get("this")
	require.NoError(t, err)
	require.Same(t, instance, this)
}

func TestInstanceGetUndefinedPropertyFails(t *testing.T) {
	instance := NewInstance(&Class{Name: "A", Methods: map[string]*UserFunction{}})
	_, ok := instance.Get("missing")
	require.False(t, ok)
}

func TestInstanceStringFormat(t *testing.T) {
	instance := NewInstance(&Class{Name: "Point", Methods: map[string]*UserFunction{}})
	require.Equal(t, "Point instance", instance.String())
}
