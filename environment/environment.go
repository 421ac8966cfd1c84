// Package environment implements the lexical-scope chain the evaluator
// walks at run time, named and shaped after the teacher's scope.Scope but
// extended with depth-addressed access (GetAt/AssignAt) for the resolver's
// precomputed hop counts.
package environment

import (
	"fmt"

	"github.com/lox-lang/lox/objects"
)

// Environment is one lexical scope's name-to-value bindings, plus a link to
// the enclosing scope. A singly-linked chain of these, rooted at globals,
// is exactly the "Environment chain" spec.md §3 describes.
type Environment struct {
	values    map[string]objects.Value
	Enclosing *Environment
}

// New creates a scope enclosed by parent (nil for the global scope).
func New(parent *Environment) *Environment {
	return &Environment{values: make(map[string]objects.Value), Enclosing: parent}
}

// Define binds name in THIS scope, shadowing any outer binding of the same
// name. Re-defining a name already bound in this scope overwrites it,
// matching spec.md's "redeclaring a local with var ... overwrites it".
func (e *Environment) Define(name string, value objects.Value) {
	e.values[name] = value
}

// Get reads name from this scope, searching outward through the enclosing
// chain. The interpreter calls it only on the global scope — resolved local
// reads go through GetAt instead.
func (e *Environment) Get(name string) (objects.Value, error) {
	if v, ok := e.values[name]; ok {
		return v, nil
	}
	if e.Enclosing != nil {
		return e.Enclosing.Get(name)
	}
	return nil, fmt.Errorf("Undefined variable '%s'.", name)
}

// Assign writes to an existing binding of name, searching outward from this
// scope. It is a runtime error to assign to a name that was never defined
// anywhere in the chain.
func (e *Environment) Assign(name string, value objects.Value) error {
	if _, ok := e.values[name]; ok {
		e.values[name] = value
		return nil
	}
	if e.Enclosing != nil {
		return e.Enclosing.Assign(name, value)
	}
	return fmt.Errorf("Undefined variable '%s'.", name)
}

// Ancestor walks exactly distance links up the chain. Called only with
// distances the resolver computed against this same tree, so an out-of-range
// walk is an internal invariant violation, not user-facing.
func (e *Environment) Ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance; i++ {
		if env.Enclosing == nil {
			panic(fmt.Sprintf("environment: ancestor(%d) walked past the global scope", distance))
		}
		env = env.Enclosing
	}
	return env
}

// GetAt reads name from the scope exactly `distance` hops up the chain —
// the resolver having already proven it lives there.
func (e *Environment) GetAt(distance int, name string) objects.Value {
	return e.Ancestor(distance).values[name]
}

// AssignAt writes value into the scope exactly `distance` hops up the chain.
func (e *Environment) AssignAt(distance int, name string, value objects.Value) {
	e.Ancestor(distance).values[name] = value
}
