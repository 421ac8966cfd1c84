package callable

import (
	"fmt"

	"github.com/lox-lang/lox/objects"
)

// Class is a runtime class value: a name, an optional superclass, and its
// own methods (inherited methods are found by walking Superclass chains,
// not copied in).
type Class struct {
	Name       string
	Superclass *Class
	Methods    map[string]*UserFunction
}

func (c *Class) Type() objects.ValueType { return objects.ClassType }
func (c *Class) String() string          { return c.Name }

// Arity is the arity of the class's own or inherited "init" method, or 0 if
// it has none (spec.md §3).
func (c *Class) Arity() int {
	if init, ok := c.FindMethod("init"); ok {
		return init.Arity()
	}
	return 0
}

// FindMethod looks up name on c, then walks the superclass chain.
func (c *Class) FindMethod(name string) (*UserFunction, bool) {
	if m, ok := c.Methods[name]; ok {
		return m, true
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil, false
}

// Instance is a runtime object: a reference to its class plus an
// open-ended, schema-less field table (spec.md §3).
type Instance struct {
	Class  *Class
	Fields map[string]objects.Value
}

// NewInstance allocates an instance with no fields set.
func NewInstance(class *Class) *Instance {
	return &Instance{Class: class, Fields: make(map[string]objects.Value)}
}

func (i *Instance) Type() objects.ValueType { return objects.InstanceType }
func (i *Instance) String() string          { return fmt.Sprintf("%s instance", i.Class.Name) }

// Get reads a property: fields take priority over methods, and a found
// method comes back bound to this instance (spec.md §4.4 `get`).
func (i *Instance) Get(name string) (objects.Value, bool) {
	if v, ok := i.Fields[name]; ok {
		return v, true
	}
	if m, ok := i.Class.FindMethod(name); ok {
		return m.Bind(i), true
	}
	return nil, false
}

// Set assigns a field, creating it if it doesn't already exist.
func (i *Instance) Set(name string, value objects.Value) {
	i.Fields[name] = value
}
