package eval

import "github.com/chazu/miniml/pkg/ast"

// Environment maps names to values. Lookups fall through to the enclosing
// environment.
type Environment struct {
	store map[ast.Ident]Value
	outer *Environment
}

// NewEnvironment returns an empty environment.
func NewEnvironment() *Environment {
	return &Environment{store: make(map[ast.Ident]Value)}
}

// Extend returns an empty environment enclosed by e.
func (e *Environment) Extend() *Environment {
	env := NewEnvironment()
	env.outer = e
	return env
}

// Get looks name up in e and its enclosing environments.
func (e *Environment) Get(name ast.Ident) (Value, bool) {
	for ; e != nil; e = e.outer {
		if v, ok := e.store[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Set binds name in e itself, shadowing any outer binding.
func (e *Environment) Set(name ast.Ident, v Value) {
	e.store[name] = v
}
