// Package ast defines the MiniML abstract syntax: the Type tree and the
// Expression tree produced by the parser.
//
// Every node exclusively owns its children. Nodes are built bottom-up by the
// constructors in build.go and are not mutated afterwards.
package ast

// Ident is an identifier: a variable reference or a declared function or
// parameter name.
type Ident string

// Type is a MiniML type: IntType, BoolType or *ArrowType.
type Type interface {
	typeNode()
	String() string
}

// IntType is the type of integers.
type IntType struct{}

func (IntType) typeNode() {}

// BoolType is the type of booleans.
type BoolType struct{}

func (BoolType) typeNode() {}

// ArrowType is the type of functions from Domain to Codomain.
type ArrowType struct {
	Domain   Type
	Codomain Type
}

func (*ArrowType) typeNode() {}

// TypesEqual reports whether a and b are structurally the same type.
func TypesEqual(a, b Type) bool {
	switch a := a.(type) {
	case IntType:
		_, ok := b.(IntType)
		return ok
	case BoolType:
		_, ok := b.(BoolType)
		return ok
	case *ArrowType:
		bb, ok := b.(*ArrowType)
		return ok && TypesEqual(a.Domain, bb.Domain) && TypesEqual(a.Codomain, bb.Codomain)
	}
	return false
}
