package eval

import (
	"strconv"

	"github.com/chazu/miniml/pkg/ast"
)

// Value is the result of evaluating an expression.
type Value interface {
	String() string
	value()
}

// Int is an int value. Arithmetic wraps on overflow.
type Int int64

// Bool is a bool value.
type Bool bool

// Closure is a function value together with the environment it was created
// in.
type Closure struct {
	Def *ast.FunctionDef
	env *Environment
}

func (Int) value()      {}
func (Bool) value()     {}
func (*Closure) value() {}

func (i Int) String() string  { return strconv.FormatInt(int64(i), 10) }
func (b Bool) String() string { return strconv.FormatBool(bool(b)) }

// String renders a function as its type, which is all a program can observe
// of it.
func (c *Closure) String() string {
	return "<fun: " + c.Def.Type().String() + ">"
}
