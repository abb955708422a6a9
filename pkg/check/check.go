// Package check assigns types to MiniML expressions.
package check

import (
	"fmt"

	"github.com/chazu/miniml/pkg/ast"
)

// Error is a type error at a particular expression.
type Error struct {
	Expr ast.Expr
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("type error: %s in %s", e.Msg, e.Expr)
}

// Info holds the results of a successful check.
type Info struct {
	// Types maps every expression node to its type.
	Types map[ast.Expr]ast.Type
}

// TypeOf returns the recorded type of e, or nil.
func (info *Info) TypeOf(e ast.Expr) ast.Type {
	return info.Types[e]
}

// Check types e in an empty environment. The first error aborts the check.
func Check(e ast.Expr) (ast.Type, *Info, error) {
	c := &checker{info: &Info{Types: make(map[ast.Expr]ast.Type)}}
	t, err := c.expr(newScope(nil), e)
	if err != nil {
		return nil, nil, err
	}
	return t, c.info, nil
}

type scope struct {
	parent *scope
	vars   map[ast.Ident]ast.Type
}

func newScope(parent *scope) *scope {
	return &scope{parent: parent, vars: make(map[ast.Ident]ast.Type)}
}

func (s *scope) lookup(name ast.Ident) (ast.Type, bool) {
	for ; s != nil; s = s.parent {
		if t, ok := s.vars[name]; ok {
			return t, true
		}
	}
	return nil, false
}

type checker struct {
	info *Info
}

func (c *checker) expr(s *scope, expr ast.Expr) (ast.Type, error) {
	t, err := c.expr1(s, expr)
	if err != nil {
		return nil, err
	}
	c.info.Types[expr] = t
	return t, nil
}

func (c *checker) expr1(s *scope, expr ast.Expr) (ast.Type, error) {
	switch e := expr.(type) {
	case *ast.Var:
		t, ok := s.lookup(e.Name)
		if !ok {
			return nil, errorf(e, "unbound variable %s", e.Name)
		}
		return t, nil

	case *ast.LiteralExpr:
		switch e.Value.(type) {
		case ast.Number:
			return ast.IntType{}, nil
		case ast.Bool:
			return ast.BoolType{}, nil
		}
		return nil, errorf(e, "unknown literal %T", e.Value)

	case *ast.ArithBinOp:
		t1, t2, err := c.operands(s, e.Left, e.Right)
		if err != nil {
			return nil, err
		}
		if !isInt(t1) || !isInt(t2) {
			return nil, errorf(e, "operands to %s must be int, found %s and %s", e.Op, t1, t2)
		}
		return ast.IntType{}, nil

	case *ast.CmpBinOp:
		t1, t2, err := c.operands(s, e.Left, e.Right)
		if err != nil {
			return nil, err
		}
		if e.Op == ast.Eq {
			if !ast.TypesEqual(t1, t2) || !(isInt(t1) || isBool(t1)) {
				return nil, errorf(e, "cannot compare %s and %s", t1, t2)
			}
		} else if !isInt(t1) || !isInt(t2) {
			return nil, errorf(e, "operands to %s must be int, found %s and %s", e.Op, t1, t2)
		}
		return ast.BoolType{}, nil

	case *ast.Application:
		ft, err := c.expr(s, e.Callee)
		if err != nil {
			return nil, err
		}
		arrow, ok := ft.(*ast.ArrowType)
		if !ok {
			return nil, errorf(e, "cannot call non-function of type %s", ft)
		}
		at, err := c.expr(s, e.Argument)
		if err != nil {
			return nil, err
		}
		if !ast.TypesEqual(arrow.Domain, at) {
			return nil, errorf(e, "argument must be %s, found %s", arrow.Domain, at)
		}
		return arrow.Codomain, nil

	case *ast.If:
		ct, err := c.expr(s, e.Cond)
		if err != nil {
			return nil, err
		}
		if !isBool(ct) {
			return nil, errorf(e, "if condition must be bool, found %s", ct)
		}
		t1, t2, err := c.operands(s, e.Then, e.Else)
		if err != nil {
			return nil, err
		}
		if !ast.TypesEqual(t1, t2) {
			return nil, errorf(e, "both branches of if must have the same type, found %s and %s", t1, t2)
		}
		return t1, nil

	case *ast.FunLiteral:
		if err := c.def(s, e.Def); err != nil {
			return nil, err
		}
		return e.Def.Type(), nil

	case *ast.LetFun:
		if err := c.def(s, e.Def); err != nil {
			return nil, err
		}
		inner := newScope(s)
		inner.vars[e.Def.Name] = e.Def.Type()
		return c.expr(inner, e.Body)

	case *ast.LetRec:
		group := newScope(s)
		for _, d := range e.Defs {
			if _, dup := group.vars[d.Name]; dup {
				return nil, errorf(e, "%s is defined more than once in let rec", d.Name)
			}
			group.vars[d.Name] = d.Type()
		}
		for _, d := range e.Defs {
			if err := c.def(group, d); err != nil {
				return nil, err
			}
		}
		return c.expr(group, e.Body)
	}

	panic(fmt.Sprintf("check: unhandled expression %T", expr))
}

func (c *checker) operands(s *scope, left, right ast.Expr) (ast.Type, ast.Type, error) {
	t1, err := c.expr(s, left)
	if err != nil {
		return nil, nil, err
	}
	t2, err := c.expr(s, right)
	if err != nil {
		return nil, nil, err
	}
	return t1, t2, nil
}

// def checks a function body against its declared return type with the
// parameter bound on top of s.
func (c *checker) def(s *scope, d *ast.FunctionDef) error {
	inner := newScope(s)
	inner.vars[d.ParamName] = d.ParamType
	t, err := c.expr(inner, d.Body)
	if err != nil {
		return err
	}
	if !ast.TypesEqual(t, d.ReturnType) {
		return errorf(d.Body, "body of %s must be %s, found %s", d.Name, d.ReturnType, t)
	}
	return nil
}

func isInt(t ast.Type) bool {
	_, ok := t.(ast.IntType)
	return ok
}

func isBool(t ast.Type) bool {
	_, ok := t.(ast.BoolType)
	return ok
}

func errorf(e ast.Expr, format string, args ...any) error {
	return &Error{Expr: e, Msg: fmt.Sprintf(format, args...)}
}
