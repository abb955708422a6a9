// Package eval runs MiniML expressions with a tree-walking interpreter.
//
// Expressions are type-checked before they run, so the interpreter never
// meets an ill-typed operation. What can still fail at run time is division
// by zero, recursion deeper than MaxDepth and cancellation of the context.
package eval

import (
	"context"
	"fmt"

	"github.com/chazu/miniml/pkg/ast"
	"github.com/chazu/miniml/pkg/check"
)

// MaxDepth bounds the number of nested function calls.
const MaxDepth = 10000

// RuntimeError reports a failure while evaluating Expr.
type RuntimeError struct {
	Expr ast.Expr
	Msg  string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("runtime error: %s in %s", e.Msg, e.Expr)
}

// Result is the value of a program and its type.
type Result struct {
	Value Value
	Type  ast.Type
}

// Eval type-checks e and evaluates it in an empty environment.
func Eval(ctx context.Context, e ast.Expr) (*Result, error) {
	t, _, err := check.Check(e)
	if err != nil {
		return nil, err
	}
	in := &interpreter{}
	v, err := in.eval(ctx, NewEnvironment(), e)
	if err != nil {
		return nil, err
	}
	return &Result{Value: v, Type: t}, nil
}

type interpreter struct {
	depth int // nested calls in progress
}

func (in *interpreter) eval(ctx context.Context, env *Environment, e ast.Expr) (Value, error) {
	switch e := e.(type) {
	case *ast.Var:
		v, ok := env.Get(e.Name)
		if !ok {
			return nil, &RuntimeError{Expr: e, Msg: "unbound variable " + string(e.Name)}
		}
		return v, nil

	case *ast.LiteralExpr:
		switch v := e.Value.(type) {
		case ast.Number:
			return Int(v), nil
		case ast.Bool:
			return Bool(v), nil
		}

	case *ast.ArithBinOp:
		l, r, err := in.operands(ctx, env, e.Left, e.Right)
		if err != nil {
			return nil, err
		}
		switch e.Op {
		case ast.Add:
			return l + r, nil
		case ast.Sub:
			return l - r, nil
		case ast.Mul:
			return l * r, nil
		case ast.Div:
			if r == 0 {
				return nil, &RuntimeError{Expr: e, Msg: "division by zero"}
			}
			return l / r, nil
		}

	case *ast.CmpBinOp:
		if e.Op == ast.Eq {
			l, err := in.eval(ctx, env, e.Left)
			if err != nil {
				return nil, err
			}
			r, err := in.eval(ctx, env, e.Right)
			if err != nil {
				return nil, err
			}
			return Bool(l == r), nil
		}
		l, r, err := in.operands(ctx, env, e.Left, e.Right)
		if err != nil {
			return nil, err
		}
		if e.Op == ast.Lt {
			return Bool(l < r), nil
		}
		return Bool(l > r), nil

	case *ast.Application:
		callee, err := in.eval(ctx, env, e.Callee)
		if err != nil {
			return nil, err
		}
		fn, ok := callee.(*Closure)
		if !ok {
			return nil, &RuntimeError{Expr: e, Msg: "cannot call " + callee.String()}
		}
		arg, err := in.eval(ctx, env, e.Argument)
		if err != nil {
			return nil, err
		}
		return in.apply(ctx, e, fn, arg)

	case *ast.If:
		cond, err := in.eval(ctx, env, e.Cond)
		if err != nil {
			return nil, err
		}
		if cond == Bool(true) {
			return in.eval(ctx, env, e.Then)
		}
		return in.eval(ctx, env, e.Else)

	case *ast.FunLiteral:
		return &Closure{Def: e.Def, env: env}, nil

	case *ast.LetFun:
		inner := env.Extend()
		inner.Set(e.Def.Name, &Closure{Def: e.Def, env: env})
		return in.eval(ctx, inner, e.Body)

	case *ast.LetRec:
		// Every closure of the group captures the environment that binds
		// the whole group.
		inner := env.Extend()
		for _, d := range e.Defs {
			inner.Set(d.Name, &Closure{Def: d, env: inner})
		}
		return in.eval(ctx, inner, e.Body)
	}

	panic(fmt.Sprintf("eval: unhandled expression %T", e))
}

// operands evaluates both sides of an int operator, left first.
func (in *interpreter) operands(ctx context.Context, env *Environment, left, right ast.Expr) (Int, Int, error) {
	l, err := in.evalInt(ctx, env, left)
	if err != nil {
		return 0, 0, err
	}
	r, err := in.evalInt(ctx, env, right)
	if err != nil {
		return 0, 0, err
	}
	return l, r, nil
}

func (in *interpreter) evalInt(ctx context.Context, env *Environment, e ast.Expr) (Int, error) {
	v, err := in.eval(ctx, env, e)
	if err != nil {
		return 0, err
	}
	i, ok := v.(Int)
	if !ok {
		return 0, &RuntimeError{Expr: e, Msg: "expected int, found " + v.String()}
	}
	return i, nil
}

func (in *interpreter) apply(ctx context.Context, call *ast.Application, fn *Closure, arg Value) (Value, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("evaluation stopped: %w", err)
	}
	if in.depth >= MaxDepth {
		return nil, &RuntimeError{Expr: call, Msg: fmt.Sprintf("more than %d nested calls", MaxDepth)}
	}
	in.depth++
	defer func() { in.depth-- }()

	env := fn.env.Extend()
	env.Set(fn.Def.ParamName, arg)
	return in.eval(ctx, env, fn.Def.Body)
}
