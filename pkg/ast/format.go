package ast

import (
	"strconv"
	"strings"
)

// Trees print as S-expressions:
//
//	1 + 2 * 3                      (+ 1 (* 2 3))
//	f x y                          ((f x) y)
//	if c then a else b             (if c a b)
//	fun f(x: int): int is x        (λ f (x: int): int x)
//	let f(x: int): int is x in e   (let f λ(x: int): int x in e)
//	let rec f(...) and g(...) in e (letrec [(λ f ...) (λ g ...)] in e)

func (IntType) String() string  { return "int" }
func (BoolType) String() string { return "bool" }

func (t *ArrowType) String() string {
	if _, ok := t.Domain.(*ArrowType); ok {
		return "(" + t.Domain.String() + ") -> " + t.Codomain.String()
	}
	return t.Domain.String() + " -> " + t.Codomain.String()
}

func (n Number) String() string { return strconv.FormatInt(int64(n), 10) }
func (b Bool) String() string   { return strconv.FormatBool(bool(b)) }

func (e *Var) String() string         { return string(e.Name) }
func (e *LiteralExpr) String() string { return e.Value.String() }
func (e *ArithBinOp) String() string  { return format(e) }
func (e *CmpBinOp) String() string    { return format(e) }
func (e *Application) String() string { return format(e) }
func (e *If) String() string          { return format(e) }
func (e *FunLiteral) String() string  { return format(e) }
func (e *LetFun) String() string      { return format(e) }
func (e *LetRec) String() string      { return format(e) }

func format(e Expr) string {
	var b strings.Builder
	writeExpr(&b, e)
	return b.String()
}

func writeExpr(b *strings.Builder, expr Expr) {
	switch e := expr.(type) {
	case *Var, *LiteralExpr:
		b.WriteString(e.String())
	case *ArithBinOp:
		writeBinary(b, e.Op.String(), e.Left, e.Right)
	case *CmpBinOp:
		writeBinary(b, e.Op.String(), e.Left, e.Right)
	case *Application:
		b.WriteByte('(')
		writeExpr(b, e.Callee)
		b.WriteByte(' ')
		writeExpr(b, e.Argument)
		b.WriteByte(')')
	case *If:
		b.WriteString("(if ")
		writeExpr(b, e.Cond)
		b.WriteByte(' ')
		writeExpr(b, e.Then)
		b.WriteByte(' ')
		writeExpr(b, e.Else)
		b.WriteByte(')')
	case *FunLiteral:
		writeLambda(b, e.Def)
	case *LetFun:
		b.WriteString("(let ")
		b.WriteString(string(e.Def.Name))
		b.WriteString(" λ")
		writeSignature(b, e.Def)
		b.WriteByte(' ')
		writeExpr(b, e.Def.Body)
		b.WriteString(" in ")
		writeExpr(b, e.Body)
		b.WriteByte(')')
	case *LetRec:
		b.WriteString("(letrec [")
		for i, def := range e.Defs {
			if i > 0 {
				b.WriteByte(' ')
			}
			writeLambda(b, def)
		}
		b.WriteString("] in ")
		writeExpr(b, e.Body)
		b.WriteByte(')')
	default:
		b.WriteString("<?>")
	}
}

func writeBinary(b *strings.Builder, op string, left, right Expr) {
	b.WriteByte('(')
	b.WriteString(op)
	b.WriteByte(' ')
	writeExpr(b, left)
	b.WriteByte(' ')
	writeExpr(b, right)
	b.WriteByte(')')
}

// writeLambda writes (λ name (param: T): R body)
func writeLambda(b *strings.Builder, def *FunctionDef) {
	b.WriteString("(λ ")
	b.WriteString(string(def.Name))
	b.WriteByte(' ')
	writeSignature(b, def)
	b.WriteByte(' ')
	writeExpr(b, def.Body)
	b.WriteByte(')')
}

func writeSignature(b *strings.Builder, def *FunctionDef) {
	b.WriteByte('(')
	b.WriteString(string(def.ParamName))
	b.WriteString(": ")
	b.WriteString(def.ParamType.String())
	b.WriteString("): ")
	b.WriteString(def.ReturnType.String())
}
