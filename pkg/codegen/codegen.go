// Package codegen generates a Go program from a MiniML expression.
//
// The program evaluates the expression and prints its value. Types map
// directly: int is int64, bool is bool and A -> B is func(A) B. Forms that
// bind names or branch are emitted as immediately invoked closures so every
// MiniML expression stays a Go expression.
package codegen

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/chazu/miniml/pkg/ast"
	"github.com/chazu/miniml/pkg/check"
)

// Result contains the generated code and the type of the program.
type Result struct {
	Code string
	Type ast.Type
}

// Generate type-checks e and produces the source of a Go main package.
func Generate(e ast.Expr) (*Result, error) {
	t, info, err := check.Check(e)
	if err != nil {
		return nil, err
	}

	g := &generator{info: info, helpers: map[ast.ArithOp]bool{}}
	f := jen.NewFile("main")

	body := g.expr(e)
	if _, ok := t.(*ast.ArrowType); ok {
		// Function values have no printable form.
		f.Func().Id("main").Params().Block(
			jen.Id("_").Op("=").Add(body),
			jen.Qual("fmt", "Println").Call(jen.Lit("<fun: "+t.String()+">")),
		)
	} else {
		f.Func().Id("main").Params().Block(
			jen.Qual("fmt", "Println").Call(body),
		)
	}

	g.generateHelpers(f)

	buf := &bytes.Buffer{}
	if err := f.Render(buf); err != nil {
		return nil, fmt.Errorf("rendering generated code: %w", err)
	}
	return &Result{Code: buf.String(), Type: t}, nil
}

type generator struct {
	info    *check.Info
	helpers map[ast.ArithOp]bool // arithmetic helpers the program calls
}

// expr translates e. Binary operators are not parenthesized here; operand
// positions wrap them with operand.
func (g *generator) expr(e ast.Expr) *jen.Statement {
	switch e := e.(type) {
	case *ast.Var:
		return jen.Id(safeGoName(string(e.Name)))

	case *ast.LiteralExpr:
		switch v := e.Value.(type) {
		case ast.Number:
			return jen.Lit(int64(v))
		case ast.Bool:
			return jen.Lit(bool(v))
		}

	case *ast.ArithBinOp:
		if viaHelper(e) {
			g.helpers[e.Op] = true
			return jen.Id(helperNames[e.Op]).Call(g.expr(e.Left), g.expr(e.Right))
		}
		return g.operand(e.Left).Op(e.Op.String()).Add(g.operand(e.Right))

	case *ast.CmpBinOp:
		return g.operand(e.Left).Op(e.Op.String()).Add(g.operand(e.Right))

	case *ast.Application:
		return g.operand(e.Callee).Call(g.expr(e.Argument))

	case *ast.If:
		// func() T { if cond { return then }; return else }()
		return jen.Func().Params().Add(g.typeOf(e)).Block(
			jen.If(g.expr(e.Cond)).Block(jen.Return(g.expr(e.Then))),
			jen.Return(g.expr(e.Else)),
		).Call()

	case *ast.FunLiteral:
		return g.function(e.Def)

	case *ast.LetFun:
		// func(name T) R { return body }(func(param P) Q { ... })
		name := jen.Id(safeGoName(string(e.Def.Name))).Add(goType(e.Def.Type()))
		return jen.Func().Params(name).Add(g.typeOf(e)).Block(
			jen.Return(g.expr(e.Body)),
		).Call(g.function(e.Def))

	case *ast.LetRec:
		return g.letRec(e)
	}

	panic(fmt.Sprintf("codegen: unhandled expression %T", e))
}

// operand translates e for use as an operator operand or callee.
func (g *generator) operand(e ast.Expr) *jen.Statement {
	switch e := e.(type) {
	case *ast.ArithBinOp:
		if !viaHelper(e) {
			return jen.Parens(g.expr(e))
		}
	case *ast.CmpBinOp:
		return jen.Parens(g.expr(e))
	}
	return g.expr(e)
}

func (g *generator) function(d *ast.FunctionDef) *jen.Statement {
	param := jen.Id(safeGoName(string(d.ParamName))).Add(goType(d.ParamType))
	return jen.Func().Params(param).Add(goType(d.ReturnType)).Block(
		jen.Return(g.expr(d.Body)),
	)
}

// letRec declares every name of the group before assigning any of them so
// each body can refer to all of them.
func (g *generator) letRec(e *ast.LetRec) *jen.Statement {
	var stmts []jen.Code
	for _, d := range e.Defs {
		stmts = append(stmts, jen.Var().Id(safeGoName(string(d.Name))).Add(goType(d.Type())))
	}
	for _, d := range e.Defs {
		stmts = append(stmts, jen.Id(safeGoName(string(d.Name))).Op("=").Add(g.function(d)))
	}
	for _, d := range e.Defs {
		stmts = append(stmts, jen.Id("_").Op("=").Id(safeGoName(string(d.Name))))
	}
	stmts = append(stmts, jen.Return(g.expr(e.Body)))
	return jen.Func().Params().Add(g.typeOf(e)).Block(stmts...).Call()
}

func (g *generator) typeOf(e ast.Expr) *jen.Statement {
	t := g.info.TypeOf(e)
	if t == nil {
		panic(fmt.Sprintf("codegen: no type recorded for %s", e))
	}
	return goType(t)
}

// Go folds constant expressions at compile time and rejects any that
// overflow or divide by zero. Integer literals are typed constants, so every
// division and any + - * on two literals go through a helper and run with
// wrapping int64 arithmetic.
var helperNames = map[ast.ArithOp]string{
	ast.Add: "add",
	ast.Sub: "sub",
	ast.Mul: "mul",
	ast.Div: "div",
}

func viaHelper(e *ast.ArithBinOp) bool {
	return e.Op == ast.Div || (isNumber(e.Left) && isNumber(e.Right))
}

func isNumber(e ast.Expr) bool {
	lit, ok := e.(*ast.LiteralExpr)
	if !ok {
		return false
	}
	_, ok = lit.Value.(ast.Number)
	return ok
}

// generateHelpers emits the arithmetic helpers the program uses, in operator
// order.
func (g *generator) generateHelpers(f *jen.File) {
	for _, op := range []ast.ArithOp{ast.Add, ast.Sub, ast.Mul, ast.Div} {
		if !g.helpers[op] {
			continue
		}
		f.Line()
		f.Func().Id(helperNames[op]).Params(jen.List(jen.Id("a"), jen.Id("b")).Int64()).Int64().Block(
			jen.Return(jen.Id("a").Op(op.String()).Id("b")),
		)
	}
}

func goType(t ast.Type) *jen.Statement {
	switch t := t.(type) {
	case ast.IntType:
		return jen.Int64()
	case ast.BoolType:
		return jen.Bool()
	case *ast.ArrowType:
		return jen.Func().Params(goType(t.Domain)).Add(goType(t.Codomain))
	}
	panic(fmt.Sprintf("codegen: unhandled type %T", t))
}

// reservedNames are Go keywords, predeclared identifiers and the names the
// generated program itself uses.
var reservedNames = map[string]bool{
	// keywords
	"break": true, "case": true, "chan": true, "const": true, "continue": true,
	"default": true, "defer": true, "else": true, "fallthrough": true, "for": true,
	"func": true, "go": true, "goto": true, "if": true, "import": true,
	"interface": true, "map": true, "package": true, "range": true, "return": true,
	"select": true, "struct": true, "switch": true, "type": true, "var": true,
	// predeclared
	"any": true, "bool": true, "byte": true, "comparable": true, "complex64": true,
	"complex128": true, "error": true, "float32": true, "float64": true, "int": true,
	"int8": true, "int16": true, "int32": true, "int64": true, "rune": true,
	"string": true, "uint": true, "uint8": true, "uint16": true, "uint32": true,
	"uint64": true, "uintptr": true, "true": true, "false": true, "iota": true,
	"nil": true, "append": true, "cap": true, "clear": true, "close": true,
	"complex": true, "copy": true, "delete": true, "imag": true, "len": true,
	"make": true, "max": true, "min": true, "new": true, "panic": true,
	"print": true, "println": true, "real": true, "recover": true,
	// generated program
	"main": true, "fmt": true, "add": true, "sub": true, "mul": true, "div": true,
}

// safeGoName maps a MiniML identifier to a Go identifier. Reserved names and
// names already ending in an underscore get one more, which keeps the
// mapping one-to-one.
func safeGoName(name string) string {
	if reservedNames[name] || strings.HasSuffix(name, "_") {
		return name + "_"
	}
	return name
}
