package ast

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/chazu/miniml/pkg/lexer"
)

// JSON handoff format for consumers running in another process:
//
//	{"kind": "arith", "op": "+", "left": {...}, "right": {...}}
//	{"kind": "fun", "def": {"name": "f", "param": "x", "paramType": {"kind": "int"}, ...}}
//
// Expression kinds: var, number, bool, arith, cmp, apply, if, fun, let, letrec.
// Type kinds: int, bool, arrow.

type exprJSON struct {
	Kind     string     `json:"kind"`
	Name     string     `json:"name,omitempty"`
	Number   *int64     `json:"number,omitempty"`
	Bool     *bool      `json:"bool,omitempty"`
	Op       string     `json:"op,omitempty"`
	Left     *exprJSON  `json:"left,omitempty"`
	Right    *exprJSON  `json:"right,omitempty"`
	Callee   *exprJSON  `json:"callee,omitempty"`
	Argument *exprJSON  `json:"argument,omitempty"`
	Cond     *exprJSON  `json:"cond,omitempty"`
	Then     *exprJSON  `json:"then,omitempty"`
	Else     *exprJSON  `json:"else,omitempty"`
	Def      *defJSON   `json:"def,omitempty"`
	Defs     []*defJSON `json:"defs,omitempty"`
	Body     *exprJSON  `json:"body,omitempty"`
}

type defJSON struct {
	Name       string    `json:"name"`
	Param      string    `json:"param"`
	ParamType  *typeJSON `json:"paramType"`
	ReturnType *typeJSON `json:"returnType"`
	Body       *exprJSON `json:"body"`
}

type typeJSON struct {
	Kind     string    `json:"kind"`
	Domain   *typeJSON `json:"domain,omitempty"`
	Codomain *typeJSON `json:"codomain,omitempty"`
}

// Marshal encodes an expression tree as JSON.
func Marshal(e Expr) ([]byte, error) {
	j, err := exprToJSON(e)
	if err != nil {
		return nil, err
	}
	return json.Marshal(j)
}

// MarshalIndent is like Marshal but indents the output.
func MarshalIndent(e Expr) ([]byte, error) {
	j, err := exprToJSON(e)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(j, "", "  ")
}

// MarshalType encodes a type as indented JSON.
func MarshalType(t Type) ([]byte, error) {
	return json.MarshalIndent(typeToJSON(t), "", "  ")
}

// Unmarshal decodes an expression tree from JSON.
func Unmarshal(data []byte) (Expr, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads one JSON expression tree from a reader. Names must be
// identifiers the lexer would produce.
func Decode(r io.Reader) (Expr, error) {
	var j exprJSON
	if err := json.NewDecoder(r).Decode(&j); err != nil {
		return nil, fmt.Errorf("failed to parse AST: %w", err)
	}
	return exprFromJSON(&j)
}

func exprToJSON(expr Expr) (*exprJSON, error) {
	switch e := expr.(type) {
	case *Var:
		return &exprJSON{Kind: "var", Name: string(e.Name)}, nil
	case *LiteralExpr:
		switch v := e.Value.(type) {
		case Number:
			n := int64(v)
			return &exprJSON{Kind: "number", Number: &n}, nil
		case Bool:
			b := bool(v)
			return &exprJSON{Kind: "bool", Bool: &b}, nil
		}
		return nil, fmt.Errorf("unknown literal %T", e.Value)
	case *ArithBinOp:
		return binaryToJSON("arith", e.Op.String(), e.Left, e.Right)
	case *CmpBinOp:
		return binaryToJSON("cmp", e.Op.String(), e.Left, e.Right)
	case *Application:
		callee, err := exprToJSON(e.Callee)
		if err != nil {
			return nil, err
		}
		arg, err := exprToJSON(e.Argument)
		if err != nil {
			return nil, err
		}
		return &exprJSON{Kind: "apply", Callee: callee, Argument: arg}, nil
	case *If:
		cond, err := exprToJSON(e.Cond)
		if err != nil {
			return nil, err
		}
		then, err := exprToJSON(e.Then)
		if err != nil {
			return nil, err
		}
		els, err := exprToJSON(e.Else)
		if err != nil {
			return nil, err
		}
		return &exprJSON{Kind: "if", Cond: cond, Then: then, Else: els}, nil
	case *FunLiteral:
		def, err := defToJSON(e.Def)
		if err != nil {
			return nil, err
		}
		return &exprJSON{Kind: "fun", Def: def}, nil
	case *LetFun:
		def, err := defToJSON(e.Def)
		if err != nil {
			return nil, err
		}
		body, err := exprToJSON(e.Body)
		if err != nil {
			return nil, err
		}
		return &exprJSON{Kind: "let", Def: def, Body: body}, nil
	case *LetRec:
		defs := make([]*defJSON, len(e.Defs))
		for i, d := range e.Defs {
			def, err := defToJSON(d)
			if err != nil {
				return nil, err
			}
			defs[i] = def
		}
		body, err := exprToJSON(e.Body)
		if err != nil {
			return nil, err
		}
		return &exprJSON{Kind: "letrec", Defs: defs, Body: body}, nil
	}
	return nil, fmt.Errorf("unknown expression %T", expr)
}

func binaryToJSON(kind, op string, left, right Expr) (*exprJSON, error) {
	l, err := exprToJSON(left)
	if err != nil {
		return nil, err
	}
	r, err := exprToJSON(right)
	if err != nil {
		return nil, err
	}
	return &exprJSON{Kind: kind, Op: op, Left: l, Right: r}, nil
}

func defToJSON(d *FunctionDef) (*defJSON, error) {
	body, err := exprToJSON(d.Body)
	if err != nil {
		return nil, err
	}
	return &defJSON{
		Name:       string(d.Name),
		Param:      string(d.ParamName),
		ParamType:  typeToJSON(d.ParamType),
		ReturnType: typeToJSON(d.ReturnType),
		Body:       body,
	}, nil
}

func typeToJSON(t Type) *typeJSON {
	switch t := t.(type) {
	case IntType:
		return &typeJSON{Kind: "int"}
	case BoolType:
		return &typeJSON{Kind: "bool"}
	case *ArrowType:
		return &typeJSON{Kind: "arrow", Domain: typeToJSON(t.Domain), Codomain: typeToJSON(t.Codomain)}
	}
	return &typeJSON{Kind: "unknown"}
}

func exprFromJSON(j *exprJSON) (Expr, error) {
	if j == nil {
		return nil, fmt.Errorf("missing expression")
	}
	switch j.Kind {
	case "var":
		if err := checkName("var", j.Name); err != nil {
			return nil, err
		}
		return NewVar(j.Name), nil
	case "number":
		if j.Number == nil {
			return nil, fmt.Errorf("number: missing value")
		}
		return NewNumber(*j.Number), nil
	case "bool":
		if j.Bool == nil {
			return nil, fmt.Errorf("bool: missing value")
		}
		return NewBool(*j.Bool), nil
	case "arith", "cmp":
		left, err := exprFromJSON(j.Left)
		if err != nil {
			return nil, fmt.Errorf("%s left: %w", j.Kind, err)
		}
		right, err := exprFromJSON(j.Right)
		if err != nil {
			return nil, fmt.Errorf("%s right: %w", j.Kind, err)
		}
		if j.Kind == "arith" {
			op, ok := arithOps[j.Op]
			if !ok {
				return nil, fmt.Errorf("arith: unknown operator %q", j.Op)
			}
			return NewArith(left, op, right), nil
		}
		op, ok := cmpOps[j.Op]
		if !ok {
			return nil, fmt.Errorf("cmp: unknown operator %q", j.Op)
		}
		return NewCmp(left, op, right), nil
	case "apply":
		callee, err := exprFromJSON(j.Callee)
		if err != nil {
			return nil, fmt.Errorf("apply callee: %w", err)
		}
		arg, err := exprFromJSON(j.Argument)
		if err != nil {
			return nil, fmt.Errorf("apply argument: %w", err)
		}
		return NewApplication(callee, arg), nil
	case "if":
		cond, err := exprFromJSON(j.Cond)
		if err != nil {
			return nil, fmt.Errorf("if cond: %w", err)
		}
		then, err := exprFromJSON(j.Then)
		if err != nil {
			return nil, fmt.Errorf("if then: %w", err)
		}
		els, err := exprFromJSON(j.Else)
		if err != nil {
			return nil, fmt.Errorf("if else: %w", err)
		}
		return NewIf(cond, then, els), nil
	case "fun":
		def, err := defFromJSON(j.Def)
		if err != nil {
			return nil, fmt.Errorf("fun: %w", err)
		}
		return NewFunLiteral(def), nil
	case "let":
		def, err := defFromJSON(j.Def)
		if err != nil {
			return nil, fmt.Errorf("let: %w", err)
		}
		body, err := exprFromJSON(j.Body)
		if err != nil {
			return nil, fmt.Errorf("let body: %w", err)
		}
		return NewLetFun(def, body), nil
	case "letrec":
		if len(j.Defs) == 0 {
			return nil, fmt.Errorf("letrec: no definitions")
		}
		defs := make([]*FunctionDef, len(j.Defs))
		for i, dj := range j.Defs {
			def, err := defFromJSON(dj)
			if err != nil {
				return nil, fmt.Errorf("letrec def %d: %w", i, err)
			}
			defs[i] = def
		}
		body, err := exprFromJSON(j.Body)
		if err != nil {
			return nil, fmt.Errorf("letrec body: %w", err)
		}
		return NewLetRec(defs, body), nil
	}
	return nil, fmt.Errorf("unknown expression kind %q", j.Kind)
}

func defFromJSON(j *defJSON) (*FunctionDef, error) {
	if j == nil {
		return nil, fmt.Errorf("missing definition")
	}
	if err := checkName("definition name", j.Name); err != nil {
		return nil, err
	}
	if err := checkName(j.Name+" parameter", j.Param); err != nil {
		return nil, err
	}
	pt, err := typeFromJSON(j.ParamType)
	if err != nil {
		return nil, fmt.Errorf("%s parameter type: %w", j.Name, err)
	}
	rt, err := typeFromJSON(j.ReturnType)
	if err != nil {
		return nil, fmt.Errorf("%s return type: %w", j.Name, err)
	}
	body, err := exprFromJSON(j.Body)
	if err != nil {
		return nil, fmt.Errorf("%s body: %w", j.Name, err)
	}
	return NewFunctionDef(j.Name, j.Param, pt, rt, body), nil
}

func checkName(what, name string) error {
	if name == "" {
		return fmt.Errorf("%s: missing name", what)
	}
	if !lexer.ValidIdentifier(name) {
		return fmt.Errorf("%s: %q is not an identifier", what, name)
	}
	return nil
}

func typeFromJSON(j *typeJSON) (Type, error) {
	if j == nil {
		return nil, fmt.Errorf("missing type")
	}
	switch j.Kind {
	case "int":
		return IntType{}, nil
	case "bool":
		return BoolType{}, nil
	case "arrow":
		dom, err := typeFromJSON(j.Domain)
		if err != nil {
			return nil, err
		}
		cod, err := typeFromJSON(j.Codomain)
		if err != nil {
			return nil, err
		}
		return NewArrow(dom, cod), nil
	}
	return nil, fmt.Errorf("unknown type kind %q", j.Kind)
}

var arithOps = map[string]ArithOp{"+": Add, "-": Sub, "*": Mul, "/": Div}
var cmpOps = map[string]CmpOp{"<": Lt, "==": Eq, ">": Gt}
