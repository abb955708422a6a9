package ast

// Expr is a MiniML expression.
type Expr interface {
	exprNode()
	String() string
}

// Var is a reference to a bound name.
type Var struct {
	Name Ident
}

func (*Var) exprNode() {}

// Literal is the value carried by a LiteralExpr: Number or Bool.
type Literal interface {
	literalValue()
	String() string
}

// Number is an integer literal.
type Number int64

func (Number) literalValue() {}

// Bool is a boolean literal.
type Bool bool

func (Bool) literalValue() {}

// LiteralExpr is a literal used as an expression.
type LiteralExpr struct {
	Value Literal
}

func (*LiteralExpr) exprNode() {}

// ArithOp is an arithmetic operator.
type ArithOp int

const (
	Add ArithOp = iota
	Sub
	Mul
	Div
)

func (op ArithOp) String() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	}
	return "?"
}

// CmpOp is a comparison operator.
type CmpOp int

const (
	Lt CmpOp = iota
	Eq
	Gt
)

func (op CmpOp) String() string {
	switch op {
	case Lt:
		return "<"
	case Eq:
		return "=="
	case Gt:
		return ">"
	}
	return "?"
}

// ArithBinOp represents: left op right, op one of + - * /
type ArithBinOp struct {
	Op    ArithOp
	Left  Expr
	Right Expr
}

func (*ArithBinOp) exprNode() {}

// CmpBinOp represents: left op right, op one of < == >
type CmpBinOp struct {
	Op    CmpOp
	Left  Expr
	Right Expr
}

func (*CmpBinOp) exprNode() {}

// Application represents juxtaposition: callee argument
type Application struct {
	Callee   Expr
	Argument Expr
}

func (*Application) exprNode() {}

// If represents: if cond then then_ else else_
type If struct {
	Cond Expr
	Then Expr
	Else Expr
}

func (*If) exprNode() {}

// FunctionDef is a single-parameter function with annotated parameter and
// return types. It is shared by FunLiteral, LetFun and LetRec.
type FunctionDef struct {
	Name       Ident
	ParamName  Ident
	ParamType  Type
	ReturnType Type
	Body       Expr
}

// Type returns the arrow type ParamType -> ReturnType.
func (d *FunctionDef) Type() Type {
	return &ArrowType{Domain: d.ParamType, Codomain: d.ReturnType}
}

// FunLiteral is a function value in expression position. Its own name is not
// in scope in its body.
type FunLiteral struct {
	Def *FunctionDef
}

func (*FunLiteral) exprNode() {}

// LetFun binds one function for the scope of Body. The binding is not
// visible to the function itself.
type LetFun struct {
	Def  *FunctionDef
	Body Expr
}

func (*LetFun) exprNode() {}

// LetRec binds a non-empty group of mutually recursive functions. Every name
// in Defs is visible in every body and in Body. Defs keeps source order.
type LetRec struct {
	Defs []*FunctionDef
	Body Expr
}

func (*LetRec) exprNode() {}
