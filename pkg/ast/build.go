package ast

// Constructors invoked by the parser at each reduction. They are pure: the
// result depends only on the arguments and nothing is shared or mutated.

// NewVar returns a variable reference.
func NewVar(name string) Expr {
	return &Var{Name: Ident(name)}
}

// NewNumber returns an integer literal.
func NewNumber(n int64) Expr {
	return &LiteralExpr{Value: Number(n)}
}

// NewBool returns a boolean literal.
func NewBool(b bool) Expr {
	return &LiteralExpr{Value: Bool(b)}
}

// NewArith returns left op right for an arithmetic operator.
func NewArith(left Expr, op ArithOp, right Expr) Expr {
	return &ArithBinOp{Op: op, Left: left, Right: right}
}

// NewCmp returns left op right for a comparison operator.
func NewCmp(left Expr, op CmpOp, right Expr) Expr {
	return &CmpBinOp{Op: op, Left: left, Right: right}
}

// NewApplication returns callee applied to one argument.
func NewApplication(callee, argument Expr) Expr {
	return &Application{Callee: callee, Argument: argument}
}

// NewIf returns a conditional expression.
func NewIf(cond, then, els Expr) Expr {
	return &If{Cond: cond, Then: then, Else: els}
}

// NewFunctionDef returns a one-parameter function definition.
func NewFunctionDef(name, param string, paramType, returnType Type, body Expr) *FunctionDef {
	return &FunctionDef{
		Name:       Ident(name),
		ParamName:  Ident(param),
		ParamType:  paramType,
		ReturnType: returnType,
		Body:       body,
	}
}

// NewFunLiteral wraps def as an anonymous function value.
func NewFunLiteral(def *FunctionDef) Expr {
	return &FunLiteral{Def: def}
}

// NewLetFun binds def in body. The binding is not recursive.
func NewLetFun(def *FunctionDef, body Expr) Expr {
	return &LetFun{Def: def, Body: body}
}

// NewLetRec binds a group of mutually recursive definitions in body.
// It panics if defs is empty; the grammar always supplies at least one.
func NewLetRec(defs []*FunctionDef, body Expr) Expr {
	if len(defs) == 0 {
		panic("ast: let rec with no definitions")
	}
	return &LetRec{Defs: defs, Body: body}
}

// NewArrow returns the function type domain -> codomain.
func NewArrow(domain, codomain Type) Type {
	return &ArrowType{Domain: domain, Codomain: codomain}
}
