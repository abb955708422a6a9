// Package parser converts MiniML token streams into expression and type trees.
//
// The parser is a single-pass recursive descent over one token of lookahead.
// It never backtracks. The expression grammar, tightest binding first:
//
//	Atom        := NUMBER | true | false | IDENT | "(" Expr ")"
//	Application := Operand Operand*             (left-associative juxtaposition)
//	Mul         := Application (("*" | "/") Application)*
//	Add         := Mul (("+" | "-") Mul)*
//	Expr        := Add (("<" | "==" | ">") Add)?   (comparisons do not chain)
//
//	Operand     := Atom | Extension
//	Extension   := "if" Expr "then" Expr "else" Expr
//	             | "fun" FunDef
//	             | "let" Binding "in" Expr
//	             | "let" "rec" Binding ("and" Binding)* "in" Expr
//	Binding     := ["fun"] FunDef
//	FunDef      := IDENT "(" IDENT ":" Type ")" ":" Type "is" Expr
//
// Extension forms end in a full Expr, so they extend as far right as
// possible. Each level reports whether the chain it parsed ended in an
// extension form ("open"). An operator or an application argument is only
// accepted after a closed left operand, which confines extension forms to
// the last operand of any chain. Parentheses close an expression again.
package parser

import (
	"strconv"

	"github.com/chazu/miniml/pkg/ast"
	"github.com/chazu/miniml/pkg/lexer"
)

// Parser consumes a token stream and builds trees.
type Parser struct {
	src   TokenSource
	tok   lexer.Token // lookahead
	index int         // index of tok in the stream
}

// New creates a parser over src and reads the first lookahead token.
func New(src TokenSource) (*Parser, error) {
	p := &Parser{src: src, index: -1}
	if err := p.next(); err != nil {
		return nil, err
	}
	return p, nil
}

// Parse parses source text as a single expression.
func Parse(src string) (ast.Expr, error) {
	p, err := New(lexer.New(src))
	if err != nil {
		return nil, err
	}
	return p.ParseExpr()
}

// ParseTokens parses an already lexed token list as a single expression.
func ParseTokens(tokens []lexer.Token) (ast.Expr, error) {
	p, err := New(FromTokens(tokens))
	if err != nil {
		return nil, err
	}
	return p.ParseExpr()
}

// ParseExpr parses one expression that must span the whole token stream.
func (p *Parser) ParseExpr() (ast.Expr, error) {
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectEOF(); err != nil {
		return nil, err
	}
	return expr, nil
}

const (
	precNone = iota
	precCompare
	precAdditive
	precMultiplicative
)

func precedence(tok lexer.Token) int {
	if !tok.IsOperator() {
		return precNone
	}
	switch tok.Type {
	case lexer.LT, lexer.EQ, lexer.GT:
		return precCompare
	case lexer.PLUS, lexer.MINUS:
		return precAdditive
	case lexer.STAR, lexer.SLASH:
		return precMultiplicative
	}
	return precNone
}

// parseExpr is the Expr entry point used for every nested full expression.
// A fresh entry accepts extension forms again.
func (p *Parser) parseExpr() (ast.Expr, error) {
	expr, _, err := p.parseBinary(precCompare)
	return expr, err
}

// parseBinary parses an operator chain whose operators bind at least as
// tightly as minPrec. Right operands recurse one level tighter, which makes
// every level left-associative. The loop stops as soon as the accumulated
// operand is open.
func (p *Parser) parseBinary(minPrec int) (ast.Expr, bool, error) {
	left, open, err := p.parseApplication()
	if err != nil {
		return nil, false, err
	}

	compared := false
	for !open {
		prec := precedence(p.tok)
		if prec == precNone || prec < minPrec {
			break
		}
		if prec == precCompare && compared {
			return nil, false, p.unexpected("end of comparison")
		}
		op := p.tok
		if err := p.next(); err != nil {
			return nil, false, err
		}
		right, rightOpen, err := p.parseBinary(prec + 1)
		if err != nil {
			return nil, false, err
		}
		left = reduce(op, left, right)
		open = rightOpen
		if prec == precCompare {
			compared = true
		}
	}

	return left, open, nil
}

// reduce builds the node for left op right.
func reduce(op lexer.Token, left, right ast.Expr) ast.Expr {
	switch op.Type {
	case lexer.PLUS:
		return ast.NewArith(left, ast.Add, right)
	case lexer.MINUS:
		return ast.NewArith(left, ast.Sub, right)
	case lexer.STAR:
		return ast.NewArith(left, ast.Mul, right)
	case lexer.SLASH:
		return ast.NewArith(left, ast.Div, right)
	case lexer.LT:
		return ast.NewCmp(left, ast.Lt, right)
	case lexer.EQ:
		return ast.NewCmp(left, ast.Eq, right)
	case lexer.GT:
		return ast.NewCmp(left, ast.Gt, right)
	}
	panic("parser: reduce on non-operator " + string(op.Type))
}

// parseApplication parses juxtaposition. The callee and every argument but
// the last are closed; an extension form can only be the final argument.
func (p *Parser) parseApplication() (ast.Expr, bool, error) {
	fn, open, err := p.parseOperand()
	if err != nil {
		return nil, false, err
	}

	for !open && startsOperand(p.tok) {
		arg, argOpen, err := p.parseOperand()
		if err != nil {
			return nil, false, err
		}
		fn = ast.NewApplication(fn, arg)
		open = argOpen
	}

	return fn, open, nil
}

func startsOperand(tok lexer.Token) bool {
	if tok.IsLiteral() || tok.IsIdentifier() || tok.Type == lexer.LPAREN {
		return true
	}
	return tok.IsKeyword(lexer.KwIf) || tok.IsKeyword(lexer.KwFun) || tok.IsKeyword(lexer.KwLet)
}

// parseOperand parses an atom (closed) or an extension form (open).
func (p *Parser) parseOperand() (ast.Expr, bool, error) {
	tok := p.tok

	switch tok.Type {
	case lexer.NUMBER:
		n, err := strconv.ParseInt(tok.Value, 10, 64)
		if err != nil {
			return nil, false, p.unexpected("integer literal in int64 range")
		}
		if err := p.next(); err != nil {
			return nil, false, err
		}
		return ast.NewNumber(n), false, nil

	case lexer.IDENTIFIER:
		if err := p.next(); err != nil {
			return nil, false, err
		}
		return ast.NewVar(tok.Value), false, nil

	case lexer.LPAREN:
		if err := p.next(); err != nil {
			return nil, false, err
		}
		expr, err := p.parseExpr()
		if err != nil {
			return nil, false, err
		}
		if _, err := p.expect(lexer.RPAREN, "`)`"); err != nil {
			return nil, false, err
		}
		return expr, false, nil

	case lexer.KEYWORD:
		var expr ast.Expr
		var err error
		switch tok.Value {
		case lexer.KwTrue, lexer.KwFalse:
			if err := p.next(); err != nil {
				return nil, false, err
			}
			return ast.NewBool(tok.Value == lexer.KwTrue), false, nil
		case lexer.KwIf:
			expr, err = p.parseIf()
		case lexer.KwFun:
			expr, err = p.parseFunLiteral()
		case lexer.KwLet:
			expr, err = p.parseLet()
		default:
			return nil, false, p.unexpected("expression")
		}
		if err != nil {
			return nil, false, err
		}
		return expr, true, nil
	}

	return nil, false, p.unexpected("expression")
}

// parseIf parses: if Expr then Expr else Expr
func (p *Parser) parseIf() (ast.Expr, error) {
	if err := p.next(); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword(lexer.KwThen); err != nil {
		return nil, err
	}
	then, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword(lexer.KwElse); err != nil {
		return nil, err
	}
	els, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return ast.NewIf(cond, then, els), nil
}

// parseFunLiteral parses: fun FunDef
func (p *Parser) parseFunLiteral() (ast.Expr, error) {
	if err := p.next(); err != nil {
		return nil, err
	}
	def, err := p.parseFunDef()
	if err != nil {
		return nil, err
	}
	return ast.NewFunLiteral(def), nil
}

// parseLet parses both binding forms:
//
//	let Binding in Expr
//	let rec Binding (and Binding)* in Expr
func (p *Parser) parseLet() (ast.Expr, error) {
	if err := p.next(); err != nil {
		return nil, err
	}

	if p.tok.IsKeyword(lexer.KwRec) {
		if err := p.next(); err != nil {
			return nil, err
		}
		var defs []*ast.FunctionDef
		for {
			def, err := p.parseBinding()
			if err != nil {
				return nil, err
			}
			defs = append(defs, def)
			if !p.tok.IsKeyword(lexer.KwAnd) {
				break
			}
			if err := p.next(); err != nil {
				return nil, err
			}
		}
		if !p.tok.IsKeyword(lexer.KwIn) {
			return nil, p.unexpected("`and`", "`in`")
		}
		if err := p.next(); err != nil {
			return nil, err
		}
		body, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return ast.NewLetRec(defs, body), nil
	}

	if !p.tok.IsKeyword(lexer.KwFun) && !p.tok.IsIdentifier() {
		return nil, p.unexpected("`rec`", "`fun`", "function name")
	}
	def, err := p.parseBinding()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword(lexer.KwIn); err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return ast.NewLetFun(def, body), nil
}

// parseBinding parses a FunDef with an optional leading fun keyword.
func (p *Parser) parseBinding() (*ast.FunctionDef, error) {
	if p.tok.IsKeyword(lexer.KwFun) {
		if err := p.next(); err != nil {
			return nil, err
		}
	}
	return p.parseFunDef()
}

// parseFunDef parses: IDENT ( IDENT : Type ) : Type is Expr
func (p *Parser) parseFunDef() (*ast.FunctionDef, error) {
	name, err := p.expect(lexer.IDENTIFIER, "function name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LPAREN, "`(`"); err != nil {
		return nil, err
	}
	param, err := p.expect(lexer.IDENTIFIER, "parameter name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.COLON, "`:`"); err != nil {
		return nil, err
	}
	paramType, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RPAREN, "`)`"); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.COLON, "`:`"); err != nil {
		return nil, err
	}
	returnType, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword(lexer.KwIs); err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return ast.NewFunctionDef(name.Value, param.Value, paramType, returnType, body), nil
}

// Token stream helpers

func (p *Parser) next() error {
	tok, err := p.src.Next()
	if err != nil {
		return err
	}
	p.tok = tok
	p.index++
	return nil
}

func (p *Parser) expect(typ lexer.TokenType, what string) (lexer.Token, error) {
	if p.tok.Type != typ {
		return lexer.Token{}, p.unexpected(what)
	}
	tok := p.tok
	return tok, p.next()
}

func (p *Parser) expectKeyword(word string) error {
	if !p.tok.IsKeyword(word) {
		return p.unexpected("`" + word + "`")
	}
	return p.next()
}

func (p *Parser) expectEOF() error {
	if p.tok.Type != lexer.EOF {
		return p.unexpected("end of input")
	}
	return nil
}

func (p *Parser) unexpected(expected ...string) error {
	return &SyntaxError{
		Index:    p.index,
		Line:     p.tok.Line,
		Column:   p.tok.Column,
		Offset:   p.tok.Offset,
		Found:    p.tok,
		Expected: expected,
	}
}
