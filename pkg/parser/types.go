package parser

import (
	"github.com/chazu/miniml/pkg/ast"
	"github.com/chazu/miniml/pkg/lexer"
)

// Type grammar:
//
//	Type     := AtomType "->" Type | AtomType
//	AtomType := "int" | "bool" | "(" Type ")"
//
// The arrow rule is right-recursive, so A -> B -> C is A -> (B -> C).

// ParseType parses source text as a single type.
func ParseType(src string) (ast.Type, error) {
	p, err := New(lexer.New(src))
	if err != nil {
		return nil, err
	}
	return p.ParseType()
}

// ParseType parses one type that must span the whole token stream.
func (p *Parser) ParseType() (ast.Type, error) {
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if err := p.expectEOF(); err != nil {
		return nil, err
	}
	return t, nil
}

func (p *Parser) parseType() (ast.Type, error) {
	domain, err := p.parseAtomType()
	if err != nil {
		return nil, err
	}
	if p.tok.Type != lexer.ARROW {
		return domain, nil
	}
	if err := p.next(); err != nil {
		return nil, err
	}
	codomain, err := p.parseType()
	if err != nil {
		return nil, err
	}
	return ast.NewArrow(domain, codomain), nil
}

func (p *Parser) parseAtomType() (ast.Type, error) {
	switch {
	case p.tok.IsKeyword(lexer.KwInt):
		return ast.IntType{}, p.next()
	case p.tok.IsKeyword(lexer.KwBool):
		return ast.BoolType{}, p.next()
	case p.tok.Type == lexer.LPAREN:
		if err := p.next(); err != nil {
			return nil, err
		}
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN, "`)`"); err != nil {
			return nil, err
		}
		return t, nil
	}
	return nil, p.unexpected("`int`", "`bool`", "`(`")
}
