package parser

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/kr/pretty"

	"github.com/chazu/miniml/pkg/ast"
)

func TestParseType(t *testing.T) {
	intT, boolT := ast.IntType{}, ast.BoolType{}
	tests := []struct {
		input string
		want  ast.Type
	}{
		{"int", intT},
		{"bool", boolT},
		{"(int)", intT},
		{"int -> bool", ast.NewArrow(intT, boolT)},
		{"int -> int -> bool", ast.NewArrow(intT, ast.NewArrow(intT, boolT))},
		{"(int -> int) -> bool", ast.NewArrow(ast.NewArrow(intT, intT), boolT)},
		{"int -> (int -> bool)", ast.NewArrow(intT, ast.NewArrow(intT, boolT))},
		{"((int -> int) -> int) -> bool", ast.NewArrow(ast.NewArrow(ast.NewArrow(intT, intT), intT), boolT)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseType(tt.input)
			if err != nil {
				t.Fatalf("ParseType(%q) error = %v", tt.input, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseType(%q) mismatch:\n%s", tt.input, strings.Join(pretty.Diff(tt.want, got), "\n"))
			}
		})
	}
}

func TestParseType_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		index    int
		expected string
	}{
		{"empty", "", 0, "expected `int`, `bool` or `(`"},
		{"trailing type", "int bool", 1, "expected end of input"},
		{"identifier", "string", 0, "expected `int`, `bool` or `(`"},
		{"arrow first", "-> int", 0, "expected `int`, `bool` or `(`"},
		{"dangling arrow", "int ->", 2, "expected `int`, `bool` or `(`"},
		{"unclosed paren", "(int -> bool", 4, "expected `)`"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseType(tt.input)
			var syntaxErr *SyntaxError
			if !errors.As(err, &syntaxErr) {
				t.Fatalf("ParseType(%q) error = %v, want *SyntaxError", tt.input, err)
			}
			if syntaxErr.Index != tt.index {
				t.Errorf("error index = %d, want %d", syntaxErr.Index, tt.index)
			}
			if !strings.Contains(err.Error(), tt.expected) {
				t.Errorf("error = %q, expected to contain %q", err.Error(), tt.expected)
			}
		})
	}
}
