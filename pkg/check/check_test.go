package check

import (
	"errors"
	"regexp"
	"testing"

	"github.com/chazu/miniml/pkg/ast"
	"github.com/chazu/miniml/pkg/parser"
)

var intToInt = ast.NewArrow(ast.IntType{}, ast.IntType{})

var checkTests = []struct {
	input string
	typ   ast.Type
}{
	{"92", ast.IntType{}},
	{"true", ast.BoolType{}},
	{"1 + 1", ast.IntType{}},
	{"1 < 1", ast.BoolType{}},
	{"2 > 1", ast.BoolType{}},
	{"1 == 2", ast.BoolType{}},
	{"true == false", ast.BoolType{}},
	{"if 1 < 2 then 92 else 62", ast.IntType{}},
	{"if true then false else true", ast.BoolType{}},
	{"fun id(x: int): int is x", intToInt},
	{"(fun id(x: int): int is x) 92", ast.IntType{}},
	{"fun k(x: int): int -> int is fun g(y: int): int is x", ast.NewArrow(ast.IntType{}, intToInt)},
	{"let fun inc(x: int): int is x + 1 in inc 92", ast.IntType{}},
	{"let inc(x: int): int is x + 1 in inc (inc 1) == 3", ast.BoolType{}},
	{"let rec f(x: int): int is g x and g(x: int): int is f x in f 1", ast.IntType{}},
	{"let rec fact(n: int): int is if n == 0 then 1 else n * fact (n - 1) in fact", intToInt},
	{"let rec even(n: int): bool is if n == 0 then true else odd (n - 1) and odd(n: int): bool is if n == 0 then false else even (n - 1) in even 10", ast.BoolType{}},
	{"fun apply(f: int -> int): int -> int is f", ast.NewArrow(intToInt, intToInt)},
	{"fun f(f: int): int is f", intToInt},
}

var checkErrorTests = []struct {
	input string
	error string
}{
	{"1 * true", "operands to \\* must be int, found int and bool"},
	{"true + false", "operands to \\+ must be int, found bool and bool"},
	{"false > 92", "operands to > must be int, found bool and int"},
	{"true == 1", "cannot compare bool and int"},
	{"(fun f(x: int): int is x) == (fun f(x: int): int is x)", "cannot compare int -> int and int -> int"},
	{"if 1 + (1 == 2) then 92 else 62", "operands to \\+ must be int"},
	{"if 1 then 92 else 62", "if condition must be bool, found int"},
	{"if true then 92 else false", "both branches of if must have the same type, found int and bool"},
	{"1 2", "cannot call non-function of type int"},
	{"fun id(x: int): int is y", "unbound variable y"},
	{"fun id(x: int): int is id x", "unbound variable id"},
	{"(fun id(x: int): int is x) true", "argument must be int, found bool"},
	{"fun id(x: int): bool is x", "body of id must be bool, found int"},
	{"let fun inc(x: int): int is x + 1 in inc inc", "argument must be int, found int -> int"},
	{"let f(x: int): int is f x in f 1", "unbound variable f"},
	{"let f(x: int): int is x in x", "unbound variable x"},
	{"let rec f(x: int): int is x and f(y: int): int is y in f 1", "f is defined more than once in let rec"},
}

func TestCheck(t *testing.T) {
	for _, tt := range checkTests {
		expr, err := parser.Parse(tt.input)
		if err != nil {
			t.Errorf("Parse(%q) failed: %v", tt.input, err)
			continue
		}
		typ, _, err := Check(expr)
		if err != nil {
			t.Errorf("Check(%q): unexpected error: %v", tt.input, err)
			continue
		}
		if !ast.TypesEqual(typ, tt.typ) {
			t.Errorf("Check(%q) = %s, want %s", tt.input, typ, tt.typ)
		}
	}
}

func TestCheckErrors(t *testing.T) {
	for _, tt := range checkErrorTests {
		expr, err := parser.Parse(tt.input)
		if err != nil {
			t.Errorf("Parse(%q) failed: %v", tt.input, err)
			continue
		}
		_, info, err := Check(expr)
		if err == nil {
			t.Errorf("Check(%q): expected error matching %q", tt.input, tt.error)
			continue
		}
		if info != nil {
			t.Errorf("Check(%q): info should be nil on error", tt.input)
		}
		var typeErr *Error
		if !errors.As(err, &typeErr) {
			t.Errorf("Check(%q): error %T is not *Error", tt.input, err)
			continue
		}
		if !regexp.MustCompile(tt.error).MatchString(err.Error()) {
			t.Errorf("Check(%q): error = %q, want match for %q", tt.input, err, tt.error)
		}
	}
}

func TestInfoRecordsEveryNode(t *testing.T) {
	expr, err := parser.Parse("let inc(x: int): int is x + 1 in if inc 1 > 1 then inc else inc")
	if err != nil {
		t.Fatal(err)
	}
	_, info, err := Check(expr)
	if err != nil {
		t.Fatal(err)
	}

	let := expr.(*ast.LetFun)
	cond := let.Body.(*ast.If).Cond.(*ast.CmpBinOp)
	tests := []struct {
		node ast.Expr
		want ast.Type
	}{
		{let, intToInt},
		{let.Def.Body, ast.IntType{}},
		{let.Body, intToInt},
		{cond, ast.BoolType{}},
		{cond.Left, ast.IntType{}},
		{cond.Left.(*ast.Application).Callee, intToInt},
	}
	for _, tt := range tests {
		if got := info.TypeOf(tt.node); got == nil || !ast.TypesEqual(got, tt.want) {
			t.Errorf("TypeOf(%s) = %v, want %s", tt.node, got, tt.want)
		}
	}
	// let + def body (x, 1, x + 1) + if, cond (inc, 1, inc 1, 1, >), then, else
	if got, want := len(info.Types), 12; got != want {
		t.Errorf("len(Types) = %d, want %d", got, want)
	}
}

func TestErrorMessage(t *testing.T) {
	_, _, err := Check(ast.NewVar("nope"))
	want := "type error: unbound variable nope in nope"
	if err == nil || err.Error() != want {
		t.Errorf("error = %v, want %q", err, want)
	}
}
