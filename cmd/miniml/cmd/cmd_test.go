package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/chazu/miniml/pkg/check"
	"github.com/chazu/miniml/pkg/eval"
	"github.com/chazu/miniml/pkg/parser"
)

const quietConfig = "[log]\nlevel = \"warn\"\n"

// run executes the command tree with a fresh config file and returns what
// it wrote to stdout and stderr.
func run(t *testing.T, configText, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "miniml.toml")
	if err := os.WriteFile(cfgPath, []byte(configText), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	rootCmd := NewRootCmd()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func TestParseCommand(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "prog.ml")
	if err := os.WriteFile(file, []byte("let rec f(x:int):int is g x\nand g(x:int):int is f x\nin f 1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{"inline", "", []string{"parse", "-e", "1 + 2 * 3"}, "(+ 1 (* 2 3))\n"},
		{"stdin", "f x y", []string{"parse"}, "((f x) y)\n"},
		{"stdin dash", "f x y", []string{"parse", "-"}, "((f x) y)\n"},
		{"file", "", []string{"parse", file}, "(letrec [(λ f (x: int): int (g x)) (λ g (x: int): int (f x))] in (f 1))\n"},
		{"type", "", []string{"parse", "--type", "-e", "(int -> int) -> bool"}, "(int -> int) -> bool\n"},
		{"right assoc type", "", []string{"parse", "--type", "-e", "int -> int -> bool"}, "int -> int -> bool\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := run(t, quietConfig, tt.stdin, tt.args...)
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if out != tt.want {
				t.Errorf("output = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestParseCommand_Formats(t *testing.T) {
	out, _, err := run(t, quietConfig, "", "parse", "--format", "json", "-e", "f 1")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, `"kind": "apply"`) || !strings.Contains(out, `"number": 1`) {
		t.Errorf("json output = %s", out)
	}

	out, _, err = run(t, quietConfig, "", "parse", "--format", "pretty", "-e", "x")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "ast.Var{") || !strings.Contains(out, `"x"`) {
		t.Errorf("pretty output = %s", out)
	}

	out, _, err = run(t, quietConfig, "", "parse", "--type", "--format", "json", "-e", "int -> bool")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, `"kind": "arrow"`) {
		t.Errorf("type json output = %s", out)
	}

	_, _, err = run(t, quietConfig, "", "parse", "--format", "xml", "-e", "1")
	if err == nil || !strings.Contains(err.Error(), "unknown output format") {
		t.Errorf("Execute() error = %v, want unknown output format", err)
	}
}

func TestParseCommand_FormatFromConfig(t *testing.T) {
	out, _, err := run(t, "[output]\nformat = \"json\"\n[log]\nlevel = \"warn\"\n", "", "parse", "-e", "true")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, `"kind": "bool"`) {
		t.Errorf("output = %s, want JSON from configured format", out)
	}
}

func TestParseCommand_SyntaxError(t *testing.T) {
	_, _, err := run(t, quietConfig, "", "parse", "-e", "1 == 1 == 1")
	var syntaxErr *parser.SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("Execute() error = %v, want *parser.SyntaxError", err)
	}
	if syntaxErr.Column != 7 {
		t.Errorf("Column = %d, want 7", syntaxErr.Column)
	}
}

func TestTokensCommand(t *testing.T) {
	out, _, err := run(t, quietConfig, "", "tokens", "-e", "f 1")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	want := "1:0\tIDENTIFIER\tf\n1:2\tNUMBER\t1\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}

	out, _, err = run(t, quietConfig, "", "tokens", "--json", "-e", "f")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, `"IDENTIFIER"`) {
		t.Errorf("json output = %s", out)
	}
}

func TestCheckCommand(t *testing.T) {
	out, _, err := run(t, quietConfig, "", "check", "-e", "fun inc(x: int): int is x + 1")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out != "int -> int\n" {
		t.Errorf("output = %q, want %q", out, "int -> int\n")
	}

	_, _, err = run(t, quietConfig, "", "check", "-e", "1 + true")
	var typeErr *check.Error
	if !errors.As(err, &typeErr) {
		t.Errorf("Execute() error = %v, want *check.Error", err)
	}
}

func TestCheckCommand_FromJSONTree(t *testing.T) {
	tree, _, err := run(t, quietConfig, "", "parse", "--format", "json", "-e", "(fun inc(x: int): int is x + 1) 41")
	if err != nil {
		t.Fatalf("parse error = %v", err)
	}
	out, _, err := run(t, quietConfig, tree, "check", "--ast")
	if err != nil {
		t.Fatalf("check --ast error = %v", err)
	}
	if out != "int\n" {
		t.Errorf("output = %q, want %q", out, "int\n")
	}
}

func TestCheckCommand_RejectsBadNames(t *testing.T) {
	tree := `{"kind": "apply", "callee": {"kind": "var", "name": "a b"}, "argument": {"kind": "number", "number": 1}}`
	_, _, err := run(t, quietConfig, tree, "gen", "--ast")
	if err == nil || !strings.Contains(err.Error(), `"a b" is not an identifier`) {
		t.Errorf("Execute() error = %v, want invalid identifier", err)
	}
}

func TestTokensCommand_Stdin(t *testing.T) {
	out, _, err := run(t, quietConfig, "1 ->\n x", "tokens")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	want := "1:0\tNUMBER\t1\n1:2\tARROW\t->\n2:1\tIDENTIFIER\tx\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestRunCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"arithmetic", []string{"run", "-e", "10 * 5 - 10 + 100 / 10 + 3 * (10 + 4)"}, "92\n"},
		{"bool", []string{"run", "-e", "1 < 2"}, "true\n"},
		{"factorial", []string{"run", "-e", "let rec f(n: int): int is if n == 0 then 1 else n * f (n - 1) in f 5"}, "120\n"},
		{"function", []string{"run", "-e", "fun id(x: int): int is x"}, "<fun: int -> int>\n"},
		{"with type", []string{"run", "--type", "-e", "40 + 2"}, "42 : int\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := run(t, quietConfig, "", tt.args...)
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if out != tt.want {
				t.Errorf("output = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestRunCommand_Errors(t *testing.T) {
	_, _, err := run(t, quietConfig, "", "run", "-e", "1 / (2 - 2)")
	var rtErr *eval.RuntimeError
	if !errors.As(err, &rtErr) {
		t.Errorf("Execute() error = %v, want *eval.RuntimeError", err)
	}

	_, _, err = run(t, quietConfig, "", "run", "-e", "if 1 then 2 else 3")
	var typeErr *check.Error
	if !errors.As(err, &typeErr) {
		t.Errorf("Execute() error = %v, want *check.Error", err)
	}
}

func TestRunCommand_FromJSONTree(t *testing.T) {
	tree, _, err := run(t, quietConfig, "", "parse", "--format", "json", "-e", "let f(x: int): int is x * 2 in let f(x: int): int is x + 2 in f 90")
	if err != nil {
		t.Fatalf("parse error = %v", err)
	}
	out, _, err := run(t, quietConfig, tree, "run", "--ast")
	if err != nil {
		t.Fatalf("run --ast error = %v", err)
	}
	if out != "92\n" {
		t.Errorf("output = %q, want %q", out, "92\n")
	}
}

func TestGenCommand(t *testing.T) {
	out, _, err := run(t, quietConfig, "", "gen", "-e", "1 + 2")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	for _, want := range []string{"package main", "fmt.Println(add(int64(1), int64(2)))"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	file := filepath.Join(t.TempDir(), "main.go")
	out, _, err = run(t, quietConfig, "", "gen", "-o", file, "-e", "true")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out != "" {
		t.Errorf("stdout = %q, want nothing when writing a file", out)
	}
	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("generated file missing: %v", err)
	}
	if !strings.Contains(string(data), "fmt.Println(true)") {
		t.Errorf("generated file:\n%s", data)
	}
}

func TestVersionCommand(t *testing.T) {
	out, _, err := run(t, quietConfig, "", "version")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "miniml v"+Version) {
		t.Errorf("output = %q", out)
	}
}

func TestBadConfig(t *testing.T) {
	_, _, err := run(t, "[log]\nlevel = \"loud\"\n", "", "parse", "-e", "1")
	if err == nil || !strings.Contains(err.Error(), "invalid log level") {
		t.Errorf("Execute() error = %v, want invalid log level", err)
	}
}

func newTestSession() (*session, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return &session{out: &out, errOut: &errOut, format: "sexpr", log: zerolog.Nop()}, &out, &errOut
}

func TestSession_Eval(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		out     string
		errOut  string
		proceed bool
	}{
		{"expression", "1 + 2", "(+ 1 2)", "", true},
		{"blank", "   ", "", "", true},
		{"quit", ":q", "", "", false},
		{"quit long", ":quit", "", "", false},
		{"help", ":help", ":type <expr>", "", true},
		{"type", ":type fun f(x: int): int is x", "int -> int", "", true},
		{"eval", ":eval let rec f(n: int): int is if n < 2 then 1 else n * f (n - 1) in f 5", "120", "", true},
		{"eval division by zero", ":eval 1 / 0", "", "division by zero", true},
		{"go", ":go 1", "package main", "", true},
		{"tokens", ":tokens f 1", "NUMBER", "", true},
		{"syntax error", "f x)", "", "f x)\n   ^\n", true},
		{"type error", ":type 1 + true", "", "type error", true},
		{"lexical error", "x = 1", "", "lexical error", true},
		{"unknown command", ":foo", "", "unknown command :foo", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, out, errOut := newTestSession()
			if got := s.eval(tt.input); got != tt.proceed {
				t.Errorf("eval(%q) = %v, want %v", tt.input, got, tt.proceed)
			}
			if tt.out != "" && !strings.Contains(out.String(), tt.out) {
				t.Errorf("out = %q, want it to contain %q", out.String(), tt.out)
			}
			if tt.errOut != "" && !strings.Contains(errOut.String(), tt.errOut) {
				t.Errorf("errOut = %q, want it to contain %q", errOut.String(), tt.errOut)
			}
			if tt.errOut == "" && errOut.Len() > 0 {
				t.Errorf("unexpected errOut = %q", errOut.String())
			}
		})
	}
}

func TestIncomplete(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{"", false},
		{"1 +", true},
		{"if true then 1", true},
		{"let rec f(x: int): int is x", true},
		{"(1 + 2", true},
		{"1 + 2", false},
		{"f x)", false},
		{"1 == 1 == 1", false},
		{"x = 1", false},
	}

	for _, tt := range tests {
		if got := incomplete(tt.src); got != tt.want {
			t.Errorf("incomplete(%q) = %v, want %v", tt.src, got, tt.want)
		}
	}
}

func TestContinuationPrompt(t *testing.T) {
	if got := continuationPrompt("miniml> "); got != "    ... " {
		t.Errorf("continuationPrompt() = %q", got)
	}
	if got := continuationPrompt("> "); got != "... " {
		t.Errorf("continuationPrompt() = %q", got)
	}
}

func TestSourceLine(t *testing.T) {
	src := "let f(x: int): int is x\nin f )"
	if got, ok := sourceLine(src, 2); !ok || got != "in f )" {
		t.Errorf("sourceLine(2) = %q, %v", got, ok)
	}
	if _, ok := sourceLine(src, 3); ok {
		t.Error("sourceLine(3) should be out of range")
	}
}
