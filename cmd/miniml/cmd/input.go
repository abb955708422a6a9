package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kr/pretty"
	"github.com/spf13/cobra"

	"github.com/chazu/miniml/pkg/ast"
	"github.com/chazu/miniml/pkg/config"
	"github.com/chazu/miniml/pkg/parser"
)

// sourceFlags selects where a command reads its program from.
type sourceFlags struct {
	expr    string
	fromAST bool
}

func (s *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&s.expr, "expr", "e", "", "source text to use instead of a file")
	cmd.Flags().BoolVar(&s.fromAST, "ast", false, "read a JSON syntax tree instead of source text")
}

// openSource opens the input named by -e, the file argument or stdin.
func openSource(cmd *cobra.Command, args []string, s *sourceFlags) (io.ReadCloser, error) {
	if cmd.Flags().Changed("expr") {
		return io.NopCloser(strings.NewReader(s.expr)), nil
	}
	if len(args) > 0 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", args[0], err)
		}
		return f, nil
	}
	return io.NopCloser(cmd.InOrStdin()), nil
}

// readSource returns the whole input text.
func readSource(cmd *cobra.Command, args []string, s *sourceFlags) (string, error) {
	r, err := openSource(cmd, args, s)
	if err != nil {
		return "", err
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return string(data), nil
}

// loadExpr reads the input and turns it into an expression, either by
// parsing source or by decoding a JSON tree.
func loadExpr(cmd *cobra.Command, args []string, s *sourceFlags) (ast.Expr, error) {
	if s.fromAST {
		r, err := openSource(cmd, args, s)
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return ast.Decode(r)
	}
	src, err := readSource(cmd, args, s)
	if err != nil {
		return nil, err
	}
	return parser.Parse(src)
}

// writeExpr prints an expression tree in one of the output formats.
func writeExpr(w io.Writer, e ast.Expr, format string) error {
	switch format {
	case config.FormatSExpr:
		_, err := fmt.Fprintln(w, e.String())
		return err
	case config.FormatJSON:
		data, err := ast.MarshalIndent(e)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case config.FormatPretty:
		_, err := pretty.Fprintf(w, "%# v\n", e)
		return err
	}
	return fmt.Errorf("unknown output format %q", format)
}

// writeType prints a type in one of the output formats.
func writeType(w io.Writer, t ast.Type, format string) error {
	switch format {
	case config.FormatSExpr:
		_, err := fmt.Fprintln(w, t.String())
		return err
	case config.FormatJSON:
		data, err := ast.MarshalType(t)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case config.FormatPretty:
		_, err := pretty.Fprintf(w, "%# v\n", t)
		return err
	}
	return fmt.Errorf("unknown output format %q", format)
}
