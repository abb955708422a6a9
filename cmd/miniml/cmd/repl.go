package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/chazu/miniml/pkg/check"
	"github.com/chazu/miniml/pkg/codegen"
	"github.com/chazu/miniml/pkg/eval"
	"github.com/chazu/miniml/pkg/lexer"
	"github.com/chazu/miniml/pkg/parser"
)

const replHelp = `Enter an expression to see its syntax tree.
  :eval <expr>    evaluate an expression and show its value
  :type <expr>    show the type of an expression
  :go <expr>      show the generated Go program
  :tokens <expr>  show the token stream
  :help           show this text
  :q, :quit       leave the session
An unfinished expression continues on the next line; an empty line ends it.`

func newReplCmd(o *options) *cobra.Command {
	var format string

	replCmd := &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = o.cfg.Output.Format
			}
			s := &session{
				out:    cmd.OutOrStdout(),
				errOut: cmd.ErrOrStderr(),
				format: format,
				log:    o.log,
			}
			return runRepl(s, o.cfg.REPL.Prompt, o.cfg.REPL.HistoryFile)
		},
	}

	replCmd.Flags().StringVarP(&format, "format", "f", "", "output format: sexpr, json or pretty (default from config)")
	return replCmd
}

func runRepl(s *session, prompt, historyFile string) error {
	fmt.Fprintln(s.out, titleStyle.Render("MiniML "+Version)+"  "+hintStyle.Render(":help for commands, :q to quit"))

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(historyFile); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		f, err := os.Create(historyFile)
		if err != nil {
			s.log.Warn().Err(err).Str("file", historyFile).Msg("could not save history")
			return
		}
		_, _ = ln.WriteHistory(f)
		_ = f.Close()
	}()

	cont := continuationPrompt(prompt)
	for {
		input, err := readInput(ln, prompt, cont)
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(s.out)
			return nil
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			return err
		}

		if strings.TrimSpace(input) != "" {
			ln.AppendHistory(strings.ReplaceAll(input, "\n", " "))
		}
		if !s.eval(input) {
			return nil
		}
	}
}

// readInput reads lines until they form a complete expression, a command,
// or an empty line ends an unfinished one.
func readInput(ln *liner.State, prompt, cont string) (string, error) {
	var b strings.Builder
	for {
		p := prompt
		if b.Len() > 0 {
			p = cont
		}
		line, err := ln.Prompt(p)
		if err != nil {
			return "", err
		}

		if b.Len() > 0 {
			if strings.TrimSpace(line) == "" {
				return b.String(), nil
			}
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") || !incomplete(src) {
			return src, nil
		}
	}
}

// incomplete reports whether src fails to parse only because the input ran
// out before the expression was finished.
func incomplete(src string) bool {
	if strings.TrimSpace(src) == "" {
		return false
	}
	_, err := parser.Parse(src)
	var syntaxErr *parser.SyntaxError
	return errors.As(err, &syntaxErr) && syntaxErr.Found.Type == lexer.EOF
}

func continuationPrompt(prompt string) string {
	const dots = "... "
	if n := len(prompt) - len(dots); n > 0 {
		return strings.Repeat(" ", n) + dots
	}
	return dots
}

// session evaluates REPL input and writes the results.
type session struct {
	out    io.Writer
	errOut io.Writer
	format string
	log    zerolog.Logger
}

// eval handles one complete input. It returns false when the session ends.
func (s *session) eval(input string) bool {
	line := strings.TrimSpace(input)
	if line == "" {
		return true
	}

	if strings.HasPrefix(line, ":") {
		command, rest, _ := strings.Cut(line, " ")
		rest = strings.TrimSpace(rest)
		switch command {
		case ":q", ":quit":
			return false
		case ":help":
			fmt.Fprintln(s.out, replHelp)
		case ":eval":
			s.showValue(rest)
		case ":type":
			s.showType(rest)
		case ":go":
			s.showGo(rest)
		case ":tokens":
			s.showTokens(rest)
		default:
			fmt.Fprintln(s.errOut, errorStyle.Render("unknown command "+command+", type :help for a list"))
		}
		return true
	}

	e, err := parser.Parse(input)
	if err != nil {
		s.report(input, err)
		return true
	}
	if err := writeExpr(s.out, e, s.format); err != nil {
		s.report(input, err)
	}
	return true
}

func (s *session) showValue(src string) {
	e, err := parser.Parse(src)
	if err != nil {
		s.report(src, err)
		return
	}
	result, err := eval.Eval(context.Background(), e)
	if err != nil {
		s.report(src, err)
		return
	}
	fmt.Fprintln(s.out, result.Value.String()+" "+hintStyle.Render(": "+result.Type.String()))
}

func (s *session) showType(src string) {
	e, err := parser.Parse(src)
	if err != nil {
		s.report(src, err)
		return
	}
	t, _, err := check.Check(e)
	if err != nil {
		s.report(src, err)
		return
	}
	fmt.Fprintln(s.out, typeStyle.Render(t.String()))
}

func (s *session) showGo(src string) {
	e, err := parser.Parse(src)
	if err != nil {
		s.report(src, err)
		return
	}
	result, err := codegen.Generate(e)
	if err != nil {
		s.report(src, err)
		return
	}
	fmt.Fprint(s.out, result.Code)
}

func (s *session) showTokens(src string) {
	tokens, err := lexer.New(src).Tokenize()
	if err != nil {
		s.report(src, err)
		return
	}
	writeTokens(s.out, tokens)
}

// report prints err, preceded by the offending source line and a caret when
// the error carries a position.
func (s *session) report(src string, err error) {
	s.log.Debug().Err(err).Msg("input rejected")
	if line, col, ok := errorPosition(err); ok {
		if text, found := sourceLine(src, line); found {
			fmt.Fprintln(s.errOut, text)
			fmt.Fprintln(s.errOut, strings.Repeat(" ", col)+"^")
		}
	}
	fmt.Fprintln(s.errOut, errorStyle.Render(err.Error()))
}

func errorPosition(err error) (line, col int, ok bool) {
	var syntaxErr *parser.SyntaxError
	if errors.As(err, &syntaxErr) {
		return syntaxErr.Line, syntaxErr.Column, true
	}
	var lexErr *lexer.Error
	if errors.As(err, &lexErr) {
		return lexErr.Line, lexErr.Column, true
	}
	return 0, 0, false
}

// sourceLine returns the 1-based line n of src.
func sourceLine(src string, n int) (string, bool) {
	lines := strings.Split(src, "\n")
	if n < 1 || n > len(lines) {
		return "", false
	}
	return lines[n-1], true
}
