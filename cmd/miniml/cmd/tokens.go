package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/chazu/miniml/pkg/lexer"
)

func newTokensCmd(o *options) *cobra.Command {
	var (
		src    sourceFlags
		asJSON bool
	)

	tokensCmd := &cobra.Command{
		Use:   "tokens [file]",
		Short: "Print the token stream",
		Long: `Lexes MiniML source and prints one token per line as
line:column, type and text.

Examples:
  miniml tokens -e "fun f(x: int): int is x"
  miniml tokens --json program.ml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openSource(cmd, args, &src)
			if err != nil {
				return err
			}
			defer r.Close()
			l, err := lexer.NewFromReader(r)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if asJSON {
				data, err := l.TokenizeJSON()
				if err != nil {
					return err
				}
				fmt.Fprintln(out, data)
				return nil
			}

			tokens, err := l.Tokenize()
			if err != nil {
				return err
			}
			o.log.Debug().Int("count", len(tokens)).Msg("lexed input")
			writeTokens(out, tokens)
			return nil
		},
	}

	tokensCmd.Flags().StringVarP(&src.expr, "expr", "e", "", "source text to use instead of a file")
	tokensCmd.Flags().BoolVar(&asJSON, "json", false, "print tokens as a JSON array")
	return tokensCmd
}

func writeTokens(w io.Writer, tokens []lexer.Token) {
	for _, tok := range tokens {
		fmt.Fprintf(w, "%d:%d\t%s\t%s\n", tok.Line, tok.Column, tok.Type, tok.Value)
	}
}
