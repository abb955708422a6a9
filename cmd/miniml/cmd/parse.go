package cmd

import (
	"github.com/spf13/cobra"

	"github.com/chazu/miniml/pkg/parser"
)

func newParseCmd(o *options) *cobra.Command {
	var (
		src      sourceFlags
		format   string
		typeOnly bool
	)

	parseCmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Print the syntax tree of an expression",
		Long: `Parses MiniML source and prints the resulting tree.

Examples:
  miniml parse -e "1 + 2 * 3"
  miniml parse --format json program.ml
  miniml parse --type -e "(int -> int) -> bool"
  echo "f x y" | miniml parse`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = o.cfg.Output.Format
			}

			if typeOnly {
				text, err := readSource(cmd, args, &src)
				if err != nil {
					return err
				}
				t, err := parser.ParseType(text)
				if err != nil {
					return err
				}
				return writeType(cmd.OutOrStdout(), t, format)
			}

			e, err := loadExpr(cmd, args, &src)
			if err != nil {
				return err
			}
			o.log.Debug().Str("format", format).Msg("parsed expression")
			return writeExpr(cmd.OutOrStdout(), e, format)
		},
	}

	src.register(parseCmd)
	parseCmd.Flags().StringVarP(&format, "format", "f", "", "output format: sexpr, json or pretty (default from config)")
	parseCmd.Flags().BoolVar(&typeOnly, "type", false, "parse the input as a type")
	return parseCmd
}
