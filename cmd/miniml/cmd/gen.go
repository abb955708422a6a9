package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chazu/miniml/pkg/codegen"
)

func newGenCmd(o *options) *cobra.Command {
	var (
		src    sourceFlags
		output string
	)

	genCmd := &cobra.Command{
		Use:   "gen [file]",
		Short: "Generate a Go main package",
		Long: `Type-checks MiniML source and writes a Go program that prints
the value of the expression.

Examples:
  miniml gen -e "let inc(x: int): int is x + 1 in inc 41" > main.go
  miniml gen -o out/main.go program.ml
  miniml parse --format json prog.ml | miniml gen --ast`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadExpr(cmd, args, &src)
			if err != nil {
				return err
			}
			result, err := codegen.Generate(e)
			if err != nil {
				return err
			}

			if output == "" {
				fmt.Fprint(cmd.OutOrStdout(), result.Code)
				return nil
			}
			if err := os.WriteFile(output, []byte(result.Code), 0644); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			o.log.Info().Str("file", output).Str("type", result.Type.String()).Msg("generated Go program")
			return nil
		},
	}

	src.register(genCmd)
	genCmd.Flags().StringVarP(&output, "output", "o", "", "write the program to a file instead of stdout")
	return genCmd
}
