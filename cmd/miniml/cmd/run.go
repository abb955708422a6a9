package cmd

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/chazu/miniml/pkg/eval"
)

func newRunCmd(o *options) *cobra.Command {
	var (
		src      sourceFlags
		showType bool
	)

	runCmd := &cobra.Command{
		Use:   "run [file]",
		Short: "Evaluate an expression and print its value",
		Long: `Type-checks MiniML source and evaluates it with the interpreter.
Functions print as their type.

Examples:
  miniml run -e "let rec f(n: int): int is if n == 0 then 1 else n * f (n - 1) in f 5"
  miniml run --type program.ml
  miniml parse --format json prog.ml | miniml run --ast`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadExpr(cmd, args, &src)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			result, err := eval.Eval(ctx, e)
			if err != nil {
				return err
			}
			o.log.Debug().Str("type", result.Type.String()).Msg("evaluated expression")

			out := cmd.OutOrStdout()
			if showType {
				fmt.Fprintf(out, "%s : %s\n", result.Value, result.Type)
				return nil
			}
			fmt.Fprintln(out, result.Value)
			return nil
		},
	}

	src.register(runCmd)
	runCmd.Flags().BoolVarP(&showType, "type", "t", false, "print the type after the value")
	return runCmd
}
