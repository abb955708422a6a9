package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chazu/miniml/pkg/check"
)

func newCheckCmd(o *options) *cobra.Command {
	var src sourceFlags

	checkCmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Print the type of an expression",
		Long: `Parses and type-checks MiniML source and prints its type.

Examples:
  miniml check -e "fun inc(x: int): int is x + 1"
  miniml parse --format json prog.ml | miniml check --ast`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadExpr(cmd, args, &src)
			if err != nil {
				return err
			}
			t, info, err := check.Check(e)
			if err != nil {
				return err
			}
			o.log.Debug().Int("nodes", len(info.Types)).Msg("type-checked expression")
			fmt.Fprintln(cmd.OutOrStdout(), t)
			return nil
		},
	}

	src.register(checkCmd)
	return checkCmd
}
