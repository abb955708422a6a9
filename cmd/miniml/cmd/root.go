package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/chazu/miniml/pkg/config"
)

// options is the state shared by every subcommand.
type options struct {
	cfgFile string
	verbose bool

	cfg *config.Config
	log zerolog.Logger
}

// NewRootCmd builds the miniml command tree.
func NewRootCmd() *cobra.Command {
	o := &options{log: zerolog.Nop()}

	rootCmd := &cobra.Command{
		Use:   "miniml",
		Short: "MiniML parser front end and Go back end",
		Long: `miniml parses MiniML, a small statically typed functional language,
and turns it into trees, types, values or a runnable Go program.

Commands:
  parse    - print the syntax tree of an expression or type
  tokens   - print the token stream
  check    - print the type of an expression
  run      - evaluate an expression and print its value
  gen      - generate a Go main package
  repl     - interactive session`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.setup(cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().StringVar(&o.cfgFile, "config", "", "config file (default: $MINIML_CONFIG, ./miniml.toml)")
	rootCmd.PersistentFlags().BoolVarP(&o.verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(
		newParseCmd(o),
		newTokensCmd(o),
		newCheckCmd(o),
		newRunCmd(o),
		newGenCmd(o),
		newReplCmd(o),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the command tree against the process arguments.
func Execute() error {
	rootCmd := NewRootCmd()
	err := rootCmd.Execute()
	if err != nil {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

// setup loads configuration and builds the logger.
func (o *options) setup(stderr io.Writer) error {
	var err error
	if o.cfgFile != "" {
		o.cfg, err = config.Load(o.cfgFile)
	} else {
		o.cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}

	level, err := zerolog.ParseLevel(o.cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", o.cfg.Log.Level, err)
	}
	if o.verbose {
		level = zerolog.DebugLevel
	}

	o.log = zerolog.New(zerolog.ConsoleWriter{Out: stderr, NoColor: !isTerminal(stderr)}).
		Level(level).
		With().Timestamp().Logger()
	o.log.Debug().Str("format", o.cfg.Output.Format).Msg("configuration loaded")
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

func printError(w io.Writer, err error) {
	fmt.Fprintln(w, errorStyle.Render("error: "+err.Error()))
}
