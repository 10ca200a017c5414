package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zephyrtronium/calc"
)

const (
	keyFractions = "fractions"
	keyDegrees   = "degrees"
	keyNotation  = "notation"
	keyStats     = "stats"
	keyEcho      = "echo"
	keyVerbose   = "verbose"
	keyHistory   = "history"
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgFile string
	root := &cobra.Command{
		Use:   "calc [expression...]",
		Short: "Evaluate arithmetic in prefix, infix, or postfix notation.",
		Long: `Evaluate arithmetic in prefix, infix, or postfix notation.

Expressions are given as arguments, or read one per line from stdin when
there are none. Examples:
  calc '3/4 + 5/6i'
  calc -f '1/2 + 1/3'
  calc '+(4, 5, 6)' '(4, 5, 6)+'`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cfgFile)
		},
		RunE: runEval,
	}
	f := root.PersistentFlags()
	f.StringVar(&cfgFile, "config", "", "config file (default calc.yaml in . or $HOME/.config/calc)")
	f.BoolP(keyFractions, "f", false, "preserve fractions in results")
	f.Bool(keyDegrees, false, "trigonometric functions take degrees instead of radians")
	f.StringP(keyNotation, "N", "", `notation for echoed expressions ("infix", "prefix", "postfix"; default each operation's own)`)
	f.BoolP(keyStats, "s", false, "print depth, operation, and number counts")
	f.BoolP(keyEcho, "e", false, "print each parsed expression before its result")
	f.BoolP(keyVerbose, "v", false, "log debug events")
	for _, k := range []string{keyFractions, keyDegrees, keyNotation, keyStats, keyEcho, keyVerbose} {
		viper.BindPFlag(k, f.Lookup(k))
	}
	root.AddCommand(newEvalCmd(), newReplCmd())
	return root
}

func newEvalCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "eval [expression...]",
		Aliases: []string{"ev"},
		Short:   "Evaluate expressions from arguments or stdin.",
		RunE:    runEval,
	}
}

// setup reads configuration and prepares logging.
func setup(file string) error {
	viper.SetEnvPrefix("calc")
	viper.AutomaticEnv()
	home, herr := os.UserHomeDir()
	if herr == nil {
		viper.SetDefault(keyHistory, filepath.Join(home, ".calc_history"))
	} else {
		viper.SetDefault(keyHistory, ".calc_history")
	}
	if file != "" {
		viper.SetConfigFile(file)
	} else {
		viper.SetConfigName("calc")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if herr == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "calc"))
		}
	}
	if err := viper.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &nf) {
			return fmt.Errorf("reading config: %w", err)
		}
	}
	return nil
}

// newLogger creates the console logger for diagnostics.
func newLogger(w io.Writer, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).Level(level).With().Timestamp().Logger()
}

// settings controls how expressions are evaluated and displayed.
type settings struct {
	fractions bool
	degrees   bool
	stats     bool
	echo      bool
	// notation is used for echoing expressions if render is set.
	notation calc.Notation
	render   bool
	debug    bool
	log      zerolog.Logger
}

func loadSettings(w io.Writer) (settings, error) {
	s := settings{
		fractions: viper.GetBool(keyFractions),
		degrees:   viper.GetBool(keyDegrees),
		stats:     viper.GetBool(keyStats),
		echo:      viper.GetBool(keyEcho),
		debug:     viper.GetBool(keyVerbose),
	}
	if n := viper.GetString(keyNotation); n != "" {
		v, err := parseNotation(n)
		if err != nil {
			return s, err
		}
		s.notation, s.render = v, true
	}
	s.log = newLogger(w, s.debug)
	return s, nil
}

func parseNotation(s string) (calc.Notation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "infix", "in":
		return calc.Infix, nil
	case "prefix", "pre":
		return calc.Prefix, nil
	case "postfix", "post":
		return calc.Postfix, nil
	}
	return 0, fmt.Errorf("unknown notation %q (want infix, prefix, or postfix)", s)
}

// evaluate parses and evaluates one expression and formats the output line.
func (s *settings) evaluate(src string) (string, error) {
	e, err := calc.Parse(src, calc.PreserveFractions(s.fractions), calc.Logger(s.log))
	if err != nil {
		return "", err
	}
	r, err := e.Eval(calc.Degrees(s.degrees), calc.Logger(s.log))
	if err != nil {
		return "", err
	}
	var b strings.Builder
	if s.echo {
		if s.render {
			b.WriteString(e.Format(s.notation))
		} else {
			b.WriteString(e.String())
		}
		b.WriteString(" = ")
	}
	b.WriteString(r.String())
	if s.stats {
		c := calc.Count(e.Root())
		b.WriteString("  [depth " + strconv.Itoa(c.Depth) + ", ops " + strconv.Itoa(c.Ops) + ", numbers " + strconv.Itoa(c.Numbers) + "]")
	}
	return b.String(), nil
}

func runEval(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	failed := 0
	do := func(src string) {
		r, err := s.evaluate(src)
		if err != nil {
			s.log.Error().Err(err).Str("expr", src).Msg("evaluation failed")
			failed++
			return
		}
		fmt.Fprintln(out, r)
	}
	if len(args) == 0 {
		sc := bufio.NewScanner(cmd.InOrStdin())
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if line == "" || line[0] == '#' {
				continue
			}
			do(line)
		}
		if err := sc.Err(); err != nil {
			return err
		}
	}
	for _, arg := range args {
		do(arg)
	}
	if failed > 0 {
		return fmt.Errorf("%d expression(s) failed", failed)
	}
	return nil
}
