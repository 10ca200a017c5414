package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/peterh/liner"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zephyrtronium/calc"
)

const ps1 = "calc> "

const replHelp = `Enter an expression to evaluate it, or a command:
	:fractions [on|off]              preserve fractions in results
	:degrees [on|off]                trigonometric functions take degrees
	:notation [infix|prefix|postfix] notation for echoed expressions
	:echo [on|off]                   print each parsed expression
	:stats [on|off]                  print depth, operation, and number counts
	:debug [on|off]                  log debug events
	:help                            this help
	:quit                            exit`

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Evaluate expressions interactively.",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return repl(&s, viper.GetString(keyHistory))
		},
	}
}

func repl(s *settings, history string) error {
	term, err := terminal(history)
	if err != nil && !os.IsNotExist(err) {
		s.log.Warn().Err(err).Str("history", history).Msg("could not read history")
	}
	defer func() {
		if err := persist(term, history); err != nil {
			s.log.Warn().Err(err).Msg("could not save history")
		}
	}()

	for {
		line, err := term.Prompt(ps1)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
				fmt.Println()
				return nil
			}
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" || line[0] == '#' {
			continue
		}
		term.AppendHistory(line)

		if cmd, args := splitLine(line); cmd[0] == ':' {
			msg, quit, err := s.command(cmd, args)
			switch {
			case err != nil:
				fmt.Println("Error:", err)
			case quit:
				return nil
			case msg != "":
				fmt.Println(msg)
			}
			continue
		}
		r, err := s.evaluate(line)
		if err != nil {
			fmt.Println("Error:", err)
			continue
		}
		fmt.Println(r)
	}
}

// command executes a REPL command and returns a message to print and whether
// to quit.
func (s *settings) command(cmd, args string) (string, bool, error) {
	args = strings.TrimSpace(args)
	var b *bool
	switch cmd {
	case ":fractions":
		b = &s.fractions
	case ":degrees":
		b = &s.degrees
	case ":echo":
		b = &s.echo
	case ":stats":
		b = &s.stats
	case ":debug":
		b = &s.debug
	case ":notation":
		if args == "" {
			if !s.render {
				return "notation is each operation's own", false, nil
			}
			return "notation is " + s.notation.String(), false, nil
		}
		n, err := parseNotation(args)
		if err != nil {
			return "", false, err
		}
		s.notation, s.render = n, true
		return "notation set to " + n.String(), false, nil
	case ":help":
		return replHelp, false, nil
	case ":quit", ":exit":
		return "", true, nil
	default:
		return "", false, fmt.Errorf("unknown command %q; try :help", cmd)
	}
	name := cmd[1:]
	if args == "" {
		return name + " is " + onOff(*b), false, nil
	}
	v, err := parseSwitch(args)
	if err != nil {
		return "", false, err
	}
	*b = v
	if cmd == ":debug" {
		level := zerolog.InfoLevel
		if v {
			level = zerolog.DebugLevel
		}
		s.log = s.log.Level(level)
	}
	return name + " set to " + onOff(v), false, nil
}

func parseSwitch(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "t", "yes":
		return true, nil
	case "off", "f", "no":
		return false, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("cannot parse %q as on or off", s)
	}
	return v, nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// splitLine splits a line into a command and its arguments,
// e.g. ":notation prefix" into ":notation" and " prefix".
func splitLine(line string) (string, string) {
	var command, arguments string
	line = strings.TrimSpace(line)
	if len(line) > 0 {
		command = strings.Fields(line)[0]
		if len(line) > len(command) {
			arguments = line[len(command):]
		}
	}
	return command, arguments
}

func terminal(path string) (*liner.State, error) {
	term := liner.NewLiner()
	term.SetCtrlCAborts(true)
	term.SetCompleter(complete)
	f, err := os.Open(path)
	if err != nil {
		return term, err
	}
	defer f.Close()
	_, err = term.ReadHistory(f)
	return term, err
}

func persist(term *liner.State, path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0666)
	if err != nil {
		term.Close()
		return fmt.Errorf("could not open %q to save history: %w", path, err)
	}
	defer f.Close()
	if _, err := term.WriteHistory(f); err != nil {
		term.Close()
		return fmt.Errorf("could not write history to %q: %w", path, err)
	}
	return term.Close()
}

// complete completes REPL commands and function names.
func complete(line string) []string {
	var r []string
	if strings.HasPrefix(line, ":") {
		for _, c := range []string{":fractions", ":degrees", ":notation", ":echo", ":stats", ":debug", ":help", ":quit"} {
			if strings.HasPrefix(c, line) {
				r = append(r, c)
			}
		}
		return r
	}
	// Complete a function name at the end of the line.
	i := strings.LastIndexFunc(line, func(c rune) bool { return !('a' <= c && c <= 'z') })
	prefix, word := line[:i+1], line[i+1:]
	if word == "" {
		return nil
	}
	for name := range calc.DefaultFuncs() {
		if strings.HasPrefix(name, word) {
			r = append(r, prefix+name+"(")
		}
	}
	sort.Strings(r)
	return r
}
