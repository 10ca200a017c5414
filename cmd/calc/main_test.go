package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/calc"
)

// run executes the root command with fresh configuration.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	viper.Reset()
	cmd := newRootCmd()
	var out, errs bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errs)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errs.String(), err
}

func TestRootCmd(t *testing.T) {
	cases := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{"infix", "", []string{"1+2"}, "3\n"},
		{"several", "", []string{"+(4, 5, 6)", "(4, 5, 6)*"}, "15\n120\n"},
		{"fractions", "", []string{"-f", "1/2+1/3"}, "5/6\n"},
		{"decimal", "", []string{"1/2+1/4"}, "0.75\n"},
		{"complex", "", []string{"(3/4+5/6i)/(1/2+1/3i)"}, "47/26 + 6/13i\n"},
		{"echo", "", []string{"-e", "1+2*3"}, "( 1 + ( 2 * 3 ) ) = 7\n"},
		{"echo-prefix", "", []string{"-e", "-N", "prefix", "1+2*3"}, "+ (1, * (2, 3)) = 7\n"},
		{"stats", "", []string{"-s", "1+2*3"}, "7  [depth 2, ops 2, numbers 3]\n"},
		{"eval-degrees", "", []string{"eval", "--degrees", "sin(90)"}, "1\n"},
		{"alias", "", []string{"ev", "2*3"}, "6\n"},
		{"stdin", "1+1\n# comment\n\n  2*3  \n", nil, "2\n6\n"},
		{"nan", "", []string{"1/0"}, "NaN\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			out, _, err := run(t, c.stdin, c.args...)
			require.NoError(t, err)
			assert.Equal(t, c.want, out)
		})
	}
}

func TestRootCmdFailures(t *testing.T) {
	out, errs, err := run(t, "", "1+", "2")
	require.Error(t, err)
	assert.Equal(t, "1 expression(s) failed", err.Error())
	assert.Equal(t, "2\n", out)
	assert.Contains(t, errs, "evaluation failed")

	_, _, err = run(t, "", "-N", "sideways", "1")
	assert.Error(t, err)

	_, _, err = run(t, "", "--config", filepath.Join(t.TempDir(), "missing.yaml"), "1")
	assert.Error(t, err)
}

func TestRootCmdConfig(t *testing.T) {
	t.Run("file", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "calc.yaml")
		require.NoError(t, os.WriteFile(file, []byte("fractions: true\necho: true\n"), 0o644))
		out, _, err := run(t, "", "--config", file, "1/2+1/4")
		require.NoError(t, err)
		assert.Equal(t, "( (1/2) + (1/4) ) = 3/4\n", out)
	})
	t.Run("env", func(t *testing.T) {
		t.Setenv("CALC_FRACTIONS", "true")
		out, _, err := run(t, "", "1/2+1/2")
		require.NoError(t, err)
		assert.Equal(t, "1/1\n", out)
	})
	t.Run("flag-over-env", func(t *testing.T) {
		t.Setenv("CALC_NOTATION", "postfix")
		out, _, err := run(t, "", "-e", "-N", "infix", "+(1,2)")
		require.NoError(t, err)
		assert.Equal(t, "( 1 + 2 ) = 3\n", out)
	})
}

func TestEvaluate(t *testing.T) {
	s := settings{log: zerolog.Nop()}
	r, err := s.evaluate("sqrt(16) + 1")
	require.NoError(t, err)
	assert.Equal(t, "5", r)

	s.echo, s.render, s.notation = true, true, calc.Postfix
	r, err = s.evaluate("sqrt(16) + 1")
	require.NoError(t, err)
	assert.Equal(t, "(sqrt(16), 1) + = 5", r)

	_, err = s.evaluate("(1+i)/0")
	assert.ErrorIs(t, err, calc.ErrDivideByZero)
	_, err = s.evaluate("1+*2")
	var ierr calc.InputError
	assert.ErrorAs(t, err, &ierr)
}

func TestCommand(t *testing.T) {
	s := settings{log: zerolog.Nop()}
	cases := []struct {
		cmd, args string
		want      string
		quit      bool
		err       bool
	}{
		{":fractions", "", "fractions is off", false, false},
		{":fractions", " on", "fractions set to on", false, false},
		{":fractions", "", "fractions is on", false, false},
		{":degrees", "yes", "degrees set to on", false, false},
		{":stats", "maybe", "", false, true},
		{":notation", "", "notation is each operation's own", false, false},
		{":notation", " post", "notation set to postfix", false, false},
		{":notation", "", "notation is postfix", false, false},
		{":notation", "sideways", "", false, true},
		{":debug", "1", "debug set to on", false, false},
		{":help", "", replHelp, false, false},
		{":frobnicate", "", "", false, true},
		{":exit", "", "", true, false},
	}
	for _, c := range cases {
		msg, quit, err := s.command(c.cmd, c.args)
		if c.err {
			assert.Error(t, err, "%s %s", c.cmd, c.args)
			continue
		}
		require.NoError(t, err, "%s %s", c.cmd, c.args)
		assert.Equal(t, c.want, msg)
		assert.Equal(t, c.quit, quit)
	}
	assert.True(t, s.fractions)
	assert.True(t, s.degrees)
	assert.False(t, s.stats)
	assert.True(t, s.debug)
	assert.Equal(t, zerolog.DebugLevel, s.log.GetLevel())
	assert.Equal(t, calc.Postfix, s.notation)
}

func TestSplitLine(t *testing.T) {
	cases := []struct {
		line, cmd, args string
	}{
		{":notation prefix", ":notation", " prefix"},
		{"  :quit  ", ":quit", ""},
		{":stats\ton", ":stats", "\ton"},
		{"", "", ""},
	}
	for _, c := range cases {
		cmd, args := splitLine(c.line)
		assert.Equal(t, c.cmd, cmd, "command of %q", c.line)
		assert.Equal(t, c.args, args, "arguments of %q", c.line)
	}
}

func TestParseNotation(t *testing.T) {
	for s, want := range map[string]calc.Notation{
		"infix":   calc.Infix,
		"in":      calc.Infix,
		"Prefix":  calc.Prefix,
		" post ":  calc.Postfix,
		"POSTFIX": calc.Postfix,
	} {
		got, err := parseNotation(s)
		require.NoError(t, err, s)
		assert.Equal(t, want, got, s)
	}
	_, err := parseNotation("reverse polish")
	assert.Error(t, err)
}

func TestParseSwitch(t *testing.T) {
	for s, want := range map[string]bool{"on": true, "OFF": false, "t": true, "no": false, "TRUE": true, "0": false} {
		got, err := parseSwitch(s)
		require.NoError(t, err, s)
		assert.Equal(t, want, got, s)
	}
	_, err := parseSwitch("maybe")
	assert.Error(t, err)
}

func TestComplete(t *testing.T) {
	assert.Equal(t, []string{":notation"}, complete(":no"))
	assert.Equal(t, []string{"1+sqrt("}, complete("1+sq"))
	assert.Equal(t, []string{"sin(", "sqrt("}, complete("s"))
	assert.Nil(t, complete("1+"))
	assert.Nil(t, complete(":z"))
}

func TestHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")
	require.NoError(t, os.WriteFile(path, []byte("1+1\n2*3\n"), 0o644))

	term, err := terminal(path)
	require.NoError(t, err)
	term.AppendHistory("sqrt(4)")
	require.NoError(t, persist(term, path))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1+1\n2*3\nsqrt(4)\n", string(b))

	// A session that adds nothing leaves the file as it was.
	term, err = terminal(path)
	require.NoError(t, err)
	require.NoError(t, persist(term, path))
	b, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1+1\n2*3\nsqrt(4)\n", string(b))
}
