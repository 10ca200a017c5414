package calc_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/zephyrtronium/calc"
)

func TestTokenize(t *testing.T) {
	type tok = calc.Token
	const (
		in = calc.TokenInteger
		re = calc.TokenReal
		ra = calc.TokenRational
		cx = calc.TokenComplex
		op = calc.TokenOp
		lp = calc.TokenOpen
		rp = calc.TokenClose
		fn = calc.TokenFunc
		sp = calc.TokenSep
	)
	cases := []struct {
		name string
		src  string
		toks []tok
	}{
		{"int", "1", []tok{{"1", in, 1}}},
		{"real", "1.5", []tok{{"1.5", re, 1}}},
		{"exp", "1e3", []tok{{"1e3", re, 1}}},
		{"neg-exp", "2.5e-3", []tok{{"2.5e-3", re, 1}}},
		{"leading-dot", ".5", []tok{{".5", re, 1}}},
		{"sum", "1 + 2", []tok{{"1", in, 1}, {"+", op, 2}, {"2", in, 3}}},
		{"rational", "3/4", []tok{{"3/4", ra, 1}}},
		{"negative-rational", "-3/4", []tok{{"-3/4", ra, 1}}},
		{"divide-chain", "8/4/2", []tok{{"8/4", ra, 1}, {"/", op, 4}, {"2", in, 5}}},
		{"real-denominator", "1/2.5", []tok{{"1", in, 1}, {"/", op, 2}, {"2.5", re, 3}}},
		{"complex", "-2+3i", []tok{{"-2+3i", cx, 1}}},
		{"complex-fractions", "3/4+5/6i", []tok{{"3/4+5/6i", cx, 1}}},
		{"complex-unit", "2-i", []tok{{"2-i", cx, 1}}},
		{"imaginary", "4i", []tok{{"4i", cx, 1}}},
		{"imaginary-fraction", "1/3i", []tok{{"1/3i", cx, 1}}},
		{"unit", "i", []tok{{"i", cx, 1}}},
		{"neg-unit", "-i", []tok{{"-i", cx, 1}}},
		{"complex-after-times", "2*3+4i", []tok{{"2", in, 1}, {"*", op, 2}, {"3", in, 3}, {"+", op, 4}, {"4i", cx, 5}}},
		{"complex-after-minus", "1-2+3i", []tok{{"1", in, 1}, {"-", op, 2}, {"2", in, 3}, {"+", op, 4}, {"3i", cx, 5}}},
		{"complex-before-times", "2+3i*2", []tok{{"2", in, 1}, {"+", op, 2}, {"3i", cx, 3}, {"*", op, 5}, {"2", in, 6}}},
		{"complex-bracketed", "(1+i)", []tok{{"(", lp, 1}, {"1+i", cx, 2}, {")", rp, 5}}},
		{"unary-minus-literal", "3*-4", []tok{{"3", in, 1}, {"*", op, 2}, {"-4", in, 3}}},
		{"unary-minus-group", "-(1+2)", []tok{
			{"(", lp, 1}, {"-1", in, 1}, {"*", op, 1},
			{"(", lp, 2}, {"1", in, 3}, {"+", op, 4}, {"2", in, 5}, {")", rp, 6},
			{")", rp, 6},
		}},
		{"unary-minus-func", "-sqrt(4)", []tok{
			{"(", lp, 1}, {"-1", in, 1}, {"*", op, 1},
			{"sqrt", fn, 2}, {"(", lp, 6}, {"4", in, 7}, {")", rp, 8},
			{")", rp, 8},
		}},
		{"func", "sqrt(9)", []tok{{"sqrt", fn, 1}, {"(", lp, 5}, {"9", in, 6}, {")", rp, 7}}},
		{"pi", "2 * π", []tok{{"2", in, 1}, {"*", op, 2}, {"3.141592653589793", re, 3}}},
		{"pi-word", "pi", []tok{{"3.141592653589793", re, 1}}},
		{"separator", "(1,2)", []tok{{"(", lp, 1}, {"1", in, 2}, {",", sp, 3}, {"2", in, 4}, {")", rp, 5}}},
		{"spaces", " 1\t+\n2 ", []tok{{"1", in, 1}, {"+", op, 2}, {"2", in, 3}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			toks, err := calc.Tokenize(c.src)
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(toks, c.toks) {
				t.Errorf("wrong tokens from %q:\nwant %v\ngot  %v", c.src, c.toks, toks)
			}
		})
	}
}

func TestTokenizeErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		kind string
		col  int
	}{
		{"dots", "1.2.3", "number", 4},
		{"bad-exp", "1e", "number", 2},
		{"dollar", "2$", "", 2},
		{"unknown-func", "foo(1)", "function", 1},
		{"pi-after-digit", "2π", "constant", 2},
		{"pi-before-bracket", "π(2)", "constant", 1},
		{"times-sign", "2×3", "", 2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			toks, err := calc.Tokenize(c.src)
			if err == nil {
				t.Fatalf("no error from %q; got tokens %v", c.src, toks)
			}
			var lerr *calc.LexError
			if !errors.As(err, &lerr) {
				t.Fatalf("wrong error type from %q: %T (%v)", c.src, err, err)
			}
			if lerr.Kind != c.kind {
				t.Errorf("wrong kind from %q: want %q, got %q", c.src, c.kind, lerr.Kind)
			}
			if lerr.Pos() != c.col {
				t.Errorf("wrong position from %q: want %d, got %d", c.src, c.col, lerr.Pos())
			}
		})
	}
}
