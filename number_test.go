package calc_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zephyrtronium/calc"
)

func TestSimplify(t *testing.T) {
	cases := []struct {
		name string
		q    calc.Rational
		want calc.Rational
	}{
		{"reduce", calc.Rational{28, 24}, calc.Rational{7, 6}},
		{"lowest", calc.Rational{7, 6}, calc.Rational{7, 6}},
		{"decimal-num", calc.Rational{0.5, 1}, calc.Rational{1, 2}},
		{"decimal-both", calc.Rational{1.5, 0.25}, calc.Rational{6, 1}},
		{"tenths", calc.Rational{0.1, 0.3}, calc.Rational{1, 3}},
		{"small-decimal", calc.Rational{2.5e-7, 1}, calc.Rational{1, 4000000}},
		{"large-decimal", calc.Rational{1e15, 2.5}, calc.Rational{4e14, 1}},
		{"negative-den", calc.Rational{3, -6}, calc.Rational{-1, 2}},
		{"both-negative", calc.Rational{-4, -8}, calc.Rational{1, 2}},
		{"zero", calc.Rational{0, 5}, calc.Rational{0, 1}},
		{"zero-den", calc.Rational{1, 0}, calc.Rational{1, 0}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := c.q.Simplify()
			assert.Equal(t, c.want, got)
			assert.Equal(t, got, got.Simplify(), "not idempotent")
		})
	}
	t.Run("nan", func(t *testing.T) {
		got := calc.Rational{calc.NaN, 1}.Simplify()
		assert.True(t, got.Num.IsNaN())
	})
}

func TestDemote(t *testing.T) {
	assert.Equal(t, calc.Real(3), calc.Rational{3, 1}.Demote())
	assert.Equal(t, calc.Rational{3, 2}, calc.Rational{3, 2}.Demote())
	assert.Equal(t, calc.Rational{6, 2}, calc.Rational{6, 2}.Demote())
}

func TestNeg(t *testing.T) {
	assert.Equal(t, calc.Rational{-1, 2}, calc.Rational{1, 2}.Neg())
	assert.Equal(t, calc.Rational{1, 2}, calc.Rational{1, -2}.Neg())
}

func TestNumberString(t *testing.T) {
	cases := []struct {
		name string
		n    calc.Number
		want string
	}{
		{"whole", calc.Real(8), "8"},
		{"half", calc.Real(0.5), "0.5"},
		{"negative", calc.Real(-3), "-3"},
		{"nan", calc.NaN, "NaN"},
		{"inf", calc.Real(math.Inf(-1)), "-Inf"},
		{"near-zero", calc.Real(1e-12), "0"},
		{"near-one", calc.Real(1 + 1e-12), "1"},
		{"near-minus-one", calc.Real(-1 - 1e-12), "-1"},
		{"small", calc.Real(2.5e-7), "2.5e-07"},
		{"large-whole", calc.Real(1e20), "100000000000000000000"},
		{"huge", calc.Real(1e21), "1e+21"},
		{"rational", calc.Rational{3, 4}, "3/4"},
		{"rational-negative", calc.Rational{-1, 2}, "-1/2"},
		{"complex", calc.Complex{calc.Rational{47, 26}, calc.Rational{6, 13}}, "47/26 + 6/13i"},
		{"complex-minus", calc.Complex{calc.Rational{2, 1}, calc.Rational{-3, 1}}, "2 - 3i"},
		{"unit", calc.Complex{calc.Rational{0, 1}, calc.Rational{1, 1}}, "i"},
		{"minus-unit", calc.Complex{calc.Rational{0, 1}, calc.Rational{-1, 1}}, "-i"},
		{"plus-unit", calc.Complex{calc.Rational{2, 1}, calc.Rational{1, 1}}, "2 + i"},
		{"minus-unit-re", calc.Complex{calc.Rational{2, 1}, calc.Rational{-1, 1}}, "2 - i"},
		{"real-part", calc.Complex{calc.Rational{5, 1}, calc.Rational{0, 1}}, "5"},
		{"imaginary", calc.Complex{calc.Rational{0, 1}, calc.Rational{3, 4}}, "3/4i"},
		{"imaginary-fraction-minus", calc.Complex{calc.Rational{1, 2}, calc.Rational{-1, 3}}, "1/2 - 1/3i"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, c.n.String())
		})
	}
}
