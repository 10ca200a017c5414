package calc

import (
	"math"
	"math/big"
	"strconv"

	"github.com/shopspring/decimal"
)

// Number is a numeric value: a Real, a Rational, or a Complex. Every Number is
// also a leaf of an expression tree.
type Number interface {
	Node
	number()
}

// Real is a real number.
type Real float64

// NaN is the undefined result of arithmetic such as division by zero.
var NaN = Real(math.NaN())

// Rational is a fraction of two Reals. It is not necessarily in lowest terms;
// use Simplify to reduce it.
type Rational struct {
	Num, Den Real
}

// Complex is a complex number with Rational real and imaginary parts.
type Complex struct {
	Re, Im Rational
}

func (Real) node()       {}
func (Real) number()     {}
func (Rational) node()   {}
func (Rational) number() {}
func (Complex) node()    {}
func (Complex) number()  {}

// IsNaN returns whether x is the NaN sentinel.
func (x Real) IsNaN() bool {
	return math.IsNaN(float64(x))
}

// Rational returns x/1.
func (x Real) Rational() Rational {
	return Rational{x, 1}
}

// Complex returns x + 0i.
func (x Real) Complex() Complex {
	return x.Rational().Complex()
}

func (x Real) String() string {
	f := float64(x)
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 0):
		return strconv.FormatFloat(f, 'g', -1, 64)
	case math.Abs(f) < 1e-10:
		return "0"
	case math.Abs(f-1) < 1e-10:
		return "1"
	case math.Abs(f+1) < 1e-10:
		return "-1"
	case f == math.Trunc(f) && math.Abs(f) < 1e21:
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Value returns the quotient of q as a Real.
func (q Rational) Value() Real {
	return q.Num / q.Den
}

// IsZero returns whether q has a zero numerator.
func (q Rational) IsZero() bool {
	return q.Num == 0
}

// Neg returns -q. If the denominator is negative, the sign is removed from it
// rather than added to the numerator.
func (q Rational) Neg() Rational {
	if q.Den < 0 {
		return Rational{q.Num, -q.Den}
	}
	return Rational{-q.Num, q.Den}
}

// Complex returns q + 0i.
func (q Rational) Complex() Complex {
	return Complex{q, Rational{0, 1}}
}

// Simplify reduces q to lowest terms with the sign on the numerator. The
// numerator and denominator need not be integers: both are first scaled by
// the power of ten that makes them so. Rationals with non-finite parts or a
// zero denominator are returned unchanged.
func (q Rational) Simplify() Rational {
	n, ok := exact(q.Num)
	if !ok {
		return q
	}
	d, ok := exact(q.Den)
	if !ok || d.Sign() == 0 {
		return q
	}
	r := n.Quo(n, d)
	num, _ := new(big.Float).SetInt(r.Num()).Float64()
	den, _ := new(big.Float).SetInt(r.Denom()).Float64()
	return Rational{Real(num), Real(den)}
}

// Demote returns q's numerator if its denominator is exactly 1 and q
// otherwise.
func (q Rational) Demote() Number {
	if q.Den == 1 {
		return q.Num
	}
	return q
}

func (q Rational) String() string {
	return q.Num.String() + "/" + q.Den.String()
}

// exact converts x to the exact value of its shortest decimal representation.
func exact(x Real) (*big.Rat, bool) {
	f := float64(x)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, false
	}
	return decimal.NewFromFloat(f).Rat(), true
}

// Simplify reduces both components of z.
func (z Complex) Simplify() Complex {
	return Complex{z.Re.Simplify(), z.Im.Simplify()}
}

func (z Complex) String() string {
	re := component(z.Re)
	switch im := z.Im.Value(); {
	case z.Im.IsZero():
		return re
	case z.Re.IsZero():
		switch im {
		case 1:
			return "i"
		case -1:
			return "-i"
		}
		return component(z.Im) + "i"
	case im == 1:
		return re + " + i"
	case im == -1:
		return re + " - i"
	case im < 0:
		return re + " - " + component(z.Im.Neg()) + "i"
	}
	return re + " + " + component(z.Im) + "i"
}

// component formats a part of a complex number, omitting a denominator of 1.
func component(q Rational) string {
	if q.Den == 1 {
		return q.Num.String()
	}
	return q.String()
}

// isNaN returns whether any part of n is undefined.
func isNaN(n Number) bool {
	switch n := n.(type) {
	case Real:
		return n.IsNaN()
	case Rational:
		return n.Num.IsNaN() || n.Den.IsNaN() || n.Den == 0
	case Complex:
		return isNaN(n.Re) || isNaN(n.Im)
	}
	return false
}
