package calc

import (
	"errors"
	"math"
	"math/big"
	"strconv"

	"github.com/zephyrtronium/bigfloat"
)

// Func is a function from reals to reals.
type Func interface {
	// Call evaluates the function at x. Arguments outside the function's
	// domain produce NaN. The evaluator is available for settings such as
	// the angle unit.
	Call(ev *Evaluator, x Real) Real
}

var globalfuncs = map[string]Func{
	"sqrt": Monadic((*big.Float).Sqrt),
	"exp":  Monadic(bigfloat.Exp),
	"ln":   Monadic(bigfloat.Log),
	"sin":  Angular(math.Sin),
	"cos":  Angular(math.Cos),
	"tan":  Angular(math.Tan),
}

// DefaultFuncs returns a copy of the functions every parse knows unless
// disabled.
func DefaultFuncs() map[string]Func {
	m := make(map[string]Func, len(globalfuncs))
	for k, v := range globalfuncs {
		m[k] = v
	}
	return m
}

type monadic struct {
	f func(out, in *big.Float) *big.Float
}

// prec is the precision at which monadic functions compute before rounding
// back to float64.
const prec = 64

func (m monadic) Call(ev *Evaluator, x Real) (r Real) {
	f := float64(x)
	if math.IsNaN(f) {
		return NaN
	}
	defer func() {
		e := recover()
		if e == nil {
			return
		}
		err := e.(error) // panic if not error
		if errors.As(err, &big.ErrNaN{}) {
			r = NaN
			return
		}
		panic(err)
	}()
	in := new(big.Float).SetPrec(prec).SetFloat64(f)
	out := new(big.Float).SetPrec(prec)
	m.f(out, in)
	v, _ := out.Float64()
	return Real(v)
}

// Monadic wraps a function of one arbitrary-precision variable into a Func.
// f must set out to its result; its return value is ignored. If f is called
// on an argument outside its domain, it should panic with an error of type
// big.ErrNaN, or that unwraps to it, and the call produces NaN.
func Monadic(f func(out, in *big.Float) *big.Float) Func {
	return monadic{f}
}

type angular struct {
	f func(float64) float64
}

func (a angular) Call(ev *Evaluator, x Real) Real {
	f := float64(x)
	if ev != nil && ev.degrees {
		f *= math.Pi / 180
	}
	return Real(a.f(f))
}

// Angular wraps a trigonometric function of radians into a Func. When the
// evaluator measures angles in degrees, arguments are converted to radians
// first.
func Angular(f func(float64) float64) Func {
	return angular{f}
}

// DomainError is an error returned when a function is called on an argument
// it cannot accept, such as a complex number.
type DomainError struct {
	// X is the rejected argument.
	X Number
	// Func is a name identifying the function.
	Func string
}

func (err *DomainError) Error() string {
	r := err.X.String() + " outside domain"
	if err.Func != "" {
		r += " of " + strconv.Quote(err.Func)
	}
	return r
}
