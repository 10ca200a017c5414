package calc

import (
	"math"

	"github.com/rs/zerolog"
)

// Evaluator computes the values of expression trees. An Evaluator may be used
// for any number of evaluations, but it is not safe to use concurrently.
// Trees are never modified by evaluation, so separate Evaluators may
// evaluate the same tree at once.
type Evaluator struct {
	preserve bool
	degrees  bool
	log      zerolog.Logger
	result   Number
	err      error
	used     bool
}

// NewEvaluator creates an evaluator. By default it works in decimal mode
// and trigonometric functions take radians.
func NewEvaluator(opts ...EvalOption) *Evaluator {
	ev := Evaluator{log: zerolog.Nop()}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.evalOption(&ev)
	}
	return &ev
}

// Eval evaluates the tree rooted at n and returns the result. If an error
// occurs, e.g. a complex number passed to a real function, then the result
// is nil and ev.Err returns the error.
func (ev *Evaluator) Eval(n Node) Number {
	ev.used = true
	r, err := Walk[Number](n, ev)
	if err != nil {
		ev.result, ev.err = nil, err
		return nil
	}
	ev.result, ev.err = ev.settle(r), nil
	return ev.result
}

// Result returns the result of the last evaluation as a tree node. Panics if
// ev has not evaluated anything. Returns nil if an error occurred.
func (ev *Evaluator) Result() Node {
	if !ev.used {
		panic("calc: Evaluator.Result called before evaluating any expression")
	}
	if ev.result == nil {
		return nil
	}
	return ev.result
}

// Err returns the error from the last evaluation, if any.
func (ev *Evaluator) Err() error {
	return ev.err
}

// Fractions returns whether ev is in fraction-preserving mode.
func (ev *Evaluator) Fractions() bool {
	return ev.preserve
}

// VisitNumber evaluates a literal to itself, in lowest terms.
func (ev *Evaluator) VisitNumber(n Number) (Number, error) {
	return ev.settle(n), nil
}

// VisitOperation folds the operands left to right. An operation with one
// operand evaluates to that operand.
func (ev *Evaluator) VisitOperation(o *Operation, args []Number) (Number, error) {
	if len(args) == 0 {
		return nil, &ConstructionError{What: "operation " + o.Op.String(), Reason: "no operands", Err: ErrNoOperands}
	}
	r := args[0]
	for _, x := range args[1:] {
		v, err := Combine(o.Op, r, x)
		if err != nil {
			return nil, err
		}
		if isNaN(v) && !isNaN(r) && !isNaN(x) {
			ev.log.Debug().Stringer("left", r).Stringer("op", o.Op).Stringer("right", x).Msg("undefined result")
		}
		r = ev.settle(v)
	}
	if x, ok := r.(Real); ok && ev.preserve && !x.IsNaN() && !math.IsInf(float64(x), 0) {
		r = x.Rational().Simplify()
	}
	return r, nil
}

// VisitCall applies a function to a real or rational operand.
func (ev *Evaluator) VisitCall(c *Call, arg Number) (Number, error) {
	fn := c.fn
	if fn == nil {
		fn = globalfuncs[c.Name]
	}
	if fn == nil {
		return nil, &ConstructionError{What: "call", Reason: "unknown function " + c.Name}
	}
	switch x := arg.(type) {
	case Real:
		return fn.Call(ev, x), nil
	case Rational:
		return fn.Call(ev, x.Value()), nil
	}
	return nil, &DomainError{X: arg, Func: c.Name}
}

// settle puts a number in its canonical form for the evaluation mode.
// Rationals are reduced, and in decimal mode whole ones become Reals.
// Complex parts are reduced but stay Rational.
func (ev *Evaluator) settle(n Number) Number {
	switch n := n.(type) {
	case Rational:
		if isNaN(n) {
			return NaN
		}
		q := n.Simplify()
		if ev.preserve {
			return q
		}
		return q.Demote()
	case Complex:
		if isNaN(n) {
			return NaN
		}
		return n.Simplify()
	}
	return n
}
