package calc

import "errors"

// ErrDivideByZero is the cause of a ConstructionError for a quotient whose
// divisor has no reciprocal.
var ErrDivideByZero = errors.New("division by zero")

// Combine applies a binary operator to two numbers. The result has the larger
// kind of the two operands, where Real < Rational < Complex, and Rational
// results are in lowest terms.
//
// Dividing a Real or Rational by zero gives NaN, as does any operation with a
// NaN operand. Dividing a Complex by zero, or anything by a Complex with zero
// magnitude, is a ConstructionError wrapping ErrDivideByZero.
func Combine(op Operator, l, r Number) (Number, error) {
	if !op.valid() {
		return nil, &ConstructionError{What: "operation", Reason: "unknown operator " + op.String()}
	}
	if isNaN(l) || isNaN(r) {
		return NaN, nil
	}
	switch l := l.(type) {
	case Real:
		switch r := r.(type) {
		case Real:
			return realOp(op, l, r), nil
		case Rational:
			return ratOp(op, l.Rational(), r), nil
		case Complex:
			return scalarComplexOp(op, l.Rational(), r)
		}
	case Rational:
		switch r := r.(type) {
		case Real:
			return ratOp(op, l, r.Rational()), nil
		case Rational:
			return ratOp(op, l, r), nil
		case Complex:
			return scalarComplexOp(op, l, r)
		}
	case Complex:
		switch r := r.(type) {
		case Real:
			return complexScalarOp(op, l, r.Rational())
		case Rational:
			return complexScalarOp(op, l, r)
		case Complex:
			return complexOp(op, l, r)
		}
	}
	panic("calc: unhandled number kinds")
}

func realOp(op Operator, l, r Real) Number {
	switch op {
	case Plus:
		return l + r
	case Minus:
		return l - r
	case Times:
		return l * r
	case Divides:
		if r == 0 {
			return NaN
		}
		return l / r
	}
	panic("calc: unknown operator " + op.String())
}

func ratOp(op Operator, l, r Rational) Number {
	switch op {
	case Plus:
		return radd(l, r)
	case Minus:
		return rsub(l, r)
	case Times:
		return rmul(l, r)
	case Divides:
		if r.IsZero() {
			return NaN
		}
		return rquo(l, r)
	}
	panic("calc: unknown operator " + op.String())
}

func radd(l, r Rational) Rational {
	return Rational{l.Num*r.Den + r.Num*l.Den, l.Den * r.Den}.Simplify()
}

func rsub(l, r Rational) Rational {
	return Rational{l.Num*r.Den - r.Num*l.Den, l.Den * r.Den}.Simplify()
}

func rmul(l, r Rational) Rational {
	return Rational{l.Num * r.Num, l.Den * r.Den}.Simplify()
}

// rquo divides l by r. r must be nonzero.
func rquo(l, r Rational) Rational {
	return Rational{l.Num * r.Den, l.Den * r.Num}.Simplify()
}

func complexOp(op Operator, l, r Complex) (Number, error) {
	switch op {
	case Plus:
		return Complex{radd(l.Re, r.Re), radd(l.Im, r.Im)}, nil
	case Minus:
		return Complex{rsub(l.Re, r.Re), rsub(l.Im, r.Im)}, nil
	case Times:
		re := rsub(rmul(l.Re, r.Re), rmul(l.Im, r.Im))
		im := radd(rmul(l.Re, r.Im), rmul(l.Im, r.Re))
		return Complex{re, im}, nil
	case Divides:
		// Multiply through by the conjugate of r so the divisor is real.
		mag := radd(rmul(r.Re, r.Re), rmul(r.Im, r.Im))
		if mag.IsZero() {
			return nil, &ConstructionError{What: "quotient", Reason: "divisor " + r.String() + " has zero magnitude", Err: ErrDivideByZero}
		}
		re := radd(rmul(l.Re, r.Re), rmul(l.Im, r.Im))
		im := rsub(rmul(l.Im, r.Re), rmul(l.Re, r.Im))
		return Complex{rquo(re, mag), rquo(im, mag)}, nil
	}
	panic("calc: unknown operator " + op.String())
}

// complexScalarOp combines a complex left operand with a scalar right one.
func complexScalarOp(op Operator, l Complex, r Rational) (Number, error) {
	switch op {
	case Times:
		return Complex{rmul(l.Re, r), rmul(l.Im, r)}, nil
	case Divides:
		if r.IsZero() {
			return nil, &ConstructionError{What: "quotient", Reason: "complex " + l.String() + " divided by zero", Err: ErrDivideByZero}
		}
		inv := Rational{r.Den, r.Num}
		return Complex{rmul(l.Re, inv), rmul(l.Im, inv)}, nil
	}
	return complexOp(op, l, r.Complex())
}

// scalarComplexOp combines a scalar left operand with a complex right one.
func scalarComplexOp(op Operator, l Rational, r Complex) (Number, error) {
	if op == Times {
		return Complex{rmul(l, r.Re), rmul(l, r.Im)}, nil
	}
	return complexOp(op, l.Complex(), r)
}
