package calc

import (
	"errors"
	"strconv"
	"strings"
)

// number builds the node for a numeric token.
func (p *parsectx) number(t Token) (Node, error) {
	switch t.Kind {
	case TokenInteger, TokenReal:
		return parseReal(t.Text)
	case TokenRational:
		num, den, err := parseFraction(t.Text)
		if err != nil {
			return nil, err
		}
		if p.preserve {
			return Rational{num, den}, nil
		}
		// In decimal mode a fraction is just a division, so that it becomes
		// a Real like any other quotient.
		return NewOperation(Divides, []Node{num, den}, Infix)
	case TokenComplex:
		return parseComplex(t.Text)
	}
	return nil, &ConstructionError{What: "number", Reason: "token " + t.String() + " is not a number"}
}

func parseReal(s string) (Real, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, &ConstructionError{What: "number", Reason: "cannot parse " + strconv.Quote(s), Err: err}
	}
	// Out of range values are ±Inf or ±0, which is what we want.
	return Real(f), nil
}

func parseFraction(s string) (num, den Real, err error) {
	k := strings.IndexByte(s, '/')
	if k < 0 {
		return 0, 0, &ConstructionError{What: "rational", Reason: strconv.Quote(s) + " has no denominator"}
	}
	if num, err = parseReal(s[:k]); err != nil {
		return 0, 0, err
	}
	if den, err = parseReal(s[k+1:]); err != nil {
		return 0, 0, err
	}
	return num, den, nil
}

// parseRational parses either a/b or a decimal as a Rational.
func parseRational(s string) (Rational, error) {
	if strings.IndexByte(s, '/') >= 0 {
		num, den, err := parseFraction(s)
		return Rational{num, den}, err
	}
	x, err := parseReal(s)
	return x.Rational(), err
}

// parseComplex parses the text of a complex literal: a±bi, bi, a±i, i, or -i,
// where a and b are fractions or decimals.
func parseComplex(s string) (Complex, error) {
	body, ok := strings.CutSuffix(s, "i")
	if !ok {
		return Complex{}, &ConstructionError{What: "complex number", Reason: strconv.Quote(s) + " has no imaginary unit"}
	}
	// The split between the parts is the last sign that isn't leading and
	// doesn't belong to an exponent.
	k := -1
	for j := len(body) - 1; j > 0; j-- {
		if isSign(body[j]) && body[j-1] != 'e' && body[j-1] != 'E' {
			k = j
			break
		}
	}
	var z Complex
	im := body
	if k >= 0 {
		re, err := parseRational(body[:k])
		if err != nil {
			return Complex{}, err
		}
		z.Re = re
		im = body[k:]
	} else {
		z.Re = Rational{0, 1}
	}
	switch im {
	case "", "+":
		z.Im = Rational{1, 1}
	case "-":
		z.Im = Rational{-1, 1}
	default:
		q, err := parseRational(im)
		if err != nil {
			return Complex{}, err
		}
		z.Im = q
	}
	return z, nil
}
