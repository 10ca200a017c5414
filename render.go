package calc

import "strings"

// renderer formats trees. Operations are written in their own notation unless
// force is set.
type renderer struct {
	force    bool
	notation Notation
}

func (renderer) VisitNumber(n Number) (string, error) {
	return n.String(), nil
}

func (r renderer) VisitOperation(o *Operation, args []string) (string, error) {
	n := o.Notation
	if r.force {
		n = r.notation
	}
	sym := o.Op.String()
	switch n {
	case Prefix:
		return sym + " (" + strings.Join(args, ", ") + ")", nil
	case Postfix:
		return "(" + strings.Join(args, ", ") + ") " + sym, nil
	default:
		for i, arg := range o.Args {
			if compound(arg) {
				args[i] = "(" + args[i] + ")"
			}
		}
		return "( " + strings.Join(args, " "+sym+" ") + " )", nil
	}
}

// compound returns whether n is a number whose written form contains a slash
// or a second part, which needs brackets to be an infix operand.
func compound(n Node) bool {
	switch n := n.(type) {
	case Rational:
		return n.Den != 1
	case Complex:
		if n.Re.Den != 1 || n.Im.Den != 1 {
			return true
		}
		return !n.Re.IsZero() && !n.Im.IsZero()
	}
	return false
}
