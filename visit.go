package calc

import "fmt"

// Visitor is an algorithm over expression trees. Walk calls its methods in
// post-order, so every operand's result is available when its parent is
// visited.
type Visitor[R any] interface {
	// VisitNumber visits a number leaf.
	VisitNumber(n Number) (R, error)
	// VisitOperation visits an operation given the results of visiting each
	// of its operands, in order.
	VisitOperation(o *Operation, args []R) (R, error)
	// VisitCall visits a function call given the result of its operand.
	VisitCall(c *Call, arg R) (R, error)
}

// Walk applies v to the tree rooted at n and returns the result for n. The
// first error returned by a visit method stops the walk.
func Walk[R any](n Node, v Visitor[R]) (R, error) {
	switch n := n.(type) {
	case Number:
		return v.VisitNumber(n)
	case *Operation:
		args := make([]R, len(n.Args))
		for i, arg := range n.Args {
			r, err := Walk(arg, v)
			if err != nil {
				return r, err
			}
			args[i] = r
		}
		return v.VisitOperation(n, args)
	case *Call:
		r, err := Walk(n.Arg, v)
		if err != nil {
			return r, err
		}
		return v.VisitCall(n, r)
	case nil:
		panic("calc: Walk on nil node")
	}
	panic(fmt.Sprintf("calc: unknown node type %T", n))
}
