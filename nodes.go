package calc

import (
	"errors"
	"fmt"
	"strconv"
)

// Node is a node in the tree of an expression. It is one of a Number, an
// *Operation, or a *Call.
type Node interface {
	fmt.Stringer
	node()
}

// Operator is an arithmetic operator.
type Operator byte

const (
	Plus    Operator = '+'
	Minus   Operator = '-'
	Times   Operator = '*'
	Divides Operator = '/'
)

// Operators contains the runes which are considered to be operators.
const Operators = "+-*/"

func (op Operator) String() string {
	return string(rune(op))
}

func (op Operator) valid() bool {
	switch op {
	case Plus, Minus, Times, Divides:
		return true
	}
	return false
}

// prec returns the binding strength of op in infix notation.
func (op Operator) prec() int {
	switch op {
	case Times, Divides:
		return 2
	case Plus, Minus:
		return 1
	}
	return 0
}

// Notation is the layout of an operation and its operands.
type Notation int8

const (
	// Infix places the operator between operands: ( 1 + 2 ).
	Infix Notation = iota
	// Prefix places the operator before the operands: + (1, 2).
	Prefix
	// Postfix places the operator after the operands: (1, 2) +.
	Postfix
)

func (n Notation) String() string {
	switch n {
	case Infix:
		return "infix"
	case Prefix:
		return "prefix"
	case Postfix:
		return "postfix"
	}
	return "Notation(" + strconv.Itoa(int(n)) + ")"
}

// Operation is an arithmetic operator applied to two or more operands,
// left to right. The notation is only used for display.
type Operation struct {
	Op       Operator
	Args     []Node
	Notation Notation
}

// ErrNoOperands is the cause of a ConstructionError for an operation with no
// operands.
var ErrNoOperands = errors.New("no operands")

// NewOperation creates an operation. There must be at least one operand, and
// no operand may be nil.
func NewOperation(op Operator, args []Node, notation Notation) (*Operation, error) {
	if !op.valid() {
		return nil, &ConstructionError{What: "operation", Reason: "unknown operator " + strconv.Quote(op.String())}
	}
	if len(args) == 0 {
		return nil, &ConstructionError{What: "operation " + op.String(), Reason: "no operands", Err: ErrNoOperands}
	}
	o := &Operation{Op: op, Args: make([]Node, 0, len(args)), Notation: notation}
	if err := o.Append(args...); err != nil {
		return nil, err
	}
	return o, nil
}

// Append adds operands to o. It must not be called after o has been used to
// evaluate anything.
func (o *Operation) Append(args ...Node) error {
	for i, arg := range args {
		if arg == nil {
			return &ConstructionError{What: "operation " + o.Op.String(), Reason: "operand " + strconv.Itoa(len(o.Args)+i+1) + " is nil"}
		}
	}
	o.Args = append(o.Args, args...)
	return nil
}

func (o *Operation) node() {}

func (o *Operation) String() string {
	return render(o)
}

// Call is a function applied to one operand.
type Call struct {
	Name string
	Arg  Node
	fn   Func
}

// NewCall creates a call to one of the default functions.
func NewCall(name string, arg Node) (*Call, error) {
	return newCall(name, globalfuncs[name], arg)
}

func newCall(name string, fn Func, arg Node) (*Call, error) {
	if fn == nil {
		return nil, &ConstructionError{What: "call", Reason: "unknown function " + strconv.Quote(name)}
	}
	if arg == nil {
		return nil, &ConstructionError{What: "call to " + name, Reason: "nil operand", Err: ErrNoOperands}
	}
	return &Call{Name: name, Arg: arg, fn: fn}, nil
}

func (c *Call) node() {}

func (c *Call) String() string {
	return render(c)
}

// ConstructionError is an error building a node or a number, e.g. an
// operation without operands or a quotient without a reciprocal.
type ConstructionError struct {
	// What is the thing that could not be built.
	What string
	// Reason describes the problem.
	Reason string
	// Err is the underlying cause, if any.
	Err error
}

func (err *ConstructionError) Error() string {
	return "cannot construct " + err.What + ": " + err.Reason
}

func (err *ConstructionError) Unwrap() error {
	return err.Err
}
