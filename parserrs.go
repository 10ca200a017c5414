package calc

import "strconv"

// OperatorError is an error indicating an operator without operands on both
// sides, or operands with no operator between them. It implements
// InputError.
type OperatorError struct {
	// Col is the position of the operator, or of the operand that follows
	// another operand without an operator.
	Col int
	// Operator is the operator that is missing an operand. It is empty when
	// the operator itself is missing.
	Operator string
	// Left is whether the missing operand is on the left.
	Left bool
}

func (err *OperatorError) Error() string {
	switch {
	case err.Operator == "":
		return errpos(err.Col, "missing operator")
	case err.Left:
		return errpos(err.Col, "operator "+strconv.Quote(err.Operator)+" has no left operand")
	default:
		return errpos(err.Col, "operator "+strconv.Quote(err.Operator)+" has no right operand")
	}
}

func (err *OperatorError) Pos() int {
	return err.Col
}

// BracketError is an error indicating a bracket without a partner. It
// implements InputError.
type BracketError struct {
	// Col is the position of the unmatched bracket.
	Col int
	// Left is the opening bracket, if it is the unmatched one.
	Left string
	// Right is the closing bracket, if it is the unmatched one.
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "close bracket "+err.Right+" with no open bracket")
	}
	return errpos(err.Col, "open bracket "+err.Left+" with no close bracket")
}

func (err *BracketError) Pos() int {
	return err.Col
}

// SeparatorError is an error indicating a comma outside the operand list of a
// prefix or postfix operation. It implements InputError.
type SeparatorError struct {
	// Col is the position of the comma.
	Col int
	// Sep is the separator text.
	Sep string
}

func (err *SeparatorError) Error() string {
	return errpos(err.Col, "invalid occurrence of separator "+strconv.Quote(err.Sep))
}

func (err *SeparatorError) Pos() int {
	return err.Col
}

// CallError is an error indicating a function name that is not applied to a
// bracketed argument. It implements InputError.
type CallError struct {
	// Col is the position of the function name.
	Col int
	// Func is the function name.
	Func string
}

func (err *CallError) Error() string {
	return errpos(err.Col, "function "+err.Func+" must be followed by a bracketed argument")
}

func (err *CallError) Pos() int {
	return err.Col
}

// ArityError is an error indicating a prefix or postfix operation with fewer
// than two operands. It implements InputError.
type ArityError struct {
	// Col is the position of the operation.
	Col int
	// Operator is the operator.
	Operator string
	// Len is the number of operands given.
	Len int
}

func (err *ArityError) Error() string {
	return errpos(err.Col, "operator "+strconv.Quote(err.Operator)+" needs at least 2 operands, got "+strconv.Itoa(err.Len))
}

func (err *ArityError) Pos() int {
	return err.Col
}

// EmptyExpressionError is an error indicating that an expression, bracketed
// group, or operand is empty. It implements InputError.
type EmptyExpressionError struct {
	// Col is where the missing expression should have been.
	Col int
	// End is the token that follows the empty expression, if any.
	End string
}

func (err *EmptyExpressionError) Error() string {
	if err.End == "" {
		if err.Col <= 1 {
			return errpos(err.Col, "no expression")
		}
		return errpos(err.Col, "no expression at end")
	}
	return errpos(err.Col, "no expression up to "+strconv.Quote(err.End))
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

// NumberlessError is an error indicating an expression with no numbers in it.
type NumberlessError struct {
	// Col is the position of the expression.
	Col int
	// Text is the expression.
	Text string
}

func (err *NumberlessError) Error() string {
	return errpos(err.Col, "no numbers in expression "+strconv.Quote(err.Text))
}

func (err *NumberlessError) Pos() int {
	return err.Col
}

// NotationError is an error indicating an expression whose shape matches no
// notation. It implements InputError.
type NotationError struct {
	// Col is the position of the expression.
	Col int
	// Text is the expression.
	Text string
	// Within is the notation of the enclosing operation, if the expression is
	// an operand of a prefix or postfix operation.
	Within Notation
	// Nested is whether Within is meaningful.
	Nested bool
}

func (err *NotationError) Error() string {
	if err.Nested {
		return errpos(err.Col, strconv.Quote(err.Text)+" is not a number or "+err.Within.String()+" operation")
	}
	return errpos(err.Col, "unsupported notation type: "+strconv.Quote(err.Text))
}

func (err *NotationError) Pos() int {
	return err.Col
}

// errpos prefixes msg with a column.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error caused by malformed input. Every error that Parse
// returns for bad input implements it.
type InputError interface {
	error
	// Pos returns the column of the error in the input with whitespace
	// removed, starting from 1.
	Pos() int
}

var (
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*SeparatorError)(nil)
	_ InputError = (*CallError)(nil)
	_ InputError = (*ArityError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*NumberlessError)(nil)
	_ InputError = (*NotationError)(nil)
	_ InputError = (*LexError)(nil)
)
