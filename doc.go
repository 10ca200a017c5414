// Package calc parses and evaluates arithmetic expressions written in prefix,
// infix, or postfix notation.
//
// Infix expressions look like ordinary math: "3/4 + 5/6i", "sqrt(9) * (1+2)".
// Prefix expressions put the operator before a parenthesized operand list,
// as in "+(4, 5, 6)", and postfix expressions put it after: "(4, 5, 6)+".
// Operands of prefix and postfix operations may themselves be operations in
// the same notation.
//
// Numbers are Real, Rational, or Complex. A Complex has Rational real and
// imaginary parts. Arithmetic widens to the larger kind of its operands.
// In fraction-preserving mode, "a/b" literals are exact Rationals and results
// stay Rational; otherwise rationals collapse to Reals whenever they can.
// Division of Reals or Rationals by zero produces NaN rather than an error.
//
// Once parsed, an expression is an immutable tree that can be evaluated,
// rendered in any notation, or measured any number of times.
package calc
