// Package culator implements an infix floating-point calculator.
//
// Expressions use the usual operators: "+" and "-" bind loosest, then "*"
// and "/", then exponentiation, written "^" or "**". Exponentiation groups
// to the right, so "2^3^2" is 2^9. Unary "+" and "-" bind tighter than any
// binary operator, so "-2^2" is 4.
//
// Names are resolved while scanning. A name is either a constant like pi or
// a function like max, which must be followed by a parenthesized list of
// exactly as many arguments as it takes: "max(1+1, sqrt(9))". Names that
// are neither, and characters that cannot start a token, are skipped with a
// warning.
//
// Values are big.Float, by default with the 64-bit mantissa of an x87 long
// double. Expressions are evaluated as they are parsed; there is no syntax
// tree.
//
package culator
