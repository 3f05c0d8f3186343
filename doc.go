// Package calculator evaluates calculator expressions with 64-digit complex
// arithmetic.
//
// An Expression is a sequence of Units, the keys of a scientific calculator:
// digits, operators, functions, variables, and constants. Calculate turns an
// expression into a value. "2^3^2" is (2^3)^2; "sin .5π" is the sine of the
// product .5π, since a function applies to every value written directly after
// it; "2ⁿ√9" is the square root of nine.
//
// Unclosed brackets are closed at the end of the expression, so "2×(3+4" is
// 14.
//
// Variables, including Ans, get their values from Params. A Manager runs
// calculations one at a time and keeps Ans up to date.
package calculator
