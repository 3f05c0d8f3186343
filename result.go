package calculator

import "github.com/zephyrtronium/calculator/arith"

// Result is the outcome of a successful calculation.
type Result struct {
	// Input is the expression as given, before preparation.
	Input Expression
	// Answer is the value of the expression, rounded to arith.Precision
	// digits.
	Answer arith.Complex
	// Params are the parameters used for the calculation.
	Params *Params
}
