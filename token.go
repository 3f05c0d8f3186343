package calculator

import "github.com/zephyrtronium/calculator/arith"

// Token is an element of a prepared expression. It is either a Unit or a
// NumericToken.
type Token interface {
	token()
}

// NumericToken is a computed value in a prepared expression. NumericTokens
// never appear in an Expression; they are produced while preparing and
// evaluating one.
type NumericToken struct {
	// Value is the value of the token. It is always rounded and in range.
	Value arith.Complex
	// Literal is whether the token was merged from a run of digits and
	// points, as opposed to computed or substituted.
	Literal bool
}

func (Unit) token()          {}
func (NumericToken) token() {}

func (n NumericToken) String() string {
	return n.Value.String()
}

var (
	_ Token = Unit(0)
	_ Token = NumericToken{}
)
