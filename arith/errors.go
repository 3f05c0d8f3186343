package arith

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// DomainError is an error returned when an operation is undefined for its
// arguments, such as division by zero or the logarithm of zero.
type DomainError struct {
	// Func is the name of the operation.
	Func string
	// Args are the arguments to the operation, if known.
	Args []Complex
}

func (err *DomainError) Error() string {
	var b strings.Builder
	b.WriteString("undefined result of ")
	b.WriteString(err.Func)
	if len(err.Args) == 0 {
		return b.String()
	}
	b.WriteByte('(')
	for i, x := range err.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(x.String())
	}
	b.WriteByte(')')
	return b.String()
}

// RangeError is an error returned when the result of an operation has a
// decimal exponent outside [-MaxExponent, MaxExponent].
type RangeError struct {
	// Func is the name of the operation, if known.
	Func string
	// Exp is the adjusted exponent of the offending result, or 0 if the
	// result overflowed before it could be represented.
	Exp int64
}

func (err *RangeError) Error() string {
	var b strings.Builder
	b.WriteString("result out of range")
	if err.Func != "" {
		b.WriteString(" in ")
		b.WriteString(err.Func)
	}
	if err.Exp != 0 {
		b.WriteString(": exponent ")
		b.WriteString(itoa(err.Exp))
	}
	return b.String()
}

// condErr converts the condition of a failed decimal operation to an error.
func condErr(op string, args []Complex, c apd.Condition) error {
	switch {
	case c.DivisionByZero(), c.DivisionUndefined(), c.DivisionImpossible(), c.InvalidOperation():
		return &DomainError{Func: op, Args: args}
	default:
		return &RangeError{Func: op}
	}
}

func itoa(x int64) string {
	return strconv.FormatInt(x, 10)
}

func quote(s string) string {
	return strconv.Quote(s)
}
