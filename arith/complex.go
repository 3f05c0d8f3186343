// Package arith implements arbitrary-precision complex arithmetic for the
// calculator. Every exported operation rounds its result to Precision
// significant decimal digits, half-even, and fails with a *RangeError rather
// than return a value whose decimal exponent is beyond MaxExponent.
//
// Domain failures, such as division by zero, are reported as *DomainError.
package arith

import (
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// Complex is a complex number with arbitrary-precision decimal parts. The
// zero value is 0. Complex values are immutable; operations always allocate
// new parts.
type Complex struct {
	re, im *apd.Decimal
}

var (
	decZero = apd.New(0, 0)
	decOne  = apd.New(1, 0)
	decTwo  = apd.New(2, 0)
	decHalf = apd.New(5, -1)
)

// New creates a complex number from copies of its parts. A nil part is zero.
func New(re, im *apd.Decimal) Complex {
	return Complex{re: clone(re), im: clone(im)}
}

// Real creates a complex number with no imaginary part.
func Real(re *apd.Decimal) Complex {
	return Complex{re: clone(re)}
}

// FromInt64 creates the complex number x+0i.
func FromInt64(x int64) Complex {
	return Complex{re: apd.New(x, 0)}
}

// I is the imaginary unit.
var I = Complex{im: apd.New(1, 0)}

// Parse creates a complex number from decimal strings for its parts. The
// strings are in any format accepted by apd, e.g. "12.5" or "-1.25E+3". Parse
// is exact; it does not round.
func Parse(re, im string) (Complex, error) {
	r, err := parsePart(re)
	if err != nil {
		return Complex{}, err
	}
	i, err := parsePart(im)
	if err != nil {
		return Complex{}, err
	}
	return Complex{re: r, im: i}, nil
}

// ParseReal creates a real number from a decimal string.
func ParseReal(s string) (Complex, error) {
	r, err := parsePart(s)
	if err != nil {
		return Complex{}, err
	}
	return Complex{re: r}, nil
}

func parsePart(s string) (*apd.Decimal, error) {
	d, _, err := apd.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return nil, &ParseError{Text: s}
	}
	if d.Form != apd.Finite {
		return nil, &ParseError{Text: s}
	}
	return d, nil
}

// ParseError is an error from parsing a decimal string that does not hold a
// finite number.
type ParseError struct {
	// Text is the string that failed to parse.
	Text string
}

func (err *ParseError) Error() string {
	return "invalid decimal " + quote(err.Text)
}

func clone(d *apd.Decimal) *apd.Decimal {
	if d == nil {
		return new(apd.Decimal)
	}
	return new(apd.Decimal).Set(d)
}

// real returns the real part without copying. The result must not be
// modified.
func (z Complex) real() *apd.Decimal {
	if z.re == nil {
		return decZero
	}
	return z.re
}

// imag returns the imaginary part without copying. The result must not be
// modified.
func (z Complex) imag() *apd.Decimal {
	if z.im == nil {
		return decZero
	}
	return z.im
}

// Re returns a copy of the real part of z.
func (z Complex) Re() *apd.Decimal {
	return clone(z.re)
}

// Im returns a copy of the imaginary part of z.
func (z Complex) Im() *apd.Decimal {
	return clone(z.im)
}

// Parts returns the exact decimal text of the real and imaginary parts of z.
// Parse(z.Parts()) reproduces z.
func (z Complex) Parts() (re, im string) {
	return z.real().String(), z.imag().String()
}

// IsZero returns whether z is 0.
func (z Complex) IsZero() bool {
	return z.real().IsZero() && z.imag().IsZero()
}

// IsReal returns whether z has a zero imaginary part.
func (z Complex) IsReal() bool {
	return z.imag().IsZero()
}

// IsInteger returns whether z is a real integer.
func (z Complex) IsInteger() bool {
	return z.IsReal() && isIntegral(z.real())
}

// Equal returns whether z and w have equal values, regardless of the number
// of trailing zeros either stores.
func (z Complex) Equal(w Complex) bool {
	return z.real().Cmp(w.real()) == 0 && z.imag().Cmp(w.imag()) == 0
}

// String formats z exactly, as "a", "bi", or "a+bi". It is intended for
// diagnostics; package format renders values for display.
func (z Complex) String() string {
	re, im := z.real(), z.imag()
	if im.IsZero() {
		return re.String()
	}
	if re.IsZero() {
		return im.String() + "i"
	}
	if im.Negative {
		return re.String() + im.String() + "i"
	}
	return re.String() + "+" + im.String() + "i"
}

// isIntegral returns whether a finite decimal has no fractional part.
func isIntegral(d *apd.Decimal) bool {
	if d.Form != apd.Finite {
		return false
	}
	if d.Exponent >= 0 || d.IsZero() {
		return true
	}
	var frac apd.Decimal
	d.Modf(nil, &frac)
	return frac.IsZero()
}

// adjusted returns the exponent of d in scientific notation, i.e. the power
// of ten of its most significant digit. d must be finite and nonzero.
func adjusted(d *apd.Decimal) int64 {
	return int64(d.Exponent) + d.NumDigits() - 1
}
