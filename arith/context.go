package arith

import (
	"github.com/cockroachdb/apd/v3"
)

const (
	// Precision is the number of significant decimal digits to which every
	// result is rounded.
	Precision = 64
	// MaxExponent is the largest magnitude of the adjusted decimal exponent
	// of either part of a result.
	MaxExponent = 9999

	guard = 16
)

// AngleUnit selects the unit of angles taken or returned by trigonometric
// functions.
type AngleUnit uint8

const (
	// Rad measures angles in radians.
	Rad AngleUnit = iota
	// Deg measures angles in degrees.
	Deg
)

func (u AngleUnit) String() string {
	switch u {
	case Rad:
		return "RAD"
	case Deg:
		return "DEG"
	default:
		return "AngleUnit(" + itoa(int64(u)) + ")"
	}
}

var (
	// final rounds results.
	final = &apd.Context{
		Precision:   Precision,
		MaxExponent: apd.MaxExponent,
		MinExponent: apd.MinExponent,
		Traps:       apd.DefaultTraps,
		Rounding:    apd.RoundHalfEven,
	}
	// work computes intermediates with guard digits.
	work = final.WithPrecision(Precision + guard)
)

// withPrecision returns a working context with p digits.
func withPrecision(p uint32) *apd.Context {
	return work.WithPrecision(p)
}

// Round rounds both parts of z to Precision significant digits, half-even,
// and removes trailing zeros so that equal values have identical
// representations.
func Round(z Complex) Complex {
	return Complex{re: roundPart(z.re), im: roundPart(z.im)}
}

func roundPart(d *apd.Decimal) *apd.Decimal {
	r := new(apd.Decimal)
	if d == nil || d.IsZero() {
		return r
	}
	// Rounding a finite value to fewer digits can only set Inexact and
	// Rounded, neither of which is trapped.
	final.Round(r, d)
	r.Reduce(r)
	return r
}

// CheckRange returns a *RangeError if the adjusted exponent of either part of
// z has magnitude greater than MaxExponent.
func CheckRange(z Complex) error {
	for _, d := range [...]*apd.Decimal{z.re, z.im} {
		if d == nil || d.IsZero() {
			continue
		}
		if d.Form != apd.Finite {
			return &RangeError{}
		}
		e := adjusted(d)
		if e > MaxExponent || e < -MaxExponent {
			return &RangeError{Exp: e}
		}
	}
	return nil
}

// Finish rounds z and checks its range. If err is non-nil, Finish returns
// it unchanged. Every exported operation returns through Finish.
func Finish(z Complex, err error) (Complex, error) {
	if err != nil {
		return Complex{}, err
	}
	z = Round(z)
	if err := CheckRange(z); err != nil {
		return Complex{}, err
	}
	return z, nil
}

// finish is Finish with the name of the operation recorded in range errors.
func finish(op string, z Complex, err error) (Complex, error) {
	z, err = Finish(z, err)
	if r, ok := err.(*RangeError); ok && r.Func == "" {
		r.Func = op
	}
	return z, err
}

// ed accumulates the first error of a sequence of decimal operations, in the
// manner of apd.ErrDecimal, but records the operation and its arguments so
// that the error can be classified.
type ed struct {
	ctx  *apd.Context
	op   string
	args []Complex
	err  error
}

func newED(ctx *apd.Context, op string, args ...Complex) *ed {
	return &ed{ctx: ctx, op: op, args: args}
}

func (e *ed) check(c apd.Condition, err error) {
	if e.err != nil || err == nil {
		return
	}
	e.err = condErr(e.op, e.args, c)
}

func (e *ed) Add(d, x, y *apd.Decimal) *apd.Decimal {
	if e.err == nil {
		e.check(e.ctx.Add(d, x, y))
	}
	return d
}

func (e *ed) Sub(d, x, y *apd.Decimal) *apd.Decimal {
	if e.err == nil {
		e.check(e.ctx.Sub(d, x, y))
	}
	return d
}

func (e *ed) Mul(d, x, y *apd.Decimal) *apd.Decimal {
	if e.err == nil {
		e.check(e.ctx.Mul(d, x, y))
	}
	return d
}

func (e *ed) Quo(d, x, y *apd.Decimal) *apd.Decimal {
	if e.err == nil {
		if y.IsZero() {
			e.err = &DomainError{Func: e.op, Args: e.args}
			return d
		}
		e.check(e.ctx.Quo(d, x, y))
	}
	return d
}

func (e *ed) Sqrt(d, x *apd.Decimal) *apd.Decimal {
	if e.err == nil {
		e.check(e.ctx.Sqrt(d, x))
	}
	return d
}

func (e *ed) Ln(d, x *apd.Decimal) *apd.Decimal {
	if e.err == nil {
		if x.IsZero() {
			e.err = &DomainError{Func: e.op, Args: e.args}
			return d
		}
		e.check(e.ctx.Ln(d, x))
	}
	return d
}

func (e *ed) Log10(d, x *apd.Decimal) *apd.Decimal {
	if e.err == nil {
		if x.IsZero() {
			e.err = &DomainError{Func: e.op, Args: e.args}
			return d
		}
		e.check(e.ctx.Log10(d, x))
	}
	return d
}

func (e *ed) Exp(d, x *apd.Decimal) *apd.Decimal {
	if e.err == nil {
		e.check(e.ctx.Exp(d, x))
	}
	return d
}

func (e *ed) Pow(d, x, y *apd.Decimal) *apd.Decimal {
	if e.err == nil {
		if x.IsZero() && y.Sign() <= 0 {
			e.err = &DomainError{Func: e.op, Args: e.args}
			return d
		}
		e.check(e.ctx.Pow(d, x, y))
	}
	return d
}

func (e *ed) Rem(d, x, y *apd.Decimal) *apd.Decimal {
	if e.err == nil {
		e.check(e.ctx.Rem(d, x, y))
	}
	return d
}

func (e *ed) Err() error {
	return e.err
}

// fail records err if no error has occurred yet.
func (e *ed) fail(err error) {
	if e.err == nil {
		e.err = err
	}
}
