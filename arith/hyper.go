package arith

import (
	"github.com/cockroachdb/apd/v3"
)

// Sinh returns the hyperbolic sine of x.
func Sinh(x Complex) (Complex, error) {
	z, err := sinh(x)
	return finish("sinh", z, err)
}

func sinh(x Complex) (Complex, error) {
	sh, ch, err := sinhcosh(x.real())
	if err != nil {
		return Complex{}, err
	}
	if x.IsReal() {
		return Complex{re: sh}, nil
	}
	// sinh(a+bi) = sinh a cos b + i cosh a sin b
	s, c, err := sincos(x.imag())
	if err != nil {
		return Complex{}, err
	}
	e := newED(work, "sinh", x)
	re := e.Mul(new(apd.Decimal), sh, c)
	im := e.Mul(new(apd.Decimal), ch, s)
	return Complex{re: re, im: im}, e.Err()
}

// Cosh returns the hyperbolic cosine of x.
func Cosh(x Complex) (Complex, error) {
	z, err := cosh(x)
	return finish("cosh", z, err)
}

func cosh(x Complex) (Complex, error) {
	sh, ch, err := sinhcosh(x.real())
	if err != nil {
		return Complex{}, err
	}
	if x.IsReal() {
		return Complex{re: ch}, nil
	}
	// cosh(a+bi) = cosh a cos b + i sinh a sin b
	s, c, err := sincos(x.imag())
	if err != nil {
		return Complex{}, err
	}
	e := newED(work, "cosh", x)
	re := e.Mul(new(apd.Decimal), ch, c)
	im := e.Mul(new(apd.Decimal), sh, s)
	return Complex{re: re, im: im}, e.Err()
}

// Tanh returns the hyperbolic tangent of x.
func Tanh(x Complex) (Complex, error) {
	// Beyond the saturation point, tanh is within rounding of ±1 and the
	// exponentials would only risk overflow.
	if new(apd.Decimal).Abs(x.real()).Cmp(saturation) > 0 {
		return Complex{re: apd.New(int64(x.real().Sign()), 0)}, nil
	}
	s, err := sinh(x)
	if err != nil {
		return Complex{}, err
	}
	c, err := cosh(x)
	if err != nil {
		return Complex{}, err
	}
	z, err := quo(s, c)
	return finish("tanh", z, domainAs("tanh", x, err))
}

// smallPrec returns a series precision raised by the number of leading zeros
// of a small real number, for formulas that lose that many digits to
// cancellation.
func smallPrec(d *apd.Decimal) uint32 {
	p := int64(seriesPrec)
	if !d.IsZero() {
		if a := adjusted(d); a < 0 {
			p -= a
		}
	}
	return uint32(p)
}

// Asinh returns the principal inverse hyperbolic sine of x.
func Asinh(x Complex) (Complex, error) {
	z, err := asinh(x)
	return finish("asinh", z, err)
}

func asinh(x Complex) (Complex, error) {
	if x.IsReal() {
		a := x.real()
		if a.Negative {
			z, err := asinh(Neg(x))
			return Neg(z), err
		}
		// asinh a = ln(a + sqrt(a² + 1))
		e := newED(withPrecision(smallPrec(a)), "asinh", x)
		var t apd.Decimal
		e.Mul(&t, a, a)
		e.Add(&t, &t, decOne)
		e.Sqrt(&t, &t)
		e.Add(&t, &t, a)
		return Complex{re: e.Ln(new(apd.Decimal), &t)}, e.Err()
	}
	t, err := mul(work, x, x)
	if err == nil {
		t, err = add(t, FromInt64(1))
	}
	if err == nil {
		t, err = sqrt(t)
	}
	if err == nil {
		t, err = add(x, t)
	}
	if err != nil {
		return Complex{}, err
	}
	z, err := ln(t)
	return z, domainAs("asinh", x, err)
}

// Acosh returns the principal inverse hyperbolic cosine of x.
func Acosh(x Complex) (Complex, error) {
	z, err := acosh(x)
	return finish("acosh", z, err)
}

func acosh(x Complex) (Complex, error) {
	a := x.real()
	if x.IsReal() && new(apd.Decimal).Abs(a).Cmp(decOne) >= 0 {
		// acosh a = ln(|a| + sqrt(a² - 1)), plus iπ for a ≤ -1
		e := newED(work, "acosh", x)
		var t, m apd.Decimal
		m.Abs(a)
		e.Mul(&t, a, a)
		e.Sub(&t, &t, decOne)
		e.Sqrt(&t, &t)
		e.Add(&t, &t, &m)
		r := e.Ln(new(apd.Decimal), &t)
		if a.Negative {
			return Complex{re: r, im: piWork()}, e.Err()
		}
		return Complex{re: r}, e.Err()
	}
	// acosh z = ln(z + sqrt(z² - 1))
	t, err := mul(work, x, x)
	if err == nil {
		t, err = sub(t, FromInt64(1))
	}
	if err == nil {
		t, err = sqrt(t)
	}
	if err == nil {
		t, err = add(x, t)
	}
	if err != nil {
		return Complex{}, err
	}
	z, err := ln(t)
	return z, domainAs("acosh", x, err)
}

// Atanh returns the principal inverse hyperbolic tangent of x. The inverse
// hyperbolic tangent of ±1 is a *DomainError.
func Atanh(x Complex) (Complex, error) {
	z, err := atanh(x)
	return finish("atanh", z, domainAs("atanh", x, err))
}

func atanh(x Complex) (Complex, error) {
	one := FromInt64(1)
	if x.Equal(one) || x.Equal(Neg(one)) {
		return Complex{}, &DomainError{Func: "atanh", Args: []Complex{x}}
	}
	// atanh z = ln((1+z)/(1-z)) / 2
	if x.IsReal() {
		a := x.real()
		e := newED(withPrecision(smallPrec(a)), "atanh", x)
		var n, d apd.Decimal
		e.Add(&n, decOne, a)
		e.Sub(&d, decOne, a)
		e.Quo(&n, &n, &d)
		if err := e.Err(); err != nil {
			return Complex{}, err
		}
		if !n.Negative {
			r := e.Ln(new(apd.Decimal), &n)
			e.Quo(r, r, decTwo)
			return Complex{re: r}, e.Err()
		}
	}
	n, err := add(one, x)
	if err != nil {
		return Complex{}, err
	}
	d, err := sub(one, x)
	if err != nil {
		return Complex{}, err
	}
	q, err := quo(n, d)
	if err != nil {
		return Complex{}, err
	}
	l, err := ln(q)
	if err != nil {
		return Complex{}, err
	}
	return quo(l, FromInt64(2))
}
