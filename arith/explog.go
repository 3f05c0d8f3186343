package arith

import (
	"github.com/cockroachdb/apd/v3"
)

// Exp returns e^x.
func Exp(x Complex) (Complex, error) {
	z, err := exp(x)
	return finish("exp", z, err)
}

func exp(x Complex) (Complex, error) {
	e := newED(work, "exp", x)
	m := e.Exp(new(apd.Decimal), x.real())
	if x.IsReal() {
		return Complex{re: m}, e.Err()
	}
	// e^(a+bi) = e^a (cos b + i sin b)
	s, c, err := sincos(x.imag())
	if err != nil {
		return Complex{}, err
	}
	re := e.Mul(new(apd.Decimal), m, c)
	im := e.Mul(new(apd.Decimal), m, s)
	return Complex{re: re, im: im}, e.Err()
}

// Ln returns the principal natural logarithm of x. The logarithm of zero is
// a *DomainError.
func Ln(x Complex) (Complex, error) {
	z, err := ln(x)
	return finish("ln", z, err)
}

func ln(x Complex) (Complex, error) {
	if x.IsZero() {
		return Complex{}, &DomainError{Func: "ln", Args: []Complex{x}}
	}
	e := newED(work, "ln", x)
	a := x.real()
	if x.IsReal() {
		r := e.Ln(new(apd.Decimal), new(apd.Decimal).Abs(a))
		if a.Negative {
			return Complex{re: r, im: piWork()}, e.Err()
		}
		return Complex{re: r}, e.Err()
	}
	m, err := abs(x)
	if err != nil {
		return Complex{}, err
	}
	r := e.Ln(new(apd.Decimal), m.real())
	t, err := atan2(x.imag(), a)
	if err != nil {
		return Complex{}, err
	}
	return Complex{re: r, im: t}, e.Err()
}

// Log10 returns the principal base-10 logarithm of x.
func Log10(x Complex) (Complex, error) {
	if x.IsReal() && x.real().Sign() > 0 {
		e := newED(work, "log10", x)
		r := e.Log10(new(apd.Decimal), x.real())
		return finish("log10", Complex{re: r}, e.Err())
	}
	initConsts()
	return logBase("log10", x, ln10Work)
}

// Log2 returns the principal base-2 logarithm of x.
func Log2(x Complex) (Complex, error) {
	initConsts()
	return logBase("log2", x, ln2Work)
}

func logBase(op string, x Complex, lnb *apd.Decimal) (Complex, error) {
	if x.IsZero() {
		return Complex{}, &DomainError{Func: op, Args: []Complex{x}}
	}
	z, err := ln(x)
	if err != nil {
		return Complex{}, err
	}
	e := newED(work, op, x)
	re := e.Quo(new(apd.Decimal), z.real(), lnb)
	im := e.Quo(new(apd.Decimal), z.imag(), lnb)
	return finish(op, Complex{re: re, im: im}, e.Err())
}

// Sqrt returns the principal square root of x.
func Sqrt(x Complex) (Complex, error) {
	z, err := sqrt(x)
	return finish("sqrt", z, err)
}

func sqrt(x Complex) (Complex, error) {
	e := newED(work, "sqrt", x)
	a, b := x.real(), x.imag()
	if x.IsReal() {
		if a.Negative {
			return Complex{im: e.Sqrt(new(apd.Decimal), new(apd.Decimal).Abs(a))}, e.Err()
		}
		return Complex{re: e.Sqrt(new(apd.Decimal), a)}, e.Err()
	}
	m, err := abs(x)
	if err != nil {
		return Complex{}, err
	}
	// Compute the larger part directly and derive the other from
	// b = 2·re·im to avoid cancellation.
	var t, u apd.Decimal
	if !a.Negative {
		e.Add(&t, m.real(), a)
	} else {
		e.Sub(&t, m.real(), a)
	}
	e.Quo(&t, &t, decTwo)
	e.Sqrt(&t, &t)
	e.Mul(&u, &t, decTwo)
	e.Quo(&u, b, &u)
	if !a.Negative {
		return Complex{re: &t, im: &u}, e.Err()
	}
	u.Abs(&u)
	if b.Negative {
		t.Neg(&t)
	}
	return Complex{re: &u, im: &t}, e.Err()
}

// Pow returns x^y. Zero to the power of an exponent whose real part is not
// positive is a *DomainError.
func Pow(x, y Complex) (Complex, error) {
	z, err := pow(x, y)
	return finish("pow", z, err)
}

func pow(x, y Complex) (Complex, error) {
	if x.IsZero() {
		if y.real().Sign() > 0 {
			return Complex{}, nil
		}
		return Complex{}, &DomainError{Func: "pow", Args: []Complex{x, y}}
	}
	if y.IsZero() {
		return FromInt64(1), nil
	}
	if x.IsReal() {
		initConsts()
		if Round(x).Equal(E()) {
			return exp(y)
		}
	}
	if y.IsReal() {
		b := y.real()
		if b.Cmp(decHalf) == 0 {
			return sqrt(x)
		}
		if new(apd.Decimal).Neg(b).Cmp(decHalf) == 0 {
			r, err := sqrt(x)
			if err != nil {
				return Complex{}, err
			}
			return inverse(r)
		}
		if isIntegral(b) {
			if n, err := b.Int64(); err == nil && n >= -maxSquarings && n <= maxSquarings && !x.IsReal() {
				return powInt(x, n)
			}
		}
		if x.IsReal() && (!x.real().Negative || isIntegral(b)) {
			e := newED(work, "pow", x, y)
			return Complex{re: e.Pow(new(apd.Decimal), x.real(), b)}, e.Err()
		}
	}
	// x^y = e^(y ln x)
	l, err := ln(x)
	if err != nil {
		return Complex{}, err
	}
	l, err = mul(work, y, l)
	if err != nil {
		return Complex{}, err
	}
	return exp(l)
}

// maxSquarings bounds the exponents for which complex integer powers are
// computed by repeated squaring.
const maxSquarings = 1 << 20

// powInt computes x^n by repeated squaring so that powers of Gaussian
// integers are exact.
func powInt(x Complex, n int64) (Complex, error) {
	neg := n < 0
	if neg {
		n = -n
	}
	r := FromInt64(1)
	for n > 0 {
		var err error
		if n&1 != 0 {
			r, err = mul(work, r, x)
			if err != nil {
				return Complex{}, err
			}
		}
		n >>= 1
		if n > 0 {
			x, err = mul(work, x, x)
			if err != nil {
				return Complex{}, err
			}
		}
	}
	if neg {
		return inverse(r)
	}
	return r, nil
}

// Root returns the n-th root of x, x^(1/n). A zero degree is a *DomainError.
func Root(x, n Complex) (Complex, error) {
	if n.IsZero() {
		return Complex{}, &DomainError{Func: "root", Args: []Complex{x, n}}
	}
	k, err := inverse(n)
	if err != nil {
		return Complex{}, err
	}
	z, err := pow(x, k)
	return finish("root", z, err)
}
