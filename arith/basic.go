package arith

import (
	"math"

	"github.com/cockroachdb/apd/v3"
)

// exact performs additions and multiplications without rounding.
var exact = &apd.Context{
	MaxExponent: apd.MaxExponent,
	MinExponent: apd.MinExponent,
	Traps:       apd.DefaultTraps,
}

// Add returns x+y.
func Add(x, y Complex) (Complex, error) {
	z, err := add(x, y)
	return finish("add", z, err)
}

func add(x, y Complex) (Complex, error) {
	e := newED(work, "add", x, y)
	re := e.Add(new(apd.Decimal), x.real(), y.real())
	im := e.Add(new(apd.Decimal), x.imag(), y.imag())
	return Complex{re: re, im: im}, e.Err()
}

// Sub returns x-y.
func Sub(x, y Complex) (Complex, error) {
	z, err := sub(x, y)
	return finish("sub", z, err)
}

func sub(x, y Complex) (Complex, error) {
	e := newED(work, "sub", x, y)
	re := e.Sub(new(apd.Decimal), x.real(), y.real())
	im := e.Sub(new(apd.Decimal), x.imag(), y.imag())
	return Complex{re: re, im: im}, e.Err()
}

// Mul returns x×y.
func Mul(x, y Complex) (Complex, error) {
	z, err := mul(exact, x, y)
	return finish("mul", z, err)
}

func mul(ctx *apd.Context, x, y Complex) (Complex, error) {
	e := newED(ctx, "mul", x, y)
	a, b, c, d := x.real(), x.imag(), y.real(), y.imag()
	if x.IsReal() && y.IsReal() {
		return Complex{re: e.Mul(new(apd.Decimal), a, c)}, e.Err()
	}
	var ac, bd, ad, bc apd.Decimal
	e.Mul(&ac, a, c)
	e.Mul(&bd, b, d)
	e.Mul(&ad, a, d)
	e.Mul(&bc, b, c)
	re := e.Sub(new(apd.Decimal), &ac, &bd)
	im := e.Add(new(apd.Decimal), &ad, &bc)
	return Complex{re: re, im: im}, e.Err()
}

// Quo returns x÷y. Division by zero is a *DomainError.
func Quo(x, y Complex) (Complex, error) {
	z, err := quo(x, y)
	return finish("quo", z, err)
}

func quo(x, y Complex) (Complex, error) {
	if y.IsZero() {
		return Complex{}, &DomainError{Func: "quo", Args: []Complex{x, y}}
	}
	e := newED(work, "quo", x, y)
	a, b, c, d := x.real(), x.imag(), y.real(), y.imag()
	if y.IsReal() {
		re := e.Quo(new(apd.Decimal), a, c)
		im := e.Quo(new(apd.Decimal), b, c)
		return Complex{re: re, im: im}, e.Err()
	}
	// (a+bi)/(c+di) = ((ac+bd) + (bc-ad)i) / (c²+d²)
	var den, t, u apd.Decimal
	e.Mul(&t, c, c)
	e.Mul(&u, d, d)
	e.Add(&den, &t, &u)
	e.Mul(&t, a, c)
	e.Mul(&u, b, d)
	re := e.Add(new(apd.Decimal), &t, &u)
	e.Mul(&t, b, c)
	e.Mul(&u, a, d)
	im := e.Sub(new(apd.Decimal), &t, &u)
	e.Quo(re, re, &den)
	e.Quo(im, im, &den)
	return Complex{re: re, im: im}, e.Err()
}

// Neg returns -x.
func Neg(x Complex) Complex {
	return Complex{re: new(apd.Decimal).Neg(x.real()), im: new(apd.Decimal).Neg(x.imag())}
}

// Conj returns the complex conjugate of x.
func Conj(x Complex) Complex {
	return Complex{re: x.Re(), im: new(apd.Decimal).Neg(x.imag())}
}

// Inverse returns 1/x. The inverse of zero is a *DomainError.
func Inverse(x Complex) (Complex, error) {
	z, err := inverse(x)
	return finish("inverse", z, err)
}

func inverse(x Complex) (Complex, error) {
	if x.IsZero() {
		return Complex{}, &DomainError{Func: "inverse", Args: []Complex{x}}
	}
	return quo(FromInt64(1), x)
}

// Square returns x².
func Square(x Complex) (Complex, error) {
	z, err := mul(exact, x, x)
	return finish("square", z, err)
}

// Cube returns x³.
func Cube(x Complex) (Complex, error) {
	z, err := mul(exact, x, x)
	if err == nil {
		z, err = mul(exact, z, x)
	}
	return finish("cube", z, err)
}

// Abs returns the modulus of x as a real number.
func Abs(x Complex) (Complex, error) {
	z, err := abs(x)
	return finish("abs", z, err)
}

func abs(x Complex) (Complex, error) {
	if x.IsReal() {
		return Complex{re: new(apd.Decimal).Abs(x.real())}, nil
	}
	if x.real().IsZero() {
		return Complex{re: new(apd.Decimal).Abs(x.imag())}, nil
	}
	e := newED(work, "abs", x)
	var s, t apd.Decimal
	e.Mul(&s, x.real(), x.real())
	e.Mul(&t, x.imag(), x.imag())
	e.Add(&s, &s, &t)
	return Complex{re: e.Sqrt(new(apd.Decimal), &s)}, e.Err()
}

// ScaleByPowerOfTen returns x×10^n, the value of the scientific notation
// shorthand xᴇn. n must be a real integer, or else the result is a
// *DomainError. If n has magnitude greater than MaxExponent, the result is a
// *RangeError.
func ScaleByPowerOfTen(x, n Complex) (Complex, error) {
	if !n.IsReal() || !isIntegral(n.real()) {
		return Complex{}, &DomainError{Func: "scale", Args: []Complex{x, n}}
	}
	k, err := n.real().Int64()
	if err != nil || k > math.MaxInt32 || k < math.MinInt32 {
		return Complex{}, &RangeError{Func: "scale"}
	}
	if k > MaxExponent || k < -MaxExponent {
		return Complex{}, &RangeError{Func: "scale", Exp: k}
	}
	return finish("scale", shift(x, int32(k)), nil)
}

// Percent returns x×10⁻².
func Percent(x Complex) (Complex, error) {
	return finish("percent", shift(x, -2), nil)
}

func shift(x Complex, k int32) Complex {
	return Complex{re: shiftPart(x.real(), k), im: shiftPart(x.imag(), k)}
}

func shiftPart(d *apd.Decimal, k int32) *apd.Decimal {
	r := new(apd.Decimal)
	if d.IsZero() {
		return r
	}
	r.Set(d)
	r.Exponent += k
	return r
}
