package arith

import (
	"math/big"

	"github.com/cockroachdb/apd/v3"
)

// seriesPrec is the precision used to sum power series.
const seriesPrec = Precision + guard + 10

// sincos returns the sine and cosine of a real number of radians at working
// precision.
func sincos(x *apd.Decimal) (s, c *apd.Decimal, err error) {
	if x.IsZero() {
		return new(apd.Decimal), apd.New(1, 0), nil
	}
	// Reduce x to r in [-π/4, π/4] with x = r + kπ/2, keeping enough digits of
	// π to cover the integer part of x.
	p := int64(seriesPrec)
	if a := adjusted(x); a > 0 {
		p += a
	}
	ctx := withPrecision(uint32(p))
	e := newED(ctx, "sincos", Real(x))
	var half, k, r apd.Decimal
	e.Quo(&half, PiDigits(int(p)), decTwo)
	e.Quo(&k, x, &half)
	if e.Err() == nil {
		if _, err := ctx.RoundToIntegralValue(&k, &k); err != nil {
			return nil, nil, &RangeError{Func: "sincos"}
		}
	}
	e.Mul(&r, &k, &half)
	e.Sub(&r, x, &r)
	if err := e.Err(); err != nil {
		return nil, nil, err
	}
	q := new(big.Int).Mod(toBigInt(&k), big.NewInt(4)).Int64()
	ts, tc, err := taylorSinCos(&r)
	if err != nil {
		return nil, nil, err
	}
	switch q {
	case 0:
		return ts, tc, nil
	case 1:
		return tc, ts.Neg(ts), nil
	case 2:
		return ts.Neg(ts), tc.Neg(tc), nil
	default:
		return tc.Neg(tc), ts, nil
	}
}

// taylorSinCos sums the Maclaurin series of sine and cosine for small r.
func taylorSinCos(r *apd.Decimal) (s, c *apd.Decimal, err error) {
	ctx := withPrecision(seriesPrec)
	e := newED(ctx, "sincos", Real(r))
	var r2, t, d apd.Decimal
	e.Mul(&r2, r, r)
	s = new(apd.Decimal).Set(r)
	t.Set(r)
	for n := int64(1); e.Err() == nil; n++ {
		e.Mul(&t, &t, &r2)
		d.SetInt64(-(2 * n) * (2*n + 1))
		e.Quo(&t, &t, &d)
		if negligible(&t, s) {
			break
		}
		e.Add(s, s, &t)
	}
	c = apd.New(1, 0)
	t.SetInt64(1)
	for n := int64(1); e.Err() == nil; n++ {
		e.Mul(&t, &t, &r2)
		d.SetInt64(-(2*n - 1) * (2 * n))
		e.Quo(&t, &t, &d)
		if negligible(&t, c) {
			break
		}
		e.Add(c, c, &t)
	}
	return s, c, e.Err()
}

// negligible returns whether adding term to sum cannot change sum at series
// precision.
func negligible(term, sum *apd.Decimal) bool {
	if term.IsZero() {
		return true
	}
	if sum.IsZero() {
		return false
	}
	return adjusted(term) < adjusted(sum)-seriesPrec-2
}

// toBigInt returns the integer part of d.
func toBigInt(d *apd.Decimal) *big.Int {
	var i apd.Decimal
	d.Modf(&i, nil)
	z := i.Coeff.MathBigInt()
	if i.Exponent > 0 {
		p := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(i.Exponent)), nil)
		z.Mul(z, p)
	}
	if i.Negative {
		z.Neg(z)
	}
	return z
}

// angle holds the sine and cosine of the real part of a trigonometric
// argument. If quadrant is non-negative, the argument was an exact multiple
// of 90 degrees, and s and c are exact.
type angle struct {
	s, c     *apd.Decimal
	quadrant int
}

var d360 = apd.New(360, 0)

func angleOf(op string, a *apd.Decimal, unit AngleUnit) (angle, error) {
	if unit != Deg {
		s, c, err := sincos(a)
		return angle{s: s, c: c, quadrant: -1}, err
	}
	r, err := reduceDegrees(op, a)
	if err != nil {
		return angle{}, err
	}
	if isIntegral(r) {
		n := toBigInt(r)
		var m big.Int
		q, _ := new(big.Int).QuoRem(n, big.NewInt(90), &m)
		if m.Sign() == 0 {
			k := int(q.Int64())
			return angle{s: exactSin[k], c: exactSin[(k+1)%4], quadrant: k}, nil
		}
	}
	rad, err := toRad(op, r)
	if err != nil {
		return angle{}, err
	}
	s, c, err := sincos(rad)
	return angle{s: s, c: c, quadrant: -1}, err
}

// exactSin holds sin(90k°) for k in [0, 4).
var exactSin = [4]*apd.Decimal{apd.New(0, 0), apd.New(1, 0), apd.New(0, 0), apd.New(-1, 0)}

// reduceDegrees reduces a number of degrees exactly into [0, 360).
func reduceDegrees(op string, a *apd.Decimal) (*apd.Decimal, error) {
	r := new(apd.Decimal)
	if isIntegral(a) {
		m := new(big.Int).Mod(toBigInt(a), big.NewInt(360))
		r.Coeff.SetMathBigInt(m)
		return r, nil
	}
	p := a.NumDigits() + 5
	if p < Precision {
		p = Precision
	}
	e := newED(withPrecision(uint32(p)), op, Real(a))
	e.Rem(r, a, d360)
	if r.Negative && !r.IsZero() {
		e.Add(r, r, d360)
	}
	return r, e.Err()
}

// toRad converts degrees to radians with four extra digits.
func toRad(op string, deg *apd.Decimal) (*apd.Decimal, error) {
	const p = Precision + 4
	e := newED(withPrecision(p), op, Real(deg))
	r := new(apd.Decimal)
	e.Mul(r, deg, PiDigits(p))
	e.Quo(r, r, apd.New(180, 0))
	return r, e.Err()
}

// toDeg converts radians to degrees with four extra digits.
func toDeg(op string, rad *apd.Decimal) (*apd.Decimal, error) {
	const p = Precision + 4
	e := newED(withPrecision(p), op, Real(rad))
	r := new(apd.Decimal)
	e.Mul(r, rad, apd.New(180, 0))
	e.Quo(r, r, PiDigits(p))
	return r, e.Err()
}

// degResult converts the real part of z from radians to degrees if unit is
// Deg.
func degResult(op string, z Complex, err error, unit AngleUnit) (Complex, error) {
	if err != nil || unit != Deg {
		return z, err
	}
	re, err := toDeg(op, z.real())
	if err != nil {
		return Complex{}, err
	}
	return Complex{re: re, im: z.im}, nil
}

// sinhcosh returns the hyperbolic sine and cosine of a real number.
func sinhcosh(x *apd.Decimal) (sh, ch *apd.Decimal, err error) {
	if x.IsZero() {
		return new(apd.Decimal), apd.New(1, 0), nil
	}
	e := newED(withPrecision(seriesPrec), "sinhcosh", Real(x))
	if new(apd.Decimal).Abs(x).Cmp(decOne) < 0 {
		var x2, t, d apd.Decimal
		e.Mul(&x2, x, x)
		sh = new(apd.Decimal).Set(x)
		t.Set(x)
		for n := int64(1); e.Err() == nil; n++ {
			e.Mul(&t, &t, &x2)
			d.SetInt64((2 * n) * (2*n + 1))
			e.Quo(&t, &t, &d)
			if negligible(&t, sh) {
				break
			}
			e.Add(sh, sh, &t)
		}
		ch = apd.New(1, 0)
		t.SetInt64(1)
		for n := int64(1); e.Err() == nil; n++ {
			e.Mul(&t, &t, &x2)
			d.SetInt64((2*n - 1) * (2 * n))
			e.Quo(&t, &t, &d)
			if negligible(&t, ch) {
				break
			}
			e.Add(ch, ch, &t)
		}
		return sh, ch, e.Err()
	}
	var ex, ei apd.Decimal
	e.Exp(&ex, x)
	e.Quo(&ei, decOne, &ex)
	sh = e.Sub(new(apd.Decimal), &ex, &ei)
	ch = e.Add(new(apd.Decimal), &ex, &ei)
	e.Quo(sh, sh, decTwo)
	e.Quo(ch, ch, decTwo)
	return sh, ch, e.Err()
}

// Sin returns the sine of x. If unit is Deg, the real part of x is in
// degrees.
func Sin(x Complex, unit AngleUnit) (Complex, error) {
	z, err := sin(x, unit)
	return finish("sin", z, err)
}

func sin(x Complex, unit AngleUnit) (Complex, error) {
	a, err := angleOf("sin", x.real(), unit)
	if err != nil {
		return Complex{}, err
	}
	if x.IsReal() {
		return Complex{re: a.s}, nil
	}
	// sin(a+bi) = sin a cosh b + i cos a sinh b
	sh, ch, err := sinhcosh(x.imag())
	if err != nil {
		return Complex{}, err
	}
	e := newED(work, "sin", x)
	re := e.Mul(new(apd.Decimal), a.s, ch)
	im := e.Mul(new(apd.Decimal), a.c, sh)
	return Complex{re: re, im: im}, e.Err()
}

// Cos returns the cosine of x. If unit is Deg, the real part of x is in
// degrees.
func Cos(x Complex, unit AngleUnit) (Complex, error) {
	z, err := cos(x, unit)
	return finish("cos", z, err)
}

func cos(x Complex, unit AngleUnit) (Complex, error) {
	a, err := angleOf("cos", x.real(), unit)
	if err != nil {
		return Complex{}, err
	}
	if x.IsReal() {
		return Complex{re: a.c}, nil
	}
	// cos(a+bi) = cos a cosh b - i sin a sinh b
	sh, ch, err := sinhcosh(x.imag())
	if err != nil {
		return Complex{}, err
	}
	e := newED(work, "cos", x)
	re := e.Mul(new(apd.Decimal), a.c, ch)
	im := e.Mul(new(apd.Decimal), a.s, sh)
	im.Neg(im)
	return Complex{re: re, im: im}, e.Err()
}

// saturation is the magnitude of imaginary part beyond which tan and cot are
// within rounding of ±i.
var saturation = apd.New(100, 0)

// Tan returns the tangent of x. In degrees, the tangent at odd multiples of
// 90 is a *DomainError.
func Tan(x Complex, unit AngleUnit) (Complex, error) {
	if x.IsReal() {
		a, err := angleOf("tan", x.real(), unit)
		if err != nil {
			return Complex{}, err
		}
		if a.quadrant >= 0 {
			if a.quadrant%2 == 1 {
				return Complex{}, &DomainError{Func: "tan", Args: []Complex{x}}
			}
			return Complex{}, nil
		}
		e := newED(work, "tan", x)
		return finish("tan", Complex{re: e.Quo(new(apd.Decimal), a.s, a.c)}, e.Err())
	}
	if new(apd.Decimal).Abs(x.imag()).Cmp(saturation) > 0 {
		return Complex{im: apd.New(int64(x.imag().Sign()), 0)}, nil
	}
	s, err := sin(x, unit)
	if err != nil {
		return Complex{}, err
	}
	c, err := cos(x, unit)
	if err != nil {
		return Complex{}, err
	}
	z, err := quo(s, c)
	return finish("tan", z, err)
}

// Csc returns the cosecant of x.
func Csc(x Complex, unit AngleUnit) (Complex, error) {
	s, err := sin(x, unit)
	if err != nil {
		return Complex{}, err
	}
	if s.IsZero() {
		return Complex{}, &DomainError{Func: "csc", Args: []Complex{x}}
	}
	z, err := inverse(s)
	return finish("csc", z, err)
}

// Sec returns the secant of x.
func Sec(x Complex, unit AngleUnit) (Complex, error) {
	c, err := cos(x, unit)
	if err != nil {
		return Complex{}, err
	}
	if c.IsZero() {
		return Complex{}, &DomainError{Func: "sec", Args: []Complex{x}}
	}
	z, err := inverse(c)
	return finish("sec", z, err)
}

// Cot returns the cotangent of x.
func Cot(x Complex, unit AngleUnit) (Complex, error) {
	if !x.IsReal() && new(apd.Decimal).Abs(x.imag()).Cmp(saturation) > 0 {
		return Complex{im: apd.New(-int64(x.imag().Sign()), 0)}, nil
	}
	s, err := sin(x, unit)
	if err != nil {
		return Complex{}, err
	}
	if s.IsZero() {
		return Complex{}, &DomainError{Func: "cot", Args: []Complex{x}}
	}
	c, err := cos(x, unit)
	if err != nil {
		return Complex{}, err
	}
	z, err := quo(c, s)
	return finish("cot", z, err)
}

// atan returns the arctangent of a real number at working precision.
func atan(x *apd.Decimal) (*apd.Decimal, error) {
	if x.IsZero() {
		return new(apd.Decimal), nil
	}
	initConsts()
	e := newED(withPrecision(seriesPrec), "atan", Real(x))
	v := new(apd.Decimal).Abs(x)
	invert := v.Cmp(decOne) > 0
	if invert {
		e.Quo(v, decOne, v)
	}
	// atan v = 2 atan(v / (1 + sqrt(1 + v²)))
	var t apd.Decimal
	tenth := apd.New(1, -1)
	k := 0
	for e.Err() == nil && v.Cmp(tenth) > 0 {
		e.Mul(&t, v, v)
		e.Add(&t, &t, decOne)
		e.Sqrt(&t, &t)
		e.Add(&t, &t, decOne)
		e.Quo(v, v, &t)
		k++
	}
	var v2, d apd.Decimal
	e.Mul(&v2, v, v)
	sum := new(apd.Decimal).Set(v)
	t.Set(v)
	for n := int64(1); e.Err() == nil; n++ {
		e.Mul(&t, &t, &v2)
		t.Neg(&t)
		d.SetInt64(2*n + 1)
		var term apd.Decimal
		e.Quo(&term, &t, &d)
		if negligible(&term, sum) {
			break
		}
		e.Add(sum, sum, &term)
	}
	for ; k > 0; k-- {
		e.Mul(sum, sum, decTwo)
	}
	if invert {
		e.Sub(sum, halfPiWork, sum)
	}
	if x.Negative {
		sum.Neg(sum)
	}
	return sum, e.Err()
}

// atan2 returns the angle of the point (x, y) in radians.
func atan2(y, x *apd.Decimal) (*apd.Decimal, error) {
	initConsts()
	if x.IsZero() {
		switch y.Sign() {
		case 0:
			return nil, &DomainError{Func: "arg", Args: []Complex{{}}}
		case 1:
			return new(apd.Decimal).Set(halfPiWork), nil
		default:
			return new(apd.Decimal).Neg(halfPiWork), nil
		}
	}
	e := newED(work, "arg", New(x, y))
	var q apd.Decimal
	e.Quo(&q, y, x)
	if err := e.Err(); err != nil {
		return nil, err
	}
	t, err := atan(&q)
	if err != nil {
		return nil, err
	}
	if !x.Negative {
		return t, nil
	}
	if y.Negative {
		return e.Sub(t, t, piWork()), e.Err()
	}
	return e.Add(t, t, piWork()), e.Err()
}

// Arg returns the argument of x as a real number in (-π, π], or in degrees
// if unit is Deg. The argument of zero is a *DomainError.
func Arg(x Complex, unit AngleUnit) (Complex, error) {
	if x.IsZero() {
		return Complex{}, &DomainError{Func: "arg", Args: []Complex{x}}
	}
	t, err := atan2(x.imag(), x.real())
	if err != nil {
		return Complex{}, err
	}
	z, err := degResult("arg", Complex{re: t}, nil, unit)
	return finish("arg", z, err)
}

// Asin returns the principal arcsine of x. If unit is Deg, the real part of
// the result is in degrees.
func Asin(x Complex, unit AngleUnit) (Complex, error) {
	z, err := asin(x)
	z, err = degResult("asin", z, err, unit)
	return finish("asin", z, err)
}

func asin(x Complex) (Complex, error) {
	if x.real().Negative {
		z, err := asin(Neg(x))
		return Neg(z), err
	}
	a := x.real()
	if x.IsReal() && a.Cmp(decOne) <= 0 {
		initConsts()
		if a.Cmp(decOne) == 0 {
			return Complex{re: new(apd.Decimal).Set(halfPiWork)}, nil
		}
		// asin a = atan(a / sqrt(1 - a²))
		e := newED(withPrecision(seriesPrec), "asin", x)
		var t apd.Decimal
		e.Mul(&t, a, a)
		e.Sub(&t, decOne, &t)
		e.Sqrt(&t, &t)
		e.Quo(&t, a, &t)
		if err := e.Err(); err != nil {
			return Complex{}, err
		}
		r, err := atan(&t)
		return Complex{re: r}, err
	}
	// asin z = -i ln(iz + sqrt(1 - z²))
	z2, err := mul(work, x, x)
	if err != nil {
		return Complex{}, err
	}
	t, err := sub(FromInt64(1), z2)
	if err != nil {
		return Complex{}, err
	}
	t, err = sqrt(t)
	if err != nil {
		return Complex{}, err
	}
	t, err = add(mulI(x), t)
	if err != nil {
		return Complex{}, err
	}
	t, err = ln(t)
	if err != nil {
		return Complex{}, err
	}
	return Neg(mulI(t)), nil
}

// mulI returns ix.
func mulI(x Complex) Complex {
	return Complex{re: new(apd.Decimal).Neg(x.imag()), im: x.Re()}
}

// Acos returns the principal arccosine of x. If unit is Deg, the real part of
// the result is in degrees.
func Acos(x Complex, unit AngleUnit) (Complex, error) {
	z, err := asin(x)
	if err == nil {
		initConsts()
		z, err = sub(Complex{re: halfPiWork}, z)
	}
	z, err = degResult("acos", z, err, unit)
	return finish("acos", z, err)
}

// Atan returns the principal arctangent of x. If unit is Deg, the real part
// of the result is in degrees. The arctangent of ±i is a *DomainError.
func Atan(x Complex, unit AngleUnit) (Complex, error) {
	z, err := atanC(x)
	z, err = degResult("atan", z, err, unit)
	return finish("atan", z, err)
}

func atanC(x Complex) (Complex, error) {
	if x.IsReal() {
		r, err := atan(x.real())
		return Complex{re: r}, err
	}
	// atan z = (i/2)(ln(1 - iz) - ln(1 + iz))
	iz := mulI(x)
	l, err := sub(FromInt64(1), iz)
	if err == nil {
		l, err = ln(l)
	}
	if err != nil {
		return Complex{}, domainAs("atan", x, err)
	}
	r, err := add(FromInt64(1), iz)
	if err == nil {
		r, err = ln(r)
	}
	if err != nil {
		return Complex{}, domainAs("atan", x, err)
	}
	d, err := sub(l, r)
	if err != nil {
		return Complex{}, err
	}
	d, err = quo(mulI(d), FromInt64(2))
	return d, err
}

// domainAs renames a domain error to op applied to x.
func domainAs(op string, x Complex, err error) error {
	if _, ok := err.(*DomainError); ok {
		return &DomainError{Func: op, Args: []Complex{x}}
	}
	return err
}
