package arith

import (
	"math/big"
	"sync"

	"github.com/cockroachdb/apd/v3"
	"github.com/zephyrtronium/bigfloat"
)

const (
	// maxFactorial is the largest argument whose factorial is in range.
	maxFactorial = 3248
	// maxBits is a bit length beyond which an integer is certainly out of
	// range: 2^maxBits > 10^(MaxExponent+1).
	maxBits = 33220
)

// Factorial returns x!. Non-integers use the gamma function, x! = Γ(x+1).
// The factorial of a negative or non-real number is a *DomainError.
func Factorial(x Complex) (Complex, error) {
	if !x.IsReal() || x.real().Negative && !x.real().IsZero() {
		return Complex{}, &DomainError{Func: "factorial", Args: []Complex{x}}
	}
	a := x.real()
	if a.Cmp(apd.New(maxFactorial+1, 0)) >= 0 {
		return Complex{}, &RangeError{Func: "factorial"}
	}
	if isIntegral(a) {
		n, _ := a.Int64()
		f := new(big.Int).MulRange(1, n)
		return finish("factorial", Complex{re: intToDecimal(f)}, nil)
	}
	return finish("factorial", Complex{re: gamma1(a)}, nil)
}

func intToDecimal(x *big.Int) *apd.Decimal {
	return apd.NewWithBigInt(new(apd.BigInt).SetMathBigInt(x), 0)
}

// Spouge's approximation of the gamma function:
//
//	Γ(z+1) = (z+a)^(z+1/2) e^-(z+a) (c₀ + Σ_{k=1}^{a-1} c_k/(z+k) + ε)
//
// with relative error below (2π)^-(a+1/2).
const (
	spougeA    = 102
	spougePrec = 1024
)

var spouge struct {
	once sync.Once
	c    [spougeA]*big.Float
}

func spougeCoeffs() []*big.Float {
	spouge.once.Do(func() {
		c := &spouge.c
		// c₀ = sqrt(2π)
		c[0] = new(big.Float).SetPrec(spougePrec)
		c[0] = bigfloat.Pi(c[0])
		c[0].Mul(c[0], big.NewFloat(2))
		c[0].Sqrt(c[0])
		// c_k = (-1)^(k-1)/(k-1)! (a-k)^(k-1/2) e^(a-k)
		fact := new(big.Float).SetPrec(spougePrec).SetInt64(1)
		for k := 1; k < spougeA; k++ {
			if k > 1 {
				fact.Mul(fact, new(big.Float).SetInt64(int64(k-1)))
			}
			ak := new(big.Float).SetPrec(spougePrec).SetInt64(int64(spougeA - k))
			p := new(big.Float).SetPrec(spougePrec).SetFloat64(float64(k) - 0.5)
			// Pow and Exp do not always write to their first argument.
			t := bigfloat.Pow(new(big.Float).SetPrec(spougePrec), ak, p)
			u := bigfloat.Exp(new(big.Float).SetPrec(spougePrec), ak)
			t.Mul(t, u)
			t.Quo(t, fact)
			if k%2 == 0 {
				t.Neg(t)
			}
			c[k] = t
		}
	})
	return spouge.c[:]
}

// gamma1 returns Γ(x+1) for a non-negative real x.
func gamma1(x *apd.Decimal) *apd.Decimal {
	c := spougeCoeffs()
	z := decimalToFloat(x, spougePrec)
	sum := new(big.Float).SetPrec(spougePrec).Set(c[0])
	for k := 1; k < spougeA; k++ {
		d := new(big.Float).SetPrec(spougePrec).SetInt64(int64(k))
		d.Add(d, z)
		d.Quo(c[k], d)
		sum.Add(sum, d)
	}
	za := new(big.Float).SetPrec(spougePrec).SetInt64(spougeA)
	za.Add(za, z)
	// (z+a)^(z+1/2)
	h := new(big.Float).SetPrec(spougePrec).SetFloat64(0.5)
	h.Add(h, z)
	p := bigfloat.Pow(new(big.Float).SetPrec(spougePrec), za, h)
	// e^-(z+a)
	nza := new(big.Float).SetPrec(spougePrec).Neg(za)
	q := bigfloat.Exp(new(big.Float).SetPrec(spougePrec), nza)
	p.Mul(p, q)
	p.Mul(p, sum)
	return floatToDecimal(p, Precision+guard)
}

// Permutation returns the number of ordered selections of r items from n,
// n!/(n-r)!. n and r must be real non-negative integers with r ≤ n, or else
// the result is a *DomainError.
func Permutation(n, r Complex) (Complex, error) {
	a, b, err := choose("permutation", n, r)
	if err != nil {
		return Complex{}, err
	}
	// The product has r factors, each at least 1, and exceeds r!.
	if b.Cmp(big.NewInt(maxFactorial)) > 0 {
		return Complex{}, &RangeError{Func: "permutation"}
	}
	k := b.Int64()
	p := big.NewInt(1)
	var f big.Int
	for i := int64(0); i < k; i++ {
		f.Sub(a, big.NewInt(i))
		p.Mul(p, &f)
		if p.BitLen() > maxBits {
			return Complex{}, &RangeError{Func: "permutation"}
		}
	}
	return finish("permutation", Complex{re: intToDecimal(p)}, nil)
}

// Combination returns the number of unordered selections of r items from n,
// n!/(r!(n-r)!). n and r must be real non-negative integers with r ≤ n, or
// else the result is a *DomainError.
func Combination(n, r Complex) (Complex, error) {
	a, b, err := choose("combination", n, r)
	if err != nil {
		return Complex{}, err
	}
	if t := new(big.Int).Sub(a, b); t.Cmp(b) < 0 {
		b = t
	}
	// With r ≤ n/2, C(n, r) ≥ 2^r.
	if b.Cmp(big.NewInt(maxBits)) > 0 {
		return Complex{}, &RangeError{Func: "combination"}
	}
	k := b.Int64()
	p := big.NewInt(1)
	var f big.Int
	for i := int64(1); i <= k; i++ {
		// p·(n-r+i)/i is C(n-r+i, i), always an integer.
		f.Sub(a, big.NewInt(k-i))
		p.Mul(p, &f)
		p.Quo(p, big.NewInt(i))
		if p.BitLen() > maxBits {
			return Complex{}, &RangeError{Func: "combination"}
		}
	}
	return finish("combination", Complex{re: intToDecimal(p)}, nil)
}

func choose(op string, n, r Complex) (a, b *big.Int, err error) {
	if !n.IsInteger() || !r.IsInteger() || n.real().Negative && !n.real().IsZero() || r.real().Negative && !r.real().IsZero() {
		return nil, nil, &DomainError{Func: op, Args: []Complex{n, r}}
	}
	if n.real().Cmp(r.real()) < 0 {
		return nil, nil, &DomainError{Func: op, Args: []Complex{n, r}}
	}
	return toBigInt(n.real()), toBigInt(r.real()), nil
}
