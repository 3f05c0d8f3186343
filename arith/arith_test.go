package arith_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/cockroachdb/apd/v3"

	"github.com/zephyrtronium/calculator/arith"
)

// c parses a complex number written as "re" or "re,im".
func c(s string) arith.Complex {
	re, im, _ := strings.Cut(s, ",")
	if im == "" {
		im = "0"
	}
	z, err := arith.Parse(re, im)
	if err != nil {
		panic(err)
	}
	return z
}

// near reports whether z and w agree to n significant digits in each part.
func near(z, w arith.Complex, n uint32) bool {
	ctx := apd.BaseContext.WithPrecision(n)
	ctx.Rounding = apd.RoundHalfEven
	r := func(d *apd.Decimal) *apd.Decimal {
		ctx.Round(d, d)
		return d
	}
	return r(z.Re()).Cmp(r(w.Re())) == 0 && r(z.Im()).Cmp(r(w.Im())) == 0
}

type kind int

const (
	ok kind = iota
	domain
	outOfRange
)

func checkErr(t *testing.T, err error, want kind) bool {
	t.Helper()
	var de *arith.DomainError
	var re *arith.RangeError
	switch want {
	case ok:
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	case domain:
		if !errors.As(err, &de) {
			t.Errorf("wanted domain error, got %v", err)
		}
	case outOfRange:
		if !errors.As(err, &re) {
			t.Errorf("wanted range error, got %v", err)
		}
	}
	return err == nil && want == ok
}

func TestBinary(t *testing.T) {
	cases := []struct {
		name string
		f    func(x, y arith.Complex) (arith.Complex, error)
		x, y string
		want string
		err  kind
	}{
		{"add", arith.Add, "1", "1", "2", ok},
		{"add-decimal", arith.Add, "0.1", "0.2", "0.3", ok},
		{"add-complex", arith.Add, "1,2", "3,-2", "4", ok},
		{"sub", arith.Sub, "1", "3", "-2", ok},
		{"mul-conj", arith.Mul, "1,1", "1,-1", "2", ok},
		{"mul-complex", arith.Mul, "1,2", "3,4", "-5,10", ok},
		{"mul-range", arith.Mul, "1E+9999", "10", "", outOfRange},
		{"quo", arith.Quo, "1", "4", "0.25", ok},
		{"quo-third", arith.Quo, "1", "3", "0." + strings.Repeat("3", 64), ok},
		{"quo-two-thirds", arith.Quo, "2", "3", "0." + strings.Repeat("6", 63) + "7", ok},
		{"quo-complex", arith.Quo, "-5,10", "3,4", "1,2", ok},
		{"quo-zero", arith.Quo, "1", "0", "", domain},
		{"quo-zero-zero", arith.Quo, "0", "0", "", domain},
		{"quo-range", arith.Quo, "1E-9999", "10", "", outOfRange},
		{"pow", arith.Pow, "2", "10", "1024", ok},
		{"pow-neg", arith.Pow, "2", "-1", "0.5", ok},
		{"pow-half", arith.Pow, "4", "0.5", "2", ok},
		{"pow-neg-half", arith.Pow, "4", "-0.5", "0.5", ok},
		{"pow-zero-zero", arith.Pow, "0", "0", "", domain},
		{"pow-zero-neg", arith.Pow, "0", "-1", "", domain},
		{"pow-zero-i", arith.Pow, "0", "0,1", "", domain},
		{"pow-zero-complex", arith.Pow, "0", "1,1", "0", ok},
		{"pow-x-zero", arith.Pow, "5,5", "0", "1", ok},
		{"pow-gaussian", arith.Pow, "1,1", "2", "0,2", ok},
		{"pow-gaussian-neg", arith.Pow, "0,1", "-1", "0,-1", ok},
		{"pow-range", arith.Pow, "10", "10000", "", outOfRange},
		{"root", arith.Root, "9", "2", "3", ok},
		{"root-zero", arith.Root, "9", "0", "", domain},
		{"scale", arith.ScaleByPowerOfTen, "3", "2", "300", ok},
		{"scale-neg", arith.ScaleByPowerOfTen, "3", "-2", "0.03", ok},
		{"scale-frac", arith.ScaleByPowerOfTen, "3", "0.5", "", domain},
		{"scale-complex", arith.ScaleByPowerOfTen, "3", "0,1", "", domain},
		{"scale-max", arith.ScaleByPowerOfTen, "1", "9999", "1E+9999", ok},
		{"scale-over", arith.ScaleByPowerOfTen, "1", "10000", "", outOfRange},
		{"scale-huge", arith.ScaleByPowerOfTen, "1", "1E+20", "", outOfRange},
		{"permutation", arith.Permutation, "5", "2", "20", ok},
		{"permutation-zero", arith.Permutation, "0", "0", "1", ok},
		{"permutation-frac", arith.Permutation, "2.5", "1", "", domain},
		{"permutation-r-gt-n", arith.Permutation, "2", "5", "", domain},
		{"combination", arith.Combination, "5", "2", "10", ok},
		{"combination-big", arith.Combination, "100", "50", "100891344545564193334812497256", ok},
		{"combination-neg", arith.Combination, "-5", "2", "", domain},
		{"combination-complex", arith.Combination, "5,1", "2", "", domain},
	}
	for _, c0 := range cases {
		t.Run(c0.name, func(t *testing.T) {
			z, err := c0.f(c(c0.x), c(c0.y))
			if !checkErr(t, err, c0.err) {
				return
			}
			if w := c(c0.want); !z.Equal(w) {
				t.Errorf("wrong result: want %v, got %v", w, z)
			}
		})
	}
}

func TestUnary(t *testing.T) {
	cases := []struct {
		name string
		f    func(x arith.Complex) (arith.Complex, error)
		x    string
		want string
		err  kind
	}{
		{"inverse", arith.Inverse, "4", "0.25", ok},
		{"inverse-i", arith.Inverse, "0,1", "0,-1", ok},
		{"inverse-zero", arith.Inverse, "0", "", domain},
		{"square", arith.Square, "0,1", "-1", ok},
		{"cube", arith.Cube, "-2", "-8", ok},
		{"abs", arith.Abs, "3,4", "5", ok},
		{"abs-real", arith.Abs, "-7", "7", ok},
		{"percent", arith.Percent, "50", "0.5", ok},
		{"sqrt", arith.Sqrt, "16", "4", ok},
		{"sqrt-neg", arith.Sqrt, "-4", "0,2", ok},
		{"sqrt-i", arith.Sqrt, "0,2", "1,1", ok},
		{"sqrt-neg-i", arith.Sqrt, "0,-2", "1,-1", ok},
		{"sqrt-complex", arith.Sqrt, "3,4", "2,1", ok},
		{"sqrt-neg-complex", arith.Sqrt, "-3,4", "1,2", ok},
		{"exp-zero", arith.Exp, "0", "1", ok},
		{"exp-range", arith.Exp, "30000", "", outOfRange},
		{"ln-one", arith.Ln, "1", "0", ok},
		{"ln-zero", arith.Ln, "0", "", domain},
		{"log10", arith.Log10, "1000", "3", ok},
		{"log10-zero", arith.Log10, "0", "", domain},
		{"log2", arith.Log2, "8", "3", ok},
		{"log2-zero", arith.Log2, "0", "", domain},
		{"factorial-zero", arith.Factorial, "0", "1", ok},
		{"factorial-one", arith.Factorial, "1", "1", ok},
		{"factorial-ten", arith.Factorial, "10", "3628800", ok},
		{"factorial-neg", arith.Factorial, "-1", "", domain},
		{"factorial-complex", arith.Factorial, "1,1", "", domain},
		{"factorial-max", arith.Factorial, "3249", "", outOfRange},
		{"sinh-zero", arith.Sinh, "0", "0", ok},
		{"cosh-zero", arith.Cosh, "0", "1", ok},
		{"tanh-saturated", arith.Tanh, "1000", "1", ok},
		{"tanh-saturated-neg", arith.Tanh, "-1000", "-1", ok},
		{"asinh-zero", arith.Asinh, "0", "0", ok},
		{"acosh-one", arith.Acosh, "1", "0", ok},
		{"atanh-zero", arith.Atanh, "0", "0", ok},
		{"atanh-one", arith.Atanh, "1", "", domain},
		{"atanh-neg-one", arith.Atanh, "-1", "", domain},
	}
	for _, c0 := range cases {
		t.Run(c0.name, func(t *testing.T) {
			z, err := c0.f(c(c0.x))
			if !checkErr(t, err, c0.err) {
				return
			}
			if w := c(c0.want); !z.Equal(w) {
				t.Errorf("wrong result: want %v, got %v", w, z)
			}
		})
	}
}

func TestAngles(t *testing.T) {
	halfPi, err := arith.Quo(arith.Pi(), arith.FromInt64(2))
	if err != nil {
		t.Fatal(err)
	}
	sixthPi, err := arith.Quo(arith.Pi(), arith.FromInt64(6))
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		name string
		f    func(x arith.Complex, u arith.AngleUnit) (arith.Complex, error)
		x    arith.Complex
		u    arith.AngleUnit
		want arith.Complex
		err  kind
	}{
		{"sin-zero", arith.Sin, c("0"), arith.Rad, c("0"), ok},
		{"sin-half-pi", arith.Sin, halfPi, arith.Rad, c("1"), ok},
		{"sin-sixth-pi", arith.Sin, sixthPi, arith.Rad, c("0.5"), ok},
		{"cos-pi", arith.Cos, arith.Pi(), arith.Rad, c("-1"), ok},
		{"sin-90", arith.Sin, c("90"), arith.Deg, c("1"), ok},
		{"sin-30", arith.Sin, c("30"), arith.Deg, c("0.5"), ok},
		{"sin-neg-90", arith.Sin, c("-90"), arith.Deg, c("-1"), ok},
		{"sin-450", arith.Sin, c("450"), arith.Deg, c("1"), ok},
		{"sin-180", arith.Sin, c("180"), arith.Deg, c("0"), ok},
		{"cos-90", arith.Cos, c("90.0"), arith.Deg, c("0"), ok},
		{"cos-180", arith.Cos, c("180"), arith.Deg, c("-1"), ok},
		{"tan-45", arith.Tan, c("45"), arith.Deg, c("1"), ok},
		{"tan-180", arith.Tan, c("180"), arith.Deg, c("0"), ok},
		{"tan-90", arith.Tan, c("90"), arith.Deg, arith.Complex{}, domain},
		{"tan-neg-270", arith.Tan, c("-270"), arith.Deg, arith.Complex{}, domain},
		{"sec-90", arith.Sec, c("90"), arith.Deg, arith.Complex{}, domain},
		{"csc-zero", arith.Csc, c("0"), arith.Rad, arith.Complex{}, domain},
		{"csc-90", arith.Csc, c("90"), arith.Deg, c("1"), ok},
		{"cot-90", arith.Cot, c("90"), arith.Deg, c("0"), ok},
		{"cot-zero", arith.Cot, c("0"), arith.Deg, arith.Complex{}, domain},
		{"asin-one", arith.Asin, c("1"), arith.Rad, halfPi, ok},
		{"asin-one-deg", arith.Asin, c("1"), arith.Deg, c("90"), ok},
		{"asin-neg-one-deg", arith.Asin, c("-1"), arith.Deg, c("-90"), ok},
		{"asin-half-deg", arith.Asin, c("0.5"), arith.Deg, c("30"), ok},
		{"acos-one", arith.Acos, c("1"), arith.Rad, c("0"), ok},
		{"acos-zero-deg", arith.Acos, c("0"), arith.Deg, c("90"), ok},
		{"atan-one-deg", arith.Atan, c("1"), arith.Deg, c("45"), ok},
		{"atan-i", arith.Atan, c("0,1"), arith.Rad, arith.Complex{}, domain},
		{"atan-neg-i", arith.Atan, c("0,-1"), arith.Rad, arith.Complex{}, domain},
		{"arg-neg", arith.Arg, c("-1"), arith.Rad, arith.Pi(), ok},
		{"arg-i-deg", arith.Arg, c("0,1"), arith.Deg, c("90"), ok},
		{"arg-diag-deg", arith.Arg, c("-1,-1"), arith.Deg, c("-135"), ok},
		{"arg-zero", arith.Arg, c("0"), arith.Rad, arith.Complex{}, domain},
	}
	for _, c0 := range cases {
		t.Run(c0.name, func(t *testing.T) {
			z, err := c0.f(c0.x, c0.u)
			if !checkErr(t, err, c0.err) {
				return
			}
			if !z.Equal(c0.want) {
				t.Errorf("wrong result: want %v, got %v", c0.want, z)
			}
		})
	}
}

func TestApprox(t *testing.T) {
	cases := []struct {
		name string
		f    func() (arith.Complex, error)
		want string
		n    uint32
	}{
		{"gamma-half", func() (arith.Complex, error) { return arith.Factorial(c("0.5")) }, "0.8862269254527580136490837416705725913987747280611935641069038949", 60},
		{"gamma-1.5", func() (arith.Complex, error) { return arith.Factorial(c("1.5")) }, "1.329340388179137020473625612505858887098162092091790346160355842", 60},
		{"gamma-10.5", func() (arith.Complex, error) { return arith.Factorial(c("10.5")) }, "1.189942308396224845701302873868337099338313223688917765439159585E+7", 60},
		{"gamma-170.5", func() (arith.Complex, error) { return arith.Factorial(c("170.5")) }, "9.483367566824799336253405469204951589375639109743162539614139531E+307", 60},
		{"gamma-3248.5", func() (arith.Complex, error) { return arith.Factorial(c("3248.5")) }, "1.124928243638877660985188973598373685609970121654083308887327186E+9999", 60},
		{"ln10", func() (arith.Complex, error) { return arith.Ln(c("10")) }, "2.302585092994045684017991454684364207601101488628772976033327901", 60},
		{"e", func() (arith.Complex, error) { return arith.Exp(c("1")) }, "2.718281828459045235360287471352662497757247093699959574966967628", 60},
		{"ln-neg", func() (arith.Complex, error) { return arith.Ln(c("-1")) }, "0,3.141592653589793238462643383279502884197169399375105820974944592", 60},
		{"sinh-one", func() (arith.Complex, error) { return arith.Sinh(c("1")) }, "1.175201193643801456882381850595600815155717981334095870229565413", 60},
		{"asinh-neg", func() (arith.Complex, error) { return arith.Asinh(c("-1")) }, "-0.8813735870195430252326093249797923090281603282616354107532956087", 60},
		{"acosh-neg", func() (arith.Complex, error) { return arith.Acosh(c("-1")) }, "0,3.141592653589793238462643383279502884197169399375105820974944592", 60},
		{"asin-two", func() (arith.Complex, error) { return arith.Asin(c("2"), arith.Rad) }, "1.570796326794896619231321691639751442098584699687552910487472296,-1.316957896924816708625046347307968444026981971467516479768472257", 50},
	}
	for _, c0 := range cases {
		t.Run(c0.name, func(t *testing.T) {
			z, err := c0.f()
			if err != nil {
				t.Fatal(err)
			}
			if w := c(c0.want); !near(z, w, c0.n) {
				t.Errorf("wrong result: want %v, got %v", w, z)
			}
		})
	}
}

func TestRound(t *testing.T) {
	cases := []struct {
		name   string
		in     string
		re, im string
	}{
		{"trailing", "1.500", "1.5", "0"},
		{"zero", "0.000", "0", "0"},
		{"integer", "300", "3E+2", "0"},
		{"long", "1." + strings.Repeat("0", 63) + "5", "1", "0"},
		{"long-up", "1." + strings.Repeat("0", 62) + "15", "1." + strings.Repeat("0", 62) + "2", "0"},
	}
	for _, c0 := range cases {
		t.Run(c0.name, func(t *testing.T) {
			re, im := arith.Round(c(c0.in)).Parts()
			if re != c0.re || im != c0.im {
				t.Errorf("wrong parts: want (%s, %s), got (%s, %s)", c0.re, c0.im, re, im)
			}
		})
	}
}

func TestCheckRange(t *testing.T) {
	cases := []struct {
		in  string
		err bool
	}{
		{"1E+9999", false},
		{"9.99E+9999", false},
		{"1E+10000", true},
		{"1E-9999", false},
		{"1E-10000", true},
		{"0,1E+10000", true},
		{"0", false},
	}
	for _, c0 := range cases {
		t.Run(c0.in, func(t *testing.T) {
			err := arith.CheckRange(c(c0.in))
			if (err != nil) != c0.err {
				t.Errorf("wrong error: %v", err)
			}
		})
	}
}

func TestPiDigits(t *testing.T) {
	const pi101 = "3.1415926535897932384626433832795028841971693993751058209749445923078164062862089986280348253421170680"
	got := arith.PiDigits(101).String()
	if got != pi101 {
		t.Errorf("wrong digits:\nwant %s\ngot  %s", pi101, got)
	}
	if got := arith.PiDigits(3).String(); got != "3.14" {
		t.Errorf("wrong short digits: %s", got)
	}
}

func TestString(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"1", "1"},
		{"0,1", "1i"},
		{"1,2", "1+2i"},
		{"1,-2", "1-2i"},
	}
	for _, c0 := range cases {
		if got := c(c0.in).String(); got != c0.want {
			t.Errorf("%q: want %q, got %q", c0.in, c0.want, got)
		}
	}
}

func TestParseError(t *testing.T) {
	for _, s := range []string{"", "x", "1.2.3", "NaN", "Infinity"} {
		if _, err := arith.ParseReal(s); err == nil {
			t.Errorf("%q parsed without error", s)
		}
	}
}
