package arith

import (
	"math/big"
	"sync"

	"github.com/cockroachdb/apd/v3"
	"github.com/zephyrtronium/bigfloat"
)

// bitsPerDigit is log2(10).
const bitsPerDigit = 3.321928094887362

var pis struct {
	mu sync.Mutex
	// d holds π to n+piExtra significant digits.
	d *apd.Decimal
	n int
}

const piExtra = 8

// PiDigits returns π rounded to n significant digits. Results are cached, so
// repeated calls with n no larger than any previous call are cheap.
func PiDigits(n int) *apd.Decimal {
	if n < 1 {
		n = 1
	}
	pis.mu.Lock()
	if pis.n < n {
		pis.d = computePi(n + piExtra)
		pis.n = n
	}
	p := pis.d
	pis.mu.Unlock()
	r := new(apd.Decimal)
	withPrecision(uint32(n)).Round(r, p)
	return r
}

func computePi(digits int) *apd.Decimal {
	prec := uint(float64(digits)*bitsPerDigit) + 64
	f := bigfloat.Pi(new(big.Float).SetPrec(prec))
	return floatToDecimal(f, digits)
}

// floatToDecimal converts a finite float to a decimal with the given number of
// significant digits.
func floatToDecimal(f *big.Float, digits int) *apd.Decimal {
	d, _, err := apd.NewFromString(f.Text('e', digits-1))
	if err != nil {
		panic("calculator: bad float conversion: " + err.Error())
	}
	return d
}

// decimalToFloat converts a decimal to a float with prec bits.
func decimalToFloat(d *apd.Decimal, prec uint) *big.Float {
	f, _, err := big.ParseFloat(d.Text('E'), 10, prec, big.ToNearestEven)
	if err != nil {
		panic("calculator: bad decimal conversion: " + err.Error())
	}
	return f
}

var (
	consts     sync.Once
	eWork      *apd.Decimal
	ln2Work    *apd.Decimal
	ln10Work   *apd.Decimal
	halfPiWork *apd.Decimal
)

func initConsts() {
	consts.Do(func() {
		eWork = new(apd.Decimal)
		work.Exp(eWork, decOne)
		ln2Work = new(apd.Decimal)
		work.Ln(ln2Work, decTwo)
		ln10Work = new(apd.Decimal)
		work.Ln(ln10Work, apd.New(10, 0))
		halfPiWork = new(apd.Decimal)
		work.Quo(halfPiWork, PiDigits(Precision+guard), decTwo)
	})
}

// Pi returns π rounded to Precision digits.
func Pi() Complex {
	return Complex{re: PiDigits(Precision)}
}

// E returns Euler's number rounded to Precision digits.
func E() Complex {
	initConsts()
	return Round(Complex{re: eWork})
}

// piWork returns π at working precision.
func piWork() *apd.Decimal {
	return PiDigits(Precision + guard)
}
