// Package format renders calculator values and expressions for display.
package format

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cockroachdb/apd/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/zephyrtronium/calculator"
	"github.com/zephyrtronium/calculator/arith"
)

// Options controls conditional formatting.
type Options struct {
	// SigFig is the number of significant figures to which values are
	// rounded.
	SigFig int
	// Lower and Upper bound the exponents of values written in plain
	// notation. A value with a part whose exponent is at most -Lower or
	// greater than Upper is written in scientific notation.
	Lower, Upper int
	// Superscript writes exponents with superscript digits instead of a caret.
	Superscript bool
	// Locale selects decimal and grouping separators. The zero value uses a
	// point and no grouping.
	Locale language.Tag
	// Group separates groups of digits in the integer part of plain numbers.
	Group bool
}

// DefaultOptions are the options used when none are configured.
var DefaultOptions = Options{SigFig: 10, Lower: 3, Upper: 6}

var (
	errSigFig = errors.New("significant figures must be positive")
	errBounds = errors.New("scientific notation bounds must be positive")
)

// SignificantFigures rounds both parts of z to n significant figures, half
// even, and removes trailing zeros.
func SignificantFigures(z arith.Complex, n int) (arith.Complex, error) {
	if n <= 0 {
		return arith.Complex{}, errSigFig
	}
	ctx := apd.BaseContext.WithPrecision(uint32(n))
	ctx.Rounding = apd.RoundHalfEven
	round := func(d *apd.Decimal) *apd.Decimal {
		if d.IsZero() {
			return new(apd.Decimal)
		}
		ctx.Round(d, d)
		d.Reduce(d)
		return d
	}
	return arith.New(round(z.Re()), round(z.Im())), nil
}

// Plain formats z without rounding, in positional notation.
func Plain(z arith.Complex) string {
	return complexString(z, plain, ".")
}

// Scientific formats z without rounding, each part as m×10^e with one digit
// before the point of m. If superscript is true, the exponent is written with
// superscript digits instead.
func Scientific(z arith.Complex, superscript bool) string {
	return complexString(z, func(d *apd.Decimal, dec string) string { return scientific(d, dec, superscript) }, ".")
}

// Conditional rounds z to o.SigFig significant figures, then formats it in
// scientific notation if the exponent of either part is at most -o.Lower or
// greater than o.Upper, and in plain notation otherwise.
func Conditional(z arith.Complex, o Options) (string, error) {
	if o.Lower <= 0 || o.Upper <= 0 {
		return "", errBounds
	}
	z, err := SignificantFigures(z, o.SigFig)
	if err != nil {
		return "", err
	}
	dec, group := separators(o.Locale)
	if !o.Group {
		group = ""
	}
	for _, d := range [...]*apd.Decimal{z.Re(), z.Im()} {
		e := exponent(d)
		if e <= int64(-o.Lower) || e > int64(o.Upper) {
			return complexString(z, func(d *apd.Decimal, dec string) string { return scientific(d, dec, o.Superscript) }, dec), nil
		}
	}
	return complexString(z, func(d *apd.Decimal, dec string) string { return grouped(plain(d, dec), dec, group) }, dec), nil
}

// complexString assembles a complex number from its formatted parts.
func complexString(z arith.Complex, part func(*apd.Decimal, string) string, dec string) string {
	re, im := z.Re(), z.Im()
	if re.IsZero() && im.IsZero() {
		return "0"
	}
	if im.IsZero() {
		return part(re, dec)
	}
	neg := im.Negative
	im.Abs(im)
	var b strings.Builder
	if !re.IsZero() {
		b.WriteString(part(re, dec))
		if neg {
			b.WriteString(" - ")
		} else {
			b.WriteString(" + ")
		}
	} else if neg {
		b.WriteByte('-')
	}
	if im.Cmp(apd.New(1, 0)) != 0 {
		b.WriteString(part(im, dec))
	}
	b.WriteByte('i')
	return b.String()
}

// exponent returns the power of ten of the most significant digit of d, or 0
// if d is zero.
func exponent(d *apd.Decimal) int64 {
	if d.IsZero() {
		return 0
	}
	return int64(d.Exponent) + d.NumDigits() - 1
}

func plain(d *apd.Decimal, dec string) string {
	s := d.Text('f')
	if dec != "." {
		s = strings.Replace(s, ".", dec, 1)
	}
	return s
}

func scientific(d *apd.Decimal, dec string, superscript bool) string {
	if d.IsZero() {
		return "0"
	}
	e := exponent(d)
	m := new(apd.Decimal).Set(d)
	m.Exponent -= int32(e)
	var b strings.Builder
	b.WriteString(plain(m, dec))
	b.WriteString("×10")
	if superscript {
		b.WriteString(Superscript(strconv.FormatInt(e, 10)))
	} else {
		b.WriteByte('^')
		b.WriteString(strconv.FormatInt(e, 10))
	}
	return b.String()
}

// grouped inserts group separators into the integer part of a plain number.
func grouped(s, dec, group string) string {
	if group == "" {
		return s
	}
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	ip, fp := s, ""
	if k := strings.Index(s, dec); k >= 0 {
		ip, fp = s[:k], s[k:]
	}
	if len(ip) <= 3 {
		return sign + s
	}
	var b strings.Builder
	b.WriteString(sign)
	first := len(ip) % 3
	if first == 0 {
		first = 3
	}
	b.WriteString(ip[:first])
	for k := first; k < len(ip); k += 3 {
		b.WriteString(group)
		b.WriteString(ip[k : k+3])
	}
	b.WriteString(fp)
	return b.String()
}

// separators returns the decimal and group separators for a locale.
func separators(tag language.Tag) (dec, group string) {
	if tag == language.Und {
		return ".", ","
	}
	s := message.NewPrinter(tag).Sprintf("%v", number.Decimal(1234.5, number.MinFractionDigits(1)))
	var seps []string
	for _, r := range s {
		if !unicode.IsDigit(r) {
			seps = append(seps, string(r))
		}
	}
	switch len(seps) {
	case 0:
		return ".", ""
	case 1:
		return seps[0], ""
	default:
		return seps[len(seps)-1], seps[0]
	}
}

var superscripts = strings.NewReplacer(
	"-", "⁻",
	"0", "⁰", "1", "¹", "2", "²", "3", "³", "4", "⁴",
	"5", "⁵", "6", "⁶", "7", "⁷", "8", "⁸", "9", "⁹",
)

// Superscript replaces digits and minus signs in s with superscript forms.
func Superscript(s string) string {
	return superscripts.Replace(s)
}

// DisplayIndex returns the position, in runes, in the display string of e at
// which the unit at index i begins. If i is beyond the end of e, the result is
// the length of the display string.
func DisplayIndex(e calculator.Expression, i int) int {
	n := 0
	for k := 0; k < e.Len() && k < i; k++ {
		n += utf8.RuneCountInString(e.At(k).String())
	}
	return n
}

// UnitIndex returns the index of the unit in e whose display covers the rune
// at position i of the display string of e. If i is beyond the end of the
// display string, the result is e.Len().
func UnitIndex(e calculator.Expression, i int) int {
	n := 0
	for k := 0; k < e.Len(); k++ {
		n += utf8.RuneCountInString(e.At(k).String())
		if n > i {
			return k
		}
	}
	return e.Len()
}
