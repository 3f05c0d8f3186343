package calculator_test

import (
	"strings"
	"testing"

	"github.com/zephyrtronium/calculator"
	"github.com/zephyrtronium/calculator/arith"
)

// names maps display strings and ASCII names to units.
var names = func() map[string]calculator.Unit {
	m := make(map[string]calculator.Unit)
	for _, u := range calculator.Vocabulary() {
		m[u.Name()] = u
		m[u.String()] = u
	}
	return m
}()

// units converts space-separated unit names to units. Runs of digits and
// points are split into one unit per rune.
func units(t testing.TB, s string) []calculator.Unit {
	t.Helper()
	var r []calculator.Unit
	for _, f := range strings.Fields(s) {
		if strings.Trim(f, "0123456789.") == "" {
			for _, c := range f {
				r = append(r, names[string(c)])
			}
			continue
		}
		u, ok := names[f]
		if !ok {
			t.Fatalf("no unit named %q", f)
		}
		r = append(r, u)
	}
	return r
}

func expr(t testing.TB, s string) calculator.Expression {
	t.Helper()
	e, err := calculator.NewExpression(units(t, s)...)
	if err != nil {
		t.Fatalf("couldn't make expression from %q: %v", s, err)
	}
	return e
}

func num(t testing.TB, s string) arith.Complex {
	t.Helper()
	re, im := s, "0"
	if k := strings.IndexByte(s, ','); k >= 0 {
		re, im = s[:k], s[k+1:]
	}
	z, err := arith.Parse(re, im)
	if err != nil {
		t.Fatalf("bad number %q: %v", s, err)
	}
	return z
}
