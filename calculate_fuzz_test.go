//go:build go1.18
// +build go1.18

package calculator_test

import (
	"testing"

	"github.com/zephyrtronium/calculator"
	"github.com/zephyrtronium/calculator/arith"
)

func FuzzCalculate(f *testing.F) {
	f.Add([]byte{2, 15, 3})
	f.Add([]byte{12, 12, 1, 16, 2})
	f.Add([]byte{39, 11, 10, 5, 13})
	vocab := calculator.Vocabulary()
	p, err := calculator.NewParams(calculator.SetVar(calculator.X, arith.FromInt64(2)))
	if err != nil {
		f.Fatal(err)
	}
	f.Fuzz(func(t *testing.T, b []byte) {
		u := make([]calculator.Unit, len(b))
		for i, c := range b {
			u[i] = vocab[int(c)%len(vocab)]
		}
		e := calculator.MustExpression(u...)
		r, err := calculator.Calculate(e, p)
		if err != nil {
			if calculator.KindOf(err) == calculator.KindNone {
				t.Errorf("%v: unclassified error %v", e, err)
			}
			return
		}
		if err := arith.CheckRange(r.Answer); err != nil {
			t.Errorf("%v: answer %v out of range", e, r.Answer)
		}
	})
}
