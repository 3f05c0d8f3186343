package calculator_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/zephyrtronium/calculator"
	"github.com/zephyrtronium/calculator/arith"
)

func TestParamsKeys(t *testing.T) {
	_, err := calculator.NewParams(calculator.SetVar(calculator.Pi, arith.FromInt64(3)))
	var ke *calculator.VariableKeyError
	if !errors.As(err, &ke) {
		t.Fatalf("expected key error, got %v", err)
	}
	if ke.Unit != calculator.Pi {
		t.Errorf("wrong unit %v", ke.Unit)
	}
	_, err = calculator.NewParams(calculator.SetVars(map[calculator.Unit]arith.Complex{
		calculator.X:    arith.FromInt64(1),
		calculator.Plus: arith.FromInt64(2),
		calculator.Sin:  arith.FromInt64(3),
	}))
	if !errors.As(err, &ke) {
		t.Fatalf("expected key error, got %v", err)
	}
	if ke.Unit != calculator.Plus {
		t.Errorf("wrong unit %v", ke.Unit)
	}
}

func TestParamsLookup(t *testing.T) {
	p, err := calculator.NewParams(
		calculator.Angle(arith.Deg),
		calculator.SetVar(calculator.Y, arith.FromInt64(0)),
		calculator.SetVars(map[calculator.Unit]arith.Complex{
			calculator.Gamma: arith.I,
			calculator.A:     arith.FromInt64(5),
		}),
	)
	if err != nil {
		t.Fatal(err)
	}
	if p.AngleUnit() != arith.Deg {
		t.Errorf("wrong angle unit %v", p.AngleUnit())
	}
	if v, ok := p.Lookup(calculator.Y); !ok || !v.IsZero() {
		t.Errorf("Y: want bound 0, got %v, %t", v, ok)
	}
	if _, ok := p.Lookup(calculator.X); ok {
		t.Error("X is bound")
	}
	if want := []calculator.Unit{calculator.Y, calculator.A, calculator.Gamma}; !slices.Equal(p.Variables(), want) {
		t.Errorf("variables: want %v, got %v", want, p.Variables())
	}
	q, err := p.With(calculator.Angle(arith.Rad), calculator.Unset(calculator.Y))
	if err != nil {
		t.Fatal(err)
	}
	if p.AngleUnit() != arith.Deg || q.AngleUnit() != arith.Rad {
		t.Error("With changed its receiver")
	}
	if _, ok := q.Lookup(calculator.Y); ok {
		t.Error("Y still bound after Unset")
	}
	if _, ok := p.Lookup(calculator.Y); !ok {
		t.Error("Unset changed the receiver")
	}
}

func TestParamsRoundsValues(t *testing.T) {
	v := num(t, "1.00000000000000000000000000000000000000000000000000000000000000001")
	p, err := calculator.NewParams(calculator.SetVar(calculator.X, v))
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := p.Lookup(calculator.X); !got.Equal(arith.FromInt64(1)) {
		t.Errorf("want 1, got %v", got)
	}
	if _, err := calculator.NewParams(calculator.SetVar(calculator.X, num(t, "1e10000"))); calculator.KindOf(err) != calculator.KindOutOfRange {
		t.Errorf("want range error, got %v", err)
	}
}

func TestParamsEqual(t *testing.T) {
	var nilp *calculator.Params
	p, _ := calculator.NewParams()
	if !nilp.Equal(p) || !p.Equal(nilp) {
		t.Error("nil params differ from empty params")
	}
	q, _ := p.WithAnswer(num(t, "2.50"))
	r, _ := p.WithAnswer(num(t, "2.5"))
	if !q.Equal(r) {
		t.Error("equal answers differ")
	}
	if q.Equal(p) {
		t.Error("answer ignored")
	}
	s, _ := r.With(calculator.Angle(arith.Deg))
	if s.Equal(r) {
		t.Error("angle ignored")
	}
}
