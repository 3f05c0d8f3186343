package store_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/zephyrtronium/calculator"
	"github.com/zephyrtronium/calculator/arith"
	"github.com/zephyrtronium/calculator/store"
)

func open(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "calc.db"), nil)
	if err != nil {
		t.Fatalf("couldn't open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestHistoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := open(t)
	e := calculator.MustExpression(calculator.Two, calculator.Times, calculator.X, calculator.Plus, calculator.Sin, calculator.Pi)
	p, err := calculator.NewParams(calculator.Angle(arith.Deg), calculator.SetVar(calculator.X, arith.FromInt64(21)))
	if err != nil {
		t.Fatal(err)
	}
	r, err := calculator.Calculate(e, p)
	if err != nil {
		t.Fatal(err)
	}
	added, err := s.AddResult(ctx, r)
	if err != nil {
		t.Fatalf("couldn't add result: %v", err)
	}
	if added.ID == "" {
		t.Error("empty id")
	}
	got, err := s.Newest(ctx)
	if err != nil {
		t.Fatalf("couldn't get newest: %v", err)
	}
	if got.ID != added.ID || got.Position != added.Position {
		t.Errorf("wrong entry: want %s at %d, got %s at %d", added.ID, added.Position, got.ID, got.Position)
	}
	if !got.Input.Equal(e) {
		t.Errorf("wrong input: want %v, got %v", e, got.Input)
	}
	if !got.Params.Equal(p) {
		t.Errorf("wrong params: want %v, got %v", p, got.Params)
	}
	if !got.Answer.Equal(r.Answer) {
		t.Errorf("wrong answer: want %v, got %v", r.Answer, got.Answer)
	}
	// Recalculating the stored entry reproduces the answer.
	again, err := calculator.Calculate(got.Input, got.Params)
	if err != nil {
		t.Fatalf("couldn't recalculate: %v", err)
	}
	if !again.Answer.Equal(r.Answer) {
		t.Errorf("recalculation gave %v, want %v", again.Answer, r.Answer)
	}
}

func TestHistoryOrder(t *testing.T) {
	ctx := context.Background()
	s := open(t)
	digits := []calculator.Unit{calculator.One, calculator.Two, calculator.Three}
	var ids []string
	for _, d := range digits {
		r, err := calculator.Calculate(calculator.MustExpression(d), nil)
		if err != nil {
			t.Fatal(err)
		}
		if err := s.Record(ctx, r); err != nil {
			t.Fatalf("couldn't record: %v", err)
		}
		e, err := s.Newest(ctx)
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, e.ID)
	}
	h, err := s.History(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(h) != 3 {
		t.Fatalf("want 3 entries, got %d", len(h))
	}
	for i, e := range h {
		if want := ids[len(ids)-1-i]; e.ID != want {
			t.Errorf("entry %d: want %s, got %s", i, want, e.ID)
		}
	}
	h, err = s.History(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(h) != 2 || h[0].ID != ids[2] {
		t.Errorf("limited history wrong: %+v", h)
	}

	if err := s.Delete(ctx, ids[2]); err != nil {
		t.Fatalf("couldn't delete: %v", err)
	}
	if err := s.Delete(ctx, ids[2]); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("second delete: want ErrNotFound, got %v", err)
	}
	e, err := s.Newest(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if e.ID != ids[1] {
		t.Errorf("newest after delete: want %s, got %s", ids[1], e.ID)
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Newest(ctx); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("newest after clear: want ErrNotFound, got %v", err)
	}
}

func TestManagerHistory(t *testing.T) {
	ctx := context.Background()
	s := open(t)
	m := calculator.NewManager(nil, nil, s)
	defer m.Close()
	o, ok := m.Calculate(ctx, calculator.MustExpression(calculator.Four, calculator.Squared))
	if !ok || o.Err != nil {
		t.Fatalf("couldn't calculate: %t %v", ok, o.Err)
	}
	e, err := s.Newest(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !e.Answer.Equal(arith.FromInt64(16)) {
		t.Errorf("want 16, got %v", e.Answer)
	}
}

func TestVariables(t *testing.T) {
	ctx := context.Background()
	s := open(t)
	if err := s.PopulateDefaults(ctx); err != nil {
		t.Fatal(err)
	}
	vars, err := s.Variables(ctx)
	if err != nil {
		t.Fatal(err)
	}
	want := calculator.Variables()
	if len(vars) != len(want) {
		t.Fatalf("want %d variables, got %d", len(want), len(vars))
	}
	for i, v := range vars {
		if v.Unit != want[i] || v.Order != i || !v.Value.IsZero() {
			t.Errorf("variable %d: want %v = 0 at %d, got %v = %v at %d", i, want[i], i, v.Unit, v.Value, v.Order)
		}
	}

	seven := arith.FromInt64(7)
	if err := s.SetVariable(ctx, calculator.Beta, seven); err != nil {
		t.Fatal(err)
	}
	// Populating again leaves set values alone.
	if err := s.PopulateDefaults(ctx); err != nil {
		t.Fatal(err)
	}
	p, err := s.Params(ctx, arith.Deg)
	if err != nil {
		t.Fatal(err)
	}
	if p.AngleUnit() != arith.Deg {
		t.Errorf("wrong angle unit %v", p.AngleUnit())
	}
	if v, ok := p.Lookup(calculator.Beta); !ok || !v.Equal(seven) {
		t.Errorf("β: want 7, got %v, %t", v, ok)
	}
	if v, ok := p.Lookup(calculator.X); !ok || !v.IsZero() {
		t.Errorf("X: want 0, got %v, %t", v, ok)
	}

	var verr *calculator.VariableKeyError
	if err := s.SetVariable(ctx, calculator.Pi, seven); !errors.As(err, &verr) {
		t.Errorf("setting π: want VariableKeyError, got %v", err)
	}
}
