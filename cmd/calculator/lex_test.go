package main

import (
	"errors"
	"io"
	"slices"
	"testing"

	"github.com/zephyrtronium/calculator"
)

func TestLex(t *testing.T) {
	type U = calculator.Unit
	cases := []struct {
		src   string
		units []U
		err   int // column of expected error, or 0
	}{
		// spaces
		{"", nil, 0},
		{" \t \r\n ", nil, 0},
		// numbers
		{"0", []U{calculator.Zero}, 0},
		{"12.5", []U{calculator.One, calculator.Two, calculator.Point, calculator.Five}, 0},
		{"1 0", []U{calculator.One, calculator.Zero}, 0},
		{"１２", []U{calculator.One, calculator.Two}, 0},
		{"1.5E-3", []U{calculator.One, calculator.Point, calculator.Five, calculator.Sci, calculator.Minus, calculator.Three}, 0},
		{"2e3", []U{calculator.Two, calculator.E, calculator.Three}, 0},
		// operators
		{"1+2−3-4", []U{calculator.One, calculator.Plus, calculator.Two, calculator.Minus, calculator.Three, calculator.Minus, calculator.Four}, 0},
		{"2*3×4·5", []U{calculator.Two, calculator.Times, calculator.Three, calculator.Times, calculator.Four, calculator.Times, calculator.Five}, 0},
		{"2**3^4", []U{calculator.Two, calculator.Power, calculator.Three, calculator.Power, calculator.Four}, 0},
		{"5nCr2", []U{calculator.Five, calculator.NCr, calculator.Two}, 0},
		{"2 root 9", []U{calculator.Two, calculator.Root, calculator.Nine}, 0},
		// functions
		{"sinh x", nil, 6},
		{"sinh X", []U{calculator.Sinh, calculator.X}, 0},
		{"asin1", []U{calculator.Asin, calculator.One}, 0},
		{"sin⁻¹1", []U{calculator.Asin, calculator.One}, 0},
		{"log2 8", []U{calculator.Log2, calculator.Eight}, 0},
		{"log 8", []U{calculator.Log, calculator.Eight}, 0},
		{"3!%", []U{calculator.Three, calculator.Factorial, calculator.Percent}, 0},
		{"3 squared", []U{calculator.Three, calculator.Squared}, 0},
		// constants and variables
		{"pi", []U{calculator.Pi}, 0},
		{"π2", []U{calculator.Pi, calculator.Two}, 0},
		{"hbar", []U{calculator.PlanckReduced}, 0},
		{"h", []U{calculator.Planck}, 0},
		{"mpMeV", []U{calculator.ProtonMassMeV}, 0},
		{"mp", []U{calculator.ProtonMass}, 0},
		{"ans+Ans", []U{calculator.Ans, calculator.Plus, calculator.Ans}, 0},
		{"alpha β", []U{calculator.Alpha, calculator.Beta}, 0},
		{"i", []U{calculator.I}, 0},
		// brackets
		{"[1]", []U{calculator.LeftBracket, calculator.One, calculator.RightBracket}, 0},
		{"{(}", []U{calculator.LeftBracket, calculator.LeftBracket, calculator.RightBracket}, 0},
		// erroneous symbols
		{"$", nil, 1},
		{"1 $", nil, 3},
		{"sin ☃", nil, 5},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			l := lex(c.src)
			var got []calculator.Unit
			for {
				u, err := l.next()
				if err == io.EOF {
					break
				}
				if err != nil {
					var lerr *LexError
					if !errors.As(err, &lerr) {
						t.Fatalf("wrong error type %T: %v", err, err)
					}
					if lerr.Col != c.err {
						t.Errorf("want error at %d, got %v", c.err, err)
					}
					return
				}
				got = append(got, u)
			}
			if c.err != 0 {
				t.Errorf("no error; got %v", got)
			}
			if !slices.Equal(got, c.units) {
				t.Errorf("want %v, got %v", c.units, got)
			}
		})
	}
}

func TestScan(t *testing.T) {
	e, err := scan("2*(3+4")
	if err != nil {
		t.Fatal(err)
	}
	if got := e.String(); got != "2×(3+4" {
		t.Errorf("wrong display %q", got)
	}
	if _, err := scan("2+@"); err == nil {
		t.Error("no error")
	} else if err.(calculator.InputError).Pos() != 3 {
		t.Errorf("wrong position: %v", err)
	}
}

func TestSpellings(t *testing.T) {
	// Every unit is reachable by its display and its name.
	for _, u := range calculator.Vocabulary() {
		for _, s := range []string{u.String(), u.Name()} {
			e, err := scan(s)
			if err != nil {
				t.Errorf("%s: %v", s, err)
				continue
			}
			if e.Len() != 1 || e.At(0) != u {
				t.Errorf("%s: want %v, got %v", s, u, e)
			}
		}
	}
}
