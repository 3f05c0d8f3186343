package calculator

import (
	"context"

	"github.com/zephyrtronium/calculator/arith"
)

// Calculate evaluates an expression. Errors are classified by KindOf: a
// malformed expression gives a *SyntaxError or *DepthError, a variable with
// no value in p gives an *UnboundError, and failures of arithmetic give an
// *arith.DomainError or *arith.RangeError.
//
// A nil p measures angles in radians and binds no variables.
func Calculate(e Expression, p *Params) (*Result, error) {
	if e.Len() == 0 {
		return nil, syntaxErr(0, "empty expression")
	}
	for _, u := range e.units {
		if !u.IsVariable() {
			continue
		}
		if _, ok := p.Lookup(u); !ok {
			return nil, &UnboundError{Var: u}
		}
	}
	if err := precheck(e.units); err != nil {
		return nil, err
	}
	s, err := prepare(e, p)
	if err != nil {
		return nil, err
	}
	ev := evaluator{angle: p.AngleUnit()}
	v, err := ev.eval(s, 0)
	if err != nil {
		return nil, err
	}
	v, err = arith.Finish(v, nil)
	if err != nil {
		return nil, err
	}
	if p == nil {
		p = &Params{vars: map[Unit]arith.Complex{}}
	}
	return &Result{Input: e, Answer: v, Params: p}, nil
}

// CalculateContext is like Calculate, but returns the context's error instead
// if ctx is done before or after the calculation. The calculation itself is
// not interrupted.
func CalculateContext(ctx context.Context, e Expression, p *Params) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r, err := Calculate(e, p)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r, err
}

// precheck rejects structurally invalid input before preparation.
func precheck(units []Unit) error {
	n := len(units)
	first, last := units[0], units[n-1]
	switch {
	case first == RightBracket:
		return syntaxErr(1, "unmatched "+first.String())
	case last == LeftBracket:
		return syntaxErr(n, "unmatched "+last.String())
	case last.IsOperator():
		return syntaxErr(n, last.String()+" without a right operand")
	case first.IsOperator() && !first.IsPlusOrMinus():
		return syntaxErr(1, first.String()+" without a left operand")
	case first.IsPostFunction():
		return syntaxErr(1, first.String()+" without an argument")
	case last.IsPreFunction():
		return syntaxErr(n, last.String()+" without an argument")
	}
	for i := 0; i < n-1; i++ {
		a, b := units[i], units[i+1]
		switch {
		case a == Point && b == Point:
			return syntaxErr(i+2, "malformed number")
		case a == LeftBracket && b == RightBracket:
			return syntaxErr(i+1, "empty brackets")
		case b == Percent && !a.IsDigitOrPoint():
			return syntaxErr(i+2, b.String()+" without a number before it")
		case b == Sci && !a.IsDigitOrPoint():
			return syntaxErr(i+2, b.String()+" without a number before it")
		case a == Sci && !b.IsDigitOrPlusOrMinus():
			return syntaxErr(i+2, a.String()+" without an exponent after it")
		case a == Sci:
			k := i + 1
			for k < n && units[k].IsPlusOrMinus() {
				k++
			}
			if k == n || !units[k].IsDigit() {
				return syntaxErr(min(k+1, n), a.String()+" without an exponent after it")
			}
		}
	}
	return nil
}
