package calculator

import (
	"slices"

	"github.com/zephyrtronium/calculator/arith"
)

// MaxDepth is the deepest nesting of brackets and function scopes that an
// expression may have.
const MaxDepth = 256

// evaluator reduces prepared token sequences to values.
type evaluator struct {
	angle arith.AngleUnit
}

// eval reduces a prepared sequence to a single value. The passes run in
// order of precedence; each rescans from the left after every reduction. s
// is not modified.
func (ev *evaluator) eval(s []item, depth int) (arith.Complex, error) {
	if len(s) == 0 {
		return arith.Complex{}, syntaxErr(0, "empty expression")
	}
	if depth > MaxDepth {
		return arith.Complex{}, &DepthError{Col: s[0].pos, Max: MaxDepth}
	}
	s = slices.Clone(s)
	var err error
	if s, err = ev.brackets(s, depth); err != nil {
		return arith.Complex{}, err
	}
	if s, err = ev.postfix(s); err != nil {
		return arith.Complex{}, err
	}
	if s, err = binary(s, isUnit(Power)); err != nil {
		return arith.Complex{}, err
	}
	if s, err = binary(s, isUnit(Root)); err != nil {
		return arith.Complex{}, err
	}
	if s, err = ev.prefix(s, depth); err != nil {
		return arith.Complex{}, err
	}
	if s, err = juxtapose(s); err != nil {
		return arith.Complex{}, err
	}
	if s, err = binary(s, Unit.IsPermutationOrCombination); err != nil {
		return arith.Complex{}, err
	}
	if s, err = binary(s, Unit.IsTimesOrDivide); err != nil {
		return arith.Complex{}, err
	}
	if s, err = addsub(s); err != nil {
		return arith.Complex{}, err
	}
	if len(s) != 1 {
		return arith.Complex{}, syntaxErr(s[1].pos, "unexpected "+describe(s[1]))
	}
	n, ok := s[0].num()
	if !ok {
		return arith.Complex{}, syntaxErr(s[0].pos, "unexpected "+describe(s[0]))
	}
	return n.Value, nil
}

func isUnit(u Unit) func(Unit) bool {
	return func(v Unit) bool { return u == v }
}

// describe names a token for an error message.
func describe(it item) string {
	if u, ok := it.unit(); ok {
		return u.String()
	}
	return "number"
}

// numeric wraps a computed value.
func numeric(v arith.Complex, pos int) item {
	return item{tok: NumericToken{Value: v}, pos: pos}
}

// brackets evaluates each bracketed span recursively.
func (ev *evaluator) brackets(s []item, depth int) ([]item, error) {
	for i := 0; i < len(s); i++ {
		u, ok := s[i].unit()
		if !ok {
			continue
		}
		switch u {
		case RightBracket:
			return nil, syntaxErr(s[i].pos, "unmatched "+u.String())
		case LeftBracket:
			// handled below
		default:
			continue
		}
		j, d := i+1, 1
		for ; j < len(s); j++ {
			switch v, _ := s[j].unit(); v {
			case LeftBracket:
				d++
			case RightBracket:
				d--
			}
			if d == 0 {
				break
			}
		}
		if j == len(s) {
			return nil, syntaxErr(s[i].pos, "unmatched "+u.String())
		}
		if j == i+1 {
			return nil, syntaxErr(s[i].pos, "empty brackets")
		}
		v, err := ev.eval(s[i+1:j], depth+1)
		if err != nil {
			return nil, err
		}
		s = slices.Replace(s, i, j+1, numeric(v, s[i].pos))
	}
	return s, nil
}

// postfix applies each postfix function to the value on its left.
func (ev *evaluator) postfix(s []item) ([]item, error) {
	for i := 0; i < len(s); i++ {
		u, ok := s[i].unit()
		if !ok || !u.IsPostFunction() {
			continue
		}
		if i == 0 {
			return nil, syntaxErr(s[i].pos, u.String()+" without an argument")
		}
		x, ok := s[i-1].num()
		if !ok {
			return nil, syntaxErr(s[i].pos, u.String()+" after "+describe(s[i-1]))
		}
		v, err := monadic[u](x.Value, ev.angle)
		if err != nil {
			return nil, err
		}
		s = slices.Replace(s, i-1, i+1, numeric(v, s[i-1].pos))
		i--
	}
	return s, nil
}

// binary applies each matching operator to the values on either side of it.
// The right operand may carry a sign.
func binary(s []item, match func(Unit) bool) ([]item, error) {
	for i := 0; i < len(s); i++ {
		u, ok := s[i].unit()
		if !ok || !match(u) {
			continue
		}
		if i == 0 {
			return nil, syntaxErr(s[i].pos, u.String()+" without a left operand")
		}
		x, ok := s[i-1].num()
		if !ok {
			return nil, syntaxErr(s[i].pos, u.String()+" after "+describe(s[i-1]))
		}
		end, neg := i+2, false
		if i+1 < len(s) {
			if v, ok := s[i+1].unit(); ok && v.IsPlusOrMinus() {
				end, neg = i+3, v == Minus
			}
		}
		if end > len(s) {
			return nil, syntaxErr(s[i].pos, u.String()+" without a right operand")
		}
		y, ok := s[end-1].num()
		if !ok {
			return nil, syntaxErr(s[end-1].pos, "unexpected "+describe(s[end-1])+" after "+u.String())
		}
		r := y.Value
		if neg {
			r = arith.Neg(r)
		}
		v, err := dyadic[u](x.Value, r)
		if err != nil {
			return nil, err
		}
		s = slices.Replace(s, i-1, end, numeric(v, s[i-1].pos))
		i--
	}
	return s, nil
}

// prefix applies each prefix function to its scope. The scope is the run of
// prefix functions and signs after it, up to and including the run of values
// that follows them.
func (ev *evaluator) prefix(s []item, depth int) ([]item, error) {
	for i := 0; i < len(s); i++ {
		u, ok := s[i].unit()
		if !ok || !u.IsPreFunction() {
			continue
		}
		j, seen := i+1, false
	scope:
		for ; j < len(s); j++ {
			switch t := s[j].tok.(type) {
			case NumericToken:
				seen = true
			case Unit:
				if seen || !(t.IsPreFunction() || t.IsPlusOrMinus()) {
					break scope
				}
			}
		}
		if !seen {
			return nil, syntaxErr(s[i].pos, u.String()+" without an argument")
		}
		x, err := ev.eval(s[i+1:j], depth+1)
		if err != nil {
			return nil, err
		}
		v, err := monadic[u](x, ev.angle)
		if err != nil {
			return nil, err
		}
		s = slices.Replace(s, i, j, numeric(v, s[i].pos))
	}
	return s, nil
}

// juxtapose multiplies adjacent values.
func juxtapose(s []item) ([]item, error) {
	for i := 0; i < len(s)-1; i++ {
		x, ok := s[i].num()
		if !ok {
			continue
		}
		y, ok := s[i+1].num()
		if !ok {
			continue
		}
		v, err := arith.Mul(x.Value, y.Value)
		if err != nil {
			return nil, err
		}
		s = slices.Replace(s, i, i+2, numeric(v, s[i].pos))
		i--
	}
	return s, nil
}

// addsub applies signs, as binary operators where a value precedes them and
// as unary operators otherwise.
func addsub(s []item) ([]item, error) {
	for i := 0; i < len(s); i++ {
		u, ok := s[i].unit()
		if !ok || !u.IsPlusOrMinus() {
			continue
		}
		if i+1 == len(s) {
			return nil, syntaxErr(s[i].pos, u.String()+" without a right operand")
		}
		y, ok := s[i+1].num()
		if !ok {
			return nil, syntaxErr(s[i+1].pos, "unexpected "+describe(s[i+1])+" after "+u.String())
		}
		if i > 0 {
			if x, ok := s[i-1].num(); ok {
				v, err := dyadic[u](x.Value, y.Value)
				if err != nil {
					return nil, err
				}
				s = slices.Replace(s, i-1, i+2, numeric(v, s[i-1].pos))
				i--
				continue
			}
		}
		v := y.Value
		if u == Minus {
			v = arith.Neg(v)
		}
		s = slices.Replace(s, i, i+2, numeric(v, s[i].pos))
	}
	return s, nil
}
