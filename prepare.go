package calculator

import (
	"slices"
	"strings"

	"github.com/zephyrtronium/calculator/arith"
)

// item is a token in a working sequence together with the 1-based index of
// the unit in the input expression that produced it.
type item struct {
	tok Token
	pos int
}

func (it item) unit() (Unit, bool) {
	u, ok := it.tok.(Unit)
	return u, ok
}

func (it item) num() (NumericToken, bool) {
	n, ok := it.tok.(NumericToken)
	return n, ok
}

func (it item) literal() bool {
	n, ok := it.tok.(NumericToken)
	return ok && n.Literal
}

// Prepare canonicalizes an expression for evaluation. The result has
// balanced brackets and no adjacent signs; digits, points, ᴇ, %, variables,
// and constants are all replaced by NumericTokens.
func Prepare(e Expression, p *Params) ([]Token, error) {
	items, err := prepare(e, p)
	if err != nil {
		return nil, err
	}
	r := make([]Token, len(items))
	for i, it := range items {
		r[i] = it.tok
	}
	return r, nil
}

func prepare(e Expression, p *Params) ([]item, error) {
	if e.Len() == 0 {
		return nil, syntaxErr(0, "empty expression")
	}
	s := make([]item, 0, e.Len())
	depth := 0
	for i, u := range e.units {
		switch u {
		case LeftBracket:
			depth++
		case RightBracket:
			depth--
			if depth < 0 {
				return nil, syntaxErr(i+1, "unmatched "+u.String())
			}
		}
		s = append(s, item{tok: u, pos: i + 1})
	}
	for range depth {
		s = append(s, item{tok: RightBracket, pos: e.Len()})
	}
	s = foldSigns(s)
	s, err := mergeLiterals(s)
	if err != nil {
		return nil, err
	}
	if s, err = resolveSci(s); err != nil {
		return nil, err
	}
	if s, err = resolvePercent(s); err != nil {
		return nil, err
	}
	return substitute(s, p)
}

// foldSigns collapses runs of signs: like signs become +, unlike become −.
func foldSigns(s []item) []item {
	for i := 0; i < len(s)-1; i++ {
		a, ok := s[i].unit()
		if !ok || !a.IsPlusOrMinus() {
			continue
		}
		b, ok := s[i+1].unit()
		if !ok || !b.IsPlusOrMinus() {
			continue
		}
		r := Plus
		if a != b {
			r = Minus
		}
		s[i].tok = r
		s = slices.Delete(s, i+1, i+2)
		i--
	}
	return s
}

// mergeLiterals replaces each maximal run of digits and points with a literal
// NumericToken.
func mergeLiterals(s []item) ([]item, error) {
	for i := 0; i < len(s); i++ {
		if u, ok := s[i].unit(); !ok || !u.IsDigitOrPoint() {
			continue
		}
		var b strings.Builder
		j := i
		for ; j < len(s); j++ {
			u, ok := s[j].unit()
			if !ok || !u.IsDigitOrPoint() {
				break
			}
			b.WriteString(u.String())
		}
		v, err := parseLiteral(b.String())
		if err != nil {
			return nil, syntaxErr(s[i].pos, "malformed number "+b.String())
		}
		v, err = arith.Finish(v, nil)
		if err != nil {
			return nil, err
		}
		s = slices.Replace(s, i, j, item{tok: NumericToken{Value: v, Literal: true}, pos: s[i].pos})
	}
	return s, nil
}

// parseLiteral parses a run of digits with at most one point. A point may
// lead or trail the digits but may not stand alone.
func parseLiteral(t string) (arith.Complex, error) {
	if strings.Count(t, ".") > 1 || t == "." {
		return arith.Complex{}, &arith.ParseError{Text: t}
	}
	t = strings.TrimSuffix(t, ".")
	if strings.HasPrefix(t, ".") {
		t = "0" + t
	}
	return arith.ParseReal(t)
}

// resolveSci evaluates scientific notation shorthand. The mantissa must be a
// literal and the exponent a literal, optionally with a sign.
func resolveSci(s []item) ([]item, error) {
	for i := 0; i < len(s); i++ {
		if u, ok := s[i].unit(); !ok || u != Sci {
			continue
		}
		if i == 0 || !s[i-1].literal() {
			return nil, syntaxErr(s[i].pos, "ᴇ without a number before it")
		}
		end := i + 2
		neg := false
		if i+1 < len(s) {
			if u, ok := s[i+1].unit(); ok && u.IsPlusOrMinus() {
				neg = u == Minus
				end++
			}
		}
		if end > len(s) || !s[end-1].literal() {
			return nil, syntaxErr(s[i].pos, "ᴇ without an exponent after it")
		}
		x, _ := s[i-1].num()
		n, _ := s[end-1].num()
		exp := n.Value
		if neg {
			exp = arith.Neg(exp)
		}
		v, err := arith.ScaleByPowerOfTen(x.Value, exp)
		if err != nil {
			return nil, err
		}
		s = slices.Replace(s, i-1, end, item{tok: NumericToken{Value: v}, pos: s[i-1].pos})
		i--
	}
	return s, nil
}

// resolvePercent evaluates percent shorthand directly after a literal.
func resolvePercent(s []item) ([]item, error) {
	for i := 0; i < len(s); i++ {
		if u, ok := s[i].unit(); !ok || u != Percent {
			continue
		}
		if i == 0 || !s[i-1].literal() {
			return nil, syntaxErr(s[i].pos, "% without a number before it")
		}
		x, _ := s[i-1].num()
		v, err := arith.Percent(x.Value)
		if err != nil {
			return nil, err
		}
		s = slices.Replace(s, i-1, i+1, item{tok: NumericToken{Value: v}, pos: s[i-1].pos})
		i--
	}
	return s, nil
}

// substitute replaces variables with their bound values and constants with
// their values.
func substitute(s []item, p *Params) ([]item, error) {
	for i, it := range s {
		u, ok := it.unit()
		if !ok {
			continue
		}
		switch {
		case u.IsVariable():
			v, ok := p.Lookup(u)
			if !ok {
				return nil, &UnboundError{Var: u}
			}
			s[i].tok = NumericToken{Value: v}
		case u.IsConstant():
			v, _ := u.Value()
			s[i].tok = NumericToken{Value: v}
		}
	}
	return s, nil
}
