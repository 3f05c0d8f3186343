package calculator

import (
	"maps"
	"slices"

	"github.com/zephyrtronium/calculator/arith"
)

// Params holds the angle unit and variable bindings for a calculation. Params
// are immutable once created. A nil *Params measures angles in radians and
// binds no variables.
type Params struct {
	angle arith.AngleUnit
	vars  map[Unit]arith.Complex
}

// ParamsOption is an option used when creating Params.
type ParamsOption interface {
	paramsOption()
}

type (
	angleopt arith.AngleUnit
	varopt   struct {
		u Unit
		v arith.Complex
	}
	varsopt map[Unit]arith.Complex
	unsetopt Unit
)

func (angleopt) paramsOption() {}
func (varopt) paramsOption()   {}
func (varsopt) paramsOption()  {}
func (unsetopt) paramsOption() {}

// Angle sets the unit of angles for trigonometric functions.
func Angle(u arith.AngleUnit) ParamsOption {
	return angleopt(u)
}

// SetVar binds a value to a variable.
func SetVar(u Unit, v arith.Complex) ParamsOption {
	return varopt{u, v}
}

// SetVars binds values to any number of variables.
func SetVars(vars map[Unit]arith.Complex) ParamsOption {
	return varsopt(vars)
}

// Unset removes the binding of a variable.
func Unset(u Unit) ParamsOption {
	return unsetopt(u)
}

// NewParams creates Params with the given options. It returns a
// *VariableKeyError if any option binds a unit that is not a variable, or an
// error from arith if a bound value is out of range.
func NewParams(opts ...ParamsOption) (*Params, error) {
	return (*Params)(nil).With(opts...)
}

// With creates a copy of p and applies options to it.
func (p *Params) With(opts ...ParamsOption) (*Params, error) {
	n := Params{vars: make(map[Unit]arith.Complex)}
	if p != nil {
		n.angle = p.angle
		maps.Copy(n.vars, p.vars)
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case angleopt:
			n.angle = arith.AngleUnit(opt)
		case varopt:
			if err := n.bind(opt.u, opt.v); err != nil {
				return nil, err
			}
		case varsopt:
			// Bind in unit order so that the error for several bad keys is
			// deterministic.
			for _, u := range slices.Sorted(maps.Keys(opt)) {
				if err := n.bind(u, opt[u]); err != nil {
					return nil, err
				}
			}
		case unsetopt:
			delete(n.vars, Unit(opt))
		default:
			panic("calculator: unknown option type")
		}
	}
	return &n, nil
}

func (p *Params) bind(u Unit, v arith.Complex) error {
	if !u.IsVariable() {
		return &VariableKeyError{Unit: u}
	}
	v, err := arith.Finish(v, nil)
	if err != nil {
		return err
	}
	p.vars[u] = v
	return nil
}

// WithAnswer returns a copy of p with Ans bound to v.
func (p *Params) WithAnswer(v arith.Complex) (*Params, error) {
	return p.With(SetVar(Ans, v))
}

// AngleUnit returns the unit of angles.
func (p *Params) AngleUnit() arith.AngleUnit {
	if p == nil {
		return arith.Rad
	}
	return p.angle
}

// Lookup returns the value bound to a variable. The second result is false if
// the variable is unbound.
func (p *Params) Lookup(u Unit) (arith.Complex, bool) {
	if p == nil {
		return arith.Complex{}, false
	}
	v, ok := p.vars[u]
	return v, ok
}

// Variables returns the bound variables in unit order.
func (p *Params) Variables() []Unit {
	if p == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(p.vars))
}

// Equal returns whether p and q have the same angle unit and bindings.
func (p *Params) Equal(q *Params) bool {
	if p.AngleUnit() != q.AngleUnit() {
		return false
	}
	pv, qv := p.Variables(), q.Variables()
	if !slices.Equal(pv, qv) {
		return false
	}
	for _, u := range pv {
		a, _ := p.Lookup(u)
		b, _ := q.Lookup(u)
		if !a.Equal(b) {
			return false
		}
	}
	return true
}
