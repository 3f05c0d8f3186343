package calculator

import (
	"slices"
	"strconv"
	"strings"
)

// Expression is an immutable sequence of units. The zero value is the empty
// expression.
type Expression struct {
	units []Unit
}

// NewExpression creates an expression from a sequence of units. It returns an
// *InvalidUnitError if any unit is outside the vocabulary.
func NewExpression(units ...Unit) (Expression, error) {
	for i, u := range units {
		if !u.Valid() {
			return Expression{}, &InvalidUnitError{Index: i, Unit: u}
		}
	}
	return Expression{units: slices.Clone(units)}, nil
}

// MustExpression is like NewExpression but panics on an invalid unit.
func MustExpression(units ...Unit) Expression {
	e, err := NewExpression(units...)
	if err != nil {
		panic("calculator: " + err.Error())
	}
	return e
}

// ParseStrings creates an expression from display strings, as produced by
// Strings.
func ParseStrings(s []string) (Expression, error) {
	units := make([]Unit, len(s))
	for i, d := range s {
		u, ok := Lookup(d)
		if !ok {
			return Expression{}, &InvalidUnitError{Index: i, Text: d}
		}
		units[i] = u
	}
	return Expression{units: units}, nil
}

// Len returns the number of units in e.
func (e Expression) Len() int {
	return len(e.units)
}

// At returns the unit at index i. It panics if i is out of range.
func (e Expression) At(i int) Unit {
	return e.units[i]
}

// Units returns a copy of the units of e.
func (e Expression) Units() []Unit {
	return slices.Clone(e.units)
}

// Insert returns a new expression with units inserted before index i.
// Inserting at e.Len() appends. It panics if i is out of range.
func (e Expression) Insert(i int, units ...Unit) (Expression, error) {
	if i < 0 || i > len(e.units) {
		panic("calculator: Insert index " + strconv.Itoa(i) + " out of range for expression of length " + strconv.Itoa(len(e.units)))
	}
	for k, u := range units {
		if !u.Valid() {
			return Expression{}, &InvalidUnitError{Index: i + k, Unit: u}
		}
	}
	r := make([]Unit, 0, len(e.units)+len(units))
	r = append(r, e.units[:i]...)
	r = append(r, units...)
	r = append(r, e.units[i:]...)
	return Expression{units: r}, nil
}

// Delete returns a new expression without the unit at index i. It panics if i
// is out of range.
func (e Expression) Delete(i int) Expression {
	if i < 0 || i >= len(e.units) {
		panic("calculator: Delete index " + strconv.Itoa(i) + " out of range for expression of length " + strconv.Itoa(len(e.units)))
	}
	return Expression{units: slices.Delete(slices.Clone(e.units), i, i+1)}
}

// Equal returns whether e and f contain the same units in the same order.
func (e Expression) Equal(f Expression) bool {
	return slices.Equal(e.units, f.units)
}

// Strings returns the display strings of the units of e.
func (e Expression) Strings() []string {
	r := make([]string, len(e.units))
	for i, u := range e.units {
		r[i] = u.String()
	}
	return r
}

// String returns the concatenated display strings of e.
func (e Expression) String() string {
	var b strings.Builder
	for _, u := range e.units {
		b.WriteString(u.String())
	}
	return b.String()
}
