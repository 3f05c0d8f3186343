package calculator

import (
	"errors"
	"strconv"

	"github.com/zephyrtronium/calculator/arith"
)

// SyntaxError is an error indicating a token sequence that does not form a
// valid expression. It implements InputError.
type SyntaxError struct {
	// Col is the 1-based index of the unit at which the error was detected,
	// or 0 if the error concerns the expression as a whole.
	Col int
	// Msg describes the problem.
	Msg string
}

func (err *SyntaxError) Error() string {
	return errpos(err.Col, err.Msg)
}

func (err *SyntaxError) Pos() int {
	return err.Col
}

func syntaxErr(col int, msg string) error {
	return &SyntaxError{Col: col, Msg: msg}
}

// DepthError is an error indicating an expression nested more deeply than
// MaxDepth. It is a syntax error and implements InputError.
type DepthError struct {
	// Col is the position of the scope that exceeded the limit.
	Col int
	// Max is the depth limit.
	Max int
}

func (err *DepthError) Error() string {
	return errpos(err.Col, "expression nested deeper than "+strconv.Itoa(err.Max))
}

func (err *DepthError) Pos() int {
	return err.Col
}

// UnboundError is an error indicating a variable with no value.
type UnboundError struct {
	// Var is the unbound variable.
	Var Unit
}

func (err *UnboundError) Error() string {
	return "no value for variable " + err.Var.String()
}

// InvalidUnitError is an error indicating a value of type Unit that is not in
// the vocabulary, or a display string that names no unit.
type InvalidUnitError struct {
	// Index is the 0-based position of the offending element.
	Index int
	// Unit is the invalid unit, if the error arose from a Unit value.
	Unit Unit
	// Text is the unknown display string, if the error arose from text.
	Text string
}

func (err *InvalidUnitError) Error() string {
	if err.Text != "" {
		return "unknown unit " + strconv.Quote(err.Text) + " at index " + strconv.Itoa(err.Index)
	}
	return "invalid unit " + strconv.Itoa(int(err.Unit)) + " at index " + strconv.Itoa(err.Index)
}

// VariableKeyError is an error indicating an attempt to bind a value to a
// unit that is not a variable.
type VariableKeyError struct {
	Unit Unit
}

func (err *VariableKeyError) Error() string {
	return "cannot bind " + strconv.Quote(err.Unit.String()) + ": not a variable"
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information.
type InputError interface {
	error
	// Pos returns the 1-based index of the unit at which the error was
	// detected, or 0 if the error concerns the whole expression.
	Pos() int
}

var (
	_ InputError = (*SyntaxError)(nil)
	_ InputError = (*DepthError)(nil)
)

// Kind classifies calculation errors.
type Kind int

//go:generate stringer -type Kind -trimprefix Kind

const (
	// KindNone is the kind of a nil error and of errors that do not arise
	// from calculation.
	KindNone Kind = iota
	// KindSyntax is the kind of errors from malformed expressions.
	KindSyntax
	// KindUnbound is the kind of errors from variables with no value.
	KindUnbound
	// KindUndefined is the kind of errors from mathematically undefined
	// results, such as division by zero.
	KindUndefined
	// KindOutOfRange is the kind of errors from results whose exponent is
	// beyond arith.MaxExponent.
	KindOutOfRange
)

// KindOf classifies err. It sees through wrapped errors.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	var (
		syn *SyntaxError
		dep *DepthError
		unb *UnboundError
		dom *arith.DomainError
		rng *arith.RangeError
	)
	switch {
	case errors.As(err, &syn), errors.As(err, &dep):
		return KindSyntax
	case errors.As(err, &unb):
		return KindUnbound
	case errors.As(err, &dom):
		return KindUndefined
	case errors.As(err, &rng):
		return KindOutOfRange
	}
	return KindNone
}
