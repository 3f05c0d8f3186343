package calculator

import "github.com/zephyrtronium/calculator/arith"

type (
	monadicFunc func(x arith.Complex, angle arith.AngleUnit) (arith.Complex, error)
	dyadicFunc  func(x, y arith.Complex) (arith.Complex, error)
)

// radian adapts a function that does not depend on the angle unit.
func radian(f func(arith.Complex) (arith.Complex, error)) monadicFunc {
	return func(x arith.Complex, _ arith.AngleUnit) (arith.Complex, error) {
		return f(x)
	}
}

// monadic maps prefix and postfix functions to their implementations.
var monadic = map[Unit]monadicFunc{
	Abs: radian(arith.Abs),
	Arg: arith.Arg,
	Conj: func(x arith.Complex, _ arith.AngleUnit) (arith.Complex, error) {
		return arith.Conj(x), nil
	},
	Sqrt:  radian(arith.Sqrt),
	Ln:    radian(arith.Ln),
	Log:   radian(arith.Log10),
	Log2:  radian(arith.Log2),
	Sin:   arith.Sin,
	Cos:   arith.Cos,
	Tan:   arith.Tan,
	Csc:   arith.Csc,
	Sec:   arith.Sec,
	Cot:   arith.Cot,
	Asin:  arith.Asin,
	Acos:  arith.Acos,
	Atan:  arith.Atan,
	Sinh:  radian(arith.Sinh),
	Cosh:  radian(arith.Cosh),
	Tanh:  radian(arith.Tanh),
	Asinh: radian(arith.Asinh),
	Acosh: radian(arith.Acosh),
	Atanh: radian(arith.Atanh),

	Factorial: radian(arith.Factorial),
	Percent:   radian(arith.Percent),
	Squared:   radian(arith.Square),
	Cubed:     radian(arith.Cube),
	Inverse:   radian(arith.Inverse),
}

// dyadic maps binary operators to their implementations. The first argument
// is the left operand.
var dyadic = map[Unit]dyadicFunc{
	Plus:   arith.Add,
	Minus:  arith.Sub,
	Times:  arith.Mul,
	Divide: arith.Quo,
	Power:  arith.Pow,
	Sci:    arith.ScaleByPowerOfTen,
	// The degree of a root is written on the left.
	Root: func(n, x arith.Complex) (arith.Complex, error) { return arith.Root(x, n) },
	NPr:  arith.Permutation,
	NCr:  arith.Combination,
}
