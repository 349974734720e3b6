// Package dual implements dual numbers for forward-mode automatic differentiation.
//
// A Dual carries a value together with its derivative with respect to one
// input. The input is seeded with Variable(x), constants with Constant(c), and
// every operation propagates the derivative by the chain rule:
//
//	x := dual.Variable(1.5)
//	l, err := x.Log()
//	if err != nil {
//		return err
//	}
//	y := x.Sin().Add(l) // y.Dual() == cos(1.5) + 1/1.5
//
// Div, Pow, Log, Sqrt, Asin and Acos return an error for arguments outside
// their domain instead of NaN or Inf. Overflow is not checked: Exp of a large
// value or Tan near pi/2 still give Inf or huge values.
package dual
