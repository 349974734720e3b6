package vector

import "github.com/neurlang/dualnum/dual"

// Add stores a + b in out.
func Add(out, a, b *Vector) error {
	return binary(out, a, b, func(x, y dual.Dual) (dual.Dual, error) { return x.Add(y), nil })
}

// Sub stores a - b in out.
func Sub(out, a, b *Vector) error {
	return binary(out, a, b, func(x, y dual.Dual) (dual.Dual, error) { return x.Sub(y), nil })
}

// Mul stores a * b in out.
func Mul(out, a, b *Vector) error {
	return binary(out, a, b, func(x, y dual.Dual) (dual.Dual, error) { return x.Mul(y), nil })
}

// Div stores a / b in out.
func Div(out, a, b *Vector) error {
	return binary(out, a, b, dual.Dual.Div)
}

// Pow stores a ** b in out.
func Pow(out, a, b *Vector) error {
	return binary(out, a, b, dual.Dual.Pow)
}

// Sin stores sin(a) in out.
func Sin(out, a *Vector) error {
	return unary(out, a, total(dual.Dual.Sin))
}

// Cos stores cos(a) in out.
func Cos(out, a *Vector) error {
	return unary(out, a, total(dual.Dual.Cos))
}

// Tan stores tan(a) in out.
func Tan(out, a *Vector) error {
	return unary(out, a, total(dual.Dual.Tan))
}

// Exp stores e**a in out.
func Exp(out, a *Vector) error {
	return unary(out, a, total(dual.Dual.Exp))
}

// Log stores the natural logarithm of a in out.
func Log(out, a *Vector) error {
	return unary(out, a, dual.Dual.Log)
}

// Sqrt stores the square root of a in out.
func Sqrt(out, a *Vector) error {
	return unary(out, a, dual.Dual.Sqrt)
}

// Sinh stores sinh(a) in out.
func Sinh(out, a *Vector) error {
	return unary(out, a, total(dual.Dual.Sinh))
}

// Cosh stores cosh(a) in out.
func Cosh(out, a *Vector) error {
	return unary(out, a, total(dual.Dual.Cosh))
}

// Tanh stores tanh(a) in out.
func Tanh(out, a *Vector) error {
	return unary(out, a, total(dual.Dual.Tanh))
}

// Asin stores asin(a) in out.
func Asin(out, a *Vector) error {
	return unary(out, a, dual.Dual.Asin)
}

// Acos stores acos(a) in out.
func Acos(out, a *Vector) error {
	return unary(out, a, dual.Dual.Acos)
}

// Atan stores atan(a) in out.
func Atan(out, a *Vector) error {
	return unary(out, a, total(dual.Dual.Atan))
}
