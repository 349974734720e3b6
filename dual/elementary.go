package dual

import "math"

// Sin returns sin(a), derivative cos.
func (a Dual) Sin() Dual {
	s, c := math.Sincos(a.real)
	return Dual{s, a.dual * c}
}

// Cos returns cos(a), derivative -sin.
func (a Dual) Cos() Dual {
	s, c := math.Sincos(a.real)
	return Dual{c, -a.dual * s}
}

// Tan returns tan(a), derivative 1/cos².
func (a Dual) Tan() Dual {
	c := math.Cos(a.real)
	return Dual{math.Tan(a.real), a.dual / (c * c)}
}

// Exp returns e**a.
func (a Dual) Exp() Dual {
	e := math.Exp(a.real)
	return Dual{e, a.dual * e}
}

// Log returns the natural logarithm of a. The real part must be positive.
func (a Dual) Log() (Dual, error) {
	if a.real <= 0 {
		return Dual{}, domainError("log", a)
	}
	return Dual{math.Log(a.real), a.dual / a.real}, nil
}

// Sqrt returns the square root of a.
// A negative real part is a domain error; zero fails with ErrDivisionByZero
// because the derivative 1/(2*sqrt(x)) does not exist there.
func (a Dual) Sqrt() (Dual, error) {
	switch {
	case a.real < 0:
		return Dual{}, domainError("sqrt", a)
	case a.real == 0:
		return Dual{}, zeroError("sqrt", a)
	}
	s := math.Sqrt(a.real)
	return Dual{s, a.dual / (2 * s)}, nil
}

// Sinh returns the hyperbolic sine of a.
func (a Dual) Sinh() Dual {
	return Dual{math.Sinh(a.real), a.dual * math.Cosh(a.real)}
}

// Cosh returns the hyperbolic cosine of a.
func (a Dual) Cosh() Dual {
	return Dual{math.Cosh(a.real), a.dual * math.Sinh(a.real)}
}

// Tanh returns the hyperbolic tangent of a, derivative 1 - tanh².
func (a Dual) Tanh() Dual {
	t := math.Tanh(a.real)
	return Dual{t, a.dual * current().oneMinusSquare(t)}
}

// Asin returns the arcsine of a. The real part must lie strictly inside (-1, 1).
func (a Dual) Asin() (Dual, error) {
	if math.Abs(a.real) >= 1 {
		return Dual{}, domainError("asin", a)
	}
	return Dual{math.Asin(a.real), a.dual / math.Sqrt(current().oneMinusSquare(a.real))}, nil
}

// Acos returns the arccosine of a. The real part must lie strictly inside (-1, 1).
func (a Dual) Acos() (Dual, error) {
	if math.Abs(a.real) >= 1 {
		return Dual{}, domainError("acos", a)
	}
	return Dual{math.Acos(a.real), -a.dual / math.Sqrt(current().oneMinusSquare(a.real))}, nil
}

// Atan returns the arctangent of a, derivative 1/(1+x²).
func (a Dual) Atan() Dual {
	return Dual{math.Atan(a.real), a.dual / current().onePlusSquare(a.real)}
}
