package dual

// Func is a scalar function written in terms of Dual operations.
type Func func(x Dual) (Dual, error)

// Derivative returns f'(x): it seeds Variable(x), applies f and returns the dual part.
// Any error from f is returned unchanged.
func Derivative(f Func, x float64) (float64, error) {
	y, err := f(Variable(x))
	if err != nil {
		return 0, err
	}
	return y.dual, nil
}

// Evaluate returns both f(x) and f'(x).
func Evaluate(f Func, x float64) (value, derivative float64, err error) {
	y, err := f(Variable(x))
	if err != nil {
		return 0, 0, err
	}
	return y.real, y.dual, nil
}
