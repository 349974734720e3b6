package dual

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"
)

type elementary struct {
	name  string
	fn    func(Dual) (Dual, error)
	real  func(float64) float64
	prime func(float64) float64
}

func total(f func(Dual) Dual) func(Dual) (Dual, error) {
	return func(a Dual) (Dual, error) { return f(a), nil }
}

var elementaries = []elementary{
	{"sin", total(Dual.Sin), math.Sin, math.Cos},
	{"cos", total(Dual.Cos), math.Cos, func(x float64) float64 { return -math.Sin(x) }},
	{"tan", total(Dual.Tan), math.Tan, func(x float64) float64 { return 1 / (math.Cos(x) * math.Cos(x)) }},
	{"exp", total(Dual.Exp), math.Exp, math.Exp},
	{"log", Dual.Log, math.Log, func(x float64) float64 { return 1 / x }},
	{"sqrt", Dual.Sqrt, math.Sqrt, func(x float64) float64 { return 1 / (2 * math.Sqrt(x)) }},
	{"sinh", total(Dual.Sinh), math.Sinh, math.Cosh},
	{"cosh", total(Dual.Cosh), math.Cosh, math.Sinh},
	{"tanh", total(Dual.Tanh), math.Tanh, func(x float64) float64 { return 1 - math.Tanh(x)*math.Tanh(x) }},
	{"asin", Dual.Asin, math.Asin, func(x float64) float64 { return 1 / math.Sqrt(1-x*x) }},
	{"acos", Dual.Acos, math.Acos, func(x float64) float64 { return -1 / math.Sqrt(1-x*x) }},
	{"atan", total(Dual.Atan), math.Atan, func(x float64) float64 { return 1 / (1 + x*x) }},
}

// inside the domain of every function above
var samplePoints = []float64{0.05, 0.1, 0.25, 0.5, 0.75, 0.9}

func TestElementaryChainRule(t *testing.T) {
	for _, e := range elementaries {
		t.Run(e.name, func(t *testing.T) {
			for _, x := range samplePoints {
				for _, seed := range []float64{1, -2.5} {
					got, err := e.fn(New(x, seed))
					require.NoError(t, err, "%s(%g)", e.name, x)
					checkApprox(t, got, e.real(x), seed*e.prime(x))
				}
			}
		})
	}
}

// TestElementaryNumeric compares against central finite differences, which share no code with the rules.
func TestElementaryNumeric(t *testing.T) {
	settings := &fd.Settings{Formula: fd.Central}
	for _, e := range elementaries {
		t.Run(e.name, func(t *testing.T) {
			for _, x := range samplePoints {
				got, err := Derivative(e.fn, x)
				require.NoError(t, err)
				want := fd.Derivative(e.real, x, settings)
				assert.True(t, approxLoose(got, want), "%s'(%g) = %g, finite differences give %g", e.name, x, got, want)
			}
		})
	}
}

func approxLoose(got, want float64) bool {
	return math.Abs(got-want) <= 1e-6*math.Max(1, math.Abs(want))
}

func TestElementaryValues(t *testing.T) {
	testCases := []struct {
		name       string
		got        func() (Dual, error)
		real, dual float64
	}{
		{"sin pi/2", func() (Dual, error) { return New(math.Pi/2, 1).Sin(), nil }, 1, 0},
		{"cos 0", func() (Dual, error) { return New(0, 1).Cos(), nil }, 1, 0},
		{"tan pi/4", func() (Dual, error) { return New(math.Pi/4, 1).Tan(), nil }, 1, 2},
		{"exp 1", func() (Dual, error) { return New(1, 1).Exp(), nil }, math.E, math.E},
		{"log e", func() (Dual, error) { return New(math.E, 1).Log() }, 1, 1 / math.E},
		{"sqrt 4", func() (Dual, error) { return New(4, 1).Sqrt() }, 2, 0.25},
		{"sinh 0", func() (Dual, error) { return New(0, 1).Sinh(), nil }, 0, 1},
		{"cosh 0", func() (Dual, error) { return New(0, 1).Cosh(), nil }, 1, 0},
		{"tanh 0", func() (Dual, error) { return New(0, 1).Tanh(), nil }, 0, 1},
		{"asin 0.5", func() (Dual, error) { return New(0.5, 1).Asin() }, math.Asin(0.5), 1.1547005383792515},
		{"acos 0.5", func() (Dual, error) { return New(0.5, 1).Acos() }, math.Acos(0.5), -1.1547005383792515},
		{"atan 0.5", func() (Dual, error) { return New(0.5, 1).Atan(), nil }, math.Atan(0.5), 0.8},
		{"atan 1", func() (Dual, error) { return New(1, 1).Atan(), nil }, math.Pi / 4, 0.5},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.got()
			require.NoError(t, err)
			checkApprox(t, got, tc.real, tc.dual)
		})
	}
}

func TestElementaryDomain(t *testing.T) {
	testCases := []struct {
		name string
		got  func() (Dual, error)
		want error
	}{
		{"log 0", New(0, 1).Log, ErrDomain},
		{"log negative", New(-1, 1).Log, ErrDomain},
		{"sqrt negative", New(-1, 1).Sqrt, ErrDomain},
		{"sqrt 0", New(0, 1).Sqrt, ErrDivisionByZero},
		{"asin 1", New(1, 1).Asin, ErrDomain},
		{"asin -1", New(-1, 1).Asin, ErrDomain},
		{"asin 2", New(2, 1).Asin, ErrDomain},
		{"acos 1", New(1, 1).Acos, ErrDomain},
		{"acos -1.5", New(-1.5, 1).Acos, ErrDomain},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.got()
			assert.ErrorIs(t, err, tc.want)
		})
	}
}
