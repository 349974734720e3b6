// Package vector evaluates dual number operations over whole batches.
//
// A Vector stores its duals as two parallel slices. Every Dual operation has
// an element-wise counterpart here with identical results; long batches are
// split into chunks evaluated concurrently.
package vector

import (
	"errors"
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/neurlang/dualnum/dual"
	"github.com/neurlang/dualnum/parallel"
)

// ChunkSize is the number of elements one goroutine evaluates at a time.
const ChunkSize = 4096

// ErrLength is returned when operands and output differ in length.
var ErrLength = errors.New("vector: length mismatch")

// IndexError reports the lowest element an operation failed on.
type IndexError struct {
	Index int
	Err   error
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("vector: element %d: %v", e.Index, e.Err)
}

func (e *IndexError) Unwrap() error {
	return e.Err
}

// Vector is a batch of dual numbers, element i is (Real[i], Dual[i]).
type Vector struct {
	Real []float64
	Dual []float64
}

// Make allocates a zero vector of length n.
func Make(n int) *Vector {
	return &Vector{Real: make([]float64, n), Dual: make([]float64, n)}
}

// Variables seeds every x as an independent variable evaluation point.
func Variables(xs []float64) *Vector {
	v := Make(len(xs))
	copy(v.Real, xs)
	for i := range v.Dual {
		v.Dual[i] = 1
	}
	return v
}

// Constants makes a vector of constants.
func Constants(cs []float64) *Vector {
	v := Make(len(cs))
	copy(v.Real, cs)
	return v
}

// Len returns the number of elements.
func (v *Vector) Len() int {
	return len(v.Real)
}

// At returns element i.
func (v *Vector) At(i int) dual.Dual {
	return dual.New(v.Real[i], v.Dual[i])
}

// Set stores d as element i.
func (v *Vector) Set(i int, d dual.Dual) {
	v.Real[i] = d.Real()
	v.Dual[i] = d.Dual()
}

var parallelism atomic.Int32

// Parallelism reports how many chunks are evaluated at once.
// Can't return 0.
func Parallelism() int {
	if n := parallelism.Load(); n > 0 {
		return int(n)
	}
	return runtime.GOMAXPROCS(0)
}

// SetParallelism limits how many chunks are evaluated at once, n <= 0 restores the GOMAXPROCS default.
func SetParallelism(n int) {
	if n < 0 {
		n = 0
	}
	parallelism.Store(int32(n))
}

func length(vs ...*Vector) (int, error) {
	n := vs[0].Len()
	for _, v := range vs {
		if len(v.Real) != n || len(v.Dual) != n {
			return 0, ErrLength
		}
	}
	return n, nil
}

// run calls body for every index and reports the lowest failing one.
func run(n int, body func(i int) error) error {
	errs := make([]error, parallel.Chunks(n, ChunkSize))
	parallel.ForEachChunk(n, ChunkSize, Parallelism(), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			if err := body(i); err != nil {
				errs[lo/ChunkSize] = &IndexError{Index: i, Err: err}
				return
			}
		}
	})
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func binary(out, a, b *Vector, op func(x, y dual.Dual) (dual.Dual, error)) error {
	n, err := length(out, a, b)
	if err != nil {
		return err
	}
	return run(n, func(i int) error {
		d, err := op(a.At(i), b.At(i))
		if err != nil {
			return err
		}
		out.Set(i, d)
		return nil
	})
}

func unary(out, a *Vector, op func(x dual.Dual) (dual.Dual, error)) error {
	n, err := length(out, a)
	if err != nil {
		return err
	}
	return run(n, func(i int) error {
		d, err := op(a.At(i))
		if err != nil {
			return err
		}
		out.Set(i, d)
		return nil
	})
}

func total(f func(dual.Dual) dual.Dual) func(dual.Dual) (dual.Dual, error) {
	return func(x dual.Dual) (dual.Dual, error) {
		return f(x), nil
	}
}

// Derivatives returns f'(x) for every x.
func Derivatives(f dual.Func, xs []float64) ([]float64, error) {
	out := make([]float64, len(xs))
	err := run(len(xs), func(i int) (err error) {
		out[i], err = dual.Derivative(f, xs[i])
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Evaluate returns f and f' at every x, as the Real and Dual parts of one vector.
func Evaluate(f dual.Func, xs []float64) (*Vector, error) {
	out := Make(len(xs))
	err := run(len(xs), func(i int) (err error) {
		out.Real[i], out.Dual[i], err = dual.Evaluate(f, xs[i])
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
