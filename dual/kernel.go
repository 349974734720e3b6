package dual

import (
	"sort"
	"sync/atomic"
)

// kernel holds the arithmetic rules the Dual operations are built from.
// Every kernel must agree with portable to within floating point rounding.
type kernel struct {
	name string

	// productTangent is the dual part of a*b.
	productTangent func(ar, ad, br, bd float64) float64

	// quotientTangent is the dual part of a/b, br is never zero.
	quotientTangent func(ar, ad, br, bd float64) float64

	// powerTangent is the dual part of a**b given p = a**b and lnA = log(a).
	powerTangent func(p, lnA, ar, ad, br, bd float64) float64

	oneMinusSquare func(x float64) float64
	onePlusSquare  func(x float64) float64
}

var portable = &kernel{
	name: "portable",
	productTangent: func(ar, ad, br, bd float64) float64 {
		return ar*bd + ad*br
	},
	quotientTangent: func(ar, ad, br, bd float64) float64 {
		return (ad*br - ar*bd) / (br * br)
	},
	powerTangent: func(p, lnA, ar, ad, br, bd float64) float64 {
		return p * (bd*lnA + br*ad/ar)
	},
	oneMinusSquare: func(x float64) float64 {
		return 1 - x*x
	},
	onePlusSquare: func(x float64) float64 {
		return 1 + x*x
	},
}

// kernels lists every kernel compiled into this build, platform files add theirs in init.
var kernels = map[string]*kernel{
	portable.name: portable,
}

// active is nil until a platform init or UseKernel picks a kernel.
var active atomic.Pointer[kernel]

func current() *kernel {
	if k := active.Load(); k != nil {
		return k
	}
	return portable
}

// KernelName reports the kernel the Dual operations currently run on.
func KernelName() string {
	return current().name
}

// Kernels lists the kernels available in this build, sorted by name.
func Kernels() (names []string) {
	for name := range kernels {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

// UseKernel switches every Dual operation to the named kernel.
// The fastest kernel the CPU supports is selected automatically, so this is
// only needed to compare kernels against each other.
func UseKernel(name string) error {
	k, ok := kernels[name]
	if !ok {
		return &Error{Op: "kernel " + name, Err: ErrUnknownKernel}
	}
	active.Store(k)
	return nil
}
