//go:build !noasm && amd64

package dual

import (
	"math"

	"github.com/klauspost/cpuid/v2"
)

// fused rounds each two-term numerator once using fused multiply-add.
var fused = &kernel{
	name: "fused",
	productTangent: func(ar, ad, br, bd float64) float64 {
		return math.FMA(ar, bd, ad*br)
	},
	quotientTangent: func(ar, ad, br, bd float64) float64 {
		return math.FMA(ad, br, -ar*bd) / (br * br)
	},
	powerTangent: func(p, lnA, ar, ad, br, bd float64) float64 {
		return p * math.FMA(bd, lnA, br*ad/ar)
	},
	oneMinusSquare: func(x float64) float64 {
		return math.FMA(-x, x, 1)
	},
	onePlusSquare: func(x float64) float64 {
		return math.FMA(x, x, 1)
	},
}

func init() {
	kernels[fused.name] = fused

	// Without FMA3 math.FMA falls back to a slow software emulation
	if cpuid.CPU.Supports(cpuid.FMA3) {
		active.Store(fused)
	}
}
