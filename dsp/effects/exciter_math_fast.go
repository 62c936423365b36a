//go:build fastmath

package effects

import (
	"github.com/meko-christian/algo-approx"
)

// tanh computes the hyperbolic tangent using a fast exponential.
// Uses the identity: tanh(x) = 1 - 2/(e^(2x) + 1)
func tanh(x float64) float64 {
	return 1 - 2/(approx.FastExp(2*x)+1)
}
