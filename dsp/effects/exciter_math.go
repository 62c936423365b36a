//go:build !fastmath

package effects

import "math"

// tanh computes the hyperbolic tangent using standard library math.
func tanh(x float64) float64 {
	return math.Tanh(x)
}
