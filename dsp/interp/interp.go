package interp

// Linear2 blends x0 and x1 at fraction t in [0, 1).
//
// The form x0 + t*(x1-x0) keeps t == 0 exact, which integer-delay reads rely on.
func Linear2(t, x0, x1 float64) float64 {
	return x0 + t*(x1-x0)
}
