// Package biquad provides biquad (second-order IIR) filter primitives.
//
// A [Section] implements Direct Form II Transposed processing for a single
// second-order section defined by [Coefficients]. [Design] derives
// low-pass, high-pass and band-pass coefficients from the RBJ audio EQ
// cookbook, and [Filter] wraps a Section with clamped parameters and an
// explicit Clean/Dirty coefficient state so recomputation happens exactly
// once between a parameter change and the next processed sample.
package biquad
