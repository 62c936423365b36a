// Package delay provides a fixed-capacity circular delay line with
// fractional (linearly interpolated) reads.
//
// A [Line] is sized once by [Line.Prepare] and never reallocated while
// processing; changing the delay time only moves the read position.
package delay
