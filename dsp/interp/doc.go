// Package interp provides interpolation primitives used by delay-based DSP blocks.
//
// [Linear2] is the 2-point linear blend used by [delay.Line] for fractional
// reads. It is exact for integer positions (t = 0 returns x0 bit for bit).
package interp
