// Package spatial provides the per-reflection building block of the field
// effect.
//
// A Tap takes a mono sample through a fractional delay, a 12 dB/oct
// low-pass and a smoothed gain, then spreads it across the stereo field
// with a constant-power pan law.
package spatial
