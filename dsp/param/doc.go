// Package param provides real-time-safe parameter primitives.
//
// [Smoothed] is a one-pole exponential approach toward a target, advanced
// once per sample. [Float] and [Int] hold control values that one goroutine
// writes and the audio goroutine reads without locks or allocation.
package param
