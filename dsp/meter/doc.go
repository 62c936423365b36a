// Package meter computes block loudness and hands it from the audio
// goroutine to a reader without locks.
//
// [RMS] is the plain root-mean-square of a block. [Meter] computes it with a
// preallocated scratch buffer and vectorized squares, and [StereoLevels]
// publishes a left/right pair as one tear-free snapshot.
package meter
