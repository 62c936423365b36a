// Package spectrum measures frequency content of rendered signals.
//
// ImpulseMagnitude turns an impulse response into a one-sided magnitude
// spectrum with a zero-padded FFT; ToneMagnitude evaluates a single
// frequency with the Goertzel recurrence when a full transform is not
// needed.
package spectrum
