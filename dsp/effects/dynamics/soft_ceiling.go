package dynamics

import "math"

const (
	// SoftCeilingThreshold is the level (-0.5 dBFS) below which the ceiling
	// is transparent.
	SoftCeilingThreshold = 0.891
	// SoftCeilingKneeWidth is the width of the quadratic knee above the threshold.
	SoftCeilingKneeWidth = 0.15
	// SoftCeilingKneeEnd is where the knee hands over to the hard clamp.
	SoftCeilingKneeEnd = SoftCeilingThreshold + SoftCeilingKneeWidth
	// SoftCeilingMax is the largest magnitude the ceiling ever emits.
	SoftCeilingMax = SoftCeilingThreshold + SoftCeilingKneeWidth/2
)

// SoftCeiling is a stateless three-zone peak limiter: passthrough below the
// threshold, a quadratic soft knee, and a sign-preserving clamp above the
// knee. Output magnitude never exceeds [SoftCeilingMax].
//
// The zero value is ready to use and safe to share, since it holds no state.
type SoftCeiling struct{}

// ProcessSample limits one sample.
func (SoftCeiling) ProcessSample(x float64) float64 {
	a := math.Abs(x)

	switch {
	case a < SoftCeilingThreshold:
		return x
	case a < SoftCeilingKneeEnd:
		k := (a - SoftCeilingThreshold) / SoftCeilingKneeWidth
		return x * (1 - 0.5*k*k)
	case math.IsNaN(x):
		return 0
	default:
		return math.Copysign(SoftCeilingMax, x)
	}
}

// ProcessInPlace limits buf in place.
func (c SoftCeiling) ProcessInPlace(buf []float64) {
	for i, x := range buf {
		buf[i] = c.ProcessSample(x)
	}
}
