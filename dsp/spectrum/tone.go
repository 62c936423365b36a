package spectrum

import "math"

// ToneMagnitude returns the amplitude of the freqHz component of x using the
// Goertzel recurrence. For a sine of amplitude A that completes a whole
// number of cycles in x the result is A.
func ToneMagnitude(x []float64, freqHz, sampleRate float64) float64 {
	n := len(x)
	if n == 0 || sampleRate <= 0 {
		return 0
	}

	w := 2 * math.Pi * freqHz / sampleRate
	coeff := 2 * math.Cos(w)

	var s1, s2 float64
	for _, v := range x {
		s0 := v + coeff*s1 - s2
		s2 = s1
		s1 = s0
	}

	re := s1 - s2*math.Cos(w)
	im := s2 * math.Sin(w)
	mag := math.Hypot(re, im) * 2 / float64(n)
	if freqHz == 0 {
		mag /= 2
	}
	return mag
}
