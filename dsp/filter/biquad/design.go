package biquad

import "math"

// ResponseType selects the shape computed by [Design].
type ResponseType int

const (
	// LowPass passes content below the corner frequency.
	LowPass ResponseType = iota
	// HighPass passes content above the corner frequency.
	HighPass
	// BandPass passes a band around the center frequency (constant 0 dB peak gain).
	BandPass
)

// String returns the response name.
func (r ResponseType) String() string {
	switch r {
	case LowPass:
		return "lowpass"
	case HighPass:
		return "highpass"
	case BandPass:
		return "bandpass"
	default:
		return "unknown"
	}
}

// MaxNormalizedFrequency is the highest design frequency as a fraction of
// the sample rate. Above Nyquist the cookbook poles leave the unit circle.
const MaxNormalizedFrequency = 0.49

// Design returns RBJ cookbook coefficients normalized so that a0 = 1.
// q is used as given. freqHz is limited to MaxNormalizedFrequency*sampleRate
// so the section stays stable at low sample rates.
func Design(rt ResponseType, freqHz, q, sampleRate float64) Coefficients {
	w0 := 2 * math.Pi * DesignFrequency(freqHz, sampleRate) / sampleRate
	cosW0 := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)

	var b0, b1, b2 float64

	switch rt {
	case HighPass:
		b0 = (1 + cosW0) / 2
		b1 = -(1 + cosW0)
		b2 = b0
	case BandPass:
		b0 = alpha
		b1 = 0
		b2 = -alpha
	default:
		b0 = (1 - cosW0) / 2
		b1 = 1 - cosW0
		b2 = b0
	}

	a0 := 1 + alpha
	a1 := -2 * cosW0
	a2 := 1 - alpha

	return Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}
}

// DesignFrequency returns the frequency Design actually uses for freqHz at
// sampleRate.
func DesignFrequency(freqHz, sampleRate float64) float64 {
	return math.Min(freqHz, MaxNormalizedFrequency*sampleRate)
}
