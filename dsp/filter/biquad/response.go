package biquad

import (
	"math"
	"math/cmplx"
)

// Response evaluates H(z) on the unit circle at freqHz.
func (c Coefficients) Response(freqHz, sampleRate float64) complex128 {
	zInv := cmplx.Rect(1, -2*math.Pi*freqHz/sampleRate)
	zInv2 := zInv * zInv

	num := complex(c.B0, 0) + complex(c.B1, 0)*zInv + complex(c.B2, 0)*zInv2
	den := 1 + complex(c.A1, 0)*zInv + complex(c.A2, 0)*zInv2

	return num / den
}

// MagnitudeSquared returns |H(f)|^2 without complex arithmetic:
//
//	|P(e^jw)|^2 = p0^2 + p1^2 + p2^2 + 2(p0p1 + p1p2)cos w + 2p0p2 cos 2w
//
// for numerator and denominator alike.
func (c Coefficients) MagnitudeSquared(freqHz, sampleRate float64) float64 {
	w := 2 * math.Pi * freqHz / sampleRate
	return powerAt(c.B0, c.B1, c.B2, w) / powerAt(1, c.A1, c.A2, w)
}

// MagnitudeDB returns the gain at freqHz in dB.
func (c Coefficients) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 10 * math.Log10(c.MagnitudeSquared(freqHz, sampleRate))
}

// Phase returns arg H(f) in [-pi, pi].
func (c Coefficients) Phase(freqHz, sampleRate float64) float64 {
	return cmplx.Phase(c.Response(freqHz, sampleRate))
}

// DCGain returns H(1).
func (c Coefficients) DCGain() float64 {
	return (c.B0 + c.B1 + c.B2) / (1 + c.A1 + c.A2)
}

// NyquistGain returns H(-1).
func (c Coefficients) NyquistGain() float64 {
	return (c.B0 - c.B1 + c.B2) / (1 - c.A1 + c.A2)
}

// Stable reports whether both poles lie strictly inside the unit circle.
func (c Coefficients) Stable() bool {
	return math.Abs(c.A2) < 1 && math.Abs(c.A1) < 1+c.A2
}

func powerAt(p0, p1, p2, w float64) float64 {
	return p0*p0 + p1*p1 + p2*p2 + 2*(p0*p1+p1*p2)*math.Cos(w) + 2*p0*p2*math.Cos(2*w)
}
