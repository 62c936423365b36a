package effects

import (
	"math"

	"github.com/cwbudde/algo-field/dsp/core"
)

const (
	defaultExciterProfile = 0.5

	// exciterBypassEnergy is the normalized energy below which the exciter
	// passes its input through untouched.
	exciterBypassEnergy = 0.001

	maxEvenCoeff = 0.5
	maxOddCoeff  = 0.12

	// Odd harmonics only appear for dense profiles at higher energy.
	oddProfileGate = 0.6
	oddEnergyGate  = 0.4

	exciterOutputDrive = 0.9
)

// HarmonicExciter is an even-dominant waveshaper with two controls:
// energy (0-100 %) scales the amount, and profile (0-1) moves it from light
// second-harmonic lift toward a denser low-mid body with a trace of odd
// harmonics. At zero energy it is a phase-neutral bypass.
//
// This processor is mono, real-time safe, and not thread-safe.
type HarmonicExciter struct {
	energy  float64 // normalized 0..1
	profile float64

	evenCoeff float64
	oddCoeff  float64
}

// NewHarmonicExciter returns an exciter at zero energy with profile 0.5.
func NewHarmonicExciter() *HarmonicExciter {
	e := &HarmonicExciter{profile: defaultExciterProfile}
	e.updateCoefficients()
	return e
}

// SetEnergy sets the drive in percent, clamped to [0, 100].
func (e *HarmonicExciter) SetEnergy(percent float64) {
	e.energy = core.Clamp(percent, 0, 100) / 100
	e.updateCoefficients()
}

// SetProfile sets the harmonic profile, clamped to [0, 1].
func (e *HarmonicExciter) SetProfile(profile float64) {
	e.profile = core.Clamp(profile, 0, 1)
	e.updateCoefficients()
}

// Energy returns the normalized energy in [0, 1].
func (e *HarmonicExciter) Energy() float64 { return e.energy }

// Profile returns the harmonic profile in [0, 1].
func (e *HarmonicExciter) Profile() float64 { return e.profile }

// EvenCoeff returns the current even-harmonic coefficient.
func (e *HarmonicExciter) EvenCoeff() float64 { return e.evenCoeff }

// OddCoeff returns the current odd-harmonic coefficient.
func (e *HarmonicExciter) OddCoeff() float64 { return e.oddCoeff }

// Bypassed reports whether ProcessSample currently returns its input.
func (e *HarmonicExciter) Bypassed() bool { return e.energy < exciterBypassEnergy }

// ProcessSample shapes one sample:
//
//	y = x + even*x^2*tanh(x) + odd*(0.1*x^3 + 0.05*tanh(1.5x))
//	out = tanh(0.9*y)
func (e *HarmonicExciter) ProcessSample(x float64) float64 {
	if e.energy < exciterBypassEnergy {
		return x
	}

	even := e.evenCoeff * x * x * tanh(x)
	odd := e.oddCoeff * (0.1*x*x*x + 0.05*tanh(1.5*x))

	return tanh(exciterOutputDrive * (x + even + odd))
}

// ProcessInPlace shapes buf in place.
func (e *HarmonicExciter) ProcessInPlace(buf []float64) {
	if e.energy < exciterBypassEnergy {
		return
	}
	for i, x := range buf {
		buf[i] = e.ProcessSample(x)
	}
}

func (e *HarmonicExciter) updateCoefficients() {
	scaled := math.Pow(e.energy, 1.5)
	e.evenCoeff = core.Clamp(scaled*(0.2+e.profile*0.3), 0, maxEvenCoeff)

	threshold := 0.0
	if e.profile > oddProfileGate && e.energy > oddEnergyGate {
		threshold = e.energy - oddEnergyGate
	}
	e.oddCoeff = core.Clamp(threshold*0.15*e.profile, 0, maxOddCoeff)
}
