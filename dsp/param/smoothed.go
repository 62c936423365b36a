package param

import "math"

// Smoothed moves its current value toward a target by a fixed fraction of
// the remaining distance every sample:
//
//	current += (target - current) * coeff
//
// With 0 < coeff < 1 it never overshoots and approaches the target
// asymptotically. The zero value holds 0 and never moves.
type Smoothed struct {
	current float64
	target  float64
	coeff   float64
}

// NewSmoothed returns a smoother resting at initial.
func NewSmoothed(initial, coeff float64) Smoothed {
	return Smoothed{current: initial, target: initial, coeff: clampCoeff(coeff)}
}

// CoeffForTime returns the per-sample coefficient of a one-pole smoother
// with time constant timeMs: 1 - exp(-1/(tau*fs)). After timeMs the
// remaining distance is 1/e of the step; after 3*timeMs about 5%.
func CoeffForTime(timeMs, sampleRate float64) float64 {
	if timeMs <= 0 || sampleRate <= 0 {
		return 1
	}
	return 1 - math.Exp(-1000/(timeMs*sampleRate))
}

// SetCoeff changes the convergence coefficient, clamped to [0, 1].
func (s *Smoothed) SetCoeff(coeff float64) { s.coeff = clampCoeff(coeff) }

// SetTarget sets the value to approach.
func (s *Smoothed) SetTarget(target float64) { s.target = target }

// SetCurrentAndTarget jumps to v with no ramp.
func (s *Smoothed) SetCurrentAndTarget(v float64) {
	s.current = v
	s.target = v
}

// Next advances one sample and returns the new current value.
func (s *Smoothed) Next() float64 {
	s.current += (s.target - s.current) * s.coeff
	return s.current
}

// Current returns the value without advancing.
func (s *Smoothed) Current() float64 { return s.current }

// Target returns the value being approached.
func (s *Smoothed) Target() float64 { return s.target }

// Coeff returns the per-sample convergence coefficient.
func (s *Smoothed) Coeff() float64 { return s.coeff }

func clampCoeff(c float64) float64 {
	if math.IsNaN(c) || c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}
