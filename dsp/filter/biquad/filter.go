package biquad

import (
	"fmt"

	"github.com/cwbudde/algo-field/dsp/core"
)

const (
	// MinFrequency and MaxFrequency bound the corner/center frequency in Hz.
	MinFrequency = 20.0
	MaxFrequency = 20000.0
	// MinQ and MaxQ bound the resonance.
	MinQ = 0.1
	MaxQ = 10.0

	defaultFilterSampleRate = 44100.0
	defaultFilterFrequency  = 6000.0
	// ButterworthQ is 1/sqrt(2) rounded the way the field taps use it.
	ButterworthQ = 0.707
)

// CoefficientState tracks whether cached coefficients match the parameters.
type CoefficientState int

const (
	// StateDirty means a parameter changed since the last recomputation.
	StateDirty CoefficientState = iota
	// StateClean means the cached coefficients are current.
	StateClean
)

// String returns "dirty" or "clean".
func (s CoefficientState) String() string {
	if s == StateClean {
		return "clean"
	}
	return "dirty"
}

// Filter is a single parametric biquad stage.
//
// Setters clamp their input and move the filter to StateDirty only when the
// stored value changes. ProcessSample recomputes coefficients when dirty and
// moves back to StateClean. Not safe for concurrent use.
type Filter struct {
	section Section

	responseType ResponseType
	frequency    float64
	q            float64
	sampleRate   float64
	state        CoefficientState
}

// NewFilter returns a low-pass filter at 6 kHz, Q 0.707.
func NewFilter(sampleRate float64) (*Filter, error) {
	if !core.IsFinitePositive(sampleRate) {
		return nil, fmt.Errorf("biquad sample rate must be positive and finite: %f", sampleRate)
	}

	return &Filter{
		responseType: LowPass,
		frequency:    defaultFilterFrequency,
		q:            ButterworthQ,
		sampleRate:   sampleRate,
		state:        StateDirty,
	}, nil
}

// SetSampleRate changes the design sample rate and clears the state registers.
func (f *Filter) SetSampleRate(sampleRate float64) error {
	if !core.IsFinitePositive(sampleRate) {
		return fmt.Errorf("biquad sample rate must be positive and finite: %f", sampleRate)
	}

	f.sampleRate = sampleRate
	f.state = StateDirty
	f.section.Reset()
	return nil
}

// SetResponseType selects low-pass, high-pass or band-pass.
func (f *Filter) SetResponseType(rt ResponseType) {
	if rt < LowPass || rt > BandPass {
		rt = LowPass
	}
	if rt != f.responseType {
		f.responseType = rt
		f.state = StateDirty
	}
}

// SetFrequency sets the corner/center frequency, clamped to [20, 20000] Hz.
func (f *Filter) SetFrequency(freqHz float64) {
	freqHz = core.Clamp(freqHz, MinFrequency, MaxFrequency)
	if freqHz != f.frequency {
		f.frequency = freqHz
		f.state = StateDirty
	}
}

// SetQ sets the resonance, clamped to [0.1, 10].
func (f *Filter) SetQ(q float64) {
	q = core.Clamp(q, MinQ, MaxQ)
	if q != f.q {
		f.q = q
		f.state = StateDirty
	}
}

// ResponseType returns the selected response.
func (f *Filter) ResponseType() ResponseType { return f.responseType }

// Frequency returns the clamped frequency in Hz. The coefficients may use a
// lower value near Nyquist, see [DesignFrequency].
func (f *Filter) Frequency() float64 { return f.frequency }

// Q returns the clamped resonance.
func (f *Filter) Q() float64 { return f.q }

// SampleRate returns the design sample rate in Hz.
func (f *Filter) SampleRate() float64 { return f.sampleRate }

// State reports whether coefficients are pending recomputation.
func (f *Filter) State() CoefficientState { return f.state }

// Coefficients returns the coefficients that the next sample will use,
// recomputing them first when dirty.
func (f *Filter) Coefficients() Coefficients {
	f.update()
	return f.section.Coefficients
}

// ProcessSample filters one sample.
func (f *Filter) ProcessSample(x float64) float64 {
	if f.state == StateDirty {
		f.update()
	}
	return f.section.ProcessSample(x)
}

// ProcessBlock filters buf in place.
func (f *Filter) ProcessBlock(buf []float64) {
	if f.state == StateDirty {
		f.update()
	}
	f.section.ProcessBlock(buf)
}

// Reset zeroes the delay registers. Coefficients survive.
func (f *Filter) Reset() {
	f.section.Reset()
}

// FlushDenormals snaps near-zero delay registers to exact zero so a decayed
// tail stops costing subnormal arithmetic. Call it between blocks.
func (f *Filter) FlushDenormals() {
	st := f.section.State()
	f.section.SetState([2]float64{core.FlushDenormals(st[0]), core.FlushDenormals(st[1])})
}

func (f *Filter) update() {
	if f.state == StateClean {
		return
	}
	f.section.Coefficients = Design(f.responseType, f.frequency, f.q, f.sampleRate)
	f.state = StateClean
}
