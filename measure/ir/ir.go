package ir

import (
	"errors"
	"math"
)

// Errors returned by IR analysis functions.
var (
	ErrEmptyIR           = errors.New("ir: impulse response is empty")
	ErrInvalidSampleRate = errors.New("ir: sample rate must be positive")
	ErrInvalidTime       = errors.New("ir: time must be positive")
	ErrInvalidThreshold  = errors.New("ir: threshold ratio must be in (0, 1]")
)

const (
	// DefaultArrivalThreshold is the arrival detection level relative to
	// the strongest sample (-40 dB).
	DefaultArrivalThreshold = 0.01

	// DefaultArrivalGapMs is the shortest spacing at which two arrivals
	// are reported separately.
	DefaultArrivalGapMs = 2.0
)

// Arrival is one discrete reflection found in an impulse response.
type Arrival struct {
	Index  int     // first sample at or above the detection threshold
	TimeMs float64 // Index converted to milliseconds
	Peak   float64 // largest absolute sample within the arrival window
}

// Metrics holds impulse response analysis results.
type Metrics struct {
	Arrivals     []Arrival
	PeakIndex    int     // sample index of the absolute maximum
	InitialGapMs float64 // first arrival time
	CenterTime   float64 // energy centroid in seconds
	D50          float64 // definition at 50ms (ratio 0-1)
	C50          float64 // clarity at 50ms in dB
	C80          float64 // clarity at 80ms in dB
}

// Analyzer computes IR metrics from impulse response data.
type Analyzer struct {
	SampleRate float64
}

// NewAnalyzer creates an IR analyzer with the given sample rate.
func NewAnalyzer(sampleRate float64) *Analyzer {
	return &Analyzer{SampleRate: sampleRate}
}

// Analyze computes all metrics with the default arrival detection settings.
// Times are measured from sample 0, so leading silence counts as delay.
func (a *Analyzer) Analyze(ir []float64) (Metrics, error) {
	if len(ir) == 0 {
		return Metrics{}, ErrEmptyIR
	}

	if a.SampleRate <= 0 {
		return Metrics{}, ErrInvalidSampleRate
	}

	m := Metrics{
		Arrivals:   a.arrivals(ir, DefaultArrivalThreshold, a.msToSamples(DefaultArrivalGapMs)),
		PeakIndex:  findPeak(ir),
		CenterTime: a.centerTime(ir),
		D50:        a.definition(ir, 50),
		C50:        a.clarity(ir, 50),
		C80:        a.clarity(ir, 80),
	}
	if len(m.Arrivals) > 0 {
		m.InitialGapMs = m.Arrivals[0].TimeMs
	}

	return m, nil
}

// Arrivals returns the discrete arrivals in ir. A new arrival starts at the
// first sample whose magnitude reaches thresholdRatio times the overall
// peak, provided at least minGapSamples have passed since the previous
// arrival started.
func (a *Analyzer) Arrivals(ir []float64, thresholdRatio float64, minGapSamples int) ([]Arrival, error) {
	if len(ir) == 0 {
		return nil, ErrEmptyIR
	}

	if a.SampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}

	if !(thresholdRatio > 0 && thresholdRatio <= 1) {
		return nil, ErrInvalidThreshold
	}

	return a.arrivals(ir, thresholdRatio, max(minGapSamples, 1)), nil
}

func (a *Analyzer) arrivals(ir []float64, thresholdRatio float64, minGap int) []Arrival {
	peak := math.Abs(ir[findPeak(ir)])
	if peak == 0 {
		return nil
	}

	threshold := peak * thresholdRatio

	var out []Arrival
	for i := 0; i < len(ir); i++ {
		if math.Abs(ir[i]) < threshold {
			continue
		}

		end := min(i+minGap, len(ir))
		arr := Arrival{
			Index:  i,
			TimeMs: float64(i) * 1000 / a.SampleRate,
			Peak:   math.Abs(ir[i+findPeak(ir[i:end])]),
		}
		out = append(out, arr)

		// Skip the rest of this arrival.
		i = end - 1
		for i+1 < len(ir) && math.Abs(ir[i+1]) >= threshold {
			i++
		}
	}

	return out
}

// Definition computes the definition D(t) at a given time boundary in ms.
//
//	D(t) = ∫₀ᵗ h²(τ)dτ / ∫₀^∞ h²(τ)dτ
//
// Returns a ratio between 0 and 1.
func (a *Analyzer) Definition(ir []float64, timeMs float64) (float64, error) {
	if err := a.check(ir); err != nil {
		return 0, err
	}

	if timeMs <= 0 {
		return 0, ErrInvalidTime
	}

	return a.definition(ir, timeMs), nil
}

func (a *Analyzer) definition(ir []float64, timeMs float64) float64 {
	early, late := a.splitEnergy(ir, timeMs)
	if early+late <= 0 {
		return 0
	}

	return early / (early + late)
}

// Clarity computes the clarity C(t) at a given time boundary in ms.
//
//	C(t) = 10*log10( ∫₀ᵗ h²(τ)dτ / ∫ₜ^∞ h²(τ)dτ )
//
// Returns the value in dB; +Inf when no energy arrives after t.
func (a *Analyzer) Clarity(ir []float64, timeMs float64) (float64, error) {
	if err := a.check(ir); err != nil {
		return 0, err
	}

	if timeMs <= 0 {
		return 0, ErrInvalidTime
	}

	return a.clarity(ir, timeMs), nil
}

func (a *Analyzer) clarity(ir []float64, timeMs float64) float64 {
	early, late := a.splitEnergy(ir, timeMs)

	switch {
	case late <= 0:
		return math.Inf(1)
	case early <= 0:
		return math.Inf(-1)
	default:
		return 10 * math.Log10(early/late)
	}
}

// splitEnergy sums h² before and from the boundary at timeMs.
func (a *Analyzer) splitEnergy(ir []float64, timeMs float64) (early, late float64) {
	boundary := a.msToSamples(timeMs)

	for i, v := range ir {
		if i < boundary {
			early += v * v
		} else {
			late += v * v
		}
	}

	return early, late
}

// CenterTime computes the temporal energy centroid of the impulse response.
//
//	Ts = ∫₀^∞ τ·h²(τ)dτ / ∫₀^∞ h²(τ)dτ
//
// Returns the center time in seconds.
func (a *Analyzer) CenterTime(ir []float64) (float64, error) {
	if err := a.check(ir); err != nil {
		return 0, err
	}

	return a.centerTime(ir), nil
}

func (a *Analyzer) centerTime(ir []float64) float64 {
	var numerator, denominator float64

	for i, v := range ir {
		e := v * v
		numerator += float64(i) * e
		denominator += e
	}

	if denominator <= 0 {
		return 0
	}

	return numerator / denominator / a.SampleRate
}

// FindImpulseStart returns the index of the first sample within -20 dB of
// the peak.
func (a *Analyzer) FindImpulseStart(ir []float64) (int, error) {
	if len(ir) == 0 {
		return 0, ErrEmptyIR
	}

	peak := math.Abs(ir[findPeak(ir)])
	for i, v := range ir {
		if math.Abs(v) >= peak*0.1 {
			return i, nil
		}
	}

	return 0, nil
}

func (a *Analyzer) check(ir []float64) error {
	if len(ir) == 0 {
		return ErrEmptyIR
	}

	if a.SampleRate <= 0 {
		return ErrInvalidSampleRate
	}

	return nil
}

func (a *Analyzer) msToSamples(ms float64) int {
	return int(math.Round(ms * 0.001 * a.SampleRate))
}

// findPeak returns the index of the absolute maximum.
func findPeak(ir []float64) int {
	peakIdx := 0
	peakVal := 0.0

	for i, v := range ir {
		if av := math.Abs(v); av > peakVal {
			peakVal = av
			peakIdx = i
		}
	}

	return peakIdx
}
