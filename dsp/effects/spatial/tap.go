package spatial

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-field/dsp/core"
	"github.com/cwbudde/algo-field/dsp/delay"
	"github.com/cwbudde/algo-field/dsp/filter/biquad"
	"github.com/cwbudde/algo-field/dsp/param"
)

const (
	// TapSmoothingCoeff is the per-sample convergence of tap gain and pan.
	// It reaches ~99% of a step in about 4600 samples.
	TapSmoothingCoeff = 0.001

	minTapPan = -100.0
	maxTapPan = 100.0

	defaultTapGainDb   = -12.0
	defaultTapCutoffHz = 6000.0
)

// Tap is one early-reflection branch: a delay line, a fixed-Q low-pass
// filter, a smoothed gain and a smoothed constant-power pan that turns the
// mono input into a stereo contribution.
//
// This processor is real-time safe after Prepare and not thread-safe.
type Tap struct {
	line   delay.Line
	filter *biquad.Filter

	pan    float64
	gainDb float64

	delayTime float64
	prepared  bool

	gain     param.Smoothed
	panLeft  param.Smoothed
	panRight param.Smoothed
}

// NewTap returns a centered tap at -12 dB with no delay and a 6 kHz low-pass.
// It must be prepared before processing.
func NewTap() *Tap {
	filter, _ := biquad.NewFilter(44100)
	filter.SetResponseType(biquad.LowPass)
	filter.SetQ(biquad.ButterworthQ)
	filter.SetFrequency(defaultTapCutoffHz)

	centre := math.Cos(math.Pi / 4)
	gain := core.DBToLinear(defaultTapGainDb)

	return &Tap{
		filter:   filter,
		gainDb:   defaultTapGainDb,
		gain:     param.NewSmoothed(gain, TapSmoothingCoeff),
		panLeft:  param.NewSmoothed(centre, TapSmoothingCoeff),
		panRight: param.NewSmoothed(centre, TapSmoothingCoeff),
	}
}

// Prepare sizes the delay line for maxDelayMs at sampleRate and clears all
// state. Call it from the control path only.
func (t *Tap) Prepare(sampleRate float64, maxDelayMs int) error {
	if err := t.line.Prepare(sampleRate, maxDelayMs); err != nil {
		return fmt.Errorf("tap: %w", err)
	}
	if err := t.filter.SetSampleRate(sampleRate); err != nil {
		return fmt.Errorf("tap: %w", err)
	}

	t.line.SetDelayMs(t.delayTime)
	t.prepared = true
	return nil
}

// Reset clears the delay buffer and filter registers. Parameters and
// smoother positions are kept.
func (t *Tap) Reset() {
	t.line.Reset()
	t.filter.Reset()
}

// FlushDenormals clears decayed filter state. Call it between blocks.
func (t *Tap) FlushDenormals() {
	t.filter.FlushDenormals()
}

// SetParameters applies a full tap configuration at once.
func (t *Tap) SetParameters(delayMs, pan, cutoffHz, gainDb float64) {
	t.SetDelayMs(delayMs)
	t.SetPan(pan)
	t.SetCutoff(cutoffHz)
	t.SetGainDb(gainDb)
}

// SetDelayMs sets the delay time, clamped to [0, 100] ms.
func (t *Tap) SetDelayMs(ms float64) {
	t.delayTime = core.Clamp(ms, 0, delay.MaxDelayMs)
	t.line.SetDelayMs(t.delayTime)
}

// SetPan sets the pan position in [-100, 100] (full left to full right)
// using a constant-power law.
func (t *Tap) SetPan(pan float64) {
	t.pan = core.Clamp(pan, minTapPan, maxTapPan)

	angle := (t.pan - minTapPan) / (maxTapPan - minTapPan) * math.Pi / 2
	t.panLeft.SetTarget(math.Cos(angle))
	t.panRight.SetTarget(math.Sin(angle))
}

// SetCutoff sets the low-pass cutoff in Hz, clamped to [20, 20000].
func (t *Tap) SetCutoff(hz float64) {
	t.filter.SetFrequency(hz)
}

// SetGainDb sets the tap gain in dB.
func (t *Tap) SetGainDb(db float64) {
	if math.IsNaN(db) {
		db = defaultTapGainDb
	}
	t.gainDb = db
	t.gain.SetTarget(core.DBToLinear(db))
}

// DelayMs returns the delay time actually applied by the delay line.
func (t *Tap) DelayMs() float64 { return t.line.DelayMs() }

// Pan returns the clamped pan position.
func (t *Tap) Pan() float64 { return t.pan }

// CutoffHz returns the clamped filter cutoff.
func (t *Tap) CutoffHz() float64 { return t.filter.Frequency() }

// GainDb returns the gain setting in dB.
func (t *Tap) GainDb() float64 { return t.gainDb }

// TargetPanGains returns the left/right gains the pan smoothers approach.
func (t *Tap) TargetPanGains() (left, right float64) {
	return t.panLeft.Target(), t.panRight.Target()
}

// PanGains returns the current smoothed left/right gains.
func (t *Tap) PanGains() (left, right float64) {
	return t.panLeft.Current(), t.panRight.Current()
}

// TargetGain returns the linear gain the gain smoother approaches.
func (t *Tap) TargetGain() float64 { return t.gain.Target() }

// Gain returns the current smoothed linear gain.
func (t *Tap) Gain() float64 { return t.gain.Current() }

// Prepared reports whether Prepare has succeeded.
func (t *Tap) Prepared() bool { return t.prepared }

// Process runs one mono sample through delay, filter, gain and pan.
func (t *Tap) Process(mono float64) (left, right float64) {
	y := t.filter.ProcessSample(t.line.Process(mono))
	y *= t.gain.Next()

	return y * t.panLeft.Next(), y * t.panRight.Next()
}
