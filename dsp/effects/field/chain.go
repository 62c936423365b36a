package field

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-field/dsp/core"
	"github.com/cwbudde/algo-field/dsp/effects"
	"github.com/cwbudde/algo-field/dsp/effects/dynamics"
	"github.com/cwbudde/algo-field/dsp/effects/spatial"
	"github.com/cwbudde/algo-field/dsp/meter"
	"github.com/cwbudde/algo-field/dsp/param"
)

var (
	// ErrNotPrepared is returned when audio is processed before a
	// successful Prepare.
	ErrNotPrepared = errors.New("field: chain is not prepared")

	// ErrLengthMismatch is returned when channel buffers differ in length
	// or an interleaved buffer holds a partial frame.
	ErrLengthMismatch = errors.New("field: buffer length mismatch")
)

const (
	monoSumGain      = 0.5
	preExciterTrim   = 0.5
	noModeConfigured = -1
)

// Chain is the complete field processor.
//
// Per block it snapshots Controls once, reconfigures the taps when the mode
// changed, then for every frame: sums to mono, trims, excites, limits with
// the soft ceiling, feeds the six taps, and blends the compensated wet pair
// against the untouched input with a smoothed dry/wet amount. The RMS of the
// output is published after each block.
//
// Processing methods must be called from a single goroutine. Controls and
// Levels may be used from any goroutine.
type Chain struct {
	cfg      chainConfig
	controls *Controls

	taps    [NumTaps]*spatial.Tap
	exciter *effects.HarmonicExciter
	ceiling dynamics.SoftCeiling

	dryWet       param.Smoothed
	compensation float64
	mode         int

	meter  *meter.Meter
	levels meter.StereoLevels

	scratchL []float64
	scratchR []float64

	sampleRate float64
	maxDelayMs int
	prepared   bool
}

// NewChain creates a chain with default controls (Studio, 0 % energy, 50 %
// field amount) and optional overrides. It must be prepared before use.
func NewChain(opts ...ChainOption) (*Chain, error) {
	cfg := defaultChainConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		err := opt(&cfg)
		if err != nil {
			return nil, err
		}
	}

	c := &Chain{
		cfg:          cfg,
		controls:     newControls(),
		exciter:      effects.NewHarmonicExciter(),
		compensation: 1,
		mode:         noModeConfigured,
		meter:        meter.NewMeter(0),
	}
	for i := range c.taps {
		c.taps[i] = spatial.NewTap()
	}

	c.controls.SetMode(cfg.mode)
	c.controls.SetEnergy(cfg.energy)
	c.controls.SetFieldAmount(cfg.fieldAmount)

	return c, nil
}

// Prepare allocates delay memory for maxDelayMs at sampleRate, applies the
// current controls and clears all state. It must not run concurrently
// with processing.
func (c *Chain) Prepare(sampleRate float64, maxDelayMs int) error {
	if !core.IsFinitePositive(sampleRate) {
		return fmt.Errorf("field sample rate must be positive and finite: %f", sampleRate)
	}
	if maxDelayMs <= 0 {
		return fmt.Errorf("field max delay must be > 0: %d", maxDelayMs)
	}
	return c.PrepareWith(core.WithSampleRate(sampleRate), core.WithMaxDelayMs(maxDelayMs))
}

// PrepareWith is Prepare driven by processor options. BlockSize presizes
// the metering and interleave scratch so blocks up to that size never
// allocate.
func (c *Chain) PrepareWith(opts ...core.ProcessorOption) error {
	pc := core.ApplyProcessorOptions(opts...)
	if !core.IsFinitePositive(pc.SampleRate) {
		return fmt.Errorf("field sample rate must be positive and finite: %f", pc.SampleRate)
	}
	if pc.MaxDelayMs <= 0 {
		return fmt.Errorf("field max delay must be > 0: %d", pc.MaxDelayMs)
	}

	c.prepared = false
	for i, tap := range c.taps {
		if err := tap.Prepare(pc.SampleRate, pc.MaxDelayMs); err != nil {
			return fmt.Errorf("field tap %d: %w", i+1, err)
		}
	}

	c.sampleRate = pc.SampleRate
	c.maxDelayMs = pc.MaxDelayMs
	c.meter.Grow(pc.BlockSize)
	c.scratchL = core.EnsureLen(c.scratchL, pc.BlockSize)
	c.scratchR = core.EnsureLen(c.scratchR, pc.BlockSize)

	snap := c.controls.Snapshot()
	c.mode = noModeConfigured
	c.applyControls(snap)

	c.dryWet = param.NewSmoothed(snap.FieldAmountPercent/100,
		param.CoeffForTime(c.cfg.dryWetTimeMs, c.sampleRate))

	c.Reset()
	c.prepared = true
	return nil
}

// Reset clears delay lines, filter state and published levels. Controls
// and smoother positions are kept.
func (c *Chain) Reset() {
	for _, tap := range c.taps {
		tap.Reset()
	}
	c.levels.Reset()
}

// Controls returns the chain's control values.
func (c *Chain) Controls() *Controls { return c.controls }

// Levels returns the RMS levels of the most recently processed block.
func (c *Chain) Levels() meter.Levels { return c.levels.Load() }

// Mode returns the mode the taps are currently configured for, or -1
// before the chain has been prepared.
func (c *Chain) Mode() int { return c.mode }

// Config returns the preset for the current mode.
func (c *Chain) Config() ModeConfig {
	cfg, _ := Lookup(ClampMode(c.mode))
	return cfg
}

// Tap returns tap i (0-based) for inspection, or nil when out of range.
// Changing its parameters lasts only until the next mode change.
func (c *Chain) Tap(i int) *spatial.Tap {
	if i < 0 || i >= NumTaps {
		return nil
	}
	return c.taps[i]
}

// Exciter returns the harmonic stage for inspection.
func (c *Chain) Exciter() *effects.HarmonicExciter { return c.exciter }

// SampleRate returns the prepared sample rate, or 0 before Prepare.
func (c *Chain) SampleRate() float64 { return c.sampleRate }

// MaxDelayMs returns the prepared delay capacity.
func (c *Chain) MaxDelayMs() int { return c.maxDelayMs }

// Prepared reports whether the chain is ready to process.
func (c *Chain) Prepared() bool { return c.prepared }

// DryWet returns the current smoothed wet fraction.
func (c *Chain) DryWet() float64 { return c.dryWet.Current() }

// ProcessStereoInPlace processes one block held in two equal-length
// channel buffers.
func (c *Chain) ProcessStereoInPlace(left, right []float64) error {
	if !c.prepared {
		return ErrNotPrepared
	}
	if len(left) != len(right) {
		return fmt.Errorf("%w: left %d, right %d", ErrLengthMismatch, len(left), len(right))
	}

	c.applyControls(c.controls.Snapshot())

	for i := range left {
		left[i], right[i] = c.processFrame(left[i], right[i])
	}
	for _, tap := range c.taps {
		tap.FlushDenormals()
	}

	c.levels.Publish(meter.Levels{
		Left:  c.meter.RMS(left),
		Right: c.meter.RMS(right),
	})
	return nil
}

// ProcessStereo processes srcL/srcR into dstL/dstR. All four buffers must
// have the same length; dst may alias src.
func (c *Chain) ProcessStereo(dstL, dstR, srcL, srcR []float64) error {
	n := len(srcL)
	if len(srcR) != n || len(dstL) != n || len(dstR) != n {
		return fmt.Errorf("%w: src %d/%d, dst %d/%d", ErrLengthMismatch,
			len(srcL), len(srcR), len(dstL), len(dstR))
	}

	copy(dstL, srcL)
	copy(dstR, srcR)
	return c.ProcessStereoInPlace(dstL, dstR)
}

// ProcessInterleavedInPlace processes one block of L,R,L,R frames.
// Blocks longer than the prepared block size allocate once.
func (c *Chain) ProcessInterleavedInPlace(buf []float64) error {
	if !c.prepared {
		return ErrNotPrepared
	}
	if len(buf)%2 != 0 {
		return fmt.Errorf("%w: interleaved length %d is not a whole number of frames", ErrLengthMismatch, len(buf))
	}

	n := len(buf) / 2
	c.scratchL = core.EnsureLen(c.scratchL, n)
	c.scratchR = core.EnsureLen(c.scratchR, n)
	left, right := c.scratchL[:n], c.scratchR[:n]

	for i := range n {
		left[i] = buf[2*i]
		right[i] = buf[2*i+1]
	}

	if err := c.ProcessStereoInPlace(left, right); err != nil {
		return err
	}

	for i := range n {
		buf[2*i] = left[i]
		buf[2*i+1] = right[i]
	}
	return nil
}

func (c *Chain) processFrame(dryL, dryR float64) (float64, float64) {
	mono := (dryL + dryR) * monoSumGain * preExciterTrim
	mono = c.exciter.ProcessSample(mono)
	mono = c.ceiling.ProcessSample(mono)

	var wetL, wetR float64
	for _, tap := range c.taps {
		l, r := tap.Process(mono)
		wetL += l
		wetR += r
	}
	wetL *= c.compensation
	wetR *= c.compensation

	w := c.dryWet.Next()
	return dryL*(1-w) + wetL*w, dryR*(1-w) + wetR*w
}

func (c *Chain) applyControls(snap ControlSnapshot) {
	mode := ClampMode(snap.Mode)
	cfg, _ := Lookup(mode)

	if mode != c.mode {
		for i, tc := range cfg.Taps {
			c.taps[i].SetParameters(tc.DelayMs, tc.Pan, tc.CutoffHz, tc.GainDb)
		}
		c.compensation = cfg.CompensationGain()
		c.mode = mode
	}

	c.exciter.SetEnergy(snap.EnergyPercent)
	c.exciter.SetProfile(cfg.HarmonicProfile)
	c.dryWet.SetTarget(snap.FieldAmountPercent / 100)
}
