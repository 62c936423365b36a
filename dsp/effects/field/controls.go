package field

import (
	"github.com/cwbudde/algo-field/dsp/core"
	"github.com/cwbudde/algo-field/dsp/param"
)

const (
	defaultEnergyPercent      = 0.0
	defaultFieldAmountPercent = 50.0

	minPercent = 0.0
	maxPercent = 100.0
)

// ControlSnapshot is the set of control values one block is processed with.
type ControlSnapshot struct {
	Mode               int
	EnergyPercent      float64
	FieldAmountPercent float64
}

// Controls holds the three user-facing controls of a Chain.
//
// Any goroutine may call the setters at any time; the audio goroutine reads
// them with Snapshot at block boundaries. Every value is clamped on store,
// so the audio path never sees an out-of-range control.
type Controls struct {
	mode        param.Int
	energy      param.Float
	fieldAmount param.Float
}

func newControls() *Controls {
	c := &Controls{}
	c.SetMode(ModeStudio)
	c.SetEnergy(defaultEnergyPercent)
	c.SetFieldAmount(defaultFieldAmountPercent)
	return c
}

// SetMode selects ModeStudio or ModeSoundSystem. Other indices are clamped.
func (c *Controls) SetMode(mode int) { c.mode.Store(ClampMode(mode)) }

// SetEnergy sets harmonic excitation in percent, clamped to [0, 100].
func (c *Controls) SetEnergy(percent float64) {
	c.energy.Store(core.Clamp(percent, minPercent, maxPercent))
}

// SetFieldAmount sets the wet share in percent, clamped to [0, 100].
func (c *Controls) SetFieldAmount(percent float64) {
	c.fieldAmount.Store(core.Clamp(percent, minPercent, maxPercent))
}

// Mode returns the stored mode index.
func (c *Controls) Mode() int { return c.mode.Load() }

// Energy returns the stored energy percentage.
func (c *Controls) Energy() float64 { return c.energy.Load() }

// FieldAmount returns the stored field amount percentage.
func (c *Controls) FieldAmount() float64 { return c.fieldAmount.Load() }

// Snapshot reads all three controls. Each value is individually torn-free,
// but the three loads are independent: two setters called back to back from
// another goroutine may take effect one block apart. A Chain applies whatever
// each control holds at the block boundary.
func (c *Controls) Snapshot() ControlSnapshot {
	return ControlSnapshot{
		Mode:               c.mode.Load(),
		EnergyPercent:      c.energy.Load(),
		FieldAmountPercent: c.fieldAmount.Load(),
	}
}
