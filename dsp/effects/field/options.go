package field

import (
	"fmt"
	"math"
)

const defaultDryWetTimeMs = 20.0

// ChainOption mutates chain construction parameters.
type ChainOption func(*chainConfig) error

type chainConfig struct {
	mode         int
	energy       float64
	fieldAmount  float64
	dryWetTimeMs float64
}

func defaultChainConfig() chainConfig {
	return chainConfig{
		mode:         ModeStudio,
		energy:       defaultEnergyPercent,
		fieldAmount:  defaultFieldAmountPercent,
		dryWetTimeMs: defaultDryWetTimeMs,
	}
}

// WithMode sets the initial mode index.
func WithMode(mode int) ChainOption {
	return func(cfg *chainConfig) error {
		if _, ok := Lookup(mode); !ok {
			return fmt.Errorf("field mode must be %d or %d: %d", ModeStudio, ModeSoundSystem, mode)
		}

		cfg.mode = mode

		return nil
	}
}

// WithEnergy sets the initial harmonic energy in percent.
func WithEnergy(percent float64) ChainOption {
	return func(cfg *chainConfig) error {
		if !validPercent(percent) {
			return fmt.Errorf("field energy must be in [%g, %g]: %f", minPercent, maxPercent, percent)
		}

		cfg.energy = percent

		return nil
	}
}

// WithFieldAmount sets the initial wet share in percent.
func WithFieldAmount(percent float64) ChainOption {
	return func(cfg *chainConfig) error {
		if !validPercent(percent) {
			return fmt.Errorf("field amount must be in [%g, %g]: %f", minPercent, maxPercent, percent)
		}

		cfg.fieldAmount = percent

		return nil
	}
}

// WithDryWetTimeMs sets the time constant of the dry/wet smoother.
// The default is 20 ms.
func WithDryWetTimeMs(ms float64) ChainOption {
	return func(cfg *chainConfig) error {
		if ms <= 0 || math.IsNaN(ms) || math.IsInf(ms, 0) {
			return fmt.Errorf("field dry/wet time must be > 0 and finite: %f", ms)
		}

		cfg.dryWetTimeMs = ms

		return nil
	}
}

func validPercent(v float64) bool {
	return v >= minPercent && v <= maxPercent
}
