package field

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-field/dsp/core"
)

// NumTaps is the number of reflections every mode defines.
const NumTaps = 6

// Mode indices accepted by Controls.SetMode.
const (
	ModeStudio      = 0
	ModeSoundSystem = 1
)

// TapConfig is the static setting of one reflection.
type TapConfig struct {
	DelayMs  float64
	Pan      float64 // -100 (left) to 100 (right)
	CutoffHz float64
	GainDb   float64
}

// ModeConfig is one complete reflection pattern.
type ModeConfig struct {
	Name               string
	Taps               [NumTaps]TapConfig
	HarmonicProfile    float64 // 0 to 1, scales exciter character
	CompensationTrimDb float64 // applied to the summed wet signal
}

// Studio is a short, bright pattern: reflections between 6 and 46 ms.
var Studio = ModeConfig{
	Name: "Studio",
	Taps: [NumTaps]TapConfig{
		{DelayMs: 6, Pan: -15, CutoffHz: 9500, GainDb: -12},
		{DelayMs: 11, Pan: 15, CutoffHz: 8500, GainDb: -13.5},
		{DelayMs: 17, Pan: -25, CutoffHz: 7200, GainDb: -15},
		{DelayMs: 24, Pan: 25, CutoffHz: 6000, GainDb: -17},
		{DelayMs: 32, Pan: -45, CutoffHz: 4800, GainDb: -19},
		{DelayMs: 46, Pan: 50, CutoffHz: 3800, GainDb: -22},
	},
	HarmonicProfile:    0.5,
	CompensationTrimDb: 0,
}

// SoundSystem is a wider, darker pattern: reflections between 8 and 70 ms
// with a stronger harmonic profile.
var SoundSystem = ModeConfig{
	Name: "Sound System",
	Taps: [NumTaps]TapConfig{
		{DelayMs: 8, Pan: -20, CutoffHz: 7000, GainDb: -11},
		{DelayMs: 15, Pan: 20, CutoffHz: 6200, GainDb: -12.5},
		{DelayMs: 23, Pan: -35, CutoffHz: 5400, GainDb: -14.5},
		{DelayMs: 34, Pan: 40, CutoffHz: 4400, GainDb: -16.5},
		{DelayMs: 48, Pan: -65, CutoffHz: 3400, GainDb: -18.5},
		{DelayMs: 70, Pan: 85, CutoffHz: 2600, GainDb: -21},
	},
	HarmonicProfile:    0.8,
	CompensationTrimDb: 0,
}

// Lookup returns the preset for a mode index. ok is false for anything
// other than ModeStudio or ModeSoundSystem.
func Lookup(mode int) (cfg ModeConfig, ok bool) {
	switch mode {
	case ModeStudio:
		return Studio, true
	case ModeSoundSystem:
		return SoundSystem, true
	default:
		return ModeConfig{}, false
	}
}

// ClampMode maps any index onto a valid mode.
func ClampMode(mode int) int {
	return min(max(mode, ModeStudio), ModeSoundSystem)
}

// Modes returns both presets in index order.
func Modes() []ModeConfig {
	return []ModeConfig{Studio, SoundSystem}
}

// ModeName returns the display name of a mode index after clamping.
func ModeName(mode int) string {
	cfg, _ := Lookup(ClampMode(mode))
	return cfg.Name
}

// LongestDelayMs returns the largest tap delay in cfg.
func (cfg ModeConfig) LongestDelayMs() float64 {
	longest := 0.0
	for _, t := range cfg.Taps {
		longest = max(longest, t.DelayMs)
	}
	return longest
}

// CompensationGain returns the linear wet trim.
func (cfg ModeConfig) CompensationGain() float64 {
	return core.DBToLinear(cfg.CompensationTrimDb)
}

// ParseMode resolves a mode name or index as typed on a command line:
// "studio", "soundsystem", "sound-system", "sound system", "0" or "1".
func ParseMode(name string) (int, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "studio", "0":
		return ModeStudio, nil
	case "soundsystem", "sound-system", "sound system", "sound_system", "1":
		return ModeSoundSystem, nil
	default:
		return 0, fmt.Errorf("field: unknown mode %q (want studio or soundsystem)", name)
	}
}
