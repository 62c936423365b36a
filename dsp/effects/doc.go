// Package effects provides the mono nonlinear stages of the field signal
// path.
//
// Subpackages:
//   - github.com/cwbudde/algo-field/dsp/effects/dynamics: output ceiling
//   - github.com/cwbudde/algo-field/dsp/effects/spatial: delayed, panned reflections
//   - github.com/cwbudde/algo-field/dsp/effects/field: the complete processor
//
// Effects in this package:
//   - HarmonicExciter: energy/profile controlled even-and-odd waveshaper.
//
// Stages run sample by sample with no allocation after construction.
package effects
