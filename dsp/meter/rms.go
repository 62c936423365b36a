package meter

import (
	"math"

	"github.com/cwbudde/algo-field/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// RMS returns sqrt(mean(x^2)) of block, or 0 for an empty block.
// A constant block of amplitude a yields exactly |a|.
func RMS(block []float64) float64 {
	if len(block) == 0 {
		return 0
	}

	var mean float64
	for i, x := range block {
		sq := float64(x * x)
		mean += (sq - mean) / float64(i+1)
	}

	return math.Sqrt(mean)
}

// Meter computes block RMS without allocating once it has been sized.
type Meter struct {
	squares []float64
}

// NewMeter returns a Meter with scratch space for blocks up to maxBlock samples.
func NewMeter(maxBlock int) *Meter {
	m := &Meter{}
	m.Grow(maxBlock)
	return m
}

// Grow ensures scratch space for blocks of n samples. Call it from the
// control path; RMS grows on demand but that allocates.
func (m *Meter) Grow(n int) {
	if n > cap(m.squares) {
		m.squares = make([]float64, n)
	}
}

// RMS returns sqrt(mean(x^2)) of block, or 0 for an empty block.
func (m *Meter) RMS(block []float64) float64 {
	n := len(block)
	if n == 0 {
		return 0
	}

	sq := core.EnsureLen(m.squares, n)
	m.squares = sq[:cap(sq)]

	vecmath.MulBlock(sq, block, block)

	return math.Sqrt(runningMean(sq))
}

// runningMean averages without a growing sum, so a constant input is
// reproduced bit for bit.
func runningMean(values []float64) float64 {
	var mean float64
	for i, v := range values {
		mean += (v - mean) / float64(i+1)
	}
	return mean
}
