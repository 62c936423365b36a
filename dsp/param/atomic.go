package param

import (
	"math"
	"sync/atomic"
)

// Float is a float64 shared between a control writer and an audio reader.
// The value is stored as IEEE-754 bits in an atomic uint64, so loads never
// tear and neither side blocks. The zero value holds 0.
type Float struct {
	bits atomic.Uint64
}

// NewFloat returns a Float holding v.
func NewFloat(v float64) *Float {
	f := &Float{}
	f.Store(v)
	return f
}

// Load returns the most recently stored value.
func (f *Float) Load() float64 {
	return math.Float64frombits(f.bits.Load())
}

// Store publishes v.
func (f *Float) Store(v float64) {
	f.bits.Store(math.Float64bits(v))
}

// Int is an integer control value (a choice index) with the same contract as Float.
type Int struct {
	v atomic.Int64
}

// Load returns the most recently stored value.
func (i *Int) Load() int {
	return int(i.v.Load())
}

// Store publishes v.
func (i *Int) Store(v int) {
	i.v.Store(int64(v))
}
