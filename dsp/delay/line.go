package delay

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-field/dsp/core"
	"github.com/cwbudde/algo-field/dsp/interp"
)

const (
	// MaxDelayMs is the longest delay time any Line accepts.
	MaxDelayMs = 100.0

	defaultSampleRate = 44100.0
)

// Line is a circular delay line.
//
// Process writes the input before reading, so a delay of 0 returns the
// sample just written and any positive delay reads strictly behind it.
type Line struct {
	buffer   []float64
	writePos int

	sampleRate   float64
	maxDelayMs   float64
	delayMs      float64
	delaySamples float64
}

// New returns a delay line prepared for sampleRate and maxDelayMs.
func New(sampleRate float64, maxDelayMs int) (*Line, error) {
	d := &Line{}
	if err := d.Prepare(sampleRate, maxDelayMs); err != nil {
		return nil, err
	}
	return d, nil
}

// Prepare sizes the buffer to ceil(sampleRate*maxDelayMs/1000)+2 samples and
// resets it. Existing capacity is reused when large enough. Must not be
// called concurrently with Process.
func (d *Line) Prepare(sampleRate float64, maxDelayMs int) error {
	if !core.IsFinitePositive(sampleRate) {
		return fmt.Errorf("delay sample rate must be positive and finite: %f", sampleRate)
	}
	if maxDelayMs <= 0 {
		return fmt.Errorf("delay max delay must be > 0: %d", maxDelayMs)
	}

	size := int(math.Ceil(sampleRate*float64(maxDelayMs)/1000)) + 2
	d.buffer = core.EnsureLen(d.buffer, size)
	d.sampleRate = sampleRate
	d.maxDelayMs = float64(maxDelayMs)
	d.Reset()
	d.SetDelayMs(d.delayMs)
	return nil
}

// Len returns internal buffer size.
func (d *Line) Len() int {
	return len(d.buffer)
}

// SampleRate returns the rate the line was prepared for.
func (d *Line) SampleRate() float64 {
	if d.sampleRate == 0 {
		return defaultSampleRate
	}
	return d.sampleRate
}

// DelayMs returns the clamped delay time in milliseconds.
func (d *Line) DelayMs() float64 { return d.delayMs }

// DelaySamples returns the fractional delay in samples.
func (d *Line) DelaySamples() float64 { return d.delaySamples }

// SetDelayMs clamps ms to [0, 100] (and to the prepared maximum) and
// converts it to a fractional sample count at the current sample rate.
func (d *Line) SetDelayMs(ms float64) {
	limit := MaxDelayMs
	if d.maxDelayMs > 0 && d.maxDelayMs < limit {
		limit = d.maxDelayMs
	}

	d.delayMs = core.Clamp(ms, 0, limit)
	d.delaySamples = d.delayMs * d.SampleRate() / 1000

	// Keep one slot of interpolation lookahead: delaySamples < Len()-1.
	if size := len(d.buffer); size >= 2 && d.delaySamples > float64(size-2) {
		d.delaySamples = float64(size - 2)
	}
}

// Process writes one sample and returns the delayed, interpolated output.
func (d *Line) Process(sample float64) float64 {
	size := len(d.buffer)
	if size == 0 {
		return 0
	}

	d.buffer[d.writePos] = sample

	readPos := float64(d.writePos) - d.delaySamples
	if readPos < 0 {
		readPos += float64(size)
	}

	i0 := int(readPos)
	frac := readPos - float64(i0)
	if i0 >= size {
		i0 -= size
	}
	i1 := i0 + 1
	if i1 >= size {
		i1 = 0
	}

	out := interp.Linear2(frac, d.buffer[i0], d.buffer[i1])

	d.writePos++
	if d.writePos >= size {
		d.writePos = 0
	}

	return out
}

// Write writes one sample without reading.
func (d *Line) Write(sample float64) {
	d.buffer[d.writePos] = sample
	d.writePos++
	if d.writePos >= len(d.buffer) {
		d.writePos = 0
	}
}

// Read reads an integer delay in samples relative to the write head;
// Read(1) is the most recently written sample.
func (d *Line) Read(delay int) float64 {
	size := len(d.buffer)
	if size == 0 {
		return 0
	}
	readPos := ((d.writePos-delay)%size + size) % size
	return d.buffer[readPos]
}

// Reset clears line state. The buffer keeps its capacity.
func (d *Line) Reset() {
	core.Zero(d.buffer)
	d.writePos = 0
}
