package main

import (
	"io"
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-field/dsp/effects/field"
)

// source generates the test program: a click every 750 ms and a decaying
// 220 Hz pluck every 1.5 s.
type source struct {
	sampleRate float64
	pos        int
}

func newSource(sampleRate float64) *source {
	return &source{sampleRate: sampleRate}
}

func (s *source) next() (left, right float64) {
	clickPeriod := int(0.75 * s.sampleRate)
	pluckPeriod := 2 * clickPeriod

	var v float64
	if s.pos%clickPeriod == 0 {
		v = 0.8
	}

	t := float64(s.pos%pluckPeriod)/s.sampleRate - 0.375
	if t >= 0 {
		env := math.Exp(-6 * t)
		ph := 2 * math.Pi * 220 * t
		v += 0.3 * env * (math.Sin(ph) + 0.3*math.Sin(2*ph))
	}

	s.pos++
	return v, v
}

// renderer is an io.Reader producing float32 LE stereo frames processed by
// the chain one block at a time.
type renderer struct {
	chain  *field.Chain
	src    *source
	remain int

	left, right []float64
	dryL, dryR  []float64
	out         []byte
	pending     []byte

	toggleEvery int
	rendered    int
	dry         atomic.Bool
}

func newRenderer(chain *field.Chain, src *source, frames int) *renderer {
	return &renderer{
		chain:  chain,
		src:    src,
		remain: frames,
		left:   make([]float64, blockFrames),
		right:  make([]float64, blockFrames),
		dryL:   make([]float64, blockFrames),
		dryR:   make([]float64, blockFrames),
		out:    make([]byte, 8*blockFrames),
	}
}

func (r *renderer) Read(p []byte) (int, error) {
	if len(r.pending) == 0 {
		if r.remain <= 0 {
			return 0, io.EOF
		}
		if err := r.renderBlock(); err != nil {
			return 0, err
		}
	}

	n := copy(p, r.pending)
	r.pending = r.pending[n:]
	return n, nil
}

func (r *renderer) renderBlock() error {
	n := min(blockFrames, r.remain)
	left, right := r.left[:n], r.right[:n]
	for i := range n {
		left[i], right[i] = r.src.next()
	}

	if r.toggleEvery > 0 {
		r.dry.Store((r.rendered/r.toggleEvery)%2 == 1)
	}

	// The chain runs in both phases; dry output is the unprocessed copy.
	outL, outR := left, right
	if r.dry.Load() {
		outL, outR = r.dryL[:n], r.dryR[:n]
		copy(outL, left)
		copy(outR, right)
	}
	if err := r.chain.ProcessStereoInPlace(left, right); err != nil {
		return err
	}

	buf := r.out[:8*n]
	for i := range n {
		putFrameF32(buf[8*i:], outL[i], outR[i])
	}

	r.pending = buf
	r.remain -= n
	r.rendered += n
	return nil
}

func (r *renderer) label() string {
	if r.dry.Load() {
		return "dry"
	}
	return "fx "
}

func putFrameF32(buf []byte, left, right float64) {
	lv := math.Float32bits(float32(left))
	rv := math.Float32bits(float32(right))
	buf[0] = byte(lv)
	buf[1] = byte(lv >> 8)
	buf[2] = byte(lv >> 16)
	buf[3] = byte(lv >> 24)
	buf[4] = byte(rv)
	buf[5] = byte(rv >> 8)
	buf[6] = byte(rv >> 16)
	buf[7] = byte(rv >> 24)
}
