package main

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/cwbudde/algo-field/dsp/effects/field"
)

// processor adapts the chain to an interleaved float32 stream callback.
type processor struct {
	chain   *field.Chain
	buf     []float64
	lastErr atomic.Pointer[error]
}

func newProcessor(chain *field.Chain, frames int) *processor {
	return &processor{chain: chain, buf: make([]float64, 2*frames)}
}

// process is the audio callback. in and out hold interleaved stereo frames.
func (p *processor) process(in, out []float32) {
	n := min(len(in), len(out))
	if n > len(p.buf) {
		p.buf = make([]float64, n)
	}
	buf := p.buf[:n]

	for i := range buf {
		buf[i] = float64(in[i])
	}

	if err := p.chain.ProcessInterleavedInPlace(buf); err != nil {
		p.lastErr.Store(&err)
		clear(out)
		return
	}

	for i := range buf {
		out[i] = float32(buf[i])
	}
	clear(out[n:])
}

func (p *processor) err() error {
	if err := p.lastErr.Load(); err != nil {
		return *err
	}
	return nil
}

// applyCommand parses one control line. It reports done for "quit".
func applyCommand(chain *field.Chain, line string) (done bool, err error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return false, nil
	}

	ctrl := chain.Controls()
	switch fields[0] {
	case "quit", "exit", "q":
		return true, nil
	case "levels":
		printLevels(chain)
		return false, nil
	case "mode":
		if len(fields) < 2 {
			return false, fmt.Errorf("usage: mode studio|soundsystem")
		}
		mode, err := field.ParseMode(strings.Join(fields[1:], " "))
		if err != nil {
			return false, err
		}
		ctrl.SetMode(mode)
	case "energy", "amount":
		if len(fields) != 2 {
			return false, fmt.Errorf("usage: %s 0-100", fields[0])
		}
		v, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return false, fmt.Errorf("%s: %w", fields[0], err)
		}
		if fields[0] == "energy" {
			ctrl.SetEnergy(v)
		} else {
			ctrl.SetFieldAmount(v)
		}
	default:
		return false, fmt.Errorf("unknown command %q", fields[0])
	}

	return false, nil
}
