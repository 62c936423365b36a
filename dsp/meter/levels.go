package meter

import (
	"math"
	"runtime"
	"sync/atomic"
)

// Levels is one left/right RMS snapshot.
type Levels struct {
	Left  float64
	Right float64
}

// StereoLevels publishes Levels from a single writer to any number of readers.
//
// It is a sequence lock built from atomics: the writer bumps the sequence to
// odd, stores both channels, then bumps it back to even. Publish never
// waits. Load retries only while a write is in flight, so it never returns a
// pair mixed from two different blocks.
type StereoLevels struct {
	seq   atomic.Uint64
	left  atomic.Uint64
	right atomic.Uint64
}

// Publish stores l. Only one goroutine may call Publish.
func (s *StereoLevels) Publish(l Levels) {
	s.seq.Add(1)
	s.left.Store(math.Float64bits(l.Left))
	s.right.Store(math.Float64bits(l.Right))
	s.seq.Add(1)
}

// Load returns the most recently completed snapshot.
func (s *StereoLevels) Load() Levels {
	for {
		start := s.seq.Load()
		if start&1 == 0 {
			l := Levels{
				Left:  math.Float64frombits(s.left.Load()),
				Right: math.Float64frombits(s.right.Load()),
			}
			if s.seq.Load() == start {
				return l
			}
		}
		runtime.Gosched()
	}
}

// Reset publishes silence.
func (s *StereoLevels) Reset() {
	s.Publish(Levels{})
}
