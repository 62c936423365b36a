package biquad

import (
	"fmt"
	"testing"
)

func BenchmarkProcessSample(b *testing.B) {
	s := NewSection(Design(LowPass, 6000, ButterworthQ, 48000))

	b.ReportAllocs()
	b.ResetTimer()

	x := 0.5
	for i := 0; i < b.N; i++ {
		x = s.ProcessSample(x) + 0.1
	}
}

func BenchmarkProcessBlock(b *testing.B) {
	for _, n := range []int{64, 256, 1024} {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			s := NewSection(Design(LowPass, 6000, ButterworthQ, 48000))
			buf := make([]float64, n)
			for i := range buf {
				buf[i] = float64(i%7) * 0.1
			}

			b.ReportAllocs()
			b.SetBytes(int64(n * 8))
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				s.ProcessBlock(buf)
			}
		})
	}
}

func BenchmarkFilterProcessSample(b *testing.B) {
	f, err := NewFilter(48000)
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()

	x := 0.5
	for i := 0; i < b.N; i++ {
		x = f.ProcessSample(x) + 0.1
	}
}
