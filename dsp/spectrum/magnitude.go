package spectrum

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// ErrInvalidFFTSize is returned for FFT sizes that are not a power of two
// of at least 2.
var ErrInvalidFFTSize = errors.New("spectrum: fft size must be a power of two >= 2")

// Magnitude returns |X[k]| for each bin.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	re := make([]float64, len(in))
	im := make([]float64, len(in))
	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	out := make([]float64, len(in))
	vecmath.Magnitude(out, re, im)
	return out
}

// ImpulseMagnitude returns the magnitude of the first fftSize samples of ir
// (zero-padded when shorter) for bins 0 through fftSize/2.
func ImpulseMagnitude(ir []float64, fftSize int) ([]float64, error) {
	if fftSize < 2 || fftSize&(fftSize-1) != 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFFTSize, fftSize)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("spectrum: fft plan: %w", err)
	}

	in := make([]complex128, fftSize)
	for i := 0; i < fftSize && i < len(ir); i++ {
		in[i] = complex(ir[i], 0)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("spectrum: forward fft: %w", err)
	}

	return Magnitude(out[:fftSize/2+1]), nil
}

// BinFrequency returns the center frequency in Hz of bin k.
func BinFrequency(k, fftSize int, sampleRate float64) float64 {
	if fftSize <= 0 {
		return 0
	}
	return float64(k) * sampleRate / float64(fftSize)
}

// FrequencyBin returns the bin nearest to freqHz, clamped to [0, fftSize/2].
func FrequencyBin(freqHz float64, fftSize int, sampleRate float64) int {
	if fftSize <= 0 || sampleRate <= 0 {
		return 0
	}
	k := int(math.Round(freqHz * float64(fftSize) / sampleRate))
	return min(max(k, 0), fftSize/2)
}

// ToDB converts magnitudes to dB in place. Zero maps to floorDB.
func ToDB(mag []float64, floorDB float64) {
	for i, m := range mag {
		if m <= 0 {
			mag[i] = floorDB
			continue
		}
		mag[i] = max(20*math.Log10(m), floorDB)
	}
}
