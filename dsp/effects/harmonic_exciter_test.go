package effects

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-field/internal/testutil"
)

func TestHarmonicExciterDefaults(t *testing.T) {
	e := NewHarmonicExciter()
	if e.Energy() != 0 || e.Profile() != defaultExciterProfile {
		t.Fatalf("defaults energy=%v profile=%v", e.Energy(), e.Profile())
	}
	if !e.Bypassed() {
		t.Fatal("new exciter must be bypassed")
	}
}

func TestHarmonicExciterZeroEnergyIsIdentity(t *testing.T) {
	e := NewHarmonicExciter()

	for _, profile := range []float64{0, 0.5, 0.8, 1} {
		e.SetProfile(profile)
		e.SetEnergy(0)

		for _, x := range append(testutil.DeterministicNoise(11, 4, 512), 0, 1, -1, 1e-300, 123.456) {
			if got := e.ProcessSample(x); got != x {
				t.Fatalf("profile=%v: ProcessSample(%v) = %v, want identity", profile, x, got)
			}
		}
	}
}

func TestHarmonicExciterBypassThreshold(t *testing.T) {
	e := NewHarmonicExciter()

	e.SetEnergy(0.09) // 0.0009 normalized
	if got := e.ProcessSample(0.5); got != 0.5 {
		t.Fatalf("below threshold ProcessSample = %v, want 0.5", got)
	}

	e.SetEnergy(0.1) // 0.001 normalized
	if e.Bypassed() {
		t.Fatal("0.1 % energy must leave bypass")
	}
	if got := e.ProcessSample(0.5); got == 0.5 {
		t.Fatal("active exciter returned input unchanged")
	}
}

func TestHarmonicExciterClamping(t *testing.T) {
	e := NewHarmonicExciter()

	e.SetEnergy(250)
	e.SetProfile(-3)
	if e.Energy() != 1 || e.Profile() != 0 {
		t.Fatalf("clamped energy=%v profile=%v, want 1 and 0", e.Energy(), e.Profile())
	}

	e.SetEnergy(-10)
	e.SetProfile(7)
	if e.Energy() != 0 || e.Profile() != 1 {
		t.Fatalf("clamped energy=%v profile=%v, want 0 and 1", e.Energy(), e.Profile())
	}
}

func TestHarmonicExciterCoefficients(t *testing.T) {
	tests := []struct {
		name     string
		energy   float64
		profile  float64
		wantEven float64
		wantOdd  float64
	}{
		{name: "studio full", energy: 100, profile: 0.5, wantEven: 0.35, wantOdd: 0},
		{name: "sound system full", energy: 100, profile: 0.8, wantEven: 0.44, wantOdd: 0.6 * 0.15 * 0.8},
		{name: "max profile full", energy: 100, profile: 1, wantEven: 0.5, wantOdd: 0.09},
		{name: "sound system gate", energy: 40, profile: 0.8, wantEven: math.Pow(0.4, 1.5) * 0.44, wantOdd: 0},
		{name: "sound system half", energy: 50, profile: 0.8, wantEven: math.Pow(0.5, 1.5) * 0.44, wantOdd: 0.1 * 0.15 * 0.8},
		{name: "profile gate", energy: 90, profile: 0.6, wantEven: math.Pow(0.9, 1.5) * 0.38, wantOdd: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewHarmonicExciter()
			e.SetProfile(tt.profile)
			e.SetEnergy(tt.energy)

			if math.Abs(e.EvenCoeff()-tt.wantEven) > 1e-12 {
				t.Errorf("EvenCoeff = %v, want %v", e.EvenCoeff(), tt.wantEven)
			}
			if math.Abs(e.OddCoeff()-tt.wantOdd) > 1e-12 {
				t.Errorf("OddCoeff = %v, want %v", e.OddCoeff(), tt.wantOdd)
			}
		})
	}
}

func TestHarmonicExciterOddGateIsExactZero(t *testing.T) {
	e := NewHarmonicExciter()

	for energy := 0.0; energy <= 100; energy += 2.5 {
		for profile := 0.0; profile <= 1.0001; profile += 0.05 {
			e.SetEnergy(energy)
			e.SetProfile(profile)

			gated := e.Profile() <= oddProfileGate || e.Energy() <= oddEnergyGate
			if gated && e.OddCoeff() != 0 {
				t.Fatalf("energy=%v profile=%v: OddCoeff = %v, want exactly 0", energy, profile, e.OddCoeff())
			}
			if e.EvenCoeff() < 0 || e.EvenCoeff() > maxEvenCoeff || e.OddCoeff() < 0 || e.OddCoeff() > maxOddCoeff {
				t.Fatalf("coefficients out of range: even=%v odd=%v", e.EvenCoeff(), e.OddCoeff())
			}
		}
	}
}

func TestHarmonicExciterWaveshape(t *testing.T) {
	e := NewHarmonicExciter()
	e.SetProfile(0.8)
	e.SetEnergy(100)

	even, odd := e.EvenCoeff(), e.OddCoeff()
	for _, x := range []float64{-1, -0.3, 0, 0.25, 0.5, 0.9} {
		y := x + even*x*x*math.Tanh(x) + odd*(0.1*x*x*x+0.05*math.Tanh(1.5*x))
		want := math.Tanh(0.9 * y)
		if got := e.ProcessSample(x); math.Abs(got-want) > 1e-6 {
			t.Fatalf("ProcessSample(%v) = %v, want %v", x, got, want)
		}
	}
}

func TestHarmonicExciterBoundedOutput(t *testing.T) {
	e := NewHarmonicExciter()
	e.SetProfile(1)
	e.SetEnergy(100)

	in := testutil.DeterministicNoise(7, 10, 4096)
	out := append([]float64(nil), in...)
	e.ProcessInPlace(out)

	testutil.RequireFinite(t, out)
	for i, y := range out {
		if math.Abs(y) > 1 {
			t.Fatalf("out[%d] = %v exceeds the soft clip", i, y)
		}
		if math.Signbit(y) != math.Signbit(in[i]) && y != 0 {
			t.Fatalf("out[%d] = %v flipped the sign of %v", i, y, in[i])
		}
	}
}

func TestHarmonicExciterOddSymmetry(t *testing.T) {
	// x^2*tanh(x) is odd-symmetric, so the transfer stays odd: f(-x) = -f(x).
	e := NewHarmonicExciter()
	e.SetProfile(0.5)
	e.SetEnergy(75)

	for _, x := range []float64{0.1, 0.4, 0.8} {
		if a, b := e.ProcessSample(x), e.ProcessSample(-x); math.Abs(a+b) > 1e-12 {
			t.Fatalf("f(%v)=%v, f(-%v)=%v", x, a, x, b)
		}
	}
}

func BenchmarkHarmonicExciterProcessSample(b *testing.B) {
	e := NewHarmonicExciter()
	e.SetProfile(0.8)
	e.SetEnergy(70)

	b.ReportAllocs()
	b.ResetTimer()

	x := 0.3
	for i := 0; i < b.N; i++ {
		x = e.ProcessSample(x)*0.5 + 0.2
	}
}
