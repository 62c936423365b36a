package delay

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-field/internal/testutil"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

// --- construction and validation ---

func TestNewValidation(t *testing.T) {
	if _, err := New(0, 100); err == nil {
		t.Fatal("expected error for sampleRate=0")
	}

	if _, err := New(math.NaN(), 100); err == nil {
		t.Fatal("expected error for NaN sample rate")
	}

	if _, err := New(44100, 0); err == nil {
		t.Fatal("expected error for maxDelayMs=0")
	}
}

func TestPrepareSizing(t *testing.T) {
	for _, tc := range []struct {
		sampleRate float64
		maxDelayMs int
		want       int
	}{
		{sampleRate: 44100, maxDelayMs: 100, want: 4412},
		{sampleRate: 48000, maxDelayMs: 100, want: 4802},
		{sampleRate: 44100, maxDelayMs: 1, want: 47},
		{sampleRate: 96000, maxDelayMs: 50, want: 4802},
	} {
		d, err := New(tc.sampleRate, tc.maxDelayMs)
		if err != nil {
			t.Fatal(err)
		}

		if d.Len() != tc.want {
			t.Fatalf("sr=%v max=%d: Len = %d, want %d", tc.sampleRate, tc.maxDelayMs, d.Len(), tc.want)
		}
	}
}

// --- delay time ---

func TestSetDelayMsClamps(t *testing.T) {
	d, err := New(48000, 100)
	if err != nil {
		t.Fatal(err)
	}

	d.SetDelayMs(-5)
	if d.DelayMs() != 0 || d.DelaySamples() != 0 {
		t.Fatalf("negative delay: ms=%v samples=%v, want 0", d.DelayMs(), d.DelaySamples())
	}

	d.SetDelayMs(250)
	if d.DelayMs() != 100 {
		t.Fatalf("DelayMs = %v, want 100", d.DelayMs())
	}
	if d.DelaySamples() != 4800 {
		t.Fatalf("DelaySamples = %v, want 4800", d.DelaySamples())
	}
	if d.DelaySamples() >= float64(d.Len()-1) {
		t.Fatalf("DelaySamples %v must stay below Len-1 (%d)", d.DelaySamples(), d.Len()-1)
	}
}

func TestSetDelayMsRespectsPreparedMaximum(t *testing.T) {
	d, err := New(1000, 10)
	if err != nil {
		t.Fatal(err)
	}

	d.SetDelayMs(80)
	if d.DelayMs() != 10 {
		t.Fatalf("DelayMs = %v, want 10", d.DelayMs())
	}
	if d.DelaySamples() >= float64(d.Len()-1) {
		t.Fatalf("DelaySamples %v must stay below Len-1 (%d)", d.DelaySamples(), d.Len()-1)
	}
}

func TestDelaySurvivesPrepare(t *testing.T) {
	var d Line
	d.SetDelayMs(10)

	if err := d.Prepare(48000, 100); err != nil {
		t.Fatal(err)
	}

	if d.DelaySamples() != 480 {
		t.Fatalf("DelaySamples = %v, want 480", d.DelaySamples())
	}
}

// --- processing ---

func TestIntegerDelayExact(t *testing.T) {
	// 1 kHz makes every whole millisecond an integer sample count.
	d, err := New(1000, 100)
	if err != nil {
		t.Fatal(err)
	}

	const k = 7

	d.SetDelayMs(k)

	in := testutil.DeterministicNoise(3, 1, 64)
	out := make([]float64, len(in))
	for i, x := range in {
		out[i] = d.Process(x)
	}

	for i := range out {
		want := 0.0
		if i >= k {
			want = in[i-k]
		}
		if out[i] != want {
			t.Fatalf("out[%d] = %v, want exactly %v", i, out[i], want)
		}
	}
}

func TestFractionalDelayBlendsNeighbours(t *testing.T) {
	d, err := New(1000, 100)
	if err != nil {
		t.Fatal(err)
	}

	d.SetDelayMs(2.25)

	in := testutil.DeterministicSine(37, 1000, 0.8, 40)
	for i, x := range in {
		got := d.Process(x)
		if i < 3 {
			continue
		}
		// readPos = n - 2.25 sits 0.75 of the way from x[n-3] to x[n-2].
		want := in[i-3] + 0.75*(in[i-2]-in[i-3])
		if !approxEqual(got, want, 1e-12) {
			t.Fatalf("n=%d: got %v want %v", i, got, want)
		}
	}
}

func TestZeroDelayReturnsCurrentSample(t *testing.T) {
	d, err := New(1000, 10)
	if err != nil {
		t.Fatal(err)
	}

	for _, x := range []float64{0.5, -0.25, 1} {
		if got := d.Process(x); got != x {
			t.Fatalf("Process(%v) = %v with zero delay", x, got)
		}
	}
}

func TestProcessWrapsAround(t *testing.T) {
	d, err := New(1000, 4) // 6 slots
	if err != nil {
		t.Fatal(err)
	}

	d.SetDelayMs(4)

	for i := 0; i < 50; i++ {
		got := d.Process(float64(i))
		want := 0.0
		if i >= 4 {
			want = float64(i - 4)
		}
		if got != want {
			t.Fatalf("n=%d: got %v want %v", i, got, want)
		}
	}
}

func TestUnpreparedProcessIsSilent(t *testing.T) {
	var d Line
	if got := d.Process(1); got != 0 {
		t.Fatalf("Process on unprepared line = %v, want 0", got)
	}
}

// --- integer Read/Write ---

func TestReadWrite(t *testing.T) {
	d, err := New(1000, 6) // 8 slots
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 8; i++ {
		d.Write(float64(i))
	}
	// delay=1 => most recently written (7)
	if got := d.Read(1); got != 7 {
		t.Fatalf("got %v want 7", got)
	}
	// delay=3 => 3 samples back from write head
	if got := d.Read(3); got != 5 {
		t.Fatalf("got %v want 5", got)
	}
}

func TestReset(t *testing.T) {
	d, err := New(1000, 10)
	if err != nil {
		t.Fatal(err)
	}

	d.SetDelayMs(3)
	for i := 0; i < 20; i++ {
		d.Process(1)
	}

	size := d.Len()
	d.Reset()

	if d.Len() != size {
		t.Fatalf("Reset changed capacity: %d -> %d", size, d.Len())
	}
	if d.DelaySamples() != 3 {
		t.Fatalf("Reset changed delay: %v", d.DelaySamples())
	}
	for i := 0; i < 5; i++ {
		if got := d.Process(0); got != 0 {
			t.Fatalf("after Reset sample %d = %v, want 0", i, got)
		}
	}
}

func BenchmarkLineProcess(b *testing.B) {
	d, err := New(48000, 100)
	if err != nil {
		b.Fatal(err)
	}
	d.SetDelayMs(23.7)

	b.ReportAllocs()
	b.ResetTimer()

	x := 0.0
	for i := 0; i < b.N; i++ {
		x = d.Process(x*0.5 + 0.1)
	}
}
