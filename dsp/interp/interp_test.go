package interp

import "testing"

func TestLinear2(t *testing.T) {
	for _, tc := range []struct {
		name   string
		t      float64
		x0, x1 float64
		want   float64
	}{
		{name: "start", t: 0, x0: 0.3, x1: -7, want: 0.3},
		{name: "quarter", t: 0.25, x0: 2, x1: 4, want: 2.5},
		{name: "half", t: 0.5, x0: -1, x1: 1, want: 0},
		{name: "equal", t: 0.9, x0: 1.5, x1: 1.5, want: 1.5},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := Linear2(tc.t, tc.x0, tc.x1)
			if diff := got - tc.want; diff < -1e-12 || diff > 1e-12 {
				t.Fatalf("Linear2(%v, %v, %v) = %v, want %v", tc.t, tc.x0, tc.x1, got, tc.want)
			}
		})
	}
}

func TestLinear2ExactAtZero(t *testing.T) {
	x0 := 0.1234567890123
	if got := Linear2(0, x0, 1e9); got != x0 {
		t.Fatalf("Linear2(0) = %v, want exactly %v", got, x0)
	}
}
