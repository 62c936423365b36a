// Package ir analyzes rendered impulse responses of early-reflection
// patterns.
//
// It locates discrete arrivals and derives the energy metrics that
// describe how reflections are distributed in time:
//
//   - Arrivals: onset, time and peak of each reflection
//   - D50: Definition (early energy fraction at 50 ms)
//   - C50, C80: Clarity (early-to-late energy ratio in dB)
//   - Center Time: Temporal energy centroid
//
// # Usage
//
//	analyzer := ir.NewAnalyzer(48000)
//	metrics, err := analyzer.Analyze(impulseResponse)
//	fmt.Printf("%d arrivals, Ts = %.1f ms\n", len(metrics.Arrivals), metrics.CenterTime*1000)
package ir
