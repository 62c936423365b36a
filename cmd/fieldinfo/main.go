// Command fieldinfo prints the reflection pattern of each field mode and
// measures it from a rendered impulse response.
//
// Usage:
//
//	fieldinfo [flags]
//
// For every selected mode it prints the configured taps next to the
// arrivals found in the rendered output, the energy metrics of the
// response, and its magnitude at octave frequencies.
//
// Examples:
//
//	fieldinfo
//	fieldinfo -mode soundsystem -rate 96000
//	fieldinfo -energy 0 -fft 16384
//	fieldinfo -list
package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-field/dsp/effects/field"
	"github.com/cwbudde/algo-field/dsp/spectrum"
	"github.com/cwbudde/algo-field/measure/ir"
)

var octaveBands = []float64{63, 125, 250, 500, 1000, 2000, 4000, 8000, 16000}

func main() {
	modeName := flag.String("mode", "all", "mode to analyze: studio, soundsystem or all")
	rate := flag.Float64("rate", 48000, "sample rate in Hz")
	energy := flag.Float64("energy", 100, "harmonic energy in percent")
	fftSize := flag.Int("fft", 8192, "FFT size for the magnitude response (power of two)")
	tone := flag.Float64("tone", 1000, "steady-state test tone in Hz (0 disables)")
	list := flag.Bool("list", false, "list available modes")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: fieldinfo [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Prints and measures the reflection pattern of field modes.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  fieldinfo -mode studio\n")
		fmt.Fprintf(os.Stderr, "  fieldinfo -rate 96000 -fft 16384\n")
		fmt.Fprintf(os.Stderr, "  fieldinfo -list\n")
	}
	flag.Parse()

	if *list {
		for i, m := range field.Modes() {
			fmt.Printf("%d\t%s\n", i, m.Name)
		}
		return
	}

	modes, err := resolveModes(*modeName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	for i, mode := range modes {
		if i > 0 {
			fmt.Println()
		}
		if err := report(os.Stdout, mode, *rate, *energy, *fftSize, *tone); err != nil {
			fmt.Fprintf(os.Stderr, "error: %s: %v\n", field.ModeName(mode), err)
			os.Exit(1)
		}
	}
}

func resolveModes(name string) ([]int, error) {
	if name == "all" {
		return []int{field.ModeStudio, field.ModeSoundSystem}, nil
	}

	mode, err := field.ParseMode(name)
	if err != nil {
		return nil, err
	}
	return []int{mode}, nil
}

// render returns the wet-only stereo response of mode to a unit impulse.
func render(mode int, sampleRate, energy float64, n int) (left, right []float64, err error) {
	c, err := field.NewChain(field.WithMode(mode), field.WithEnergy(energy), field.WithFieldAmount(100))
	if err != nil {
		return nil, nil, err
	}
	if err := c.Prepare(sampleRate, 100); err != nil {
		return nil, nil, err
	}

	left = make([]float64, n)
	right = make([]float64, n)
	left[0], right[0] = 1, 1
	if err := c.ProcessStereoInPlace(left, right); err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

func report(w io.Writer, mode int, sampleRate, energy float64, fftSize int, toneHz float64) error {
	cfg, _ := field.Lookup(mode)

	n := max(fftSize, int(math.Ceil((cfg.LongestDelayMs()+30)*sampleRate/1000)))
	left, right, err := render(mode, sampleRate, energy, n)
	if err != nil {
		return err
	}

	mono := make([]float64, n)
	for i := range mono {
		mono[i] = left[i] + right[i]
	}

	analyzer := ir.NewAnalyzer(sampleRate)
	metrics, err := analyzer.Analyze(mono)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s  (profile %.2f, trim %.1f dB, %.0f Hz, energy %.0f%%)\n\n",
		cfg.Name, cfg.HarmonicProfile, cfg.CompensationTrimDb, sampleRate, energy)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Tap\tDelay [ms]\tPan\tCutoff [Hz]\tGain [dB]\tArrival [ms]\tPeak [dBFS]\n")
	fmt.Fprintf(tw, "---\t----------\t---\t-----------\t---------\t------------\t-----------\n")
	for i, tap := range cfg.Taps {
		arrival, peak := "-", "-"
		if i < len(metrics.Arrivals) {
			a := metrics.Arrivals[i]
			arrival = fmt.Sprintf("%.2f", a.TimeMs)
			peak = fmt.Sprintf("%.1f", 20*math.Log10(a.Peak))
		}
		fmt.Fprintf(tw, "%d\t%.1f\t%+.0f\t%.0f\t%.1f\t%s\t%s\n",
			i+1, tap.DelayMs, tap.Pan, tap.CutoffHz, tap.GainDb, arrival, peak)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\narrivals %d, center time %.2f ms, D50 %.3f, C50 %.1f dB, C80 %.1f dB\n",
		len(metrics.Arrivals), metrics.CenterTime*1000, metrics.D50, metrics.C50, metrics.C80)

	if err := printResponse(w, left, right, fftSize, sampleRate); err != nil {
		return err
	}

	if toneHz > 0 {
		return printTone(w, mode, sampleRate, energy, toneHz)
	}
	return nil
}

func printResponse(w io.Writer, left, right []float64, fftSize int, sampleRate float64) error {
	magL, err := spectrum.ImpulseMagnitude(left, fftSize)
	if err != nil {
		return err
	}
	magR, err := spectrum.ImpulseMagnitude(right, fftSize)
	if err != nil {
		return err
	}
	spectrum.ToDB(magL, -120)
	spectrum.ToDB(magR, -120)

	fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Freq [Hz]\tLeft [dB]\tRight [dB]\n")
	fmt.Fprintf(tw, "---------\t---------\t----------\n")
	for _, f := range octaveBands {
		if f >= sampleRate/2 {
			break
		}
		k := spectrum.FrequencyBin(f, fftSize, sampleRate)
		fmt.Fprintf(tw, "%.0f\t%.1f\t%.1f\n", f, magL[k], magR[k])
	}
	return tw.Flush()
}

// printTone reports the steady-state gain of the full mix (50 % field
// amount) for a sine at toneHz.
func printTone(w io.Writer, mode int, sampleRate, energy, toneHz float64) error {
	c, err := field.NewChain(field.WithMode(mode), field.WithEnergy(energy))
	if err != nil {
		return err
	}
	if err := c.Prepare(sampleRate, 100); err != nil {
		return err
	}

	n := int(sampleRate / 2)
	left := make([]float64, n)
	right := make([]float64, n)
	step := 2 * math.Pi * toneHz / sampleRate
	for i := range left {
		left[i] = 0.25 * math.Sin(step*float64(i))
		right[i] = left[i]
	}
	if err := c.ProcessStereoInPlace(left, right); err != nil {
		return err
	}

	// Measure the last 100 ms, after every reflection has arrived.
	tail := int(sampleRate / 10)
	gl := spectrum.ToneMagnitude(left[n-tail:], toneHz, sampleRate) / 0.25
	gr := spectrum.ToneMagnitude(right[n-tail:], toneHz, sampleRate) / 0.25
	lv := c.Levels()

	fmt.Fprintf(w, "\n%.0f Hz tone at 50%% field: L %+.2f dB, R %+.2f dB (block RMS %.3f / %.3f)\n",
		toneHz, 20*math.Log10(gl), 20*math.Log10(gr), lv.Left, lv.Right)
	return nil
}
