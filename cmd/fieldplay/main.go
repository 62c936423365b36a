// Command fieldplay renders a test signal through the field processor and
// plays it on the default output device.
//
// Usage:
//
//	fieldplay [flags]
//
// The source alternates a short click train with a plucked tone so both
// the discrete reflections and the harmonic stage are audible. Use -ab to
// switch between dry and processed sound every two seconds.
//
// Examples:
//
//	fieldplay
//	fieldplay -mode soundsystem -energy 80 -amount 70
//	fieldplay -ab -seconds 20
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/hajimehoshi/oto/v2"

	"github.com/cwbudde/algo-field/dsp/core"
	"github.com/cwbudde/algo-field/dsp/effects/field"
)

const (
	channelCount = 2
	formatF32LE  = 0 // oto.FormatFloat32LE
	blockFrames  = 512
)

func main() {
	modeName := flag.String("mode", "studio", "mode: studio or soundsystem")
	energy := flag.Float64("energy", 50, "harmonic energy in percent")
	amount := flag.Float64("amount", 60, "field amount (wet share) in percent")
	seconds := flag.Float64("seconds", 10, "playback length in seconds")
	rate := flag.Int("rate", 48000, "output sample rate in Hz")
	ab := flag.Bool("ab", false, "alternate dry and processed sound every two seconds")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: fieldplay [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Plays a test signal through the field processor.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := run(*modeName, *energy, *amount, *seconds, *rate, *ab); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(modeName string, energy, amount, seconds float64, rate int, ab bool) error {
	mode, err := field.ParseMode(modeName)
	if err != nil {
		return err
	}

	chain, err := field.NewChain(field.WithMode(mode), field.WithEnergy(energy), field.WithFieldAmount(amount))
	if err != nil {
		return err
	}
	if err := chain.PrepareWith(core.WithSampleRate(float64(rate)), core.WithBlockSize(blockFrames)); err != nil {
		return err
	}

	ctx, ready, err := oto.NewContext(rate, channelCount, formatF32LE)
	if err != nil {
		return fmt.Errorf("open audio output: %w", err)
	}
	<-ready

	frames := int(seconds * float64(rate))
	r := newRenderer(chain, newSource(float64(rate)), frames)
	if ab {
		r.toggleEvery = 2 * rate
	}

	player := ctx.NewPlayer(r)
	defer player.Close()

	fmt.Fprintf(os.Stderr, "playing %.1f s of %s at %d Hz (energy %.0f%%, field %.0f%%)\n",
		seconds, field.ModeName(mode), rate, energy, amount)

	player.Play()
	for player.IsPlaying() {
		time.Sleep(250 * time.Millisecond)
		lv := chain.Levels()
		fmt.Fprintf(os.Stderr, "\r%s  L %6.1f dBFS  R %6.1f dBFS", r.label(), core.LinearToDB(lv.Left), core.LinearToDB(lv.Right))
	}
	fmt.Fprintln(os.Stderr)

	return nil
}
