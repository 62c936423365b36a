// Command fieldlive runs the field processor on the default duplex audio
// device in real time.
//
// Usage:
//
//	fieldlive [flags]
//
// While running, type commands on stdin to change controls:
//
//	mode studio|soundsystem
//	energy 0-100
//	amount 0-100
//	levels
//	quit
//
// Examples:
//
//	fieldlive
//	fieldlive -mode soundsystem -amount 70 -frames 128
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/gordonklaus/portaudio"

	"github.com/cwbudde/algo-field/dsp/core"
	"github.com/cwbudde/algo-field/dsp/effects/field"
)

func main() {
	modeName := flag.String("mode", "studio", "initial mode: studio or soundsystem")
	energy := flag.Float64("energy", 0, "initial harmonic energy in percent")
	amount := flag.Float64("amount", 50, "initial field amount in percent")
	rate := flag.Float64("rate", 48000, "sample rate in Hz")
	frames := flag.Int("frames", 256, "frames per buffer")
	meter := flag.Duration("meter", 0, "print levels at this interval (0 disables)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: fieldlive [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Processes the default input device to the default output in real time.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := run(*modeName, *energy, *amount, *rate, *frames, *meter); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(modeName string, energy, amount, rate float64, frames int, meterEvery time.Duration) error {
	mode, err := field.ParseMode(modeName)
	if err != nil {
		return err
	}

	chain, err := field.NewChain(field.WithMode(mode), field.WithEnergy(energy), field.WithFieldAmount(amount))
	if err != nil {
		return err
	}
	if err := chain.PrepareWith(core.WithSampleRate(rate), core.WithBlockSize(frames)); err != nil {
		return err
	}

	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("portaudio: %w", err)
	}
	defer portaudio.Terminate()

	proc := newProcessor(chain, frames)
	stream, err := portaudio.OpenDefaultStream(2, 2, rate, frames, proc.process)
	if err != nil {
		return fmt.Errorf("open stream: %w", err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return fmt.Errorf("start stream: %w", err)
	}
	defer stream.Stop()

	fmt.Fprintf(os.Stderr, "running %s at %.0f Hz, %d frames; type 'quit' to stop\n",
		field.ModeName(mode), rate, frames)

	quit := make(chan struct{})
	go readCommands(chain, quit)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)

	var tick <-chan time.Time
	if meterEvery > 0 {
		t := time.NewTicker(meterEvery)
		defer t.Stop()
		tick = t.C
	}

	for {
		select {
		case <-quit:
			return proc.err()
		case <-sig:
			return proc.err()
		case <-tick:
			printLevels(chain)
		}
	}
}

func readCommands(chain *field.Chain, quit chan<- struct{}) {
	defer close(quit)

	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		done, err := applyCommand(chain, sc.Text())
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			continue
		}
		if done {
			return
		}
	}
}

func printLevels(chain *field.Chain) {
	lv := chain.Levels()
	s := chain.Controls().Snapshot()
	fmt.Fprintf(os.Stderr, "%-12s energy %5.1f%%  field %5.1f%%  L %6.1f dBFS  R %6.1f dBFS\n",
		field.ModeName(s.Mode), s.EnergyPercent, s.FieldAmountPercent,
		core.LinearToDB(lv.Left), core.LinearToDB(lv.Right))
}
