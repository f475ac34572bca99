// Package main implements the CHIP-8 emulator entry point: a window, a text
// terminal or a headless run.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/config"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/diag"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/emu"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/term"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/ui"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

type CLIFlags struct {
	ROMPath string
	Scale   int
	Title   string
	Trace   bool
	Debug   bool
	Quiet   bool
	Seed    uint64
	Palette int
	State   int // save slot to load on start, 0 disables

	// audio
	Beep   string
	ToneHz int
	Mute   bool

	// front ends
	Term     bool
	Headless bool
	Frames   int
	PNGOut   string
	Expect   string // expected framebuffer CRC32 hex (e.g., "1a2b3c4d")
	WAVOut   string

	// diagnostics
	StatsView bool
	StatsAddr string
	MemViz    string
}

func parseFlags() CLIFlags {
	var f CLIFlags
	flag.StringVar(&f.ROMPath, "rom", "", "path to ROM (.ch8)")
	flag.IntVar(&f.Scale, "scale", 10, "window scale")
	flag.StringVar(&f.Title, "title", "chip8emu", "window title")
	flag.BoolVar(&f.Trace, "trace", false, "log every executed instruction (needs -debug)")
	flag.BoolVar(&f.Debug, "debug", false, "enable debug logging")
	flag.BoolVar(&f.Quiet, "q", false, "only log errors")
	flag.Uint64Var(&f.Seed, "seed", 0, "random number seed, 0 uses the clock")
	flag.IntVar(&f.Palette, "palette", -1, "palette index, -1 picks one from the ROM name")
	flag.IntVar(&f.State, "state", 0, "load save state slot 1-4 on start")

	flag.StringVar(&f.Beep, "beep", "", "optional .wav/.mp3 sample for the buzzer")
	flag.IntVar(&f.ToneHz, "tone", 440, "buzzer frequency in Hz")
	flag.BoolVar(&f.Mute, "mute", false, "start muted")

	flag.BoolVar(&f.Term, "term", false, "run inside the terminal instead of a window")
	flag.BoolVar(&f.Headless, "headless", false, "run without a window")
	flag.IntVar(&f.Frames, "frames", 300, "frames to run in headless mode")
	flag.StringVar(&f.PNGOut, "outpng", "", "write last framebuffer to PNG at path")
	flag.StringVar(&f.Expect, "expect", "", "assert framebuffer CRC32 (hex)")
	flag.StringVar(&f.WAVOut, "wavout", "", "record the buzzer to a WAV file in headless mode")

	flag.BoolVar(&f.StatsView, "statsview", false, "serve runtime statistics")
	flag.StringVar(&f.StatsAddr, "statsaddr", diag.DefaultStatsAddr, "statsview listen address")
	flag.StringVar(&f.MemViz, "memviz", "", "write a Graphviz dump of the machine at exit")
	flag.Parse()
	return f
}

func main() {
	f := parseFlags()
	logger := config.CreateLogger(f.Debug || f.Trace, f.Quiet)
	if err := run(f, logger); err != nil {
		logger.Fatal(err.Error())
	}
}

func run(f CLIFlags, logger *log.Logger) error {
	if f.StatsView {
		diag.LaunchStats(logger, f.StatsAddr)
	}

	m := emu.New(emu.Config{Trace: f.Trace, Seed: f.Seed}, logger)
	if f.ROMPath != "" {
		// prefer absolute path for state placement consistency
		path := f.ROMPath
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		if err := m.LoadROMFromFile(path); err != nil {
			return err
		}
		if f.State > 0 {
			if err := m.LoadStateFromFile(m.StatePath(f.State - 1)); err != nil {
				return fmt.Errorf("load state slot %d: %w", f.State, err)
			}
			logger.Info("Loaded save state", log.Int("slot", f.State))
		}
	}
	if f.MemViz != "" {
		defer func() {
			if err := diag.DumpFile(f.MemViz, m); err != nil {
				logger.Error("Writing memory graph failed", log.Err(err))
			}
		}()
	}

	switch {
	case f.Headless:
		if !m.HasROM() {
			return errors.New("-headless requires -rom")
		}
		_, err := emu.RunHeadless(m, emu.HeadlessOptions{
			Frames: f.Frames,
			PNGOut: f.PNGOut,
			Scale:  f.Scale,
			Expect: f.Expect,
			WAVOut: f.WAVOut,
			ToneHz: f.ToneHz,
		})
		return err

	case f.Term:
		if !m.HasROM() {
			return errors.New("-term requires -rom")
		}
		fe := term.New(term.Config{Muted: f.Mute}, m, os.Stdout, logger)
		return fe.Run(app.Context())
	}

	uiCfg := ui.Config{
		Title:      f.Title,
		Scale:      f.Scale,
		Palette:    f.Palette,
		ToneHz:     f.ToneHz,
		BeepSample: f.Beep,
		Muted:      f.Mute,
	}
	return ui.NewApp(uiCfg, m, logger).Run()
}
