package emu

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/sound"
	"github.com/retroenv/retrogolib/log"
)

var ErrChecksumMismatch = errors.New("checksum mismatch")

// HeadlessOptions control a run without a window.
type HeadlessOptions struct {
	Frames int    // frames to run, at least one
	PNGOut string // write the last frame to this PNG file
	Scale  int    // PNG upscaling factor
	Expect string // expected display CRC32 in hex, with or without 0x
	WAVOut string // record the buzzer to this WAV file
	ToneHz int
}

// HeadlessResult summarises a headless run.
type HeadlessResult struct {
	Frames  int
	Elapsed time.Duration
	CRC32   uint32
	Beeps   int
}

// RunHeadless runs the loaded program as fast as possible and optionally
// checks or stores the final display.
func RunHeadless(m *Machine, opts HeadlessOptions) (HeadlessResult, error) {
	if !m.HasROM() {
		return HeadlessResult{}, ErrNoROM
	}
	if opts.Frames <= 0 {
		opts.Frames = 1
	}

	rec := sound.NewRecorder(opts.ToneHz, 0)
	m.SetTone(rec)

	start := time.Now()
	for i := 0; i < opts.Frames; i++ {
		m.StepFrame()
		rec.Advance()
	}
	res := HeadlessResult{
		Frames:  opts.Frames,
		Elapsed: time.Since(start),
		CRC32:   m.Display().CRC32(),
		Beeps:   rec.Starts,
	}

	m.logger.Info("Headless run finished",
		log.Int("frames", res.Frames),
		log.String("elapsed", res.Elapsed.Truncate(time.Millisecond).String()),
		log.String("fb_crc32", fmt.Sprintf("%08x", res.CRC32)),
		log.Int("beeps", res.Beeps))

	if opts.PNGOut != "" {
		if err := writeFile(opts.PNGOut, func(f *os.File) error {
			return m.Display().WritePNG(f, opts.Scale)
		}); err != nil {
			return res, fmt.Errorf("write PNG: %w", err)
		}
		m.logger.Info("Wrote screenshot", log.String("path", opts.PNGOut))
	}
	if opts.WAVOut != "" {
		if err := writeFile(opts.WAVOut, func(f *os.File) error {
			return rec.WriteWAV(f)
		}); err != nil {
			return res, fmt.Errorf("write WAV: %w", err)
		}
		m.logger.Info("Wrote audio", log.String("path", opts.WAVOut))
	}

	if opts.Expect != "" {
		want := strings.TrimPrefix(strings.ToLower(opts.Expect), "0x")
		got := fmt.Sprintf("%08x", res.CRC32)
		if got != want {
			return res, fmt.Errorf("%w: got %s, want %s", ErrChecksumMismatch, got, want)
		}
	}
	return res, nil
}

func writeFile(path string, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
