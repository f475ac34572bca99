// Package term runs the interpreter inside a text terminal: raw keyboard
// input, half-block graphics and the terminal bell as buzzer.
package term

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/emu"
	tty "github.com/pkg/term"
	"github.com/retroenv/retrogolib/log"
)

const frameTime = time.Second / 60

// Config contains terminal front end settings.
type Config struct {
	Device     string // input device, defaults to /dev/tty
	HoldFrames int    // frames a key stays down after it was typed
	Muted      bool   // no bell
}

// Frontend drives a Machine from a terminal.
type Frontend struct {
	cfg    Config
	m      *emu.Machine
	logger *log.Logger
	out    io.Writer
	keys   *Keys
	bell   *Bell
}

func New(cfg Config, m *emu.Machine, out io.Writer, logger *log.Logger) *Frontend {
	if cfg.Device == "" {
		cfg.Device = "/dev/tty"
	}
	f := &Frontend{
		cfg:    cfg,
		m:      m,
		logger: logger,
		out:    out,
		keys:   NewKeys(cfg.HoldFrames),
	}
	if !cfg.Muted {
		f.bell = NewBell(out)
		m.SetTone(f.bell)
	}
	return f
}

// Run puts the terminal into raw mode and emulates at 60 frames per second
// until ctx is done or the user presses Esc or ctrl+c.
func (f *Frontend) Run(ctx context.Context) error {
	t, err := tty.Open(f.cfg.Device, tty.RawMode)
	if err != nil {
		return fmt.Errorf("open terminal %s: %w", f.cfg.Device, err)
	}
	defer func() {
		_ = t.Restore()
		_ = t.Close()
	}()
	if err := t.SetReadTimeout(frameTime); err != nil {
		return fmt.Errorf("set read timeout: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	input := make(chan []byte, 16)
	readErr := make(chan error, 1)
	go readLoop(ctx, t, input, readErr)

	if _, err := io.WriteString(f.out, hideCursor+clearScreen); err != nil {
		return err
	}
	defer func() { _, _ = io.WriteString(f.out, showCursor+"\r\n") }()
	f.m.Display().SetRedrawPending(true)

	ticker := time.NewTicker(frameTime)
	defer ticker.Stop()
	var pending []byte
	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-readErr:
			return fmt.Errorf("read terminal: %w", err)
		case data := <-input:
			pending = append(pending, data...)
		case <-ticker.C:
			quit, err := f.step(pending)
			pending = pending[:0]
			if err != nil {
				return err
			}
			if quit {
				f.logger.Debug("Terminal session ended", log.Int("frames", int(f.m.Frames())))
				return nil
			}
		}
	}
}

// step feeds typed bytes to the keypad, runs one frame and redraws the
// screen when the program changed it.
func (f *Frontend) step(input []byte) (bool, error) {
	if f.keys.Feed(input) {
		return true, nil
	}
	f.m.SetKeys(f.keys.Frame())
	f.m.StepFrame()

	fb := f.m.Display()
	if !fb.RedrawPending() {
		return false, nil
	}
	fb.SetRedrawPending(false)
	if _, err := io.WriteString(f.out, Frame(fb)); err != nil {
		return false, fmt.Errorf("draw frame: %w", err)
	}
	return false, nil
}

func readLoop(ctx context.Context, t *tty.Term, input chan<- []byte, readErr chan<- error) {
	buf := make([]byte, 64)
	for ctx.Err() == nil {
		n, err := t.Read(buf)
		if err != nil && !errors.Is(err, io.EOF) {
			readErr <- err
			return
		}
		if n == 0 {
			continue
		}
		data := append([]byte(nil), buf[:n]...)
		select {
		case input <- data:
		case <-ctx.Done():
			return
		}
	}
}
