package ui

import (
	"bytes"
	"io"
	"time"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/sound"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/retroenv/retrogolib/log"
)

// beeper is the tone player handed to the machine. It streams either a sine
// wave or a looped sample through an ebiten audio player.
type beeper struct {
	player  *audio.Player
	playing bool
	muted   bool
}

// newBeeper builds the audio source. A sample that fails to load falls back
// to the sine tone.
func newBeeper(ctx *audio.Context, cfg Config, logger *log.Logger) (*beeper, error) {
	var src io.Reader = sound.NewSine(cfg.ToneHz, sound.DefaultSampleRate)
	if cfg.BeepSample != "" {
		s, err := sound.LoadSample(cfg.BeepSample, sound.DefaultSampleRate)
		if err != nil {
			logger.Warn("Beep sample unusable, using sine tone",
				log.String("path", cfg.BeepSample), log.Err(err))
		} else {
			src = audio.NewInfiniteLoop(bytes.NewReader(s.PCM), int64(len(s.PCM)))
		}
	}
	p, err := ctx.NewPlayer(src)
	if err != nil {
		return nil, err
	}
	p.SetBufferSize(40 * time.Millisecond)
	return &beeper{player: p, muted: cfg.Muted}, nil
}

func (b *beeper) IsPlaying() bool { return b.playing }

func (b *beeper) Play() {
	b.playing = true
	if !b.muted {
		b.player.Play()
	}
}

func (b *beeper) Pause() {
	b.playing = false
	b.player.Pause()
}

// setMuted silences the output while keeping track of the timer state so
// unmuting mid-beep resumes it.
func (b *beeper) setMuted(on bool) {
	b.muted = on
	switch {
	case on:
		b.player.Pause()
	case b.playing:
		b.player.Play()
	}
}

func (b *beeper) Close() error { return b.player.Close() }
