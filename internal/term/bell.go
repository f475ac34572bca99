package term

import "io"

// Bell rings the terminal bell when the sound timer starts. It satisfies
// cpu.Tone.
type Bell struct {
	w       io.Writer
	playing bool
	Rings   int
}

func NewBell(w io.Writer) *Bell { return &Bell{w: w} }

func (b *Bell) IsPlaying() bool { return b.playing }

func (b *Bell) Play() {
	b.playing = true
	b.Rings++
	if b.w != nil {
		_, _ = io.WriteString(b.w, "\a")
	}
}

func (b *Bell) Pause() { b.playing = false }
