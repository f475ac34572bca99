package term

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/display"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/emu"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

type pixelSet map[[2]int]bool

func (p pixelSet) Pixel(x, y int) bool { return p[[2]int{x, y}] }

func TestFrame_HalfBlocks(t *testing.T) {
	p := pixelSet{
		{0, 0}: true, {0, 1}: true, // full
		{1, 0}: true, // upper
		{2, 1}: true, // lower
	}
	out := Frame(p)
	assert.True(t, strings.HasPrefix(out, cursorHome))

	lines := strings.Split(strings.TrimSuffix(strings.TrimPrefix(out, cursorHome), "\r\n"), "\r\n")
	assert.Len(t, lines, display.Height/2)
	for _, l := range lines {
		assert.Equal(t, display.Width, utf8.RuneCountInString(l))
	}
	assert.True(t, strings.HasPrefix(lines[0], "█▀▄ "))
	assert.Equal(t, strings.Repeat(" ", display.Width), lines[1])
}

func TestKeys_HoldAndRelease(t *testing.T) {
	k := NewKeys(2)
	assert.False(t, k.Feed([]byte("Qx?")))

	down := k.Frame()
	assert.True(t, down[0x4])
	assert.True(t, down[0x0])
	assert.False(t, down[0x1])

	down = k.Frame()
	assert.True(t, down[0x4])
	down = k.Frame()
	assert.False(t, down[0x4])
	assert.False(t, down[0x0])
}

func TestKeys_Quit(t *testing.T) {
	assert.True(t, NewKeys(0).Feed([]byte{'1', keyEsc}))
	assert.True(t, NewKeys(0).Feed([]byte{keyInterrupt}))
	assert.Equal(t, DefaultHoldFrames, NewKeys(0).hold)
}

func TestBell(t *testing.T) {
	var buf bytes.Buffer
	b := NewBell(&buf)
	assert.False(t, b.IsPlaying())
	b.Play()
	assert.True(t, b.IsPlaying())
	b.Pause()
	assert.False(t, b.IsPlaying())
	assert.Equal(t, "\a", buf.String())
	assert.Equal(t, 1, b.Rings)

	NewBell(nil).Play()
}

func TestFrontend_Step(t *testing.T) {
	m := emu.New(emu.Config{Seed: 1}, log.NewTestLogger(t))
	// CLS ; LD V0, 8 ; LD F, V0 ; DRW V0, V0, 5 ; JP $208
	assert.NoError(t, m.LoadROM([]byte{0x00, 0xE0, 0x60, 0x08, 0xF0, 0x29, 0xD0, 0x05, 0x12, 0x08}))

	var out bytes.Buffer
	f := New(Config{HoldFrames: 1}, m, &out, log.NewTestLogger(t))

	quit, err := f.step([]byte("w"))
	assert.NoError(t, err)
	assert.False(t, quit)
	assert.Equal(t, uint64(1), m.Frames())
	assert.Contains(t, out.String(), "█")
	assert.False(t, m.Display().RedrawPending())

	// nothing changed on screen: no output
	out.Reset()
	_, err = f.step(nil)
	assert.NoError(t, err)
	assert.Equal(t, 0, out.Len())

	quit, err = f.step([]byte{keyEsc})
	assert.NoError(t, err)
	assert.True(t, quit)
	assert.Equal(t, uint64(2), m.Frames())
}
