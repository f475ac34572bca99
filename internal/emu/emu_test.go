package emu

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/sound"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// drawLoop clears the screen, draws the glyph for V0 at (V1, V2) and spins.
var drawLoop = []byte{
	0x00, 0xE0, // CLS
	0x60, 0x08, // LD V0, 8
	0x61, 0x04, // LD V1, 4
	0x62, 0x02, // LD V2, 2
	0xF0, 0x29, // LD F, V0
	0xD1, 0x25, // DRW V1, V2, 5
	0x12, 0x0C, // JP $20C
}

func newMachine(t *testing.T) *Machine {
	t.Helper()
	return New(Config{Seed: 1}, log.NewTestLogger(t))
}

func TestMachine_NoROM(t *testing.T) {
	m := newMachine(t)
	assert.False(t, m.HasROM())
	m.StepFrame()
	assert.Equal(t, uint64(0), m.Frames())
	assert.True(t, errors.Is(m.Reset(), ErrNoROM))
	_, err := m.SaveState()
	assert.True(t, errors.Is(err, ErrNoROM))
}

func TestMachine_LoadROMRejectsBadImages(t *testing.T) {
	m := newMachine(t)
	assert.Error(t, m.LoadROM(nil))
	assert.Error(t, m.LoadROM(make([]byte, 0xE01)))
	assert.False(t, m.HasROM())
}

func TestMachine_DrawsGlyph(t *testing.T) {
	m := newMachine(t)
	assert.NoError(t, m.LoadROM(drawLoop))
	m.StepFrame()
	m.StepFrame()
	assert.Equal(t, uint64(2), m.Frames())

	fb := m.Display()
	// glyph "8" is F0 90 F0 90 F0: top row is four pixels wide
	for x := 4; x < 8; x++ {
		assert.True(t, fb.Pixel(x, 2))
	}
	assert.True(t, fb.Pixel(4, 3))
	assert.False(t, fb.Pixel(5, 3))
	assert.Equal(t, 4+2+4+2+4, fb.Lit())

	assert.Equal(t, uint16(0x20C), m.CPUState().PC)
	assert.Len(t, m.Framebuffer(Palettes[0]), 64*32*4)
}

func TestMachine_WaitsForKeyRelease(t *testing.T) {
	// LD V5, K ; JP $202
	m := newMachine(t)
	assert.NoError(t, m.LoadROM([]byte{0xF5, 0x0A, 0x12, 0x02}))
	m.StepFrame()
	assert.Equal(t, uint16(0x200), m.CPUState().PC)

	m.PressKey(0xE)
	m.StepFrame()
	assert.Equal(t, uint16(0x200), m.CPUState().PC)

	m.ReleaseKey(0xE)
	m.StepFrame()
	assert.Equal(t, byte(0xE), m.CPUState().V[5])
	assert.Equal(t, uint16(0x202), m.CPUState().PC)
}

func TestMachine_DrivesTone(t *testing.T) {
	// LD V0, 3 ; LD ST, V0 ; JP $204
	m := newMachine(t)
	rec := sound.NewRecorder(0, 0)
	m.SetTone(rec)
	assert.NoError(t, m.LoadROM([]byte{0x60, 0x03, 0xF0, 0x18, 0x12, 0x04}))

	m.StepFrame() // sets ST after the timer update
	assert.False(t, rec.IsPlaying())
	m.StepFrame() // ST 2
	assert.True(t, rec.IsPlaying())
	m.StepFrame()
	m.StepFrame() // ST 0
	assert.False(t, rec.IsPlaying())
	assert.Equal(t, 1, rec.Starts)
}

func TestMachine_SaveLoadState(t *testing.T) {
	m := newMachine(t)
	assert.NoError(t, m.LoadROM(drawLoop))
	m.StepFrame()
	data, err := m.SaveState()
	assert.NoError(t, err)
	want := m.CPUState()
	lit := m.Display().Lit()

	assert.NoError(t, m.Reset())
	assert.Equal(t, 0, m.Display().Lit())
	assert.NoError(t, m.LoadState(data))
	assert.Equal(t, want, m.CPUState())
	assert.Equal(t, lit, m.Display().Lit())
	assert.Equal(t, uint64(1), m.Frames())

	other := newMachine(t)
	assert.NoError(t, other.LoadROM([]byte{0x12, 0x00}))
	assert.True(t, errors.Is(other.LoadState(data), ErrStateMismatch))
	assert.Error(t, other.LoadState([]byte("garbage")))
}

func TestMachine_StateFiles(t *testing.T) {
	dir := t.TempDir()
	romPath := filepath.Join(dir, "draw.ch8")
	assert.NoError(t, os.WriteFile(romPath, drawLoop, 0o644))

	m := newMachine(t)
	assert.NoError(t, m.LoadROMFromFile(romPath))
	assert.Equal(t, romPath, m.ROMPath())
	assert.Equal(t, romPath+".slot1.state", m.StatePath(0))

	m.StepFrame()
	assert.NoError(t, m.SaveStateToFile(m.StatePath(0)))
	m.StepFrame()
	assert.NoError(t, m.LoadStateFromFile(m.StatePath(0)))
	assert.Equal(t, uint64(1), m.Frames())

	assert.Error(t, m.LoadStateFromFile(filepath.Join(dir, "nope.state")))
}

func TestMachine_Trace(t *testing.T) {
	m := New(Config{Trace: true, Seed: 1}, log.NewTestLogger(t))
	assert.NoError(t, m.LoadROM(drawLoop))
	m.StepFrame()
	assert.Equal(t, uint16(0x20C), m.CPUState().PC)
}

func TestPaletteFor(t *testing.T) {
	assert.Equal(t, 3, PaletteFor("/roms/PONG.ch8"))
	assert.Equal(t, 1, PaletteFor("brix.c8"))
	assert.Equal(t, 0, PaletteFor("Space Invaders [David Winter].ch8"))
	assert.Equal(t, 3, PaletteFor("test_opcode.ch8"))
	assert.Equal(t, 0, PaletteFor("unknown.ch8"))
	assert.Equal(t, 0, PaletteFor(""))
}
