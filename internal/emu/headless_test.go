package emu

import (
	"errors"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
	"github.com/retroenv/retrogolib/assert"
)

func TestRunHeadless_NoROM(t *testing.T) {
	_, err := RunHeadless(newMachine(t), HeadlessOptions{})
	assert.True(t, errors.Is(err, ErrNoROM))
}

func TestRunHeadless_Checksum(t *testing.T) {
	m := newMachine(t)
	assert.NoError(t, m.LoadROM(drawLoop))
	res, err := RunHeadless(m, HeadlessOptions{Frames: 3})
	assert.NoError(t, err)
	assert.Equal(t, 3, res.Frames)
	assert.Equal(t, m.Display().CRC32(), res.CRC32)

	want := fmt.Sprintf("0x%08X", res.CRC32)
	assert.NoError(t, m.Reset())
	_, err = RunHeadless(m, HeadlessOptions{Frames: 3, Expect: want})
	assert.NoError(t, err)

	assert.NoError(t, m.Reset())
	_, err = RunHeadless(m, HeadlessOptions{Frames: 3, Expect: "deadbeef"})
	assert.True(t, errors.Is(err, ErrChecksumMismatch))
}

func TestRunHeadless_Outputs(t *testing.T) {
	dir := t.TempDir()
	pngPath := filepath.Join(dir, "out.png")
	wavPath := filepath.Join(dir, "out.wav")

	// LD V0, 3 ; LD ST, V0 ; JP $204
	m := newMachine(t)
	assert.NoError(t, m.LoadROM([]byte{0x60, 0x03, 0xF0, 0x18, 0x12, 0x04}))
	res, err := RunHeadless(m, HeadlessOptions{Frames: 10, PNGOut: pngPath, Scale: 2, WAVOut: wavPath})
	assert.NoError(t, err)
	assert.Equal(t, 1, res.Beeps)

	f, err := os.Open(pngPath)
	assert.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	assert.NoError(t, err)
	assert.Equal(t, 128, img.Bounds().Dx())
	assert.Equal(t, 64, img.Bounds().Dy())

	w, err := os.Open(wavPath)
	assert.NoError(t, err)
	defer w.Close()
	assert.True(t, wav.NewDecoder(w).IsValidFile())
}
