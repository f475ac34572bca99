package sound

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestSine_ReadsWholeFrames(t *testing.T) {
	s := NewSine(440, 48000)
	p := make([]byte, 1023)
	n, err := s.Read(p)
	assert.NoError(t, err)
	assert.Equal(t, 1020, n)

	// left and right carry the same sample
	for i := 0; i < n; i += 4 {
		assert.Equal(t, binary.LittleEndian.Uint16(p[i:]), binary.LittleEndian.Uint16(p[i+2:]))
	}
	// first sample is sin(0)
	assert.Equal(t, uint16(0), binary.LittleEndian.Uint16(p))
}

func TestRecorder_ToneLifecycle(t *testing.T) {
	r := NewRecorder(0, 0)
	r.Advance()
	assert.Equal(t, 799, len(r.Samples()))
	for _, v := range r.Samples() {
		assert.Equal(t, 0, v)
	}

	r.Play()
	r.Play()
	assert.True(t, r.IsPlaying())
	assert.Equal(t, 1, r.Starts)
	r.Advance()
	loud := 0
	for _, v := range r.Samples()[799:] {
		if v != 0 {
			loud++
		}
	}
	assert.Equal(t, 799, loud)

	r.Pause()
	assert.False(t, r.IsPlaying())
}

func TestRecorder_WAVRoundTrip(t *testing.T) {
	r := NewRecorder(440, 48000)
	r.Play()
	for i := 0; i < 10; i++ {
		r.Advance()
	}
	path := filepath.Join(t.TempDir(), "beep.wav")
	f, err := os.Create(path)
	assert.NoError(t, err)
	assert.NoError(t, r.WriteWAV(f))
	assert.NoError(t, f.Close())

	s, err := LoadSample(path, 24000)
	assert.NoError(t, err)
	assert.Equal(t, 24000, s.SampleRate)
	// half the frames after resampling, four bytes each
	assert.Equal(t, len(r.Samples())/2*4, len(s.PCM))
	assert.True(t, binary.LittleEndian.Uint16(s.PCM) != 0)
}

func TestDecodeSample_RejectsUnknownFormat(t *testing.T) {
	_, err := DecodeSample(bytes.NewReader(nil), ".ogg", 0)
	assert.ErrorContains(t, err, "unsupported sample format")

	_, err = DecodeSample(bytes.NewReader([]byte("not a riff file")), ".wav", 0)
	assert.Error(t, err)
}
