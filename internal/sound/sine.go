package sound

import (
	"encoding/binary"
	"math"
)

// Defaults for the buzzer.
const (
	DefaultSampleRate = 48000
	DefaultToneHz     = 440
	bytesPerFrame     = 4 // 16-bit little endian stereo
	amplitude         = 0.3 * math.MaxInt16
)

// Sine is an endless 16-bit stereo sine wave. It satisfies io.Reader so an
// audio player can stream it directly.
type Sine struct {
	hz    float64
	rate  float64
	phase float64
}

func NewSine(hz, sampleRate int) *Sine {
	if hz <= 0 {
		hz = DefaultToneHz
	}
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	return &Sine{hz: float64(hz), rate: float64(sampleRate)}
}

// Read fills p with whole stereo frames. It never fails.
func (s *Sine) Read(p []byte) (int, error) {
	n := len(p) / bytesPerFrame * bytesPerFrame
	step := 2 * math.Pi * s.hz / s.rate
	for i := 0; i < n; i += bytesPerFrame {
		v := uint16(int16(amplitude * math.Sin(s.phase)))
		binary.LittleEndian.PutUint16(p[i:], v)
		binary.LittleEndian.PutUint16(p[i+2:], v)
		s.phase += step
		if s.phase >= 2*math.Pi {
			s.phase -= 2 * math.Pi
		}
	}
	return n, nil
}
