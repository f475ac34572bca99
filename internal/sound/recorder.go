package sound

import (
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// quantumMicros matches the interpreter tick length.
const quantumMicros = 16666

// Recorder is a tone player for headless runs. Instead of producing sound it
// accumulates one tick worth of mono samples per Advance: a square wave while
// the tone is on and silence otherwise.
type Recorder struct {
	rate    int
	hz      int
	playing bool
	phase   int
	samples []int

	Starts int // number of times the tone was switched on
}

func NewRecorder(hz, sampleRate int) *Recorder {
	if hz <= 0 {
		hz = DefaultToneHz
	}
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	return &Recorder{rate: sampleRate, hz: hz}
}

func (r *Recorder) IsPlaying() bool { return r.playing }

func (r *Recorder) Play() {
	if !r.playing {
		r.Starts++
	}
	r.playing = true
}

func (r *Recorder) Pause() { r.playing = false }

// Advance appends the samples for one tick.
func (r *Recorder) Advance() {
	n := r.rate * quantumMicros / 1_000_000
	half := r.rate / (2 * r.hz)
	if half < 1 {
		half = 1
	}
	const level = 8000
	for i := 0; i < n; i++ {
		v := 0
		if r.playing {
			v = level
			if (r.phase/half)%2 == 1 {
				v = -level
			}
		}
		r.samples = append(r.samples, v)
		r.phase++
	}
}

// Samples returns the recorded mono samples.
func (r *Recorder) Samples() []int { return r.samples }

// Duration in seconds of what has been recorded.
func (r *Recorder) Duration() float64 { return float64(len(r.samples)) / float64(r.rate) }

// WriteWAV encodes the recording as a 16-bit mono PCM WAV file.
func (r *Recorder) WriteWAV(w io.WriteSeeker) error {
	enc := wav.NewEncoder(w, r.rate, 16, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: r.rate},
		Data:           r.samples,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		return err
	}
	return enc.Close()
}
