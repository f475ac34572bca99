package sound

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
)

// ErrUnsupportedFormat is returned for sample files that are neither WAV nor MP3.
var ErrUnsupportedFormat = errors.New("unsupported sample format")

// Sample is a decoded beep in 16-bit little endian stereo PCM at a fixed rate.
type Sample struct {
	PCM        []byte
	SampleRate int
}

// LoadSample decodes a .wav or .mp3 file and resamples it to sampleRate.
func LoadSample(path string, sampleRate int) (*Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeSample(f, filepath.Ext(path), sampleRate)
}

// DecodeSample is LoadSample for an already opened stream. ext selects the codec.
func DecodeSample(r io.ReadSeeker, ext string, sampleRate int) (*Sample, error) {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	var (
		mono []float32 // left channel, -1..1
		rate int
		err  error
	)
	switch strings.ToLower(ext) {
	case ".wav":
		mono, rate, err = decodeWAV(r)
	case ".mp3":
		mono, rate, err = decodeMP3(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, err
	}
	mono = resample(mono, rate, sampleRate)
	return &Sample{PCM: stereoPCM(mono), SampleRate: sampleRate}, nil
}

func decodeWAV(r io.ReadSeeker) ([]float32, int, error) {
	dec := wav.NewDecoder(r)
	if dec == nil || !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("wav: not a valid wav file")
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("wav: %w", err)
	}
	chans := int(dec.NumChans)
	if chans < 1 {
		chans = 1
	}
	scale := float32(math.Pow(2, float64(dec.BitDepth)-1))
	fb := buf.AsFloat32Buffer()
	out := make([]float32, 0, len(fb.Data)/chans)
	for i := 0; i < len(fb.Data); i += chans {
		out = append(out, fb.Data[i]/scale)
	}
	return out, int(dec.SampleRate), nil
}

// go-mp3 always produces 16-bit little endian stereo.
func decodeMP3(r io.Reader) ([]float32, int, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, 0, fmt.Errorf("mp3: %w", err)
	}
	var out []float32
	chunk := make([]byte, 4096)
	for {
		n, err := dec.Read(chunk)
		for i := 0; i+1 < n; i += bytesPerFrame {
			v := int16(binary.LittleEndian.Uint16(chunk[i:]))
			out = append(out, float32(v)/math.MaxInt16)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("mp3: %w", err)
		}
	}
	return out, dec.SampleRate(), nil
}

// resample uses nearest-neighbour picking; beeps do not need better.
func resample(in []float32, from, to int) []float32 {
	if from <= 0 || from == to || len(in) == 0 {
		return in
	}
	n := int(int64(len(in)) * int64(to) / int64(from))
	out := make([]float32, n)
	for i := range out {
		out[i] = in[int64(i)*int64(from)/int64(to)]
	}
	return out
}

func stereoPCM(mono []float32) []byte {
	out := make([]byte, len(mono)*bytesPerFrame)
	for i, s := range mono {
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		v := uint16(int16(s * math.MaxInt16))
		binary.LittleEndian.PutUint16(out[i*4:], v)
		binary.LittleEndian.PutUint16(out[i*4+2:], v)
	}
	return out
}
