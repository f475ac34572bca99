package cpu

import (
	"math/rand/v2"
	"time"
)

// Random supplies bytes for Cxnn.
type Random interface {
	Byte() byte
}

type pcgRandom struct{ r *rand.Rand }

// NewRandom returns a PCG-backed source. A zero seed picks one from the clock.
func NewRandom(seed uint64) Random {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &pcgRandom{r: rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))}
}

func (p *pcgRandom) Byte() byte { return byte(p.r.UintN(256)) }

// FixedRandom replays a byte sequence, wrapping around at the end.
type FixedRandom struct {
	Seq []byte
	pos int
}

func (f *FixedRandom) Byte() byte {
	if len(f.Seq) == 0 {
		return 0
	}
	b := f.Seq[f.pos%len(f.Seq)]
	f.pos++
	return b
}
