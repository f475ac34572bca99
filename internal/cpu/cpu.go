package cpu

import (
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/memory"
)

// Quantum is the emulated time in microseconds granted to the CPU per Tick (60 Hz).
const Quantum = 16666

// Display is the pixel surface the interpreter draws on.
type Display interface {
	Clear()
	TogglePixel(index int)
	SetRedrawPending(pending bool)
	RedrawPending() bool
}

// Keys reports keypad state.
type Keys interface {
	IsDown(key byte) bool
	WasReleased(key byte) bool
}

// Tone is told to start and stop the buzzer as the sound timer runs.
type Tone interface {
	IsPlaying() bool
	Play()
	Pause()
}

// CPU is the CHIP-8 interpreter. It exclusively owns its memory.
type CPU struct {
	V     Registers
	PC    uint16
	I     uint16
	DT    byte // delay timer
	ST    byte // sound timer
	stack Stack

	// cycles is the microsecond budget owed to the fetch loop; negative after
	// an instruction overran the previous tick.
	cycles int

	mem *memory.Memory
	rng Random

	// Trace, when set, is called before each instruction executes.
	Trace func(pc, opcode uint16)
}

// New creates a CPU bound to mem. A nil rng is replaced by a time-seeded source.
func New(mem *memory.Memory, rng Random) *CPU {
	if rng == nil {
		rng = NewRandom(0)
	}
	return &CPU{mem: mem, rng: rng, PC: memory.ProgramStart}
}

// Reset returns the CPU to power-on state. Memory is left untouched.
func (c *CPU) Reset() {
	c.V = Registers{}
	c.PC = memory.ProgramStart
	c.I = 0
	c.DT, c.ST = 0, 0
	c.stack.Reset()
	c.cycles = 0
}

// Memory exposes RAM read-only.
func (c *CPU) Memory() memory.View { return c.mem }

// SP returns the stack pointer.
func (c *CPU) SP() int { return c.stack.Len() }

// Tick advances one 60 Hz quantum: timers first, then as many instructions
// as the accumulated budget allows. An instruction reporting zero cost ends
// the tick early.
func (c *CPU) Tick(d Display, k Keys, t Tone) {
	if c.DT > 0 {
		c.DT--
	}
	if c.ST > 0 {
		c.ST--
	}
	if t != nil {
		if c.ST > 0 {
			if !t.IsPlaying() {
				t.Play()
			}
		} else if t.IsPlaying() {
			t.Pause()
		}
	}

	c.cycles += Quantum
	for c.cycles > 0 {
		cost := c.Step(d, k)
		if cost == 0 {
			break
		}
		c.cycles -= cost
	}
}

// Step fetches, decodes and executes one instruction and returns its cost in
// emulated microseconds.
func (c *CPU) Step(d Display, k Keys) int {
	pc := c.PC
	opcode := c.fetch()
	in := Decode(opcode)
	if c.Trace != nil {
		c.Trace(pc, opcode)
	}
	return handlers[in.Op](c, in, d, k)
}

func (c *CPU) fetch() uint16 {
	hi := uint16(c.mem.Read(c.PC))
	lo := uint16(c.mem.Read(c.PC + 1))
	c.PC += 2
	return hi<<8 | lo
}

func (c *CPU) skip() { c.PC += 2 }
