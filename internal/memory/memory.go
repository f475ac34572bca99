package memory

import "errors"

const (
	Size         = 0x1000 // 4 KiB address space
	AddrMask     = Size - 1
	FontAddr     = 0x000 // built-in hex glyphs live at 0x000–0x04F
	GlyphBytes   = 5
	ProgramStart = 0x200
	MaxProgram   = Size - ProgramStart
)

// ErrProgramTooLarge is returned when an image does not fit between 0x200 and 0xFFF.
var ErrProgramTooLarge = errors.New("program does not fit in memory")

// View is a read-only window onto memory for observers such as the
// disassembler or save states.
type View interface {
	Read(addr uint16) byte
	Len() int
}

// Memory is the flat byte-addressable CHIP-8 RAM.
type Memory struct {
	ram [Size]byte
}

// New returns zeroed memory with the font table installed.
func New() *Memory {
	m := &Memory{}
	m.installFont()
	return m
}

// Read returns the byte at addr. Addresses wrap at 12 bits.
func (m *Memory) Read(addr uint16) byte { return m.ram[addr&AddrMask] }

// Write stores v at addr. Addresses wrap at 12 bits.
func (m *Memory) Write(addr uint16, v byte) { m.ram[addr&AddrMask] = v }

// LoadBlock copies data starting at addr. Bytes beyond the end of RAM are dropped;
// the caller guarantees addr+len(data) <= Size.
func (m *Memory) LoadBlock(addr uint16, data []byte) {
	copy(m.ram[addr&AddrMask:], data)
}

// Len reports the size of the address space.
func (m *Memory) Len() int { return Size }

// Reset zeroes RAM and reinstalls the font table.
func (m *Memory) Reset() {
	m.ram = [Size]byte{}
	m.installFont()
}

// LoadProgram resets memory and installs a program image at 0x200.
func (m *Memory) LoadProgram(program []byte) error {
	if len(program) > MaxProgram {
		return ErrProgramTooLarge
	}
	m.Reset()
	m.LoadBlock(ProgramStart, program)
	return nil
}

// Snapshot returns a copy of RAM.
func (m *Memory) Snapshot() []byte {
	out := make([]byte, Size)
	copy(out, m.ram[:])
	return out
}

// Restore overwrites RAM from a snapshot taken with Snapshot.
func (m *Memory) Restore(data []byte) {
	m.ram = [Size]byte{}
	copy(m.ram[:], data)
}

func (m *Memory) installFont() {
	m.LoadBlock(FontAddr, Font[:])
}
