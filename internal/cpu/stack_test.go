package cpu

import (
	"testing"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/memory"
	"github.com/retroenv/retrogolib/assert"
)

func TestStack_PushPop(t *testing.T) {
	var s Stack
	for i := 0; i < StackDepth; i++ {
		assert.True(t, s.Push(uint16(0x200+i*2)))
	}
	assert.False(t, s.Push(0xFFF))
	assert.Equal(t, StackDepth, s.Len())

	for i := StackDepth - 1; i >= 0; i-- {
		addr, ok := s.Pop()
		assert.True(t, ok)
		assert.Equal(t, uint16(0x200+i*2), addr)
	}
	_, ok := s.Pop()
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
}

func TestRegisters_IndexWraps(t *testing.T) {
	var r Registers
	r.Set(0x1F, 7)
	assert.Equal(t, byte(7), r.Get(0xF))
}

func TestState_RoundTrip(t *testing.T) {
	c := newCPUWithROM([]byte{0x22, 0x04, 0x00, 0x00, 0x6A, 0x42, 0xA1, 0x23})
	c.DT, c.ST = 9, 4
	run(c, 3)
	snap := c.State()
	ram := c.RAM()

	other := New(memory.New(), nil)
	other.Restore(snap, ram)
	assert.Equal(t, snap, other.State())
	assert.Equal(t, byte(0x42), other.V[0xA])
	assert.Equal(t, uint16(0x123), other.I)
	assert.Equal(t, 1, other.SP())
	assert.Equal(t, byte(0x22), other.Memory().Read(0x200))

	// returning from the restored subroutine lands after the CALL
	other.mem.LoadBlock(other.PC, []byte{0x00, 0xEE})
	run(other, 1)
	assert.Equal(t, uint16(0x202), other.PC)
}

func TestState_RestoreClampsStackPointer(t *testing.T) {
	c := newCPUWithROM(nil)
	c.Restore(State{SP: 200, PC: 0x300}, nil)
	assert.Equal(t, StackDepth, c.SP())
	assert.Equal(t, uint16(0x300), c.PC)
}

func TestCPU_Reset(t *testing.T) {
	c := newCPUWithROM([]byte{0x22, 0x04, 0x00, 0x00, 0x6A, 0x42})
	run(c, 2)
	c.Reset()
	assert.Equal(t, uint16(memory.ProgramStart), c.PC)
	assert.Equal(t, 0, c.SP())
	assert.Equal(t, byte(0), c.V[0xA])
	// memory survives a CPU reset
	assert.Equal(t, byte(0x22), c.Memory().Read(0x200))
}
