package cpu

import (
	"testing"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/memory"
)

func TestTick_DecrementsTimersOnce(t *testing.T) {
	// JP 0x200 forever
	c := newCPUWithROM([]byte{0x12, 0x00})
	c.DT, c.ST = 3, 0
	c.Tick(&fakeDisplay{}, &fakeKeys{}, &fakeTone{})
	if c.DT != 2 {
		t.Fatalf("DT got %d want 2", c.DT)
	}
	c.DT = 0
	c.Tick(&fakeDisplay{}, &fakeKeys{}, nil)
	if c.DT != 0 {
		t.Fatalf("DT must not underflow, got %d", c.DT)
	}
}

func TestTick_ToneFollowsSoundTimer(t *testing.T) {
	c := newCPUWithROM([]byte{0x12, 0x00})
	tone := &fakeTone{}
	d, k := &fakeDisplay{}, &fakeKeys{}

	c.ST = 3
	c.Tick(d, k, tone) // ST 2
	c.Tick(d, k, tone) // ST 1
	if !tone.playing || tone.plays != 1 {
		t.Fatalf("tone playing=%v plays=%d want true/1", tone.playing, tone.plays)
	}
	c.Tick(d, k, tone) // ST 0
	if tone.playing || tone.stops != 1 {
		t.Fatalf("tone playing=%v stops=%d want false/1", tone.playing, tone.stops)
	}
	c.Tick(d, k, tone)
	if tone.stops != 1 {
		t.Fatalf("pause must be idempotent, stops=%d", tone.stops)
	}
}

func TestTick_RunsUntilBudgetSpent(t *testing.T) {
	// 6XNN costs 27us: a full quantum runs ceil(16666/27) = 618 of them.
	code := make([]byte, 0)
	for i := 0; i < 700; i++ {
		code = append(code, 0x60, byte(i))
	}
	c := newCPUWithROM(code)
	c.Tick(&fakeDisplay{}, &fakeKeys{}, nil)
	executed := int(c.PC-memory.ProgramStart) / 2
	if executed != 618 {
		t.Fatalf("executed %d instructions want 618", executed)
	}
	if c.State().Cycles > 0 || c.State().Cycles <= -27 {
		t.Fatalf("leftover budget %d out of range", c.State().Cycles)
	}
}

func TestTick_DrawDebtCarriesOver(t *testing.T) {
	// DRW costs more than one quantum; the overrun is charged to the next tick.
	c := newCPUWithROM([]byte{0xD0, 0x01, 0x60, 0x01})
	d := &fakeDisplay{}
	c.Tick(d, &fakeKeys{}, nil)
	if c.PC != 0x202 {
		t.Fatalf("PC after draw tick got %#04x want 0x202", c.PC)
	}
	if got, want := c.State().Cycles, Quantum-22734; got != want {
		t.Fatalf("budget after draw got %d want %d", got, want)
	}
	if !d.redraw {
		t.Fatalf("DRW did not raise the redraw flag")
	}
	c.Tick(d, &fakeKeys{}, nil)
	if c.V[0] != 1 {
		t.Fatalf("second tick should resume execution, V0=%d", c.V[0])
	}
}

func TestTick_WaitForKeyStopsEarly(t *testing.T) {
	c := newCPUWithROM([]byte{0x60, 0x01, 0xF1, 0x0A, 0x60, 0x02})
	k := &fakeKeys{}
	c.Tick(&fakeDisplay{}, k, nil)
	if c.PC != 0x202 || c.V[0] != 1 {
		t.Fatalf("tick should park on FX0A, PC=%#04x V0=%d", c.PC, c.V[0])
	}
	k.released[4] = true
	c.Tick(&fakeDisplay{}, k, nil)
	if c.V[1] != 4 {
		t.Fatalf("V1 got %d want 4", c.V[1])
	}
}

func TestTick_TraceHook(t *testing.T) {
	c := newCPUWithROM([]byte{0x60, 0x01, 0x00, 0x00})
	var seen []uint16
	c.Trace = func(pc, opcode uint16) { seen = append(seen, pc, opcode) }
	c.Tick(&fakeDisplay{}, &fakeKeys{}, nil)
	// second instruction is 0000: zero cost ends the tick
	if len(seen) != 4 || seen[0] != 0x200 || seen[1] != 0x6001 || seen[2] != 0x202 || seen[3] != 0x0000 {
		t.Fatalf("trace got %04x", seen)
	}
}
