package cpu

import (
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/memory"
)

// Display geometry.
const (
	Cols = 64
	Rows = 32
)

type handler func(c *CPU, in Instruction, d Display, k Keys) int

// handlers is indexed by Op; each entry returns the emulated cost in microseconds.
var handlers = [opCount]handler{
	OpInvalid: opInvalid,
	OpCls:     opCls,
	OpRet:     opRet,
	OpJp:      opJp,
	OpCall:    opCall,
	OpSeImm:   opSeImm,
	OpSneImm:  opSneImm,
	OpSeReg:   opSeReg,
	OpLdImm:   opLdImm,
	OpAddImm:  opAddImm,
	OpLdReg:   opLdReg,
	OpOr:      opOr,
	OpAnd:     opAnd,
	OpXor:     opXor,
	OpAddReg:  opAddReg,
	OpSub:     opSub,
	OpShr:     opShr,
	OpSubn:    opSubn,
	OpShl:     opShl,
	OpSneReg:  opSneReg,
	OpLdI:     opLdI,
	OpJpV0:    opJpV0,
	OpRnd:     opRnd,
	OpDrw:     opDrw,
	OpSkp:     opSkp,
	OpSknp:    opSknp,
	OpLdVxDT:  opLdVxDT,
	OpLdVxK:   opLdVxK,
	OpLdDTVx:  opLdDTVx,
	OpLdSTVx:  opLdSTVx,
	OpAddI:    opAddI,
	OpLdF:     opLdF,
	OpLdB:     opLdB,
	OpStore:   opStore,
	OpLoad:    opLoad,
}

// skip instructions cost this much extra when they fall through
const noSkipPenalty = 9

func opInvalid(c *CPU, in Instruction, d Display, k Keys) int { return 0 }

// 00E0
func opCls(c *CPU, in Instruction, d Display, k Keys) int {
	d.Clear()
	return 109
}

// 00EE
func opRet(c *CPU, in Instruction, d Display, k Keys) int {
	if addr, ok := c.stack.Pop(); ok {
		c.PC = addr
	}
	return 105
}

// 1nnn
func opJp(c *CPU, in Instruction, d Display, k Keys) int {
	c.PC = in.NNN()
	return 105
}

// 2nnn
func opCall(c *CPU, in Instruction, d Display, k Keys) int {
	if c.stack.Push(c.PC) {
		c.PC = in.NNN()
	}
	return 105
}

func (c *CPU) skipIf(cond bool, base int) int {
	if cond {
		c.skip()
		return base
	}
	return base + noSkipPenalty
}

// 3xnn
func opSeImm(c *CPU, in Instruction, d Display, k Keys) int {
	return c.skipIf(c.V.Get(in.X()) == in.NN(), 55)
}

// 4xnn
func opSneImm(c *CPU, in Instruction, d Display, k Keys) int {
	return c.skipIf(c.V.Get(in.X()) != in.NN(), 55)
}

// 5xy0
func opSeReg(c *CPU, in Instruction, d Display, k Keys) int {
	return c.skipIf(c.V.Get(in.X()) == c.V.Get(in.Y()), 55)
}

// 9xy0
func opSneReg(c *CPU, in Instruction, d Display, k Keys) int {
	return c.skipIf(c.V.Get(in.X()) != c.V.Get(in.Y()), 73)
}

// 6xnn
func opLdImm(c *CPU, in Instruction, d Display, k Keys) int {
	c.V.Set(in.X(), in.NN())
	return 27
}

// 7xnn, wraps without touching VF
func opAddImm(c *CPU, in Instruction, d Display, k Keys) int {
	c.V.Set(in.X(), c.V.Get(in.X())+in.NN())
	return 45
}

// 8xy0
func opLdReg(c *CPU, in Instruction, d Display, k Keys) int {
	c.V.Set(in.X(), c.V.Get(in.Y()))
	return 200
}

// 8xy1
func opOr(c *CPU, in Instruction, d Display, k Keys) int {
	c.V.Set(in.X(), c.V.Get(in.X())|c.V.Get(in.Y()))
	return 200
}

// 8xy2
func opAnd(c *CPU, in Instruction, d Display, k Keys) int {
	c.V.Set(in.X(), c.V.Get(in.X())&c.V.Get(in.Y()))
	return 200
}

// 8xy3
func opXor(c *CPU, in Instruction, d Display, k Keys) int {
	c.V.Set(in.X(), c.V.Get(in.X())^c.V.Get(in.Y()))
	return 200
}

// 8xy4: VF is written last so it wins when x == F.
func opAddReg(c *CPU, in Instruction, d Display, k Keys) int {
	sum := uint16(c.V.Get(in.X())) + uint16(c.V.Get(in.Y()))
	c.V.Set(in.X(), byte(sum))
	c.V.Set(flagReg, boolByte(sum > 0xFF))
	return 200
}

// 8xy5
func opSub(c *CPU, in Instruction, d Display, k Keys) int {
	vx, vy := c.V.Get(in.X()), c.V.Get(in.Y())
	c.V.Set(in.X(), vx-vy)
	c.V.Set(flagReg, boolByte(vx > vy))
	return 200
}

// 8xy7
func opSubn(c *CPU, in Instruction, d Display, k Keys) int {
	vx, vy := c.V.Get(in.X()), c.V.Get(in.Y())
	c.V.Set(in.X(), vy-vx)
	c.V.Set(flagReg, boolByte(vy > vx))
	return 200
}

// 8xy6
func opShr(c *CPU, in Instruction, d Display, k Keys) int {
	vx := c.V.Get(in.X())
	c.V.Set(in.X(), vx>>1)
	c.V.Set(flagReg, vx&0x01)
	return 200
}

// 8xyE
func opShl(c *CPU, in Instruction, d Display, k Keys) int {
	vx := c.V.Get(in.X())
	c.V.Set(in.X(), vx<<1)
	c.V.Set(flagReg, vx>>7)
	return 200
}

// Annn
func opLdI(c *CPU, in Instruction, d Display, k Keys) int {
	c.I = in.NNN()
	return 55
}

// Bnnn
func opJpV0(c *CPU, in Instruction, d Display, k Keys) int {
	c.PC = in.NNN() + uint16(c.V.Get(0))
	return 105
}

// Cxnn
func opRnd(c *CPU, in Instruction, d Display, k Keys) int {
	c.V.Set(in.X(), c.rng.Byte()&in.NN())
	return 164
}

// Dxyn XOR-plots n rows of 8 pixels, wrapping on both axes. VF is not
// touched: collision reporting is deliberately absent.
func opDrw(c *CPU, in Instruction, d Display, k Keys) int {
	vx := int(c.V.Get(in.X()))
	vy := int(c.V.Get(in.Y()))
	for row := 0; row < int(in.N()); row++ {
		bits := c.mem.Read(c.I + uint16(row))
		y := (vy + row) % Rows
		for bit := 0; bit < 8; bit++ {
			if bits&(0x80>>bit) == 0 {
				continue
			}
			x := (vx + bit) % Cols
			d.TogglePixel(y*Cols + x)
		}
	}
	d.SetRedrawPending(true)
	return 22734
}

// Ex9E
func opSkp(c *CPU, in Instruction, d Display, k Keys) int {
	if k.IsDown(c.V.Get(in.X())) {
		c.skip()
	}
	return 73
}

// ExA1
func opSknp(c *CPU, in Instruction, d Display, k Keys) int {
	if !k.IsDown(c.V.Get(in.X())) {
		c.skip()
	}
	return 73
}

// Fx07
func opLdVxDT(c *CPU, in Instruction, d Display, k Keys) int {
	c.V.Set(in.X(), c.DT)
	return 45
}

// Fx0A waits for a key release. While none is seen the instruction rewinds
// itself and reports zero cost so the current tick stops.
func opLdVxK(c *CPU, in Instruction, d Display, k Keys) int {
	for key := byte(0); key < 16; key++ {
		if k.WasReleased(key) {
			c.V.Set(in.X(), key)
			return 1
		}
	}
	c.PC -= 2
	return 0
}

// Fx15
func opLdDTVx(c *CPU, in Instruction, d Display, k Keys) int {
	c.DT = c.V.Get(in.X())
	return 45
}

// Fx18
func opLdSTVx(c *CPU, in Instruction, d Display, k Keys) int {
	c.ST = c.V.Get(in.X())
	return 45
}

// Fx1E
func opAddI(c *CPU, in Instruction, d Display, k Keys) int {
	c.I += uint16(c.V.Get(in.X()))
	return 86
}

// Fx29
func opLdF(c *CPU, in Instruction, d Display, k Keys) int {
	c.I = memory.GlyphAddr(c.V.Get(in.X()))
	return 91
}

// Fx33
func opLdB(c *CPU, in Instruction, d Display, k Keys) int {
	vx := c.V.Get(in.X())
	c.mem.Write(c.I, vx/100)
	c.mem.Write(c.I+1, (vx/10)%10)
	c.mem.Write(c.I+2, vx%10)
	return 927
}

// Fx55
func opStore(c *CPU, in Instruction, d Display, k Keys) int {
	x := in.X()
	for i := byte(0); i <= x; i++ {
		c.mem.Write(c.I+uint16(i), c.V.Get(i))
	}
	return 605 + int(x)*64
}

// Fx65
func opLoad(c *CPU, in Instruction, d Display, k Keys) int {
	x := in.X()
	for i := byte(0); i <= x; i++ {
		c.V.Set(i, c.mem.Read(c.I+uint16(i)))
	}
	return 605 + int(x)*64
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
