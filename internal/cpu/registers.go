package cpu

// NumRegisters is the size of the V register file.
const NumRegisters = 16

// flagReg is VF, overwritten by arithmetic and shift instructions.
const flagReg = 0xF

// Registers holds V0..VF. It carries no behaviour of its own.
type Registers [NumRegisters]byte

func (r *Registers) Get(i byte) byte    { return r[i&0x0F] }
func (r *Registers) Set(i byte, v byte) { r[i&0x0F] = v }
