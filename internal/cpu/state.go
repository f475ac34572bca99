package cpu

// State is a serialisable snapshot of the interpreter's private registers.
type State struct {
	V      [NumRegisters]byte
	PC     uint16
	I      uint16
	SP     byte
	Stack  [StackDepth]uint16
	DT, ST byte
	Cycles int
}

// State captures the current register state.
func (c *CPU) State() State {
	return State{
		V:      c.V,
		PC:     c.PC,
		I:      c.I,
		SP:     c.stack.sp,
		Stack:  c.stack.slots,
		DT:     c.DT,
		ST:     c.ST,
		Cycles: c.cycles,
	}
}

// Restore loads a snapshot. When ram is non-nil it replaces memory contents too.
func (c *CPU) Restore(s State, ram []byte) {
	c.V = s.V
	c.PC = s.PC
	c.I = s.I
	c.stack.slots = s.Stack
	c.stack.sp = s.SP
	if int(c.stack.sp) > StackDepth {
		c.stack.sp = StackDepth
	}
	c.DT, c.ST = s.DT, s.ST
	c.cycles = s.Cycles
	if ram != nil {
		c.mem.Restore(ram)
	}
}

// RAM returns a copy of memory for save states.
func (c *CPU) RAM() []byte { return c.mem.Snapshot() }
