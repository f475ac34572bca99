package cpu

// StackDepth is the number of return addresses the call stack can hold.
const StackDepth = 16

// Stack is the fixed-depth return address stack. Overflow and underflow
// are silently ignored.
type Stack struct {
	slots [StackDepth]uint16
	sp    byte
}

// Push stores addr and reports whether there was room for it.
func (s *Stack) Push(addr uint16) bool {
	if int(s.sp) >= StackDepth {
		return false
	}
	s.slots[s.sp] = addr
	s.sp++
	return true
}

// Pop returns the most recent address, or ok=false when the stack is empty.
func (s *Stack) Pop() (addr uint16, ok bool) {
	if s.sp == 0 {
		return 0, false
	}
	s.sp--
	return s.slots[s.sp], true
}

// Len is the current stack pointer.
func (s *Stack) Len() int { return int(s.sp) }

// Reset empties the stack.
func (s *Stack) Reset() { *s = Stack{} }
