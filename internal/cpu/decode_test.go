package cpu

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDecode_Families(t *testing.T) {
	tests := []struct {
		opcode uint16
		want   Op
	}{
		{0x00E0, OpCls},
		{0x00EE, OpRet},
		{0x0123, OpInvalid},
		{0x000E, OpInvalid},
		{0x1ABC, OpJp},
		{0x2ABC, OpCall},
		{0x3A12, OpSeImm},
		{0x4A12, OpSneImm},
		{0x5AB0, OpSeReg},
		{0x5AB1, OpInvalid},
		{0x6A12, OpLdImm},
		{0x7A12, OpAddImm},
		{0x8AB0, OpLdReg},
		{0x8AB1, OpOr},
		{0x8AB2, OpAnd},
		{0x8AB3, OpXor},
		{0x8AB4, OpAddReg},
		{0x8AB5, OpSub},
		{0x8AB6, OpShr},
		{0x8AB7, OpSubn},
		{0x8ABE, OpShl},
		{0x8AB8, OpInvalid},
		{0x9AB0, OpSneReg},
		{0x9AB1, OpInvalid},
		{0xAABC, OpLdI},
		{0xBABC, OpJpV0},
		{0xCA12, OpRnd},
		{0xDAB5, OpDrw},
		{0xEA9E, OpSkp},
		{0xEAA1, OpSknp},
		{0xEA00, OpInvalid},
		{0xFA07, OpLdVxDT},
		{0xFA0A, OpLdVxK},
		{0xFA15, OpLdDTVx},
		{0xFA18, OpLdSTVx},
		{0xFA1E, OpAddI},
		{0xFA29, OpLdF},
		{0xFA33, OpLdB},
		{0xFA55, OpStore},
		{0xFA65, OpLoad},
		{0xFAFF, OpInvalid},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Decode(tt.opcode).Op, tt.want.String())
	}
}

func TestDecode_Operands(t *testing.T) {
	in := Decode(0xDAB5)
	assert.Equal(t, byte(0xA), in.X())
	assert.Equal(t, byte(0xB), in.Y())
	assert.Equal(t, byte(0x5), in.N())
	assert.Equal(t, byte(0xB5), in.NN())
	assert.Equal(t, uint16(0xAB5), in.NNN())
}

// Every opcode decodes to exactly one op and every op has a handler.
func TestDecode_TableIsComplete(t *testing.T) {
	seen := map[Op]bool{}
	for op := 0; op <= 0xFFFF; op++ {
		matches := 0
		for _, p := range families[op>>12] {
			if uint16(op)&p.mask == p.value {
				matches++
			}
		}
		assert.True(t, matches <= 1, "ambiguous opcode")
		seen[Decode(uint16(op)).Op] = true
	}
	assert.Len(t, seen, int(opCount))
	for op := Op(0); op < opCount; op++ {
		assert.NotNil(t, handlers[op], op.String())
	}
}

func TestOp_String(t *testing.T) {
	assert.Equal(t, "DRW", OpDrw.String())
	assert.Equal(t, "???", Op(200).String())
}
