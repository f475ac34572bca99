package cpu

// Op identifies a decoded instruction.
type Op uint8

const (
	OpInvalid Op = iota
	OpCls        // 00E0
	OpRet        // 00EE
	OpJp         // 1nnn
	OpCall       // 2nnn
	OpSeImm      // 3xnn
	OpSneImm     // 4xnn
	OpSeReg      // 5xy0
	OpLdImm      // 6xnn
	OpAddImm     // 7xnn
	OpLdReg      // 8xy0
	OpOr         // 8xy1
	OpAnd        // 8xy2
	OpXor        // 8xy3
	OpAddReg     // 8xy4
	OpSub        // 8xy5
	OpShr        // 8xy6
	OpSubn       // 8xy7
	OpShl        // 8xyE
	OpSneReg     // 9xy0
	OpLdI        // Annn
	OpJpV0       // Bnnn
	OpRnd        // Cxnn
	OpDrw        // Dxyn
	OpSkp        // Ex9E
	OpSknp       // ExA1
	OpLdVxDT     // Fx07
	OpLdVxK      // Fx0A
	OpLdDTVx     // Fx15
	OpLdSTVx     // Fx18
	OpAddI       // Fx1E
	OpLdF        // Fx29
	OpLdB        // Fx33
	OpStore      // Fx55
	OpLoad       // Fx65

	opCount
)

var opNames = [opCount]string{
	OpInvalid: "???",
	OpCls:     "CLS",
	OpRet:     "RET",
	OpJp:      "JP",
	OpCall:    "CALL",
	OpSeImm:   "SE Vx,nn",
	OpSneImm:  "SNE Vx,nn",
	OpSeReg:   "SE Vx,Vy",
	OpLdImm:   "LD Vx,nn",
	OpAddImm:  "ADD Vx,nn",
	OpLdReg:   "LD Vx,Vy",
	OpOr:      "OR",
	OpAnd:     "AND",
	OpXor:     "XOR",
	OpAddReg:  "ADD Vx,Vy",
	OpSub:     "SUB",
	OpShr:     "SHR",
	OpSubn:    "SUBN",
	OpShl:     "SHL",
	OpSneReg:  "SNE Vx,Vy",
	OpLdI:     "LD I,nnn",
	OpJpV0:    "JP V0,nnn",
	OpRnd:     "RND",
	OpDrw:     "DRW",
	OpSkp:     "SKP",
	OpSknp:    "SKNP",
	OpLdVxDT:  "LD Vx,DT",
	OpLdVxK:   "LD Vx,K",
	OpLdDTVx:  "LD DT,Vx",
	OpLdSTVx:  "LD ST,Vx",
	OpAddI:    "ADD I,Vx",
	OpLdF:     "LD F,Vx",
	OpLdB:     "LD B,Vx",
	OpStore:   "LD [I],Vx",
	OpLoad:    "LD Vx,[I]",
}

func (o Op) String() string {
	if o >= opCount {
		return opNames[OpInvalid]
	}
	return opNames[o]
}

// Instruction is a decoded opcode with its operand fields.
type Instruction struct {
	Op     Op
	Opcode uint16
}

func (in Instruction) X() byte     { return byte(in.Opcode>>8) & 0x0F }
func (in Instruction) Y() byte     { return byte(in.Opcode>>4) & 0x0F }
func (in Instruction) N() byte     { return byte(in.Opcode) & 0x0F }
func (in Instruction) NN() byte    { return byte(in.Opcode) }
func (in Instruction) NNN() uint16 { return in.Opcode & 0x0FFF }

// pattern matches an opcode when opcode&mask == value.
type pattern struct {
	mask  uint16
	value uint16
	op    Op
}

// families groups the patterns by top nibble. Families 0x0, 0x8, 0xE and 0xF
// carry sub-patterns on the low nibble or byte; everything else has one entry.
var families = [16][]pattern{
	0x0: {
		{0xFFFF, 0x00E0, OpCls},
		{0xFFFF, 0x00EE, OpRet},
	},
	0x1: {{0xF000, 0x1000, OpJp}},
	0x2: {{0xF000, 0x2000, OpCall}},
	0x3: {{0xF000, 0x3000, OpSeImm}},
	0x4: {{0xF000, 0x4000, OpSneImm}},
	0x5: {{0xF00F, 0x5000, OpSeReg}},
	0x6: {{0xF000, 0x6000, OpLdImm}},
	0x7: {{0xF000, 0x7000, OpAddImm}},
	0x8: {
		{0xF00F, 0x8000, OpLdReg},
		{0xF00F, 0x8001, OpOr},
		{0xF00F, 0x8002, OpAnd},
		{0xF00F, 0x8003, OpXor},
		{0xF00F, 0x8004, OpAddReg},
		{0xF00F, 0x8005, OpSub},
		{0xF00F, 0x8006, OpShr},
		{0xF00F, 0x8007, OpSubn},
		{0xF00F, 0x800E, OpShl},
	},
	0x9: {{0xF00F, 0x9000, OpSneReg}},
	0xA: {{0xF000, 0xA000, OpLdI}},
	0xB: {{0xF000, 0xB000, OpJpV0}},
	0xC: {{0xF000, 0xC000, OpRnd}},
	0xD: {{0xF000, 0xD000, OpDrw}},
	0xE: {
		{0xF0FF, 0xE09E, OpSkp},
		{0xF0FF, 0xE0A1, OpSknp},
	},
	0xF: {
		{0xF0FF, 0xF007, OpLdVxDT},
		{0xF0FF, 0xF00A, OpLdVxK},
		{0xF0FF, 0xF015, OpLdDTVx},
		{0xF0FF, 0xF018, OpLdSTVx},
		{0xF0FF, 0xF01E, OpAddI},
		{0xF0FF, 0xF029, OpLdF},
		{0xF0FF, 0xF033, OpLdB},
		{0xF0FF, 0xF055, OpStore},
		{0xF0FF, 0xF065, OpLoad},
	},
}

// Decode maps an opcode to its instruction. Opcodes matching no pattern,
// including 0nnn machine-code calls, decode to OpInvalid.
func Decode(opcode uint16) Instruction {
	for _, p := range families[opcode>>12] {
		if opcode&p.mask == p.value {
			return Instruction{Op: p.op, Opcode: opcode}
		}
	}
	return Instruction{Op: OpInvalid, Opcode: opcode}
}
