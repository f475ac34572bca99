// Package disasm renders CHIP-8 opcodes as assembly text.
package disasm

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/cpu"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/memory"
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Mnemonic returns the instruction name for opcode, or "" when the opcode
// is not a known instruction.
func Mnemonic(opcode uint16) string {
	if cpu.Decode(opcode).Op == cpu.OpInvalid {
		return ""
	}
	for _, op := range chip8.Opcodes[int(opcode>>12)] {
		if op.Instruction != nil && opcode&op.Info.Mask == op.Info.Value {
			return strings.ToUpper(op.Instruction.Name)
		}
	}
	// retrogolib has no entry; fall back to the interpreter's own name
	return strings.Fields(cpu.Decode(opcode).Op.String())[0]
}

// Format renders a single opcode, e.g. "LD V0, $01". Unknown opcodes are
// shown as a data word.
func Format(opcode uint16) string {
	name := Mnemonic(opcode)
	if name == "" {
		return fmt.Sprintf("DW $%04X", opcode)
	}
	if ops := operands(cpu.Decode(opcode)); ops != "" {
		return name + " " + ops
	}
	return name
}

func operands(in cpu.Instruction) string {
	x, y := in.X(), in.Y()
	switch in.Op {
	case cpu.OpCls, cpu.OpRet:
		return ""
	case cpu.OpJp, cpu.OpCall:
		return fmt.Sprintf("$%03X", in.NNN())
	case cpu.OpJpV0:
		return fmt.Sprintf("V0, $%03X", in.NNN())
	case cpu.OpSeImm, cpu.OpSneImm, cpu.OpLdImm, cpu.OpAddImm, cpu.OpRnd:
		return fmt.Sprintf("V%X, $%02X", x, in.NN())
	case cpu.OpSeReg, cpu.OpSneReg, cpu.OpLdReg, cpu.OpOr, cpu.OpAnd, cpu.OpXor,
		cpu.OpAddReg, cpu.OpSub, cpu.OpSubn:
		return fmt.Sprintf("V%X, V%X", x, y)
	case cpu.OpShr, cpu.OpShl, cpu.OpSkp, cpu.OpSknp:
		return fmt.Sprintf("V%X", x)
	case cpu.OpLdI:
		return fmt.Sprintf("I, $%03X", in.NNN())
	case cpu.OpDrw:
		return fmt.Sprintf("V%X, V%X, $%X", x, y, in.N())
	case cpu.OpLdVxDT:
		return fmt.Sprintf("V%X, DT", x)
	case cpu.OpLdVxK:
		return fmt.Sprintf("V%X, K", x)
	case cpu.OpLdDTVx:
		return fmt.Sprintf("DT, V%X", x)
	case cpu.OpLdSTVx:
		return fmt.Sprintf("ST, V%X", x)
	case cpu.OpAddI:
		return fmt.Sprintf("I, V%X", x)
	case cpu.OpLdF:
		return fmt.Sprintf("F, V%X", x)
	case cpu.OpLdB:
		return fmt.Sprintf("B, V%X", x)
	case cpu.OpStore:
		return fmt.Sprintf("[I], V%X", x)
	case cpu.OpLoad:
		return fmt.Sprintf("V%X, [I]", x)
	}
	return ""
}

// Line formats one listing row: address, raw opcode, assembly.
func Line(pc, opcode uint16) string {
	return fmt.Sprintf("$%04X  %04X  %s", pc, opcode, Format(opcode))
}

// targets collects the JP and CALL destinations inside the program area.
func targets(data []byte, origin uint16) map[uint16]bool {
	out := map[uint16]bool{}
	end := int(origin) + len(data)
	for i := 0; i+1 < len(data); i += 2 {
		in := cpu.Decode(uint16(data[i])<<8 | uint16(data[i+1]))
		if in.Op != cpu.OpJp && in.Op != cpu.OpCall {
			continue
		}
		if t := in.NNN(); t >= origin && int(t) < end {
			out[t] = true
		}
	}
	return out
}

// Program writes a linear listing of data as loaded at origin. Jump and call
// targets get a label line. A trailing odd byte is listed as a data byte.
func Program(w io.Writer, data []byte, origin uint16) error {
	bw := bufio.NewWriter(w)
	labels := targets(data, origin)
	for i := 0; i < len(data); i += 2 {
		pc := origin + uint16(i)
		if labels[pc] {
			fmt.Fprintf(bw, "L%03X:\n", pc&memory.AddrMask)
		}
		if i+1 >= len(data) {
			fmt.Fprintf(bw, "$%04X  %02X    DB $%02X\n", pc, data[i], data[i])
			break
		}
		fmt.Fprintln(bw, Line(pc, uint16(data[i])<<8|uint16(data[i+1])))
	}
	return bw.Flush()
}

// Labels returns the sorted label addresses Program would emit.
func Labels(data []byte, origin uint16) []uint16 {
	m := targets(data, origin)
	out := make([]uint16, 0, len(m))
	for a := range m {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Window lists n instructions of a live memory view starting at pc.
func Window(mem memory.View, pc uint16, n int) []string {
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		a := (pc + uint16(2*i)) & memory.AddrMask
		op := uint16(mem.Read(a))<<8 | uint16(mem.Read(a+1))
		out = append(out, Line(a, op))
	}
	return out
}
