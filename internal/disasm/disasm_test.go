package disasm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/memory"
	"github.com/retroenv/retrogolib/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		opcode uint16
		want   string
	}{
		{0x00E0, "CLS"},
		{0x00EE, "RET"},
		{0x1208, "JP $208"},
		{0xB300, "JP V0, $300"},
		{0x2ABC, "CALL $ABC"},
		{0x6001, "LD V0, $01"},
		{0x8AB0, "LD VA, VB"},
		{0x8AB4, "ADD VA, VB"},
		{0x7F10, "ADD VF, $10"},
		{0x8126, "SHR V1"},
		{0xA123, "LD I, $123"},
		{0xC30F, "RND V3, $0F"},
		{0xD125, "DRW V1, V2, $5"},
		{0xE29E, "SKP V2"},
		{0xF20A, "LD V2, K"},
		{0xF233, "LD B, V2"},
		{0xF555, "LD [I], V5"},
		{0xF565, "LD V5, [I]"},
		{0x0123, "DW $0123"},
		{0x5121, "DW $5121"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Format(tt.opcode))
	}
}

func TestLine(t *testing.T) {
	assert.Equal(t, "$0200  6001  LD V0, $01", Line(0x200, 0x6001))
}

func TestProgram(t *testing.T) {
	rom := []byte{0x22, 0x04, 0x12, 0x02, 0x00, 0xEE, 0xAB}
	var buf bytes.Buffer
	assert.NoError(t, Program(&buf, rom, memory.ProgramStart))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{
		"$0200  2204  CALL $204",
		"L202:",
		"$0202  1202  JP $202",
		"L204:",
		"$0204  00EE  RET",
		"$0206  AB    DB $AB",
	}, lines)
	assert.Equal(t, []uint16{0x202, 0x204}, Labels(rom, memory.ProgramStart))
}

func TestWindow(t *testing.T) {
	m := memory.New()
	assert.NoError(t, m.LoadProgram([]byte{0x60, 0x01, 0x00, 0xE0}))
	assert.Equal(t, []string{
		"$0200  6001  LD V0, $01",
		"$0202  00E0  CLS",
	}, Window(m, 0x200, 2))
}
