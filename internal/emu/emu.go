package emu

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"hash/crc32"
	"os"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/cpu"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/disasm"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/display"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/keypad"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/memory"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/rom"
	"github.com/retroenv/retrogolib/log"
)

var (
	ErrNoROM         = errors.New("no ROM loaded")
	ErrStateMismatch = errors.New("save state belongs to a different ROM")
)

// Machine owns one interpreter together with its display, keypad and tone
// player, and advances them one 60 Hz frame at a time.
type Machine struct {
	cfg    Config
	logger *log.Logger

	mem  *memory.Memory
	cpu  *cpu.CPU
	fb   *display.Framebuffer
	keys *keypad.Keypad
	tone cpu.Tone

	// key snapshot handed to the keypad at the start of the next frame
	pending [keypad.Keys]bool

	rom     []byte
	romPath string
	frames  uint64
}

func New(cfg Config, logger *log.Logger) *Machine {
	m := &Machine{
		cfg:    cfg,
		logger: logger,
		mem:    memory.New(),
		fb:     display.New(),
		keys:   keypad.New(),
	}
	m.cpu = cpu.New(m.mem, cpu.NewRandom(cfg.Seed))
	if cfg.Trace {
		m.cpu.Trace = m.trace
	}
	return m
}

func (m *Machine) trace(pc, opcode uint16) {
	m.logger.Debug("Exec",
		log.Hex("pc", pc),
		log.Hex("opcode", opcode),
		log.String("asm", disasm.Format(opcode)))
}

// LoadROM validates data and restarts the machine with it.
func (m *Machine) LoadROM(data []byte) error {
	if err := rom.Validate(data); err != nil {
		return fmt.Errorf("load ROM: %w", err)
	}
	m.rom = append([]byte(nil), data...)
	m.romPath = ""
	return m.Reset()
}

// LoadROMFromFile loads a ROM from disk and remembers its path for save states.
func (m *Machine) LoadROMFromFile(path string) error {
	data, err := rom.Load(path)
	if err != nil {
		return err
	}
	if err := m.LoadROM(data); err != nil {
		return err
	}
	m.romPath = path
	m.logger.Info("ROM loaded", log.String("info", rom.Inspect(path, data).String()))
	return nil
}

// ROMPath returns the currently loaded ROM file path, if any.
func (m *Machine) ROMPath() string { return m.romPath }

// HasROM reports whether a program is loaded.
func (m *Machine) HasROM() bool { return len(m.rom) > 0 }

// Reset reloads the current ROM into fresh memory and restarts the CPU.
func (m *Machine) Reset() error {
	if !m.HasROM() {
		return ErrNoROM
	}
	if err := m.mem.LoadProgram(m.rom); err != nil {
		return err
	}
	m.cpu.Reset()
	m.fb.Clear()
	m.keys.Reset()
	m.pending = [keypad.Keys]bool{}
	m.frames = 0
	if m.tone != nil && m.tone.IsPlaying() {
		m.tone.Pause()
	}
	return nil
}

// SetTone attaches the buzzer. nil silences the machine.
func (m *Machine) SetTone(t cpu.Tone) { m.tone = t }

// SetKeys replaces the key snapshot used for the next frame.
func (m *Machine) SetKeys(down [keypad.Keys]bool) { m.pending = down }

func (m *Machine) PressKey(k byte)   { m.pending[k&0x0F] = true }
func (m *Machine) ReleaseKey(k byte) { m.pending[k&0x0F] = false }

// StepFrame polls the keys and runs one interpreter tick. Without a ROM it
// does nothing.
func (m *Machine) StepFrame() {
	if !m.HasROM() {
		return
	}
	m.keys.Poll(m.pending)
	m.cpu.Tick(m.fb, m.keys, m.tone)
	m.frames++
}

// Frames counts ticks since the last reset.
func (m *Machine) Frames() uint64 { return m.frames }

// Display exposes the framebuffer for front ends that render it themselves.
func (m *Machine) Display() *display.Framebuffer { return m.fb }

// Framebuffer renders the display as RGBA with the given palette.
func (m *Machine) Framebuffer(p Palette) []byte { return m.fb.RGBA(p.FG, p.BG) }

// CPUState is a snapshot of the interpreter registers.
func (m *Machine) CPUState() cpu.State { return m.cpu.State() }

// Memory is a read-only view of RAM.
func (m *Machine) Memory() memory.View { return m.cpu.Memory() }

// --- Save/Load state ---
type machineState struct {
	ROMCRC  uint32
	CPU     cpu.State
	RAM     []byte
	Display []byte
	Keys    [keypad.Keys]bool
	Frames  uint64
}

func (m *Machine) SaveState() ([]byte, error) {
	if !m.HasROM() {
		return nil, ErrNoROM
	}
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(machineState{
		ROMCRC:  crc32.ChecksumIEEE(m.rom),
		CPU:     m.cpu.State(),
		RAM:     m.cpu.RAM(),
		Display: m.fb.SaveState(),
		Keys:    m.pending,
		Frames:  m.frames,
	})
	if err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}
	return buf.Bytes(), nil
}

func (m *Machine) LoadState(data []byte) error {
	if !m.HasROM() {
		return ErrNoROM
	}
	var s machineState
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&s); err != nil {
		return fmt.Errorf("decode state: %w", err)
	}
	if s.ROMCRC != crc32.ChecksumIEEE(m.rom) {
		return ErrStateMismatch
	}
	if err := m.fb.LoadState(s.Display); err != nil {
		return fmt.Errorf("decode display: %w", err)
	}
	m.cpu.Restore(s.CPU, s.RAM)
	m.pending = s.Keys
	m.keys.Reset()
	m.frames = s.Frames
	return nil
}

func (m *Machine) SaveStateToFile(path string) error {
	data, err := m.SaveState()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (m *Machine) LoadStateFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return m.LoadState(data)
}

// StatePath derives the save-state file for a slot, next to the ROM when
// one was loaded from disk.
func (m *Machine) StatePath(slot int) string {
	base := m.romPath
	if base == "" {
		base = "chip8"
	}
	return fmt.Sprintf("%s.slot%d.state", base, slot+1)
}
