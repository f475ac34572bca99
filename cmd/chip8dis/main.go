// Package main implements a CHIP-8 disassembler and instruction runner for
// inspecting ROMs without a front end.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/cpu"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/disasm"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/display"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/keypad"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/memory"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/rom"
)

func main() {
	romPath := flag.String("rom", "", "path to ROM (.ch8)")
	list := flag.Bool("list", false, "print a disassembly listing and exit")
	steps := flag.Int("steps", 1_000_000, "max instructions to run")
	startPC := flag.Int("pc", memory.ProgramStart, "initial PC value")
	seed := flag.Uint64("seed", 1, "random number seed")
	trace := flag.Bool("trace", false, "print every instruction with registers")
	window := flag.Int("window", 8, "instructions to disassemble around the final PC")
	timeout := flag.Duration("timeout", 0, "optional wall-clock timeout (e.g. 30s, 2m); 0 disables")
	outPNG := flag.String("outpng", "", "write the final display to PNG at path")
	flag.Parse()

	if *romPath == "" {
		fmt.Fprintln(os.Stderr, "-rom is required")
		os.Exit(1)
	}
	data, err := rom.Load(*romPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *list {
		fmt.Println("; " + rom.Inspect(*romPath, data).String())
		if err := disasm.Program(os.Stdout, data, memory.ProgramStart); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	mem := memory.New()
	if err := mem.LoadProgram(data); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	c := cpu.New(mem, cpu.NewRandom(*seed))
	c.PC = uint16(*startPC) & memory.AddrMask
	fb := display.New()
	keys := keypad.New()

	start := time.Now()
	var deadline time.Time
	if *timeout > 0 {
		deadline = start.Add(*timeout)
	}
	var cycles int
	code := 0
	for i := 0; i < *steps; i++ {
		pc := c.PC
		op := uint16(mem.Read(pc))<<8 | uint16(mem.Read(pc+1))
		cyc := c.Step(fb, keys)
		cycles += cyc
		if *trace {
			fmt.Printf("%-28s cyc=%-5d %s\n", disasm.Line(pc, op), cyc, registers(c))
		}
		// a jump onto itself is how programs halt
		if c.PC == pc && op&0xF000 == 0x1000 {
			fmt.Printf("\nHalted at $%04X after %d steps.\n", pc, i+1)
			break
		}
		if !deadline.IsZero() && time.Now().After(deadline) {
			fmt.Printf("\nTimeout after %s.\n", time.Since(start).Truncate(time.Millisecond))
			code = 2
			break
		}
	}

	fmt.Println(registers(c))
	if *window > 0 {
		fmt.Println(strings.Join(disasm.Window(c.Memory(), c.PC, *window), "\n"))
	}
	if *outPNG != "" {
		if err := writePNG(fb, *outPNG); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	fmt.Printf("\nDone: cycles~=%dus lit=%d elapsed=%s\n", cycles, fb.Lit(), time.Since(start).Truncate(time.Millisecond))
	os.Exit(code)
}

func registers(c *cpu.CPU) string {
	var sb strings.Builder
	for i, v := range c.V {
		fmt.Fprintf(&sb, "V%X=%02X ", i, v)
	}
	fmt.Fprintf(&sb, "I=%03X SP=%d DT=%02X ST=%02X", c.I, c.SP(), c.DT, c.ST)
	return sb.String()
}

func writePNG(fb *display.Framebuffer, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return fb.WritePNG(f, 4)
}
