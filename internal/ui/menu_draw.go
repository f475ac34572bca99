package ui

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/emu"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// debug font metrics
const (
	glyphW = 6
	lineH  = 14
)

func (a *App) drawMenu(screen *ebiten.Image) {
	switch a.menuMode {
	case "slot":
		a.drawSlotMenu(screen)
	case "rom":
		a.drawRomMenu(screen)
	case "palette":
		a.drawPaletteMenu(screen)
	case "keys":
		a.drawKeysMenu(screen)
	default:
		a.drawMainMenu(screen)
	}
}

func (a *App) drawList(screen *ebiten.Image, title string, items []string, sel int) {
	ebitenutil.DebugPrintAt(screen, title, 10, 10)
	for i, s := range items {
		prefix := "  "
		if i == sel {
			prefix = "> "
		}
		ebitenutil.DebugPrintAt(screen, a.truncateText(prefix+s, a.maxCharsForText(10)), 10, 10+(i+1)*lineH)
	}
}

func (a *App) drawMainMenu(screen *ebiten.Image) {
	items := make([]string, len(mainMenuItems))
	copy(items, mainMenuItems)
	items[0] = fmt.Sprintf("Save state (slot %d)", a.currentSlot+1)
	items[1] = fmt.Sprintf("Load state (slot %d)", a.currentSlot+1)
	items[5] = "Palette: " + emu.Palettes[a.palette].Name
	a.drawList(screen, "Menu:", items, a.menuIdx)

	// quick hints, keep on-screen
	hint := "F5: Save  F9: Load  F2: Reset  M: Mute  [/]: Palette"
	ebitenutil.DebugPrintAt(screen, a.truncateText(hint, a.maxCharsForText(10)), 10, 10+(len(items)+1)*lineH)
}

func (a *App) drawSlotMenu(screen *ebiten.Image) {
	items := make([]string, 0, numSlots)
	for i := 0; i < numSlots; i++ {
		state := "[empty]"
		if _, err := os.Stat(a.statePath(i)); err == nil {
			state = ""
		}
		items = append(items, fmt.Sprintf("%d %s", i+1, state))
	}
	a.drawList(screen, "Select Slot:", items, a.menuIdx)
}

func (a *App) drawPaletteMenu(screen *ebiten.Image) {
	items := make([]string, len(emu.Palettes))
	for i, p := range emu.Palettes {
		items[i] = p.Name
	}
	a.drawList(screen, "Palette:", items, a.menuIdx)
}

func (a *App) drawRomMenu(screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen, "Select ROM (Enter to load, Backspace/Esc to return)", 10, 10)
	ebitenutil.DebugPrintAt(screen, a.truncateText("Dir: "+a.cfg.ROMsDir, a.maxCharsForText(10)), 10, 24)
	if len(a.romList) == 0 {
		ebitenutil.DebugPrintAt(screen, "No ROMs found", 10, 40)
		return
	}
	baseY := 40
	maxRows := a.visibleRows(baseY)
	end := a.romOff + maxRows
	if end > len(a.romList) {
		end = len(a.romList)
	}
	maxChars := a.maxCharsForText(10) - 2 // account for "> " prefix
	for i, p := range a.romList[a.romOff:end] {
		prefix := "  "
		if a.romOff+i == a.romSel {
			prefix = "> "
		}
		ebitenutil.DebugPrintAt(screen, prefix+a.truncateText(filepath.Base(p), maxChars), 10, baseY+i*lineH)
	}
	// scroll indicators
	if a.romOff > 0 {
		ebitenutil.DebugPrintAt(screen, "^", 2, baseY)
	}
	if end < len(a.romList) {
		ebitenutil.DebugPrintAt(screen, "v", 2, baseY+(maxRows-1)*lineH)
	}
}

var keyHelp = []string{
	"1 2 3 4  ->  1 2 3 C",
	"Q W E R  ->  4 5 6 D",
	"A S D F  ->  7 8 9 E",
	"Z X C V  ->  A 0 B F",
	"P: Pause",
	"N: Step (when paused)",
	"Tab: Fast-forward",
	"F2: Reset",
	"F5/F9: Save/Load slot",
	"F12: Screenshot",
	"M: Mute",
	"[ ]: Palette",
	"Esc: Open/Close Menu",
}

func (a *App) drawKeysMenu(screen *ebiten.Image) {
	cursorY := 10
	for _, w := range wrapText("Keybindings (Up/Down to scroll, Backspace/Esc to return)", a.maxCharsForText(10)) {
		ebitenutil.DebugPrintAt(screen, w, 10, cursorY)
		cursorY += lineH
	}
	baseY := cursorY + 4
	maxRows := a.visibleRows(baseY)
	if a.keysOff > len(keyHelp)-1 {
		a.keysOff = len(keyHelp) - 1
	}
	end := a.keysOff + maxRows
	if end > len(keyHelp) {
		end = len(keyHelp)
	}
	for i := a.keysOff; i < end; i++ {
		ebitenutil.DebugPrintAt(screen, a.truncateText(keyHelp[i], a.maxCharsForText(10)), 10, baseY+(i-a.keysOff)*lineH)
	}
	if a.keysOff > 0 {
		ebitenutil.DebugPrintAt(screen, "^", 2, baseY)
	}
	if end < len(keyHelp) {
		ebitenutil.DebugPrintAt(screen, "v", 2, baseY+(maxRows-1)*lineH)
	}
}

func (a *App) visibleRows(baseY int) int {
	rows := (a.curH - baseY) / lineH
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (a *App) maxCharsForText(x int) int {
	n := (a.curW - x) / glyphW
	if n < 1 {
		n = 1
	}
	return n
}

func (a *App) truncateText(s string, max int) string { return truncate(s, max) }

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

// wrapText splits s at spaces so no line exceeds max characters.
func wrapText(s string, max int) []string {
	var lines []string
	line := ""
	for _, word := range splitWords(s) {
		switch {
		case line == "":
			line = word
		case len(line)+1+len(word) <= max:
			line += " " + word
		default:
			lines = append(lines, line)
			line = word
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

func splitWords(s string) []string {
	var out []string
	start := -1
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ' ' {
			if start >= 0 {
				out = append(out, s[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	return out
}
