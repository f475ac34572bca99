package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/emu"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var mainMenuItems = []string{
	"Save state",
	"Load state",
	"Select slot",
	"Reset",
	"Switch ROM",
	"Palette",
	"Keybindings",
	"Close",
	"Quit",
}

func (a *App) updateMenu() {
	switch a.menuMode {
	case "slot":
		a.updateSlotMenu()
	case "rom":
		a.updateRomMenu()
	case "palette":
		a.updatePaletteMenu()
	case "keys":
		a.updateKeysMenu()
	default:
		a.updateMainMenu()
	}
}

func backPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyBackspace)
}

func (a *App) updateMainMenu() {
	last := len(mainMenuItems) - 1
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) && a.menuIdx > 0 {
		a.menuIdx--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) && a.menuIdx < last {
		a.menuIdx++
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		switch a.menuIdx {
		case 0:
			a.saveSlot(a.currentSlot)
		case 1:
			a.loadSlot(a.currentSlot)
		case 2:
			a.menuMode = "slot"
			a.menuIdx = a.currentSlot
		case 3:
			a.reset()
			a.showMenu = false
		case 4:
			a.romList = findROMs(a.cfg.ROMsDir)
			a.romSel = 0
			a.romOff = 0
			a.menuMode = "rom"
		case 5:
			a.menuMode = "palette"
			a.menuIdx = a.palette
		case 6:
			a.menuMode = "keys"
			a.keysOff = 0
		case 7:
			a.showMenu = false
		case 8:
			a.quit = true
		}
	}
	// Back with Backspace
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		a.showMenu = false
	}
}

func (a *App) updateSlotMenu() {
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) && a.menuIdx > 0 {
		a.menuIdx--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) && a.menuIdx < numSlots-1 {
		a.menuIdx++
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		a.currentSlot = a.menuIdx
		a.toast(fmt.Sprintf("Slot set to %d", a.currentSlot+1))
		a.menuMode = "main"
		a.menuIdx = 2
	}
	if backPressed() {
		a.menuMode = "main"
		a.menuIdx = 2
	}
}

func (a *App) updateRomMenu() {
	n := len(a.romList)
	if n == 0 {
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || backPressed() {
			a.menuMode = "main"
		}
		return
	}
	// compute window to maintain selection visibility
	maxRows := a.visibleRows(40)
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) && a.romSel > 0 {
		a.romSel--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) && a.romSel < n-1 {
		a.romSel++
	}
	a.romOff = scrollWindow(a.romSel, a.romOff, maxRows, n)
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		a.loadROM(a.romList[a.romSel])
		a.menuMode = "main"
		a.showMenu = false
	}
	if backPressed() {
		a.menuMode = "main"
	}
}

func (a *App) updatePaletteMenu() {
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) && a.menuIdx > 0 {
		a.menuIdx--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) && a.menuIdx < len(emu.Palettes)-1 {
		a.menuIdx++
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		a.cyclePalette(a.menuIdx - a.palette)
		a.menuMode = "main"
		a.menuIdx = 5
	}
	if backPressed() {
		a.menuMode = "main"
		a.menuIdx = 5
	}
}

func (a *App) updateKeysMenu() {
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) && a.keysOff > 0 {
		a.keysOff--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		a.keysOff++
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || backPressed() {
		a.menuMode = "main"
		a.menuIdx = 6
	}
}

// findROMs lists .ch8/.c8 files below dir, sorted by path.
func findROMs(dir string) []string {
	var out []string
	_ = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		low := strings.ToLower(d.Name())
		if !d.IsDir() && (strings.HasSuffix(low, ".ch8") || strings.HasSuffix(low, ".c8")) {
			out = append(out, path)
		}
		return nil
	})
	sort.Strings(out)
	return out
}

// scrollWindow keeps sel inside [off, off+rows) and returns the new offset.
func scrollWindow(sel, off, rows, n int) int {
	if rows < 1 {
		rows = 1
	}
	if sel < off {
		off = sel
	}
	if sel >= off+rows {
		off = sel - rows + 1
	}
	if off > n-1 {
		off = n - 1
	}
	if off < 0 {
		off = 0
	}
	return off
}
