package emu

import (
	"image/color"
	"path/filepath"
	"strings"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/display"
)

// Palette is a foreground/background colour pair for the monochrome screen.
type Palette struct {
	Name   string
	FG, BG color.RGBA
}

// Palettes lists the selectable colour schemes. Index 0 is the default.
var Palettes = []Palette{
	{"phosphor", display.DefaultFG, display.DefaultBG},
	{"amber", rgb(0xFF, 0xB0, 0x00), rgb(0x1A, 0x10, 0x00)},
	{"paper", rgb(0x20, 0x20, 0x20), rgb(0xF0, 0xEC, 0xE0)},
	{"cosmac", rgb(0xFF, 0xFF, 0xFF), rgb(0x00, 0x00, 0x00)},
	{"ice", rgb(0xA0, 0xE0, 0xFF), rgb(0x00, 0x20, 0x40)},
}

func rgb(r, g, b uint8) color.RGBA { return color.RGBA{R: r, G: g, B: b, A: 0xFF} }

// titleExact maps normalised ROM names to a palette index.
var titleExact = map[string]int{
	"PONG":      3,
	"PONG2":     3,
	"TETRIS":    4,
	"BLINKY":    1,
	"INVADERS":  0,
	"BRIX":      1,
	"BREAKOUT":  1,
	"MAZE":      2,
	"UFO":       4,
	"TANK":      0,
	"WALL":      3,
	"MISSILE":   1,
	"CONNECT4":  2,
	"TICTAC":    2,
	"KALEID":    4,
	"VBRIX":     1,
	"PUZZLE":    2,
	"HIDDEN":    2,
	"WIPEOFF":   3,
	"SYZYGY":    4,
	"MERLIN":    1,
	"BLITZ":     0,
	"GUESS":     2,
	"15PUZZLE":  2,
	"AIRPLANE":  4,
	"LANDING":   0,
	"ROCKET":    0,
	"SUBMARINE": 4,
}

type containsRule struct {
	substr string
	id     int
}

// titleContains applies broader substring heuristics for families of ROMs.
var titleContains = []containsRule{
	{"INVADER", 0},
	{"PONG", 3},
	{"BRIX", 1},
	{"TEST", 3},
	{"SPACE", 0},
}

func normalizeTitle(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	name = strings.ToUpper(name)
	name = strings.NewReplacer(" ", "", "_", "", "-", "", "[", "", "]", "").Replace(name)
	return name
}

// PaletteFor picks a palette for a ROM path, falling back to the default.
func PaletteFor(path string) int {
	t := normalizeTitle(path)
	if t == "" {
		return 0
	}
	if id, ok := titleExact[t]; ok {
		return id
	}
	for _, r := range titleContains {
		if strings.Contains(t, r.substr) {
			return r.id
		}
	}
	return 0
}
