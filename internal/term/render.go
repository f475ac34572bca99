package term

import (
	"strings"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/display"
)

// ANSI sequences used by the renderer.
const (
	cursorHome  = "\x1b[H"
	clearScreen = "\x1b[2J"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
)

// Pixels is the part of the framebuffer the renderer needs.
type Pixels interface {
	Pixel(x, y int) bool
}

// Frame draws the display with half-block characters, two pixel rows per
// text row. Lines end in CRLF because the terminal is in raw mode.
func Frame(p Pixels) string {
	var sb strings.Builder
	sb.Grow(len(cursorHome) + (display.Width*3+2)*display.Height/2)
	sb.WriteString(cursorHome)
	for y := 0; y < display.Height; y += 2 {
		for x := 0; x < display.Width; x++ {
			top, bottom := p.Pixel(x, y), p.Pixel(x, y+1)
			switch {
			case top && bottom:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bottom:
				sb.WriteRune('▄')
			default:
				sb.WriteByte(' ')
			}
		}
		sb.WriteString("\r\n")
	}
	return sb.String()
}
