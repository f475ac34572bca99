package display

import (
	"bytes"
	"encoding/gob"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"io"
)

// Screen geometry of the monochrome CHIP-8 display.
const (
	Width  = 64
	Height = 32
	Pixels = Width * Height
)

// Default palette: pale green on dark, like the original handheld terminals.
var (
	DefaultFG = color.RGBA{R: 0xE0, G: 0xF8, B: 0xD0, A: 0xFF}
	DefaultBG = color.RGBA{R: 0x08, G: 0x18, B: 0x20, A: 0xFF}
)

// Framebuffer is the 64x32 pixel surface the interpreter draws on.
// Pixels are indexed row-major: y*Width + x.
type Framebuffer struct {
	px     [Pixels]bool
	redraw bool
}

func New() *Framebuffer { return &Framebuffer{} }

// Clear switches every pixel off and requests a redraw.
func (f *Framebuffer) Clear() {
	f.px = [Pixels]bool{}
	f.redraw = true
}

// TogglePixel flips the pixel at a row-major index. Out of range indices are ignored.
func (f *Framebuffer) TogglePixel(i int) {
	if i < 0 || i >= Pixels {
		return
	}
	f.px[i] = !f.px[i]
}

func (f *Framebuffer) SetRedrawPending(on bool) { f.redraw = on }
func (f *Framebuffer) RedrawPending() bool      { return f.redraw }

// Pixel reports whether (x, y) is lit. Coordinates wrap.
func (f *Framebuffer) Pixel(x, y int) bool {
	x = ((x % Width) + Width) % Width
	y = ((y % Height) + Height) % Height
	return f.px[y*Width+x]
}

// Lit counts the pixels currently on.
func (f *Framebuffer) Lit() int {
	n := 0
	for _, on := range f.px {
		if on {
			n++
		}
	}
	return n
}

// RGBA renders the framebuffer into a Width*Height*4 byte slice.
func (f *Framebuffer) RGBA(fg, bg color.RGBA) []byte {
	out := make([]byte, Pixels*4)
	f.RGBAInto(out, fg, bg)
	return out
}

// RGBAInto renders into dst, which must hold at least Pixels*4 bytes.
func (f *Framebuffer) RGBAInto(dst []byte, fg, bg color.RGBA) {
	for i, on := range f.px {
		c := bg
		if on {
			c = fg
		}
		o := i * 4
		dst[o+0] = c.R
		dst[o+1] = c.G
		dst[o+2] = c.B
		dst[o+3] = c.A
	}
}

// CRC32 is the IEEE checksum of the default-palette RGBA rendering. Headless
// runs compare it against a known value.
func (f *Framebuffer) CRC32() uint32 {
	return crc32.ChecksumIEEE(f.RGBA(DefaultFG, DefaultBG))
}

// Image returns the framebuffer upscaled by scale as an RGBA image.
func (f *Framebuffer) Image(scale int, fg, bg color.RGBA) *image.RGBA {
	if scale < 1 {
		scale = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, Width*scale, Height*scale))
	for y := 0; y < Height*scale; y++ {
		for x := 0; x < Width*scale; x++ {
			c := bg
			if f.px[(y/scale)*Width+x/scale] {
				c = fg
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// WritePNG encodes the framebuffer as a PNG, each pixel scale x scale wide.
func (f *Framebuffer) WritePNG(w io.Writer, scale int) error {
	return png.Encode(w, f.Image(scale, DefaultFG, DefaultBG))
}

type fbState struct {
	Pixels [Pixels]bool
}

// SaveState serialises the pixel grid.
func (f *Framebuffer) SaveState() []byte {
	var buf bytes.Buffer
	_ = gob.NewEncoder(&buf).Encode(fbState{Pixels: f.px})
	return buf.Bytes()
}

// LoadState restores a grid written by SaveState and requests a redraw.
func (f *Framebuffer) LoadState(data []byte) error {
	var s fbState
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&s); err != nil {
		return err
	}
	f.px = s.Pixels
	f.redraw = true
	return nil
}
