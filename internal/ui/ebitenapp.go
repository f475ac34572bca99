package ui

import (
	"fmt"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/display"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/emu"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/keypad"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/retroenv/retrogolib/log"
)

// hexKeys binds each keypad key to its physical key, following keypad.Layout.
var hexKeys = func() [keypad.Keys]ebiten.Key {
	byRune := map[rune]ebiten.Key{
		'1': ebiten.Key1, '2': ebiten.Key2, '3': ebiten.Key3, '4': ebiten.Key4,
		'q': ebiten.KeyQ, 'w': ebiten.KeyW, 'e': ebiten.KeyE, 'r': ebiten.KeyR,
		'a': ebiten.KeyA, 's': ebiten.KeyS, 'd': ebiten.KeyD, 'f': ebiten.KeyF,
		'z': ebiten.KeyZ, 'x': ebiten.KeyX, 'c': ebiten.KeyC, 'v': ebiten.KeyV,
	}
	var out [keypad.Keys]ebiten.Key
	for k, r := range keypad.Layout {
		out[k] = byRune[r]
	}
	return out
}()

const numSlots = 4

type App struct {
	cfg    Config
	m      *emu.Machine
	logger *log.Logger

	tex     *ebiten.Image
	pix     []byte
	palette int
	paused  bool
	fast    bool
	quit    bool

	audioCtx *audio.Context
	beep     *beeper

	// overlay/menu
	showMenu    bool
	menuMode    string // "main", "slot", "rom", "palette", "keys"
	menuIdx     int
	currentSlot int
	romList     []string
	romSel      int
	romOff      int
	keysOff     int

	toastMsg   string
	toastUntil time.Time

	curW, curH int
}

func NewApp(cfg Config, m *emu.Machine, logger *log.Logger) *App {
	cfg.Defaults()
	ebiten.SetWindowTitle(windowTitle(cfg.Title, m.ROMPath()))
	ebiten.SetWindowSize(display.Width*cfg.Scale, display.Height*cfg.Scale)
	ebiten.SetTPS(60)

	a := &App{
		cfg:      cfg,
		m:        m,
		logger:   logger,
		pix:      make([]byte, display.Pixels*4),
		palette:  cfg.Palette,
		menuMode: "main",
	}
	if a.palette < 0 || a.palette >= len(emu.Palettes) {
		a.palette = emu.PaletteFor(m.ROMPath())
	}

	a.audioCtx = audio.NewContext(48000)
	if b, err := newBeeper(a.audioCtx, cfg, logger); err != nil {
		logger.Warn("Audio unavailable", log.Err(err))
	} else {
		a.beep = b
		m.SetTone(b)
	}
	return a
}

func windowTitle(base, romPath string) string {
	if romPath == "" {
		return base
	}
	name := strings.TrimSuffix(filepath.Base(romPath), filepath.Ext(romPath))
	return base + " - [" + name + "]"
}

func (a *App) Run() error {
	err := ebiten.RunGame(a)
	if a.beep != nil {
		_ = a.beep.Close()
	}
	if err == ebiten.Termination {
		return nil
	}
	return err
}

func (a *App) Update() error {
	if a.quit {
		return ebiten.Termination
	}

	// Keyboard → hex keypad. The menu swallows input.
	var down [keypad.Keys]bool
	if !a.showMenu {
		for k, key := range hexKeys {
			down[k] = ebiten.IsKeyPressed(key)
		}
	}
	a.m.SetKeys(down)

	// Toggle menu (Escape)
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) && (!a.showMenu || a.menuMode == "main") {
		a.showMenu = !a.showMenu
		a.menuMode = "main"
		a.menuIdx = 0
	} else if a.showMenu {
		a.updateMenu()
		return nil
	}

	// Pause toggle (P)
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		a.paused = !a.paused
	}

	// Fast-forward (Tab): while held, run multiple frames per Ebiten update
	a.fast = ebiten.IsKeyPressed(ebiten.KeyTab)

	if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		a.reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		a.saveSlot(a.currentSlot)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		a.loadSlot(a.currentSlot)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		a.toggleMute()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft) {
		a.cyclePalette(-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketRight) {
		a.cyclePalette(+1)
	}

	// Screenshot (F12)
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		if name, err := a.saveScreenshot(); err != nil {
			a.toast("Screenshot failed: " + err.Error())
		} else {
			a.toast("Saved " + name)
		}
	}

	// Frame-step when paused (N)
	if a.paused {
		if inpututil.IsKeyJustPressed(ebiten.KeyN) {
			a.m.StepFrame()
		}
		return nil
	}
	frames := 1
	if a.fast {
		frames = a.cfg.FastFrames
	}
	for i := 0; i < frames; i++ {
		a.m.StepFrame()
	}
	return nil
}

func (a *App) Draw(screen *ebiten.Image) {
	if a.tex == nil {
		a.tex = ebiten.NewImage(display.Width, display.Height)
		a.m.Display().SetRedrawPending(true)
	}
	// Only upload the texture when the interpreter touched the screen.
	if fb := a.m.Display(); fb.RedrawPending() {
		p := emu.Palettes[a.palette]
		fb.RGBAInto(a.pix, p.FG, p.BG)
		a.tex.WritePixels(a.pix)
		fb.SetRedrawPending(false)
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(a.cfg.Scale), float64(a.cfg.Scale))
	screen.DrawImage(a.tex, op)

	if a.showMenu {
		overlay := ebiten.NewImage(a.curW, a.curH)
		overlay.Fill(color.RGBA{0, 0, 0, 200})
		screen.DrawImage(overlay, nil)
		a.drawMenu(screen)
		return
	}
	if !a.m.HasROM() {
		ebitenutil.DebugPrintAt(screen, "No ROM loaded. Esc: menu", 10, 10)
	}
	if a.paused {
		ebitenutil.DebugPrintAt(screen, "PAUSED (N: step)", 4, 4)
	}
	if a.toastMsg != "" && time.Now().Before(a.toastUntil) {
		ebitenutil.DebugPrintAt(screen, a.truncateText(a.toastMsg, a.maxCharsForText(4)), 4, a.curH-18)
	}
}

func (a *App) Layout(outW, outH int) (int, int) {
	a.curW, a.curH = display.Width*a.cfg.Scale, display.Height*a.cfg.Scale
	return a.curW, a.curH
}

func (a *App) toast(msg string) {
	a.toastMsg = msg
	a.toastUntil = time.Now().Add(2 * time.Second)
	a.logger.Info(msg)
}

func (a *App) reset() {
	if err := a.m.Reset(); err != nil {
		a.toast("Reset failed: " + err.Error())
		return
	}
	a.toast("Reset")
}

func (a *App) statePath(slot int) string { return a.m.StatePath(slot) }

func (a *App) saveSlot(slot int) {
	if err := a.m.SaveStateToFile(a.statePath(slot)); err != nil {
		a.toast("Save failed: " + err.Error())
		return
	}
	a.toast(fmt.Sprintf("Saved slot %d", slot+1))
}

func (a *App) loadSlot(slot int) {
	if _, err := os.Stat(a.statePath(slot)); err != nil {
		a.toast("Slot is empty")
		return
	}
	if err := a.m.LoadStateFromFile(a.statePath(slot)); err != nil {
		a.toast("Load failed: " + err.Error())
		return
	}
	a.toast(fmt.Sprintf("Loaded slot %d", slot+1))
}

func (a *App) toggleMute() {
	a.cfg.Muted = !a.cfg.Muted
	if a.beep != nil {
		a.beep.setMuted(a.cfg.Muted)
	}
	a.toast(map[bool]string{true: "Sound off", false: "Sound on"}[a.cfg.Muted])
}

func (a *App) cyclePalette(dir int) {
	n := len(emu.Palettes)
	a.palette = (a.palette + dir + n) % n
	a.m.Display().SetRedrawPending(true)
	a.toast("Palette: " + emu.Palettes[a.palette].Name)
}

func (a *App) loadROM(path string) {
	if err := a.m.LoadROMFromFile(path); err != nil {
		a.toast("ROM load failed: " + err.Error())
		return
	}
	if a.cfg.Palette < 0 {
		a.palette = emu.PaletteFor(path)
	}
	ebiten.SetWindowTitle(windowTitle(a.cfg.Title, path))
	a.toast("Loaded ROM: " + filepath.Base(path))
}

func (a *App) saveScreenshot() (string, error) {
	name := fmt.Sprintf("screenshot_%s.png", time.Now().Format("20060102_150405"))
	f, err := os.Create(name)
	if err != nil {
		return "", err
	}
	defer f.Close()
	p := emu.Palettes[a.palette]
	if err := png.Encode(f, a.m.Display().Image(a.cfg.Scale, p.FG, p.BG)); err != nil {
		return "", err
	}
	return name, nil
}
