package ui

// Config contains window/input/audio related settings.
type Config struct {
	Title      string // window title
	Scale      int    // integer upscaling factor
	Palette    int    // index into emu.Palettes; -1 picks one from the ROM name
	ToneHz     int    // buzzer frequency when no sample is given
	BeepSample string // optional .wav/.mp3 played while the sound timer runs
	Muted      bool
	FastFrames int    // frames per update while fast-forwarding
	ROMsDir    string // directory to browse for ROMs
}

// Defaults fills missing fields with reasonable defaults.
func (c *Config) Defaults() {
	if c.Title == "" {
		c.Title = "chip8emu"
	}
	if c.Scale <= 0 {
		c.Scale = 10
	}
	if c.ToneHz <= 0 {
		c.ToneHz = 440
	}
	if c.FastFrames <= 1 {
		c.FastFrames = 5
	}
	if c.ROMsDir == "" {
		c.ROMsDir = "roms"
	}
}
