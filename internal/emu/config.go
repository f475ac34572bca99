package emu

// Config contains settings that affect emulation behavior.
type Config struct {
	Trace bool   // log every executed instruction at debug level
	Seed  uint64 // Cxnn random seed; 0 seeds from the clock
}
