package term

import "github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/keypad"

// ASCII codes that control the front end instead of the keypad.
const (
	keyInterrupt = 3 // ctrl+c
	keyEsc       = 27
)

// DefaultHoldFrames is how long a key counts as down after its byte arrives.
// Terminals only report presses, so a release is simulated once it expires.
const DefaultHoldFrames = 6

// Keys turns a stream of terminal bytes into keypad snapshots.
type Keys struct {
	hold   int
	frames [keypad.Keys]int
}

func NewKeys(hold int) *Keys {
	if hold <= 0 {
		hold = DefaultHoldFrames
	}
	return &Keys{hold: hold}
}

// Feed registers raw input and reports whether the user asked to quit.
func (k *Keys) Feed(data []byte) (quit bool) {
	for _, b := range data {
		switch b {
		case keyInterrupt, keyEsc:
			quit = true
			continue
		}
		if key, ok := keypad.KeyForRune(rune(b)); ok {
			k.frames[key] = k.hold
		}
	}
	return quit
}

// Frame returns the keys held during this frame and ages every hold by one.
func (k *Keys) Frame() [keypad.Keys]bool {
	var down [keypad.Keys]bool
	for i, n := range k.frames {
		if n > 0 {
			down[i] = true
			k.frames[i] = n - 1
		}
	}
	return down
}
