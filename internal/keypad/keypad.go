package keypad

// Keys is the number of hexadecimal keys.
const Keys = 16

// Keypad tracks which of the 16 keys are held and which were let go since
// the previous poll.
type Keypad struct {
	down [Keys]bool
	prev [Keys]bool
}

func New() *Keypad { return &Keypad{} }

// Poll installs a fresh snapshot. The old one becomes the "previous" state
// that WasReleased compares against.
func (k *Keypad) Poll(down [Keys]bool) {
	k.prev = k.down
	k.down = down
}

// Press and Release edit the current snapshot without rolling it.
func (k *Keypad) Press(key byte)   { k.down[key&0x0F] = true }
func (k *Keypad) Release(key byte) { k.down[key&0x0F] = false }

func (k *Keypad) IsDown(key byte) bool { return k.down[key&0x0F] }

// WasReleased is true when key was held at the previous poll and is up now.
func (k *Keypad) WasReleased(key byte) bool {
	key &= 0x0F
	return k.prev[key] && !k.down[key]
}

// State returns the current snapshot.
func (k *Keypad) State() [Keys]bool { return k.down }

// Reset releases every key and forgets history.
func (k *Keypad) Reset() {
	k.down = [Keys]bool{}
	k.prev = [Keys]bool{}
}
