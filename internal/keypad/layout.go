package keypad

// Layout maps the left-hand block of a QWERTY keyboard onto the hex pad:
//
//	1 2 3 4      1 2 3 C
//	Q W E R  ->  4 5 6 D
//	A S D F      7 8 9 E
//	Z X C V      A 0 B F
var Layout = [Keys]rune{
	0x1: '1', 0x2: '2', 0x3: '3', 0xC: '4',
	0x4: 'q', 0x5: 'w', 0x6: 'e', 0xD: 'r',
	0x7: 'a', 0x8: 's', 0x9: 'd', 0xE: 'f',
	0xA: 'z', 0x0: 'x', 0xB: 'c', 0xF: 'v',
}

// KeyForRune returns the hex key bound to r. Letters match in either case.
func KeyForRune(r rune) (byte, bool) {
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	for k, c := range Layout {
		if c == r {
			return byte(k), true
		}
	}
	return 0, false
}
