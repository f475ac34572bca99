package rom

import (
	"errors"
	"fmt"
	"hash/crc32"
	"os"
	"path/filepath"
	"strings"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/memory"
)

var (
	ErrEmpty    = errors.New("ROM is empty")
	ErrTooLarge = errors.New("ROM exceeds program space")
)

// Info describes a ROM image. CHIP-8 programs carry no header, so everything
// here is derived from the raw bytes.
type Info struct {
	Name         string
	Size         int
	CRC32        uint32
	Checksum     uint16 // byte sum
	Instructions int    // size / 2, a rough upper bound
	Title        string // longest embedded ASCII run, if any
}

func (i Info) String() string {
	s := fmt.Sprintf("%s size=%d crc32=%08x sum=%04x", i.Name, i.Size, i.CRC32, i.Checksum)
	if i.Title != "" {
		s += fmt.Sprintf(" title=%q", i.Title)
	}
	return s
}

// Validate checks that data fits the program area starting at 0x200.
func Validate(data []byte) error {
	if len(data) == 0 {
		return ErrEmpty
	}
	if len(data) > memory.MaxProgram {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrTooLarge, len(data), memory.MaxProgram)
	}
	return nil
}

// Load reads and validates a ROM file.
func Load(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ROM: %w", err)
	}
	if err := Validate(data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}

// Inspect summarises a ROM image for logs.
func Inspect(name string, data []byte) Info {
	var sum uint16
	for _, b := range data {
		sum += uint16(b)
	}
	return Info{
		Name:         strings.TrimSuffix(filepath.Base(name), filepath.Ext(name)),
		Size:         len(data),
		CRC32:        crc32.ChecksumIEEE(data),
		Checksum:     sum,
		Instructions: len(data) / 2,
		Title:        embeddedTitle(data),
	}
}

// Runs shorter than this are usually just coincidental opcode bytes.
const minTitleLen = 6

func embeddedTitle(data []byte) string {
	best, start := "", -1
	for i := 0; i <= len(data); i++ {
		printable := i < len(data) && data[i] >= 0x20 && data[i] < 0x7F
		switch {
		case printable && start < 0:
			start = i
		case !printable && start >= 0:
			if run := strings.TrimSpace(string(data[start:i])); len(run) > len(best) {
				best = run
			}
			start = -1
		}
	}
	if len(best) < minTitleLen {
		return ""
	}
	return best
}
