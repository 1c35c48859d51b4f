package cart

import (
	"encoding/binary"
	"errors"
	"strings"
)

const headerEnd = 0x014F

var nintendoLogo = [48]byte{
	0xCE, 0xED, 0x66, 0x66, 0xCC, 0x0D, 0x00, 0x0B, 0x03, 0x73, 0x00, 0x83, 0x00, 0x0C, 0x00, 0x0D,
	0x00, 0x08, 0x11, 0x1F, 0x88, 0x89, 0x00, 0x0E, 0xDC, 0xCC, 0x6E, 0xE6, 0xDD, 0xDD, 0xD9, 0x99,
	0xBB, 0xBB, 0x67, 0x63, 0x6E, 0x0E, 0xEC, 0xCC, 0xDD, 0xDC, 0x99, 0x9F, 0xBB, 0xB9, 0x33, 0x3E,
}

// ErrShortImage is returned by ParseHeader for images that end before 0x0150.
var ErrShortImage = errors.New("ROM too small to contain header")

// Header is the cartridge header at 0x0100-0x014F.
type Header struct {
	Title          string // 0x0134-0x0143, trimmed
	CGBFlag        byte   // 0x0143
	CartType       byte   // 0x0147
	ROMSizeCode    byte   // 0x0148
	RAMSizeCode    byte   // 0x0149
	ROMVersion     byte   // 0x014C
	HeaderChecksum byte   // 0x014D
	GlobalChecksum uint16 // 0x014E-0x014F
	LogoOK         bool

	// Decoded from the size codes and type byte.
	ROMBanks     int
	RAMBanks     int
	RAMSizeBytes int
	TypeName     string
}

// ParseHeader decodes the header fields of rom. Unknown size codes decode to 0 banks.
func ParseHeader(rom []byte) (*Header, error) {
	if len(rom) < headerEnd+1 {
		return nil, ErrShortImage
	}

	h := &Header{
		Title:          strings.TrimRight(string(rom[0x0134:0x0144]), "\x00"),
		CGBFlag:        rom[0x0143],
		CartType:       rom[0x0147],
		ROMSizeCode:    rom[0x0148],
		RAMSizeCode:    rom[0x0149],
		ROMVersion:     rom[0x014C],
		HeaderChecksum: rom[0x014D],
		GlobalChecksum: binary.BigEndian.Uint16(rom[0x014E:0x0150]),
		LogoOK:         [48]byte(rom[0x0104:0x0134]) == nintendoLogo,
	}
	h.ROMBanks = decodeROMBanks(h.ROMSizeCode)
	h.RAMSizeBytes, h.RAMBanks = decodeRAMSize(h.RAMSizeCode)
	h.TypeName = cartTypeString(h.CartType)
	return h, nil
}

// HeaderChecksumOK verifies the 0x014D checksum over 0x0134-0x014C.
func HeaderChecksumOK(rom []byte) bool {
	if len(rom) < 0x014E {
		return false
	}
	var sum byte
	for addr := 0x0134; addr <= 0x014C; addr++ {
		sum = sum - rom[addr] - 1
	}
	return sum == rom[0x014D]
}

// decodeROMBanks maps the 0x0148 size code to a 16KB bank count. Unknown codes are 0.
func decodeROMBanks(code byte) int {
	switch code {
	case 0x00:
		return 2
	case 0x01:
		return 4
	case 0x02:
		return 8
	case 0x03:
		return 16
	case 0x04:
		return 32
	case 0x05:
		return 64
	case 0x06:
		return 128
	case 0x07:
		return 256
	case 0x08:
		return 512
	case 0x52:
		return 72
	case 0x53:
		return 80
	case 0x54:
		return 96
	default:
		return 0
	}
}

// decodeRAMSize maps the 0x0149 size code to total bytes and 8KB bank count.
func decodeRAMSize(code byte) (size, banks int) {
	switch code {
	case 0x01:
		return 2 * 1024, 1
	case 0x02:
		return 8 * 1024, 1
	case 0x03:
		return 32 * 1024, 4
	case 0x04:
		return 128 * 1024, 16
	case 0x05:
		return 64 * 1024, 8
	default:
		return 0, 0
	}
}

func cartTypeString(code byte) string {
	switch code {
	case 0x00:
		return "ROM ONLY"
	case 0x01:
		return "MBC1"
	case 0x02:
		return "MBC1+RAM"
	case 0x03:
		return "MBC1+RAM+BATTERY"
	case 0x05, 0x06:
		return "MBC2 (variants)"
	case 0x08:
		return "ROM+RAM"
	case 0x09:
		return "ROM+RAM+BATTERY"
	case 0x0F:
		return "MBC3+TIMER+BATTERY"
	case 0x10:
		return "MBC3+TIMER+RAM+BATTERY"
	case 0x11:
		return "MBC3"
	case 0x12:
		return "MBC3+RAM"
	case 0x13:
		return "MBC3+RAM+BATTERY"
	case 0x19, 0x1A, 0x1B, 0x1C, 0x1D, 0x1E:
		return "MBC5 (variants)"
	default:
		return "Other/unknown"
	}
}
