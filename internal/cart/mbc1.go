package cart

// MBC1 banks up to 2MB of ROM and 32KB of RAM.
//   - 0000-1FFF: RAM enable (0x0A in low nibble)
//   - 2000-3FFF: ROM bank low 5 bits (0 maps to 1)
//   - 4000-5FFF: ROM bank bits 5-6 in ROM mode, RAM bank in RAM mode
//   - 6000-7FFF: banking mode
type MBC1 struct {
	c *Cartridge
}

func (m *MBC1) Kind() Kind { return KindMBC1 }

func (m *MBC1) TryWrite(addr uint16, value byte) bool {
	s := &m.c.Banking
	switch {
	case addr < 0x2000:
		s.RAMEnabled = enableBit(value)
	case addr < 0x4000:
		low := int(value & 0x1F)
		if low == 0 {
			low = 1
		}
		s.ROMBank = s.ROMBank&0x60 | low
	case addr < 0x6000:
		s.ROMBank &= 0x1F
		if s.RAMMode {
			s.RAMBank = int(value & 0x03)
		} else {
			s.ROMBank |= int(value&0x03) << 5
		}
	case addr < 0x8000:
		s.RAMMode = value&0x01 != 0
		if s.RAMMode {
			s.ROMBank &= 0x1F
		} else {
			s.RAMBank = 0
		}
	case inRAMWindow(addr):
		m.c.writeRAM(addr, value)
	default:
		return false
	}
	return true
}
