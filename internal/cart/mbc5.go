package cart

// MBC5 supports up to 8MB ROM (9-bit bank) and 128KB RAM.
type MBC5 struct {
	c *Cartridge
}

func (m *MBC5) Kind() Kind { return KindMBC5 }

func (m *MBC5) TryWrite(addr uint16, value byte) bool {
	s := &m.c.Banking
	switch {
	case addr < 0x2000:
		s.RAMEnabled = enableBit(value)
	case addr < 0x3000:
		s.ROMBank = s.ROMBank&0x100 | int(value)
	case addr < 0x4000:
		s.ROMBank = s.ROMBank&0xFF | int(value&0x01)<<8
	case addr < 0x6000:
		s.RAMBank = int(value & 0x0F)
	case addr < 0x8000:
		// unused on MBC5
	case inRAMWindow(addr):
		m.c.writeRAM(addr, value)
	default:
		return false
	}
	if s.ROMBank == 0 {
		s.ROMBank = 1
	}
	return true
}
