package cart

// MBC3 banks up to 2MB of ROM with a 7-bit bank register and up to 32KB of RAM.
// The clock registers are addressable but do not keep time: selecting one maps
// 0xFF into the RAM window and writes to it are dropped.
//   - 0000-1FFF: RAM and RTC enable (0x0A in low nibble)
//   - 2000-3FFF: ROM bank (0 maps to 1)
//   - 4000-5FFF: RAM bank 00-03 or RTC register 08-0C
//   - 6000-7FFF: latch clock
type MBC3 struct {
	c *Cartridge
}

func (m *MBC3) Kind() Kind { return KindMBC3 }

func (m *MBC3) TryWrite(addr uint16, value byte) bool {
	s := &m.c.Banking
	switch {
	case addr < 0x2000:
		s.RAMEnabled = enableBit(value)
		s.RTCEnabled = s.RAMEnabled
	case addr < 0x4000:
		bank := int(value & 0x7F)
		if bank == 0 {
			bank = 1
		}
		s.ROMBank = bank
	case addr < 0x6000:
		s.Select = value & 0x0F
		s.RTCSelected = s.Select > 0x03
		if !s.RTCSelected {
			s.RAMBank = int(s.Select)
		}
	case addr < 0x8000:
		// TODO: latch 0->1 should snapshot the clock once timekeeping exists.
		s.Latch = value
	case inRAMWindow(addr):
		m.c.writeRAM(addr, value)
	default:
		return false
	}
	return true
}
