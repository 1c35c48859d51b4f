package mmu

import "github.com/FabianRolfMatthiasNoll/dmgcore/internal/cart"

// MMU is the unified 64KB address space. Bank 0 and bank 1 of the loaded cartridge
// are mirrored into 0x0000-0x7FFF; the upper ROM window and external RAM are read
// through the cartridge so bank switches take effect immediately.
type MMU struct {
	mem  [0x10000]byte
	cart *cart.Cartridge

	divReset bool
	buttons  Buttons
}

// New returns an all-zero address space with no cartridge.
func New() *MMU {
	return &MMU{}
}

// LoadCartridge installs c and mirrors its first two banks into the map.
func (m *MMU) LoadCartridge(c *cart.Cartridge) {
	m.cart = c
	copy(m.mem[0x0000:0x4000], c.Bank(0))
	copy(m.mem[0x4000:0x8000], c.Bank(1))
}

func (m *MMU) Cartridge() *cart.Cartridge { return m.cart }

// fold maps echo RAM 0xE000-0xFDFF onto 0xC000-0xDDFF.
func fold(addr uint16) uint16 {
	if addr >= echoStart && addr < echoEnd {
		return addr - 0x2000
	}
	return addr
}

// Read returns the byte the CPU observes at addr.
func (m *MMU) Read(addr uint16) byte {
	addr = fold(addr)
	switch {
	case addr >= 0x4000 && addr < 0x8000:
		if m.cart != nil {
			return m.cart.ReadROM(addr)
		}
	case addr >= 0xA000 && addr < 0xC000:
		if m.cart == nil {
			return 0xFF
		}
		return m.cart.ReadRAM(addr)
	case addr == AddrTAC:
		return m.mem[addr] | 0xF8
	}
	return m.mem[addr]
}

// Write performs a CPU write: register side effects first, then the cartridge
// controller, then the plain store for anything the controller does not claim.
func (m *MMU) Write(addr uint16, value byte) {
	addr = fold(addr)
	switch addr {
	case AddrDMA:
		m.dma(value)
		return
	case AddrJOYP:
		value = m.mem[addr]&0xCF | value&0x30
	case AddrDIV:
		value = 0
		m.divReset = true
	}
	if m.cart != nil && m.cart.TryWrite(addr, value) {
		return
	}
	m.mem[addr] = value
}

// WriteDirect stores value without any side effect. Used by the timer, the LCD
// and input collaborators to publish register state.
func (m *MMU) WriteDirect(addr uint16, value byte) {
	m.mem[fold(addr)] = value
}

// TakeDividerReset reports and clears a pending DIV reset.
func (m *MMU) TakeDividerReset() bool {
	r := m.divReset
	m.divReset = false
	return r
}

// RequestInterrupt sets bit in IF.
func (m *MMU) RequestInterrupt(bit int) {
	m.mem[AddrIF] |= 1 << bit
}

// dma copies 160 bytes from page<<8 into OAM.
func (m *MMU) dma(page byte) {
	src := uint16(page) << 8
	for i := uint16(0); i < oamSize; i++ {
		m.mem[oamStart+i] = m.Read(src + i)
	}
}
