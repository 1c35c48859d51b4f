package cart

import (
	"fmt"
	"io"
	"log"
)

const (
	ROMBankSize = 0x4000
	RAMBankSize = 0x2000
)

// Kind names the banking controller selected from the header type byte.
type Kind int

const (
	KindNone Kind = iota
	KindMBC1
	KindMBC3
	KindMBC5
)

func (k Kind) String() string {
	switch k {
	case KindMBC1:
		return "MBC1"
	case KindMBC3:
		return "MBC3"
	case KindMBC5:
		return "MBC5"
	default:
		return "None"
	}
}

// Controller intercepts CPU writes into the cartridge windows. TryWrite reports
// whether the address was claimed; a claimed write never reaches the plain map.
type Controller interface {
	Kind() Kind
	TryWrite(addr uint16, value byte) bool
}

// Banking is the controller state mutated by intercepted writes.
type Banking struct {
	ROMBank    int // active bank for 0x4000-0x7FFF, never 0
	RAMBank    int
	RAMEnabled bool
	RTCEnabled bool
	RAMMode    bool // MBC1 banking mode: false ROM banking, true RAM banking

	// MBC3 combined RAM/RTC selector and the last latch byte.
	Select      byte
	RTCSelected bool
	Latch       byte
}

// Cartridge holds the banked ROM and RAM storage of a loaded image together with
// its controller. It is created once per load by Load.
type Cartridge struct {
	Header *Header
	Banking

	rom      [][]byte
	ram      [][]byte
	ramBytes int // usable bytes per RAM bank; 2KB carts expose less than a full bank
	ctrl     Controller
}

// Load splits a raw image into 16KB ROM banks, allocates external RAM from the
// header and selects the banking controller. It never fails: a short or empty
// image yields an all-zero cartridge, an unknown type degrades to no banking.
func Load(rom []byte, logger *log.Logger) *Cartridge {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	h, err := ParseHeader(rom)
	if err != nil {
		logger.Printf("cart: %v; using an empty header", err)
		h = &Header{}
	}

	banks := max(h.ROMBanks, 2)
	if n := (len(rom) + ROMBankSize - 1) / ROMBankSize; n > banks {
		logger.Printf("cart: image holds %d banks, header declares %d", n, h.ROMBanks)
	}
	c := &Cartridge{Header: h, rom: make([][]byte, banks)}
	for i := range c.rom {
		c.rom[i] = make([]byte, ROMBankSize)
		if off := i * ROMBankSize; off < len(rom) {
			copy(c.rom[i], rom[off:])
		}
	}

	if h.RAMBanks > 0 {
		c.ram = make([][]byte, h.RAMBanks)
		for i := range c.ram {
			c.ram[i] = make([]byte, RAMBankSize)
		}
		c.ramBytes = min(h.RAMSizeBytes, RAMBankSize)
	}
	c.ROMBank = 1

	switch h.CartType {
	case 0x00, 0x08, 0x09:
		c.ctrl = &None{c: c}
		// ROM+RAM carts have no enable latch.
		c.RAMEnabled = h.CartType != 0x00 && len(c.ram) > 0
	case 0x01, 0x02, 0x03:
		c.ctrl = &MBC1{c: c}
	case 0x0F, 0x10, 0x11, 0x12, 0x13:
		c.ctrl = &MBC3{c: c}
	case 0x19, 0x1A, 0x1B, 0x1C, 0x1D, 0x1E:
		c.ctrl = &MBC5{c: c}
	default:
		logger.Printf("cart: unsupported cartridge type %#02x (%s), banking disabled", h.CartType, h.TypeName)
		c.ctrl = &None{c: c}
	}
	return c
}

func (c *Cartridge) Controller() Controller { return c.ctrl }
func (c *Cartridge) Kind() Kind             { return c.ctrl.Kind() }
func (c *Cartridge) ROMBanks() int          { return len(c.rom) }
func (c *Cartridge) RAMBanks() int          { return len(c.ram) }

// Bank returns ROM bank i, or nil when out of range.
func (c *Cartridge) Bank(i int) []byte {
	if i < 0 || i >= len(c.rom) {
		return nil
	}
	return c.rom[i]
}

// TryWrite forwards a CPU write to the controller.
func (c *Cartridge) TryWrite(addr uint16, value byte) bool {
	return c.ctrl.TryWrite(addr, value)
}

// ReadROM reads 0x0000-0x7FFF: bank 0 is fixed, the upper window follows ROMBank.
func (c *Cartridge) ReadROM(addr uint16) byte {
	if addr < 0x4000 {
		return c.rom[0][addr]
	}
	bank := c.ROMBank % len(c.rom)
	return c.rom[bank][addr&0x3FFF]
}

// ReadRAM reads 0xA000-0xBFFF. Disabled RAM, missing RAM and a selected RTC
// register all read as 0xFF.
func (c *Cartridge) ReadRAM(addr uint16) byte {
	if !c.RAMEnabled || c.RTCSelected || len(c.ram) == 0 {
		return 0xFF
	}
	off := int(addr-0xA000) & (RAMBankSize - 1)
	if off >= c.ramBytes {
		return 0xFF
	}
	return c.ram[c.RAMBank%len(c.ram)][off]
}

func (c *Cartridge) writeRAM(addr uint16, value byte) {
	if !c.RAMEnabled || c.RTCSelected || len(c.ram) == 0 {
		return
	}
	off := int(addr-0xA000) & (RAMBankSize - 1)
	if off >= c.ramBytes {
		return
	}
	c.ram[c.RAMBank%len(c.ram)][off] = value
}

// HasBattery reports whether the cartridge type keeps its RAM across power cycles.
func (c *Cartridge) HasBattery() bool {
	switch c.Header.CartType {
	case 0x03, 0x06, 0x09, 0x0D, 0x0F, 0x10, 0x13, 0x1B, 0x1E:
		return len(c.ram) > 0
	}
	return false
}

// SaveRAM returns a copy of external RAM, banks in order. Empty when the cart has none.
func (c *Cartridge) SaveRAM() []byte {
	out := make([]byte, 0, len(c.ram)*c.ramBytes)
	for _, b := range c.ram {
		out = append(out, b[:c.ramBytes]...)
	}
	return out
}

// LoadRAM restores external RAM from a SaveRAM image.
func (c *Cartridge) LoadRAM(data []byte) error {
	if want := len(c.ram) * c.ramBytes; len(data) != want {
		return fmt.Errorf("cart: battery image is %d bytes, want %d", len(data), want)
	}
	for i, b := range c.ram {
		copy(b[:c.ramBytes], data[i*c.ramBytes:])
	}
	return nil
}

// enableBit reports whether a 0x0000-0x1FFF write enables RAM.
func enableBit(value byte) bool { return value&0x0F == 0x0A }

func inRAMWindow(addr uint16) bool { return addr >= 0xA000 && addr <= 0xBFFF }
