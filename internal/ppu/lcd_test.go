package ppu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FabianRolfMatthiasNoll/dmgcore/internal/mmu"
)

func statMode(bus *mmu.MMU) byte { return bus.Read(mmu.AddrSTAT) & 0x03 }

func newLCD() (*LCD, *mmu.MMU) {
	bus := mmu.New()
	bus.Write(mmu.AddrLCDC, 0x91)
	bus.Write(mmu.AddrBGP, 0xE4)
	return New(), bus
}

func TestLCD_ModeSequenceOneLine(t *testing.T) {
	l, bus := newLCD()
	l.Tick(bus, 4)
	assert.Equal(t, byte(2), statMode(bus))
	l.Tick(bus, 80)
	assert.Equal(t, byte(3), statMode(bus))
	l.Tick(bus, 172)
	assert.Equal(t, byte(0), statMode(bus))
	l.Tick(bus, 456-256)
	assert.Equal(t, byte(1), bus.Read(mmu.AddrLY))
	assert.Equal(t, byte(2), statMode(bus))
}

func TestLCD_VBlankInterrupts(t *testing.T) {
	l, bus := newLCD()
	bus.Write(mmu.AddrSTAT, statVBlankIRQ)
	vblank := false
	for i := 0; i < 144; i++ {
		vblank = l.Tick(bus, 456) || vblank
	}
	require.True(t, vblank)
	assert.Equal(t, byte(144), bus.Read(mmu.AddrLY))
	assert.Equal(t, byte(1), statMode(bus))
	assert.Equal(t, byte(1<<mmu.IntVBlank|1<<mmu.IntSTAT), bus.Read(mmu.AddrIF))
	assert.Equal(t, uint64(1), l.Frames())

	for i := 0; i < 10; i++ {
		l.Tick(bus, 456)
	}
	assert.Equal(t, byte(0), bus.Read(mmu.AddrLY), "wraps after line 153")
}

func TestLCD_LYCCoincidence(t *testing.T) {
	l, bus := newLCD()
	bus.Write(mmu.AddrLYC, 3)
	bus.Write(mmu.AddrSTAT, statLYCIRQ)
	l.Tick(bus, 456*3)
	assert.NotZero(t, bus.Read(mmu.AddrSTAT)&statCoincidence)
	assert.NotZero(t, bus.Read(mmu.AddrIF)&(1<<mmu.IntSTAT))

	bus.WriteDirect(mmu.AddrIF, 0)
	l.Tick(bus, 8)
	assert.Zero(t, bus.Read(mmu.AddrIF), "edge triggered")
	l.Tick(bus, 456)
	assert.Zero(t, bus.Read(mmu.AddrSTAT)&statCoincidence)
}

func TestLCD_OffResetsLY(t *testing.T) {
	l, bus := newLCD()
	l.Tick(bus, 456*10)
	require.Equal(t, byte(10), bus.Read(mmu.AddrLY))
	bus.Write(mmu.AddrLCDC, 0x11)
	l.Tick(bus, 456)
	assert.Equal(t, byte(0), bus.Read(mmu.AddrLY))
	assert.Equal(t, byte(0), statMode(bus))
	assert.Zero(t, bus.Read(mmu.AddrIF))
}

func TestLCD_RendersBackgroundShades(t *testing.T) {
	l, bus := newLCD()
	// Tile 1 row 0 is color 3 across, tile 0 is blank. Map column 1 uses tile 1.
	bus.Write(0x8010, 0xFF)
	bus.Write(0x8011, 0xFF)
	bus.Write(0x9801, 0x01)
	l.Tick(bus, 456)

	fb := l.Framebuffer()
	assert.Equal(t, []byte{0xFF, 0xFF, 0xFF, 0xFF}, fb[0:4], "color 0 through BGP E4")
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0xFF}, fb[8*4:8*4+4], "color 3 through BGP E4")
	assert.Equal(t, Width, l.Image().Bounds().Dx())
}

func TestLCD_RendersSprite(t *testing.T) {
	l, bus := newLCD()
	bus.Write(mmu.AddrLCDC, 0x93)
	bus.Write(mmu.AddrOBP0, 0xE4)
	bus.Write(0x8020, 0x80) // tile 2 row 0: leftmost pixel color 1
	bus.Write(0xFE00, 16)   // Y on line 0
	bus.Write(0xFE01, 8+5)  // X = 5
	bus.Write(0xFE02, 2)
	l.Tick(bus, 456)
	assert.Equal(t, byte(0xC0), l.Framebuffer()[5*4])
}
