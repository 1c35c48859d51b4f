package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMBC5_NineBitBank(t *testing.T) {
	c := Load(bankedROM(0x19, 0x00, 32), nil)
	assert.Equal(t, KindMBC5, c.Kind())

	c.TryWrite(0x2000, 0x13)
	assert.Equal(t, byte(0x13), switchedBank(c))

	c.TryWrite(0x3000, 0x01)
	assert.Equal(t, 0x113, c.ROMBank)
	c.TryWrite(0x3000, 0x00)
	assert.Equal(t, 0x13, c.ROMBank)

	c.TryWrite(0x2000, 0x00)
	assert.Equal(t, 1, c.ROMBank)
}

func TestMBC5_RAMBanks(t *testing.T) {
	c := Load(bankedROM(0x1B, 0x04, 4), nil)
	c.TryWrite(0x0000, 0x0A)
	c.TryWrite(0x4000, 0x0F)
	c.TryWrite(0xBFFF, 0x77)
	c.TryWrite(0x4000, 0x00)
	assert.Equal(t, byte(0x00), c.ReadRAM(0xBFFF))
	c.TryWrite(0x4000, 0x1F)
	assert.Equal(t, 15, c.RAMBank)
	assert.Equal(t, byte(0x77), c.ReadRAM(0xBFFF))
}
