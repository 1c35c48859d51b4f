package timer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FabianRolfMatthiasNoll/dmgcore/internal/mmu"
)

func TestTimer_DIVFollowsCounter(t *testing.T) {
	bus := mmu.New()
	tm := New()
	for i := 0; i < 64; i++ {
		tm.Tick(bus, 4)
	}
	assert.Equal(t, uint16(256), tm.Counter())
	assert.Equal(t, byte(1), bus.Read(mmu.AddrDIV))

	tm.Tick(bus, 0xFF00)
	assert.Equal(t, byte(0x00), bus.Read(mmu.AddrDIV), "counter wraps at 16 bits")
}

func TestTimer_DIVWriteResetsCounter(t *testing.T) {
	bus := mmu.New()
	tm := New()
	tm.Tick(bus, 0x1234)
	require.Equal(t, byte(0x12), bus.Read(mmu.AddrDIV))

	bus.Write(mmu.AddrDIV, 0x99)
	tm.Tick(bus, 8)
	assert.Equal(t, uint16(0), tm.Counter(), "reset consumes the step")
	assert.Equal(t, byte(0), bus.Read(mmu.AddrDIV))

	tm.Tick(bus, 8)
	assert.Equal(t, uint16(8), tm.Counter())
}

func TestTimer_Frequencies(t *testing.T) {
	tests := []struct {
		tac     byte
		divisor int
	}{
		{0x04, 1024},
		{0x05, 16},
		{0x06, 64},
		{0x07, 256},
	}
	for _, tt := range tests {
		bus := mmu.New()
		tm := New()
		bus.Write(mmu.AddrTAC, tt.tac)
		tm.Tick(bus, tt.divisor-4)
		assert.Equal(t, byte(0), bus.Read(mmu.AddrTIMA), "TAC %02X before edge", tt.tac)
		tm.Tick(bus, 4)
		assert.Equal(t, byte(1), bus.Read(mmu.AddrTIMA), "TAC %02X at edge", tt.tac)
		tm.Tick(bus, tt.divisor*3)
		assert.Equal(t, byte(4), bus.Read(mmu.AddrTIMA), "TAC %02X", tt.tac)
	}
}

func TestTimer_DisabledDoesNotCount(t *testing.T) {
	bus := mmu.New()
	tm := New()
	bus.Write(mmu.AddrTAC, 0x01)
	tm.Tick(bus, 4096)
	assert.Equal(t, byte(0), bus.Read(mmu.AddrTIMA))
	assert.Equal(t, byte(0x10), bus.Read(mmu.AddrDIV))
}

func TestTimer_OverflowReloadsOnFollowingTick(t *testing.T) {
	bus := mmu.New()
	tm := New()
	bus.Write(mmu.AddrTAC, 0x05) // 16 cycles per increment
	bus.Write(mmu.AddrTMA, 0xAB)
	bus.Write(mmu.AddrTIMA, 0xFF)

	assert.True(t, tm.Tick(bus, 16))
	assert.Equal(t, byte(0x00), bus.Read(mmu.AddrTIMA), "wraps to 0 on the overflow tick")
	assert.NotZero(t, bus.Read(mmu.AddrIF)&(1<<mmu.IntTimer))
	assert.True(t, tm.ReloadPending())

	assert.False(t, tm.Tick(bus, 4))
	assert.Equal(t, byte(0xAB), bus.Read(mmu.AddrTIMA))
	assert.False(t, tm.ReloadPending())
}

func TestTimer_ReloadUsesCurrentTMA(t *testing.T) {
	bus := mmu.New()
	tm := New()
	bus.Write(mmu.AddrTAC, 0x05)
	bus.Write(mmu.AddrTIMA, 0xFF)
	bus.Write(mmu.AddrTMA, 0x11)
	tm.Tick(bus, 16)
	bus.Write(mmu.AddrTMA, 0x22)
	tm.Tick(bus, 4)
	assert.Equal(t, byte(0x22), bus.Read(mmu.AddrTIMA))
}

func TestTimer_PreservesOtherInterruptBits(t *testing.T) {
	bus := mmu.New()
	tm := New()
	bus.WriteDirect(mmu.AddrIF, 0x11)
	bus.Write(mmu.AddrTAC, 0x05)
	bus.Write(mmu.AddrTIMA, 0xFF)
	tm.Tick(bus, 16)
	assert.Equal(t, byte(0x15), bus.Read(mmu.AddrIF))
}
