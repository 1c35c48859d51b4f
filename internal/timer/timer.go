package timer

import "github.com/FabianRolfMatthiasNoll/dmgcore/internal/mmu"

// Bus is the part of the address space the timer uses. Register updates go
// through WriteDirect so they never trigger CPU write side effects.
type Bus interface {
	Read(addr uint16) byte
	WriteDirect(addr uint16, value byte)
	TakeDividerReset() bool
}

// divisors maps TAC bits 0-1 to T-cycles per TIMA increment.
var divisors = [4]uint32{1024, 16, 64, 256}

// Timer derives DIV and TIMA from a free-running T-cycle counter.
type Timer struct {
	counter uint16 // DIV is the high byte

	DIV  byte
	TIMA byte
	TMA  byte
	TAC  byte

	// TIMA overflowed on the previous tick and reloads from TMA on this one.
	reloadPending bool
}

func New() *Timer { return &Timer{} }

// Counter returns the internal divider counter.
func (t *Timer) Counter() uint16 { return t.counter }

// ReloadPending reports whether TIMA reloads from TMA on the next tick.
func (t *Timer) ReloadPending() bool { return t.reloadPending }

// Tick advances the timer by the cycles elapsed in one step and reports whether
// TIMA overflowed. An overflow sets the timer bit in IF.
func (t *Timer) Tick(bus Bus, cycles int) (overflow bool) {
	start := uint32(t.counter)
	end := start + uint32(cycles)
	if bus.TakeDividerReset() {
		start, end = 0, 0
	}
	t.counter = uint16(end)
	t.DIV = byte(t.counter >> 8)

	t.TIMA = bus.Read(mmu.AddrTIMA)
	t.TMA = bus.Read(mmu.AddrTMA)
	t.TAC = bus.Read(mmu.AddrTAC) & 0x07
	if t.reloadPending {
		t.TIMA = t.TMA
		t.reloadPending = false
	}

	if t.TAC&0x04 != 0 {
		d := divisors[t.TAC&0x03]
		for n := end/d - start/d; n > 0; n-- {
			t.TIMA++
			if t.TIMA == 0 {
				overflow = true
				t.reloadPending = true
			}
		}
	}
	if overflow {
		bus.WriteDirect(mmu.AddrIF, bus.Read(mmu.AddrIF)|1<<mmu.IntTimer)
	}

	bus.WriteDirect(mmu.AddrTIMA, t.TIMA)
	bus.WriteDirect(mmu.AddrDIV, t.DIV)
	return overflow
}
