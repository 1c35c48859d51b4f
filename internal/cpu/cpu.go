package cpu

import (
	"errors"
	"fmt"
)

// Memory is the address space seen by the CPU. Reads and writes are CPU accesses:
// the implementation applies register side effects and cartridge banking.
type Memory interface {
	Read(addr uint16) byte
	Write(addr uint16, value byte)
}

const (
	addrIF uint16 = 0xFF0F
	addrIE uint16 = 0xFFFF
)

// ErrIllegalOpcode matches any IllegalOpcodeError via errors.Is.
var ErrIllegalOpcode = errors.New("illegal opcode")

// IllegalOpcodeError reports the dispatch of an opcode the hardware does not define.
// Execution cannot continue meaningfully after it.
type IllegalOpcodeError struct {
	Addr   uint16
	Opcode byte
}

func (e *IllegalOpcodeError) Error() string {
	return fmt.Sprintf("illegal opcode %02X at %04X", e.Opcode, e.Addr)
}

func (e *IllegalOpcodeError) Is(target error) bool { return target == ErrIllegalOpcode }

// CPU is the SM83 execution engine.
type CPU struct {
	Registers

	mem Memory
	// set by a conditional instruction whose condition failed
	skipped bool
}

// New creates a CPU in the power-on state: every register and latch zero.
func New(mem Memory) *CPU {
	return &CPU{mem: mem}
}

// SetPC allows tests or a boot stub to set the program counter.
func (c *CPU) SetPC(pc uint16) { c.PC = pc }

// Memory exposes the attached address space for tests/tools.
func (c *CPU) Memory() Memory { return c.mem }

// ResetNoBoot sets registers to typical DMG post-boot state.
// Useful when running without a boot ROM.
func (c *CPU) ResetNoBoot() {
	c.A, c.F = 0x01, 0xB0
	c.B, c.C = 0x00, 0x13
	c.D, c.E = 0x00, 0xD8
	c.H, c.L = 0x01, 0x4D
	c.SP = 0xFFFE
	c.PC = 0x0100
	c.IME = false
	c.IMEDelay = false
	c.Halted = false
}

func (c *CPU) read8(addr uint16) byte     { return c.mem.Read(addr) }
func (c *CPU) write8(addr uint16, v byte) { c.mem.Write(addr, v) }

func (c *CPU) fetch8() byte {
	b := c.read8(c.PC)
	c.PC++
	return b
}

func (c *CPU) fetch16() uint16 {
	lo := uint16(c.fetch8())
	hi := uint16(c.fetch8())
	return lo | hi<<8
}

func (c *CPU) read16(addr uint16) uint16 {
	return uint16(c.read8(addr)) | uint16(c.read8(addr+1))<<8
}

func (c *CPU) write16(addr uint16, v uint16) {
	c.write8(addr, byte(v))
	c.write8(addr+1, byte(v>>8))
}

func (c *CPU) push16(v uint16) {
	c.SP -= 2
	c.write16(c.SP, v)
}

func (c *CPU) pop16() uint16 {
	v := c.read16(c.SP)
	c.SP += 2
	return v
}

// pendingInterrupts returns the requested interrupts that are also enabled.
func (c *CPU) pendingInterrupts() byte {
	return c.read8(addrIE) & c.read8(addrIF) & 0x1F
}

// serviceInterrupt dispatches the highest-priority pending interrupt
// (lowest bit: VBlank, STAT, Timer, Serial, Joypad).
func (c *CPU) serviceInterrupt(pending byte) int {
	var bit uint
	for bit = 0; bit < 5; bit++ {
		if pending&(1<<bit) != 0 {
			break
		}
	}
	c.write8(addrIF, c.read8(addrIF)&^(1<<bit)&0x1F)
	c.IME = false
	c.push16(c.PC)
	c.PC = 0x40 + uint16(bit)*8
	return interruptCycles
}

// Step runs one unit of work: an interrupt dispatch, one idle halt cycle, or one
// instruction. It returns the elapsed T-cycles. An IllegalOpcodeError ends the session;
// PC stays on the offending opcode so further steps report it again.
func (c *CPU) Step() (cycles int, err error) {
	// EI takes effect once the step after it has completed.
	enable := c.IMEDelay
	defer func() {
		if enable && c.IMEDelay {
			c.IME = true
			c.IMEDelay = false
		}
	}()

	pending := c.pendingInterrupts()
	if c.Halted {
		if pending == 0 {
			return haltIdleCycles, nil
		}
		c.Halted = false
	}
	if c.IME && pending != 0 {
		return c.serviceInterrupt(pending), nil
	}

	pc := c.PC
	op := c.fetch8()
	if op == prefixCB {
		cb := c.fetch8()
		extended[cb](c)
		return cbCycles[cb], nil
	}
	if Illegal(op) {
		c.PC = pc
		return 0, &IllegalOpcodeError{Addr: pc, Opcode: op}
	}
	c.skipped = false
	primary[op](c)
	if c.skipped {
		return opCyclesSkipped[op], nil
	}
	return opCycles[op], nil
}
