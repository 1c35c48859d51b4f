package cpu

// instruction executes one decoded opcode. Immediate operands are fetched by
// the instruction itself, which leaves PC past them.
type instruction func(c *CPU)

var (
	primary  [256]instruction
	extended [256]instruction
)

// operand is the 3-bit register field of an opcode: B C D E H L (HL) A.
type operand struct {
	reg Reg8
	mem bool
}

var operands = [8]operand{
	{reg: RegB}, {reg: RegC}, {reg: RegD}, {reg: RegE},
	{reg: RegH}, {reg: RegL}, {mem: true}, {reg: RegA},
}

// Pair fields: rp for loads and arithmetic, rp2 for PUSH/POP.
var (
	rpTable  = [4]Reg16{RegBC, RegDE, RegHL, RegSP}
	rp2Table = [4]Reg16{RegBC, RegDE, RegHL, RegAF}
)

func (c *CPU) load(o operand) byte {
	if o.mem {
		return c.read8(c.Pair(RegHL))
	}
	return c.Get(o.reg)
}

func (c *CPU) store(o operand, v byte) {
	if o.mem {
		c.write8(c.Pair(RegHL), v)
		return
	}
	c.Set(o.reg, v)
}

// condition evaluates the cc field: NZ Z NC C.
func (c *CPU) condition(cc byte) bool {
	switch cc & 3 {
	case 0:
		return !c.flag(flagZ)
	case 1:
		return c.flag(flagZ)
	case 2:
		return !c.flag(flagC)
	default:
		return c.flag(flagC)
	}
}

func (c *CPU) jr() {
	off := int8(c.fetch8())
	c.PC += uint16(off)
}

func (c *CPU) call(addr uint16) {
	c.push16(c.PC)
	c.PC = addr
}

func init() {
	initPrimary()
	initExtended()
}

func initPrimary() {
	primary[0x00] = func(c *CPU) {}
	primary[0x10] = func(c *CPU) { c.PC++ } // STOP consumes its padding byte

	for i, rp := range rpTable {
		i := byte(i)
		primary[i<<4|0x01] = func(c *CPU) { c.SetPair(rp, c.fetch16()) }
		primary[i<<4|0x03] = func(c *CPU) { c.SetPair(rp, c.Pair(rp)+1) }
		primary[i<<4|0x09] = func(c *CPU) { c.addHL(c.Pair(rp)) }
		primary[i<<4|0x0B] = func(c *CPU) { c.SetPair(rp, c.Pair(rp)-1) }
	}

	// LD (rr),A and LD A,(rr) with HL post-increment/decrement
	indirect := [4]func(c *CPU) uint16{
		func(c *CPU) uint16 { return c.Pair(RegBC) },
		func(c *CPU) uint16 { return c.Pair(RegDE) },
		func(c *CPU) uint16 { hl := c.Pair(RegHL); c.SetPair(RegHL, hl+1); return hl },
		func(c *CPU) uint16 { hl := c.Pair(RegHL); c.SetPair(RegHL, hl-1); return hl },
	}
	for i, addr := range indirect {
		primary[byte(i)<<4|0x02] = func(c *CPU) { c.write8(addr(c), c.A) }
		primary[byte(i)<<4|0x0A] = func(c *CPU) { c.A = c.read8(addr(c)) }
	}

	for y, o := range operands {
		op := byte(y) << 3
		primary[op|0x04] = func(c *CPU) { c.store(o, c.inc8(c.load(o))) }
		primary[op|0x05] = func(c *CPU) { c.store(o, c.dec8(c.load(o))) }
		primary[op|0x06] = func(c *CPU) { c.store(o, c.fetch8()) }
	}

	// Accumulator rotates always clear Z.
	for i, op := range [4]byte{0x07, 0x0F, 0x17, 0x1F} {
		shift := shiftOps[i]
		primary[op] = func(c *CPU) {
			c.A = shift(&c.Registers, c.A)
			c.F &^= flagZ
		}
	}
	primary[0x27] = func(c *CPU) { c.daa() }
	primary[0x2F] = func(c *CPU) {
		c.A = ^c.A
		c.F = c.F&(flagZ|flagC) | flagN | flagH
	}
	primary[0x37] = func(c *CPU) { c.F = c.F&flagZ | flagC }
	primary[0x3F] = func(c *CPU) { c.F = (c.F ^ flagC) & (flagZ | flagC) }

	primary[0x08] = func(c *CPU) { c.write16(c.fetch16(), c.SP) }
	primary[0x18] = func(c *CPU) { c.jr() }
	for cc := byte(0); cc < 4; cc++ {
		primary[0x20|cc<<3] = func(c *CPU) {
			if c.condition(cc) {
				c.jr()
				return
			}
			c.PC++
			c.skipped = true
		}
	}

	for op := 0x40; op < 0x80; op++ {
		dst, src := operands[(op>>3)&7], operands[op&7]
		primary[op] = func(c *CPU) { c.store(dst, c.load(src)) }
	}
	primary[0x76] = func(c *CPU) { c.Halted = true }

	for op := 0x80; op < 0xC0; op++ {
		alu, src := aluOps[(op>>3)&7], operands[op&7]
		primary[op] = func(c *CPU) { alu(&c.Registers, c.load(src)) }
	}

	for y := byte(0); y < 8; y++ {
		alu, vec := aluOps[y], uint16(y)*8
		primary[0xC6|y<<3] = func(c *CPU) { alu(&c.Registers, c.fetch8()) }
		primary[0xC7|y<<3] = func(c *CPU) { c.call(vec) }
	}

	for cc := byte(0); cc < 4; cc++ {
		primary[0xC0|cc<<3] = func(c *CPU) {
			if c.condition(cc) {
				c.PC = c.pop16()
				return
			}
			c.skipped = true
		}
		primary[0xC2|cc<<3] = func(c *CPU) {
			addr := c.fetch16()
			if c.condition(cc) {
				c.PC = addr
				return
			}
			c.skipped = true
		}
		primary[0xC4|cc<<3] = func(c *CPU) {
			addr := c.fetch16()
			if c.condition(cc) {
				c.call(addr)
				return
			}
			c.skipped = true
		}
	}

	for i, rp := range rp2Table {
		primary[0xC1|byte(i)<<4] = func(c *CPU) { c.SetPair(rp, c.pop16()) }
		primary[0xC5|byte(i)<<4] = func(c *CPU) { c.push16(c.Pair(rp)) }
	}

	primary[0xC3] = func(c *CPU) { c.PC = c.fetch16() }
	primary[0xC9] = func(c *CPU) { c.PC = c.pop16() }
	primary[0xCD] = func(c *CPU) { c.call(c.fetch16()) }
	primary[0xD9] = func(c *CPU) {
		c.PC = c.pop16()
		c.IME = true
	}
	primary[0xE9] = func(c *CPU) { c.PC = c.Pair(RegHL) }

	primary[0xE0] = func(c *CPU) { c.write8(0xFF00+uint16(c.fetch8()), c.A) }
	primary[0xF0] = func(c *CPU) { c.A = c.read8(0xFF00 + uint16(c.fetch8())) }
	primary[0xE2] = func(c *CPU) { c.write8(0xFF00+uint16(c.C), c.A) }
	primary[0xF2] = func(c *CPU) { c.A = c.read8(0xFF00 + uint16(c.C)) }
	primary[0xEA] = func(c *CPU) { c.write8(c.fetch16(), c.A) }
	primary[0xFA] = func(c *CPU) { c.A = c.read8(c.fetch16()) }

	primary[0xE8] = func(c *CPU) { c.SP = c.addSP(c.fetch8()) }
	primary[0xF8] = func(c *CPU) { c.SetPair(RegHL, c.addSP(c.fetch8())) }
	primary[0xF9] = func(c *CPU) { c.SP = c.Pair(RegHL) }

	primary[0xF3] = func(c *CPU) {
		c.IME = false
		c.IMEDelay = false
	}
	primary[0xFB] = func(c *CPU) { c.IMEDelay = true }
}

func initExtended() {
	for op := 0; op < 256; op++ {
		o := operands[op&7]
		y := byte(op>>3) & 7
		switch op >> 6 {
		case 0:
			shift := shiftOps[y]
			extended[op] = func(c *CPU) { c.store(o, shift(&c.Registers, c.load(o))) }
		case 1: // BIT: Z from the tested bit, H set, C kept
			extended[op] = func(c *CPU) {
				f := c.F&flagC | flagH
				if c.load(o)&(1<<y) == 0 {
					f |= flagZ
				}
				c.F = f
			}
		case 2:
			extended[op] = func(c *CPU) { c.store(o, c.load(o)&^(1<<y)) }
		case 3:
			extended[op] = func(c *CPU) { c.store(o, c.load(o)|1<<y) }
		}
	}
}
