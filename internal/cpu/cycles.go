package cpu

// opCycles is the nominal T-cycle cost of every primary opcode. Conditional
// control flow (JR/JP/CALL/RET cc) lists the taken cost; opCyclesSkipped holds
// the fall-through cost. 0xCB is a prefix and costs nothing on its own. The
// remaining zero entries are opcodes that do not exist on the hardware.
var opCycles = [256]int{
	//  x0  x1  x2  x3  x4  x5  x6  x7  x8  x9  xA  xB  xC  xD  xE  xF
	4, 12, 8, 8, 4, 4, 8, 4, 20, 8, 8, 8, 4, 4, 8, 4, // 0x
	4, 12, 8, 8, 4, 4, 8, 4, 12, 8, 8, 8, 4, 4, 8, 4, // 1x
	12, 12, 8, 8, 4, 4, 8, 4, 12, 8, 8, 8, 4, 4, 8, 4, // 2x
	12, 12, 8, 8, 12, 12, 12, 4, 12, 8, 8, 8, 4, 4, 8, 4, // 3x
	4, 4, 4, 4, 4, 4, 8, 4, 4, 4, 4, 4, 4, 4, 8, 4, // 4x
	4, 4, 4, 4, 4, 4, 8, 4, 4, 4, 4, 4, 4, 4, 8, 4, // 5x
	4, 4, 4, 4, 4, 4, 8, 4, 4, 4, 4, 4, 4, 4, 8, 4, // 6x
	8, 8, 8, 8, 8, 8, 4, 8, 4, 4, 4, 4, 4, 4, 8, 4, // 7x
	4, 4, 4, 4, 4, 4, 8, 4, 4, 4, 4, 4, 4, 4, 8, 4, // 8x
	4, 4, 4, 4, 4, 4, 8, 4, 4, 4, 4, 4, 4, 4, 8, 4, // 9x
	4, 4, 4, 4, 4, 4, 8, 4, 4, 4, 4, 4, 4, 4, 8, 4, // Ax
	4, 4, 4, 4, 4, 4, 8, 4, 4, 4, 4, 4, 4, 4, 8, 4, // Bx
	20, 12, 16, 16, 24, 16, 8, 16, 20, 16, 16, 0, 24, 24, 8, 16, // Cx
	20, 12, 16, 0, 24, 16, 8, 16, 20, 16, 16, 0, 24, 0, 8, 16, // Dx
	12, 12, 8, 0, 0, 16, 8, 16, 16, 4, 16, 0, 0, 0, 8, 16, // Ex
	12, 12, 8, 4, 0, 16, 8, 16, 12, 8, 16, 4, 0, 0, 8, 16, // Fx
}

// opCyclesSkipped is the cost of a conditional instruction whose condition fails.
var opCyclesSkipped = map[byte]int{
	0x20: 8, 0x28: 8, 0x30: 8, 0x38: 8, // JR cc
	0xC0: 8, 0xC8: 8, 0xD0: 8, 0xD8: 8, // RET cc
	0xC2: 12, 0xCA: 12, 0xD2: 12, 0xDA: 12, // JP cc
	0xC4: 12, 0xCC: 12, 0xD4: 12, 0xDC: 12, // CALL cc
}

// cbCycles is the full cost of each CB-prefixed opcode, prefix fetch included.
// Register forms take 8; (HL) forms (low nibble 6 or E) take 16, except BIT b,(HL)
// which only reads memory and takes 12.
var cbCycles = func() (t [256]int) {
	for op := 0; op < 256; op++ {
		switch {
		case op&0x07 != 6:
			t[op] = 8
		case op >= 0x40 && op < 0x80:
			t[op] = 12
		default:
			t[op] = 16
		}
	}
	return
}()

const (
	interruptCycles = 20 // dispatch to a vector
	haltIdleCycles  = 4  // one idle machine cycle while halted
	prefixCB        = 0xCB
)

// Cycles reports the nominal cost of a primary opcode and, for conditional
// control flow, the fall-through cost. conditional is false for all other opcodes.
func Cycles(op byte) (taken, skipped int, conditional bool) {
	skipped, conditional = opCyclesSkipped[op]
	if !conditional {
		skipped = opCycles[op]
	}
	return opCycles[op], skipped, conditional
}

// CBCycles reports the cost of a CB-prefixed opcode.
func CBCycles(op byte) int { return cbCycles[op] }

// Illegal reports whether op is not a valid SM83 opcode.
func Illegal(op byte) bool { return op != prefixCB && opCycles[op] == 0 }
