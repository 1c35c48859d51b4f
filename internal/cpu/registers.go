package cpu

import "fmt"

// Flags helpers
const (
	flagZ byte = 1 << 7
	flagN byte = 1 << 6
	flagH byte = 1 << 5
	flagC byte = 1 << 4
)

// Reg8 identifies an 8-bit general register. The numeric order (A, B, C, D, E, H, L)
// is the index order used by the register-to-register instruction groups.
type Reg8 uint8

const (
	RegA Reg8 = iota
	RegB
	RegC
	RegD
	RegE
	RegH
	RegL
)

// Reg16 identifies a register pair. Index 4 is the stack pointer.
type Reg16 uint8

const (
	RegAF Reg16 = iota
	RegBC
	RegDE
	RegHL
	RegSP
)

var reg8Names = [...]string{"A", "B", "C", "D", "E", "H", "L"}
var reg16Names = [...]string{"AF", "BC", "DE", "HL", "SP"}

func (r Reg8) String() string {
	if int(r) < len(reg8Names) {
		return reg8Names[r]
	}
	return fmt.Sprintf("Reg8(%d)", uint8(r))
}

func (r Reg16) String() string {
	if int(r) < len(reg16Names) {
		return reg16Names[r]
	}
	return fmt.Sprintf("Reg16(%d)", uint8(r))
}

// Registers is the SM83 register file plus the interrupt latches consulted each step.
// The low nibble of F is always zero.
type Registers struct {
	A, F byte
	B, C byte
	D, E byte
	H, L byte

	SP uint16
	PC uint16

	IME      bool
	IMEDelay bool // set by EI; IME follows once the next step completes
	Halted   bool
}

// invalidIndex handles register indices that no legal opcode encoding produces.
func invalidIndex(kind string, idx int) {
	if debugChecks {
		panic(fmt.Sprintf("cpu: %s register index %d out of range", kind, idx))
	}
}

// Get returns an 8-bit register. Unknown identifiers read as 0xFF.
func (r *Registers) Get(id Reg8) byte {
	switch id {
	case RegA:
		return r.A
	case RegB:
		return r.B
	case RegC:
		return r.C
	case RegD:
		return r.D
	case RegE:
		return r.E
	case RegH:
		return r.H
	case RegL:
		return r.L
	}
	invalidIndex("8-bit", int(id))
	return 0xFF
}

// Set stores an 8-bit register. Unknown identifiers are ignored.
func (r *Registers) Set(id Reg8, v byte) {
	switch id {
	case RegA:
		r.A = v
	case RegB:
		r.B = v
	case RegC:
		r.C = v
	case RegD:
		r.D = v
	case RegE:
		r.E = v
	case RegH:
		r.H = v
	case RegL:
		r.L = v
	default:
		invalidIndex("8-bit", int(id))
	}
}

// GetWithFlags reads by the push/pop-style index where slot 1 is F:
// 0=A 1=F 2=B 3=C 4=D 5=E 6=H 7=L.
func (r *Registers) GetWithFlags(idx int) byte {
	switch idx {
	case 0:
		return r.A
	case 1:
		return r.F
	case 2, 3, 4, 5, 6, 7:
		return r.Get(Reg8(idx - 1))
	}
	invalidIndex("8-bit+flags", idx)
	return 0xFF
}

// SetWithFlags is the store counterpart of GetWithFlags.
func (r *Registers) SetWithFlags(idx int, v byte) {
	switch idx {
	case 0:
		r.A = v
	case 1:
		r.F = v & 0xF0
	case 2, 3, 4, 5, 6, 7:
		r.Set(Reg8(idx-1), v)
	default:
		invalidIndex("8-bit+flags", idx)
	}
}

// Pair returns a 16-bit register pair. Unknown identifiers read as 0xFFFF.
func (r *Registers) Pair(id Reg16) uint16 {
	switch id {
	case RegAF:
		return uint16(r.A)<<8 | uint16(r.F&0xF0)
	case RegBC:
		return uint16(r.B)<<8 | uint16(r.C)
	case RegDE:
		return uint16(r.D)<<8 | uint16(r.E)
	case RegHL:
		return uint16(r.H)<<8 | uint16(r.L)
	case RegSP:
		return r.SP
	}
	invalidIndex("16-bit", int(id))
	return 0xFFFF
}

// SetPair stores a 16-bit register pair. Writes to AF drop the low nibble of F.
func (r *Registers) SetPair(id Reg16, v uint16) {
	switch id {
	case RegAF:
		r.A, r.F = byte(v>>8), byte(v)&0xF0
	case RegBC:
		r.B, r.C = byte(v>>8), byte(v)
	case RegDE:
		r.D, r.E = byte(v>>8), byte(v)
	case RegHL:
		r.H, r.L = byte(v>>8), byte(v)
	case RegSP:
		r.SP = v
	default:
		invalidIndex("16-bit", int(id))
	}
}

func (r *Registers) flag(f byte) bool { return r.F&f != 0 }

func (r *Registers) setZNHC(z, n, h, carry bool) {
	var f byte
	if z {
		f |= flagZ
	}
	if n {
		f |= flagN
	}
	if h {
		f |= flagH
	}
	if carry {
		f |= flagC
	}
	r.F = f
}

// String formats the register file the way the trace output prints it.
func (r *Registers) String() string {
	return fmt.Sprintf("A=%02X F=%02X B=%02X C=%02X D=%02X E=%02X H=%02X L=%02X SP=%04X PC=%04X IME=%t",
		r.A, r.F, r.B, r.C, r.D, r.E, r.H, r.L, r.SP, r.PC, r.IME)
}
