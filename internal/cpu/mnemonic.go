package cpu

import "fmt"

var (
	operandNames = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}
	rpNames      = [4]string{"BC", "DE", "HL", "SP"}
	rp2Names     = [4]string{"BC", "DE", "HL", "AF"}
	ccNames      = [4]string{"NZ", "Z", "NC", "C"}
	aluNames     = [8]string{"ADD A,", "ADC A,", "SUB ", "SBC A,", "AND ", "XOR ", "OR ", "CP "}
	shiftNames   = [8]string{"RLC", "RRC", "RL", "RR", "SLA", "SRA", "SWAP", "SRL"}
)

var fixedMnemonics = map[byte]string{
	0x00: "NOP", 0x07: "RLCA", 0x08: "LD (a16),SP", 0x0F: "RRCA",
	0x10: "STOP", 0x17: "RLA", 0x18: "JR r8", 0x1F: "RRA",
	0x02: "LD (BC),A", 0x12: "LD (DE),A", 0x22: "LD (HL+),A", 0x32: "LD (HL-),A",
	0x0A: "LD A,(BC)", 0x1A: "LD A,(DE)", 0x2A: "LD A,(HL+)", 0x3A: "LD A,(HL-)",
	0x27: "DAA", 0x2F: "CPL", 0x37: "SCF", 0x3F: "CCF", 0x76: "HALT",
	0xC3: "JP a16", 0xC9: "RET", 0xCB: "PREFIX CB", 0xCD: "CALL a16", 0xD9: "RETI",
	0xE0: "LDH (a8),A", 0xF0: "LDH A,(a8)", 0xE2: "LD (C),A", 0xF2: "LD A,(C)",
	0xE8: "ADD SP,r8", 0xE9: "JP HL", 0xEA: "LD (a16),A", 0xFA: "LD A,(a16)",
	0xF3: "DI", 0xF8: "LD HL,SP+r8", 0xF9: "LD SP,HL", 0xFB: "EI",
}

// Mnemonic returns the assembly name of an opcode, with operand placeholders
// (d8, d16, a8, a16, r8) for immediates. cb selects the CB-prefixed table.
func Mnemonic(op byte, cb bool) string {
	y, z := (op>>3)&7, op&7
	if cb {
		switch op >> 6 {
		case 0:
			return shiftNames[y] + " " + operandNames[z]
		case 1:
			return fmt.Sprintf("BIT %d,%s", y, operandNames[z])
		case 2:
			return fmt.Sprintf("RES %d,%s", y, operandNames[z])
		default:
			return fmt.Sprintf("SET %d,%s", y, operandNames[z])
		}
	}
	if s, ok := fixedMnemonics[op]; ok {
		return s
	}
	if Illegal(op) {
		return fmt.Sprintf("ILLEGAL_%02X", op)
	}
	p := y >> 1
	switch op >> 6 {
	case 0:
		switch z {
		case 0:
			return "JR " + ccNames[y&3] + ",r8"
		case 1:
			if y&1 == 0 {
				return "LD " + rpNames[p] + ",d16"
			}
			return "ADD HL," + rpNames[p]
		case 3:
			if y&1 == 0 {
				return "INC " + rpNames[p]
			}
			return "DEC " + rpNames[p]
		case 4:
			return "INC " + operandNames[y]
		case 5:
			return "DEC " + operandNames[y]
		case 6:
			return "LD " + operandNames[y] + ",d8"
		}
	case 1:
		return "LD " + operandNames[y] + "," + operandNames[z]
	case 2:
		return aluNames[y] + operandNames[z]
	}
	switch z {
	case 0:
		return "RET " + ccNames[y&3]
	case 1:
		return "POP " + rp2Names[p]
	case 2:
		return "JP " + ccNames[y&3] + ",a16"
	case 4:
		return "CALL " + ccNames[y&3] + ",a16"
	case 5:
		return "PUSH " + rp2Names[p]
	case 6:
		return aluNames[y] + "d8"
	case 7:
		return fmt.Sprintf("RST %02XH", y*8)
	}
	return fmt.Sprintf("DB %02X", op)
}
