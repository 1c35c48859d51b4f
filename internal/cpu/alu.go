package cpu

func add8(a, b byte, carryIn bool) (res byte, z, n, h, cy bool) {
	ci := byte(0)
	if carryIn {
		ci = 1
	}
	r := uint16(a) + uint16(b) + uint16(ci)
	res = byte(r)
	z = res == 0
	h = (a&0x0F)+(b&0x0F)+ci > 0x0F
	cy = r > 0xFF
	return
}

func sub8(a, b byte, carryIn bool) (res byte, z, n, h, cy bool) {
	ci := byte(0)
	if carryIn {
		ci = 1
	}
	r := int16(a) - int16(b) - int16(ci)
	res = byte(r)
	z = res == 0
	n = true
	h = a&0x0F < (b&0x0F)+ci
	cy = r < 0
	return
}

// aluOps is indexed by bits 5-3 of the 0x80-0xBF and 0xC6-0xFE opcode rows:
// ADD ADC SUB SBC AND XOR OR CP.
var aluOps = [8]func(r *Registers, v byte){
	func(r *Registers, v byte) { // ADD
		res, z, n, h, cy := add8(r.A, v, false)
		r.A = res
		r.setZNHC(z, n, h, cy)
	},
	func(r *Registers, v byte) { // ADC
		res, z, n, h, cy := add8(r.A, v, r.flag(flagC))
		r.A = res
		r.setZNHC(z, n, h, cy)
	},
	func(r *Registers, v byte) { // SUB
		res, z, n, h, cy := sub8(r.A, v, false)
		r.A = res
		r.setZNHC(z, n, h, cy)
	},
	func(r *Registers, v byte) { // SBC
		res, z, n, h, cy := sub8(r.A, v, r.flag(flagC))
		r.A = res
		r.setZNHC(z, n, h, cy)
	},
	func(r *Registers, v byte) { // AND
		r.A &= v
		r.setZNHC(r.A == 0, false, true, false)
	},
	func(r *Registers, v byte) { // XOR
		r.A ^= v
		r.setZNHC(r.A == 0, false, false, false)
	},
	func(r *Registers, v byte) { // OR
		r.A |= v
		r.setZNHC(r.A == 0, false, false, false)
	},
	func(r *Registers, v byte) { // CP
		_, z, n, h, cy := sub8(r.A, v, false)
		r.setZNHC(z, n, h, cy)
	},
}

// inc8 and dec8 leave the carry flag untouched.
func (r *Registers) inc8(v byte) byte {
	res := v + 1
	r.setZNHC(res == 0, false, v&0x0F == 0x0F, r.flag(flagC))
	return res
}

func (r *Registers) dec8(v byte) byte {
	res := v - 1
	r.setZNHC(res == 0, true, v&0x0F == 0x00, r.flag(flagC))
	return res
}

// addHL adds a pair to HL. Z is preserved.
func (r *Registers) addHL(v uint16) {
	hl := r.Pair(RegHL)
	sum := uint32(hl) + uint32(v)
	h := (hl&0x0FFF)+(v&0x0FFF) > 0x0FFF
	r.SetPair(RegHL, uint16(sum))
	r.setZNHC(r.flag(flagZ), false, h, sum > 0xFFFF)
}

// addSP computes SP+e for ADD SP,e and LD HL,SP+e. H and C come from the
// unsigned low-byte addition; Z and N are cleared.
func (r *Registers) addSP(e byte) uint16 {
	_, _, _, h, cy := add8(byte(r.SP), e, false)
	r.setZNHC(false, false, h, cy)
	return r.SP + uint16(int8(e))
}

func (r *Registers) daa() {
	a := r.A
	cf := r.flag(flagC)
	if !r.flag(flagN) {
		if cf || a > 0x99 {
			a += 0x60
			cf = true
		}
		if r.flag(flagH) || a&0x0F > 0x09 {
			a += 0x06
		}
	} else {
		if cf {
			a -= 0x60
		}
		if r.flag(flagH) {
			a -= 0x06
		}
	}
	r.A = a
	r.setZNHC(a == 0, r.flag(flagN), false, cf)
}

// shiftOps is indexed by bits 5-3 of CB opcodes 0x00-0x3F:
// RLC RRC RL RR SLA SRA SWAP SRL.
var shiftOps = [8]func(r *Registers, v byte) byte{
	func(r *Registers, v byte) byte {
		out := v >> 7
		v = v<<1 | out
		r.setZNHC(v == 0, false, false, out == 1)
		return v
	},
	func(r *Registers, v byte) byte {
		out := v & 1
		v = v>>1 | out<<7
		r.setZNHC(v == 0, false, false, out == 1)
		return v
	},
	func(r *Registers, v byte) byte {
		out := v >> 7
		v = v<<1 | r.carryBit()
		r.setZNHC(v == 0, false, false, out == 1)
		return v
	},
	func(r *Registers, v byte) byte {
		out := v & 1
		v = v>>1 | r.carryBit()<<7
		r.setZNHC(v == 0, false, false, out == 1)
		return v
	},
	func(r *Registers, v byte) byte {
		out := v >> 7
		v <<= 1
		r.setZNHC(v == 0, false, false, out == 1)
		return v
	},
	func(r *Registers, v byte) byte {
		out := v & 1
		v = v>>1 | v&0x80
		r.setZNHC(v == 0, false, false, out == 1)
		return v
	},
	func(r *Registers, v byte) byte {
		v = v<<4 | v>>4
		r.setZNHC(v == 0, false, false, false)
		return v
	},
	func(r *Registers, v byte) byte {
		out := v & 1
		v >>= 1
		r.setZNHC(v == 0, false, false, out == 1)
		return v
	},
}

func (r *Registers) carryBit() byte {
	if r.flag(flagC) {
		return 1
	}
	return 0
}
