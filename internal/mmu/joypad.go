package mmu

// Buttons is the set of pressed keys. The low nibble holds the directions and
// the high nibble the action buttons, matching the two P1 select groups.
type Buttons byte

const (
	JoypRight Buttons = 1 << iota
	JoypLeft
	JoypUp
	JoypDown
	JoypA
	JoypB
	JoypSelect
	JoypStart
)

// SetJoypad records the pressed keys, republishes P1 and requests the joypad
// interrupt when a key goes down.
func (m *MMU) SetJoypad(pressed Buttons) {
	newly := pressed &^ m.buttons
	m.buttons = pressed
	m.RefreshJoypad()
	if newly != 0 {
		m.RequestInterrupt(IntJoypad)
	}
}

// RefreshJoypad recomputes the P1 input nibble for the currently selected groups.
// Inputs are active low.
func (m *MMU) RefreshJoypad() {
	p1 := m.mem[AddrJOYP]
	nibble := byte(0x0F)
	if p1&0x10 == 0 {
		nibble &^= byte(m.buttons & 0x0F)
	}
	if p1&0x20 == 0 {
		nibble &^= byte(m.buttons >> 4)
	}
	m.mem[AddrJOYP] = 0xC0 | p1&0x30 | nibble
}
