package cart

// None is the controller of carts without banking hardware. It claims nothing
// except external RAM on ROM+RAM carts.
type None struct {
	c *Cartridge
}

func (n *None) Kind() Kind { return KindNone }

func (n *None) TryWrite(addr uint16, value byte) bool {
	if inRAMWindow(addr) && n.c.RAMEnabled {
		n.c.writeRAM(addr, value)
		return true
	}
	return false
}
