package mmu

// Memory-mapped registers read and written by the CPU and its collaborators.
const (
	AddrJOYP uint16 = 0xFF00
	AddrSB   uint16 = 0xFF01
	AddrSC   uint16 = 0xFF02
	AddrDIV  uint16 = 0xFF04
	AddrTIMA uint16 = 0xFF05
	AddrTMA  uint16 = 0xFF06
	AddrTAC  uint16 = 0xFF07
	AddrIF   uint16 = 0xFF0F
	AddrLCDC uint16 = 0xFF40
	AddrSTAT uint16 = 0xFF41
	AddrSCY  uint16 = 0xFF42
	AddrSCX  uint16 = 0xFF43
	AddrLY   uint16 = 0xFF44
	AddrLYC  uint16 = 0xFF45
	AddrDMA  uint16 = 0xFF46
	AddrBGP  uint16 = 0xFF47
	AddrOBP0 uint16 = 0xFF48
	AddrOBP1 uint16 = 0xFF49
	AddrWY   uint16 = 0xFF4A
	AddrWX   uint16 = 0xFF4B
	AddrIE   uint16 = 0xFFFF
)

// Interrupt bits in IF and IE, in priority order.
const (
	IntVBlank = 0
	IntSTAT   = 1
	IntTimer  = 2
	IntSerial = 3
	IntJoypad = 4
)

const (
	oamStart  uint16 = 0xFE00
	oamSize          = 0xA0
	echoStart uint16 = 0xE000
	echoEnd   uint16 = 0xFE00
)
