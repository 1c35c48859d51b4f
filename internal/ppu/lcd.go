package ppu

import (
	"image"

	"github.com/FabianRolfMatthiasNoll/dmgcore/internal/mmu"
)

const (
	Width  = 160
	Height = 144

	dotsPerLine   = 456
	linesPerFrame = 154
	oamScanEnd    = 80
	transferEnd   = oamScanEnd + 172
)

// STAT bits.
const (
	statCoincidence = 1 << 2
	statHBlankIRQ   = 1 << 3
	statVBlankIRQ   = 1 << 4
	statOAMIRQ      = 1 << 5
	statLYCIRQ      = 1 << 6
)

// LCDC bits.
const (
	lcdcBG        = 1 << 0
	lcdcOBJ       = 1 << 1
	lcdcOBJTall   = 1 << 2
	lcdcBGMap     = 1 << 3
	lcdcTileData  = 1 << 4
	lcdcWindow    = 1 << 5
	lcdcWindowMap = 1 << 6
	lcdcDisplayOn = 1 << 7
)

// STAT modes.
const (
	modeHBlank   = 0
	modeVBlank   = 1
	modeOAMScan  = 2
	modeTransfer = 3
)

// Bus is how the LCD sees the rest of the machine. Register state is published
// with WriteDirect so CPU write side effects never fire.
type Bus interface {
	VRAMReader
	WriteDirect(addr uint16, value byte)
	RequestInterrupt(bit int)
}

// shades maps a 2-bit palette entry to a gray level.
var shades = [4]byte{0xFF, 0xC0, 0x60, 0x00}

// LCD drives LY, STAT and the LCD interrupts from the cycle count of each step and
// renders a whole line when the line ends. Registers are sampled at that moment.
type LCD struct {
	dot     int
	ly      byte
	mode    byte
	winLine byte // window rows drawn this frame
	lycHit  bool

	frames uint64
	fb     []byte // RGBA Width*Height
}

func New() *LCD {
	l := &LCD{fb: make([]byte, Width*Height*4)}
	l.Clear()
	return l
}

// Clear paints the frame white.
func (l *LCD) Clear() {
	for i := range l.fb {
		l.fb[i] = 0xFF
	}
}

// Framebuffer returns the RGBA pixels of the last rendered frame.
func (l *LCD) Framebuffer() []byte { return l.fb }

// Image wraps the framebuffer without copying.
func (l *LCD) Image() *image.RGBA {
	return &image.RGBA{Pix: l.fb, Stride: Width * 4, Rect: image.Rect(0, 0, Width, Height)}
}

func (l *LCD) LY() byte       { return l.ly }
func (l *LCD) Frames() uint64 { return l.frames }

// Tick advances the LCD by cycles T-cycles and reports whether VBlank began.
func (l *LCD) Tick(bus Bus, cycles int) (vblank bool) {
	lcdc := bus.Read(mmu.AddrLCDC)
	if lcdc&lcdcDisplayOn == 0 {
		l.dot, l.ly, l.winLine, l.lycHit = 0, 0, 0, false
		l.mode = modeHBlank
		bus.WriteDirect(mmu.AddrLY, 0)
		l.publishSTAT(bus)
		return false
	}

	l.dot += cycles
	for l.dot >= dotsPerLine {
		l.dot -= dotsPerLine
		if l.ly < Height {
			l.renderLine(bus, lcdc)
		}
		l.ly++
		switch l.ly {
		case Height:
			bus.RequestInterrupt(mmu.IntVBlank)
			l.frames++
			vblank = true
		case linesPerFrame:
			l.ly, l.winLine = 0, 0
		}
		bus.WriteDirect(mmu.AddrLY, l.ly)
		l.checkLYC(bus)
	}
	l.checkLYC(bus)
	l.setMode(bus, l.currentMode())
	return vblank
}

func (l *LCD) currentMode() byte {
	switch {
	case l.ly >= Height:
		return modeVBlank
	case l.dot < oamScanEnd:
		return modeOAMScan
	case l.dot < transferEnd:
		return modeTransfer
	default:
		return modeHBlank
	}
}

// setMode publishes the mode and raises the STAT interrupt its source enables.
func (l *LCD) setMode(bus Bus, mode byte) {
	if mode != l.mode {
		l.mode = mode
		stat := bus.Read(mmu.AddrSTAT)
		var src byte
		switch mode {
		case modeHBlank:
			src = statHBlankIRQ
		case modeVBlank:
			src = statVBlankIRQ
		case modeOAMScan:
			src = statOAMIRQ
		}
		if stat&src != 0 {
			bus.RequestInterrupt(mmu.IntSTAT)
		}
	}
	l.publishSTAT(bus)
}

func (l *LCD) checkLYC(bus Bus) {
	hit := l.ly == bus.Read(mmu.AddrLYC)
	if hit && !l.lycHit && bus.Read(mmu.AddrSTAT)&statLYCIRQ != 0 {
		bus.RequestInterrupt(mmu.IntSTAT)
	}
	l.lycHit = hit
}

func (l *LCD) publishSTAT(bus Bus) {
	stat := bus.Read(mmu.AddrSTAT)&0x78 | 0x80 | l.mode
	if l.lycHit {
		stat |= statCoincidence
	}
	bus.WriteDirect(mmu.AddrSTAT, stat)
}

func (l *LCD) renderLine(bus Bus, lcdc byte) {
	var ci [Width]byte
	data8000 := lcdc&lcdcTileData != 0
	if lcdc&lcdcBG != 0 {
		mapBase := uint16(0x9800)
		if lcdc&lcdcBGMap != 0 {
			mapBase = 0x9C00
		}
		ci = renderBGScanline(bus, mapBase, data8000, bus.Read(mmu.AddrSCX), bus.Read(mmu.AddrSCY), l.ly)

		wy, wx := bus.Read(mmu.AddrWY), bus.Read(mmu.AddrWX)
		if lcdc&lcdcWindow != 0 && l.ly >= wy && wx <= 166 {
			winMap := uint16(0x9800)
			if lcdc&lcdcWindowMap != 0 {
				winMap = 0x9C00
			}
			start := int(wx) - 7
			win := renderWindowScanline(bus, winMap, data8000, start, l.winLine)
			copy(ci[max(start, 0):], win[max(start, 0):])
			l.winLine++
		}
	}

	row := l.fb[int(l.ly)*Width*4 : (int(l.ly)+1)*Width*4]
	bgp := bus.Read(mmu.AddrBGP)
	for x := 0; x < Width; x++ {
		putShade(row[x*4:], bgp, ci[x])
	}

	if lcdc&lcdcOBJ == 0 {
		return
	}
	tall := lcdc&lcdcOBJTall != 0
	sprites := selectSprites(bus, int(l.ly), tall)
	if len(sprites) == 0 {
		return
	}
	obp := [2]byte{bus.Read(mmu.AddrOBP0), bus.Read(mmu.AddrOBP1)}
	spr, pal := composeSpriteLine(bus, sprites, int(l.ly), &ci, tall)
	for x := 0; x < Width; x++ {
		if spr[x] != 0 {
			putShade(row[x*4:], obp[pal[x]], spr[x])
		}
	}
}

func putShade(px []byte, palette, ci byte) {
	g := shades[(palette>>(ci*2))&0x03]
	px[0], px[1], px[2], px[3] = g, g, g, 0xFF
}
