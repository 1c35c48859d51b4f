package ppu

import "slices"

const (
	oamBase          = 0xFE00
	oamEntries       = 40
	maxSpritesOnLine = 10
)

// Sprite is an OAM entry in screen coordinates (OAM X-8, Y-16).
type Sprite struct {
	X, Y     int
	Tile     byte
	Attr     byte
	OAMIndex int
}

// Attr bits.
const (
	attrBehindBG = 1 << 7
	attrFlipY    = 1 << 6
	attrFlipX    = 1 << 5
	attrOBP1     = 1 << 4
)

// selectSprites returns the first ten OAM entries that cover line ly.
func selectSprites(mem VRAMReader, ly int, tall bool) []Sprite {
	h := 8
	if tall {
		h = 16
	}
	list := make([]Sprite, 0, maxSpritesOnLine)
	for i := 0; i < oamEntries && len(list) < maxSpritesOnLine; i++ {
		base := uint16(oamBase + i*4)
		y := int(mem.Read(base)) - 16
		if ly < y || ly >= y+h {
			continue
		}
		list = append(list, Sprite{
			Y:        y,
			X:        int(mem.Read(base+1)) - 8,
			Tile:     mem.Read(base + 2),
			Attr:     mem.Read(base + 3),
			OAMIndex: i,
		})
	}
	return list
}

// composeSpriteLine resolves the sprite pixels of line ly. The smaller X wins,
// ties go to the lower OAM index. A winning pixel flagged behind-BG is dropped
// where the background color index is non-zero. pal is 1 where OBP1 applies.
func composeSpriteLine(mem VRAMReader, sprites []Sprite, ly int, bgci *[Width]byte, tall bool) (ci, pal [Width]byte) {
	ordered := slices.Clone(sprites)
	slices.SortStableFunc(ordered, func(a, b Sprite) int {
		if a.X != b.X {
			return a.X - b.X
		}
		return a.OAMIndex - b.OAMIndex
	})

	var done [Width]bool
	for _, s := range ordered {
		row := ly - s.Y
		tile := s.Tile
		if tall {
			tile &= 0xFE
			if s.Attr&attrFlipY != 0 {
				row = 15 - row
			}
			if row >= 8 {
				tile++
			}
		} else if s.Attr&attrFlipY != 0 {
			row = 7 - row
		}
		lo, hi := tileRow(mem, tile, true, byte(row))
		for col := 0; col < 8; col++ {
			x := s.X + col
			if x < 0 || x >= Width || done[x] {
				continue
			}
			px := col
			if s.Attr&attrFlipX != 0 {
				px = 7 - col
			}
			c := pixel(lo, hi, px)
			if c == 0 {
				continue
			}
			done[x] = true
			if s.Attr&attrBehindBG != 0 && bgci[x] != 0 {
				continue
			}
			ci[x] = c
			if s.Attr&attrOBP1 != 0 {
				pal[x] = 1
			}
		}
	}
	return ci, pal
}
