package ppu

// fetchRow fills out with map row pixels starting at tile column tileX, after
// discarding the first skip pixels of that tile. Columns wrap at 32 tiles.
func fetchRow(mem VRAMReader, mapBase uint16, tileData8000 bool, tileX, mapY uint16, fineY byte, skip int, out []byte) {
	var q fifo
	f := newBGFetcher(mem, &q)
	f.Configure(tileData8000, mapBase+mapY*32+tileX, fineY)
	f.Fetch()
	for i := 0; i < skip; i++ {
		_, _ = q.Pop()
	}
	for x := range out {
		if q.Len() == 0 {
			tileX = (tileX + 1) & 31
			f.Configure(tileData8000, mapBase+mapY*32+tileX, fineY)
			f.Fetch()
		}
		out[x], _ = q.Pop()
	}
}

// renderBGScanline renders the 160 background color indices of line ly.
func renderBGScanline(mem VRAMReader, mapBase uint16, tileData8000 bool, scx, scy, ly byte) [Width]byte {
	var out [Width]byte
	bgY := uint16(ly) + uint16(scy)
	fetchRow(mem, mapBase, tileData8000, uint16(scx>>3), (bgY>>3)&31, byte(bgY&7), int(scx&7), out[:])
	return out
}

// renderWindowScanline renders window row winLine starting at screen column
// start (WX-7). Columns left of the window stay 0. start may be negative.
func renderWindowScanline(mem VRAMReader, mapBase uint16, tileData8000 bool, start int, winLine byte) [Width]byte {
	var out [Width]byte
	if start >= Width {
		return out
	}
	skip := 0
	if start < 0 {
		skip, start = -start, 0
	}
	y := uint16(winLine)
	fetchRow(mem, mapBase, tileData8000, 0, (y>>3)&31, byte(y&7), skip, out[start:])
	return out
}
