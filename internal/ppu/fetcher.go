package ppu

// VRAMReader is the read side of the address space the renderer needs: tile
// data, tile maps and OAM.
type VRAMReader interface {
	Read(addr uint16) byte
}

// fifo is a ring buffer of 2-bit color indices.
type fifo struct {
	buf  [32]byte
	head int
	tail int
	size int
}

func (q *fifo) Clear()   { q.head, q.tail, q.size = 0, 0, 0 }
func (q *fifo) Len() int { return q.size }
func (q *fifo) Push(ci byte) bool {
	if q.size == len(q.buf) {
		return false
	}
	q.buf[q.tail] = ci & 0x03
	q.tail = (q.tail + 1) % len(q.buf)
	q.size++
	return true
}
func (q *fifo) Pop() (byte, bool) {
	if q.size == 0 {
		return 0, false
	}
	v := q.buf[q.head]
	q.head = (q.head + 1) % len(q.buf)
	q.size--
	return v, true
}

// bgFetcher pulls one tile row (8 pixels) into the FIFO.
type bgFetcher struct {
	mem           VRAMReader
	fifo          *fifo
	tileData8000  bool   // true: 0x8000 unsigned; false: 0x8800 signed around 0x9000
	tileIndexAddr uint16 // address of the tile number in the map
	fineY         byte
}

func newBGFetcher(mem VRAMReader, f *fifo) *bgFetcher { return &bgFetcher{mem: mem, fifo: f} }

// Configure sets addressing and the map entry for the next fetch.
func (fch *bgFetcher) Configure(tileData8000 bool, tileIndexAddr uint16, fineY byte) {
	fch.tileData8000 = tileData8000
	fch.tileIndexAddr = tileIndexAddr
	fch.fineY = fineY & 7
}

func (fch *bgFetcher) Fetch() {
	lo, hi := tileRow(fch.mem, fch.mem.Read(fch.tileIndexAddr), fch.tileData8000, fch.fineY)
	for px := 0; px < 8; px++ {
		_ = fch.fifo.Push(pixel(lo, hi, px))
	}
}

// tileRow returns the two bitplanes of row y of a tile.
func tileRow(mem VRAMReader, tile byte, data8000 bool, y byte) (lo, hi byte) {
	var base uint16
	if data8000 {
		base = 0x8000 + uint16(tile)*16
	} else {
		base = uint16(0x9000 + int(int8(tile))*16)
	}
	base += uint16(y&7) * 2
	return mem.Read(base), mem.Read(base + 1)
}

// pixel decodes column px (0 is leftmost) of a tile row.
func pixel(lo, hi byte, px int) byte {
	bit := 7 - byte(px)
	return ((hi>>bit)&1)<<1 | (lo>>bit)&1
}
