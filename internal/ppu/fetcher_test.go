package ppu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockVRAM map[uint16]byte

func (m mockVRAM) Read(addr uint16) byte { return m[addr] }

func TestFIFO(t *testing.T) {
	var q fifo
	assert.Zero(t, q.Len())
	_, ok := q.Pop()
	assert.False(t, ok, "pop from empty")

	for i := 0; i < 32; i++ {
		require.True(t, q.Push(byte(i)), "push %d", i)
	}
	assert.False(t, q.Push(0), "full")
	for i := 0; i < 32; i++ {
		v, ok := q.Pop()
		require.True(t, ok)
		assert.Equal(t, byte(i)&3, v, "only the 2-bit index is kept")
	}
	q.Push(1)
	q.Clear()
	assert.Zero(t, q.Len())
}

func TestPixelDecodesBitplanes(t *testing.T) {
	// lo=0x55 hi=0x33 walks every index 0..3 twice across the row.
	want := []byte{0, 1, 2, 3, 0, 1, 2, 3}
	for px, w := range want {
		assert.Equal(t, w, pixel(0x55, 0x33, px), "px %d", px)
	}
	assert.Equal(t, byte(3), pixel(0x80, 0x80, 0))
	assert.Equal(t, byte(0), pixel(0x80, 0x80, 1))
}

func TestTileRowAddressing(t *testing.T) {
	cases := []struct {
		name     string
		tile     byte
		data8000 bool
		y        byte
		addr     uint16
	}{
		{"unsigned tile 0", 0x00, true, 0, 0x8000},
		{"unsigned tile 2 row 3", 0x02, true, 3, 0x8026},
		{"unsigned tile 0xFF", 0xFF, true, 7, 0x8FFE},
		{"signed tile 0", 0x00, false, 0, 0x9000},
		{"signed tile 0x7F", 0x7F, false, 0, 0x97F0},
		{"signed tile -128", 0x80, false, 0, 0x8800},
		{"signed tile -1 row 5", 0xFF, false, 5, 0x8FFA},
		{"row wraps within the tile", 0x01, true, 9, 0x8012},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mem := mockVRAM{tc.addr: 0xA5, tc.addr + 1: 0x5A}
			lo, hi := tileRow(mem, tc.tile, tc.data8000, tc.y)
			assert.Equal(t, byte(0xA5), lo)
			assert.Equal(t, byte(0x5A), hi)
		})
	}
}

func TestBGFetcherPushesOneTileRow(t *testing.T) {
	cases := []struct {
		name     string
		data8000 bool
		tile     byte
		fineY    byte
		rowAddr  uint16
	}{
		{"8000 addressing", true, 0x00, 0, 0x8000},
		{"8800 addressing", false, 0xFF, 5, 0x8FFA},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mem := mockVRAM{0x9C00: tc.tile, tc.rowAddr: 0x55, tc.rowAddr + 1: 0x33}
			var q fifo
			f := newBGFetcher(mem, &q)
			f.Configure(tc.data8000, 0x9C00, tc.fineY)
			f.Fetch()
			require.Equal(t, 8, q.Len())
			for px := 0; px < 8; px++ {
				got, _ := q.Pop()
				assert.Equal(t, pixel(0x55, 0x33, px), got, "px %d", px)
			}
		})
	}
}
