package dds

import "fmt"

// Level is the extent of a single mip level inside the payload.
type Level struct {
	Index      int
	Width      uint32
	Height     uint32
	GridWidth  uint32
	GridHeight uint32
	Offset     int
	Size       int
}

func (l Level) String() string {
	return fmt.Sprintf("mip %d %dx%d (%dx%d blocks) @%d+%d", l.Index, l.Width, l.Height, l.GridWidth, l.GridHeight, l.Offset, l.Size)
}

// MipChain computes mip level extents one at a time, in payload order.
// Levels are contiguous and start at offset 0.
type MipChain struct {
	width      uint32
	height     uint32
	count      int
	blockSize  uint64
	payloadLen int

	index     int
	offset    int
	truncated bool
}

// NewMipChain returns a chain over a payload of payloadLen bytes.
func NewMipChain(h *Header, f Format, payloadLen int) *MipChain {
	return &MipChain{
		width:      h.Width,
		height:     h.Height,
		count:      h.MipCount(),
		blockSize:  uint64(f.BlockSize),
		payloadLen: payloadLen,
	}
}

// Next returns the next level. It returns false once every level has been
// returned or when the next level does not fit in the remaining payload.
func (c *MipChain) Next() (Level, bool) {
	if c.index >= c.count || c.truncated {
		return Level{}, false
	}

	l := Level{
		Index:  c.index,
		Width:  mipDim(c.width, c.index),
		Height: mipDim(c.height, c.index),
		Offset: c.offset,
	}
	l.GridWidth = BlockGridWidth(l.Width)
	l.GridHeight = BlockGridHeight(l.Height)

	size := uint64(l.GridWidth) * uint64(l.GridHeight) * c.blockSize
	if size > uint64(c.payloadLen-c.offset) {
		c.truncated = true
		return Level{}, false
	}
	l.Size = int(size)

	c.index++
	c.offset += l.Size
	return l, true
}

// Truncated reports whether the chain stopped because a level did not fit.
func (c *MipChain) Truncated() bool {
	return c.truncated
}

// Count returns the number of levels announced by the header.
func (c *MipChain) Count() int {
	return c.count
}

// Offset returns the end of the last level returned by Next.
func (c *MipChain) Offset() int {
	return c.offset
}

func mipDim(base uint32, level int) uint32 {
	if level >= 32 {
		return 1
	}
	return max(1, base>>level)
}
