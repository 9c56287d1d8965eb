// Package xenos implements the memory layout conversions needed to read
// textures written for the Xbox 360 GPU: 2D macro/micro tile addressing and
// the 16-bit big-endian word order of its texture fetches.
package xenos

// TilePitchAlign is the block alignment of a tiled surface row.
const TilePitchAlign = 32

// TiledOffset2D returns the byte offset, in a tiled surface, of the block at
// (x, y). pitch is the width of the surface in blocks and log2Bpb is log2 of
// the block size in bytes.
//
// The sequence of shifts and masks reproduces the hardware address
// computation and must not be reordered.
func TiledOffset2D(x, y, pitch, log2Bpb uint32) uint32 {
	pitch = alignUp(pitch, TilePitchAlign)

	// index of the 32x32 block macro tile
	macro := ((x >> 5) + (y>>5)*(pitch>>5)) << (log2Bpb + 7)

	// low x bits and even row bits inside the macro tile
	micro := ((x & 7) + ((y & 0xE) << 2)) << log2Bpb

	// odd rows are interleaved 16 bytes apart
	parity := (y & 1) << 4
	offset := macro + ((micro &^ 0xF) << 1) + (micro & 0xF) + parity

	bank := (y & 16) << 7
	pipe := ((((y & 8) >> 2) + (x >> 3)) & 3) << 6

	return ((offset &^ 0x1FF) << 3) + bank + ((offset & 0x1C0) << 2) + pipe + (offset & 0x3F)
}

// Untile gathers the blocks of a tiled level into a new linear buffer of the
// same length. Blocks whose tiled or linear extent falls outside the buffer
// are left zeroed.
func Untile(tiled []byte, gridWidth, gridHeight, blockSize uint32) []byte {
	linear := make([]byte, len(tiled))
	log2Bpb := log2(blockSize)
	n := uint64(len(tiled))
	bs := uint64(blockSize)

	for y := uint32(0); y < gridHeight; y++ {
		for x := uint32(0); x < gridWidth; x++ {
			src := uint64(TiledOffset2D(x, y, gridWidth, log2Bpb))
			dst := (uint64(y)*uint64(gridWidth) + uint64(x)) * bs
			if src+bs > n || dst+bs > n {
				continue
			}
			copy(linear[dst:dst+bs], tiled[src:src+bs])
		}
	}

	return linear
}

func alignUp(v, align uint32) uint32 {
	return (v + align - 1) / align * align
}

func log2(v uint32) uint32 {
	var n uint32
	for v > 1 {
		v >>= 1
		n++
	}
	return n
}
