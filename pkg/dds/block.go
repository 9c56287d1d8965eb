package dds

// BlockDim is the edge length in texels of a compressed block.
const BlockDim = 4

// BlockGridWidth returns the number of block columns for a pixel width.
func BlockGridWidth(width uint32) uint32 {
	return uint32((uint64(width) + BlockDim - 1) / BlockDim)
}

// BlockGridHeight returns the number of block rows for a pixel height.
func BlockGridHeight(height uint32) uint32 {
	return uint32((uint64(height) + BlockDim - 1) / BlockDim)
}
