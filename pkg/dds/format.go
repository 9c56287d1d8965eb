package dds

import (
	"math/bits"
	"strings"

	"github.com/pkg/errors"
)

// Format describes a block-compressed pixel format.
type Format struct {
	FourCC    string
	BlockSize uint32
	// Experimental formats are converted like the others but their tiled
	// layout has not been verified against real assets.
	Experimental bool
}

// BlockSizeLog2 returns log2 of the block size in bytes.
func (f Format) BlockSizeLog2() uint32 {
	return uint32(bits.TrailingZeros32(f.BlockSize))
}

// fourCCDX10 marks the extended header variant.
const fourCCDX10 = "DX10"

var formats = []Format{
	{FourCC: "DXT1", BlockSize: 8},
	{FourCC: "DXT3", BlockSize: 16},
	{FourCC: "DXT5", BlockSize: 16},
	{FourCC: "ATI2", BlockSize: 16},
	{FourCC: "BC4U", BlockSize: 8},
	{FourCC: "BC4S", BlockSize: 8},
	{FourCC: "BC5U", BlockSize: 16},
	{FourCC: "BC5S", BlockSize: 16},
	{FourCC: "RXGB", BlockSize: 16, Experimental: true},
	{FourCC: "UYVY", BlockSize: 16, Experimental: true},
	{FourCC: "YUY2", BlockSize: 16, Experimental: true},
	{FourCC: "A2XY", BlockSize: 16, Experimental: true},
}

// SupportedFourCCs returns the FourCC of every format in the catalog.
func SupportedFourCCs() []string {
	tags := make([]string, 0, len(formats))
	for _, f := range formats {
		tags = append(tags, f.FourCC)
	}
	return tags
}

// LookupFormat returns the catalog entry for fourCC.
func LookupFormat(fourCC string) (Format, error) {
	if fourCC == fourCCDX10 {
		return Format{}, errors.Wrap(ErrUnsupportedFormat, "DX10 extended header is not supported")
	}
	for _, f := range formats {
		if f.FourCC == fourCC {
			return f, nil
		}
	}
	return Format{}, errors.Wrapf(ErrUnsupportedFormat, "fourcc %q (supported: %s)", fourCC, strings.Join(SupportedFourCCs(), ", "))
}
