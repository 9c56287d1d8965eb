// Package dds reads the fixed DDS container header and describes the
// block-compressed payload that follows it: format catalog, block grid
// geometry and the extents of each mip level.
package dds

import (
	"encoding/binary"
	"fmt"

	"github.com/pkg/errors"
)

const (
	// HeaderSize is the size of the magic and the legacy DDS header.
	HeaderSize = 128

	// Magic is the "DDS " file signature.
	Magic = 0x20534444

	offsetHeight      = 12
	offsetWidth       = 16
	offsetMipMapCount = 28
	offsetFourCC      = 84
)

// Header is the 128-byte DDS prefix. The raw bytes are kept verbatim and
// only a few fields are decoded from them.
type Header struct {
	raw [HeaderSize]byte

	Height      uint32
	Width       uint32
	MipMapCount uint32
	FourCC      string
}

// ParseHeader decodes the header at the start of data. data may contain the
// payload too, only the first HeaderSize bytes are read. The signature is not
// enforced, see HasMagic.
func ParseHeader(data []byte) (*Header, error) {
	if len(data) < HeaderSize {
		return nil, errors.Wrapf(ErrMalformedContainer, "file is %d bytes, header needs %d", len(data), HeaderSize)
	}

	h := &Header{
		Height:      binary.LittleEndian.Uint32(data[offsetHeight : offsetHeight+4]),
		Width:       binary.LittleEndian.Uint32(data[offsetWidth : offsetWidth+4]),
		MipMapCount: binary.LittleEndian.Uint32(data[offsetMipMapCount : offsetMipMapCount+4]),
		FourCC:      string(data[offsetFourCC : offsetFourCC+4]),
	}
	copy(h.raw[:], data[:HeaderSize])

	return h, nil
}

// Bytes returns a copy of the original header bytes.
func (h *Header) Bytes() []byte {
	b := make([]byte, HeaderSize)
	copy(b, h.raw[:])
	return b
}

// HasMagic reports whether the header starts with the "DDS " signature.
func (h *Header) HasMagic() bool {
	return binary.LittleEndian.Uint32(h.raw[0:4]) == Magic
}

// MipCount returns the number of mip levels described by the header.
// Values of 0 and 1, and negative counts written by some exporters, all
// mean a single level.
func (h *Header) MipCount() int {
	if int32(h.MipMapCount) <= 1 {
		return 1
	}
	return int(h.MipMapCount)
}

func (h *Header) String() string {
	return fmt.Sprintf("%dx%d %s, %d mips", h.Width, h.Height, h.FourCC, h.MipCount())
}
