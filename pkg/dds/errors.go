package dds

import "github.com/pkg/errors"

var (
	// ErrUnsupportedFormat is returned when the FourCC of a container is
	// not part of the catalog or is explicitly excluded (DX10).
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrMalformedContainer is returned when the container is too short
	// or does not carry a DDS header.
	ErrMalformedContainer = errors.New("malformed container")
)
