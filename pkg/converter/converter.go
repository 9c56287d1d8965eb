// Package converter turns Xbox 360 DDS textures into standard DDS textures.
package converter

import (
	"github.com/cespare/xxhash/v2"
	"github.com/crazy-max/x360dds/pkg/dds"
	"github.com/crazy-max/x360dds/pkg/xenos"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// LinearMaxDim is the largest mip dimension, in pixels, stored linearly.
// Levels with a width or height at or below it are not untiled. This is an
// empirical threshold observed on shipped assets, not a documented GPU rule.
const LinearMaxDim = 64

// ErrInvalidFlagCombination is returned when both untiling and endian
// swapping are disabled.
var ErrInvalidFlagCombination = errors.New("both unswizzle and endian swap are disabled")

// Options holds conversion options
type Options struct {
	NoUntile     bool
	NoEndianSwap bool
	Logger       logrus.FieldLogger
}

// Validate checks that the options describe an actual transformation.
func (o Options) Validate() error {
	if o.NoUntile && o.NoEndianSwap {
		return ErrInvalidFlagCombination
	}
	return nil
}

// LevelResult describes how a mip level was converted.
type LevelResult struct {
	dds.Level
	Untiled bool
	Swapped bool
}

// Result holds a converted texture.
type Result struct {
	Header *dds.Header
	Format dds.Format
	Levels []LevelResult
	// Truncated is set when the payload ended before the last mip level
	// announced by the header.
	Truncated bool
	// InputHash and OutputHash are xxHash64 digests of the payloads.
	InputHash  uint64
	OutputHash uint64
	Output     []byte
}

// Convert converts a whole DDS file held in memory. The input is not
// modified and the returned Result owns its output buffer.
func Convert(input []byte, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	header, err := dds.ParseHeader(input)
	if err != nil {
		return nil, err
	}
	if !header.HasMagic() {
		logger.Warn("Missing DDS signature, converting anyway")
	}
	format, err := dds.LookupFormat(header.FourCC)
	if err != nil {
		return nil, err
	}
	if format.Experimental {
		logger.WithField("fourcc", format.FourCC).Warn("Format is untested, results may be incorrect")
	}

	payload := input[dds.HeaderSize:]
	res := &Result{
		Header:    header,
		Format:    format,
		InputHash: xxhash.Sum64(payload),
	}

	out := make([]byte, len(input))
	copy(out, header.Bytes())
	outPayload := out[dds.HeaderSize:]

	chain := dds.NewMipChain(header, format, len(payload))
	for {
		level, ok := chain.Next()
		if !ok {
			break
		}
		data, lres := convertLevel(payload[level.Offset:level.Offset+level.Size], level, format, opts)
		copy(outPayload[level.Offset:], data)
		res.Levels = append(res.Levels, lres)
		logger.WithFields(logrus.Fields{
			"level":   level.Index,
			"size":    level.Size,
			"untiled": lres.Untiled,
		}).Debugf("Converted %dx%d mip", level.Width, level.Height)
	}

	// bytes past the last converted level stay zeroed

	if chain.Truncated() {
		res.Truncated = true
		logger.WithFields(logrus.Fields{
			"levels":   len(res.Levels),
			"expected": chain.Count(),
		}).Warn("Payload ends before the last mip level")
	}

	res.OutputHash = xxhash.Sum64(outPayload)
	res.Output = out
	return res, nil
}

// convertLevel returns a new buffer holding the linear, little-endian
// version of a level.
func convertLevel(src []byte, level dds.Level, format dds.Format, opts Options) ([]byte, LevelResult) {
	lres := LevelResult{Level: level}

	var data []byte
	if isTiled(level, opts) {
		data = xenos.Untile(src, level.GridWidth, level.GridHeight, format.BlockSize)
		lres.Untiled = true
	} else {
		data = make([]byte, len(src))
		copy(data, src)
	}

	if !opts.NoEndianSwap {
		xenos.SwapEndian16(data)
		lres.Swapped = true
	}

	return data, lres
}

func isTiled(level dds.Level, opts Options) bool {
	if opts.NoUntile {
		return false
	}
	return level.Width > LinearMaxDim && level.Height > LinearMaxDim
}
