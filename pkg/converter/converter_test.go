package converter

import (
	"encoding/binary"
	"testing"

	"github.com/crazy-max/x360dds/pkg/dds"
	"github.com/crazy-max/x360dds/pkg/xenos"
	"github.com/opencontainers/go-digest"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTexture(width, height, mips uint32, fourCC string, payload []byte) []byte {
	b := make([]byte, dds.HeaderSize, dds.HeaderSize+len(payload))
	binary.LittleEndian.PutUint32(b[0:], dds.Magic)
	binary.LittleEndian.PutUint32(b[4:], 124)
	binary.LittleEndian.PutUint32(b[8:], 0x000A1007)
	binary.LittleEndian.PutUint32(b[12:], height)
	binary.LittleEndian.PutUint32(b[16:], width)
	binary.LittleEndian.PutUint32(b[28:], mips)
	binary.LittleEndian.PutUint32(b[76:], 32)
	binary.LittleEndian.PutUint32(b[80:], 0x4)
	copy(b[84:], fourCC)
	binary.LittleEndian.PutUint32(b[108:], 0x401008)
	return append(b, payload...)
}

func pattern(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i*31 + i>>9)
	}
	return b
}

func swapped(b []byte) []byte {
	s := append([]byte(nil), b...)
	xenos.SwapEndian16(s)
	return s
}

func nullLogger() logrus.FieldLogger {
	l, _ := logrustest.NewNullLogger()
	return l
}

func TestConvertGolden(t *testing.T) {
	// 256x256 DXT5 is a single 64x64 block tiled level
	input := testTexture(256, 256, 1, "DXT5", pattern(64*64*16))

	res, err := Convert(input, Options{Logger: nullLogger()})
	require.NoError(t, err)
	require.Len(t, res.Output, len(input))

	payload := res.Output[dds.HeaderSize:]
	assert.Equal(t, "dc89b1080e54d6d6350abcd57a7f319fcd01770e3e18ff93553e98146bc1f912", digest.FromBytes(payload).Encoded())
	assert.Equal(t, []byte{31, 0, 93, 62, 155, 124, 217, 186, 23, 248, 85, 54, 147, 116, 209, 178}, payload[0:16])
	assert.Equal(t, []byte{255, 224, 61, 30, 123, 92, 185, 154, 247, 216, 53, 22, 115, 84, 177, 146}, payload[16:32])
	assert.Equal(t, []byte{15, 240, 77, 46, 139, 108, 201, 170, 7, 232, 69, 38, 131, 100, 193, 162}, payload[64*16:64*16+16])

	// swapping back recovers the untiled big-endian words
	assert.Equal(t, "ea861a8f4af3599cb6155701105025b57bb902eb6162ad2d7c39aa052ee1b8eb", digest.FromBytes(swapped(payload)).Encoded())

	require.Len(t, res.Levels, 1)
	assert.True(t, res.Levels[0].Untiled)
	assert.True(t, res.Levels[0].Swapped)
	assert.False(t, res.Truncated)
	assert.Equal(t, "DXT5", res.Format.FourCC)
}

func TestConvertFlags(t *testing.T) {
	input := testTexture(256, 256, 1, "DXT5", pattern(64*64*16))

	testCases := []struct {
		desc     string
		opts     Options
		expected string
		untiled  bool
		swapped  bool
	}{
		{
			desc:     "untile and swap",
			opts:     Options{},
			expected: "dc89b1080e54d6d6350abcd57a7f319fcd01770e3e18ff93553e98146bc1f912",
			untiled:  true,
			swapped:  true,
		},
		{
			desc:     "untile only",
			opts:     Options{NoEndianSwap: true},
			expected: "ea861a8f4af3599cb6155701105025b57bb902eb6162ad2d7c39aa052ee1b8eb",
			untiled:  true,
		},
		{
			desc:     "swap only",
			opts:     Options{NoUntile: true},
			expected: "a62cc17654042ba01cc862b8e300dabac37d27fdcbfedddfe1a80fda5b5da637",
			swapped:  true,
		},
	}
	for _, tt := range testCases {
		t.Run(tt.desc, func(t *testing.T) {
			tt.opts.Logger = nullLogger()
			res, err := Convert(input, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, digest.FromBytes(res.Output[dds.HeaderSize:]).Encoded())
			require.Len(t, res.Levels, 1)
			assert.Equal(t, tt.untiled, res.Levels[0].Untiled)
			assert.Equal(t, tt.swapped, res.Levels[0].Swapped)
		})
	}
}

func TestConvertInvalidFlagCombination(t *testing.T) {
	input := testTexture(256, 256, 1, "DXT5", pattern(64*64*16))
	opts := Options{NoUntile: true, NoEndianSwap: true}

	assert.ErrorIs(t, opts.Validate(), ErrInvalidFlagCombination)

	res, err := Convert(input, opts)
	assert.Nil(t, res)
	assert.True(t, errors.Is(err, ErrInvalidFlagCombination))
}

func TestConvertUnsupportedFormat(t *testing.T) {
	testCases := []struct {
		fourCC   string
		contains []string
	}{
		{"DX10", []string{"DX10"}},
		{"ZZZZ", dds.SupportedFourCCs()},
	}
	for _, tt := range testCases {
		t.Run(tt.fourCC, func(t *testing.T) {
			res, err := Convert(testTexture(64, 64, 1, tt.fourCC, pattern(1024)), Options{Logger: nullLogger()})
			assert.Nil(t, res)
			require.Error(t, err)
			assert.True(t, errors.Is(err, dds.ErrUnsupportedFormat))
			for _, s := range tt.contains {
				assert.Contains(t, err.Error(), s)
			}
		})
	}
}

func TestConvertMalformed(t *testing.T) {
	_, err := Convert(make([]byte, 64), Options{Logger: nullLogger()})
	assert.True(t, errors.Is(err, dds.ErrMalformedContainer))
}

func TestConvertMipChain(t *testing.T) {
	// 65536 + 16384 + 4096 + 1024 + 256 + 64 + 3*16
	const size = 87408
	input := testTexture(256, 256, 9, "DXT5", pattern(size))

	res, err := Convert(input, Options{Logger: nullLogger()})
	require.NoError(t, err)
	require.Len(t, res.Levels, 9)
	assert.False(t, res.Truncated)

	// header and length are preserved
	assert.Equal(t, input[:dds.HeaderSize], res.Output[:dds.HeaderSize])
	assert.Len(t, res.Output, len(input))

	inPayload := input[dds.HeaderSize:]
	outPayload := res.Output[dds.HeaderSize:]
	for _, l := range res.Levels {
		assert.Equal(t, l.Width > LinearMaxDim, l.Untiled, "level %d", l.Index)
		assert.True(t, l.Swapped)
		src := inPayload[l.Offset : l.Offset+l.Size]
		dst := outPayload[l.Offset : l.Offset+l.Size]
		if !l.Untiled {
			// small levels are stored linear
			assert.Equal(t, swapped(src), dst, "level %d", l.Index)
			continue
		}
		expected := swapped(xenos.Untile(src, l.GridWidth, l.GridHeight, 16))
		assert.Equal(t, expected, dst, "level %d", l.Index)
	}
	assert.Equal(t, 64, int(res.Levels[2].Width))
	assert.False(t, res.Levels[2].Untiled)
}

func TestConvertNarrowLevelIsLinear(t *testing.T) {
	// 512x64: tall enough is not enough, both sides must exceed the threshold
	payload := pattern(128 * 16 * 16)
	res, err := Convert(testTexture(512, 64, 1, "DXT3", payload), Options{Logger: nullLogger()})
	require.NoError(t, err)
	require.Len(t, res.Levels, 1)
	assert.False(t, res.Levels[0].Untiled)
	assert.Equal(t, swapped(payload), res.Output[dds.HeaderSize:])
}

func TestConvertTruncated(t *testing.T) {
	payload := pattern(65536 + 100)
	input := testTexture(256, 256, 9, "DXT5", payload)

	res, err := Convert(input, Options{Logger: nullLogger()})
	require.NoError(t, err)
	assert.True(t, res.Truncated)
	require.Len(t, res.Levels, 1)
	assert.Len(t, res.Output, len(input))

	out := res.Output[dds.HeaderSize:]
	assert.Equal(t, "dc89b1080e54d6d6350abcd57a7f319fcd01770e3e18ff93553e98146bc1f912", digest.FromBytes(out[:65536]).Encoded())
	assert.Equal(t, make([]byte, 100), out[65536:])
}

func TestConvertTrailingPadding(t *testing.T) {
	payload := pattern(2048 + 8)
	res, err := Convert(testTexture(64, 64, 1, "DXT1", payload), Options{Logger: nullLogger()})
	require.NoError(t, err)
	assert.False(t, res.Truncated)
	require.Len(t, res.Levels, 1)

	out := res.Output[dds.HeaderSize:]
	assert.Equal(t, swapped(payload[:2048]), out[:2048])
	assert.Equal(t, make([]byte, 8), out[2048:])
}

func TestConvertHeaderOnly(t *testing.T) {
	input := testTexture(64, 64, 1, "DXT1", nil)
	res, err := Convert(input, Options{Logger: nullLogger()})
	require.NoError(t, err)
	assert.Empty(t, res.Levels)
	assert.True(t, res.Truncated)
	assert.Equal(t, input, res.Output)
}

func TestConvertDeterministic(t *testing.T) {
	input := testTexture(256, 256, 9, "BC5U", pattern(87408))
	orig := append([]byte(nil), input...)

	a, err := Convert(input, Options{Logger: nullLogger()})
	require.NoError(t, err)
	b, err := Convert(input, Options{Logger: nullLogger()})
	require.NoError(t, err)

	assert.Equal(t, a.Output, b.Output)
	assert.Equal(t, a.OutputHash, b.OutputHash)
	assert.Equal(t, a.InputHash, b.InputHash)
	assert.NotEqual(t, a.InputHash, a.OutputHash)
	// input is left untouched
	assert.Equal(t, orig, input)
}

func TestConvertExperimentalWarns(t *testing.T) {
	logger, hook := logrustest.NewNullLogger()
	res, err := Convert(testTexture(64, 64, 1, "RXGB", pattern(16*16*16)), Options{Logger: logger})
	require.NoError(t, err)
	assert.True(t, res.Format.Experimental)

	var warned bool
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel && e.Data["fourcc"] == "RXGB" {
			warned = true
		}
	}
	assert.True(t, warned)
}

func TestConvertNoMagic(t *testing.T) {
	input := testTexture(64, 64, 1, "DXT1", pattern(2048))
	copy(input, "XDDS")

	logger, hook := logrustest.NewNullLogger()
	res, err := Convert(input, Options{Logger: logger})
	require.NoError(t, err)
	assert.Equal(t, input[:dds.HeaderSize], res.Output[:dds.HeaderSize])
	assert.Equal(t, swapped(pattern(2048)), res.Output[dds.HeaderSize:])

	require.NotEmpty(t, hook.Entries)
	assert.Equal(t, logrus.WarnLevel, hook.Entries[0].Level)
	assert.Contains(t, hook.Entries[0].Message, "DDS signature")
}
