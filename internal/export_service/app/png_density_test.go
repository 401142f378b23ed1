package app

import (
	"bytes"
	"encoding/binary"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// findChunk returns the data of the first chunk with the given type.
func findChunk(t *testing.T, data []byte, ctype string) ([]byte, bool) {
	t.Helper()
	rest := data[len(pngSignature):]
	for len(rest) >= 12 {
		length := binary.BigEndian.Uint32(rest[0:4])
		if string(rest[4:8]) == ctype {
			return rest[8 : 8+length], true
		}
		rest = rest[12+int(length):]
	}
	return nil, false
}

func TestWithDensityWritesPhysChunk(t *testing.T) {
	src := encodePNG(t, solidImage(8, 8, color.White))

	out, err := withDensity(src, 300)
	require.NoError(t, err)

	phys, ok := findChunk(t, out, "pHYs")
	require.True(t, ok, "pHYs chunk missing")
	require.Len(t, phys, 9)

	// 300 DPI is 11811 pixels per meter.
	assert.Equal(t, uint32(11811), binary.BigEndian.Uint32(phys[0:4]))
	assert.Equal(t, uint32(11811), binary.BigEndian.Uint32(phys[4:8]))
	assert.Equal(t, byte(1), phys[8])

	// The stream must still decode.
	decoded, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 8, decoded.Bounds().Dx())
}

func TestWithDensityReplacesExistingChunk(t *testing.T) {
	src := encodePNG(t, solidImage(8, 8, color.White))

	once, err := withDensity(src, 72)
	require.NoError(t, err)
	twice, err := withDensity(once, 300)
	require.NoError(t, err)

	count := 0
	rest := twice[len(pngSignature):]
	for len(rest) >= 12 {
		length := binary.BigEndian.Uint32(rest[0:4])
		if string(rest[4:8]) == "pHYs" {
			count++
		}
		rest = rest[12+int(length):]
	}
	assert.Equal(t, 1, count, "exactly one pHYs chunk expected")

	phys, _ := findChunk(t, twice, "pHYs")
	assert.Equal(t, uint32(11811), binary.BigEndian.Uint32(phys[0:4]))
}

func TestWithDensityRejectsNonPNG(t *testing.T) {
	_, err := withDensity([]byte("JFIF..."), 300)
	assert.Error(t, err)
}
