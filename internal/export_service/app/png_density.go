package app

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"math"
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// withDensity returns the PNG with a pHYs chunk declaring the given DPI on
// both axes. The chunk is spliced in directly after IHDR; an existing pHYs
// chunk is dropped. image/png has no API for physical dimensions, so the
// chunk is written by hand.
func withDensity(data []byte, dpi int) ([]byte, error) {
	if !bytes.HasPrefix(data, pngSignature) {
		return nil, errors.New("not a PNG stream")
	}

	// 300 DPI -> 11811 pixels per meter.
	ppm := uint32(math.Round(float64(dpi) / 0.0254))

	phys := make([]byte, 9)
	binary.BigEndian.PutUint32(phys[0:4], ppm)
	binary.BigEndian.PutUint32(phys[4:8], ppm)
	phys[8] = 1 // unit: meter

	chunk := make([]byte, 0, 21)
	chunk = binary.BigEndian.AppendUint32(chunk, 9)
	chunk = append(chunk, []byte("pHYs")...)
	chunk = append(chunk, phys...)
	chunk = binary.BigEndian.AppendUint32(chunk, crc32.ChecksumIEEE(chunk[4:]))

	out := make([]byte, 0, len(data)+len(chunk))
	out = append(out, pngSignature...)

	rest := data[len(pngSignature):]
	inserted := false
	for len(rest) > 0 {
		if len(rest) < 12 {
			return nil, errors.New("truncated PNG chunk")
		}
		length := binary.BigEndian.Uint32(rest[0:4])
		total := 12 + int(length)
		if len(rest) < total {
			return nil, errors.New("truncated PNG chunk")
		}
		ctype := string(rest[4:8])

		if ctype != "pHYs" {
			out = append(out, rest[:total]...)
		}
		if ctype == "IHDR" && !inserted {
			out = append(out, chunk...)
			inserted = true
		}
		rest = rest[total:]
	}
	if !inserted {
		return nil, fmt.Errorf("PNG stream has no IHDR chunk")
	}
	return out, nil
}
