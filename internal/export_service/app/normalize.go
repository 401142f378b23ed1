package app

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/disintegration/imaging"

	"github.com/batiku-id/batiku/internal/export_service/domain"
)

// normalize reframes the source bytes to a targetPx square PNG tagged at
// 300 DPI. Cover fills the target and crops overflow; contain scales the
// whole image into the target and pads with white. Both use Lanczos
// resampling.
func normalize(src []byte, targetPx int, fit domain.FitPolicy) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDecodeImage, err)
	}

	var out *image.NRGBA
	switch fit {
	case domain.FitContain:
		out = containOnWhite(img, targetPx)
	default:
		out = imaging.Fill(img, targetPx, targetPx, imaging.Center, imaging.Lanczos)
	}

	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, out); err != nil {
		return nil, fmt.Errorf("encoding PNG: %w", err)
	}

	tagged, err := withDensity(buf.Bytes(), domain.ExportDPI)
	if err != nil {
		return nil, fmt.Errorf("tagging PNG density: %w", err)
	}
	return tagged, nil
}

// containOnWhite scales img (up or down) to fit inside a targetPx square
// and centers it on a white canvas.
func containOnWhite(img image.Image, targetPx int) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	dstW, dstH := targetPx, targetPx
	if w > h {
		dstH = h * targetPx / w
	} else if h > w {
		dstW = w * targetPx / h
	}
	scaled := imaging.Resize(img, dstW, dstH, imaging.Lanczos)

	canvas := imaging.New(targetPx, targetPx, color.White)
	return imaging.PasteCenter(canvas, scaled)
}
