package app

import (
	"archive/zip"
	"bytes"
	"compress/flate"
	"encoding/json"
	"fmt"
	"io"

	"github.com/batiku-id/batiku/internal/export_service/domain"
)

const readmeTemplate = `Batiku export package
=====================

Contents:
  %[1]s.png     - seamless batik tile, %[2]s at %[3]d DPI (lossless PNG)
  metadata.json - generation and export parameters

Rapport size: %[4]d x %[4]d cm

The SVG vector outline is traced in a separate processing step and is not
part of this package. The recorded editor settings below parameterize that
step only; the PNG tile is exported as generated.

  repeat:    %[5]s
  symmetry:  %[6]s
  density:   %[7]d
  thickness: %[8]d
`

// buildArchive assembles the in-memory ZIP: the processed tile, the
// pretty-printed metadata document and a human-readable README. Maximum
// deflate compression, no encryption.
func buildArchive(baseName string, img []byte, meta domain.ExportMetadata) ([]byte, error) {
	metaJSON, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling metadata: %w", err)
	}
	readme := fmt.Sprintf(readmeTemplate,
		baseName, meta.Resolution, meta.DPI, meta.RapportCm,
		meta.EditorSettings.Repeat, meta.EditorSettings.Symmetry,
		meta.EditorSettings.Density, meta.EditorSettings.Thickness)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestCompression)
	})

	addEntry := func(name string, body []byte) error {
		w, err := zw.Create(name)
		if err != nil {
			return fmt.Errorf("creating archive entry %s: %w", name, err)
		}
		if _, err := w.Write(body); err != nil {
			return fmt.Errorf("writing archive entry %s: %w", name, err)
		}
		return nil
	}

	if err := addEntry(baseName+".png", img); err != nil {
		return nil, err
	}
	if err := addEntry("metadata.json", metaJSON); err != nil {
		return nil, err
	}
	if err := addEntry("README.txt", []byte(readme)); err != nil {
		return nil, err
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalizing archive: %w", err)
	}
	return buf.Bytes(), nil
}
