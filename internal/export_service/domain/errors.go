package domain

import "errors"

var (
	// ErrSourceFetch marks failures retrieving the source image, so the
	// transport layer can distinguish upstream-fetch errors from internal
	// ones.
	ErrSourceFetch = errors.New("source image fetch failed")

	// ErrDecodeImage marks source bytes that are not a decodable raster.
	ErrDecodeImage = errors.New("source image is not decodable")
)
