package domain

import "time"

// Rapport sizes are the physical tile sizes offered for production, in
// centimeters, always rendered square at 300 DPI.
const (
	RapportCmSmall   = 20
	RapportCmDefault = 25

	// ExportDPI is the fixed print resolution of every export.
	ExportDPI = 300
)

// TargetPixels maps a rapport size to the square pixel dimension matching
// 300 DPI at that physical size. Unrecognized sizes fall back to the
// default rapport.
func TargetPixels(rapportCm int) int {
	if rapportCm == RapportCmSmall {
		return 2362
	}
	return 2953
}

// FitPolicy selects how the source image is reframed to the square target.
type FitPolicy string

const (
	// FitCover fills the target and crops overflow (Lanczos resampling).
	FitCover FitPolicy = "cover"
	// FitContain fits the image inside the target and pads the remainder
	// with white.
	FitContain FitPolicy = "contain"
)

// OutputFormat describes what the archive will eventually contain. Vector
// output is produced by a downstream job, not inline; the format tag is
// recorded in metadata either way.
type OutputFormat string

const (
	FormatPNG    OutputFormat = "PNG"
	FormatPNGSVG OutputFormat = "PNG+SVG"
)

// EditorSettings are the cosmetic display parameters chosen in the studio.
// They are validated at the API boundary and recorded in export metadata,
// but the primary pipeline does not apply them to the pixel buffer; they
// parameterize the deferred vectorization job.
type EditorSettings struct {
	Repeat    string `json:"repeat" validate:"omitempty,oneof=square half-drop"`
	Symmetry  string `json:"symmetry" validate:"omitempty,oneof=none 2 4 8"`
	Density   int    `json:"density" validate:"min=0,max=100"`
	Thickness int    `json:"thickness" validate:"min=0,max=10"`
}

// ExportRequest is the validated input to the export pipeline.
type ExportRequest struct {
	ImageURL string
	// InlineImageBase64, when set, supplies the source bytes directly and
	// the pipeline performs no network fetch.
	InlineImageBase64 string
	Settings          EditorSettings
	RapportCm         int
	Fit               FitPolicy
	Format            OutputFormat
	OwnerID           string
	DesignID          string
}

// ExportMetadata is embedded verbatim as metadata.json in the archive and
// echoed in the response. Immutable once constructed.
type ExportMetadata struct {
	SourceImage    string         `json:"sourceImage"`
	CreatedAt      time.Time      `json:"createdAt"`
	EditorSettings EditorSettings `json:"editorSettings"`
	RapportCm      int            `json:"rapport_cm"`
	Resolution     string         `json:"resolution"`
	DPI            int            `json:"dpi"`
	Format         OutputFormat   `json:"format"`
	Version        string         `json:"version"`
	OwnerID        string         `json:"ownerId,omitempty"`
	DesignID       string         `json:"designId,omitempty"`
}

// ExportResult is what the pipeline hands back on success.
type ExportResult struct {
	DownloadURL string
	ZipKey      string
	FileName    string
	FileSize    int64
	Metadata    ExportMetadata
}

// VectorizeJob is the message sent to the downstream vectorization queue.
// It carries the minimum a worker needs to trace the exported raster.
type VectorizeJob struct {
	ImageURL string         `json:"imageUrl"`
	ZipKey   string         `json:"zipKey"`
	BaseName string         `json:"baseName"`
	Settings EditorSettings `json:"settings"`
}
