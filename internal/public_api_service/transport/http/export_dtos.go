package http

import (
	exportdomain "github.com/batiku-id/batiku/internal/export_service/domain"
)

// ExportRequestDTO is the body of POST /api/export.
type ExportRequestDTO struct {
	ImageURL  string                      `json:"imageUrl"`
	Settings  exportdomain.EditorSettings `json:"settings"`
	RapportCm int                         `json:"rapportCm"`
	Fit       string                      `json:"fit" validate:"omitempty,oneof=cover contain"`
	Format    string                      `json:"format" validate:"omitempty,oneof=PNG PNG+SVG"`
	UserID    string                      `json:"userId"`
	DesignID  string                      `json:"designId"`
	// ProcessedImageBase64 supplies the source image inline (optionally as
	// a data URI); when present no network fetch happens.
	ProcessedImageBase64 string `json:"processedImageBase64"`
}

// ExportMetadataDTO is the metadata block echoed to the caller.
type ExportMetadataDTO struct {
	FileName   string `json:"fileName"`
	FileSize   int64  `json:"fileSize"`
	RapportCm  int    `json:"rapport_cm"`
	Resolution string `json:"resolution"`
	DPI        int    `json:"dpi"`
}

// ExportResponseDTO is the success body of POST /api/export.
type ExportResponseDTO struct {
	Success     bool              `json:"success"`
	DownloadURL string            `json:"downloadUrl"`
	ZipKey      string            `json:"zipKey"`
	Metadata    ExportMetadataDTO `json:"metadata"`
	Message     string            `json:"message"`
}

// ExportErrorResponseDTO is the failure body of POST /api/export.
type ExportErrorResponseDTO struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
