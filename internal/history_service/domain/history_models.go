// Package domain defines the export-history record and its storage port.
// History is an audit trail of export attempts; it has no consistency
// relationship with the archives' continued existence in object storage.
package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	exportdomain "github.com/batiku-id/batiku/internal/export_service/domain"
)

// MaxItems caps the history list; saving beyond it evicts the oldest
// entries.
const MaxItems = 20

type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// Item is one recorded export attempt. Failed attempts carry an empty
// download URL and zero file size.
type Item struct {
	ID             string                      `json:"id"`
	ImageURL       string                      `json:"imageUrl"`
	DownloadURL    string                      `json:"downloadUrl"`
	FileName       string                      `json:"fileName"`
	FileSize       int64                       `json:"fileSize"`
	RapportCm      int                         `json:"rapportCm"`
	Format         exportdomain.OutputFormat   `json:"format"`
	EditorSettings exportdomain.EditorSettings `json:"editorSettings"`
	Timestamp      time.Time                   `json:"timestamp"`
	Status         Status                      `json:"status"`
}

// NewItemID builds a history entry ID from the creation time plus a random
// suffix.
func NewItemID(now time.Time) string {
	return fmt.Sprintf("export-%d-%s", now.UnixMilli(), uuid.NewString()[:8])
}

// Store is the history storage port. Implementations keep the list
// most-recent-first and bounded at MaxItems.
type Store interface {
	// Save assigns an ID and timestamp when absent, prepends the item and
	// enforces the cap. The stored item is returned.
	Save(ctx context.Context, item Item) (Item, error)
	GetAll(ctx context.Context) ([]Item, error)
	GetByID(ctx context.Context, id string) (Item, bool, error)
	DeleteByID(ctx context.Context, id string) error
	Clear(ctx context.Context) error
	Count(ctx context.Context) (int, error)
}
