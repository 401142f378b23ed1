// Package jsonfile persists export history as a single JSON document, the
// server-side analog of the browser local-storage list it replaces.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/batiku-id/batiku/internal/history_service/domain"
)

type Store struct {
	mu   sync.Mutex
	path string
}

var _ domain.Store = (*Store)(nil)

// New creates the parent directory if needed. A missing file reads as an
// empty history.
func New(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}
	return &Store{path: path}, nil
}

func (s *Store) load() ([]domain.Item, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading history file: %w", err)
	}
	var items []domain.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parsing history file: %w", err)
	}
	return items, nil
}

func (s *Store) persist(items []domain.Item) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling history: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o640); err != nil {
		return fmt.Errorf("writing history file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing history file: %w", err)
	}
	return nil
}

func (s *Store) Save(_ context.Context, item domain.Item) (domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load()
	if err != nil {
		return domain.Item{}, err
	}

	if item.Timestamp.IsZero() {
		item.Timestamp = time.Now().UTC()
	}
	if item.ID == "" {
		item.ID = domain.NewItemID(item.Timestamp)
	}

	items = append([]domain.Item{item}, items...)
	if len(items) > domain.MaxItems {
		items = items[:domain.MaxItems]
	}
	if err := s.persist(items); err != nil {
		return domain.Item{}, err
	}
	return item, nil
}

func (s *Store) GetAll(_ context.Context) ([]domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) GetByID(_ context.Context, id string) (domain.Item, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.load()
	if err != nil {
		return domain.Item{}, false, err
	}
	for _, item := range items {
		if item.ID == id {
			return item, true, nil
		}
	}
	return domain.Item{}, false, nil
}

func (s *Store) DeleteByID(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.load()
	if err != nil {
		return err
	}
	for i, item := range items {
		if item.ID == id {
			return s.persist(append(items[:i], items[i+1:]...))
		}
	}
	return nil
}

func (s *Store) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clearing history file: %w", err)
	}
	return nil
}

func (s *Store) Count(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.load()
	if err != nil {
		return 0, err
	}
	return len(items), nil
}
