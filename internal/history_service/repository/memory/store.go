// Package memory holds export history in process memory. Used in tests
// and when no history file is configured.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/batiku-id/batiku/internal/history_service/domain"
)

type Store struct {
	mu    sync.RWMutex
	items []domain.Item
}

var _ domain.Store = (*Store)(nil)

func New() *Store {
	return &Store{}
}

func (s *Store) Save(_ context.Context, item domain.Item) (domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item.Timestamp.IsZero() {
		item.Timestamp = time.Now().UTC()
	}
	if item.ID == "" {
		item.ID = domain.NewItemID(item.Timestamp)
	}

	s.items = append([]domain.Item{item}, s.items...)
	if len(s.items) > domain.MaxItems {
		s.items = s.items[:domain.MaxItems]
	}
	return item, nil
}

func (s *Store) GetAll(_ context.Context) ([]domain.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Item, len(s.items))
	copy(out, s.items)
	return out, nil
}

func (s *Store) GetByID(_ context.Context, id string) (domain.Item, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range s.items {
		if item.ID == id {
			return item, true, nil
		}
	}
	return domain.Item{}, false, nil
}

func (s *Store) DeleteByID(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, item := range s.items {
		if item.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *Store) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	return nil
}

func (s *Store) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items), nil
}
