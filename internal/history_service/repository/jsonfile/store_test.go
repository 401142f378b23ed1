package jsonfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/batiku-id/batiku/internal/history_service/domain"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state", "history.json")
	store, err := New(path)
	require.NoError(t, err)
	return store, path
}

func TestMissingFileReadsAsEmpty(t *testing.T) {
	store, _ := newTestStore(t)

	items, err := store.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)

	count, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSavePersistsAcrossReopen(t *testing.T) {
	store, path := newTestStore(t)
	ctx := context.Background()

	saved, err := store.Save(ctx, domain.Item{
		ImageURL:    "https://example.com/tile.png",
		DownloadURL: "https://example.com/tile.zip",
		Status:      domain.StatusSuccess,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)

	reopened, err := New(path)
	require.NoError(t, err)
	items, err := reopened.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, saved.ID, items[0].ID)
	assert.Equal(t, domain.StatusSuccess, items[0].Status)
}

func TestSaveEvictsOldestBeyondCap(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	for i := 1; i <= domain.MaxItems+3; i++ {
		_, err := store.Save(ctx, domain.Item{ImageURL: fmt.Sprintf("https://example.com/%d.png", i)})
		require.NoError(t, err)
	}

	items, err := store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, items, domain.MaxItems)
	assert.Equal(t, fmt.Sprintf("https://example.com/%d.png", domain.MaxItems+3), items[0].ImageURL)
	assert.Equal(t, "https://example.com/4.png", items[len(items)-1].ImageURL)
}

func TestDeleteByID(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	first, err := store.Save(ctx, domain.Item{ImageURL: "https://example.com/a.png"})
	require.NoError(t, err)
	second, err := store.Save(ctx, domain.Item{ImageURL: "https://example.com/b.png"})
	require.NoError(t, err)

	require.NoError(t, store.DeleteByID(ctx, second.ID))

	_, ok, err := store.GetByID(ctx, second.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = store.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestClearRemovesFile(t *testing.T) {
	store, path := newTestStore(t)
	ctx := context.Background()

	_, err := store.Save(ctx, domain.Item{ImageURL: "https://example.com/a.png"})
	require.NoError(t, err)
	require.NoError(t, store.Clear(ctx))
	require.NoError(t, store.Clear(ctx), "clearing an already empty history is a no-op")

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	items, err := store.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}
