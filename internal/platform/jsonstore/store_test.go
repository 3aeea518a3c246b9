package jsonstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gallery_backend/internal/domain"
	"gallery_backend/internal/domain/entity"
)

var baseTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) (*Store, *MemoryBlob) {
	t.Helper()
	blob := &MemoryBlob{}
	s := New(blob)
	require.NoError(t, s.Initialize(context.Background()))
	return s, blob
}

func product(id string, at time.Time) entity.Product {
	return entity.Product{
		ID:             id,
		ProductDetails: entity.ProductDetails{Title: "Title " + id, Price: "R$ 10,00"},
		Status:         entity.ProductAvailable,
		CreatedAt:      at,
	}
}

func TestStore_NotInitialized(t *testing.T) {
	s := New(&MemoryBlob{})
	ctx := context.Background()

	_, err := NewProductRepository(s).ListAvailable(ctx)
	assert.ErrorIs(t, err, domain.ErrStoreNotInitialized)

	p := product("p1", baseTime)
	assert.ErrorIs(t, NewProductRepository(s).Create(ctx, &p), domain.ErrStoreNotInitialized)
}

func TestStore_Initialize(t *testing.T) {
	t.Run("empty blob gets every key and default settings", func(t *testing.T) {
		s, blob := newTestStore(t)

		settings, err := NewSettingRepository(s).List(context.Background())
		require.NoError(t, err)
		assert.ElementsMatch(t, entity.DefaultSettings(), settings)

		raw, err := blob.Load(context.Background())
		require.NoError(t, err)
		for _, key := range []string{`"users"`, `"products"`, `"cart"`, `"analytics"`, `"sales"`, `"custom_orders"`, `"app_settings"`} {
			assert.Contains(t, string(raw), key)
		}
	})

	t.Run("idempotent and keeps existing values", func(t *testing.T) {
		s, blob := newTestStore(t)
		ctx := context.Background()
		require.NoError(t, NewSettingRepository(s).Set(ctx, entity.SettingHeroTitle, "Custom"))

		again := New(blob)
		require.NoError(t, again.Initialize(ctx))
		require.NoError(t, again.Initialize(ctx))

		got, err := NewSettingRepository(again).Get(ctx, entity.SettingHeroTitle)
		require.NoError(t, err)
		assert.Equal(t, "Custom", got)
		all, err := NewSettingRepository(again).List(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("corrupt document", func(t *testing.T) {
		blob := &MemoryBlob{}
		require.NoError(t, blob.Save(context.Background(), []byte("{not json")))

		err := New(blob).Initialize(context.Background())

		assert.Error(t, err)
	})
}

func TestStore_FailedSaveKeepsPreviousState(t *testing.T) {
	s, blob := newTestStore(t)
	ctx := context.Background()
	repo := NewProductRepository(s)
	p := product("p1", baseTime)
	require.NoError(t, repo.Create(ctx, &p))

	blob.SaveErr = errors.New("disk full")
	assert.Error(t, repo.Delete(ctx, "p1"))
	blob.SaveErr = nil

	got, err := repo.FindByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", got.ID)
}

func TestFileBlob(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "db.json")
	blob := NewFileBlob(path)

	raw, err := blob.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, raw, "missing file reads as empty")

	s := New(blob)
	require.NoError(t, s.Initialize(ctx))
	p := product("p1", baseTime)
	require.NoError(t, NewProductRepository(s).Create(ctx, &p))

	reloaded := New(NewFileBlob(path))
	require.NoError(t, reloaded.Initialize(ctx))
	got, err := NewProductRepository(reloaded).FindByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, p, *got)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files are left behind")
}
