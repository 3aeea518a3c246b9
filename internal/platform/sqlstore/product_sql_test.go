package sqlstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gallery_backend/internal/domain"
	"gallery_backend/internal/domain/entity"
)

func TestProductSQL_ListAvailable(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewProductRepository(gdb)
	ctx := context.Background()

	seedProduct(t, gdb, "p1", "Old", baseTime)
	seedProduct(t, gdb, "p2", "New", baseTime.Add(time.Hour))
	seedProduct(t, gdb, "p3", "Sold", baseTime.Add(2*time.Hour))
	require.NoError(t, gdb.Model(&productModel{}).Where("id = ?", "p3").Update("status", "sold").Error)

	got, err := repo.ListAvailable(ctx)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "p2", got[0].ID, "newest first")
	assert.Equal(t, "p1", got[1].ID)
}

func TestProductSQL_Update(t *testing.T) {
	t.Run("overwrites details and keeps status", func(t *testing.T) {
		gdb := setupTestDB(t)
		repo := NewProductRepository(gdb)
		ctx := context.Background()
		seedProduct(t, gdb, "p1", "Before", baseTime)

		err := repo.Update(ctx, "p1", entity.ProductDetails{Title: "After", Price: "R$ 5,00", Width: 1, Height: 2, ImageRef: "x"})
		require.NoError(t, err)

		got, err := repo.FindByID(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, "After", got.Title)
		assert.Equal(t, "R$ 5,00", got.Price)
		assert.Equal(t, entity.ProductAvailable, got.Status)
		assert.Equal(t, baseTime, got.CreatedAt)
	})

	t.Run("unknown product", func(t *testing.T) {
		gdb := setupTestDB(t)
		repo := NewProductRepository(gdb)

		err := repo.Update(context.Background(), "missing", entity.ProductDetails{Title: "x", Price: "1"})

		assert.ErrorIs(t, err, domain.ErrProductNotFound)
	})
}

func TestProductSQL_Delete(t *testing.T) {
	t.Run("cascades cart items and views", func(t *testing.T) {
		gdb := setupTestDB(t)
		repo := NewProductRepository(gdb)
		ctx := context.Background()
		seedUser(t, gdb, "u1", "a@example.com", baseTime)
		seedProduct(t, gdb, "p1", "Gone", baseTime)
		seedProduct(t, gdb, "p2", "Kept", baseTime)
		seedCartItem(t, gdb, "c1", "u1", "p1", baseTime)
		seedCartItem(t, gdb, "c2", "u1", "p2", baseTime)
		views := NewAnalyticsRepository(gdb)
		require.NoError(t, views.RecordView(ctx, &entity.ProductView{ID: "v1", ProductID: "p1", CreatedAt: baseTime}))

		require.NoError(t, repo.Delete(ctx, "p1"))

		_, err := repo.FindByID(ctx, "p1")
		assert.ErrorIs(t, err, domain.ErrProductNotFound)

		lines, err := NewCartRepository(gdb).ListByUser(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, "p2", lines[0].ProductID)

		var n int64
		require.NoError(t, gdb.Model(&productViewModel{}).Count(&n).Error)
		assert.Zero(t, n)
	})

	t.Run("unknown product", func(t *testing.T) {
		gdb := setupTestDB(t)

		err := NewProductRepository(gdb).Delete(context.Background(), "missing")

		assert.ErrorIs(t, err, domain.ErrProductNotFound)
	})
}
