package sqlstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gallery_backend/internal/domain/entity"
	"gallery_backend/internal/platform/db"
)

var baseTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// setupTestDB prepares an initialized in-memory SQLite database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := db.Open(db.Config{
		Driver:     db.DriverSQLite,
		SQLitePath: ":memory:",
		LogLevel:   logger.Silent,
	})
	require.NoError(t, err, "failed to open test database")
	t.Cleanup(func() { _ = db.Close(gdb) })

	require.NoError(t, Initialize(context.Background(), gdb), "failed to initialize schema")
	return gdb
}

func seedUser(t *testing.T, gdb *gorm.DB, id, email string, at time.Time) entity.User {
	t.Helper()
	u := entity.User{
		ID:           id,
		Name:         "User " + id,
		Email:        email,
		PasswordHash: "hash",
		Role:         entity.RoleUser,
		CreatedAt:    at,
	}
	require.NoError(t, NewUserRepository(gdb).Create(context.Background(), &u))
	return u
}

func seedProduct(t *testing.T, gdb *gorm.DB, id, title string, at time.Time) entity.Product {
	t.Helper()
	p := entity.Product{
		ID: id,
		ProductDetails: entity.ProductDetails{
			Title:    title,
			Price:    "R$ 100,00",
			Width:    40,
			Height:   60,
			ImageRef: "/uploads/" + id + ".jpg",
		},
		OwnerID:   "admin",
		Status:    entity.ProductAvailable,
		CreatedAt: at,
	}
	require.NoError(t, NewProductRepository(gdb).Create(context.Background(), &p))
	return p
}

func seedCartItem(t *testing.T, gdb *gorm.DB, id, userID, productID string, at time.Time) {
	t.Helper()
	item := entity.CartItem{ID: id, UserID: userID, ProductID: productID, Quantity: 1, CreatedAt: at}
	require.NoError(t, NewCartRepository(gdb).Add(context.Background(), &item))
}
