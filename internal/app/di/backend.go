// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	analyticsusecase "gallery_backend/internal/feature/analytics/usecase"
	authusecase "gallery_backend/internal/feature/auth/usecase"
	backupusecase "gallery_backend/internal/feature/backup/usecase"
	cartusecase "gallery_backend/internal/feature/cart/usecase"
	catalogusecase "gallery_backend/internal/feature/catalog/usecase"
	checkoutusecase "gallery_backend/internal/feature/checkout/usecase"
	customorderusecase "gallery_backend/internal/feature/customorder/usecase"
	settingsusecase "gallery_backend/internal/feature/settings/usecase"
	"gallery_backend/internal/platform/config"
	"gallery_backend/internal/platform/db"
	"gallery_backend/internal/platform/jsonstore"
	infraredis "gallery_backend/internal/platform/redis"
	"gallery_backend/internal/platform/sqlstore"
)

// Backend is one storage implementation seen through the repository
// interfaces the usecases consume. Nothing above this struct knows which
// implementation is active.
type Backend struct {
	Kind         config.Backend
	Users        authusecase.UserRepository
	Products     catalogusecase.ProductRepository
	Views        catalogusecase.ViewRecorder
	Cart         cartusecase.CartRepository
	Sales        checkoutusecase.SaleRepository
	CustomOrders customorderusecase.Repository
	Stats        analyticsusecase.StatsRepository
	Settings     settingsusecase.SettingRepository
	Dataset      backupusecase.DatasetRepository

	ping  func(ctx context.Context) error
	close func() error
}

// Ping reports whether the storage engine is reachable.
func (b *Backend) Ping(ctx context.Context) error {
	if b.ping == nil {
		return nil
	}
	return b.ping(ctx)
}

// Close releases the storage engine.
func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// NewSQLBackend initializes the schema on gdb and wraps it.
func NewSQLBackend(ctx context.Context, gdb *gorm.DB) (*Backend, error) {
	if err := sqlstore.Initialize(ctx, gdb); err != nil {
		return nil, err
	}
	return &Backend{
		Kind:         config.BackendSQL,
		Users:        sqlstore.NewUserRepository(gdb),
		Products:     sqlstore.NewProductRepository(gdb),
		Views:        sqlstore.NewAnalyticsRepository(gdb),
		Cart:         sqlstore.NewCartRepository(gdb),
		Sales:        sqlstore.NewSaleRepository(gdb),
		CustomOrders: sqlstore.NewCustomOrderRepository(gdb),
		Stats:        sqlstore.NewAnalyticsRepository(gdb),
		Settings:     sqlstore.NewSettingRepository(gdb),
		Dataset:      sqlstore.NewDatasetRepository(gdb),
		ping: func(ctx context.Context) error {
			sqlDB, err := gdb.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		close: func() error { return db.Close(gdb) },
	}, nil
}

// NewJSONBackend loads the document from blob and wraps the store.
func NewJSONBackend(ctx context.Context, blob jsonstore.Blob) (*Backend, error) {
	s := jsonstore.New(blob)
	if err := s.Initialize(ctx); err != nil {
		return nil, err
	}
	return &Backend{
		Kind:         config.BackendJSON,
		Users:        jsonstore.NewUserRepository(s),
		Products:     jsonstore.NewProductRepository(s),
		Views:        jsonstore.NewAnalyticsRepository(s),
		Cart:         jsonstore.NewCartRepository(s),
		Sales:        jsonstore.NewSaleRepository(s),
		CustomOrders: jsonstore.NewCustomOrderRepository(s),
		Stats:        jsonstore.NewAnalyticsRepository(s),
		Settings:     jsonstore.NewSettingRepository(s),
		Dataset:      jsonstore.NewDatasetRepository(s),
	}, nil
}

// OpenBackend selects the implementation from cfg. rdb may be nil unless
// the json backend is configured with the redis blob.
func OpenBackend(ctx context.Context, cfg config.Config, dbCfg db.Config, rdb *redis.Client) (*Backend, error) {
	switch cfg.ResolveBackend() {
	case config.BackendJSON:
		blob, err := newBlob(cfg, rdb)
		if err != nil {
			return nil, err
		}
		return NewJSONBackend(ctx, blob)
	default:
		gdb, err := db.Open(dbCfg)
		if err != nil {
			return nil, err
		}
		b, err := NewSQLBackend(ctx, gdb)
		if err != nil {
			_ = db.Close(gdb)
			return nil, fmt.Errorf("initialize schema: %w", err)
		}
		return b, nil
	}
}

func newBlob(cfg config.Config, rdb *redis.Client) (jsonstore.Blob, error) {
	switch cfg.JSONBlob {
	case config.BlobMemory:
		return &jsonstore.MemoryBlob{}, nil
	case config.BlobRedis:
		if rdb == nil {
			return nil, errors.New("JSON_BLOB=redis requires a reachable REDIS_HOST")
		}
		return infraredis.NewBlob(rdb, cfg.JSONBlobKey), nil
	default:
		return jsonstore.NewFileBlob(cfg.JSONBlobPath), nil
	}
}
