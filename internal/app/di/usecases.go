package di

import (
	"github.com/redis/go-redis/v9"

	analyticsusecase "gallery_backend/internal/feature/analytics/usecase"
	authusecase "gallery_backend/internal/feature/auth/usecase"
	backupusecase "gallery_backend/internal/feature/backup/usecase"
	cartusecase "gallery_backend/internal/feature/cart/usecase"
	catalogusecase "gallery_backend/internal/feature/catalog/usecase"
	checkoutusecase "gallery_backend/internal/feature/checkout/usecase"
	customorderusecase "gallery_backend/internal/feature/customorder/usecase"
	settingsusecase "gallery_backend/internal/feature/settings/usecase"
	"gallery_backend/internal/platform/cache"
	"gallery_backend/internal/platform/config"
	"gallery_backend/internal/platform/ident"
	jwtmw "gallery_backend/internal/platform/jwt"
)

// Usecases holds every application service built on one Backend.
type Usecases struct {
	Auth        *authusecase.AuthUsecase
	Catalog     *catalogusecase.CatalogUsecase
	Cart        *cartusecase.CartUsecase
	Checkout    *checkoutusecase.CheckoutUsecase
	CustomOrder *customorderusecase.CustomOrderUsecase
	Analytics   *analyticsusecase.AnalyticsUsecase
	Settings    *settingsusecase.SettingsUsecase
	Backup      *backupusecase.BackupUsecase
}

// NewUsecases wires b into the usecases. With a nil rdb the catalog cache is bypassed.
func NewUsecases(b *Backend, rdb *redis.Client, cfg config.Config) *Usecases {
	return newUsecases(b, rdb, cfg, ident.UUIDGenerator{}, ident.SystemClock{})
}

func newUsecases(b *Backend, rdb *redis.Client, cfg config.Config, ids ident.Generator, clock ident.Clock) *Usecases {
	products := cache.NewCachingProductRepository(rdb, cfg.CatalogTTL, b.Products, "catalog")
	tokens := jwtmw.NewGenerator(cfg.JWTSecret, cfg.JWTExpiration)
	admin := authusecase.AdminRule{Emails: cfg.AdminEmails, Marker: cfg.AdminMarker}

	return &Usecases{
		Auth:        authusecase.NewAuthUsecase(b.Users, tokens, ids, clock, admin),
		Catalog:     catalogusecase.NewCatalogUsecase(products, b.Views, ids, clock),
		Cart:        cartusecase.NewCartUsecase(b.Cart, products, ids, clock),
		Checkout:    checkoutusecase.NewCheckoutUsecase(b.Sales, b.Cart, products, ids, clock),
		CustomOrder: customorderusecase.NewCustomOrderUsecase(b.CustomOrders, ids, clock),
		Analytics:   analyticsusecase.NewAnalyticsUsecase(b.Stats),
		Settings:    settingsusecase.NewSettingsUsecase(b.Settings),
		Backup:      backupusecase.NewBackupUsecase(b.Dataset, products),
	}
}
