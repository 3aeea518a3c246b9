package di

import (
	"time"

	"gallery_backend/internal/app/router"
	analyticshandler "gallery_backend/internal/feature/analytics/transport/handler"
	authhandler "gallery_backend/internal/feature/auth/transport/handler"
	backuphandler "gallery_backend/internal/feature/backup/transport/handler"
	carthandler "gallery_backend/internal/feature/cart/transport/handler"
	cataloghandler "gallery_backend/internal/feature/catalog/transport/handler"
	checkouthandler "gallery_backend/internal/feature/checkout/transport/handler"
	customorderhandler "gallery_backend/internal/feature/customorder/transport/handler"
	settingshandler "gallery_backend/internal/feature/settings/transport/handler"
)

// NewHandlers wraps every usecase in its HTTP handler.
func NewHandlers(u *Usecases) router.Handlers {
	return router.Handlers{
		Auth:        authhandler.NewAuthHandler(u.Auth),
		Catalog:     cataloghandler.NewCatalogHandler(u.Catalog),
		Cart:        carthandler.NewCartHandler(u.Cart),
		Checkout:    checkouthandler.NewCheckoutHandler(u.Checkout),
		CustomOrder: customorderhandler.NewCustomOrderHandler(u.CustomOrder),
		Analytics:   analyticshandler.NewAnalyticsHandler(u.Analytics),
		Settings:    settingshandler.NewSettingsHandler(u.Settings),
		Backup: backuphandler.NewBackupHandler(u.Backup, func() string {
			return time.Now().UTC().Format("20060102-150405")
		}),
	}
}
