package router

import (
	"context"

	"github.com/gin-gonic/gin"

	analyticshandler "gallery_backend/internal/feature/analytics/transport/handler"
	authhandler "gallery_backend/internal/feature/auth/transport/handler"
	backuphandler "gallery_backend/internal/feature/backup/transport/handler"
	carthandler "gallery_backend/internal/feature/cart/transport/handler"
	cataloghandler "gallery_backend/internal/feature/catalog/transport/handler"
	checkouthandler "gallery_backend/internal/feature/checkout/transport/handler"
	customorderhandler "gallery_backend/internal/feature/customorder/transport/handler"
	settingshandler "gallery_backend/internal/feature/settings/transport/handler"
	"gallery_backend/internal/platform/http/handler"
	jwtmw "gallery_backend/internal/platform/jwt"
	"gallery_backend/internal/shared/ratelimiter"
)

// Handlers groups every feature handler the router mounts.
type Handlers struct {
	Auth        *authhandler.AuthHandler
	Catalog     *cataloghandler.CatalogHandler
	Cart        *carthandler.CartHandler
	Checkout    *checkouthandler.CheckoutHandler
	CustomOrder *customorderhandler.CustomOrderHandler
	Analytics   *analyticshandler.AnalyticsHandler
	Settings    *settingshandler.SettingsHandler
	Backup      *backuphandler.BackupHandler
}

// Options configures the cross-cutting parts of the router.
type Options struct {
	JWTSecret string
	// Ready backs /readyz.
	Ready func(ctx context.Context) error
	// AuthLimiter throttles /signup and /login per client. nil disables it.
	AuthLimiter ratelimiter.RateLimiterInterface
}

func NewRouter(h Handlers, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	ready := opts.Ready
	if ready == nil {
		ready = func(context.Context) error { return nil }
	}
	throttle := func(c *gin.Context) { c.Next() }
	if opts.AuthLimiter != nil {
		throttle = ratelimiter.Middleware(opts.AuthLimiter)
	}

	// public
	r.GET("/healthz", handler.Health)
	r.GET("/readyz", handler.Readiness(ready))
	r.POST("/signup", throttle, h.Auth.Signup)
	r.POST("/login", throttle, h.Auth.Login)
	r.GET("/email-exists", h.Auth.EmailExists)
	r.GET("/products", h.Catalog.List)
	// viewing a product records an analytics event, attributed when signed in
	r.GET("/products/:id", jwtmw.OptionalAuth(opts.JWTSecret), h.Catalog.Get)
	r.GET("/settings", h.Settings.List)
	r.GET("/settings/:key", h.Settings.Get)

	// signed-in users
	auth := r.Group("/")
	auth.Use(jwtmw.AuthRequired(opts.JWTSecret))
	{
		auth.GET("/cart", h.Cart.List)
		auth.POST("/cart", h.Cart.Add)
		auth.DELETE("/cart", h.Cart.Clear)
		auth.DELETE("/cart/:itemID", h.Cart.Remove)

		auth.POST("/checkout", h.Checkout.Checkout)
		auth.GET("/sales", h.Checkout.ListSales)

		auth.POST("/custom-orders", h.CustomOrder.Create)
		auth.GET("/custom-orders", h.CustomOrder.ListMine)
		auth.POST("/custom-orders/:id/refuse", h.CustomOrder.Refuse)
		auth.POST("/custom-orders/:id/pay", h.CustomOrder.Pay)
	}

	admin := r.Group("/admin")
	admin.Use(jwtmw.AuthRequired(opts.JWTSecret), jwtmw.AdminRequired())
	{
		admin.POST("/products", h.Catalog.Create)
		admin.PUT("/products/:id", h.Catalog.Update)
		admin.DELETE("/products/:id", h.Catalog.Delete)

		admin.GET("/custom-orders", h.CustomOrder.ListPending)
		admin.GET("/custom-orders/:id", h.CustomOrder.Get)
		admin.POST("/custom-orders/:id/quote", h.CustomOrder.Quote)
		admin.PUT("/custom-orders/:id/status", h.CustomOrder.SetStatus)

		admin.GET("/dashboard", h.Analytics.Dashboard)
		admin.PUT("/settings/:key", h.Settings.Set)
		admin.GET("/backup", h.Backup.Export)
		admin.POST("/backup", h.Backup.Import)
	}

	return r
}
