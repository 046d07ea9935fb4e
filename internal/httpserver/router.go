package httpserver

import (
	"errors"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"jericho-storefront/internal/catalog"
	"jericho-storefront/internal/metrics"
	"jericho-storefront/internal/service/admin"
	"jericho-storefront/internal/service/storefront"
	"jericho-storefront/internal/settings"
)

// Deps are the services the routes are served from. Admin may be nil, in
// which case the console routes are not mounted.
type Deps struct {
	Catalog  *catalog.Store
	Settings *settings.Store
	Sessions *storefront.Registry
	Admin    *admin.Service

	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	if deps.Catalog == nil || deps.Sessions == nil {
		return nil, errors.New("httpserver: catalog and session registry are required")
	}
	if deps.Settings == nil {
		deps.Settings = settings.New(settings.Seed{})
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.New(corsConfig(deps.AllowedOrigins)))
	router.Use(metrics.Middleware())

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := router.Group("/api")
	if deps.RateLimitRPS > 0 {
		api.Use(newRateLimiter(deps.RateLimitRPS, deps.RateLimitBurst, logger).middleware())
	}

	api.GET("/catalog/products", listProductsHandler(deps.Catalog))
	api.GET("/catalog/products/:productId", getProductHandler(deps.Catalog))
	api.GET("/catalog/categories", listCategoriesHandler(deps.Catalog))
	api.GET("/catalog/promotions", listPromotionsHandler(deps.Catalog))
	api.GET("/checkout/options", checkoutOptionsHandler(deps.Settings))

	api.POST("/sessions", createSessionHandler(deps.Sessions))
	sessions := api.Group("/sessions/:sessionId", sessionMiddleware(deps.Sessions))
	{
		sessions.GET("", sessionSnapshotHandler)
		sessions.DELETE("", closeSessionHandler(deps.Sessions))
		sessions.POST("/category", selectCategoryHandler)
		sessions.POST("/products/:productId/select", selectProductHandler)
		sessions.POST("/cart/open", sessionAction(func(shop *storefront.Shop) error { return shop.OpenCart() }))
		sessions.POST("/back", sessionAction(func(shop *storefront.Shop) error { return shop.Back() }))
		sessions.POST("/home", sessionAction(func(shop *storefront.Shop) error { shop.Home(); return nil }))
		sessions.POST("/promotions/select", sessionAction(func(shop *storefront.Shop) error { return shop.SelectActivePromotion() }))
		sessions.POST("/promotions/next", sessionAction(func(shop *storefront.Shop) error { shop.NextPromotion(); return nil }))
		sessions.POST("/promotions/previous", sessionAction(func(shop *storefront.Shop) error { shop.PreviousPromotion(); return nil }))
		sessions.POST("/promotions/settle", sessionAction(func(shop *storefront.Shop) error { shop.SettlePromotion(); return nil }))
		sessions.POST("/detail/add", addToCartHandler)
		sessions.PATCH("/cart/lines/:index", setQuantityHandler)
		sessions.DELETE("/cart/lines/:index", removeLineHandler)
		sessions.POST("/checkout", checkoutHandler)
		sessions.POST("/host/main", hostTapHandler((*storefront.Session).TapMain))
		sessions.POST("/host/back", hostTapHandler((*storefront.Session).TapBack))
	}

	if deps.Admin != nil {
		registerAdminRoutes(api, deps.Admin)
	}

	return router, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
