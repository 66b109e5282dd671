package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/medsupply/backend/internal/infrastructure/auth"
	"github.com/medsupply/backend/internal/infrastructure/config"
	"github.com/medsupply/backend/internal/infrastructure/logger"
	"github.com/medsupply/backend/internal/interfaces/http/handler"
	"github.com/medsupply/backend/internal/interfaces/http/middleware"
)

// Handlers bundles the API handlers wired into the router
type Handlers struct {
	Auth    *handler.AuthHandler
	Product *handler.ProductHandler
	Cart    *handler.CartHandler
	Stock   *handler.StockHandler
	Order   *handler.OrderHandler
}

// New builds the gin engine with all middleware and routes registered.
// Storefront routes (catalog reads, cart, checkout) are public; staff routes
// require a valid bearer token.
func New(cfg *config.Config, log *zap.Logger, jwtService *auth.JWTService, h Handlers) *gin.Engine {
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(cfg.HTTP.TrustedProxies)
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.CORS(middleware.CORSConfig{
		AllowOrigins: cfg.HTTP.CORSAllowOrigins,
		AllowMethods: cfg.HTTP.CORSAllowMethods,
		AllowHeaders: cfg.HTTP.CORSAllowHeaders,
	}))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": cfg.App.Name})
	})

	api := engine.Group("/api/v1")

	// Public storefront surface
	api.POST("/auth/login", h.Auth.Login)

	products := api.Group("/products")
	{
		products.GET("", h.Product.List)
		products.GET("/:id", h.Product.GetByID)
		products.GET("/:id/movements", h.Stock.GetProductHistory)
	}

	carts := api.Group("/cart")
	{
		carts.GET("", h.Cart.Get)
		carts.POST("/items", h.Cart.AddItem)
		carts.PUT("/items", h.Cart.UpdateQuantity)
		carts.DELETE("/items/:product_id", h.Cart.RemoveItem)
		carts.DELETE("", h.Cart.Clear)
	}

	api.POST("/checkout", h.Order.Checkout)

	// Staff surface
	staff := api.Group("")
	staff.Use(middleware.JWTAuth(jwtService))
	{
		staff.POST("/products", h.Product.Create)
		staff.PUT("/products/:id", h.Product.Update)
		staff.POST("/products/:id/sizes", h.Product.AddSize)
		staff.DELETE("/products/:id", h.Product.Deactivate)

		staff.POST("/stock/movements", h.Stock.RecordMovement)
		staff.POST("/stock/movements/bulk", h.Stock.RecordBulkMovements)
		staff.GET("/stock/report", h.Stock.GetMovementReport)
		staff.GET("/stock/low", h.Stock.ListBelowReorderLevel)

		staff.GET("/orders", h.Order.List)
		staff.GET("/orders/:id", h.Order.GetByID)
		staff.GET("/orders/number/:number", h.Order.GetByNumber)
		staff.POST("/orders/:id/payments", h.Order.RecordPayment)
		staff.GET("/orders/:id/payments", h.Order.ListTransactions)

		admin := staff.Group("")
		admin.Use(middleware.RequireRole("admin"))
		{
			admin.POST("/users", h.Auth.CreateUser)
		}
	}

	return engine
}
