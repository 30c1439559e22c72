package handler

import (
	"net/http"

	"bikeshop/pkg/logger"
	"bikeshop/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const serviceName = "configurator-service"

// Handlers набор обработчиков Configurator Service
type Handlers struct {
	Configuration *ConfigurationHandler
	Catalog       *CatalogHandler
	Option        *OptionHandler
	Rule          *RuleHandler
	Cart          *CartHandler
}

// SetupRoutes настраивает все маршруты Configurator Service
// Чтение каталога и конфигуратор публичные, администрирование требует is_admin, корзина требует JWT
func SetupRoutes(h Handlers, authMiddleware *AuthMiddleware) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(logger.GinLoggerMiddleware())
	router.Use(metrics.GinPrometheusMiddleware(serviceName))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowWildcard:    true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": serviceName,
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	admin := []gin.HandlerFunc{authMiddleware.Authenticate(), authMiddleware.RequireAdmin()}

	categories := router.Group("/product-categories")
	{
		categories.GET("", h.Catalog.GetAllCategories)
		categories.GET("/:id", h.Catalog.GetCategory)

		protected := categories.Group("", admin...)
		protected.POST("", h.Catalog.CreateCategory)
		protected.PATCH("/:id", h.Catalog.UpdateCategory)
		protected.DELETE("/:id", h.Catalog.DeleteCategory)
	}

	products := router.Group("/products")
	{
		products.GET("", h.Catalog.GetAllProducts)
		products.GET("/:id", h.Catalog.GetProduct)

		// Конфигуратор
		products.GET("/:id/with-options", h.Configuration.GetProductWithOptions)
		products.GET("/:id/validate", h.Configuration.ValidateConfiguration)
		products.GET("/:id/price", h.Configuration.CalculatePrice)

		protected := products.Group("", admin...)
		protected.POST("", h.Catalog.CreateProduct)
		protected.PATCH("/:id", h.Catalog.UpdateProduct)
		protected.DELETE("/:id", h.Catalog.DeleteProduct)
	}

	groups := router.Group("/product-option-groups", admin...)
	{
		groups.POST("", h.Catalog.CreateOptionGroup)
		groups.GET("", h.Catalog.GetAllOptionGroups)
		groups.GET("/:id", h.Catalog.GetOptionGroup)
		groups.PATCH("/:id", h.Catalog.UpdateOptionGroup)
		groups.DELETE("/:id", h.Catalog.DeleteOptionGroup)
	}

	options := router.Group("/product-options", admin...)
	{
		options.POST("", h.Option.CreateOption)
		options.GET("", h.Option.GetAllOptions)
		options.GET("/:id", h.Option.GetOption)
		options.PATCH("/:id", h.Option.UpdateOption)
		options.DELETE("/:id", h.Option.DeleteOption)
		options.PUT("/:id/inventory", h.Option.SetInventory)
	}

	rules := router.Group("/option-rules", admin...)
	{
		rules.POST("", h.Rule.CreateOptionRule)
		rules.GET("", h.Rule.GetAllOptionRules)
		rules.GET("/:id", h.Rule.GetOptionRule)
		rules.PATCH("/:id", h.Rule.UpdateOptionRule)
		rules.DELETE("/:id", h.Rule.DeleteOptionRule)
	}

	priceRules := router.Group("/option-price-rules", admin...)
	{
		priceRules.POST("", h.Rule.CreateOptionPriceRule)
		priceRules.GET("", h.Rule.GetAllOptionPriceRules)
		priceRules.GET("/:id", h.Rule.GetOptionPriceRule)
		priceRules.PATCH("/:id", h.Rule.UpdateOptionPriceRule)
		priceRules.DELETE("/:id", h.Rule.DeleteOptionPriceRule)
	}

	cart := router.Group("/cart", authMiddleware.Authenticate())
	{
		cart.GET("", h.Cart.GetCart)
		cart.DELETE("", h.Cart.ClearCart)
		cart.POST("/items", h.Cart.AddItem)
		cart.PATCH("/items/:itemId", h.Cart.UpdateItem)
		cart.DELETE("/items/:itemId", h.Cart.RemoveItem)
	}

	return router
}
