package handler

import (
	"net/http"

	"bikeshop/pkg/logger"
	"bikeshop/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const serviceName = "orders-service"

// SetupRoutes настраивает маршруты Orders Service
// Все маршруты заказов требуют JWT, /admin дополнительно is_admin
func SetupRoutes(orderHandler *OrderHandler, authMiddleware *AuthMiddleware) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(logger.GinLoggerMiddleware())
	router.Use(metrics.GinPrometheusMiddleware(serviceName))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowWildcard:    true,
		AllowMethods:     []string{"GET", "POST", "PATCH", "OPTIONS"},
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

	orders := router.Group("/orders", authMiddleware.Authenticate())
	{
		orders.POST("", orderHandler.Checkout)
		orders.GET("", orderHandler.GetUserOrders)
		orders.GET("/:id", orderHandler.GetOrder)
		orders.POST("/:id/cancel", orderHandler.CancelOrder)
	}

	admin := router.Group("/admin/orders", authMiddleware.Authenticate(), authMiddleware.RequireAdmin())
	{
		admin.GET("", orderHandler.ListOrders)
		admin.PATCH("/:id/status", orderHandler.UpdateOrderStatus)
	}

	return router
}
