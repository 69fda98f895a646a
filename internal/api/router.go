package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/guilleguerrisi/tsb-backend-tienda/internal/api/handlers"
	"github.com/guilleguerrisi/tsb-backend-tienda/internal/api/middleware"
	"github.com/guilleguerrisi/tsb-backend-tienda/internal/config"
	"github.com/guilleguerrisi/tsb-backend-tienda/internal/repository"
	"github.com/guilleguerrisi/tsb-backend-tienda/internal/service"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, repos *repository.Repositories, dispatcher service.Dispatcher, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	catalogSvc := service.NewCatalogService(repos, logger)
	orderSvc := service.NewOrderService(repos, dispatcher, cfg.Notify.OrderLinkBase, logger)
	deviceSvc := service.NewDeviceService(repos, logger)

	router := gin.New()

	// Middleware
	router.Use(middleware.RequestID())
	router.Use(loggingMiddleware(logger))
	router.Use(middleware.Metrics())
	router.Use(customRecovery(cfg, logger))
	router.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "TSB tienda API",
			"endpoints": []string{
				"GET /health",
				"GET /api/categorias",
				"GET /api/buscar-categorias?palabra=",
				"GET /api/mercaderia?buscar=&grcat=",
				"POST /api/pedidos",
				"GET /api/pedidos/:id",
				"GET /api/pedidos/cliente/:clienteID",
				"PATCH /api/pedidos/:id",
				"POST /api/verificar-dispositivo",
			},
		})
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "time": time.Now().UTC().Format(time.RFC3339Nano)})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiRoutes := router.Group("/api")
	{
		apiRoutes.GET("/categorias", handlers.HandleListCategories(catalogSvc, logger))
		apiRoutes.GET("/buscar-categorias", handlers.HandleSearchCategories(catalogSvc, logger))
		apiRoutes.GET("/mercaderia", handlers.HandleListMerchandise(catalogSvc, logger))

		apiRoutes.POST("/pedidos", handlers.HandleCreateOrder(orderSvc, logger))
		apiRoutes.GET("/pedidos/cliente/:clienteID", handlers.HandleGetLatestOrderByClient(orderSvc, logger))
		apiRoutes.GET("/pedidos/:id", handlers.HandleGetOrder(orderSvc, logger))
		apiRoutes.PATCH("/pedidos/:id", handlers.HandleUpdateOrder(orderSvc, logger))

		apiRoutes.POST("/verificar-dispositivo", handlers.HandleVerifyDevice(deviceSvc, logger))
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": handlers.CodeNotFound, "message": "route not found"})
	})

	return router
}

// customRecovery is a custom recovery middleware that logs panics
func customRecovery(cfg *config.Config, logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Panic recovered",
			zap.Any("error", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.String("request_id", middleware.GetRequestID(c)),
		)
		body := gin.H{"error": handlers.CodeInternal, "message": "internal server error"}
		if cfg.Environment != "production" {
			body["details"] = fmt.Sprintf("%v", recovered)
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, body)
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("route", route),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetRequestID(c)),
		)
	}
}
