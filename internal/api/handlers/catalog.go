package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/guilleguerrisi/tsb-backend-tienda/internal/domain"
	"github.com/guilleguerrisi/tsb-backend-tienda/internal/service"
)

// HandleListCategories handles GET /api/categorias
func HandleListCategories(svc *service.CatalogService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		cats, err := svc.Categories(c.Request.Context())
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, cats)
	}
}

// HandleSearchCategories handles GET /api/buscar-categorias?palabra=
func HandleSearchCategories(svc *service.CatalogService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		cats, err := svc.SearchCategories(c.Request.Context(), c.Query("palabra"))
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, cats)
	}
}

// HandleListMerchandise handles GET /api/mercaderia?buscar=&grcat=
func HandleListMerchandise(svc *service.CatalogService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := svc.Merchandise(c.Request.Context(), domain.MerchandiseFilter{
			Search:   c.Query("buscar"),
			Category: c.Query("grcat"),
		})
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}
