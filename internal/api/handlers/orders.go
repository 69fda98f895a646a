package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/guilleguerrisi/tsb-backend-tienda/internal/service"
	"github.com/guilleguerrisi/tsb-backend-tienda/pkg/errors"
)

// orderID parses the :id path parameter. Anything but a positive integer cannot name an order.
func orderID(c *gin.Context) (int64, error) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, &errors.ErrNotFound{Resource: "order", ID: raw}
	}
	return id, nil
}

// HandleCreateOrder handles POST /api/pedidos
func HandleCreateOrder(svc *service.OrderService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.CreateOrderRequest
		if err := c.ShouldBindWith(&req, strictJSONBinding); err != nil {
			invalidBody(c, logger, err)
			return
		}

		id, err := svc.Create(c.Request.Context(), req)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": gin.H{"id": id}})
	}
}

// HandleGetOrder handles GET /api/pedidos/:id
func HandleGetOrder(svc *service.OrderService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := orderID(c)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		order, err := svc.Get(c.Request.Context(), id)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, service.ToOrderResponse(order))
	}
}

// HandleGetLatestOrderByClient handles GET /api/pedidos/cliente/:clienteID
func HandleGetLatestOrderByClient(svc *service.OrderService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ref, err := svc.LatestForClient(c.Request.Context(), c.Param("clienteID"))
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, service.ToLatestOrderResponse(ref))
	}
}

// HandleUpdateOrder handles PATCH /api/pedidos/:id
func HandleUpdateOrder(svc *service.OrderService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := orderID(c)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		var req service.UpdateOrderRequest
		if err := c.ShouldBindWith(&req, strictJSONBinding); err != nil {
			invalidBody(c, logger, err)
			return
		}

		updated, err := svc.Update(c.Request.Context(), id, req)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": gin.H{"id": updated}})
	}
}
