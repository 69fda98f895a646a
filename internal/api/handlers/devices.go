package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/guilleguerrisi/tsb-backend-tienda/internal/service"
)

// HandleVerifyDevice handles POST /api/verificar-dispositivo
func HandleVerifyDevice(svc *service.DeviceService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.VerifyDeviceRequest
		if err := c.ShouldBindWith(&req, strictJSONBinding); err != nil {
			invalidBody(c, logger, err)
			return
		}

		ok, err := svc.Authorized(c.Request.Context(), req)
		if err != nil {
			status, body := errorBody(c, logger, err)
			body["autorizado"] = false
			c.JSON(status, body)
			return
		}
		c.JSON(http.StatusOK, gin.H{"autorizado": ok})
	}
}
