package handlers

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/guilleguerrisi/tsb-backend-tienda/internal/api/middleware"
	"github.com/guilleguerrisi/tsb-backend-tienda/pkg/errors"
)

// Stable error codes returned in the "error" field
const (
	CodeValidation = "VALIDATION_ERROR"
	CodeNotFound   = "NOT_FOUND"
	CodeDB         = "DB_ERROR"
	CodeInternal   = "INTERNAL_ERROR"
)

func errorBody(c *gin.Context, logger *zap.Logger, err error) (int, gin.H) {
	var verr *errors.ErrValidation
	var nf *errors.ErrNotFound
	var perr *errors.ErrPersistence

	switch {
	case stderrors.As(err, &verr):
		body := gin.H{"error": CodeValidation, "message": verr.Error()}
		if len(verr.Fields) > 0 {
			body["fields"] = verr.Fields
		}
		return http.StatusBadRequest, body
	case stderrors.As(err, &nf):
		return http.StatusNotFound, gin.H{"error": CodeNotFound, "message": nf.Resource + " not found"}
	case stderrors.As(err, &perr):
		logger.Error("Store failure",
			zap.String("op", perr.Op),
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.Error(perr.Err),
		)
		return http.StatusInternalServerError, gin.H{"error": CodeDB, "message": "internal server error"}
	default:
		logger.Error("Unhandled error",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.Error(err),
		)
		return http.StatusInternalServerError, gin.H{"error": CodeInternal, "message": "internal server error"}
	}
}

// respondError maps a typed error to its status code and stable body. Internal messages never leak.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	status, body := errorBody(c, logger, err)
	c.JSON(status, body)
}

func invalidBody(c *gin.Context, logger *zap.Logger, err error) {
	logger.Debug("Rejected request body",
		zap.String("path", c.Request.URL.Path),
		zap.String("request_id", middleware.GetRequestID(c)),
		zap.Error(err),
	)
	respondError(c, logger, &errors.ErrValidation{Message: "invalid request body"})
}
