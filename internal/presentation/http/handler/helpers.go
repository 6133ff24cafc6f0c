package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tewankitchen/pos-api/internal/application/service"
	"github.com/tewankitchen/pos-api/internal/presentation/http/dto/response"
	"github.com/tewankitchen/pos-api/internal/presentation/http/middleware"
	"github.com/tewankitchen/pos-api/pkg/apperror"
	"github.com/tewankitchen/pos-api/pkg/money"
	"go.uber.org/zap"
)

// GetTerminalID extracts the terminal ID from the Gin context
func GetTerminalID(c *gin.Context) string {
	return middleware.GetTerminalID(c)
}

// intParam parses a positive integer path parameter.
func intParam(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil || v <= 0 {
		response.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return v, true
}

// handleError renders err. Rejected commands carry their own status;
// invariant violations are logged since they mean a bug, not a bad request.
func handleError(c *gin.Context, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrUnknownMenuItem):
		log.Error("unknown menu item", zap.String("request_id", middleware.GetRequestID(c)), zap.Error(err))
		response.ErrorWithCode(c, http.StatusUnprocessableEntity, "Unknown menu item")
	case errors.Is(err, money.ErrInvalidQuantity):
		log.Error("invalid order line", zap.String("request_id", middleware.GetRequestID(c)), zap.Error(err))
		response.InternalServerError(c, "Order contains an invalid line")
	default:
		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			log.Error("request failed", zap.String("request_id", middleware.GetRequestID(c)), zap.Error(err))
			response.InternalServerError(c, "Internal server error")
			return
		}
		response.Error(c, appErr)
	}
}
