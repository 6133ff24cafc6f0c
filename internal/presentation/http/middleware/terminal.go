package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/tewankitchen/pos-api/internal/application/service"
)

const (
	terminalIDKey = "terminal_id"
	requestIDKey  = "request_id"
)

// GetTerminalID returns the terminal the request acts for.
func GetTerminalID(c *gin.Context) string {
	if v, ok := c.Get(terminalIDKey); ok {
		if id, ok := v.(string); ok && id != "" {
			return id
		}
	}
	return service.DefaultTerminalID
}

// GetRequestID returns the correlation id assigned by LoggerMiddleware.
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
