package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tewankitchen/pos-api/internal/application/service"
	"github.com/tewankitchen/pos-api/internal/presentation/http/dto/response"
	"github.com/tewankitchen/pos-api/pkg/utils"
)

// AuthMiddleware requires a terminal token when enabled. When disabled every
// request acts for the default terminal.
func AuthMiddleware(jwtManager *utils.JWTManager, enabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !enabled {
			c.Set(terminalIDKey, service.DefaultTerminalID)
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(terminalIDKey, claims.TerminalID)
		c.Next()
	}
}
