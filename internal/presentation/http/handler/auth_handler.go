package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/tewankitchen/pos-api/internal/application/service"
	"github.com/tewankitchen/pos-api/internal/presentation/http/dto/request"
	"github.com/tewankitchen/pos-api/internal/presentation/http/dto/response"
	"go.uber.org/zap"
)

// AuthHandler handles terminal login
type AuthHandler struct {
	authService *service.AuthService
	log         *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, log: log}
}

// Login exchanges the staff PIN for a terminal token
// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "PIN and terminal"
// @Success 200 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.authService.Login(req.Pin, req.TerminalID)
	if err != nil {
		h.log.Info("login rejected", zap.String("terminal_id", req.TerminalID), zap.String("client_ip", c.ClientIP()))
		handleError(c, h.log, err)
		return
	}

	response.OK(c, "Login successful", result)
}
