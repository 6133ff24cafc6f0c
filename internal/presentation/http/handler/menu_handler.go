package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/tewankitchen/pos-api/internal/application/service"
	"github.com/tewankitchen/pos-api/internal/domain/enum"
	"github.com/tewankitchen/pos-api/internal/presentation/http/dto/response"
)

// MenuHandler serves the menu catalog
type MenuHandler struct {
	menuService *service.MenuService
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(menuService *service.MenuService) *MenuHandler {
	return &MenuHandler{menuService: menuService}
}

// List returns menu items, optionally filtered by ?category=
func (h *MenuHandler) List(c *gin.Context) {
	var filter *enum.Category
	if raw := c.Query("category"); raw != "" {
		cat, err := enum.ParseCategory(raw)
		if err != nil {
			response.BadRequest(c, "Invalid category")
			return
		}
		filter = &cat
	}

	response.OK(c, "Menu retrieved successfully", response.NewMenuResponse(h.menuService.List(filter)))
}

// Categories returns the menu categories in display order
func (h *MenuHandler) Categories(c *gin.Context) {
	response.OK(c, "Categories retrieved successfully", h.menuService.Categories())
}
