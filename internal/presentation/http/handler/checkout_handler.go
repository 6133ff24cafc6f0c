package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/tewankitchen/pos-api/internal/application/service"
	"github.com/tewankitchen/pos-api/internal/domain/enum"
	"github.com/tewankitchen/pos-api/internal/presentation/http/dto/request"
	"github.com/tewankitchen/pos-api/internal/presentation/http/dto/response"
	"go.uber.org/zap"
)

// CheckoutHandler drives the checkout of the calling terminal
type CheckoutHandler struct {
	checkouts *service.CheckoutRegistry
	log       *zap.Logger
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkouts *service.CheckoutRegistry, log *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{checkouts: checkouts, log: log}
}

func (h *CheckoutHandler) checkout(c *gin.Context) *service.CheckoutService {
	return h.checkouts.For(GetTerminalID(c))
}

// Get returns the terminal's checkout state
func (h *CheckoutHandler) Get(c *gin.Context) {
	response.OK(c, "Checkout retrieved successfully", response.NewCheckoutResponse(h.checkout(c).Snapshot()))
}

// SelectTable picks the table the cart is built for
func (h *CheckoutHandler) SelectTable(c *gin.Context) {
	var req request.SelectTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	co := h.checkout(c)
	table, err := co.SelectTable(c.Request.Context(), req.TableID)
	if err != nil {
		handleError(c, h.log, err)
		return
	}

	response.OK(c, "Table selected", gin.H{
		"table":    response.NewTableResponse(table),
		"checkout": response.NewCheckoutResponse(co.Snapshot()),
	})
}

// AddItem adds one unit of a menu item to the cart
func (h *CheckoutHandler) AddItem(c *gin.Context) {
	var req request.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	state, err := h.checkout(c).AddItem(req.MenuItemID)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	response.OK(c, "Item added", response.NewCheckoutResponse(state))
}

// ChangeQuantity adjusts a cart line by delta
func (h *CheckoutHandler) ChangeQuantity(c *gin.Context) {
	itemID, ok := intParam(c, "item_id")
	if !ok {
		return
	}
	var req request.ChangeQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	state, err := h.checkout(c).ChangeQuantity(itemID, req.Delta)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	response.OK(c, "Quantity updated", response.NewCheckoutResponse(state))
}

// RemoveItem drops a line from the cart
func (h *CheckoutHandler) RemoveItem(c *gin.Context) {
	itemID, ok := intParam(c, "item_id")
	if !ok {
		return
	}

	state, err := h.checkout(c).RemoveItem(itemID)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	response.OK(c, "Item removed", response.NewCheckoutResponse(state))
}

// Confirm merges the cart into the selected table's order
func (h *CheckoutHandler) Confirm(c *gin.Context) {
	co := h.checkout(c)
	table, err := co.ConfirmOrder(c.Request.Context())
	if err != nil {
		handleError(c, h.log, err)
		return
	}

	response.OK(c, "Order confirmed", gin.H{
		"table":    response.NewTableResponse(table),
		"checkout": response.NewCheckoutResponse(co.Snapshot()),
	})
}

// SetDiscount stores the discount percent, clamped to 0..100
func (h *CheckoutHandler) SetDiscount(c *gin.Context) {
	var req request.DiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	co := h.checkout(c)
	co.SetDiscountPercent(decimal.NewFromFloat(*req.Percent))
	response.OK(c, "Discount updated", response.NewCheckoutResponse(co.Snapshot()))
}

// SetPaymentMethod chooses how the bill will be settled
func (h *CheckoutHandler) SetPaymentMethod(c *gin.Context) {
	var req request.PaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	method, err := enum.ParsePaymentMethod(req.Method)
	if err != nil {
		response.BadRequest(c, "Invalid payment method")
		return
	}

	co := h.checkout(c)
	if err := co.SetPaymentMethod(method); err != nil {
		handleError(c, h.log, err)
		return
	}
	response.OK(c, "Payment method updated", response.NewCheckoutResponse(co.Snapshot()))
}

// Pay settles the selected table
func (h *CheckoutHandler) Pay(c *gin.Context) {
	tx, err := h.checkout(c).Pay(c.Request.Context())
	if err != nil {
		handleError(c, h.log, err)
		return
	}

	response.Created(c, "Payment recorded", response.NewTransactionResponse(tx))
}

// Reset abandons the checkout without touching any table
func (h *CheckoutHandler) Reset(c *gin.Context) {
	co := h.checkout(c)
	co.Reset()
	response.OK(c, "Checkout reset", response.NewCheckoutResponse(co.Snapshot()))
}
