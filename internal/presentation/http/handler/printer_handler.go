package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/tewankitchen/pos-api/internal/application/service"
	"github.com/tewankitchen/pos-api/internal/domain/entity"
	"github.com/tewankitchen/pos-api/internal/presentation/http/dto/response"
	"github.com/tewankitchen/pos-api/pkg/utils"
	"go.uber.org/zap"
)

// PrinterHandler handles printer-related HTTP requests.
type PrinterHandler struct {
	printerService *service.PrinterService
	checkouts      *service.CheckoutRegistry
	log            *zap.Logger
}

// NewPrinterHandler creates a new printer handler.
func NewPrinterHandler(printerService *service.PrinterService, checkouts *service.CheckoutRegistry, log *zap.Logger) *PrinterHandler {
	return &PrinterHandler{printerService: printerService, checkouts: checkouts, log: log}
}

// GetStatus returns the current printer connection status.
func (h *PrinterHandler) GetStatus(c *gin.Context) {
	response.OK(c, "Printer status retrieved", h.printerService.GetStatus(c.Request.Context()))
}

// PrintTransaction prints the receipt of a settled transaction.
func (h *PrinterHandler) PrintTransaction(c *gin.Context) {
	id, err := utils.ParseTransactionID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid transaction ID")
		return
	}

	receipt, err := h.printerService.PrintTransaction(c.Request.Context(), id)
	h.respond(c, receipt, err, "Receipt printed successfully")
}

// PrintBill prints the open bill of a table with this terminal's discount.
func (h *PrinterHandler) PrintBill(c *gin.Context) {
	tableID, ok := intParam(c, "id")
	if !ok {
		return
	}

	bill, err := h.checkouts.For(GetTerminalID(c)).Bill(c.Request.Context(), tableID)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	receipt, err := h.printerService.PrintBill(c.Request.Context(), bill)
	h.respond(c, receipt, err, "Bill printed successfully")
}

// respond returns the receipt even when the printer failed, so the caller
// can still show it on screen.
func (h *PrinterHandler) respond(c *gin.Context, receipt *entity.Receipt, err error, message string) {
	if err != nil {
		if receipt != nil {
			response.OK(c, "Receipt generated but printing failed", gin.H{
				"receipt": receipt,
				"warning": err.Error(),
			})
			return
		}
		handleError(c, h.log, err)
		return
	}
	response.OK(c, message, gin.H{"receipt": receipt})
}
