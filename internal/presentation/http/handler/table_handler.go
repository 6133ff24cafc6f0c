package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/tewankitchen/pos-api/internal/application/service"
	"github.com/tewankitchen/pos-api/internal/presentation/http/dto/response"
	"go.uber.org/zap"
)

// TableHandler handles table-related HTTP requests
type TableHandler struct {
	tableService *service.TableService
	checkouts    *service.CheckoutRegistry
	log          *zap.Logger
}

// NewTableHandler creates a new table handler
func NewTableHandler(tableService *service.TableService, checkouts *service.CheckoutRegistry, log *zap.Logger) *TableHandler {
	return &TableHandler{tableService: tableService, checkouts: checkouts, log: log}
}

// List returns every table in id order
func (h *TableHandler) List(c *gin.Context) {
	tables, err := h.tableService.ListTables(c.Request.Context())
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	response.OK(c, "Tables retrieved successfully", response.NewTablesResponse(tables))
}

// Occupied returns the tables with an open bill
func (h *TableHandler) Occupied(c *gin.Context) {
	tables, err := h.tableService.OccupiedTables(c.Request.Context())
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	response.OK(c, "Occupied tables retrieved successfully", response.NewTablesResponse(tables))
}

// Get returns one table
func (h *TableHandler) Get(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	table, err := h.tableService.GetTable(c.Request.Context(), id)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	response.OK(c, "Table retrieved successfully", response.NewTableResponse(table))
}

// Bill quotes the table's committed order with this terminal's discount
func (h *TableHandler) Bill(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	bill, err := h.checkouts.For(GetTerminalID(c)).Bill(c.Request.Context(), id)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	response.OK(c, "Bill retrieved successfully", response.NewBillResponse(bill))
}
