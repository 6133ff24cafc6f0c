package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tewankitchen/pos-api/internal/application/service"
	"github.com/tewankitchen/pos-api/internal/domain/entity"
	"github.com/tewankitchen/pos-api/internal/presentation/http/dto/response"
	"github.com/tewankitchen/pos-api/pkg/pagination"
	"github.com/tewankitchen/pos-api/pkg/utils"
	"go.uber.org/zap"
)

// TransactionHandler serves the ledger
type TransactionHandler struct {
	ledgerService *service.LedgerService
	recentLimit   int
	log           *zap.Logger
}

// NewTransactionHandler creates a new transaction handler. recentLimit is
// the page size used when ?limit= is absent.
func NewTransactionHandler(ledgerService *service.LedgerService, recentLimit int, log *zap.Logger) *TransactionHandler {
	return &TransactionHandler{ledgerService: ledgerService, recentLimit: recentLimit, log: log}
}

// List returns the newest transactions first. With ?page= the whole ledger
// is paged; otherwise ?limit= (default recentLimit) caps the list and
// limit=0 returns everything.
func (h *TransactionHandler) List(c *gin.Context) {
	if c.Query("page") != "" {
		h.listPage(c)
		return
	}

	limit := h.recentLimit
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			response.BadRequest(c, "Invalid limit")
			return
		}
		limit = v
	}

	var (
		txs []entity.Transaction
		err error
	)
	if limit == 0 {
		txs, err = h.ledgerService.List(c.Request.Context())
	} else {
		txs, err = h.ledgerService.Recent(c.Request.Context(), limit)
	}
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	response.OK(c, "Transactions retrieved successfully", response.NewTransactionsResponse(txs))
}

func (h *TransactionHandler) listPage(c *gin.Context) {
	params := pagination.Default()
	if err := c.ShouldBindQuery(&params); err != nil {
		response.BadRequest(c, "Invalid pagination parameters")
		return
	}

	txs, err := h.ledgerService.Recent(c.Request.Context(), 0)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	page := pagination.Slice(response.NewTransactionsResponse(txs), params)
	response.OK(c, "Transactions retrieved successfully", page)
}

// Get returns one transaction
func (h *TransactionHandler) Get(c *gin.Context) {
	id, err := utils.ParseTransactionID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid transaction ID")
		return
	}

	tx, err := h.ledgerService.Get(c.Request.Context(), id)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	response.OK(c, "Transaction retrieved successfully", response.NewTransactionResponse(tx))
}
