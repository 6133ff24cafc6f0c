package service

import (
	"errors"
	"net/http"

	"github.com/tewankitchen/pos-api/pkg/apperror"
)

// Rejected commands. They leave state unchanged and are rendered to the
// caller as a failed request.
var (
	ErrNoTableSelected       = apperror.NewBadRequestError("No table selected")
	ErrTableNotFound         = apperror.NewNotFoundError("Table")
	ErrEmptyOrder            = apperror.NewBadRequestError("Order is empty")
	ErrNothingToSettle       = apperror.NewConflictError("Nothing to settle for this table")
	ErrPaymentMethodRequired = apperror.NewRefinedError(http.StatusBadRequest, "Payment method is required", ErrNothingToSettle)
	ErrTransactionNotFound   = apperror.NewNotFoundError("Transaction")
)

// ErrUnknownMenuItem means an item id does not exist in the catalog. Cart
// operations only ever see catalog ids, so this signals a broken caller.
var ErrUnknownMenuItem = errors.New("unknown menu item")
