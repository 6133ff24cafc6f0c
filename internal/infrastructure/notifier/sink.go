// Package notifier delivers settled transactions to external recording
// services without ever blocking the payment that produced them.
package notifier

import (
	"context"

	"github.com/tewankitchen/pos-api/internal/domain/entity"
)

// Sink is one external destination for settled transactions.
type Sink interface {
	Name() string
	Send(ctx context.Context, tx *entity.Transaction) error
}
