package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tewankitchen/pos-api/internal/domain/entity"
	domainRepo "github.com/tewankitchen/pos-api/internal/domain/repository"
)

// ArchiveSink stores every settled transaction as a database row.
type ArchiveSink struct {
	repo domainRepo.TransactionArchiveRepository
}

func NewArchiveSink(repo domainRepo.TransactionArchiveRepository) *ArchiveSink {
	return &ArchiveSink{repo: repo}
}

func (s *ArchiveSink) Name() string {
	return "archive"
}

func (s *ArchiveSink) Send(ctx context.Context, tx *entity.Transaction) error {
	record, err := ToTransactionRecord(tx)
	if err != nil {
		return err
	}
	return s.repo.Create(ctx, record)
}

// ToTransactionRecord maps a transaction to its archive row, keeping the
// unrounded amounts.
func ToTransactionRecord(tx *entity.Transaction) (*entity.TransactionRecord, error) {
	items, err := json.Marshal(NewRecord(tx).Items)
	if err != nil {
		return nil, fmt.Errorf("encode items: %w", err)
	}
	return &entity.TransactionRecord{
		ID:                   tx.ID.Int64(),
		ReceiptNo:            tx.ReceiptNo,
		TableID:              tx.TableID,
		Items:                string(items),
		Subtotal:             tx.Subtotal,
		ServiceAmount:        tx.ServiceAmount,
		TaxAmount:            tx.TaxAmount,
		DiscountAmount:       tx.DiscountAmount,
		Total:                tx.Total,
		ServiceChargePercent: tx.Rates.ServiceChargePercent,
		TaxPercent:           tx.Rates.TaxPercent,
		DiscountPercent:      tx.Rates.DiscountPercent,
		PaymentMethod:        tx.PaymentMethod,
		PaidAt:               tx.Timestamp,
	}, nil
}
