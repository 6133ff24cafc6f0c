package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/tewankitchen/pos-api/internal/domain/entity"
	"github.com/tewankitchen/pos-api/internal/domain/enum"
	"github.com/tewankitchen/pos-api/internal/domain/repository"
	"github.com/tewankitchen/pos-api/pkg/money"
	"go.uber.org/zap"
)

// IDGenerator issues transaction ids. *snowflake.Node satisfies it.
type IDGenerator interface {
	Generate() snowflake.ID
}

// TransactionNotifier receives settled transactions after they are committed.
// Enqueue must not block.
type TransactionNotifier interface {
	Enqueue(tx *entity.Transaction) bool
}

// LedgerService settles tables into the append-only transaction ledger.
type LedgerService struct {
	mu       sync.Mutex
	ledger   repository.LedgerRepository
	tables   repository.TableRepository
	ids      IDGenerator
	notifier TransactionNotifier
	log      *zap.Logger
	now      func() time.Time
}

// NewLedgerService creates a new ledger service. notifier may be nil.
func NewLedgerService(
	ledger repository.LedgerRepository,
	tables repository.TableRepository,
	ids IDGenerator,
	notifier TransactionNotifier,
	log *zap.Logger,
) *LedgerService {
	return &LedgerService{
		ledger:   ledger,
		tables:   tables,
		ids:      ids,
		notifier: notifier,
		log:      log,
		now:      time.Now,
	}
}

// RecordPayment settles the committed order of a table. The transaction is
// appended and the table reset under the ledger lock and then the table
// lock, so either both happen or neither does. Notification happens after
// the commit and cannot fail the payment.
func (s *LedgerService) RecordPayment(ctx context.Context, tableID int, method enum.PaymentMethod, rates money.Rates) (*entity.Transaction, error) {
	if tableID == 0 {
		return nil, ErrNoTableSelected
	}
	if !method.IsValid() {
		return nil, ErrPaymentMethodRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var tx *entity.Transaction
	err := s.tables.Update(ctx, tableID, func(t *entity.Table) error {
		if len(t.Order) == 0 {
			return ErrNothingToSettle
		}

		b, err := money.Calculate(t.Order.Lines(), rates)
		if err != nil {
			return fmt.Errorf("settle table %d: %w", tableID, err)
		}

		id := s.ids.Generate()
		candidate := &entity.Transaction{
			ID:             id,
			ReceiptNo:      entity.ReceiptNumber(id),
			TableID:        tableID,
			Items:          t.Order.Clone(),
			Subtotal:       b.Subtotal,
			ServiceAmount:  b.ServiceCharge,
			TaxAmount:      b.Tax,
			DiscountAmount: b.Discount,
			Total:          b.Total,
			Rates:          rates,
			PaymentMethod:  method,
			Timestamp:      s.now(),
		}
		if err := s.ledger.Append(ctx, candidate); err != nil {
			return fmt.Errorf("append transaction: %w", err)
		}

		resetTable(t)
		tx = candidate
		return nil
	})
	if err != nil {
		if errors.Is(err, money.ErrInvalidQuantity) {
			s.log.Error("committed order holds an invalid line", zap.Int("table_id", tableID), zap.Error(err))
		}
		return nil, mapTableErr(err)
	}

	s.log.Info("payment recorded",
		zap.String("receipt_no", tx.ReceiptNo),
		zap.Int("table_id", tx.TableID),
		zap.String("payment_method", tx.PaymentMethod.String()),
		zap.String("total", money.Format(tx.Total)),
	)

	if s.notifier != nil {
		s.notifier.Enqueue(tx)
	}
	return tx.Clone(), nil
}

// List returns every transaction in the order it was recorded.
func (s *LedgerService) List(ctx context.Context) ([]entity.Transaction, error) {
	return s.ledger.List(ctx)
}

// Recent returns up to n transactions, newest first.
func (s *LedgerService) Recent(ctx context.Context, n int) ([]entity.Transaction, error) {
	all, err := s.ledger.List(ctx)
	if err != nil {
		return nil, err
	}
	if n <= 0 || n > len(all) {
		n = len(all)
	}
	out := make([]entity.Transaction, 0, n)
	for i := len(all) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, all[i])
	}
	return out, nil
}

// Get returns one transaction by id.
func (s *LedgerService) Get(ctx context.Context, id snowflake.ID) (*entity.Transaction, error) {
	tx, err := s.ledger.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrTransactionNotFound
	}
	return tx, err
}

// Between returns transactions with from <= timestamp < to.
func (s *LedgerService) Between(ctx context.Context, from, to time.Time) ([]entity.Transaction, error) {
	return s.ledger.Between(ctx, from, to)
}
