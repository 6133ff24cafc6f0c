package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/tewankitchen/pos-api/internal/domain/entity"
)

// LedgerRepository defines the append-only store of settled transactions
type LedgerRepository interface {
	Append(ctx context.Context, tx *entity.Transaction) error
	// List returns every transaction in append order.
	List(ctx context.Context) ([]entity.Transaction, error)
	GetByID(ctx context.Context, id snowflake.ID) (*entity.Transaction, error)
	// Between returns transactions with from <= timestamp < to.
	Between(ctx context.Context, from, to time.Time) ([]entity.Transaction, error)
}

// TransactionArchiveRepository persists settled transactions outside the
// process.
type TransactionArchiveRepository interface {
	Create(ctx context.Context, record *entity.TransactionRecord) error
	GetByID(ctx context.Context, id int64) (*entity.TransactionRecord, error)
}
