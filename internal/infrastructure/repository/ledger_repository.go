package repository

import (
	"context"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/tewankitchen/pos-api/internal/domain/entity"
	domainRepo "github.com/tewankitchen/pos-api/internal/domain/repository"
)

type ledgerRepository struct {
	mu    sync.RWMutex
	txs   []entity.Transaction
	index map[snowflake.ID]int
}

// NewLedgerRepository creates an in-memory, append-only ledger. Contents
// live for the lifetime of the process.
func NewLedgerRepository() domainRepo.LedgerRepository {
	return &ledgerRepository{index: make(map[snowflake.ID]int)}
}

func (r *ledgerRepository) Append(ctx context.Context, tx *entity.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.index[tx.ID] = len(r.txs)
	r.txs = append(r.txs, *tx.Clone())
	return nil
}

func (r *ledgerRepository) List(ctx context.Context) ([]entity.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entity.Transaction, len(r.txs))
	for i := range r.txs {
		out[i] = *r.txs[i].Clone()
	}
	return out, nil
}

func (r *ledgerRepository) GetByID(ctx context.Context, id snowflake.ID) (*entity.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.index[id]
	if !ok {
		return nil, domainRepo.ErrNotFound
	}
	return r.txs[i].Clone(), nil
}

func (r *ledgerRepository) Between(ctx context.Context, from, to time.Time) ([]entity.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []entity.Transaction
	for i := range r.txs {
		ts := r.txs[i].Timestamp
		if !ts.Before(from) && ts.Before(to) {
			out = append(out, *r.txs[i].Clone())
		}
	}
	return out, nil
}
