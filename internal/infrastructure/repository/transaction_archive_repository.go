package repository

import (
	"context"
	"errors"

	"github.com/tewankitchen/pos-api/internal/domain/entity"
	domainRepo "github.com/tewankitchen/pos-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type transactionArchiveRepository struct {
	db *gorm.DB
}

// NewTransactionArchiveRepository creates a GORM backed archive of settled
// transactions
func NewTransactionArchiveRepository(db *gorm.DB) domainRepo.TransactionArchiveRepository {
	return &transactionArchiveRepository{db: db}
}

// Create inserts the record; a replay of the same transaction id is ignored.
func (r *transactionArchiveRepository) Create(ctx context.Context, record *entity.TransactionRecord) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(record).Error
}

func (r *transactionArchiveRepository) GetByID(ctx context.Context, id int64) (*entity.TransactionRecord, error) {
	var record entity.TransactionRecord
	err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainRepo.ErrNotFound
	}
	return &record, err
}
