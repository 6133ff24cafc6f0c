package repository

import (
	"context"

	"github.com/tewankitchen/pos-api/internal/domain/entity"
)

// TableRepository defines the interface for table registry operations.
// Reads return copies; writes go through Update so the read-modify-write
// happens under the table's own lock.
type TableRepository interface {
	GetByID(ctx context.Context, id int) (*entity.Table, error)
	List(ctx context.Context) ([]entity.Table, error)
	// Update runs fn against the live table while holding its lock. If fn
	// returns an error the table is left as fn found it.
	Update(ctx context.Context, id int, fn func(t *entity.Table) error) error
	Count() int
}
