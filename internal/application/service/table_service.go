package service

import (
	"context"
	"errors"

	"github.com/tewankitchen/pos-api/internal/domain/entity"
	"github.com/tewankitchen/pos-api/internal/domain/enum"
	"github.com/tewankitchen/pos-api/internal/domain/repository"
)

// TableService owns the table lifecycle: available, occupied after an order
// is confirmed, and available again once the bill is settled.
type TableService struct {
	repo repository.TableRepository
}

// NewTableService creates a new table service
func NewTableService(repo repository.TableRepository) *TableService {
	return &TableService{repo: repo}
}

// ConfirmOrder appends the cart's lines to the table's committed order as a
// new batch, marks the table occupied and clears the cart. Lines are not
// merged with earlier batches.
func (s *TableService) ConfirmOrder(ctx context.Context, tableID int, cart *entity.Cart) (*entity.Table, error) {
	if tableID == 0 {
		return nil, ErrNoTableSelected
	}
	if cart == nil || cart.IsEmpty() {
		return nil, ErrEmptyOrder
	}

	batch := cart.Items()
	var confirmed *entity.Table
	err := s.repo.Update(ctx, tableID, func(t *entity.Table) error {
		t.Order = append(t.Order, batch...)
		t.Status = enum.TableStatusOccupied
		confirmed = t.Clone()
		return nil
	})
	if err != nil {
		return nil, mapTableErr(err)
	}

	cart.Clear()
	return confirmed, nil
}

// SettleAndReset frees the table. Resetting an available table is a no-op.
func (s *TableService) SettleAndReset(ctx context.Context, tableID int) error {
	err := s.repo.Update(ctx, tableID, func(t *entity.Table) error {
		resetTable(t)
		return nil
	})
	return mapTableErr(err)
}

// GetTable returns a copy of one table.
func (s *TableService) GetTable(ctx context.Context, tableID int) (*entity.Table, error) {
	if tableID == 0 {
		return nil, ErrNoTableSelected
	}
	t, err := s.repo.GetByID(ctx, tableID)
	if err != nil {
		return nil, mapTableErr(err)
	}
	return t, nil
}

// ListTables returns copies of every table ordered by id.
func (s *TableService) ListTables(ctx context.Context) ([]entity.Table, error) {
	return s.repo.List(ctx)
}

// OccupiedTables returns only the tables with an open bill.
func (s *TableService) OccupiedTables(ctx context.Context) ([]entity.Table, error) {
	tables, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	occupied := make([]entity.Table, 0, len(tables))
	for _, t := range tables {
		if t.IsOccupied() {
			occupied = append(occupied, t)
		}
	}
	return occupied, nil
}

func resetTable(t *entity.Table) {
	t.Status = enum.TableStatusAvailable
	t.Order = entity.Order{}
}

func mapTableErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrTableNotFound
	}
	return err
}
