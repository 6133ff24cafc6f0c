package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/tewankitchen/pos-api/internal/domain/entity"
	"github.com/tewankitchen/pos-api/internal/domain/enum"
	domainRepo "github.com/tewankitchen/pos-api/internal/domain/repository"
)

type tableSlot struct {
	mu    sync.Mutex
	table entity.Table
}

type tableRepository struct {
	slots map[int]*tableSlot
	ids   []int
}

// NewTableRepository creates an in-memory registry of tables numbered 1..count,
// all available with empty orders.
func NewTableRepository(count int) domainRepo.TableRepository {
	r := &tableRepository{slots: make(map[int]*tableSlot, count)}
	for id := 1; id <= count; id++ {
		r.slots[id] = &tableSlot{table: entity.Table{ID: id, Status: enum.TableStatusAvailable, Order: entity.Order{}}}
		r.ids = append(r.ids, id)
	}
	sort.Ints(r.ids)
	return r
}

func (r *tableRepository) GetByID(ctx context.Context, id int) (*entity.Table, error) {
	slot, ok := r.slots[id]
	if !ok {
		return nil, domainRepo.ErrNotFound
	}
	slot.mu.Lock()
	defer slot.mu.Unlock()
	return slot.table.Clone(), nil
}

func (r *tableRepository) List(ctx context.Context) ([]entity.Table, error) {
	tables := make([]entity.Table, 0, len(r.ids))
	for _, id := range r.ids {
		slot := r.slots[id]
		slot.mu.Lock()
		tables = append(tables, *slot.table.Clone())
		slot.mu.Unlock()
	}
	return tables, nil
}

func (r *tableRepository) Update(ctx context.Context, id int, fn func(t *entity.Table) error) error {
	slot, ok := r.slots[id]
	if !ok {
		return domainRepo.ErrNotFound
	}
	slot.mu.Lock()
	defer slot.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	working := slot.table.Clone()
	if err := fn(working); err != nil {
		return err
	}
	slot.table = *working
	return nil
}

func (r *tableRepository) Count() int {
	return len(r.ids)
}
