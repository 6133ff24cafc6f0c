package entity

import "github.com/tewankitchen/pos-api/internal/domain/enum"

// Table is a seat in the dining room together with its committed order.
// A table is occupied exactly when its order is non-empty.
type Table struct {
	ID     int              `json:"id"`
	Status enum.TableStatus `json:"status"`
	Order  Order            `json:"order"`
}

// IsOccupied reports whether the table has an open bill
func (t *Table) IsOccupied() bool {
	return t.Status == enum.TableStatusOccupied
}

// Clone returns a copy that shares nothing with t.
func (t *Table) Clone() *Table {
	return &Table{ID: t.ID, Status: t.Status, Order: t.Order.Clone()}
}
