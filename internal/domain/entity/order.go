package entity

import (
	"github.com/shopspring/decimal"
	"github.com/tewankitchen/pos-api/pkg/money"
)

// LineItem is a menu item snapshot plus a positive quantity.
type LineItem struct {
	MenuItem
	Quantity int `json:"quantity"`
}

// LineTotal returns unit price times quantity.
func (l LineItem) LineTotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Order is an ordered list of line items. A committed order may hold the
// same menu item on several lines when it was confirmed in batches.
type Order []LineItem

// Lines converts the order to the money engine's input.
func (o Order) Lines() []money.Line {
	lines := make([]money.Line, len(o))
	for i, l := range o {
		lines[i] = money.Line{UnitPrice: l.Price, Quantity: l.Quantity}
	}
	return lines
}

// Clone returns an independent copy.
func (o Order) Clone() Order {
	if o == nil {
		return Order{}
	}
	out := make(Order, len(o))
	copy(out, o)
	return out
}

// ItemCount sums quantities over every line.
func (o Order) ItemCount() int {
	n := 0
	for _, l := range o {
		n += l.Quantity
	}
	return n
}
