package entity

import (
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/tewankitchen/pos-api/internal/domain/enum"
	"github.com/tewankitchen/pos-api/pkg/money"
)

// Transaction is a settled bill. It is never mutated after it is appended to
// the ledger; amounts are stored unrounded.
type Transaction struct {
	ID             snowflake.ID       `json:"id"`
	ReceiptNo      string             `json:"receipt_no"`
	TableID        int                `json:"table_id"`
	Items          Order              `json:"items"`
	Subtotal       decimal.Decimal    `json:"subtotal"`
	ServiceAmount  decimal.Decimal    `json:"service_amount"`
	TaxAmount      decimal.Decimal    `json:"tax_amount"`
	DiscountAmount decimal.Decimal    `json:"discount_amount"`
	Total          decimal.Decimal    `json:"total"`
	Rates          money.Rates        `json:"rates"`
	PaymentMethod  enum.PaymentMethod `json:"payment_method"`
	Timestamp      time.Time          `json:"timestamp"`
}

// ReceiptNumber formats the printed receipt number for a transaction id.
func ReceiptNumber(id snowflake.ID) string {
	return fmt.Sprintf("RCPT-%d", id.Int64())
}

// Breakdown returns the stored amounts as a money breakdown.
func (t *Transaction) Breakdown() money.Breakdown {
	return money.Breakdown{
		Subtotal:      t.Subtotal,
		ServiceCharge: t.ServiceAmount,
		Tax:           t.TaxAmount,
		Discount:      t.DiscountAmount,
		Total:         t.Total,
	}
}

// Clone returns a deep copy.
func (t *Transaction) Clone() *Transaction {
	c := *t
	c.Items = t.Items.Clone()
	return &c
}
