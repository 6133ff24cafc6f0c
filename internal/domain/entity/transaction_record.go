package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tewankitchen/pos-api/internal/domain/enum"
)

// TransactionRecord is the archived row of a settled transaction
type TransactionRecord struct {
	ID                   int64              `gorm:"primaryKey;autoIncrement:false" json:"id"`
	ReceiptNo            string             `gorm:"uniqueIndex;size:32;not null" json:"receipt_no"`
	TableID              int                `gorm:"not null;index" json:"table_id"`
	Items                string             `gorm:"type:jsonb;not null" json:"items"`
	Subtotal             decimal.Decimal    `gorm:"type:numeric(14,4);not null" json:"subtotal"`
	ServiceAmount        decimal.Decimal    `gorm:"type:numeric(14,4);not null" json:"service_amount"`
	TaxAmount            decimal.Decimal    `gorm:"type:numeric(14,4);not null" json:"tax_amount"`
	DiscountAmount       decimal.Decimal    `gorm:"type:numeric(14,4);not null" json:"discount_amount"`
	Total                decimal.Decimal    `gorm:"type:numeric(14,4);not null" json:"total"`
	ServiceChargePercent decimal.Decimal    `gorm:"type:numeric(7,4)" json:"service_charge_percent"`
	TaxPercent           decimal.Decimal    `gorm:"type:numeric(7,4)" json:"tax_percent"`
	DiscountPercent      decimal.Decimal    `gorm:"type:numeric(7,4)" json:"discount_percent"`
	PaymentMethod        enum.PaymentMethod `gorm:"type:smallint;not null" json:"payment_method"`
	PaidAt               time.Time          `gorm:"not null;index" json:"paid_at"`
	CreatedAt            time.Time          `gorm:"autoCreateTime" json:"created_at"`
}

// TableName returns the table name for TransactionRecord
func (TransactionRecord) TableName() string {
	return "transactions"
}
