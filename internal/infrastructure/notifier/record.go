package notifier

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tewankitchen/pos-api/internal/domain/entity"
	"github.com/tewankitchen/pos-api/pkg/money"
)

// RecordItem is one line of an outbound transaction record.
type RecordItem struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	Quantity int     `json:"quantity"`
}

// Record is the flat payload sent to recording services. Percentages are
// sent as discount, serviceCharge and tax; amounts are rounded for display.
type Record struct {
	ID             string       `json:"id"`
	ReceiptNo      string       `json:"receiptNo"`
	TableID        int          `json:"tableId"`
	Items          []RecordItem `json:"items"`
	Subtotal       float64      `json:"subtotal"`
	Total          float64      `json:"total"`
	PaymentMethod  string       `json:"paymentMethod"`
	Discount       float64      `json:"discount"`
	ServiceCharge  float64      `json:"serviceCharge"`
	Tax            float64      `json:"tax"`
	ServiceAmount  float64      `json:"serviceAmount"`
	TaxAmount      float64      `json:"taxAmount"`
	DiscountAmount float64      `json:"discountAmount"`
	Timestamp      string       `json:"timestamp"`
}

func displayFloat(d decimal.Decimal) float64 {
	return money.Round(d).InexactFloat64()
}

// NewRecord flattens a settled transaction.
func NewRecord(tx *entity.Transaction) Record {
	items := make([]RecordItem, len(tx.Items))
	for i, l := range tx.Items {
		items[i] = RecordItem{
			ID:       l.ID,
			Name:     l.Name,
			Price:    l.Price.InexactFloat64(),
			Category: l.Category.String(),
			Quantity: l.Quantity,
		}
	}

	return Record{
		ID:             tx.ID.String(),
		ReceiptNo:      tx.ReceiptNo,
		TableID:        tx.TableID,
		Items:          items,
		Subtotal:       displayFloat(tx.Subtotal),
		Total:          displayFloat(tx.Total),
		PaymentMethod:  tx.PaymentMethod.String(),
		Discount:       tx.Rates.DiscountPercent.InexactFloat64(),
		ServiceCharge:  tx.Rates.ServiceChargePercent.InexactFloat64(),
		Tax:            tx.Rates.TaxPercent.InexactFloat64(),
		ServiceAmount:  displayFloat(tx.ServiceAmount),
		TaxAmount:      displayFloat(tx.TaxAmount),
		DiscountAmount: displayFloat(tx.DiscountAmount),
		Timestamp:      tx.Timestamp.UTC().Format(time.RFC3339Nano),
	}
}
