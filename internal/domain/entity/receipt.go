package entity

import "github.com/shopspring/decimal"

// ReceiptHeader holds the restaurant header printed at the top of a receipt.
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	TaxID     string `json:"tax_id,omitempty"`
}

// ReceiptItem represents a single line item on a receipt.
type ReceiptItem struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

// Receipt is a printable view of either an open bill or a settled
// transaction. It is composed at print time and never stored.
type Receipt struct {
	Header          ReceiptHeader   `json:"header"`
	Title           string          `json:"title"`
	ReceiptNo       string          `json:"receipt_no,omitempty"`
	Date            string          `json:"date"`
	TableID         int             `json:"table_id"`
	PaymentMethod   string          `json:"payment_method,omitempty"`
	Items           []ReceiptItem   `json:"items"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	ServicePercent  decimal.Decimal `json:"service_percent"`
	ServiceCharge   decimal.Decimal `json:"service_charge"`
	TaxPercent      decimal.Decimal `json:"tax_percent"`
	Tax             decimal.Decimal `json:"tax"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	Discount        decimal.Decimal `json:"discount"`
	Total           decimal.Decimal `json:"total"`
}

// ReceiptItems converts order lines to receipt lines.
func ReceiptItems(o Order) []ReceiptItem {
	items := make([]ReceiptItem, len(o))
	for i, l := range o {
		items[i] = ReceiptItem{Name: l.Name, Quantity: l.Quantity, UnitPrice: l.Price, Total: l.LineTotal()}
	}
	return items
}
