package response

import (
	"time"

	"github.com/tewankitchen/pos-api/internal/application/service"
	"github.com/tewankitchen/pos-api/internal/domain/entity"
	"github.com/tewankitchen/pos-api/internal/domain/enum"
	"github.com/tewankitchen/pos-api/pkg/money"
)

// Amounts are rendered as strings with two decimals. Rounding happens here
// and nowhere earlier.

// MenuItemResponse represents a menu item in API responses
type MenuItemResponse struct {
	ID       int           `json:"id"`
	Name     string        `json:"name"`
	Price    string        `json:"price"`
	Category enum.Category `json:"category"`
}

// LineResponse represents one order line
type LineResponse struct {
	MenuItemID int    `json:"menu_item_id"`
	Name       string `json:"name"`
	UnitPrice  string `json:"unit_price"`
	Quantity   int    `json:"quantity"`
	LineTotal  string `json:"line_total"`
}

// BreakdownResponse represents a priced bill
type BreakdownResponse struct {
	Subtotal      string `json:"subtotal"`
	ServiceCharge string `json:"service_charge"`
	Tax           string `json:"tax"`
	Discount      string `json:"discount"`
	Total         string `json:"total"`
}

// RatesResponse represents the percentages a bill was priced with
type RatesResponse struct {
	ServiceChargePercent string `json:"service_charge_percent"`
	TaxPercent           string `json:"tax_percent"`
	DiscountPercent      string `json:"discount_percent"`
}

// TableResponse represents a table and its committed order
type TableResponse struct {
	ID        int              `json:"id"`
	Status    enum.TableStatus `json:"status"`
	ItemCount int              `json:"item_count"`
	Order     []LineResponse   `json:"order"`
}

// CheckoutResponse represents a terminal's checkout state
type CheckoutResponse struct {
	TableID       int               `json:"table_id"`
	Cart          []LineResponse    `json:"cart"`
	CartQuote     BreakdownResponse `json:"cart_quote"`
	Rates         RatesResponse     `json:"rates"`
	PaymentMethod string            `json:"payment_method"`
}

// BillResponse represents the quote for a table's committed order
type BillResponse struct {
	Table     TableResponse     `json:"table"`
	Breakdown BreakdownResponse `json:"breakdown"`
	Rates     RatesResponse     `json:"rates"`
}

// TransactionResponse represents a settled bill
type TransactionResponse struct {
	ID            string            `json:"id"`
	ReceiptNo     string            `json:"receipt_no"`
	TableID       int               `json:"table_id"`
	Items         []LineResponse    `json:"items"`
	Amounts       BreakdownResponse `json:"amounts"`
	Rates         RatesResponse     `json:"rates"`
	PaymentMethod string            `json:"payment_method"`
	Timestamp     time.Time         `json:"timestamp"`
}

// ItemSalesResponse represents quantity sold of one item
type ItemSalesResponse struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// PaymentMethodSummaryResponse represents revenue for one payment method
type PaymentMethodSummaryResponse struct {
	Method  string `json:"method"`
	Orders  int    `json:"orders"`
	Revenue string `json:"revenue"`
}

// DailyStatsResponse represents the daily sales summary
type DailyStatsResponse struct {
	Date             string                         `json:"date"`
	TotalRevenue     string                         `json:"total_revenue"`
	TotalOrders      int                            `json:"total_orders"`
	AverageOrder     string                         `json:"average_order"`
	PopularItems     map[string]int                 `json:"popular_items"`
	TopItems         []ItemSalesResponse            `json:"top_items"`
	PaymentBreakdown []PaymentMethodSummaryResponse `json:"payment_breakdown"`
}

func NewMenuItemResponse(m entity.MenuItem) MenuItemResponse {
	return MenuItemResponse{ID: m.ID, Name: m.Name, Price: money.Format(m.Price), Category: m.Category}
}

func NewMenuResponse(items []entity.MenuItem) []MenuItemResponse {
	out := make([]MenuItemResponse, len(items))
	for i, m := range items {
		out[i] = NewMenuItemResponse(m)
	}
	return out
}

func NewLinesResponse(o entity.Order) []LineResponse {
	out := make([]LineResponse, len(o))
	for i, l := range o {
		out[i] = LineResponse{
			MenuItemID: l.ID,
			Name:       l.Name,
			UnitPrice:  money.Format(l.Price),
			Quantity:   l.Quantity,
			LineTotal:  money.Format(l.LineTotal()),
		}
	}
	return out
}

func NewBreakdownResponse(b money.Breakdown) BreakdownResponse {
	return BreakdownResponse{
		Subtotal:      money.Format(b.Subtotal),
		ServiceCharge: money.Format(b.ServiceCharge),
		Tax:           money.Format(b.Tax),
		Discount:      money.Format(b.Discount),
		Total:         money.Format(b.Total),
	}
}

func NewRatesResponse(r money.Rates) RatesResponse {
	return RatesResponse{
		ServiceChargePercent: r.ServiceChargePercent.String(),
		TaxPercent:           r.TaxPercent.String(),
		DiscountPercent:      r.DiscountPercent.String(),
	}
}

func NewTableResponse(t *entity.Table) TableResponse {
	return TableResponse{
		ID:        t.ID,
		Status:    t.Status,
		ItemCount: t.Order.ItemCount(),
		Order:     NewLinesResponse(t.Order),
	}
}

func NewTablesResponse(tables []entity.Table) []TableResponse {
	out := make([]TableResponse, len(tables))
	for i := range tables {
		out[i] = NewTableResponse(&tables[i])
	}
	return out
}

func NewCheckoutResponse(s service.CheckoutState) CheckoutResponse {
	return CheckoutResponse{
		TableID:       s.TableID,
		Cart:          NewLinesResponse(s.Cart),
		CartQuote:     NewBreakdownResponse(s.CartQuote),
		Rates:         NewRatesResponse(s.Rates),
		PaymentMethod: s.PaymentMethod.String(),
	}
}

func NewBillResponse(b *service.Bill) BillResponse {
	return BillResponse{
		Table:     NewTableResponse(b.Table),
		Breakdown: NewBreakdownResponse(b.Breakdown),
		Rates:     NewRatesResponse(b.Rates),
	}
}

func NewTransactionResponse(tx *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:            tx.ID.String(),
		ReceiptNo:     tx.ReceiptNo,
		TableID:       tx.TableID,
		Items:         NewLinesResponse(tx.Items),
		Amounts:       NewBreakdownResponse(tx.Breakdown()),
		Rates:         NewRatesResponse(tx.Rates),
		PaymentMethod: tx.PaymentMethod.String(),
		Timestamp:     tx.Timestamp,
	}
}

func NewTransactionsResponse(txs []entity.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(txs))
	for i := range txs {
		out[i] = NewTransactionResponse(&txs[i])
	}
	return out
}

func NewDailyStatsResponse(s *service.DailyStats) DailyStatsResponse {
	out := DailyStatsResponse{
		Date:             s.Date,
		TotalRevenue:     money.Format(s.TotalRevenue),
		TotalOrders:      s.TotalOrders,
		AverageOrder:     money.Format(s.AverageOrder),
		PopularItems:     s.PopularItems,
		TopItems:         make([]ItemSalesResponse, len(s.TopItems)),
		PaymentBreakdown: make([]PaymentMethodSummaryResponse, len(s.PaymentBreakdown)),
	}
	for i, p := range s.TopItems {
		out.TopItems[i] = ItemSalesResponse{Name: p.Name, Quantity: p.Quantity}
	}
	for i, p := range s.PaymentBreakdown {
		out.PaymentBreakdown[i] = PaymentMethodSummaryResponse{
			Method:  p.Method.String(),
			Orders:  p.Orders,
			Revenue: money.Format(p.Revenue),
		}
	}
	return out
}
