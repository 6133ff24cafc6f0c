package service

import (
	"context"
	"fmt"
	"time"

	"github.com/tewankitchen/pos-api/pkg/export"
	"github.com/tewankitchen/pos-api/pkg/money"
)

// ExportService renders reports as downloadable workbooks.
type ExportService struct {
	reports *ReportService
	ledger  *LedgerService
}

// NewExportService creates a new export service
func NewExportService(reports *ReportService, ledger *LedgerService) *ExportService {
	return &ExportService{reports: reports, ledger: ledger}
}

// DailyXLSX returns the workbook for the day containing date and a file name
// for it.
func (s *ExportService) DailyXLSX(ctx context.Context, date time.Time) ([]byte, string, error) {
	stats, err := s.reports.DailyStats(ctx, date, 0)
	if err != nil {
		return nil, "", err
	}
	from, to := s.reports.DayBounds(date)
	txs, err := s.ledger.Between(ctx, from, to)
	if err != nil {
		return nil, "", err
	}

	loc := s.reports.Location()
	txRows := make([][]interface{}, 0, len(txs))
	for _, tx := range txs {
		b := tx.Breakdown().Rounded()
		txRows = append(txRows, []interface{}{
			tx.ReceiptNo,
			tx.Timestamp.In(loc).Format("15:04:05"),
			tx.TableID,
			tx.Items.ItemCount(),
			tx.PaymentMethod.String(),
			b.Subtotal.InexactFloat64(),
			b.ServiceCharge.InexactFloat64(),
			b.Tax.InexactFloat64(),
			b.Discount.InexactFloat64(),
			b.Total.InexactFloat64(),
		})
	}

	itemRows := make([][]interface{}, 0, len(stats.TopItems))
	for _, it := range stats.TopItems {
		itemRows = append(itemRows, []interface{}{it.Name, it.Quantity})
	}

	summary := [][]interface{}{
		{"Date", stats.Date},
		{"Total revenue", money.Round(stats.TotalRevenue).InexactFloat64()},
		{"Orders", stats.TotalOrders},
		{"Average order", money.Round(stats.AverageOrder).InexactFloat64()},
	}
	for _, p := range stats.PaymentBreakdown {
		summary = append(summary, []interface{}{"Revenue " + p.Method.String(), money.Round(p.Revenue).InexactFloat64()})
	}

	data, err := export.WriteXLSX(
		export.Sheet{Name: "Summary", Headers: []string{"Metric", "Value"}, Rows: summary},
		export.Sheet{
			Name:    "Transactions",
			Headers: []string{"Receipt", "Time", "Table", "Items", "Payment", "Subtotal", "Service", "Tax", "Discount", "Total"},
			Rows:    txRows,
		},
		export.Sheet{Name: "Popular Items", Headers: []string{"Item", "Quantity"}, Rows: itemRows},
	)
	if err != nil {
		return nil, "", fmt.Errorf("build daily workbook: %w", err)
	}
	return data, fmt.Sprintf("sales-%s.xlsx", stats.Date), nil
}
