package service

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tewankitchen/pos-api/internal/domain/enum"
	"github.com/tewankitchen/pos-api/pkg/money"
)

// ReportService derives daily statistics from the ledger. It never writes.
type ReportService struct {
	ledger *LedgerService
	loc    *time.Location
}

// NewReportService creates a new report service. Days are calendar days in loc.
func NewReportService(ledger *LedgerService, loc *time.Location) *ReportService {
	if loc == nil {
		loc = time.Local
	}
	return &ReportService{ledger: ledger, loc: loc}
}

// DailyStats represents the sales summary of one day
type DailyStats struct {
	Date             string                 `json:"date"`
	TotalRevenue     decimal.Decimal        `json:"total_revenue"`
	TotalOrders      int                    `json:"total_orders"`
	AverageOrder     decimal.Decimal        `json:"average_order"`
	PopularItems     map[string]int         `json:"popular_items"`
	TopItems         []ItemSalesPoint       `json:"top_items"`
	PaymentBreakdown []PaymentMethodSummary `json:"payment_breakdown"`
}

// ItemSalesPoint represents the quantity sold of one menu item
type ItemSalesPoint struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// PaymentMethodSummary represents revenue taken through one payment method
type PaymentMethodSummary struct {
	Method  enum.PaymentMethod `json:"method"`
	Orders  int                `json:"orders"`
	Revenue decimal.Decimal    `json:"revenue"`
}

// DayBounds returns the start and end of the calendar day containing t.
func (s *ReportService) DayBounds(t time.Time) (time.Time, time.Time) {
	local := t.In(s.loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.loc)
	return start, start.AddDate(0, 0, 1)
}

// Location is the zone days are counted in.
func (s *ReportService) Location() *time.Location {
	return s.loc
}

// DailyStats summarises the transactions of the day containing asOf. top
// limits TopItems; zero or less keeps every item.
func (s *ReportService) DailyStats(ctx context.Context, asOf time.Time, top int) (*DailyStats, error) {
	from, to := s.DayBounds(asOf)
	txs, err := s.ledger.Between(ctx, from, to)
	if err != nil {
		return nil, err
	}

	stats := &DailyStats{
		Date:         from.Format("2006-01-02"),
		TotalRevenue: decimal.Zero,
		PopularItems: make(map[string]int),
	}

	byMethod := make(map[enum.PaymentMethod]*PaymentMethodSummary)
	for _, tx := range txs {
		stats.TotalRevenue = stats.TotalRevenue.Add(tx.Total)
		stats.TotalOrders++

		for _, line := range tx.Items {
			stats.PopularItems[line.Name] += line.Quantity
		}

		sum, ok := byMethod[tx.PaymentMethod]
		if !ok {
			sum = &PaymentMethodSummary{Method: tx.PaymentMethod, Revenue: decimal.Zero}
			byMethod[tx.PaymentMethod] = sum
		}
		sum.Orders++
		sum.Revenue = sum.Revenue.Add(tx.Total)
	}

	stats.AverageOrder = money.Average(stats.TotalRevenue, stats.TotalOrders)
	stats.TopItems = TopItems(stats.PopularItems, top)
	for _, m := range enum.PaymentMethods() {
		if sum, ok := byMethod[m]; ok {
			stats.PaymentBreakdown = append(stats.PaymentBreakdown, *sum)
		}
	}
	return stats, nil
}

// TopItems sorts items by quantity descending, then name, and keeps the
// first n (all when n <= 0).
func TopItems(popular map[string]int, n int) []ItemSalesPoint {
	points := make([]ItemSalesPoint, 0, len(popular))
	for name, qty := range popular {
		points = append(points, ItemSalesPoint{Name: name, Quantity: qty})
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Quantity != points[j].Quantity {
			return points[i].Quantity > points[j].Quantity
		}
		return points[i].Name < points[j].Name
	})
	if n > 0 && len(points) > n {
		points = points[:n]
	}
	return points
}
