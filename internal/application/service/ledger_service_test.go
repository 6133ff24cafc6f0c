package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tewankitchen/pos-api/internal/domain/entity"
	"github.com/tewankitchen/pos-api/internal/domain/enum"
	"github.com/tewankitchen/pos-api/pkg/money"
)

// Rad Na Pork 60 + 2x Soft Drink 20 = 100
func seatHundredBaht(t *testing.T, f *fixture, tableID int) {
	t.Helper()
	_, err := f.tables.ConfirmOrder(context.Background(), tableID, f.cartOf(t, 1, 7, 7))
	require.NoError(t, err)
}

func TestRecordPayment_SettlesTable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seatHundredBaht(t, f, 1)

	rates := money.NewRates(10, 7, 0)
	tx, err := f.ledger.RecordPayment(ctx, 1, enum.PaymentMethodCash, rates)
	require.NoError(t, err)

	assert.Equal(t, "117.70", money.Format(tx.Total))
	assert.Equal(t, "10.00", money.Format(tx.ServiceAmount))
	assert.Equal(t, "7.70", money.Format(tx.TaxAmount))
	assert.Equal(t, entity.ReceiptNumber(tx.ID), tx.ReceiptNo)
	assert.Equal(t, enum.PaymentMethodCash, tx.PaymentMethod)

	expected, err := money.Total(tx.Items.Lines(), rates)
	require.NoError(t, err)
	assert.True(t, tx.Total.Equal(expected))

	all, err := f.ledger.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	tbl, err := f.tables.GetTable(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, enum.TableStatusAvailable, tbl.Status)
	assert.Empty(t, tbl.Order)

	assert.Equal(t, 1, f.notifier.count())
}

func TestRecordPayment_WithDiscount(t *testing.T) {
	f := newFixture(t)
	seatHundredBaht(t, f, 2)

	tx, err := f.ledger.RecordPayment(context.Background(), 2, enum.PaymentMethodQR, money.NewRates(10, 7, 10))
	require.NoError(t, err)
	assert.Equal(t, "10.00", money.Format(tx.DiscountAmount))
	assert.Equal(t, "107.70", money.Format(tx.Total))
}

func TestRecordPayment_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rates := money.NewRates(10, 7, 0)

	_, err := f.ledger.RecordPayment(ctx, 1, enum.PaymentMethodCash, rates)
	assert.ErrorIs(t, err, ErrNothingToSettle)

	seatHundredBaht(t, f, 1)
	_, err = f.ledger.RecordPayment(ctx, 1, enum.PaymentMethodNone, rates)
	assert.ErrorIs(t, err, ErrPaymentMethodRequired)
	assert.ErrorIs(t, err, ErrNothingToSettle)

	_, err = f.ledger.RecordPayment(ctx, 0, enum.PaymentMethodCash, rates)
	assert.ErrorIs(t, err, ErrNoTableSelected)

	_, err = f.ledger.RecordPayment(ctx, 99, enum.PaymentMethodCash, rates)
	assert.ErrorIs(t, err, ErrTableNotFound)

	all, err := f.ledger.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	tbl, err := f.tables.GetTable(ctx, 1)
	require.NoError(t, err)
	assert.True(t, tbl.IsOccupied())
	assert.Len(t, tbl.Order, 2)
	assert.Equal(t, 0, f.notifier.count())
}

func TestRecordPayment_SnapshotDoesNotAlias(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seatHundredBaht(t, f, 1)

	tx, err := f.ledger.RecordPayment(ctx, 1, enum.PaymentMethodCard, money.NewRates(10, 7, 0))
	require.NoError(t, err)
	tx.Items[0].Quantity = 50

	seatHundredBaht(t, f, 1)

	stored, err := f.ledger.Get(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Items[0].Quantity)
	assert.Len(t, stored.Items, 2)
}

func TestRecordPayment_ConcurrentPayOnceOnly(t *testing.T) {
	f := newFixture(t)
	seatHundredBaht(t, f, 4)

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded, rejected := 0, 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.ledger.RecordPayment(context.Background(), 4, enum.PaymentMethodCash, money.NewRates(10, 7, 0))
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				succeeded++
			} else if errors.Is(err, ErrNothingToSettle) {
				rejected++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 19, rejected)
}

func TestRecordPayment_InvalidCommittedLineFailsLoudly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seatHundredBaht(t, f, 1)

	// corrupt the committed order directly through the repository
	require.NoError(t, f.ledger.tables.Update(ctx, 1, func(tbl *entity.Table) error {
		tbl.Order[0].Quantity = -1
		return nil
	}))

	_, err := f.ledger.RecordPayment(ctx, 1, enum.PaymentMethodCash, money.NewRates(10, 7, 0))
	assert.ErrorIs(t, err, money.ErrInvalidQuantity)

	tbl, err := f.tables.GetTable(ctx, 1)
	require.NoError(t, err)
	assert.True(t, tbl.IsOccupied())
}

func TestLedger_RecentAndIDs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var ids []int64
	for i := 0; i < 7; i++ {
		seatHundredBaht(t, f, 1+i%6)
		tx, err := f.ledger.RecordPayment(ctx, 1+i%6, enum.PaymentMethodCash, money.NewRates(10, 7, 0))
		require.NoError(t, err)
		ids = append(ids, tx.ID.Int64())
	}
	for i := 1; i < len(ids); i++ {
		assert.Greater(t, ids[i], ids[i-1])
	}

	recent, err := f.ledger.Recent(ctx, 5)
	require.NoError(t, err)
	require.Len(t, recent, 5)
	assert.Equal(t, ids[6], recent[0].ID.Int64())
	assert.Equal(t, ids[2], recent[4].ID.Int64())

	_, err = f.ledger.Get(ctx, 12345)
	assert.ErrorIs(t, err, ErrTransactionNotFound)
}

func TestReport_DailyStatsExcludesOtherDays(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	today := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)

	f.ledger.now = func() time.Time { return yesterday }
	_, err := f.tables.ConfirmOrder(ctx, 1, f.cartOf(t, 5, 5, 5))
	require.NoError(t, err)
	_, err = f.ledger.RecordPayment(ctx, 1, enum.PaymentMethodCard, money.NewRates(10, 7, 0))
	require.NoError(t, err)

	f.ledger.now = func() time.Time { return today }
	seatHundredBaht(t, f, 2)
	todayTx, err := f.ledger.RecordPayment(ctx, 2, enum.PaymentMethodCash, money.NewRates(10, 7, 0))
	require.NoError(t, err)

	stats, err := f.reports.DailyStats(ctx, today, 5)
	require.NoError(t, err)

	assert.Equal(t, "2026-06-15", stats.Date)
	assert.Equal(t, 1, stats.TotalOrders)
	assert.True(t, stats.TotalRevenue.Equal(todayTx.Total))
	assert.Equal(t, map[string]int{"Rad Na Pork": 1, "Soft Drink": 2}, stats.PopularItems)
	assert.NotContains(t, stats.PopularItems, "Fried Rice Beef")
	assert.True(t, stats.AverageOrder.Equal(todayTx.Total))

	require.Len(t, stats.TopItems, 2)
	assert.Equal(t, ItemSalesPoint{Name: "Soft Drink", Quantity: 2}, stats.TopItems[0])

	require.Len(t, stats.PaymentBreakdown, 1)
	assert.Equal(t, enum.PaymentMethodCash, stats.PaymentBreakdown[0].Method)
}

func TestReport_EmptyDay(t *testing.T) {
	f := newFixture(t)
	stats, err := f.reports.DailyStats(context.Background(), time.Now(), 5)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalOrders)
	assert.True(t, stats.TotalRevenue.IsZero())
	assert.True(t, stats.AverageOrder.IsZero())
	assert.Empty(t, stats.TopItems)
}

func TestTopItems(t *testing.T) {
	got := TopItems(map[string]int{"Water": 3, "Soft Drink": 3, "Fried Egg": 9, "Rad Na Pork": 1}, 3)
	assert.Equal(t, []ItemSalesPoint{
		{Name: "Fried Egg", Quantity: 9},
		{Name: "Soft Drink", Quantity: 3},
		{Name: "Water", Quantity: 3},
	}, got)
	assert.Len(t, TopItems(map[string]int{"a": 1, "b": 2}, 0), 2)
}

func TestReport_AverageOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seatHundredBaht(t, f, 1)
	_, err := f.ledger.RecordPayment(ctx, 1, enum.PaymentMethodCash, money.NewRates(0, 0, 0))
	require.NoError(t, err)
	_, err = f.tables.ConfirmOrder(ctx, 2, f.cartOf(t, 6, 6))
	require.NoError(t, err)
	_, err = f.ledger.RecordPayment(ctx, 2, enum.PaymentMethodCash, money.NewRates(0, 0, 0))
	require.NoError(t, err)

	stats, err := f.reports.DailyStats(ctx, time.Now(), 0)
	require.NoError(t, err)
	assert.True(t, stats.AverageOrder.Equal(decimal.NewFromInt(60)), stats.AverageOrder.String())
	require.Len(t, stats.PaymentBreakdown, 1)
	assert.Equal(t, 2, stats.PaymentBreakdown[0].Orders)
}
