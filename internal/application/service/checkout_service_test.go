package service

import (
	"context"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tewankitchen/pos-api/internal/domain/enum"
	"github.com/tewankitchen/pos-api/pkg/money"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestCheckout_AddItemRequiresTable(t *testing.T) {
	f := newFixture(t)
	state, err := f.checkout.AddItem(1)
	assert.ErrorIs(t, err, ErrNoTableSelected)
	assert.Empty(t, state.Cart)

	_, err = f.checkout.ChangeQuantity(1, 1)
	assert.ErrorIs(t, err, ErrNoTableSelected)
}

func TestCheckout_UnknownMenuItem(t *testing.T) {
	f := newFixture(t)
	_, err := f.checkout.SelectTable(context.Background(), 1)
	require.NoError(t, err)

	state, err := f.checkout.AddItem(404)
	assert.ErrorIs(t, err, ErrUnknownMenuItem)
	assert.Empty(t, state.Cart)
}

func TestCheckout_FullFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.checkout.SelectTable(ctx, 3)
	require.NoError(t, err)
	for _, id := range []int{1, 7, 7, 3} {
		_, err := f.checkout.AddItem(id)
		require.NoError(t, err)
	}
	state, err := f.checkout.RemoveItem(3)
	require.NoError(t, err)
	require.Len(t, state.Cart, 2)
	assert.Equal(t, "117.70", money.Format(state.CartQuote.Total))

	tbl, err := f.checkout.ConfirmOrder(ctx)
	require.NoError(t, err)
	assert.True(t, tbl.IsOccupied())
	assert.Empty(t, f.checkout.Snapshot().Cart)

	assert.Equal(t, "10", f.checkout.SetDiscountPercent(decimal.NewFromInt(10)).String())
	bill, err := f.checkout.Bill(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "107.70", money.Format(bill.Breakdown.Total))

	_, err = f.checkout.Pay(ctx)
	assert.ErrorIs(t, err, ErrPaymentMethodRequired)

	require.NoError(t, f.checkout.SetPaymentMethod(enum.PaymentMethodQR))
	tx, err := f.checkout.Pay(ctx)
	require.NoError(t, err)
	assert.Equal(t, "107.70", money.Format(tx.Total))
	assert.True(t, tx.Rates.DiscountPercent.Equal(decimal.NewFromInt(10)))

	after := f.checkout.Snapshot()
	assert.Equal(t, 0, after.TableID)
	assert.Equal(t, enum.PaymentMethodNone, after.PaymentMethod)
	assert.True(t, after.DiscountPercent.IsZero())

	tbl, err = f.tables.GetTable(ctx, 3)
	require.NoError(t, err)
	assert.False(t, tbl.IsOccupied())
}

func TestCheckout_DiscountIsClamped(t *testing.T) {
	f := newFixture(t)
	assert.True(t, f.checkout.SetDiscountPercent(decimal.NewFromInt(150)).Equal(decimal.NewFromInt(100)))
	assert.True(t, f.checkout.SetDiscountPercent(decimal.NewFromInt(-3)).IsZero())
}

func TestCheckout_SwitchingTableDiscardsCart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.checkout.SelectTable(ctx, 1)
	require.NoError(t, err)
	_, err = f.checkout.AddItem(2)
	require.NoError(t, err)

	_, err = f.checkout.SelectTable(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, f.checkout.Snapshot().Cart, 1)

	_, err = f.checkout.SelectTable(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, f.checkout.Snapshot().Cart)

	_, err = f.checkout.SelectTable(ctx, 77)
	assert.ErrorIs(t, err, ErrTableNotFound)
	assert.Equal(t, 2, f.checkout.Snapshot().TableID)
}

func TestCheckout_ConfirmEmptyCartRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.checkout.ConfirmOrder(ctx)
	assert.ErrorIs(t, err, ErrNoTableSelected)

	_, err = f.checkout.SelectTable(ctx, 1)
	require.NoError(t, err)
	_, err = f.checkout.ConfirmOrder(ctx)
	assert.ErrorIs(t, err, ErrEmptyOrder)

	tbl, err := f.tables.GetTable(ctx, 1)
	require.NoError(t, err)
	assert.False(t, tbl.IsOccupied())
}

func TestCheckout_Reset(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.checkout.SelectTable(ctx, 1)
	require.NoError(t, err)
	_, err = f.checkout.AddItem(2)
	require.NoError(t, err)
	require.NoError(t, f.checkout.SetPaymentMethod(enum.PaymentMethodCash))

	f.checkout.Reset()
	s := f.checkout.Snapshot()
	assert.Equal(t, 0, s.TableID)
	assert.Empty(t, s.Cart)
	assert.Equal(t, enum.PaymentMethodNone, s.PaymentMethod)
}

func TestCheckoutRegistry_SeparateTerminals(t *testing.T) {
	f := newFixture(t)
	reg := NewCheckoutRegistry(f.menu, f.tables, f.ledger, money.NewRates(10, 7, 0))

	a := reg.For("till-a")
	assert.Same(t, a, reg.For("till-a"))

	_, err := a.SelectTable(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 0, reg.For("till-b").Snapshot().TableID)
}

func TestCheckout_HugeQuantityKeepsValidQuote(t *testing.T) {
	f := newFixture(t)
	core, logs := observer.New(zapcore.ErrorLevel)
	f.ledger.log = zap.New(core)
	co := NewCheckoutService(f.menu, f.tables, f.ledger, money.NewRates(10, 7, 0))

	_, err := co.SelectTable(context.Background(), 1)
	require.NoError(t, err)
	_, err = co.AddItem(6)
	require.NoError(t, err)
	_, err = co.ChangeQuantity(6, math.MaxInt)
	require.NoError(t, err)

	// One more unit must not wrap the line negative.
	state, err := co.AddItem(6)
	require.NoError(t, err)
	require.Len(t, state.Cart, 1)
	assert.Equal(t, math.MaxInt, state.Cart[0].Quantity)

	want := decimal.NewFromInt(10).Mul(decimal.NewFromInt(math.MaxInt))
	assert.True(t, state.CartQuote.Subtotal.Equal(want))
	assert.True(t, co.Snapshot().CartQuote.Total.GreaterThan(want))
	assert.Zero(t, logs.Len())
}
