package money

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func hundredBaht() []Line {
	return []Line{{UnitPrice: d("60"), Quantity: 1}, {UnitPrice: d("20"), Quantity: 2}}
}

func TestSubtotal(t *testing.T) {
	got, err := Subtotal([]Line{
		{UnitPrice: d("60"), Quantity: 2},
		{UnitPrice: d("15"), Quantity: 1},
		{UnitPrice: d("10.25"), Quantity: 3},
	})
	require.NoError(t, err)
	assert.True(t, got.Equal(d("165.75")), "got %s", got)
}

func TestSubtotal_Empty(t *testing.T) {
	got, err := Subtotal(nil)
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestSubtotal_RejectsNonPositiveQuantity(t *testing.T) {
	for _, qty := range []int{0, -1} {
		_, err := Subtotal([]Line{{UnitPrice: d("10"), Quantity: 1}, {UnitPrice: d("5"), Quantity: qty}})
		assert.True(t, errors.Is(err, ErrInvalidQuantity), "qty %d: %v", qty, err)
	}
}

func TestCalculate_ServiceAndTaxNoDiscount(t *testing.T) {
	b, err := Calculate(hundredBaht(), NewRates(10, 7, 0))
	require.NoError(t, err)

	assert.Equal(t, "100.00", Format(b.Subtotal))
	assert.Equal(t, "10.00", Format(b.ServiceCharge))
	assert.Equal(t, "7.70", Format(b.Tax))
	assert.Equal(t, "0.00", Format(b.Discount))
	assert.Equal(t, "117.70", Format(b.Total))
}

func TestCalculate_WithTenPercentDiscount(t *testing.T) {
	b, err := Calculate(hundredBaht(), NewRates(10, 7, 10))
	require.NoError(t, err)

	assert.Equal(t, "10.00", Format(b.Discount))
	assert.Equal(t, "107.70", Format(b.Total))
}

func TestCalculate_TaxCompoundsOnServiceCharge(t *testing.T) {
	b, err := Calculate([]Line{{UnitPrice: d("200"), Quantity: 1}}, NewRates(10, 7, 0))
	require.NoError(t, err)
	// 7% of 220, not of 200
	assert.True(t, b.Tax.Equal(d("15.4")), "tax %s", b.Tax)
}

func TestCalculate_NoIntermediateRounding(t *testing.T) {
	// 15 * 1.10 * 0.07 = 1.155; rounding service or tax early would drift.
	b, err := Calculate([]Line{{UnitPrice: d("15"), Quantity: 1}}, NewRates(10, 7, 0))
	require.NoError(t, err)

	assert.True(t, b.Tax.Equal(d("1.155")), "tax %s", b.Tax)
	assert.True(t, b.Total.Equal(d("17.655")), "total %s", b.Total)
	assert.Equal(t, "17.66", Format(b.Total))
	assert.Equal(t, "1.16", Format(b.Rounded().Tax))
}

func TestTotal_IsIdempotent(t *testing.T) {
	lines := hundredBaht()
	rates := NewRates(10, 7, 5)
	first, err := Total(lines, rates)
	require.NoError(t, err)
	second, err := Total(lines, rates)
	require.NoError(t, err)
	assert.True(t, first.Equal(second))
}

func TestTotal_NeverBelowDiscountedFloor(t *testing.T) {
	lines := []Line{{UnitPrice: d("55"), Quantity: 3}, {UnitPrice: d("15"), Quantity: 1}}
	subtotal, err := Subtotal(lines)
	require.NoError(t, err)

	for _, svc := range []float64{0, 10, 50, 100} {
		for _, tax := range []float64{0, 7, 100} {
			for _, disc := range []float64{0, 10, 33.3, 100} {
				total, err := Total(lines, NewRates(svc, tax, disc))
				require.NoError(t, err)
				floor := subtotal.Mul(hundred.Sub(decimal.NewFromFloat(disc))).Shift(-2)
				assert.True(t, total.GreaterThanOrEqual(floor), "svc=%v tax=%v disc=%v total=%s floor=%s", svc, tax, disc, total, floor)
			}
		}
	}
}

func TestTotal_Monotonicity(t *testing.T) {
	lines := hundredBaht()
	steps := []float64{0, 1, 7, 10, 25, 50, 99.5, 100}

	var prev decimal.Decimal
	for i, svc := range steps {
		total, err := Total(lines, NewRates(svc, 7, 10))
		require.NoError(t, err)
		if i > 0 {
			assert.True(t, total.GreaterThanOrEqual(prev), "service %v", svc)
		}
		prev = total
	}

	for i, tax := range steps {
		total, err := Total(lines, NewRates(10, tax, 10))
		require.NoError(t, err)
		if i > 0 {
			assert.True(t, total.GreaterThanOrEqual(prev), "tax %v", tax)
		}
		prev = total
	}

	for i, disc := range steps {
		total, err := Total(lines, NewRates(10, 7, disc))
		require.NoError(t, err)
		if i > 0 {
			assert.True(t, total.LessThanOrEqual(prev), "discount %v", disc)
		}
		prev = total
	}
}

func TestClampPercent(t *testing.T) {
	assert.True(t, ClampPercent(d("-5")).IsZero())
	assert.True(t, ClampPercent(d("150")).Equal(hundred))
	assert.True(t, ClampPercent(d("12.5")).Equal(d("12.5")))
}

func TestNewRates_ClampsPercents(t *testing.T) {
	r := NewRates(-10, 250, 100.5)
	assert.True(t, r.ServiceChargePercent.IsZero())
	assert.True(t, r.TaxPercent.Equal(hundred))
	assert.True(t, r.DiscountPercent.Equal(hundred))

	// A negative rate would otherwise push the total under the discounted floor.
	total, err := Total(hundredBaht(), NewRates(-50, -50, 0))
	require.NoError(t, err)
	assert.Equal(t, "100.00", Format(total))
}

func TestRound_HalfUp(t *testing.T) {
	assert.Equal(t, "0.13", Format(d("0.125")))
	assert.Equal(t, "0.12", Format(d("0.1249")))
	assert.Equal(t, "2.01", Format(d("2.005")))
}

func TestAverage(t *testing.T) {
	assert.True(t, Average(d("100"), 0).IsZero())
	assert.Equal(t, "33.33", Format(Average(d("100"), 3)))
}
