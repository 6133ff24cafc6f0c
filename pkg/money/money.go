// Package money implements the bill pipeline: subtotal, service charge, tax,
// discount and total. All arithmetic is exact decimal; rounding happens only
// when a value is formatted for display.
package money

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// DisplayPlaces is the number of decimal places shown to customers.
const DisplayPlaces = 2

// ErrInvalidQuantity is returned when a line carries a non-positive quantity.
var ErrInvalidQuantity = errors.New("money: line quantity must be positive")

var hundred = decimal.NewFromInt(100)

// Line is the priced view of an order line.
type Line struct {
	UnitPrice decimal.Decimal
	Quantity  int
}

// Rates holds the percentages applied when totalling a bill. Each value is
// expected to be within [0,100]; callers clamp at the input boundary.
type Rates struct {
	ServiceChargePercent decimal.Decimal `json:"service_charge_percent"`
	TaxPercent           decimal.Decimal `json:"tax_percent"`
	DiscountPercent      decimal.Decimal `json:"discount_percent"`
}

// NewRates builds a Rates value from plain numbers. Each percent is clamped
// to [0,100].
func NewRates(serviceCharge, tax, discount float64) Rates {
	return Rates{
		ServiceChargePercent: ClampPercent(decimal.NewFromFloat(serviceCharge)),
		TaxPercent:           ClampPercent(decimal.NewFromFloat(tax)),
		DiscountPercent:      ClampPercent(decimal.NewFromFloat(discount)),
	}
}

// WithDiscount returns a copy of r using the given discount percent.
func (r Rates) WithDiscount(percent decimal.Decimal) Rates {
	r.DiscountPercent = percent
	return r
}

// Breakdown is every intermediate amount of a bill, unrounded.
type Breakdown struct {
	Subtotal      decimal.Decimal
	ServiceCharge decimal.Decimal
	Tax           decimal.Decimal
	Discount      decimal.Decimal
	Total         decimal.Decimal
}

// Rounded returns a copy with every amount rounded for display.
func (b Breakdown) Rounded() Breakdown {
	return Breakdown{
		Subtotal:      Round(b.Subtotal),
		ServiceCharge: Round(b.ServiceCharge),
		Tax:           Round(b.Tax),
		Discount:      Round(b.Discount),
		Total:         Round(b.Total),
	}
}

// Subtotal sums unit price times quantity over all lines.
func Subtotal(lines []Line) (decimal.Decimal, error) {
	sum := decimal.Zero
	for i, l := range lines {
		if l.Quantity <= 0 {
			return decimal.Zero, fmt.Errorf("line %d has quantity %d: %w", i, l.Quantity, ErrInvalidQuantity)
		}
		sum = sum.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return sum, nil
}

// Calculate runs the full pipeline. The order is fixed: service charge is
// taken on the subtotal, tax on subtotal plus service charge, and the
// discount on the raw subtotal before being subtracted at the end.
func Calculate(lines []Line, rates Rates) (Breakdown, error) {
	subtotal, err := Subtotal(lines)
	if err != nil {
		return Breakdown{}, err
	}

	service := PercentOf(subtotal, rates.ServiceChargePercent)
	tax := PercentOf(subtotal.Add(service), rates.TaxPercent)
	discount := PercentOf(subtotal, rates.DiscountPercent)

	return Breakdown{
		Subtotal:      subtotal,
		ServiceCharge: service,
		Tax:           tax,
		Discount:      discount,
		Total:         subtotal.Add(service).Add(tax).Sub(discount),
	}, nil
}

// Total is Calculate reduced to its final amount.
func Total(lines []Line, rates Rates) (decimal.Decimal, error) {
	b, err := Calculate(lines, rates)
	if err != nil {
		return decimal.Zero, err
	}
	return b.Total, nil
}

// PercentOf returns base * percent / 100 without loss of precision.
func PercentOf(base, percent decimal.Decimal) decimal.Decimal {
	return base.Mul(percent).Shift(-2)
}

// ClampPercent bounds p to [0,100].
func ClampPercent(p decimal.Decimal) decimal.Decimal {
	if p.IsNegative() {
		return decimal.Zero
	}
	if p.GreaterThan(hundred) {
		return hundred
	}
	return p
}

// Round rounds to DisplayPlaces, halves away from zero.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(DisplayPlaces)
}

// Format renders d with exactly DisplayPlaces decimals, e.g. "117.70".
func Format(d decimal.Decimal) string {
	return d.StringFixed(DisplayPlaces)
}

// Average divides total by count, returning zero for an empty count.
func Average(total decimal.Decimal, count int) decimal.Decimal {
	if count <= 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(count)))
}
