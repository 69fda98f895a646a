package catalog

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/guilleguerrisi/tsb-backend-tienda/internal/domain"
)

var (
	hundred  = decimal.NewFromInt(100)
	one      = decimal.NewFromInt(1)
	maxUnits = decimal.NewFromInt(math.MaxInt64)
)

// RetailPrice derives the unit price from cost, tax % and margin %, rounded half-up to the
// nearest hundred. A non-finite cost prices at zero; non-finite percentages count as zero.
func RetailPrice(cost, taxPercent, marginPercent float64) decimal.Decimal {
	if !finite(cost) {
		return decimal.Zero
	}
	if !finite(taxPercent) {
		taxPercent = 0
	}
	if !finite(marginPercent) {
		marginPercent = 0
	}

	raw := decimal.NewFromFloat(cost).
		Mul(one.Add(decimal.NewFromFloat(taxPercent).Div(hundred))).
		Mul(one.Add(decimal.NewFromFloat(marginPercent).Div(hundred)))

	price := raw.Div(hundred).Round(0).Mul(hundred)
	if price.IsNegative() {
		return decimal.Zero
	}
	return price
}

// RetailPriceUnits is RetailPrice as whole currency units, saturating at math.MaxInt64
func RetailPriceUnits(cost, taxPercent, marginPercent float64) int64 {
	price := RetailPrice(cost, taxPercent, marginPercent)
	if price.GreaterThan(maxUnits) {
		return math.MaxInt64
	}
	return price.IntPart()
}

// PriceOf prices a catalog item with its current cost, tax and margin
func PriceOf(m *domain.Merchandise) decimal.Decimal {
	if m == nil {
		return decimal.Zero
	}
	return RetailPrice(m.CostExTax, m.TaxPercent, m.MarginPercent)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
