package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/guilleguerrisi/tsb-backend-tienda/internal/domain"
)

// PricedLine is a line item with its unit price and subtotal resolved
type PricedLine struct {
	Code        string
	Description string
	Quantity    float64
	Unit        decimal.Decimal
	Subtotal    decimal.Decimal
}

// PriceLines prices line items against the current catalog, keyed by codigo_int.
// Items missing from the catalog fall back to their own price snapshot. The total is never negative.
func PriceLines(items []domain.LineItem, current map[string]*domain.Merchandise) ([]PricedLine, decimal.Decimal) {
	lines := make([]PricedLine, 0, len(items))
	total := decimal.Zero

	for _, it := range items {
		line := PricedLine{
			Code:        it.Code,
			Description: it.Description,
			Quantity:    it.Quantity(),
		}

		if m, ok := current[it.Code]; ok && m != nil {
			line.Unit = PriceOf(m)
			if line.Description == "" {
				line.Description = m.ShortDescription
			}
		} else if p := float64(it.Price); p > 0 {
			line.Unit = decimal.NewFromFloat(p)
		} else {
			line.Unit = decimal.Zero
		}

		line.Subtotal = line.Unit.Mul(decimal.NewFromFloat(line.Quantity))
		total = total.Add(line.Subtotal)
		lines = append(lines, line)
	}

	if total.IsNegative() {
		total = decimal.Zero
	}
	return lines, total
}

// Codes returns the distinct non-empty codes of items, in first-seen order
func Codes(items []domain.LineItem) []string {
	seen := make(map[string]struct{}, len(items))
	codes := make([]string, 0, len(items))
	for _, it := range items {
		if it.Code == "" {
			continue
		}
		if _, dup := seen[it.Code]; dup {
			continue
		}
		seen[it.Code] = struct{}{}
		codes = append(codes, it.Code)
	}
	return codes
}
