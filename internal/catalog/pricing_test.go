package catalog

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guilleguerrisi/tsb-backend-tienda/internal/domain"
)

func TestRetailPrice(t *testing.T) {
	tests := []struct {
		name   string
		cost   float64
		tax    float64
		margin float64
		want   int64
	}{
		{name: "reference example", cost: 1000, tax: 21, margin: 30, want: 1600},
		{name: "no tax no margin", cost: 1234, want: 1200},
		{name: "half rounds up", cost: 1550, want: 1600},
		{name: "just under half", cost: 1549, want: 1500},
		{name: "tax only", cost: 100, tax: 21, want: 100},
		{name: "zero cost", cost: 0, tax: 21, margin: 30, want: 0},
		{name: "negative clamps", cost: -1000, want: 0},
		{name: "NaN cost", cost: math.NaN(), tax: 21, margin: 30, want: 0},
		{name: "Inf cost", cost: math.Inf(1), want: 0},
		{name: "NaN margin counts as zero", cost: 1000, tax: 21, margin: math.NaN(), want: 1200},
		{name: "beyond int64 saturates", cost: 1e30, want: math.MaxInt64},
		{name: "math.MaxFloat64 saturates", cost: math.MaxFloat64, tax: 21, margin: 30, want: math.MaxInt64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RetailPriceUnits(tt.cost, tt.tax, tt.margin))
		})
	}
}

func TestPriceOfNil(t *testing.T) {
	assert.True(t, PriceOf(nil).IsZero())
}

func TestPriceLines(t *testing.T) {
	items, err := domain.ParseLineItems(json.RawMessage(`[
		{"codigo_int":"M1","cantidad":2},
		{"codigo_int":"GONE","descripcion_corta":"Vela","cantidad":3,"price":"500"},
		{"codigo_int":"NOPRICE"}
	]`))
	require.NoError(t, err)

	current := map[string]*domain.Merchandise{
		"M1": {Code: "M1", ShortDescription: "Mesa", CostExTax: 1000, TaxPercent: 21, MarginPercent: 30},
	}

	lines, total := PriceLines(items, current)
	require.Len(t, lines, 3)

	assert.Equal(t, "Mesa", lines[0].Description)
	assert.Equal(t, int64(1600), lines[0].Unit.IntPart())
	assert.Equal(t, int64(3200), lines[0].Subtotal.IntPart())

	assert.Equal(t, "Vela", lines[1].Description)
	assert.Equal(t, int64(1500), lines[1].Subtotal.IntPart())

	assert.True(t, lines[2].Unit.IsZero())
	assert.Equal(t, int64(4700), total.IntPart())
}

func TestPriceLinesEmpty(t *testing.T) {
	lines, total := PriceLines(nil, nil)
	assert.Empty(t, lines)
	assert.True(t, total.IsZero())
}

func TestCodes(t *testing.T) {
	items := []domain.LineItem{{Code: "A"}, {Code: ""}, {Code: "B"}, {Code: "A"}}
	assert.Equal(t, []string{"A", "B"}, Codes(items))
}
