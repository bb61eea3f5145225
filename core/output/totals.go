package output

import (
	"math"

	"github.com/shopspring/decimal"

	"pricing-calc/core/types"
)

// Totals are tier revenue roll-ups, summed in decimal to keep cents exact
type Totals struct {
	Customers decimal.Decimal
	Revenue   decimal.Decimal

	// Skipped counts rows left out because a value was NaN or infinite
	Skipped int
}

// SumTierRevenue totals customers and revenue across tiers
func SumTierRevenue(rows []types.TierRevenueDatum) Totals {
	t := Totals{Customers: decimal.Zero, Revenue: decimal.Zero}
	for _, row := range rows {
		if !finite(row.Customers) || !finite(row.Revenue) {
			t.Skipped++
			continue
		}
		t.Customers = t.Customers.Add(decimal.NewFromFloat(row.Customers))
		t.Revenue = t.Revenue.Add(decimal.NewFromFloat(row.Revenue).Round(2))
	}
	return t
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
