package formulas

import (
	"iter"
	"slices"

	"pricing-calc/core/types"
)

// DefaultProjectionMonths is used when ProjectionInput.Months is zero
const DefaultProjectionMonths = 12

// CalculateTierRevenue builds per-tier customer and revenue figures
func CalculateTierRevenue(tiers []types.AdjustedTier, totalUsers, conversionRate float64) []types.TierRevenueDatum {
	converted := totalUsers * conversionRate
	out := make([]types.TierRevenueDatum, len(tiers))
	for i, tier := range tiers {
		customers := converted * tier.Share
		out[i] = types.TierRevenueDatum{
			ID:            tier.ID,
			Name:          tier.Name,
			Customers:     customers,
			Revenue:       customers * tier.AdjustedPrice,
			AdjustedPrice: tier.AdjustedPrice,
		}
	}
	return out
}

// ProjectionInput parameterizes a revenue projection
type ProjectionInput struct {
	// Months is the horizon; zero means DefaultProjectionMonths, negative means none
	Months int

	NewCustomersPerMonth float64
	InitialCustomers     float64
	ChurnRate            float64
	ARPU                 float64
}

func (in ProjectionInput) months() int {
	if in.Months == 0 {
		return DefaultProjectionMonths
	}
	return in.Months
}

// RevenueProjectionSeq yields one point per month starting at month 1.
// Each range over the sequence restarts from InitialCustomers.
func RevenueProjectionSeq(in ProjectionInput) iter.Seq[types.RevenueProjectionPoint] {
	return func(yield func(types.RevenueProjectionPoint) bool) {
		customers := in.InitialCustomers
		var cumulative float64
		for month := 1; month <= in.months(); month++ {
			customers = customers*(1-in.ChurnRate) + in.NewCustomersPerMonth
			revenue := customers * in.ARPU
			cumulative += revenue
			point := types.RevenueProjectionPoint{
				Month:             month,
				Customers:         customers,
				Revenue:           revenue,
				CumulativeRevenue: cumulative,
			}
			if !yield(point) {
				return
			}
		}
	}
}

// CalculateRevenueProjection collects the full monthly projection
func CalculateRevenueProjection(in ProjectionInput) []types.RevenueProjectionPoint {
	points := slices.Collect(RevenueProjectionSeq(in))
	if points == nil {
		points = []types.RevenueProjectionPoint{}
	}
	return points
}
