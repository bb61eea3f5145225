package store

import (
	"pricing-calc/core/formulas"
	"pricing-calc/core/types"
)

// ProjectionMonths is the fixed projection horizon
const ProjectionMonths = 12

// InitialBacklogMonths seeds the projection with this many months of new customers
const InitialBacklogMonths = 2

// Compute runs the full derivation chain for a state.
// Metrics are coerced to finite numbers; infinities never leave this function.
func Compute(state types.PricingState) types.PricingComputation {
	normalized := formulas.NormalizeTierShares(state.Tiers)
	elasticity := formulas.ApplyElasticity(normalized, state.ConversionRate, state.Elasticity)
	adjusted := elasticity.AdjustedTiers

	arpu := formulas.CalculateARPU(adjusted)
	rawLtv := formulas.CalculateRawLifetimeValue(arpu, state.ChurnRate)
	grossMargin := formulas.CalculateGrossMargin(rawLtv, state.CAC)
	ltv := formulas.CalculateLTV(arpu, state.ChurnRate, grossMargin)
	cacPayback := formulas.CalculateCACPaybackPeriod(state.CAC, arpu, grossMargin)
	roiMultiple := formulas.CalculateROIMultiple(ltv, state.CAC)

	metrics := types.PricingMetrics{
		ARPU:        formulas.SafeNumber(arpu, 0),
		GrossMargin: formulas.SafeNumber(grossMargin, 0),
		LTV:         formulas.SafeNumber(ltv, 0),
		CACPayback:  formulas.SafeNumber(cacPayback, 0),
		ROIMultiple: formulas.SafeNumber(roiMultiple, 0),
	}

	tierRevenue := formulas.CalculateTierRevenue(adjusted, state.UserCount, elasticity.AdjustedConversionRate)

	newCustomersPerMonth := state.UserCount * elasticity.AdjustedConversionRate
	projection := formulas.CalculateRevenueProjection(formulas.ProjectionInput{
		Months:               ProjectionMonths,
		NewCustomersPerMonth: newCustomersPerMonth,
		InitialCustomers:     newCustomersPerMonth * InitialBacklogMonths,
		ChurnRate:            state.ChurnRate,
		ARPU:                 arpu,
	})

	return types.PricingComputation{
		NormalizedTiers:   normalized,
		Elasticity:        elasticity,
		AdjustedTiers:     adjusted,
		Metrics:           metrics,
		TierRevenue:       tierRevenue,
		RevenueProjection: projection,
	}
}
