package formulas

import (
	"math"

	"pricing-calc/core/types"
)

const (
	// FallbackLifetimeMonths is the horizon used for raw LTV when churn is not positive
	FallbackLifetimeMonths = 24

	// MaxGrossMargin caps the margin at a realistic ceiling
	MaxGrossMargin = 0.95
)

// CalculateARPU returns the share-weighted average adjusted price.
// Tiers are expected to be normalized already.
func CalculateARPU(tiers []types.AdjustedTier) float64 {
	var total float64
	for _, tier := range tiers {
		total += tier.AdjustedPrice * tier.Share
	}
	return total
}

// CalculateRawLifetimeValue returns pre-margin LTV
func CalculateRawLifetimeValue(arpu, churnRate float64) float64 {
	if churnRate <= 0 {
		return arpu * FallbackLifetimeMonths
	}
	return arpu / churnRate
}

// CalculateGrossMargin amortizes acquisition cost across raw LTV
func CalculateGrossMargin(rawLtv, cac float64) float64 {
	if !isFinite(rawLtv) || rawLtv <= 0 {
		return 0
	}
	margin := 1 - cac/rawLtv
	if !isFinite(margin) {
		margin = 0
	}
	return clamp(margin, 0, MaxGrossMargin)
}

// CalculateLTV returns margin-adjusted lifetime value.
// Zero churn is unbounded and yields +Inf.
func CalculateLTV(arpu, churnRate, grossMargin float64) float64 {
	if churnRate <= 0 {
		return math.Inf(1)
	}
	return (arpu * grossMargin) / churnRate
}

// CalculateCACPaybackPeriod returns months needed to recover CAC
func CalculateCACPaybackPeriod(cac, arpu, grossMargin float64) float64 {
	monthlyGrossProfit := arpu * grossMargin
	if monthlyGrossProfit <= 0 {
		return math.Inf(1)
	}
	return cac / monthlyGrossProfit
}

// CalculateROIMultiple returns LTV divided by CAC
func CalculateROIMultiple(ltv, cac float64) float64 {
	if cac <= 0 {
		return math.Inf(1)
	}
	return ltv / cac
}
