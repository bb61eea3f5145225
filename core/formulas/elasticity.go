package formulas

import (
	"math"

	"pricing-calc/core/types"
)

// Elasticity bounds. Price moves at full sensitivity, conversion at 0.6x.
const (
	MinPriceAdjustment      = 0.3
	MaxPriceAdjustment      = 1.7
	MinConversionMultiplier = 0.2
	MaxConversionMultiplier = 1.8
	ConversionSensitivity   = 0.6
)

// ApplyElasticity trades price for volume with a single scalar.
// Positive elasticity lowers prices and raises conversion.
func ApplyElasticity(tiers []types.PricingTier, baseConversionRate, elasticity float64) types.ElasticityAdjustment {
	priceAdjustment := clamp(1-elasticity/100, MinPriceAdjustment, MaxPriceAdjustment)
	conversionMultiplier := clamp(1+(elasticity/100)*ConversionSensitivity, MinConversionMultiplier, MaxConversionMultiplier)
	adjustedConversionRate := clamp(baseConversionRate*conversionMultiplier, 0, 1)

	adjusted := make([]types.AdjustedTier, len(tiers))
	for i, tier := range tiers {
		adjusted[i] = types.AdjustedTier{
			PricingTier:   tier,
			AdjustedPrice: math.Max(tier.Price*priceAdjustment, 0),
		}
	}

	return types.ElasticityAdjustment{
		AdjustedTiers:          adjusted,
		AdjustedConversionRate: adjustedConversionRate,
		PriceAdjustment:        priceAdjustment,
		ConversionMultiplier:   conversionMultiplier,
	}
}
