package formulas

import "pricing-calc/core/types"

// NormalizeTierShares rescales shares so they add up to 1.
// A non-positive total falls back to a uniform 1/N split.
// The result never aliases the input slice.
func NormalizeTierShares(tiers []types.PricingTier) []types.PricingTier {
	if len(tiers) == 0 {
		return tiers
	}

	out := make([]types.PricingTier, len(tiers))
	copy(out, tiers)

	var total float64
	for _, tier := range tiers {
		total += tier.Share
	}

	if total <= 0 {
		even := 1 / float64(len(out))
		for i := range out {
			out[i].Share = even
		}
		return out
	}

	for i := range out {
		out[i].Share = out[i].Share / total
	}
	return out
}
