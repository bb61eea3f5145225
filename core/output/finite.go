package output

import (
	"fmt"
	"slices"

	"pricing-calc/core/formulas"
	"pricing-calc/core/types"
)

// finiteReport returns a copy of report in which every NaN or infinite
// number is replaced by 0, with one warning per replaced value.
// The input report is not modified.
func finiteReport(report *Report) *Report {
	out := *report
	out.Warnings = slices.Clone(report.Warnings)

	fix := func(path string, v *float64) {
		if finite(*v) {
			return
		}
		out.Warnings = append(out.Warnings, fmt.Sprintf("%s is %v, written as 0", path, *v))
		*v = formulas.SafeNumber(*v, 0)
	}

	out.State = report.State.Clone()
	fixState(&out.State, "state", fix)

	c := cloneComputation(report.Computation)
	for i := range c.NormalizedTiers {
		fixTier(&c.NormalizedTiers[i], fmt.Sprintf("computation.normalizedTiers[%d]", i), fix)
	}
	for i := range c.AdjustedTiers {
		p := fmt.Sprintf("computation.adjustedTiers[%d]", i)
		fixTier(&c.AdjustedTiers[i].PricingTier, p, fix)
		fix(p+".adjustedPrice", &c.AdjustedTiers[i].AdjustedPrice)
	}
	e := &c.Elasticity
	for i := range e.AdjustedTiers {
		p := fmt.Sprintf("computation.elasticity.adjustedTiers[%d]", i)
		fixTier(&e.AdjustedTiers[i].PricingTier, p, fix)
		fix(p+".adjustedPrice", &e.AdjustedTiers[i].AdjustedPrice)
	}
	fix("computation.elasticity.adjustedConversionRate", &e.AdjustedConversionRate)
	fix("computation.elasticity.priceAdjustment", &e.PriceAdjustment)
	fix("computation.elasticity.conversionMultiplier", &e.ConversionMultiplier)

	m := &c.Metrics
	fix("computation.metrics.arpu", &m.ARPU)
	fix("computation.metrics.grossMargin", &m.GrossMargin)
	fix("computation.metrics.ltv", &m.LTV)
	fix("computation.metrics.cacPayback", &m.CACPayback)
	fix("computation.metrics.roiMultiple", &m.ROIMultiple)

	for i := range c.TierRevenue {
		p := fmt.Sprintf("computation.tierRevenue[%d]", i)
		fix(p+".customers", &c.TierRevenue[i].Customers)
		fix(p+".revenue", &c.TierRevenue[i].Revenue)
		fix(p+".adjustedPrice", &c.TierRevenue[i].AdjustedPrice)
	}
	for i := range c.RevenueProjection {
		p := fmt.Sprintf("computation.revenueProjection[%d]", i)
		fix(p+".customers", &c.RevenueProjection[i].Customers)
		fix(p+".revenue", &c.RevenueProjection[i].Revenue)
		fix(p+".cumulativeRevenue", &c.RevenueProjection[i].CumulativeRevenue)
	}
	out.Computation = c

	return &out
}

func fixState(s *types.PricingState, path string, fix func(string, *float64)) {
	for i := range s.Tiers {
		fixTier(&s.Tiers[i], fmt.Sprintf("%s.tiers[%d]", path, i), fix)
	}
	fix(path+".conversionRate", &s.ConversionRate)
	fix(path+".churnRate", &s.ChurnRate)
	fix(path+".cac", &s.CAC)
	fix(path+".userCount", &s.UserCount)
	fix(path+".elasticity", &s.Elasticity)
}

func fixTier(t *types.PricingTier, path string, fix func(string, *float64)) {
	fix(path+".price", &t.Price)
	fix(path+".share", &t.Share)
}

func cloneComputation(c types.PricingComputation) types.PricingComputation {
	c.NormalizedTiers = slices.Clone(c.NormalizedTiers)
	c.AdjustedTiers = slices.Clone(c.AdjustedTiers)
	c.Elasticity.AdjustedTiers = slices.Clone(c.Elasticity.AdjustedTiers)
	c.TierRevenue = slices.Clone(c.TierRevenue)
	c.RevenueProjection = slices.Clone(c.RevenueProjection)
	return c
}
