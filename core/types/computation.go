package types

// AdjustedTier is a tier with its elasticity-adjusted price
type AdjustedTier struct {
	PricingTier
	AdjustedPrice float64 `json:"adjustedPrice"`
}

// ElasticityAdjustment is the outcome of applying an elasticity scalar
type ElasticityAdjustment struct {
	AdjustedTiers          []AdjustedTier `json:"adjustedTiers"`
	AdjustedConversionRate float64        `json:"adjustedConversionRate"`
	PriceAdjustment        float64        `json:"priceAdjustment"`
	ConversionMultiplier   float64        `json:"conversionMultiplier"`
}

// PricingMetrics are the headline unit economics. Values are always finite.
type PricingMetrics struct {
	// ARPU is average revenue per user per month
	ARPU float64 `json:"arpu"`

	// GrossMargin is in [0, 0.95]
	GrossMargin float64 `json:"grossMargin"`

	// LTV is margin-adjusted lifetime value
	LTV float64 `json:"ltv"`

	// CACPayback is in months
	CACPayback float64 `json:"cacPayback"`

	// ROIMultiple is LTV over CAC
	ROIMultiple float64 `json:"roiMultiple"`
}

// TierRevenueDatum is the revenue contribution of one tier
type TierRevenueDatum struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Customers     float64 `json:"customers"`
	Revenue       float64 `json:"revenue"`
	AdjustedPrice float64 `json:"adjustedPrice"`
}

// RevenueProjectionPoint is one projected month
type RevenueProjectionPoint struct {
	Month             int     `json:"month"`
	Customers         float64 `json:"customers"`
	Revenue           float64 `json:"revenue"`
	CumulativeRevenue float64 `json:"cumulativeRevenue"`
}

// PricingComputation is everything derived from a PricingState
type PricingComputation struct {
	NormalizedTiers   []PricingTier            `json:"normalizedTiers"`
	Elasticity        ElasticityAdjustment     `json:"elasticity"`
	AdjustedTiers     []AdjustedTier           `json:"adjustedTiers"`
	Metrics           PricingMetrics           `json:"metrics"`
	TierRevenue       []TierRevenueDatum       `json:"tierRevenue"`
	RevenueProjection []RevenueProjectionPoint `json:"revenueProjection"`
}
