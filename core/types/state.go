package types

// PricingState is the full input snapshot of the calculator
type PricingState struct {
	// Tiers are ordered for display; order has no effect on the formulas
	Tiers []PricingTier `json:"tiers"`

	// ConversionRate is the fraction of users that become customers
	ConversionRate float64 `json:"conversionRate"`

	// ChurnRate is the monthly attrition fraction
	ChurnRate float64 `json:"churnRate"`

	// CAC is the cost to acquire one customer
	CAC float64 `json:"cac"`

	// UserCount is the total addressable audience
	UserCount float64 `json:"userCount"`

	// Elasticity is a percentage-like scalar, unclamped
	Elasticity float64 `json:"elasticity"`
}

// Clone returns a deep copy of the state
func (s PricingState) Clone() PricingState {
	out := s
	if s.Tiers != nil {
		out.Tiers = make([]PricingTier, len(s.Tiers))
		copy(out.Tiers, s.Tiers)
	}
	return out
}

// Value returns the value of a numeric field
func (s PricingState) Value(f Field) (float64, bool) {
	switch f {
	case FieldConversionRate:
		return s.ConversionRate, true
	case FieldChurnRate:
		return s.ChurnRate, true
	case FieldCAC:
		return s.CAC, true
	case FieldUserCount:
		return s.UserCount, true
	case FieldElasticity:
		return s.Elasticity, true
	}
	return 0, false
}

// WithField returns a copy with one numeric field replaced.
// An unknown field yields an unchanged copy and false.
func (s PricingState) WithField(f Field, value float64) (PricingState, bool) {
	out := s.Clone()
	switch f {
	case FieldConversionRate:
		out.ConversionRate = value
	case FieldChurnRate:
		out.ChurnRate = value
	case FieldCAC:
		out.CAC = value
	case FieldUserCount:
		out.UserCount = value
	case FieldElasticity:
		out.Elasticity = value
	default:
		return out, false
	}
	return out, true
}

// DefaultState returns the starting inputs. Tier IDs are left empty;
// the store assigns them.
func DefaultState() PricingState {
	return PricingState{
		Tiers: []PricingTier{
			{Name: "Starter", Price: 29, Share: 0.55},
			{Name: "Pro", Price: 79, Share: 0.3},
			{Name: "Enterprise", Price: 199, Share: 0.15},
		},
		ConversionRate: 0.08,
		ChurnRate:      0.04,
		CAC:            320,
		UserCount:      2500,
		Elasticity:     0,
	}
}
