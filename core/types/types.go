// Package types defines core domain types shared across all layers.
// This package contains NO business logic - only type definitions and copies.
package types

import "strings"

// PricingTier is a single pricing plan
type PricingTier struct {
	// ID is stable across edits
	ID string `json:"id" yaml:"id"`

	// Name is the display name
	Name string `json:"name" yaml:"name"`

	// Price is the monthly list price
	Price float64 `json:"price" yaml:"price"`

	// Share is a relative weight of the customer base, not necessarily normalized
	Share float64 `json:"share" yaml:"share"`
}

// TierChanges is a partial update of a tier. Nil fields are left untouched.
type TierChanges struct {
	Name  *string  `json:"name,omitempty"`
	Price *float64 `json:"price,omitempty"`
	Share *float64 `json:"share,omitempty"`
}

// IsEmpty reports whether no field is set
func (c TierChanges) IsEmpty() bool {
	return c.Name == nil && c.Price == nil && c.Share == nil
}

// Apply returns a copy of tier with the changes merged in
func (c TierChanges) Apply(tier PricingTier) PricingTier {
	if c.Name != nil {
		tier.Name = *c.Name
	}
	if c.Price != nil {
		tier.Price = *c.Price
	}
	if c.Share != nil {
		tier.Share = *c.Share
	}
	return tier
}

// Ptr returns a pointer to v. Handy for building TierChanges.
func Ptr[T any](v T) *T {
	return &v
}

// Field identifies a numeric top-level field of PricingState
type Field string

const (
	FieldConversionRate Field = "conversionRate"
	FieldChurnRate      Field = "churnRate"
	FieldCAC            Field = "cac"
	FieldUserCount      Field = "userCount"
	FieldElasticity     Field = "elasticity"
)

// Fields lists every numeric field in display order
var Fields = []Field{
	FieldConversionRate,
	FieldChurnRate,
	FieldCAC,
	FieldUserCount,
	FieldElasticity,
}

// String returns the string representation of the field
func (f Field) String() string {
	return string(f)
}

// IsValid checks if the field is a known field
func (f Field) IsValid() bool {
	switch f {
	case FieldConversionRate, FieldChurnRate, FieldCAC, FieldUserCount, FieldElasticity:
		return true
	default:
		return false
	}
}

// ParseField resolves a field name written in camelCase, snake_case or kebab-case.
func ParseField(name string) (Field, bool) {
	key := strings.ToLower(strings.NewReplacer("_", "", "-", "").Replace(strings.TrimSpace(name)))
	for _, f := range Fields {
		if strings.ToLower(string(f)) == key {
			return f, true
		}
	}
	switch key {
	case "conversion":
		return FieldConversionRate, true
	case "churn":
		return FieldChurnRate, true
	case "users":
		return FieldUserCount, true
	}
	return "", false
}
