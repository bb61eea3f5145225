package formulas

import (
	"math"
	"testing"

	"pricing-calc/core/types"
)

func nearlyEqual(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

func sumShares(tiers []types.PricingTier) float64 {
	var total float64
	for _, tier := range tiers {
		total += tier.Share
	}
	return total
}

func defaultTiers() []types.PricingTier {
	return []types.PricingTier{
		{ID: "tier-1", Name: "Starter", Price: 29, Share: 0.55},
		{ID: "tier-2", Name: "Pro", Price: 79, Share: 0.3},
		{ID: "tier-3", Name: "Enterprise", Price: 199, Share: 0.15},
	}
}

// TestNormalizeTierShares covers the rescale and uniform fallback paths
func TestNormalizeTierShares(t *testing.T) {
	tests := []struct {
		name   string
		shares []float64
		want   []float64
	}{
		{
			name:   "already normalized",
			shares: []float64{0.55, 0.3, 0.15},
			want:   []float64{0.55, 0.3, 0.15},
		},
		{
			name:   "relative weights",
			shares: []float64{2, 1, 1},
			want:   []float64{0.5, 0.25, 0.25},
		},
		{
			name:   "all zero falls back to uniform",
			shares: []float64{0, 0, 0, 0},
			want:   []float64{0.25, 0.25, 0.25, 0.25},
		},
		{
			name:   "negative total falls back to uniform",
			shares: []float64{-1, 0.5},
			want:   []float64{0.5, 0.5},
		},
		{
			name:   "single tier",
			shares: []float64{7},
			want:   []float64{1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tiers := make([]types.PricingTier, len(tt.shares))
			for i, s := range tt.shares {
				tiers[i] = types.PricingTier{Name: "t", Price: 10, Share: s}
			}

			got := NormalizeTierShares(tiers)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d tiers, want %d", len(got), len(tt.want))
			}
			for i := range got {
				nearlyEqual(t, "share", got[i].Share, tt.want[i])
			}
			nearlyEqual(t, "total", sumShares(got), 1)

			// input is untouched
			for i, s := range tt.shares {
				if tiers[i].Share != s {
					t.Errorf("input share %d mutated: %v", i, tiers[i].Share)
				}
			}
		})
	}
}

func TestNormalizeTierSharesEmpty(t *testing.T) {
	if got := NormalizeTierShares(nil); len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
}

func TestNormalizeTierSharesIdempotent(t *testing.T) {
	tiers := []types.PricingTier{
		{ID: "a", Share: 3.3},
		{ID: "b", Share: 0.7},
		{ID: "c", Share: 11},
	}
	once := NormalizeTierShares(tiers)
	twice := NormalizeTierShares(once)
	for i := range once {
		if math.Abs(once[i].Share-twice[i].Share) > 1e-12 {
			t.Errorf("tier %s drifted: %v -> %v", once[i].ID, once[i].Share, twice[i].Share)
		}
		if once[i].ID != tiers[i].ID {
			t.Errorf("order changed at %d", i)
		}
	}
}

func TestApplyElasticityZeroIsNoop(t *testing.T) {
	adj := ApplyElasticity(defaultTiers(), 0.08, 0)

	nearlyEqual(t, "priceAdjustment", adj.PriceAdjustment, 1)
	nearlyEqual(t, "conversionMultiplier", adj.ConversionMultiplier, 1)
	nearlyEqual(t, "adjustedConversionRate", adj.AdjustedConversionRate, 0.08)
	for i, tier := range adj.AdjustedTiers {
		nearlyEqual(t, tier.Name, tier.AdjustedPrice, defaultTiers()[i].Price)
	}
}

func TestApplyElasticityBounds(t *testing.T) {
	tests := []struct {
		elasticity     float64
		wantPrice      float64
		wantMultiplier float64
	}{
		{elasticity: 50, wantPrice: 0.5, wantMultiplier: 1.3},
		{elasticity: -50, wantPrice: 1.5, wantMultiplier: 0.7},
		{elasticity: 100, wantPrice: 0.3, wantMultiplier: 1.6},
		{elasticity: 1000, wantPrice: 0.3, wantMultiplier: 1.8},
		{elasticity: -1000, wantPrice: 1.7, wantMultiplier: 0.2},
	}

	for _, tt := range tests {
		adj := ApplyElasticity(defaultTiers(), 0.08, tt.elasticity)
		nearlyEqual(t, "priceAdjustment", adj.PriceAdjustment, tt.wantPrice)
		nearlyEqual(t, "conversionMultiplier", adj.ConversionMultiplier, tt.wantMultiplier)
	}

	for e := -1000.0; e <= 1000; e += 12.5 {
		adj := ApplyElasticity(defaultTiers(), 0.9, e)
		if adj.PriceAdjustment < MinPriceAdjustment || adj.PriceAdjustment > MaxPriceAdjustment {
			t.Fatalf("elasticity %v: price adjustment %v out of bounds", e, adj.PriceAdjustment)
		}
		if adj.ConversionMultiplier < MinConversionMultiplier || adj.ConversionMultiplier > MaxConversionMultiplier {
			t.Fatalf("elasticity %v: conversion multiplier %v out of bounds", e, adj.ConversionMultiplier)
		}
		if adj.AdjustedConversionRate < 0 || adj.AdjustedConversionRate > 1 {
			t.Fatalf("elasticity %v: conversion rate %v out of [0,1]", e, adj.AdjustedConversionRate)
		}
	}
}

func TestApplyElasticityNegativePriceFloorsAtZero(t *testing.T) {
	adj := ApplyElasticity([]types.PricingTier{{ID: "x", Price: -20, Share: 1}}, 0.1, 0)
	nearlyEqual(t, "adjustedPrice", adj.AdjustedTiers[0].AdjustedPrice, 0)
}

func TestCalculateRawLifetimeValue(t *testing.T) {
	nearlyEqual(t, "fallback", CalculateRawLifetimeValue(100, 0), 2400)
	nearlyEqual(t, "negative churn", CalculateRawLifetimeValue(100, -0.5), 2400)
	nearlyEqual(t, "normal", CalculateRawLifetimeValue(100, 0.04), 2500)
}

func TestCalculateGrossMargin(t *testing.T) {
	tests := []struct {
		name   string
		rawLtv float64
		cac    float64
		want   float64
	}{
		{name: "typical", rawLtv: 1000, cac: 250, want: 0.75},
		{name: "capped", rawLtv: 1000, cac: 0, want: 0.95},
		{name: "negative cac still capped", rawLtv: 1000, cac: -500, want: 0.95},
		{name: "cac above ltv floors", rawLtv: 100, cac: 500, want: 0},
		{name: "zero ltv", rawLtv: 0, cac: 100, want: 0},
		{name: "negative ltv", rawLtv: -10, cac: 100, want: 0},
		{name: "infinite ltv", rawLtv: math.Inf(1), cac: 100, want: 0},
		{name: "nan ltv", rawLtv: math.NaN(), cac: 100, want: 0},
		{name: "infinite cac", rawLtv: 100, cac: math.Inf(1), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateGrossMargin(tt.rawLtv, tt.cac)
			if got < 0 || got > MaxGrossMargin {
				t.Fatalf("margin %v outside [0, %v]", got, MaxGrossMargin)
			}
			nearlyEqual(t, "margin", got, tt.want)
		})
	}
}

func TestInfiniteSentinels(t *testing.T) {
	if !math.IsInf(CalculateLTV(69.5, 0, 0.8), 1) {
		t.Error("LTV with zero churn should be +Inf")
	}
	if !math.IsInf(CalculateCACPaybackPeriod(320, 69.5, 0), 1) {
		t.Error("payback with zero margin should be +Inf")
	}
	if !math.IsInf(CalculateCACPaybackPeriod(320, 0, 0.5), 1) {
		t.Error("payback with zero ARPU should be +Inf")
	}
	if !math.IsInf(CalculateROIMultiple(1000, 0), 1) {
		t.Error("ROI with zero CAC should be +Inf")
	}
}

// TestDefaultScenarioMetrics walks the default inputs through the whole chain
func TestDefaultScenarioMetrics(t *testing.T) {
	adj := ApplyElasticity(NormalizeTierShares(defaultTiers()), 0.08, 0)
	arpu := CalculateARPU(adj.AdjustedTiers)
	nearlyEqual(t, "arpu", arpu, 69.5)

	rawLtv := CalculateRawLifetimeValue(arpu, 0.04)
	nearlyEqual(t, "rawLtv", rawLtv, 1737.5)

	margin := CalculateGrossMargin(rawLtv, 320)
	nearlyEqual(t, "grossMargin", margin, 1-320/1737.5)

	ltv := CalculateLTV(arpu, 0.04, margin)
	nearlyEqual(t, "ltv", ltv, 1417.5)

	payback := CalculateCACPaybackPeriod(320, arpu, margin)
	nearlyEqual(t, "cacPayback", payback, 320/56.7)

	roi := CalculateROIMultiple(ltv, 320)
	nearlyEqual(t, "roiMultiple", roi, 1417.5/320)

	t.Logf("arpu=%.2f margin=%.4f ltv=%.2f payback=%.2f roi=%.2f", arpu, margin, ltv, payback, roi)
}

func TestCalculateTierRevenue(t *testing.T) {
	adj := ApplyElasticity(defaultTiers(), 0.08, 0)
	rows := CalculateTierRevenue(adj.AdjustedTiers, 2500, 0.08)

	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	nearlyEqual(t, "starter customers", rows[0].Customers, 110)
	nearlyEqual(t, "starter revenue", rows[0].Revenue, 3190)
	nearlyEqual(t, "pro customers", rows[1].Customers, 60)
	nearlyEqual(t, "pro revenue", rows[1].Revenue, 4740)
	nearlyEqual(t, "enterprise customers", rows[2].Customers, 30)
	nearlyEqual(t, "enterprise revenue", rows[2].Revenue, 5970)
	if rows[2].ID != "tier-3" || rows[2].Name != "Enterprise" {
		t.Errorf("order not preserved: %+v", rows[2])
	}
}

func TestCalculateRevenueProjection(t *testing.T) {
	in := ProjectionInput{
		NewCustomersPerMonth: 200,
		InitialCustomers:     400,
		ChurnRate:            0.04,
		ARPU:                 69.5,
	}

	points := CalculateRevenueProjection(in)
	if len(points) != DefaultProjectionMonths {
		t.Fatalf("expected %d points, got %d", DefaultProjectionMonths, len(points))
	}

	wantCustomers := []float64{584, 760.64, 930.2144}
	cumulative := 0.0
	for i, want := range wantCustomers {
		p := points[i]
		if p.Month != i+1 {
			t.Fatalf("point %d has month %d", i, p.Month)
		}
		nearlyEqual(t, "customers", p.Customers, want)
		nearlyEqual(t, "revenue", p.Revenue, want*69.5)
		cumulative += want * 69.5
		nearlyEqual(t, "cumulative", p.CumulativeRevenue, cumulative)
	}

	again := CalculateRevenueProjection(in)
	for i := range points {
		if points[i] != again[i] {
			t.Fatalf("projection not repeatable at month %d", i+1)
		}
	}
}

func TestRevenueProjectionHorizon(t *testing.T) {
	if got := len(CalculateRevenueProjection(ProjectionInput{Months: 3})); got != 3 {
		t.Errorf("expected 3 points, got %d", got)
	}
	if got := CalculateRevenueProjection(ProjectionInput{Months: -1}); got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil projection, got %v", got)
	}
}

func TestRevenueProjectionSeqRestarts(t *testing.T) {
	seq := RevenueProjectionSeq(ProjectionInput{Months: 5, NewCustomersPerMonth: 10, ChurnRate: 0.1, ARPU: 2})

	var first []float64
	for p := range seq {
		first = append(first, p.Customers)
		if p.Month == 2 {
			break
		}
	}
	var second []float64
	for p := range seq {
		second = append(second, p.Customers)
	}

	if len(first) != 2 || len(second) != 5 {
		t.Fatalf("unexpected lengths %d and %d", len(first), len(second))
	}
	nearlyEqual(t, "month 1", second[0], first[0])
	nearlyEqual(t, "month 2", second[1], 19)
}

func TestTweenValue(t *testing.T) {
	nearlyEqual(t, "start", TweenValue(10, 20, 0), 10)
	nearlyEqual(t, "end", TweenValue(10, 20, 1), 20)
	nearlyEqual(t, "half", TweenValue(0, 8, 0.5), 7)
	nearlyEqual(t, "clamped low", TweenValue(10, 20, -3), 10)
	nearlyEqual(t, "clamped high", TweenValue(10, 20, 4), 20)
	nearlyEqual(t, "descending", TweenValue(20, 10, 1), 10)
}

func TestSafeNumber(t *testing.T) {
	nearlyEqual(t, "finite", SafeNumber(3.5, 0), 3.5)
	nearlyEqual(t, "+inf", SafeNumber(math.Inf(1), 0), 0)
	nearlyEqual(t, "-inf", SafeNumber(math.Inf(-1), 1), 1)
	nearlyEqual(t, "nan", SafeNumber(math.NaN(), 0), 0)
}
