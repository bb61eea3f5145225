package output

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"pricing-calc/core/store"
	"pricing-calc/core/types"
	"pricing-calc/internal/errors"
)

func defaultReport() *Report {
	s := store.New()
	return NewReport("Default", s.State(), s.Computation())
}

func TestRegistry(t *testing.T) {
	r := DefaultRegistry(true)

	if got := strings.Join(r.Formats(), ","); got != "cli,json,markdown" {
		t.Errorf("unexpected formats %s", got)
	}

	if err := r.Register(NewJSONFormatter()); !errors.IsType(err, errors.TypeInput) {
		t.Errorf("duplicate registration should fail, got %v", err)
	}

	_, err := r.Get("html")
	if !errors.IsType(err, errors.TypeNotSupported) {
		t.Errorf("expected not supported, got %v", err)
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONFormatter().Render(&buf, defaultReport()); err != nil {
		t.Fatalf("Render: %v", err)
	}

	var decoded struct {
		Title       string `json:"title"`
		Computation struct {
			Metrics           types.PricingMetrics           `json:"metrics"`
			RevenueProjection []types.RevenueProjectionPoint `json:"revenueProjection"`
			AdjustedTiers     []map[string]interface{}       `json:"adjustedTiers"`
		} `json:"computation"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if decoded.Title != "Default" {
		t.Errorf("unexpected title %q", decoded.Title)
	}
	if decoded.Computation.Metrics.ARPU < 69.49 || decoded.Computation.Metrics.ARPU > 69.51 {
		t.Errorf("unexpected arpu %v", decoded.Computation.Metrics.ARPU)
	}
	if len(decoded.Computation.RevenueProjection) != 12 {
		t.Errorf("expected 12 projection points, got %d", len(decoded.Computation.RevenueProjection))
	}
	tier := decoded.Computation.AdjustedTiers[0]
	for _, key := range []string{"id", "name", "price", "share", "adjustedPrice"} {
		if _, ok := tier[key]; !ok {
			t.Errorf("adjusted tier JSON missing %q: %v", key, tier)
		}
	}
}

func TestCLIFormatter(t *testing.T) {
	var buf bytes.Buffer
	if err := NewCLIFormatter(true).Render(&buf, defaultReport()); err != nil {
		t.Fatalf("Render: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Default", "69.50", "1,417.50", "81.58%", "5.64 mo", "4.43x", "Enterprise", "13,900.00", "Revenue Projection"} {
		if !strings.Contains(out, want) {
			t.Errorf("CLI output missing %q", want)
		}
	}
	t.Logf("\n%s", out)
}

func TestMarkdownFormatterWithoutProjection(t *testing.T) {
	report := defaultReport()
	report.ShowProjection = false

	var buf bytes.Buffer
	if err := NewMarkdownFormatter().Render(&buf, report); err != nil {
		t.Fatalf("Render: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "## Default\n") {
		t.Errorf("unexpected heading: %q", out[:20])
	}
	if !strings.Contains(out, "| Starter | 29.00 | 110.0 | 3,190.00 |") {
		t.Errorf("missing starter row:\n%s", out)
	}
	if !strings.Contains(out, "| **Total** | | 200.0 | 13,900.00 |") {
		t.Errorf("missing totals row:\n%s", out)
	}
	if strings.Contains(out, "### Projection") {
		t.Error("projection rendered although disabled")
	}
	if !strings.Contains(out, "### Assumptions") {
		t.Error("assumptions missing")
	}
}

func TestRenderOverflowingValues(t *testing.T) {
	s := store.New()
	s.SetField(types.FieldUserCount, 1e308)
	report := NewReport("Huge", s.State(), s.Computation())
	report.ShowProjection = true

	if !math.IsInf(report.Computation.TierRevenue[2].Revenue, 1) {
		t.Fatalf("expected enterprise revenue to overflow, got %v", report.Computation.TierRevenue[2].Revenue)
	}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		if err := NewJSONFormatter().Render(&buf, report); err != nil {
			t.Fatalf("Render: %v", err)
		}

		var decoded struct {
			Warnings    []string `json:"warnings"`
			Computation struct {
				TierRevenue []struct {
					Revenue float64 `json:"revenue"`
				} `json:"tierRevenue"`
			} `json:"computation"`
		}
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if decoded.Computation.TierRevenue[2].Revenue != 0 {
			t.Errorf("overflowed revenue = %v, want 0", decoded.Computation.TierRevenue[2].Revenue)
		}
		if !strings.Contains(strings.Join(decoded.Warnings, "\n"), "computation.tierRevenue[2].revenue") {
			t.Errorf("missing warning for overflowed revenue: %v", decoded.Warnings)
		}
		if !math.IsInf(report.Computation.TierRevenue[2].Revenue, 1) || len(report.Warnings) != 0 {
			t.Error("Render modified the caller's report")
		}
	})

	for _, f := range []Formatter{NewCLIFormatter(true), NewMarkdownFormatter()} {
		t.Run(string(f.Format()), func(t *testing.T) {
			var buf bytes.Buffer
			if err := f.Render(&buf, report); err != nil {
				t.Fatalf("Render: %v", err)
			}
			if !strings.Contains(buf.String(), "n/a") {
				t.Errorf("expected n/a for overflowed values:\n%s", buf.String())
			}
		})
	}
}

func TestSumTierRevenue(t *testing.T) {
	totals := SumTierRevenue([]types.TierRevenueDatum{
		{Customers: 0.1, Revenue: 0.105},
		{Customers: 0.2, Revenue: 0.2},
	})
	if totals.Customers.String() != "0.3" {
		t.Errorf("customers = %s, want 0.3", totals.Customers)
	}
	if totals.Revenue.StringFixed(2) != "0.31" {
		t.Errorf("revenue = %s, want 0.31", totals.Revenue.StringFixed(2))
	}

	totals = SumTierRevenue([]types.TierRevenueDatum{
		{Customers: 2, Revenue: 10},
		{Customers: 1e306, Revenue: math.Inf(1)},
		{Customers: math.NaN(), Revenue: 5},
	})
	if totals.Skipped != 2 {
		t.Errorf("skipped = %d, want 2", totals.Skipped)
	}
	if totals.Customers.String() != "2" || totals.Revenue.StringFixed(2) != "10.00" {
		t.Errorf("non-finite rows leaked into totals: %s / %s", totals.Customers, totals.Revenue)
	}
}
