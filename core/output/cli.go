package output

import (
	"fmt"
	"io"

	"pricing-calc/core/types"
	"pricing-calc/core/ui"
)

// CLIFormatter renders a terminal report
type CLIFormatter struct {
	noColor bool
}

// NewCLIFormatter creates a terminal formatter
func NewCLIFormatter(noColor bool) *CLIFormatter {
	return &CLIFormatter{noColor: noColor}
}

// Format returns the format type
func (f *CLIFormatter) Format() Format {
	return FormatCLI
}

// Render prints metrics, inputs, tier revenue and the projection
func (f *CLIFormatter) Render(out io.Writer, report *Report) error {
	w := ui.NewWriter(out, f.noColor)
	c := report.Computation
	m := c.Metrics

	summary := w.NewMetricsSummary()
	if report.Title != "" {
		summary.Title = report.Title
	}
	summary.ARPU = ui.Money(m.ARPU)
	summary.LTV = ui.Money(m.LTV)
	summary.GrossMargin = ui.Percent(m.GrossMargin)
	summary.CACPayback = ui.Months(m.CACPayback)
	summary.ROIMultiple = ui.Multiple(m.ROIMultiple)
	summary.ROI = m.ROIMultiple
	summary.Render()

	w.Header("Inputs")
	renderInputs(w, report.State, c.Elasticity)

	w.Header("Tier Revenue")
	tiers := w.NewTable("ID", "Tier", "Price", "Adjusted", "Share", "Customers", "Revenue").AlignRight(2, 3, 4, 5, 6)
	for i, row := range c.TierRevenue {
		share := 0.0
		price := 0.0
		if i < len(c.AdjustedTiers) {
			share = c.AdjustedTiers[i].Share
			price = c.AdjustedTiers[i].Price
		}
		tiers.AddRow(row.ID, row.Name, ui.Money(price), ui.Money(row.AdjustedPrice), ui.Percent(share), ui.Amount(row.Customers, 1), ui.Money(row.Revenue))
	}
	totals := SumTierRevenue(c.TierRevenue)
	tiers.AddRow("", "Total", "", "", "", ui.Amount(totals.Customers.InexactFloat64(), 1), ui.Money(totals.Revenue.InexactFloat64()))
	tiers.Render()
	if totals.Skipped > 0 {
		w.Warning("%d tier rows left out of the total: values are not finite", totals.Skipped)
	}

	if report.ShowProjection && len(c.RevenueProjection) > 0 {
		w.Header("Revenue Projection")
		proj := w.NewTable("Month", "Customers", "MRR", "Cumulative").AlignRight(0, 1, 2, 3)
		for _, p := range c.RevenueProjection {
			proj.AddRow(fmt.Sprintf("%d", p.Month), ui.Amount(p.Customers, 1), ui.Money(p.Revenue), ui.Money(p.CumulativeRevenue))
		}
		proj.Render()
	}

	return nil
}

func renderInputs(w *ui.Writer, state types.PricingState, adj types.ElasticityAdjustment) {
	t := w.NewTable("Input", "Value").AlignRight(1)
	t.AddRow("Conversion rate", ui.Percent(state.ConversionRate))
	t.AddRow("Adjusted conversion", ui.Percent(adj.AdjustedConversionRate))
	t.AddRow("Churn rate", ui.Percent(state.ChurnRate))
	t.AddRow("CAC", ui.Money(state.CAC))
	t.AddRow("Users", ui.Amount(state.UserCount, 0))
	t.AddRow("Elasticity", ui.Amount(state.Elasticity, 1))
	t.AddRow("Price adjustment", ui.Multiple(adj.PriceAdjustment))
	t.Render()
}
