package output

import (
	"fmt"
	"io"
	"strings"

	"pricing-calc/core/ui"
)

// MarkdownFormatter renders a report suitable for docs or PR comments
type MarkdownFormatter struct{}

// NewMarkdownFormatter creates a markdown formatter
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Format returns the format type
func (f *MarkdownFormatter) Format() Format {
	return FormatMarkdown
}

// Render writes the report as markdown tables
func (f *MarkdownFormatter) Render(w io.Writer, report *Report) error {
	var b strings.Builder
	c := report.Computation
	m := c.Metrics

	title := report.Title
	if title == "" {
		title = "Pricing Report"
	}
	fmt.Fprintf(&b, "## %s\n\n", title)

	b.WriteString("| Metric | Value |\n|---|---:|\n")
	fmt.Fprintf(&b, "| ARPU | %s |\n", ui.Money(m.ARPU))
	fmt.Fprintf(&b, "| Gross margin | %s |\n", ui.Percent(m.GrossMargin))
	fmt.Fprintf(&b, "| LTV | %s |\n", ui.Money(m.LTV))
	fmt.Fprintf(&b, "| CAC payback | %s |\n", ui.Months(m.CACPayback))
	fmt.Fprintf(&b, "| LTV:CAC | %s |\n\n", ui.Multiple(m.ROIMultiple))

	b.WriteString("### Tiers\n\n| Tier | Adjusted price | Customers | Revenue |\n|---|---:|---:|---:|\n")
	for _, row := range c.TierRevenue {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", escape(row.Name), ui.Money(row.AdjustedPrice), ui.Amount(row.Customers, 1), ui.Money(row.Revenue))
	}
	totals := SumTierRevenue(c.TierRevenue)
	fmt.Fprintf(&b, "| **Total** | | %s | %s |\n", ui.Amount(totals.Customers.InexactFloat64(), 1), ui.Money(totals.Revenue.InexactFloat64()))

	if report.ShowProjection && len(c.RevenueProjection) > 0 {
		b.WriteString("\n### Projection\n\n| Month | Customers | MRR | Cumulative |\n|---:|---:|---:|---:|\n")
		for _, p := range c.RevenueProjection {
			fmt.Fprintf(&b, "| %d | %s | %s | %s |\n", p.Month, ui.Amount(p.Customers, 1), ui.Money(p.Revenue), ui.Money(p.CumulativeRevenue))
		}
	}

	if len(report.Assumptions) > 0 {
		b.WriteString("\n### Assumptions\n\n")
		for _, a := range report.Assumptions {
			fmt.Fprintf(&b, "- **%s**: %s\n", a.Category, a.Description)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func escape(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
