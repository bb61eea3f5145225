// Package cmd - compute command
package cmd

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pricing-calc/core/output"
	"pricing-calc/core/scenario"
	"pricing-calc/core/store"
	"pricing-calc/core/types"
	"pricing-calc/core/ui"
	"pricing-calc/internal/config"
	"pricing-calc/internal/errors"
	"pricing-calc/internal/logging"
)

var (
	scenarioFile string
	outputFormat string
	reportTitle  string
	animate      bool
	noProjection bool
)

// fieldFlags binds one CLI flag to each numeric input
var fieldFlags = []struct {
	name  string
	field types.Field
	usage string
	value float64
}{
	{name: "conversion", field: types.FieldConversionRate, usage: "conversion rate (0-1)"},
	{name: "churn", field: types.FieldChurnRate, usage: "monthly churn rate (0-1)"},
	{name: "cac", field: types.FieldCAC, usage: "customer acquisition cost"},
	{name: "users", field: types.FieldUserCount, usage: "total addressable users"},
	{name: "elasticity", field: types.FieldElasticity, usage: "price elasticity (-100..100)"},
}

// computeCmd represents the compute command
var computeCmd = &cobra.Command{
	Use:   "compute",
	Short: "Compute pricing metrics and a revenue projection",
	Long: `Compute ARPU, gross margin, LTV, CAC payback, LTV:CAC, per-tier revenue and a
12-month revenue projection.

Inputs start from the built-in defaults, are replaced by a scenario file when one
is given, and are then overridden field by field with flags.

Examples:
  pricing-calc compute
  pricing-calc compute --churn 0.03 --cac 250
  pricing-calc compute --scenario launch.hcl --format markdown
  pricing-calc compute --elasticity 25 --animate`,
	Args: cobra.NoArgs,
	RunE: runCompute,
}

func init() {
	computeCmd.Flags().StringVarP(&scenarioFile, "scenario", "s", "", "scenario file (.hcl, .json, .yaml)")
	computeCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "output format (cli, json, markdown)")
	computeCmd.Flags().StringVar(&reportTitle, "title", "", "report title")
	computeCmd.Flags().BoolVar(&animate, "animate", false, "count metrics up before printing the report")
	computeCmd.Flags().BoolVar(&noProjection, "no-projection", false, "omit the monthly projection table")
	for i := range fieldFlags {
		f := &fieldFlags[i]
		computeCmd.Flags().Float64Var(&f.value, f.name, 0, f.usage)
	}
}

func runCompute(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	st := store.New(store.WithLogger(logging.Logger))
	defer st.Close()

	title := reportTitle
	sc, err := loadScenario(scenarioFile, cfg)
	if err != nil {
		return err
	}
	if sc != nil {
		st.Set(sc.State)
		if title == "" {
			title = sc.Name
		}
		logging.Info("scenario loaded", zap.String("path", sc.Source), zap.Int("tiers", len(sc.State.Tiers)))
	}

	for _, f := range fieldFlags {
		if !cmd.Flags().Changed(f.name) {
			continue
		}
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return errors.Inputf("--%s must be a finite number", f.name)
		}
		logging.Debug("input overridden", zap.String("field", f.field.String()), zap.Float64("value", f.value))
		st.SetField(f.field, f.value)
	}

	format := outputFormat
	if format == "" {
		format = cfg.Output.DefaultFormat
	}
	formatter, err := output.DefaultRegistry(cfg.Output.NoColor).Get(output.Format(format))
	if err != nil {
		return err
	}

	report := output.NewReport(title, st.State(), st.Computation())
	report.ShowProjection = cfg.Output.ShowProjection && !noProjection

	if animate || cfg.Output.Animate {
		if formatter.Format() != output.FormatCLI {
			logging.Warn("animation only applies to the cli format", zap.String("format", format))
		} else if err := countUp(cmd.Context(), ui.NewWriter(cmd.OutOrStdout(), cfg.Output.NoColor), report.Computation.Metrics, cfg.Output.AnimationFrames); err != nil {
			return err
		}
	}

	if err := formatter.Render(cmd.OutOrStdout(), report); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}

// loadScenario loads the flag path, falling back to the configured default
func loadScenario(path string, cfg *config.Config) (*scenario.Scenario, error) {
	if path == "" {
		path = cfg.Scenario.DefaultPath
	}
	if path == "" {
		return nil, nil
	}
	return scenario.Load(path)
}

func countUp(ctx context.Context, w *ui.Writer, m types.PricingMetrics, frames int) error {
	const frameDelay = 25 * time.Millisecond
	steps := []struct {
		label  string
		value  float64
		format func(float64) string
	}{
		{"ARPU        ", m.ARPU, ui.Money},
		{"LTV         ", m.LTV, ui.Money},
		{"Gross Margin", m.GrossMargin, ui.Percent},
		{"CAC Payback ", m.CACPayback, ui.Months},
		{"LTV:CAC     ", m.ROIMultiple, ui.Multiple},
	}
	for _, s := range steps {
		if err := w.CountUp(ctx, s.label, s.value, frames, frameDelay, s.format); err != nil {
			return err
		}
	}
	return nil
}
