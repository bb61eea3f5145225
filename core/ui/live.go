// Package ui - Live session view
package ui

import (
	"fmt"
	"math"

	"pricing-calc/core/types"
)

// ComputationSource publishes pricing computations
type ComputationSource interface {
	SubscribeComputed(fn func(types.PricingComputation)) (unsubscribe func())
}

// LiveView prints a metrics diff every time the computation changes
type LiveView struct {
	w      *Writer
	last   *types.PricingComputation
	step   int
	detach func()
}

// NewLiveView creates a live view; call Attach to start rendering
func NewLiveView(w *Writer) *LiveView {
	return &LiveView{w: w}
}

// Attach subscribes to src. The first delivery is recorded as a baseline
// without output.
func (v *LiveView) Attach(src ComputationSource) {
	v.detach = src.SubscribeComputed(v.render)
}

// Detach stops rendering
func (v *LiveView) Detach() {
	if v.detach != nil {
		v.detach()
		v.detach = nil
	}
}

// Steps returns how many updates were rendered
func (v *LiveView) Steps() int {
	return v.step
}

func (v *LiveView) render(c types.PricingComputation) {
	if v.last == nil {
		v.last = &c
		return
	}

	v.step++
	d := v.w.NewMetricsDiff(stepTitle(v.step))
	d.Changed = DiffMetrics(v.last.Metrics, c.Metrics)
	d.Render()
	v.last = &c
}

func stepTitle(step int) string {
	return fmt.Sprintf("Update #%d", step)
}

// DiffMetrics lists the metrics that moved between prev and next
func DiffMetrics(prev, next types.PricingMetrics) []DiffItem {
	type metric struct {
		label         string
		from, to      float64
		format        func(float64) string
		lowerIsBetter bool
	}
	metrics := []metric{
		{label: "ARPU", from: prev.ARPU, to: next.ARPU, format: Money},
		{label: "Gross Margin", from: prev.GrossMargin, to: next.GrossMargin, format: Percent},
		{label: "LTV", from: prev.LTV, to: next.LTV, format: Money},
		{label: "CAC Payback", from: prev.CACPayback, to: next.CACPayback, format: Months, lowerIsBetter: true},
		{label: "LTV:CAC", from: prev.ROIMultiple, to: next.ROIMultiple, format: Multiple},
	}

	var items []DiffItem
	for _, m := range metrics {
		delta := m.to - m.from
		if math.Abs(delta) < 1e-9 {
			continue
		}
		change := m.format(delta)
		if delta > 0 {
			change = "+" + change
		}
		items = append(items, DiffItem{
			Label:         m.label,
			OldValue:      m.format(m.from),
			NewValue:      m.format(m.to),
			Change:        change,
			IsImprovement: (delta > 0) != m.lowerIsBetter,
		})
	}
	return items
}
