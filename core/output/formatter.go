// Package output provides output formatting interfaces.
// This package produces human and machine-readable outputs.
package output

import (
	"io"
	"sort"

	"pricing-calc/core/types"
	"pricing-calc/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable CLI report
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"

	// FormatMarkdown is a markdown report
	FormatMarkdown Format = "markdown"
)

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render produces output for the given report
	Render(w io.Writer, report *Report) error
}

// Report contains the complete calculator output
type Report struct {
	// Title names the scenario
	Title string `json:"title,omitempty"`

	// State is the input snapshot the computation was derived from
	State types.PricingState `json:"state"`

	// Computation is everything derived from State
	Computation types.PricingComputation `json:"computation"`

	// Assumptions documents fixed modelling assumptions
	Assumptions []Assumption `json:"assumptions,omitempty"`

	// Warnings lists values that could not be represented as given
	Warnings []string `json:"warnings,omitempty"`

	// ShowProjection includes the monthly projection in text formats
	ShowProjection bool `json:"-"`
}

// Assumption documents a modelling assumption
type Assumption struct {
	// Category is the assumption category
	Category string `json:"category"`

	// Description explains the assumption
	Description string `json:"description"`
}

// DefaultAssumptions are the constants baked into the derivation chain
func DefaultAssumptions() []Assumption {
	return []Assumption{
		{Category: "projection", Description: "12 month horizon seeded with two months of new customers"},
		{Category: "elasticity", Description: "price moves 1:1 with elasticity within 30%-170%, conversion at 0.6x within 20%-180%"},
		{Category: "ltv", Description: "raw lifetime falls back to 24 months when churn is not positive"},
		{Category: "margin", Description: "gross margin is capped at 95%"},
	}
}

// NewReport bundles a state with its computation
func NewReport(title string, state types.PricingState, computation types.PricingComputation) *Report {
	return &Report{
		Title:          title,
		State:          state,
		Computation:    computation,
		Assumptions:    DefaultAssumptions(),
		ShowProjection: true,
	}
}

// Registry manages formatter registration
type Registry struct {
	formatters map[Format]Formatter
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{formatters: make(map[Format]Formatter)}
}

// DefaultRegistry returns a registry with every built-in formatter
func DefaultRegistry(noColor bool) *Registry {
	r := NewRegistry()
	_ = r.Register(NewCLIFormatter(noColor))
	_ = r.Register(NewJSONFormatter())
	_ = r.Register(NewMarkdownFormatter())
	return r
}

// Register adds a formatter to the registry
func (r *Registry) Register(formatter Formatter) error {
	if _, exists := r.formatters[formatter.Format()]; exists {
		return errors.Newf(errors.TypeInput, "formatter already registered: %s", formatter.Format())
	}
	r.formatters[formatter.Format()] = formatter
	return nil
}

// Get returns a formatter for a format type
func (r *Registry) Get(format Format) (Formatter, error) {
	f, ok := r.formatters[format]
	if !ok {
		return nil, errors.NotSupported("output format " + string(format)).
			WithContext("available", r.Formats())
	}
	return f, nil
}

// Formats returns all registered format names, sorted
func (r *Registry) Formats() []string {
	names := make([]string, 0, len(r.formatters))
	for f := range r.formatters {
		names = append(names, string(f))
	}
	sort.Strings(names)
	return names
}
