// Package scenario loads pricing inputs from HCL, HCL-JSON or YAML files.
// A scenario is applied to a store in one bulk Set.
package scenario

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/hclsimple"
	"gopkg.in/yaml.v3"

	"pricing-calc/core/types"
	"pricing-calc/internal/errors"
)

// Scenario is a named set of pricing inputs
type Scenario struct {
	// Name is an optional display title
	Name string

	// Source is the file the scenario came from
	Source string

	// State holds the decoded inputs. Omitted fields keep their defaults.
	State types.PricingState
}

// file is the on-disk shape shared by all formats
type file struct {
	Name           string      `hcl:"name,optional" yaml:"name"`
	ConversionRate *float64    `hcl:"conversion_rate,optional" yaml:"conversion_rate"`
	ChurnRate      *float64    `hcl:"churn_rate,optional" yaml:"churn_rate"`
	CAC            *float64    `hcl:"cac,optional" yaml:"cac"`
	UserCount      *float64    `hcl:"user_count,optional" yaml:"user_count"`
	Elasticity     *float64    `hcl:"elasticity,optional" yaml:"elasticity"`
	Tiers          []tierBlock `hcl:"tier,block" yaml:"tiers"`
}

type tierBlock struct {
	Name  string   `hcl:"name,label" yaml:"name"`
	ID    string   `hcl:"id,optional" yaml:"id"`
	Price float64  `hcl:"price" yaml:"price"`
	Share *float64 `hcl:"share,optional" yaml:"share"`
}

// Load reads and parses a scenario file
func Load(path string) (*Scenario, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound("scenario", path)
		}
		return nil, errors.Wrap(errors.TypeInput, "cannot read scenario", err).WithContext("path", path)
	}
	return Parse(path, src)
}

// Parse decodes src, choosing the format from the filename extension
func Parse(filename string, src []byte) (*Scenario, error) {
	var f file

	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".hcl", ".json":
		if err := hclsimple.Decode(filename, src, evalContext(), &f); err != nil {
			return nil, errors.Parsing("invalid scenario", err).WithContext("path", filename)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(src, &f); err != nil {
			return nil, errors.Parsing("invalid scenario", err).WithContext("path", filename)
		}
	default:
		return nil, errors.NotSupported(fmt.Sprintf("scenario format %q", ext))
	}

	state, err := f.state()
	if err != nil {
		return nil, err.WithContext("path", filename)
	}

	return &Scenario{
		Name:   f.Name,
		Source: filename,
		State:  state,
	}, nil
}

func (f *file) state() (types.PricingState, *errors.Error) {
	state := types.DefaultState()

	fields := []struct {
		field types.Field
		value *float64
	}{
		{types.FieldConversionRate, f.ConversionRate},
		{types.FieldChurnRate, f.ChurnRate},
		{types.FieldCAC, f.CAC},
		{types.FieldUserCount, f.UserCount},
		{types.FieldElasticity, f.Elasticity},
	}
	for _, fv := range fields {
		if fv.value == nil {
			continue
		}
		if !finite(*fv.value) {
			return state, errors.Inputf("%s must be a finite number", fv.field)
		}
		state, _ = state.WithField(fv.field, *fv.value)
	}

	if len(f.Tiers) == 0 {
		return state, nil
	}

	tiers := make([]types.PricingTier, 0, len(f.Tiers))
	for i, tb := range f.Tiers {
		if strings.TrimSpace(tb.Name) == "" {
			return state, errors.Inputf("tier %d has no name", i+1)
		}
		if !finite(tb.Price) || tb.Price < 0 {
			return state, errors.Inputf("tier %q: price must be a non-negative number", tb.Name)
		}
		share := 1.0
		if tb.Share != nil {
			share = *tb.Share
		}
		if !finite(share) || share < 0 {
			return state, errors.Inputf("tier %q: share must be a non-negative number", tb.Name)
		}
		tiers = append(tiers, types.PricingTier{
			ID:    tb.ID,
			Name:  tb.Name,
			Price: tb.Price,
			Share: share,
		})
	}
	state.Tiers = tiers

	return state, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
