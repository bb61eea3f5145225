package scenario

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"

	"pricing-calc/core/types"
)

// evalContext exposes the default inputs and a few helpers to HCL
// expressions, e.g. `cac = defaults.cac * 1.5` or `churn_rate = percent(3)`.
func evalContext() *hcl.EvalContext {
	def := types.DefaultState()
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"defaults": cty.ObjectVal(map[string]cty.Value{
				"conversion_rate": cty.NumberFloatVal(def.ConversionRate),
				"churn_rate":      cty.NumberFloatVal(def.ChurnRate),
				"cac":             cty.NumberFloatVal(def.CAC),
				"user_count":      cty.NumberFloatVal(def.UserCount),
				"elasticity":      cty.NumberFloatVal(def.Elasticity),
			}),
		},
		Functions: map[string]function.Function{
			"percent": scaleFunc(100),
			"monthly": scaleFunc(12),
		},
	}
}

// scaleFunc returns a function that divides its argument by divisor
func scaleFunc(divisor int64) function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{
			{Name: "value", Type: cty.Number},
		},
		Type: function.StaticReturnType(cty.Number),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			return args[0].Divide(cty.NumberIntVal(divisor)), nil
		},
	})
}
