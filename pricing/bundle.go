package pricing

import "github.com/shopspring/decimal"

// BundleBreakdown is the additive decomposition of a bundle price.
type BundleBreakdown struct {
	Base                 decimal.Decimal `json:"base"`
	ScaleAdjustment      decimal.Decimal `json:"scale_adjustment"`
	ComplexityAdjustment decimal.Decimal `json:"complexity_adjustment"`
}

// BundlePricingResult is an ephemeral computation result; nothing is
// persisted on the bundle pricing path.
type BundlePricingResult struct {
	BasePrice            decimal.Decimal `json:"base_price"`
	ScaleMultiplier      decimal.Decimal `json:"scale_multiplier"`
	ComplexityMultiplier decimal.Decimal `json:"complexity_multiplier"`
	FinalPrice           decimal.Decimal `json:"final_price"`
	Breakdown            BundleBreakdown `json:"breakdown"`
}

// CalculateBundlePrice composes the bundle base price with the company-scale
// and complexity-tier multipliers. The complexity multiplier compounds on the
// scale-adjusted amount rather than the raw base; this differs from the quote
// calculator on purpose and must not be "normalized".
func CalculateBundlePrice(base, scaleMultiplier, complexityMultiplier decimal.Decimal) BundlePricingResult {
	one := decimal.NewFromInt(1)

	scaleAdjustment := base.Mul(scaleMultiplier.Sub(one))
	complexityAdjustment := base.Add(scaleAdjustment).Mul(complexityMultiplier.Sub(one))
	finalPrice := base.Add(scaleAdjustment).Add(complexityAdjustment).Round(2)

	return BundlePricingResult{
		BasePrice:            base,
		ScaleMultiplier:      scaleMultiplier,
		ComplexityMultiplier: complexityMultiplier,
		FinalPrice:           finalPrice,
		Breakdown: BundleBreakdown{
			Base:                 base,
			ScaleAdjustment:      scaleAdjustment,
			ComplexityAdjustment: complexityAdjustment,
		},
	}
}
