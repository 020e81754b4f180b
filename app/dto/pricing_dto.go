package dto

import (
	"github.com/shopspring/decimal"
)

// BundlePricingRequest represents the request to price a bundle
type BundlePricingRequest struct {
	BundleID         string `json:"bundle_id" validate:"required,max=64"`
	RevenueCategory  string `json:"revenue_category" validate:"required,max=255"`
	CompanyScale     string `json:"company_scale" validate:"required,max=255"`
	ComplexityRating *int   `json:"complexity_rating,omitempty" validate:"omitempty,min=1,max=10"`
}

// BundleBreakdownDTO represents the additive decomposition of a bundle price
type BundleBreakdownDTO struct {
	Base                 decimal.Decimal `json:"base"`
	ScaleAdjustment      decimal.Decimal `json:"scale_adjustment"`
	ComplexityAdjustment decimal.Decimal `json:"complexity_adjustment"`
}

// BundlePricingResponse represents the response to a bundle pricing request
type BundlePricingResponse struct {
	BundleID             string             `json:"bundle_id"`
	RevenueCategory      string             `json:"revenue_category"`
	CompanyScale         string             `json:"company_scale"`
	ComplexityRating     int                `json:"complexity_rating"`
	BasePrice            decimal.Decimal    `json:"base_price"`
	ScaleMultiplier      decimal.Decimal    `json:"scale_multiplier"`
	ComplexityMultiplier decimal.Decimal    `json:"complexity_multiplier"`
	FinalPrice           decimal.Decimal    `json:"final_price"`
	Currency             string             `json:"currency"`
	Breakdown            BundleBreakdownDTO `json:"breakdown"`
}
