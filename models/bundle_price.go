package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BundlePrice is the base price row for the exact (bundle, revenue category,
// company scale) triple. A miss on the triple is a strict pricing error,
// unlike the lenient complexity-tier lookup.
type BundlePrice struct {
	ID                uint            `gorm:"primaryKey" json:"id"`
	BundleID          string          `gorm:"size:64;not null;uniqueIndex:uk_bundle_prices_triple,priority:1" json:"bundle_id"`
	RevenueCategoryID uint            `gorm:"not null;uniqueIndex:uk_bundle_prices_triple,priority:2" json:"revenue_category_id"`
	CompanyScaleID    uint            `gorm:"not null;uniqueIndex:uk_bundle_prices_triple,priority:3" json:"company_scale_id"`
	BasePrice         decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"base_price"`
	CreatedAt         time.Time       `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`

	// Relations
	RevenueCategory *RevenueCategory `gorm:"foreignKey:RevenueCategoryID;references:ID" json:"revenue_category,omitempty"`
	CompanyScale    *CompanyScale    `gorm:"foreignKey:CompanyScaleID;references:ID" json:"company_scale,omitempty"`
}

// TableName returns the table name for the model
func (BundlePrice) TableName() string {
	return "bundle_prices"
}

// BundlePriceFilter represents filter criteria for bundle prices
type BundlePriceFilter struct {
	ID                *uint   `json:"id,omitempty"`
	BundleID          *string `json:"bundle_id,omitempty"`
	RevenueCategoryID *uint   `json:"revenue_category_id,omitempty"`
	CompanyScaleID    *uint   `json:"company_scale_id,omitempty"`
}
