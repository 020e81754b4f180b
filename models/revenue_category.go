package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RevenueCategory is a business-classification axis used as an independent
// multiplicative pricing factor in the bundle pricing path. Lookup is
// case-insensitive by code or display name.
type RevenueCategory struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Code        string          `gorm:"size:64;not null;uniqueIndex:uk_revenue_categories_code" json:"code"`
	DisplayName string          `gorm:"size:255;not null" json:"display_name"`
	Multiplier  decimal.Decimal `gorm:"type:numeric(10,4);not null" json:"multiplier"`
	Description *string         `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time       `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
}

// TableName returns the table name for the model
func (RevenueCategory) TableName() string {
	return "revenue_categories"
}

// RevenueCategoryFilter represents filter criteria for revenue categories
type RevenueCategoryFilter struct {
	ID   *uint   `json:"id,omitempty"`
	Code *string `json:"code,omitempty"`
}
