package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CompanyScale classifies the requesting company's size and maps to a
// multiplicative pricing factor in the bundle pricing path.
type CompanyScale struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Code        string          `gorm:"size:64;not null;uniqueIndex:uk_company_scales_code" json:"code"`
	DisplayName string          `gorm:"size:255;not null" json:"display_name"`
	Multiplier  decimal.Decimal `gorm:"type:numeric(10,4);not null" json:"multiplier"`
	Description *string         `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time       `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
}

// TableName returns the table name for the model
func (CompanyScale) TableName() string {
	return "company_scales"
}

// CompanyScaleFilter represents filter criteria for company scales
type CompanyScaleFilter struct {
	ID   *uint   `json:"id,omitempty"`
	Code *string `json:"code,omitempty"`
}
