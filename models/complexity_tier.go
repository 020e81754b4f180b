package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ComplexityTier maps an integer complexity rating (1-10) to a multiplicative
// pricing factor. A missing tier is a documented leniency: the bundle
// calculator falls back to a 1.0 multiplier instead of erroring.
type ComplexityTier struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	Rating     int             `gorm:"not null;uniqueIndex:uk_complexity_tiers_rating" json:"rating"`
	Label      string          `gorm:"size:64;not null" json:"label"`
	Multiplier decimal.Decimal `gorm:"type:numeric(10,4);not null" json:"multiplier"`
	CreatedAt  time.Time       `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
}

// TableName returns the table name for the model
func (ComplexityTier) TableName() string {
	return "complexity_tiers"
}

// ComplexityTierFilter represents filter criteria for complexity tiers
type ComplexityTierFilter struct {
	ID     *uint `json:"id,omitempty"`
	Rating *int  `json:"rating,omitempty"`
}
