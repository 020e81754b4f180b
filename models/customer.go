// Package models contains domain entities and business models for the quotation system
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/quoteforge/quoteforge/utils"
	"gorm.io/gorm"
)

// Customer represents an account that owns projects and quotes. Identity
// verification and credential management live in an external provider; this
// row only carries what ownership checks and notifications need.
type Customer struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UUID      uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uk_customers_uuid" json:"uuid"`
	Email     string     `gorm:"size:255;not null;uniqueIndex:uk_customers_email" json:"email"`
	FullName  string     `gorm:"size:255;not null" json:"full_name"`
	IsActive  *bool      `gorm:"default:true;index:idx_customers_is_active" json:"is_active"`
	CreatedAt time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// TableName returns the table name for the model
func (Customer) TableName() string {
	return "customers"
}

// BeforeCreate is called before creating a new record
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.UUID == uuid.Nil {
		c.UUID = uuid.New()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = utils.UTCNow()
	}
	return nil
}

// CustomerFilter represents filter criteria for customers
type CustomerFilter struct {
	ID       *uint      `json:"id,omitempty"`
	UUID     *uuid.UUID `json:"uuid,omitempty"`
	Email    *string    `json:"email,omitempty"`
	IsActive *bool      `json:"is_active,omitempty"`
}
