package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/quoteforge/quoteforge/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// QuoteStatus represents the lifecycle status of a quote
type QuoteStatus string

const (
	QuoteStatusPending  QuoteStatus = "pending"
	QuoteStatusSent     QuoteStatus = "sent"
	QuoteStatusAccepted QuoteStatus = "accepted"
	QuoteStatusDeclined QuoteStatus = "declined"
	QuoteStatusExpired  QuoteStatus = "expired"
)

// String returns the string representation of the status
func (s QuoteStatus) String() string {
	return string(s)
}

// Valid checks if the status is valid
func (s QuoteStatus) Valid() bool {
	switch s {
	case QuoteStatusPending, QuoteStatusSent, QuoteStatusAccepted,
		QuoteStatusDeclined, QuoteStatusExpired:
		return true
	default:
		return false
	}
}

// IsActive reports whether the status counts against the one-active-quote-
// per-project invariant.
func (s QuoteStatus) IsActive() bool {
	return s == QuoteStatusPending || s == QuoteStatusSent || s == QuoteStatusAccepted
}

// IsTerminal reports whether the status admits no further transitions.
// Declined is terminal except for the idempotent re-decline case handled in
// the lifecycle flow.
func (s QuoteStatus) IsTerminal() bool {
	return s == QuoteStatusAccepted || s == QuoteStatusDeclined || s == QuoteStatusExpired
}

// Scan implements the sql.Scanner interface for QuoteStatus
func (s *QuoteStatus) Scan(value any) error {
	if value == nil {
		*s = ""
		return nil
	}

	switch v := value.(type) {
	case string:
		*s = QuoteStatus(v)
	case []byte:
		*s = QuoteStatus(string(v))
	default:
		return fmt.Errorf("cannot scan %T into QuoteStatus", value)
	}

	return nil
}

// Value implements the driver.Valuer interface for QuoteStatus
func (s QuoteStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid QuoteStatus: %s", s)
	}
	return string(s), nil
}

// PaymentStructure is the fixed 30/30/20/20 milestone split of the total
// estimate. Amounts are whole currency units; any rounding remainder is
// carried by the final installment so the four always sum to the total.
type PaymentStructure struct {
	Deposit    decimal.Decimal `json:"deposit"`
	Milestone1 decimal.Decimal `json:"milestone_1"`
	Milestone2 decimal.Decimal `json:"milestone_2"`
	Final      decimal.Decimal `json:"final"`
}

// Sum returns the total of the four installments.
func (p PaymentStructure) Sum() decimal.Decimal {
	return p.Deposit.Add(p.Milestone1).Add(p.Milestone2).Add(p.Final)
}

// Value implements the driver.Valuer interface for PaymentStructure
func (p PaymentStructure) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// Scan implements the sql.Scanner interface for PaymentStructure
func (p *PaymentStructure) Scan(value any) error {
	if value == nil {
		*p = PaymentStructure{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into PaymentStructure", value)
	}

	return json.Unmarshal(bytes, p)
}

// Quote is the priced offer issued for a project. Quotes are never deleted;
// terminal states keep the audit trail intact. The partial unique index on
// project_id enforces the single-active-quote invariant at the storage layer,
// closing the read-then-write race between concurrent generation requests.
type Quote struct {
	ID                     uint             `gorm:"primaryKey" json:"id"`
	UUID                   uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:uk_quotes_uuid" json:"uuid"`
	ProjectID              uint             `gorm:"not null;index:idx_quotes_project_id;uniqueIndex:uk_quotes_active_project,where:status = 'pending' OR status = 'sent' OR status = 'accepted'" json:"project_id"`
	CustomerID             uint             `gorm:"not null;index:idx_quotes_customer_id" json:"customer_id"`
	BaseRate               decimal.Decimal  `gorm:"type:numeric(12,2);not null" json:"base_rate"`
	ComplexityAdjustment   decimal.Decimal  `gorm:"type:numeric(12,2);not null" json:"complexity_adjustment"`
	UrgencyAdjustment      decimal.Decimal  `gorm:"type:numeric(12,2);not null" json:"urgency_adjustment"`
	TotalEstimate          decimal.Decimal  `gorm:"type:numeric(12,2);not null" json:"total_estimate"`
	NotToExceed            decimal.Decimal  `gorm:"type:numeric(12,2);not null" json:"not_to_exceed"`
	EstimatedTimelineWeeks int              `gorm:"not null" json:"estimated_timeline_weeks"`
	DeliveryDate           time.Time        `gorm:"not null" json:"delivery_date"`
	PaymentStructure       PaymentStructure `gorm:"type:jsonb;not null" json:"payment_structure"`
	ValidUntil             time.Time        `gorm:"not null;index:idx_quotes_valid_until" json:"valid_until"`
	TermsAccepted          bool             `gorm:"not null;default:false" json:"terms_accepted"`
	AcceptedAt             *time.Time       `json:"accepted_at,omitempty"`
	Metadata               json.RawMessage  `gorm:"type:jsonb" json:"metadata,omitempty"`
	Status                 QuoteStatus      `gorm:"size:16;not null;default:'pending';index:idx_quotes_status" json:"status"`
	CreatedAt              time.Time        `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_quotes_created_at" json:"created_at"`
	UpdatedAt              *time.Time       `json:"updated_at,omitempty"`

	// Relations
	Project  *Project  `gorm:"foreignKey:ProjectID;references:ID" json:"project,omitempty"`
	Customer *Customer `gorm:"foreignKey:CustomerID;references:ID" json:"customer,omitempty"`
}

// TableName returns the table name for the model
func (Quote) TableName() string {
	return "quotes"
}

// BeforeCreate is called before creating a new record
func (q *Quote) BeforeCreate(tx *gorm.DB) error {
	if q.UUID == uuid.Nil {
		q.UUID = uuid.New()
	}
	if q.Status == "" {
		q.Status = QuoteStatusPending
	}
	if q.CreatedAt.IsZero() {
		q.CreatedAt = utils.UTCNow()
	}
	return nil
}

// BeforeUpdate is called before updating a record
func (q *Quote) BeforeUpdate(tx *gorm.DB) error {
	now := utils.UTCNow()
	q.UpdatedAt = &now
	return nil
}

// IsExpiredAt reports whether the validity window has passed at the given time.
func (q *Quote) IsExpiredAt(now time.Time) bool {
	return now.After(q.ValidUntil)
}

// CanTransitionTo checks if the quote can transition to the given status.
// Re-declining an already-declined quote is allowed so a repeated decline
// stays idempotent (the reason is overwritten).
func (q *Quote) CanTransitionTo(newStatus QuoteStatus) bool {
	switch q.Status {
	case QuoteStatusPending:
		return newStatus == QuoteStatusSent ||
			newStatus == QuoteStatusAccepted ||
			newStatus == QuoteStatusDeclined ||
			newStatus == QuoteStatusExpired
	case QuoteStatusSent:
		return newStatus == QuoteStatusAccepted ||
			newStatus == QuoteStatusDeclined ||
			newStatus == QuoteStatusExpired
	case QuoteStatusDeclined:
		return newStatus == QuoteStatusDeclined
	default:
		return false
	}
}

// GetStatusDisplayName returns a human-readable status name
func (q *Quote) GetStatusDisplayName() string {
	switch q.Status {
	case QuoteStatusPending:
		return "Pending"
	case QuoteStatusSent:
		return "Sent"
	case QuoteStatusAccepted:
		return "Accepted"
	case QuoteStatusDeclined:
		return "Declined"
	case QuoteStatusExpired:
		return "Expired"
	default:
		return "Unknown"
	}
}

// QuoteFilter represents filter criteria for quotes
type QuoteFilter struct {
	ID            *uint        `json:"id,omitempty"`
	UUID          *uuid.UUID   `json:"uuid,omitempty"`
	ProjectID     *uint        `json:"project_id,omitempty"`
	CustomerID    *uint        `json:"customer_id,omitempty"`
	Status        *QuoteStatus `json:"status,omitempty"`
	ActiveOnly    bool         `json:"active_only,omitempty"`
	CreatedAfter  *time.Time   `json:"created_after,omitempty"`
	CreatedBefore *time.Time   `json:"created_before,omitempty"`
	ValidAfter    *time.Time   `json:"valid_after,omitempty"`
	ValidBefore   *time.Time   `json:"valid_before,omitempty"`
}

// QuoteMetadata holds free-form lifecycle annotations stored in the metadata
// JSONB column.
type QuoteMetadata struct {
	DeclineReason *string `json:"decline_reason,omitempty"`
}
