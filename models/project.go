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

// ProjectType classifies a project for base-rate and timeline lookup
type ProjectType string

const (
	ProjectTypeCreative     ProjectType = "creative"
	ProjectTypeFullstack    ProjectType = "fullstack"
	ProjectTypeWeb3         ProjectType = "web3"
	ProjectTypeAIAutomation ProjectType = "ai_automation"
)

// String returns the string representation of the project type
func (t ProjectType) String() string {
	return string(t)
}

// Valid checks if the project type is one of the known values
func (t ProjectType) Valid() bool {
	switch t {
	case ProjectTypeCreative, ProjectTypeFullstack, ProjectTypeWeb3, ProjectTypeAIAutomation:
		return true
	default:
		return false
	}
}

// UrgencyLevel is the client-declared delivery urgency
type UrgencyLevel string

const (
	UrgencyStandard UrgencyLevel = "standard"
	UrgencyUrgent   UrgencyLevel = "urgent"
	UrgencyCritical UrgencyLevel = "critical"
)

// Valid checks if the urgency level is one of the known values
func (u UrgencyLevel) Valid() bool {
	switch u {
	case UrgencyStandard, UrgencyUrgent, UrgencyCritical:
		return true
	default:
		return false
	}
}

// ProjectStatus represents the intake lifecycle of a project
type ProjectStatus string

const (
	ProjectStatusIntake         ProjectStatus = "intake"
	ProjectStatusQuoteGenerated ProjectStatus = "quote_generated"
	ProjectStatusQuoteAccepted  ProjectStatus = "quote_accepted"
	ProjectStatusQuoteDeclined  ProjectStatus = "quote_declined"
	ProjectStatusArchived       ProjectStatus = "archived"
)

// String returns the string representation of the status
func (s ProjectStatus) String() string {
	return string(s)
}

// Valid checks if the status is valid
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusIntake, ProjectStatusQuoteGenerated,
		ProjectStatusQuoteAccepted, ProjectStatusQuoteDeclined,
		ProjectStatusArchived:
		return true
	default:
		return false
	}
}

// Integration describes a third-party system the project must talk to.
// Only a known subset of types contributes to the complexity score.
type Integration struct {
	Type string `json:"type"`
	Name string `json:"name,omitempty"`
}

// ProjectScope is the structured scope supplied at intake. Absent fields are
// treated as zero-length lists and a standard timeline.
type ProjectScope struct {
	Features     []string      `json:"features,omitempty"`
	Integrations []Integration `json:"integrations,omitempty"`
	Timeline     string        `json:"timeline,omitempty"`
	BudgetRange  string        `json:"budget_range,omitempty"`
}

// Value implements the driver.Valuer interface for ProjectScope
func (s ProjectScope) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan implements the sql.Scanner interface for ProjectScope
func (s *ProjectScope) Scan(value any) error {
	if value == nil {
		*s = ProjectScope{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into ProjectScope", value)
	}

	return json.Unmarshal(bytes, s)
}

// Project represents an audit project awaiting or holding a quote.
// The scope is immutable once a quote has been generated for it.
type Project struct {
	ID              uint             `gorm:"primaryKey" json:"id"`
	UUID            uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:uk_projects_uuid" json:"uuid"`
	CustomerID      uint             `gorm:"not null;index:idx_projects_customer_id" json:"customer_id"`
	Type            ProjectType      `gorm:"size:32;not null;index:idx_projects_type" json:"type"`
	Description     string           `gorm:"type:text" json:"description"`
	Scope           ProjectScope     `gorm:"type:jsonb;not null" json:"scope"`
	Urgency         UrgencyLevel     `gorm:"size:16;not null;default:'standard'" json:"urgency"`
	ComplexityScore *decimal.Decimal `gorm:"type:numeric(4,2)" json:"complexity_score,omitempty"`
	Status          ProjectStatus    `gorm:"size:32;not null;default:'intake';index:idx_projects_status" json:"status"`
	CreatedAt       time.Time        `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_projects_created_at" json:"created_at"`
	UpdatedAt       *time.Time       `json:"updated_at,omitempty"`

	// Relations
	Customer *Customer `gorm:"foreignKey:CustomerID;references:ID" json:"customer,omitempty"`
}

// TableName returns the table name for the model
func (Project) TableName() string {
	return "projects"
}

// BeforeCreate is called before creating a new record
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.UUID == uuid.Nil {
		p.UUID = uuid.New()
	}
	if p.Status == "" {
		p.Status = ProjectStatusIntake
	}
	if p.Urgency == "" {
		p.Urgency = UrgencyStandard
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = utils.UTCNow()
	}
	return nil
}

// BeforeUpdate is called before updating a record
func (p *Project) BeforeUpdate(tx *gorm.DB) error {
	now := utils.UTCNow()
	p.UpdatedAt = &now
	return nil
}

// ProjectFilter represents filter criteria for projects
type ProjectFilter struct {
	ID            *uint          `json:"id,omitempty"`
	UUID          *uuid.UUID     `json:"uuid,omitempty"`
	CustomerID    *uint          `json:"customer_id,omitempty"`
	Type          *ProjectType   `json:"type,omitempty"`
	Status        *ProjectStatus `json:"status,omitempty"`
	CreatedAfter  *time.Time     `json:"created_after,omitempty"`
	CreatedBefore *time.Time     `json:"created_before,omitempty"`
}
