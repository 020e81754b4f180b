package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Decimal amounts are serialized through shopspring/decimal so clients get
// exact string representations rather than lossy floats.

// GenerateQuoteRequest represents the request to generate a quote for a project
type GenerateQuoteRequest struct {
	ProjectUUID string `json:"-" validate:"required,uuid4"`
	CustomerID  uint   `json:"-"`
}

// GetQuoteRequest represents the request to fetch a single quote
type GetQuoteRequest struct {
	UUID       string `json:"-" validate:"required,uuid4"`
	CustomerID uint   `json:"-"`
}

// ListQuotesRequest represents the request to list the caller's quotes
type ListQuotesRequest struct {
	CustomerID uint `json:"-"`
	Page       int  `json:"-" validate:"omitempty,min=1"`
	PageSize   int  `json:"-" validate:"omitempty,min=1,max=100"`
}

// SendQuoteRequest represents the request to mark a quote as sent
type SendQuoteRequest struct {
	UUID       string `json:"-" validate:"required,uuid4"`
	CustomerID uint   `json:"-"`
}

// AcceptQuoteRequest represents the request to accept a quote
type AcceptQuoteRequest struct {
	UUID       string `json:"-" validate:"required,uuid4"`
	CustomerID uint   `json:"-"`
}

// DeclineQuoteRequest represents the request to decline a quote
type DeclineQuoteRequest struct {
	UUID       string  `json:"-" validate:"required,uuid4"`
	CustomerID uint    `json:"-"`
	Reason     *string `json:"reason,omitempty" validate:"omitempty,max=1000"`
}

// PaymentStructureDTO represents the milestone split of a quote
type PaymentStructureDTO struct {
	Deposit    decimal.Decimal `json:"deposit"`
	Milestone1 decimal.Decimal `json:"milestone_1"`
	Milestone2 decimal.Decimal `json:"milestone_2"`
	Final      decimal.Decimal `json:"final"`
}

// QuoteDTO represents a quote in API responses
type QuoteDTO struct {
	UUID                   string              `json:"uuid"`
	ProjectUUID            string              `json:"project_uuid,omitempty"`
	ProjectType            string              `json:"project_type,omitempty"`
	Status                 string              `json:"status"`
	StatusDisplay          string              `json:"status_display"`
	BaseRate               decimal.Decimal     `json:"base_rate"`
	ComplexityAdjustment   decimal.Decimal     `json:"complexity_adjustment"`
	UrgencyAdjustment      decimal.Decimal     `json:"urgency_adjustment"`
	TotalEstimate          decimal.Decimal     `json:"total_estimate"`
	NotToExceed            decimal.Decimal     `json:"not_to_exceed"`
	Currency               string              `json:"currency"`
	EstimatedTimelineWeeks int                 `json:"estimated_timeline_weeks"`
	DeliveryDate           time.Time           `json:"delivery_date"`
	PaymentStructure       PaymentStructureDTO `json:"payment_structure"`
	ValidUntil             time.Time           `json:"valid_until"`
	TermsAccepted          bool                `json:"terms_accepted"`
	AcceptedAt             *time.Time          `json:"accepted_at,omitempty"`
	DeclineReason          *string             `json:"decline_reason,omitempty"`
	CreatedAt              time.Time           `json:"created_at"`
}

// GenerateQuoteResponse represents the response to a quote generation request
type GenerateQuoteResponse struct {
	Message string   `json:"message"`
	Quote   QuoteDTO `json:"quote"`
}

// GetQuoteResponse represents the response to a single-quote fetch
type GetQuoteResponse struct {
	Quote QuoteDTO `json:"quote"`
}

// ListQuotesResponse represents the response to a quote listing request
type ListQuotesResponse struct {
	Items []QuoteDTO `json:"items"`
	Page  int        `json:"page"`
	Total int64      `json:"total"`
}

// QuoteLifecycleResponse represents the response to send/accept/decline requests
type QuoteLifecycleResponse struct {
	Message string   `json:"message"`
	Quote   QuoteDTO `json:"quote"`
}
