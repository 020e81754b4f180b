// Package businessflow contains the business logic for the application.
package businessflow

import (
	"encoding/json"

	"github.com/quoteforge/quoteforge/app/dto"
	"github.com/quoteforge/quoteforge/models"
	"github.com/quoteforge/quoteforge/utils"
)

const RequestIDKey = "X-Request-ID"

// ClientMetadata holds all client-related information for audit logging
type ClientMetadata struct {
	IPAddress  string            `json:"ip_address"`
	UserAgent  string            `json:"user_agent"`
	RequestID  string            `json:"request_id,omitempty"`
	Additional map[string]string `json:"additional,omitempty"`
}

// NewClientMetadata creates a new ClientMetadata instance with basic information
func NewClientMetadata(ipAddress, userAgent string) *ClientMetadata {
	return &ClientMetadata{
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
		Additional: make(map[string]string),
	}
}

// AddAdditional adds additional custom information to the metadata
func (cm *ClientMetadata) AddAdditional(key, value string) {
	if cm.Additional == nil {
		cm.Additional = make(map[string]string)
	}
	cm.Additional[key] = value
}

// SetRequestID sets the request ID
func (cm *ClientMetadata) SetRequestID(requestID string) {
	cm.RequestID = requestID
}

// ToQuoteDTO converts a quote model to QuoteDTO for API responses
func ToQuoteDTO(quote models.Quote) dto.QuoteDTO {
	out := dto.QuoteDTO{
		UUID:                   quote.UUID.String(),
		Status:                 quote.Status.String(),
		StatusDisplay:          quote.GetStatusDisplayName(),
		BaseRate:               quote.BaseRate,
		ComplexityAdjustment:   quote.ComplexityAdjustment,
		UrgencyAdjustment:      quote.UrgencyAdjustment,
		TotalEstimate:          quote.TotalEstimate,
		NotToExceed:            quote.NotToExceed,
		Currency:               utils.USDCurrency,
		EstimatedTimelineWeeks: quote.EstimatedTimelineWeeks,
		DeliveryDate:           quote.DeliveryDate,
		PaymentStructure: dto.PaymentStructureDTO{
			Deposit:    quote.PaymentStructure.Deposit,
			Milestone1: quote.PaymentStructure.Milestone1,
			Milestone2: quote.PaymentStructure.Milestone2,
			Final:      quote.PaymentStructure.Final,
		},
		ValidUntil:    quote.ValidUntil,
		TermsAccepted: quote.TermsAccepted,
		AcceptedAt:    quote.AcceptedAt,
		CreatedAt:     quote.CreatedAt,
	}

	if quote.Project != nil {
		out.ProjectUUID = quote.Project.UUID.String()
		out.ProjectType = quote.Project.Type.String()
	}

	if len(quote.Metadata) > 0 {
		var meta models.QuoteMetadata
		if err := json.Unmarshal(quote.Metadata, &meta); err == nil {
			out.DeclineReason = meta.DeclineReason
		}
	}

	return out
}
